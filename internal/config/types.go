package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"botlog/pkg/logx"
)

type Config struct {
	Logging  LoggingConfig  `json:"logging"`
	Telegram TelegramConfig `json:"telegram,omitempty"`
}

// LoggingConfig is the on-disk shape of logx.Config.
//
// Example (YAML):
//
//	logging:
//	  console: { level: error, color: auto }
//	  file: { path: ./bot.log, level: info, max_size_mb: 20 }
//	  telegram: { enabled: true, min_level: warn, rate_per_sec: 1 }
type LoggingConfig struct {
	// Debug defaults to true unless BOTLOG_ENV=production.
	Debug *bool `json:"debug,omitempty"`

	Console  LoggingConsole  `json:"console"`
	File     LoggingFile     `json:"file"`
	Caller   bool            `json:"caller,omitempty"`
	Telegram LoggingTelegram `json:"telegram"`
	Journal  LoggingJournal  `json:"journal"`

	// HandleCrashes defaults to true.
	HandleCrashes *bool `json:"handle_crashes,omitempty"`
}

type LoggingConsole struct {
	Level string `json:"level"`
	Color string `json:"color,omitempty"`
}

type LoggingFile struct {
	Path       string `json:"path"`
	Level      string `json:"level"`
	MaxSizeMB  int    `json:"max_size_mb,omitempty"`
	MaxBackups int    `json:"max_backups,omitempty"`
	MaxAgeDays int    `json:"max_age_days,omitempty"`
	Compress   bool   `json:"compress,omitempty"`
}

type LoggingTelegram struct {
	Enabled    bool   `json:"enabled"`
	ThreadID   int    `json:"thread_id"`
	MinLevel   string `json:"min_level"`
	RatePerSec int    `json:"rate_per_sec"`
}

type LoggingJournal struct {
	Enabled bool   `json:"enabled"`
	Level   string `json:"level,omitempty"`
}

type TelegramConfig struct {
	Token string `json:"token"`
	// GroupLog is the chat id log records are forwarded to.
	GroupLog string `json:"group_log"`
	// PollTimeout is a Go duration string (e.g. "10s", "2m").
	PollTimeout string `json:"poll_timeout"`
}

// LogxConfig maps the file config onto logx.Config, filling defaults from
// logx.DefaultConfig for anything left out.
func (c *Config) LogxConfig() logx.Config {
	out := logx.DefaultConfig()
	if c == nil {
		return out
	}
	l := c.Logging
	if l.Debug != nil {
		out.Debug = *l.Debug
	}
	if l.HandleCrashes != nil {
		out.HandleCrashes = *l.HandleCrashes
	}
	if s := strings.TrimSpace(l.Console.Level); s != "" {
		out.ConsoleLevel = s
	}
	if s := strings.TrimSpace(l.Console.Color); s != "" {
		out.Color = s
	}
	if s := strings.TrimSpace(l.File.Level); s != "" {
		out.FileLevel = s
	}
	out.Caller = l.Caller
	out.File = logx.FileConfig{
		Path: strings.TrimSpace(l.File.Path),
		Rotate: logx.RotateConfig{
			MaxSizeMB:  l.File.MaxSizeMB,
			MaxBackups: l.File.MaxBackups,
			MaxAgeDays: l.File.MaxAgeDays,
			Compress:   l.File.Compress,
		},
	}
	out.Chat = logx.ChatConfig{
		Enabled:    l.Telegram.Enabled,
		ThreadID:   l.Telegram.ThreadID,
		MinLevel:   l.Telegram.MinLevel,
		RatePerSec: l.Telegram.RatePerSec,
	}
	out.Journal = logx.JournalConfig{Enabled: l.Journal.Enabled, Level: l.Journal.Level}
	return out
}

// GroupLogID parses GroupLog. An empty value returns 0 and no error.
func (t TelegramConfig) GroupLogID() (int64, error) {
	s := strings.TrimSpace(t.GroupLog)
	if s == "" {
		return 0, nil
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("telegram.group_log: invalid chat id %q", t.GroupLog)
	}
	return id, nil
}

func (t TelegramConfig) PollTimeoutOrDefault() (time.Duration, error) {
	return ParseDurationOrDefault("telegram.poll_timeout", t.PollTimeout, 10*time.Second)
}

// Validate checks values the decoder cannot: level names, colours and ids.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("config is nil")
	}
	levels := map[string]string{
		"logging.console.level":      c.Logging.Console.Level,
		"logging.file.level":         c.Logging.File.Level,
		"logging.telegram.min_level": c.Logging.Telegram.MinLevel,
		"logging.journal.level":      c.Logging.Journal.Level,
	}
	for path, v := range levels {
		if !validLevel(v) {
			return fmt.Errorf("%s: unknown level %q", path, v)
		}
	}
	switch strings.ToLower(strings.TrimSpace(c.Logging.Console.Color)) {
	case "", "auto", "always", "never":
	default:
		return fmt.Errorf("logging.console.color: want auto, always or never, got %q", c.Logging.Console.Color)
	}
	if _, err := c.Telegram.GroupLogID(); err != nil {
		return err
	}
	if _, err := c.Telegram.PollTimeoutOrDefault(); err != nil {
		return err
	}
	if c.Logging.Telegram.Enabled && strings.TrimSpace(c.Telegram.GroupLog) == "" {
		return fmt.Errorf("logging.telegram.enabled requires telegram.group_log")
	}
	return nil
}

func validLevel(s string) bool {
	if strings.TrimSpace(s) == "" {
		return true
	}
	// Probe with two different defaults: a known name maps to the same level.
	return logx.ParseLevel(s, logx.LevelTrace) == logx.ParseLevel(s, logx.LevelNone)
}
