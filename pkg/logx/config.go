package logx

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// EnvVar names the environment variable that marks a production deployment.
const EnvVar = "BOTLOG_ENV"

// ---- Config ----

type Config struct {
	File FileConfig

	// Debug forces every sink to debug, overriding ConsoleLevel and FileLevel.
	Debug bool

	// ConsoleLevel defaults to "error", FileLevel to "info".
	ConsoleLevel string
	FileLevel    string

	// Color is "auto" (default), "always" or "never".
	Color string

	// Caller adds a caller=file.go:line extra to every record.
	Caller bool

	// HandleCrashes mirrors fatal runtime crashes into the log file and makes
	// Logger.Recover / Logger.Go log what they catch.
	HandleCrashes bool

	Chat    ChatConfig
	Journal JournalConfig
}

type FileConfig struct {
	Path   string
	Rotate RotateConfig
}

// RotateConfig enables size based rotation. A zero MaxSizeMB keeps plain
// append-only writes.
type RotateConfig struct {
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

func (r RotateConfig) enabled() bool { return r.MaxSizeMB > 0 }

type ChatConfig struct {
	Enabled    bool
	ThreadID   int
	MinLevel   string
	RatePerSec int
}

type JournalConfig struct {
	Enabled bool
	Level   string
}

// DefaultConfig returns the opinionated defaults: debug everywhere unless
// running in production, errors on the console, info and up in the file.
func DefaultConfig() Config {
	return Config{
		Debug:         !Production(),
		ConsoleLevel:  "error",
		FileLevel:     "info",
		Color:         "auto",
		HandleCrashes: true,
	}
}

// Production reports whether BOTLOG_ENV says this is a production deployment.
func Production() bool {
	return strings.EqualFold(strings.TrimSpace(os.Getenv(EnvVar)), "production")
}

func (c Config) consoleLevel() Level {
	if c.Debug {
		return zerolog.DebugLevel
	}
	return ParseLevel(c.ConsoleLevel, zerolog.ErrorLevel)
}

func (c Config) fileLevel() Level {
	if c.Debug {
		return zerolog.DebugLevel
	}
	return ParseLevel(c.FileLevel, zerolog.InfoLevel)
}

func (c Config) chatLevel() Level {
	return ParseLevel(c.Chat.MinLevel, zerolog.WarnLevel)
}

func (c Config) journalLevel() Level {
	if c.Debug {
		return zerolog.DebugLevel
	}
	return ParseLevel(c.Journal.Level, zerolog.InfoLevel)
}
