package config

import (
	"sort"
	"strings"

	"botlog/pkg/logx"
)

// SummarizeConfigChange returns the changed top-level sections and safe
// structured attrs for logging. Tokens are never included.
func SummarizeConfigChange(oldCfg, newCfg *Config) ([]string, []logx.Field) {
	if oldCfg == nil {
		oldCfg = &Config{}
	}
	if newCfg == nil {
		newCfg = &Config{}
	}

	changed := make([]string, 0, 2)
	attrs := make([]logx.Field, 0, 12)

	oldL := oldCfg.LogxConfig()
	newL := newCfg.LogxConfig()
	if oldL != newL {
		changed = append(changed, "logging")
		attrs = append(attrs,
			logx.Bool("logging.debug", newL.Debug),
			logx.String("logging.console_level", newL.ConsoleLevel),
			logx.String("logging.file_level", newL.FileLevel),
			logx.Bool("logging.file_set", newL.File.Path != ""),
			logx.Bool("logging.telegram_enabled", newL.Chat.Enabled),
			logx.Bool("logging.journal_enabled", newL.Journal.Enabled),
		)
	}

	// Telegram (never log token)
	oldT, newT := oldCfg.Telegram, newCfg.Telegram
	if strings.TrimSpace(oldT.PollTimeout) != strings.TrimSpace(newT.PollTimeout) ||
		strings.TrimSpace(oldT.GroupLog) != strings.TrimSpace(newT.GroupLog) ||
		oldT.Token != newT.Token {
		changed = append(changed, "telegram")
		attrs = append(attrs,
			logx.String("telegram.poll_timeout", strings.TrimSpace(newT.PollTimeout)),
			logx.Bool("telegram.group_log_set", strings.TrimSpace(newT.GroupLog) != ""),
			logx.Bool("telegram.token_changed", oldT.Token != newT.Token),
		)
	}

	sort.Strings(changed)
	return changed, attrs
}
