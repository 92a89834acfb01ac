package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"botlog/internal/config"
	"botlog/pkg/describe"
	"botlog/pkg/logx"
)

func checkCommand() *cli.Command {
	return &cli.Command{
		Name:  "check",
		Usage: "Validate the config file and print the effective logging setup",
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg, err := config.NewManager(c.String("config")).Load()
			if err != nil {
				return err
			}
			lc := effectiveLogConfig(c, cfg)
			fmt.Fprintln(c.Root().Writer, describe.StartupMsg(c.Root().Version, summary(cfg, lc)))
			return nil
		},
	}
}

// summary is the effective setup; StartupMsg redacts the token.
func summary(cfg *config.Config, lc logx.Config) map[string]any {
	return map[string]any{
		"production": logx.Production(),
		"debug":      lc.Debug,
		"console":    lc.ConsoleLevel,
		"file":       map[string]any{"path": lc.File.Path, "level": lc.FileLevel, "rotate_mb": lc.File.Rotate.MaxSizeMB},
		"chat":       map[string]any{"enabled": lc.Chat.Enabled, "min_level": lc.Chat.MinLevel, "group_log": cfg.Telegram.GroupLog},
		"journal":    lc.Journal.Enabled,
		"token":      cfg.Telegram.Token,
	}
}
