package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"
)

var version = "dev"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	app := &cli.Command{
		Name:    "botlog",
		Usage:   "Bot logging helpers: emit, pipe and describe log lines",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "Configuration file path (JSON or YAML)",
				Value:   "./botlog.yaml",
				Sources: cli.EnvVars("BOTLOG_CONFIG"),
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Force every sink to debug level",
			},
		},
		Commands: []*cli.Command{
			emitCommand(),
			pipeCommand(),
			describeCommand(),
			checkCommand(),
		},
	}

	if err := app.Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "fatal:", err)
		os.Exit(1)
	}
}
