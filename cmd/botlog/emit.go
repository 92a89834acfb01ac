package main

import (
	"context"
	"errors"
	"strings"

	"github.com/urfave/cli/v3"

	"botlog/pkg/logx"
)

func emitCommand() *cli.Command {
	return &cli.Command{
		Name:      "emit",
		Usage:     "Log one message through the configured sinks",
		ArgsUsage: "MESSAGE...",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "level",
				Usage: "Record level (trace, debug, info, warn, error)",
				Value: "info",
			},
			&cli.StringFlag{
				Name:  "err",
				Usage: "Attach an error with this text; its stack trace is logged too",
			},
			&cli.StringSliceFlag{
				Name:  "field",
				Usage: "Extra key=value field, repeatable",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			rt, err := setup(c)
			if err != nil {
				return err
			}
			defer rt.Close()

			msg := strings.Join(c.Args().Slice(), " ")
			fields := parseFields(c.StringSlice("field"))
			if e := c.String("err"); e != "" {
				fields = append(fields, logx.Err(errors.New(e)))
				msg = strings.TrimSpace(msg + " " + e)
			}
			rt.log.Log(logx.ParseLevel(c.String("level"), logx.LevelInfo), msg, fields...)
			return nil
		},
	}
}

// parseFields turns key=value pairs into string fields. Pairs without "="
// become key=true.
func parseFields(pairs []string) []logx.Field {
	out := make([]logx.Field, 0, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		if !ok {
			out = append(out, logx.Bool(k, true))
			continue
		}
		out = append(out, logx.String(k, v))
	}
	return out
}
