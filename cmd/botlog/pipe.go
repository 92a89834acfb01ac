package main

import (
	"bufio"
	"context"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"botlog/internal/config"
	"botlog/pkg/logx"
)

func pipeCommand() *cli.Command {
	return &cli.Command{
		Name:  "pipe",
		Usage: "Log every stdin line; levels follow config file edits",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "level",
				Usage: "Level for lines without a [level] prefix",
				Value: "info",
			},
			&cli.BoolFlag{
				Name:  "watch",
				Usage: "Reload the config file when it changes",
				Value: true,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			rt, err := setup(c)
			if err != nil {
				return err
			}
			defer rt.Close()

			ctx, cancel := context.WithCancel(ctx)
			defer cancel()

			if c.Bool("watch") && exists(rt.mgr.Path()) {
				updates := rt.mgr.Subscribe(1)
				defer rt.mgr.Unsubscribe(updates)
				rt.log.Go(func() error { return rt.mgr.Watch(ctx) })
				rt.log.Go(func() error {
					applyUpdates(ctx, c, rt.svc, updates)
					return nil
				})
			}

			return pipeLines(ctx, os.Stdin, rt.log, logx.ParseLevel(c.String("level"), logx.LevelInfo))
		},
	}
}

func applyUpdates(ctx context.Context, c *cli.Command, svc *logx.Service, updates <-chan *config.Config) {
	for {
		select {
		case <-ctx.Done():
			return
		case cfg, ok := <-updates:
			if !ok {
				return
			}
			// Target first, so Apply does not warn when the chat sink turns on.
			setChatTarget(svc, cfg)
			svc.Apply(effectiveLogConfig(c, cfg))
		}
	}
}

func pipeLines(ctx context.Context, r io.Reader, log logx.Logger, def logx.Level) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		if ctx.Err() != nil {
			return nil
		}
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		lvl, msg := splitLevelPrefix(line, def)
		log.Log(lvl, msg)
	}
	return sc.Err()
}

// splitLevelPrefix reads an optional "[level] " or "level: " prefix.
func splitLevelPrefix(line string, def logx.Level) (logx.Level, string) {
	var name, rest string
	switch {
	case strings.HasPrefix(line, "["):
		end := strings.Index(line, "]")
		if end < 0 {
			return def, line
		}
		name, rest = line[1:end], line[end+1:]
		rest = strings.TrimPrefix(rest, ":")
	default:
		var ok bool
		name, rest, ok = strings.Cut(line, ":")
		if !ok || strings.ContainsAny(name, " \t") || (rest != "" && !strings.HasPrefix(rest, " ")) {
			return def, line
		}
	}
	// A prefix only counts when it names a level.
	if logx.ParseLevel(name, logx.LevelTrace) != logx.ParseLevel(name, logx.LevelError) {
		return def, line
	}
	lvl := logx.ParseLevel(name, def)
	if lvl == logx.LevelNone {
		return def, line
	}
	return lvl, strings.TrimSpace(rest)
}
