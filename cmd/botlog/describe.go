package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/bwmarrin/discordgo"
	json "github.com/goccy/go-json"
	"github.com/urfave/cli/v3"
	tele "gopkg.in/telebot.v4"

	"botlog/pkg/describe"
)

// describeKinds maps --kind values to the object JSON is decoded into.
var describeKinds = map[string]func() any{
	"application": func() any { return &discordgo.Application{} },
	"channel":     func() any { return &discordgo.Channel{} },
	"emoji":       func() any { return &discordgo.Emoji{} },
	"guild":       func() any { return &discordgo.Guild{} },
	"interaction": func() any { return &discordgo.Interaction{} },
	"member":      func() any { return &discordgo.Member{} },
	"message":     func() any { return &discordgo.Message{} },
	"reaction":    func() any { return &discordgo.MessageReaction{} },
	"role":        func() any { return &discordgo.Role{} },
	"user":        func() any { return &discordgo.User{} },
	"tg-message":  func() any { return &tele.Message{} },
	"tg-user":     func() any { return &tele.User{} },
	"tg-chat":     func() any { return &tele.Chat{} },
	"tg-callback": func() any { return &tele.Callback{} },
}

func kindNames() string {
	names := make([]string, 0, len(describeKinds))
	for k := range describeKinds {
		names = append(names, k)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

func describeCommand() *cli.Command {
	return &cli.Command{
		Name:      "describe",
		Usage:     "Print the log form of a Discord or Telegram object read as JSON",
		ArgsUsage: "[FILE]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "kind",
				Usage:    "Object kind: " + kindNames(),
				Required: true,
			},
			&cli.BoolFlag{
				Name:  "detail",
				Usage: "Also print the detailed form",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			var r io.Reader = os.Stdin
			if path := c.Args().First(); path != "" && path != "-" {
				f, err := os.Open(path)
				if err != nil {
					return err
				}
				defer f.Close()
				r = f
			}
			data, err := io.ReadAll(r)
			if err != nil {
				return err
			}

			short, detail, err := describeJSON(c.String("kind"), data)
			if err != nil {
				return err
			}
			fmt.Fprintln(c.Root().Writer, short)
			if c.Bool("detail") {
				fmt.Fprintln(c.Root().Writer, detail)
			}
			return nil
		},
	}
}

func describeJSON(kind string, data []byte) (string, string, error) {
	mk, ok := describeKinds[strings.ToLower(strings.TrimSpace(kind))]
	if !ok {
		return "", "", fmt.Errorf("unknown kind %q (want one of %s)", kind, kindNames())
	}
	v := mk()
	if err := json.Unmarshal(data, v); err != nil {
		return "", "", fmt.Errorf("decoding %s: %w", kind, err)
	}
	return describe.Stringify(v), describe.Detail(v), nil
}
