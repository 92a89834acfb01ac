package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/urfave/cli/v3"

	"botlog/internal/config"
	"botlog/internal/transport/telegram"
	"botlog/pkg/describe"
	"botlog/pkg/logx"
)

// session is what every logging command needs: the config manager, the
// logging service and its root logger.
type session struct {
	mgr *config.Manager
	svc *logx.Service
	log logx.Logger
}

func (s *session) Close() {
	logx.SetGlobal(nil)
	_ = s.svc.Close()
}

// setup loads the config (a missing file means defaults), builds the logging
// service and registers its logger globally.
func setup(c *cli.Command) (*session, error) {
	mgr := config.NewManager(c.String("config"))
	cfg, err := mgr.Load()
	if errors.Is(err, fs.ErrNotExist) {
		cfg = &config.Config{}
		mgr.Commit(cfg)
	} else if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	lc := effectiveLogConfig(c, cfg)

	var opts []logx.Option
	var sender *telegram.Sender
	if lc.Chat.Enabled {
		timeout, _ := cfg.Telegram.PollTimeoutOrDefault()
		sender, err = telegram.New(telegram.Config{Token: cfg.Telegram.Token, Timeout: timeout}, logx.NewConsole("warn"))
		if err != nil {
			return nil, fmt.Errorf("telegram sink: %w", err)
		}
		opts = append(opts, logx.WithSender(sender))
	}

	// Bootstrap with the chat sink off so Apply does not warn about a
	// missing target, then set the target and apply the real config.
	boot := lc
	boot.Chat.Enabled = false
	svc, log := logx.New(boot, opts...)
	if sender != nil {
		setChatTarget(svc, cfg)
		svc.Apply(lc)
		log.Debug(describe.LoginMsg(sender.Me()))
	}
	mgr.SetLogger(log)
	logx.SetGlobal(&log)

	return &session{mgr: mgr, svc: svc, log: log}, nil
}

func setChatTarget(svc *logx.Service, cfg *config.Config) {
	if id, err := cfg.Telegram.GroupLogID(); err == nil && id != 0 {
		svc.SetChatTarget(id, cfg.Logging.Telegram.ThreadID)
	}
}

func effectiveLogConfig(c *cli.Command, cfg *config.Config) logx.Config {
	lc := cfg.LogxConfig()
	if c.Bool("debug") {
		lc.Debug = true
	}
	return lc
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
