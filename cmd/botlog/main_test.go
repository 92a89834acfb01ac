package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"botlog/internal/config"
	"botlog/pkg/describe"
	"botlog/pkg/logx"
)

func TestSplitLevelPrefix(t *testing.T) {
	tests := []struct {
		line    string
		wantLvl logx.Level
		wantMsg string
	}{
		{"[warn] disk almost full", logx.LevelWarn, "disk almost full"},
		{"[ERROR]: boom", logx.LevelError, "boom"},
		{"debug: cache miss", logx.LevelDebug, "cache miss"},
		{"plain line", logx.LevelInfo, "plain line"},
		{"http://example.com is down", logx.LevelInfo, "http://example.com is down"},
		{"[shard 1] ready", logx.LevelInfo, "[shard 1] ready"},
		{"[none] hidden", logx.LevelInfo, "[none] hidden"},
		{"note: something", logx.LevelInfo, "note: something"},
	}
	for _, tt := range tests {
		lvl, msg := splitLevelPrefix(tt.line, logx.LevelInfo)
		if lvl != tt.wantLvl || msg != tt.wantMsg {
			t.Errorf("splitLevelPrefix(%q) = %v, %q; want %v, %q", tt.line, lvl, msg, tt.wantLvl, tt.wantMsg)
		}
	}
}

func TestPipeLines(t *testing.T) {
	var console bytes.Buffer
	svc, log := logx.New(logx.Config{ConsoleLevel: "info", Color: "never"}, logx.WithConsole(&console))
	t.Cleanup(func() { _ = svc.Close() })

	in := strings.NewReader("first\n\n[error] second\ndebug: hidden\n")
	if err := pipeLines(context.Background(), in, log, logx.LevelInfo); err != nil {
		t.Fatalf("pipeLines: %v", err)
	}

	out := console.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2: %q", len(lines), out)
	}
	if !strings.HasSuffix(lines[0], "[info]: first") || !strings.HasSuffix(lines[1], "[error]: second") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestDescribeJSON(t *testing.T) {
	short, detail, err := describeJSON("user", []byte(`{"id":"123456789012345678","username":"nelly","discriminator":"0"}`))
	if err != nil {
		t.Fatalf("describeJSON: %v", err)
	}
	if short != "User 123456789012345678" {
		t.Fatalf("short = %q", short)
	}
	if detail != short {
		t.Fatalf("users have no detailed form, got %q", detail)
	}

	if _, _, err := describeJSON("spaceship", []byte(`{}`)); err == nil || !strings.Contains(err.Error(), "unknown kind") {
		t.Fatalf("unknown kind error = %v", err)
	}
	if _, _, err := describeJSON("user", []byte(`{`)); err == nil {
		t.Fatal("broken JSON should fail")
	}
}

func TestSummaryRedactsToken(t *testing.T) {
	cfg := &config.Config{Telegram: config.TelegramConfig{Token: "123:abc"}}
	msg := describe.StartupMsg("1.2.3", summary(cfg, cfg.LogxConfig()))
	if strings.Contains(msg, "123:abc") {
		t.Fatalf("token leaked: %q", msg)
	}
	if !strings.HasPrefix(msg, "Bot is starting version 1.2.3 with config ") || !strings.Contains(msg, describe.Redacted) {
		t.Fatalf("unexpected message %q", msg)
	}
}
