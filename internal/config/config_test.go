package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"botlog/pkg/logx"
)

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestDecodeJSONAndYAML(t *testing.T) {
	const js = `{
		"logging": {
			"console": {"level": "warn", "color": "never"},
			"file": {"path": "./bot.log", "level": "debug", "max_size_mb": 5},
			"telegram": {"enabled": true, "min_level": "error", "rate_per_sec": 2}
		},
		"telegram": {"token": "t", "group_log": "-100123", "poll_timeout": "30s"}
	}`
	const yml = `
logging:
  console: {level: warn, color: never}
  file: {path: ./bot.log, level: debug, max_size_mb: 5}
  telegram: {enabled: true, min_level: error, rate_per_sec: 2}
telegram:
  token: t
  group_log: "-100123"
  poll_timeout: 30s
`
	fromJSON, err := Decode("config.json", []byte(js))
	if err != nil {
		t.Fatalf("json: %v", err)
	}
	fromYAML, err := Decode("config.yaml", []byte(yml))
	if err != nil {
		t.Fatalf("yaml: %v", err)
	}
	if hashConfig(fromJSON) != hashConfig(fromYAML) {
		t.Fatalf("json and yaml decode differently:\n%+v\n%+v", fromJSON, fromYAML)
	}

	id, err := fromYAML.Telegram.GroupLogID()
	if err != nil || id != -100123 {
		t.Fatalf("GroupLogID() = %d, %v", id, err)
	}
	d, err := fromYAML.Telegram.PollTimeoutOrDefault()
	if err != nil || d != 30*time.Second {
		t.Fatalf("PollTimeoutOrDefault() = %v, %v", d, err)
	}
}

func TestDecodeRejects(t *testing.T) {
	tests := map[string]struct {
		name, body, want string
	}{
		"unknown field":   {"c.json", `{"logging": {"levle": "info"}}`, "unknown field"},
		"unknown yaml":    {"c.yml", "logging:\n  consol: {}\n", "unknown field"},
		"bad level":       {"c.json", `{"logging": {"console": {"level": "loud"}}}`, "unknown level"},
		"bad color":       {"c.json", `{"logging": {"console": {"color": "pink"}}}`, "color"},
		"bad chat id":     {"c.json", `{"telegram": {"group_log": "abc"}}`, "group_log"},
		"chat no target":  {"c.json", `{"logging": {"telegram": {"enabled": true}}}`, "group_log"},
		"bad duration":    {"c.json", `{"telegram": {"poll_timeout": "soon"}}`, "poll_timeout"},
		"trailing object": {"c.json", `{} {}`, ""},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(tt.name, []byte(tt.body))
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestLogxConfigDefaults(t *testing.T) {
	t.Setenv(logx.EnvVar, "production")

	got := (&Config{}).LogxConfig()
	if got != logx.DefaultConfig() {
		t.Fatalf("empty config should map to defaults, got %+v", got)
	}

	off := false
	cfg := &Config{Logging: LoggingConfig{
		Debug:         &off,
		HandleCrashes: &off,
		Console:       LoggingConsole{Level: "none"},
		File:          LoggingFile{Path: " x.log ", Level: "warn", MaxSizeMB: 3},
	}}
	got = cfg.LogxConfig()
	if got.Debug || got.HandleCrashes {
		t.Fatalf("explicit false ignored: %+v", got)
	}
	if got.ConsoleLevel != "none" || got.FileLevel != "warn" || got.File.Path != "x.log" || got.File.Rotate.MaxSizeMB != 3 {
		t.Fatalf("unexpected mapping %+v", got)
	}
}

func TestSummarizeConfigChange(t *testing.T) {
	oldCfg := &Config{Telegram: TelegramConfig{Token: "secret-a"}}
	newCfg := &Config{
		Logging:  LoggingConfig{Console: LoggingConsole{Level: "info"}},
		Telegram: TelegramConfig{Token: "secret-b"},
	}
	changed, attrs := SummarizeConfigChange(oldCfg, newCfg)
	if strings.Join(changed, ",") != "logging,telegram" {
		t.Fatalf("changed = %v", changed)
	}
	if len(attrs) == 0 {
		t.Fatal("expected attrs")
	}
	if changed, _ := SummarizeConfigChange(newCfg, newCfg); len(changed) != 0 {
		t.Fatalf("identical configs reported %v", changed)
	}
}

func TestManagerLoadAndGet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	writeFile(t, path, `{"logging": {"console": {"level": "warn"}}}`)

	m := NewManager(path)
	if m.Get() != nil {
		t.Fatal("Get() before Load should be nil")
	}
	cfg, err := m.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if m.Get() != cfg || cfg.Logging.Console.Level != "warn" {
		t.Fatalf("Get() = %+v", m.Get())
	}

	if _, err := NewManager(filepath.Join(t.TempDir(), "missing.json")).Load(); err == nil {
		t.Fatal("missing file should fail")
	}
}

func TestManagerReloadPublishesChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	writeFile(t, path, `{"logging": {"console": {"level": "warn"}}}`)

	m := NewManager(path)
	if _, err := m.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	ch := m.Subscribe(1)
	defer m.Unsubscribe(ch)

	if m.reload() {
		t.Fatal("unchanged file should not publish")
	}

	writeFile(t, path, `{"logging": {"console": {"level": "info"}}}`)
	if !m.reload() {
		t.Fatal("changed file should publish")
	}
	select {
	case cfg := <-ch:
		if cfg.Logging.Console.Level != "info" {
			t.Fatalf("published %+v", cfg)
		}
	default:
		t.Fatal("nothing published")
	}

	writeFile(t, path, `{"logging": {"console": {"level": "loud"}}}`)
	if m.reload() {
		t.Fatal("invalid file should not publish")
	}
	if m.Get().Logging.Console.Level != "info" {
		t.Fatal("invalid file should keep the previous config")
	}
}

func TestPublishKeepsNewest(t *testing.T) {
	m := NewManager("unused.json")
	ch := m.Subscribe(1)
	a, b := &Config{}, &Config{}
	m.publish(a)
	m.publish(b)
	if got := <-ch; got != b {
		t.Fatal("slow subscriber should receive the newest config")
	}
	m.Unsubscribe(ch)
	if _, ok := <-ch; ok {
		t.Fatal("Unsubscribe should close the channel")
	}
}

func TestManagerWatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "logging:\n  console: {level: warn}\n")

	m := NewManager(path)
	if _, err := m.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	ch := m.Subscribe(4)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.Watch(ctx) }()
	defer func() {
		cancel()
		<-done
	}()

	// Keep rewriting, slower than the debounce, until the watcher has seen a change.
	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(2 * reloadDebounce)
	defer tick.Stop()
	for {
		select {
		case cfg := <-ch:
			if cfg.Logging.Console.Level != "debug" {
				t.Fatalf("published %+v", cfg)
			}
			return
		case <-tick.C:
			writeFile(t, path, "logging:\n  console: {level: debug}\n")
		case <-deadline:
			t.Fatal("watch did not publish the change")
		}
	}
}
