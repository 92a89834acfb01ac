package logx

import (
	"bytes"
	stderrors "errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

func TestMain(m *testing.M) {
	zerolog.ErrorFieldName = "err"
	os.Exit(m.Run())
}

const testLine = "This is a test log line"

// 2023-05-02T04:52:52.319Z [info]: This is a test log line
var linePattern = regexp.MustCompile(`^\d+-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d{3}Z \[\w+\]: ` + testLine + `$`)

func newTestLogger(t *testing.T, cfg Config) (Logger, *bytes.Buffer) {
	t.Helper()
	if cfg.Color == "" {
		cfg.Color = "never"
	}
	var console bytes.Buffer
	svc, log := New(cfg, WithConsole(&console))
	t.Cleanup(func() { _ = svc.Close() })
	return log, &console
}

func splitLines(s string) []string {
	var out []string
	for _, l := range strings.Split(s, "\n") {
		if l != "" {
			out = append(out, l)
		}
	}
	return out
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	b, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	return splitLines(string(b))
}

func TestLogOutputMatchesFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")
	log, _ := newTestLogger(t, Config{File: FileConfig{Path: path}, ConsoleLevel: "none"})

	log.Info(testLine)

	lines := readLines(t, path)
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1: %q", len(lines), lines)
	}
	if !linePattern.MatchString(lines[0]) {
		t.Fatalf("line %q does not match %s", lines[0], linePattern)
	}
}

func TestErrorOutputMatchesFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")
	log, _ := newTestLogger(t, Config{File: FileConfig{Path: path}, ConsoleLevel: "none"})

	testErr := errors.New("test error")
	log.Error(testLine+" "+testErr.Error(), Err(testErr))

	lines := readLines(t, path)
	if len(lines) <= 2 {
		t.Fatalf("got %d lines, want a stack trace: %q", len(lines), lines)
	}
	if !linePattern.MatchString(lines[0]) {
		t.Fatalf("line %q does not match %s", lines[0], linePattern)
	}
	stack := strings.Join(lines[1:], "\n")
	if !strings.HasPrefix(stack, "test error\n") {
		t.Fatalf("stack should start with the error text, got %q", stack)
	}
	if !strings.Contains(stack, "TestErrorOutputMatchesFormat") {
		t.Fatalf("stack should point at the test, got %q", stack)
	}
}

func TestErrorWithoutStackCarrier(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")
	log, _ := newTestLogger(t, Config{File: FileConfig{Path: path}, ConsoleLevel: "none"})

	log.Error(testLine+": boom", Err(stderrors.New("boom")))

	lines := readLines(t, path)
	if len(lines) < 3 {
		t.Fatalf("got %d lines, want a stack trace: %q", len(lines), lines)
	}
	if !strings.HasSuffix(lines[0], "[error]: "+testLine+":") {
		t.Fatalf("error text not stripped from %q", lines[0])
	}
	if lines[1] != "boom" {
		t.Fatalf("stack should start with the error text, got %q", lines[1])
	}
	if !strings.Contains(strings.Join(lines[2:], "\n"), "logger_test.go") {
		t.Fatalf("stack should point at the call site: %q", lines[2:])
	}
}

func TestConsoleDefaultsErrorFileDefaultsInfo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")
	log, console := newTestLogger(t, Config{File: FileConfig{Path: path}, Debug: false})

	log.Error(testLine)
	log.Warn(testLine)
	log.Info(testLine)
	log.Debug(testLine)

	consoleLines := splitLines(console.String())
	if len(consoleLines) != 1 {
		t.Fatalf("console got %d lines, want 1: %q", len(consoleLines), consoleLines)
	}
	if !strings.Contains(consoleLines[0], "[error]") {
		t.Fatalf("console line %q is not the error", consoleLines[0])
	}

	fileLines := readLines(t, path)
	if len(fileLines) != 3 {
		t.Fatalf("file got %d lines, want 3: %q", len(fileLines), fileLines)
	}
	for i, lvl := range []string{"error", "warn", "info"} {
		if !strings.Contains(fileLines[i], "["+lvl+"]") {
			t.Fatalf("file line %d = %q, want level %s", i, fileLines[i], lvl)
		}
	}
}

func TestLevelNoneDisablesOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")
	log, console := newTestLogger(t, Config{
		File:         FileConfig{Path: path},
		FileLevel:    "none",
		ConsoleLevel: "none",
	})

	log.Error(testLine)
	log.Info(testLine)

	if console.Len() != 0 {
		t.Fatalf("console got output: %q", console.String())
	}
	if lines := readLines(t, path); len(lines) != 0 {
		t.Fatalf("file got output: %q", lines)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("silenced file sink should not create the file, stat err = %v", err)
	}
	if log.Enabled(LevelError) {
		t.Fatal("Enabled(error) = true with every sink silenced")
	}
}

func TestDebugPrintsEverywhere(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")
	log, console := newTestLogger(t, Config{
		File:         FileConfig{Path: path},
		Debug:        true,
		ConsoleLevel: "error",
		FileLevel:    "none",
	})

	log.Error(testLine)
	log.Warn(testLine)
	log.Info(testLine)
	log.Debug(testLine)

	consoleLines := splitLines(console.String())
	fileLines := readLines(t, path)
	if len(consoleLines) != 4 || len(fileLines) != 4 {
		t.Fatalf("got %d console and %d file lines, want 4 each", len(consoleLines), len(fileLines))
	}
	for i, lvl := range []string{"error", "warn", "info", "debug"} {
		if !strings.Contains(consoleLines[i], "["+lvl+"]") {
			t.Fatalf("console line %d = %q, want level %s", i, consoleLines[i], lvl)
		}
		if !strings.Contains(fileLines[i], "["+lvl+"]") {
			t.Fatalf("file line %d = %q, want level %s", i, fileLines[i], lvl)
		}
	}
}

func TestExtrasAndCaller(t *testing.T) {
	log, console := newTestLogger(t, Config{ConsoleLevel: "info", Caller: true})

	log.With(String("comp", "bot")).Info("hello", Int("n", 2), String("note", "two words"))

	line := strings.TrimSpace(console.String())
	if !strings.Contains(line, `[info]: hello caller=logger_test.go:`) {
		t.Fatalf("caller missing from %q", line)
	}
	if !strings.HasSuffix(line, ` comp=bot n=2 note="two words"`) {
		t.Fatalf("extras not rendered sorted in %q", line)
	}
}

func TestApplySwapsLevels(t *testing.T) {
	var console bytes.Buffer
	svc, log := New(Config{ConsoleLevel: "error", Color: "never"}, WithConsole(&console))
	t.Cleanup(func() { _ = svc.Close() })

	log.Info("before")
	svc.Apply(Config{ConsoleLevel: "info", Color: "never"})
	log.Info("after")

	lines := splitLines(console.String())
	if len(lines) != 1 || !strings.HasSuffix(lines[0], "[info]: after") {
		t.Fatalf("got %q, want only the line logged after Apply", lines)
	}
	if got := svc.Config().ConsoleLevel; got != "info" {
		t.Fatalf("Config().ConsoleLevel = %q, want info", got)
	}
}

func TestConsoleColor(t *testing.T) {
	log, console := newTestLogger(t, Config{ConsoleLevel: "error", Color: "always"})
	log.Error(testLine)
	if !strings.Contains(console.String(), "\x1b[") {
		t.Fatalf("expected ANSI colour in %q", console.String())
	}
	if !strings.Contains(console.String(), "error") {
		t.Fatalf("level name missing from %q", console.String())
	}
}

func TestRotatingFileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rotating.log")
	log, _ := newTestLogger(t, Config{
		File:         FileConfig{Path: path, Rotate: RotateConfig{MaxSizeMB: 1, MaxBackups: 1}},
		ConsoleLevel: "none",
	})

	log.Info(testLine)

	lines := readLines(t, path)
	if len(lines) != 1 || !linePattern.MatchString(lines[0]) {
		t.Fatalf("got %q, want one formatted line", lines)
	}
}

func TestZeroLoggerIsNop(t *testing.T) {
	var log Logger
	if !log.IsZero() {
		t.Fatal("zero Logger should report IsZero")
	}
	log.Error("nobody hears this", Err(stderrors.New("x")))
	if log.Enabled(LevelError) {
		t.Fatal("zero Logger should not be enabled")
	}
}

func TestLargeIDsSurviveTheFileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")
	log, _ := newTestLogger(t, Config{File: FileConfig{Path: path}, ConsoleLevel: "none"})

	log.Info("joined", Int64("guild", 1028556214147223623), Uint64("big", 18446744073709551615))

	lines := readLines(t, path)
	if len(lines) != 1 || !strings.HasSuffix(lines[0], "[info]: joined big=18446744073709551615 guild=1028556214147223623") {
		t.Fatalf("got %q", lines)
	}
}

func TestApplyKeepsFileLinesDuringReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reload.log")
	var console bytes.Buffer
	cfg := Config{File: FileConfig{Path: path}, ConsoleLevel: "none", Color: "never"}
	svc, log := New(cfg, WithConsole(&console))

	const n = 500
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			log.Info(testLine)
		}
	}()

	for i := 0; i < 50; i++ {
		if i%2 == 0 {
			cfg.ConsoleLevel = "error"
		} else {
			cfg.ConsoleLevel = "none"
		}
		svc.Apply(cfg)
	}
	wg.Wait()
	if err := svc.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	lines := readLines(t, path)
	if len(lines) != n {
		t.Fatalf("got %d lines, want %d", len(lines), n)
	}
	for _, l := range lines {
		if !linePattern.MatchString(l) {
			t.Fatalf("line %q does not match %s", l, linePattern)
		}
	}
}
