package logx

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/coreos/go-systemd/v22/journal"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
	"gopkg.in/natefinch/lumberjack.v2"

	"botlog/internal/transport"
)

const timeFieldFormat = time.RFC3339Nano

// ---- Service (dynamic config + sinks) ----

type Service struct {
	mu  sync.Mutex
	cfg Config

	root atomic.Value // stores zerolog.Logger

	console io.Writer
	file    io.WriteCloser
	// fileOut outlives reloads so loggers holding an old root follow the
	// current file.
	fileOut fileSink
	// crashFile is set while the runtime mirrors fatal crashes into it.
	crashFile *os.File

	caller  atomic.Bool
	crashes atomic.Bool

	// chat logging
	sender     transport.Sender
	chatQueue  chan chatItem
	chatOnce   sync.Once
	chatCancel context.CancelFunc
	chatWG     sync.WaitGroup

	// guarded by mu
	chatID   int64
	threadID int
	limiter  *rate.Limiter
}

// Option customizes a Service at construction time.
type Option func(*Service)

// WithConsole replaces stdout as the console sink.
func WithConsole(w io.Writer) Option {
	return func(s *Service) {
		if w != nil {
			s.console = w
		}
	}
}

// WithSender sets the transport used by the chat sink.
func WithSender(sender transport.Sender) Option {
	return func(s *Service) { s.sender = sender }
}

// New creates the logging service, applies the initial config immediately,
// and returns both the Service and a root Logger.
func New(cfg Config, opts ...Option) (*Service, Logger) {
	// Global zerolog knobs.
	zerolog.ErrorFieldName = "err"
	zerolog.TimeFieldFormat = timeFieldFormat

	s := &Service{
		console:   os.Stdout,
		chatQueue: make(chan chatItem, 256),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	// Safe bootstrap root.
	s.root.Store(zerolog.Nop())

	// Apply immediately.
	s.Apply(cfg)

	return s, Logger{svc: s}
}

func (s *Service) current() zerolog.Logger {
	v := s.root.Load()
	if v == nil {
		return zerolog.Nop()
	}
	zl, ok := v.(zerolog.Logger)
	if !ok {
		return zerolog.Nop()
	}
	return zl
}

func (s *Service) Logger() Logger { return Logger{svc: s} }

// Config returns the config most recently applied.
func (s *Service) Config() Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg
}

func (s *Service) SetChatTarget(chatID int64, threadID int) {
	s.mu.Lock()
	s.chatID = chatID
	if threadID != 0 {
		s.threadID = threadID
	}
	s.mu.Unlock()
}

func (s *Service) Close() error {
	s.mu.Lock()
	cancel := s.chatCancel
	s.chatCancel = nil
	s.root.Store(zerolog.Nop())
	s.fileOut.swap(nil)
	err := s.closeFileLocked()
	s.mu.Unlock()

	if cancel != nil {
		cancel()
		s.chatWG.Wait()
	}
	return err
}

// Apply swaps logger outputs/levels at runtime.
// It is safe to call concurrently.
func (s *Service) Apply(cfg Config) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cfg = cfg
	s.caller.Store(cfg.Caller)
	s.crashes.Store(cfg.HandleCrashes)

	// Update chat knobs.
	rps := max(1, cfg.Chat.RatePerSec)
	s.limiter = rate.NewLimiter(rate.Limit(rps), rps)
	if cfg.Chat.ThreadID != 0 {
		s.threadID = cfg.Chat.ThreadID
	}

	// The previous file stays open until the new root is stored.
	prevFile, prevCrash := s.file, s.crashFile
	s.file, s.crashFile = nil, nil
	defer func() { _ = s.releaseFileLocked(prevFile, prevCrash) }()

	writers := make([]io.Writer, 0, 4)
	levels := make([]Level, 0, 4)
	add := func(w zerolog.LevelWriter, lvl Level) {
		writers = append(writers, filtered(w, lvl))
		levels = append(levels, lvl)
	}

	if lvl := cfg.consoleLevel(); lvl != zerolog.Disabled {
		add(newLineWriter(s.console, levelTagger(s.console, cfg.Color)), lvl)
	}

	// A silenced file sink never creates the file.
	if path := strings.TrimSpace(cfg.File.Path); path != "" {
		if lvl := cfg.fileLevel(); lvl != zerolog.Disabled {
			if err := s.openFileLocked(path, cfg); err != nil {
				fmt.Fprintf(os.Stderr, "logx: failed opening log file %q: %v\n", path, err)
			} else {
				add(newLineWriter(&s.fileOut, nil), lvl)
			}
		}
	}

	if cfg.Chat.Enabled && s.sender != nil {
		// Start worker once.
		s.chatOnce.Do(func() {
			ctx, cancel := context.WithCancel(context.Background())
			s.chatCancel = cancel
			s.chatWG.Add(1)
			go func() {
				defer s.chatWG.Done()
				s.chatWorker(ctx)
			}()
		})
		add(&chatWriter{svc: s}, cfg.chatLevel())
		if s.chatID == 0 {
			fmt.Fprintln(os.Stderr, "logx: chat logging enabled but no chat target is set")
		}
	}

	if cfg.Journal.Enabled {
		if journal.Enabled() {
			add(journalWriter{}, cfg.journalLevel())
		} else {
			fmt.Fprintln(os.Stderr, "logx: journal logging enabled but journald is not reachable")
		}
	}

	lvl, ok := minLevel(levels...)
	if !ok {
		s.root.Store(zerolog.Nop())
		return
	}

	mw := zerolog.MultiLevelWriter(writers...)
	zl := zerolog.New(mw).Level(lvl).With().Timestamp().Logger()
	// Store as current root.
	s.root.Store(zl)
}

func (s *Service) openFileLocked(path string, cfg Config) error {
	if rot := cfg.File.Rotate; rot.enabled() {
		lj := &lumberjack.Logger{
			Filename:   path,
			MaxSize:    rot.MaxSizeMB,
			MaxBackups: rot.MaxBackups,
			MaxAge:     rot.MaxAgeDays,
			Compress:   rot.Compress,
		}
		s.file = lj
		return nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	s.file = f
	if cfg.HandleCrashes {
		if err := debug.SetCrashOutput(f, debug.CrashOptions{}); err != nil {
			fmt.Fprintf(os.Stderr, "logx: crash output not redirected: %v\n", err)
		} else {
			s.crashFile = f
		}
	}
	return nil
}

// releaseFileLocked points the file sink at the file Apply just opened and
// closes the one it replaced.
func (s *Service) releaseFileLocked(prev io.Closer, prevCrash *os.File) error {
	var next io.Writer
	if s.file != nil {
		next = s.file
	}
	s.fileOut.swap(next)
	if prevCrash != nil && s.crashFile == nil {
		_ = debug.SetCrashOutput(nil, debug.CrashOptions{})
	}
	if prev == nil {
		return nil
	}
	return prev.Close()
}

func (s *Service) closeFileLocked() error {
	if s.crashFile != nil {
		_ = debug.SetCrashOutput(nil, debug.CrashOptions{})
		s.crashFile = nil
	}
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}

// fileSink forwards to the current log file. Writes with no file are dropped.
type fileSink struct {
	mu sync.Mutex
	w  io.Writer
}

func (f *fileSink) Write(p []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.w == nil {
		return len(p), nil
	}
	return f.w.Write(p)
}

func (f *fileSink) swap(w io.Writer) {
	f.mu.Lock()
	f.w = w
	f.mu.Unlock()
}
