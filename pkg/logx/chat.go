package logx

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"botlog/internal/transport"
)

const chatMessageLimit = 3500

type chatItem struct {
	to  transport.ChatTarget
	msg string
}

func (s *Service) chatWorker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case it := <-s.chatQueue:
			if s.sender == nil {
				continue
			}
			_, _ = s.sender.SendText(ctx, it.to, it.msg, &transport.SendOptions{DisablePreview: true})
		}
	}
}

func (s *Service) enqueueChatLog(to transport.ChatTarget, msg string) {
	// Never block core logging.
	select {
	case s.chatQueue <- chatItem{to: to, msg: msg}:
	default:
		// drop
	}
}

// ---- Chat writer (zerolog sink) ----

// chatWriter forwards records to a chat. Min level filtering happens in the
// zerolog.FilteredLevelWriter wrapping it.
type chatWriter struct{ svc *Service }

func (w *chatWriter) Write(p []byte) (int, error) {
	return w.WriteLevel(zerolog.NoLevel, p)
}

func (w *chatWriter) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	s := w.svc
	if s == nil {
		return len(p), nil
	}

	s.mu.Lock()
	chatID := s.chatID
	threadID := s.threadID
	lim := s.limiter
	s.mu.Unlock()

	if chatID == 0 || s.sender == nil || lim == nil {
		return len(p), nil
	}
	if !lim.Allow() {
		return len(p), nil
	}

	msg := formatChatMessage(level, p)
	if msg == "" {
		return len(p), nil
	}

	s.enqueueChatLog(transport.ChatTarget{ChatID: chatID, ThreadID: threadID}, msg)
	return len(p), nil
}

func formatChatMessage(level Level, p []byte) string {
	rec, err := decodeRecord(level, p)
	if err != nil {
		// Not JSON; send raw (trimmed), but cap length.
		return truncate(strings.TrimSpace(string(p)), chatMessageLimit)
	}
	// Chats show their own timestamps.
	msg := "[" + strings.ToUpper(levelName(rec.Level)) + "] " + composeMessage(rec)
	return truncate(msg, chatMessageLimit)
}

func truncate(s string, maxN int) string {
	if maxN <= 0 || len(s) <= maxN {
		return s
	}
	cut := maxN
	if maxN >= 10 {
		cut = maxN - 3
	}
	// Never split a multi-byte rune.
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	if maxN < 10 {
		return s[:cut]
	}
	return s[:cut] + "..."
}
