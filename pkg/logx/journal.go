package logx

import (
	"github.com/coreos/go-systemd/v22/journal"
	"github.com/rs/zerolog"
)

// journalWriter sends records to the systemd journal with a priority derived
// from the record level.
type journalWriter struct{}

func (w journalWriter) Write(p []byte) (int, error) {
	return w.WriteLevel(zerolog.NoLevel, p)
}

func (journalWriter) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	rec, err := decodeRecord(level, p)
	if err != nil {
		return len(p), nil
	}
	vars := map[string]string{"BOTLOG_LEVEL": levelName(rec.Level)}
	if err := journal.Send(composeMessage(rec), journalPriority(rec.Level), vars); err != nil {
		return 0, err
	}
	return len(p), nil
}

func journalPriority(l Level) journal.Priority {
	switch {
	case l >= zerolog.ErrorLevel && l != zerolog.NoLevel:
		return journal.PriErr
	case l == zerolog.WarnLevel:
		return journal.PriWarning
	case l == zerolog.InfoLevel, l == zerolog.NoLevel:
		return journal.PriInfo
	default:
		return journal.PriDebug
	}
}
