package logx

import (
	"bytes"
	"io"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const lineTimeFormat = "2006-01-02T15:04:05.000Z07:00"

// Record is one decoded log event.
type Record struct {
	Time    time.Time
	Level   Level
	Message string

	// Err is the attached error's text, Stack its stack trace. Both may be empty.
	Err   string
	Stack string

	Extras map[string]any
}

// FormatLine renders r as
//
//	<time> [<level>]: <message>[ key=value ...][\n<stack>]
//
// When an error with a stack is attached, one trailing " "+Err is removed
// from the message first: callers usually put the error text in the message
// as well, and the stack already starts with it.
func FormatLine(r Record) string {
	return formatLine(r, nil)
}

func formatLine(r Record, tag func(Level, string) string) string {
	var b strings.Builder
	b.WriteString(r.Time.UTC().Format(lineTimeFormat))
	b.WriteString(" [")
	name := levelName(r.Level)
	if tag != nil {
		name = tag(r.Level, name)
	}
	b.WriteString(name)
	b.WriteString("]: ")
	b.WriteString(composeMessage(r))
	return b.String()
}

// composeMessage is everything after the "[level]: " prefix.
func composeMessage(r Record) string {
	msg := r.Message
	extras := r.Extras
	if r.Err != "" {
		if r.Stack != "" {
			msg = strings.TrimSuffix(msg, " "+r.Err)
		} else {
			// No stack to carry the error text; keep it as an extra.
			extras = make(map[string]any, len(r.Extras)+1)
			for k, v := range r.Extras {
				extras[k] = v
			}
			extras[zerolog.ErrorFieldName] = r.Err
		}
	}

	var b strings.Builder
	b.WriteString(msg)
	if len(extras) > 0 {
		keys := make([]string, 0, len(extras))
		for k := range extras {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			b.WriteString(" ")
			b.WriteString(k)
			b.WriteString("=")
			b.WriteString(extraString(extras[k]))
		}
	}
	if r.Stack != "" {
		b.WriteString("\n")
		b.WriteString(r.Stack)
	}
	return b.String()
}

func levelName(l Level) string {
	if l == zerolog.NoLevel {
		return "log"
	}
	return l.String()
}

func extraString(v any) string {
	switch x := v.(type) {
	case string:
		if x == "" || strings.ContainsAny(x, " \t\n\"=") {
			return strconv.Quote(x)
		}
		return x
	case nil:
		return "null"
	case json.Number:
		return x.String()
	default:
		b, err := json.Marshal(x)
		if err != nil {
			return "?"
		}
		return string(b)
	}
}

// decodeRecord turns a zerolog JSON event into a Record. level is the level
// zerolog handed to WriteLevel; NoLevel means "read it from the payload".
//
// Numbers stay json.Number so 64-bit IDs print exactly.
func decodeRecord(level Level, p []byte) (Record, error) {
	var m map[string]any
	dec := json.NewDecoder(bytes.NewReader(p))
	dec.UseNumber()
	if err := dec.Decode(&m); err != nil {
		return Record{}, err
	}
	if m == nil {
		return Record{}, errors.New("event is not a JSON object")
	}

	r := Record{Level: level, Time: time.Now()}
	if s, ok := m[zerolog.LevelFieldName].(string); ok && level == zerolog.NoLevel {
		if l, err := zerolog.ParseLevel(s); err == nil {
			r.Level = l
		}
	}
	if t, ok := parseTime(m[zerolog.TimestampFieldName]); ok {
		r.Time = t
	}
	r.Message, _ = m[zerolog.MessageFieldName].(string)
	r.Err, _ = m[zerolog.ErrorFieldName].(string)
	r.Stack, _ = m[stackFieldName].(string)

	for _, k := range []string{
		zerolog.LevelFieldName,
		zerolog.TimestampFieldName,
		zerolog.MessageFieldName,
		zerolog.ErrorFieldName,
		stackFieldName,
	} {
		delete(m, k)
	}
	if len(m) > 0 {
		r.Extras = m
	}
	return r, nil
}

func parseTime(v any) (time.Time, bool) {
	switch x := v.(type) {
	case string:
		for _, layout := range []string{time.RFC3339Nano, zerolog.TimeFieldFormat} {
			if layout == "" {
				continue
			}
			if t, err := time.Parse(layout, x); err == nil {
				return t, true
			}
		}
	case json.Number:
		if sec, err := x.Int64(); err == nil {
			return time.Unix(sec, 0), true
		}
		if f, err := x.Float64(); err == nil {
			sec := int64(f)
			return time.Unix(sec, int64((f-float64(sec))*1e9)), true
		}
	}
	return time.Time{}, false
}

// ---- Line writer (zerolog sink) ----

// lineWriter renders zerolog events as single log lines. Level filtering is
// left to zerolog.FilteredLevelWriter.
type lineWriter struct {
	mu  sync.Mutex
	out io.Writer
	tag func(Level, string) string
}

func newLineWriter(out io.Writer, tag func(Level, string) string) *lineWriter {
	return &lineWriter{out: out, tag: tag}
}

func (w *lineWriter) Write(p []byte) (int, error) {
	return w.WriteLevel(zerolog.NoLevel, p)
}

func (w *lineWriter) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	rec, err := decodeRecord(level, p)
	var line string
	if err != nil {
		// Not JSON; pass through trimmed.
		line = strings.TrimSpace(string(p))
	} else {
		line = formatLine(rec, w.tag)
	}

	w.mu.Lock()
	_, err = io.WriteString(w.out, line+"\n")
	w.mu.Unlock()
	if err != nil {
		return 0, err
	}
	return len(p), nil
}

func filtered(w zerolog.LevelWriter, level Level) zerolog.LevelWriter {
	return &zerolog.FilteredLevelWriter{Writer: w, Level: level}
}
