package logx

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

type stackTracer interface {
	StackTrace() errors.StackTrace
}

// errorStack renders err the way a stack-carrying error prints itself: the
// message first, frames after. Errors built with github.com/pkg/errors keep
// the stack of where they were created; anything else gets the current stack.
// skip is passed to runtime.Callers.
func errorStack(err error, skip int) string {
	var st stackTracer
	if errors.As(err, &st) {
		return strings.TrimSpace(fmt.Sprintf("%s%+v", err.Error(), st.StackTrace()))
	}
	return err.Error() + "\n" + stackTrace(skip, 32)
}

func shortCaller(skip int) string {
	_, file, line, ok := runtime.Caller(skip)
	if !ok || file == "" {
		return ""
	}
	return filepath.Base(file) + ":" + strconv.Itoa(line)
}

func stackTrace(skip, maxFrames int) string {
	if maxFrames <= 0 {
		maxFrames = 16
	}
	pcs := make([]uintptr, maxFrames)
	n := runtime.Callers(skip, pcs)
	frames := runtime.CallersFrames(pcs[:n])
	var b strings.Builder
	i := 0
	for {
		fr, more := frames.Next()
		if fr.File != "" {
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString("    at ")
			b.WriteString(fr.Function)
			b.WriteString(" (")
			b.WriteString(fr.File)
			b.WriteString(":")
			b.WriteString(strconv.Itoa(fr.Line))
			b.WriteString(")")
			i++
		}
		if !more || i >= maxFrames {
			break
		}
	}
	return b.String()
}
