package logx

import "sync/atomic"

var (
	global    atomic.Pointer[Logger]
	nopGlobal = Nop()
)

// SetGlobal registers l as the process-wide logger. Passing nil clears it.
// Last writer wins; it is meant for bootstrap and test teardown.
func SetGlobal(l *Logger) { global.Store(l) }

// Global returns the registered logger, or a shared no-op logger when none
// is registered, so libraries can log before bootstrap finishes.
func Global() *Logger {
	if l := global.Load(); l != nil {
		return l
	}
	return &nopGlobal
}
