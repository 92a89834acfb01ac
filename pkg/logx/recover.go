package logx

import (
	"fmt"
	"runtime/debug"
)

func (l Logger) handlesCrashes() bool {
	return l.svc != nil && l.svc.crashes.Load()
}

// Recover logs a panic at error level and stops it. Use it deferred:
//
//	defer log.Recover()
//
// When the service was configured without HandleCrashes the panic continues
// unwinding untouched.
func (l Logger) Recover() {
	r := recover()
	if r == nil {
		return
	}
	if !l.handlesCrashes() {
		panic(r)
	}
	l.Error(fmt.Sprintf("Unhandled panic: %v", r), Stack(string(debug.Stack())))
}

// Go runs fn in a new goroutine. A returned error is logged as an unhandled
// goroutine error and a panic as in Recover. The channel closes when fn is done.
func (l Logger) Go(fn func() error) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		defer l.Recover()
		if err := fn(); err != nil && l.handlesCrashes() {
			l.Error("Unhandled goroutine error: "+err.Error(), Err(err))
		}
	}()
	return done
}
