// Package logx configures a chat bot's structured logging.
//
// It is a small wrapper (logx.Logger) on top of zerolog that keeps:
//   - Console output as one readable line per record, level tag coloured
//   - File output in the same line format, appended (optionally rotated)
//   - Per-sink level thresholds, with "none" silencing a sink entirely
//   - Optional chat sink (min-level + rate limiting) and systemd journal sink
//
// Every line has the form
//
//	2006-01-02T15:04:05.000Z [info]: message key=value
//
// and records carrying an error get their stack trace appended on the
// following lines.
//
// A process-wide logger can be registered with SetGlobal and fetched with
// Global, which returns a no-op logger until something is registered. New
// code should prefer passing a Logger explicitly.
package logx
