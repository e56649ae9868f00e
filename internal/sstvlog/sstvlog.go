// Package sstvlog declares the narrow logging interface internal/* packages
// depend on, so the core codec never imports a concrete logging library
// directly. cmd/sstv supplies a concrete implementation backed by
// github.com/charmbracelet/log.
package sstvlog

// Logger is the subset of charmbracelet/log.Logger's method set that the
// codec core actually calls.
type Logger interface {
	Debug(msg string, keyvals ...any)
	Info(msg string, keyvals ...any)
	Warn(msg string, keyvals ...any)
}

// Nop is a Logger that discards everything, used where the caller supplies
// no logger.
type Nop struct{}

func (Nop) Debug(string, ...any) {}
func (Nop) Info(string, ...any)  {}
func (Nop) Warn(string, ...any)  {}
