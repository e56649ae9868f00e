// Package sstverr defines the typed error values that cross component
// boundaries in the codec core.
package sstverr

import "fmt"

// ConfigError reports a fatal construction-time problem: an image whose
// dimensions do not match the mode, or a scan event the encoder does not
// recognize.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string { return "sstv: config error: " + e.Reason }

func NewConfigError(format string, args ...any) *ConfigError {
	return &ConfigError{Reason: fmt.Sprintf(format, args...)}
}

// IoError wraps a source/sink failure. The pipeline aborts on this error.
type IoError struct {
	Op  string
	Err error
}

func (e *IoError) Error() string { return fmt.Sprintf("sstv: io error during %s: %v", e.Op, e.Err) }
func (e *IoError) Unwrap() error { return e.Err }

func NewIoError(op string, err error) *IoError {
	return &IoError{Op: op, Err: err}
}

// SignalError reports a demodulation failure: no non-silence detected, or a
// decoded VIS code with no registered mode (BestGuessVIS holds that code). A
// VIS parity mismatch is not an error; it is reported through the decode
// result's ParityOK flag. Sync loss is not detected as an error.
type SignalError struct {
	Reason       string
	Fatal        bool // decoding stopped; no image is returned with the error
	ParityOK     bool
	BestGuessVIS uint8
}

func (e *SignalError) Error() string { return "sstv: signal error: " + e.Reason }

func NewSignalError(fatal bool, format string, args ...any) *SignalError {
	return &SignalError{Reason: fmt.Sprintf(format, args...), Fatal: fatal}
}

// ErrNoSync is returned by the parser when no non-silence is detected within
// the scan budget. Once non-silence is found, the parser reads one VIS block
// and does not scan further for another.
var ErrNoSync = NewSignalError(true, "no non-silence detected within scan budget")
