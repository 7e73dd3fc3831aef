package httpserver

import "errors"

var (
	// ErrStart wraps listen failures, a busy port being the usual one.
	ErrStart = errors.New("httpserver.start_failed")
	// ErrShutdown wraps errors from a graceful shutdown that had to be forced.
	ErrShutdown = errors.New("httpserver.shutdown_failed")
	// ErrNotStarted is returned by Addr before Start succeeded.
	ErrNotStarted = errors.New("httpserver.not_started")
)
