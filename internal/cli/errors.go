package cli

import "errors"

var (
	ErrInvalidOptions = errors.New("cli.invalid_options")
	ErrSearchFailed   = errors.New("cli.search_failed")
	ErrEncodeFailed   = errors.New("cli.encode_failed")
)

// usageError carries a message meant for the user verbatim.
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

func (e *usageError) Is(target error) bool { return target == ErrInvalidOptions }

func invalid(msg string) error { return &usageError{msg: msg} }
