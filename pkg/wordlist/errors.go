package wordlist

import "errors"

var (
	ErrNotFound = errors.New("wordlist.not_found")
	ErrRead     = errors.New("wordlist.read")
)
