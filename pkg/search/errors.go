package search

import "errors"

var (
	ErrOracleStart = errors.New("search.oracle_start")
	ErrAborted     = errors.New("search.aborted")
)
