package sample

import "errors"

var (
	ErrDuplicateGroup = errors.New("sample.duplicate_group")
	ErrEmptyGroupName = errors.New("sample.empty_group_name")
	ErrInvalidBatch   = errors.New("sample.invalid_batch")
	ErrReadBatch      = errors.New("sample.read_batch")
)
