package oracle

import "errors"

var (
	ErrInvalidConfig     = errors.New("oracle.invalid_config")
	ErrInvalidPayload    = errors.New("oracle.invalid_payload")
	ErrMalformedResponse = errors.New("oracle.malformed_response")
	ErrRequest           = errors.New("oracle.request_failed")
)
