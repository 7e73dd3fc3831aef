package cookie

import "errors"

var (
	// ErrNoSecret is returned by New when no non-empty key is given.
	ErrNoSecret = errors.New("cookie.no_secret")
	// ErrInvalidSignature means none of the manager keys produced the signature.
	ErrInvalidSignature = errors.New("cookie.invalid_signature")
	// ErrCookieNotFound means the value cookie is missing from the request.
	ErrCookieNotFound = errors.New("cookie.not_found")
	// ErrSignatureNotFound means the "<name>.sig" cookie is missing.
	ErrSignatureNotFound = errors.New("cookie.signature_not_found")
	ErrUnsupportedDigest = errors.New("cookie.unsupported_digest")
)
