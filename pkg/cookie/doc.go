// Package cookie signs and verifies HTTP cookies in the format used by the
// Express cookie-session middleware (the keygrip scheme).
//
// # Overview
//
// A signed cookie is a pair: the value cookie "<name>=<value>" and the
// signature cookie "<name>.sig=<sig>", where sig is an HMAC of the string
// "<name>=<value>" encoded as unpadded base64url. SHA-1 is the default digest,
// matching keygrip; SHA-256 and SHA-512 are available through WithDigest.
//
// The Manager is initialised with one or more keys. The first key signs, every
// key is tried when verifying, so rotated secrets keep validating.
//
// # Usage
//
//	man, err := cookie.New([]string{"keyboard cat"})
//	if err != nil { log.Fatal(err) }
//
//	_ = man.SetSigned(w, "session", "eyJmb28iOiJiYXIifQ==")
//	value, err := man.GetSigned(r, "session")
//
// # Error Handling
//
// GetSigned returns ErrCookieNotFound when the value cookie is absent,
// ErrSignatureNotFound when the signature cookie is absent and
// ErrInvalidSignature when no key produces the presented signature.
package cookie
