package cookie

// Options are the attributes written with a cookie, plus the signing digest.
// New starts from Path "/" and HttpOnly, which is what cookie-session sends
// by default.
type Options struct {
	Path     string
	HttpOnly bool

	// Digest is read from the manager defaults only. Passing WithDigest to
	// Set or SetSigned has no effect on the signature.
	Digest Digest
}

// Option changes a single cookie attribute.
type Option func(*Options)

// WithPath scopes the cookie to path.
func WithPath(path string) Option {
	return func(o *Options) { o.Path = path }
}

func WithHTTPOnly(httpOnly bool) Option {
	return func(o *Options) { o.HttpOnly = httpOnly }
}

// WithDigest selects the HMAC hash used for signatures. Only meaningful
// when passed to New.
func WithDigest(d Digest) Option {
	return func(o *Options) { o.Digest = d }
}

// applyOptions returns a copy of base with opts applied.
func applyOptions(base Options, opts []Option) Options {
	for _, opt := range opts {
		opt(&base)
	}
	return base
}
