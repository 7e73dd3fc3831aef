package cookie

import (
	"crypto/hmac"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"hash"
	"net/http"
	"slices"
	"strings"
	"time"
)

// SignatureSuffix is appended to a cookie name to form the name of its signature cookie.
const SignatureSuffix = ".sig"

// Digest names the hash function behind the HMAC signature.
type Digest string

const (
	DigestSHA1   Digest = "sha1"
	DigestSHA256 Digest = "sha256"
	DigestSHA512 Digest = "sha512"
)

// ParseDigest validates a digest name. An empty name selects DigestSHA1.
func ParseDigest(name string) (Digest, error) {
	switch d := Digest(strings.ToLower(strings.TrimSpace(name))); d {
	case "":
		return DigestSHA1, nil
	case DigestSHA1, DigestSHA256, DigestSHA512:
		return d, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedDigest, name)
	}
}

func (d Digest) hash() func() hash.Hash {
	switch d {
	case DigestSHA256:
		return sha256.New
	case DigestSHA512:
		return sha512.New
	default:
		return sha1.New
	}
}

// Manager signs and verifies cookies the same way Express cookie-session does:
// the signature cookie "<name>.sig" carries an HMAC over "<name>=<value>",
// encoded as unpadded base64url.
type Manager struct {
	keys     []string
	defaults Options
}

// New returns a Manager. The first key signs, all keys verify.
func New(keys []string, opts ...Option) (*Manager, error) {
	keys = slices.DeleteFunc(slices.Clone(keys), func(s string) bool { return s == "" })
	if len(keys) == 0 {
		return nil, ErrNoSecret
	}

	defaults := applyOptions(Options{
		Path:     "/",
		HttpOnly: true,
		Digest:   DigestSHA1,
	}, opts)

	if _, err := ParseDigest(string(defaults.Digest)); err != nil {
		return nil, err
	}

	return &Manager{
		keys:     keys,
		defaults: defaults,
	}, nil
}

// SignatureName returns the name of the cookie holding the signature for name.
func SignatureName(name string) string {
	return name + SignatureSuffix
}

// Sign returns the signature of data under the first key.
func (m *Manager) Sign(data string) string {
	return m.sign(m.keys[0], data)
}

// Index returns the position of the key that produced sig, or -1.
func (m *Manager) Index(data, sig string) int {
	for i, key := range m.keys {
		if subtle.ConstantTimeCompare([]byte(sig), []byte(m.sign(key, data))) == 1 {
			return i
		}
	}
	return -1
}

// Verify reports whether sig was produced by any of the manager keys.
func (m *Manager) Verify(data, sig string) bool {
	return m.Index(data, sig) >= 0
}

func (m *Manager) sign(key, data string) string {
	mac := hmac.New(m.defaults.Digest.hash(), []byte(key))
	mac.Write([]byte(data))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

func (m *Manager) Set(w http.ResponseWriter, name, value string, opts ...Option) error {
	options := applyOptions(m.defaults, opts)

	cookie := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     options.Path,
		HttpOnly: options.HttpOnly,
	}
	if err := cookie.Valid(); err != nil {
		return err
	}

	http.SetCookie(w, cookie)
	return nil
}

func (m *Manager) Get(r *http.Request, name string) (string, error) {
	cookie, err := r.Cookie(name)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return "", ErrCookieNotFound
		}
		return "", err
	}
	return cookie.Value, nil
}

func (m *Manager) Delete(w http.ResponseWriter, name string) {
	cookie := &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     m.defaults.Path,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: m.defaults.HttpOnly,
	}
	http.SetCookie(w, cookie)
}

// SetSigned writes the value cookie followed by its signature cookie.
func (m *Manager) SetSigned(w http.ResponseWriter, name, value string, opts ...Option) error {
	if err := m.Set(w, name, value, opts...); err != nil {
		return err
	}
	return m.Set(w, SignatureName(name), m.Sign(name+"="+value), opts...)
}

// GetSigned returns the value of name if its signature cookie verifies.
func (m *Manager) GetSigned(r *http.Request, name string) (string, error) {
	value, err := m.Get(r, name)
	if err != nil {
		return "", err
	}

	sig, err := m.Get(r, SignatureName(name))
	if err != nil {
		if errors.Is(err, ErrCookieNotFound) {
			return "", ErrSignatureNotFound
		}
		return "", err
	}

	if !m.Verify(name+"="+value, sig) {
		return "", ErrInvalidSignature
	}
	return value, nil
}

// DeleteSigned expires both the value cookie and its signature cookie.
func (m *Manager) DeleteSigned(w http.ResponseWriter, name string) {
	m.Delete(w, name)
	m.Delete(w, SignatureName(name))
}
