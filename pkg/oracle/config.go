package oracle

import (
	"errors"
	"time"

	"github.com/dmitrymomot/cookiemonster/pkg/cookie"
)

// SentinelKey is the response field that marks a rejected cookie.
const SentinelKey = "cookie_monster_no_likey"

const (
	DefaultHost            = "127.0.0.1"
	DefaultCookiePath      = "/"
	DefaultRequestTimeout  = 5 * time.Second
	DefaultShutdownTimeout = 2 * time.Second
)

// Config describes one oracle instance. Port 0 binds a free port.
type Config struct {
	CookieName      string
	CookieSecret    string
	// CookiePath is the Path attribute of cookies set by POST /. Defaults to "/".
	CookiePath      string
	Host            string
	Port            int
	Digest          cookie.Digest
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

func (c Config) withDefaults() Config {
	if c.Host == "" {
		c.Host = DefaultHost
	}
	if c.CookiePath == "" {
		c.CookiePath = DefaultCookiePath
	}
	if c.Digest == "" {
		c.Digest = cookie.DigestSHA1
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = DefaultRequestTimeout
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = DefaultShutdownTimeout
	}
	return c
}

func (c Config) validate() error {
	if c.CookieName == "" {
		return errors.Join(ErrInvalidConfig, errors.New("cookie name is empty"))
	}
	if c.CookieSecret == "" {
		return errors.Join(ErrInvalidConfig, cookie.ErrNoSecret)
	}
	if c.Port < 0 || c.Port > 65535 {
		return errors.Join(ErrInvalidConfig, errors.New("port out of range"))
	}
	if _, err := cookie.ParseDigest(string(c.Digest)); err != nil {
		return errors.Join(ErrInvalidConfig, err)
	}
	return nil
}
