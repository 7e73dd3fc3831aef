package cli

import (
	"time"

	"github.com/dmitrymomot/cookiemonster/pkg/config"
	"github.com/dmitrymomot/cookiemonster/pkg/oracle"
	"github.com/dmitrymomot/cookiemonster/pkg/redis"
	"github.com/dmitrymomot/cookiemonster/pkg/report"
)

// EnvPrefix namespaces every environment variable read by the tool.
const EnvPrefix = "COOKIE_MONSTER_"

// Env holds defaults taken from the environment. Flags override them.
type Env struct {
	Port            int           `env:"PORT" envDefault:"3000"`
	Host            string        `env:"HOST" envDefault:"127.0.0.1"`
	Name            string        `env:"NAME" envDefault:"session"`
	Wordlist        string        `env:"WORDLIST"`
	Digest          string        `env:"DIGEST" envDefault:"sha1"`
	LogFormat       string        `env:"LOG_FORMAT" envDefault:"console"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT" envDefault:"5s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"2s"`

	S3    report.S3Config
	Redis redis.Config
}

// LoadEnv reads Env from the process environment and an optional .env file.
func LoadEnv() (Env, error) {
	var env Env
	if err := config.Load(&env, config.WithPrefix(EnvPrefix)); err != nil {
		return Env{}, err
	}
	return env, nil
}

// timeouts returns the request and shutdown timeouts, falling back to the
// oracle defaults for unset values.
func (e Env) timeouts() (request, shutdown time.Duration) {
	request, shutdown = e.RequestTimeout, e.ShutdownTimeout
	if request <= 0 {
		request = oracle.DefaultRequestTimeout
	}
	if shutdown <= 0 {
		shutdown = oracle.DefaultShutdownTimeout
	}
	return request, shutdown
}
