// Package config loads typed configuration from environment variables.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11:
//
//   - the default .env file in the working directory is read once, if present;
//   - LoadEnv reads additional .env files on request;
//   - Load parses the environment into any struct using env/envDefault tags,
//     optionally namespaced with WithPrefix;
//   - parsed values are cached per type and prefix, ResetCache clears them.
//
// # Usage
//
//	type Env struct {
//		Port     int           `env:"PORT" envDefault:"3000"`
//		Timeout  time.Duration `env:"REQUEST_TIMEOUT" envDefault:"5s"`
//	}
//
//	var cfg Env
//	if err := config.Load(&cfg, config.WithPrefix("COOKIE_MONSTER_")); err != nil {
//		return err
//	}
//
// # Errors
//
// ErrParsingConfig wraps env parsing failures, ErrLoadingEnvFile wraps .env
// read failures and ErrNilPointer is returned for a nil target.
package config
