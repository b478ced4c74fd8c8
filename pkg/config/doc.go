// Package config loads typed configuration from environment variables.
//
// It wraps `github.com/joho/godotenv` and `github.com/caarlos0/env/v11`:
// LoadEnv reads .env files into the process environment, Load parses the
// environment into any struct annotated with `env` tags. Every configuration
// type is parsed at most once and cached by value for the lifetime of the
// process; ResetCache clears the cache in tests.
//
//	type Config struct {
//	    CatalogPath string        `env:"FORMKIT_CATALOG"`
//	    SessionTTL  time.Duration `env:"FORMKIT_SESSION_TTL" envDefault:"30m"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//	    log.Fatalf("parsing env: %v", err)
//	}
//
// # Error Handling
//
// The package defines sentinel errors that can be compared with `errors.Is`:
//
//   - `ErrParsingConfig`   – failed to parse env vars into struct.
//   - `ErrLoadingEnvFile`  – an explicitly named .env file could not be read.
//   - `ErrConfigNotLoaded` – requested config type has not been loaded yet.
//   - `ErrNilPointer`      – nil pointer passed to `Load`/`MustLoad`.
package config
