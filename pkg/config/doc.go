// Package config loads typed configuration from environment variables.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11:
//
//   - LoadEnv reads one or more .env files into the process environment; the
//     default ./.env is picked up automatically on the first Load.
//   - Load parses the environment into any struct using `env` tags and caches
//     the result per type for the lifetime of the process.
//   - MustLoad and MustLoadEnv panic instead of returning an error.
//   - Reload and ResetCache drop cached values, which tests use after changing
//     the environment.
//
// # Usage
//
//	type Config struct {
//		APIURL string `env:"TOLGEE_API_URL,required"`
//		APIKey string `env:"TOLGEE_API_KEY"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//		log.Fatalf("parsing env: %v", err)
//	}
//
// # Errors
//
// ErrParsingConfig wraps the env parser error, ErrLoadingEnvFile the
// godotenv one; both can be compared with errors.Is.
package config
