package tolgee

import (
	"fmt"
	"time"

	"github.com/jcunliffe1/tolgee-go/pkg/config"
	"github.com/jcunliffe1/tolgee-go/pkg/source"
)

// Config holds client settings read from the environment.
type Config struct {
	APIURL             string        `env:"TOLGEE_API_URL"`
	APIKey             string        `env:"TOLGEE_API_KEY"`
	DefaultLanguage    string        `env:"TOLGEE_DEFAULT_LANGUAGE" envDefault:"en"`
	FallbackLanguage   string        `env:"TOLGEE_FALLBACK_LANGUAGE"`
	PreloadFallback    bool          `env:"TOLGEE_PRELOAD_FALLBACK" envDefault:"false"`
	FetchTimeout       time.Duration `env:"TOLGEE_FETCH_TIMEOUT" envDefault:"30s"`
	AvailableLanguages []string      `env:"TOLGEE_AVAILABLE_LANGUAGES" envSeparator:","`
}

// LoadConfig reads Config from the environment and an optional .env file.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Options turns cfg into client options.
func (cfg Config) Options() []Option {
	return []Option{
		WithLanguage(cfg.DefaultLanguage),
		WithFallbackLanguage(cfg.FallbackLanguage),
		WithPreloadFallback(cfg.PreloadFallback),
		WithFetchTimeout(cfg.FetchTimeout),
		WithAvailableLanguages(cfg.AvailableLanguages...),
	}
}

// NewFromConfig creates a client fetching from the Tolgee API described by cfg.
// opts are applied after the options derived from cfg.
func NewFromConfig(cfg Config, opts ...Option) (*Client, error) {
	if cfg.APIURL == "" {
		return nil, ErrMissingAPIURL
	}
	src, err := source.NewHTTPSource(cfg.APIURL, cfg.APIKey)
	if err != nil {
		return nil, fmt.Errorf("tolgee: %w", err)
	}
	return New(src, append(cfg.Options(), opts...)...), nil
}
