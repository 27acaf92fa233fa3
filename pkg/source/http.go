package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jcunliffe1/tolgee-go/pkg/dictionary"
	"github.com/jcunliffe1/tolgee-go/pkg/loader"
)

// APIKeyHeader carries the project API key on every request.
const APIKeyHeader = "X-API-Key"

const (
	translationsPath = "/v2/projects/translations/"
	apiKeyPath       = "/v2/api-keys/current"

	// Error bodies are truncated to keep log lines bounded.
	maxErrorBody = 512
)

var _ loader.Fetcher = (*HTTPSource)(nil)

// HTTPSource fetches bundles from the Tolgee REST API.
// Zero value is not usable; use NewHTTPSource.
type HTTPSource struct {
	baseURL   string
	apiKey    string
	userAgent string
	client    *http.Client
	parser    Parser
}

// APIKeyInfo describes the API key the source authenticates with.
type APIKeyInfo struct {
	ID        int64    `json:"id"`
	ProjectID int64    `json:"projectId"`
	Scopes    []string `json:"scopes"`
}

// NewHTTPSource creates a source for the Tolgee instance at apiURL.
// The API key may be empty for public instances behind a proxy.
func NewHTTPSource(apiURL, apiKey string, opts ...HTTPOption) (*HTTPSource, error) {
	if apiURL == "" {
		return nil, fmt.Errorf("%w: URL is required", ErrInvalidURL)
	}

	u, err := url.Parse(apiURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: only http and https schemes are supported", ErrInvalidURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%w: host is required", ErrInvalidURL)
	}

	s := &HTTPSource{
		baseURL:   strings.TrimRight(apiURL, "/"),
		apiKey:    apiKey,
		userAgent: "tolgee-go/1.0",
		client: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		parser: NewJSONParser(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Fetch downloads the bundle of lang.
// A language the project has no translations for yields an empty bundle.
func (s *HTTPSource) Fetch(ctx context.Context, lang string) (dictionary.Bundle, error) {
	body, err := s.get(ctx, translationsPath+url.PathEscape(lang))
	if err != nil {
		return dictionary.Bundle{}, err
	}

	doc, err := s.parser.Parse(ctx, body)
	if err != nil {
		return dictionary.Bundle{}, errors.Join(ErrInvalidResponse, err)
	}

	root, ok := languageRoot(doc, lang)
	if !ok {
		if _, present := doc[lang]; present {
			return dictionary.Bundle{}, fmt.Errorf("%w: language %q is not an object", ErrInvalidResponse, lang)
		}
		return dictionary.NewBundle(nil), nil
	}
	return dictionary.Flatten(root), nil
}

// CurrentAPIKey returns the project and scopes of the configured API key.
func (s *HTTPSource) CurrentAPIKey(ctx context.Context) (APIKeyInfo, error) {
	body, err := s.get(ctx, apiKeyPath)
	if err != nil {
		return APIKeyInfo{}, err
	}

	var info APIKeyInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return APIKeyInfo{}, errors.Join(ErrInvalidResponse, err)
	}
	return info, nil
}

func (s *HTTPSource) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+path, nil)
	if err != nil {
		return nil, errors.Join(ErrRequestFailed, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", s.userAgent)
	if s.apiKey != "" {
		req.Header.Set(APIKeyHeader, s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, errors.Join(ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(snippet))}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Join(ErrInvalidResponse, err)
	}
	return body, nil
}
