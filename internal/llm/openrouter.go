package llm

import (
	"fmt"
	"net/http"
)

const (
	defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

	// openRouterReferer and openRouterTitle identify the app on OpenRouter's
	// usage dashboard.
	openRouterReferer = "https://github.com/abhisek/examgen"
	openRouterTitle   = "examgen"
)

// NewOpenRouterProvider returns an OpenAI-compatible provider for the
// OpenRouter API. Model IDs such as "google/gemini-2.0-flash-exp" are sent
// unchanged.
func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openrouter: %w", ErrMissingAPIKey)
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultOpenRouterBaseURL
	}
	headers := http.Header{}
	headers.Set("HTTP-Referer", openRouterReferer)
	headers.Set("X-Title", openRouterTitle)
	return newOpenAICompatible(ProviderOpenRouter, cfg.APIKey, baseURL, cfg.Model, headers), nil
}

// headerTransport adds fixed headers to each request.
type headerTransport struct {
	base    http.RoundTripper
	headers http.Header
}

func (t headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	for k, vs := range t.headers {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	return t.base.RoundTrip(req)
}
