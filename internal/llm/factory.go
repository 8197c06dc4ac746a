package llm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/abhisek/examgen/internal/docs"
	"github.com/abhisek/examgen/internal/store"
)

// NewProvider creates a Provider from configuration.
// Providers without PDF support get documents as extracted text, and every
// provider is wrapped with request logging.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo, logger *slog.Logger) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case ProviderOpenRouter:
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case ProviderMock:
		base = NewDemoProvider()
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// caller → logging → document text → base
	if !SupportsDocuments(base) {
		base = WithDocumentText(base, docs.ExtractText)
	}
	return WithLogging(base, cfg.Provider, eventRepo, logger), nil
}

// Factory hands out providers. The server-held key wins and its provider
// is built once; a caller's own key gets a fresh provider per call, so
// nothing keyed by user secrets outlives the request.
type Factory struct {
	cfg       Config
	eventRepo store.EventRepo
	logger    *slog.Logger

	mu     sync.Mutex
	shared Provider
}

// NewFactory creates a Factory for the given configuration.
func NewFactory(cfg Config, eventRepo store.EventRepo, logger *slog.Logger) *Factory {
	return &Factory{
		cfg:       cfg,
		eventRepo: eventRepo,
		logger:    logger,
	}
}

// Config returns the factory's configuration.
func (f *Factory) Config() Config {
	return f.cfg
}

// HasServerKey reports whether callers may omit their own key.
func (f *Factory) HasServerKey() bool {
	return f.cfg.HasServerKey()
}

// For returns the provider for userKey, or ErrMissingAPIKey when neither a
// server key nor a user key is available.
func (f *Factory) For(ctx context.Context, userKey string) (Provider, error) {
	if f.HasServerKey() {
		return f.serverProvider(ctx)
	}
	key := strings.TrimSpace(userKey)
	if key == "" {
		return nil, ErrMissingAPIKey
	}
	return NewProvider(ctx, f.cfg.WithAPIKey(key), f.eventRepo, f.logger)
}

func (f *Factory) serverProvider(ctx context.Context) (Provider, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.shared == nil {
		p, err := NewProvider(ctx, f.cfg, f.eventRepo, f.logger)
		if err != nil {
			return nil, err
		}
		f.shared = p
	}
	return f.shared, nil
}
