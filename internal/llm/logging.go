package llm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/abhisek/examgen/internal/store"
)

// LoggingProvider is a decorator that records every LLM request: a log
// line plus a usage event. Prompts, documents and responses are never
// recorded, only their sizes.
type LoggingProvider struct {
	inner     Provider
	provider  string
	eventRepo store.EventRepo
	logger    *slog.Logger
}

// WithLogging wraps a Provider with request logging.
func WithLogging(p Provider, providerName string, repo store.EventRepo, logger *slog.Logger) Provider {
	if repo == nil {
		repo = store.NopEventRepo{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingProvider{inner: p, provider: providerName, eventRepo: repo, logger: logger}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	resp, err := l.inner.Generate(ctx, req)

	data := store.LLMRequestEventData{
		Provider:       l.provider,
		Model:          modelFor(req, l.inner.ModelID()),
		Purpose:        PurposeFrom(ctx),
		LatencyMs:      time.Since(start).Milliseconds(),
		Success:        err == nil,
		RequestSummary: summarizeRequest(req),
	}
	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		if resp.Model != "" {
			data.Model = resp.Model
		}
	}
	if err != nil {
		data.ErrorMessage = err.Error()
	}

	l.record(ctx, data)
	return resp, err
}

func (l *LoggingProvider) ListModels(ctx context.Context) ([]string, error) {
	start := time.Now()

	names, err := l.inner.ListModels(ctx)

	data := store.LLMRequestEventData{
		Provider:  l.provider,
		Model:     l.inner.ModelID(),
		Purpose:   PurposeFrom(ctx),
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
	}
	if err != nil {
		data.ErrorMessage = err.Error()
	} else {
		data.RequestSummary = fmt.Sprintf("models=%d", len(names))
	}

	l.record(ctx, data)
	return names, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

// SupportsDocuments forwards to the wrapped provider.
func (l *LoggingProvider) SupportsDocuments() bool {
	return SupportsDocuments(l.inner)
}

func (l *LoggingProvider) record(ctx context.Context, data store.LLMRequestEventData) {
	attrs := []any{
		slog.String("provider", data.Provider),
		slog.String("model", data.Model),
		slog.String("purpose", data.Purpose),
		slog.Int64("latency_ms", data.LatencyMs),
		slog.Int("input_tokens", data.InputTokens),
		slog.Int("output_tokens", data.OutputTokens),
	}
	if data.Success {
		l.logger.InfoContext(ctx, "llm request", attrs...)
	} else {
		l.logger.WarnContext(ctx, "llm request failed", append(attrs, slog.String("error", data.ErrorMessage))...)
	}

	// A failed usage write never fails the request.
	if err := l.eventRepo.AppendLLMRequest(ctx, data); err != nil {
		l.logger.WarnContext(ctx, "record llm usage event", slog.String("error", err.Error()))
	}
}

// summarizeRequest describes the request shape without its contents.
func summarizeRequest(req Request) string {
	var b strings.Builder
	fmt.Fprintf(&b, "json=%t system_chars=%d messages=%d", req.JSON, len(req.System), len(req.Messages))
	for _, m := range req.Messages {
		fmt.Fprintf(&b, " [%s chars=%d", m.Role, len(m.Content))
		for _, a := range m.Attachments {
			fmt.Fprintf(&b, " %s:%s:%dB", attachmentName(a), a.MIMEType, len(a.Data))
		}
		b.WriteString("]")
	}
	return b.String()
}
