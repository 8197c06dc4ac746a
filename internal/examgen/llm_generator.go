package examgen

import (
	"context"

	"github.com/abhisek/examgen/internal/llm"
)

// LLMGenerator implements Generator using an LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// New creates a new LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

// Generate validates src, sends one JSON-mode request and decodes the
// reply. An empty model uses the provider's configured model.
func (g *LLMGenerator) Generate(ctx context.Context, src Source, model string) (*Exam, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}

	ctx = llm.WithPurpose(ctx, llm.PurposeExamGen)
	req := BuildRequest(src, g.config, model)

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, &GenerationError{Stage: StageGenerate, Err: err}
	}

	exam, err := Decode(resp.Content)
	if err != nil {
		return nil, &GenerationError{Stage: StageParse, Err: err}
	}
	return exam, nil
}

// Models lists the provider's models for the dropdown. A listing failure
// falls back to fallback and is reported as a list-models GenerationError
// in the catalog.
func Models(ctx context.Context, p llm.Provider, preferred, fallback string) llm.ModelCatalog {
	cat := llm.ResolveModels(ctx, p, preferred, fallback)
	if cat.Err != nil {
		cat.Err = &GenerationError{Stage: StageListModels, Err: cat.Err}
	}
	return cat
}
