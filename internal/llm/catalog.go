package llm

import (
	"context"
	"slices"
	"strings"
)

// ModelCatalog is what the model dropdown shows.
type ModelCatalog struct {
	// Models is sorted alphabetically and never empty.
	Models []string

	// Default is the preselected entry.
	Default string

	// Err is the listing failure, if any. When set, Models holds only the
	// fallback model.
	Err error
}

// ResolveModels lists the provider's generation-capable models and picks
// the default. A listing failure or an empty list falls back to the
// fallback model instead of blocking the caller.
func ResolveModels(ctx context.Context, p Provider, preferred, fallback string) ModelCatalog {
	names, err := p.ListModels(WithPurpose(ctx, PurposeListModels))
	if err != nil || len(names) == 0 {
		return ModelCatalog{
			Models:  []string{fallback},
			Default: fallback,
			Err:     err,
		}
	}

	sorted := slices.Clone(names)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	return ModelCatalog{
		Models:  sorted,
		Default: SelectDefault(sorted, preferred),
	}
}

// SelectDefault returns the first name containing preferred, else the
// first name. names must be sorted and non-empty.
func SelectDefault(names []string, preferred string) string {
	if preferred != "" {
		for _, n := range names {
			if strings.Contains(n, preferred) {
				return n
			}
		}
	}
	return names[0]
}

// Contains reports whether model is one of the catalog entries.
func (c ModelCatalog) Contains(model string) bool {
	return slices.Contains(c.Models, model)
}
