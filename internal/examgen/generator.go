package examgen

import "context"

// Generator produces exams from a source.
type Generator interface {
	// Generate makes exactly one service call for a valid source. Input
	// errors are returned as-is; every failure after that is a
	// *GenerationError.
	Generate(ctx context.Context, src Source, model string) (*Exam, error)
}
