package session

import (
	"context"

	"github.com/abhisek/examgen/internal/examgen"
)

// Run drives one generation through the session state machine. Invalid
// input is recorded without a call; a busy session returns ErrBusy
// untouched; otherwise the outcome lands in Complete or Fail.
func Run(ctx context.Context, s *Session, gen examgen.Generator, src examgen.Source, model string) (*examgen.Exam, error) {
	if err := src.Validate(); err != nil {
		s.Reject(err)
		return nil, err
	}
	if err := s.Begin(); err != nil {
		return nil, err
	}

	exam, err := gen.Generate(ctx, src, model)
	if err != nil {
		s.Fail(err)
		return nil, err
	}
	s.Complete(exam)
	return exam, nil
}
