package examgen

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptySource is returned when there is nothing to generate from.
	ErrEmptySource = errors.New("input is empty")

	// ErrUnsupportedDocument is returned for uploads that are not PDF.
	ErrUnsupportedDocument = errors.New("only PDF documents are supported")
)

// Stage names the step of a generation that failed.
type Stage string

const (
	StageListModels Stage = "list-models"
	StageGenerate   Stage = "generate"
	StageParse      Stage = "parse"
)

// GenerationError is the single error kind surfaced to users. Network,
// quota, auth and malformed-output failures all arrive wrapped in it.
type GenerationError struct {
	Stage Stage
	Err   error
}

func (e *GenerationError) Error() string {
	switch e.Stage {
	case StageListModels:
		return fmt.Sprintf("fetching models: %v", e.Err)
	case StageParse:
		return fmt.Sprintf("reading generated exam: %v", e.Err)
	default:
		return fmt.Sprintf("generating exam: %v", e.Err)
	}
}

func (e *GenerationError) Unwrap() error { return e.Err }

// ParseError reports a response that could not be decoded into an Exam.
type ParseError struct {
	// Path locates the offending field, e.g. "chart_config.data.2019".
	// Empty when the whole payload is unusable.
	Path   string
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	msg := e.Reason
	if e.Path != "" {
		msg = e.Path + ": " + msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ParseError) Unwrap() error { return e.Err }
