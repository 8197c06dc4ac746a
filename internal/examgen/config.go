package examgen

import "fmt"

// Config parameterizes the instruction block sent with every request.
type Config struct {
	// Level describes the target reading difficulty.
	Level string

	// MinWords and MaxWords bound the passage length.
	MinWords int
	MaxWords int

	// MinQuestions and MaxQuestions bound the question count.
	MinQuestions int
	MaxQuestions int

	// ExplanationLanguage is the language of the answer explanations.
	ExplanationLanguage string

	// MaxTokens is the token budget for the response. Zero leaves the
	// service default.
	MaxTokens int

	// Temperature controls output randomness. Zero leaves the service
	// default.
	Temperature float64
}

// DefaultConfig returns the Kyotsu Test reading-exam settings.
func DefaultConfig() Config {
	return Config{
		Level:               "CEFR B1/B2 (Standard University Entrance Exam level)",
		MinWords:            500,
		MaxWords:            600,
		MinQuestions:        4,
		MaxQuestions:        5,
		ExplanationLanguage: "Japanese",
	}
}

// Validate checks that the ranges make sense.
func (c Config) Validate() error {
	if c.MinWords <= 0 || c.MaxWords < c.MinWords {
		return fmt.Errorf("invalid word range %d-%d", c.MinWords, c.MaxWords)
	}
	if c.MinQuestions <= 0 || c.MaxQuestions < c.MinQuestions {
		return fmt.Errorf("invalid question range %d-%d", c.MinQuestions, c.MaxQuestions)
	}
	if c.Level == "" || c.ExplanationLanguage == "" {
		return fmt.Errorf("level and explanation language are required")
	}
	return nil
}
