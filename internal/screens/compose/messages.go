package compose

import (
	"time"

	"github.com/abhisek/examgen/internal/examgen"
)

// examReadyMsg carries the outcome of one generation call.
type examReadyMsg struct {
	Exam *examgen.Exam
	Err  error
}

// spinnerTickMsg is sent at short intervals to animate the busy indicator.
type spinnerTickMsg time.Time
