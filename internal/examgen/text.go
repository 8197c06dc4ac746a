package examgen

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/abhisek/examgen/internal/chart"
)

// Labels used by every renderer.
const (
	LabelAnswer      = "正解"
	LabelExplanation = "解説"
)

// QuestionHeading is the bold line above a question's options.
func QuestionHeading(q Question) string {
	return fmt.Sprintf("Q%d. %s", q.ID, q.Text)
}

// AnswerToggleLabel names the collapsible answer panel.
func AnswerToggleLabel(q Question) string {
	return fmt.Sprintf("Show Answer Q%d", q.ID)
}

// WriteText renders exam as plain text for terminals and pipes. Answer
// panels are included only when showAnswers is set.
func WriteText(w io.Writer, exam *Exam, showAnswers bool, width int) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "# %s\n\n", exam.Title)
	if exam.Passage != "" {
		fmt.Fprintf(bw, "%s\n\n", strings.TrimSpace(exam.Passage))
	}

	bw.WriteString("---\n")
	view := exam.Chart.View()
	fmt.Fprintf(bw, "%s\n", view.Caption())
	if !view.Empty() {
		fmt.Fprintf(bw, "%s\n", chart.RenderText(view, width))
	}
	bw.WriteString("---\n\n")

	bw.WriteString("Questions\n\n")
	for _, q := range exam.Questions {
		fmt.Fprintf(bw, "%s\n", QuestionHeading(q))
		for _, opt := range q.Options {
			fmt.Fprintf(bw, "- %s\n", opt)
		}
		if showAnswers {
			fmt.Fprintf(bw, "  %s: %s\n", LabelAnswer, q.Answer)
			fmt.Fprintf(bw, "  %s: %s\n", LabelExplanation, q.Explanation)
		}
		bw.WriteString("\n")
	}

	return bw.Flush()
}
