// Package exam shows a generated exam with per-question answer panels.
package exam

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/examgen/internal/chart"
	"github.com/abhisek/examgen/internal/examgen"
	"github.com/abhisek/examgen/internal/router"
	"github.com/abhisek/examgen/internal/ui/layout"
	"github.com/abhisek/examgen/internal/ui/theme"
)

// ExamScreen renders one exam. Answers stay hidden until toggled.
type ExamScreen struct {
	exam     *examgen.Exam
	cursor   int
	revealed []bool
	offset   int
	follow   bool // scroll to the cursor on the next View
}

var _ router.Screen = (*ExamScreen)(nil)
var _ router.KeyHintProvider = (*ExamScreen)(nil)

// New creates an ExamScreen for exam.
func New(exam *examgen.Exam) *ExamScreen {
	return &ExamScreen{
		exam:     exam,
		revealed: make([]bool, len(exam.Questions)),
	}
}

func (s *ExamScreen) Init() tea.Cmd {
	return nil
}

func (s *ExamScreen) Title() string {
	return s.exam.Title
}

func (s *ExamScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Question"},
		{Key: "Enter", Description: "Show/hide answer"},
		{Key: "PgUp/PgDn", Description: "Scroll"},
		{Key: "g", Description: "New exam"},
	}
}

// Revealed reports whether question i's answer panel is open.
func (s *ExamScreen) Revealed(i int) bool {
	return i >= 0 && i < len(s.revealed) && s.revealed[i]
}

// Cursor returns the selected question index.
func (s *ExamScreen) Cursor() int {
	return s.cursor
}

func (s *ExamScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}

	switch key.String() {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
			s.follow = true
		}
	case "down", "j":
		if s.cursor < len(s.exam.Questions)-1 {
			s.cursor++
			s.follow = true
		}
	case "enter", "space", " ":
		if len(s.revealed) > 0 {
			s.revealed[s.cursor] = !s.revealed[s.cursor]
		}
	case "pgup":
		s.offset = max(s.offset-10, 0)
	case "pgdown":
		s.offset += 10
	case "home":
		s.offset = 0
	case "g":
		return s, func() tea.Msg { return router.HomeMsg{} }
	}
	return s, nil
}

func (s *ExamScreen) View(width, height int) string {
	lines, anchors := s.render(width)

	if s.follow && len(anchors) > 0 {
		s.follow = false
		top := anchors[s.cursor]
		if top < s.offset {
			s.offset = top
		} else if top >= s.offset+height-2 {
			s.offset = top - height/3
		}
	}
	s.offset = max(min(s.offset, len(lines)-height), 0)

	end := min(s.offset+height, len(lines))
	return strings.Join(lines[s.offset:end], "\n")
}

// render lays out the whole exam and returns its lines plus the first line
// of every question.
func (s *ExamScreen) render(width int) ([]string, []int) {
	inner := max(width-4, 20)
	body := lipgloss.NewStyle().Width(inner)

	var b strings.Builder
	b.WriteString(theme.Title.Render(s.exam.Title) + "\n\n")
	for _, p := range strings.Split(strings.TrimSpace(s.exam.Passage), "\n") {
		if p = strings.TrimSpace(p); p != "" {
			b.WriteString(body.Render(p) + "\n\n")
		}
	}

	view := s.exam.Chart.View()
	b.WriteString(theme.Caption.Render(view.Caption()) + "\n")
	if !view.Empty() {
		b.WriteString(chart.RenderText(view, inner) + "\n")
	}
	b.WriteString("\n" + theme.Heading.Render("Questions") + "\n\n")

	lines := strings.Split(b.String(), "\n")
	anchors := make([]int, 0, len(s.exam.Questions))

	for i, q := range s.exam.Questions {
		anchors = append(anchors, len(lines))
		lines = append(lines, strings.Split(s.renderQuestion(i, q, inner), "\n")...)
		lines = append(lines, "")
	}
	return lines, anchors
}

func (s *ExamScreen) renderQuestion(i int, q examgen.Question, width int) string {
	var b strings.Builder

	marker, style := "  ", theme.Unselected
	if i == s.cursor {
		marker, style = "▸ ", theme.Selected
	}
	b.WriteString(style.Render(marker+examgen.QuestionHeading(q)) + "\n")

	for _, opt := range q.Options {
		b.WriteString("    • " + opt + "\n")
	}

	toggle := "▶ " + examgen.AnswerToggleLabel(q)
	if s.Revealed(i) {
		toggle = "▼ " + examgen.AnswerToggleLabel(q)
	}
	b.WriteString("  " + theme.Hint.Render(toggle))

	if s.Revealed(i) {
		panel := fmt.Sprintf("%s\n%s",
			theme.Answer.Render(examgen.LabelAnswer+": "+q.Answer),
			examgen.LabelExplanation+": "+q.Explanation)
		b.WriteString("\n" + lipgloss.NewStyle().MarginLeft(4).Render(
			theme.AnswerPanel.Width(max(width-6, 10)).Render(panel)))
	}
	return b.String()
}
