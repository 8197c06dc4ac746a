// Package compose is the input screen: topic text or a PDF path, then
// generation with a busy indicator.
package compose

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/examgen/internal/examgen"
	"github.com/abhisek/examgen/internal/router"
	"github.com/abhisek/examgen/internal/screens/exam"
	"github.com/abhisek/examgen/internal/session"
	"github.com/abhisek/examgen/internal/ui/components"
	"github.com/abhisek/examgen/internal/ui/layout"
	"github.com/abhisek/examgen/internal/ui/theme"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 100 * time.Millisecond

// Options carries the screen's collaborators.
type Options struct {
	Generator examgen.Generator
	Session   *session.Session
	Model     string

	// Timeout bounds one generation. Zero means no limit.
	Timeout time.Duration
}

// ComposeScreen collects the input and drives generation. Only Update
// mutates the session; the call itself runs in a tea.Cmd.
type ComposeScreen struct {
	gen     examgen.Generator
	sess    *session.Session
	model   string
	timeout time.Duration

	mode    examgen.Mode
	area    textarea.Model
	path    components.TextInput
	editing bool
	frame   int

	readFile func(string) ([]byte, error)
}

var _ router.Screen = (*ComposeScreen)(nil)
var _ router.KeyHintProvider = (*ComposeScreen)(nil)

// New creates a ComposeScreen in text mode with the text area focused.
func New(opts Options) *ComposeScreen {
	area := textarea.New()
	area.Placeholder = "Enter a topic or paste source text..."
	area.ShowLineNumbers = false
	area.CharLimit = 0
	area.Focus()

	path := components.NewTextInput("path/to/document.pdf", 0)
	path.Blur()

	return &ComposeScreen{
		gen:      opts.Generator,
		sess:     opts.Session,
		model:    opts.Model,
		timeout:  opts.Timeout,
		mode:     examgen.ModeText,
		area:     area,
		path:     path,
		editing:  true,
		readFile: os.ReadFile,
	}
}

func (s *ComposeScreen) Init() tea.Cmd {
	return s.focus()
}

func (s *ComposeScreen) Title() string {
	return "New Exam"
}

// Mode returns the selected input mode.
func (s *ComposeScreen) Mode() examgen.Mode {
	return s.mode
}

func (s *ComposeScreen) KeyHints() []layout.KeyHint {
	if s.sess.Snapshot().Generating() {
		return nil
	}
	hints := []layout.KeyHint{
		{Key: "Tab", Description: "Text/PDF"},
		{Key: "Ctrl+G", Description: "Generate"},
	}
	if s.editing {
		return append(hints, layout.KeyHint{Key: "Esc", Description: "Done editing"})
	}
	hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Edit"})
	if s.sess.Snapshot().HasExam() {
		hints = append(hints, layout.KeyHint{Key: "e", Description: "Last exam"})
	}
	return hints
}

func (s *ComposeScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case examReadyMsg:
		return s.handleExamReady(msg)

	case spinnerTickMsg:
		if !s.sess.Snapshot().Generating() {
			return s, nil
		}
		s.frame = (s.frame + 1) % len(spinnerFrames)
		return s, s.tick()

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}

	return s.forward(msg)
}

func (s *ComposeScreen) handleKey(msg tea.KeyPressMsg) (router.Screen, tea.Cmd) {
	if s.sess.Snapshot().Generating() {
		return s, nil
	}

	switch msg.String() {
	case "ctrl+g":
		return s, s.generate()
	case "tab":
		if s.mode == examgen.ModeText {
			s.mode = examgen.ModePDF
		} else {
			s.mode = examgen.ModeText
		}
		s.editing = true
		return s, s.focus()
	case "esc":
		if s.editing {
			s.blur()
		}
		return s, nil
	}

	if !s.editing {
		switch msg.String() {
		case "enter", "i":
			s.editing = true
			return s, s.focus()
		case "e":
			if snap := s.sess.Snapshot(); snap.HasExam() {
				return s, func() tea.Msg { return router.PushMsg{Screen: exam.New(snap.Exam)} }
			}
		}
		return s, nil
	}

	return s.forward(msg)
}

// forward passes msg to the input of the current mode.
func (s *ComposeScreen) forward(msg tea.Msg) (router.Screen, tea.Cmd) {
	if !s.editing {
		return s, nil
	}
	var cmd tea.Cmd
	if s.mode == examgen.ModeText {
		s.area, cmd = s.area.Update(msg)
	} else {
		s.path, cmd = s.path.Update(msg)
	}
	return s, cmd
}

func (s *ComposeScreen) focus() tea.Cmd {
	if s.mode == examgen.ModeText {
		s.path.Blur()
		return s.area.Focus()
	}
	s.area.Blur()
	return s.path.Focus()
}

func (s *ComposeScreen) blur() {
	s.editing = false
	s.area.Blur()
	s.path.Blur()
}

// source builds the input for the current mode. Exactly one mode is used.
func (s *ComposeScreen) source() (examgen.Source, error) {
	if s.mode == examgen.ModeText {
		return examgen.NewTextSource(s.area.Value()), nil
	}

	path := strings.TrimSpace(s.path.Value())
	if path == "" {
		return examgen.NewDocumentSource("", nil), nil
	}
	data, err := s.readFile(path)
	if err != nil {
		s.path.Mark(false)
		return examgen.Source{}, fmt.Errorf("reading %s: %w", path, err)
	}
	s.path.Mark(true)
	return examgen.NewDocumentSource(filepath.Base(path), data), nil
}

func (s *ComposeScreen) generate() tea.Cmd {
	src, err := s.source()
	if err == nil {
		err = src.Validate()
	}
	if err != nil {
		s.sess.Reject(err)
		return nil
	}
	s.sess.SetInput(s.mode, s.area.Value(), src.Name)

	if err := s.sess.Begin(); err != nil {
		return nil
	}
	s.blur()
	s.frame = 0

	gen, model, timeout := s.gen, s.model, s.timeout
	call := func() tea.Msg {
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		e, err := gen.Generate(ctx, src, model)
		return examReadyMsg{Exam: e, Err: err}
	}
	return tea.Batch(call, s.tick())
}

func (s *ComposeScreen) handleExamReady(msg examReadyMsg) (router.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.sess.Fail(msg.Err)
		return s, nil
	}
	s.sess.Complete(msg.Exam)
	return s, func() tea.Msg { return router.PushMsg{Screen: exam.New(msg.Exam)} }
}

func (s *ComposeScreen) tick() tea.Cmd {
	return tea.Tick(spinnerInterval, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}

func (s *ComposeScreen) View(width, height int) string {
	snap := s.sess.Snapshot()
	inner := max(width-4, 20)

	var b strings.Builder
	b.WriteString("\n  " + s.renderModeToggle() + "\n\n")

	if s.mode == examgen.ModeText {
		s.area.SetWidth(inner)
		s.area.SetHeight(max(height-10, 3))
		b.WriteString(lipgloss.NewStyle().MarginLeft(2).Render(s.area.View()) + "\n")
	} else {
		b.WriteString("  " + theme.Heading.Render("PDF path") + "\n")
		b.WriteString("  " + s.path.View() + "\n")
		if snap.DocumentName != "" {
			b.WriteString("  " + lipgloss.NewStyle().Foreground(theme.Success).Render("PDF Loaded: "+snap.DocumentName) + "\n")
		}
	}
	b.WriteString("\n")

	switch {
	case snap.Generating():
		b.WriteString("  " + theme.Busy.Render(spinnerFrames[s.frame]+" Generating exam...") + "\n")
	case snap.Err != "":
		b.WriteString("  " + theme.ErrorText.Width(inner).Render("Error: "+snap.Err) + "\n")
	}

	if !snap.Generating() && !s.editing && snap.HasExam() {
		b.WriteString("  " + theme.Hint.Render("Press e to view the previous exam") + "\n")
	}

	return b.String()
}

func (s *ComposeScreen) renderModeToggle() string {
	text, pdf := theme.Unselected, theme.Unselected
	if s.mode == examgen.ModeText {
		text = theme.Selected
	} else {
		pdf = theme.Selected
	}
	return theme.Hint.Render("Input:") + "  " +
		text.Render(radio(s.mode == examgen.ModeText)+" Text Paste") + "   " +
		pdf.Render(radio(s.mode == examgen.ModePDF)+" PDF Upload")
}

func radio(on bool) string {
	if on {
		return "(•)"
	}
	return "( )"
}
