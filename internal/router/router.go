// Package router keeps the terminal UI's screen stack. The root screen is
// the exam composer and is never removed.
package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/examgen/internal/ui/layout"
)

// Screen is one page of the terminal UI.
type Screen interface {
	Init() tea.Cmd

	// Update handles a message and returns the screen to keep.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the content area, excluding header and footer.
	View(width, height int) string

	// Title is shown in the header.
	Title() string
}

// KeyHintProvider is implemented by screens with their own footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// PushMsg opens Screen on top of the current one.
type PushMsg struct {
	Screen Screen
}

// BackMsg closes the top screen.
type BackMsg struct{}

// HomeMsg closes every screen above the root.
type HomeMsg struct{}

// Router routes messages to the top screen.
type Router struct {
	root    Screen
	stacked []Screen
}

// New creates a Router whose root is root.
func New(root Screen) *Router {
	return &Router{root: root}
}

// Push opens s and returns its Init command.
func (r *Router) Push(s Screen) tea.Cmd {
	r.stacked = append(r.stacked, s)
	return s.Init()
}

// Back closes the top screen. It reports false at the root.
func (r *Router) Back() bool {
	if len(r.stacked) == 0 {
		return false
	}
	r.stacked[len(r.stacked)-1] = nil
	r.stacked = r.stacked[:len(r.stacked)-1]
	return true
}

// Home closes every screen above the root.
func (r *Router) Home() {
	clear(r.stacked)
	r.stacked = r.stacked[:0]
}

// Active returns the top screen.
func (r *Router) Active() Screen {
	if n := len(r.stacked); n > 0 {
		return r.stacked[n-1]
	}
	return r.root
}

// Depth counts the root and every open screen.
func (r *Router) Depth() int {
	return 1 + len(r.stacked)
}

// KeyHints returns the active screen's hints, if it has any.
func (r *Router) KeyHints() []layout.KeyHint {
	if p, ok := r.Active().(KeyHintProvider); ok {
		return p.KeyHints()
	}
	return nil
}

// Update applies navigation messages and forwards everything else to the
// active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushMsg:
		return r.Push(msg.Screen)
	case BackMsg:
		r.Back()
		return nil
	case HomeMsg:
		r.Home()
		return nil
	}

	updated, cmd := r.Active().Update(msg)
	if n := len(r.stacked); n > 0 {
		r.stacked[n-1] = updated
	} else {
		r.root = updated
	}
	return cmd
}

// View renders the active screen.
func (r *Router) View(width, height int) string {
	return r.Active().View(width, height)
}
