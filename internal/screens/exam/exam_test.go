package exam

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/examgen/internal/examgen"
	"github.com/abhisek/examgen/internal/router"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func sampleExam() *examgen.Exam {
	return &examgen.Exam{
		Title:   "T",
		Passage: "p",
		Chart: examgen.ChartSpec{
			Type: "bar", Title: "G", XLabel: "Category", YLabel: "Value",
			Data: []examgen.DataPoint{{Label: "2019", Value: 10}, {Label: "2020", Value: 25}},
		},
		Questions: []examgen.Question{
			{ID: 1, Text: "Q1?", Options: []string{"A", "B", "C", "D"}, Answer: "B", Explanation: "first reason"},
			{ID: 2, Text: "Q2?", Options: []string{"W", "X", "Y", "Z"}, Answer: "Z", Explanation: "second reason"},
		},
	}
}

func TestViewHidesAnswersUntilToggled(t *testing.T) {
	s := New(sampleExam())

	view := s.View(80, 200)
	assert.Contains(t, view, "Figure 1: G")
	assert.Contains(t, view, "2019")
	assert.Contains(t, view, "Q1. Q1?")
	assert.Contains(t, view, "Show Answer Q1")
	assert.NotContains(t, view, "正解")

	s.Update(specialKey(tea.KeyEnter))
	assert.True(t, s.Revealed(0))
	view = s.View(80, 200)
	assert.Contains(t, view, "正解: B")
	assert.Contains(t, view, "解説: first reason")
	assert.NotContains(t, view, "正解: Z")

	s.Update(specialKey(tea.KeyEnter))
	assert.False(t, s.Revealed(0))
}

func TestNavigation(t *testing.T) {
	s := New(sampleExam())

	s.Update(specialKey(tea.KeyUp))
	assert.Equal(t, 0, s.Cursor())

	s.Update(specialKey(tea.KeyDown))
	s.Update(specialKey(tea.KeyDown))
	assert.Equal(t, 1, s.Cursor())

	s.Update(specialKey(tea.KeySpace))
	assert.True(t, s.Revealed(1))
	assert.False(t, s.Revealed(0))
	assert.Contains(t, s.View(80, 200), "正解: Z")
}

func TestBackToCompose(t *testing.T) {
	s := New(sampleExam())

	_, cmd := s.Update(keyPress('g'))
	require.NotNil(t, cmd)
	assert.IsType(t, router.HomeMsg{}, cmd())
}

func TestEmptyExam(t *testing.T) {
	s := New(&examgen.Exam{Title: "No Title"})
	s.Update(specialKey(tea.KeyEnter))
	s.Update(specialKey(tea.KeyDown))

	view := s.View(80, 40)
	assert.Contains(t, view, "Figure 1:")
	assert.Equal(t, "No Title", s.Title())
}

func TestViewScrollsToCursor(t *testing.T) {
	exam := sampleExam()
	exam.Passage = "one\ntwo\nthree\nfour\nfive\nsix\nseven\neight"
	s := New(exam)

	s.Update(specialKey(tea.KeyDown))
	view := s.View(80, 6)
	assert.Contains(t, view, "Q2. Q2?")
}
