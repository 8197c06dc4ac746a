package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func TestTextInputMarker(t *testing.T) {
	ti := NewTextInput("path", 0)
	ti.Model.SetValue("report.pdf")

	steps := []struct {
		name   string
		mark   func()
		want   string
		absent string
	}{
		{"unmarked", func() {}, "", "✓"},
		{"valid", func() { ti.Mark(true) }, "✓", ""},
		{"invalid", func() { ti.Mark(false) }, "✗", ""},
		{"editing clears", func() { ti, _ = ti.Update(tea.KeyPressMsg{Code: 'x', Text: "x"}) }, "", "✗"},
	}
	for _, st := range steps {
		st.mark()
		view := ti.View()
		if st.want != "" && !strings.Contains(view, st.want) {
			t.Errorf("%s: view %q missing %q", st.name, view, st.want)
		}
		if st.absent != "" && strings.Contains(view, st.absent) {
			t.Errorf("%s: view %q still shows %q", st.name, view, st.absent)
		}
	}
	if got := ti.Value(); got != "report.pdfx" {
		t.Errorf("Value = %q, want report.pdfx", got)
	}
}
