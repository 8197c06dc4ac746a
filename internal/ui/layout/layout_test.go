package layout

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
)

func TestIsTooSmall(t *testing.T) {
	tests := []struct {
		w, h int
		want bool
	}{
		{80, 24, false},
		{MinWidth, MinHeight, false},
		{MinWidth - 1, 40, true},
		{120, MinHeight - 1, true},
	}
	for _, tt := range tests {
		if got := IsTooSmall(tt.w, tt.h); got != tt.want {
			t.Errorf("IsTooSmall(%d, %d) = %v, want %v", tt.w, tt.h, got, tt.want)
		}
	}
}

func TestRenderHeader(t *testing.T) {
	out := RenderHeader("New Exam", "gemini-1.5-flash", 80)
	for _, want := range []string{"examgen", "New Exam", "model: gemini-1.5-flash"} {
		if !strings.Contains(out, want) {
			t.Errorf("header missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(RenderHeader("New Exam", "", 80), "model:") {
		t.Error("model label shown without a model")
	}
}

func TestRenderFooter(t *testing.T) {
	out := RenderFooter([]KeyHint{{Key: "Ctrl+G", Description: "Generate"}, {Key: "Esc", Description: "Back"}}, 80)
	for _, want := range []string{"Ctrl+G", "Generate", "Back"} {
		if !strings.Contains(out, want) {
			t.Errorf("footer missing %q:\n%s", want, out)
		}
	}
}

func TestRenderFrameFillsHeight(t *testing.T) {
	out := RenderFrame(RenderHeader("T", "", 70), "body", RenderFooter(nil, 70), 70, 30)
	if h := lipgloss.Height(out); h != 30 {
		t.Errorf("frame height = %d, want 30", h)
	}
	if !strings.Contains(out, "body") {
		t.Error("frame dropped the body")
	}
}
