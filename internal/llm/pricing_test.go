package llm

import (
	"math"
	"testing"
)

func TestLookupCost(t *testing.T) {
	tests := []struct {
		model     string
		wantInput float64
		found     bool
	}{
		{"gemini-1.5-flash", 0.075, true},
		{"models/gemini-1.5-pro", 1.25, true},
		{"gemini-1.5-flash-002", 0.075, true},
		{"gemini-1.5-flash-8b-001", 0.0375, true},
		{"gpt-4o-mini", 0.15, true},
		{"totally-unknown", 0, false},
	}
	for _, tt := range tests {
		c := LookupCost(tt.model)
		if (c != nil) != tt.found {
			t.Errorf("LookupCost(%q) = %+v, found want %v", tt.model, c, tt.found)
			continue
		}
		if c != nil && c.InputPerMTok != tt.wantInput {
			t.Errorf("LookupCost(%q).InputPerMTok = %v, want %v", tt.model, c.InputPerMTok, tt.wantInput)
		}
	}
}

func TestModelCost_Cost(t *testing.T) {
	c := ModelCost{InputPerMTok: 1, OutputPerMTok: 2}
	if got := c.Cost(1000, 2000); math.Abs(got-0.005) > 1e-12 {
		t.Errorf("Cost = %v, want 0.005", got)
	}
}
