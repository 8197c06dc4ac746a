package examgen

import (
	"bytes"
	"strings"
	"testing"

	"github.com/abhisek/examgen/internal/llm"
)

func TestInstructions(t *testing.T) {
	custom := DefaultConfig()
	custom.MinWords, custom.MaxWords = 300, 300
	custom.MinQuestions, custom.MaxQuestions = 3, 6
	custom.ExplanationLanguage = "English"

	tests := []struct {
		name string
		cfg  Config
		want []string
	}{
		{
			name: "defaults",
			cfg:  DefaultConfig(),
			want: []string{
				"Japanese Common Test (Kyotsu Test)",
				"approx. 500-600 words",
				"CEFR B1/B2",
				"**4 to 5 questions**",
				`"chart_config"`,
				"Explanation in Japanese",
			},
		},
		{
			name: "custom",
			cfg:  custom,
			want: []string{"approx. 300 words", "**3-6 questions**", "Explanation in English"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Instructions(tt.cfg)
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("instructions missing %q", w)
				}
			}
		})
	}
}

func TestBuildRequest_TextInlinedVerbatim(t *testing.T) {
	input := "renewable energy adoption trends\n  with  spacing kept "
	req := BuildRequest(NewTextSource(input), DefaultConfig(), "gemini-1.5-pro")

	if !req.JSON {
		t.Error("JSON mode not requested")
	}
	if req.Model != "gemini-1.5-pro" {
		t.Errorf("Model = %q", req.Model)
	}
	if len(req.Messages) != 1 {
		t.Fatalf("got %d messages, want 1", len(req.Messages))
	}
	msg := req.Messages[0]
	if msg.Role != llm.RoleUser {
		t.Errorf("Role = %q, want user", msg.Role)
	}
	if len(msg.Attachments) != 0 {
		t.Errorf("unexpected attachments: %d", len(msg.Attachments))
	}
	if !strings.HasPrefix(msg.Content, Instructions(DefaultConfig())) {
		t.Error("content does not start with the instructions")
	}
	if !strings.HasSuffix(msg.Content, "\n[Input Topic/Text]\n"+input) {
		t.Errorf("content does not end with the verbatim input:\n%s", msg.Content)
	}
}

func TestBuildRequest_DocumentAttached(t *testing.T) {
	data := []byte("%PDF-1.4 raw bytes \x00\x01")
	req := BuildRequest(NewDocumentSource("report.pdf", data), DefaultConfig(), "")

	if len(req.Messages) != 1 {
		t.Fatalf("got %d messages, want 1", len(req.Messages))
	}
	msg := req.Messages[0]
	if msg.Content != Instructions(DefaultConfig()) {
		t.Errorf("content is not the bare instructions:\n%s", msg.Content)
	}
	if len(msg.Attachments) != 1 {
		t.Fatalf("got %d attachments, want 1", len(msg.Attachments))
	}
	a := msg.Attachments[0]
	if a.MIMEType != "application/pdf" || a.Name != "report.pdf" || !bytes.Equal(a.Data, data) {
		t.Errorf("attachment = %q %q %q", a.MIMEType, a.Name, a.Data)
	}
}

func TestConfigValidate(t *testing.T) {
	wordsInverted := DefaultConfig()
	wordsInverted.MaxWords = 100
	noQuestions := DefaultConfig()
	noQuestions.MinQuestions = 0

	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"defaults", DefaultConfig(), false},
		{"max words below min", wordsInverted, true},
		{"zero questions", noQuestions, true},
	}
	for _, tt := range tests {
		if err := tt.cfg.Validate(); (err != nil) != tt.wantErr {
			t.Errorf("%s: Validate() = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
	}
}
