package examgen

import (
	"fmt"
	"strings"

	"github.com/abhisek/examgen/internal/docs"
)

// Mode is the input mode toggle.
type Mode string

const (
	ModeText Mode = "text"
	ModePDF  Mode = "pdf"
)

// Content types of a Source payload.
const (
	ContentTypeText = "text/plain"
	ContentTypePDF  = "application/pdf"
)

// ParseMode accepts the mode names used by the forms and flags.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "text paste":
		return ModeText, nil
	case "pdf", "pdf upload":
		return ModePDF, nil
	}
	return "", fmt.Errorf("unknown input mode %q", s)
}

// Source is the single payload an exam is generated from: pasted text or
// an uploaded document, never both.
type Source struct {
	Mode Mode

	// Text is the pasted topic or passage, sent verbatim.
	Text string

	// Name and Data describe the uploaded document.
	Name string
	Data []byte
}

// NewTextSource returns a text-mode source.
func NewTextSource(text string) Source {
	return Source{Mode: ModeText, Text: text}
}

// NewDocumentSource returns a document-mode source.
func NewDocumentSource(name string, data []byte) Source {
	return Source{Mode: ModePDF, Name: name, Data: data}
}

// SourceFromMode builds the source for the active mode, ignoring the
// other mode's input entirely.
func SourceFromMode(mode Mode, text, name string, data []byte) Source {
	if mode == ModePDF {
		return NewDocumentSource(name, data)
	}
	return NewTextSource(text)
}

// ContentType is the payload's type tag.
func (s Source) ContentType() string {
	if s.Mode == ModePDF {
		return ContentTypePDF
	}
	return ContentTypeText
}

// Validate rejects empty input and documents that do not start with the
// PDF header, whatever their name says.
func (s Source) Validate() error {
	switch s.Mode {
	case ModePDF:
		if len(s.Data) == 0 {
			return ErrEmptySource
		}
		if !docs.LooksLikePDF(s.Data) {
			return fmt.Errorf("%s: %w", s.Name, ErrUnsupportedDocument)
		}
		return nil
	default:
		if strings.TrimSpace(s.Text) == "" {
			return ErrEmptySource
		}
		return nil
	}
}

// Describe is a short human label for status lines.
func (s Source) Describe() string {
	if s.Mode == ModePDF {
		return fmt.Sprintf("PDF %s (%d bytes)", s.Name, len(s.Data))
	}
	return fmt.Sprintf("text (%d chars)", len([]rune(s.Text)))
}
