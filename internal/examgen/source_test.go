package examgen

import (
	"errors"
	"testing"

)

func TestSourceValidate(t *testing.T) {
	pdf := []byte("%PDF-1.5\n...")

	tests := []struct {
		name    string
		src     Source
		wantErr error
	}{
		{"text", NewTextSource("renewable energy adoption trends"), nil},
		{"empty text", NewTextSource(""), ErrEmptySource},
		{"whitespace text", NewTextSource(" \n\t "), ErrEmptySource},
		{"pdf", NewDocumentSource("report.pdf", pdf), nil},
		{"pdf upper-case extension", NewDocumentSource("REPORT.PDF", pdf), nil},
		{"pdf sniffed without extension", NewDocumentSource("upload", pdf), nil},
		{"pdf extension on other bytes", NewDocumentSource("report.pdf", []byte("data")), ErrUnsupportedDocument},
		{"renamed text file", NewDocumentSource("notes.pdf", []byte("plain text, not a document")), ErrUnsupportedDocument},
		{"empty document", NewDocumentSource("report.pdf", nil), ErrEmptySource},
		{"not a pdf", NewDocumentSource("notes.txt", []byte("hello")), ErrUnsupportedDocument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.src.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSourceFromModeUsesOnlyActiveMode(t *testing.T) {
	text := SourceFromMode(ModeText, "topic", "a.pdf", []byte("%PDF-1.4"))
	if text.Mode != ModeText || text.Text != "topic" || text.Data != nil {
		t.Errorf("text source = %+v", text)
	}
	if text.ContentType() != ContentTypeText {
		t.Errorf("text ContentType = %q", text.ContentType())
	}

	doc := SourceFromMode(ModePDF, "topic", "a.pdf", []byte("%PDF-1.4"))
	if doc.Mode != ModePDF || doc.Text != "" {
		t.Errorf("document source = %+v", doc)
	}
	if doc.ContentType() != ContentTypePDF {
		t.Errorf("document ContentType = %q", doc.ContentType())
	}

	// An empty PDF mode stays empty even with text present.
	empty := SourceFromMode(ModePDF, "topic", "", nil)
	if err := empty.Validate(); !errors.Is(err, ErrEmptySource) {
		t.Errorf("empty document Validate() = %v, want %v", err, ErrEmptySource)
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
	}{
		{"", ModeText},
		{"text", ModeText},
		{"Text Paste", ModeText},
		{"pdf", ModePDF},
		{"PDF Upload", ModePDF},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if err != nil {
			t.Errorf("ParseMode(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	if _, err := ParseMode("image"); err == nil {
		t.Error("ParseMode(image) succeeded")
	}
}
