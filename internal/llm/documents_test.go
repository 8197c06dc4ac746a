package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestWithDocumentText_InlinesExtractedText(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)})
	var extracted []byte
	p := WithDocumentText(mock, func(data []byte) (string, error) {
		extracted = data
		return "Solar output rose every year.", nil
	})

	_, err := p.Generate(context.Background(), Request{
		JSON: true,
		Messages: []Message{{
			Role:    RoleUser,
			Content: "Create an exam.",
			Attachments: []Attachment{
				{Name: "energy.pdf", MIMEType: MIMETypePDF, Data: []byte("%PDF-1.4 body")},
			},
		}},
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	call, ok := mock.LastCall()
	if !ok || len(call.Messages) != 1 {
		t.Fatalf("inner call = %+v, %v", call, ok)
	}
	msg := call.Messages[0]
	if len(msg.Attachments) != 0 {
		t.Errorf("attachments forwarded: %d", len(msg.Attachments))
	}
	if !strings.HasPrefix(msg.Content, "Create an exam.") ||
		!strings.Contains(msg.Content, "[Input Document: energy.pdf]\nSolar output rose every year.") {
		t.Errorf("content = %q", msg.Content)
	}
	if !call.JSON {
		t.Error("JSON flag dropped")
	}
	if !bytes.Equal(extracted, []byte("%PDF-1.4 body")) {
		t.Errorf("extractor got %q", extracted)
	}
}

func TestWithDocumentText_PassesTextRequestsThrough(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)})
	p := WithDocumentText(mock, func([]byte) (string, error) {
		t.Fatal("extractor must not run without attachments")
		return "", nil
	})

	req := Request{Messages: []Message{{Role: RoleUser, Content: "topic"}}}
	if _, err := p.Generate(context.Background(), req); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	call, _ := mock.LastCall()
	if !reflect.DeepEqual(call.Messages, req.Messages) {
		t.Errorf("messages = %+v, want %+v", call.Messages, req.Messages)
	}
}

func TestWithDocumentText_ExtractionError(t *testing.T) {
	mock := NewMockProvider()
	p := WithDocumentText(mock, func([]byte) (string, error) {
		return "", errors.New("scanned document")
	})

	_, err := p.Generate(context.Background(), Request{Messages: []Message{{
		Role:        RoleUser,
		Attachments: []Attachment{{MIMEType: MIMETypePDF, Data: []byte("%PDF")}},
	}}})
	if err == nil || !strings.Contains(err.Error(), "document.pdf") {
		t.Errorf("err = %v, want it to name document.pdf", err)
	}
	if mock.CallCount() != 0 {
		t.Errorf("CallCount = %d, want 0", mock.CallCount())
	}
}

func TestWithDocumentText_RejectsNonPDF(t *testing.T) {
	p := WithDocumentText(NewMockProvider(), func([]byte) (string, error) { return "", nil })

	_, err := p.Generate(context.Background(), Request{Messages: []Message{{
		Role:        RoleUser,
		Attachments: []Attachment{{MIMEType: "image/png"}},
	}}})

	var unsupported *ErrUnsupportedAttachment
	if !errors.As(err, &unsupported) {
		t.Fatalf("err = %v, want *ErrUnsupportedAttachment", err)
	}
	if unsupported.MIMEType != "image/png" {
		t.Errorf("MIMEType = %q", unsupported.MIMEType)
	}
}

func TestSupportsDocuments(t *testing.T) {
	tests := []struct {
		name string
		p    Provider
		want bool
	}{
		{"gemini", &GeminiProvider{}, true},
		{"anthropic", &AnthropicProvider{}, true},
		{"openai", &OpenAIProvider{}, false},
		{"mock", NewMockProvider(), true},
	}
	for _, tt := range tests {
		if got := SupportsDocuments(tt.p); got != tt.want {
			t.Errorf("SupportsDocuments(%s) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
