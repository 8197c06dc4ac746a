package llm

import (
	"context"
	"fmt"
	"strings"
)

// DocumentSupporter is implemented by providers that accept PDF
// attachments natively.
type DocumentSupporter interface {
	SupportsDocuments() bool
}

// SupportsDocuments reports whether p accepts PDF attachments.
func SupportsDocuments(p Provider) bool {
	ds, ok := p.(DocumentSupporter)
	return ok && ds.SupportsDocuments()
}

// SupportsDocuments returns true; PDFs travel as inline data parts.
func (p *GeminiProvider) SupportsDocuments() bool { return true }

// SupportsDocuments returns true; PDFs travel as document blocks.
func (p *AnthropicProvider) SupportsDocuments() bool { return true }

// SupportsDocuments returns false; chat completions carry text only.
func (p *OpenAIProvider) SupportsDocuments() bool { return false }

// TextExtractor turns a PDF into plain text.
type TextExtractor func(data []byte) (string, error)

// DocumentTextProvider replaces PDF attachments with their extracted text
// before handing the request to a provider without document support.
type DocumentTextProvider struct {
	inner   Provider
	extract TextExtractor
}

// WithDocumentText wraps p so PDF attachments are inlined as text.
func WithDocumentText(p Provider, extract TextExtractor) Provider {
	return &DocumentTextProvider{inner: p, extract: extract}
}

func (d *DocumentTextProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	msgs := make([]Message, len(req.Messages))
	for i, m := range req.Messages {
		if len(m.Attachments) == 0 {
			msgs[i] = m
			continue
		}

		var b strings.Builder
		b.WriteString(m.Content)
		for _, a := range m.Attachments {
			if a.MIMEType != MIMETypePDF {
				return nil, &ErrUnsupportedAttachment{Provider: d.inner.ModelID(), MIMEType: a.MIMEType}
			}
			text, err := d.extract(a.Data)
			if err != nil {
				return nil, fmt.Errorf("extract text from %s: %w", attachmentName(a), err)
			}
			fmt.Fprintf(&b, "\n[Input Document: %s]\n%s", attachmentName(a), text)
		}
		msgs[i] = Message{Role: m.Role, Content: b.String()}
	}
	req.Messages = msgs
	return d.inner.Generate(ctx, req)
}

func (d *DocumentTextProvider) ListModels(ctx context.Context) ([]string, error) {
	return d.inner.ListModels(ctx)
}

func (d *DocumentTextProvider) ModelID() string {
	return d.inner.ModelID()
}

func attachmentName(a Attachment) string {
	if a.Name == "" {
		return "document.pdf"
	}
	return a.Name
}

// SupportsDocuments returns true; the mock records attachments untouched.
func (m *MockProvider) SupportsDocuments() bool { return true }
