package llm

import (
	"context"
	"encoding/json"
)

// Provider is the core abstraction for the generation service.
// Consumers call Generate with a Request and receive the raw output.
type Provider interface {
	// Generate sends a prompt to the model and returns its output. When
	// the request's JSON flag is set, the provider asks the service for a
	// JSON-only response and Content holds that JSON text.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ListModels returns the model names usable for content generation.
	ListModels(ctx context.Context) ([]string, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the model.
type Request struct {
	// System is the system prompt. Optional; exam generation sends its
	// instructions as part of the user message.
	System string

	// Messages is the conversation. Exam generation sends one user message.
	Messages []Message

	// Model overrides the provider's configured model for this request.
	Model string

	// JSON requests a JSON-only response.
	JSON bool

	// MaxTokens is the maximum number of tokens in the response.
	// Zero leaves the service default.
	MaxTokens int

	// Temperature controls randomness. Range: 0.0 - 1.0.
	// Zero leaves the service default.
	Temperature float64
}

// Message represents a single message in the conversation.
type Message struct {
	Role    Role
	Content string

	// Attachments are binary parts sent after Content, e.g. a PDF.
	Attachments []Attachment
}

// Attachment is an opaque binary document passed to the model as-is.
type Attachment struct {
	Name     string
	MIMEType string
	Data     []byte
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// MIMETypePDF is the content type of PDF attachments.
const MIMETypePDF = "application/pdf"

// Response holds the model's output.
type Response struct {
	// Content is the generated output as returned by the service.
	Content json.RawMessage

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason indicates why generation stopped.
	// Normalized to: "end", "max_tokens", "error"
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// modelFor returns the request's model override or the fallback.
func modelFor(req Request, fallback string) string {
	if req.Model != "" {
		return req.Model
	}
	return fallback
}
