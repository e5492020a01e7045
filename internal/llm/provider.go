package llm

import (
	"context"
	"encoding/json"
)

// Provider generates one structured completion per call.
type Provider interface {
	// Generate sends req and returns the model output. When req.Schema is
	// set, Content is JSON that has been validated against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the configured model identifier.
	ModelID() string
}

// Request is a single-shot prompt.
type Request struct {
	System   string
	Messages []Message

	// Schema, when set, selects the provider's structured output mode.
	Schema *Schema

	MaxTokens   int
	Temperature float64
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one turn of the prompt.
type Message struct {
	Role    Role
	Content string
}

// UserMessage returns a single-element message list holding content.
func UserMessage(content string) []Message {
	return []Message{{Role: RoleUser, Content: content}}
}

// Schema names a JSON Schema the response must satisfy. Name is used as
// the schema or tool name on the wire, e.g. "coach-advice".
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any
}

// StopReason is the provider-neutral reason generation ended.
type StopReason string

const (
	StopEnd       StopReason = "end"
	StopMaxTokens StopReason = "max_tokens"
)

// Response is the model output with accounting data.
type Response struct {
	Content    json.RawMessage
	Usage      Usage
	Model      string
	StopReason StopReason
}

// Usage is the token count of one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
