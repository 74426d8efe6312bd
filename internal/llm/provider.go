// Package llm abstracts the AI providers that can author practice
// questions. A Provider takes a prompt plus an optional JSON schema and
// returns validated structured output; decorators add retry and request
// logging around any provider.
package llm

import (
	"context"
	"encoding/json"
	"errors"
)

// ErrNotConfigured signals that no AI provider is configured. Callers that
// need AI generation should fail fast with setup instructions rather than
// limp along.
var ErrNotConfigured = errors.New("no AI provider configured")

// Provider is the minimal surface the rest of the app talks to.
type Provider interface {
	// Generate sends one request and returns the model's output. When the
	// request carries a Schema the returned Content is JSON that has been
	// validated against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID names the model this provider targets.
	ModelID() string
}

// Request is one generation call.
type Request struct {
	// System sets the model's role and constraints.
	System string

	// Messages is the conversation. Question generation is single turn,
	// so this is normally one user message.
	Messages []Message

	// Schema, when set, makes the provider use its native structured
	// output mechanism and validates the reply against the schema.
	Schema *Schema

	// MaxTokens caps the response length.
	MaxTokens int

	// Temperature in [0,1]; zero means deterministic.
	Temperature float64
}

// Message is one turn of the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema names a JSON Schema the response must satisfy.
type Schema struct {
	// Name identifies the schema, kebab-case ("quiz-questions").
	Name string

	// Description tells the model what the schema represents.
	Description string

	// Definition is the JSON Schema as a map.
	Definition map[string]any
}

// Response is the model's output plus accounting.
type Response struct {
	// Content is the generated output; validated JSON when the request
	// had a Schema.
	Content json.RawMessage

	// Usage reports token consumption.
	Usage Usage

	// Model is the model that actually served the request.
	Model string

	// StopReason is normalized to "end" or "max_tokens".
	StopReason string
}

// Usage tracks token counts for one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
