package model

import (
	"context"

	"github.com/hupe1980/greetloop/conversation"
)

// CapabilityDefinition declaratively exposes a callable capability to the model.
// Parameters is a JSON Schema object (draft agnostic, minimal subset expected).
type CapabilityDefinition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"` // JSON Schema
}

// Request captures the normalized model input built by the agent loop: system
// instructions, the capability schema and the full conversation log. The loop
// rebuilds it from scratch every round, so providers must not retain it.
type Request struct {
	Instructions string                 `json:"instructions"`
	Capabilities []CapabilityDefinition `json:"capabilities,omitempty"`
	Messages     []conversation.Message `json:"messages"`
}

// Info contains metadata about a model implementation.
type Info struct {
	Name                 string `json:"name"`
	Provider             string `json:"provider"` // "openai", "anthropic", "mock", etc.
	SupportsCapabilities bool   `json:"supports_capabilities"`
}

// Model is the minimal interface the agent loop drives. Generate performs one
// blocking model invocation and returns exactly one assistant message, which
// may carry capability requests. Implementations must honor ctx cancellation;
// they must not mutate the request or return a partial reply alongside an
// error.
type Model interface {
	Generate(ctx context.Context, req Request) (*conversation.Message, error)

	// Info returns information about the model implementation.
	Info() Info
}
