// Package capability implements the greeting side of the system: the
// Capability interface models call into, schema validated argument handling,
// an insertion-ordered Registry for dynamic lookup and the built-in
// per-language greeting capabilities.
package capability

import (
	"context"
	"fmt"

	"github.com/hupe1980/greetloop/internal/util"
)

// Capability defines a named operation a model can request during a
// conversation.
//
// Implementations should:
//   - Provide clear, descriptive names and descriptions (snake_case names)
//   - Define a minimal JSON schema for their arguments
//   - Be safe for concurrent use; Call may run in parallel with other
//     capabilities of the same round
type Capability interface {
	// Name returns the unique identifier for this capability.
	Name() string

	// Description returns a human-readable description of what this
	// capability does. It is surfaced to the model to guide selection.
	Description() string

	// Parameters returns a JSON schema describing the expected arguments.
	Parameters() map[string]any

	// Call executes the capability with already-decoded arguments and
	// returns the textual result.
	Call(ctx context.Context, args map[string]any) (string, error)
}

// ValidationError reports an argument that failed schema validation.
type ValidationError = util.ValidationError

// Error represents failures raised while executing a capability.
type Error struct {
	Capability string `json:"capability"`        // Name of the capability that failed
	Message    string `json:"message"`           // Error message
	Code       string `json:"code"`              // Error code for categorization
	Details    any    `json:"details,omitempty"` // Additional error details
}

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("capability error [%s] in %s: %s", e.Code, e.Capability, e.Message)
	}
	return fmt.Sprintf("capability error in %s: %s", e.Capability, e.Message)
}

// NewError creates an Error with the specified details.
func NewError(capability, message, code string) *Error {
	return &Error{
		Capability: capability,
		Message:    message,
		Code:       code,
	}
}
