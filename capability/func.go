package capability

import (
	"context"
	"fmt"

	"github.com/hupe1980/greetloop/internal/util"
)

// Func is a generic adapter that exposes a plain Go function as a Capability.
//
// Responsibilities:
//   - Holds a lightweight JSON-Schema-like parameter specification
//   - Validates model supplied arguments against that schema before execution
//   - Normalizes error handling so callers receive *Error with consistent
//     codes:
//     VALIDATION_ERROR -> schema / argument mismatch
//     EXECUTION_ERROR  -> underlying function returned an error (non-Error)
//     (custom codes preserved if the function returns *Error directly)
//
// A Func has no internal mutable state after construction and is safe for
// concurrent use by multiple goroutines.
type Func struct {
	// Capability identifier (snake_case recommended)
	name string
	// Human-readable description shown to models
	description string
	// JSON schema describing accepted arguments
	parameters map[string]any
	// User supplied implementation
	fn func(ctx context.Context, args map[string]any) (string, error)
}

// NewFunc constructs a Func from an explicit schema and function.
//
// Example:
//
//	shout := NewFunc(
//	  "shout",
//	  "Upper-case a phrase",
//	  map[string]any{
//	    "type": "object",
//	    "properties": map[string]any{
//	      "phrase": map[string]any{"type": "string"},
//	    },
//	    "required": []string{"phrase"},
//	  },
//	  func(ctx context.Context, args map[string]any) (string, error) {
//	    return strings.ToUpper(args["phrase"].(string)), nil
//	  },
//	)
func NewFunc(
	name, description string,
	parameters map[string]any,
	fn func(ctx context.Context, args map[string]any) (string, error),
) *Func {
	return &Func{
		name:        name,
		description: description,
		parameters:  parameters,
		fn:          fn,
	}
}

// NewFuncFromStruct derives the parameter schema from a struct using
// reflection, equivalent to passing util.CreateSchema(structType) to NewFunc.
func NewFuncFromStruct(
	name, description string,
	structType any,
	fn func(ctx context.Context, args map[string]any) (string, error),
) *Func {
	return NewFunc(name, description, util.CreateSchema(structType), fn)
}

// Name returns the unique capability name used in request declarations and routing.
func (f *Func) Name() string { return f.name }

// Description returns the short natural language description exposed to models.
func (f *Func) Description() string { return f.description }

// Parameters returns the (minimal) JSON schema describing expected arguments.
func (f *Func) Parameters() map[string]any { return f.parameters }

// Call validates the provided args against the declared schema then invokes
// the underlying function. Validation or execution failures are wrapped (or
// passed through) as *Error for uniform downstream handling.
func (f *Func) Call(ctx context.Context, args map[string]any) (string, error) {
	if err := util.ValidateParameters(args, f.parameters); err != nil {
		return "", &Error{
			Capability: f.name,
			Message:    fmt.Sprintf("parameter validation failed: %v", err),
			Code:       "VALIDATION_ERROR",
			Details:    err,
		}
	}

	result, err := f.fn(ctx, args)
	if err != nil {
		if capErr, ok := err.(*Error); ok {
			return "", capErr
		}

		return "", &Error{
			Capability: f.name,
			Message:    err.Error(),
			Code:       "EXECUTION_ERROR",
		}
	}

	return result, nil
}
