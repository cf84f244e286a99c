package agent

import "fmt"

// RoundLimitError reports a run that exhausted its round budget without the
// model producing a request-free reply. The partial conversation log stays in
// the caller-owned State for inspection.
type RoundLimitError struct {
	MaxRounds int
}

func (e *RoundLimitError) Error() string {
	return fmt.Sprintf("exceeded max rounds: %d", e.MaxRounds)
}

// UpstreamError wraps a model boundary failure. It is fatal for the run and
// never retried; Round is the 1-based round in which the call failed.
type UpstreamError struct {
	Round int
	Err   error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("model call failed in round %d: %v", e.Round, e.Err)
}

// Unwrap exposes the underlying provider error for errors.Is / errors.As.
func (e *UpstreamError) Unwrap() error { return e.Err }
