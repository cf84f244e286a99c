// Package agent contains the control loop that drives a greeting
// conversation. The package focuses on three concerns:
//
//  1. The decide/execute round state machine (Loop)
//  2. Bounded parallel capability execution with order-preserving results
//  3. Fire-and-forget observation hooks for tracing and metrics
//
// Design principles:
//   - Minimal hidden state: the caller owns the conversation State, the Loop
//     owns nothing between runs
//   - Typed, inspectable failures (UpstreamError, RoundLimitError)
//   - Observability never influences outcomes: hook panics are swallowed
//
// Execution Model:
//   - Run calls the model once per round with the full log and capability
//     schema, appends the reply, executes any capability requests and appends
//     their results in request order, then loops
//   - A reply without requests terminates the run successfully
//   - Exhausting the round budget terminates it with *RoundLimitError
//
// The package intentionally keeps model specifics and the capability registry
// in their respective packages to avoid cyclic deps.
package agent
