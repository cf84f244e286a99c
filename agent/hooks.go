package agent

import (
	"context"
	"time"

	"github.com/hupe1980/greetloop/conversation"
	"github.com/hupe1980/greetloop/logging"
	"github.com/hupe1980/greetloop/model"
)

// ModelCall records one completed model invocation. Reply is nil when the
// call failed; Err is nil when it succeeded.
type ModelCall struct {
	Round    int
	Model    model.Info
	Request  model.Request
	Reply    *conversation.Message
	Err      error
	Start    time.Time
	Duration time.Duration
}

// CapabilityCall records one completed capability execution, including local
// recoveries: an unknown capability or a failed execution surfaces here with
// Err set while the conversation continues with a marker result.
type CapabilityCall struct {
	Round    int
	Request  conversation.CapabilityRequest
	Result   string
	Err      error
	Start    time.Time
	Duration time.Duration
}

// Hook observes completed loop transitions. Notification is strictly
// fire-and-forget: hooks cannot return errors, panics are recovered and
// logged, and nothing a hook does influences the run's outcome. Hooks may be
// invoked concurrently when capabilities execute in parallel and must be safe
// for concurrent use.
type Hook interface {
	// OnModelCall is invoked after every model invocation, successful or not.
	OnModelCall(ctx context.Context, call ModelCall)

	// OnCapabilityCall is invoked after every capability execution of a round.
	OnCapabilityCall(ctx context.Context, call CapabilityCall)
}

// HookFuncs adapts plain functions to the Hook interface. Nil fields are
// skipped.
type HookFuncs struct {
	ModelCall      func(ctx context.Context, call ModelCall)
	CapabilityCall func(ctx context.Context, call CapabilityCall)
}

// OnModelCall implements Hook.
func (h HookFuncs) OnModelCall(ctx context.Context, call ModelCall) {
	if h.ModelCall != nil {
		h.ModelCall(ctx, call)
	}
}

// OnCapabilityCall implements Hook.
func (h HookFuncs) OnCapabilityCall(ctx context.Context, call CapabilityCall) {
	if h.CapabilityCall != nil {
		h.CapabilityCall(ctx, call)
	}
}

func (l *Loop) notifyModelCall(ctx context.Context, call ModelCall) {
	for _, h := range l.hooks {
		safeNotify(l.logger, "model", func() { h.OnModelCall(ctx, call) })
	}
}

func (l *Loop) notifyCapabilityCall(ctx context.Context, call CapabilityCall) {
	for _, h := range l.hooks {
		safeNotify(l.logger, "capability", func() { h.OnCapabilityCall(ctx, call) })
	}
}

// safeNotify shields the run from observer failures.
func safeNotify(logger logging.Logger, kind string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("agent.hook.panic", "hook", kind, "recover", r)
		}
	}()
	fn()
}
