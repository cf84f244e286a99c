package agent

import (
	"context"
	"fmt"
	"time"

	"github.com/hupe1980/greetloop/capability"
	"github.com/hupe1980/greetloop/conversation"
	"github.com/hupe1980/greetloop/logging"
	"github.com/hupe1980/greetloop/model"
)

// DefaultMaxRounds bounds the decide/execute rounds of a run when the caller
// does not inject a budget. It exists to stop runaway conversations with a
// model that keeps requesting capabilities.
const DefaultMaxRounds = 25

// DefaultInstructions is the system prompt of the greeting assistant. The
// wording deliberately forbids the model from composing greetings itself so
// every greeting flows through a capability.
const DefaultInstructions = `You are a greeting assistant that can greet people in different languages.
You MUST use the appropriate tool for each language:
- Use hello_english for English greetings
- Use hello_mandarin for Mandarin/Chinese greetings
- Use hello_spanish for Spanish greetings
- Use hello_hebrew for Hebrew greetings

IMPORTANT: You must ALWAYS use the tools to generate greetings. Never generate greetings yourself.`

// Options configure a Loop.
type Options struct {
	// Instructions is the system prompt sent with every model request.
	Instructions string

	// MaxRounds is the round budget per run; values < 1 fall back to
	// DefaultMaxRounds.
	MaxRounds int

	// MaxParallel caps concurrent capability executions within a round.
	// 0 means one goroutine per request.
	MaxParallel int

	// Logger receives structured run logs. Defaults to NoOpLogger.
	Logger logging.Logger

	// Hooks observe completed model and capability calls.
	Hooks []Hook
}

// Loop is the agent control loop: it alternates model decisions and
// capability executions over a caller-owned conversation State until the
// model stops requesting work or the round budget runs out.
//
// A Loop is immutable after construction and may be reused for any number of
// sequential runs; each Run must drive a State of its own.
type Loop struct {
	model    model.Model
	registry *capability.Registry
	opts     Options
	logger   logging.Logger
	hooks    []Hook
	executor *requestExecutor
}

// New creates a Loop over the given model and capability registry.
func New(m model.Model, registry *capability.Registry, optFns ...func(o *Options)) *Loop {
	opts := Options{
		Instructions: DefaultInstructions,
		MaxRounds:    DefaultMaxRounds,
		Logger:       logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.MaxRounds < 1 {
		opts.MaxRounds = DefaultMaxRounds
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}
	if registry == nil {
		registry = capability.NewRegistry()
	}

	return &Loop{
		model:    m,
		registry: registry,
		opts:     opts,
		logger:   opts.Logger,
		hooks:    opts.Hooks,
		executor: &requestExecutor{
			registry:    registry,
			maxParallel: opts.MaxParallel,
			logger:      opts.Logger,
		},
	}
}

// Model returns the model driven by this loop.
func (l *Loop) Model() model.Model { return l.model }

// Registry returns the capability registry of this loop.
func (l *Loop) Registry() *capability.Registry { return l.registry }

// Run drives the conversation in state to completion. It returns nil when a
// round ends with a request-free assistant reply, *UpstreamError when a model
// call fails, and *RoundLimitError when the budget is exhausted. In every
// case the State retains whatever was appended before the return.
func (l *Loop) Run(ctx context.Context, state *conversation.State) error {
	defs := l.capabilityDefinitions()

	l.logger.Info(
		"agent.run.start",
		"model", l.model.Info().Name,
		"capabilities", len(defs),
		"max_rounds", l.opts.MaxRounds,
	)

	for round := 1; round <= l.opts.MaxRounds; round++ {
		reply, err := l.decide(ctx, round, defs, state)
		if err != nil {
			return err
		}

		state.Append(*reply)

		if !reply.HasRequests() {
			l.logger.Info("agent.run.complete", "rounds", round, "messages", state.Len())
			return nil
		}

		results := l.executor.Execute(ctx, round, reply.Requests, func(call CapabilityCall) {
			l.notifyCapabilityCall(ctx, call)
		})
		state.Append(results...)
	}

	l.logger.Warn("agent.run.round_limit", "max_rounds", l.opts.MaxRounds)

	return &RoundLimitError{MaxRounds: l.opts.MaxRounds}
}

// decide performs the deciding phase of one round: a single model call over
// the full log with the capability schema re-sent unchanged.
func (l *Loop) decide(
	ctx context.Context,
	round int,
	defs []model.CapabilityDefinition,
	state *conversation.State,
) (*conversation.Message, error) {
	req := model.Request{
		Instructions: l.opts.Instructions,
		Capabilities: defs,
		Messages:     state.Messages(),
	}

	start := time.Now()
	reply, err := l.model.Generate(ctx, req)
	dur := time.Since(start)

	if err == nil && reply == nil {
		err = fmt.Errorf("model returned no reply")
	}

	l.notifyModelCall(ctx, ModelCall{
		Round:    round,
		Model:    l.model.Info(),
		Request:  req,
		Reply:    reply,
		Err:      err,
		Start:    start,
		Duration: dur,
	})

	if err != nil {
		l.logger.Error("agent.model.error", "round", round, "error", err.Error())
		return nil, &UpstreamError{Round: round, Err: err}
	}

	l.logger.Info(
		"agent.model.executed",
		"round", round,
		"duration_ms", dur.Milliseconds(),
		"requests", len(reply.Requests),
	)

	return reply, nil
}

// capabilityDefinitions flattens the registry into the schema surfaced to the
// model, preserving registration order.
func (l *Loop) capabilityDefinitions() []model.CapabilityDefinition {
	caps := l.registry.All()
	defs := make([]model.CapabilityDefinition, 0, len(caps))
	for _, c := range caps {
		defs = append(defs, model.CapabilityDefinition{
			Name:        c.Name(),
			Description: c.Description(),
			Parameters:  c.Parameters(),
		})
	}
	return defs
}
