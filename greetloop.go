// Package greetloop provides a small conversational agent that greets people
// in different languages by delegating every greeting to a per-language
// capability. Most applications interact with this package by:
//  1. Creating a Greeter via New() over a model (OpenAI, Anthropic or the
//     in-memory mock)
//  2. Optionally wiring a tracer provider so conversations land in Phoenix
//  3. Running prompts through Greet (final reply only) or Run (full message
//     log)
//
// The façade delegates the decide/execute control flow to agent.Loop while
// keeping setup concise. Defaults are safe for local development: the
// built-in four-language registry, a 25-round budget and no-op logging.
package greetloop

import (
	"context"

	"go.opentelemetry.io/otel/trace"

	"github.com/hupe1980/greetloop/agent"
	"github.com/hupe1980/greetloop/capability"
	"github.com/hupe1980/greetloop/conversation"
	"github.com/hupe1980/greetloop/logging"
	"github.com/hupe1980/greetloop/model"
	"github.com/hupe1980/greetloop/tracing"
)

// Version is the module release version.
const Version = "0.1.0"

// Options configure a Greeter.
type Options struct {
	// Capabilities form the greeting registry. Defaults to the built-in
	// four-language set.
	Capabilities []capability.Capability

	// Instructions overrides the default system prompt.
	Instructions string

	// MaxRounds bounds the decide/execute rounds per conversation.
	MaxRounds int

	// MaxParallel caps concurrent capability executions within a round.
	// 0 means one goroutine per request.
	MaxParallel int

	// Logger receives structured run logs. Defaults to NoOpLogger.
	Logger logging.Logger

	// Hooks observe completed model and capability calls.
	Hooks []agent.Hook

	// TracerProvider, when set, wraps every conversation in a root span and
	// exports model and capability spans through it.
	TracerProvider trace.TracerProvider
}

// Greeter runs greeting conversations against a model.
type Greeter struct {
	loop   *agent.Loop
	tracer trace.TracerProvider
}

// New creates a Greeter over the given model.
func New(m model.Model, optFns ...func(o *Options)) *Greeter {
	opts := Options{
		Capabilities: capability.Greetings(),
		Instructions: agent.DefaultInstructions,
		MaxRounds:    agent.DefaultMaxRounds,
		Logger:       logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	hooks := opts.Hooks
	if opts.TracerProvider != nil {
		hooks = append(hooks, tracing.NewHook(opts.TracerProvider))
	}

	loop := agent.New(m, capability.NewRegistry(opts.Capabilities...), func(o *agent.Options) {
		o.Instructions = opts.Instructions
		o.MaxRounds = opts.MaxRounds
		o.MaxParallel = opts.MaxParallel
		o.Logger = opts.Logger
		o.Hooks = hooks
	})

	return &Greeter{loop: loop, tracer: opts.TracerProvider}
}

// Run drives one conversation for prompt and returns the full message log:
// the user prompt, every assistant turn, and one capability result per
// executed request. On error the log still contains everything appended
// before the failure.
func (g *Greeter) Run(ctx context.Context, prompt string) ([]conversation.Message, error) {
	state := conversation.New(conversation.NewUserMessage(prompt))

	var root trace.Span
	if g.tracer != nil {
		ctx, root = tracing.StartConversation(ctx, g.tracer, prompt)
	}

	err := g.loop.Run(ctx, state)

	if root != nil {
		output := ""
		if last, ok := state.Last(); ok && last.Role == conversation.RoleAssistant {
			output = last.Content
		}

		tracing.EndConversation(root, output, err)
	}

	return state.Messages(), err
}

// Greet runs one conversation and returns the final assistant reply.
func (g *Greeter) Greet(ctx context.Context, prompt string) (string, error) {
	msgs, err := g.Run(ctx, prompt)
	if err != nil {
		return "", err
	}

	return msgs[len(msgs)-1].Content, nil
}
