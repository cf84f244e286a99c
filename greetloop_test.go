package greetloop

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/hupe1980/greetloop/capability"
	"github.com/hupe1980/greetloop/conversation"
	"github.com/hupe1980/greetloop/model"
)

func TestGreeterRun(t *testing.T) {
	m := model.NewMock()
	m.EnqueueRequests(conversation.NewCapabilityRequest("hello_english", `{"name": "Alice"}`))
	m.Enqueue(conversation.NewAssistantMessage("I greeted Alice in English."))

	g := New(m)

	msgs, err := g.Run(context.Background(), "Say hello to Alice in English")
	require.NoError(t, err)
	require.Len(t, msgs, 4)

	assert.Equal(t, conversation.RoleUser, msgs[0].Role)
	assert.Equal(t, "Say hello to Alice in English", msgs[0].Content)
	assert.Equal(t, "Hello Alice", msgs[2].Content)
	assert.Equal(t, "hello_english", msgs[2].CapabilityName)
	assert.Equal(t, "I greeted Alice in English.", msgs[3].Content)
}

func TestGreeterGreet(t *testing.T) {
	m := model.NewMock()
	m.Enqueue(conversation.NewAssistantMessage("Hola Bob"))

	g := New(m)

	reply, err := g.Greet(context.Background(), "Greet Bob in Spanish")
	require.NoError(t, err)
	assert.Equal(t, "Hola Bob", reply)
}

func TestGreeterGreetModelFailure(t *testing.T) {
	m := model.NewMock()
	m.FailWith(errors.New("upstream down"))

	g := New(m)

	_, err := g.Greet(context.Background(), "Hi")
	require.Error(t, err)
}

func TestGreeterCustomCapabilities(t *testing.T) {
	wave := capability.NewFunc("wave", "Wave at someone.",
		map[string]any{"type": "object", "properties": map[string]any{}},
		func(_ context.Context, _ map[string]any) (string, error) {
			return "👋", nil
		})

	m := model.NewMock()
	m.EnqueueRequests(conversation.NewCapabilityRequest("wave", "{}"))
	m.Enqueue(conversation.NewAssistantMessage("Waved."))

	g := New(m, func(o *Options) {
		o.Capabilities = []capability.Capability{wave}
		o.Instructions = "You wave at people."
	})

	msgs, err := g.Run(context.Background(), "Wave at Chen")
	require.NoError(t, err)
	require.Len(t, msgs, 4)
	assert.Equal(t, "👋", msgs[2].Content)
}

func TestGreeterTracingWired(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(sdktrace.NewSimpleSpanProcessor(exporter)),
	)

	m := model.NewMock()
	m.EnqueueRequests(conversation.NewCapabilityRequest("hello_mandarin", `{"name": "Chen"}`))
	m.Enqueue(conversation.NewAssistantMessage("你好 Chen delivered."))

	g := New(m, func(o *Options) {
		o.TracerProvider = tp
	})

	_, err := g.Run(context.Background(), "Say hello to Chen in Mandarin")
	require.NoError(t, err)

	// Two model rounds, one capability, one conversation root.
	spans := exporter.GetSpans()
	require.Len(t, spans, 4)

	root := spans[len(spans)-1]
	assert.Equal(t, "conversation", root.Name)
	for _, s := range spans[:3] {
		assert.Equal(t, root.SpanContext.TraceID(), s.SpanContext.TraceID())
	}
}
