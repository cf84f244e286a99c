package tracing

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/hupe1980/greetloop/agent"
)

// scopeName identifies the instrumentation scope on emitted spans.
const scopeName = "github.com/hupe1980/greetloop/tracing"

// StartConversation opens the root span that groups one run's model and
// capability spans into a single trace. Pass the returned context to
// Loop.Run so the hook parents its spans under it, and close the span with
// EndConversation when the run finishes.
func StartConversation(ctx context.Context, tp trace.TracerProvider, input string) (context.Context, trace.Span) {
	return tp.Tracer(scopeName).Start(ctx, "conversation",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String(spanKindAttr, kindAgent),
			attribute.String("input.value", input),
		),
	)
}

// EndConversation records the run outcome on the root span and ends it.
func EndConversation(span trace.Span, output string, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
		if output != "" {
			span.SetAttributes(attribute.String("output.value", output))
		}
	}

	span.End()
}

// hook turns completed call records into spans. Spans start and end at the
// recorded timestamps rather than wrapping the live call, so emitting them
// costs the loop nothing but the in-process enqueue.
type hook struct {
	tracer trace.Tracer
}

// NewHook returns an agent.Hook that exports model calls as LLM spans and
// capability executions as TOOL spans through the given provider.
func NewHook(tp trace.TracerProvider) agent.Hook {
	return &hook{tracer: tp.Tracer(scopeName)}
}

// OnModelCall implements agent.Hook.
func (h *hook) OnModelCall(ctx context.Context, call agent.ModelCall) {
	attrs := []attribute.KeyValue{
		attribute.String(spanKindAttr, kindLLM),
		attribute.String("llm.model_name", call.Model.Name),
		attribute.String("llm.provider", call.Model.Provider),
		attribute.Int("round", call.Round),
	}
	if n := len(call.Request.Messages); n > 0 {
		attrs = append(attrs, attribute.String("input.value", call.Request.Messages[n-1].Content))
	}
	if call.Reply != nil {
		if call.Reply.Content != "" {
			attrs = append(attrs, attribute.String("output.value", call.Reply.Content))
		}

		attrs = append(attrs, attribute.Int("llm.capability_requests", len(call.Reply.Requests)))
	}

	_, span := h.tracer.Start(ctx, call.Model.Name,
		trace.WithTimestamp(call.Start),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attrs...),
	)

	h.finish(span, call.Err, call.Start.Add(call.Duration))
}

// OnCapabilityCall implements agent.Hook.
func (h *hook) OnCapabilityCall(ctx context.Context, call agent.CapabilityCall) {
	_, span := h.tracer.Start(ctx, call.Request.Name,
		trace.WithTimestamp(call.Start),
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String(spanKindAttr, kindTool),
			attribute.String("tool.name", call.Request.Name),
			attribute.String("input.value", call.Request.Arguments),
			attribute.String("output.value", call.Result),
			attribute.Int("round", call.Round),
		),
	)

	h.finish(span, call.Err, call.Start.Add(call.Duration))
}

// finish stamps the status and closes the span at the recorded end time.
func (h *hook) finish(span trace.Span, err error, end time.Time) {
	if err != nil {
		span.RecordError(err, trace.WithTimestamp(end))
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}

	span.End(trace.WithTimestamp(end))
}
