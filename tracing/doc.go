// Package tracing wires conversation runs into Phoenix via OpenTelemetry.
//
// Setup builds a tracer provider that exports OTLP/HTTP spans to a Phoenix
// collector, tagged with the openinference.project.name resource attribute
// Phoenix uses to bucket traces into projects. NewHook adapts the provider
// to the agent's observer seam: every model call becomes an LLM span and
// every capability execution a TOOL span, reconstructed from the recorded
// timestamps. StartConversation opens the root span that groups one run
// into a single trace.
//
// The loop never waits on export; span delivery happens in the SDK's batch
// processor and its failures stay inside the SDK.
package tracing
