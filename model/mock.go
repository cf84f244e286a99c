package model

import (
	"context"
	"fmt"

	"github.com/hupe1980/greetloop/conversation"
)

// Mock is a lightweight in-memory Model useful for tests and offline demos.
// Scripted replies are served FIFO; when the queue drains it either repeats a
// sticky reply (Repeat) or falls back to a final text reply echoing the last
// message. Every Generate call is recorded for later inspection.
//
// Mock is driven by a single loop at a time and is not synchronized.
type Mock struct {
	info     Info
	queue    []conversation.Message
	repeat   *conversation.Message
	err      error
	requests []Request
}

// NewMock constructs a Mock with capability support enabled.
func NewMock() *Mock {
	return &Mock{
		info: Info{
			Name:                 "mock-model",
			Provider:             "mock",
			SupportsCapabilities: true,
		},
	}
}

// Enqueue appends scripted replies served in order, one per Generate call.
func (m *Mock) Enqueue(msgs ...conversation.Message) { m.queue = append(m.queue, msgs...) }

// EnqueueRequests is shorthand for enqueueing an assistant reply that carries
// the given capability requests and no text.
func (m *Mock) EnqueueRequests(reqs ...conversation.CapabilityRequest) {
	m.Enqueue(conversation.NewAssistantMessage("", reqs...))
}

// Repeat sets a sticky reply returned whenever the queue is empty. Each
// repetition is re-minted with fresh message and request IDs so correlation
// stays unambiguous across rounds.
func (m *Mock) Repeat(msg conversation.Message) { m.repeat = &msg }

// FailWith makes every subsequent Generate call return err.
func (m *Mock) FailWith(err error) { m.err = err }

// Calls returns the number of Generate invocations so far.
func (m *Mock) Calls() int { return len(m.requests) }

// Requests returns a copy of the recorded requests in call order.
func (m *Mock) Requests() []Request {
	out := make([]Request, len(m.requests))
	copy(out, m.requests)
	return out
}

// Generate implements Model.
func (m *Mock) Generate(ctx context.Context, req Request) (*conversation.Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.requests = append(m.requests, req)

	if m.err != nil {
		return nil, m.err
	}

	if len(m.queue) > 0 {
		msg := m.queue[0]
		m.queue = m.queue[1:]
		return &msg, nil
	}

	if m.repeat != nil {
		fresh := make([]conversation.CapabilityRequest, len(m.repeat.Requests))
		for i, r := range m.repeat.Requests {
			fresh[i] = conversation.NewCapabilityRequest(r.Name, r.Arguments)
		}
		msg := conversation.NewAssistantMessage(m.repeat.Content, fresh...)
		return &msg, nil
	}

	last := "nothing"
	if n := len(req.Messages); n > 0 {
		last = req.Messages[n-1].Content
	}
	msg := conversation.NewAssistantMessage(fmt.Sprintf("Mock reply to: %s", last))
	return &msg, nil
}

// Info implements Model.
func (m *Mock) Info() Info { return m.info }
