package agent

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/greetloop/capability"
	"github.com/hupe1980/greetloop/conversation"
	"github.com/hupe1980/greetloop/model"
)

// recorderHook captures notifications; capability hooks may fire from
// parallel executor goroutines, so access is locked.
type recorderHook struct {
	mu           sync.Mutex
	models       []ModelCall
	capabilities []CapabilityCall
}

func (r *recorderHook) OnModelCall(_ context.Context, call ModelCall) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.models = append(r.models, call)
}

func (r *recorderHook) OnCapabilityCall(_ context.Context, call CapabilityCall) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.capabilities = append(r.capabilities, call)
}

func TestHooks_ObserveModelAndCapabilityCalls(t *testing.T) {
	m := model.NewMock()
	m.EnqueueRequests(conversation.NewCapabilityRequest("hello_english", `{"name": "Test"}`))
	m.Enqueue(conversation.NewAssistantMessage("Done."))

	rec := &recorderHook{}
	loop := New(m, capability.NewGreetingRegistry(), func(o *Options) {
		o.Hooks = []Hook{rec}
	})

	state := conversation.New(conversation.NewUserMessage("Say hello to Test"))
	require.NoError(t, loop.Run(context.Background(), state))

	require.Len(t, rec.models, 2)
	assert.Equal(t, 1, rec.models[0].Round)
	assert.Equal(t, 2, rec.models[1].Round)
	assert.Equal(t, "mock-model", rec.models[0].Model.Name)
	require.NotNil(t, rec.models[0].Reply)
	assert.True(t, rec.models[0].Reply.HasRequests())
	assert.NoError(t, rec.models[0].Err)
	assert.True(t, rec.models[1].Duration >= 0)

	require.Len(t, rec.capabilities, 1)
	call := rec.capabilities[0]
	assert.Equal(t, 1, call.Round)
	assert.Equal(t, "hello_english", call.Request.Name)
	assert.Equal(t, "Hello Test", call.Result)
	assert.NoError(t, call.Err)
}

func TestHooks_FailedModelCallStillObserved(t *testing.T) {
	boom := errors.New("upstream down")

	m := model.NewMock()
	m.FailWith(boom)

	rec := &recorderHook{}
	loop := New(m, capability.NewGreetingRegistry(), func(o *Options) {
		o.Hooks = []Hook{rec}
	})

	state := conversation.New(conversation.NewUserMessage("Hi"))
	err := loop.Run(context.Background(), state)
	require.Error(t, err)

	require.Len(t, rec.models, 1)
	assert.Nil(t, rec.models[0].Reply)
	assert.ErrorIs(t, rec.models[0].Err, boom)
}

func TestHooks_PanickingHookDoesNotFailRun(t *testing.T) {
	m := model.NewMock()
	m.EnqueueRequests(conversation.NewCapabilityRequest("hello_spanish", `{"name": "Bob"}`))
	m.Enqueue(conversation.NewAssistantMessage("Done."))

	angry := HookFuncs{
		ModelCall:      func(context.Context, ModelCall) { panic("observer bug") },
		CapabilityCall: func(context.Context, CapabilityCall) { panic("observer bug") },
	}
	rec := &recorderHook{}

	loop := New(m, capability.NewGreetingRegistry(), func(o *Options) {
		o.Hooks = []Hook{angry, rec}
	})

	state := conversation.New(conversation.NewUserMessage("Greet Bob in Spanish"))
	require.NoError(t, loop.Run(context.Background(), state))

	// The run completed and the well-behaved hook still saw everything.
	require.Len(t, state.Messages(), 4)
	assert.Len(t, rec.models, 2)
	assert.Len(t, rec.capabilities, 1)
}

func TestHookFuncs_NilFieldsAreSafe(t *testing.T) {
	var h HookFuncs

	assert.NotPanics(t, func() {
		h.OnModelCall(context.Background(), ModelCall{})
		h.OnCapabilityCall(context.Background(), CapabilityCall{})
	})
}

func TestHooks_AllHooksNotified(t *testing.T) {
	m := model.NewMock()
	m.Enqueue(conversation.NewAssistantMessage("Hi."))

	first := &recorderHook{}
	second := &recorderHook{}
	loop := New(m, capability.NewGreetingRegistry(), func(o *Options) {
		o.Hooks = []Hook{first, second}
	})

	state := conversation.New(conversation.NewUserMessage("Hi"))
	require.NoError(t, loop.Run(context.Background(), state))

	assert.Len(t, first.models, 1)
	assert.Len(t, second.models, 1)
}
