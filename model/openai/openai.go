// Package openai provides an implementation of model.Model using the OpenAI
// Chat Completions API with function/tool calling. It adapts greetloop's
// normalized Request into the SDK's message format and back.
package openai

import (
	"context"
	"fmt"

	"github.com/hupe1980/greetloop/conversation"
	"github.com/hupe1980/greetloop/model"
	"github.com/openai/openai-go"
)

// Options configure the OpenAI model adapter.
// Fields mirror a subset of Chat Completion parameters intentionally kept
// minimal; extend via functional options without breaking callers.
type Options struct {
	Model               string
	Temperature         float64
	MaxCompletionTokens int64
}

// Model wraps the OpenAI Chat Completions API behind the generic model.Model interface.
type Model struct {
	client *openai.Client
	opts   Options
}

// NewModel creates a new OpenAI model using the official client, which reads
// its API key from OPENAI_API_KEY.
func NewModel(optFns ...func(o *Options)) *Model {
	client := openai.NewClient()
	return NewModelFromClient(&client, optFns...)
}

// NewModelFromClient creates a new OpenAI model from an existing client.
// Defaults keep generation deterministic (temperature 0), which the greeting
// demos rely on.
func NewModelFromClient(client *openai.Client, optFns ...func(o *Options)) *Model {
	opts := Options{
		Model:               openai.ChatModelGPT3_5Turbo,
		Temperature:         0,
		MaxCompletionTokens: 4096,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Model{client: client, opts: opts}
}

// Generate implements model.Model with a single non-streaming completion.
// Tool calls in the reply surface as capability requests with the provider's
// call IDs preserved for result correlation.
func (m *Model) Generate(ctx context.Context, req model.Request) (*conversation.Message, error) {
	resp, err := m.client.Chat.Completions.New(ctx, m.buildParams(req))
	if err != nil {
		return nil, fmt.Errorf("openai api error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no choices returned")
	}

	choice := resp.Choices[0]

	requests := make([]conversation.CapabilityRequest, 0, len(choice.Message.ToolCalls))
	for _, tc := range choice.Message.ToolCalls {
		requests = append(requests, conversation.CapabilityRequest{
			ID:        tc.ID,
			Name:      tc.Function.Name,
			Arguments: tc.Function.Arguments,
		})
	}

	msg := conversation.NewAssistantMessage(choice.Message.Content, requests...)
	return &msg, nil
}

// buildMessages converts the conversation log into OpenAI chat messages. The
// log guarantees capability results directly follow the assistant message
// that requested them, so a linear walk yields the adjacency the API expects.
func buildMessages(req model.Request) []openai.ChatCompletionMessageParamUnion {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(req.Messages)+1)
	if req.Instructions != "" {
		messages = append(messages, openai.SystemMessage(req.Instructions))
	}

	for _, msg := range req.Messages {
		switch msg.Role {
		case conversation.RoleUser:
			messages = append(messages, openai.UserMessage(msg.Content))
		case conversation.RoleAssistant:
			if !msg.HasRequests() {
				messages = append(messages, openai.AssistantMessage(msg.Content))
				continue
			}

			toolCalls := make([]openai.ChatCompletionMessageToolCallParam, len(msg.Requests))
			for i, r := range msg.Requests {
				toolCalls[i] = openai.ChatCompletionMessageToolCallParam{
					ID:   r.ID,
					Type: "function",
					Function: openai.ChatCompletionMessageToolCallFunctionParam{
						Name:      r.Name,
						Arguments: r.Arguments,
					},
				}
			}

			assistant := openai.ChatCompletionAssistantMessageParam{
				Role:      "assistant",
				ToolCalls: toolCalls,
			}
			if msg.Content != "" {
				assistant.Content = openai.ChatCompletionAssistantMessageParamContentUnion{
					OfString: openai.String(msg.Content),
				}
			}
			messages = append(messages, openai.ChatCompletionMessageParamUnion{OfAssistant: &assistant})
		case conversation.RoleCapabilityResult:
			messages = append(messages, openai.ToolMessage(msg.Content, msg.RequestID))
		}
	}

	return messages
}

// buildParams assembles the OpenAI request parameters including capability definitions.
func (m *Model) buildParams(req model.Request) openai.ChatCompletionNewParams {
	params := openai.ChatCompletionNewParams{
		Messages:            buildMessages(req),
		Model:               m.opts.Model,
		Temperature:         openai.Float(m.opts.Temperature),
		MaxCompletionTokens: openai.Int(m.opts.MaxCompletionTokens),
	}

	if len(req.Capabilities) == 0 {
		return params
	}

	tools := make([]openai.ChatCompletionToolParam, len(req.Capabilities))
	for i, cdef := range req.Capabilities {
		tools[i] = openai.ChatCompletionToolParam{
			Type: "function",
			Function: openai.FunctionDefinitionParam{
				Name:        cdef.Name,
				Description: openai.String(cdef.Description),
				Parameters:  cdef.Parameters,
			},
		}
	}
	params.Tools = tools

	return params
}

// Info returns metadata describing this OpenAI model implementation.
func (m *Model) Info() model.Info {
	return model.Info{
		Name:                 m.opts.Model,
		Provider:             "openai",
		SupportsCapabilities: true,
	}
}
