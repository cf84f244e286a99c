// Package anthropic provides a model wrapper for the Anthropic Claude API.
package anthropic

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/anthropics/anthropic-sdk-go/shared/constant"
	"github.com/hupe1980/greetloop/conversation"
	"github.com/hupe1980/greetloop/model"
)

// Options configures the Anthropic model adapter (temperature, model id,
// max tokens, API key). Extend via functional options to preserve stability.
type Options struct {
	Model       anthropic.Model
	Temperature float64
	MaxTokens   int64
	APIKey      string
}

// Model wraps the Anthropic Messages API behind the generic model.Model interface.
type Model struct {
	client *anthropic.Client
	opts   Options
}

func defaultOptions() Options {
	return Options{
		Model:       anthropic.ModelClaude3_5Sonnet20241022,
		Temperature: 0,
		MaxTokens:   4096,
	}
}

// NewModel creates a new Anthropic model using the official client.
func NewModel(optFns ...func(o *Options)) *Model {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	var clientOpts []option.RequestOption
	if opts.APIKey != "" {
		clientOpts = append(clientOpts, option.WithAPIKey(opts.APIKey))
	}

	client := anthropic.NewClient(clientOpts...)

	return &Model{
		client: &client,
		opts:   opts,
	}
}

// NewModelFromClient creates a new Anthropic model from an existing client.
func NewModelFromClient(client *anthropic.Client, optFns ...func(o *Options)) *Model {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	return &Model{
		client: client,
		opts:   opts,
	}
}

// Generate implements model.Model with a single non-streaming message call.
// tool_use blocks in the reply surface as capability requests; their inputs
// are re-serialized to JSON argument strings.
func (m *Model) Generate(ctx context.Context, req model.Request) (*conversation.Message, error) {
	params := anthropic.MessageNewParams{
		Model:       m.opts.Model,
		Messages:    buildMessages(req.Messages),
		MaxTokens:   m.opts.MaxTokens,
		Temperature: anthropic.Float(m.opts.Temperature),
	}

	if req.Instructions != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.Instructions}}
	}

	if len(req.Capabilities) > 0 {
		params.Tools = buildTools(req.Capabilities)
	}

	resp, err := m.client.Messages.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("anthropic api error: %w", err)
	}

	var (
		text     string
		requests []conversation.CapabilityRequest
	)

	for _, block := range resp.Content {
		switch block.Type {
		case "text":
			text += block.AsText().Text
		case "tool_use":
			toolBlock := block.AsToolUse()

			args := ""
			if toolBlock.Input != nil {
				if argsBytes, err := json.Marshal(toolBlock.Input); err == nil {
					args = string(argsBytes)
				}
			}

			requests = append(requests, conversation.CapabilityRequest{
				ID:        toolBlock.ID,
				Name:      toolBlock.Name,
				Arguments: args,
			})
		}
	}

	msg := conversation.NewAssistantMessage(text, requests...)
	return &msg, nil
}

// buildMessages converts the conversation log to Anthropic message params.
// Consecutive capability results collapse into a single user message of
// tool_result blocks; the API requires strict user/assistant alternation and
// results in the turn directly after their tool_use blocks, which the log
// ordering invariant provides.
func buildMessages(msgs []conversation.Message) []anthropic.MessageParam {
	var messages []anthropic.MessageParam

	var pendingResults []anthropic.ContentBlockParamUnion
	flushResults := func() {
		if len(pendingResults) > 0 {
			messages = append(messages, anthropic.NewUserMessage(pendingResults...))
			pendingResults = nil
		}
	}

	for _, msg := range msgs {
		switch msg.Role {
		case conversation.RoleCapabilityResult:
			pendingResults = append(pendingResults, anthropic.NewToolResultBlock(msg.RequestID, msg.Content, false))
			continue
		case conversation.RoleUser:
			flushResults()
			messages = append(messages, anthropic.NewUserMessage(anthropic.NewTextBlock(msg.Content)))
		case conversation.RoleAssistant:
			flushResults()

			var content []anthropic.ContentBlockParamUnion
			if msg.Content != "" {
				content = append(content, anthropic.NewTextBlock(msg.Content))
			}
			for _, r := range msg.Requests {
				var input any
				if r.Arguments != "" {
					if err := json.Unmarshal([]byte(r.Arguments), &input); err != nil {
						input = r.Arguments
					}
				}
				content = append(content, anthropic.NewToolUseBlock(r.ID, input, r.Name))
			}
			if len(content) > 0 {
				messages = append(messages, anthropic.NewAssistantMessage(content...))
			}
		}
	}
	flushResults()

	return messages
}

// buildTools converts capability definitions to the Anthropic tool format.
func buildTools(caps []model.CapabilityDefinition) []anthropic.ToolUnionParam {
	tools := make([]anthropic.ToolUnionParam, len(caps))

	for i, cdef := range caps {
		inputSchema := anthropic.ToolInputSchemaParam{
			Type: constant.Object("object"),
		}

		if cdef.Parameters != nil {
			if properties, exists := cdef.Parameters["properties"]; exists {
				inputSchema.Properties = properties
			}
			switch required := cdef.Parameters["required"].(type) {
			case []string:
				inputSchema.Required = required
			case []any:
				for _, r := range required {
					if s, ok := r.(string); ok {
						inputSchema.Required = append(inputSchema.Required, s)
					}
				}
			}
		}

		tu := anthropic.ToolUnionParamOfTool(inputSchema, cdef.Name)
		if cdef.Description != "" {
			tu.OfTool.Description = anthropic.String(cdef.Description)
		}
		tools[i] = tu
	}

	return tools
}

// Info returns metadata describing this Anthropic model implementation.
func (m *Model) Info() model.Info {
	return model.Info{
		Name:                 string(m.opts.Model),
		Provider:             "anthropic",
		SupportsCapabilities: true,
	}
}
