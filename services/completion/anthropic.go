package completion

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"taskcraft/models"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// AnthropicInvoker drives completions through the Anthropic Messages API.
// Structured output uses tool use blocks with tool choice forced to "any".
type AnthropicInvoker struct {
	client *anthropic.Client
}

func NewAnthropicInvoker(apiKey string) *AnthropicInvoker {
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &AnthropicInvoker{client: &client}
}

func (a *AnthropicInvoker) CompleteText(ctx context.Context, system, prompt string) (string, error) {
	log.Printf("[INFO] Calling Anthropic API for freeform completion")
	response, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.ModelClaude4Sonnet20250514,
		MaxTokens: 4096,
		System:    []anthropic.TextBlockParam{{Text: system}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		log.Printf("[ERROR] Anthropic freeform completion failed: %v", err)
		return "", fmt.Errorf("%w: %v", ErrService, err)
	}

	var content strings.Builder
	for _, block := range response.Content {
		if textBlock, ok := block.AsAny().(anthropic.TextBlock); ok {
			content.WriteString(textBlock.Text)
		}
	}

	text := strings.TrimSpace(content.String())
	if text == "" {
		return "", fmt.Errorf("%w: empty completion text", ErrSchemaMismatch)
	}
	return text, nil
}

func (a *AnthropicInvoker) CompleteTool(ctx context.Context, system string, history []models.Message, prompt string, tools []ToolSpec) (*ToolCall, error) {
	messages := make([]anthropic.MessageParam, 0, len(history)+1)
	for _, msg := range history {
		if msg.Role == models.RoleUser {
			messages = append(messages, anthropic.NewUserMessage(anthropic.NewTextBlock(msg.Content)))
		} else {
			messages = append(messages, anthropic.NewAssistantMessage(anthropic.NewTextBlock(msg.Content)))
		}
	}
	messages = append(messages, anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)))

	toolSpecs := make([]anthropic.ToolUnionParam, 0, len(tools))
	for _, tool := range tools {
		toolSpecs = append(toolSpecs, anthropic.ToolUnionParam{
			OfTool: &anthropic.ToolParam{
				Name:        tool.Name,
				Description: anthropic.String(tool.Description),
				InputSchema: anthropic.ToolInputSchemaParam{
					Properties: tool.schema.Properties,
				},
			},
		})
	}

	log.Printf("[INFO] Calling Anthropic API for structured completion with %d tools", len(tools))
	response, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.ModelClaude4Sonnet20250514,
		MaxTokens: 4096,
		System:    []anthropic.TextBlockParam{{Text: system}},
		Messages:  messages,
		Tools:     toolSpecs,
		ToolChoice: anthropic.ToolChoiceUnionParam{
			OfAny: &anthropic.ToolChoiceAnyParam{},
		},
	})
	if err != nil {
		log.Printf("[ERROR] Anthropic structured completion failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrService, err)
	}

	for _, block := range response.Content {
		toolUse, ok := block.AsAny().(anthropic.ToolUseBlock)
		if !ok {
			continue
		}

		arguments, err := json.Marshal(toolUse.Input)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to encode tool input: %v", ErrSchemaMismatch, err)
		}

		log.Printf("[INFO] Anthropic called tool: %s", toolUse.Name)
		return &ToolCall{
			Name:      toolUse.Name,
			Arguments: string(arguments),
		}, nil
	}

	log.Printf("[ERROR] No tool use block in Anthropic response")
	return nil, fmt.Errorf("%w: no tool call in response", ErrSchemaMismatch)
}
