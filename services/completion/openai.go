package completion

import (
	"context"
	"fmt"
	"log"
	"strings"

	"taskcraft/models"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// OpenAIInvoker drives completions through langchaingo's OpenAI client,
// using tool calling with a required tool choice for structured output.
type OpenAIInvoker struct {
	llm llms.Model
}

func NewOpenAIInvoker(apiKey string) (*OpenAIInvoker, error) {
	llm, err := openai.New(
		openai.WithModel("gpt-4o-mini"),
		openai.WithToken(apiKey),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenAI client: %w", err)
	}

	return &OpenAIInvoker{llm: llm}, nil
}

func (o *OpenAIInvoker) CompleteText(ctx context.Context, system, prompt string) (string, error) {
	messageHistory := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, system),
		llms.TextParts(llms.ChatMessageTypeHuman, prompt),
	}

	log.Printf("[INFO] Calling LLM for freeform completion")
	resp, err := o.llm.GenerateContent(ctx, messageHistory, llms.WithTemperature(0.7))
	if err != nil {
		log.Printf("[ERROR] Freeform completion failed: %v", err)
		return "", fmt.Errorf("%w: %v", ErrService, err)
	}

	if len(resp.Choices) == 0 {
		log.Printf("[ERROR] No choices in LLM response")
		return "", fmt.Errorf("%w: empty response", ErrService)
	}

	content := strings.TrimSpace(resp.Choices[0].Content)
	if content == "" {
		return "", fmt.Errorf("%w: empty completion text", ErrSchemaMismatch)
	}
	return content, nil
}

func (o *OpenAIInvoker) CompleteTool(ctx context.Context, system string, history []models.Message, prompt string, tools []ToolSpec) (*ToolCall, error) {
	messageHistory := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, system),
	}

	for _, msg := range history {
		var msgType llms.ChatMessageType
		if msg.Role == models.RoleUser {
			msgType = llms.ChatMessageTypeHuman
		} else {
			msgType = llms.ChatMessageTypeAI
		}
		messageHistory = append(messageHistory, llms.TextParts(msgType, msg.Content))
	}

	messageHistory = append(messageHistory, llms.TextParts(llms.ChatMessageTypeHuman, prompt))

	llmTools, err := buildLangchainTools(tools)
	if err != nil {
		return nil, err
	}

	log.Printf("[INFO] Calling LLM for structured completion with %d tools", len(tools))
	resp, err := o.llm.GenerateContent(ctx, messageHistory,
		llms.WithTools(llmTools),
		llms.WithTemperature(0.7),
		llms.WithToolChoice("required"))
	if err != nil {
		log.Printf("[ERROR] Structured completion failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrService, err)
	}

	if len(resp.Choices) == 0 || len(resp.Choices[0].ToolCalls) == 0 {
		log.Printf("[ERROR] No tool calls in LLM response")
		return nil, fmt.Errorf("%w: no tool call in response", ErrSchemaMismatch)
	}

	toolCall := resp.Choices[0].ToolCalls[0]
	log.Printf("[INFO] LLM called function: %s", toolCall.FunctionCall.Name)

	return &ToolCall{
		Name:      toolCall.FunctionCall.Name,
		Arguments: toolCall.FunctionCall.Arguments,
	}, nil
}

func buildLangchainTools(tools []ToolSpec) ([]llms.Tool, error) {
	llmTools := make([]llms.Tool, 0, len(tools))
	for _, tool := range tools {
		params, err := tool.parameters()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSchemaMismatch, err)
		}
		llmTools = append(llmTools, llms.Tool{
			Type: "function",
			Function: &llms.FunctionDefinition{
				Name:        tool.Name,
				Description: tool.Description,
				Parameters:  params,
			},
		})
	}
	return llmTools, nil
}
