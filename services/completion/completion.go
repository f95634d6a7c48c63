package completion

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"taskcraft/models"

	"github.com/invopop/jsonschema"
)

var (
	// ErrService covers transport-level failures: timeouts, rate limits,
	// malformed responses from the completion service.
	ErrService = errors.New("completion service failure")

	// ErrSchemaMismatch means the service answered but the response did not
	// carry the declared output shape. Distinct from ErrService so callers
	// can tell a broken call from a broken answer.
	ErrSchemaMismatch = errors.New("completion response did not match expected shape")
)

// ToolCall is the structured result of a tool-constrained completion:
// which tool the model invoked and its raw JSON arguments.
type ToolCall struct {
	Name      string
	Arguments string
}

// Invoker wraps the external completion service. CompleteText returns the
// model's freeform text; CompleteTool constrains the model to the given
// tool specs and returns the call it made.
type Invoker interface {
	CompleteText(ctx context.Context, system, prompt string) (string, error)
	CompleteTool(ctx context.Context, system string, history []models.Message, prompt string, tools []ToolSpec) (*ToolCall, error)
}

// ToolSpec declares one structured output shape by name. Schemas are
// reflected from Go parameter structs so each backend renders the same
// contract in its own wire format.
type ToolSpec struct {
	Name        string
	Description string
	schema      *jsonschema.Schema
}

func NewToolSpec[T any](name, description string) ToolSpec {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	return ToolSpec{
		Name:        name,
		Description: description,
		schema:      reflector.Reflect(v),
	}
}

// parameters renders the schema as the generic map shape used by
// function-calling APIs.
func (t ToolSpec) parameters() (map[string]any, error) {
	raw, err := json.Marshal(t.schema)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal tool schema for %s: %w", t.Name, err)
	}

	var params map[string]any
	if err := json.Unmarshal(raw, &params); err != nil {
		return nil, fmt.Errorf("failed to decode tool schema for %s: %w", t.Name, err)
	}
	return params, nil
}
