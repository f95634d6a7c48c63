package designer

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"taskcraft/models"
	"taskcraft/services"
	"taskcraft/services/completion"

	"github.com/samber/lo"
)

type CandidateParam struct {
	ID          int    `json:"id" jsonschema:"required,description=Sequential integer id starting at 1"`
	Title       string `json:"title" jsonschema:"required,description=Short title for this candidate"`
	Description string `json:"description" jsonschema:"required,description=One to three sentence description"`
}

type ProposeTaskIdeasParams struct {
	Ideas []CandidateParam `json:"ideas" jsonschema:"required,description=The proposed performance task ideas"`
}

type ProposeFocusTopicsParams struct {
	Topics []CandidateParam `json:"topics" jsonschema:"required,description=The proposed focus topics"`
}

type ProposeProductOptionsParams struct {
	Options []CandidateParam `json:"options" jsonschema:"required,description=The proposed product options"`
}

var (
	taskIdeaTools = []completion.ToolSpec{
		completion.NewToolSpec[ProposeTaskIdeasParams]("propose_task_ideas",
			"Propose performance task ideas for the unit"),
	}
	focusTopicTools = []completion.ToolSpec{
		completion.NewToolSpec[ProposeFocusTopicsParams]("propose_focus_topics",
			"Propose focus topics for the selected task idea"),
	}
	productOptionTools = []completion.ToolSpec{
		completion.NewToolSpec[ProposeProductOptionsParams]("propose_product_options",
			"Propose product options for the performance task"),
	}
)

// generateCandidates produces a fresh candidate set for a selectable step
// and stores it wholesale, replacing any previous set. IDs come from the
// completion response and are validated for presence and uniqueness only.
func (s *Service) generateCandidates(sess *services.Session, step models.Step, userText string) error {
	contextBlock, err := buildContextBlock(&sess.Unit, step, userText)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	switch step {
	case models.StepTaskIdeas:
		items, err := s.completeCandidates(ctx, fmt.Sprintf(taskIdeasPrompt, contextBlock), taskIdeaTools, "propose_task_ideas")
		if err != nil {
			return err
		}
		sess.Unit.CandidateTaskIdeas = lo.Map(items, func(item CandidateParam, _ int) models.TaskIdea {
			return models.TaskIdea(item)
		})

	case models.StepFocusTopics:
		items, err := s.completeCandidates(ctx, fmt.Sprintf(focusTopicsPrompt, contextBlock), focusTopicTools, "propose_focus_topics")
		if err != nil {
			return err
		}
		sess.Unit.CandidateFocusTopics = lo.Map(items, func(item CandidateParam, _ int) models.FocusTopic {
			return models.FocusTopic(item)
		})

	case models.StepProductOptions:
		items, err := s.completeCandidates(ctx, fmt.Sprintf(productOptionsPrompt, contextBlock), productOptionTools, "propose_product_options")
		if err != nil {
			return err
		}
		sess.Unit.CandidateProductOptions = lo.Map(items, func(item CandidateParam, _ int) models.ProductOption {
			return models.ProductOption(item)
		})

	default:
		return fmt.Errorf("step %s has no candidate set", step)
	}

	return nil
}

func (s *Service) completeCandidates(ctx context.Context, prompt string, tools []completion.ToolSpec, toolName string) ([]CandidateParam, error) {
	toolCall, err := s.invoker.CompleteTool(ctx, designerSystemPrompt, nil, prompt, tools)
	if err != nil {
		return nil, err
	}

	if toolCall.Name != toolName {
		log.Printf("[ERROR] Unexpected function call: %s", toolCall.Name)
		return nil, fmt.Errorf("%w: unexpected function call %s", completion.ErrSchemaMismatch, toolCall.Name)
	}

	items, err := decodeCandidateList(toolCall.Arguments, toolName)
	if err != nil {
		return nil, err
	}
	return items, nil
}

func decodeCandidateList(arguments, toolName string) ([]CandidateParam, error) {
	var items []CandidateParam

	switch toolName {
	case "propose_task_ideas":
		var params ProposeTaskIdeasParams
		if err := json.Unmarshal([]byte(arguments), &params); err != nil {
			return nil, fmt.Errorf("%w: failed to parse %s arguments: %v", completion.ErrSchemaMismatch, toolName, err)
		}
		items = params.Ideas
	case "propose_focus_topics":
		var params ProposeFocusTopicsParams
		if err := json.Unmarshal([]byte(arguments), &params); err != nil {
			return nil, fmt.Errorf("%w: failed to parse %s arguments: %v", completion.ErrSchemaMismatch, toolName, err)
		}
		items = params.Topics
	case "propose_product_options":
		var params ProposeProductOptionsParams
		if err := json.Unmarshal([]byte(arguments), &params); err != nil {
			return nil, fmt.Errorf("%w: failed to parse %s arguments: %v", completion.ErrSchemaMismatch, toolName, err)
		}
		items = params.Options
	}

	if len(items) == 0 {
		return nil, fmt.Errorf("%w: %s returned no candidates", completion.ErrSchemaMismatch, toolName)
	}

	seen := make(map[int]bool, len(items))
	for _, item := range items {
		if seen[item.ID] {
			return nil, fmt.Errorf("%w: %s returned duplicate id %d", completion.ErrSchemaMismatch, toolName, item.ID)
		}
		seen[item.ID] = true
		if strings.TrimSpace(item.Title) == "" {
			return nil, fmt.Errorf("%w: %s returned candidate %d without a title", completion.ErrSchemaMismatch, toolName, item.ID)
		}
	}

	return items, nil
}

// generateDocument produces the marker-structured requirements or rubric
// text for the non-selectable steps.
func (s *Service) generateDocument(sess *services.Session, step models.Step, userText string) (string, error) {
	contextBlock, err := buildContextBlock(&sess.Unit, step, userText)
	if err != nil {
		return "", err
	}

	var prompt string
	switch step {
	case models.StepRequirements:
		prompt = fmt.Sprintf(requirementsPrompt, contextBlock)
	case models.StepRubric:
		prompt = fmt.Sprintf(rubricPrompt, contextBlock)
	default:
		return "", fmt.Errorf("step %s is not a document step", step)
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	text, err := s.invoker.CompleteText(ctx, designerSystemPrompt, prompt)
	if err != nil {
		return "", err
	}
	return text, nil
}
