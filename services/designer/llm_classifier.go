package designer

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"taskcraft/models"
	"taskcraft/services/completion"
)

const classifierSystemPrompt = `You are a routing assistant inside a curriculum design tool. The teacher is working through a step that presented a numbered list of candidates. Decide whether their latest message selects candidates from the list or asks for a refinement, clarification, or anything else.

Call select_candidates ONLY when the message clearly picks one or more candidates by number. If the message both picks a candidate and asks for any change to it, that is a refinement, not a selection. When in doubt, call refine_request.`

type SelectCandidatesParams struct {
	IDs       []int  `json:"ids" jsonschema:"required,description=The ids of the candidates the user selected"`
	Reasoning string `json:"reasoning" jsonschema:"required,description=Brief explanation of why this is a selection"`
}

type RefineRequestParams struct {
	Reasoning string `json:"reasoning" jsonschema:"required,description=Brief explanation of why this is a refinement or question"`
}

var classifierTools = []completion.ToolSpec{
	completion.NewToolSpec[SelectCandidatesParams]("select_candidates",
		"The user's message selects one or more candidates from the list by number"),
	completion.NewToolSpec[RefineRequestParams]("refine_request",
		"The user's message asks for different candidates, a change, or clarification"),
}

// LLMClassifier delegates the selection-or-refinement decision to the
// completion service. Any service error, missing tool call, or argument
// parse failure classifies as not-ready: an ambiguous turn must never
// silently advance the step.
type LLMClassifier struct {
	invoker completion.Invoker
	timeout time.Duration
}

func NewLLMClassifier(invoker completion.Invoker, timeout time.Duration) *LLMClassifier {
	return &LLMClassifier{invoker: invoker, timeout: timeout}
}

func (c *LLMClassifier) Classify(step models.Step, text string, candidates []Candidate) Decision {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	prompt := buildClassifierPrompt(step, text, candidates)

	toolCall, err := c.invoker.CompleteTool(ctx, classifierSystemPrompt, nil, prompt, classifierTools)
	if err != nil {
		log.Printf("[ERROR] Classifier completion failed, treating as refinement: %v", err)
		return Decision{ReadyToAdvance: false, Rationale: "classifier unavailable, staying on step"}
	}

	switch toolCall.Name {
	case "select_candidates":
		var params SelectCandidatesParams
		if err := json.Unmarshal([]byte(toolCall.Arguments), &params); err != nil {
			log.Printf("[ERROR] Failed to parse select_candidates arguments, treating as refinement: %v", err)
			return Decision{ReadyToAdvance: false, Rationale: "unparseable classification, staying on step"}
		}
		return Decision{
			ReadyToAdvance: true,
			SelectedIDs:    params.IDs,
			Rationale:      params.Reasoning,
		}

	case "refine_request":
		var params RefineRequestParams
		if err := json.Unmarshal([]byte(toolCall.Arguments), &params); err != nil {
			return Decision{ReadyToAdvance: false, Rationale: "unparseable classification, staying on step"}
		}
		return Decision{ReadyToAdvance: false, Rationale: params.Reasoning}

	default:
		log.Printf("[ERROR] Classifier called unknown function %s, treating as refinement", toolCall.Name)
		return Decision{ReadyToAdvance: false, Rationale: "unexpected classification, staying on step"}
	}
}

func buildClassifierPrompt(step models.Step, text string, candidates []Candidate) string {
	var prompt strings.Builder

	prompt.WriteString(fmt.Sprintf("Current step: %s\n\nCandidates presented to the user:\n", step))
	for _, candidate := range candidates {
		prompt.WriteString(fmt.Sprintf("%d. %s\n", candidate.ID, candidate.Title))
	}
	prompt.WriteString(fmt.Sprintf("\nUser message:\n%s", text))

	return prompt.String()
}
