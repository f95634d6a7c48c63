package designer

import (
	"fmt"
	"strings"

	"taskcraft/models"
)

// buildContextBlock renders the prior selections a step's prompt needs.
// Each step reads from Unit State, never from the raw transcript, so
// prompt size stays bounded no matter how long the conversation runs. A
// missing prerequisite slot means the state machine was violated upstream
// and fails with ErrMissingPrerequisite.
func buildContextBlock(unit *models.UnitState, step models.Step, userText string) (string, error) {
	spec, ok := stepTable[step]
	if !ok {
		return "", fmt.Errorf("unknown step %q", step)
	}

	for _, slot := range spec.prereqs {
		if !slotPopulated(unit, slot) {
			return "", fmt.Errorf("%w: %s required before %s", ErrMissingPrerequisite, slot, step)
		}
	}

	var block strings.Builder
	block.WriteString(fmt.Sprintf("Unit topic: %s\n", unit.Topic))
	if unit.UnitTitle != "" {
		block.WriteString(fmt.Sprintf("Unit title: %s\n", unit.UnitTitle))
	}
	if unit.GradeLabel != "" {
		block.WriteString(fmt.Sprintf("Grade level: %s\n", unit.GradeLabel))
	}

	for _, slot := range spec.prereqs {
		switch slot {
		case slotSelectedTaskIdea:
			block.WriteString(fmt.Sprintf("\nSelected task idea: %s\n%s\n",
				unit.SelectedTaskIdea.Title, unit.SelectedTaskIdea.Description))
		case slotSelectedFocusTopics:
			block.WriteString("\nSelected focus topics:\n")
			for _, topic := range unit.SelectedFocusTopics {
				block.WriteString(fmt.Sprintf("- %s: %s\n", topic.Title, topic.Description))
			}
		case slotSelectedProductOptions:
			block.WriteString("\nSelected product options:\n")
			for _, option := range unit.SelectedProductOptions {
				block.WriteString(fmt.Sprintf("- %s: %s\n", option.Title, option.Description))
			}
		case slotRequirementsText:
			block.WriteString(fmt.Sprintf("\nTask requirements:\n%s\n", unit.RequirementsText))
		}
	}

	if trimmed := strings.TrimSpace(userText); trimmed != "" {
		block.WriteString(fmt.Sprintf("\nTeacher input for this step:\n%s\n", trimmed))
	}

	return block.String(), nil
}

func slotPopulated(unit *models.UnitState, slot string) bool {
	switch slot {
	case slotSelectedTaskIdea:
		return unit.SelectedTaskIdea != nil
	case slotSelectedFocusTopics:
		return len(unit.SelectedFocusTopics) > 0
	case slotSelectedProductOptions:
		return len(unit.SelectedProductOptions) > 0
	case slotRequirementsText:
		return strings.TrimSpace(unit.RequirementsText) != ""
	default:
		return false
	}
}
