package designer

import "taskcraft/models"

// Prerequisite slot names checked by the context builder before a step's
// prompt can be assembled.
const (
	slotSelectedTaskIdea       = "selectedTaskIdea"
	slotSelectedFocusTopics    = "selectedFocusTopics"
	slotSelectedProductOptions = "selectedProductOptions"
	slotRequirementsText       = "requirementsText"
)

// stepSpec describes one step of the design sequence. The orchestrator
// consults this single table instead of re-branching on the step at every
// layer.
type stepSpec struct {
	next          models.Step
	selectable    bool
	maxSelections int // 0 means no cap beyond the candidate count
	prereqs       []string
	intro         string
}

var stepTable = map[models.Step]stepSpec{
	models.StepTaskIdeas: {
		next:          models.StepFocusTopics,
		selectable:    true,
		maxSelections: 1,
		intro:         "Which performance task idea would you like to build on? Reply with its number, or tell me what to change.",
	},
	models.StepFocusTopics: {
		next:       models.StepProductOptions,
		selectable: true,
		prereqs:    []string{slotSelectedTaskIdea},
		intro:      "Which focus topics should the task cover? Reply with one or more numbers, or ask me to adjust them.",
	},
	models.StepProductOptions: {
		next:          models.StepRequirements,
		selectable:    true,
		maxSelections: 4,
		prereqs:       []string{slotSelectedTaskIdea, slotSelectedFocusTopics},
		intro:         "Which product options should students choose from? Pick up to four by number, or ask for different ones.",
	},
	models.StepRequirements: {
		next:    models.StepRubric,
		prereqs: []string{slotSelectedTaskIdea, slotSelectedFocusTopics, slotSelectedProductOptions},
		intro:   "Tell me anything you want emphasized in the task requirements and I'll draft them.",
	},
	models.StepRubric: {
		next:    models.StepComplete,
		prereqs: []string{slotSelectedTaskIdea, slotSelectedFocusTopics, slotSelectedProductOptions, slotRequirementsText},
		intro:   "Tell me how you'd like student work assessed and I'll draft the rubric.",
	},
	models.StepComplete: {
		next: models.StepComplete,
	},
}
