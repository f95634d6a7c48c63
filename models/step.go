package models

// Step is one stage in the fixed unit-design sequence. Sessions only ever
// move forward through StepOrder, one step at a time.
type Step string

const (
	StepTaskIdeas      Step = "TASK_IDEAS"
	StepFocusTopics    Step = "FOCUS_TOPICS"
	StepProductOptions Step = "PRODUCT_OPTIONS"
	StepRequirements   Step = "REQUIREMENTS"
	StepRubric         Step = "RUBRIC"
	StepComplete       Step = "COMPLETE"
)

var StepOrder = []Step{
	StepTaskIdeas,
	StepFocusTopics,
	StepProductOptions,
	StepRequirements,
	StepRubric,
	StepComplete,
}

// Index returns the step's position in StepOrder, or -1 for unknown steps.
func (s Step) Index() int {
	for i, step := range StepOrder {
		if step == s {
			return i
		}
	}
	return -1
}
