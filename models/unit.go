package models

// TaskIdea is one model-proposed performance task. IDs come from the
// completion service's response and are unique within a candidate set.
type TaskIdea struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type FocusTopic struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type ProductOption struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// UnitState is the accumulated design state of one session. Topic,
// UnitTitle and GradeLabel are set at creation and never change. A
// selected slot is only populated after the matching candidate slot is
// non-empty; candidate slots are replaced wholesale on regeneration.
type UnitState struct {
	Topic      string `json:"topic"`
	UnitTitle  string `json:"unit_title"`
	GradeLabel string `json:"grade_label"`

	CurrentStep Step `json:"current_step"`

	CandidateTaskIdeas      []TaskIdea      `json:"candidate_task_ideas,omitempty"`
	SelectedTaskIdea        *TaskIdea       `json:"selected_task_idea,omitempty"`
	CandidateFocusTopics    []FocusTopic    `json:"candidate_focus_topics,omitempty"`
	SelectedFocusTopics     []FocusTopic    `json:"selected_focus_topics,omitempty"`
	CandidateProductOptions []ProductOption `json:"candidate_product_options,omitempty"`
	SelectedProductOptions  []ProductOption `json:"selected_product_options,omitempty"`

	RequirementsText string   `json:"requirements_text,omitempty"`
	RubricText       string   `json:"rubric_text,omitempty"`
	FinalSummary     *Summary `json:"final_summary,omitempty"`
}
