package models

// RubricCriterionCount is how many criteria a final rubric carries. The
// summary assembler pads or truncates extracted criteria to this count.
const RubricCriterionCount = 4

type RubricCriterion struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Summary is the final structured artifact assembled from the
// requirements and rubric text once a session reaches COMPLETE.
type Summary struct {
	Title                string            `json:"title"`
	Subtitle             string            `json:"subtitle"`
	Description          string            `json:"description"`
	Purpose              string            `json:"purpose"`
	Requirements         []string          `json:"requirements"`
	SuccessCriteria      []string          `json:"success_criteria"`
	SuggestedFocusTopics []string          `json:"suggested_focus_topics"`
	RubricTitle          string            `json:"rubric_title"`
	RubricDescription    string            `json:"rubric_description"`
	RubricCriteria       []RubricCriterion `json:"rubric_criteria"`
}
