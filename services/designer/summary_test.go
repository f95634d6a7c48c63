package designer

import (
	"reflect"
	"testing"

	"taskcraft/models"
)

const wellFormedRequirements = `## Purpose
Students demonstrate mission planning skills.

## Requirements
- Include a launch window calculation
- Name the crew roles
* Cite at least two sources

## Success Criteria
- Uses real orbital data
- Presentation stays under ten minutes`

const wellFormedRubric = `## Rubric: Mission Quality
Measures the depth and accuracy of the mission plan.

### Criterion 1: Accuracy
Calculations use real orbital data.

### Criterion 2: Clarity
The plan is easy to follow.

### Criterion 3: Feasibility
The mission stays within the stated constraints.

### Criterion 4: Presentation
The final product communicates the plan well.`

func wellFormedUnit() *models.UnitState {
	return &models.UnitState{
		Topic:      "Space Exploration",
		UnitTitle:  "Mars Missions",
		GradeLabel: "6th",
		SelectedTaskIdea: &models.TaskIdea{
			ID:          2,
			Title:       "Mission proposal",
			Description: "Plan a crewed Mars mission end to end.",
		},
		SelectedFocusTopics: []models.FocusTopic{
			{ID: 1, Title: "Orbital mechanics"},
			{ID: 3, Title: "Life support"},
		},
		RequirementsText: wellFormedRequirements,
		RubricText:       wellFormedRubric,
	}
}

func TestAssembleSummary(t *testing.T) {
	summary := assembleSummary(wellFormedUnit())

	if summary.Title != "Mars Missions" {
		t.Errorf("Title = %q", summary.Title)
	}
	if summary.Subtitle != "Mission proposal" {
		t.Errorf("Subtitle = %q", summary.Subtitle)
	}
	if summary.Description != "Plan a crewed Mars mission end to end." {
		t.Errorf("Description = %q", summary.Description)
	}
	if summary.Purpose != "Students demonstrate mission planning skills." {
		t.Errorf("Purpose = %q", summary.Purpose)
	}

	wantRequirements := []string{
		"Include a launch window calculation",
		"Name the crew roles",
		"Cite at least two sources",
	}
	if !reflect.DeepEqual(summary.Requirements, wantRequirements) {
		t.Errorf("Requirements = %v", summary.Requirements)
	}

	wantCriteria := []string{
		"Uses real orbital data",
		"Presentation stays under ten minutes",
	}
	if !reflect.DeepEqual(summary.SuccessCriteria, wantCriteria) {
		t.Errorf("SuccessCriteria = %v", summary.SuccessCriteria)
	}

	wantTopics := []string{"Orbital mechanics", "Life support"}
	if !reflect.DeepEqual(summary.SuggestedFocusTopics, wantTopics) {
		t.Errorf("SuggestedFocusTopics = %v", summary.SuggestedFocusTopics)
	}

	if summary.RubricTitle != "Mission Quality" {
		t.Errorf("RubricTitle = %q", summary.RubricTitle)
	}
	if summary.RubricDescription != "Measures the depth and accuracy of the mission plan." {
		t.Errorf("RubricDescription = %q", summary.RubricDescription)
	}
	if len(summary.RubricCriteria) != models.RubricCriterionCount {
		t.Fatalf("RubricCriteria length = %d", len(summary.RubricCriteria))
	}
	if summary.RubricCriteria[0].Name != "Accuracy" {
		t.Errorf("first criterion = %q", summary.RubricCriteria[0].Name)
	}
	if summary.RubricCriteria[0].Description != "Calculations use real orbital data." {
		t.Errorf("first criterion description = %q", summary.RubricCriteria[0].Description)
	}
	if summary.RubricCriteria[3].Name != "Presentation" {
		t.Errorf("last criterion = %q", summary.RubricCriteria[3].Name)
	}
}

func TestAssembleSummaryTitleFallsBackToTopic(t *testing.T) {
	unit := wellFormedUnit()
	unit.UnitTitle = ""

	summary := assembleSummary(unit)
	if summary.Title != "Space Exploration" {
		t.Errorf("Title = %q, expected the topic", summary.Title)
	}
}

func TestAssembleSummaryToleratesUnstructuredText(t *testing.T) {
	unit := wellFormedUnit()
	unit.RequirementsText = "Students will plan a mission. No markdown here."
	unit.RubricText = "Grade on effort and accuracy."

	summary := assembleSummary(unit)

	if summary.Purpose != "" {
		t.Errorf("Purpose = %q, expected empty", summary.Purpose)
	}
	if len(summary.Requirements) != 0 {
		t.Errorf("Requirements = %v, expected none", summary.Requirements)
	}
	if summary.RubricTitle != defaultRubricTitle {
		t.Errorf("RubricTitle = %q, expected the default", summary.RubricTitle)
	}
	if len(summary.RubricCriteria) != models.RubricCriterionCount {
		t.Fatalf("RubricCriteria length = %d, expected padding to %d",
			len(summary.RubricCriteria), models.RubricCriterionCount)
	}
	for _, criterion := range summary.RubricCriteria {
		if criterion.Name != "Overall Quality" {
			t.Errorf("padded criterion name = %q", criterion.Name)
		}
	}
}

func TestExtractRubricTruncatesExtraCriteria(t *testing.T) {
	text := wellFormedRubric + "\n\n### Criterion 5: Extra\nShould be dropped.\n\n### Criterion 6: More\nAlso dropped."

	_, _, criteria := extractRubric(text)
	if len(criteria) != models.RubricCriterionCount {
		t.Fatalf("criteria length = %d", len(criteria))
	}
	if criteria[3].Name != "Presentation" {
		t.Errorf("last kept criterion = %q", criteria[3].Name)
	}
}

func TestExtractRubricPadsMissingCriteria(t *testing.T) {
	text := "## Rubric: Short\nOnly one criterion here.\n\n### Criterion 1: Accuracy\nUses data."

	title, description, criteria := extractRubric(text)
	if title != "Short" {
		t.Errorf("title = %q", title)
	}
	if description != "Only one criterion here." {
		t.Errorf("description = %q", description)
	}
	if len(criteria) != models.RubricCriterionCount {
		t.Fatalf("criteria length = %d", len(criteria))
	}
	if criteria[0].Name != "Accuracy" {
		t.Errorf("first criterion = %q", criteria[0].Name)
	}
	if criteria[1].Name != "Overall Quality" || criteria[1].Description != "" {
		t.Errorf("padding criterion = %+v", criteria[1])
	}
}

func TestExtractSectionIsCaseInsensitive(t *testing.T) {
	text := "## PURPOSE\nAssess planning.\n\n## requirements\n- One thing"

	if got := extractSection(text, "Purpose"); got != "Assess planning." {
		t.Errorf("extractSection(Purpose) = %q", got)
	}
	if got := extractSection(text, "Requirements"); got != "- One thing" {
		t.Errorf("extractSection(Requirements) = %q", got)
	}
	if got := extractSection(text, "Success Criteria"); got != "" {
		t.Errorf("extractSection(missing) = %q, expected empty", got)
	}
}
