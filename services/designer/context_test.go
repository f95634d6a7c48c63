package designer

import (
	"errors"
	"strings"
	"testing"

	"taskcraft/models"
)

func TestBuildContextBlockMissingPrerequisite(t *testing.T) {
	unit := &models.UnitState{Topic: "Space Exploration"}

	tests := []struct {
		name string
		step models.Step
	}{
		{"focus topics need a task idea", models.StepFocusTopics},
		{"product options need topics", models.StepProductOptions},
		{"requirements need options", models.StepRequirements},
		{"rubric needs requirements", models.StepRubric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := buildContextBlock(unit, tt.step, "hello")
			if !errors.Is(err, ErrMissingPrerequisite) {
				t.Errorf("expected ErrMissingPrerequisite, got %v", err)
			}
		})
	}
}

func TestBuildContextBlockUnknownStep(t *testing.T) {
	unit := &models.UnitState{Topic: "Space Exploration"}

	if _, err := buildContextBlock(unit, models.Step("BOGUS"), ""); err == nil {
		t.Error("expected error for unknown step")
	}
}

func TestBuildContextBlockRendersSelections(t *testing.T) {
	unit := &models.UnitState{
		Topic:      "Space Exploration",
		UnitTitle:  "Mars Missions",
		GradeLabel: "6th",
		SelectedTaskIdea: &models.TaskIdea{
			ID: 2, Title: "Mission proposal", Description: "Plan a Mars mission.",
		},
		SelectedFocusTopics: []models.FocusTopic{
			{ID: 1, Title: "Orbital mechanics", Description: "Transfer windows."},
		},
		SelectedProductOptions: []models.ProductOption{
			{ID: 3, Title: "Mission poster", Description: "A visual overview."},
		},
		RequirementsText: "## Purpose\nAssess planning.",
	}

	block, err := buildContextBlock(unit, models.StepRubric, "keep it kid friendly")
	if err != nil {
		t.Fatalf("buildContextBlock() failed: %v", err)
	}

	for _, want := range []string{
		"Unit topic: Space Exploration",
		"Unit title: Mars Missions",
		"Grade level: 6th",
		"Selected task idea: Mission proposal",
		"- Orbital mechanics: Transfer windows.",
		"- Mission poster: A visual overview.",
		"Task requirements:\n## Purpose\nAssess planning.",
		"Teacher input for this step:\nkeep it kid friendly",
	} {
		if !strings.Contains(block, want) {
			t.Errorf("context block missing %q:\n%s", want, block)
		}
	}
}

func TestBuildContextBlockOmitsEmptyFields(t *testing.T) {
	unit := &models.UnitState{Topic: "Space Exploration"}

	block, err := buildContextBlock(unit, models.StepTaskIdeas, "  ")
	if err != nil {
		t.Fatalf("buildContextBlock() failed: %v", err)
	}

	if strings.Contains(block, "Unit title:") {
		t.Error("block should omit the unit title when unset")
	}
	if strings.Contains(block, "Grade level:") {
		t.Error("block should omit the grade level when unset")
	}
	if strings.Contains(block, "Teacher input") {
		t.Error("block should omit blank teacher input")
	}
}
