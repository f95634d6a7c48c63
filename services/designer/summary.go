package designer

import (
	"regexp"
	"strings"

	"taskcraft/models"

	"github.com/samber/lo"
)

var (
	sectionHeaderPattern = regexp.MustCompile(`(?m)^##\s+(.+?)\s*$`)
	rubricTitlePattern   = regexp.MustCompile(`(?m)^##\s+Rubric:?\s*(.*)$`)
	criterionPattern     = regexp.MustCompile(`(?m)^###\s+Criterion\s+\d+:?\s*(.*)$`)
)

const defaultRubricTitle = "Scoring Rubric"

// assembleSummary builds the final artifact deterministically from the
// marker-structured requirements and rubric text. Extraction is
// best-effort: missing sections become empty strings and the criterion
// list is padded to the fixed count, so assembly never fails the turn.
func assembleSummary(unit *models.UnitState) *models.Summary {
	summary := &models.Summary{
		Title:                unit.UnitTitle,
		Subtitle:             "Performance Task",
		Purpose:              extractSection(unit.RequirementsText, "Purpose"),
		Requirements:         extractBullets(extractSection(unit.RequirementsText, "Requirements")),
		SuccessCriteria:      extractBullets(extractSection(unit.RequirementsText, "Success Criteria")),
		SuggestedFocusTopics: lo.Map(unit.SelectedFocusTopics, func(t models.FocusTopic, _ int) string { return t.Title }),
	}

	if summary.Title == "" {
		summary.Title = unit.Topic
	}
	if unit.SelectedTaskIdea != nil {
		summary.Subtitle = unit.SelectedTaskIdea.Title
		summary.Description = unit.SelectedTaskIdea.Description
	}

	summary.RubricTitle, summary.RubricDescription, summary.RubricCriteria = extractRubric(unit.RubricText)

	return summary
}

// extractSection returns the body under the "## <header>" marker, up to
// the next section header. Missing sections yield the empty string.
func extractSection(text, header string) string {
	locations := sectionHeaderPattern.FindAllStringSubmatchIndex(text, -1)
	for i, loc := range locations {
		name := strings.TrimSpace(text[loc[2]:loc[3]])
		if !strings.EqualFold(name, header) {
			continue
		}

		start := loc[1]
		end := len(text)
		if i+1 < len(locations) {
			end = locations[i+1][0]
		}
		return strings.TrimSpace(text[start:end])
	}
	return ""
}

func extractBullets(section string) []string {
	bullets := []string{}
	for _, line := range strings.Split(section, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "- ") {
			bullets = append(bullets, strings.TrimSpace(trimmed[2:]))
		} else if strings.HasPrefix(trimmed, "* ") {
			bullets = append(bullets, strings.TrimSpace(trimmed[2:]))
		}
	}
	return bullets
}

// extractRubric pulls the rubric title, its description paragraph, and the
// criterion blocks, padding or truncating to the fixed criterion count.
func extractRubric(text string) (string, string, []models.RubricCriterion) {
	title := defaultRubricTitle
	description := ""

	if match := rubricTitlePattern.FindStringSubmatch(text); match != nil && strings.TrimSpace(match[1]) != "" {
		title = strings.TrimSpace(match[1])
	}

	criterionLocs := criterionPattern.FindAllStringSubmatchIndex(text, -1)

	if titleLoc := rubricTitlePattern.FindStringIndex(text); titleLoc != nil {
		end := len(text)
		if len(criterionLocs) > 0 {
			end = criterionLocs[0][0]
		}
		description = strings.TrimSpace(text[titleLoc[1]:end])
	}

	criteria := []models.RubricCriterion{}
	for i, loc := range criterionLocs {
		name := strings.TrimSpace(text[loc[2]:loc[3]])
		if name == "" {
			name = defaultRubricTitle
		}

		end := len(text)
		if i+1 < len(criterionLocs) {
			end = criterionLocs[i+1][0]
		}

		criteria = append(criteria, models.RubricCriterion{
			Name:        name,
			Description: strings.TrimSpace(text[loc[1]:end]),
		})
	}

	if len(criteria) > models.RubricCriterionCount {
		criteria = criteria[:models.RubricCriterionCount]
	}
	for len(criteria) < models.RubricCriterionCount {
		criteria = append(criteria, models.RubricCriterion{Name: "Overall Quality", Description: ""})
	}

	return title, description, criteria
}
