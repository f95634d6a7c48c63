package designer

import (
	"regexp"
	"strconv"
	"strings"

	"taskcraft/models"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Candidate is the id/title pair a classifier sees for the current step's
// candidate set.
type Candidate struct {
	ID    int
	Title string
}

// Decision is a classifier's verdict on one user message: advance with
// the extracted ids, or stay on the step and keep refining.
type Decision struct {
	ReadyToAdvance bool
	SelectedIDs    []int
	Rationale      string
}

// Classifier decides whether a user message selects from the current
// candidate set or asks for a refinement. Implementations are
// interchangeable; the orchestrator never knows which one is active.
type Classifier interface {
	Classify(step models.Step, text string, candidates []Candidate) Decision
}

var (
	numberListPattern = regexp.MustCompile(`^\s*\d+(?:\s*(?:,|and|&)?\s*\d+)*\s*[.!]?\s*$`)
	integerPattern    = regexp.MustCompile(`\d+`)

	proceedPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b(?:option|number|idea|topic|choice)\s+\d+\b`),
		regexp.MustCompile(`\b(?:select|choose|pick|go with|take|use)\b`),
		regexp.MustCompile(`\b(?:proceed|next|continue|move on|advance|let'?s go)\b`),
		regexp.MustCompile(`\b(?:yes|yep|yeah|sure|okay|ok|sounds good|looks good|perfect|great)\b`),
	}

	refinePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b(?:change|modify|different|instead|rather|redo|regenerate|revise|rework|replace|swap|adjust|tweak|reword|wording)\b`),
		regexp.MustCompile(`\b(?:no|not|don'?t|none|neither|nope)\b`),
		regexp.MustCompile(`\?\s*$`),
	}

	proceedKeywords = []string{"select", "choose", "proceed", "continue", "advance", "option"}
	refineKeywords  = []string{"change", "modify", "different", "instead", "regenerate", "revise"}
)

// PatternClassifier is the deterministic strategy: regular expressions
// plus typo-tolerant keyword matching, no model call. Refinement signals
// are checked after proceed signals and take precedence; when nothing
// matches the verdict is not-ready.
type PatternClassifier struct{}

func NewPatternClassifier() *PatternClassifier {
	return &PatternClassifier{}
}

func (c *PatternClassifier) Classify(step models.Step, text string, candidates []Candidate) Decision {
	lower := strings.ToLower(strings.TrimSpace(text))

	proceed := numberListPattern.MatchString(lower) ||
		matchesAny(proceedPatterns, lower) ||
		matchesKeywordFuzzy(lower, proceedKeywords)

	refine := matchesAny(refinePatterns, lower) ||
		matchesKeywordFuzzy(lower, refineKeywords)

	if refine {
		return Decision{
			ReadyToAdvance: false,
			Rationale:      "message asks for a change or clarification",
		}
	}

	if proceed {
		return Decision{
			ReadyToAdvance: true,
			SelectedIDs:    extractIntegers(lower),
			Rationale:      "message signals a selection",
		}
	}

	return Decision{
		ReadyToAdvance: false,
		Rationale:      "no clear selection or refinement signal, asking for clarification",
	}
}

func matchesAny(patterns []*regexp.Regexp, text string) bool {
	for _, pattern := range patterns {
		if pattern.MatchString(text) {
			return true
		}
	}
	return false
}

// matchesKeywordFuzzy tolerates typos in signal words ("contniue",
// "slect") using Levenshtein distance against each cleaned word.
func matchesKeywordFuzzy(text string, keywords []string) bool {
	for _, word := range strings.Fields(text) {
		cleanWord := strings.Trim(word, ".,!?;:()[]{}\"'")
		if len(cleanWord) < 4 {
			continue
		}
		for _, keyword := range keywords {
			allowed := 1
			if len(keyword) >= 7 {
				allowed = 2
			}
			if fuzzy.LevenshteinDistance(keyword, cleanWord) <= allowed {
				return true
			}
		}
	}
	return false
}

func extractIntegers(text string) []int {
	var ids []int
	for _, match := range integerPattern.FindAllString(text, -1) {
		id, err := strconv.Atoi(match)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
