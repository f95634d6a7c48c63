package designer

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"taskcraft/models"
	"taskcraft/services"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

const (
	apologyReply = "I'm sorry, I wasn't able to put that together just now. Could you add a bit more detail and send it again?"

	cannotProceedReply = "I can't move forward from here yet. Let's keep working on the current step."

	completeReply = "This performance task is finished! The full summary is attached. Start a new session whenever you want to design another unit."
)

// StartSession creates a session with its immutable unit fields and
// returns the greeting that opens the TASK_IDEAS step. When no id is
// supplied one is minted.
func (s *Service) StartSession(id, topic, unitTitle, gradeLabel string) (*models.StartSessionResponse, error) {
	if strings.TrimSpace(id) == "" {
		id = uuid.NewString()
	}

	sess, err := s.sessions.CreateSession(id, topic, unitTitle, gradeLabel)
	if err != nil {
		return nil, err
	}

	sess.Lock()
	defer sess.Unlock()

	greeting := fmt.Sprintf(
		"Let's design a performance task for %q (%s, %s). Tell me a bit about what you'd like students to do, and I'll propose some task ideas.",
		sess.Unit.UnitTitle, sess.Unit.Topic, sess.Unit.GradeLabel)
	sess.AppendMessage(models.RoleAssistant, greeting)

	log.Printf("[INFO] Started design session %s at step %s", sess.ID, sess.Unit.CurrentStep)
	return &models.StartSessionResponse{
		SessionID: sess.ID,
		Greeting:  greeting,
		Step:      sess.Unit.CurrentStep,
	}, nil
}

// HandleMessage runs one full turn of the state machine. Every error that
// arises inside the turn is converted to conversational text with the step
// unchanged or safely advanced; only an unknown session id propagates.
func (s *Service) HandleMessage(sessionID, text string) (*models.TurnResponse, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("message text cannot be empty")
	}

	sess, err := s.sessions.GetSession(sessionID)
	if err != nil {
		return nil, err
	}

	sess.Lock()
	defer sess.Unlock()

	sess.AppendMessage(models.RoleUser, text)

	step := sess.Unit.CurrentStep
	spec := stepTable[step]
	log.Printf("[INFO] Handling turn for session %s at step %s", sessionID, step)

	var reply string
	var summary *models.Summary

	switch {
	case step == models.StepComplete:
		summary = s.ensureSummary(sess)
		reply = completeReply
	case spec.selectable:
		reply = s.handleSelectableTurn(sess, step, spec, text)
	default:
		reply, summary = s.handleDocumentTurn(sess, step, spec, text)
	}

	sess.AppendMessage(models.RoleAssistant, reply)

	return &models.TurnResponse{
		ResponseText: reply,
		Step:         sess.Unit.CurrentStep,
		FinalSummary: summary,
	}, nil
}

// handleSelectableTurn covers the steps with a candidate set: classify the
// message, then either lock in a validated selection and advance, or
// (re)generate candidates and stay.
func (s *Service) handleSelectableTurn(sess *services.Session, step models.Step, spec stepSpec, text string) string {
	candidates := candidateRefs(&sess.Unit, step)

	// Nothing to select from yet, so any message triggers generation.
	if len(candidates) == 0 {
		return s.regenerateCandidates(sess, step, text)
	}

	decision := s.classifier.Classify(step, text, candidates)
	if !decision.ReadyToAdvance || len(decision.SelectedIDs) == 0 {
		log.Printf("[INFO] Session %s staying on %s: %s", sess.ID, step, decision.Rationale)
		return s.regenerateCandidates(sess, step, text)
	}

	selectedIDs := lo.Uniq(decision.SelectedIDs)
	validIDs := lo.Map(candidates, func(c Candidate, _ int) int { return c.ID })

	invalidIDs := lo.Filter(selectedIDs, func(id int, _ int) bool {
		return !lo.Contains(validIDs, id)
	})
	if len(invalidIDs) > 0 {
		log.Printf("[INFO] Session %s selected invalid ids %v at %s: %v", sess.ID, invalidIDs, step, ErrSelectionOutOfRange)
		return fmt.Sprintf("I don't see %s in the current list. Please pick a valid number between 1 and %d, or ask me to regenerate the options.",
			formatIDList(invalidIDs), len(candidates))
	}

	if spec.maxSelections > 0 && len(selectedIDs) > spec.maxSelections {
		log.Printf("[INFO] Session %s selected %d ids at %s: %v", sess.ID, len(selectedIDs), step, ErrTooManySelected)
		return fmt.Sprintf("That's %d selections, but this step allows at most %d. Could you narrow it down?",
			len(selectedIDs), spec.maxSelections)
	}

	selectedTitles := s.applySelection(sess, step, selectedIDs)

	if err := sess.AdvanceStep(spec.next); err != nil {
		log.Printf("[ERROR] Defect: advance from %s rejected: %v", step, err)
		return cannotProceedReply
	}

	log.Printf("[INFO] Session %s advanced %s -> %s with selection %v", sess.ID, step, spec.next, selectedIDs)
	return fmt.Sprintf("Locked in: %s.\n\n%s", strings.Join(selectedTitles, "; "), stepTable[spec.next].intro)
}

// applySelection writes the resolved candidates into the step's selected
// slot. IDs are already validated against the candidate set.
func (s *Service) applySelection(sess *services.Session, step models.Step, ids []int) []string {
	switch step {
	case models.StepTaskIdeas:
		idea, _ := lo.Find(sess.Unit.CandidateTaskIdeas, func(i models.TaskIdea) bool { return i.ID == ids[0] })
		sess.Unit.SelectedTaskIdea = &idea
		return []string{idea.Title}

	case models.StepFocusTopics:
		selected := lo.Filter(sess.Unit.CandidateFocusTopics, func(t models.FocusTopic, _ int) bool {
			return lo.Contains(ids, t.ID)
		})
		sess.Unit.SelectedFocusTopics = selected
		return lo.Map(selected, func(t models.FocusTopic, _ int) string { return t.Title })

	case models.StepProductOptions:
		selected := lo.Filter(sess.Unit.CandidateProductOptions, func(o models.ProductOption, _ int) bool {
			return lo.Contains(ids, o.ID)
		})
		sess.Unit.SelectedProductOptions = selected
		return lo.Map(selected, func(o models.ProductOption, _ int) string { return o.Title })
	}
	return nil
}

// regenerateCandidates rebuilds the step's candidate set and enumerates it.
// Failures never advance the step: generation errors turn into the apology
// reply and a missing prerequisite turns into the generic cannot-proceed
// reply.
func (s *Service) regenerateCandidates(sess *services.Session, step models.Step, text string) string {
	if err := s.generateCandidates(sess, step, text); err != nil {
		if errors.Is(err, ErrMissingPrerequisite) {
			log.Printf("[ERROR] Defect: %v", err)
			return cannotProceedReply
		}
		log.Printf("[ERROR] Candidate generation failed for session %s at %s: %v", sess.ID, step, err)
		return apologyReply
	}

	return renderCandidates(&sess.Unit, step)
}

// handleDocumentTurn covers REQUIREMENTS and RUBRIC: every message
// regenerates, success stores the text and advances unconditionally,
// failure keeps the step and asks for a retry.
func (s *Service) handleDocumentTurn(sess *services.Session, step models.Step, spec stepSpec, text string) (string, *models.Summary) {
	document, err := s.generateDocument(sess, step, text)
	if err != nil {
		if errors.Is(err, ErrMissingPrerequisite) {
			log.Printf("[ERROR] Defect: %v", err)
			return cannotProceedReply, nil
		}
		log.Printf("[ERROR] Document generation failed for session %s at %s: %v", sess.ID, step, err)
		return apologyReply, nil
	}

	switch step {
	case models.StepRequirements:
		sess.Unit.RequirementsText = document
	case models.StepRubric:
		sess.Unit.RubricText = document
	}

	if err := sess.AdvanceStep(spec.next); err != nil {
		log.Printf("[ERROR] Defect: advance from %s rejected: %v", step, err)
		return cannotProceedReply, nil
	}
	log.Printf("[INFO] Session %s advanced %s -> %s", sess.ID, step, spec.next)

	if sess.Unit.CurrentStep == models.StepComplete {
		summary := s.ensureSummary(sess)
		return fmt.Sprintf("%s\n\n%s", document, completeReply), summary
	}

	return fmt.Sprintf("%s\n\n%s", document, stepTable[spec.next].intro), nil
}

// ensureSummary assembles the final artifact exactly once per session;
// later turns return the cached object without touching the completion
// service.
func (s *Service) ensureSummary(sess *services.Session) *models.Summary {
	if sess.Unit.FinalSummary != nil {
		return sess.Unit.FinalSummary
	}

	summary := assembleSummary(&sess.Unit)
	sess.Unit.FinalSummary = summary
	log.Printf("[INFO] Assembled final summary for session %s", sess.ID)
	return summary
}

// GetState returns a read-only snapshot of the session.
func (s *Service) GetState(sessionID string) (*models.SessionState, error) {
	sess, err := s.sessions.GetSession(sessionID)
	if err != nil {
		return nil, err
	}

	sess.Lock()
	defer sess.Unlock()

	state := sess.Snapshot()
	return &state, nil
}

func (s *Service) ListSessions() []models.SessionState {
	return s.sessions.ListSessions()
}

func (s *Service) DeleteSession(sessionID string) error {
	return s.sessions.DeleteSession(sessionID)
}

func candidateRefs(unit *models.UnitState, step models.Step) []Candidate {
	switch step {
	case models.StepTaskIdeas:
		return lo.Map(unit.CandidateTaskIdeas, func(i models.TaskIdea, _ int) Candidate {
			return Candidate{ID: i.ID, Title: i.Title}
		})
	case models.StepFocusTopics:
		return lo.Map(unit.CandidateFocusTopics, func(t models.FocusTopic, _ int) Candidate {
			return Candidate{ID: t.ID, Title: t.Title}
		})
	case models.StepProductOptions:
		return lo.Map(unit.CandidateProductOptions, func(o models.ProductOption, _ int) Candidate {
			return Candidate{ID: o.ID, Title: o.Title}
		})
	}
	return nil
}

func renderCandidates(unit *models.UnitState, step models.Step) string {
	var reply strings.Builder

	switch step {
	case models.StepTaskIdeas:
		reply.WriteString("Here are some performance task ideas:\n\n")
		for _, idea := range unit.CandidateTaskIdeas {
			reply.WriteString(fmt.Sprintf("%d. %s: %s\n", idea.ID, idea.Title, idea.Description))
		}
	case models.StepFocusTopics:
		reply.WriteString("Here are some focus topics for that task:\n\n")
		for _, topic := range unit.CandidateFocusTopics {
			reply.WriteString(fmt.Sprintf("%d. %s: %s\n", topic.ID, topic.Title, topic.Description))
		}
	case models.StepProductOptions:
		reply.WriteString("Here are some product options students could choose from:\n\n")
		for _, option := range unit.CandidateProductOptions {
			reply.WriteString(fmt.Sprintf("%d. %s: %s\n", option.ID, option.Title, option.Description))
		}
	}

	reply.WriteString("\n")
	reply.WriteString(stepTable[step].intro)
	return reply.String()
}

func formatIDList(ids []int) string {
	formatted := lo.Map(ids, func(id int, _ int) string { return fmt.Sprintf("#%d", id) })
	return strings.Join(formatted, ", ")
}
