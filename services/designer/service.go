package designer

import (
	"time"

	"taskcraft/services"
	"taskcraft/services/completion"
)

// Service is the step orchestrator: it owns the per-turn state machine
// that walks a session through the fixed design sequence.
type Service struct {
	sessions   *services.SessionService
	invoker    completion.Invoker
	classifier Classifier
	timeout    time.Duration
}

func NewService(sessions *services.SessionService, invoker completion.Invoker, classifier Classifier, timeout time.Duration) *Service {
	return &Service{
		sessions:   sessions,
		invoker:    invoker,
		classifier: classifier,
		timeout:    timeout,
	}
}
