package designer

import "errors"

var (
	// ErrMissingPrerequisite means the context builder ran before a prior
	// step's selection existed. This indicates an orchestrator defect and
	// is logged as one; the user sees a generic cannot-proceed reply.
	ErrMissingPrerequisite = errors.New("missing prerequisite selection")

	ErrSelectionOutOfRange = errors.New("selection outside current candidate set")
	ErrTooManySelected     = errors.New("too many candidates selected")
)
