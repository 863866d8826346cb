package forma

// Status is the single submission status tracked per form. It moves along
// idle -> submitting -> (success|error), and back to idle only via an
// explicit reset.
type Status uint8

const (
	StatusIdle Status = iota
	StatusSubmitting
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusSubmitting:
		return "submitting"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	}
	return "unknown"
}

// canTransition encodes the legal edges of the submission state machine.
// A self-transition is always permitted (no-op).
func canTransition(from, to Status) bool {
	if from == to {
		return true
	}
	switch from {
	case StatusIdle:
		return to == StatusSubmitting
	case StatusSubmitting:
		return to == StatusSuccess || to == StatusError
	case StatusSuccess, StatusError:
		return to == StatusIdle
	}
	return false
}
