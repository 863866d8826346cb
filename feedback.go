package forma

import "time"

// Variant classifies a feedback entry for presentation.
type Variant string

const (
	VariantSuccess Variant = "success"
	VariantError   Variant = "error"
	VariantInfo    Variant = "info"
)

// FeedbackOptions accompany one feedback message. Duration only applies when
// AutoDismiss is set; OnClose, when non-nil, runs after the entry is
// dismissed.
type FeedbackOptions struct {
	Variant     Variant
	AutoDismiss bool
	Duration    time.Duration
	OnClose     func()
}

// FeedbackSink is the collaborator contract the submission pipeline uses to
// surface transient notifications. The pipeline consumes it and never owns
// it; feedback.Manager is the in-tree implementation.
type FeedbackSink interface {
	AddFeedback(message string, opts FeedbackOptions)
}
