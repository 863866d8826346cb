package forma

import (
	"context"
	"errors"
	"log"
	"time"
)

// Result is the optional payload returned by a submit callback. A non-empty
// Message takes precedence over any configured success message.
type Result struct {
	Message string
}

// SubmitFunc is the caller-supplied asynchronous submit callback. It
// receives a snapshot of the current values; the pipeline waits for it to
// settle and never cancels it. Timeouts are the callback's responsibility.
type SubmitFunc func(ctx context.Context, values Values) (*Result, error)

const (
	defaultSuccessMessage = "Done!"
	defaultErrorMessage   = "An error occurred. Please try again."
	feedbackDuration      = 4 * time.Second
)

// ErrSubmitInFlight is returned when Submit is invoked while a previous
// submission is still running. Re-entrant submits are ignored rather than
// queued.
var ErrSubmitInFlight = errors.New("forma: submit already in flight")

// ErrStatusNotIdle is returned when Submit is invoked on a form whose
// success/error status has not been reset. Resetting the status is an
// explicit caller responsibility.
var ErrStatusNotIdle = errors.New("forma: submission status has not been reset")

// FeedbackConfig tunes pipeline feedback. Passing the zero value is treated
// as an explicit opt-out (with a diagnostic warning), mirroring the
// difference between "no config" and "empty config"; set Disabled to opt out
// silently.
type FeedbackConfig struct {
	Disabled       bool
	SuccessMessage string
	ErrorMessage   string
}

// SubmitOpt customizes one Submit invocation.
type SubmitOpt func(*submitOptions)

type submitOptions struct {
	sink      FeedbackSink
	config    *FeedbackConfig
	onSuccess func(*Result)
	warnf     func(format string, args ...any)
}

// WithSink supplies the feedback sink notified on success and failure.
// Without a sink, feedback resolution is skipped entirely.
func WithSink(s FeedbackSink) SubmitOpt {
	return func(o *submitOptions) { o.sink = s }
}

// WithFeedbackConfig supplies an explicit feedback configuration. A nil
// pointer is equivalent to not passing the option.
func WithFeedbackConfig(cfg *FeedbackConfig) SubmitOpt {
	return func(o *submitOptions) { o.config = cfg }
}

// WithOnSuccess registers a callback invoked with the submit result after a
// successful submission has been fully applied (status, feedback, reset).
func WithOnSuccess(fn func(*Result)) SubmitOpt {
	return func(o *submitOptions) { o.onSuccess = fn }
}

// WithWarnf overrides the diagnostic logger used for configuration
// warnings. The default writes through the standard logger.
func WithWarnf(fn func(format string, args ...any)) SubmitOpt {
	return func(o *submitOptions) { o.warnf = fn }
}

// Submit runs the submission pipeline for form:
//
//  1. Validate with resolver over the current values. On failure the error
//     map is populated, the status is untouched, and Submit returns nil.
//  2. Move idle -> submitting and invoke onSubmit with a values snapshot.
//  3. On success: status success, feedback (result message > configured
//     message > default), Reset, then the OnSuccess callback.
//  4. On failure: status error, feedback (callback error message > nested
//     data message > configured message > default). Values are preserved
//     for retry.
//
// Validation and submission failures are absorbed into state and never
// returned; the only non-nil returns are misuse signals: ErrSubmitInFlight
// for a re-entrant call and ErrStatusNotIdle for an un-reset form.
func Submit(ctx context.Context, form *Form, resolver Resolver, onSubmit SubmitFunc, opts ...SubmitOpt) error {
	if form == nil {
		panic("forma.Submit: form must not be nil")
	}
	if onSubmit == nil {
		panic("forma.Submit: onSubmit must not be nil")
	}
	o := submitOptions{warnf: log.Printf}
	for _, opt := range opts {
		opt(&o)
	}

	switch form.Status() {
	case StatusSubmitting:
		return ErrSubmitInFlight
	case StatusSuccess, StatusError:
		return ErrStatusNotIdle
	}

	ok := form.Validate(func() Errors {
		if resolver == nil {
			return nil
		}
		return resolver(form.Values())
	})
	if !ok {
		return nil
	}

	// The transition below cannot fail: the status was checked above and
	// nothing else mutates it within this event turn.
	_ = form.SetStatus(StatusSubmitting)

	result, err := onSubmit(ctx, form.Values())
	if err != nil {
		_ = form.SetStatus(StatusError)
		if msg, on := o.feedbackMessage(errorMessage(err, o.config)); on {
			o.sink.AddFeedback(msg, FeedbackOptions{
				Variant:     VariantError,
				AutoDismiss: true,
				Duration:    feedbackDuration,
			})
		}
		return nil
	}

	_ = form.SetStatus(StatusSuccess)
	if msg, on := o.feedbackMessage(successMessage(result, o.config)); on {
		o.sink.AddFeedback(msg, FeedbackOptions{
			Variant:     VariantSuccess,
			AutoDismiss: true,
			Duration:    feedbackDuration,
		})
	}
	form.Reset()
	if o.onSuccess != nil {
		o.onSuccess(result)
	}
	return nil
}

// feedbackMessage resolves whether feedback should fire and with what text.
func (o *submitOptions) feedbackMessage(msg string) (string, bool) {
	if o.sink == nil {
		return "", false
	}
	if o.config != nil {
		if *o.config == (FeedbackConfig{}) {
			o.warnf("forma: empty feedback config disables feedback; set Disabled explicitly to silence this warning")
			return "", false
		}
		if o.config.Disabled {
			return "", false
		}
	}
	return msg, true
}

func successMessage(result *Result, cfg *FeedbackConfig) string {
	if result != nil && result.Message != "" {
		return result.Message
	}
	if cfg != nil && cfg.SuccessMessage != "" {
		return cfg.SuccessMessage
	}
	return defaultSuccessMessage
}

func errorMessage(err error, cfg *FeedbackConfig) string {
	var cbe *CallbackError
	if errors.As(err, &cbe) {
		if cbe.Message != "" {
			return cbe.Message
		}
		if cbe.Data != nil && cbe.Data.Message != "" {
			return cbe.Data.Message
		}
	}
	if cfg != nil && cfg.ErrorMessage != "" {
		return cfg.ErrorMessage
	}
	if cbe == nil && err != nil && err.Error() != "" {
		return err.Error()
	}
	return defaultErrorMessage
}
