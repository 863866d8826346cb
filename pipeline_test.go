package forma_test

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"

	forma "github.com/reoring/forma"
)

// recordingSink captures feedback invocations.
type recordingSink struct {
	messages []string
	opts     []forma.FeedbackOptions
}

func (s *recordingSink) AddFeedback(message string, opts forma.FeedbackOptions) {
	s.messages = append(s.messages, message)
	s.opts = append(s.opts, opts)
}

func TestSubmit_SuccessScenario(t *testing.T) {
	initial := forma.Values{"username": "abc", "age": 20}
	f := forma.New(initial)
	f.SetValue("username", "abc")
	sink := &recordingSink{}

	var observed []forma.Status
	observed = append(observed, f.Status())

	err := forma.Submit(context.Background(), f,
		func(forma.Values) forma.Errors { return nil },
		func(ctx context.Context, values forma.Values) (*forma.Result, error) {
			observed = append(observed, f.Status())
			if values["username"] != "abc" || values["age"] != 20 {
				t.Fatalf("callback received wrong snapshot: %v", values)
			}
			return nil, nil
		},
		forma.WithSink(sink),
	)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	observed = append(observed, f.Status())

	want := []forma.Status{forma.StatusIdle, forma.StatusSubmitting, forma.StatusSuccess}
	if !reflect.DeepEqual(observed, want) {
		t.Fatalf("status sequence %v, want %v", observed, want)
	}
	if !reflect.DeepEqual(f.Values(), initial) {
		t.Fatalf("success must reset the form, got %v", f.Values())
	}
	if len(sink.messages) != 1 || sink.messages[0] != "Done!" {
		t.Fatalf("expected default success feedback, got %v", sink.messages)
	}
	if sink.opts[0].Variant != forma.VariantSuccess {
		t.Fatalf("expected success variant, got %v", sink.opts[0].Variant)
	}
}

func TestSubmit_ValidationFailureScenario(t *testing.T) {
	f := forma.New(forma.Values{"age": 15})
	sink := &recordingSink{}
	called := false

	err := forma.Submit(context.Background(), f,
		func(values forma.Values) forma.Errors {
			return forma.Errors{"age": "Must be at least 18"}
		},
		func(ctx context.Context, values forma.Values) (*forma.Result, error) {
			called = true
			return nil, nil
		},
		forma.WithSink(sink),
	)
	if err != nil {
		t.Fatalf("validation failure must be absorbed, got %v", err)
	}
	if called {
		t.Fatalf("submit callback must not run when validation fails")
	}
	if f.Status() != forma.StatusIdle {
		t.Fatalf("status must stay idle, got %v", f.Status())
	}
	if msg, _ := f.Error("age"); msg != "Must be at least 18" {
		t.Fatalf("expected validation error written, got %q", msg)
	}
	if len(sink.messages) != 0 {
		t.Fatalf("no feedback on validation failure, got %v", sink.messages)
	}
}

func TestSubmit_CallbackErrorScenario(t *testing.T) {
	f := forma.New(forma.Values{"username": "abc"})
	f.SetValue("username", "keep me")
	sink := &recordingSink{}

	err := forma.Submit(context.Background(), f, nil,
		func(ctx context.Context, values forma.Values) (*forma.Result, error) {
			return nil, &forma.CallbackError{Message: "Server down"}
		},
		forma.WithSink(sink),
	)
	if err != nil {
		t.Fatalf("callback failure must be absorbed, got %v", err)
	}
	if f.Status() != forma.StatusError {
		t.Fatalf("expected error status, got %v", f.Status())
	}
	if v, _ := f.Value("username"); v != "keep me" {
		t.Fatalf("values must be preserved for retry, got %v", v)
	}
	if len(sink.messages) != 1 || sink.messages[0] != "Server down" {
		t.Fatalf("expected error message from callback, got %v", sink.messages)
	}
	if sink.opts[0].Variant != forma.VariantError {
		t.Fatalf("expected error variant")
	}
}

func TestSubmit_MessagePrecedence(t *testing.T) {
	cases := []struct {
		name   string
		result *forma.Result
		err    error
		cfg    *forma.FeedbackConfig
		want   string
	}{
		{"result message wins", &forma.Result{Message: "Saved 3 records"}, nil,
			&forma.FeedbackConfig{SuccessMessage: "override"}, "Saved 3 records"},
		{"success override", nil, nil,
			&forma.FeedbackConfig{SuccessMessage: "All set"}, "All set"},
		{"success default", nil, nil, nil, "Done!"},
		{"error message field", nil, &forma.CallbackError{Message: "boom"},
			&forma.FeedbackConfig{ErrorMessage: "override"}, "boom"},
		{"nested data message", nil, &forma.CallbackError{Data: &forma.ErrorData{Message: "deep boom"}},
			&forma.FeedbackConfig{ErrorMessage: "override"}, "deep boom"},
		{"error override beats generic", nil, errors.New("raw"),
			&forma.FeedbackConfig{ErrorMessage: "Try later"}, "Try later"},
		{"generic error text", nil, errors.New("raw failure"), nil, "raw failure"},
		{"empty callback error falls to default", nil, &forma.CallbackError{}, nil,
			"An error occurred. Please try again."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := forma.New(forma.Values{"a": ""})
			sink := &recordingSink{}
			opts := []forma.SubmitOpt{forma.WithSink(sink)}
			if tc.cfg != nil {
				opts = append(opts, forma.WithFeedbackConfig(tc.cfg))
			}
			err := forma.Submit(context.Background(), f, nil,
				func(ctx context.Context, values forma.Values) (*forma.Result, error) {
					return tc.result, tc.err
				}, opts...)
			if err != nil {
				t.Fatalf("Submit: %v", err)
			}
			if len(sink.messages) != 1 || sink.messages[0] != tc.want {
				t.Fatalf("feedback %v, want [%q]", sink.messages, tc.want)
			}
		})
	}
}

func TestSubmit_EmptyConfigOptsOutWithWarning(t *testing.T) {
	f := forma.New(forma.Values{"a": ""})
	sink := &recordingSink{}
	var warnings []string

	err := forma.Submit(context.Background(), f, nil,
		func(ctx context.Context, values forma.Values) (*forma.Result, error) {
			return nil, nil
		},
		forma.WithSink(sink),
		forma.WithFeedbackConfig(&forma.FeedbackConfig{}),
		forma.WithWarnf(func(format string, args ...any) {
			warnings = append(warnings, fmt.Sprintf(format, args...))
		}),
	)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if len(sink.messages) != 0 {
		t.Fatalf("empty config must disable feedback, got %v", sink.messages)
	}
	if len(warnings) != 1 {
		t.Fatalf("expected one diagnostic warning, got %v", warnings)
	}
}

func TestSubmit_DisabledConfigIsSilent(t *testing.T) {
	f := forma.New(forma.Values{"a": ""})
	sink := &recordingSink{}
	var warnings []string

	err := forma.Submit(context.Background(), f, nil,
		func(ctx context.Context, values forma.Values) (*forma.Result, error) {
			return nil, nil
		},
		forma.WithSink(sink),
		forma.WithFeedbackConfig(&forma.FeedbackConfig{Disabled: true}),
		forma.WithWarnf(func(format string, args ...any) {
			warnings = append(warnings, format)
		}),
	)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if len(sink.messages) != 0 || len(warnings) != 0 {
		t.Fatalf("explicit opt-out must be silent: %v %v", sink.messages, warnings)
	}
}

func TestSubmit_ReentrantCallIgnored(t *testing.T) {
	f := forma.New(forma.Values{"a": ""})
	var inner error

	err := forma.Submit(context.Background(), f, nil,
		func(ctx context.Context, values forma.Values) (*forma.Result, error) {
			inner = forma.Submit(ctx, f, nil,
				func(context.Context, forma.Values) (*forma.Result, error) {
					t.Fatal("re-entrant callback must never run")
					return nil, nil
				})
			return nil, nil
		})
	if err != nil {
		t.Fatalf("outer Submit: %v", err)
	}
	if !errors.Is(inner, forma.ErrSubmitInFlight) {
		t.Fatalf("inner Submit = %v, want ErrSubmitInFlight", inner)
	}
	if f.Status() != forma.StatusSuccess {
		t.Fatalf("outer submission should still succeed, got %v", f.Status())
	}
}

func TestSubmit_UnresetFormRejected(t *testing.T) {
	f := forma.New(forma.Values{"a": ""})
	submit := func(ctx context.Context, values forma.Values) (*forma.Result, error) {
		return nil, nil
	}
	if err := forma.Submit(context.Background(), f, nil, submit); err != nil {
		t.Fatalf("first Submit: %v", err)
	}
	err := forma.Submit(context.Background(), f, nil, submit)
	if !errors.Is(err, forma.ErrStatusNotIdle) {
		t.Fatalf("expected ErrStatusNotIdle, got %v", err)
	}

	if err := f.ResetStatus(); err != nil {
		t.Fatalf("ResetStatus: %v", err)
	}
	if err := forma.Submit(context.Background(), f, nil, submit); err != nil {
		t.Fatalf("Submit after reset: %v", err)
	}
}

func TestSubmit_OnSuccessRunsAfterReset(t *testing.T) {
	f := forma.New(forma.Values{"a": "init"})
	f.SetValue("a", "dirty")

	var atCallback any
	err := forma.Submit(context.Background(), f, nil,
		func(ctx context.Context, values forma.Values) (*forma.Result, error) {
			return &forma.Result{Message: "done"}, nil
		},
		forma.WithOnSuccess(func(r *forma.Result) {
			atCallback, _ = f.Value("a")
			if r == nil || r.Message != "done" {
				t.Fatalf("unexpected result: %+v", r)
			}
		}),
	)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if atCallback != "init" {
		t.Fatalf("OnSuccess must observe the reset form, got %v", atCallback)
	}
}

func TestSubmit_NilArgumentsPanic(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("nil form must panic")
		}
	}()
	_ = forma.Submit(context.Background(), nil, nil,
		func(context.Context, forma.Values) (*forma.Result, error) { return nil, nil })
}
