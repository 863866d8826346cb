package forma_test

import (
	"fmt"
	"strings"
	"testing"

	forma "github.com/reoring/forma"
)

func TestIssues_ErrorSummary(t *testing.T) {
	iss := forma.Issues{
		{Field: "a", Code: forma.CodeRequired},
		{Field: "b", Code: forma.CodeTooShort},
		{Field: "c", Code: forma.CodeTooLong},
		{Field: "d", Code: forma.CodePattern},
	}
	s := iss.Error()
	if s == "" {
		t.Fatalf("expected non-empty error summary")
	}
	if !strings.Contains(s, "total 4") {
		t.Fatalf("summary should mention the total: %q", s)
	}
	if forma.Issues(nil).Error() != "" {
		t.Fatalf("empty issues must summarize to empty string")
	}
}

func TestIssues_ToErrorsFirstWins(t *testing.T) {
	iss := forma.Issues{
		{Field: "a", Code: forma.CodeRequired, Message: "first"},
		{Field: "a", Code: forma.CodeTooShort, Message: "second"},
		{Field: "b", Code: forma.CodeRequired, Message: "other"},
	}
	errs := iss.ToErrors()
	if errs["a"] != "first" || errs["b"] != "other" {
		t.Fatalf("unexpected projection: %v", errs)
	}
	if forma.Issues(nil).ToErrors() != nil {
		t.Fatalf("no issues should project to nil")
	}
}

func TestAsIssues(t *testing.T) {
	iss := forma.Issues{{Field: "a", Code: forma.CodeRequired}}
	wrapped := fmt.Errorf("outer: %w", iss)
	got, ok := forma.AsIssues(wrapped)
	if !ok || len(got) != 1 || got[0].Field != "a" {
		t.Fatalf("AsIssues failed on wrapped error: %v ok=%v", got, ok)
	}
	if _, ok := forma.AsIssues(nil); ok {
		t.Fatalf("nil error must not extract issues")
	}
}

func TestCallbackError_Error(t *testing.T) {
	cases := []struct {
		name string
		err  *forma.CallbackError
		want string
	}{
		{"message", &forma.CallbackError{Message: "boom"}, "boom"},
		{"nested data", &forma.CallbackError{Data: &forma.ErrorData{Message: "deep"}}, "deep"},
		{"cause", &forma.CallbackError{Cause: fmt.Errorf("root")}, "root"},
		{"empty", &forma.CallbackError{}, "submission failed"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.err.Error(); got != tc.want {
				t.Fatalf("Error() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestErrors_Clone(t *testing.T) {
	src := forma.Errors{"a": "x"}
	dup := src.Clone()
	dup["a"] = "y"
	if src["a"] != "x" {
		t.Fatalf("clone shares storage with source")
	}
	if forma.Errors(nil).Clone() != nil {
		t.Fatalf("nil clone must stay nil")
	}
}
