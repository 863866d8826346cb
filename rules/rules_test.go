package rules_test

import (
	"testing"

	forma "github.com/reoring/forma"
	"github.com/reoring/forma/rules"
)

func TestField_FirstFailureWins(t *testing.T) {
	r := rules.Field("name", rules.Required(), rules.MinLen(3))

	if errs := r(forma.Values{"name": nil}); errs["name"] != "This field is required" {
		t.Fatalf("nil value: %v", errs)
	}
	if errs := r(forma.Values{"name": "ab"}); errs["name"] != "Must be at least 3 characters" {
		t.Fatalf("short value: %v", errs)
	}
	if errs := r(forma.Values{"name": "abc"}); len(errs) != 0 {
		t.Fatalf("valid value: %v", errs)
	}
}

func TestRequired(t *testing.T) {
	r := rules.Required()
	cases := []struct {
		name string
		v    any
		fail bool
	}{
		{"nil", nil, true},
		{"empty string", "", true},
		{"whitespace string", "   ", true},
		{"empty slice", []any{}, true},
		{"zero int passes", 0, false},
		{"false passes", false, false},
		{"string", "x", false},
		{"slice", []any{"a"}, false},
	}
	for _, tc := range cases {
		if got := r(tc.v) != ""; got != tc.fail {
			t.Errorf("%s: fail=%v, want %v", tc.name, got, tc.fail)
		}
	}
}

func TestLengthRules(t *testing.T) {
	min := rules.MinLen(2)
	max := rules.MaxLen(4)

	if min("héllo") != "" {
		t.Fatalf("MinLen must count runes")
	}
	if msg := min("é"); msg != "Must be at least 2 characters" {
		t.Fatalf("MinLen message %q", msg)
	}
	if msg := max("abcde"); msg != "Must be at most 4 characters" {
		t.Fatalf("MaxLen message %q", msg)
	}
	// Non-strings pass; presence is Required's job.
	if min(nil) != "" || min(42) != "" {
		t.Fatalf("non-strings must pass length rules")
	}
}

func TestNumericBounds(t *testing.T) {
	min := rules.Min(18)
	max := rules.Max(99)

	if msg := min(17); msg != "Must be at least 18" {
		t.Fatalf("Min message %q", msg)
	}
	if min(18) != "" || min(18.5) != "" || min(int64(20)) != "" {
		t.Fatalf("in-range numerics must pass")
	}
	if msg := max(100.5); msg != "Must be at most 99" {
		t.Fatalf("Max message %q", msg)
	}
	if min("not a number") != "" {
		t.Fatalf("non-numerics must pass bound rules")
	}
}

func TestPattern(t *testing.T) {
	r := rules.Pattern(`^[a-z]+@[a-z]+\.[a-z]+$`)
	if r("user@example.com") != "" {
		t.Fatalf("matching value must pass")
	}
	if msg := r("nope"); msg != "Invalid format" {
		t.Fatalf("Pattern message %q", msg)
	}
	// Empty strings pass so Pattern composes with optional fields.
	if r("") != "" {
		t.Fatalf("empty string must pass")
	}

	defer func() {
		if recover() == nil {
			t.Fatalf("invalid expression must panic at composition time")
		}
	}()
	rules.Pattern("(")
}

func TestOneOf(t *testing.T) {
	r := rules.OneOf("red", "green", "blue")
	if r("green") != "" {
		t.Fatalf("allowed value must pass")
	}
	if r(nil) != "" {
		t.Fatalf("nil passes; presence is Required's job")
	}
	if msg := r("purple"); msg != "Must be one of the allowed values" {
		t.Fatalf("OneOf message %q", msg)
	}
}

func TestMessageOverride(t *testing.T) {
	r := rules.Message(rules.Required(), "Please fill this in")
	if msg := r(nil); msg != "Please fill this in" {
		t.Fatalf("override %q", msg)
	}
	if r("ok") != "" {
		t.Fatalf("override must keep pass behavior")
	}
}

func TestMerge_FirstResolverWinsPerField(t *testing.T) {
	r := rules.Merge(
		rules.Field("a", rules.Message(rules.Required(), "first")),
		rules.Field("a", rules.Message(rules.Required(), "second")),
		rules.Field("b", rules.Required()),
		nil,
	)
	errs := r(forma.Values{"a": nil, "b": nil})
	if errs["a"] != "first" {
		t.Fatalf("a = %q, want first resolver's message", errs["a"])
	}
	if errs["b"] != "This field is required" {
		t.Fatalf("b = %q", errs["b"])
	}

	if errs := r(forma.Values{"a": "x", "b": "y"}); len(errs) != 0 {
		t.Fatalf("clean values produced %v", errs)
	}
}

func TestWhen(t *testing.T) {
	newsletterChosen := func(v forma.Values) bool { return v["newsletter"] == true }
	r := rules.When(newsletterChosen, rules.Field("email", rules.Required()))

	if errs := r(forma.Values{"newsletter": false, "email": nil}); len(errs) != 0 {
		t.Fatalf("gated resolver ran while predicate was false: %v", errs)
	}
	if errs := r(forma.Values{"newsletter": true, "email": nil}); errs["email"] == "" {
		t.Fatalf("gated resolver did not run")
	}
}

func TestRulesAsFormResolver(t *testing.T) {
	f := forma.New(forma.Values{"name": "", "age": 15})
	resolver := rules.Merge(
		rules.Field("name", rules.Required()),
		rules.Field("age", rules.Min(18)),
	)

	validate := func() bool {
		return f.Validate(func() forma.Errors { return resolver(f.Values()) })
	}

	if validate() {
		t.Fatalf("invalid form reported valid")
	}
	if msg, _ := f.Error("name"); msg != "This field is required" {
		t.Fatalf("name error %q", msg)
	}
	if msg, _ := f.Error("age"); msg != "Must be at least 18" {
		t.Fatalf("age error %q", msg)
	}

	f.SetValue("name", "Ada")
	f.SetValue("age", 30)
	if !validate() {
		t.Fatalf("valid form reported invalid")
	}
	if !f.Errors().Empty() {
		t.Fatalf("errors remain after clean validate")
	}
}
