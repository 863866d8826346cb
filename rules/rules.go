// Package rules provides stock building blocks for composing a
// forma.Resolver without an external schema engine. The engine stays
// resolver-agnostic; these are conveniences, not a requirement.
package rules

import (
	"regexp"
	"strconv"
	"strings"

	forma "github.com/reoring/forma"
	"github.com/reoring/forma/i18n"
)

// FieldRule validates one field value, returning an empty string when the
// value passes and a user-facing message otherwise.
type FieldRule func(v any) string

// Field composes per-field rules into a Resolver for one named field. Rules
// run in order; the first failure wins.
func Field(name string, rs ...FieldRule) forma.Resolver {
	return func(values forma.Values) forma.Errors {
		v := values[name]
		for _, r := range rs {
			if r == nil {
				continue
			}
			if msg := r(v); msg != "" {
				return forma.Errors{name: msg}
			}
		}
		return nil
	}
}

// Merge combines resolvers; for fields reported by more than one, the first
// resolver's message wins.
func Merge(rs ...forma.Resolver) forma.Resolver {
	return func(values forma.Values) forma.Errors {
		var out forma.Errors
		for _, r := range rs {
			if r == nil {
				continue
			}
			errs := r(values)
			if len(errs) == 0 {
				continue
			}
			if out == nil {
				out = forma.Errors{}
			}
			for field, msg := range errs {
				if _, ok := out[field]; ok {
					continue
				}
				out[field] = msg
			}
		}
		return out
	}
}

// When gates a resolver behind a predicate over the full values snapshot.
func When(pred func(forma.Values) bool, r forma.Resolver) forma.Resolver {
	return func(values forma.Values) forma.Errors {
		if pred == nil || r == nil || !pred(values) {
			return nil
		}
		return r(values)
	}
}

// Required fails on nil, empty strings, and empty slices.
func Required() FieldRule {
	return func(v any) string {
		switch t := v.(type) {
		case nil:
			return i18n.T(forma.CodeRequired, nil)
		case string:
			if strings.TrimSpace(t) == "" {
				return i18n.T(forma.CodeRequired, nil)
			}
		case []any:
			if len(t) == 0 {
				return i18n.T(forma.CodeRequired, nil)
			}
		}
		return ""
	}
}

// MinLen fails when a string value is shorter than n runes. Non-string
// values pass (pair with Required for presence).
func MinLen(n int) FieldRule {
	return func(v any) string {
		s, ok := v.(string)
		if !ok {
			return ""
		}
		if len([]rune(s)) < n {
			return i18n.T(forma.CodeTooShort, map[string]string{"min": strconv.Itoa(n)})
		}
		return ""
	}
}

// MaxLen fails when a string value exceeds n runes.
func MaxLen(n int) FieldRule {
	return func(v any) string {
		s, ok := v.(string)
		if !ok {
			return ""
		}
		if len([]rune(s)) > n {
			return i18n.T(forma.CodeTooLong, map[string]string{"max": strconv.Itoa(n)})
		}
		return ""
	}
}

// Min fails when a numeric value is below bound.
func Min(bound float64) FieldRule {
	return func(v any) string {
		f, ok := numeric(v)
		if !ok {
			return ""
		}
		if f < bound {
			return i18n.T(forma.CodeTooSmall, map[string]string{"min": trimFloat(bound)})
		}
		return ""
	}
}

// Max fails when a numeric value exceeds bound.
func Max(bound float64) FieldRule {
	return func(v any) string {
		f, ok := numeric(v)
		if !ok {
			return ""
		}
		if f > bound {
			return i18n.T(forma.CodeTooBig, map[string]string{"max": trimFloat(bound)})
		}
		return ""
	}
}

// Pattern fails when a string value does not match the anchored expression.
// The expression is compiled once at composition time; an invalid pattern
// panics, as it is a programming error.
func Pattern(expr string) FieldRule {
	re := regexp.MustCompile(expr)
	return func(v any) string {
		s, ok := v.(string)
		if !ok || s == "" {
			return ""
		}
		if !re.MatchString(s) {
			return i18n.T(forma.CodePattern, nil)
		}
		return ""
	}
}

// OneOf fails when the value is none of the allowed primitives.
func OneOf(allowed ...any) FieldRule {
	return func(v any) string {
		if v == nil {
			return ""
		}
		for _, a := range allowed {
			if a == v {
				return ""
			}
		}
		return i18n.T(forma.CodeInvalidEnum, nil)
	}
}

// Message overrides the text of an inner rule, keeping its pass/fail
// behavior.
func Message(r FieldRule, msg string) FieldRule {
	return func(v any) string {
		if r(v) != "" {
			return msg
		}
		return ""
	}
}

func numeric(v any) (float64, bool) {
	switch t := v.(type) {
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case float32:
		return float64(t), true
	case float64:
		return t, true
	}
	return 0, false
}

func trimFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
