package forma

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeRequired      = "required"
	CodeTooShort      = "too_short"
	CodeTooLong       = "too_long"
	CodeTooSmall      = "too_small"
	CodeTooBig        = "too_big"
	CodePattern       = "pattern"
	CodeInvalidEnum   = "invalid_enum"
	CodeInvalidFormat = "invalid_format"
	CodeParseError    = "parse_error"
	// Date/time constraint codes (produced by widget/datetimepicker)
	CodeInvalidDate     = "invalid_date"
	CodeDateBelowMin    = "date_below_min"
	CodeDateAboveMax    = "date_above_max"
	CodeWeekendDisabled = "weekend_disabled"
	CodeTimeOutOfRange  = "time_out_of_range"
)

// Issue represents a single field-level validation entry.
type Issue struct {
	Field   string // Field name in the form's value map.
	Code    string // One of the codes listed above.
	Message string
	// Params carries structured parameters (e.g., {"min":"01/01/2023"})
	// for message rendering and observability.
	Params map[string]any
}

// Issues is a collection of validation entries that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		fmt.Fprintf(b, "%s at %s", it.Code, it.Field)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// ToErrors projects issues onto the sparse field->message map used by the
// state store. The first issue per field wins.
func (iss Issues) ToErrors() Errors {
	if len(iss) == 0 {
		return nil
	}
	out := Errors{}
	for _, it := range iss {
		if _, ok := out[it.Field]; ok {
			continue
		}
		out[it.Field] = it.Message
	}
	return out
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// Errors is the sparse field->message map owned by the state store. Absence
// of a key means "no known error for this field"; an entry is never the
// empty string.
type Errors map[string]string

// Clone returns an independent copy. A nil receiver yields nil.
func (e Errors) Clone() Errors {
	if e == nil {
		return nil
	}
	out := make(Errors, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}

// Empty reports whether no field has a known error.
func (e Errors) Empty() bool { return len(e) == 0 }

// CallbackError carries a user-facing message for a failed submission. The
// pipeline extracts Message first, then Data.Message, before falling back to
// configured or default text.
type CallbackError struct {
	Message string
	Data    *ErrorData
	Cause   error
}

// ErrorData is the nested payload commonly attached by transport layers.
type ErrorData struct {
	Message string
}

func (e *CallbackError) Error() string {
	switch {
	case e == nil:
		return ""
	case e.Message != "":
		return e.Message
	case e.Data != nil && e.Data.Message != "":
		return e.Data.Message
	case e.Cause != nil:
		return e.Cause.Error()
	}
	return "submission failed"
}

func (e *CallbackError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}
