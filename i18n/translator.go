package i18n

import "strings"

// Translator retrieves user-facing messages for issue codes. data provides
// optional parameters to embed in the message (for example, "min" or "max"
// formatted with the active date pattern).
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator. Messages stay
// in one locale; parameters such as date bounds are rendered with the
// caller's formatting so the text always names the violated constraint.
type dictTranslator struct{}

func (dictTranslator) Message(code string, data map[string]string) string {
	tmpl := ""
	switch code {
	case "required":
		tmpl = "This field is required"
	case "too_short":
		tmpl = "Must be at least {min} characters"
	case "too_long":
		tmpl = "Must be at most {max} characters"
	case "too_small":
		tmpl = "Must be at least {min}"
	case "too_big":
		tmpl = "Must be at most {max}"
	case "pattern":
		tmpl = "Invalid format"
	case "invalid_enum":
		tmpl = "Must be one of the allowed values"
	case "invalid_format":
		tmpl = "Invalid value"
	case "parse_error":
		tmpl = "Could not be parsed"
	case "invalid_date":
		tmpl = "Not a valid calendar date"
	case "date_below_min":
		tmpl = "Date must be on or after {min}"
	case "date_above_max":
		tmpl = "Date must be on or before {max}"
	case "weekend_disabled":
		tmpl = "Weekends are not selectable"
	case "time_out_of_range":
		tmpl = "Time must be between {min} and {max}"
	default:
		return code
	}
	return interpolate(tmpl, data)
}

func interpolate(tmpl string, data map[string]string) string {
	if len(data) == 0 || !strings.Contains(tmpl, "{") {
		return tmpl
	}
	out := tmpl
	for k, v := range data {
		out = strings.ReplaceAll(out, "{"+k+"}", v)
	}
	return out
}

var currentTranslator Translator = dictTranslator{}

// SetTranslator replaces the Translator implementation. Passing nil restores
// the built-in dictionary.
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
