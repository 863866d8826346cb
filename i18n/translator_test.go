package i18n_test

import (
	"testing"

	"github.com/reoring/forma/i18n"
)

func TestMessageCatalog(t *testing.T) {
	cases := []struct {
		code string
		data map[string]string
		want string
	}{
		{"required", nil, "This field is required"},
		{"too_short", map[string]string{"min": "3"}, "Must be at least 3 characters"},
		{"too_long", map[string]string{"max": "10"}, "Must be at most 10 characters"},
		{"invalid_date", nil, "Not a valid calendar date"},
		{"date_below_min", map[string]string{"min": "01/01/2023"}, "Date must be on or after 01/01/2023"},
		{"date_above_max", map[string]string{"max": "31/12/2023"}, "Date must be on or before 31/12/2023"},
		{"weekend_disabled", nil, "Weekends are not selectable"},
		{"time_out_of_range", map[string]string{"min": "09:00", "max": "17:00"}, "Time must be between 09:00 and 17:00"},
		// Unknown codes fall through as-is so custom rule messages survive.
		{"my_custom_code", nil, "my_custom_code"},
		// Missing data leaves the placeholder visible rather than guessing.
		{"too_short", nil, "Must be at least {min} characters"},
	}
	for _, tc := range cases {
		if got := i18n.T(tc.code, tc.data); got != tc.want {
			t.Errorf("T(%q, %v) = %q, want %q", tc.code, tc.data, got, tc.want)
		}
	}
}

type upperTranslator struct{}

func (upperTranslator) Message(code string, _ map[string]string) string {
	return "!" + code
}

func TestSetTranslator(t *testing.T) {
	i18n.SetTranslator(upperTranslator{})
	defer i18n.SetTranslator(nil)

	if got := i18n.T("required", nil); got != "!required" {
		t.Fatalf("custom translator not applied: %q", got)
	}

	i18n.SetTranslator(nil)
	if got := i18n.T("required", nil); got != "This field is required" {
		t.Fatalf("nil must restore the built-in dictionary: %q", got)
	}
}
