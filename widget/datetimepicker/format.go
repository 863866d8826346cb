package datetimepicker

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Format is one of the five supported date patterns. Formatting a date and
// parsing the text back are inverse operations for any valid date.
type Format string

const (
	FormatMDY    Format = "MM/dd/yyyy"
	FormatDMY    Format = "dd/MM/yyyy"
	FormatISO    Format = "yyyy-MM-dd"
	FormatLong   Format = "MMMM dd, yyyy"
	FormatMedium Format = "LLL dd, yyyy"
)

// Formats lists every supported pattern.
func Formats() []Format {
	return []Format{FormatMDY, FormatDMY, FormatISO, FormatLong, FormatMedium}
}

// Valid reports whether f is one of the supported patterns.
func (f Format) Valid() bool {
	switch f {
	case FormatMDY, FormatDMY, FormatISO, FormatLong, FormatMedium:
		return true
	}
	return false
}

func (f Format) layout() string {
	switch f {
	case FormatMDY:
		return "01/02/2006"
	case FormatDMY:
		return "02/01/2006"
	case FormatISO:
		return "2006-01-02"
	case FormatLong:
		return "January 02, 2006"
	case FormatMedium:
		return "Jan 02, 2006"
	}
	return "01/02/2006"
}

// Numeric reports whether the pattern is digit-only (maskable). Month-name
// patterns accept free text instead.
func (f Format) Numeric() bool {
	switch f {
	case FormatMDY, FormatDMY, FormatISO:
		return true
	}
	return false
}

func (f Format) separator() byte {
	if f == FormatISO {
		return '-'
	}
	return '/'
}

// groups returns the digit counts of each masked segment, in input order.
func (f Format) groups() []int {
	if f == FormatISO {
		return []int{4, 2, 2}
	}
	return []int{2, 2, 4}
}

func (f Format) digitLen() int {
	n := 0
	for _, g := range f.groups() {
		n += g
	}
	return n
}

// Format renders the date portion of t as text in this pattern.
func (f Format) Format(t time.Time) string { return t.Format(f.layout()) }

// Parse converts text in this pattern back to a date (midnight, local).
// Numeric patterns parse strictly; month-name patterns are parsed
// permissively via calendar-aware parsing with a manual fallback.
func (f Format) Parse(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if f.Numeric() {
		return time.ParseInLocation(f.layout(), s, time.Local)
	}
	return parseMonthName(f, s)
}

// Complete reports whether the text is a full-length candidate for this
// pattern. Incomplete input is not an error: it reports "no date yet".
func (f Format) Complete(s string) bool {
	if f.Numeric() {
		return len(onlyDigits(s)) == f.digitLen()
	}
	return monthNameRe.MatchString(strings.TrimSpace(s))
}

// Mask reformats a raw digit stream by inserting the pattern's separators at
// fixed digit-count boundaries, truncating surplus digits. Month-name
// patterns pass text through untouched.
func (f Format) Mask(raw string) string {
	if !f.Numeric() {
		return raw
	}
	digits := onlyDigits(raw)
	if len(digits) > f.digitLen() {
		digits = digits[:f.digitLen()]
	}
	var b strings.Builder
	sep := f.separator()
	pos := 0
	for i, g := range f.groups() {
		if pos >= len(digits) {
			break
		}
		end := pos + g
		if end > len(digits) {
			end = len(digits)
		}
		if i > 0 {
			b.WriteByte(sep)
		}
		b.WriteString(digits[pos:end])
		pos = end
	}
	return b.String()
}

func onlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// monthNameRe is the manual fallback for month-name input: a word, a day,
// and a four-digit year with flexible punctuation.
var monthNameRe = regexp.MustCompile(`^([A-Za-z]{3,9})\.?\s+(\d{1,2}),?\s+(\d{4})$`)

func parseMonthName(f Format, s string) (time.Time, error) {
	// Calendar-aware first: normalize the month token's case and try the
	// canonical layouts with both padded and bare day numbers.
	norm := normalizeMonthCase(s)
	layouts := []string{f.layout(), strings.Replace(f.layout(), "02", "2", 1),
		strings.Replace(f.layout(), ", ", " ", 1)}
	var firstErr error
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, norm, time.Local); err == nil {
			return t, nil
		} else if firstErr == nil {
			firstErr = err
		}
	}

	m := monthNameRe.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, firstErr
	}
	month, ok := monthFromPrefix(m[1])
	if !ok {
		return time.Time{}, firstErr
	}
	day, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])
	if day < 1 || day > daysIn(year, month) {
		return time.Time{}, firstErr
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.Local), nil
}

func normalizeMonthCase(s string) string {
	i := 0
	for i < len(s) && isAlpha(s[i]) {
		i++
	}
	if i == 0 {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:i]) + s[i:]
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func monthFromPrefix(word string) (time.Month, bool) {
	w := strings.ToLower(word)
	for m := time.January; m <= time.December; m++ {
		name := strings.ToLower(m.String())
		if strings.HasPrefix(name, w) && len(w) >= 3 {
			return m, true
		}
	}
	return 0, false
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
