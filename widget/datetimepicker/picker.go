// Package datetimepicker implements the composite date/time picker: a
// constrained calendar grid, format-driven masked text input, and
// time-slot enumeration. Rendering is out of scope; the Picker owns state
// and the form binding, the host paints it.
package datetimepicker

import (
	"time"

	forma "github.com/reoring/forma"
	"github.com/reoring/forma/i18n"
	"github.com/reoring/forma/internal/position"
)

// Config carries the picker's constraint inputs. The zero value is an
// unconstrained date-only picker in MM/dd/yyyy.
type Config struct {
	Format     Format
	TimePicker bool
	MinDate    *time.Time
	MaxDate    *time.Time
	MinTime    string // "HH:MM", 24-hour; empty means unbounded
	MaxTime    string
	NoWeekends bool
	Disabled   bool
	// PanelHeight is the rendered dropdown height used for placement.
	PanelHeight int
}

// Picker is the widget state machine for one date/time field.
type Picker struct {
	bind      forma.DateBinding
	cfg       Config
	open      bool
	inputText string
	curYear   int
	curMonth  time.Month
	placement position.Placement
	// hasTime records whether the user has ever picked a time slot; until
	// then date selections fall back to the minimum time.
	hasTime bool
}

// New binds a picker to one field of form. It panics when form is nil.
func New(form *forma.Form, field string, cfg Config) *Picker {
	if !cfg.Format.Valid() {
		cfg.Format = FormatMDY
	}
	p := &Picker{bind: forma.BindDate(form, field), cfg: cfg}
	p.syncCursor()
	p.syncInputText()
	return p
}

// Value returns the committed date, or nil when none is chosen.
func (p *Picker) Value() *time.Time { return p.bind.Value() }

// IsOpen reports whether the dropdown is showing.
func (p *Picker) IsOpen() bool { return p.open }

// InputText returns the editable textual representation.
func (p *Picker) InputText() string { return p.inputText }

// Placement returns where the panel opens relative to the control.
func (p *Picker) Placement() position.Placement { return p.placement }

// CurrentYear and CurrentMonth expose the calendar navigation cursor, which
// is independent of the committed value.
func (p *Picker) CurrentYear() int         { return p.curYear }
func (p *Picker) CurrentMonth() time.Month { return p.curMonth }

// Open shows the dropdown and computes placement from the viewport height
// and the control's bounds. It is a no-op when the widget is disabled.
func (p *Picker) Open(viewportHeight int, anchor position.Anchor) {
	if p.cfg.Disabled {
		return
	}
	p.open = true
	p.syncCursor()
	p.Reposition(viewportHeight, anchor)
}

// Reposition recomputes panel placement; hosts call it on scroll and resize.
func (p *Picker) Reposition(viewportHeight int, anchor position.Anchor) {
	p.placement = position.Place(viewportHeight, p.cfg.PanelHeight, anchor)
}

// Close hides the dropdown without mutating the committed value.
func (p *Picker) Close() {
	p.open = false
	p.syncInputText()
}

// Toggle opens or closes the dropdown.
func (p *Picker) Toggle(viewportHeight int, anchor position.Anchor) {
	if p.open {
		p.Close()
		return
	}
	p.Open(viewportHeight, anchor)
}

// DismissOutside handles an outside click or Escape: the dropdown closes and
// any in-progress typed text reverts to the committed value.
func (p *Picker) DismissOutside() { p.Close() }

// NextMonth advances the navigation cursor one month.
func (p *Picker) NextMonth() {
	p.curMonth++
	if p.curMonth > time.December {
		p.curMonth = time.January
		p.curYear++
	}
}

// PrevMonth moves the navigation cursor back one month.
func (p *Picker) PrevMonth() {
	p.curMonth--
	if p.curMonth < time.January {
		p.curMonth = time.December
		p.curYear--
	}
}

// Day is one calendar grid cell. Blank cells pad the first week so day 1
// lands under its weekday column.
type Day struct {
	Blank    bool
	Day      int
	Date     time.Time
	Disabled bool
	Selected bool
}

// Days generates the calendar grid for the cursor month.
func (p *Picker) Days() []Day {
	first := time.Date(p.curYear, p.curMonth, 1, 0, 0, 0, 0, time.Local)
	lead := int(first.Weekday())
	n := daysIn(p.curYear, p.curMonth)
	sel := p.bind.Value()

	out := make([]Day, 0, lead+n)
	for i := 0; i < lead; i++ {
		out = append(out, Day{Blank: true})
	}
	for d := 1; d <= n; d++ {
		date := time.Date(p.curYear, p.curMonth, d, 0, 0, 0, 0, time.Local)
		out = append(out, Day{
			Day:      d,
			Date:     date,
			Disabled: p.DateDisabled(date),
			Selected: sel != nil && sameDate(*sel, date),
		})
	}
	return out
}

// DateDisabled reports whether date may not be selected: the widget is
// disabled, the date falls before startOfDay(MinDate) or after
// endOfDay(MaxDate), or it lands on a weekend while NoWeekends is set.
func (p *Picker) DateDisabled(date time.Time) bool {
	if p.cfg.Disabled {
		return true
	}
	if p.cfg.MinDate != nil && date.Before(startOfDay(*p.cfg.MinDate)) {
		return true
	}
	if p.cfg.MaxDate != nil && date.After(endOfDay(*p.cfg.MaxDate)) {
		return true
	}
	if p.cfg.NoWeekends {
		wd := date.Weekday()
		if wd == time.Saturday || wd == time.Sunday {
			return true
		}
	}
	return false
}

// SelectDate commits a calendar day click. Disabled dates are unselectable.
// A previously chosen time is preserved; before any time is chosen the
// minimum time applies when the time picker is enabled.
func (p *Picker) SelectDate(date time.Time) {
	if p.DateDisabled(date) {
		return
	}
	p.commit(p.mergeTime(date))
	p.bind.ClearErr()
	if !p.cfg.TimePicker {
		p.Close()
	}
}

// Input feeds typed text through the mask and, when the text forms a
// complete date, parses and validates it. Incomplete text clears the error
// and reports nil to the field; a complete but out-of-range or
// calendrically invalid date writes a message naming the violated bound.
func (p *Picker) Input(text string) {
	if p.cfg.Disabled {
		return
	}
	p.inputText = p.cfg.Format.Mask(text)

	if !p.cfg.Format.Complete(p.inputText) {
		p.bind.ClearErr()
		p.bind.Set(nil)
		return
	}
	parsed, err := p.cfg.Format.Parse(p.inputText)
	if err != nil {
		p.bind.Set(nil)
		p.bind.SetErr(i18n.T(forma.CodeInvalidDate, nil))
		return
	}
	if msg, bad := p.boundViolation(parsed); bad {
		p.bind.Set(nil)
		p.bind.SetErr(msg)
		return
	}
	p.bind.ClearErr()
	v := p.mergeTime(parsed)
	p.bind.Set(&v)
	p.curYear, p.curMonth = parsed.Year(), parsed.Month()
}

// boundViolation names the constraint a parsed date breaks, phrased with
// the active format.
func (p *Picker) boundViolation(date time.Time) (string, bool) {
	if p.cfg.MinDate != nil && date.Before(startOfDay(*p.cfg.MinDate)) {
		return i18n.T(forma.CodeDateBelowMin, map[string]string{
			"min": p.cfg.Format.Format(*p.cfg.MinDate),
		}), true
	}
	if p.cfg.MaxDate != nil && date.After(endOfDay(*p.cfg.MaxDate)) {
		return i18n.T(forma.CodeDateAboveMax, map[string]string{
			"max": p.cfg.Format.Format(*p.cfg.MaxDate),
		}), true
	}
	if p.cfg.NoWeekends {
		wd := date.Weekday()
		if wd == time.Saturday || wd == time.Sunday {
			return i18n.T(forma.CodeWeekendDisabled, nil), true
		}
	}
	return "", false
}

// TimeSlots enumerates the selectable slots for the day, filtered against
// the MinTime/MaxTime bounds by minutes-since-midnight comparison.
func (p *Picker) TimeSlots() []Slot {
	min := -1
	max := 24*60 + 1
	if m, ok := parseHHMM(p.cfg.MinTime); ok {
		min = m
	}
	if m, ok := parseHHMM(p.cfg.MaxTime); ok {
		max = m
	}
	all := allSlots()
	out := make([]Slot, 0, len(all))
	for _, s := range all {
		if s.Minutes >= min && s.Minutes <= max {
			out = append(out, s)
		}
	}
	return out
}

// SelectSlot sets the time of day, preserving the already-selected calendar
// date. Without a selected date the slot has nothing to attach to and the
// call is ignored.
func (p *Picker) SelectSlot(s Slot) {
	cur := p.bind.Value()
	if cur == nil {
		return
	}
	v := time.Date(cur.Year(), cur.Month(), cur.Day(),
		s.Minutes/60, s.Minutes%60, 0, 0, cur.Location())
	p.hasTime = true
	p.commit(v)
}

// mergeTime attaches the preserved (or default minimum) time of day to a
// newly chosen date.
func (p *Picker) mergeTime(date time.Time) time.Time {
	if !p.cfg.TimePicker {
		return startOfDay(date)
	}
	if p.hasTime {
		if cur := p.bind.Value(); cur != nil {
			return time.Date(date.Year(), date.Month(), date.Day(),
				cur.Hour(), cur.Minute(), 0, 0, date.Location())
		}
	}
	if m, ok := parseHHMM(p.cfg.MinTime); ok {
		return time.Date(date.Year(), date.Month(), date.Day(), m/60, m%60, 0, 0, date.Location())
	}
	return startOfDay(date)
}

func (p *Picker) commit(v time.Time) {
	p.bind.Set(&v)
	p.inputText = p.cfg.Format.Format(v)
	p.curYear, p.curMonth = v.Year(), v.Month()
}

func (p *Picker) syncCursor() {
	if v := p.bind.Value(); v != nil {
		p.curYear, p.curMonth = v.Year(), v.Month()
		return
	}
	now := time.Now()
	p.curYear, p.curMonth = now.Year(), now.Month()
}

func (p *Picker) syncInputText() {
	if v := p.bind.Value(); v != nil {
		p.inputText = p.cfg.Format.Format(*v)
		return
	}
	p.inputText = ""
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999999999, t.Location())
}

func sameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
