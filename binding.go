package forma

import "time"

// Bindings are the closed set of typed field adapters widgets write through.
// Each binds exactly one named field of one Form and normalizes values to
// that field's expected shape at compile time, replacing runtime type
// sniffing of raw events. Constructors panic on a nil form: a widget without
// its form reference is an integration bug, not a runtime condition.

type binding struct {
	form  *Form
	field string
}

func newBinding(form *Form, field string, kind string) binding {
	if form == nil {
		panic("forma." + kind + ": form must not be nil")
	}
	return binding{form: form, field: field}
}

// Field returns the bound field name.
func (b binding) Field() string { return b.field }

// Err returns the field's known error message, if any.
func (b binding) Err() (string, bool) { return b.form.Error(b.field) }

// SetErr writes the field's error independent of validation.
func (b binding) SetErr(msg string) { b.form.SetError(b.field, msg) }

// ClearErr removes the field's error entry.
func (b binding) ClearErr() { b.form.ClearError(b.field) }

// Touched reports whether the field has been interacted with.
func (b binding) Touched() bool { return b.form.Touched(b.field) }

// Focus marks the field as interacted with.
func (b binding) Focus() { b.form.SetTouched(b.field, true) }

// Blur marks the field as interacted with.
func (b binding) Blur() { b.form.SetTouched(b.field, true) }

// StringBinding adapts text-shaped widgets (text, password, textarea).
type StringBinding struct{ binding }

func BindString(form *Form, field string) StringBinding {
	return StringBinding{newBinding(form, field, "BindString")}
}

func (b StringBinding) Value() string {
	v, _ := b.form.Value(b.field)
	s, _ := v.(string)
	return s
}

func (b StringBinding) Set(s string) { b.form.SetValue(b.field, s) }

// NumberBinding adapts numeric inputs.
type NumberBinding struct{ binding }

func BindNumber(form *Form, field string) NumberBinding {
	return NumberBinding{newBinding(form, field, "BindNumber")}
}

func (b NumberBinding) Value() (float64, bool) {
	v, _ := b.form.Value(b.field)
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	}
	return 0, false
}

func (b NumberBinding) Set(n float64) { b.form.SetValue(b.field, n) }

// BoolBinding adapts checkbox-shaped widgets.
type BoolBinding struct{ binding }

func BindBool(form *Form, field string) BoolBinding {
	return BoolBinding{newBinding(form, field, "BindBool")}
}

func (b BoolBinding) Value() bool {
	v, _ := b.form.Value(b.field)
	t, _ := v.(bool)
	return t
}

func (b BoolBinding) Set(v bool) { b.form.SetValue(b.field, v) }

// Toggle flips the current value.
func (b BoolBinding) Toggle() { b.Set(!b.Value()) }

// DateBinding adapts date/time-shaped widgets. A nil value means "no date
// chosen"; incomplete widget input reports nil, not an error.
type DateBinding struct{ binding }

func BindDate(form *Form, field string) DateBinding {
	return DateBinding{newBinding(form, field, "BindDate")}
}

func (b DateBinding) Value() *time.Time {
	v, _ := b.form.Value(b.field)
	switch t := v.(type) {
	case *time.Time:
		return t
	case time.Time:
		return &t
	}
	return nil
}

func (b DateBinding) Set(t *time.Time) { b.form.SetValue(b.field, t) }

// SliceBinding adapts multi-valued widgets (multi-select, tag lists, file
// lists). Writes go through the array-field contract: scalars are wrapped,
// element order is preserved.
type SliceBinding struct{ binding }

func BindSlice(form *Form, field string) SliceBinding {
	return SliceBinding{newBinding(form, field, "BindSlice")}
}

func (b SliceBinding) Value() []any {
	v, _ := b.form.Value(b.field)
	return asSlice(cloneValue(v))
}

func (b SliceBinding) Set(v []any) { b.form.SetArrayValue(b.field, v) }

// SetScalar stores a single value as a one-element slice.
func (b SliceBinding) SetScalar(v any) { b.form.SetArrayValue(b.field, v) }
