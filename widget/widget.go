// Package widget declares the closed set of widget kinds and their per-kind
// configuration variants. Dispatch happens by type switch over the sealed
// Config interface, so each kind carries exactly the fields that are valid
// for it and an unknown kind is unrepresentable.
package widget

import "time"

// Config is the sealed per-kind configuration variant. Only types in this
// package implement it.
type Config interface {
	Kind() Kind
	// Field names the form field the widget binds to.
	Field() string
	isConfig()
}

// Kind discriminates widget variants.
type Kind int

const (
	KindText Kind = iota
	KindNumber
	KindPassword
	KindCheckbox
	KindRadio
	KindFile
	KindDateTime
	KindSelect
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindNumber:
		return "number"
	case KindPassword:
		return "password"
	case KindCheckbox:
		return "checkbox"
	case KindRadio:
		return "radio"
	case KindFile:
		return "file"
	case KindDateTime:
		return "datetime"
	case KindSelect:
		return "select"
	}
	return "unknown"
}

// Option is one selectable choice for radio and select widgets. Values are
// primitives compared by value, not identity.
type Option struct {
	Value any
	Label string
}

// Common is the field/label part shared by every widget configuration.
type Common struct {
	FieldName string
	Label     string
}

func (c Common) Field() string { return c.FieldName }
func (Common) isConfig()       {}

// Text is a free-text input.
type Text struct {
	Common
	Placeholder string
	MaxLen      int
}

func (Text) Kind() Kind { return KindText }

// Number is a numeric input.
type Number struct {
	Common
	Min, Max float64
	HasRange bool
}

func (Number) Kind() Kind { return KindNumber }

// Password is a masked text input with an optional reveal toggle.
type Password struct {
	Common
	Revealable bool
}

func (Password) Kind() Kind { return KindPassword }

// Checkbox is a boolean toggle.
type Checkbox struct {
	Common
}

func (Checkbox) Kind() Kind { return KindCheckbox }

// Radio is a single choice among fixed options.
type Radio struct {
	Common
	Options []Option
}

func (Radio) Kind() Kind { return KindRadio }

// File is a file chooser; with Multiple set the bound field holds a slice.
type File struct {
	Common
	Multiple bool
	Accept   []string
}

func (File) Kind() Kind { return KindFile }

// DateTime configures the composite date/time picker; the stateful widget
// lives in widget/datetimepicker.
type DateTime struct {
	Common
	Format     string
	TimePicker bool
	MinDate    string // rendered per Format; empty means unbounded
	MaxDate    string
	MinTime    string // "HH:MM", 24-hour clock
	MaxTime    string
	NoWeekends bool
}

func (DateTime) Kind() Kind { return KindDateTime }

// Select configures the searchable select box; the stateful widget lives in
// widget/selectbox.
type Select struct {
	Common
	Options     []Option
	Multiple    bool
	Placeholder string
}

func (Select) Kind() Kind { return KindSelect }

// NewCommon builds the shared field/label part of a config. Exposed for
// declarative form definitions.
func NewCommon(field, label string) Common { return Common{FieldName: field, Label: label} }

// InitialValue returns the zero value a field of the given widget kind
// starts from when a form definition supplies no default.
func InitialValue(cfg Config) any {
	switch c := cfg.(type) {
	case Text, Password:
		return ""
	case Number:
		return float64(0)
	case Checkbox:
		return false
	case Radio:
		return nil
	case File:
		if c.Multiple {
			return []any{}
		}
		return ""
	case DateTime:
		return (*time.Time)(nil)
	case Select:
		if c.Multiple {
			return []any{}
		}
		return nil
	}
	return nil
}
