// Package formdef loads declarative form definitions from JSON or YAML and
// compiles them into engine inputs: an initial values snapshot, per-kind
// widget configurations, and a stock resolver built from the declared
// constraints.
package formdef

import (
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	forma "github.com/reoring/forma"
	"github.com/reoring/forma/rules"
	"github.com/reoring/forma/widget"
	"github.com/reoring/forma/widget/datetimepicker"
)

// Definition is the top-level declarative description of one form.
type Definition struct {
	Name        string  `json:"name" yaml:"name"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
	Fields      []Field `json:"fields" yaml:"fields"`
}

// Field describes one input. Kind selects the widget; the remaining fields
// only apply to the kinds that understand them (Validate flags misuse).
type Field struct {
	Name        string   `json:"name" yaml:"name"`
	Label       string   `json:"label,omitempty" yaml:"label,omitempty"`
	Kind        string   `json:"kind" yaml:"kind"`
	Required    bool     `json:"required,omitempty" yaml:"required,omitempty"`
	Placeholder string   `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Default     any      `json:"default,omitempty" yaml:"default,omitempty"`
	MinLen      int      `json:"minLen,omitempty" yaml:"minLen,omitempty"`
	MaxLen      int      `json:"maxLen,omitempty" yaml:"maxLen,omitempty"`
	Min         *float64 `json:"min,omitempty" yaml:"min,omitempty"`
	Max         *float64 `json:"max,omitempty" yaml:"max,omitempty"`
	Pattern     string   `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	Options     []Option `json:"options,omitempty" yaml:"options,omitempty"`
	Multiple    bool     `json:"multiple,omitempty" yaml:"multiple,omitempty"`
	Accept      []string `json:"accept,omitempty" yaml:"accept,omitempty"`
	// Date/time picker settings. Dates use the ISO yyyy-MM-dd pattern in
	// definitions regardless of the display Format.
	Format     string `json:"format,omitempty" yaml:"format,omitempty"`
	TimePicker bool   `json:"timePicker,omitempty" yaml:"timePicker,omitempty"`
	MinDate    string `json:"minDate,omitempty" yaml:"minDate,omitempty"`
	MaxDate    string `json:"maxDate,omitempty" yaml:"maxDate,omitempty"`
	MinTime    string `json:"minTime,omitempty" yaml:"minTime,omitempty"`
	MaxTime    string `json:"maxTime,omitempty" yaml:"maxTime,omitempty"`
	NoWeekends bool   `json:"noWeekends,omitempty" yaml:"noWeekends,omitempty"`
}

// Option is one selectable choice in a definition.
type Option struct {
	Value any    `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

var kindNames = map[string]widget.Kind{
	"text":     widget.KindText,
	"number":   widget.KindNumber,
	"password": widget.KindPassword,
	"checkbox": widget.KindCheckbox,
	"radio":    widget.KindRadio,
	"file":     widget.KindFile,
	"datetime": widget.KindDateTime,
	"select":   widget.KindSelect,
}

// DecodeJSON parses a JSON definition.
func DecodeJSON(data []byte) (*Definition, error) {
	var def Definition
	if err := json.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("formdef: decode json: %w", err)
	}
	return &def, nil
}

// DecodeYAML parses a YAML definition.
func DecodeYAML(data []byte) (*Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("formdef: decode yaml: %w", err)
	}
	return &def, nil
}

// Validate checks the definition for structural problems: missing or
// duplicate field names, unknown kinds, malformed date patterns and bounds,
// and option lists on kinds that need them.
func (d *Definition) Validate() forma.Issues {
	var iss forma.Issues
	seen := map[string]bool{}
	for _, f := range d.Fields {
		if f.Name == "" {
			iss = append(iss, forma.Issue{Field: f.Name, Code: forma.CodeRequired,
				Message: "field name is required"})
			continue
		}
		if seen[f.Name] {
			iss = append(iss, forma.Issue{Field: f.Name, Code: forma.CodeInvalidFormat,
				Message: "duplicate field name"})
			continue
		}
		seen[f.Name] = true

		kind, ok := kindNames[f.Kind]
		if !ok {
			iss = append(iss, forma.Issue{Field: f.Name, Code: forma.CodeInvalidEnum,
				Message: "unknown widget kind " + quote(f.Kind),
				Params:  map[string]any{"kind": f.Kind}})
			continue
		}
		switch kind {
		case widget.KindRadio, widget.KindSelect:
			if len(f.Options) == 0 {
				iss = append(iss, forma.Issue{Field: f.Name, Code: forma.CodeRequired,
					Message: f.Kind + " field needs options"})
			}
		case widget.KindDateTime:
			iss = append(iss, f.validateDateTime()...)
		}
	}
	return iss
}

func (f Field) validateDateTime() forma.Issues {
	var iss forma.Issues
	if f.Format != "" && !datetimepicker.Format(f.Format).Valid() {
		iss = append(iss, forma.Issue{Field: f.Name, Code: forma.CodeInvalidFormat,
			Message: "unsupported date format " + quote(f.Format)})
	}
	for _, bound := range []string{f.MinDate, f.MaxDate} {
		if bound == "" {
			continue
		}
		if _, err := time.Parse("2006-01-02", bound); err != nil {
			iss = append(iss, forma.Issue{Field: f.Name, Code: forma.CodeInvalidDate,
				Message: "date bound must be yyyy-MM-dd, got " + quote(bound)})
		}
	}
	return iss
}

// InitialValues builds the values snapshot the form starts from, honoring
// declared defaults and falling back to each kind's zero value.
func (d *Definition) InitialValues() forma.Values {
	values := forma.Values{}
	for _, f := range d.Fields {
		if f.Default != nil {
			values[f.Name] = f.Default
			continue
		}
		if cfg, ok := f.widgetConfig(); ok {
			values[f.Name] = widget.InitialValue(cfg)
			continue
		}
		values[f.Name] = nil
	}
	return values
}

// Resolver compiles the declared constraints into a stock resolver.
func (d *Definition) Resolver() forma.Resolver {
	var rs []forma.Resolver
	for _, f := range d.Fields {
		var fr []rules.FieldRule
		if f.Required {
			fr = append(fr, rules.Required())
		}
		if f.MinLen > 0 {
			fr = append(fr, rules.MinLen(f.MinLen))
		}
		if f.MaxLen > 0 {
			fr = append(fr, rules.MaxLen(f.MaxLen))
		}
		if f.Min != nil {
			fr = append(fr, rules.Min(*f.Min))
		}
		if f.Max != nil {
			fr = append(fr, rules.Max(*f.Max))
		}
		if f.Pattern != "" {
			fr = append(fr, rules.Pattern(f.Pattern))
		}
		if len(fr) > 0 {
			rs = append(rs, rules.Field(f.Name, fr...))
		}
	}
	return rules.Merge(rs...)
}

// WidgetConfigs resolves each field to its sealed widget configuration
// variant. Call Validate first; unknown kinds are skipped here.
func (d *Definition) WidgetConfigs() []widget.Config {
	out := make([]widget.Config, 0, len(d.Fields))
	for _, f := range d.Fields {
		if cfg, ok := f.widgetConfig(); ok {
			out = append(out, cfg)
		}
	}
	return out
}

func (f Field) widgetConfig() (widget.Config, bool) {
	kind, ok := kindNames[f.Kind]
	if !ok {
		return nil, false
	}
	c := widget.NewCommon(f.Name, f.Label)
	switch kind {
	case widget.KindText:
		return widget.Text{Common: c, Placeholder: f.Placeholder, MaxLen: f.MaxLen}, true
	case widget.KindNumber:
		n := widget.Number{Common: c}
		if f.Min != nil && f.Max != nil {
			n.Min, n.Max, n.HasRange = *f.Min, *f.Max, true
		}
		return n, true
	case widget.KindPassword:
		return widget.Password{Common: c}, true
	case widget.KindCheckbox:
		return widget.Checkbox{Common: c}, true
	case widget.KindRadio:
		return widget.Radio{Common: c, Options: widgetOptions(f.Options)}, true
	case widget.KindFile:
		return widget.File{Common: c, Multiple: f.Multiple, Accept: f.Accept}, true
	case widget.KindDateTime:
		return widget.DateTime{
			Common:     c,
			Format:     f.Format,
			TimePicker: f.TimePicker,
			MinDate:    f.MinDate,
			MaxDate:    f.MaxDate,
			MinTime:    f.MinTime,
			MaxTime:    f.MaxTime,
			NoWeekends: f.NoWeekends,
		}, true
	case widget.KindSelect:
		return widget.Select{
			Common:      c,
			Options:     widgetOptions(f.Options),
			Multiple:    f.Multiple,
			Placeholder: f.Placeholder,
		}, true
	}
	return nil, false
}

func widgetOptions(opts []Option) []widget.Option {
	out := make([]widget.Option, len(opts))
	for i, o := range opts {
		out[i] = widget.Option{Value: o.Value, Label: o.Label}
	}
	return out
}

func quote(s string) string { return fmt.Sprintf("%q", s) }
