// Package selectbox implements the searchable single/multi select widget:
// open state, case-insensitive label filtering, order-preserving selection
// algebra, and viewport-aware dropdown placement. Rendering is the host's
// concern.
package selectbox

import (
	"fmt"
	"strings"

	forma "github.com/reoring/forma"
	"github.com/reoring/forma/internal/position"
	"github.com/reoring/forma/widget"
)

// Config carries the box's options and mode. Option values are primitives
// compared by value.
type Config struct {
	Options     []widget.Option
	Multiple    bool
	Placeholder string
	Disabled    bool
	PanelHeight int
}

// Box is the widget state machine for one select field. Single mode stores
// one scalar in the bound field; multi mode stores an order-preserving
// selection set.
type Box struct {
	form      *forma.Form
	field     string
	multi     forma.SliceBinding
	cfg       Config
	open      bool
	search    string
	placement position.Placement
}

// New binds a box to one field of form. It panics when form is nil.
func New(form *forma.Form, field string, cfg Config) *Box {
	if form == nil {
		panic("selectbox.New: form must not be nil")
	}
	b := &Box{form: form, field: field, cfg: cfg}
	if cfg.Multiple {
		b.multi = forma.BindSlice(form, field)
	}
	return b
}

// IsOpen reports whether the dropdown is showing.
func (b *Box) IsOpen() bool { return b.open }

// Search returns the active filter text.
func (b *Box) Search() string { return b.search }

// Placement returns where the panel opens relative to the control.
func (b *Box) Placement() position.Placement { return b.placement }

// Open shows the dropdown and computes placement. No-op when disabled.
func (b *Box) Open(viewportHeight int, anchor position.Anchor) {
	if b.cfg.Disabled {
		return
	}
	b.open = true
	b.Reposition(viewportHeight, anchor)
}

// Reposition recomputes placement; hosts call it on scroll and resize.
func (b *Box) Reposition(viewportHeight int, anchor position.Anchor) {
	b.placement = position.Place(viewportHeight, b.cfg.PanelHeight, anchor)
}

// Close hides the dropdown and clears the filter without altering the
// selection.
func (b *Box) Close() {
	b.open = false
	b.search = ""
}

// DismissOutside handles a click outside the control-and-dropdown region.
func (b *Box) DismissOutside() { b.Close() }

// SetSearch updates the filter text. Filtering only changes what Filtered
// returns; the underlying option list and hidden selections are untouched.
func (b *Box) SetSearch(s string) { b.search = s }

// Filtered returns the options whose label contains the filter text,
// case-insensitively.
func (b *Box) Filtered() []widget.Option {
	if b.search == "" {
		return b.cfg.Options
	}
	needle := strings.ToLower(b.search)
	out := make([]widget.Option, 0, len(b.cfg.Options))
	for _, o := range b.cfg.Options {
		if strings.Contains(strings.ToLower(o.Label), needle) {
			out = append(out, o)
		}
	}
	return out
}

// Selected returns the current selection as a slice: at most one element in
// single mode, the order-preserving set in multi mode.
func (b *Box) Selected() []any {
	if b.cfg.Multiple {
		return b.multi.Value()
	}
	v, _ := b.form.Value(b.field)
	if v == nil {
		return nil
	}
	return []any{v}
}

// IsSelected reports membership of value in the current selection.
func (b *Box) IsSelected(value any) bool {
	for _, v := range b.Selected() {
		if equalValue(v, value) {
			return true
		}
	}
	return false
}

// Toggle applies a click on an option. Single mode replaces the scalar and
// closes the dropdown. Multi mode takes the symmetric difference with the
// singleton: present values are removed with the order of the others
// preserved, absent values are appended at the end.
func (b *Box) Toggle(value any) {
	if b.cfg.Disabled {
		return
	}
	if !b.cfg.Multiple {
		b.form.SetValue(b.field, value)
		b.Close()
		return
	}
	cur := b.multi.Value()
	next := make([]any, 0, len(cur)+1)
	removed := false
	for _, v := range cur {
		if equalValue(v, value) {
			removed = true
			continue
		}
		next = append(next, v)
	}
	if !removed {
		next = append(next, value)
	}
	b.multi.Set(next)
}

// SelectAll replaces the selection with every configured option value (not
// the search-visible subset). Multi mode only.
func (b *Box) SelectAll() {
	if !b.cfg.Multiple || b.cfg.Disabled {
		return
	}
	all := make([]any, len(b.cfg.Options))
	for i, o := range b.cfg.Options {
		all[i] = o.Value
	}
	b.multi.Set(all)
}

// ClearAll empties the selection. Multi mode only.
func (b *Box) ClearAll() {
	if !b.cfg.Multiple || b.cfg.Disabled {
		return
	}
	b.multi.Set([]any{})
}

// Summary renders the control's collapsed text: the selected label or the
// placeholder in single mode; comma-joined labels up to three selections in
// multi mode, then a count summary.
func (b *Box) Summary() string {
	sel := b.Selected()
	if len(sel) == 0 {
		return b.cfg.Placeholder
	}
	if !b.cfg.Multiple {
		return b.labelFor(sel[0])
	}
	if len(sel) <= 3 {
		labels := make([]string, len(sel))
		for i, v := range sel {
			labels[i] = b.labelFor(v)
		}
		return strings.Join(labels, ", ")
	}
	return fmt.Sprintf("%d of %d selected", len(sel), len(b.cfg.Options))
}

func (b *Box) labelFor(value any) string {
	for _, o := range b.cfg.Options {
		if equalValue(o.Value, value) {
			return o.Label
		}
	}
	return fmt.Sprint(value)
}

// equalValue compares primitive option values by value, widening numeric
// types so 2 and 2.0 match.
func equalValue(a, b any) bool {
	if a == b {
		return true
	}
	af, aok := asFloat(a)
	bf, bok := asFloat(b)
	return aok && bok && af == bf
}

func asFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case int:
		return float64(t), true
	case int8:
		return float64(t), true
	case int16:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case uint:
		return float64(t), true
	case uint32:
		return float64(t), true
	case uint64:
		return float64(t), true
	case float32:
		return float64(t), true
	case float64:
		return t, true
	}
	return 0, false
}
