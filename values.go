package forma

import "time"

// Values holds the current field values keyed by field name. The keyset is
// fixed when the form is created and never changes at runtime.
type Values map[string]any

// Clone returns a deep copy: nested slices and maps are copied so that
// mutating one snapshot never disturbs another.
func (v Values) Clone() Values {
	if v == nil {
		return nil
	}
	out := make(Values, len(v))
	for k, val := range v {
		out[k] = cloneValue(val)
	}
	return out
}

// Has reports whether field belongs to the form's keyset.
func (v Values) Has(field string) bool {
	_, ok := v[field]
	return ok
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = cloneValue(e)
		}
		return out
	case *time.Time:
		if t == nil {
			return (*time.Time)(nil)
		}
		c := *t
		return &c
	default:
		return v
	}
}

// asSlice normalizes a stored value to []any under the array-field contract:
// nil stays empty, a []any is kept as-is, common typed slices are widened,
// and any other scalar is wrapped in a single-element slice.
func asSlice(v any) []any {
	switch t := v.(type) {
	case nil:
		return []any{}
	case []any:
		return t
	case []string:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = e
		}
		return out
	case []int:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = e
		}
		return out
	case []float64:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = e
		}
		return out
	default:
		return []any{v}
	}
}
