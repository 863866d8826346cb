// Package middleware holds the framework-independent pieces shared by the
// echo and gin adapters: decoding a POSTed url-encoded form into the
// engine's value map and shaping field errors for JSON responses.
package middleware

import (
	"context"
	"net/url"

	forma "github.com/reoring/forma"
)

// ctxKeyValues is a typed context key for storing decoded Values.
type ctxKeyValues struct{}

// ContextWithValues attaches decoded form values to the context.
func ContextWithValues(ctx context.Context, v forma.Values) context.Context {
	return context.WithValue(ctx, ctxKeyValues{}, v)
}

// ValuesFromContext retrieves decoded form values from the context.
func ValuesFromContext(ctx context.Context) (forma.Values, bool) {
	v, ok := ctx.Value(ctxKeyValues{}).(forma.Values)
	return v, ok
}

// DecodeForm maps posted url-encoded pairs onto the fixed keyset of initial.
// Keys outside the keyset are dropped. Fields whose initial value is a slice
// collect every posted value in order; all other fields take the first
// posted value as a string.
func DecodeForm(posted url.Values, initial forma.Values) forma.Values {
	out := initial.Clone()
	for key := range initial {
		vals, ok := posted[key]
		if !ok {
			continue
		}
		if _, isSlice := initial[key].([]any); isSlice {
			elems := make([]any, len(vals))
			for i, v := range vals {
				elems[i] = v
			}
			out[key] = elems
			continue
		}
		if len(vals) > 0 {
			out[key] = vals[0]
		}
	}
	return out
}

// ErrorPayload shapes field errors for JSON responses.
func ErrorPayload(errs forma.Errors) map[string]any {
	return map[string]any{"errors": errs}
}
