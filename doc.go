package forma

// Package forma provides:
//
// - A single-owner form state store (values/errors/touched/submission status)
// - A validation-and-submission pipeline with recoverable failure states
// - A stable per-field error model via Issues (field, code, message)
// - Typed field bindings for widgets (string/number/bool/date/slice)
//
// Design policy:
// - Keep only public APIs in the root package; put detailed implementations under internal/.
// - Place widgets under widget/, resolver building blocks under rules/, the
//   feedback manager under feedback/, and the CLI under cmd/forma.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	f := forma.New(forma.Values{"username": "", "age": 0})
//	err := forma.Submit(ctx, f, resolver, onSubmit, forma.WithSink(mgr))
//
// Widgets receive the *Form explicitly; there is no ambient lookup. Passing a
// nil form to a widget constructor is a programming error and panics.
