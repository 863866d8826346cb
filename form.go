package forma

// Resolver maps a snapshot of the current values to a sparse field->message
// map. It must be pure and synchronous; an empty (or nil) result means the
// form is valid. The engine is resolver-agnostic: compose one from rules/ or
// plug in any schema engine behind this signature.
type Resolver func(values Values) Errors

// Form is the single source of truth for one logical form: its values,
// per-field errors, per-field touched flags, and the submission status.
// One Form is created per mounted form and lives for its lifetime.
//
// A Form is owned by exactly one form surface and is not safe for use by
// concurrently mutating consumers.
type Form struct {
	initial Values
	values  Values
	errors  Errors
	touched map[string]bool
	status  Status
}

// New creates a Form whose keyset is fixed to the keys of initial. The
// initial snapshot is deep-copied; later mutations of the caller's map do
// not leak into the form.
func New(initial Values) *Form {
	if initial == nil {
		initial = Values{}
	}
	return &Form{
		initial: initial.Clone(),
		values:  initial.Clone(),
		errors:  Errors{},
		touched: map[string]bool{},
		status:  StatusIdle,
	}
}

// Value returns the current value for field and whether the field exists.
func (f *Form) Value(field string) (any, bool) {
	v, ok := f.values[field]
	return v, ok
}

// Values returns a deep copy of the current values snapshot.
func (f *Form) Values() Values { return f.values.Clone() }

// SetValue replaces one field's value. Fields outside the fixed keyset are
// ignored so the keyset invariant holds. No validation side effect.
func (f *Form) SetValue(field string, value any) {
	if !f.values.Has(field) {
		return
	}
	f.values[field] = value
}

// SetArrayValue replaces one field's value, guaranteeing the stored value is
// a slice: scalars are wrapped in a single-element slice, typed slices are
// normalized to []any with element order preserved.
func (f *Form) SetArrayValue(field string, value any) {
	if !f.values.Has(field) {
		return
	}
	f.values[field] = asSlice(value)
}

// Error returns the known error message for field, if any.
func (f *Form) Error(field string) (string, bool) {
	msg, ok := f.errors[field]
	return msg, ok
}

// Errors returns a copy of the sparse error map.
func (f *Form) Errors() Errors { return f.errors.Clone() }

// SetError sets one field's error independent of validation. An empty
// message clears the entry (kept as a compatibility idiom; prefer
// ClearError).
func (f *Form) SetError(field, message string) {
	if !f.values.Has(field) {
		return
	}
	if message == "" {
		delete(f.errors, field)
		return
	}
	f.errors[field] = message
}

// ClearError removes the error entry for field. "No error" is absence, not
// an empty string.
func (f *Form) ClearError(field string) { delete(f.errors, field) }

// Touched reports whether the field has been interacted with.
func (f *Form) Touched(field string) bool { return f.touched[field] }

// SetTouched marks interaction on a field. It never triggers validation.
func (f *Form) SetTouched(field string, touched bool) {
	if !f.values.Has(field) {
		return
	}
	if touched {
		f.touched[field] = true
		return
	}
	delete(f.touched, field)
}

// Validate invokes fn (typically a closure over a Resolver and the current
// values) and replaces the entire error map with its result. The full
// overwrite guarantees stale errors for now-valid fields are cleared without
// requiring the resolver to enumerate every field. It returns true iff the
// result is empty. Entries for fields outside the keyset are dropped to keep
// the subset invariant.
func (f *Form) Validate(fn func() Errors) bool {
	result := fn()
	next := Errors{}
	for field, msg := range result {
		if msg == "" || !f.values.Has(field) {
			continue
		}
		next[field] = msg
	}
	f.errors = next
	return next.Empty()
}

// Reset restores values to the initial snapshot and clears errors and
// touched flags. The submission status is intentionally left alone so that
// success/error UI can persist past a form reset; call ResetStatus
// separately.
func (f *Form) Reset() {
	f.values = f.initial.Clone()
	f.errors = Errors{}
	f.touched = map[string]bool{}
}

// Status returns the current submission status.
func (f *Form) Status() Status { return f.status }

// SetStatus moves the submission status along the machine
// idle -> submitting -> (success|error) -> idle. Illegal transitions are
// rejected with a TransitionError and leave the status unchanged.
func (f *Form) SetStatus(s Status) error {
	if !canTransition(f.status, s) {
		return &TransitionError{From: f.status, To: s}
	}
	f.status = s
	return nil
}

// ResetStatus returns a terminal success/error status to idle. It is a no-op
// when the form is already idle and rejected while a submission is in
// flight.
func (f *Form) ResetStatus() error {
	if f.status == StatusSubmitting {
		return &TransitionError{From: f.status, To: StatusIdle}
	}
	f.status = StatusIdle
	return nil
}

// TransitionError reports a rejected submission-status transition.
type TransitionError struct {
	From, To Status
}

func (e *TransitionError) Error() string {
	return "forma: illegal status transition " + e.From.String() + " -> " + e.To.String()
}
