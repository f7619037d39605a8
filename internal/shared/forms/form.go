package forms

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// State is the lifecycle position of a form.
type State string

const (
	StateIdle       State = "idle"
	StateValidating State = "validating"
	StateSubmitting State = "submitting"
	StateClosed     State = "closed"
)

// ErrInvalidTransition is returned when an action is not allowed in the current state.
var ErrInvalidTransition = errors.New("forms: invalid state transition")

type transition struct {
	From State
	To   State
}

var validTransitions = map[transition]struct{}{
	{From: StateIdle, To: StateValidating}:       {},
	{From: StateValidating, To: StateIdle}:       {},
	{From: StateValidating, To: StateSubmitting}: {},
	{From: StateSubmitting, To: StateIdle}:       {},
	{From: StateSubmitting, To: StateClosed}:     {},
	{From: StateClosed, To: StateIdle}:           {},
}

// CanTransition reports whether from -> to is declared.
func CanTransition(from, to State) bool {
	_, ok := validTransitions[transition{From: from, To: to}]
	return ok
}

// ValidationError carries the field -> message map of a rejected form.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, e.Fields[name]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// AsValidationError unwraps err into a *ValidationError.
func AsValidationError(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}

// Form drives one dialog: validation happens before any request and a valid
// submit issues exactly one request. A failed request returns the form to
// idle with the error kept for display.
type Form[T any] struct {
	mu       sync.Mutex
	state    State
	values   T
	fields   map[string]string
	lastErr  error
	validate func(T) map[string]string
}

// New returns an idle form validated with Validate.
func New[T any](initial T) *Form[T] {
	return NewWithValidator(initial, func(v T) map[string]string { return Validate(v) })
}

// NewWithValidator returns an idle form using a custom validation function.
func NewWithValidator[T any](initial T, validate func(T) map[string]string) *Form[T] {
	return &Form[T]{state: StateIdle, values: initial, validate: validate}
}

func (f *Form[T]) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *Form[T]) Values() T {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values
}

// FieldErrors returns a copy of the messages from the last validation.
func (f *Form[T]) FieldErrors() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]string, len(f.fields))
	for k, v := range f.fields {
		out[k] = v
	}
	return out
}

// Err returns the error of the last failed submit.
func (f *Form[T]) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastErr
}

// Update replaces the values of an idle form.
func (f *Form[T]) Update(values T) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateIdle {
		return fmt.Errorf("%w: update while %s", ErrInvalidTransition, f.state)
	}
	f.values = values
	return nil
}

// Submit validates the current values and, when they pass, calls send once.
func (f *Form[T]) Submit(ctx context.Context, send func(context.Context, T) error) error {
	f.mu.Lock()
	if err := f.moveLocked(StateValidating); err != nil {
		f.mu.Unlock()
		return err
	}
	values := f.values
	f.mu.Unlock()

	fields := f.validate(values)

	f.mu.Lock()
	if len(fields) > 0 {
		f.fields = fields
		verr := &ValidationError{Fields: fields}
		f.lastErr = verr
		_ = f.moveLocked(StateIdle)
		f.mu.Unlock()
		return verr
	}
	f.fields = nil
	f.lastErr = nil
	_ = f.moveLocked(StateSubmitting)
	f.mu.Unlock()

	err := send(ctx, values)

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		f.lastErr = err
		_ = f.moveLocked(StateIdle)
		return err
	}
	return f.moveLocked(StateClosed)
}

// Reset reopens a closed form with new values.
func (f *Form[T]) Reset(values T) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.moveLocked(StateIdle); err != nil {
		return err
	}
	f.values = values
	f.fields = nil
	f.lastErr = nil
	return nil
}

func (f *Form[T]) moveLocked(to State) error {
	if !CanTransition(f.state, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, f.state, to)
	}
	f.state = to
	return nil
}
