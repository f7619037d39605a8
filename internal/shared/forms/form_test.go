package forms

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bookingForm struct {
	Name  string `json:"customer_name" validate:"required"`
	Phone string `json:"phone" validate:"required,phone"`
	Email string `json:"email" validate:"omitempty,email"`
	Date  string `json:"date" validate:"required,ymd"`
	Time  string `json:"time" validate:"required,hhmm"`
	Party int    `json:"party_size" validate:"min=1,max=50"`
}

func validBooking() bookingForm {
	return bookingForm{Name: "Ana", Phone: "612345678", Date: "2024-05-10", Time: "21:30", Party: 4}
}

func TestValidatorsRules(t *testing.T) {
	cases := []struct {
		name  string
		check func(string) bool
		input string
		want  bool
	}{
		{name: "phone too short", check: IsPhone, input: "123", want: false},
		{name: "mobile", check: IsPhone, input: "612345678", want: true},
		{name: "landline with prefix and spaces", check: IsPhone, input: "+34 912 345 678", want: true},
		{name: "double zero prefix", check: IsPhone, input: "0034712345678", want: true},
		{name: "starts with 5", check: IsPhone, input: "512345678", want: false},
		{name: "time", check: IsHHMM, input: "09:05", want: true},
		{name: "time out of range", check: IsHHMM, input: "24:00", want: false},
		{name: "date", check: IsYMD, input: "2024-02-29", want: true},
		{name: "invalid date", check: IsYMD, input: "2023-02-29", want: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.check(tc.input); got != tc.want {
				t.Fatalf("expected %v for %q, got %v", tc.want, tc.input, got)
			}
		})
	}
}

func TestValidateUsesJSONNames(t *testing.T) {
	t.Parallel()

	form := validBooking()
	form.Phone = "123"
	form.Party = 0
	form.Email = "nope"

	fields := Validate(form)
	assert.Equal(t, "must be a valid phone number", fields["phone"])
	assert.Equal(t, "must be at least 1", fields["party_size"])
	assert.Equal(t, "must be a valid email address", fields["email"])
	assert.Len(t, fields, 3)
	assert.Empty(t, Validate(validBooking()))
}

func TestSubmitInvalidFormSendsNothing(t *testing.T) {
	t.Parallel()

	bad := validBooking()
	bad.Phone = "123"
	form := New(bad)
	calls := 0

	err := form.Submit(context.Background(), func(context.Context, bookingForm) error {
		calls++
		return nil
	})

	verr, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Contains(t, verr.Fields, "phone")
	assert.Zero(t, calls)
	assert.Equal(t, StateIdle, form.State())
	assert.Equal(t, verr.Fields, form.FieldErrors())
}

func TestSubmitValidFormSendsOnceAndCloses(t *testing.T) {
	t.Parallel()

	form := New(validBooking())
	calls := 0
	send := func(_ context.Context, v bookingForm) error {
		calls++
		assert.Equal(t, "612345678", v.Phone)
		return nil
	}

	require.NoError(t, form.Submit(context.Background(), send))
	assert.Equal(t, 1, calls)
	assert.Equal(t, StateClosed, form.State())

	err := form.Submit(context.Background(), send)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, 1, calls)

	require.NoError(t, form.Reset(bookingForm{}))
	assert.Equal(t, StateIdle, form.State())
}

func TestSubmitFailureReturnsToIdleWithError(t *testing.T) {
	t.Parallel()

	form := New(validBooking())
	boom := errors.New("Mesa ya ocupada")

	err := form.Submit(context.Background(), func(context.Context, bookingForm) error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, StateIdle, form.State())
	assert.ErrorIs(t, form.Err(), boom)
	assert.ErrorIs(t, form.Reset(validBooking()), ErrInvalidTransition)
	require.NoError(t, form.Update(validBooking()))
}

func TestTransitionTable(t *testing.T) {
	assert.True(t, CanTransition(StateIdle, StateValidating))
	assert.False(t, CanTransition(StateIdle, StateSubmitting))
	assert.False(t, CanTransition(StateClosed, StateSubmitting))
	assert.True(t, CanTransition(StateClosed, StateIdle))
}
