package domain

import (
	"testing"

	"mesaYaDash/internal/shared/forms"
)

func TestNormalizeStatus(t *testing.T) {
	cases := []struct {
		name     string
		input    any
		expected Status
	}{
		{name: "pending", input: " pendiente ", expected: StatusPending},
		{name: "english uppercase", input: "CONFIRMED", expected: StatusConfirmed},
		{name: "no show dash", input: "No-Show", expected: StatusNoShow},
		{name: "unknown passthrough", input: "Retrasada", expected: Status("retrasada")},
		{name: "non string", input: nil, expected: StatusUnknown},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := NormalizeStatus(tc.input)
			if result != tc.expected {
				t.Fatalf("expected %q, got %q", tc.expected, result)
			}
		})
	}
}

func TestReservationFormPhoneRule(t *testing.T) {
	form := ReservationForm{CustomerName: "Lucía", Phone: "123", Date: "2024-05-10", Time: "21:00", PartySize: 2}
	fields := forms.Validate(form)
	if _, ok := fields["phone"]; !ok || len(fields) != 1 {
		t.Fatalf("expected only a phone error, got %v", fields)
	}

	form.Phone = "612345678"
	if fields := forms.Validate(form); len(fields) != 0 {
		t.Fatalf("expected valid form, got %v", fields)
	}
}

func TestListCommandQuery(t *testing.T) {
	q := ListReservationsCommand{Date: "2024-05-10", Status: "Confirmed"}.Query()
	if q.Filters["status"] != "confirmada" || q.Filters["date"] != "2024-05-10" {
		t.Fatalf("unexpected filters: %v", q.Filters)
	}
	if q.Page != 1 || q.Limit != 50 {
		t.Fatalf("unexpected paging: %+v", q)
	}
}

func TestPageWithStatus(t *testing.T) {
	page := Page{Items: []Reservation{{ID: "R-1", Status: StatusPending}}, Total: 1}
	next, changed := page.WithStatus("R-1", StatusSeated)
	if !changed || next.Items[0].Status != StatusSeated || page.Items[0].Status != StatusPending {
		t.Fatalf("unexpected result: %+v / %+v", next, page)
	}
}
