package domain

import (
	"testing"

	"mesaYaDash/internal/shared/forms"
)

func TestNormalizeTier(t *testing.T) {
	cases := []struct {
		input    any
		expected Tier
	}{
		{input: "VIP", expected: TierVIP},
		{input: "frequent", expected: TierFrequent},
		{input: "oro", expected: Tier("oro")},
		{input: 1, expected: TierUnknown},
	}
	for _, tc := range cases {
		if got := NormalizeTier(tc.input); got != tc.expected {
			t.Fatalf("NormalizeTier(%v): expected %q, got %q", tc.input, tc.expected, got)
		}
	}
}

func TestCustomerFormValidation(t *testing.T) {
	form := CustomerForm{Name: "Jorge", Phone: "+34 612 345 678", Tier: "oro"}
	fields := forms.Validate(form)
	if _, ok := fields["tier"]; !ok || len(fields) != 1 {
		t.Fatalf("expected only tier error, got %v", fields)
	}

	form.Tier = "vip"
	form.Preferences = []string{" terraza ", ""}
	if fields := forms.Validate(form); len(fields) != 0 {
		t.Fatalf("unexpected errors: %v", fields)
	}
	customer := form.Customer("")
	if customer.Tier != TierVIP || len(customer.Preferences) != 1 || customer.Preferences[0] != "terraza" {
		t.Fatalf("unexpected customer: %+v", customer)
	}
}

func TestNoShowRate(t *testing.T) {
	if rate := (Customer{Visits: 3, NoShows: 1}).NoShowRate(); rate != 0.25 {
		t.Fatalf("unexpected rate %v", rate)
	}
	if rate := (Customer{}).NoShowRate(); rate != 0 {
		t.Fatalf("unexpected rate %v", rate)
	}
}
