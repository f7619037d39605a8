package domain

import "testing"

func TestNormalizeStatus(t *testing.T) {
	cases := []struct {
		name     string
		input    any
		expected Status
	}{
		{name: "spanish", input: "libre", expected: StatusFree},
		{name: "capitalised", input: " Ocupada ", expected: StatusOccupied},
		{name: "english alias", input: "BLOCKED", expected: StatusBlocked},
		{name: "unknown passthrough", input: "Limpieza", expected: Status("limpieza")},
		{name: "non string", input: 3, expected: StatusUnknown},
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

func TestWithStatusCopiesAndTouchesOneTable(t *testing.T) {
	tables := []Table{{ID: "T-1", Status: StatusFree}, {ID: "T-2", Status: StatusFree}}

	next, changed := WithStatus(tables, "T-1", StatusOccupied)
	if !changed {
		t.Fatal("expected change")
	}
	if next[0].Status != StatusOccupied || next[1].Status != StatusFree {
		t.Fatalf("unexpected statuses: %+v", next)
	}
	if tables[0].Status != StatusFree {
		t.Fatal("original slice was mutated")
	}

	if _, changed := WithStatus(tables, "T-9", StatusOccupied); changed {
		t.Fatal("missing table must not change")
	}
	if _, changed := WithStatus(tables, "T-2", StatusFree); changed {
		t.Fatal("same status must not change")
	}
}

func TestStatusLabel(t *testing.T) {
	if StatusOccupied.Label() != "Ocupada" {
		t.Fatalf("unexpected label %q", StatusOccupied.Label())
	}
	if Status("limpieza").Known() {
		t.Fatal("passthrough status must not be known")
	}
}
