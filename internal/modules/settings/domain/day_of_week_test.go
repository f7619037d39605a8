package domain

import "testing"

func TestNormalizeDaysOpen(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected []DayOfWeek
	}{
		{
			name:     "mixed languages casing and accents",
			input:    []any{"monday", "  Martes", "SÁBADO", "miércoles"},
			expected: []DayOfWeek{Monday, Tuesday, Saturday, Wednesday},
		},
		{
			name:     "invalid entries filtered",
			input:    []any{"", "festivo", 123, nil},
			expected: nil,
		},
		{
			name:     "non slice input returns nil",
			input:    "lunes",
			expected: nil,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := NormalizeDaysOpen(test.input)
			if len(result) != len(test.expected) {
				t.Fatalf("expected %d items, got %d", len(test.expected), len(result))
			}
			for i := range result {
				if result[i] != test.expected[i] {
					t.Fatalf("expected %v at position %d, got %v", test.expected[i], i, result[i])
				}
			}
		})
	}
}
