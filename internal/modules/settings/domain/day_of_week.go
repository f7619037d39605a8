package domain

import (
	"strings"

	"mesaYaDash/internal/shared/normalization"
)

// DayOfWeek is the canonical Spanish lowercase day name used by the schedule endpoint.
type DayOfWeek string

const (
	Monday    DayOfWeek = "lunes"
	Tuesday   DayOfWeek = "martes"
	Wednesday DayOfWeek = "miercoles"
	Thursday  DayOfWeek = "jueves"
	Friday    DayOfWeek = "viernes"
	Saturday  DayOfWeek = "sabado"
	Sunday    DayOfWeek = "domingo"
)

// Week lists the days in schedule order.
var Week = []DayOfWeek{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

var dayAliases = map[string]DayOfWeek{
	"lunes":     Monday,
	"monday":    Monday,
	"martes":    Tuesday,
	"tuesday":   Tuesday,
	"miercoles": Wednesday,
	"miércoles": Wednesday,
	"wednesday": Wednesday,
	"jueves":    Thursday,
	"thursday":  Thursday,
	"viernes":   Friday,
	"friday":    Friday,
	"sabado":    Saturday,
	"sábado":    Saturday,
	"saturday":  Saturday,
	"domingo":   Sunday,
	"sunday":    Sunday,
}

// NormalizeDay maps Spanish or English names in any casing; unknown values
// yield "".
func NormalizeDay(value any) DayOfWeek {
	key := strings.ToLower(strings.TrimSpace(normalization.AsString(value)))
	return dayAliases[key]
}

// NormalizeDaysOpen converts a list payload into canonical days, dropping
// anything unrecognised.
func NormalizeDaysOpen(value any) []DayOfWeek {
	items, ok := value.([]any)
	if !ok || len(items) == 0 {
		return nil
	}
	var normalized []DayOfWeek
	for _, item := range items {
		if day := NormalizeDay(item); day != "" {
			normalized = append(normalized, day)
		}
	}
	return normalized
}
