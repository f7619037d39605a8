package normalization

import (
	"sort"
	"strings"
)

// Canonical entity groups. They double as cache group names and websocket topic prefixes.
const (
	EntityTables       = "tables"
	EntityReservations = "reservations"
	EntityCustomers    = "customers"
	EntityWaitlist     = "waitlist"
	EntitySchedule     = "schedule"
	EntityHolidays     = "holidays"
	EntitySettings     = "settings"
	EntityActivity     = "activity"
	EntityHealth       = "health"
	EntityMessages     = "messages"
)

// entityAliases maps the names used by the backend events, the Spanish UI and
// the CLI onto the canonical group.
var entityAliases = map[string]string{
	"":        "",
	"-":       "",
	"default": "",

	"table":  EntityTables,
	"tables": EntityTables,
	"mesa":   EntityTables,
	"mesas":  EntityTables,

	"reservation":  EntityReservations,
	"reservations": EntityReservations,
	"reserva":      EntityReservations,
	"reservas":     EntityReservations,
	"booking":      EntityReservations,
	"bookings":     EntityReservations,

	"customer":  EntityCustomers,
	"customers": EntityCustomers,
	"client":    EntityCustomers,
	"clients":   EntityCustomers,
	"cliente":   EntityCustomers,
	"clientes":  EntityCustomers,
	"crm":       EntityCustomers,

	"waitlist":        EntityWaitlist,
	"wait-list":       EntityWaitlist,
	"waitlists":       EntityWaitlist,
	"lista-espera":    EntityWaitlist,
	"lista-de-espera": EntityWaitlist,

	"schedule":  EntitySchedule,
	"schedules": EntitySchedule,
	"horario":   EntitySchedule,
	"horarios":  EntitySchedule,

	"holiday":  EntityHolidays,
	"holidays": EntityHolidays,
	"festivo":  EntityHolidays,
	"festivos": EntityHolidays,

	"settings":      EntitySettings,
	"setting":       EntitySettings,
	"config":        EntitySettings,
	"configuration": EntitySettings,
	"configuracion": EntitySettings,

	"activity":     EntityActivity,
	"activity-log": EntityActivity,
	"activities":   EntityActivity,
	"actividad":    EntityActivity,

	"health":        EntityHealth,
	"system-health": EntityHealth,
	"system":        EntityHealth,

	"message":       EntityMessages,
	"messages":      EntityMessages,
	"message-logs":  EntityMessages,
	"whatsapp":      EntityMessages,
	"whatsapp-logs": EntityMessages,
}

// NormalizeEntity converts various entity name formats to their canonical form.
// This function handles singular/plural forms, different separators (-, _),
// and the Spanish names used by the backend.
//
// Example:
//
//	NormalizeEntity("Mesa") => "tables"
//	NormalizeEntity("WHATSAPP_LOGS") => "messages"
func NormalizeEntity(raw string) string {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	normalized := strings.ReplaceAll(trimmed, "_", "-")

	if canonical, found := entityAliases[normalized]; found {
		return canonical
	}
	if canonical, found := entityAliases[trimmed]; found {
		return canonical
	}
	return normalized
}

// IsValidEntity checks if the given entity name resolves to a known group.
func IsValidEntity(raw string) bool {
	normalized := NormalizeEntity(raw)
	if normalized == "" {
		return false
	}
	for _, entity := range entityAliases {
		if entity == normalized {
			return true
		}
	}
	return false
}

// AllEntities returns every canonical group sorted alphabetically.
func AllEntities() []string {
	seen := make(map[string]struct{}, len(entityAliases))
	for _, entity := range entityAliases {
		if entity != "" {
			seen[entity] = struct{}{}
		}
	}
	result := make([]string, 0, len(seen))
	for entity := range seen {
		result = append(result, entity)
	}
	sort.Strings(result)
	return result
}
