package domain

import (
	"errors"
	"strings"
)

var (
	ErrTableNotFound = errors.New("table not found")
	ErrMissingID     = errors.New("missing table id")
	ErrInvalidStatus = errors.New("invalid table status")
)

// Status is the availability of a table as shown on the floor view.
type Status string

const (
	StatusUnknown  Status = ""
	StatusFree     Status = "libre"
	StatusOccupied Status = "ocupada"
	StatusReserved Status = "reservada"
	StatusBlocked  Status = "bloqueada"
)

var knownStatuses = map[string]Status{
	"libre":     StatusFree,
	"free":      StatusFree,
	"available": StatusFree,
	"ocupada":   StatusOccupied,
	"occupied":  StatusOccupied,
	"seated":    StatusOccupied,
	"reservada": StatusReserved,
	"reserved":  StatusReserved,
	"bloqueada": StatusBlocked,
	"blocked":   StatusBlocked,
}

var statusLabels = map[Status]string{
	StatusFree:     "Libre",
	StatusOccupied: "Ocupada",
	StatusReserved: "Reservada",
	StatusBlocked:  "Bloqueada",
}

// NormalizeStatus coerces backend and user input into a canonical status.
// Unknown values are lowercased and kept so nothing the server sends is lost.
func NormalizeStatus(value any) Status {
	s, ok := value.(string)
	if !ok {
		return StatusUnknown
	}
	trimmed := strings.ToLower(strings.TrimSpace(s))
	if trimmed == "" {
		return StatusUnknown
	}
	if status, ok := knownStatuses[trimmed]; ok {
		return status
	}
	return Status(trimmed)
}

// Known reports whether s is one of the four floor statuses.
func (s Status) Known() bool {
	_, ok := statusLabels[s]
	return ok
}

// Label returns the display name of the status.
func (s Status) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

// Table is a seating resource on the restaurant floor.
type Table struct {
	ID          string `json:"id"`
	Number      string `json:"numero"`
	Location    string `json:"ubicacion"`
	Capacity    int    `json:"capacidad"`
	MaxCapacity int    `json:"capacidad_max"`
	Status      Status `json:"estado"`
}

// WithStatus returns a copy of tables where only the table id carries status.
// changed is false when the table is missing or already in that status.
func WithStatus(tables []Table, id string, status Status) (next []Table, changed bool) {
	for i := range tables {
		if tables[i].ID != id {
			continue
		}
		if tables[i].Status == status {
			return tables, false
		}
		next = make([]Table, len(tables))
		copy(next, tables)
		next[i].Status = status
		return next, true
	}
	return tables, false
}

// Find returns the table with the given id.
func Find(tables []Table, id string) (Table, bool) {
	for _, t := range tables {
		if t.ID == id {
			return t, true
		}
	}
	return Table{}, false
}

// CountByStatus summarises the floor.
func CountByStatus(tables []Table) map[Status]int {
	counts := make(map[Status]int, len(statusLabels))
	for _, t := range tables {
		counts[t.Status]++
	}
	return counts
}
