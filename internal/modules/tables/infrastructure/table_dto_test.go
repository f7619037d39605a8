package infrastructure

import (
	"encoding/json"
	"testing"

	"mesaYaDash/internal/modules/tables/domain"
)

func TestTableConvertersRoundTrip(t *testing.T) {
	raw := `{"id":7,"nombre":"7","zona":"terraza","capacidad_min":2,"capacidad_max":4,"estado":"Reservada"}`
	var dto TableDTO
	if err := json.Unmarshal([]byte(raw), &dto); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	table := FromBackend(dto)
	expected := domain.Table{ID: "7", Number: "7", Location: "terraza", Capacity: 2, MaxCapacity: 4, Status: domain.StatusReserved}
	if table != expected {
		t.Fatalf("unexpected table: %+v", table)
	}

	back := ToBackend(table)
	if back.Nombre != "7" || back.Zona != "terraza" || back.CapacidadMin != 2 || back.CapacidadMax != 4 || back.Estado != "reservada" {
		t.Fatalf("unexpected dto: %+v", back)
	}
}

func TestFormToBackendOmitsStatus(t *testing.T) {
	dto := FormToBackend(domain.TableForm{Number: "3", Capacity: 2})
	encoded, err := json.Marshal(dto)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(encoded) != `{"nombre":"3","zona":"","capacidad_min":2,"capacidad_max":2}` {
		t.Fatalf("unexpected body: %s", encoded)
	}
}
