package infrastructure

import (
	"mesaYaDash/internal/modules/tables/domain"
	"mesaYaDash/internal/platform/rest"
)

// TableDTO is the row shape of the backend tables API.
type TableDTO struct {
	ID           rest.ID `json:"id,omitempty"`
	Nombre       string  `json:"nombre"`
	Zona         string  `json:"zona"`
	CapacidadMin int     `json:"capacidad_min"`
	CapacidadMax int     `json:"capacidad_max"`
	Estado       string  `json:"estado,omitempty"`
}

func FromBackend(dto TableDTO) domain.Table {
	return domain.Table{
		ID:          dto.ID.String(),
		Number:      dto.Nombre,
		Location:    dto.Zona,
		Capacity:    dto.CapacidadMin,
		MaxCapacity: dto.CapacidadMax,
		Status:      domain.NormalizeStatus(dto.Estado),
	}
}

func ToBackend(table domain.Table) TableDTO {
	return TableDTO{
		ID:           rest.ID(table.ID),
		Nombre:       table.Number,
		Zona:         table.Location,
		CapacidadMin: table.Capacity,
		CapacidadMax: table.MaxCapacity,
		Estado:       string(table.Status),
	}
}

// FormToBackend builds the create/update body. Status is owned by the status endpoint.
func FormToBackend(form domain.TableForm) TableDTO {
	dto := ToBackend(form.Table(""))
	dto.Estado = ""
	return dto
}
