package infrastructure

import (
	"mesaYaDash/internal/modules/customers/domain"
	"mesaYaDash/internal/platform/rest"
)

// ClientDTO is a row of the legacy /api/clients endpoint.
type ClientDTO struct {
	ID           rest.ID         `json:"id,omitempty"`
	Nombre       string          `json:"nombre"`
	Telefono     string          `json:"telefono"`
	Email        string          `json:"email,omitempty"`
	Nivel        string          `json:"nivel,omitempty"`
	Visitas      int             `json:"visitas"`
	Ausencias    int             `json:"ausencias"`
	Preferencias rest.StringList `json:"preferencias"`
	Notas        string          `json:"notas,omitempty"`
	UltimaVisita string          `json:"ultima_visita,omitempty"`
}

// CRMCustomerDTO is a row of the /api/crm/customers endpoint.
type CRMCustomerDTO struct {
	ID          rest.ID         `json:"id,omitempty"`
	Name        string          `json:"name"`
	Phone       string          `json:"phone"`
	Email       string          `json:"email,omitempty"`
	Tier        string          `json:"tier,omitempty"`
	VisitCount  int             `json:"visit_count"`
	NoShowCount int             `json:"no_show_count"`
	Preferences rest.StringList `json:"preferences"`
	Notes       string          `json:"notes,omitempty"`
	LastVisitAt string          `json:"last_visit_at,omitempty"`
}

// ClientFormDTO is the create/update body of /api/clients. Visit counters and
// the last visit are owned by the backend and never sent.
type ClientFormDTO struct {
	Nombre       string          `json:"nombre"`
	Telefono     string          `json:"telefono"`
	Email        string          `json:"email,omitempty"`
	Nivel        string          `json:"nivel,omitempty"`
	Preferencias rest.StringList `json:"preferencias"`
	Notas        string          `json:"notas,omitempty"`
}

// CRMFormDTO is the create/update body of /api/crm/customers.
type CRMFormDTO struct {
	Name        string          `json:"name"`
	Phone       string          `json:"phone"`
	Email       string          `json:"email,omitempty"`
	Tier        string          `json:"tier,omitempty"`
	Preferences rest.StringList `json:"preferences"`
	Notes       string          `json:"notes,omitempty"`
}

func ClientFromBackend(dto ClientDTO) domain.Customer {
	return domain.Customer{
		ID:          dto.ID.String(),
		Name:        dto.Nombre,
		Phone:       dto.Telefono,
		Email:       dto.Email,
		Tier:        domain.NormalizeTier(dto.Nivel),
		Visits:      dto.Visitas,
		NoShows:     dto.Ausencias,
		Preferences: preferences(dto.Preferencias),
		Notes:       dto.Notas,
		LastVisit:   dto.UltimaVisita,
	}
}

func ClientToBackend(c domain.Customer) ClientDTO {
	return ClientDTO{
		ID:           rest.ID(c.ID),
		Nombre:       c.Name,
		Telefono:     c.Phone,
		Email:        c.Email,
		Nivel:        string(c.Tier),
		Visitas:      c.Visits,
		Ausencias:    c.NoShows,
		Preferencias: rest.StringList(preferences(c.Preferences)),
		Notas:        c.Notes,
		UltimaVisita: c.LastVisit,
	}
}

func CRMFromBackend(dto CRMCustomerDTO) domain.Customer {
	return domain.Customer{
		ID:          dto.ID.String(),
		Name:        dto.Name,
		Phone:       dto.Phone,
		Email:       dto.Email,
		Tier:        domain.NormalizeTier(dto.Tier),
		Visits:      dto.VisitCount,
		NoShows:     dto.NoShowCount,
		Preferences: preferences(dto.Preferences),
		Notes:       dto.Notes,
		LastVisit:   dto.LastVisitAt,
	}
}

func CRMToBackend(c domain.Customer) CRMCustomerDTO {
	return CRMCustomerDTO{
		ID:          rest.ID(c.ID),
		Name:        c.Name,
		Phone:       c.Phone,
		Email:       c.Email,
		Tier:        string(c.Tier),
		VisitCount:  c.Visits,
		NoShowCount: c.NoShows,
		Preferences: rest.StringList(preferences(c.Preferences)),
		Notes:       c.Notes,
		LastVisitAt: c.LastVisit,
	}
}

// preferences never returns nil so the UI always gets an array.
func preferences(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func ClientFormToBackend(form domain.CustomerForm) ClientFormDTO {
	c := form.Customer("")
	return ClientFormDTO{
		Nombre:       c.Name,
		Telefono:     c.Phone,
		Email:        c.Email,
		Nivel:        string(c.Tier),
		Preferencias: rest.StringList(preferences(c.Preferences)),
		Notas:        c.Notes,
	}
}

func CRMFormToBackend(form domain.CustomerForm) CRMFormDTO {
	c := form.Customer("")
	return CRMFormDTO{
		Name:        c.Name,
		Phone:       c.Phone,
		Email:       c.Email,
		Tier:        string(c.Tier),
		Preferences: rest.StringList(preferences(c.Preferences)),
		Notes:       c.Notes,
	}
}
