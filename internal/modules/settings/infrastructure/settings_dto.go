package infrastructure

import (
	"mesaYaDash/internal/modules/settings/domain"
	"mesaYaDash/internal/platform/rest"
)

type DayDTO struct {
	Dia      string `json:"dia"`
	Apertura string `json:"apertura,omitempty"`
	Cierre   string `json:"cierre,omitempty"`
	Cerrado  bool   `json:"cerrado"`
}

type ScheduleDTO struct {
	Dias []DayDTO `json:"dias"`
}

type HolidayDTO struct {
	ID     rest.ID `json:"id,omitempty"`
	Fecha  string  `json:"fecha"`
	Motivo string  `json:"motivo"`
}

type SettingsDTO struct {
	RestaurantName string `json:"restaurant_name"`
	SlotMinutes    int    `json:"slot_minutes"`
	MaxPartySize   int    `json:"max_party_size"`
	AutoConfirm    bool   `json:"auto_confirm"`
	ReminderHours  int    `json:"reminder_hours"`
}

func ScheduleFromBackend(dto ScheduleDTO) domain.Schedule {
	days := make([]domain.Day, 0, len(dto.Dias))
	for _, d := range dto.Dias {
		name := string(domain.NormalizeDay(d.Dia))
		if name == "" {
			name = d.Dia
		}
		days = append(days, domain.Day{Day: name, Open: trimSeconds(d.Apertura), Close: trimSeconds(d.Cierre), Closed: d.Cerrado})
	}
	return domain.Schedule{Days: days}
}

func ScheduleToBackend(schedule domain.Schedule) ScheduleDTO {
	dias := make([]DayDTO, 0, len(schedule.Days))
	for _, d := range schedule.Days {
		dias = append(dias, DayDTO{Dia: d.Day, Apertura: d.Open, Cierre: d.Close, Cerrado: d.Closed})
	}
	return ScheduleDTO{Dias: dias}
}

func HolidayFromBackend(dto HolidayDTO) domain.Holiday {
	return domain.Holiday{ID: dto.ID.String(), Date: dto.Fecha, Reason: dto.Motivo}
}

func HolidayToBackend(h domain.Holiday) HolidayDTO {
	return HolidayDTO{ID: rest.ID(h.ID), Fecha: h.Date, Motivo: h.Reason}
}

func SettingsFromBackend(dto SettingsDTO) domain.Settings {
	return domain.Settings(dto)
}

func SettingsToBackend(s domain.Settings) SettingsDTO {
	return SettingsDTO(s)
}

// trimSeconds turns a backend "13:00:00" into "13:00".
func trimSeconds(value string) string {
	if len(value) == len("15:04:05") && value[5] == ':' {
		return value[:5]
	}
	return value
}
