package infrastructure

import (
	"encoding/json"
	"testing"

	"mesaYaDash/internal/modules/settings/domain"
)

func TestScheduleConverters(t *testing.T) {
	var dto ScheduleDTO
	raw := `{"dias":[{"dia":"lunes","cerrado":true},{"dia":"martes","apertura":"13:00:00","cierre":"23:30:00","cerrado":false}]}`
	if err := json.Unmarshal([]byte(raw), &dto); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	schedule := ScheduleFromBackend(dto)
	want := domain.Day{Day: "martes", Open: "13:00", Close: "23:30"}
	if len(schedule.Days) != 2 || schedule.Days[1] != want || !schedule.Days[0].Closed {
		t.Fatalf("unexpected schedule: %+v", schedule)
	}
	back := ScheduleToBackend(schedule)
	if back.Dias[1].Apertura != "13:00" || back.Dias[0].Dia != "lunes" {
		t.Fatalf("unexpected dto: %+v", back)
	}
}

func TestHolidayConverters(t *testing.T) {
	holiday := HolidayFromBackend(HolidayDTO{ID: "12", Fecha: "2024-12-25", Motivo: "Navidad"})
	if holiday != (domain.Holiday{ID: "12", Date: "2024-12-25", Reason: "Navidad"}) {
		t.Fatalf("unexpected holiday: %+v", holiday)
	}
	if dto := HolidayToBackend(holiday); dto.Fecha != "2024-12-25" || dto.Motivo != "Navidad" {
		t.Fatalf("unexpected dto: %+v", dto)
	}
}
