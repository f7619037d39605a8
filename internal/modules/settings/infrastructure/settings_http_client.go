package infrastructure

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"mesaYaDash/internal/modules/settings/domain"
	"mesaYaDash/internal/platform/rest"
)

const (
	schedulePath = "/api/config/schedule"
	holidaysPath = "/api/config/holidays"
	settingsPath = "/api/config/settings"
)

type HTTPGateway struct {
	client *rest.Client
}

func NewHTTPGateway(client *rest.Client) *HTTPGateway {
	return &HTTPGateway{client: client}
}

func (g *HTTPGateway) Schedule(ctx context.Context) (domain.Schedule, error) {
	dto, err := rest.GetItem[ScheduleDTO](ctx, g.client, schedulePath, "horario", "schedule")
	if err != nil {
		return domain.Schedule{}, err
	}
	return ScheduleFromBackend(dto), nil
}

func (g *HTTPGateway) UpdateSchedule(ctx context.Context, schedule domain.Schedule) (domain.Schedule, error) {
	dto, err := rest.SendItem[ScheduleDTO](ctx, g.client, http.MethodPut, schedulePath, ScheduleToBackend(schedule), "horario", "schedule")
	if err != nil {
		return domain.Schedule{}, err
	}
	// Some backends answer 204; keep what was sent.
	if dto.Dias == nil {
		return schedule, nil
	}
	return ScheduleFromBackend(dto), nil
}

func (g *HTTPGateway) Holidays(ctx context.Context) ([]domain.Holiday, error) {
	rows, _, err := rest.GetList[HolidayDTO](ctx, g.client, holidaysPath, nil, "festivos", "holidays")
	if err != nil {
		return nil, err
	}
	holidays := make([]domain.Holiday, 0, len(rows))
	for _, row := range rows {
		holidays = append(holidays, HolidayFromBackend(row))
	}
	return holidays, nil
}

func (g *HTTPGateway) AddHoliday(ctx context.Context, form domain.HolidayForm) (domain.Holiday, error) {
	body := HolidayToBackend(domain.Holiday{Date: form.Date, Reason: form.Reason})
	dto, err := rest.SendItem[HolidayDTO](ctx, g.client, http.MethodPost, holidaysPath, body, "festivo", "holiday")
	if err != nil {
		return domain.Holiday{}, err
	}
	return HolidayFromBackend(dto), nil
}

func (g *HTTPGateway) RemoveHoliday(ctx context.Context, id string) error {
	err := g.client.Send(ctx, http.MethodDelete, holidaysPath+"/"+url.PathEscape(id), nil, nil)
	if err != nil && rest.IsStatus(err, http.StatusNotFound) {
		return fmt.Errorf("%w: %w", domain.ErrHolidayNotFound, err)
	}
	return err
}

func (g *HTTPGateway) Settings(ctx context.Context) (domain.Settings, error) {
	dto, err := rest.GetItem[SettingsDTO](ctx, g.client, settingsPath, "settings", "configuracion")
	if err != nil {
		return domain.Settings{}, err
	}
	return SettingsFromBackend(dto), nil
}

func (g *HTTPGateway) UpdateSettings(ctx context.Context, settings domain.Settings) (domain.Settings, error) {
	dto, err := rest.SendItem[SettingsDTO](ctx, g.client, http.MethodPut, settingsPath, SettingsToBackend(settings), "settings", "configuracion")
	if err != nil {
		return domain.Settings{}, err
	}
	if dto == (SettingsDTO{}) {
		return settings, nil
	}
	return SettingsFromBackend(dto), nil
}
