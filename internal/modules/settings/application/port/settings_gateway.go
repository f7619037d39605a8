package port

import (
	"context"

	"mesaYaDash/internal/modules/settings/domain"
)

type SettingsGateway interface {
	Schedule(ctx context.Context) (domain.Schedule, error)
	UpdateSchedule(ctx context.Context, schedule domain.Schedule) (domain.Schedule, error)
	Holidays(ctx context.Context) ([]domain.Holiday, error)
	AddHoliday(ctx context.Context, form domain.HolidayForm) (domain.Holiday, error)
	RemoveHoliday(ctx context.Context, id string) error
	Settings(ctx context.Context) (domain.Settings, error)
	UpdateSettings(ctx context.Context, settings domain.Settings) (domain.Settings, error)
}
