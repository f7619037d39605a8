package usecase

import (
	"context"
	"strings"

	"mesaYaDash/internal/modules/settings/application/port"
	"mesaYaDash/internal/modules/settings/domain"
	"mesaYaDash/internal/platform/querycache"
	"mesaYaDash/internal/shared/forms"
	"mesaYaDash/internal/shared/normalization"
)

var (
	ScheduleKey = querycache.NewKey(normalization.EntitySchedule, querycache.ScopeAll)
	HolidaysKey = querycache.NewKey(normalization.EntityHolidays, querycache.ScopeAll)
	SettingsKey = querycache.NewKey(normalization.EntitySettings, querycache.ScopeAll)
)

// Each configuration screen invalidates its own group plus the activity feed.
var (
	ScheduleInvalidates = []string{normalization.EntitySchedule, normalization.EntityActivity}
	HolidayInvalidates  = []string{normalization.EntityHolidays, normalization.EntityActivity}
	SettingsInvalidates = []string{normalization.EntitySettings, normalization.EntityActivity}
)

type Service struct {
	gateway port.SettingsGateway
	cache   *querycache.Cache
}

func NewService(gateway port.SettingsGateway, cache *querycache.Cache) *Service {
	return &Service{gateway: gateway, cache: cache}
}

func (s *Service) Schedule(ctx context.Context) (domain.Schedule, error) {
	return querycache.Fetch(ctx, s.cache, ScheduleKey, s.gateway.Schedule)
}

func (s *Service) UpdateSchedule(ctx context.Context, form domain.ScheduleForm) (domain.Schedule, error) {
	fields := forms.Validate(form)
	for name, msg := range form.HourProblems() {
		if _, exists := fields[name]; !exists {
			fields[name] = msg
		}
	}
	if len(fields) > 0 {
		return domain.Schedule{}, &forms.ValidationError{Fields: fields}
	}
	return querycache.Mutate(ctx, s.cache, normalization.EntitySchedule, func(ctx context.Context) (domain.Schedule, error) {
		return s.gateway.UpdateSchedule(ctx, form.Schedule())
	}, ScheduleInvalidates...)
}

func (s *Service) Holidays(ctx context.Context) ([]domain.Holiday, error) {
	return querycache.Fetch(ctx, s.cache, HolidaysKey, s.gateway.Holidays)
}

func (s *Service) AddHoliday(ctx context.Context, form domain.HolidayForm) (domain.Holiday, error) {
	if err := forms.Check(form); err != nil {
		return domain.Holiday{}, err
	}
	return querycache.Mutate(ctx, s.cache, normalization.EntityHolidays, func(ctx context.Context) (domain.Holiday, error) {
		return s.gateway.AddHoliday(ctx, form)
	}, HolidayInvalidates...)
}

func (s *Service) RemoveHoliday(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return domain.ErrMissingID
	}
	_, err := querycache.Mutate(ctx, s.cache, normalization.EntityHolidays, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.gateway.RemoveHoliday(ctx, id)
	}, HolidayInvalidates...)
	return err
}

func (s *Service) Settings(ctx context.Context) (domain.Settings, error) {
	return querycache.Fetch(ctx, s.cache, SettingsKey, s.gateway.Settings)
}

func (s *Service) UpdateSettings(ctx context.Context, form domain.SettingsForm) (domain.Settings, error) {
	if err := forms.Check(form); err != nil {
		return domain.Settings{}, err
	}
	return querycache.Mutate(ctx, s.cache, normalization.EntitySettings, func(ctx context.Context) (domain.Settings, error) {
		return s.gateway.UpdateSettings(ctx, form.Settings())
	}, SettingsInvalidates...)
}
