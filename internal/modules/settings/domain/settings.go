package domain

import (
	"errors"
	"strings"
)

var (
	ErrHolidayNotFound = errors.New("holiday not found")
	ErrMissingID       = errors.New("missing holiday id")
)

// Day is one row of the weekly opening schedule. Open and Close are HH:MM
// and are ignored when Closed is set.
type Day struct {
	Day    string `json:"day"`
	Open   string `json:"open"`
	Close  string `json:"close"`
	Closed bool   `json:"closed"`
}

type Schedule struct {
	Days []Day `json:"days"`
}

// OpenOn returns the row for day, matched case-insensitively.
func (s Schedule) OpenOn(day string) (Day, bool) {
	for _, d := range s.Days {
		if strings.EqualFold(strings.TrimSpace(d.Day), strings.TrimSpace(day)) {
			return d, !d.Closed
		}
	}
	return Day{}, false
}

type Holiday struct {
	ID     string `json:"id"`
	Date   string `json:"date"`
	Reason string `json:"reason"`
}

type Settings struct {
	RestaurantName string `json:"restaurant_name"`
	SlotMinutes    int    `json:"slot_minutes"`
	MaxPartySize   int    `json:"max_party_size"`
	AutoConfirm    bool   `json:"auto_confirm"`
	ReminderHours  int    `json:"reminder_hours"`
}
