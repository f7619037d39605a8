package domain

import "fmt"

type DayForm struct {
	Day    string `json:"day" validate:"required,max=20"`
	Open   string `json:"open" validate:"omitempty,hhmm"`
	Close  string `json:"close" validate:"omitempty,hhmm"`
	Closed bool   `json:"closed"`
}

type ScheduleForm struct {
	Days []DayForm `json:"days" validate:"required,min=1,max=7,dive"`
}

// HourProblems reports unknown day names and open days missing a time range
// or closing before they open. Keys follow the validator naming, days[i].open.
func (f ScheduleForm) HourProblems() map[string]string {
	problems := make(map[string]string)
	for i, d := range f.Days {
		if NormalizeDay(d.Day) == "" {
			problems[fmt.Sprintf("days[%d].day", i)] = "must be a day of the week"
		}
		if d.Closed {
			continue
		}
		switch {
		case d.Open == "":
			problems[fmt.Sprintf("days[%d].open", i)] = "is required"
		case d.Close == "":
			problems[fmt.Sprintf("days[%d].close", i)] = "is required"
		case d.Close <= d.Open:
			problems[fmt.Sprintf("days[%d].close", i)] = "must be after open"
		}
	}
	return problems
}

func (f ScheduleForm) Schedule() Schedule {
	days := make([]Day, 0, len(f.Days))
	for _, d := range f.Days {
		day := Day{Day: string(NormalizeDay(d.Day)), Closed: d.Closed}
		if !d.Closed {
			day.Open, day.Close = d.Open, d.Close
		}
		days = append(days, day)
	}
	return Schedule{Days: days}
}

type HolidayForm struct {
	Date   string `json:"date" validate:"required,ymd"`
	Reason string `json:"reason" validate:"required,max=120"`
}

type SettingsForm struct {
	RestaurantName string `json:"restaurant_name" validate:"required,max=80"`
	SlotMinutes    int    `json:"slot_minutes" validate:"min=5,max=240"`
	MaxPartySize   int    `json:"max_party_size" validate:"min=1,max=50"`
	AutoConfirm    bool   `json:"auto_confirm"`
	ReminderHours  int    `json:"reminder_hours" validate:"min=0,max=72"`
}

func (f SettingsForm) Settings() Settings {
	return Settings{
		RestaurantName: f.RestaurantName,
		SlotMinutes:    f.SlotMinutes,
		MaxPartySize:   f.MaxPartySize,
		AutoConfirm:    f.AutoConfirm,
		ReminderHours:  f.ReminderHours,
	}
}
