package domain

import (
	"errors"
	"strings"
)

var (
	ErrCustomerNotFound = errors.New("customer not found")
	ErrMissingID        = errors.New("missing customer id")
	ErrUnknownSource    = errors.New("unknown customer source")
)

// Tier is the loyalty level of a customer.
type Tier string

const (
	TierUnknown  Tier = ""
	TierRegular  Tier = "regular"
	TierFrequent Tier = "frecuente"
	TierVIP      Tier = "vip"
)

var knownTiers = map[string]Tier{
	"regular":   TierRegular,
	"normal":    TierRegular,
	"frecuente": TierFrequent,
	"frequent":  TierFrequent,
	"vip":       TierVIP,
}

// NormalizeTier lowercases tiers and keeps unknown ones.
func NormalizeTier(value any) Tier {
	s, ok := value.(string)
	if !ok {
		return TierUnknown
	}
	trimmed := strings.ToLower(strings.TrimSpace(s))
	if tier, ok := knownTiers[trimmed]; ok {
		return tier
	}
	return Tier(trimmed)
}

// Customer is one CRM record.
type Customer struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Phone       string   `json:"phone"`
	Email       string   `json:"email,omitempty"`
	Tier        Tier     `json:"tier"`
	Visits      int      `json:"visits"`
	NoShows     int      `json:"no_shows"`
	Preferences []string `json:"preferences"`
	Notes       string   `json:"notes,omitempty"`
	LastVisit   string   `json:"last_visit,omitempty"`
}

// Page is one cached page of customers.
type Page struct {
	Items []Customer `json:"items"`
	Total int        `json:"total"`
}

// NoShowRate is the share of visits the customer missed.
func (c Customer) NoShowRate() float64 {
	booked := c.Visits + c.NoShows
	if booked == 0 {
		return 0
	}
	return float64(c.NoShows) / float64(booked)
}
