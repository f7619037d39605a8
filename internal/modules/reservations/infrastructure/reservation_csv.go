package infrastructure

import (
	"strconv"

	"mesaYaDash/internal/modules/reservations/domain"
	"mesaYaDash/internal/platform/export"
)

var ReservationColumns = []export.Column[domain.Reservation]{
	{Header: "id", Value: func(r domain.Reservation) string { return r.ID }},
	{Header: "date", Value: func(r domain.Reservation) string { return r.Date }},
	{Header: "time", Value: func(r domain.Reservation) string { return r.Time }},
	{Header: "customer_name", Value: func(r domain.Reservation) string { return r.CustomerName }},
	{Header: "phone", Value: func(r domain.Reservation) string { return r.Phone }},
	{Header: "email", Value: func(r domain.Reservation) string { return r.Email }},
	{Header: "party_size", Value: func(r domain.Reservation) string { return strconv.Itoa(r.PartySize) }},
	{Header: "table_id", Value: func(r domain.Reservation) string { return r.TableID }},
	{Header: "status", Value: func(r domain.Reservation) string { return string(r.Status) }},
	{Header: "notes", Value: func(r domain.Reservation) string { return r.Notes }},
}
