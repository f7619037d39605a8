package domain

// EntryForm is the add-to-waitlist dialog payload.
type EntryForm struct {
	CustomerName  string `json:"customer_name" validate:"required,max=120"`
	Phone         string `json:"phone" validate:"required,phone"`
	PartySize     int    `json:"party_size" validate:"min=1,max=50"`
	QuotedMinutes int    `json:"quoted_minutes" validate:"min=0,max=240"`
}

type UpdateStatusCommand struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}
