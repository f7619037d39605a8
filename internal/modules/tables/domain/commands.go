package domain

// TableForm is the create/edit dialog payload.
type TableForm struct {
	Number      string `json:"numero" validate:"required,max=20"`
	Location    string `json:"ubicacion" validate:"max=60"`
	Capacity    int    `json:"capacidad" validate:"min=1,max=30"`
	MaxCapacity int    `json:"capacidad_max" validate:"omitempty,min=1,max=30,gtefield=Capacity"`
}

// UpdateStatusCommand changes the floor status of one table.
type UpdateStatusCommand struct {
	ID     string `json:"id"`
	Status string `json:"estado"`
}

// Table converts the form into the entity it describes.
func (f TableForm) Table(id string) Table {
	maxCapacity := f.MaxCapacity
	if maxCapacity == 0 {
		maxCapacity = f.Capacity
	}
	return Table{ID: id, Number: f.Number, Location: f.Location, Capacity: f.Capacity, MaxCapacity: maxCapacity, Status: StatusFree}
}
