package domain

// Barber represents a bookable staff member
type Barber struct {
	ID              int64
	Name            string
	PhotoURL        string
	ExperienceYears int
	Description     string
	IsActive        bool
}

// IsBookable returns true if the barber accepts new bookings
func (b *Barber) IsBookable() bool {
	return b.IsActive
}
