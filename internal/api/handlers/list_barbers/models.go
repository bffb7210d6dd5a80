package list_barbers

import (
	"github.com/WingorOsnova/BarbershopPP/internal/domain"
)

// BarberResponse HTTP response model
type BarberResponse struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	PhotoURL        string `json:"photo_url,omitempty"`
	ExperienceYears int    `json:"experience_years"`
	Description     string `json:"description,omitempty"`
}

// FromDomain конвертирует список барберов в HTTP response
func FromDomain(barbers []domain.Barber) []*BarberResponse {
	result := make([]*BarberResponse, 0, len(barbers))
	for _, b := range barbers {
		result = append(result, &BarberResponse{
			ID:              b.ID,
			Name:            b.Name,
			PhotoURL:        b.PhotoURL,
			ExperienceYears: b.ExperienceYears,
			Description:     b.Description,
		})
	}
	return result
}
