package domain

// Service represents a barbershop service from the catalog.
//
// DurationMinutes не влияет на ширину слота: все слоты фиксированной
// длительности (SlotStepMinutes), это задокументированное поведение.
type Service struct {
	ID              int64
	Name            string
	Description     string
	Price           float64
	DurationMinutes int
}
