package get_available_slots

import (
	"time"

	"github.com/WingorOsnova/BarbershopPP/pkg/types"
)

// Request модель запроса свободных слотов
type Request struct {
	BarberID int64     // ID барбера
	Date     time.Time // Дата, на которую запрашиваются слоты
}

// Response модель ответа со свободными слотами
type Response struct {
	Slots []types.TimeString // Свободные слоты в порядке возрастания
}
