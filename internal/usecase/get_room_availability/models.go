package get_room_availability

import (
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// Request модель запроса проверки доступности комнаты
type Request struct {
	RoomID            string
	StartDate         time.Time
	EndDate           time.Time
	BreakfastIncluded bool
}

// Response доступность, цена и занятые даты комнаты
type Response struct {
	RoomID            string
	Interval          domain.DateInterval
	Nights            int
	Availability      domain.Availability
	BreakfastIncluded bool
	TotalPrice        int64 // minor units
	Currency          string
	Calendar          domain.RoomCalendar   // дни запрошенного интервала
	BookedIntervals   []domain.DateInterval // будущие оплаченные бронирования комнаты
}
