package get_room_availability

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.RoomID) == "" {
		return fmt.Errorf("%w: roomId is required", ErrInvalidInput)
	}

	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return fmt.Errorf("%w: startDate and endDate are required", ErrInvalidInput)
	}

	return nil
}

// validateDate проверяет, что заезд не раньше сегодняшнего дня
func validateDate(interval domain.DateInterval, now time.Time) error {
	if interval.Start.Before(domain.ToDate(now)) {
		return fmt.Errorf("%w: %s", ErrDateInPast, interval.Start.Format(domain.DateFormat))
	}
	return nil
}
