package fail_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("fail_booking: invalid input data")

	// ErrBookingNotFound возвращается, когда нет бронирования для payment intent
	ErrBookingNotFound = errors.New("fail_booking: booking not found")
)
