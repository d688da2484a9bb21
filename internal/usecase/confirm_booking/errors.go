package confirm_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("confirm_booking: invalid input data")

	// ErrBookingNotFound возвращается, когда нет бронирования для payment intent
	ErrBookingNotFound = errors.New("confirm_booking: booking not found")

	// ErrAccessDenied возвращается при подтверждении чужого бронирования
	ErrAccessDenied = errors.New("confirm_booking: access denied")

	// ErrPaymentNotCompleted возвращается, если процессор еще не подтвердил оплату
	ErrPaymentNotCompleted = errors.New("confirm_booking: payment is not completed")
)
