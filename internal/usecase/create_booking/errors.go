package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrDateInPast возвращается, когда заезд раньше текущего дня
	ErrDateInPast = errors.New("create_booking: start date is in the past")

	// ErrRoomNotFound возвращается, когда комната не найдена
	ErrRoomNotFound = errors.New("create_booking: room not found")

	// ErrBookingNotFound возвращается, когда нет бронирования для переданного payment intent
	ErrBookingNotFound = errors.New("create_booking: booking not found")

	// ErrAccessDenied возвращается при попытке продолжить оплату чужого бронирования
	ErrAccessDenied = errors.New("create_booking: access denied")

	// ErrAlreadyPaid возвращается, когда бронирование с этим intent уже оплачено
	ErrAlreadyPaid = errors.New("create_booking: booking already paid")

	// ErrPaymentNotRetryable возвращается для бронирования, закрытого с требованием возврата средств
	ErrPaymentNotRetryable = errors.New("create_booking: booking can no longer be paid")
)
