package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrBookingAlreadyPaid возвращается при попытке изменить оплаченное бронирование
	ErrBookingAlreadyPaid = errors.New("booking.repository: booking already paid")

	// ErrBookingClosed возвращается при попытке снова открыть неоплаченное бронирование,
	// закрытое с требованием возврата средств
	ErrBookingClosed = errors.New("booking.repository: booking closed")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
