package confirm_booking

import "time"

// Request входные данные подтверждения оплаты.
// UserID пуст для webhook процессора и заполнен для клиентского подтверждения.
type Request struct {
	PaymentIntentID string
	UserID          string
}

// Response результат подтверждения
type Response struct {
	BookingID        string
	PaymentIntentID  string
	RoomID           string
	StartDate        time.Time
	EndDate          time.Time
	TotalPrice       int64
	Currency         string
	SettlementState  string
	PaidAt           *time.Time
	AlreadyConfirmed bool
}
