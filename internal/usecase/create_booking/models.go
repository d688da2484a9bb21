package create_booking

import "time"

// Request модель запроса на создание (или обновление) попытки бронирования
type Request struct {
	UserID    string // ID пользователя из JWT
	UserName  string // имя из JWT (денормализуется в бронирование)
	UserEmail string // email из JWT
	SessionID string // ID клиентской сессии (X-Session-ID), опционально

	RoomID            string
	StartDate         time.Time
	EndDate           time.Time
	BreakfastIncluded bool
	TotalPrice        int64 // цена, которую показал клиент (minor units)

	PaymentIntentID string // продолжить оплату существующего бронирования, опционально
}

// Response модель ответа: бронирование ожидает оплаты
type Response struct {
	BookingID       string
	PaymentIntentID string
	ClientSecret    string
	Nights          int
	TotalPrice      int64
	Currency        string
	SettlementState string
	BookedAt        time.Time
}
