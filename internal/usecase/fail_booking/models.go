package fail_booking

// Request уведомление процессора о неуспешной оплате
type Request struct {
	PaymentIntentID string
	Message         string // текст ошибки процессора, только для логов
}

// Response результат обработки
type Response struct {
	BookingID       string
	SettlementState string
	Ignored         bool // бронирование уже оплачено или закрыто
}
