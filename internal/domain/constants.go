package domain

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Failure reasons persisted with a failed booking
const (
	// FailureReasonPaymentFailed процессор сообщил о неуспешной оплате
	FailureReasonPaymentFailed = "payment_failed"

	// FailureReasonConflict оплата прошла, но даты уже заняты - нужен возврат средств
	FailureReasonConflict = "conflict_refund_required"

	// FailureReasonAmountMismatch списанная сумма не совпала с ценой бронирования - нужна сверка
	FailureReasonAmountMismatch = "amount_mismatch_refund_required"
)

// Payment intent metadata keys
const (
	MetadataHotelID           = "hotel_id"
	MetadataRoomID            = "room_id"
	MetadataUserID            = "user_id"
	MetadataStartDate         = "start_date"
	MetadataEndDate           = "end_date"
	MetadataBreakfastIncluded = "breakfast_included"
	MetadataTotalPrice        = "total_price"
)
