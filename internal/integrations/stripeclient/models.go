package stripeclient

// Статусы payment intent, которые важны для бронирования
const (
	StatusSucceeded             = "succeeded"
	StatusRequiresPaymentMethod = "requires_payment_method"
)

// Типы webhook событий, которые обрабатывает сервис
const (
	EventPaymentIntentSucceeded     = "payment_intent.succeeded"
	EventPaymentIntentPaymentFailed = "payment_intent.payment_failed"
)

// IntentRequest параметры создания или обновления intent
type IntentRequest struct {
	Amount         int64 // minor units
	Currency       string
	Metadata       map[string]string
	IdempotencyKey string // только для создания
}

// Intent payment intent в терминах сервиса
type Intent struct {
	ID             string
	ClientSecret   string
	Amount         int64
	AmountReceived int64
	Currency       string
	Status         string
	Metadata       map[string]string
	FailureMessage string
	// Replayed ответ на создание взят из кэша идемпотентности Stripe,
	// сумма и метаданные могут не совпадать с текущим состоянием intent
	Replayed bool
}

// IsSucceeded оплата завершена
func (i *Intent) IsSucceeded() bool {
	return i.Status == StatusSucceeded
}

// WebhookEvent проверенное событие Stripe
type WebhookEvent struct {
	ID     string
	Type   string
	Intent *Intent // nil для событий не про payment intent
}
