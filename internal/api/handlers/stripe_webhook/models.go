package stripe_webhook

// SignatureHeader заголовок с подписью Stripe
const SignatureHeader = "Stripe-Signature"

// maxPayloadBytes Stripe ограничивает событие 64KB
const maxPayloadBytes = 65536

// AckResponse ответ процессору
type AckResponse struct {
	Received bool   `json:"received"`
	Result   string `json:"result,omitempty"`
}

const (
	resultConfirmed = "confirmed"
	resultFailed    = "failed"
	resultRejected  = "rejected"
	resultIgnored   = "ignored"
)
