package confirm_booking

import (
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	confirmBooking "github.com/m04kA/SMC-RoomBookingService/internal/usecase/confirm_booking"
)

// ConfirmationResponse HTTP response model
type ConfirmationResponse struct {
	BookingID        string  `json:"bookingId"`
	PaymentIntentID  string  `json:"paymentIntentId"`
	RoomID           string  `json:"roomId"`
	StartDate        string  `json:"startDate"`
	EndDate          string  `json:"endDate"`
	TotalPrice       int64   `json:"totalPrice"`
	Currency         string  `json:"currency"`
	SettlementState  string  `json:"settlementState"`
	PaidAt           *string `json:"paidAt,omitempty"`
	AlreadyConfirmed bool    `json:"alreadyConfirmed"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *confirmBooking.Response) *ConfirmationResponse {
	result := &ConfirmationResponse{
		BookingID:        resp.BookingID,
		PaymentIntentID:  resp.PaymentIntentID,
		RoomID:           resp.RoomID,
		StartDate:        resp.StartDate.Format(domain.DateFormat),
		EndDate:          resp.EndDate.Format(domain.DateFormat),
		TotalPrice:       resp.TotalPrice,
		Currency:         resp.Currency,
		SettlementState:  resp.SettlementState,
		AlreadyConfirmed: resp.AlreadyConfirmed,
	}
	if resp.PaidAt != nil {
		paidAt := resp.PaidAt.Format(time.RFC3339)
		result.PaidAt = &paidAt
	}
	return result
}
