package create_booking

import (
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	createBooking "github.com/m04kA/SMC-RoomBookingService/internal/usecase/create_booking"
)

// SessionHeader заголовок с ID клиентской сессии бронирования
const SessionHeader = "X-Session-ID"

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	RoomID            string  `json:"roomId"`
	StartDate         string  `json:"startDate"` // "2025-10-15"
	EndDate           string  `json:"endDate"`   // "2025-10-18"
	BreakfastIncluded bool    `json:"breakfastIncluded"`
	TotalPrice        int64   `json:"totalPrice"` // minor units
	PaymentIntentID   *string `json:"paymentIntentId,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	BookingID       string `json:"bookingId"`
	PaymentIntentID string `json:"paymentIntentId"`
	ClientSecret    string `json:"clientSecret"`
	Nights          int    `json:"nights"`
	TotalPrice      int64  `json:"totalPrice"`
	Currency        string `json:"currency"`
	SettlementState string `json:"settlementState"`
	BookedAt        string `json:"bookedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(identity middleware.Identity, sessionID string) (*createBooking.Request, error) {
	// Парсим даты
	startDate, err := time.Parse(domain.DateFormat, r.StartDate)
	if err != nil {
		return nil, err
	}

	endDate, err := time.Parse(domain.DateFormat, r.EndDate)
	if err != nil {
		return nil, err
	}

	req := &createBooking.Request{
		UserID:            identity.UserID,
		UserName:          identity.Name,
		UserEmail:         identity.Email,
		SessionID:         sessionID,
		RoomID:            r.RoomID,
		StartDate:         startDate,
		EndDate:           endDate,
		BreakfastIncluded: r.BreakfastIncluded,
		TotalPrice:        r.TotalPrice,
	}
	if r.PaymentIntentID != nil {
		req.PaymentIntentID = *r.PaymentIntentID
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		BookingID:       resp.BookingID,
		PaymentIntentID: resp.PaymentIntentID,
		ClientSecret:    resp.ClientSecret,
		Nights:          resp.Nights,
		TotalPrice:      resp.TotalPrice,
		Currency:        resp.Currency,
		SettlementState: resp.SettlementState,
		BookedAt:        resp.BookedAt.Format(time.RFC3339),
	}
}
