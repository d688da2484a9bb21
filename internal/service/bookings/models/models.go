package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

var (
	// ErrInvalidState возвращается при некорректном состоянии оплаты
	ErrInvalidState = errors.New("invalid settlement state")
)

// Request модели

// GetUserBookingsRequest запрос на получение бронирований гостя
type GetUserBookingsRequest struct {
	UserID string  `json:"userId"`
	State  *string `json:"state,omitempty"` // Фильтр по состоянию оплаты (опционально)
}

// GetOwnerBookingsRequest запрос на получение бронирований отелей владельца
type GetOwnerBookingsRequest struct {
	OwnerID  string  `json:"ownerId"`
	HotelID  *string `json:"hotelId,omitempty"` // Фильтр по отелю (опционально)
	State    *string `json:"state,omitempty"`   // Фильтр по состоянию оплаты (опционально)
	PaidOnly bool    `json:"paidOnly,omitempty"`
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID                string `json:"id"`
	HotelOwnerID      string `json:"hotelOwnerId"`
	HotelID           string `json:"hotelId"`
	RoomID            string `json:"roomId"`
	UserID            string `json:"userId"`
	StartDate         string `json:"startDate"` // "2025-10-15"
	EndDate           string `json:"endDate"`
	Nights            int    `json:"nights"`
	BreakfastIncluded bool   `json:"breakfastIncluded"`
	Currency          string `json:"currency"`
	TotalPrice        int64  `json:"totalPrice"`
	PaymentIntentID   string `json:"paymentIntentId"`
	PaymentStatus     bool   `json:"paymentStatus"`
	SettlementState   string `json:"settlementState"`
	CanRetryPayment   bool   `json:"canRetryPayment"`

	// Денормализованные данные гостя
	UserName  string `json:"userName,omitempty"`
	UserEmail string `json:"userEmail,omitempty"`

	FailureReason *string `json:"failureReason,omitempty"`
	PaidAt        *string `json:"paidAt,omitempty"` // ISO 8601 format

	BookedAt  time.Time `json:"bookedAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                b.ID,
		HotelOwnerID:      b.HotelOwnerID,
		HotelID:           b.HotelID,
		RoomID:            b.RoomID,
		UserID:            b.UserID,
		StartDate:         b.StartDate.Format(domain.DateFormat),
		EndDate:           b.EndDate.Format(domain.DateFormat),
		Nights:            b.Nights(),
		BreakfastIncluded: b.BreakfastIncluded,
		Currency:          b.Currency,
		TotalPrice:        b.TotalPrice,
		PaymentIntentID:   b.PaymentIntentID,
		PaymentStatus:     b.PaymentStatus,
		SettlementState:   string(b.SettlementState),
		CanRetryPayment:   b.CanRetryPayment(),
		UserName:          b.UserName,
		UserEmail:         b.UserEmail,
		FailureReason:     b.FailureReason,
		BookedAt:          b.BookedAt,
		UpdatedAt:         b.UpdatedAt,
	}

	// Конвертируем PaidAt в строку ISO 8601
	if b.PaidAt != nil {
		paidStr := b.PaidAt.Format(time.RFC3339)
		resp.PaidAt = &paidStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	if bookings == nil {
		return &BookingListResponse{
			Bookings: []BookingResponse{},
		}
	}

	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, len(bookings)),
	}

	for i, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings[i] = *bookingResp
		}
	}

	return resp
}

// ToDomainSettlementState конвертирует строку в domain.SettlementState с валидацией.
// Черновики и отклоненные попытки не сохраняются, поэтому фильтр по ним не имеет смысла.
func ToDomainSettlementState(state string) (domain.SettlementState, error) {
	s := domain.SettlementState(state)

	switch s {
	case domain.SettlementAwaitingConfirmation, domain.SettlementConfirmed, domain.SettlementFailed:
		return s, nil
	}

	return "", ErrInvalidState
}
