package domain

import "time"

// Booking persisted room reservation.
// Created unpaid when a payment intent is obtained; PaymentStatus flips to
// true once the processor confirms payment.
type Booking struct {
	ID                string
	HotelOwnerID      string
	HotelID           string
	RoomID            string
	UserID            string
	StartDate         time.Time
	EndDate           time.Time
	BreakfastIncluded bool
	Currency          string
	TotalPrice        int64 // minor units
	PaymentIntentID   string
	PaymentStatus     bool
	SettlementState   SettlementState
	FailureReason     *string

	// Denormalized guest data for owner views
	UserName  string
	UserEmail string

	BookedAt  time.Time
	PaidAt    *time.Time
	UpdatedAt time.Time
}

// Interval reserved calendar span
func (b *Booking) Interval() DateInterval {
	return DateInterval{Start: ToDate(b.StartDate), End: ToDate(b.EndDate)}
}

// Nights number of nights of the stay
func (b *Booking) Nights() int {
	return b.Interval().Nights()
}

// Existing conflict-checking view of the booking
func (b *Booking) Existing() ExistingBooking {
	return ExistingBooking{
		RoomID:        b.RoomID,
		Interval:      b.Interval(),
		PaymentStatus: b.PaymentStatus,
	}
}

// IsPaid returns true if the slot is actually held
func (b *Booking) IsPaid() bool {
	return b.PaymentStatus
}

// IsVisibleTo returns true for the guest and the hotel owner
func (b *Booking) IsVisibleTo(userID string) bool {
	return userID != "" && (b.UserID == userID || b.HotelOwnerID == userID)
}

// CanRetryPayment returns true while the booking may still be paid:
// awaiting confirmation, or failed only because the processor declined the payment.
func (b *Booking) CanRetryPayment() bool {
	if b.PaymentStatus {
		return false
	}
	switch b.SettlementState {
	case SettlementAwaitingConfirmation:
		return true
	case SettlementFailed:
		return b.FailureReason != nil && *b.FailureReason == FailureReasonPaymentFailed
	}
	return false
}

// ToExisting converts bookings for the conflict checker
func ToExisting(bookings []*Booking) []ExistingBooking {
	result := make([]ExistingBooking, 0, len(bookings))
	for _, b := range bookings {
		result = append(result, b.Existing())
	}
	return result
}

// BookingDraft in-flight reservation request, never persisted directly
type BookingDraft struct {
	RoomID            string
	Interval          DateInterval
	BreakfastIncluded bool
	TotalPrice        int64
}

// PaymentIntentRef processor intent owned by one booking attempt
type PaymentIntentRef struct {
	PaymentIntentID string
	ClientSecret    string
}

// IsEmpty returns true when no intent has been obtained yet
func (r PaymentIntentRef) IsEmpty() bool {
	return r.PaymentIntentID == ""
}
