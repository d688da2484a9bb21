package domain

import "time"

// BookingSession in-flight booking attempt of one client session.
// Passed explicitly into the create flow so concurrent sessions never share state.
type BookingSession struct {
	SessionID string
	UserID    string
	Draft     BookingDraft
	Intent    PaymentIntentRef
	UpdatedAt time.Time
}

// SameRoom returns true when the session already holds an attempt for roomID
func (s *BookingSession) SameRoom(roomID string) bool {
	return s != nil && s.Draft.RoomID == roomID && !s.Intent.IsEmpty()
}
