package domain

import "fmt"

// Availability result of a conflict check
type Availability string

const (
	Available Availability = "available"
	Conflict  Availability = "conflict"
)

// ExistingBooking subset of a booking relevant to conflict checking
type ExistingBooking struct {
	RoomID        string
	Interval      DateInterval
	PaymentStatus bool
}

// CheckAvailability decides whether candidate can be booked for roomID.
// Only paid bookings of the same room block; the first overlap wins.
func CheckAvailability(roomID string, candidate DateInterval, bookings []ExistingBooking) (Availability, error) {
	if err := candidate.Validate(); err != nil {
		return "", err
	}

	for _, b := range bookings {
		if !b.PaymentStatus || b.RoomID != roomID {
			continue
		}

		overlaps, err := Overlaps(candidate, b.Interval)
		if err != nil {
			return "", fmt.Errorf("existing booking %s: %w", b.Interval, err)
		}
		if overlaps {
			return Conflict, nil
		}
	}

	return Available, nil
}
