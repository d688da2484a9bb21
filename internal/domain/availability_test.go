package domain

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckAvailability(t *testing.T) {
	const roomID = "room-r"

	tests := []struct {
		name      string
		candidate DateInterval
		bookings  []ExistingBooking
		want      Availability
	}{
		{
			name:      "paid booking overlaps at boundary days",
			candidate: interval("2024-06-04", "2024-06-06"),
			bookings: []ExistingBooking{
				{RoomID: roomID, Interval: interval("2024-06-01", "2024-06-05"), PaymentStatus: true},
			},
			want: Conflict,
		},
		{
			name:      "unpaid booking never blocks",
			candidate: interval("2024-06-04", "2024-06-06"),
			bookings: []ExistingBooking{
				{RoomID: roomID, Interval: interval("2024-06-01", "2024-06-05"), PaymentStatus: false},
			},
			want: Available,
		},
		{
			name:      "paid booking of another room is ignored",
			candidate: interval("2024-06-04", "2024-06-06"),
			bookings: []ExistingBooking{
				{RoomID: "room-other", Interval: interval("2024-06-01", "2024-06-05"), PaymentStatus: true},
			},
			want: Available,
		},
		{
			name:      "no bookings",
			candidate: interval("2024-06-04", "2024-06-06"),
			want:      Available,
		},
		{
			name:      "second booking conflicts",
			candidate: interval("2024-06-10", "2024-06-12"),
			bookings: []ExistingBooking{
				{RoomID: roomID, Interval: interval("2024-06-01", "2024-06-05"), PaymentStatus: true},
				{RoomID: roomID, Interval: interval("2024-06-12", "2024-06-15"), PaymentStatus: true},
			},
			want: Conflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CheckAvailability(roomID, tt.candidate, tt.bookings)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCheckAvailability_InvalidCandidate(t *testing.T) {
	_, err := CheckAvailability("room-r", interval("2024-06-06", "2024-06-04"), nil)
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestCheckAvailability_InvalidExistingBooking(t *testing.T) {
	bookings := []ExistingBooking{
		{RoomID: "room-r", Interval: interval("2024-06-06", "2024-06-01"), PaymentStatus: true},
	}
	_, err := CheckAvailability("room-r", interval("2024-06-01", "2024-06-02"), bookings)
	assert.ErrorIs(t, err, ErrInvalidRange)
}

// Random paid and unpaid bookings are checked against a day-set oracle:
// a candidate is rejected exactly when it shares a calendar day with a paid booking.
func TestCheckAvailability_NoDoubleBooking(t *testing.T) {
	const roomID = "room-r"
	rnd := rand.New(rand.NewSource(20240601))
	base := date("2024-06-01")

	randomInterval := func() DateInterval {
		start := base.AddDate(0, 0, rnd.Intn(90))
		return DateInterval{Start: start, End: start.AddDate(0, 0, rnd.Intn(10))}
	}

	for round := 0; round < 200; round++ {
		bookings := make([]ExistingBooking, 0, 8)
		paidDays := make(map[time.Time]struct{})

		for i := rnd.Intn(8); i > 0; i-- {
			b := ExistingBooking{RoomID: roomID, Interval: randomInterval(), PaymentStatus: rnd.Intn(2) == 0}
			bookings = append(bookings, b)
			if b.PaymentStatus {
				for _, d := range b.Interval.Days() {
					paidDays[d] = struct{}{}
				}
			}
		}

		for c := 0; c < 20; c++ {
			candidate := randomInterval()

			want := Available
			for _, d := range candidate.Days() {
				if _, ok := paidDays[d]; ok {
					want = Conflict
					break
				}
			}

			got, err := CheckAvailability(roomID, candidate, bookings)
			require.NoError(t, err)
			require.Equal(t, want, got, "round %d candidate %s", round, candidate)
		}
	}
}
