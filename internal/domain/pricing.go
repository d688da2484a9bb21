package domain

import "fmt"

// ComputePrice total reservation price in currency minor units.
// price = nights*roomPrice, plus nights*breakfastPrice when breakfast is
// included and offered (non-nil and > 0).
func ComputePrice(nights int, roomPrice int64, breakfastPrice *int64, breakfastIncluded bool) (int64, error) {
	if nights < 1 {
		return 0, fmt.Errorf("%w: got %d nights", ErrInvalidDuration, nights)
	}

	n := int64(nights)
	total := n * roomPrice

	if breakfastIncluded && breakfastPrice != nil && *breakfastPrice > 0 {
		total += n * *breakfastPrice
	}

	return total, nil
}

// QuoteRoom prices a stay in room over interval
func QuoteRoom(room *Room, interval DateInterval, breakfastIncluded bool) (int64, error) {
	if err := interval.Validate(); err != nil {
		return 0, err
	}
	return ComputePrice(interval.Nights(), room.RoomPrice, room.BreakfastPrice, breakfastIncluded)
}

// VerifyDeclaredPrice rejects a client-declared or processor-reported amount
// that differs from the server-side computation.
func VerifyDeclaredPrice(computed, declared int64) error {
	if computed != declared {
		return fmt.Errorf("%w: computed %d, declared %d", ErrPriceMismatch, computed, declared)
	}
	return nil
}
