package domain

// Room read-only room listing joined with its hotel
type Room struct {
	ID             string
	HotelID        string
	HotelOwnerID   string
	Title          string
	RoomPrice      int64  // per night, minor units
	BreakfastPrice *int64 // per night, nil when breakfast is not offered
}

// OffersBreakfast returns true when breakfast can be added to a stay
func (r *Room) OffersBreakfast() bool {
	return r.BreakfastPrice != nil && *r.BreakfastPrice > 0
}
