package domain

import "time"

// CalendarDay one day of a room calendar
type CalendarDay struct {
	Date   time.Time
	Booked bool
}

// RoomCalendar day-by-day occupancy of a room over a window, built from paid bookings
type RoomCalendar struct {
	RoomID string
	Days   []CalendarDay
}

// BuildRoomCalendar marks every day of window covered by a paid booking of roomID
func BuildRoomCalendar(roomID string, window DateInterval, bookings []ExistingBooking) RoomCalendar {
	booked := make(map[time.Time]struct{})
	for _, b := range bookings {
		if !b.PaymentStatus || b.RoomID != roomID {
			continue
		}
		for _, day := range b.Interval.Days() {
			booked[day] = struct{}{}
		}
	}

	days := window.Days()
	calendar := RoomCalendar{RoomID: roomID, Days: make([]CalendarDay, 0, len(days))}
	for _, day := range days {
		_, isBooked := booked[day]
		calendar.Days = append(calendar.Days, CalendarDay{Date: day, Booked: isBooked})
	}
	return calendar
}

// BookedDates dates that cannot be picked
func (c RoomCalendar) BookedDates() []time.Time {
	var dates []time.Time
	for _, d := range c.Days {
		if d.Booked {
			dates = append(dates, d.Date)
		}
	}
	return dates
}

// IsFull returns true if every day of the window is taken
func (c RoomCalendar) IsFull() bool {
	return len(c.Days) > 0 && len(c.BookedDates()) == len(c.Days)
}

// OccupancyRate returns the occupancy rate as a percentage (0-100)
func (c RoomCalendar) OccupancyRate() float64 {
	if len(c.Days) == 0 {
		return 0
	}
	return float64(len(c.BookedDates())) / float64(len(c.Days)) * 100
}
