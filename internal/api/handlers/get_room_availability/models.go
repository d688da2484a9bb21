package get_room_availability

import (
	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	getRoomAvailability "github.com/m04kA/SMC-RoomBookingService/internal/usecase/get_room_availability"
)

// IntervalResponse интервал дат
type IntervalResponse struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// DayResponse день календаря комнаты
type DayResponse struct {
	Date   string `json:"date"`
	Booked bool   `json:"booked"`
}

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	RoomID            string             `json:"roomId"`
	StartDate         string             `json:"startDate"`
	EndDate           string             `json:"endDate"`
	Nights            int                `json:"nights"`
	Available         bool               `json:"available"`
	BreakfastIncluded bool               `json:"breakfastIncluded"`
	TotalPrice        int64              `json:"totalPrice"`
	Currency          string             `json:"currency"`
	FullyBooked       bool               `json:"fullyBooked"`
	OccupancyRate     float64            `json:"occupancyRate"`
	Days              []DayResponse      `json:"days"`
	BookedIntervals   []IntervalResponse `json:"bookedIntervals"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getRoomAvailability.Response) *AvailabilityResponse {
	days := make([]DayResponse, 0, len(resp.Calendar.Days))
	for _, d := range resp.Calendar.Days {
		days = append(days, DayResponse{Date: d.Date.Format(domain.DateFormat), Booked: d.Booked})
	}

	booked := make([]IntervalResponse, 0, len(resp.BookedIntervals))
	for _, i := range resp.BookedIntervals {
		booked = append(booked, IntervalResponse{
			StartDate: i.Start.Format(domain.DateFormat),
			EndDate:   i.End.Format(domain.DateFormat),
		})
	}

	return &AvailabilityResponse{
		RoomID:            resp.RoomID,
		StartDate:         resp.Interval.Start.Format(domain.DateFormat),
		EndDate:           resp.Interval.End.Format(domain.DateFormat),
		Nights:            resp.Nights,
		Available:         resp.Availability == domain.Available,
		BreakfastIncluded: resp.BreakfastIncluded,
		TotalPrice:        resp.TotalPrice,
		Currency:          resp.Currency,
		FullyBooked:       resp.Calendar.IsFull(),
		OccupancyRate:     resp.Calendar.OccupancyRate(),
		Days:              days,
		BookedIntervals:   booked,
	}
}
