package session

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// sessionModel JSON-представление сессии в redis
type sessionModel struct {
	SessionID         string    `json:"sessionId"`
	UserID            string    `json:"userId"`
	RoomID            string    `json:"roomId"`
	StartDate         string    `json:"startDate"`
	EndDate           string    `json:"endDate"`
	BreakfastIncluded bool      `json:"breakfastIncluded"`
	TotalPrice        int64     `json:"totalPrice"`
	PaymentIntentID   string    `json:"paymentIntentId"`
	ClientSecret      string    `json:"clientSecret"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

func toModel(s *domain.BookingSession) sessionModel {
	return sessionModel{
		SessionID:         s.SessionID,
		UserID:            s.UserID,
		RoomID:            s.Draft.RoomID,
		StartDate:         s.Draft.Interval.Start.Format(domain.DateFormat),
		EndDate:           s.Draft.Interval.End.Format(domain.DateFormat),
		BreakfastIncluded: s.Draft.BreakfastIncluded,
		TotalPrice:        s.Draft.TotalPrice,
		PaymentIntentID:   s.Intent.PaymentIntentID,
		ClientSecret:      s.Intent.ClientSecret,
		UpdatedAt:         s.UpdatedAt.UTC(),
	}
}

func (m sessionModel) toDomain() (*domain.BookingSession, error) {
	interval, err := domain.ParseDateInterval(m.StartDate, m.EndDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	return &domain.BookingSession{
		SessionID: m.SessionID,
		UserID:    m.UserID,
		Draft: domain.BookingDraft{
			RoomID:            m.RoomID,
			Interval:          interval,
			BreakfastIncluded: m.BreakfastIncluded,
			TotalPrice:        m.TotalPrice,
		},
		Intent: domain.PaymentIntentRef{
			PaymentIntentID: m.PaymentIntentID,
			ClientSecret:    m.ClientSecret,
		},
		UpdatedAt: m.UpdatedAt,
	}, nil
}
