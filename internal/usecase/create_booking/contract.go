package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/intents"
)

// RoomRepository интерфейс репозитория комнат
type RoomRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Room, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByRoomID(ctx context.Context, roomID string, paidOnly bool) ([]*domain.Booking, error)
	GetByPaymentIntentID(ctx context.Context, paymentIntentID string) (*domain.Booking, error)
	UpsertByPaymentIntent(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// IntentCoordinator интерфейс координатора payment intent
type IntentCoordinator interface {
	CreateOrUpdateIntent(ctx context.Context, draft intents.IntentDraft, existingID string) (domain.PaymentIntentRef, error)
}

// SessionStore интерфейс хранилища сессий бронирования
type SessionStore interface {
	Get(ctx context.Context, userID, sessionID string) (*domain.BookingSession, error)
	Save(ctx context.Context, session *domain.BookingSession) error
}

// Metrics счетчик переходов settlement
type Metrics interface {
	RecordSettlement(state string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
