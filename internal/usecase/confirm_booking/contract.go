package confirm_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/integrations/stripeclient"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByPaymentIntentID(ctx context.Context, paymentIntentID string) (*domain.Booking, error)
	GetByRoomID(ctx context.Context, roomID string, paidOnly bool) ([]*domain.Booking, error)
	MarkPaid(ctx context.Context, paymentIntentID string, paidAt time.Time) (*domain.Booking, error)
	MarkFailed(ctx context.Context, paymentIntentID string, reason string) (*domain.Booking, error)
}

// RoomRepository интерфейс репозитория комнат (в транзакции блокирует строку комнаты)
type RoomRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Room, error)
}

// IntentReader читает актуальное состояние payment intent у процессора
type IntentReader interface {
	GetIntent(ctx context.Context, id string) (*stripeclient.Intent, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics счетчик переходов settlement
type Metrics interface {
	RecordSettlement(state string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
