package intents

import (
	"context"

	"github.com/m04kA/SMC-RoomBookingService/internal/integrations/stripeclient"
)

// PaymentProcessor интерфейс платежного процессора
type PaymentProcessor interface {
	CreateIntent(ctx context.Context, req stripeclient.IntentRequest) (*stripeclient.Intent, error)
	UpdateIntent(ctx context.Context, id string, req stripeclient.IntentRequest) (*stripeclient.Intent, error)
	GetIntent(ctx context.Context, id string) (*stripeclient.Intent, error)
}

// Metrics счетчик вызовов процессора
type Metrics interface {
	RecordProcessorCall(operation string, err error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
