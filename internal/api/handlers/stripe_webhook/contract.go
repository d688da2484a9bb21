package stripe_webhook

import (
	"context"

	"github.com/m04kA/SMC-RoomBookingService/internal/integrations/stripeclient"
	confirmBooking "github.com/m04kA/SMC-RoomBookingService/internal/usecase/confirm_booking"
	failBooking "github.com/m04kA/SMC-RoomBookingService/internal/usecase/fail_booking"
)

type EventParser interface {
	Parse(payload []byte, signature string) (*stripeclient.WebhookEvent, error)
}

type ConfirmBookingUseCase interface {
	Execute(ctx context.Context, req *confirmBooking.Request) (*confirmBooking.Response, error)
}

type FailBookingUseCase interface {
	Execute(ctx context.Context, req *failBooking.Request) (*failBooking.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
