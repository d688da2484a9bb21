package stripe_webhook

import (
	"errors"
	"io"
	"net/http"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/integrations/stripeclient"
	confirmBooking "github.com/m04kA/SMC-RoomBookingService/internal/usecase/confirm_booking"
	failBooking "github.com/m04kA/SMC-RoomBookingService/internal/usecase/fail_booking"
)

const (
	msgInvalidPayload     = "некорректное тело события"
	msgInvalidSignature   = "некорректная подпись события"
	msgStorageUnavailable = "сервис временно недоступен"
	msgProcessorError     = "платежная система недоступна"
)

type Handler struct {
	parser  EventParser
	confirm ConfirmBookingUseCase
	fail    FailBookingUseCase
	logger  Logger
}

func NewHandler(parser EventParser, confirm ConfirmBookingUseCase, fail FailBookingUseCase, logger Logger) *Handler {
	return &Handler{
		parser:  parser,
		confirm: confirm,
		fail:    fail,
		logger:  logger,
	}
}

// Handle POST /api/v1/webhooks/stripe
// Ошибки 5xx заставляют Stripe повторить доставку; окончательные отказы подтверждаются 200.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxPayloadBytes))
	if err != nil {
		h.logger.Warn("POST /webhooks/stripe - Failed to read body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPayload)
		return
	}

	event, err := h.parser.Parse(payload, r.Header.Get(SignatureHeader))
	if err != nil {
		switch {
		case errors.Is(err, stripeclient.ErrInvalidSignature):
			h.logger.Warn("POST /webhooks/stripe - Invalid signature: %v", err)
			handlers.RespondBadRequest(w, msgInvalidSignature)
		default:
			h.logger.Warn("POST /webhooks/stripe - Invalid payload: %v", err)
			handlers.RespondBadRequest(w, msgInvalidPayload)
		}
		return
	}

	switch event.Type {
	case stripeclient.EventPaymentIntentSucceeded:
		h.handleSucceeded(w, r, event)
	case stripeclient.EventPaymentIntentPaymentFailed:
		h.handleFailed(w, r, event)
	default:
		h.logger.Info("POST /webhooks/stripe - Skipping event: id=%s, type=%s", event.ID, event.Type)
		handlers.RespondJSON(w, http.StatusOK, AckResponse{Received: true, Result: resultIgnored})
	}
}

func (h *Handler) handleSucceeded(w http.ResponseWriter, r *http.Request, event *stripeclient.WebhookEvent) {
	result, err := h.confirm.Execute(r.Context(), &confirmBooking.Request{PaymentIntentID: event.Intent.ID})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrPriceMismatch):
			// Отказ уже зафиксирован в бронировании
			h.logger.Warn("POST /webhooks/stripe - Payment rejected: event=%s, intent=%s, error=%v", event.ID, event.Intent.ID, err)
			handlers.RespondJSON(w, http.StatusOK, AckResponse{Received: true, Result: resultRejected})

		case errors.Is(err, confirmBooking.ErrBookingNotFound), errors.Is(err, confirmBooking.ErrPaymentNotCompleted),
			errors.Is(err, confirmBooking.ErrInvalidInput):
			h.logger.Warn("POST /webhooks/stripe - Event ignored: event=%s, intent=%s, error=%v", event.ID, event.Intent.ID, err)
			handlers.RespondJSON(w, http.StatusOK, AckResponse{Received: true, Result: resultIgnored})

		case errors.Is(err, domain.ErrProcessor):
			h.logger.Error("POST /webhooks/stripe - Processor error: event=%s, error=%v", event.ID, err)
			handlers.RespondBadGateway(w, msgProcessorError)

		default:
			h.logger.Error("POST /webhooks/stripe - Failed to confirm: event=%s, intent=%s, error=%v", event.ID, event.Intent.ID, err)
			handlers.RespondServiceUnavailable(w, msgStorageUnavailable)
		}
		return
	}

	h.logger.Info("POST /webhooks/stripe - Payment confirmed: event=%s, booking_id=%s, repeated=%t",
		event.ID, result.BookingID, result.AlreadyConfirmed)
	handlers.RespondJSON(w, http.StatusOK, AckResponse{Received: true, Result: resultConfirmed})
}

func (h *Handler) handleFailed(w http.ResponseWriter, r *http.Request, event *stripeclient.WebhookEvent) {
	result, err := h.fail.Execute(r.Context(), &failBooking.Request{
		PaymentIntentID: event.Intent.ID,
		Message:         event.Intent.FailureMessage,
	})
	if err != nil {
		switch {
		case errors.Is(err, failBooking.ErrBookingNotFound), errors.Is(err, failBooking.ErrInvalidInput):
			h.logger.Warn("POST /webhooks/stripe - Event ignored: event=%s, intent=%s, error=%v", event.ID, event.Intent.ID, err)
			handlers.RespondJSON(w, http.StatusOK, AckResponse{Received: true, Result: resultIgnored})
		default:
			h.logger.Error("POST /webhooks/stripe - Failed to mark payment failure: event=%s, error=%v", event.ID, err)
			handlers.RespondServiceUnavailable(w, msgStorageUnavailable)
		}
		return
	}

	outcome := resultFailed
	if result.Ignored {
		outcome = resultIgnored
	}

	h.logger.Info("POST /webhooks/stripe - Payment failure handled: event=%s, booking_id=%s, result=%s",
		event.ID, result.BookingID, outcome)
	handlers.RespondJSON(w, http.StatusOK, AckResponse{Received: true, Result: outcome})
}
