package confirm_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	confirmBooking "github.com/m04kA/SMC-RoomBookingService/internal/usecase/confirm_booking"
)

const (
	msgMissingUserID      = "отсутствует ID пользователя"
	msgMissingIntentID    = "не указан paymentIntentId"
	msgBookingNotFound    = "бронирование не найдено"
	msgForbidden          = "доступ запрещен"
	msgPaymentNotComplete = "оплата еще не завершена"
	msgDatesTaken         = "выбранные даты уже заняты, платеж будет возвращен"
	msgAmountMismatch     = "сумма платежа не совпадает со стоимостью бронирования"
	msgProcessorError     = "платежная система недоступна, попробуйте позже"
	msgStorageUnavailable = "сервис временно недоступен, попробуйте позже"
)

type Handler struct {
	useCase ConfirmBookingUseCase
	logger  Logger
}

func NewHandler(useCase ConfirmBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/payment-intents/{paymentIntentId}/confirm
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /bookings/payment-intents/{id}/confirm - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	intentID := mux.Vars(r)["paymentIntentId"]
	if intentID == "" {
		handlers.RespondBadRequest(w, msgMissingIntentID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &confirmBooking.Request{
		PaymentIntentID: intentID,
		UserID:          userID,
	})
	if err != nil {
		switch {
		case errors.Is(err, confirmBooking.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgMissingIntentID)

		case errors.Is(err, confirmBooking.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/payment-intents/{id}/confirm - Booking not found: intent=%s", intentID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, confirmBooking.ErrAccessDenied):
			h.logger.Warn("PATCH /bookings/payment-intents/{id}/confirm - Access denied: intent=%s, user_id=%s", intentID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, confirmBooking.ErrPaymentNotCompleted):
			h.logger.Info("PATCH /bookings/payment-intents/{id}/confirm - Payment pending: intent=%s", intentID)
			handlers.RespondError(w, http.StatusPaymentRequired, msgPaymentNotComplete)

		case errors.Is(err, domain.ErrConflict):
			h.logger.Warn("PATCH /bookings/payment-intents/{id}/confirm - Dates taken after payment: intent=%s", intentID)
			handlers.RespondConflict(w, msgDatesTaken)

		case errors.Is(err, domain.ErrPriceMismatch):
			h.logger.Error("PATCH /bookings/payment-intents/{id}/confirm - Amount mismatch: intent=%s, error=%v", intentID, err)
			handlers.RespondConflict(w, msgAmountMismatch)

		case errors.Is(err, domain.ErrProcessor):
			h.logger.Error("PATCH /bookings/payment-intents/{id}/confirm - Processor error: intent=%s, error=%v", intentID, err)
			handlers.RespondBadGateway(w, msgProcessorError)

		case errors.Is(err, domain.ErrPersistence):
			h.logger.Error("PATCH /bookings/payment-intents/{id}/confirm - Storage error: intent=%s, error=%v", intentID, err)
			handlers.RespondServiceUnavailable(w, msgStorageUnavailable)

		default:
			h.logger.Error("PATCH /bookings/payment-intents/{id}/confirm - Failed to confirm: intent=%s, error=%v", intentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/payment-intents/{id}/confirm - Success: booking_id=%s, intent=%s, repeated=%t",
		result.BookingID, intentID, result.AlreadyConfirmed)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
