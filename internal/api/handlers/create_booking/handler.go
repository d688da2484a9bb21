package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	createBooking "github.com/m04kA/SMC-RoomBookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidInput       = "не заполнены обязательные поля"
	msgInvalidRange       = "дата выезда раньше даты заезда"
	msgInvalidDuration    = "бронирование должно быть не меньше одной ночи"
	msgDateInPast         = "дата заезда уже прошла"
	msgPriceMismatch      = "цена изменилась, обновите страницу"
	msgRoomNotFound       = "комната не найдена"
	msgBookingNotFound    = "бронирование не найдено"
	msgForbidden          = "доступ запрещен"
	msgDatesUnavailable   = "выбранные даты уже заняты"
	msgAlreadyPaid        = "бронирование уже оплачено"
	msgNotRetryable       = "бронирование закрыто и не может быть оплачено"
	msgProcessorError     = "платежная система недоступна, попробуйте позже"
	msgStorageUnavailable = "сервис временно недоступен, попробуйте позже"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем пользователя из контекста (через middleware Auth)
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом дат)
	useCaseReq, err := req.ToUseCaseRequest(identity, r.Header.Get(SessionHeader))
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse dates: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		// Обработка ошибок use case
		switch {
		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%s, error=%v", identity.UserID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, domain.ErrInvalidRange):
			h.logger.Warn("POST /bookings - Invalid range: user_id=%s, room_id=%s", identity.UserID, req.RoomID)
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, domain.ErrInvalidDuration):
			h.logger.Warn("POST /bookings - Invalid duration: user_id=%s, room_id=%s", identity.UserID, req.RoomID)
			handlers.RespondBadRequest(w, msgInvalidDuration)

		case errors.Is(err, createBooking.ErrDateInPast):
			h.logger.Warn("POST /bookings - Start date in the past: user_id=%s, room_id=%s", identity.UserID, req.RoomID)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, domain.ErrPriceMismatch):
			h.logger.Warn("POST /bookings - Price mismatch: user_id=%s, room_id=%s, declared=%d",
				identity.UserID, req.RoomID, req.TotalPrice)
			handlers.RespondBadRequest(w, msgPriceMismatch)

		case errors.Is(err, createBooking.ErrRoomNotFound):
			h.logger.Warn("POST /bookings - Room not found: room_id=%s", req.RoomID)
			handlers.RespondNotFound(w, msgRoomNotFound)

		case errors.Is(err, createBooking.ErrBookingNotFound):
			h.logger.Warn("POST /bookings - Booking not found for payment intent: user_id=%s", identity.UserID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, createBooking.ErrAccessDenied):
			h.logger.Warn("POST /bookings - Access denied: user_id=%s", identity.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, domain.ErrConflict):
			h.logger.Warn("POST /bookings - Dates unavailable: user_id=%s, room_id=%s", identity.UserID, req.RoomID)
			handlers.RespondConflict(w, msgDatesUnavailable)

		case errors.Is(err, createBooking.ErrAlreadyPaid):
			h.logger.Warn("POST /bookings - Already paid: user_id=%s", identity.UserID)
			handlers.RespondConflict(w, msgAlreadyPaid)

		case errors.Is(err, createBooking.ErrPaymentNotRetryable):
			h.logger.Warn("POST /bookings - Booking closed: user_id=%s", identity.UserID)
			handlers.RespondConflict(w, msgNotRetryable)

		case errors.Is(err, domain.ErrProcessor):
			h.logger.Error("POST /bookings - Payment processor error: user_id=%s, error=%v", identity.UserID, err)
			handlers.RespondBadGateway(w, msgProcessorError)

		case errors.Is(err, domain.ErrPersistence):
			h.logger.Error("POST /bookings - Storage error: user_id=%s, error=%v", identity.UserID, err)
			handlers.RespondServiceUnavailable(w, msgStorageUnavailable)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%s, room_id=%s, error=%v",
				identity.UserID, req.RoomID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Booking awaits payment: booking_id=%s, user_id=%s, intent=%s",
		result.BookingID, identity.UserID, result.PaymentIntentID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
