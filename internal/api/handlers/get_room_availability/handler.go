package get_room_availability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	getRoomAvailability "github.com/m04kA/SMC-RoomBookingService/internal/usecase/get_room_availability"
)

const (
	msgMissingRoomID      = "ID комнаты обязателен"
	msgMissingDates       = "startDate и endDate обязательны"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidBreakfast   = "некорректное значение breakfast"
	msgInvalidRange       = "дата выезда раньше даты заезда"
	msgInvalidDuration    = "бронирование должно быть не меньше одной ночи"
	msgDateInPast         = "дата заезда уже прошла"
	msgRoomNotFound       = "комната не найдена"
	msgStorageUnavailable = "сервис временно недоступен, попробуйте позже"
)

type Handler struct {
	useCase GetRoomAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetRoomAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/rooms/{roomId}/availability
// Query params: startDate, endDate (required, YYYY-MM-DD), breakfast (optional bool)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	roomID := mux.Vars(r)["roomId"]
	if roomID == "" {
		handlers.RespondBadRequest(w, msgMissingRoomID)
		return
	}

	query := r.URL.Query()
	startStr, endStr := query.Get("startDate"), query.Get("endDate")
	if startStr == "" || endStr == "" {
		h.logger.Warn("GET /rooms/{id}/availability - Missing dates: room_id=%s", roomID)
		handlers.RespondBadRequest(w, msgMissingDates)
		return
	}

	startDate, err := time.Parse(domain.DateFormat, startStr)
	if err != nil {
		h.logger.Warn("GET /rooms/{id}/availability - Invalid startDate: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	endDate, err := time.Parse(domain.DateFormat, endStr)
	if err != nil {
		h.logger.Warn("GET /rooms/{id}/availability - Invalid endDate: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	breakfast := false
	if v := query.Get("breakfast"); v != "" {
		breakfast, err = strconv.ParseBool(v)
		if err != nil {
			h.logger.Warn("GET /rooms/{id}/availability - Invalid breakfast flag: %v", err)
			handlers.RespondBadRequest(w, msgInvalidBreakfast)
			return
		}
	}

	result, err := h.useCase.Execute(r.Context(), &getRoomAvailability.Request{
		RoomID:            roomID,
		StartDate:         startDate,
		EndDate:           endDate,
		BreakfastIncluded: breakfast,
	})
	if err != nil {
		switch {
		case errors.Is(err, getRoomAvailability.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgMissingDates)
		case errors.Is(err, domain.ErrInvalidRange):
			handlers.RespondBadRequest(w, msgInvalidRange)
		case errors.Is(err, domain.ErrInvalidDuration):
			handlers.RespondBadRequest(w, msgInvalidDuration)
		case errors.Is(err, getRoomAvailability.ErrDateInPast):
			handlers.RespondBadRequest(w, msgDateInPast)
		case errors.Is(err, getRoomAvailability.ErrRoomNotFound):
			h.logger.Warn("GET /rooms/{id}/availability - Room not found: room_id=%s", roomID)
			handlers.RespondNotFound(w, msgRoomNotFound)
		case errors.Is(err, domain.ErrPersistence):
			h.logger.Error("GET /rooms/{id}/availability - Storage error: room_id=%s, error=%v", roomID, err)
			handlers.RespondServiceUnavailable(w, msgStorageUnavailable)
		default:
			h.logger.Error("GET /rooms/{id}/availability - Failed to check availability: room_id=%s, error=%v", roomID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /rooms/{id}/availability - Success: room_id=%s, availability=%s", roomID, result.Availability)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
