package get_booking

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/bookings"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/bookings/models"
)

const (
	msgInvalidBookingID = "bookingId должен быть UUID"
	msgNotFound         = "бронирование не найдено"
	msgMissingUserID    = "требуется авторизация гостя или владельца отеля"
	msgNotParticipant   = "бронирование доступно только гостю и владельцу отеля"
)

// Роли участника бронирования в логах
const (
	roleGuest      = "guest"
	roleHotelOwner = "hotel_owner"
)

// Handler отдает карточку бронирования одному из двух участников:
// гостю, который бронировал номер, или владельцу отеля
type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["bookingId"]
	if _, err := uuid.Parse(bookingID); err != nil {
		h.logger.Warn("GET /bookings/{id} - bookingId=%q is not a UUID: %v", bookingID, err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	viewerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /bookings/{id} - Anonymous request for booking_id=%s", bookingID)
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Сервис сверяет viewerID с гостем и владельцем отеля
	booking, err := h.service.GetByID(r.Context(), bookingID, viewerID)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("GET /bookings/{id} - No booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /bookings/{id} - user_id=%s is neither guest nor hotel owner of booking_id=%s", viewerID, bookingID)
			handlers.RespondForbidden(w, msgNotParticipant)

		default:
			h.logger.Error("GET /bookings/{id} - Failed to load booking_id=%s: %v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings/{id} - booking_id=%s shown to %s user_id=%s (room=%s, state=%s)",
		bookingID, viewerRole(booking, viewerID), viewerID, booking.RoomID, booking.SettlementState)
	handlers.RespondJSON(w, http.StatusOK, booking)
}

// viewerRole владелец, бронирующий номер в своем же отеле, считается гостем
func viewerRole(booking *models.BookingResponse, viewerID string) string {
	if booking.UserID != viewerID && booking.HotelOwnerID == viewerID {
		return roleHotelOwner
	}
	return roleGuest
}
