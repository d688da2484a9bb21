package get_owner_bookings

import (
	"fmt"
	"strconv"

	"github.com/m04kA/SMC-RoomBookingService/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
func ToServiceRequest(ownerID string, hotelID string, state string, paidOnlyStr string) (*models.GetOwnerBookingsRequest, error) {
	req := &models.GetOwnerBookingsRequest{
		OwnerID:  ownerID,
		PaidOnly: false, // По умолчанию все попытки бронирования
	}

	if hotelID != "" {
		req.HotelID = &hotelID
	}

	if state != "" {
		req.State = &state
	}

	// Парсим paidOnly если указан
	if paidOnlyStr != "" {
		paidOnly, err := strconv.ParseBool(paidOnlyStr)
		if err != nil {
			return nil, fmt.Errorf("invalid paidOnly value: %w", err)
		}
		req.PaidOnly = paidOnly
	}

	return req, nil
}
