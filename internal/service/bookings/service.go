package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/bookings/models"
)

// Service сервис чтения бронирований
type Service struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
// Бронирование видят только гость и владелец отеля
func (s *Service) GetByID(ctx context.Context, id string, userID string) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%s for user=%s", id, userID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%s not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if !booking.IsVisibleTo(userID) {
		s.logger.Warn("GetByID: access denied for user=%s to booking id=%s", userID, id)
		return nil, ErrAccessDenied
	}

	s.logger.Info("GetByID: successfully fetched booking id=%s", id)
	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает историю бронирований гостя, новые первыми
// Опционально фильтрует по состоянию оплаты
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%s, state=%v", req.UserID, req.State)

	if req.UserID == "" {
		return nil, fmt.Errorf("%w: userId is required", ErrInvalidInput)
	}

	state, err := parseState(req.State)
	if err != nil {
		s.logger.Warn("GetUserBookings: invalid state=%s for user=%s", *req.State, req.UserID)
		return nil, err
	}

	bookings, err := s.bookingRepo.GetByUserID(ctx, req.UserID)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%s: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	bookings = filter(bookings, func(b *domain.Booking) bool {
		return state == nil || b.SettlementState == *state
	})

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%s", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// GetOwnerBookings получает бронирования всех отелей владельца, новые первыми
// Поддерживает фильтрацию по отелю, состоянию оплаты и только оплаченным
func (s *Service) GetOwnerBookings(ctx context.Context, req *models.GetOwnerBookingsRequest) (*models.BookingListResponse, error) {
	logMsg := fmt.Sprintf("GetOwnerBookings: fetching bookings for owner=%s", req.OwnerID)
	if req.HotelID != nil {
		logMsg += fmt.Sprintf(", hotel=%s", *req.HotelID)
	}
	if req.State != nil {
		logMsg += fmt.Sprintf(", state=%s", *req.State)
	}
	if req.PaidOnly {
		logMsg += ", paidOnly=true"
	}
	s.logger.Info(logMsg)

	if req.OwnerID == "" {
		return nil, fmt.Errorf("%w: ownerId is required", ErrInvalidInput)
	}

	state, err := parseState(req.State)
	if err != nil {
		s.logger.Warn("GetOwnerBookings: invalid state=%s for owner=%s", *req.State, req.OwnerID)
		return nil, err
	}

	bookings, err := s.bookingRepo.GetByHotelOwnerID(ctx, req.OwnerID)
	if err != nil {
		s.logger.Error("GetOwnerBookings: repository error for owner=%s: %v", req.OwnerID, err)
		return nil, fmt.Errorf("%w: GetOwnerBookings - repository error: %v", ErrInternal, err)
	}

	bookings = filter(bookings, func(b *domain.Booking) bool {
		if req.HotelID != nil && b.HotelID != *req.HotelID {
			return false
		}
		if req.PaidOnly && !b.IsPaid() {
			return false
		}
		return state == nil || b.SettlementState == *state
	})

	s.logger.Info("GetOwnerBookings: successfully fetched %d bookings for owner=%s", len(bookings), req.OwnerID)
	return models.FromDomainBookingList(bookings), nil
}

// Вспомогательные методы

func parseState(raw *string) (*domain.SettlementState, error) {
	if raw == nil {
		return nil, nil
	}
	state, err := models.ToDomainSettlementState(*raw)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid state", ErrInvalidInput)
	}
	return &state, nil
}

// filter сохраняет порядок репозитория (booked_at DESC)
func filter(bookings []*domain.Booking, keep func(b *domain.Booking) bool) []*domain.Booking {
	result := make([]*domain.Booking, 0, len(bookings))
	for _, b := range bookings {
		if keep(b) {
			result = append(result, b)
		}
	}
	return result
}
