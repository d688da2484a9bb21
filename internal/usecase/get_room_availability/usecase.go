package get_room_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	roomRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/room"
)

// UseCase use case предварительной проверки доступности и расчета цены.
// Результат носит рекомендательный характер: окончательная проверка выполняется при подтверждении оплаты.
type UseCase struct {
	roomRepo     RoomRepository
	bookingRepo  BookingRepository
	currency     string
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(roomRepo RoomRepository, bookingRepo BookingRepository, currency string, logger Logger) *UseCase {
	return &UseCase{
		roomRepo:     roomRepo,
		bookingRepo:  bookingRepo,
		currency:     currency,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case проверки доступности комнаты
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetRoomAvailability: room=%s, dates=%s..%s, breakfast=%t",
		req.RoomID, req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat), req.BreakfastIncluded)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetRoomAvailability: validation failed: %v", err)
		return nil, err
	}

	interval, err := domain.NewDateInterval(req.StartDate, req.EndDate)
	if err != nil {
		uc.logger.Warn("GetRoomAvailability: invalid dates: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	if err := validateDate(interval, now); err != nil {
		uc.logger.Warn("GetRoomAvailability: %v", err)
		return nil, err
	}

	// 2. Получаем комнату
	room, err := uc.roomRepo.GetByID(ctx, req.RoomID)
	if err != nil {
		if errors.Is(err, roomRepo.ErrRoomNotFound) {
			uc.logger.Warn("GetRoomAvailability: room id=%s not found", req.RoomID)
			return nil, ErrRoomNotFound
		}
		uc.logger.Error("GetRoomAvailability: failed to get room id=%s: %v", req.RoomID, err)
		return nil, fmt.Errorf("%w: failed to get room: %v", domain.ErrPersistence, err)
	}

	// 3. Цена по той же функции, что и при создании бронирования
	price, err := domain.QuoteRoom(room, interval, req.BreakfastIncluded)
	if err != nil {
		uc.logger.Warn("GetRoomAvailability: cannot price room=%s %s: %v", room.ID, interval, err)
		return nil, err
	}

	// 4. Оплаченные бронирования комнаты
	paid, err := uc.bookingRepo.GetByRoomID(ctx, room.ID, true)
	if err != nil {
		uc.logger.Error("GetRoomAvailability: failed to get bookings for room=%s: %v", room.ID, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", domain.ErrPersistence, err)
	}

	existing := domain.ToExisting(paid)

	availability, err := domain.CheckAvailability(room.ID, interval, existing)
	if err != nil {
		uc.logger.Error("GetRoomAvailability: availability check failed for room=%s: %v", room.ID, err)
		return nil, err
	}

	calendar := domain.BuildRoomCalendar(room.ID, interval, existing)

	uc.logger.Info("GetRoomAvailability: room=%s %s is %s, price=%d %s, booked %d of %d days",
		room.ID, interval, availability, price, uc.currency, len(calendar.BookedDates()), len(calendar.Days))

	return &Response{
		RoomID:            room.ID,
		Interval:          interval,
		Nights:            interval.Nights(),
		Availability:      availability,
		BreakfastIncluded: req.BreakfastIncluded && room.OffersBreakfast(),
		TotalPrice:        price,
		Currency:          uc.currency,
		Calendar:          calendar,
		BookedIntervals:   upcoming(paid, now),
	}, nil
}

// upcoming интервалы оплаченных бронирований, которые еще не закончились
func upcoming(bookings []*domain.Booking, now time.Time) []domain.DateInterval {
	today := domain.ToDate(now)
	intervals := make([]domain.DateInterval, 0, len(bookings))
	for _, b := range bookings {
		if b.Interval().End.Before(today) {
			continue
		}
		intervals = append(intervals, b.Interval())
	}
	return intervals
}
