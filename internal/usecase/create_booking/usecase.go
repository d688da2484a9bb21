package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/booking"
	roomRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/room"
	sessionStore "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/session"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/intents"
)

// UseCase use case создания попытки бронирования: Draft -> Authorizing -> AwaitingConfirmation
type UseCase struct {
	roomRepo     RoomRepository
	bookingRepo  BookingRepository
	coordinator  IntentCoordinator
	sessions     SessionStore
	metrics      Metrics
	currency     string
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	roomRepo RoomRepository,
	bookingRepo BookingRepository,
	coordinator IntentCoordinator,
	sessions SessionStore,
	metrics Metrics,
	currency string,
	logger Logger,
) *UseCase {
	return &UseCase{
		roomRepo:     roomRepo,
		bookingRepo:  bookingRepo,
		coordinator:  coordinator,
		sessions:     sessions,
		metrics:      metrics,
		currency:     currency,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка доступности здесь предварительная: окончательная выполняется при подтверждении оплаты.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%s, room=%s, dates=%s..%s, breakfast=%t, session=%s, intent=%s",
		req.UserID, req.RoomID, req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat),
		req.BreakfastIncluded, req.SessionID, req.PaymentIntentID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	settlement := domain.NewSettlement()

	interval, err := domain.NewDateInterval(req.StartDate, req.EndDate)
	if err != nil {
		uc.logger.Warn("CreateBooking: invalid dates: %v", err)
		return nil, err
	}

	if interval.Start.Before(domain.ToDate(uc.timeProvider.Now())) {
		uc.logger.Warn("CreateBooking: start date %s is in the past", interval.Start.Format(domain.DateFormat))
		return nil, fmt.Errorf("%w: %s", ErrDateInPast, interval.Start.Format(domain.DateFormat))
	}

	// 2. Получаем комнату и пересчитываем цену на сервере
	room, err := uc.roomRepo.GetByID(ctx, req.RoomID)
	if err != nil {
		if errors.Is(err, roomRepo.ErrRoomNotFound) {
			uc.logger.Warn("CreateBooking: room id=%s not found", req.RoomID)
			return nil, ErrRoomNotFound
		}
		uc.logger.Error("CreateBooking: failed to get room id=%s: %v", req.RoomID, err)
		return nil, fmt.Errorf("%w: failed to get room: %v", domain.ErrPersistence, err)
	}

	price, err := domain.QuoteRoom(room, interval, req.BreakfastIncluded)
	if err != nil {
		uc.logger.Warn("CreateBooking: cannot price room=%s %s: %v", room.ID, interval, err)
		return nil, err
	}

	if err := domain.VerifyDeclaredPrice(price, req.TotalPrice); err != nil {
		uc.logger.Warn("CreateBooking: declared price rejected for room=%s: %v", room.ID, err)
		return nil, err
	}

	// 3. Authorizing: проверяем доступность до любых обращений к процессору
	if err := settlement.Transition(domain.SettlementAuthorizing); err != nil {
		return nil, err
	}

	paid, err := uc.bookingRepo.GetByRoomID(ctx, room.ID, true)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get bookings for room=%s: %v", room.ID, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", domain.ErrPersistence, err)
	}

	availability, err := domain.CheckAvailability(room.ID, interval, domain.ToExisting(paid))
	if err != nil {
		uc.logger.Error("CreateBooking: availability check failed for room=%s: %v", room.ID, err)
		return nil, err
	}

	if availability == domain.Conflict {
		_ = settlement.Transition(domain.SettlementRejected)
		uc.metrics.RecordSettlement(string(settlement.State()))
		uc.logger.Warn("CreateBooking: room=%s is not available for %s", room.ID, interval)
		return nil, fmt.Errorf("%w: room %s, %s", domain.ErrConflict, room.ID, interval)
	}

	// 4. Определяем intent, который можно переиспользовать
	session := uc.loadSession(ctx, req)

	existingID, err := uc.reusableIntent(ctx, req, room.ID, session)
	if err != nil {
		return nil, err
	}

	draft := domain.BookingDraft{
		RoomID:            room.ID,
		Interval:          interval,
		BreakfastIncluded: req.BreakfastIncluded,
		TotalPrice:        price,
	}

	intentDraft := intents.IntentDraft{
		SessionID: req.SessionID,
		UserID:    req.UserID,
		Room:      room,
		Draft:     draft,
		Currency:  uc.currency,
	}

	ref, err := uc.coordinator.CreateOrUpdateIntent(ctx, intentDraft, existingID)
	if err != nil && existingID != "" && req.PaymentIntentID == "" &&
		(errors.Is(err, intents.ErrIntentNotFound) || errors.Is(err, intents.ErrIntentNotMutable)) {
		// intent из сессии больше нельзя использовать - начинаем заново
		uc.logger.Warn("CreateBooking: session intent=%s is unusable, creating a new one: %v", existingID, err)
		ref, err = uc.coordinator.CreateOrUpdateIntent(ctx, intentDraft, "")
	}
	if err != nil {
		uc.logger.Error("CreateBooking: failed to obtain payment intent for room=%s: %v", room.ID, err)
		return nil, err
	}

	// 5. AwaitingConfirmation: неоплаченное бронирование существует до движения денег
	if err := settlement.Transition(domain.SettlementAwaitingConfirmation); err != nil {
		return nil, err
	}

	booking := &domain.Booking{
		ID:                uuid.NewString(),
		HotelOwnerID:      room.HotelOwnerID,
		HotelID:           room.HotelID,
		RoomID:            room.ID,
		UserID:            req.UserID,
		UserName:          req.UserName,
		UserEmail:         req.UserEmail,
		StartDate:         interval.Start,
		EndDate:           interval.End,
		BreakfastIncluded: req.BreakfastIncluded,
		Currency:          uc.currency,
		TotalPrice:        price,
		PaymentIntentID:   ref.PaymentIntentID,
		SettlementState:   settlement.State(),
	}

	saved, err := uc.bookingRepo.UpsertByPaymentIntent(ctx, booking)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingAlreadyPaid) {
			uc.logger.Warn("CreateBooking: intent=%s already paid", ref.PaymentIntentID)
			return nil, ErrAlreadyPaid
		}
		if errors.Is(err, bookingRepo.ErrBookingClosed) {
			uc.logger.Warn("CreateBooking: booking for intent=%s is closed pending refund", ref.PaymentIntentID)
			return nil, ErrPaymentNotRetryable
		}
		uc.logger.Error("CreateBooking: failed to save booking for intent=%s: %v", ref.PaymentIntentID, err)
		return nil, fmt.Errorf("%w: failed to save booking: %v", domain.ErrPersistence, err)
	}

	uc.saveSession(ctx, req, draft, ref)
	uc.metrics.RecordSettlement(string(settlement.State()))

	uc.logger.Info("CreateBooking: booking id=%s awaits payment, intent=%s, amount=%d %s",
		saved.ID, ref.PaymentIntentID, price, uc.currency)

	return &Response{
		BookingID:       saved.ID,
		PaymentIntentID: ref.PaymentIntentID,
		ClientSecret:    ref.ClientSecret,
		Nights:          interval.Nights(),
		TotalPrice:      saved.TotalPrice,
		Currency:        saved.Currency,
		SettlementState: string(saved.SettlementState),
		BookedAt:        saved.BookedAt,
	}, nil
}

// reusableIntent возвращает ID intent для обновления или "" для создания нового.
// Явно переданный intent должен принадлежать пользователю и быть еще не оплачен.
func (uc *UseCase) reusableIntent(ctx context.Context, req *Request, roomID string, session *domain.BookingSession) (string, error) {
	if req.PaymentIntentID != "" {
		booking, err := uc.bookingRepo.GetByPaymentIntentID(ctx, req.PaymentIntentID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("CreateBooking: no booking for intent=%s", req.PaymentIntentID)
				return "", ErrBookingNotFound
			}
			return "", fmt.Errorf("%w: failed to get booking: %v", domain.ErrPersistence, err)
		}

		if booking.UserID != req.UserID {
			uc.logger.Warn("CreateBooking: user=%s tried to resume booking id=%s of user=%s",
				req.UserID, booking.ID, booking.UserID)
			return "", ErrAccessDenied
		}
		if booking.IsPaid() {
			return "", ErrAlreadyPaid
		}
		if !booking.CanRetryPayment() {
			uc.logger.Warn("CreateBooking: booking id=%s is closed (state=%s)", booking.ID, booking.SettlementState)
			return "", ErrPaymentNotRetryable
		}
		return req.PaymentIntentID, nil
	}

	if !session.SameRoom(roomID) {
		return "", nil
	}

	booking, err := uc.bookingRepo.GetByPaymentIntentID(ctx, session.Intent.PaymentIntentID)
	switch {
	case errors.Is(err, bookingRepo.ErrBookingNotFound):
		return session.Intent.PaymentIntentID, nil
	case err != nil:
		return "", fmt.Errorf("%w: failed to get booking: %v", domain.ErrPersistence, err)
	case !booking.CanRetryPayment():
		// оплаченный или закрытый intent не переиспользуется
		uc.logger.Info("CreateBooking: session intent=%s is closed, a new intent will be created", session.Intent.PaymentIntentID)
		return "", nil
	}

	return session.Intent.PaymentIntentID, nil
}

// loadSession сессия необязательна: при ее отсутствии или недоступности redis создается новый intent
func (uc *UseCase) loadSession(ctx context.Context, req *Request) *domain.BookingSession {
	if req.SessionID == "" {
		return nil
	}

	session, err := uc.sessions.Get(ctx, req.UserID, req.SessionID)
	if err != nil {
		if !errors.Is(err, sessionStore.ErrSessionNotFound) {
			uc.logger.Warn("CreateBooking: failed to load session=%s: %v", req.SessionID, err)
		}
		return nil
	}

	return session
}

func (uc *UseCase) saveSession(ctx context.Context, req *Request, draft domain.BookingDraft, ref domain.PaymentIntentRef) {
	if req.SessionID == "" {
		return
	}

	session := &domain.BookingSession{
		SessionID: req.SessionID,
		UserID:    req.UserID,
		Draft:     draft,
		Intent:    ref,
	}
	session.UpdatedAt = uc.timeProvider.Now().UTC()

	if err := uc.sessions.Save(ctx, session); err != nil {
		uc.logger.Warn("CreateBooking: failed to save session=%s: %v", req.SessionID, err)
	}
}
