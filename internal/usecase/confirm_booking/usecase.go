package confirm_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/intents"
)

// outcome итог транзакции подтверждения.
// Отказы (конфликт, расхождение суммы) фиксируются в БД, поэтому транзакция
// завершается без ошибки, а ошибка возвращается после коммита.
type outcome int

const (
	outcomeConfirmed outcome = iota
	outcomeAlreadyPaid
	outcomeConflict
	outcomeAmountMismatch
)

// UseCase use case подтверждения оплаты: AwaitingConfirmation -> Confirmed | Failed
type UseCase struct {
	bookingRepo  BookingRepository
	roomRepo     RoomRepository
	intents      IntentReader
	txManager    TransactionManager
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	roomRepo RoomRepository,
	intents IntentReader,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		roomRepo:     roomRepo,
		intents:      intents,
		txManager:    txManager,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет подтверждение оплаты.
// Повторный вызов для уже оплаченного intent возвращает то же бронирование.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ConfirmBooking: intent=%s, user=%s", req.PaymentIntentID, req.UserID)

	// 1. Валидация входных данных
	if strings.TrimSpace(req.PaymentIntentID) == "" {
		return nil, fmt.Errorf("%w: paymentIntentId is required", ErrInvalidInput)
	}

	// 2. Клиентское подтверждение допустимо только для своего бронирования
	if req.UserID != "" {
		if err := uc.checkOwner(ctx, req); err != nil {
			return nil, err
		}
	}

	// 3. Процессор - источник истины об оплате
	intent, err := uc.intents.GetIntent(ctx, req.PaymentIntentID)
	if err != nil {
		if errors.Is(err, intents.ErrIntentNotFound) {
			uc.logger.Warn("ConfirmBooking: intent=%s unknown to processor", req.PaymentIntentID)
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	if !intent.IsSucceeded() {
		uc.logger.Warn("ConfirmBooking: intent=%s has status=%s", intent.ID, intent.Status)
		return nil, fmt.Errorf("%w: status %s", ErrPaymentNotCompleted, intent.Status)
	}

	// 4. Проверка, блокировки и запись в одной сериализуемой транзакции
	var (
		result  outcome
		booking *domain.Booking
	)

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		var txErr error
		result, booking, txErr = uc.settle(txCtx, req.PaymentIntentID, intent.Amount)
		return txErr
	})
	if err != nil {
		if errors.Is(err, ErrBookingNotFound) {
			return nil, err
		}
		uc.logger.Error("ConfirmBooking: transaction for intent=%s failed: %v", req.PaymentIntentID, err)
		return nil, fmt.Errorf("%w: confirm booking: %v", domain.ErrPersistence, err)
	}

	// 5. Итог
	switch result {
	case outcomeConflict:
		uc.metrics.RecordSettlement(string(domain.SettlementFailed))
		uc.logger.Warn("ConfirmBooking: booking id=%s lost its dates after payment, refund required", booking.ID)
		return nil, fmt.Errorf("%w: room %s, %s", domain.ErrConflict, booking.RoomID, booking.Interval())

	case outcomeAmountMismatch:
		uc.metrics.RecordSettlement(string(domain.SettlementFailed))
		uc.logger.Error("ConfirmBooking: booking id=%s charged %d, expected %d", booking.ID, intent.Amount, booking.TotalPrice)
		return nil, fmt.Errorf("%w: charged %d, booking total %d", domain.ErrPriceMismatch, intent.Amount, booking.TotalPrice)

	case outcomeAlreadyPaid:
		uc.logger.Info("ConfirmBooking: booking id=%s already confirmed", booking.ID)
		return toResponse(booking, true), nil
	}

	uc.metrics.RecordSettlement(string(domain.SettlementConfirmed))
	uc.logger.Info("ConfirmBooking: booking id=%s confirmed, room=%s, %s", booking.ID, booking.RoomID, booking.Interval())

	return toResponse(booking, false), nil
}

// settle выполняется внутри транзакции: строки бронирования и комнаты
// блокируются, оплаченные бронирования комнаты читаются FOR UPDATE
func (uc *UseCase) settle(ctx context.Context, paymentIntentID string, charged int64) (outcome, *domain.Booking, error) {
	booking, err := uc.bookingRepo.GetByPaymentIntentID(ctx, paymentIntentID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("ConfirmBooking: no booking for intent=%s", paymentIntentID)
			return 0, nil, ErrBookingNotFound
		}
		return 0, nil, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.IsPaid() {
		return outcomeAlreadyPaid, booking, nil
	}

	// Закрытые бронирования повторно не пересматриваются
	if !booking.CanRetryPayment() {
		return closedOutcome(booking), booking, nil
	}

	// Отклоненная ранее оплата могла быть успешно повторена на том же intent
	settlement, err := domain.RestoreSettlement(domain.SettlementAwaitingConfirmation)
	if err != nil {
		return 0, nil, err
	}

	// Сумма списания должна совпадать с сохраненной ценой
	if err := domain.VerifyDeclaredPrice(booking.TotalPrice, charged); err != nil {
		if err := settlement.Transition(domain.SettlementFailed); err != nil {
			return 0, nil, err
		}
		failed, err := uc.bookingRepo.MarkFailed(ctx, paymentIntentID, domain.FailureReasonAmountMismatch)
		if err != nil {
			return 0, nil, fmt.Errorf("failed to mark booking failed: %w", err)
		}
		return outcomeAmountMismatch, failed, nil
	}

	// Блокируем комнату, чтобы параллельные подтверждения шли последовательно
	if _, err := uc.roomRepo.GetByID(ctx, booking.RoomID); err != nil {
		return 0, nil, fmt.Errorf("failed to lock room %s: %w", booking.RoomID, err)
	}

	paid, err := uc.bookingRepo.GetByRoomID(ctx, booking.RoomID, true)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to get paid bookings: %w", err)
	}

	availability, err := domain.CheckAvailability(booking.RoomID, booking.Interval(), domain.ToExisting(paid))
	if err != nil {
		return 0, nil, err
	}

	if availability == domain.Conflict {
		if err := settlement.Transition(domain.SettlementFailed); err != nil {
			return 0, nil, err
		}
		failed, err := uc.bookingRepo.MarkFailed(ctx, paymentIntentID, domain.FailureReasonConflict)
		if err != nil {
			return 0, nil, fmt.Errorf("failed to mark booking failed: %w", err)
		}
		return outcomeConflict, failed, nil
	}

	if err := settlement.Transition(domain.SettlementConfirmed); err != nil {
		return 0, nil, err
	}

	confirmed, err := uc.bookingRepo.MarkPaid(ctx, paymentIntentID, uc.timeProvider.Now().UTC())
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingAlreadyPaid) {
			return outcomeAlreadyPaid, booking, nil
		}
		return 0, nil, fmt.Errorf("failed to mark booking paid: %w", err)
	}

	return outcomeConfirmed, confirmed, nil
}

func (uc *UseCase) checkOwner(ctx context.Context, req *Request) error {
	booking, err := uc.bookingRepo.GetByPaymentIntentID(ctx, req.PaymentIntentID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("ConfirmBooking: no booking for intent=%s", req.PaymentIntentID)
			return ErrBookingNotFound
		}
		uc.logger.Error("ConfirmBooking: failed to get booking for intent=%s: %v", req.PaymentIntentID, err)
		return fmt.Errorf("%w: failed to get booking: %v", domain.ErrPersistence, err)
	}

	if booking.UserID != req.UserID {
		uc.logger.Warn("ConfirmBooking: user=%s tried to confirm booking id=%s of user=%s",
			req.UserID, booking.ID, booking.UserID)
		return ErrAccessDenied
	}

	return nil
}

func closedOutcome(booking *domain.Booking) outcome {
	if booking.FailureReason != nil && *booking.FailureReason == domain.FailureReasonAmountMismatch {
		return outcomeAmountMismatch
	}
	return outcomeConflict
}

func toResponse(b *domain.Booking, alreadyConfirmed bool) *Response {
	return &Response{
		BookingID:        b.ID,
		PaymentIntentID:  b.PaymentIntentID,
		RoomID:           b.RoomID,
		StartDate:        b.StartDate,
		EndDate:          b.EndDate,
		TotalPrice:       b.TotalPrice,
		Currency:         b.Currency,
		SettlementState:  string(b.SettlementState),
		PaidAt:           b.PaidAt,
		AlreadyConfirmed: alreadyConfirmed,
	}
}
