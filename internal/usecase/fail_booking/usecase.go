package fail_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/booking"
)

// UseCase use case отметки неуспешной оплаты: AwaitingConfirmation -> Failed
type UseCase struct {
	bookingRepo BookingRepository
	txManager   TransactionManager
	metrics     Metrics
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, txManager TransactionManager, metrics Metrics, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		txManager:   txManager,
		metrics:     metrics,
		logger:      logger,
	}
}

// Execute переводит неоплаченное бронирование в failed с причиной payment_failed.
// Оплаченные и закрытые после конфликта бронирования не меняются.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("FailBooking: intent=%s, message=%q", req.PaymentIntentID, req.Message)

	if strings.TrimSpace(req.PaymentIntentID) == "" {
		return nil, fmt.Errorf("%w: paymentIntentId is required", ErrInvalidInput)
	}

	var resp *Response

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := uc.bookingRepo.GetByPaymentIntentID(txCtx, req.PaymentIntentID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return err
		}

		// Повторная доставка события не должна затирать итог
		if booking.SettlementState != domain.SettlementAwaitingConfirmation || booking.IsPaid() {
			resp = &Response{BookingID: booking.ID, SettlementState: string(booking.SettlementState), Ignored: true}
			return nil
		}

		failed, err := uc.bookingRepo.MarkFailed(txCtx, req.PaymentIntentID, domain.FailureReasonPaymentFailed)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingAlreadyPaid) {
				resp = &Response{BookingID: booking.ID, SettlementState: string(domain.SettlementConfirmed), Ignored: true}
				return nil
			}
			return err
		}

		resp = &Response{BookingID: failed.ID, SettlementState: string(failed.SettlementState)}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrBookingNotFound) {
			uc.logger.Warn("FailBooking: no booking for intent=%s", req.PaymentIntentID)
			return nil, err
		}
		uc.logger.Error("FailBooking: failed to update booking for intent=%s: %v", req.PaymentIntentID, err)
		return nil, fmt.Errorf("%w: fail booking: %v", domain.ErrPersistence, err)
	}

	if resp.Ignored {
		uc.logger.Info("FailBooking: booking id=%s is %s, event ignored", resp.BookingID, resp.SettlementState)
		return resp, nil
	}

	uc.metrics.RecordSettlement(resp.SettlementState)
	uc.logger.Info("FailBooking: booking id=%s marked failed", resp.BookingID)

	return resp, nil
}
