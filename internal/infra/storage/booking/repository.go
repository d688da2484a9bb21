package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RoomBookingService/pkg/psqlbuilder"
)

const tableName = "bookings"

var columns = []string{
	"id",
	"hotel_owner_id",
	"hotel_id",
	"room_id",
	"user_id",
	"user_name",
	"user_email",
	"start_date",
	"end_date",
	"breakfast_included",
	"currency",
	"total_price",
	"payment_intent_id",
	"payment_status",
	"settlement_state",
	"failure_reason",
	"booked_at",
	"paid_at",
	"updated_at",
}

// returning RETURNING-часть для INSERT/UPDATE
var returning = "RETURNING " + strings.Join(columns, ", ")

// upsertConflict обновляет неоплаченное бронирование, привязанное к тому же payment intent.
// Оплаченное бронирование и закрытое с требованием возврата (*_refund_required) не трогаются -
// запрос вернет 0 строк. Повторно открыть можно только отказ процессора.
const upsertConflict = `ON CONFLICT (payment_intent_id) DO UPDATE SET
	hotel_owner_id = EXCLUDED.hotel_owner_id,
	hotel_id = EXCLUDED.hotel_id,
	room_id = EXCLUDED.room_id,
	user_name = EXCLUDED.user_name,
	user_email = EXCLUDED.user_email,
	start_date = EXCLUDED.start_date,
	end_date = EXCLUDED.end_date,
	breakfast_included = EXCLUDED.breakfast_included,
	currency = EXCLUDED.currency,
	total_price = EXCLUDED.total_price,
	settlement_state = EXCLUDED.settlement_state,
	failure_reason = NULL,
	updated_at = NOW()
WHERE bookings.payment_status = FALSE
	AND (bookings.failure_reason IS NULL OR bookings.failure_reason = '` + domain.FailureReasonPaymentFailed + `')`

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// UpsertByPaymentIntent создает неоплаченное бронирование или обновляет то,
// что уже привязано к booking.PaymentIntentID. Идемпотентен по payment intent.
// Возвращает ErrBookingAlreadyPaid, если бронирование с этим intent уже оплачено,
// и ErrBookingClosed, если оно закрыто с требованием возврата средств.
func (r *Repository) UpsertByPaymentIntent(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns(
			"id",
			"hotel_owner_id",
			"hotel_id",
			"room_id",
			"user_id",
			"user_name",
			"user_email",
			"start_date",
			"end_date",
			"breakfast_included",
			"currency",
			"total_price",
			"payment_intent_id",
			"payment_status",
			"settlement_state",
		).
		Values(
			booking.ID,
			booking.HotelOwnerID,
			booking.HotelID,
			booking.RoomID,
			booking.UserID,
			booking.UserName,
			booking.UserEmail,
			booking.StartDate,
			booking.EndDate,
			booking.BreakfastIncluded,
			booking.Currency,
			booking.TotalPrice,
			booking.PaymentIntentID,
			false,
			booking.SettlementState,
		).
		Suffix(upsertConflict + " " + returning).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpsertByPaymentIntent - build insert query: %v", ErrBuildQuery, err)
	}

	saved, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, r.notPendingReason(ctx, booking.PaymentIntentID)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: UpsertByPaymentIntent - execute upsert: %w", ErrExecQuery, err)
	}

	return saved, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetByPaymentIntentID получает бронирование по ID payment intent.
// В транзакции строка блокируется (FOR UPDATE) до конца транзакции.
func (r *Repository) GetByPaymentIntentID(ctx context.Context, paymentIntentID string) (*domain.Booking, error) {
	return r.getOne(ctx, "GetByPaymentIntentID", squirrel.Eq{"payment_intent_id": paymentIntentID})
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Eq) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(tableName).
		Where(where)

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan booking: %w", ErrScanRow, op, err)
	}

	return booking, nil
}

// GetByRoomID получает бронирования комнаты, отсортированные по дате заезда.
// paidOnly = true оставляет только оплаченные (именно они блокируют даты).
// В транзакции найденные строки блокируются (FOR UPDATE).
func (r *Repository) GetByRoomID(ctx context.Context, roomID string, paidOnly bool) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"room_id": roomID})

	if paidOnly {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"payment_status": true})
	}

	selectBuilder = selectBuilder.OrderBy("start_date ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByRoomID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByRoomID - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetByUserID получает историю бронирований гостя (сначала новые)
func (r *Repository) GetByUserID(ctx context.Context, userID string) ([]*domain.Booking, error) {
	return r.list(ctx, "GetByUserID", squirrel.Eq{"user_id": userID})
}

// GetByHotelOwnerID получает бронирования всех отелей владельца (сначала новые)
func (r *Repository) GetByHotelOwnerID(ctx context.Context, ownerID string) ([]*domain.Booking, error) {
	return r.list(ctx, "GetByHotelOwnerID", squirrel.Eq{"hotel_owner_id": ownerID})
}

func (r *Repository) list(ctx context.Context, op string, where squirrel.Eq) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(where).
		OrderBy("booked_at DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// MarkPaid помечает бронирование оплаченным.
// Условие payment_status = FALSE делает операцию однократной: повторный вызов
// для того же intent вернет ErrBookingAlreadyPaid (или ErrBookingNotFound, если intent неизвестен).
func (r *Repository) MarkPaid(ctx context.Context, paymentIntentID string, paidAt time.Time) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("payment_status", true).
		Set("settlement_state", domain.SettlementConfirmed).
		Set("failure_reason", nil).
		Set("paid_at", paidAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"payment_intent_id": paymentIntentID, "payment_status": false}).
		Suffix(returning).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: MarkPaid - build update query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, r.notPendingReason(ctx, paymentIntentID)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: MarkPaid - execute update: %w", ErrExecQuery, err)
	}

	return booking, nil
}

// MarkFailed переводит неоплаченное бронирование в failed с указанием причины.
// Оплаченные бронирования никогда не понижаются.
func (r *Repository) MarkFailed(ctx context.Context, paymentIntentID string, reason string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("settlement_state", domain.SettlementFailed).
		Set("failure_reason", reason).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"payment_intent_id": paymentIntentID, "payment_status": false}).
		Suffix(returning).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: MarkFailed - build update query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, r.notPendingReason(ctx, paymentIntentID)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: MarkFailed - execute update: %w", ErrExecQuery, err)
	}

	return booking, nil
}

// notPendingReason различает "нет такого intent", "уже оплачено" и "закрыто" после пустого UPDATE
func (r *Repository) notPendingReason(ctx context.Context, paymentIntentID string) error {
	booking, err := r.GetByPaymentIntentID(ctx, paymentIntentID)
	if errors.Is(err, ErrBookingNotFound) {
		return ErrBookingNotFound
	}
	if err != nil {
		return err
	}
	if booking.IsPaid() {
		return ErrBookingAlreadyPaid
	}
	return ErrBookingClosed
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		booking       domain.Booking
		failureReason sql.NullString
		paidAt        sql.NullTime
		bookedAt      sql.NullTime
		updatedAt     sql.NullTime
	)

	err := row.Scan(
		&booking.ID,
		&booking.HotelOwnerID,
		&booking.HotelID,
		&booking.RoomID,
		&booking.UserID,
		&booking.UserName,
		&booking.UserEmail,
		&booking.StartDate,
		&booking.EndDate,
		&booking.BreakfastIncluded,
		&booking.Currency,
		&booking.TotalPrice,
		&booking.PaymentIntentID,
		&booking.PaymentStatus,
		&booking.SettlementState,
		&failureReason,
		&bookedAt,
		&paidAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if failureReason.Valid {
		booking.FailureReason = &failureReason.String
	}
	if paidAt.Valid {
		t := paidAt.Time
		booking.PaidAt = &t
	}
	booking.StartDate = domain.ToDate(booking.StartDate)
	booking.EndDate = domain.ToDate(booking.EndDate)
	booking.BookedAt = bookedAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %w", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %w", ErrScanRow, err)
	}

	return bookings, nil
}
