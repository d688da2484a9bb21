package booking

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/pkg/dbmetrics"
)

var (
	bookedAt = time.Date(2024, 5, 20, 10, 0, 0, 0, time.UTC)
	paidAt   = time.Date(2024, 5, 20, 10, 5, 0, 0, time.UTC)
)

func newMock(t *testing.T) (*Repository, *sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), db, mock
}

func bookingRows() *sqlmock.Rows {
	return sqlmock.NewRows(columns)
}

func addRow(rows *sqlmock.Rows, id, intentID string, paid bool, state domain.SettlementState, reason interface{}, paidAtValue interface{}) *sqlmock.Rows {
	return rows.AddRow(
		id, "owner-1", "hotel-1", "room-1", "user-1", "Jane", "jane@example.com",
		time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 4, 0, 0, 0, 0, time.UTC),
		false, "usd", int64(30000), intentID, paid, string(state), reason,
		bookedAt, paidAtValue, bookedAt,
	)
}

func draftBooking() *domain.Booking {
	return &domain.Booking{
		ID:              "b-1",
		HotelOwnerID:    "owner-1",
		HotelID:         "hotel-1",
		RoomID:          "room-1",
		UserID:          "user-1",
		UserName:        "Jane",
		UserEmail:       "jane@example.com",
		StartDate:       time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:         time.Date(2024, 6, 4, 0, 0, 0, 0, time.UTC),
		Currency:        "usd",
		TotalPrice:      30000,
		PaymentIntentID: "pi_1",
		SettlementState: domain.SettlementAwaitingConfirmation,
	}
}

func TestRepository_UpsertByPaymentIntent(t *testing.T) {
	repo, _, mock := newMock(t)

	mock.ExpectQuery(`INSERT INTO bookings \(id,hotel_owner_id`).
		WillReturnRows(addRow(bookingRows(), "b-1", "pi_1", false, domain.SettlementAwaitingConfirmation, nil, nil))

	saved, err := repo.UpsertByPaymentIntent(context.Background(), draftBooking())
	require.NoError(t, err)

	assert.Equal(t, "b-1", saved.ID)
	assert.Equal(t, "pi_1", saved.PaymentIntentID)
	assert.False(t, saved.PaymentStatus)
	assert.Equal(t, domain.SettlementAwaitingConfirmation, saved.SettlementState)
	assert.Nil(t, saved.FailureReason)
	assert.Nil(t, saved.PaidAt)
	assert.Equal(t, bookedAt, saved.BookedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpsertByPaymentIntent_AlreadyPaid(t *testing.T) {
	repo, _, mock := newMock(t)

	mock.ExpectQuery(`INSERT INTO bookings`).WillReturnRows(bookingRows())
	mock.ExpectQuery(`SELECT .* FROM bookings WHERE payment_intent_id = \$1`).
		WithArgs("pi_1").
		WillReturnRows(addRow(bookingRows(), "b-1", "pi_1", true, domain.SettlementConfirmed, nil, paidAt))

	_, err := repo.UpsertByPaymentIntent(context.Background(), draftBooking())
	assert.ErrorIs(t, err, ErrBookingAlreadyPaid)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpsertByPaymentIntent_ReopensOnlyDeclinedPayment(t *testing.T) {
	repo, _, mock := newMock(t)

	mock.ExpectQuery(`WHERE bookings.payment_status = FALSE\s+AND \(bookings.failure_reason IS NULL OR bookings.failure_reason = 'payment_failed'\) RETURNING`).
		WillReturnRows(addRow(bookingRows(), "b-1", "pi_1", false, domain.SettlementAwaitingConfirmation, nil, nil))

	_, err := repo.UpsertByPaymentIntent(context.Background(), draftBooking())
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A booking that failed after money was captured keeps its refund record.
func TestRepository_UpsertByPaymentIntent_RefundRequiredStaysClosed(t *testing.T) {
	for _, reason := range []string{domain.FailureReasonConflict, domain.FailureReasonAmountMismatch} {
		t.Run(reason, func(t *testing.T) {
			repo, _, mock := newMock(t)

			mock.ExpectQuery(`INSERT INTO bookings`).WillReturnRows(bookingRows())
			mock.ExpectQuery(`SELECT .* FROM bookings WHERE payment_intent_id = \$1`).
				WithArgs("pi_1").
				WillReturnRows(addRow(bookingRows(), "b-1", "pi_1", false, domain.SettlementFailed, reason, nil))

			_, err := repo.UpsertByPaymentIntent(context.Background(), draftBooking())
			assert.ErrorIs(t, err, ErrBookingClosed)
			assert.NotErrorIs(t, err, ErrBookingAlreadyPaid)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_UpsertByPaymentIntent_DBError(t *testing.T) {
	repo, _, mock := newMock(t)

	mock.ExpectQuery(`INSERT INTO bookings`).WillReturnError(errors.New("connection refused"))

	_, err := repo.UpsertByPaymentIntent(context.Background(), draftBooking())
	assert.ErrorIs(t, err, ErrExecQuery)
}

// Driver errors stay in the chain so the transaction manager can classify them.
func TestRepository_MarkPaid_KeepsDriverError(t *testing.T) {
	repo, _, mock := newMock(t)

	mock.ExpectQuery(`UPDATE bookings`).
		WillReturnError(&pq.Error{Code: "40001", Message: "could not serialize access"})

	_, err := repo.MarkPaid(context.Background(), "pi_1", paidAt)
	assert.ErrorIs(t, err, ErrExecQuery)

	var pqErr *pq.Error
	require.True(t, errors.As(err, &pqErr))
	assert.Equal(t, pq.ErrorCode("40001"), pqErr.Code)
}

func TestRepository_GetByID(t *testing.T) {
	repo, _, mock := newMock(t)

	mock.ExpectQuery(`SELECT id, hotel_owner_id, .* FROM bookings WHERE id = \$1$`).
		WithArgs("b-1").
		WillReturnRows(addRow(bookingRows(), "b-1", "pi_1", true, domain.SettlementConfirmed, nil, paidAt))

	booking, err := repo.GetByID(context.Background(), "b-1")
	require.NoError(t, err)
	assert.True(t, booking.PaymentStatus)
	require.NotNil(t, booking.PaidAt)
	assert.Equal(t, paidAt, *booking.PaidAt)
	assert.Equal(t, 3, booking.Nights())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, _, mock := newMock(t)

	mock.ExpectQuery(`FROM bookings WHERE id = \$1`).WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestRepository_GetByPaymentIntentID_LocksInTransaction(t *testing.T) {
	repo, db, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM bookings WHERE payment_intent_id = \$1 FOR UPDATE`).
		WithArgs("pi_1").
		WillReturnRows(addRow(bookingRows(), "b-1", "pi_1", false, domain.SettlementFailed, domain.FailureReasonPaymentFailed, nil))
	mock.ExpectCommit()

	tx, err := dbmetrics.Wrap(db, nil).BeginTx(context.Background(), nil)
	require.NoError(t, err)
	ctx := dbmetrics.WithTx(context.Background(), tx)

	booking, err := repo.GetByPaymentIntentID(ctx, "pi_1")
	require.NoError(t, err)
	require.NotNil(t, booking.FailureReason)
	assert.Equal(t, domain.FailureReasonPaymentFailed, *booking.FailureReason)

	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByRoomID(t *testing.T) {
	repo, _, mock := newMock(t)

	rows := addRow(bookingRows(), "b-1", "pi_1", true, domain.SettlementConfirmed, nil, paidAt)
	rows = addRow(rows, "b-2", "pi_2", true, domain.SettlementConfirmed, nil, paidAt)

	mock.ExpectQuery(`FROM bookings WHERE room_id = \$1 AND payment_status = \$2 ORDER BY start_date ASC$`).
		WithArgs("room-1", true).
		WillReturnRows(rows)

	bookings, err := repo.GetByRoomID(context.Background(), "room-1", true)
	require.NoError(t, err)
	assert.Len(t, bookings, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByRoomID_AllBookings(t *testing.T) {
	repo, _, mock := newMock(t)

	mock.ExpectQuery(`FROM bookings WHERE room_id = \$1 ORDER BY start_date ASC$`).
		WithArgs("room-1").
		WillReturnRows(bookingRows())

	bookings, err := repo.GetByRoomID(context.Background(), "room-1", false)
	require.NoError(t, err)
	assert.Empty(t, bookings)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByUserID(t *testing.T) {
	repo, _, mock := newMock(t)

	mock.ExpectQuery(`FROM bookings WHERE user_id = \$1 ORDER BY booked_at DESC`).
		WithArgs("user-1").
		WillReturnRows(addRow(bookingRows(), "b-1", "pi_1", false, domain.SettlementAwaitingConfirmation, nil, nil))

	bookings, err := repo.GetByUserID(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, "user-1", bookings[0].UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByHotelOwnerID(t *testing.T) {
	repo, _, mock := newMock(t)

	mock.ExpectQuery(`FROM bookings WHERE hotel_owner_id = \$1 ORDER BY booked_at DESC`).
		WithArgs("owner-1").
		WillReturnError(errors.New("timeout"))

	_, err := repo.GetByHotelOwnerID(context.Background(), "owner-1")
	assert.ErrorIs(t, err, ErrExecQuery)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_MarkPaid(t *testing.T) {
	repo, _, mock := newMock(t)

	mock.ExpectQuery(`UPDATE bookings SET payment_status = \$1, settlement_state = \$2, failure_reason = \$3, paid_at = \$4, updated_at = NOW\(\) WHERE payment_intent_id = \$5 AND payment_status = \$6 RETURNING`).
		WithArgs(true, domain.SettlementConfirmed, nil, paidAt, "pi_1", false).
		WillReturnRows(addRow(bookingRows(), "b-1", "pi_1", true, domain.SettlementConfirmed, nil, paidAt))

	booking, err := repo.MarkPaid(context.Background(), "pi_1", paidAt)
	require.NoError(t, err)
	assert.True(t, booking.PaymentStatus)
	assert.Equal(t, domain.SettlementConfirmed, booking.SettlementState)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_MarkPaid_SecondCallIsRejected(t *testing.T) {
	repo, _, mock := newMock(t)

	mock.ExpectQuery(`UPDATE bookings SET payment_status`).WillReturnRows(bookingRows())
	mock.ExpectQuery(`FROM bookings WHERE payment_intent_id = \$1`).
		WithArgs("pi_1").
		WillReturnRows(addRow(bookingRows(), "b-1", "pi_1", true, domain.SettlementConfirmed, nil, paidAt))

	_, err := repo.MarkPaid(context.Background(), "pi_1", paidAt)
	assert.ErrorIs(t, err, ErrBookingAlreadyPaid)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_MarkPaid_UnknownIntent(t *testing.T) {
	repo, _, mock := newMock(t)

	mock.ExpectQuery(`UPDATE bookings SET payment_status`).WillReturnRows(bookingRows())
	mock.ExpectQuery(`FROM bookings WHERE payment_intent_id = \$1`).WillReturnError(sql.ErrNoRows)

	_, err := repo.MarkPaid(context.Background(), "pi_unknown", paidAt)
	assert.ErrorIs(t, err, ErrBookingNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_MarkFailed(t *testing.T) {
	repo, _, mock := newMock(t)

	mock.ExpectQuery(`UPDATE bookings SET settlement_state = \$1, failure_reason = \$2, updated_at = NOW\(\) WHERE payment_intent_id = \$3 AND payment_status = \$4`).
		WithArgs(domain.SettlementFailed, domain.FailureReasonConflict, "pi_1", false).
		WillReturnRows(addRow(bookingRows(), "b-1", "pi_1", false, domain.SettlementFailed, domain.FailureReasonConflict, nil))

	booking, err := repo.MarkFailed(context.Background(), "pi_1", domain.FailureReasonConflict)
	require.NoError(t, err)
	assert.Equal(t, domain.SettlementFailed, booking.SettlementState)
	require.NotNil(t, booking.FailureReason)
	assert.Equal(t, domain.FailureReasonConflict, *booking.FailureReason)
	assert.NoError(t, mock.ExpectationsWereMet())
}
