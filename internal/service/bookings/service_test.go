package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/bookings/models"
)

type mockBookingRepo struct{ mock.Mock }

func (m *mockBookingRepo) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	booking, _ := args.Get(0).(*domain.Booking)
	return booking, args.Error(1)
}

func (m *mockBookingRepo) GetByUserID(ctx context.Context, userID string) ([]*domain.Booking, error) {
	args := m.Called(ctx, userID)
	bookings, _ := args.Get(0).([]*domain.Booking)
	return bookings, args.Error(1)
}

func (m *mockBookingRepo) GetByHotelOwnerID(ctx context.Context, ownerID string) ([]*domain.Booking, error) {
	args := m.Called(ctx, ownerID)
	bookings, _ := args.Get(0).([]*domain.Booking)
	return bookings, args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func strPtr(s string) *string { return &s }

func booking(id, hotelID string, state domain.SettlementState) *domain.Booking {
	return &domain.Booking{
		ID:              id,
		HotelOwnerID:    "owner-1",
		HotelID:         hotelID,
		RoomID:          "room-1",
		UserID:          "user-1",
		StartDate:       time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:         time.Date(2024, 6, 4, 0, 0, 0, 0, time.UTC),
		TotalPrice:      30000,
		Currency:        "usd",
		PaymentStatus:   state == domain.SettlementConfirmed,
		SettlementState: state,
	}
}

func TestService_GetByID(t *testing.T) {
	repo := &mockBookingRepo{}
	svc := NewService(repo, nopLogger{})
	ctx := context.Background()

	paidAt := time.Date(2024, 5, 21, 9, 30, 0, 0, time.UTC)
	b := booking("b-1", "hotel-1", domain.SettlementConfirmed)
	b.PaidAt = &paidAt

	repo.On("GetByID", ctx, "b-1").Return(b, nil)
	repo.On("GetByID", ctx, "missing").Return(nil, bookingRepo.ErrBookingNotFound)
	repo.On("GetByID", ctx, "broken").Return(nil, errors.New("connection refused"))

	for _, userID := range []string{"user-1", "owner-1"} {
		resp, err := svc.GetByID(ctx, "b-1", userID)
		require.NoError(t, err)
		assert.Equal(t, "b-1", resp.ID)
		assert.Equal(t, "2024-06-01", resp.StartDate)
		assert.Equal(t, 3, resp.Nights)
		assert.Equal(t, "2024-05-21T09:30:00Z", *resp.PaidAt)
		assert.False(t, resp.CanRetryPayment)
	}

	_, err := svc.GetByID(ctx, "b-1", "stranger")
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.GetByID(ctx, "missing", "user-1")
	assert.ErrorIs(t, err, ErrBookingNotFound)

	_, err = svc.GetByID(ctx, "broken", "user-1")
	assert.ErrorIs(t, err, ErrInternal)
}

func TestService_GetUserBookings(t *testing.T) {
	repo := &mockBookingRepo{}
	svc := NewService(repo, nopLogger{})
	ctx := context.Background()

	repo.On("GetByUserID", ctx, "user-1").Return([]*domain.Booking{
		booking("b-3", "hotel-1", domain.SettlementAwaitingConfirmation),
		booking("b-2", "hotel-2", domain.SettlementConfirmed),
		booking("b-1", "hotel-1", domain.SettlementFailed),
	}, nil)
	repo.On("GetByUserID", ctx, "user-2").Return(nil, nil)

	resp, err := svc.GetUserBookings(ctx, &models.GetUserBookingsRequest{UserID: "user-1"})
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 3)
	assert.Equal(t, "b-3", resp.Bookings[0].ID, "repository order is kept")
	assert.True(t, resp.Bookings[0].CanRetryPayment)

	resp, err = svc.GetUserBookings(ctx, &models.GetUserBookingsRequest{UserID: "user-1", State: strPtr("confirmed")})
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, "b-2", resp.Bookings[0].ID)

	resp, err = svc.GetUserBookings(ctx, &models.GetUserBookingsRequest{UserID: "user-2"})
	require.NoError(t, err)
	assert.NotNil(t, resp.Bookings)
	assert.Empty(t, resp.Bookings)

	_, err = svc.GetUserBookings(ctx, &models.GetUserBookingsRequest{UserID: "user-1", State: strPtr("draft")})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.GetUserBookings(ctx, &models.GetUserBookingsRequest{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_GetOwnerBookings(t *testing.T) {
	repo := &mockBookingRepo{}
	svc := NewService(repo, nopLogger{})
	ctx := context.Background()

	repo.On("GetByHotelOwnerID", ctx, "owner-1").Return([]*domain.Booking{
		booking("b-4", "hotel-2", domain.SettlementConfirmed),
		booking("b-3", "hotel-1", domain.SettlementAwaitingConfirmation),
		booking("b-2", "hotel-1", domain.SettlementConfirmed),
		booking("b-1", "hotel-1", domain.SettlementFailed),
	}, nil)
	repo.On("GetByHotelOwnerID", ctx, "owner-down").Return(nil, errors.New("connection refused"))

	tests := []struct {
		name    string
		req     *models.GetOwnerBookingsRequest
		wantIDs []string
	}{
		{name: "all", req: &models.GetOwnerBookingsRequest{OwnerID: "owner-1"}, wantIDs: []string{"b-4", "b-3", "b-2", "b-1"}},
		{name: "by hotel", req: &models.GetOwnerBookingsRequest{OwnerID: "owner-1", HotelID: strPtr("hotel-1")}, wantIDs: []string{"b-3", "b-2", "b-1"}},
		{name: "paid only", req: &models.GetOwnerBookingsRequest{OwnerID: "owner-1", PaidOnly: true}, wantIDs: []string{"b-4", "b-2"}},
		{name: "hotel and state", req: &models.GetOwnerBookingsRequest{OwnerID: "owner-1", HotelID: strPtr("hotel-1"), State: strPtr("failed")}, wantIDs: []string{"b-1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.GetOwnerBookings(ctx, tt.req)
			require.NoError(t, err)

			ids := make([]string, 0, len(resp.Bookings))
			for _, b := range resp.Bookings {
				ids = append(ids, b.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}

	_, err := svc.GetOwnerBookings(ctx, &models.GetOwnerBookingsRequest{OwnerID: "owner-down"})
	assert.ErrorIs(t, err, ErrInternal)

	_, err = svc.GetOwnerBookings(ctx, &models.GetOwnerBookingsRequest{OwnerID: "owner-1", State: strPtr("rejected")})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
