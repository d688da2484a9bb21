package confirm_booking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	confirmBooking "github.com/m04kA/SMC-RoomBookingService/internal/usecase/confirm_booking"
)

type mockUseCase struct{ mock.Mock }

func (m *mockUseCase) Execute(ctx context.Context, req *confirmBooking.Request) (*confirmBooking.Response, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*confirmBooking.Response)
	return resp, args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newRequest(userID string) *http.Request {
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/bookings/payment-intents/pi_1/confirm", nil)
	req = mux.SetURLVars(req, map[string]string{"paymentIntentId": "pi_1"})
	if userID != "" {
		req = req.WithContext(middleware.WithIdentity(req.Context(), middleware.Identity{UserID: userID}))
	}
	return req
}

func TestHandle_Confirmed(t *testing.T) {
	uc := &mockUseCase{}
	h := NewHandler(uc, nopLogger{})

	paidAt := time.Date(2024, 5, 20, 10, 5, 0, 0, time.UTC)
	uc.On("Execute", mock.Anything, &confirmBooking.Request{PaymentIntentID: "pi_1", UserID: "user-1"}).
		Return(&confirmBooking.Response{
			BookingID:       "b-1",
			PaymentIntentID: "pi_1",
			RoomID:          "room-1",
			StartDate:       time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			EndDate:         time.Date(2024, 6, 4, 0, 0, 0, 0, time.UTC),
			TotalPrice:      34500,
			Currency:        "usd",
			SettlementState: string(domain.SettlementConfirmed),
			PaidAt:          &paidAt,
		}, nil)

	rec := httptest.NewRecorder()
	h.Handle(rec, newRequest("user-1"))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp ConfirmationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "confirmed", resp.SettlementState)
	assert.Equal(t, "2024-06-01", resp.StartDate)
	require.NotNil(t, resp.PaidAt)
	assert.Equal(t, "2024-05-20T10:05:00Z", *resp.PaidAt)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
	}{
		{err: confirmBooking.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{err: confirmBooking.ErrBookingNotFound, wantStatus: http.StatusNotFound},
		{err: confirmBooking.ErrAccessDenied, wantStatus: http.StatusForbidden},
		{err: confirmBooking.ErrPaymentNotCompleted, wantStatus: http.StatusPaymentRequired},
		{err: fmt.Errorf("%w: room-1", domain.ErrConflict), wantStatus: http.StatusConflict},
		{err: fmt.Errorf("%w: charged 1", domain.ErrPriceMismatch), wantStatus: http.StatusConflict},
		{err: fmt.Errorf("%w: timeout", domain.ErrProcessor), wantStatus: http.StatusBadGateway},
		{err: fmt.Errorf("%w: tx", domain.ErrPersistence), wantStatus: http.StatusServiceUnavailable},
		{err: fmt.Errorf("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			uc := &mockUseCase{}
			h := NewHandler(uc, nopLogger{})
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)

			rec := httptest.NewRecorder()
			h.Handle(rec, newRequest("user-1"))
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestHandle_Unauthorized(t *testing.T) {
	uc := &mockUseCase{}
	h := NewHandler(uc, nopLogger{})

	rec := httptest.NewRecorder()
	h.Handle(rec, newRequest(""))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}
