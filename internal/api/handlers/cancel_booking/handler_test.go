package cancel_booking

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/fishery-booking/internal/api/middleware"
	"github.com/m04kA/fishery-booking/internal/domain"
	bookingRepo "github.com/m04kA/fishery-booking/internal/infra/storage/booking"
	cooldownRepo "github.com/m04kA/fishery-booking/internal/infra/storage/cooldown"
	"github.com/m04kA/fishery-booking/internal/integrations/events"
	"github.com/m04kA/fishery-booking/internal/service/bookings"
	"github.com/m04kA/fishery-booking/internal/service/bookings/models"
	"github.com/m04kA/fishery-booking/pkg/locktxmanager"
	"github.com/m04kA/fishery-booking/pkg/logger"
	"github.com/m04kA/fishery-booking/pkg/metrics"
)

type fakeService struct {
	got *models.CancelBookingRequest
	err error
}

func (f *fakeService) Cancel(_ context.Context, req *models.CancelBookingRequest) (*models.BookingResponse, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.BookingResponse{ID: req.BookingID, Status: "cancelled"}, nil
}

func newRequest(method, bookingID, memberID string) *http.Request {
	r := httptest.NewRequest(method, "/", nil)
	r = mux.SetURLVars(r, map[string]string{"bookingId": bookingID})
	if memberID != "" {
		r = r.WithContext(middleware.WithMemberID(r.Context(), memberID))
	}
	return r
}

func TestHandleCancel(t *testing.T) {
	tests := []struct {
		name     string
		method   string
		newFn    func(BookingService, Logger) *Handler
		expected *models.CancelBookingRequest
	}{
		{
			name:     "member",
			method:   http.MethodPatch,
			newFn:    NewHandler,
			expected: &models.CancelBookingRequest{BookingID: "b1", RequesterID: "m1", OwnerOnly: true},
		},
		{
			name:     "admin",
			method:   http.MethodDelete,
			newFn:    NewAdminHandler,
			expected: &models.CancelBookingRequest{BookingID: "b1", RequesterID: "m1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{}
			w := httptest.NewRecorder()
			tt.newFn(svc, logger.Discard()).Handle(w, newRequest(tt.method, "b1", "m1"))

			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.expected, svc.got)

			var body models.BookingResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, "cancelled", body.Status)
		})
	}
}

// Участник не может отменить чужое бронирование и снять чужой cooldown;
// администратор по DELETE может
func TestHandleCancelOtherMembersBooking(t *testing.T) {
	ctx := context.Background()
	bookingStore := bookingRepo.NewMemoryStore()
	cooldownStore := cooldownRepo.NewMemoryStore()
	svc := bookings.NewService(bookingStore, cooldownStore, locktxmanager.New(),
		events.NoopPublisher{}, metrics.NewWithRegistry("test", prometheus.NewRegistry()), logger.Discard())

	start, end := domain.SessionBounds(time.Now().UTC().Add(48 * time.Hour).Truncate(24 * time.Hour))
	_, err := bookingStore.Insert(ctx, &domain.Booking{
		ID:       "b1",
		MemberID: "owner",
		LakeID:   "wood-pool",
		StartAt:  start,
		EndAt:    end,
	})
	require.NoError(t, err)
	anchor := time.Now().UTC()
	require.NoError(t, cooldownStore.Set(ctx, "owner", anchor))

	w := httptest.NewRecorder()
	NewHandler(svc, logger.Discard()).Handle(w, newRequest(http.MethodPatch, "b1", "intruder"))
	require.Equal(t, http.StatusForbidden, w.Code)

	stored, err := bookingStore.GetByID(ctx, "b1")
	require.NoError(t, err)
	assert.False(t, stored.IsCancelled())
	got, err := cooldownStore.Get(ctx, "owner")
	require.NoError(t, err)
	assert.True(t, got.Equal(anchor))

	w = httptest.NewRecorder()
	NewAdminHandler(svc, logger.Discard()).Handle(w, newRequest(http.MethodDelete, "b1", "admin"))
	require.Equal(t, http.StatusOK, w.Code)

	stored, err = bookingStore.GetByID(ctx, "b1")
	require.NoError(t, err)
	assert.True(t, stored.IsCancelled())
	_, err = cooldownStore.Get(ctx, "owner")
	assert.ErrorIs(t, err, cooldownRepo.ErrAnchorNotFound)
}

func TestHandleCancelErrors(t *testing.T) {
	tests := []struct {
		name      string
		bookingID string
		memberID  string
		err       error
		status    int
	}{
		{name: "blank id", bookingID: " ", memberID: "m1", status: http.StatusBadRequest},
		{name: "no member", bookingID: "b1", status: http.StatusUnauthorized},
		{name: "not found", bookingID: "b1", memberID: "m1", err: bookings.ErrBookingNotFound, status: http.StatusNotFound},
		{name: "not owner", bookingID: "b1", memberID: "m2", err: bookings.ErrForbidden, status: http.StatusForbidden},
		{name: "internal", bookingID: "b1", memberID: "m1", err: errors.New("boom"), status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			NewHandler(&fakeService{err: tt.err}, logger.Discard()).
				Handle(w, newRequest(http.MethodPatch, tt.bookingID, tt.memberID))
			assert.Equal(t, tt.status, w.Code)
		})
	}
}
