package list_bookings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/fishery-booking/internal/service/bookings"
	"github.com/m04kA/fishery-booking/internal/service/bookings/models"
	"github.com/m04kA/fishery-booking/pkg/logger"
)

type fakeService struct {
	got *models.ListBookingsRequest
	err error
}

func (f *fakeService) ListBookings(_ context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.BookingListResponse{Bookings: []models.BookingResponse{{ID: "b1"}}}, nil
}

func TestHandleParsesFilter(t *testing.T) {
	svc := &fakeService{}
	w := httptest.NewRecorder()
	NewHandler(svc, logger.Discard()).Handle(w,
		httptest.NewRequest(http.MethodGet, "/api/v1/admin/bookings?from=2025-06-01&to=2025-06-30&status=active", nil))

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, svc.got)
	require.NotNil(t, svc.got.From)
	require.NotNil(t, svc.got.To)
	require.NotNil(t, svc.got.Status)
	assert.True(t, svc.got.From.Equal(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, svc.got.To.Equal(time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "active", *svc.got.Status)

	var body models.BookingListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Bookings, 1)
}

func TestHandleWithoutFilter(t *testing.T) {
	svc := &fakeService{}
	w := httptest.NewRecorder()
	NewHandler(svc, logger.Discard()).Handle(w, httptest.NewRequest(http.MethodGet, "/api/v1/admin/bookings", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, svc.got.From)
	assert.Nil(t, svc.got.To)
	assert.Nil(t, svc.got.Status)
}

func TestHandleErrors(t *testing.T) {
	tests := []struct {
		name   string
		url    string
		err    error
		status int
	}{
		{name: "bad from", url: "/api/v1/admin/bookings?from=june", status: http.StatusBadRequest},
		{name: "bad to", url: "/api/v1/admin/bookings?to=2025-02-30", status: http.StatusBadRequest},
		{
			name:   "bad status",
			url:    "/api/v1/admin/bookings?status=pending",
			err:    fmt.Errorf("%w: %w", bookings.ErrInvalidInput, bookings.ErrInvalidStatus),
			status: http.StatusBadRequest,
		},
		{
			name:   "reversed range",
			url:    "/api/v1/admin/bookings?from=2025-06-30&to=2025-06-01",
			err:    fmt.Errorf("%w: %w", bookings.ErrInvalidInput, bookings.ErrInvalidTimeRange),
			status: http.StatusBadRequest,
		},
		{name: "internal", url: "/api/v1/admin/bookings", err: errors.New("db down"), status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			NewHandler(&fakeService{err: tt.err}, logger.Discard()).Handle(w, httptest.NewRequest(http.MethodGet, tt.url, nil))
			assert.Equal(t, tt.status, w.Code)
		})
	}
}
