package get_booking_stats

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/fishery-booking/internal/service/bookings/models"
	"github.com/m04kA/fishery-booking/pkg/logger"
)

type fakeService struct {
	err error
}

func (f *fakeService) Stats(context.Context) (*models.StatsResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.StatsResponse{ActiveNow: 1, Upcoming: 2, Completed: 3, Cancelled: 1, TotalActive: 3, Total: 7}, nil
}

func TestHandle(t *testing.T) {
	w := httptest.NewRecorder()
	NewHandler(&fakeService{}, logger.Discard()).Handle(w, httptest.NewRequest(http.MethodGet, "/api/v1/admin/bookings/stats", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var body models.StatsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 1, body.ActiveNow)
	assert.Equal(t, 7, body.Total)
}

func TestHandleError(t *testing.T) {
	w := httptest.NewRecorder()
	NewHandler(&fakeService{err: errors.New("boom")}, logger.Discard()).Handle(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
