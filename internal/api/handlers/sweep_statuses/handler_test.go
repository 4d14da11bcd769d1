package sweep_statuses

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
	calls int
	err   error
}

func (f *fakeService) SweepNow(context.Context) (*models.SweepResponse, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &models.SweepResponse{Completed: 4}, nil
}

func TestHandle(t *testing.T) {
	svc := &fakeService{}
	w := httptest.NewRecorder()
	NewHandler(svc, logger.Discard()).Handle(w, httptest.NewRequest(http.MethodPost, "/api/v1/admin/sweep", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, svc.calls)
	var body models.SweepResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 4, body.Completed)
}

func TestHandleError(t *testing.T) {
	w := httptest.NewRecorder()
	NewHandler(&fakeService{err: errors.New("db down")}, logger.Discard()).Handle(w, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
