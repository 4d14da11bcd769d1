package get_current_booking

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/fishery-booking/internal/api/middleware"
	"github.com/m04kA/fishery-booking/internal/domain"
	"github.com/m04kA/fishery-booking/internal/service/projector"
	"github.com/m04kA/fishery-booking/pkg/logger"
)

var T = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

type fixedTime struct{}

func (fixedTime) Now() time.Time { return T }

type fakeProjector struct {
	gotNow time.Time
	result *projector.CurrentBooking
	err    error
}

func (f *fakeProjector) MemberCurrentBooking(_ context.Context, _ string, now time.Time) (*projector.CurrentBooking, error) {
	f.gotNow = now
	return f.result, f.err
}

func newRequest(memberID, requesterID string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r = mux.SetURLVars(r, map[string]string{"memberId": memberID})
	if requesterID != "" {
		r = r.WithContext(middleware.WithMemberID(r.Context(), requesterID))
	}
	return r
}

func TestHandle(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	p := &fakeProjector{result: &projector.CurrentBooking{
		Booking: &domain.Booking{
			ID:       "b1",
			MemberID: "m1",
			LakeID:   "wood-pool",
			StartAt:  start,
			EndAt:    start.Add(24 * time.Hour),
		},
		Status:    domain.StatusActive,
		Remaining: 14 * time.Hour,
		Label:     "14h 0m",
	}}

	h := NewHandler(p, logger.Discard())
	h.timeProvider = fixedTime{}

	w := httptest.NewRecorder()
	h.Handle(w, newRequest("m1", "m1"))

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, p.gotNow.Equal(T))

	var body CurrentBookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "active", body.Status)
	assert.Equal(t, int64(14*3600), body.RemainingSeconds)
	assert.Equal(t, "14h 0m", body.Remaining)
	require.NotNil(t, body.Booking)
	assert.Equal(t, "b1", body.Booking.ID)
	assert.Equal(t, "active", body.Booking.Status)
}

func TestHandleErrors(t *testing.T) {
	tests := []struct {
		name        string
		memberID    string
		requesterID string
		err         error
		status      int
	}{
		{name: "none", memberID: "m1", requesterID: "m1", err: projector.ErrNoCurrentBooking, status: http.StatusNotFound},
		{name: "internal", memberID: "m1", requesterID: "m1", err: errors.New("boom"), status: http.StatusInternalServerError},
		{name: "someone else", memberID: "m1", requesterID: "m2", status: http.StatusForbidden},
		{name: "no requester", memberID: "m1", status: http.StatusUnauthorized},
		{name: "blank member", memberID: " ", requesterID: "m1", status: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			NewHandler(&fakeProjector{err: tt.err}, logger.Discard()).Handle(w, newRequest(tt.memberID, tt.requesterID))
			assert.Equal(t, tt.status, w.Code)
		})
	}
}
