package get_booking

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/fishery-booking/internal/api/middleware"
	"github.com/m04kA/fishery-booking/internal/service/bookings"
	"github.com/m04kA/fishery-booking/internal/service/bookings/models"
	"github.com/m04kA/fishery-booking/pkg/logger"
)

type fakeService struct {
	booking *models.BookingResponse
	err     error
}

func (f *fakeService) GetByID(context.Context, string) (*models.BookingResponse, error) {
	return f.booking, f.err
}

func TestHandle(t *testing.T) {
	owned := &models.BookingResponse{ID: "b1", MemberID: "m1", Status: "upcoming"}

	tests := []struct {
		name      string
		bookingID string
		memberID  string
		svc       *fakeService
		status    int
	}{
		{name: "owner", bookingID: "b1", memberID: "m1", svc: &fakeService{booking: owned}, status: http.StatusOK},
		{name: "other member", bookingID: "b1", memberID: "m2", svc: &fakeService{booking: owned}, status: http.StatusForbidden},
		{name: "no member", bookingID: "b1", svc: &fakeService{booking: owned}, status: http.StatusUnauthorized},
		{name: "blank id", bookingID: "", memberID: "m1", svc: &fakeService{}, status: http.StatusBadRequest},
		{name: "not found", bookingID: "b1", memberID: "m1", svc: &fakeService{err: bookings.ErrBookingNotFound}, status: http.StatusNotFound},
		{name: "internal", bookingID: "b1", memberID: "m1", svc: &fakeService{err: errors.New("boom")}, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r = mux.SetURLVars(r, map[string]string{"bookingId": tt.bookingID})
			if tt.memberID != "" {
				r = r.WithContext(middleware.WithMemberID(r.Context(), tt.memberID))
			}

			w := httptest.NewRecorder()
			NewHandler(tt.svc, logger.Discard()).Handle(w, r)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}
