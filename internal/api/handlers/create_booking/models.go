package create_booking

import (
	"time"

	"github.com/m04kA/fishery-booking/internal/domain"
	createBooking "github.com/m04kA/fishery-booking/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	LakeID string  `json:"lakeId" validate:"required"`
	Date   string  `json:"date" validate:"required,datetime=2006-01-02"` // "2025-06-01"
	Notes  *string `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID        string  `json:"id"`
	MemberID  string  `json:"memberId"`
	LakeID    string  `json:"lakeId"`
	Date      string  `json:"date"`
	StartAt   string  `json:"startAt"`
	EndAt     string  `json:"endAt"`
	Status    string  `json:"status"`
	Notes     *string `json:"notes,omitempty"`
	CreatedAt string  `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(memberID, lakeID string) (*createBooking.Request, error) {
	date, err := domain.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		MemberID: memberID,
		LakeID:   lakeID,
		Date:     date,
		Notes:    r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:        resp.ID,
		MemberID:  resp.MemberID,
		LakeID:    resp.LakeID,
		Date:      resp.StartAt.Format(domain.DateFormat),
		StartAt:   resp.StartAt.Format(time.RFC3339),
		EndAt:     resp.EndAt.Format(time.RFC3339),
		Status:    string(resp.Status),
		Notes:     resp.Notes,
		CreatedAt: resp.CreatedAt.Format(time.RFC3339),
	}
}
