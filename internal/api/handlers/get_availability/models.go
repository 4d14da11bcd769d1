package get_availability

import (
	"github.com/m04kA/fishery-booking/internal/domain"
	checkAvailability "github.com/m04kA/fishery-booking/internal/usecase/check_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	LakeID    string `json:"lakeId"`
	LakeName  string `json:"lakeName"`
	Date      string `json:"date"`
	Capacity  int    `json:"capacity"`
	Booked    int    `json:"booked"`
	Available int    `json:"available"`
	IsFull    bool   `json:"isFull"`
}

// AvailabilityRangeResponse занятость озера по дням
type AvailabilityRangeResponse struct {
	LakeID string                 `json:"lakeId"`
	From   string                 `json:"from"`
	To     string                 `json:"to"`
	Days   []AvailabilityResponse `json:"days"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkAvailability.Response) *AvailabilityResponse {
	return &AvailabilityResponse{
		LakeID:    resp.LakeID,
		LakeName:  resp.LakeName,
		Date:      resp.Date.Format(domain.DateFormat),
		Capacity:  resp.Capacity,
		Booked:    resp.Booked,
		Available: resp.Available,
		IsFull:    resp.Available <= 0,
	}
}

func FromUseCaseRange(lakeID, from, to string, days []*checkAvailability.Response) *AvailabilityRangeResponse {
	resp := &AvailabilityRangeResponse{
		LakeID: lakeID,
		From:   from,
		To:     to,
		Days:   make([]AvailabilityResponse, 0, len(days)),
	}
	for _, d := range days {
		resp.Days = append(resp.Days, *FromUseCaseResponse(d))
	}
	return resp
}
