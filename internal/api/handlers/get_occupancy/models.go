package get_occupancy

import (
	"time"

	"github.com/m04kA/fishery-booking/internal/domain"
	"github.com/m04kA/fishery-booking/internal/service/projector"
)

// OccupancyResponse занятость всех озёр на дату
type OccupancyResponse struct {
	Date  string          `json:"date"`
	Lakes []LakeOccupancy `json:"lakes"`
}

// LakeOccupancy "N из M мест" для выбора озера
type LakeOccupancy struct {
	LakeID        string  `json:"lakeId"`
	LakeName      string  `json:"lakeName"`
	Capacity      int     `json:"capacity"`
	Booked        int     `json:"booked"`
	Available     int     `json:"available"`
	OccupancyRate float64 `json:"occupancyRate"` // 0-100
}

func FromProjection(date time.Time, occupancy []projector.LakeOccupancy) *OccupancyResponse {
	resp := &OccupancyResponse{
		Date:  date.Format(domain.DateFormat),
		Lakes: make([]LakeOccupancy, 0, len(occupancy)),
	}
	for _, o := range occupancy {
		resp.Lakes = append(resp.Lakes, LakeOccupancy{
			LakeID:        o.Lake.ID,
			LakeName:      o.Lake.Name,
			Capacity:      o.Availability.Capacity,
			Booked:        o.Availability.Booked,
			Available:     o.Availability.Available,
			OccupancyRate: o.Availability.OccupancyRate(),
		})
	}
	return resp
}
