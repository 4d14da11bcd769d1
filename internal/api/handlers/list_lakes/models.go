package list_lakes

import "github.com/m04kA/fishery-booking/internal/domain"

// LakeResponse HTTP response model
type LakeResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Capacity    int    `json:"capacity"`
	Description string `json:"description,omitempty"`
}

func FromDomainLake(l domain.Lake) LakeResponse {
	return LakeResponse{
		ID:          l.ID,
		Name:        l.Name,
		Capacity:    l.Capacity,
		Description: l.Description,
	}
}
