package lake

import (
	"context"
	"fmt"

	"github.com/m04kA/fishery-booking/internal/domain"
)

// Registry неизменяемый реестр озёр, собирается один раз при старте
type Registry struct {
	lakes []domain.Lake
	byID  map[string]int
}

// NewRegistry проверяет список озёр и строит индекс по ID
// Порядок List совпадает с порядком в конфигурации
func NewRegistry(lakes []domain.Lake) (*Registry, error) {
	r := &Registry{
		lakes: make([]domain.Lake, 0, len(lakes)),
		byID:  make(map[string]int, len(lakes)),
	}

	for _, l := range lakes {
		if l.ID == "" {
			return nil, fmt.Errorf("%w: empty id", ErrInvalidLake)
		}
		if l.Capacity < 1 {
			return nil, fmt.Errorf("%w: %s capacity %d, must be >= 1", ErrInvalidLake, l.ID, l.Capacity)
		}
		if _, ok := r.byID[l.ID]; ok {
			return nil, fmt.Errorf("%w: duplicate id %s", ErrInvalidLake, l.ID)
		}
		r.byID[l.ID] = len(r.lakes)
		r.lakes = append(r.lakes, l)
	}

	return r, nil
}

// Get возвращает озеро по каноническому ID
func (r *Registry) Get(_ context.Context, id string) (*domain.Lake, error) {
	idx, ok := r.byID[id]
	if !ok {
		return nil, ErrLakeNotFound
	}
	l := r.lakes[idx]
	return &l, nil
}

// List возвращает копию списка озёр
func (r *Registry) List(_ context.Context) ([]domain.Lake, error) {
	out := make([]domain.Lake, len(r.lakes))
	copy(out, r.lakes)
	return out, nil
}
