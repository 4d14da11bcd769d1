package booking

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/fishery-booking/internal/domain"
)

// MemoryStore in-memory журнал бронирований для тестов и одноинстансного запуска
// Наружу отдаются только копии записей
type MemoryStore struct {
	mu       sync.RWMutex
	bookings map[string]*domain.Booking
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{bookings: make(map[string]*domain.Booking)}
}

func (s *MemoryStore) Insert(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	b := booking.Clone()
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}
	if b.CachedStatus == "" {
		b.CachedStatus = domain.StatusUpcoming
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.bookings[b.ID]; ok {
		return nil, ErrDuplicateID
	}
	s.bookings[b.ID] = b

	return b.Clone(), nil
}

func (s *MemoryStore) GetByID(_ context.Context, id string) (*domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.bookings[id]
	if !ok {
		return nil, ErrBookingNotFound
	}
	return b.Clone(), nil
}

func (s *MemoryStore) GetByMember(_ context.Context, memberID string) ([]*domain.Booking, error) {
	out := s.filter(func(b *domain.Booking) bool { return b.MemberID == memberID })
	sort.SliceStable(out, func(i, j int) bool { return later(out[i], out[j]) })
	return out, nil
}

func (s *MemoryStore) GetByLakeAndDate(_ context.Context, lakeID string, date time.Time) ([]*domain.Booking, error) {
	start, end := domain.SessionBounds(date)
	out := s.filter(func(b *domain.Booking) bool {
		return b.LakeID == lakeID && !b.StartAt.Before(start) && b.StartAt.Before(end)
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *MemoryStore) SetCancelled(_ context.Context, id string, at time.Time) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[id]
	if !ok {
		return nil, ErrBookingNotFound
	}
	if b.CancelledAt == nil {
		cancelledAt := at.UTC()
		b.CancelledAt = &cancelledAt
	}
	b.CachedStatus = domain.StatusCancelled

	return b.Clone(), nil
}

func (s *MemoryStore) All(_ context.Context) ([]*domain.Booking, error) {
	out := s.filter(func(*domain.Booking) bool { return true })
	sortChronologically(out)
	return out, nil
}

func (s *MemoryStore) ListByDateRange(_ context.Context, from, to time.Time) ([]*domain.Booking, error) {
	out := s.filter(func(b *domain.Booking) bool {
		return !b.StartAt.Before(from) && b.StartAt.Before(to)
	})
	sortChronologically(out)
	return out, nil
}

func (s *MemoryStore) MarkCompleted(_ context.Context, ids []string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated := 0
	for _, id := range ids {
		b, ok := s.bookings[id]
		if !ok || b.IsCancelled() || b.CachedStatus != domain.StatusUpcoming {
			continue
		}
		b.CachedStatus = domain.StatusCompleted
		updated++
	}
	return updated, nil
}

func (s *MemoryStore) filter(keep func(b *domain.Booking) bool) []*domain.Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Booking, 0)
	for _, b := range s.bookings {
		if keep(b) {
			out = append(out, b.Clone())
		}
	}
	return out
}

func sortChronologically(bookings []*domain.Booking) {
	sort.SliceStable(bookings, func(i, j int) bool { return later(bookings[j], bookings[i]) })
}

// later порядок "новые сверху": по началу сессии, затем по времени создания, затем по ID
func later(a, b *domain.Booking) bool {
	if !a.StartAt.Equal(b.StartAt) {
		return a.StartAt.After(b.StartAt)
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID > b.ID
}
