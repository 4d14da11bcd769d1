package check_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/fishery-booking/internal/domain"
	lakeRegistry "github.com/m04kA/fishery-booking/internal/infra/registry/lake"
	bookingRepo "github.com/m04kA/fishery-booking/internal/infra/storage/booking"
	"github.com/m04kA/fishery-booking/pkg/logger"
)

func setup(t *testing.T) (*UseCase, *bookingRepo.MemoryStore) {
	t.Helper()

	registry, err := lakeRegistry.NewRegistry([]domain.Lake{
		{ID: "bignor-main", Name: "Bignor Main Lake", Capacity: 3},
		{ID: "wood-pool", Name: "Wood Pool", Capacity: 2},
	})
	require.NoError(t, err)

	store := bookingRepo.NewMemoryStore()
	return NewUseCase(store, registry, logger.Discard()), store
}

func seed(t *testing.T, store *bookingRepo.MemoryStore, member, lake string, date time.Time, cancelled bool) {
	t.Helper()
	start, end := domain.SessionBounds(date)
	b := &domain.Booking{MemberID: member, LakeID: lake, StartAt: start, EndAt: end, CreatedAt: start.Add(-48 * time.Hour)}
	created, err := store.Insert(context.Background(), b)
	require.NoError(t, err)
	if cancelled {
		_, err = store.SetCancelled(context.Background(), created.ID, start.Add(-time.Hour))
		require.NoError(t, err)
	}
}

func TestExecuteCountsNonCancelled(t *testing.T) {
	uc, store := setup(t)
	june1 := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	seed(t, store, "m1", "wood-pool", june1, false)
	seed(t, store, "m2", "wood-pool", june1, true)
	seed(t, store, "m3", "bignor-main", june1, false)

	resp, err := uc.Execute(context.Background(), &Request{LakeID: "wood-pool", Date: june1})
	require.NoError(t, err)

	assert.Equal(t, "Wood Pool", resp.LakeName)
	assert.Equal(t, 2, resp.Capacity)
	assert.Equal(t, 1, resp.Booked)
	assert.Equal(t, 1, resp.Available)
}

// После успешной записи следующий запрос видит уменьшенную вместимость
func TestExecuteReadAfterWrite(t *testing.T) {
	uc, store := setup(t)
	june1 := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	before, err := uc.Execute(context.Background(), &Request{LakeID: "wood-pool", Date: june1})
	require.NoError(t, err)
	assert.Equal(t, 2, before.Available)

	seed(t, store, "m1", "wood-pool", june1, false)
	seed(t, store, "m2", "wood-pool", june1, false)

	after, err := uc.Execute(context.Background(), &Request{LakeID: "wood-pool", Date: june1})
	require.NoError(t, err)
	assert.Equal(t, 0, after.Available)
}

func TestExecuteErrors(t *testing.T) {
	uc, _ := setup(t)

	_, err := uc.Execute(context.Background(), &Request{LakeID: "wood", Date: time.Now()})
	assert.ErrorIs(t, err, ErrUnknownLake)

	_, err = uc.Execute(context.Background(), &Request{LakeID: "wood-pool"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecuteRange(t *testing.T) {
	uc, store := setup(t)
	june1 := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	june3 := june1.AddDate(0, 0, 2)

	seed(t, store, "m1", "bignor-main", june1, false)
	seed(t, store, "m2", "bignor-main", june3, false)
	seed(t, store, "m3", "bignor-main", june3, false)
	seed(t, store, "m4", "bignor-main", june3.AddDate(0, 0, 1), false)

	days, err := uc.ExecuteRange(context.Background(), &RangeRequest{LakeID: "bignor-main", From: june1, To: june3})
	require.NoError(t, err)
	require.Len(t, days, 3)

	assert.Equal(t, june1, days[0].Date)
	assert.Equal(t, 1, days[0].Booked)
	assert.Equal(t, 0, days[1].Booked)
	assert.Equal(t, 3, days[1].Available)
	assert.Equal(t, 2, days[2].Booked)
	assert.Equal(t, 1, days[2].Available)
}

func TestExecuteRangeValidation(t *testing.T) {
	uc, _ := setup(t)
	june1 := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	_, err := uc.ExecuteRange(context.Background(), &RangeRequest{LakeID: "bignor-main", From: june1, To: june1.AddDate(0, 0, -1)})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.ExecuteRange(context.Background(), &RangeRequest{
		LakeID: "bignor-main", From: june1, To: june1.AddDate(0, 0, domain.MaxAvailabilityRangeDays),
	})
	assert.ErrorIs(t, err, ErrRangeTooLarge)

	days, err := uc.ExecuteRange(context.Background(), &RangeRequest{
		LakeID: "bignor-main", From: june1, To: june1.AddDate(0, 0, domain.MaxAvailabilityRangeDays-1),
	})
	require.NoError(t, err)
	assert.Len(t, days, domain.MaxAvailabilityRangeDays)
}
