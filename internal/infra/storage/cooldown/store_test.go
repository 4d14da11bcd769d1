package cooldown

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/fishery-booking/pkg/dbmetrics"
)

func TestMemoryStore(t *testing.T) {
	runStoreSuite(t, func(t *testing.T) Store { return NewMemoryStore() })
}

func TestPostgresRepository(t *testing.T) {
	dsn := os.Getenv("FISHERY_TEST_DSN")
	if dsn == "" {
		t.Skip("FISHERY_TEST_DSN is not set")
	}

	runStoreSuite(t, func(t *testing.T) Store {
		db, err := sql.Open("postgres", dsn)
		require.NoError(t, err)
		t.Cleanup(func() { _ = db.Close() })

		schema, err := os.ReadFile("../../../../migrations/001_init.sql")
		require.NoError(t, err)
		_, err = db.Exec(string(schema))
		require.NoError(t, err)
		_, err = db.Exec("TRUNCATE member_cooldowns")
		require.NoError(t, err)

		return NewRepository(dbmetrics.Wrap(db))
	})
}

func runStoreSuite(t *testing.T, newStore func(t *testing.T) Store) {
	ctx := context.Background()
	anchor := time.Date(2025, 5, 30, 10, 0, 0, 0, time.UTC)

	t.Run("missing anchor", func(t *testing.T) {
		s := newStore(t)
		_, err := s.Get(ctx, "m1")
		assert.ErrorIs(t, err, ErrAnchorNotFound)
	})

	t.Run("set overwrites and get returns utc", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Set(ctx, "m1", anchor))
		require.NoError(t, s.Set(ctx, "m1", anchor.Add(time.Hour)))

		got, err := s.Get(ctx, "m1")
		require.NoError(t, err)
		assert.True(t, got.Equal(anchor.Add(time.Hour)))
		assert.Equal(t, time.UTC, got.Location())
	})

	t.Run("clear is per member and tolerates absence", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Set(ctx, "m1", anchor))
		require.NoError(t, s.Set(ctx, "m2", anchor))

		require.NoError(t, s.Clear(ctx, "m1"))
		require.NoError(t, s.Clear(ctx, "m1"))

		_, err := s.Get(ctx, "m1")
		assert.ErrorIs(t, err, ErrAnchorNotFound)

		_, err = s.Get(ctx, "m2")
		assert.NoError(t, err)
	})
}
