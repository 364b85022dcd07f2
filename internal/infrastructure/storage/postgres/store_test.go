package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"roster/internal/infrastructure/storage/storagetest"
)

// TestConformance runs against a real server when ROSTER_TEST_DATABASE_URL is set.
// Each test starts from truncated tables.
func TestConformance(t *testing.T) {
	dsn := os.Getenv("ROSTER_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("ROSTER_TEST_DATABASE_URL not set")
	}

	suite.Run(t, &storagetest.Suite{
		Open: func(t *testing.T) storagetest.Backend {
			ctx := context.Background()
			pool, err := NewPool(ctx, DefaultPoolConfig(dsn))
			require.NoError(t, err)

			s := New(pool, DefaultTxOptions())
			t.Cleanup(func() { _ = s.Close() })

			require.NoError(t, s.Migrate(ctx))
			_, err = pool.Exec(ctx, "TRUNCATE roster_outbox, players, teams")
			require.NoError(t, err)
			return s
		},
	})
}

func TestPlayerByIDRejectsNonUUIDWithoutQuery(t *testing.T) {
	// fakeDB has no Query implementation: reaching the database would panic.
	s := newStore(&fakeDB{}, DefaultTxOptions())

	p, err := s.PlayerByID(context.Background(), "not-a-uuid")
	require.NoError(t, err)
	require.Nil(t, p)
}
