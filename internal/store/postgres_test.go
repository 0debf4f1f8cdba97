package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// Requires a reachable PostgreSQL, e.g. POSTGRES_TEST_DSN=postgres://postgres@localhost/postboard_test.
func TestPostgresStore_Contract(t *testing.T) {
	dsn := os.Getenv("POSTGRES_TEST_DSN")
	if dsn == "" {
		t.Skip("POSTGRES_TEST_DSN not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	s, err := ConnectPostgres(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close(context.Background()) })

	runStoreContract(t, s)
}
