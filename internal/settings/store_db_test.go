//go:build integration

package settings

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"sync"
	"testing"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}
	db, err := sql.Open("pgx", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store := NewPostgresStore(db)
	require.NoError(t, store.EnsureSchema(context.Background()))
	_, err = db.Exec(`TRUNCATE store_settings`)
	require.NoError(t, err)
	return db
}

func TestPostgresStore_ConcurrentFirstWriters(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(NewPostgresStore(db), nil, nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			k := Keys()[i%len(Keys())]
			assert.NoError(t, svc.Set(ctx, string(k), strptr(fmt.Sprintf("v%d", i))))
		}(i)
	}
	wg.Wait()

	var n int
	require.NoError(t, db.QueryRow(`SELECT count(*) FROM store_settings`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestPostgresStore_RoundTrip(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(NewPostgresStore(db), nil, nil)
	ctx := context.Background()

	vals, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, Defaults(), vals)

	require.NoError(t, svc.Set(ctx, string(BusinessEmail), strptr("shop@example.com")))
	require.NoError(t, svc.Set(ctx, string(WhatsAppNumber), strptr("+15550100")))

	vals, err = svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, Values{
		WhatsAppNumber: "+15550100",
		BusinessName:   "",
		BusinessEmail:  "shop@example.com",
	}, vals)
}
