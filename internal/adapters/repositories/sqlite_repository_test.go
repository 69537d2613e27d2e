package repositories

import (
	"context"
	"database/sql"
	"itinerary-route-service/internal/dataset"
	"itinerary-route-service/internal/platform/sqlitedb"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededDB(t *testing.T) (*sql.DB, *dataset.Dataset) {
	t.Helper()
	db, err := sqlitedb.Open(filepath.Join(t.TempDir(), "app.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	ds, err := dataset.Default()
	require.NoError(t, err)

	require.NoError(t, InitSchema(db))
	require.NoError(t, SeedDataset(db, ds))
	return db, ds
}

func TestSeedIsRepeatable(t *testing.T) {
	db, ds := seededDB(t)

	require.NoError(t, InitSchema(db))
	require.NoError(t, SeedDataset(db, ds))

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM spots`).Scan(&n))
	assert.Equal(t, len(ds.Spots), n)
}

func TestMetroRepositoryRoundTrip(t *testing.T) {
	db, ds := seededDB(t)
	repo := NewSqliteMetroRepository(db)
	ctx := context.Background()

	lines, err := repo.ListLines(ctx)
	require.NoError(t, err)
	assert.Equal(t, ds.MetroLines(), lines)

	stations, err := repo.ListStations(ctx)
	require.NoError(t, err)
	assert.Equal(t, ds.MetroStations(), stations)
}

func TestSpotRepository(t *testing.T) {
	db, ds := seededDB(t)
	repo := NewSqliteSpotRepository(db)
	ctx := context.Background()

	spots, err := repo.ListSpots(ctx)
	require.NoError(t, err)
	assert.Equal(t, ds.DomainSpots(), spots)

	accs, err := repo.ListAccommodations(ctx)
	require.NoError(t, err)
	assert.Equal(t, ds.DomainAccommodations(), accs)

	sp, ok, err := repo.GetSpot(ctx, "sensoji")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Asakusa", sp.Area)
	assert.Equal(t, []string{"culture", "history", "photo"}, sp.Tags)

	_, ok, err = repo.GetSpot(ctx, "nowhere")
	require.NoError(t, err)
	assert.False(t, ok)

	acc, ok, err := repo.GetAccommodation(ctx, "ueno")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Len(t, acc.Advantages, 4)

	_, ok, err = repo.GetAccommodation(ctx, "nowhere")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNilDB(t *testing.T) {
	_, err := NewSqliteSpotRepository(nil).ListSpots(context.Background())
	require.Error(t, err)
	_, err = NewSqliteMetroRepository(nil).ListLines(context.Background())
	require.Error(t, err)
	require.Error(t, InitSchema(nil))
}

func TestReseedDropsCachedTransitRoutes(t *testing.T) {
	db, ds := seededDB(t)

	_, err := db.Exec(`INSERT INTO transit_cache (route_key, payload) VALUES ('tokyo|ueno', '{}')`)
	require.NoError(t, err)

	ds.Lines[0].Name = "Yamanote (renamed)"
	require.NoError(t, SeedDataset(db, ds))

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM transit_cache`).Scan(&n))
	assert.Equal(t, 0, n)

	lines, err := NewSqliteMetroRepository(db).ListLines(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Yamanote (renamed)", lines[0].Name)
}
