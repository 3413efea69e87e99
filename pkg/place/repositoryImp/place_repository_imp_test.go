package repositoryImp

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"musafir/database"
	"musafir/entities"
	"musafir/pkg/place"
)

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.OpenSQLite(":memory:", database.Options{})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func f(v float64) *float64 { return &v }

func TestEnsurePlace_Idempotent(t *testing.T) {
	ctx := context.Background()
	repo := New(openDB(t))

	in := place.Input{Name: "Louvre", Address: "Rue de Rivoli, Paris", Lat: f(48.8606111), Lng: f(2.337644)}
	id1, err := repo.EnsurePlace(ctx, in)
	require.NoError(t, err)
	id2, err := repo.EnsurePlace(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, id1, id2)

	// a different point with the same name is a different place
	id3, err := repo.EnsurePlace(ctx, place.Input{Name: "Louvre", Lat: f(45.0), Lng: f(2.0)})
	require.NoError(t, err)
	assert.NotEqual(t, id1, id3)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestEnsurePlace_NullCoordinatesCompareEqual(t *testing.T) {
	ctx := context.Background()
	repo := New(openDB(t))

	id1, err := repo.EnsurePlace(ctx, place.Input{Name: "Secret Garden"})
	require.NoError(t, err)
	id2, err := repo.EnsurePlace(ctx, place.Input{Name: "  Secret Garden "})
	require.NoError(t, err)
	assert.Equal(t, id1, id2)

	// only one of the two coordinates is no coordinates
	id3, err := repo.EnsurePlace(ctx, place.Input{Name: "Secret Garden", Lat: f(1)})
	require.NoError(t, err)
	assert.Equal(t, id1, id3)
}

func TestEnsurePlace_RoundsCoordinates(t *testing.T) {
	ctx := context.Background()
	repo := New(openDB(t))

	id1, err := repo.EnsurePlace(ctx, place.Input{Name: "Empire State Building", Lat: f(40.7484405), Lng: f(-73.9856644)})
	require.NoError(t, err)
	id2, err := repo.EnsurePlace(ctx, place.Input{Name: "Empire State Building", Lat: f(40.74844049), Lng: f(-73.98566441)})
	require.NoError(t, err)
	assert.Equal(t, id1, id2)
}

func TestEnsurePlace_IdentityIndexRejectsDuplicates(t *testing.T) {
	db := openDB(t)
	require.NoError(t, db.Create(&entities.Place{Name: "Pier 39"}).Error)
	err := db.Create(&entities.Place{Name: "Pier 39"}).Error
	require.Error(t, err)
	assert.True(t, database.IsUniqueViolation(err))
}

func TestEnsurePlace_Concurrent(t *testing.T) {
	ctx := context.Background()
	repo := New(openDB(t))

	const n = 16
	ids := make([]uint, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id, err := repo.EnsurePlace(ctx, place.Input{Name: "Central Park", Lat: f(40.785091), Lng: f(-73.968285)})
			assert.NoError(t, err)
			ids[i] = id
		}(i)
	}
	wg.Wait()
	for _, id := range ids {
		assert.Equal(t, ids[0], id)
	}
}

func TestEnsurePlace_NameRequired(t *testing.T) {
	_, err := New(openDB(t)).EnsurePlace(context.Background(), place.Input{Name: "  "})
	assert.True(t, errors.Is(err, place.ErrNameRequired))
}

func TestAddDetail_Idempotent(t *testing.T) {
	ctx := context.Background()
	repo := New(openDB(t))
	id, err := repo.EnsurePlace(ctx, place.Input{Name: "Louvre"})
	require.NoError(t, err)

	require.NoError(t, repo.AddDetail(ctx, id, entities.DetailHighlight, "Mona Lisa"))
	require.NoError(t, repo.AddDetail(ctx, id, entities.DetailHighlight, "Mona Lisa"))
	require.NoError(t, repo.AddDetail(ctx, id, entities.DetailActivity, "Mona Lisa"))
	require.NoError(t, repo.AddDetail(ctx, id, entities.DetailHighlight, "   "))

	p, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	require.Len(t, p.Details, 2)
	assert.Equal(t, entities.DetailHighlight, p.Details[0].DetailType)
	assert.Equal(t, entities.DetailActivity, p.Details[1].DetailType)
}

func TestFindByID_NotFound(t *testing.T) {
	_, err := New(openDB(t)).FindByID(context.Background(), 42)
	assert.True(t, errors.Is(err, place.ErrPlaceNotFound))
}

func TestCoordinatesByAddress(t *testing.T) {
	ctx := context.Background()
	repo := New(openDB(t))
	_, err := repo.EnsurePlace(ctx, place.Input{Name: "No coords", Address: "1 Main St"})
	require.NoError(t, err)

	c, err := repo.CoordinatesByAddress(ctx, "1 Main St")
	require.NoError(t, err)
	assert.Nil(t, c)

	_, err = repo.EnsurePlace(ctx, place.Input{Name: "Cafe", Address: "1 Main St", Lat: f(10), Lng: f(20)})
	require.NoError(t, err)
	c, err = repo.CoordinatesByAddress(ctx, "1 MAIN ST")
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, 10.0, c.Lat)
	assert.Equal(t, 20.0, c.Lng)
}

func TestMigrate_FoldsLegacyDuplicates(t *testing.T) {
	db := openDB(t)
	require.NoError(t, db.Exec(`DROP INDEX ux_places_identity`).Error)
	a := entities.Place{Name: "Dup"}
	b := entities.Place{Name: "Dup"}
	require.NoError(t, db.Create(&a).Error)
	require.NoError(t, db.Create(&b).Error)
	require.NoError(t, db.Create(&entities.PlaceDetail{PlaceID: b.PlaceID, DetailType: "highlight", DetailValue: "x"}).Error)

	require.NoError(t, database.Migrate(db))

	var n int64
	require.NoError(t, db.Model(&entities.Place{}).Where("name = ?", "Dup").Count(&n).Error)
	assert.Equal(t, int64(1), n)
	var d entities.PlaceDetail
	require.NoError(t, db.First(&d).Error)
	assert.Equal(t, a.PlaceID, d.PlaceID)
}
