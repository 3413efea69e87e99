package repositoryImp

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"musafir/database"
	"musafir/entities"
	"musafir/pkg/trip"
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

func seed(t *testing.T, db *gorm.DB) (uint, uint) {
	t.Helper()
	tr := entities.Trip{Title: "Trip to Paris", Destination: "Paris"}
	require.NoError(t, db.Create(&tr).Error)
	p := entities.Place{Name: "Louvre"}
	require.NoError(t, db.Create(&p).Error)
	return tr.TripID, p.PlaceID
}

func intp(v int) *int { return &v }

func TestCreateTrip_DefaultStatus(t *testing.T) {
	repo := New(openDB(t))
	tr := &entities.Trip{Destination: "Rome"}
	require.NoError(t, repo.CreateTrip(context.Background(), tr))
	got, err := repo.FindByID(context.Background(), tr.TripID)
	require.NoError(t, err)
	assert.Equal(t, entities.TripStatusUpcoming, got.Status)

	_, err = repo.FindByID(context.Background(), 999)
	assert.True(t, errors.Is(err, trip.ErrTripNotFound))
}

func TestAddItem_AutoOrderIndex(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	repo := New(db)
	tripID, placeID := seed(t, db)

	for want := 1; want <= 3; want++ {
		it := &entities.ItineraryItem{TripID: tripID, PlaceID: placeID, Day: 1}
		require.NoError(t, repo.AddItem(ctx, it, nil))
		assert.Equal(t, want, it.OrderIndex)
	}
	// days are numbered independently
	it := &entities.ItineraryItem{TripID: tripID, PlaceID: placeID, Day: 2}
	require.NoError(t, repo.AddItem(ctx, it, nil))
	assert.Equal(t, 1, it.OrderIndex)

	// auto assignment continues after an explicit gap
	require.NoError(t, repo.AddItem(ctx, &entities.ItineraryItem{TripID: tripID, PlaceID: placeID, Day: 2}, intp(10)))
	it = &entities.ItineraryItem{TripID: tripID, PlaceID: placeID, Day: 2}
	require.NoError(t, repo.AddItem(ctx, it, nil))
	assert.Equal(t, 11, it.OrderIndex)
}

func TestAddItem_ExplicitConflict(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	repo := New(db)
	tripID, placeID := seed(t, db)

	require.NoError(t, repo.AddItem(ctx, &entities.ItineraryItem{TripID: tripID, PlaceID: placeID, Day: 1}, intp(1)))
	err := repo.AddItem(ctx, &entities.ItineraryItem{TripID: tripID, PlaceID: placeID, Day: 1}, intp(1))
	assert.True(t, errors.Is(err, trip.ErrOrderIndexTaken))

	err = repo.AddItem(ctx, &entities.ItineraryItem{TripID: tripID, PlaceID: placeID, Day: 1}, intp(0))
	assert.True(t, errors.Is(err, trip.ErrInvalidOrderIndex))
	err = repo.AddItem(ctx, &entities.ItineraryItem{TripID: tripID, PlaceID: placeID, Day: 0}, nil)
	assert.True(t, errors.Is(err, trip.ErrInvalidDay))
}

func TestAddItem_UnknownTrip(t *testing.T) {
	db := openDB(t)
	_, placeID := seed(t, db)
	err := New(db).AddItem(context.Background(), &entities.ItineraryItem{TripID: 404, PlaceID: placeID, Day: 1}, nil)
	assert.True(t, errors.Is(err, trip.ErrTripNotFound))
}

func TestAddItem_ConcurrentGivesOneToN(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	repo := New(db)
	tripID, placeID := seed(t, db)

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, repo.AddItem(ctx, &entities.ItineraryItem{TripID: tripID, PlaceID: placeID, Day: 1}, nil))
		}()
	}
	wg.Wait()

	items, err := repo.Items(ctx, tripID)
	require.NoError(t, err)
	require.Len(t, items, n)
	got := make([]int, 0, n)
	for _, it := range items {
		got = append(got, it.OrderIndex)
	}
	sort.Ints(got)
	for i, v := range got {
		assert.Equal(t, i+1, v)
	}
}

func TestAddItem_TwoRepositoriesShareTheConstraint(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	tripID, placeID := seed(t, db)
	// separate lock tables, same database: the unique index and retry keep
	// the numbering dense
	a, b := New(db), New(db)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() { defer wg.Done(); assert.NoError(t, a.AddItem(ctx, &entities.ItineraryItem{TripID: tripID, PlaceID: placeID, Day: 3}, nil)) }()
		go func() { defer wg.Done(); assert.NoError(t, b.AddItem(ctx, &entities.ItineraryItem{TripID: tripID, PlaceID: placeID, Day: 3}, nil)) }()
	}
	wg.Wait()

	items, err := a.Items(ctx, tripID)
	require.NoError(t, err)
	require.Len(t, items, 20)
	for i, it := range items {
		assert.Equal(t, i+1, it.OrderIndex)
	}
}

func TestItems_OrderAndPreload(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	repo := New(db)
	tripID, placeID := seed(t, db)
	require.NoError(t, db.Create(&entities.PlaceDetail{PlaceID: placeID, DetailType: "highlight", DetailValue: "Mona Lisa"}).Error)

	require.NoError(t, repo.AddItem(ctx, &entities.ItineraryItem{TripID: tripID, PlaceID: placeID, Day: 2, StartTime: "08:00"}, nil))
	require.NoError(t, repo.AddItem(ctx, &entities.ItineraryItem{TripID: tripID, PlaceID: placeID, Day: 1, StartTime: "18:00"}, intp(2)))
	require.NoError(t, repo.AddItem(ctx, &entities.ItineraryItem{TripID: tripID, PlaceID: placeID, Day: 1, StartTime: "20:00"}, intp(1)))

	items, err := repo.Items(ctx, tripID)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, []string{"20:00", "18:00", "08:00"}, []string{items[0].StartTime, items[1].StartTime, items[2].StartTime})
	require.NotNil(t, items[0].Place)
	assert.Equal(t, "Louvre", items[0].Place.Name)
	require.Len(t, items[0].Place.Details, 1)
}

func TestUpdateAndDeleteItem(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	repo := New(db)
	tripID, placeID := seed(t, db)

	first := &entities.ItineraryItem{TripID: tripID, PlaceID: placeID, Day: 1}
	second := &entities.ItineraryItem{TripID: tripID, PlaceID: placeID, Day: 1}
	require.NoError(t, repo.AddItem(ctx, first, nil))
	require.NoError(t, repo.AddItem(ctx, second, nil))

	second.OrderIndex = 1
	assert.True(t, errors.Is(repo.UpdateItem(ctx, second, false), trip.ErrOrderIndexTaken))

	second.Day = 2
	require.NoError(t, repo.UpdateItem(ctx, second, true))
	assert.Equal(t, 1, second.OrderIndex)

	require.NoError(t, repo.DeleteItem(ctx, first.ItemID))
	assert.True(t, errors.Is(repo.DeleteItem(ctx, first.ItemID), trip.ErrItemNotFound))
	_, err := repo.FindItem(ctx, first.ItemID)
	assert.True(t, errors.Is(err, trip.ErrItemNotFound))
}

func TestListByUser(t *testing.T) {
	ctx := context.Background()
	repo := New(openDB(t))
	uid := uint(5)
	require.NoError(t, repo.CreateTrip(ctx, &entities.Trip{Destination: "A", UserID: &uid, Document: "doc"}))
	require.NoError(t, repo.CreateTrip(ctx, &entities.Trip{Destination: "B"}))

	mine, err := repo.ListByUser(ctx, &uid)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "A", mine[0].Destination)
	assert.Empty(t, mine[0].Document)

	anon, err := repo.ListByUser(ctx, nil)
	require.NoError(t, err)
	require.Len(t, anon, 1)
	assert.Equal(t, "B", anon[0].Destination)
}
