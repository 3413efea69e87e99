package repositoryImp

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"musafir/database"
	"musafir/entities"
	"musafir/pkg/trip"
	"musafir/pkg/trip/repository"
)

const maxOrderAttempts = 5

type tripRepo struct {
	db    *gorm.DB
	locks *keyedMutex
}

func New(db *gorm.DB) repository.TripRepository {
	return &tripRepo{db: db, locks: newKeyedMutex()}
}

func (r *tripRepo) CreateTrip(ctx context.Context, t *entities.Trip) error {
	if t.Status == "" {
		t.Status = entities.TripStatusUpcoming
	}
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *tripRepo) FindByID(ctx context.Context, id uint) (*entities.Trip, error) {
	var t entities.Trip
	err := r.db.WithContext(ctx).First(&t, "trip_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, trip.ErrTripNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *tripRepo) ListByUser(ctx context.Context, userID *uint) ([]entities.Trip, error) {
	q := r.db.WithContext(ctx).Model(&entities.Trip{}).Omit("document", "itinerary_json")
	if userID != nil {
		q = q.Where("user_id = ?", *userID)
	} else {
		q = q.Where("user_id IS NULL")
	}
	var list []entities.Trip
	return list, q.Order("created_at desc, trip_id desc").Find(&list).Error
}

func (r *tripRepo) Update(ctx context.Context, t *entities.Trip) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *tripRepo) AddItem(ctx context.Context, item *entities.ItineraryItem, orderIndex *int) error {
	if item.Day < 1 {
		return trip.ErrInvalidDay
	}
	if orderIndex != nil && *orderIndex < 1 {
		return trip.ErrInvalidOrderIndex
	}

	unlock := r.locks.Lock(dayKey(item.TripID, item.Day))
	defer unlock()

	var err error
	for attempt := 1; attempt <= maxOrderAttempts; attempt++ {
		err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tripExists(tx, item.TripID); err != nil {
				return err
			}
			if orderIndex != nil {
				item.OrderIndex = *orderIndex
			} else {
				next, err := nextOrderIndex(tx, item.TripID, item.Day)
				if err != nil {
					return err
				}
				item.OrderIndex = next
			}
			item.ItemID = 0
			return tx.Omit("Place").Create(item).Error
		})
		if err == nil || !database.IsUniqueViolation(err) {
			return err
		}
		if orderIndex != nil {
			return trip.ErrOrderIndexTaken
		}
		// another process wrote the same (trip, day) between our read and insert
		log.WithFields(log.Fields{"trip_id": item.TripID, "day": item.Day, "attempt": attempt}).
			Warn("order index conflict, retrying")
	}
	return fmt.Errorf("assign order index after %d attempts: %w", maxOrderAttempts, err)
}

func (r *tripRepo) FindItem(ctx context.Context, id uint) (*entities.ItineraryItem, error) {
	var it entities.ItineraryItem
	err := r.db.WithContext(ctx).First(&it, "item_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, trip.ErrItemNotFound
	}
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *tripRepo) UpdateItem(ctx context.Context, item *entities.ItineraryItem, reassignOrder bool) error {
	if item.Day < 1 {
		return trip.ErrInvalidDay
	}
	if item.OrderIndex < 1 && !reassignOrder {
		return trip.ErrInvalidOrderIndex
	}
	unlock := r.locks.Lock(dayKey(item.TripID, item.Day))
	defer unlock()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if reassignOrder {
			next, err := nextOrderIndex(tx, item.TripID, item.Day)
			if err != nil {
				return err
			}
			item.OrderIndex = next
		}
		return tx.Omit("Place").Save(item).Error
	})
	if database.IsUniqueViolation(err) {
		return trip.ErrOrderIndexTaken
	}
	return err
}

func (r *tripRepo) DeleteItem(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&entities.ItineraryItem{}, "item_id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return trip.ErrItemNotFound
	}
	return nil
}

func (r *tripRepo) Items(ctx context.Context, tripID uint) ([]entities.ItineraryItem, error) {
	var items []entities.ItineraryItem
	err := r.db.WithContext(ctx).
		Preload("Place").
		Preload("Place.Details", func(db *gorm.DB) *gorm.DB { return db.Order("detail_id asc") }).
		Where("trip_id = ?", tripID).
		Order("day asc, order_index asc, item_id asc").
		Find(&items).Error
	return items, err
}

func tripExists(tx *gorm.DB, tripID uint) error {
	var n int64
	if err := tx.Model(&entities.Trip{}).Where("trip_id = ?", tripID).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return trip.ErrTripNotFound
	}
	return nil
}

func nextOrderIndex(tx *gorm.DB, tripID uint, day int) (int, error) {
	var max int
	err := tx.Model(&entities.ItineraryItem{}).
		Where("trip_id = ? AND day = ?", tripID, day).
		Select("COALESCE(MAX(order_index), 0)").
		Scan(&max).Error
	if err != nil {
		return 0, fmt.Errorf("max order index: %w", err)
	}
	return max + 1, nil
}

func dayKey(tripID uint, day int) string { return fmt.Sprintf("%d:%d", tripID, day) }
