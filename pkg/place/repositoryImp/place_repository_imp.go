package repositoryImp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"musafir/database"
	"musafir/entities"
	"musafir/pkg/geocode"
	"musafir/pkg/place"
	"musafir/pkg/place/repository"
)

type placeRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.PlaceRepository { return &placeRepo{db} }

func (r *placeRepo) EnsurePlace(ctx context.Context, in place.Input) (uint, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return 0, place.ErrNameRequired
	}
	lat, lng := roundPtr(in.Lat), roundPtr(in.Lng)
	if lat == nil || lng == nil {
		lat, lng = nil, nil
	}

	if id, err := r.findIdentity(ctx, name, lat, lng); err != nil || id != 0 {
		return id, err
	}

	p := entities.Place{
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		Latitude:    lat,
		Longitude:   lng,
		Address:     strings.TrimSpace(in.Address),
		PlaceType:   in.PlaceType,
		ExternalID:  in.ExternalID,
		ImageURL:    in.ImageURL,
	}
	err := r.db.WithContext(ctx).Create(&p).Error
	if err == nil {
		return p.PlaceID, nil
	}
	if !database.IsUniqueViolation(err) {
		return 0, fmt.Errorf("create place %q: %w", name, err)
	}

	// lost the race to another writer: the row is there now
	id, ferr := r.findIdentity(ctx, name, lat, lng)
	if ferr != nil {
		return 0, ferr
	}
	if id == 0 {
		return 0, fmt.Errorf("create place %q: %w", name, err)
	}
	return id, nil
}

// findIdentity returns 0 when no place matches. NULL coordinates match
// NULL coordinates.
func (r *placeRepo) findIdentity(ctx context.Context, name string, lat, lng *float64) (uint, error) {
	q := r.db.WithContext(ctx).Model(&entities.Place{}).Where("name = ?", name)
	if lat == nil {
		q = q.Where("latitude IS NULL AND longitude IS NULL")
	} else {
		q = q.Where("latitude = ? AND longitude = ?", *lat, *lng)
	}
	var p entities.Place
	err := q.Order("place_id asc").Take(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("find place %q: %w", name, err)
	}
	return p.PlaceID, nil
}

func (r *placeRepo) AddDetail(ctx context.Context, placeID uint, detailType, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	d := entities.PlaceDetail{PlaceID: placeID, DetailType: detailType, DetailValue: value}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&d).Error
	if err != nil && !database.IsUniqueViolation(err) {
		return fmt.Errorf("add %s to place %d: %w", detailType, placeID, err)
	}
	return nil
}

func (r *placeRepo) FindByID(ctx context.Context, id uint) (*entities.Place, error) {
	var p entities.Place
	err := r.db.WithContext(ctx).
		Preload("Details", func(db *gorm.DB) *gorm.DB { return db.Order("detail_id asc") }).
		First(&p, "place_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, place.ErrPlaceNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *placeRepo) CoordinatesByAddress(ctx context.Context, address string) (*geocode.Coordinates, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, nil
	}
	var p entities.Place
	err := r.db.WithContext(ctx).
		Where("address = ? COLLATE NOCASE", address).
		Where("latitude IS NOT NULL AND longitude IS NOT NULL").
		Order("place_id asc").
		Take(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &geocode.Coordinates{Lat: *p.Latitude, Lng: *p.Longitude}, nil
}

func (r *placeRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	return n, r.db.WithContext(ctx).Model(&entities.Place{}).Count(&n).Error
}

func roundPtr(v *float64) *float64 {
	if v == nil {
		return nil
	}
	out := geocode.Round(geocode.Coordinates{Lat: *v}).Lat
	return &out
}
