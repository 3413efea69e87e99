package repository

import (
	"context"

	"musafir/entities"
	"musafir/pkg/geocode"
	"musafir/pkg/place"
)

type PlaceRepository interface {
	// EnsurePlace returns the id of the place with the same name and
	// coordinates, creating it when there is none.
	EnsurePlace(ctx context.Context, in place.Input) (uint, error)
	AddDetail(ctx context.Context, placeID uint, detailType, value string) error
	FindByID(ctx context.Context, id uint) (*entities.Place, error)
	CoordinatesByAddress(ctx context.Context, address string) (*geocode.Coordinates, error)
	Count(ctx context.Context) (int64, error)
}
