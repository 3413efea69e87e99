package repository

import (
	"context"

	"musafir/entities"
)

type TripRepository interface {
	CreateTrip(ctx context.Context, t *entities.Trip) error
	FindByID(ctx context.Context, id uint) (*entities.Trip, error)
	ListByUser(ctx context.Context, userID *uint) ([]entities.Trip, error)
	Update(ctx context.Context, t *entities.Trip) error

	// AddItem stores item under trip item.TripID. A nil orderIndex appends
	// the item after the last one of its day.
	AddItem(ctx context.Context, item *entities.ItineraryItem, orderIndex *int) error
	FindItem(ctx context.Context, id uint) (*entities.ItineraryItem, error)
	// UpdateItem saves item. With reassignOrder the item moves to the end
	// of its (possibly new) day.
	UpdateItem(ctx context.Context, item *entities.ItineraryItem, reassignOrder bool) error
	DeleteItem(ctx context.Context, id uint) error
	// Items returns the items of a trip with their places and place
	// details, ordered by day then order_index.
	Items(ctx context.Context, tripID uint) ([]entities.ItineraryItem, error)
}
