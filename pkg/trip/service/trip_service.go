package service

import (
	"context"

	"musafir/entities"
)

type TripService interface {
	GetTrip(ctx context.Context, id uint) (*TripView, error)
	ListTrips(ctx context.Context, userID *uint) ([]entities.Trip, error)
	UpdatePartial(ctx context.Context, id uint, patch TripPatch) (*entities.Trip, error)
	AddItem(ctx context.Context, tripID uint, in ItemInput) (*entities.ItineraryItem, error)
	UpdateItem(ctx context.Context, itemID uint, patch ItemPatch) (*entities.ItineraryItem, error)
	DeleteItem(ctx context.Context, itemID uint) error
	// RenderDocument rebuilds the display document from what is stored.
	RenderDocument(ctx context.Context, id uint) (string, error)
}

type TripView struct {
	*entities.Trip
	Items []entities.ItineraryItem `json:"items"`
}

type TripPatch struct {
	Title     *string `json:"title"`
	Status    *string `json:"status"`
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
}

type ItemInput struct {
	PlaceID    uint   `json:"place_id"`
	Day        int    `json:"day"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	Notes      string `json:"notes"`
	OrderIndex *int   `json:"order_index"`
}

type ItemPatch struct {
	Day        *int    `json:"day"`
	StartTime  *string `json:"start_time"`
	EndTime    *string `json:"end_time"`
	Notes      *string `json:"notes"`
	OrderIndex *int    `json:"order_index"`
}
