package serviceImp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"musafir/entities"
	placerepo "musafir/pkg/place/repository"
	"musafir/pkg/render"
	"musafir/pkg/trip"
	"musafir/pkg/trip/repository"
	svc "musafir/pkg/trip/service"
)

type service struct {
	repo   repository.TripRepository
	places placerepo.PlaceRepository
}

func New(r repository.TripRepository, places placerepo.PlaceRepository) svc.TripService {
	return &service{repo: r, places: places}
}

func (s *service) GetTrip(ctx context.Context, id uint) (*svc.TripView, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	items, err := s.repo.Items(ctx, id)
	if err != nil {
		return nil, err
	}
	return &svc.TripView{Trip: t, Items: items}, nil
}

func (s *service) ListTrips(ctx context.Context, userID *uint) ([]entities.Trip, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) UpdatePartial(ctx context.Context, id uint, p svc.TripPatch) (*entities.Trip, error) {
	cur, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Title != nil {
		cur.Title = strings.TrimSpace(*p.Title)
	}
	if p.Status != nil {
		st := strings.ToLower(strings.TrimSpace(*p.Status))
		if !entities.ValidTripStatus(st) {
			return nil, trip.ErrInvalidStatus
		}
		cur.Status = st
	}
	if p.StartDate != nil {
		cur.StartDate = strings.TrimSpace(*p.StartDate)
	}
	if p.EndDate != nil {
		cur.EndDate = strings.TrimSpace(*p.EndDate)
	}
	if p.StartDate != nil || p.EndDate != nil {
		if err := checkDates(cur.StartDate, cur.EndDate); err != nil {
			return nil, err
		}
	}
	return cur, s.repo.Update(ctx, cur)
}

func checkDates(start, end string) error {
	var from, to time.Time
	var err error
	if start != "" {
		if from, err = time.Parse(time.DateOnly, start); err != nil {
			return trip.ErrInvalidDate
		}
	}
	if end != "" {
		if to, err = time.Parse(time.DateOnly, end); err != nil {
			return trip.ErrInvalidDate
		}
	}
	if start != "" && end != "" && to.Before(from) {
		return trip.ErrEndBeforeStart
	}
	return nil
}

func (s *service) AddItem(ctx context.Context, tripID uint, in svc.ItemInput) (*entities.ItineraryItem, error) {
	if err := checkTimes(in.StartTime, in.EndTime); err != nil {
		return nil, err
	}
	if _, err := s.places.FindByID(ctx, in.PlaceID); err != nil {
		return nil, err
	}
	item := &entities.ItineraryItem{
		TripID:    tripID,
		PlaceID:   in.PlaceID,
		Day:       in.Day,
		StartTime: in.StartTime,
		EndTime:   in.EndTime,
		Notes:     strings.TrimSpace(in.Notes),
	}
	if err := s.repo.AddItem(ctx, item, in.OrderIndex); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *service) UpdateItem(ctx context.Context, itemID uint, p svc.ItemPatch) (*entities.ItineraryItem, error) {
	cur, err := s.repo.FindItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	dayChanged := p.Day != nil && *p.Day != cur.Day
	if p.Day != nil {
		cur.Day = *p.Day
	}
	if p.StartTime != nil {
		cur.StartTime = strings.TrimSpace(*p.StartTime)
	}
	if p.EndTime != nil {
		cur.EndTime = strings.TrimSpace(*p.EndTime)
	}
	if p.Notes != nil {
		cur.Notes = strings.TrimSpace(*p.Notes)
	}
	if p.OrderIndex != nil {
		cur.OrderIndex = *p.OrderIndex
	}
	if err := checkTimes(cur.StartTime, cur.EndTime); err != nil {
		return nil, err
	}
	// moving to another day without a position appends to that day
	reassign := dayChanged && p.OrderIndex == nil
	if err := s.repo.UpdateItem(ctx, cur, reassign); err != nil {
		return nil, err
	}
	return cur, nil
}

func (s *service) DeleteItem(ctx context.Context, itemID uint) error {
	return s.repo.DeleteItem(ctx, itemID)
}

func (s *service) RenderDocument(ctx context.Context, id uint) (string, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return "", err
	}
	items, err := s.repo.Items(ctx, id)
	if err != nil {
		return "", fmt.Errorf("load items of trip %d: %w", id, err)
	}
	return render.Render(t, items), nil
}

func checkTimes(times ...string) error {
	for _, v := range times {
		if v == "" {
			continue
		}
		if _, err := time.Parse("15:04", v); err != nil {
			return trip.ErrInvalidTime
		}
	}
	return nil
}
