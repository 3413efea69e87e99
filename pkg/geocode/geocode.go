package geocode

import (
	"context"
	"errors"
	"math"
	"strings"
)

var ErrNoResults = errors.New("geocode: no results")

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Resolver turns a free-text address into coordinates. A nil result is a
// miss: the caller persists the place without coordinates.
type Resolver interface {
	Resolve(ctx context.Context, address string) *Coordinates
}

// Round keeps 6 decimals (~10cm) so the same point from two sources gives
// the same place identity.
func Round(c Coordinates) Coordinates {
	return Coordinates{Lat: round6(c.Lat), Lng: round6(c.Lng)}
}

func round6(v float64) float64 { return math.Round(v*1e6) / 1e6 }

func valid(c Coordinates) bool {
	if math.IsNaN(c.Lat) || math.IsNaN(c.Lng) {
		return false
	}
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}

func normalize(address string) string {
	return strings.ToLower(strings.Join(strings.Fields(address), " "))
}

type null struct{}

// Null never resolves anything. Used when geocoding is disabled.
func Null() Resolver { return null{} }

func (null) Resolve(context.Context, string) *Coordinates { return nil }

type chain []Resolver

// Chain asks each resolver in order and returns the first hit.
func Chain(rs ...Resolver) Resolver { return chain(rs) }

func (c chain) Resolve(ctx context.Context, address string) *Coordinates {
	for _, r := range c {
		if ctx.Err() != nil {
			return nil
		}
		if got := r.Resolve(ctx, address); got != nil {
			return got
		}
	}
	return nil
}
