package geocode

import (
	"context"

	log "github.com/sirupsen/logrus"
)

// AddressLookup finds coordinates already stored for an address.
type AddressLookup interface {
	CoordinatesByAddress(ctx context.Context, address string) (*Coordinates, error)
}

type storeResolver struct{ lookup AddressLookup }

// FromStore reuses coordinates of places that were geocoded before, so
// repeated finalizes of the same trip skip the network.
func FromStore(lookup AddressLookup) Resolver { return &storeResolver{lookup: lookup} }

func (s *storeResolver) Resolve(ctx context.Context, address string) *Coordinates {
	if normalize(address) == "" {
		return nil
	}
	c, err := s.lookup.CoordinatesByAddress(ctx, address)
	if err != nil {
		log.WithError(err).Debug("stored coordinates lookup failed")
		return nil
	}
	return c
}
