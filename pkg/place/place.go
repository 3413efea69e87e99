package place

import "errors"

var (
	ErrPlaceNotFound = errors.New("place not found")
	ErrNameRequired  = errors.New("place name is required")
)

// Input describes a place to look up or create. Lat and Lng are nil when
// the address could not be geocoded.
type Input struct {
	Name        string
	Description string
	Address     string
	PlaceType   string
	ExternalID  string
	ImageURL    string
	Lat         *float64
	Lng         *float64
}
