package types

// Itinerary is the structured object extracted from a model response,
// before any of it is persisted.
type Itinerary struct {
	Trip Trip `json:"trip"`
}

type Trip struct {
	Destination string `json:"destination"`
	Dates       Dates  `json:"dates"`
	Itinerary   []Day  `json:"itinerary"`
}

type Dates struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type Day struct {
	Day        int        `json:"day"`
	Date       string     `json:"date"`
	Activities []Activity `json:"activities"`
}

type Activity struct {
	Time         string   `json:"time"`          // HH:MM or HH:MM-HH:MM
	Place        string   `json:"place"`
	Address      string   `json:"address"`
	Description  string   `json:"description"`
	ExpectedTime string   `json:"expected_time"` // "2 hours", "90 minutes"
	Highlights   []string `json:"highlights,omitempty"`
	Category     string   `json:"category,omitempty"`
}

// ActivityCount is the number of activities across all days.
func (it Itinerary) ActivityCount() int {
	n := 0
	for _, d := range it.Trip.Itinerary {
		n += len(d.Activities)
	}
	return n
}
