package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"musafir/entities"
)

func parisTrip() (*entities.Trip, []entities.ItineraryItem) {
	louvre := &entities.Place{PlaceID: 1, Name: "Louvre", Description: "World's largest art museum", Details: []entities.PlaceDetail{
		{DetailID: 3, DetailType: entities.DetailActivity, DetailValue: "Guided tour"},
		{DetailID: 2, DetailType: entities.DetailHighlight, DetailValue: "Winged Victory"},
		{DetailID: 1, DetailType: entities.DetailHighlight, DetailValue: "Mona Lisa"},
	}}
	eiffel := &entities.Place{PlaceID: 2, Name: "Eiffel Tower"}
	cafe := &entities.Place{PlaceID: 3, Name: "Cafe de Flore"}
	t := &entities.Trip{TripID: 7, Title: "Trip to Paris", Destination: "Paris", StartDate: "2025-05-01", EndDate: "2025-05-02"}
	items := []entities.ItineraryItem{
		{ItemID: 12, Day: 2, OrderIndex: 1, StartTime: "10:00", EndTime: "12:00", Place: eiffel, Notes: "Go early"},
		// later start time but earlier order index: order index wins
		{ItemID: 11, Day: 1, OrderIndex: 2, StartTime: "08:00", EndTime: "09:00", Place: cafe},
		{ItemID: 10, Day: 1, OrderIndex: 1, StartTime: "09:30", EndTime: "12:30", Place: louvre, Notes: "Book tickets"},
	}
	return t, items
}

func TestRender_Structure(t *testing.T) {
	trip, items := parisTrip()
	out := Render(trip, items)

	assert.True(t, strings.HasPrefix(out, "# Trip to Paris\n"))
	assert.Contains(t, out, "**Destination:** Paris")
	assert.Contains(t, out, "**Dates:** 2025-05-01 to 2025-05-02")

	order := []string{
		"## Day 1",
		"### 09:30-12:30 Louvre",
		"Book tickets",
		"World's largest art museum",
		"**Highlights**\n- Mona Lisa\n- Winged Victory",
		"**Activities**\n- Guided tour",
		"### 08:00-09:00 Cafe de Flore",
		"## Day 2",
		"### 10:00-12:00 Eiffel Tower",
		"Go early",
	}
	pos := -1
	for _, s := range order {
		i := strings.Index(out, s)
		if assert.GreaterOrEqual(t, i, 0, "missing %q in\n%s", s, out) {
			assert.Greater(t, i, pos, "%q out of order", s)
			pos = i
		}
	}
}

func TestRender_Deterministic(t *testing.T) {
	trip, items := parisTrip()
	first := Render(trip, items)

	reversed := make([]entities.ItineraryItem, len(items))
	for i := range items {
		reversed[len(items)-1-i] = items[i]
	}
	assert.Equal(t, first, Render(trip, reversed))
	assert.Equal(t, first, Render(trip, items))
	// the caller's slice is left alone
	assert.Equal(t, uint(12), items[0].ItemID)
}

func TestRender_TieBreakOnItemID(t *testing.T) {
	trip := &entities.Trip{Title: "T"}
	a := entities.ItineraryItem{ItemID: 2, Day: 1, OrderIndex: 1, Place: &entities.Place{Name: "B"}}
	b := entities.ItineraryItem{ItemID: 1, Day: 1, OrderIndex: 1, Place: &entities.Place{Name: "A"}}
	out := Render(trip, []entities.ItineraryItem{a, b})
	assert.Less(t, strings.Index(out, "### A"), strings.Index(out, "### B"))
}

func TestRender_Empty(t *testing.T) {
	out := Render(&entities.Trip{Destination: "Lisbon"}, nil)
	assert.Contains(t, out, "# Trip to Lisbon")
	assert.Contains(t, out, "No activities planned yet")
	assert.NotContains(t, out, "**Dates:**")
}

func TestRender_MissingPlaceAndTimes(t *testing.T) {
	out := Render(&entities.Trip{Title: "T"}, []entities.ItineraryItem{{ItemID: 1, Day: 1, OrderIndex: 1, StartTime: "14:00"}})
	assert.Contains(t, out, "### 14:00 Unknown place")
}

func TestRender_NotesThenDescription(t *testing.T) {
	trip := &entities.Trip{Title: "T"}
	louvre := &entities.Place{Name: "Louvre", Description: "Art museum"}
	out := Render(trip, []entities.ItineraryItem{{Day: 1, OrderIndex: 1, Place: louvre, Notes: "Art museum"}})

	assert.Equal(t, "# T\n\n## Day 1\n\n### Louvre\n\nArt museum\n\nArt museum\n", out)
}
