package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"musafir/entities"
)

func TestFileName(t *testing.T) {
	assert.Equal(t, "trip-to-sao-paulo.xlsx", FileName(&entities.Trip{Title: "Trip to São Paulo"}))
	assert.Equal(t, "trip-kyoto.xlsx", FileName(&entities.Trip{Destination: "Kyoto"}))
	assert.Equal(t, "trip-9.xlsx", FileName(&entities.Trip{TripID: 9}))
}

func TestWrite(t *testing.T) {
	lat, lng := 48.8606, 2.3376
	louvre := &entities.Place{Name: "Louvre", Address: "Rue de Rivoli", Latitude: &lat, Longitude: &lng, Details: []entities.PlaceDetail{
		{DetailID: 2, DetailType: entities.DetailHighlight, DetailValue: "Venus de Milo"},
		{DetailID: 1, DetailType: entities.DetailHighlight, DetailValue: "Mona Lisa"},
		{DetailID: 3, DetailType: entities.DetailActivity, DetailValue: "Audio guide"},
	}}
	items := []entities.ItineraryItem{
		{ItemID: 2, Day: 2, OrderIndex: 1, StartTime: "10:00", Place: &entities.Place{Name: "Eiffel Tower"}},
		{ItemID: 1, Day: 1, OrderIndex: 1, StartTime: "09:00", EndTime: "12:00", Notes: "Book ahead", Place: louvre},
	}
	trip := &entities.Trip{Title: "Trip to Paris", Destination: "Paris", Status: "upcoming"}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, trip, items))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(itinerarySheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Day", rows[0][0])
	assert.Equal(t, []string{"1", "1", "09:00", "12:00", "Louvre", "Rue de Rivoli", "48.8606", "2.3376", "Book ahead", "Mona Lisa; Venus de Milo", "Audio guide"}, rows[1])
	assert.Equal(t, "Eiffel Tower", rows[2][4])

	summary, err := f.GetRows(tripSheet)
	require.NoError(t, err)
	assert.Equal(t, []string{"Destination", "Paris"}, summary[1])
}
