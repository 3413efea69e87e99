package serviceImp

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"musafir/pkg/itinerary/types"
)

func TestTimeWindow(t *testing.T) {
	cases := []struct {
		time, expected string
		start, end     string
	}{
		{"09:00", "2 hours", "09:00", "11:00"},
		{"9:30 AM", "90 minutes", "09:30", "11:00"},
		{"14:00", "1 hour 30 minutes", "14:00", "15:30"},
		{"10:00-12:30", "ignored", "10:00", "12:30"},
		{"10:00 – 12:30", "", "10:00", "12:30"},
		{"2 PM to 4 PM", "", "14:00", "16:00"},
		{"13:00", "", "13:00", ""},
		{"23:00", "3 hours", "23:00", "23:59"},
		{"morning", "2 hours", "", ""},
		{"", "", "", ""},
	}
	for _, tc := range cases {
		start, end := timeWindow(tc.time, tc.expected)
		assert.Equal(t, tc.start, start, "start of %q", tc.time)
		assert.Equal(t, tc.end, end, "end of %q + %q", tc.time, tc.expected)
	}
}

func TestNormalizeDate(t *testing.T) {
	assert.Equal(t, "2025-05-01", normalizeDate("2025-05-01"))
	assert.Equal(t, "2025-05-01", normalizeDate(" May 1, 2025 "))
	assert.Equal(t, "2025-05-01", normalizeDate("1 May 2025"))
	assert.Equal(t, "early May", normalizeDate("early May"))
	assert.Equal(t, "", normalizeDate(""))
}

func TestFlatten(t *testing.T) {
	it := &types.Itinerary{Trip: types.Trip{
		Destination: "Paris",
		Itinerary: []types.Day{
			{Activities: []types.Activity{{Place: "Louvre", Time: "09:00", ExpectedTime: "2 hours"}, {Place: " "}}},
			{Day: 5, Activities: []types.Activity{{Place: "Eiffel Tower", Address: "Champ de Mars"}}},
		},
	}}
	stops := flatten(it)
	if assert.Len(t, stops, 2) {
		assert.Equal(t, 1, stops[0].day)
		assert.Equal(t, "Louvre, Paris", stops[0].address)
		assert.Equal(t, "11:00", stops[0].end)
		assert.Equal(t, 5, stops[1].day)
		assert.Equal(t, "Champ de Mars", stops[1].address)
	}
	assert.Equal(t, "Trip to Paris", tripTitle("Paris"))
	assert.Equal(t, "Untitled trip", tripTitle(""))
}
