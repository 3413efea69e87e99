package serviceImp

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"musafir/pkg/itinerary/types"
)

// stop is one activity flattened out of the itinerary, in itinerary order.
type stop struct {
	day        int
	start, end string
	activity   types.Activity
	address    string
}

func flatten(it *types.Itinerary) []stop {
	var out []stop
	for i, d := range it.Trip.Itinerary {
		day := d.Day
		if day < 1 {
			day = i + 1
		}
		for _, a := range d.Activities {
			if strings.TrimSpace(a.Place) == "" {
				continue
			}
			start, end := timeWindow(a.Time, a.ExpectedTime)
			out = append(out, stop{
				day:      day,
				start:    start,
				end:      end,
				activity: a,
				address:  geocodeQuery(a, it.Trip.Destination),
			})
		}
	}
	return out
}

func geocodeQuery(a types.Activity, destination string) string {
	if addr := strings.TrimSpace(a.Address); addr != "" {
		return addr
	}
	if destination = strings.TrimSpace(destination); destination != "" {
		return strings.TrimSpace(a.Place) + ", " + destination
	}
	return strings.TrimSpace(a.Place)
}

var (
	rangeRX    = regexp.MustCompile(`^\s*(.+?)\s*(?:-|–|—|to)\s*(.+?)\s*$`)
	durationRX = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(hours?|hrs?|h|minutes?|mins?|m)\b`)
	clockFmts  = []string{"15:04", "3:04 PM", "3:04PM", "3:04 pm", "3:04pm", "3 PM", "3PM", "3 pm", "3pm", "15.04"}
)

// timeWindow maps "09:00-11:30" to its two ends, or "09:00" plus an
// expected duration such as "2 hours" to start and start+duration.
// Unparseable input gives empty strings.
func timeWindow(timeField, expected string) (start, end string) {
	if m := rangeRX.FindStringSubmatch(timeField); m != nil {
		s, okS := parseClock(m[1])
		e, okE := parseClock(m[2])
		if okS && okE {
			return s.Format("15:04"), e.Format("15:04")
		}
	}
	s, ok := parseClock(timeField)
	if !ok {
		return "", ""
	}
	start = s.Format("15:04")
	if d := parseDuration(expected); d > 0 {
		e := s.Add(d)
		if e.Day() != s.Day() {
			return start, "23:59"
		}
		end = e.Format("15:04")
	}
	return start, end
}

func parseClock(v string) (time.Time, bool) {
	v = strings.TrimSpace(v)
	for _, f := range clockFmts {
		if t, err := time.Parse(f, v); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func parseDuration(v string) time.Duration {
	var total time.Duration
	for _, m := range durationRX.FindAllStringSubmatch(v, -1) {
		n, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		unit := time.Minute
		if strings.HasPrefix(strings.ToLower(m[2]), "h") {
			unit = time.Hour
		}
		total += time.Duration(n * float64(unit))
	}
	return total
}

var dateFmts = []string{
	time.DateOnly, "2006/01/02", "January 2, 2006", "Jan 2, 2006", "2 January 2006", "2 Jan 2006",
	"January 2 2006", "01/02/2006",
}

// normalizeDate returns YYYY-MM-DD when v is a date in a common format and
// the trimmed input otherwise.
func normalizeDate(v string) string {
	v = strings.TrimSpace(v)
	for _, f := range dateFmts {
		if t, err := time.Parse(f, v); err == nil {
			return t.Format(time.DateOnly)
		}
	}
	return v
}

func tripTitle(destination string) string {
	if destination = strings.TrimSpace(destination); destination != "" {
		return "Trip to " + destination
	}
	return "Untitled trip"
}
