// pkg/ai/mock_client.go

package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// mockClient answers offline from simple keyword rules over the travel
// notes. It is used when no completion endpoint is configured.
type mockClient struct{}

func NewMock() Client { return &mockClient{} }

var (
	daysRX  = regexp.MustCompile(`(?i)\b(\d{1,2})\s*(?:-\s*)?days?\b`)
	destRX  = regexp.MustCompile(`\b(?:in|to)\s+([A-Z][\p{L}'.-]*(?:\s+[A-Z][\p{L}'.-]*)*)`)
	visitRX = regexp.MustCompile(`(?i)\b(?:visit|see|explore)\s+([^.;\n]+)`)
	splitRX = regexp.MustCompile(`(?i)\s*,\s*(?:and\s+)?|\s+and\s+`)
	slots   = []string{"09:00", "13:00", "17:00"}
)

func (m *mockClient) Complete(ctx context.Context, model string, messages []Message) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", &CompletionError{Model: model, Reason: err.Error(), Err: err}
	}
	var system, user string
	for _, msg := range messages {
		switch msg.Role {
		case RoleSystem:
			system += msg.Content + "\n"
		case RoleUser:
			user = msg.Content
		}
	}
	p := planFromNotes(UnwrapNotes(user))
	if strings.Contains(system, "JSON") {
		return p.json(), nil
	}
	return p.markdown(), nil
}

type mockStop struct{ day int; time, place, address string }

type mockPlan struct {
	destination string
	days        int
	stops       []mockStop
}

func planFromNotes(notes string) mockPlan {
	p := mockPlan{destination: "Your destination", days: 1}
	if m := destRX.FindStringSubmatch(notes); m != nil {
		p.destination = strings.TrimSpace(m[1])
	}
	if m := daysRX.FindStringSubmatch(notes); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			p.days = n
		}
	}

	var places []string
	for _, m := range visitRX.FindAllStringSubmatch(notes, -1) {
		for _, part := range splitRX.Split(m[1], -1) {
			part = strings.TrimSpace(part)
			part = strings.TrimPrefix(part, "the ")
			part = strings.TrimPrefix(part, "The ")
			if part != "" {
				places = append(places, part)
			}
		}
	}
	if len(places) == 0 {
		places = []string{p.destination + " old town"}
	}
	if len(places) < p.days {
		p.days = len(places)
	}
	for i, name := range places {
		day := i%p.days + 1
		slot := (i / p.days) % len(slots)
		p.stops = append(p.stops, mockStop{
			day:     day,
			time:    slots[slot],
			place:   name,
			address: name + ", " + p.destination,
		})
	}
	return p
}

func (p mockPlan) json() string {
	type activity struct {
		Time         string `json:"time"`
		Place        string `json:"place"`
		Address      string `json:"address"`
		Description  string `json:"description"`
		ExpectedTime string `json:"expected_time"`
	}
	type day struct {
		Day        int        `json:"day"`
		Date       string     `json:"date"`
		Activities []activity `json:"activities"`
	}
	days := make([]day, p.days)
	for i := range days {
		days[i] = day{Day: i + 1, Activities: []activity{}}
	}
	for _, s := range p.stops {
		days[s.day-1].Activities = append(days[s.day-1].Activities, activity{
			Time:         s.time,
			Place:        s.place,
			Address:      s.address,
			Description:  "Visit " + s.place,
			ExpectedTime: "2 hours",
		})
	}
	var doc struct {
		Trip struct {
			Destination string `json:"destination"`
			Dates       struct {
				Start string `json:"start"`
				End   string `json:"end"`
			} `json:"dates"`
			Itinerary []day `json:"itinerary"`
		} `json:"trip"`
	}
	doc.Trip.Destination = p.destination
	doc.Trip.Itinerary = days
	b, _ := json.Marshal(doc)
	return string(b)
}

func (p mockPlan) markdown() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# Trip to %s\n", p.destination)
	for d := 1; d <= p.days; d++ {
		fmt.Fprintf(&sb, "\n## Day %d\n", d)
		for _, s := range p.stops {
			if s.day == d {
				fmt.Fprintf(&sb, "- **%s** %s\n", s.time, s.place)
			}
		}
	}
	return sb.String()
}
