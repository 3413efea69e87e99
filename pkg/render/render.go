package render

import (
	"fmt"
	"sort"
	"strings"

	"musafir/entities"
)

// Render produces the markdown display document for a stored trip. Items
// are grouped by day and ordered by order_index, never by start time, so
// the same rows always give the same text.
func Render(t *entities.Trip, items []entities.ItineraryItem) string {
	var sb strings.Builder

	title := strings.TrimSpace(t.Title)
	if title == "" {
		title = "Trip to " + orDefault(t.Destination, "an unnamed destination")
	}
	fmt.Fprintf(&sb, "# %s\n", title)
	if t.Destination != "" {
		fmt.Fprintf(&sb, "\n**Destination:** %s\n", t.Destination)
	}
	if dates := dateRange(t.StartDate, t.EndDate); dates != "" {
		fmt.Fprintf(&sb, "**Dates:** %s\n", dates)
	}

	if len(items) == 0 {
		sb.WriteString("\n_No activities planned yet._\n")
		return sb.String()
	}

	sorted := make([]entities.ItineraryItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Day != b.Day {
			return a.Day < b.Day
		}
		if a.OrderIndex != b.OrderIndex {
			return a.OrderIndex < b.OrderIndex
		}
		return a.ItemID < b.ItemID
	})

	day := 0
	for _, it := range sorted {
		if it.Day != day {
			day = it.Day
			fmt.Fprintf(&sb, "\n## Day %d\n", day)
		}
		writeItem(&sb, it)
	}
	return sb.String()
}

func writeItem(sb *strings.Builder, it entities.ItineraryItem) {
	name := "Unknown place"
	var description string
	var details []entities.PlaceDetail
	if it.Place != nil {
		name = orDefault(it.Place.Name, name)
		description = strings.TrimSpace(it.Place.Description)
		details = append(details, it.Place.Details...)
	}

	if slot := timeSlot(it.StartTime, it.EndTime); slot != "" {
		fmt.Fprintf(sb, "\n### %s %s\n", slot, name)
	} else {
		fmt.Fprintf(sb, "\n### %s\n", name)
	}
	if notes := strings.TrimSpace(it.Notes); notes != "" {
		fmt.Fprintf(sb, "\n%s\n", notes)
	}
	if description != "" {
		fmt.Fprintf(sb, "\n%s\n", description)
	}

	sort.SliceStable(details, func(i, j int) bool { return details[i].DetailID < details[j].DetailID })
	writeDetails(sb, "Highlights", entities.DetailHighlight, details)
	writeDetails(sb, "Activities", entities.DetailActivity, details)
}

func writeDetails(sb *strings.Builder, heading, kind string, details []entities.PlaceDetail) {
	var values []string
	for _, d := range details {
		if d.DetailType == kind {
			values = append(values, d.DetailValue)
		}
	}
	if len(values) == 0 {
		return
	}
	fmt.Fprintf(sb, "\n**%s**\n", heading)
	for _, v := range values {
		fmt.Fprintf(sb, "- %s\n", v)
	}
}

func timeSlot(start, end string) string {
	switch {
	case start != "" && end != "":
		return start + "-" + end
	case start != "":
		return start
	case end != "":
		return "until " + end
	}
	return ""
}

func dateRange(start, end string) string {
	switch {
	case start != "" && end != "":
		return start + " to " + end
	case start != "":
		return "from " + start
	case end != "":
		return "until " + end
	}
	return ""
}

func orDefault(s, def string) string {
	if s = strings.TrimSpace(s); s != "" {
		return s
	}
	return def
}
