package export

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/gosimple/slug"
	"github.com/xuri/excelize/v2"

	"musafir/entities"
)

const (
	itinerarySheet = "Itinerary"
	tripSheet      = "Trip"
)

var itineraryHeader = []any{"Day", "Order", "Start", "End", "Place", "Address", "Latitude", "Longitude", "Notes", "Highlights", "Activities"}

// FileName is a download name derived from the trip title.
func FileName(t *entities.Trip) string {
	name := slug.Make(t.Title)
	if name == "" {
		name = slug.Make("trip " + t.Destination)
	}
	if name == "" || name == "trip" {
		name = fmt.Sprintf("trip-%d", t.TripID)
	}
	return name + ".xlsx"
}

// Workbook lays out one row per itinerary item, in display order, plus a
// summary sheet.
func Workbook(t *entities.Trip, items []entities.ItineraryItem) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", itinerarySheet); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(itinerarySheet, "A1", &itineraryHeader); err != nil {
		return nil, err
	}

	sorted := make([]entities.ItineraryItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Day != sorted[j].Day {
			return sorted[i].Day < sorted[j].Day
		}
		if sorted[i].OrderIndex != sorted[j].OrderIndex {
			return sorted[i].OrderIndex < sorted[j].OrderIndex
		}
		return sorted[i].ItemID < sorted[j].ItemID
	})

	for i, it := range sorted {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []any{it.Day, it.OrderIndex, it.StartTime, it.EndTime, "", "", "", "", it.Notes, "", ""}
		if p := it.Place; p != nil {
			row[4], row[5] = p.Name, p.Address
			if p.Latitude != nil && p.Longitude != nil {
				row[6], row[7] = *p.Latitude, *p.Longitude
			}
			row[9] = joinDetails(p.Details, entities.DetailHighlight)
			row[10] = joinDetails(p.Details, entities.DetailActivity)
		}
		if err := f.SetSheetRow(itinerarySheet, cell, &row); err != nil {
			return nil, err
		}
	}

	if _, err := f.NewSheet(tripSheet); err != nil {
		return nil, err
	}
	summary := [][]any{
		{"Title", t.Title},
		{"Destination", t.Destination},
		{"Start date", t.StartDate},
		{"End date", t.EndDate},
		{"Status", t.Status},
		{"Items", len(items)},
	}
	for i, row := range summary {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(tripSheet, cell, &row); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// Write streams the workbook for t to w.
func Write(w io.Writer, t *entities.Trip, items []entities.ItineraryItem) error {
	f, err := Workbook(t, items)
	if err != nil {
		return fmt.Errorf("build workbook: %w", err)
	}
	defer f.Close()
	return f.Write(w)
}

func joinDetails(details []entities.PlaceDetail, kind string) string {
	sorted := make([]entities.PlaceDetail, 0, len(details))
	for _, d := range details {
		if d.DetailType == kind {
			sorted = append(sorted, d)
		}
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].DetailID < sorted[j].DetailID })
	values := make([]string, len(sorted))
	for i, d := range sorted {
		values[i] = d.DetailValue
	}
	return strings.Join(values, "; ")
}
