package seed

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"musafir/entities"
	"musafir/pkg/place"
	"musafir/pkg/place/repository"
)

type Row struct {
	Name        string
	Description string
	Address     string
	PlaceType   string
	ImageURL    string
	Lat, Lng    *float64
	Highlights  []string
	Activities  []string
}

type Report struct {
	Rows    int `json:"rows"`
	Places  int `json:"places"`
	Skipped int `json:"skipped"`
}

// LoadFile imports a place catalogue. .xlsx files use their first sheet,
// anything else is read as CSV.
func LoadFile(ctx context.Context, repo repository.PlaceRepository, path string) (Report, error) {
	var (
		rows []Row
		err  error
	)
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		rows, err = readXLSX(path)
	} else {
		f, oerr := os.Open(path)
		if oerr != nil {
			return Report{}, oerr
		}
		defer f.Close()
		rows, err = ReadCSV(f)
	}
	if err != nil {
		return Report{}, fmt.Errorf("read %s: %w", path, err)
	}
	return Import(ctx, repo, rows)
}

// Import stores rows through the same identity rules as finalized trips,
// so running it twice creates nothing new.
func Import(ctx context.Context, repo repository.PlaceRepository, rows []Row) (Report, error) {
	rep := Report{Rows: len(rows)}
	seen := map[uint]bool{}
	for i, r := range rows {
		id, err := repo.EnsurePlace(ctx, place.Input{
			Name:        r.Name,
			Description: r.Description,
			Address:     r.Address,
			PlaceType:   r.PlaceType,
			ImageURL:    r.ImageURL,
			Lat:         r.Lat,
			Lng:         r.Lng,
		})
		if errors.Is(err, place.ErrNameRequired) {
			rep.Skipped++
			continue
		}
		if err != nil {
			return rep, fmt.Errorf("row %d: %w", i+2, err)
		}
		if !seen[id] {
			seen[id] = true
			rep.Places++
		}
		for _, h := range r.Highlights {
			if err := repo.AddDetail(ctx, id, entities.DetailHighlight, h); err != nil {
				return rep, err
			}
		}
		for _, a := range r.Activities {
			if err := repo.AddDetail(ctx, id, entities.DetailActivity, a); err != nil {
				return rep, err
			}
		}
	}
	log.WithFields(log.Fields{"rows": rep.Rows, "places": rep.Places, "skipped": rep.Skipped}).Info("place catalogue imported")
	return rep, nil
}

func ReadCSV(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	recs, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	return fromRecords(recs)
}

func readXLSX(path string) ([]Row, error) {
	x, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer x.Close()
	sheets := x.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}
	recs, err := x.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	return fromRecords(recs)
}

func fromRecords(recs [][]string) ([]Row, error) {
	if len(recs) == 0 {
		return nil, errors.New("empty file")
	}
	norm := func(s string) string {
		s = strings.TrimSpace(s)
		s = strings.TrimPrefix(s, "\uFEFF")
		s = strings.ToLower(s)
		s = strings.ReplaceAll(s, " ", "")
		s = strings.ReplaceAll(s, "-", "")
		s = strings.ReplaceAll(s, "_", "")
		return s
	}
	hmap := map[string]int{}
	for i, h := range recs[0] {
		hmap[norm(h)] = i
	}
	findAny := func(keys ...string) int {
		for _, k := range keys {
			if idx, ok := hmap[norm(k)]; ok {
				return idx
			}
		}
		return -1
	}

	cName := findAny("name", "place", "place_name")
	cDesc := findAny("description", "desc")
	cAddr := findAny("address", "location")
	cType := findAny("place_type", "type", "category")
	cImg := findAny("image_url", "photo", "photos", "image")
	cLat := findAny("latitude", "lat")
	cLng := findAny("longitude", "lng", "lon")
	cHigh := findAny("highlights", "highlight")
	cAct := findAny("activities", "activity")
	if cName == -1 {
		return nil, fmt.Errorf("missing name column, found headers: %v", recs[0])
	}

	out := make([]Row, 0, len(recs)-1)
	for _, rec := range recs[1:] {
		get := func(idx int) string {
			if idx < 0 || idx >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[idx])
		}
		out = append(out, Row{
			Name:        get(cName),
			Description: get(cDesc),
			Address:     get(cAddr),
			PlaceType:   get(cType),
			ImageURL:    get(cImg),
			Lat:         parseCoord(get(cLat)),
			Lng:         parseCoord(get(cLng)),
			Highlights:  splitList(get(cHigh)),
			Activities:  splitList(get(cAct)),
		})
	}
	return out, nil
}

func parseCoord(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ";") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
