package seed

import (
	"context"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"musafir/database"
	placeRepoImp "musafir/pkg/place/repositoryImp"
)

func TestReadCSV_HeaderAliases(t *testing.T) {
	rows, err := ReadCSV(strings.NewReader("\uFEFFPlace Name,Lat,Lon,Highlights\nLouvre,48.86,2.33,Mona Lisa; Venus\n,1,2,\nNo coords,north,,\n"))
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Louvre", rows[0].Name)
	require.NotNil(t, rows[0].Lat)
	assert.Equal(t, 48.86, *rows[0].Lat)
	assert.Equal(t, []string{"Mona Lisa", "Venus"}, rows[0].Highlights)
	assert.Nil(t, rows[2].Lat)
	assert.Nil(t, rows[2].Lng)

	_, err = ReadCSV(strings.NewReader("foo,bar\n1,2\n"))
	assert.Error(t, err)
}

func sampleFile(t *testing.T) string {
	_, file, _, ok := runtime.Caller(0)
	require.True(t, ok)
	return filepath.Join(filepath.Dir(file), "..", "..", "data", "places_nyc.csv")
}

func TestLoadFile_SampleCatalogueIsIdempotent(t *testing.T) {
	ctx := context.Background()
	db, err := database.OpenSQLite(":memory:", database.Options{})
	require.NoError(t, err)
	repo := placeRepoImp.New(db)

	rep, err := LoadFile(ctx, repo, sampleFile(t))
	require.NoError(t, err)
	assert.Equal(t, 6, rep.Rows)
	assert.Equal(t, 6, rep.Places)

	_, err = LoadFile(ctx, repo, sampleFile(t))
	require.NoError(t, err)
	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(6), n)

	c, err := repo.CoordinatesByAddress(ctx, "20 W 34th St, New York, NY 10001")
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, 40.748817, c.Lat)
}

func TestLoadFile_XLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "places.xlsx")
	x := excelize.NewFile()
	require.NoError(t, x.SetSheetRow("Sheet1", "A1", &[]any{"name", "type", "activities"}))
	require.NoError(t, x.SetSheetRow("Sheet1", "A2", &[]any{"High Line", "park", "Walk"}))
	require.NoError(t, x.SetSheetRow("Sheet1", "A3", &[]any{"", "park", ""}))
	require.NoError(t, x.SaveAs(path))
	require.NoError(t, x.Close())

	db, err := database.OpenSQLite(":memory:", database.Options{})
	require.NoError(t, err)
	rep, err := LoadFile(context.Background(), placeRepoImp.New(db), path)
	require.NoError(t, err)
	assert.Equal(t, Report{Rows: 2, Places: 1, Skipped: 1}, rep)
}
