package export

import (
	"bytes"
	"database/sql"
	"encoding/csv"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"forgescope/internal/catalog"
	"forgescope/internal/scoring"
)

func sampleResults() []scoring.ScoredBuilding {
	first := catalog.Building{
		ID: "W_First", Name: "First", Era: "IronAge", Event: "Fall Event",
		Width: 2, Height: 2, NeedsRoad: true, RoadTiles: 1,
	}
	second := catalog.Building{
		ID: "W_Second", Name: "Second", Era: "BronzeAge",
	}
	return []scoring.ScoredBuilding{
		{Building: &first, Score: 50, Efficiency: 10},
		{Building: &second, Unranked: true},
	}
}

func TestRows_Flattening(t *testing.T) {
	rows := Rows(sampleResults(), nil, "")

	require.Len(t, rows, 2)
	assert.Equal(t, "W_First", rows[0].ID)
	assert.Equal(t, 4.0, rows[0].Size)
	assert.Equal(t, 5.0, rows[0].Footprint)
	assert.Equal(t, 10.0, rows[0].Efficiency)
	assert.False(t, rows[0].Unranked)
	assert.True(t, rows[1].Unranked)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, Rows(sampleResults(), nil, "")))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3, "header plus one record per row")
	assert.Equal(t, columns, records[0])
	assert.Equal(t, "W_First", records[1][0])
	assert.Equal(t, "10", records[1][8])
	assert.Equal(t, "true", records[2][9])
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, Rows(sampleResults(), nil, "")))

	var decoded []Row
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "W_Second", decoded[1].ID)
	assert.True(t, decoded[1].Unranked)
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, Rows(sampleResults(), nil, "")))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	require.Contains(t, sheets, "Buildings")

	header, err := f.GetCellValue("Buildings", "A1")
	require.NoError(t, err)
	assert.Equal(t, "id", header)

	id, err := f.GetCellValue("Buildings", "A2")
	require.NoError(t, err)
	assert.Equal(t, "W_First", id)
}

func TestWriteSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "buildings.db")
	rows := Rows(sampleResults(), nil, "")

	require.NoError(t, WriteSQLite(path, rows))
	// Second write replaces the snapshot instead of appending.
	require.NoError(t, WriteSQLite(path, rows))

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM buildings`).Scan(&count))
	assert.Equal(t, 2, count)

	var efficiency float64
	var unranked int
	require.NoError(t, db.QueryRow(
		`SELECT efficiency, unranked FROM buildings WHERE id = 'W_First'`,
	).Scan(&efficiency, &unranked))
	assert.Equal(t, 10.0, efficiency)
	assert.Zero(t, unranked)
}

func TestWriteSQLite_EmptyPath(t *testing.T) {
	assert.Error(t, WriteSQLite("", nil))
}
