package export

import (
	"encoding/csv"
	"io"
	"strconv"
)

// WriteCSV writes the rows as CSV with a header line. Numbers keep full
// precision; formatting for display is the consumer's concern.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return err
	}

	for _, r := range rows {
		record := []string{
			r.ID,
			r.Name,
			r.Era,
			r.Event,
			formatFloat(r.Size),
			formatFloat(r.RoadTiles),
			formatFloat(r.Footprint),
			formatFloat(r.Score),
			formatFloat(r.Efficiency),
			strconv.FormatBool(r.Unranked),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
