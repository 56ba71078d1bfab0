package export

import (
	"forgescope/internal/i18n"
	"forgescope/internal/scoring"
)

// Row is the flat, serialization-ready view of one scored building. Export
// formats are a pass-through of these fields; nothing is recomputed here.
type Row struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Era        string  `json:"era"`
	Event      string  `json:"event"`
	Size       float64 `json:"size"`
	RoadTiles  float64 `json:"road_tiles"`
	Footprint  float64 `json:"footprint"`
	Score      float64 `json:"score"`
	Efficiency float64 `json:"efficiency"`
	Unranked   bool    `json:"unranked,omitempty"`
}

var columns = []string{
	"id", "name", "era", "event", "size", "road_tiles", "footprint",
	"score", "efficiency", "unranked",
}

// Rows flattens scoring results for export. When a translator is provided,
// building and era names are resolved for the requested language; the
// identifiers stay untranslated.
func Rows(results []scoring.ScoredBuilding, tr *i18n.Translator, lang string) []Row {
	rows := make([]Row, len(results))
	for i, r := range results {
		b := r.Building
		name := b.Name
		era := b.Era
		if tr != nil {
			name = tr.BuildingName(b.Name, lang)
			era = tr.Era(b.Era, lang)
		}
		rows[i] = Row{
			ID:         b.ID,
			Name:       name,
			Era:        era,
			Event:      b.Event,
			Size:       b.Size(),
			RoadTiles:  b.RoadTiles,
			Footprint:  b.Footprint(),
			Score:      r.Score,
			Efficiency: r.Efficiency,
			Unranked:   r.Unranked,
		}
	}
	return rows
}
