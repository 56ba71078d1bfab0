package catalog

// Range holds the observed minimum and maximum of one attribute.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// EraStats aggregates per-era attribute ranges over a set of buildings.
// Attributes absent from every building of an era are absent from the map.
func EraStats(buildings []Building) map[string]map[string]Range {
	stats := make(map[string]map[string]Range)
	for i := range buildings {
		b := &buildings[i]
		ranges, found := stats[b.Era]
		if !found {
			ranges = make(map[string]Range)
			stats[b.Era] = ranges
		}
		for attr, v := range b.Attributes {
			r, seen := ranges[attr]
			if !seen {
				ranges[attr] = Range{Min: v, Max: v}
				continue
			}
			if v < r.Min {
				r.Min = v
			}
			if v > r.Max {
				r.Max = v
			}
			ranges[attr] = r
		}
	}
	return stats
}
