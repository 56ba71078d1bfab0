package scoring

import (
	"sort"

	"forgescope/internal/catalog"
)

// ScoredBuilding is the read-only result of one scoring pass for one
// building. Unranked marks buildings with a non-positive footprint: their
// efficiency is undefined rather than infinite and they are excluded from
// efficiency ordering.
type ScoredBuilding struct {
	Building   *catalog.Building
	Score      float64
	Efficiency float64
	Unranked   bool
}

// Weighted applies the profile to an attribute map: weighted[k] equals
// attrs[k] × weights[k]. Attributes with no configured weight are silently
// excluded. Pure function; neither input is modified.
func Weighted(attrs catalog.Attributes, weights WeightProfile) catalog.Attributes {
	out := make(catalog.Attributes)
	for attr, v := range attrs {
		if w := weights.Get(attr); w != 0 {
			out.Add(attr, v*w)
		}
	}
	return out
}

// Score runs the pipeline over the dataset: convert boosts against the city
// baselines, apply weights, sum, and divide by footprint. One result per
// input building, in input order. Deterministic: contributions are summed in
// lexical attribute order.
func Score(buildings []catalog.Building, weights WeightProfile, city CityContext) []ScoredBuilding {
	results := make([]ScoredBuilding, len(buildings))
	for i := range buildings {
		b := &buildings[i]
		contributions := b.Attributes.Clone()
		for attr, v := range ConvertBoosts(b, city) {
			contributions.Add(attr, v)
		}
		weighted := Weighted(contributions, weights)

		var total float64
		for _, attr := range sortedKeys(weighted) {
			total += weighted[attr]
		}

		scored := ScoredBuilding{Building: b, Score: total}
		if footprint := b.Footprint(); footprint > 0 {
			scored.Efficiency = total / footprint
		} else {
			scored.Unranked = true
		}
		results[i] = scored
	}
	return results
}

// SortByEfficiency orders results by efficiency, highest first. The sort is
// stable, so equal efficiencies keep their dataset order. Unranked buildings
// sink below every ranked one.
func SortByEfficiency(results []ScoredBuilding) {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Unranked != results[j].Unranked {
			return !results[i].Unranked
		}
		return results[i].Efficiency > results[j].Efficiency
	})
}
