package preset

import (
	"forgescope/internal/catalog"
	"forgescope/internal/scoring"
)

// Preset is a named, shippable weight profile. Flat weights apply as-is;
// the per-era tables carry values that depend on the player's era (goods
// ranking points differ per age) and are resolved when the preset is applied.
type Preset struct {
	// Name identifies the preset in the API and must be unique per file.
	Name string `yaml:"name"`
	// Weights — era-independent attribute weights.
	Weights map[string]float64 `yaml:"weights"`
	// GoodsPerEra — goods weight per era key. Resolution also derives the
	// previous-age and next-age goods weights from the neighboring eras.
	GoodsPerEra map[string]float64 `yaml:"goods_per_era"`
	// SpecialGoodsPerEra — special-goods weight for eras where they exist.
	SpecialGoodsPerEra map[string]float64 `yaml:"special_goods_per_era"`
}

// Resolve materializes the preset into a WeightProfile for the given era.
// Era-table entries missing for the era simply contribute no weight.
func (p *Preset) Resolve(era string) scoring.WeightProfile {
	w := scoring.NewWeightProfile()
	for attr, v := range p.Weights {
		w.Set(attr, v)
	}

	if v, found := p.GoodsPerEra[era]; found {
		w.Set(catalog.AttrGoods, v)
	}
	if rank, known := catalog.EraRank(era); known {
		if rank > 0 {
			if v, found := p.GoodsPerEra[catalog.EraOrder[rank-1]]; found {
				w.Set(catalog.AttrPrevAgeGoods, v)
			}
		}
		if rank+1 < len(catalog.EraOrder) {
			if v, found := p.GoodsPerEra[catalog.EraOrder[rank+1]]; found {
				w.Set(catalog.AttrNextAgeGoods, v)
			}
		}
	}
	if v, found := p.SpecialGoodsPerEra[era]; found {
		w.Set(catalog.AttrSpecialGoods, v)
	}
	return w
}
