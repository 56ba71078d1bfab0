package scoring

import "forgescope/internal/catalog"

// boostTarget names the attribute a converted boost contributes to and the
// city resource supplying its baseline.
type boostTarget struct {
	attr     string
	resource string
}

// Static boost conversion table: boost attribute to the target(s) its
// percentage applies to. The goods boost fans out over all three goods ages.
// Special-goods boosts are era-dependent and handled separately.
var boostTargets = map[string][]boostTarget{
	catalog.AttrFPBoost:         {{catalog.AttrForgePoints, ResourceForgePoints}},
	catalog.AttrGuildGoodsBoost: {{catalog.AttrGuildGoods, ResourceGuildGoods}},
	catalog.AttrGoodsBoost: {
		{catalog.AttrGoods, ResourceGoods},
		{catalog.AttrPrevAgeGoods, ResourcePrevAgeGoods},
		{catalog.AttrNextAgeGoods, ResourceNextAgeGoods},
	},
}

// specialGoodsTarget selects the baseline for a special-goods boost. In eras
// without standalone special goods the boost applies to next-age goods.
func specialGoodsTarget(era string) boostTarget {
	if catalog.SpecialGoodsFolded(era) {
		return boostTarget{catalog.AttrNextAgeGoods, ResourceNextAgeGoods}
	}
	return boostTarget{catalog.AttrSpecialGoods, ResourceSpecialGoods}
}

// ConvertBoosts turns the building's percentage boosts into equivalent
// absolute daily production, keyed by the base attribute each boost enhances:
// baseline × percentage / 100. A zero or unset baseline converts to 0, so the
// result is always defined and scoring stays a pure function of
// (Building, CityContext, WeightProfile).
func ConvertBoosts(b *catalog.Building, city CityContext) catalog.Attributes {
	out := make(catalog.Attributes)
	add := func(pct float64, t boostTarget) {
		if pct == 0 {
			return
		}
		out.Add(t.attr, city.Get(t.resource)*pct/100)
	}

	for boostAttr, targets := range boostTargets {
		pct := b.Attributes.Get(boostAttr)
		for _, t := range targets {
			add(pct, t)
		}
	}
	add(b.Attributes.Get(catalog.AttrSpecialGoodsBoost), specialGoodsTarget(b.Era))
	return out
}
