package catalog

// Canonical attribute keys. The loader maps every metadata reward onto one of
// these; arbitrary extra keys are allowed in Attributes but everything the
// scoring pipeline treats specially is listed here.
const (
	AttrCoins             = "coins"
	AttrSupplies          = "supplies"
	AttrMedals            = "medals"
	AttrForgePoints       = "forge_points"
	AttrForgePointPackage = "forgepoint_package"
	AttrGoods             = "goods"
	AttrPrevAgeGoods      = "prev_age_goods"
	AttrNextAgeGoods      = "next_age_goods"
	AttrSpecialGoods      = "special_goods"
	AttrGuildGoods        = "guild_goods"
	AttrPopulation        = "population"
	AttrHappiness         = "happiness"

	AttrRogues         = "rogues"
	AttrFastUnits      = "fast_units"
	AttrHeavyUnits     = "heavy_units"
	AttrRangedUnits    = "ranged_units"
	AttrArtilleryUnits = "artillery_units"
	AttrLightUnits     = "light_units"

	// Percentage boosts: the building contributes a multiplier on a city
	// production category, not an absolute amount.
	AttrFPBoost           = "fp_boost"
	AttrGoodsBoost        = "goods_boost"
	AttrGuildGoodsBoost   = "guild_goods_boost"
	AttrSpecialGoodsBoost = "special_goods_boost"
	AttrCoinBoost         = "coin_boost"
	AttrSuppliesBoost     = "supplies_boost"
	AttrMedalBoost        = "medal_boost"
)

// Attributes maps a canonical attribute key to its daily-average value.
// Absent keys read as 0; that is the defined behavior for every consumer.
type Attributes map[string]float64

// Get returns the value for key, or 0 when the attribute is absent.
func (a Attributes) Get(key string) float64 {
	return a[key]
}

// Add accumulates v under key. Zero contributions and unmapped (empty) keys
// are dropped so the map stays sparse.
func (a Attributes) Add(key string, v float64) {
	if key == "" || v == 0 {
		return
	}
	a[key] += v
}

// Clone returns an independent copy of the attribute map.
func (a Attributes) Clone() Attributes {
	c := make(Attributes, len(a))
	for k, v := range a {
		c[k] = v
	}
	return c
}

// Outcome is one branch of a probabilistic reward: Amount is granted with
// probability Chance (0..1).
type Outcome struct {
	Chance float64
	Amount float64
}

// OutcomeList is an immutable weighted outcome list. Probabilistic reward
// structures from the metadata (random products, chests) are represented as
// OutcomeLists and reduced to their expectation before entering Attributes.
type OutcomeList []Outcome

// Expected returns the daily-average value of the list: Σ chance × amount.
// An empty list has expectation 0.
func (ol OutcomeList) Expected() float64 {
	var sum float64
	for _, o := range ol {
		sum += o.Chance * o.Amount
	}
	return sum
}

// Building is one immutable record of the loaded dataset: identity, placement
// data for one era, and the normalized daily-average attribute values.
type Building struct {
	ID       string
	Name     string
	Era      string
	Event    string
	Width    int
	Height   int
	NeedsRoad bool
	// RoadTiles is the average number of road tiles the building consumes,
	// min(width, height)/2 when a street connection is required.
	RoadTiles float64
	Limited   string
	AllyRoom  string

	Attributes Attributes
}

// Size returns the number of tiles the building itself occupies.
func (b *Building) Size() float64 {
	return float64(b.Width * b.Height)
}

// Footprint is the efficiency denominator: tiles occupied plus the average
// road requirement. A footprint of 0 means the building cannot be ranked.
func (b *Building) Footprint() float64 {
	return b.Size() + b.RoadTiles
}
