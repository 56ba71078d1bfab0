package scoring

// City resource categories used as baselines for boost conversion. The keys
// deliberately match the attribute keys the converted contributions land on.
const (
	ResourceForgePoints  = "forge_points"
	ResourceGoods        = "goods"
	ResourcePrevAgeGoods = "prev_age_goods"
	ResourceNextAgeGoods = "next_age_goods"
	ResourceGuildGoods   = "guild_goods"
	ResourceSpecialGoods = "special_goods"
)

// Resources lists every city resource category in display order.
var Resources = []string{
	ResourceForgePoints,
	ResourceGoods,
	ResourcePrevAgeGoods,
	ResourceNextAgeGoods,
	ResourceGuildGoods,
	ResourceSpecialGoods,
}

// CityContext holds the player's current daily production per resource
// category. The zero value is usable: every unset resource reads as 0, which
// makes boost contributions 0 until the user supplies a baseline.
type CityContext map[string]float64

// NewCityContext returns an empty context.
func NewCityContext() CityContext {
	return make(CityContext)
}

// Get returns the daily production for the resource, 0 when unset.
func (c CityContext) Get(resource string) float64 {
	return c[resource]
}

// Set stores the daily production for the resource. Negative values are not
// a meaningful domain value and are clamped to 0 rather than rejected.
func (c CityContext) Set(resource string, daily float64) {
	if daily < 0 {
		daily = 0
	}
	c[resource] = daily
}

// Clone returns an independent copy.
func (c CityContext) Clone() CityContext {
	out := make(CityContext, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}
