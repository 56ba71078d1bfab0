package catalog

// Era keys as they appear in the building metadata, ordered from the oldest
// age to the newest. The order is used for per-era statistics and display.
var EraOrder = []string{
	"BronzeAge",
	"IronAge",
	"EarlyMiddleAge",
	"HighMiddleAge",
	"LateMiddleAge",
	"ColonialAge",
	"IndustrialAge",
	"ProgressiveEra",
	"ModernEra",
	"PostModernEra",
	"ContemporaryEra",
	"TomorrowEra",
	"FutureEra",
	"ArcticFuture",
	"OceanicFuture",
	"VirtualFuture",
	"SpaceAgeMars",
	"SpaceAgeAsteroidBelt",
	"SpaceAgeVenus",
	"SpaceAgeJupiterMoon",
	"SpaceAgeTitan",
	"SpaceAgeSpaceHub",
}

// EraNames maps era keys to their English display names. Used as the last
// translation fallback; the i18n layer consults its own dictionaries first.
var EraNames = map[string]string{
	"BronzeAge":            "Bronze Age",
	"IronAge":              "Iron Age",
	"EarlyMiddleAge":       "Early Middle Age",
	"HighMiddleAge":        "High Middle Age",
	"LateMiddleAge":        "Late Middle Age",
	"ColonialAge":          "Colonial Age",
	"IndustrialAge":        "Industrial Age",
	"ProgressiveEra":       "Progressive Era",
	"ModernEra":            "Modern Era",
	"PostModernEra":        "Post-Modern Era",
	"ContemporaryEra":      "Contemporary Era",
	"TomorrowEra":          "Tomorrow Era",
	"FutureEra":            "Future Era",
	"ArcticFuture":         "Arctic Future",
	"OceanicFuture":        "Oceanic Future",
	"VirtualFuture":        "Virtual Future",
	"SpaceAgeMars":         "Space Age: Mars",
	"SpaceAgeAsteroidBelt": "Space Age: Asteroid Belt",
	"SpaceAgeVenus":        "Space Age: Venus",
	"SpaceAgeJupiterMoon":  "Space Age: Jupiter Moon",
	"SpaceAgeTitan":        "Space Age: Titan",
	"SpaceAgeSpaceHub":     "Space Age: Space Hub",
}

var eraRank = func() map[string]int {
	m := make(map[string]int, len(EraOrder))
	for i, e := range EraOrder {
		m[e] = i
	}
	return m
}()

// IsEra reports whether key is a known era key.
func IsEra(key string) bool {
	_, ok := eraRank[key]
	return ok
}

// EraRank returns the position of the era in EraOrder and whether the key is
// known. Lower rank means older era.
func EraRank(key string) (int, bool) {
	r, ok := eraRank[key]
	return r, ok
}

// Eras where the game grants no standalone special goods: special-goods
// rewards count as next-age goods there, both when normalizing production and
// when selecting the baseline for special-goods boost conversion.
var specialGoodsFoldedEras = map[string]bool{
	"BronzeAge":       true,
	"IronAge":         true,
	"HighMiddleAge":   true,
	"LateMiddleAge":   true,
	"ColonialAge":     true,
	"ProgressiveEra":  true,
	"IndustrialAge":   true,
	"ModernEra":       true,
	"PostModernEra":   true,
	"ContemporaryEra": true,
	"TomorrowEra":     true,
	"FutureEra":       true,
}

// SpecialGoodsFolded reports whether special goods resolve as next-age goods
// for the given era.
func SpecialGoodsFolded(era string) bool {
	return specialGoodsFoldedEras[era]
}
