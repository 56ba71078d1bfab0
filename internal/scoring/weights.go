package scoring

import "sort"

// WeightProfile maps an attribute key to its signed weight in points per
// unit. Attributes without a configured weight contribute nothing to the
// score; the scoring model is opt-in.
type WeightProfile map[string]float64

// NewWeightProfile returns an empty profile.
func NewWeightProfile() WeightProfile {
	return make(WeightProfile)
}

// Get returns the weight for the attribute, 0 when unconfigured.
func (w WeightProfile) Get(attr string) float64 {
	return w[attr]
}

// Set stores the weight for the attribute.
func (w WeightProfile) Set(attr string, weight float64) {
	w[attr] = weight
}

// IsZero reports whether no attribute carries a non-zero weight.
func (w WeightProfile) IsZero() bool {
	for _, v := range w {
		if v != 0 {
			return false
		}
	}
	return true
}

// Clone returns an independent copy.
func (w WeightProfile) Clone() WeightProfile {
	out := make(WeightProfile, len(w))
	for k, v := range w {
		out[k] = v
	}
	return out
}

// sortedKeys returns the map keys in lexical order. Weighted sums iterate in
// this order so a score never depends on map iteration order.
func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
