package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"forgescope/internal/catalog"
)

func building(id string, w, h int, attrs catalog.Attributes) catalog.Building {
	return catalog.Building{
		ID:         id,
		Name:       id,
		Era:        "BronzeAge",
		Width:      w,
		Height:     h,
		Attributes: attrs,
	}
}

func TestWeighted_AppliesProfile(t *testing.T) {
	attrs := catalog.Attributes{
		catalog.AttrForgePoints: 10,
		catalog.AttrCoins:       2000,
	}
	weights := WeightProfile{catalog.AttrForgePoints: 5}

	weighted := Weighted(attrs, weights)

	assert.Equal(t, 50.0, weighted.Get(catalog.AttrForgePoints))
	assert.Zero(t, weighted.Get(catalog.AttrCoins), "unweighted attributes contribute nothing")
}

func TestWeighted_PureFunction(t *testing.T) {
	attrs := catalog.Attributes{catalog.AttrForgePoints: 10}
	weights := WeightProfile{catalog.AttrForgePoints: 5}

	Weighted(attrs, weights)

	assert.Equal(t, 10.0, attrs.Get(catalog.AttrForgePoints), "input attributes must not change")
	assert.Equal(t, 5.0, weights.Get(catalog.AttrForgePoints), "input weights must not change")
}

func TestScore_EfficiencyDividesByFootprint(t *testing.T) {
	b := building("W_Test", 2, 2, catalog.Attributes{catalog.AttrForgePoints: 10})
	b.NeedsRoad = true
	b.RoadTiles = 1
	weights := WeightProfile{catalog.AttrForgePoints: 5}

	results := Score([]catalog.Building{b}, weights, NewCityContext())

	require.Len(t, results, 1)
	assert.Equal(t, 50.0, results[0].Score)
	assert.Equal(t, 5.0, results[0].Building.Footprint())
	assert.Equal(t, 10.0, results[0].Efficiency)
	assert.False(t, results[0].Unranked)
}

func TestScore_BoostUsesCityBaseline(t *testing.T) {
	b := building("W_Boost", 1, 1, catalog.Attributes{catalog.AttrGoodsBoost: 20})
	weights := WeightProfile{catalog.AttrGoods: 2}
	city := NewCityContext()
	city.Set(ResourceGoods, 100)

	results := Score([]catalog.Building{b}, weights, city)

	require.Len(t, results, 1)
	// 20% of 100 goods/day = 20 goods, weighted ×2 = 40.
	assert.Equal(t, 40.0, results[0].Score)
}

func TestScore_UnsetBaselineContributesZero(t *testing.T) {
	b := building("W_Boost", 1, 1, catalog.Attributes{catalog.AttrGoodsBoost: 20})
	weights := WeightProfile{catalog.AttrGoods: 2}

	results := Score([]catalog.Building{b}, weights, NewCityContext())

	require.Len(t, results, 1)
	assert.Zero(t, results[0].Score, "boost over an unset baseline must convert to 0")
}

func TestScore_ZeroWeightsZeroScores(t *testing.T) {
	b := building("W_Test", 3, 3, catalog.Attributes{
		catalog.AttrForgePoints: 10,
		catalog.AttrGoods:       15,
	})

	results := Score([]catalog.Building{b}, NewWeightProfile(), NewCityContext())

	require.Len(t, results, 1)
	assert.Zero(t, results[0].Score)
	assert.Zero(t, results[0].Efficiency)
}

func TestScore_LinearInWeights(t *testing.T) {
	b := building("W_Test", 2, 3, catalog.Attributes{
		catalog.AttrForgePoints: 10,
		catalog.AttrGoods:       4,
	})
	weights := WeightProfile{catalog.AttrForgePoints: 5, catalog.AttrGoods: 1}
	scaled := WeightProfile{catalog.AttrForgePoints: 15, catalog.AttrGoods: 3}

	base := Score([]catalog.Building{b}, weights, NewCityContext())
	tripled := Score([]catalog.Building{b}, scaled, NewCityContext())

	assert.Equal(t, base[0].Score*3, tripled[0].Score)
	assert.Equal(t, base[0].Efficiency*3, tripled[0].Efficiency)
}

func TestScore_DoubleFootprintHalvesEfficiency(t *testing.T) {
	small := building("W_Small", 2, 2, catalog.Attributes{catalog.AttrForgePoints: 10})
	large := building("W_Large", 4, 2, catalog.Attributes{catalog.AttrForgePoints: 10})
	weights := WeightProfile{catalog.AttrForgePoints: 1}

	results := Score([]catalog.Building{small, large}, weights, NewCityContext())

	require.Len(t, results, 2)
	assert.Equal(t, results[0].Score, results[1].Score)
	assert.Equal(t, results[0].Efficiency, results[1].Efficiency*2)
}

func TestScore_NegativeWeight(t *testing.T) {
	b := building("W_Test", 1, 1, catalog.Attributes{catalog.AttrPopulation: -120})
	weights := WeightProfile{catalog.AttrPopulation: -1}

	results := Score([]catalog.Building{b}, weights, NewCityContext())

	assert.Equal(t, 120.0, results[0].Score, "negative attribute times negative weight scores positive")
}

func TestScore_ZeroFootprintUnranked(t *testing.T) {
	b := building("W_Flat", 0, 0, catalog.Attributes{catalog.AttrForgePoints: 10})
	weights := WeightProfile{catalog.AttrForgePoints: 1}

	results := Score([]catalog.Building{b}, weights, NewCityContext())

	require.Len(t, results, 1)
	assert.True(t, results[0].Unranked)
	assert.Zero(t, results[0].Efficiency)
}

func TestSortByEfficiency_Ordering(t *testing.T) {
	weights := WeightProfile{catalog.AttrForgePoints: 1}
	buildings := []catalog.Building{
		building("W_Low", 2, 2, catalog.Attributes{catalog.AttrForgePoints: 4}),
		building("W_Flat", 0, 0, catalog.Attributes{catalog.AttrForgePoints: 100}),
		building("W_High", 1, 1, catalog.Attributes{catalog.AttrForgePoints: 9}),
	}

	results := Score(buildings, weights, NewCityContext())
	SortByEfficiency(results)

	require.Len(t, results, 3)
	assert.Equal(t, "W_High", results[0].Building.ID)
	assert.Equal(t, "W_Low", results[1].Building.ID)
	assert.Equal(t, "W_Flat", results[2].Building.ID, "unranked buildings sink last")
}

func TestSortByEfficiency_StableOnTies(t *testing.T) {
	weights := WeightProfile{catalog.AttrForgePoints: 1}
	buildings := []catalog.Building{
		building("W_First", 1, 1, catalog.Attributes{catalog.AttrForgePoints: 3}),
		building("W_Second", 1, 1, catalog.Attributes{catalog.AttrForgePoints: 3}),
	}

	results := Score(buildings, weights, NewCityContext())
	SortByEfficiency(results)

	assert.Equal(t, "W_First", results[0].Building.ID, "equal efficiencies keep dataset order")
	assert.Equal(t, "W_Second", results[1].Building.ID)
}

func TestScore_Deterministic(t *testing.T) {
	attrs := catalog.Attributes{
		catalog.AttrForgePoints: 0.1,
		catalog.AttrGoods:       0.2,
		catalog.AttrCoins:       0.3,
		catalog.AttrMedals:      0.7,
		catalog.AttrSupplies:    1.1,
	}
	weights := WeightProfile{
		catalog.AttrForgePoints: 1,
		catalog.AttrGoods:       1,
		catalog.AttrCoins:       1,
		catalog.AttrMedals:      1,
		catalog.AttrSupplies:    1,
	}
	b := building("W_Test", 1, 1, attrs)

	first := Score([]catalog.Building{b}, weights, NewCityContext())
	for i := 0; i < 100; i++ {
		again := Score([]catalog.Building{b}, weights, NewCityContext())
		require.Equal(t, first[0].Score, again[0].Score, "score must not depend on map iteration order")
	}
}
