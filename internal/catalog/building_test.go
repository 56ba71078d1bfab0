package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAttributes_AddIgnoresZeroAndEmpty(t *testing.T) {
	attrs := make(Attributes)
	attrs.Add(AttrForgePoints, 5)
	attrs.Add(AttrForgePoints, 3)
	attrs.Add(AttrGoods, 0)
	attrs.Add("", 7)

	assert.Equal(t, 8.0, attrs.Get(AttrForgePoints))
	assert.Len(t, attrs, 1)
}

func TestAttributes_GetMissingIsZero(t *testing.T) {
	attrs := make(Attributes)
	assert.Zero(t, attrs.Get(AttrMedals))
}

func TestAttributes_CloneIsolated(t *testing.T) {
	attrs := Attributes{AttrCoins: 100}
	clone := attrs.Clone()
	clone.Add(AttrCoins, 50)

	assert.Equal(t, 100.0, attrs.Get(AttrCoins))
	assert.Equal(t, 150.0, clone.Get(AttrCoins))
}

func TestOutcomeList_Expected(t *testing.T) {
	outcomes := OutcomeList{
		{Chance: 0.5, Amount: 10},
		{Chance: 0.25, Amount: 20},
	}
	assert.Equal(t, 10.0, outcomes.Expected())
	assert.Zero(t, OutcomeList{}.Expected())
}

func TestBuilding_Footprint(t *testing.T) {
	b := Building{Width: 4, Height: 3, NeedsRoad: true, RoadTiles: 1.5}
	assert.Equal(t, 12.0, b.Size())
	assert.Equal(t, 13.5, b.Footprint())

	noRoad := Building{Width: 2, Height: 2}
	assert.Equal(t, 4.0, noRoad.Footprint())
}

func TestEraRank_Order(t *testing.T) {
	bronze, ok := EraRank("BronzeAge")
	assert.True(t, ok)
	assert.Zero(t, bronze)

	iron, ok := EraRank("IronAge")
	assert.True(t, ok)
	assert.Equal(t, 1, iron)

	last, ok := EraRank(EraOrder[len(EraOrder)-1])
	assert.True(t, ok)
	assert.Equal(t, len(EraOrder)-1, last)

	_, ok = EraRank("StoneAge")
	assert.False(t, ok)
}

func TestIsEra(t *testing.T) {
	assert.True(t, IsEra("SpaceAgeMars"))
	assert.False(t, IsEra("AllAge"))
}

func TestSpecialGoodsFolded(t *testing.T) {
	assert.True(t, SpecialGoodsFolded("BronzeAge"))
	assert.True(t, SpecialGoodsFolded("IronAge"))
	assert.False(t, SpecialGoodsFolded("ArcticFuture"))
	assert.False(t, SpecialGoodsFolded("SpaceAgeMars"))
}

func TestEraStats(t *testing.T) {
	buildings := []Building{
		{Era: "IronAge", Attributes: Attributes{AttrForgePoints: 2, AttrGoods: 5}},
		{Era: "IronAge", Attributes: Attributes{AttrForgePoints: 9}},
		{Era: "BronzeAge", Attributes: Attributes{AttrForgePoints: 1}},
	}

	stats := EraStats(buildings)

	assert.Len(t, stats, 2)
	assert.Equal(t, Range{Min: 2, Max: 9}, stats["IronAge"][AttrForgePoints])
	assert.Equal(t, Range{Min: 5, Max: 5}, stats["IronAge"][AttrGoods])
	assert.Equal(t, Range{Min: 1, Max: 1}, stats["BronzeAge"][AttrForgePoints])

	_, found := stats["BronzeAge"][AttrGoods]
	assert.False(t, found, "attributes absent from an era stay absent from its stats")
}
