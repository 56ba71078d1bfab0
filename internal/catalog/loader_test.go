package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleEntry = `[
  {
    "id": "W_MultiAge_Test21",
    "name": "Test Building",
    "components": {
      "AllAge": {
        "placement": {"size": {"x": 3, "y": 2}},
        "streetConnectionRequirement": {"level": 1},
        "limited": {"config": {"collectionAmount": 60}}
      },
      "BronzeAge": {
        "production": {
          "options": [
            {
              "products": [
                {
                  "type": "resources",
                  "playerResources": {"resources": {"strategy_points": 5, "money": 2000}}
                },
                {
                  "type": "random",
                  "products": [
                    {
                      "dropChance": 0.4,
                      "product": {
                        "type": "resources",
                        "playerResources": {"resources": {"all_goods_of_age": 10}}
                      }
                    }
                  ]
                }
              ]
            }
          ]
        },
        "boosts": {
          "boosts": [
            {"type": "att_boost_attacker", "targetedFeature": "all", "value": 7},
            {"type": "forge_points_production", "targetedFeature": "all", "value": 4}
          ]
        }
      },
      "IronAge": {
        "production": {
          "options": [
            {
              "products": [
                {
                  "type": "resources",
                  "playerResources": {"resources": {"strategy_points": 6}}
                }
              ]
            }
          ]
        }
      }
    }
  }
]`

func TestLoader_Load_OneBuildingPerEra(t *testing.T) {
	loader, err := NewLoader("")
	require.NoError(t, err)

	buildings, skipped, err := loader.Load([]byte(sampleEntry))
	require.NoError(t, err)
	assert.Zero(t, skipped)
	require.Len(t, buildings, 2)

	bronze, iron := buildings[0], buildings[1]
	assert.Equal(t, "BronzeAge", bronze.Era)
	assert.Equal(t, "IronAge", iron.Era)
	assert.Equal(t, "W_MultiAge_Test21", bronze.ID)
	assert.Equal(t, "Test Building", bronze.Name)
}

func TestLoader_Load_PlacementAndFootprint(t *testing.T) {
	loader, err := NewLoader("")
	require.NoError(t, err)

	buildings, _, err := loader.Load([]byte(sampleEntry))
	require.NoError(t, err)
	require.NotEmpty(t, buildings)

	b := buildings[0]
	assert.Equal(t, 3, b.Width)
	assert.Equal(t, 2, b.Height)
	assert.True(t, b.NeedsRoad)
	assert.Equal(t, 1.0, b.RoadTiles, "road requirement averages min(w,h)/2 tiles")
	assert.Equal(t, 6.0, b.Size())
	assert.Equal(t, 7.0, b.Footprint())
	assert.Equal(t, "Yes - 60 collections", b.Limited)
}

func TestLoader_Load_ProductionAttributes(t *testing.T) {
	loader, err := NewLoader("")
	require.NoError(t, err)

	buildings, _, err := loader.Load([]byte(sampleEntry))
	require.NoError(t, err)
	require.Len(t, buildings, 2)

	bronze := buildings[0]
	assert.Equal(t, 5.0, bronze.Attributes.Get(AttrForgePoints))
	assert.Equal(t, 2000.0, bronze.Attributes.Get(AttrCoins))
	assert.Equal(t, 4.0, bronze.Attributes.Get(AttrGoods), "random branch reduces to expectation: 0.4 × 10")
	assert.Equal(t, 7.0, bronze.Attributes.Get("red_attack"))
	assert.Equal(t, 4.0, bronze.Attributes.Get(AttrFPBoost))

	iron := buildings[1]
	assert.Equal(t, 6.0, iron.Attributes.Get(AttrForgePoints))
	assert.Zero(t, iron.Attributes.Get("red_attack"), "era components do not leak across eras")
}

func TestLoader_Load_EventTag(t *testing.T) {
	loader, err := NewLoader("")
	require.NoError(t, err)

	buildings, _, err := loader.Load([]byte(sampleEntry))
	require.NoError(t, err)
	require.NotEmpty(t, buildings)

	// No known event marker in the id: the id itself becomes the tag.
	assert.Equal(t, "W_MultiAge_Test21", buildings[0].Event)
}

func TestLoader_Load_SkipsMalformed(t *testing.T) {
	loader, err := NewLoader("")
	require.NoError(t, err)

	data := []byte(`[
	  {"name": "no id here"},
	  {"id": "W_Good", "name": "Good", "components": {}}
	]`)

	buildings, skipped, err := loader.Load(data)
	require.NoError(t, err)
	assert.Equal(t, 1, skipped)
	assert.Empty(t, buildings, "a record with no era components yields no buildings")
}

func TestLoader_Load_IgnoresOtherAssetClasses(t *testing.T) {
	loader, err := NewLoader("")
	require.NoError(t, err)

	data := []byte(`[
	  {"id": "A_Decoration", "name": "Not a world building", "components": {}}
	]`)

	buildings, skipped, err := loader.Load(data)
	require.NoError(t, err)
	assert.Zero(t, skipped, "non-building assets are out of scope, not malformed")
	assert.Empty(t, buildings)
}

func TestLoader_Load_NotAnArray(t *testing.T) {
	loader, err := NewLoader("")
	require.NoError(t, err)

	_, _, err = loader.Load([]byte(`{"id": "W_Test"}`))
	assert.Error(t, err)
}

func TestLoader_SpecialGoodsFold(t *testing.T) {
	loader, err := NewLoader("")
	require.NoError(t, err)

	data := []byte(`[
	  {
	    "id": "W_Special",
	    "name": "Special Producer",
	    "components": {
	      "AllAge": {"placement": {"size": {"x": 1, "y": 1}}},
	      "IronAge": {
	        "production": {"options": [{"products": [
	          {"type": "resources", "playerResources": {"resources": {"random_special_good_up_to_age": 3}}}
	        ]}]}
	      },
	      "ArcticFuture": {
	        "production": {"options": [{"products": [
	          {"type": "resources", "playerResources": {"resources": {"random_special_good_up_to_age": 3}}}
	        ]}]}
	      }
	    }
	  }
	]`)

	buildings, _, err := loader.Load(data)
	require.NoError(t, err)
	require.Len(t, buildings, 2)

	iron, arctic := buildings[0], buildings[1]
	assert.Zero(t, iron.Attributes.Get(AttrSpecialGoods), "folded era reroutes special goods")
	assert.Equal(t, 3.0, iron.Attributes.Get(AttrNextAgeGoods))
	assert.Equal(t, 3.0, arctic.Attributes.Get(AttrSpecialGoods))
	assert.Zero(t, arctic.Attributes.Get(AttrNextAgeGoods))
}

func TestEventTag(t *testing.T) {
	assert.Equal(t, "Winter Event 2023", eventTag("W_MultiAge_Winter23a"))
	assert.Equal(t, "Guild Battlegrounds", eventTag("W_MultiAge_GBGrewardbuilding"))
	assert.Equal(t, "W_MultiAge_Unknown", eventTag("W_MultiAge_Unknown"))
}

func TestUnitAttr(t *testing.T) {
	assert.Equal(t, AttrRogues, unitAttr("rogue_unit"))
	assert.Equal(t, AttrFastUnits, unitAttr("fast_unit_era"))
	assert.Equal(t, "next_age_"+AttrHeavyUnits, unitAttr("NextEraheavy_melee"))
	assert.Empty(t, unitAttr("mystery"))
}
