package catalog

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// buildingIDPrefix filters the raw metadata down to placeable world buildings;
// other asset classes share the same file.
const buildingIDPrefix = "W_"

// entrySchema is the structural contract a raw metadata record must satisfy
// before parsing is attempted. Records failing validation are reported and
// skipped; they never abort the batch.
const entrySchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["id", "name", "components"],
  "properties": {
    "id": {"type": "string", "minLength": 1},
    "name": {"type": "string"},
    "components": {"type": "object"}
  }
}`

// playerResourceAttrs maps metadata resource keys to canonical attributes.
var playerResourceAttrs = map[string]string{
	"money":                            AttrCoins,
	"supplies":                         AttrSupplies,
	"medals":                           AttrMedals,
	"strategy_points":                  AttrForgePoints,
	"forgepoint_package":               AttrForgePointPackage,
	"all_goods_of_age":                 AttrGoods,
	"random_good_of_age":               AttrGoods,
	"all_goods_of_previous_age":        AttrPrevAgeGoods,
	"random_good_of_previous_age":      AttrPrevAgeGoods,
	"all_goods_of_next_age":            AttrNextAgeGoods,
	"random_good_of_next_age":          AttrNextAgeGoods,
	"random_special_good_up_to_age":    AttrSpecialGoods,
	"guild_goods":                      AttrGuildGoods,
}

var guildResourceAttrs = map[string]string{
	"all_goods_of_age": AttrGuildGoods,
}

var unitTypeAttrs = map[string]string{
	"heavy_melee":  AttrHeavyUnits,
	"fast":         AttrFastUnits,
	"short_ranged": AttrRangedUnits,
	"long_ranged":  AttrArtilleryUnits,
	"light_melee":  AttrLightUnits,
}

var consumableAttrs = map[string]string{
	"rush_event_buildings_instant": "finish_special_production",
	"rush_goods_buildings_instant": "finish_goods_production",
	"store_building":               "store_kit",
	"mass_self_aid_kit":            "mass_self_aid_kit",
	"self_aid_kit":                 "self_aid_kit",
	"renovation_kit":               "renovation_kit",
	"one_up_kit":                   "one_up_kit",
	"rush_mass_supplies_24h":       "finish_all_supplies",
}

type boostKey struct {
	typ    string
	target string
}

// boostAttrs maps a metadata boost (type, targetedFeature) pair onto the
// attribute keys it contributes to. Combined boosts fan out to several keys.
var boostAttrs = map[boostKey][]string{
	{"att_boost_attacker", "all"}:              {"red_attack"},
	{"def_boost_attacker", "all"}:              {"red_defense"},
	{"att_boost_attacker", "battleground"}:     {"red_gbg_attack"},
	{"def_boost_attacker", "battleground"}:     {"red_gbg_defense"},
	{"att_boost_attacker", "guild_expedition"}: {"red_ge_attack"},
	{"def_boost_attacker", "guild_expedition"}: {"red_ge_defense"},
	{"att_boost_attacker", "guild_raids"}:      {"red_qi_attack"},
	{"def_boost_attacker", "guild_raids"}:      {"red_qi_defense"},
	{"att_boost_defender", "all"}:              {"blue_attack"},
	{"def_boost_defender", "all"}:              {"blue_defense"},
	{"att_boost_defender", "battleground"}:     {"blue_gbg_attack"},
	{"def_boost_defender", "battleground"}:     {"blue_gbg_defense"},
	{"att_boost_defender", "guild_expedition"}: {"blue_ge_attack"},
	{"def_boost_defender", "guild_expedition"}: {"blue_ge_defense"},
	{"att_boost_defender", "guild_raids"}:      {"blue_qi_attack"},
	{"def_boost_defender", "guild_raids"}:      {"blue_qi_defense"},

	{"att_def_boost_attacker", "all"}:              {"red_attack", "red_defense"},
	{"att_def_boost_attacker", "battleground"}:     {"red_gbg_attack", "red_gbg_defense"},
	{"att_def_boost_attacker", "guild_expedition"}: {"red_ge_attack", "red_ge_defense"},
	{"att_def_boost_attacker", "guild_raids"}:      {"red_qi_attack", "red_qi_defense"},
	{"att_def_boost_defender", "all"}:              {"blue_attack", "blue_defense"},
	{"att_def_boost_defender", "battleground"}:     {"blue_gbg_attack", "blue_gbg_defense"},
	{"att_def_boost_defender", "guild_expedition"}: {"blue_ge_attack", "blue_ge_defense"},
	{"att_def_boost_defender", "guild_raids"}:      {"blue_qi_attack", "blue_qi_defense"},
	{"att_def_boost_attacker_defender", "all"}:     {"red_attack", "red_defense", "blue_attack", "blue_defense"},
	{"att_def_boost_attacker_defender", "battleground"}:     {"red_gbg_attack", "red_gbg_defense", "blue_gbg_attack", "blue_gbg_defense"},
	{"att_def_boost_attacker_defender", "guild_expedition"}: {"red_ge_attack", "red_ge_defense", "blue_ge_attack", "blue_ge_defense"},
	{"att_def_boost_attacker_defender", "guild_raids"}:      {"red_qi_attack", "red_qi_defense", "blue_qi_attack", "blue_qi_defense"},

	{"coin_production", "all"}:          {AttrCoinBoost},
	{"supply_production", "all"}:        {AttrSuppliesBoost},
	{"medal_production", "all"}:         {AttrMedalBoost},
	{"forge_points_production", "all"}:  {AttrFPBoost},
	{"goods_production", "all"}:         {AttrGoodsBoost},
	{"guild_goods_production", "all"}:   {AttrGuildGoodsBoost},
	{"special_goods_production", "all"}: {AttrSpecialGoodsBoost},
}

// Loader parses raw building metadata into Building records, one per era the
// building exists in. Parsing is deterministic and side-effect-free apart
// from warnings about skipped records.
type Loader struct {
	schema *jsonschema.Schema
}

// NewLoader creates a Loader. When schemaPath is empty the embedded entry
// schema is used; otherwise the schema is compiled from the given file.
func NewLoader(schemaPath string) (*Loader, error) {
	var schema *jsonschema.Schema
	var err error
	if schemaPath == "" {
		schema, err = jsonschema.CompileString("building.schema.json", entrySchema)
	} else {
		schema, err = jsonschema.Compile(schemaPath)
	}
	if err != nil {
		return nil, fmt.Errorf("compile building schema: %w", err)
	}
	return &Loader{schema: schema}, nil
}

// Load parses the metadata document. Malformed records are counted and
// skipped; the returned buildings keep the document order within each entry.
func (l *Loader) Load(data []byte) ([]Building, int, error) {
	var entries []json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, 0, fmt.Errorf("metadata is not a JSON array: %w", err)
	}

	buildings := make([]Building, 0, len(entries))
	skipped := 0
	for _, raw := range entries {
		parsed, ok := l.parseEntry(raw)
		if !ok {
			skipped++
			continue
		}
		buildings = append(buildings, parsed...)
	}
	return buildings, skipped, nil
}

func (l *Loader) parseEntry(raw json.RawMessage) ([]Building, bool) {
	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		slog.Warn("Unparseable metadata record", "error", err)
		return nil, false
	}
	if err := l.schema.Validate(generic); err != nil {
		slog.Warn("Metadata record failed schema validation", "error", err)
		return nil, false
	}

	var entry rawEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		slog.Warn("Malformed metadata record", "error", err)
		return nil, false
	}
	if len(entry.ID) < len(buildingIDPrefix) || entry.ID[:len(buildingIDPrefix)] != buildingIDPrefix {
		// Not a world building; silently out of scope rather than malformed.
		return nil, true
	}

	allAge := entry.Components["AllAge"]
	width, height, roadTiles, needsRoad := placementData(allAge)

	var out []Building
	for _, era := range EraOrder {
		comp, found := entry.Components[era]
		if !found {
			continue
		}
		b := Building{
			ID:        entry.ID,
			Name:      entry.Name,
			Era:       era,
			Event:     eventTag(entry.ID),
			Width:     width,
			Height:    height,
			NeedsRoad: needsRoad,
			RoadTiles: roadTiles,
			Limited:   limitations(allAge),
			AllyRoom:  allyRoom(allAge),
		}
		attrs := make(Attributes)
		for _, c := range []rawComponent{comp, allAge} {
			staticResources(c, attrs)
			production(c, attrs)
			boosts(c, attrs)
		}
		foldSpecialGoods(era, attrs)
		roundAll(attrs)
		b.Attributes = attrs
		out = append(out, b)
	}
	return out, true
}

// placementData derives tile dimensions and the average road requirement.
// A street connection consumes min(width, height)/2 tiles on average.
func placementData(allAge rawComponent) (width, height int, roadTiles float64, needsRoad bool) {
	if allAge.Placement != nil {
		width = allAge.Placement.Size.X
		height = allAge.Placement.Size.Y
	}
	needsRoad = allAge.StreetConnection != nil
	if needsRoad {
		roadTiles = float64(min(width, height)) / 2
	}
	return width, height, roadTiles, needsRoad
}

func limitations(allAge rawComponent) string {
	if allAge.Limited == nil {
		return "No"
	}
	cfg := allAge.Limited.Config
	switch {
	case cfg.ExpireTime > 0:
		return fmt.Sprintf("Yes - %d days", int(cfg.ExpireTime/86400))
	case cfg.CollectionAmount > 0:
		return fmt.Sprintf("Yes - %d collections", int(cfg.CollectionAmount))
	}
	return "Yes - Other"
}

func allyRoom(allAge rawComponent) string {
	if allAge.Ally == nil || len(allAge.Ally.Rooms) == 0 {
		return "No"
	}
	room := allAge.Ally.Rooms[0]
	if room.Rarity != nil {
		return room.AllyType + " - " + room.Rarity.Value
	}
	return room.AllyType + " - any rarity"
}

func staticResources(c rawComponent, attrs Attributes) {
	if c.StaticResources != nil {
		if pop, found := c.StaticResources.Resources.Resources["population"]; found {
			attrs.Add(AttrPopulation, pop)
		}
	}
	if c.Happiness != nil {
		attrs.Add(AttrHappiness, c.Happiness.Provided)
	}
}

func production(c rawComponent, attrs Attributes) {
	if c.Production == nil || len(c.Production.Options) == 0 {
		return
	}
	var lookup map[string]rawReward
	if c.Lookup != nil {
		lookup = c.Lookup.Rewards
	}
	for _, product := range c.Production.Options[0].Products {
		addProduct(product, 1.0, lookup, attrs)
	}
}

// addProduct folds one production product into attrs, weighted by chance.
// Random products recurse with each branch's drop chance; every probabilistic
// structure therefore reduces to its expectation.
func addProduct(p rawProduct, chance float64, lookup map[string]rawReward, attrs Attributes) {
	switch p.Type {
	case "resources":
		if p.PlayerResources == nil {
			return
		}
		for key, amount := range p.PlayerResources.Resources {
			if attr, found := playerResourceAttrs[key]; found {
				attrs.Add(attr, amount*chance)
			}
		}
	case "guildResources":
		if p.GuildResources == nil {
			return
		}
		for key, amount := range p.GuildResources.Resources {
			if attr, found := guildResourceAttrs[key]; found {
				attrs.Add(attr, amount*chance)
			}
		}
	case "unit":
		attrs.Add(unitAttr(p.UnitTypeID), p.Amount*chance)
	case "genericReward":
		if p.Reward == nil {
			return
		}
		addReward(p.Reward.ID, chance, lookup, attrs)
	case "random":
		for _, branch := range p.Products {
			if branch.DropChance <= 0 || branch.Product == nil {
				continue
			}
			addProduct(*branch.Product, chance*branch.DropChance, lookup, attrs)
		}
	}
}

// addReward resolves a genericReward id through the lookup table and routes
// the expected amount onto the matching attribute.
func addReward(rewardID string, chance float64, lookup map[string]rawReward, attrs Attributes) {
	reward, found := lookup[rewardID]
	if !found {
		return
	}
	amount := reward.TotalAmount
	if amount == 0 {
		amount = reward.Amount
	}

	switch reward.Type {
	case "consumable":
		if reward.SubType == "fragment" && reward.AssembledReward != nil {
			if attr, ok := consumableAttrs[reward.AssembledReward.ID]; ok {
				required := reward.RequiredAmount
				if required <= 0 {
					required = 1
				}
				attrs.Add(attr, amount/required*chance)
			}
			return
		}
		if attr, ok := consumableAttrs[rewardID]; ok {
			attrs.Add(attr, amount*chance)
		}
	case "set":
		if len(reward.Rewards) == 0 {
			return
		}
		if attr, ok := consumableAttrs[reward.Rewards[0].ID]; ok {
			attrs.Add(attr, amount*chance)
		}
	case "good", "special_goods", "guild_goods":
		attrs.Add(goodsAttr(rewardID), amount*chance)
	case "unit":
		attrs.Add(unitAttr(rewardID), amount*chance)
	case "chest":
		addChest(rewardID, reward, chance, attrs)
	default:
		if strings.Contains(rewardID, "forgepoint_package") {
			attrs.Add(AttrForgePointPackage, packageValue(rewardID)*amount*chance)
		}
	}
}

// addChest reduces a chest reward to its weighted outcome list. Only the
// declared possible rewards participate; each carries its own drop chance in
// percent.
func addChest(chestID string, reward rawReward, chance float64, attrs Attributes) {
	if len(reward.PossibleRewards) == 0 {
		return
	}
	for _, possible := range reward.PossibleRewards {
		inner := possible.DropChance
		if inner == 0 {
			inner = 100
		}
		amount := possible.Reward.TotalAmount
		if amount == 0 {
			amount = possible.Reward.Amount
		}
		outcomes := OutcomeList{{Chance: chance * inner / 100, Amount: amount}}
		expected := outcomes.Expected()
		switch {
		case possible.Reward.Type == "good" && (strings.Contains(chestID, "NextEra") || strings.Contains(chestID, "next_age")):
			attrs.Add(AttrNextAgeGoods, expected)
		case possible.Reward.Type == "good":
			attrs.Add(AttrGoods, expected)
		case strings.Contains(chestID, "next_age_unit"):
			attrs.Add(unitAttr("NextEra"+possible.Reward.ID), expected)
		case strings.Contains(chestID, "random_unit"):
			attrs.Add(unitAttr(possible.Reward.ID), expected)
		}
	}
}

func boosts(c rawComponent, attrs Attributes) {
	if c.Boosts == nil {
		return
	}
	for _, b := range c.Boosts.Boosts {
		keys, found := boostAttrs[boostKey{b.Type, b.Target}]
		if !found {
			slog.Debug("Unmapped boost", "type", b.Type, "target", b.Target)
			continue
		}
		for _, key := range keys {
			attrs.Add(key, b.Value)
		}
	}
}

// foldSpecialGoods reroutes special-goods production to next-age goods for
// eras where standalone special goods do not exist.
func foldSpecialGoods(era string, attrs Attributes) {
	if !SpecialGoodsFolded(era) {
		return
	}
	if v := attrs.Get(AttrSpecialGoods); v != 0 {
		attrs.Add(AttrNextAgeGoods, v)
		delete(attrs, AttrSpecialGoods)
	}
}

func roundAll(attrs Attributes) {
	for k, v := range attrs {
		attrs[k] = math.Round(v*100) / 100
	}
}

// unitAttr maps a metadata unit id onto a unit attribute key. Rogues are
// their own category; NextEra ids get the next_age_ prefix.
func unitAttr(unitID string) string {
	if strings.Contains(unitID, "rogue") {
		return AttrRogues
	}
	prefix := ""
	if strings.Contains(unitID, "NextEra") {
		prefix = "next_age_"
	}
	for typeID, attr := range unitTypeAttrs {
		if strings.Contains(unitID, typeID) {
			return prefix + attr
		}
	}
	return ""
}

// goodsAttr routes a goods reward id by its age marker.
func goodsAttr(rewardID string) string {
	switch {
	case strings.Contains(rewardID, "Current"):
		return AttrGoods
	case strings.Contains(rewardID, "special"):
		return AttrSpecialGoods
	case strings.Contains(rewardID, "Next"):
		return AttrNextAgeGoods
	case strings.Contains(rewardID, "Previous"):
		return AttrPrevAgeGoods
	case strings.Contains(rewardID, "guild_goods"):
		return AttrGuildGoods
	}
	return ""
}

func packageValue(rewardID string) float64 {
	switch {
	case strings.Contains(rewardID, "large"):
		return 10
	case strings.Contains(rewardID, "medium"):
		return 5
	case strings.Contains(rewardID, "small"):
		return 2
	}
	return 0
}

// Known event tags embedded in building ids, checked in order. Ids carrying a
// two-digit year get it appended to the tag.
var eventTags = []struct{ marker, tag string }{
	{"Anniversary", "Anniversary Event"},
	{"Carnival", "Carnival Event"},
	{"Easter", "Easter Event"},
	{"Fall", "Fall Event"},
	{"Forge_Bowl", "Forge Bowl Event"},
	{"Halloween", "Halloween Event"},
	{"Patrick", "St. Patrick's Day Event"},
	{"Soccer", "Soccer Cup Event"},
	{"Summer", "Summer Event"},
	{"Winter", "Winter Event"},
	{"Wildlife", "Wildlife Event"},
	{"GBG", "Guild Battlegrounds"},
	{"Expedition", "Guild Expedition"},
	{"HistoricalAllies", "Historical Allies"},
}

// eventTag derives the event a building was introduced in from its id.
// Unknown ids keep the id itself as the tag so grouping stays total.
func eventTag(id string) string {
	for _, e := range eventTags {
		if !strings.Contains(id, e.marker) {
			continue
		}
		for year := 18; year <= 30; year++ {
			if strings.Contains(id, fmt.Sprintf("%d", year)) {
				return fmt.Sprintf("%s 20%d", e.tag, year)
			}
		}
		return e.tag
	}
	return id
}
