package catalog

import "encoding/json"

// Raw metadata shapes. Only the pieces the normalizer consumes are declared;
// everything else in a record is ignored.

type rawEntry struct {
	ID         string                  `json:"id"`
	Name       string                  `json:"name"`
	Components map[string]rawComponent `json:"components"`
}

type rawComponent struct {
	Placement *struct {
		Size struct {
			X int `json:"x"`
			Y int `json:"y"`
		} `json:"size"`
	} `json:"placement"`
	StreetConnection *json.RawMessage `json:"streetConnectionRequirement"`
	Limited          *struct {
		Config struct {
			ExpireTime       float64 `json:"expireTime"`
			CollectionAmount float64 `json:"collectionAmount"`
		} `json:"config"`
	} `json:"limited"`
	Ally *struct {
		Rooms []struct {
			AllyType string `json:"allyType"`
			Rarity   *struct {
				Value string `json:"value"`
			} `json:"rarity"`
		} `json:"rooms"`
	} `json:"ally"`
	StaticResources *struct {
		Resources struct {
			Resources map[string]float64 `json:"resources"`
		} `json:"resources"`
	} `json:"staticResources"`
	Happiness *struct {
		Provided float64 `json:"provided"`
	} `json:"happiness"`
	Production *struct {
		Options []struct {
			Products []rawProduct `json:"products"`
		} `json:"options"`
	} `json:"production"`
	Lookup *struct {
		Rewards map[string]rawReward `json:"rewards"`
	} `json:"lookup"`
	Boosts *struct {
		Boosts []struct {
			Type   string  `json:"type"`
			Target string  `json:"targetedFeature"`
			Value  float64 `json:"value"`
		} `json:"boosts"`
	} `json:"boosts"`
}

type rawProduct struct {
	Type            string `json:"type"`
	UnitTypeID      string `json:"unitTypeId"`
	Amount          float64 `json:"amount"`
	PlayerResources *struct {
		Resources map[string]float64 `json:"resources"`
	} `json:"playerResources"`
	GuildResources *struct {
		Resources map[string]float64 `json:"resources"`
	} `json:"guildResources"`
	Reward *struct {
		ID string `json:"id"`
	} `json:"reward"`
	// random products: each branch carries its own drop chance in 0..1.
	Products []struct {
		DropChance float64     `json:"dropChance"`
		Product    *rawProduct `json:"product"`
	} `json:"products"`
}

type rawReward struct {
	Type            string  `json:"type"`
	SubType         string  `json:"subType"`
	Name            string  `json:"name"`
	Amount          float64 `json:"amount"`
	TotalAmount     float64 `json:"totalAmount"`
	RequiredAmount  float64 `json:"requiredAmount"`
	AssembledReward *struct {
		ID string `json:"id"`
	} `json:"assembledReward"`
	Rewards []struct {
		ID string `json:"id"`
	} `json:"rewards"`
	// chest rewards: drop chance is in percent here, unlike random products.
	PossibleRewards []struct {
		DropChance float64 `json:"drop_chance"`
		Reward     struct {
			ID          string  `json:"id"`
			Type        string  `json:"type"`
			Amount      float64 `json:"amount"`
			TotalAmount float64 `json:"totalAmount"`
		} `json:"reward"`
	} `json:"possible_rewards"`
}
