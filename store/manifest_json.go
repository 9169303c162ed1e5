package store

import (
	"encoding/json"

	"github.com/mikechambers/dcli-sub000/bungie"
)

// manifestDisplayProperties mirrors the 'displayProperties' block common to
// every Destiny manifest definition table.
type manifestDisplayProperties struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type manifestItemBlob struct {
	DisplayProperties manifestDisplayProperties `json:"displayProperties"`
	ItemType          int                        `json:"itemType"`
	ItemSubType       int                        `json:"itemSubType"`
}

func displayName(blob string) (string, bool) {
	var d struct {
		DisplayProperties manifestDisplayProperties `json:"displayProperties"`
	}
	if err := json.Unmarshal([]byte(blob), &d); err != nil {
		return "", false
	}
	if d.DisplayProperties.Name == "" {
		return "", false
	}
	return d.DisplayProperties.Name, true
}

func parseItemTypes(blob string) (bungie.ItemType, bungie.ItemSubType) {
	var item manifestItemBlob
	if err := json.Unmarshal([]byte(blob), &item); err != nil {
		return bungie.ItemTypeUnknown, bungie.ItemSubTypeUnknown
	}
	return bungie.ItemType(item.ItemType), bungie.ItemSubType(item.ItemSubType)
}

type manifestHistoricalStatsBlob struct {
	DisplayProperties manifestDisplayProperties `json:"displayProperties"`
	MedalTierHash     uint32                     `json:"medalTierHash"`
}

func parseHistoricalStats(blob string) (manifestDisplayProperties, bungie.MedalTier, bool) {
	var h manifestHistoricalStatsBlob
	if err := json.Unmarshal([]byte(blob), &h); err != nil {
		return manifestDisplayProperties{}, bungie.MedalTierUnknown, false
	}
	if h.DisplayProperties.Name == "" {
		return manifestDisplayProperties{}, bungie.MedalTierUnknown, false
	}
	return h.DisplayProperties, bungie.MedalTier(h.MedalTierHash), true
}
