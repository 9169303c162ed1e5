package store

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/mikechambers/dcli-sub000/bungie"
)

// ActivityDefinition is the subset of DestinyActivityDefinition this module
// consumes.
type ActivityDefinition struct {
	Name string
}

// ItemDefinition is the subset of DestinyInventoryItemDefinition this module
// consumes.
type ItemDefinition struct {
	Name    string
	Type    bungie.ItemType
	SubType bungie.ItemSubType
}

// HistoricalStatsDefinition is the subset of
// DestinyHistoricalStatsDefinition this module consumes.
type HistoricalStatsDefinition struct {
	ID            string
	IconImagePath string
	Tier          bungie.MedalTier
	Name          string
	Description   string
}

// Manifest is the consumed interface (§6.2): a read-only lookup from content
// hash to display metadata. Any type satisfying it may be substituted; the
// sqliteManifest below is the in-repo default.
type Manifest interface {
	GetActivityDefinition(hash uint32) (ActivityDefinition, bool)
	GetInventoryItemDefinition(hash uint32) (ItemDefinition, bool)
	GetHistoricalStatsDefinition(id string) (HistoricalStatsDefinition, bool)
}

// sqliteManifest reads a Bungie content manifest SQLite export, the same
// `json_blob` keyed-by-id layout Bungie ships. Opened read-only; never
// written to by this process.
type sqliteManifest struct {
	db *sql.DB
}

// OpenManifest opens a manifest database read-only (§5 resource policy).
func OpenManifest(path string) (Manifest, error) {
	dsn := fmt.Sprintf("file:%s?mode=ro&_journal_mode=MEMORY", path)

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, newError(KindStorage, "failed opening manifest", err)
	}

	return &sqliteManifest{db: db}, nil
}

func (m *sqliteManifest) GetActivityDefinition(hash uint32) (ActivityDefinition, bool) {
	var blob string
	err := m.db.QueryRow(
		`SELECT json FROM DestinyActivityDefinition WHERE id = ?`,
		bungie.ConvertHashToID(hash),
	).Scan(&blob)
	if err != nil {
		return ActivityDefinition{}, false
	}

	name, ok := displayName(blob)
	if !ok {
		return ActivityDefinition{}, false
	}
	return ActivityDefinition{Name: name}, true
}

func (m *sqliteManifest) GetInventoryItemDefinition(hash uint32) (ItemDefinition, bool) {
	var blob string
	err := m.db.QueryRow(
		`SELECT json FROM DestinyInventoryItemDefinition WHERE id = ?`,
		bungie.ConvertHashToID(hash),
	).Scan(&blob)
	if err != nil {
		return ItemDefinition{}, false
	}

	name, ok := displayName(blob)
	if !ok {
		return ItemDefinition{}, false
	}

	itemType, subType := parseItemTypes(blob)
	return ItemDefinition{Name: name, Type: itemType, SubType: subType}, true
}

func (m *sqliteManifest) GetHistoricalStatsDefinition(id string) (HistoricalStatsDefinition, bool) {
	var blob string
	err := m.db.QueryRow(
		`SELECT json FROM DestinyHistoricalStatsDefinition WHERE statId = ?`,
		id,
	).Scan(&blob)
	if err != nil {
		return HistoricalStatsDefinition{}, false
	}

	props, tier, ok := parseHistoricalStats(blob)
	if !ok {
		return HistoricalStatsDefinition{}, false
	}

	return HistoricalStatsDefinition{
		ID:            id,
		IconImagePath: props.Icon,
		Tier:          tier,
		Name:          props.Name,
		Description:   props.Description,
	}, true
}
