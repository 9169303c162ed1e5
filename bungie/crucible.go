package bungie

import (
	"fmt"
	"time"
)

// Member is a Bungie account, the primary identity this module tracks.
// Id is signed 64-bit and stable across platforms once cross-save is
// resolved; it is never deleted once observed.
type Member struct {
	ID       int64
	Platform Platform
	Name     PlayerName
}

// PlayerName is the three-part Bungie display name. A valid Bungie name
// requires all three fields populated.
type PlayerName struct {
	DisplayName           *string
	BungieDisplayName     *string
	BungieDisplayNameCode *string
}

// IsValid reports whether every component of the name has been observed.
func (n PlayerName) IsValid() bool {
	return n.DisplayName != nil && n.BungieDisplayName != nil && n.BungieDisplayNameCode != nil
}

// FormatBungieDisplayNameCode zero-pads a 1-9999 Bungie name code to 4 digits.
func FormatBungieDisplayNameCode(code uint32) string {
	return fmt.Sprintf("%04d", code)
}

func (n PlayerName) String() string {
	if n.BungieDisplayName != nil && n.BungieDisplayNameCode != nil {
		return fmt.Sprintf("%s#%s", *n.BungieDisplayName, *n.BungieDisplayNameCode)
	}
	if n.DisplayName != nil {
		return *n.DisplayName
	}
	return "Unknown"
}

// Character is one of up to three playable characters belonging to a Member.
type Character struct {
	ID       int64
	MemberID int64
	Class    CharacterClass
}

// ActivityDetail identifies a single match instance.
type ActivityDetail struct {
	ID                   int64
	Period               time.Time
	MapName              string
	Mode                 Mode
	Modes                []Mode
	Platform             Platform
	DirectorActivityHash uint32
	ReferenceID          uint32
}

// Team is a synthesized or upstream-reported side in an activity. Rumble and
// other team-less modes get a single virtual team with id NoTeamsIndex.
type Team struct {
	ID           int32
	Name         string
	Score        float32
	Standing     Standing
	Performances []*Performance
}

// NoTeamsIndex is the virtual team id assigned when an activity reported no
// team_result rows (free-for-all modes).
const NoTeamsIndex = 253

// TeamNamePalette is the fixed display-name sequence assigned to teams in
// insertion order during hydration (§4.6.5).
var TeamNamePalette = []string{"Alpha", "Bravo", "Charlie", "Delta", "Echo", "Foxtrot"}

// Performance is one character's statline for one activity.
type Performance struct {
	CharacterActivityStatsID int64
	CharacterID              int64
	MemberID                 int64
	Standing                 Standing
	CompletionReason         CompletionReason
	Team                     int32

	Assists           float32
	Score             uint32
	Kills             uint32
	Deaths            uint32
	OpponentsDefeated uint32
	Completed         uint32

	StartSeconds      uint32
	DurationSeconds   uint32
	TimePlayedSeconds uint32
	PlayerCount       uint32
	TeamScore         uint32
	LightLevel        int32
	EmblemHash        uint32
	FireteamID        int64

	Extended *ExtendedPerformance
}

// ExtendedPerformance holds the optional per-weapon/medal breakdown a PGCR
// entry may carry. A PGCREntry leaves it nil when the upstream entry omitted
// it (the store then records zero counters); a hydrated Performance always
// carries a non-nil value.
type ExtendedPerformance struct {
	PrecisionKills     uint32
	WeaponKillsAbility uint32
	WeaponKillsGrenade uint32
	WeaponKillsMelee   uint32
	WeaponKillsSuper   uint32
	AllMedalsEarned    uint32

	Weapons []*WeaponStat
	Medals  []*MedalStat

	// RawMedalCounts holds the extended.values entries keyed by a bare
	// numeric medal reference hash rather than one of the six named
	// precision/ability/grenade/melee/super/all-medals counters above. The Ingestion
	// Engine persists these directly; the Query Engine's hydration pass
	// resolves each hash to a name/description/tier via the Manifest.
	RawMedalCounts map[uint32]uint32
}

// WeaponStat is one weapon's contribution to a Performance.
type WeaponStat struct {
	ReferenceID           uint32
	Name                  string
	Type                  ItemSubType
	Kills                 uint32
	PrecisionKills        uint32
	PrecisionKillsPercent float32
}

// MedalStat is one earned medal's contribution to a Performance.
type MedalStat struct {
	ReferenceID uint32
	Name        string
	Description string
	Tier        MedalTier
	IconPath    string
	Count       uint32
}

// Efficiency computes (kills+assists)/max(deaths,1).
func Efficiency(kills, deaths, assists uint32) float64 {
	d := deaths
	if d < 1 {
		d = 1
	}
	return (float64(kills) + float64(assists)) / float64(d)
}

// KillsDeathsRatio computes kills/max(deaths,1).
func KillsDeathsRatio(kills, deaths uint32) float64 {
	d := deaths
	if d < 1 {
		d = 1
	}
	return float64(kills) / float64(d)
}

// KillsDeathsAssists computes (kills+0.5*assists)/max(deaths,1).
func KillsDeathsAssists(kills, deaths uint32, assists float32) float64 {
	d := deaths
	if d < 1 {
		d = 1
	}
	return (float64(kills) + 0.5*float64(assists)) / float64(d)
}

// SyncResult accumulates the outcome of a sync pass. Add combines two results
// the way both the two-pass loop (§4.4.4) and the three mode-family
// discovery results (§4.4.2) are summed.
type SyncResult struct {
	TotalAvailable int
	TotalSynced    int
}

func (a SyncResult) Add(b SyncResult) SyncResult {
	return SyncResult{
		TotalAvailable: a.TotalAvailable + b.TotalAvailable,
		TotalSynced:    a.TotalSynced + b.TotalSynced,
	}
}
