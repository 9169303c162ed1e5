package bungie

// PGCR is a parsed post-game carnage report: one activity instance, its
// synthesized/upstream teams, and one entry per character that played in it.
type PGCR struct {
	Detail  ActivityDetail
	Teams   []*PGCRTeam
	Entries []*PGCREntry
}

// PGCRTeam is one upstream team_result row. Free-for-all reports carry no
// teams at all; their entries default to team NoTeamsIndex, and the Query
// Engine synthesizes a single NoTeamsIndex team when it hydrates them.
type PGCRTeam struct {
	ID       int32
	Name     string
	Score    float32
	Standing Standing
}

// PGCREntry is one character's statline within a PGCR, shaped to drop
// directly into a Performance once the Ingestion Engine resolves its member
// and assigns a CharacterActivityStatsID.
type PGCREntry struct {
	CharacterID int64
	Member      Member
	Class       CharacterClass

	Team             int32
	Standing         Standing
	CompletionReason CompletionReason

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

func toPGCR(data *pgcrData) (*PGCR, error) {
	id, err := parseInt64(data.ActivityDetails.InstanceID)
	if err != nil {
		return nil, newError(KindParse, "invalid pgcr instance id", err)
	}

	period, err := parseUpstreamTime(data.Period)
	if err != nil {
		return nil, newError(KindParse, "invalid pgcr period", err)
	}

	modes := make([]Mode, 0, len(data.ActivityDetails.Modes))
	for _, m := range data.ActivityDetails.Modes {
		modes = append(modes, ModeFromID(m))
	}

	detail := ActivityDetail{
		ID:                   id,
		Period:               period,
		Mode:                 ModeFromID(data.ActivityDetails.Mode),
		Modes:                modes,
		Platform:             PlatformFromID(data.ActivityDetails.MembershipType),
		DirectorActivityHash: data.ActivityDetails.DirectorActivityHash,
		ReferenceID:          data.ActivityDetails.ReferenceID,
	}

	teams := make([]*PGCRTeam, 0, len(data.Teams))
	for _, t := range data.Teams {
		teams = append(teams, &PGCRTeam{
			ID:       t.TeamID,
			Name:     t.TeamName,
			Score:    float32(t.Score.Basic.Value),
			Standing: StandingFromValue(uint32(t.Standing.Basic.Value)),
		})
	}

	entries := make([]*PGCREntry, 0, len(data.Entries))
	for _, raw := range data.Entries {
		entry, err := toPGCREntry(raw, detail.Mode)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return &PGCR{Detail: detail, Teams: teams, Entries: entries}, nil
}

func toPGCREntry(raw *pgcrEntry, mode Mode) (*PGCREntry, error) {
	characterID, err := parseInt64(raw.CharacterID)
	if err != nil {
		return nil, newError(KindParse, "invalid pgcr character id", err)
	}

	member, err := raw.Player.UserInfo.toMember()
	if err != nil {
		return nil, newError(KindParse, "invalid pgcr player user info", err)
	}

	team := int32(NoTeamsIndex)
	if t, ok := raw.Values["team"]; ok {
		team = int32(t.Basic.Value)
	}

	entry := &PGCREntry{
		CharacterID:       characterID,
		Member:            member,
		Class:             ClassFromHash(raw.Player.ClassHash),
		Team:              team,
		Standing:          StandingFromMode(raw.Standing, mode),
		CompletionReason:  CompletionReasonFromID(uint32(raw.Values.get("completionReason"))),
		Assists:           float32(raw.Values.get("assists")),
		Score:             uint32(raw.Score.Basic.Value),
		Kills:             uint32(raw.Values.get("kills")),
		Deaths:            uint32(raw.Values.get("deaths")),
		OpponentsDefeated: uint32(raw.Values.get("opponentsDefeated")),
		Completed:         uint32(raw.Values.get("completed")),
		StartSeconds:      uint32(raw.Values.get("startSeconds")),
		DurationSeconds:   uint32(raw.Values.get("activityDurationSeconds")),
		TimePlayedSeconds: uint32(raw.Values.get("timePlayedSeconds")),
		PlayerCount:       uint32(raw.Values.get("playerCount")),
		TeamScore:         uint32(raw.Values.get("teamScore")),
		LightLevel:        raw.Player.LightLevel,
		EmblemHash:        raw.Player.EmblemHash,
		FireteamID:        int64(raw.Values.get("fireteamId")),
	}

	if raw.Extended != nil {
		entry.Extended = toExtendedPerformance(raw.Extended)
	}

	return entry, nil
}

var namedExtendedValueKeys = map[string]bool{
	"precisionKills":     true,
	"weaponKillsAbility": true,
	"weaponKillsGrenade": true,
	"weaponKillsMelee":   true,
	"weaponKillsSuper":   true,
	"allMedalsEarned":    true,
}

func toExtendedPerformance(data *pgcrExtendedData) *ExtendedPerformance {
	ext := &ExtendedPerformance{
		PrecisionKills:     uint32(data.Values.get("precisionKills")),
		WeaponKillsAbility: uint32(data.Values.get("weaponKillsAbility")),
		WeaponKillsGrenade: uint32(data.Values.get("weaponKillsGrenade")),
		WeaponKillsMelee:   uint32(data.Values.get("weaponKillsMelee")),
		WeaponKillsSuper:   uint32(data.Values.get("weaponKillsSuper")),
		AllMedalsEarned:    uint32(data.Values.get("allMedalsEarned")),
		RawMedalCounts:     make(map[uint32]uint32),
	}

	// Every remaining key in extended.values that isn't one of the six
	// named counters above is a medal reference hash; the count is its
	// basic.value. Medal-by-medal name/description/tier resolution is a
	// Query Engine hydration concern (manifest lookup), not ingestion's.
	for key, v := range data.Values {
		if namedExtendedValueKeys[key] {
			continue
		}
		hash, err := parseUint32(key)
		if err != nil {
			continue
		}
		ext.RawMedalCounts[hash] = uint32(v.Basic.Value)
	}

	ext.Weapons = make([]*WeaponStat, 0, len(data.Weapons))
	for _, w := range data.Weapons {
		kills := w.Values.get("uniqueWeaponKills")
		precision := w.Values.get("uniqueWeaponPrecisionKills")

		var pct float32
		if kills > 0 {
			pct = float32(precision / kills * 100)
		}

		ext.Weapons = append(ext.Weapons, &WeaponStat{
			ReferenceID:           w.ReferenceID,
			Kills:                 uint32(kills),
			PrecisionKills:        uint32(precision),
			PrecisionKillsPercent: pct,
		})
	}

	return ext
}
