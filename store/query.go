package store

import (
	"context"
	"database/sql"
	"strconv"
	"time"

	"github.com/mikechambers/dcli-sub000/bungie"
)

// Query answers read paths against a Store and a Manifest (§4.6). It never
// runs concurrently with an Engine's writes; callers own sequencing.
type Query struct {
	Store    *Store
	Manifest Manifest
}

// NewQuery wires a Store and Manifest together.
func NewQuery(s *Store, m Manifest) *Query {
	return &Query{Store: s, Manifest: m}
}

// RetrieveLastActiveClass returns the class of the character with the most
// recent character_activity_stats row, joined to activity.period (§4.6.1).
func (q *Query) RetrieveLastActiveClass(ctx context.Context, memberID int64) (bungie.CharacterClass, error) {
	var classID int
	err := q.Store.DB.QueryRowContext(ctx, `
		SELECT c.class
		FROM character_activity_stats cas
		JOIN activity a ON a.activity_id = cas.activity_id
		JOIN character c ON c.character_id = cas.character_id
		WHERE cas.member_id = ?
		ORDER BY a.period DESC
		LIMIT 1
	`, memberID).Scan(&classID)
	if err == sql.ErrNoRows {
		return bungie.ClassUnknown, newError(KindActivityNotFound, "no activity found for member", err)
	}
	if err != nil {
		return bungie.ClassUnknown, newError(KindStorage, "failed querying last active class", err)
	}

	return classFromSQLID(classID), nil
}

func classFromSQLID(id int) bungie.CharacterClass {
	switch id {
	case bungie.SQLClassTitan:
		return bungie.ClassTitan
	case bungie.SQLClassHunter:
		return bungie.ClassHunter
	case bungie.SQLClassWarlock:
		return bungie.ClassWarlock
	default:
		return bungie.ClassUnknown
	}
}

// selectionPredicate returns the (class, class) pair bound against
// `(character.class = ? OR 4 = ?)` (§4.6.2). LastActive is resolved by the
// caller before building the predicate; it has no SQL representation here.
func selectionPredicate(selection bungie.CharacterSelection) (int, int) {
	id := selection.SQLID()
	return id, id
}

// resolveSelection turns CharacterSelection.LastActive into a concrete class
// filter; every other selection passes through unchanged.
func (q *Query) resolveSelection(ctx context.Context, memberID int64, selection bungie.CharacterSelection) (bungie.CharacterSelection, error) {
	if selection != bungie.SelectionLastActive {
		return selection, nil
	}

	class, err := q.RetrieveLastActiveClass(ctx, memberID)
	if err != nil {
		return selection, err
	}

	switch class {
	case bungie.ClassTitan:
		return bungie.SelectionTitan, nil
	case bungie.ClassHunter:
		return bungie.SelectionHunter, nil
	case bungie.ClassWarlock:
		return bungie.SelectionWarlock, nil
	default:
		return bungie.SelectionAll, nil
	}
}

// restrictModeID implements the non-mixing predicate of §4.6.4: public modes
// exclude PrivateMatchesAll-tagged activities; private modes use a sentinel
// that never matches, since they are not restricted against themselves.
func restrictModeID(mode bungie.Mode) int {
	if mode.IsPrivate() {
		return -1
	}
	return bungie.ModePrivateMatchesAll.ID()
}

// Hydrated bundles one activity with its teams, performances, and derived
// display data, ready for a caller to render.
type Hydrated struct {
	Detail bungie.ActivityDetail
	Teams  []*bungie.Team
}

// RetrieveLastActivity returns the most recent matching activity, hydrated
// (§4.6.3).
func (q *Query) RetrieveLastActivity(ctx context.Context, memberID int64, selection bungie.CharacterSelection, mode bungie.Mode) (*Hydrated, error) {
	resolved, err := q.resolveSelection(ctx, memberID, selection)
	if err != nil {
		return nil, err
	}
	classArg, classArg2 := selectionPredicate(resolved)

	var activityID int64
	err = q.Store.DB.QueryRowContext(ctx, `
		SELECT a.activity_id
		FROM activity a
		JOIN character_activity_stats cas ON cas.activity_id = a.activity_id
		JOIN character c ON c.character_id = cas.character_id
		WHERE cas.member_id = ?
			AND (c.class = ? OR ? = ?)
			AND EXISTS (SELECT 1 FROM modes m WHERE m.activity_id = a.activity_id AND m.mode_id = ?)
		ORDER BY a.period DESC
		LIMIT 1
	`, memberID, classArg, classArg2, bungie.SQLClassAll, mode.ID()).Scan(&activityID)
	if err == sql.ErrNoRows {
		return nil, newError(KindActivityNotFound, "no matching activity found", err)
	}
	if err != nil {
		return nil, newError(KindStorage, "failed querying last activity", err)
	}

	return q.hydrateActivity(ctx, activityID, memberID, resolved)
}

// RetrieveActivitiesSince returns every matching performance in [start,end],
// descending by period (§4.6.4).
func (q *Query) RetrieveActivitiesSince(ctx context.Context, memberID int64, selection bungie.CharacterSelection, mode bungie.Mode, start, end time.Time) ([]*Hydrated, error) {
	if start.After(end) {
		return nil, newError(KindDateTimePeriodOrder, "start is after end", nil)
	}

	resolved, err := q.resolveSelection(ctx, memberID, selection)
	if err != nil {
		return nil, err
	}
	classArg, classArg2 := selectionPredicate(resolved)
	restrictID := restrictModeID(mode)

	rows, err := q.Store.DB.QueryContext(ctx, `
		SELECT DISTINCT a.activity_id
		FROM activity a
		JOIN character_activity_stats cas ON cas.activity_id = a.activity_id
		JOIN character c ON c.character_id = cas.character_id
		WHERE cas.member_id = ?
			AND (c.class = ? OR ? = ?)
			AND a.period >= ? AND a.period <= ?
			AND EXISTS (SELECT 1 FROM modes m WHERE m.activity_id = a.activity_id AND m.mode_id = ?)
			AND NOT EXISTS (SELECT 1 FROM modes m2 WHERE m2.activity_id = a.activity_id AND m2.mode_id = ?)
		ORDER BY a.period DESC
	`, memberID, classArg, classArg2, bungie.SQLClassAll,
		start.UTC().Format(time.RFC3339), end.UTC().Format(time.RFC3339),
		mode.ID(), restrictID)
	if err != nil {
		return nil, newError(KindStorage, "failed querying activities since", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, newError(KindStorage, "failed scanning activity id", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, newError(KindStorage, "failed iterating activity ids", err)
	}

	results := make([]*Hydrated, 0, len(ids))
	for _, id := range ids {
		h, err := q.hydrateActivity(ctx, id, memberID, resolved)
		if err != nil {
			return nil, err
		}
		results = append(results, h)
	}

	return results, nil
}

// hydrateActivity loads one activity's detail, teams, and performances
// (§4.6.5). memberID and selection are not used here: every performance
// stored for the activity is loaded so teammates/opponents render, and the
// class filter applies only to the caller's query that picked the activity.
func (q *Query) hydrateActivity(ctx context.Context, activityID, memberID int64, selection bungie.CharacterSelection) (*Hydrated, error) {
	var period string
	var modeID, platformID int
	var directorHash, referenceID uint32
	err := q.Store.DB.QueryRowContext(ctx, `
		SELECT period, mode, platform_id, director_activity_hash, reference_id
		FROM activity WHERE activity_id = ?
	`, activityID).Scan(&period, &modeID, &platformID, &directorHash, &referenceID)
	if err != nil {
		return nil, newError(KindStorage, "failed loading activity detail", err)
	}

	parsedPeriod, err := time.Parse(time.RFC3339, period)
	if err != nil {
		return nil, newError(KindStorage, "failed parsing stored activity period", err)
	}

	modes, err := q.loadModes(ctx, activityID)
	if err != nil {
		return nil, err
	}

	detail := bungie.ActivityDetail{
		ID:                   activityID,
		Period:               parsedPeriod,
		Mode:                 bungie.ModeFromID(modeID),
		Modes:                modes,
		Platform:             bungie.PlatformFromID(platformID),
		DirectorActivityHash: directorHash,
		ReferenceID:          referenceID,
	}

	if def, ok := q.Manifest.GetActivityDefinition(referenceID); ok {
		detail.MapName = def.Name
	} else {
		detail.MapName = "Unknown"
	}

	teams, err := q.loadTeams(ctx, activityID)
	if err != nil {
		return nil, err
	}

	performances, err := q.loadPerformances(ctx, activityID)
	if err != nil {
		return nil, err
	}

	assignPerformancesToTeams(teams, performances)

	return &Hydrated{Detail: detail, Teams: teams}, nil
}

func (q *Query) loadModes(ctx context.Context, activityID int64) ([]bungie.Mode, error) {
	rows, err := q.Store.DB.QueryContext(ctx, `SELECT mode_id FROM modes WHERE activity_id = ?`, activityID)
	if err != nil {
		return nil, newError(KindStorage, "failed loading modes", err)
	}
	defer rows.Close()

	var modes []bungie.Mode
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, newError(KindStorage, "failed scanning mode row", err)
		}
		modes = append(modes, bungie.ModeFromID(id))
	}
	return modes, rows.Err()
}

func (q *Query) loadTeams(ctx context.Context, activityID int64) ([]*bungie.Team, error) {
	rows, err := q.Store.DB.QueryContext(ctx,
		`SELECT team_id, name, score, standing FROM team_result WHERE activity_id = ? ORDER BY team_id`, activityID)
	if err != nil {
		return nil, newError(KindStorage, "failed loading team_result", err)
	}
	defer rows.Close()

	var teams []*bungie.Team
	paletteIndex := 0
	for rows.Next() {
		var id int32
		var name sql.NullString
		var score float64
		var standing int
		if err := rows.Scan(&id, &name, &score, &standing); err != nil {
			return nil, newError(KindStorage, "failed scanning team_result row", err)
		}

		displayName := teamPaletteName(paletteIndex)
		paletteIndex++

		teams = append(teams, &bungie.Team{
			ID:       id,
			Name:     displayName,
			Score:    float32(score),
			Standing: bungie.Standing(standing),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(teams) == 0 {
		teams = append(teams, &bungie.Team{ID: bungie.NoTeamsIndex, Name: teamPaletteName(0)})
	}

	return teams, nil
}

func teamPaletteName(i int) string {
	if i < len(bungie.TeamNamePalette) {
		return bungie.TeamNamePalette[i]
	}
	return bungie.TeamNamePalette[len(bungie.TeamNamePalette)-1]
}

func (q *Query) loadPerformances(ctx context.Context, activityID int64) ([]*bungie.Performance, error) {
	rows, err := q.Store.DB.QueryContext(ctx, `
		SELECT id, character_id, member_id, standing, completion_reason, team,
			assists, score, kills, deaths, opponents_defeated, completed,
			start_seconds, duration_seconds, time_played_seconds, player_count, team_score,
			light_level, emblem_hash, fireteam_id,
			precision_kills, weapon_kills_ability, weapon_kills_grenade, weapon_kills_melee,
			weapon_kills_super, all_medals_earned
		FROM character_activity_stats WHERE activity_id = ?
	`, activityID)
	if err != nil {
		return nil, newError(KindStorage, "failed loading character_activity_stats", err)
	}
	defer rows.Close()

	var performances []*bungie.Performance
	var statsIDs []int64
	for rows.Next() {
		var statsID int64
		p := &bungie.Performance{Extended: &bungie.ExtendedPerformance{RawMedalCounts: map[uint32]uint32{}}}
		var standing, completionReason int
		if err := rows.Scan(
			&statsID, &p.CharacterID, &p.MemberID, &standing, &completionReason, &p.Team,
			&p.Assists, &p.Score, &p.Kills, &p.Deaths, &p.OpponentsDefeated, &p.Completed,
			&p.StartSeconds, &p.DurationSeconds, &p.TimePlayedSeconds, &p.PlayerCount, &p.TeamScore,
			&p.LightLevel, &p.EmblemHash, &p.FireteamID,
			&p.Extended.PrecisionKills, &p.Extended.WeaponKillsAbility, &p.Extended.WeaponKillsGrenade,
			&p.Extended.WeaponKillsMelee, &p.Extended.WeaponKillsSuper, &p.Extended.AllMedalsEarned,
		); err != nil {
			return nil, newError(KindStorage, "failed scanning character_activity_stats row", err)
		}

		p.CharacterActivityStatsID = statsID
		p.Standing = bungie.Standing(standing)
		p.CompletionReason = bungie.CompletionReasonFromID(uint32(completionReason))

		performances = append(performances, p)
		statsIDs = append(statsIDs, statsID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i, statsID := range statsIDs {
		weapons, err := q.loadWeapons(ctx, statsID)
		if err != nil {
			return nil, err
		}
		performances[i].Extended.Weapons = weapons

		medals, err := q.loadMedals(ctx, statsID)
		if err != nil {
			return nil, err
		}
		performances[i].Extended.Medals = medals
	}

	return performances, nil
}

func (q *Query) loadWeapons(ctx context.Context, statsID int64) ([]*bungie.WeaponStat, error) {
	rows, err := q.Store.DB.QueryContext(ctx,
		`SELECT weapon_reference_id, kills, precision_kills, precision_ratio FROM weapon_result WHERE character_activity_stats_id = ?`,
		statsID)
	if err != nil {
		return nil, newError(KindStorage, "failed loading weapon_result", err)
	}
	defer rows.Close()

	var weapons []*bungie.WeaponStat
	for rows.Next() {
		w := &bungie.WeaponStat{}
		var pct float64
		if err := rows.Scan(&w.ReferenceID, &w.Kills, &w.PrecisionKills, &pct); err != nil {
			return nil, newError(KindStorage, "failed scanning weapon_result row", err)
		}
		w.PrecisionKillsPercent = float32(pct)

		if def, ok := q.Manifest.GetInventoryItemDefinition(w.ReferenceID); ok {
			w.Name = def.Name
			w.Type = def.SubType
		} else {
			w.Name = "Unknown"
			w.Type = bungie.ItemSubTypeUnknown
		}

		weapons = append(weapons, w)
	}
	return weapons, rows.Err()
}

func (q *Query) loadMedals(ctx context.Context, statsID int64) ([]*bungie.MedalStat, error) {
	rows, err := q.Store.DB.QueryContext(ctx,
		`SELECT medal_reference_id, count FROM medal_result WHERE character_activity_stats_id = ?`, statsID)
	if err != nil {
		return nil, newError(KindStorage, "failed loading medal_result", err)
	}
	defer rows.Close()

	var medals []*bungie.MedalStat
	for rows.Next() {
		m := &bungie.MedalStat{}
		if err := rows.Scan(&m.ReferenceID, &m.Count); err != nil {
			return nil, newError(KindStorage, "failed scanning medal_result row", err)
		}

		if def, ok := q.Manifest.GetHistoricalStatsDefinition(formatStatID(m.ReferenceID)); ok {
			m.Name = def.Name
			m.Description = def.Description
			m.Tier = def.Tier
			m.IconPath = def.IconImagePath
		} else {
			m.Name = "Unknown"
		}

		medals = append(medals, m)
	}
	return medals, rows.Err()
}

func formatStatID(hash uint32) string {
	return strconv.FormatUint(uint64(hash), 10)
}

func assignPerformancesToTeams(teams []*bungie.Team, performances []*bungie.Performance) {
	byTeamID := make(map[int32]*bungie.Team, len(teams))
	for _, t := range teams {
		byTeamID[t.ID] = t
	}

	fallback := teams[0]
	for _, p := range performances {
		team, ok := byTeamID[p.Team]
		if !ok {
			team = fallback
		}
		team.Performances = append(team.Performances, p)
	}
}

// Summary is the single aggregate row returned by RetrieveActivitiesSummary
// (§4.6.6).
type Summary struct {
	TotalActivities        int
	TimePlayedSeconds       int64
	Wins                    int
	CompletionReasonMercy   int
	Completed               int64
	Assists                 float64
	Kills                   int64
	Deaths                  int64
	OpponentsDefeated       int64
	GrenadeKills            int64
	MeleeKills              int64
	SuperKills              int64
	AbilityKills            int64
	PrecisionKills          int64

	HighestKills              int64
	HighestDeaths             int64
	HighestAssists            float64
	HighestKillsDeathsRatio   float64
	HighestKillsDeathsAssists float64
	HighestEfficiency         float64
	HighestCompleted          int64
	HighestOpponentsDefeated  int64
	HighestGrenadeKills       int64
	HighestMeleeKills         int64
	HighestSuperKills         int64
	HighestAbilityKills       int64
	HighestPrecisionKills     int64
}

// RetrieveActivitiesSummary computes the rolling aggregate over the same
// predicate as RetrieveActivitiesSince (§4.6.6). The SQL selects the
// qualifying rows only; every sum and maximum is accumulated in Go over those
// rows, so with no qualifying rows every field is zero.
func (q *Query) RetrieveActivitiesSummary(ctx context.Context, memberID int64, selection bungie.CharacterSelection, mode bungie.Mode, start, end time.Time) (*Summary, error) {
	if start.After(end) {
		return nil, newError(KindDateTimePeriodOrder, "start is after end", nil)
	}

	resolved, err := q.resolveSelection(ctx, memberID, selection)
	if err != nil {
		return nil, err
	}
	classArg, classArg2 := selectionPredicate(resolved)
	restrictID := restrictModeID(mode)

	rows, err := q.Store.DB.QueryContext(ctx, `
		SELECT cas.standing, cas.completion_reason, cas.completed, cas.assists, cas.kills, cas.deaths,
			cas.opponents_defeated, cas.weapon_kills_grenade, cas.weapon_kills_melee, cas.weapon_kills_super,
			cas.weapon_kills_ability, cas.precision_kills, cas.time_played_seconds
		FROM character_activity_stats cas
		JOIN activity a ON a.activity_id = cas.activity_id
		JOIN character c ON c.character_id = cas.character_id
		WHERE cas.member_id = ?
			AND (c.class = ? OR ? = ?)
			AND a.period >= ? AND a.period <= ?
			AND EXISTS (SELECT 1 FROM modes m WHERE m.activity_id = a.activity_id AND m.mode_id = ?)
			AND NOT EXISTS (SELECT 1 FROM modes m2 WHERE m2.activity_id = a.activity_id AND m2.mode_id = ?)
	`, memberID, classArg, classArg2, bungie.SQLClassAll,
		start.UTC().Format(time.RFC3339), end.UTC().Format(time.RFC3339),
		mode.ID(), restrictID)
	if err != nil {
		return nil, newError(KindStorage, "failed querying activities summary", err)
	}
	defer rows.Close()

	s := &Summary{}
	for rows.Next() {
		var standing, completionReason int
		var completed, kills, deaths, opponentsDefeated uint32
		var grenade, melee, super, ability, precision uint32
		var assists float32
		var timePlayed uint32

		if err := rows.Scan(&standing, &completionReason, &completed, &assists, &kills, &deaths,
			&opponentsDefeated, &grenade, &melee, &super, &ability, &precision, &timePlayed); err != nil {
			return nil, newError(KindStorage, "failed scanning summary row", err)
		}

		s.TotalActivities++
		s.TimePlayedSeconds += int64(timePlayed)
		if bungie.Standing(standing) == bungie.StandingVictory {
			s.Wins++
		}
		if bungie.CompletionReasonFromID(uint32(completionReason)) == bungie.CompletionMercy {
			s.CompletionReasonMercy++
		}
		s.Completed += int64(completed)
		s.Assists += float64(assists)
		s.Kills += int64(kills)
		s.Deaths += int64(deaths)
		s.OpponentsDefeated += int64(opponentsDefeated)
		s.GrenadeKills += int64(grenade)
		s.MeleeKills += int64(melee)
		s.SuperKills += int64(super)
		s.AbilityKills += int64(ability)
		s.PrecisionKills += int64(precision)

		if int64(kills) > s.HighestKills {
			s.HighestKills = int64(kills)
		}
		if int64(deaths) > s.HighestDeaths {
			s.HighestDeaths = int64(deaths)
		}
		if float64(assists) > s.HighestAssists {
			s.HighestAssists = float64(assists)
		}
		if int64(completed) > s.HighestCompleted {
			s.HighestCompleted = int64(completed)
		}
		if int64(opponentsDefeated) > s.HighestOpponentsDefeated {
			s.HighestOpponentsDefeated = int64(opponentsDefeated)
		}
		if int64(grenade) > s.HighestGrenadeKills {
			s.HighestGrenadeKills = int64(grenade)
		}
		if int64(melee) > s.HighestMeleeKills {
			s.HighestMeleeKills = int64(melee)
		}
		if int64(super) > s.HighestSuperKills {
			s.HighestSuperKills = int64(super)
		}
		if int64(ability) > s.HighestAbilityKills {
			s.HighestAbilityKills = int64(ability)
		}
		if int64(precision) > s.HighestPrecisionKills {
			s.HighestPrecisionKills = int64(precision)
		}

		kd := bungie.KillsDeathsRatio(kills, deaths)
		if kd > s.HighestKillsDeathsRatio {
			s.HighestKillsDeathsRatio = kd
		}
		kda := bungie.KillsDeathsAssists(kills, deaths, assists)
		if kda > s.HighestKillsDeathsAssists {
			s.HighestKillsDeathsAssists = kda
		}
		eff := bungie.Efficiency(kills, deaths, assists)
		if eff > s.HighestEfficiency {
			s.HighestEfficiency = eff
		}
	}

	return s, rows.Err()
}
