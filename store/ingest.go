package store

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/kpango/glg"

	"github.com/mikechambers/dcli-sub000/bungie"
)

// discoveryModeFamilies are walked, in order, on every character during the
// discovery phase; their sub-results are all summed into the character's
// discovery total (§4.4.2).
var discoveryModeFamilies = []bungie.Mode{
	bungie.ModePrivateMatchesAll,
	bungie.ModeAllPvP,
	bungie.ModeIronBannerZoneControl,
}

// Engine drives discovery, fetch, repair, and write for one or many members
// against a single Store.
type Engine struct {
	Store          *Store
	API            *bungie.APIInterface
	FixCorruptData bool
	Metrics        *Metrics
}

// NewEngine wires a Store, an API Interface, and a Metrics set together.
// Metrics may be nil, in which case the engine runs unobserved.
func NewEngine(s *Store, api *bungie.APIInterface, fixCorruptData bool, metrics *Metrics) *Engine {
	return &Engine{Store: s, API: api, FixCorruptData: fixCorruptData, Metrics: metrics}
}

// Subscribe registers a member for SyncAll passes, idempotently.
func (e *Engine) Subscribe(ctx context.Context, memberID int64) error {
	_, err := e.Store.DB.ExecContext(ctx,
		`INSERT OR IGNORE INTO sync (member_id, last_sync_timestamp) VALUES (?, NULL)`, memberID)
	if err != nil {
		return newError(KindStorage, "failed subscribing member", err)
	}
	return nil
}

// SyncMember refreshes one member's profile, then runs the two-pass
// discover/fetch loop for each of its characters (§4.4.1, §4.4.4).
func (e *Engine) SyncMember(ctx context.Context, member bungie.Member) (bungie.SyncResult, error) {
	info, err := e.API.GetPlayerInfo(ctx, member.ID, member.Platform)
	if err != nil {
		return bungie.SyncResult{}, err
	}

	if err := e.upsertMember(ctx, info.Member); err != nil {
		return bungie.SyncResult{}, err
	}

	total := bungie.SyncResult{}
	for _, character := range info.Characters {
		if err := e.upsertCharacter(ctx, character); err != nil {
			glg.Errorf("upsert character %d: %s", character.ID, err.Error())
			continue
		}

		first, err := e.syncActivities(ctx, member.Platform, character)
		if err != nil {
			glg.Warnf("sync activities pass 1 for character %d: %s", character.ID, err.Error())
		}
		total = total.Add(first)

		// The discovery count is not added to total: pass 2 reports the same
		// newly queued activities as available.
		if _, err := e.updateActivityQueue(ctx, member.Platform, character); err != nil {
			glg.Warnf("update activity queue for character %d: %s", character.ID, err.Error())
		}

		second, err := e.syncActivities(ctx, member.Platform, character)
		if err != nil {
			glg.Warnf("sync activities pass 2 for character %d: %s", character.ID, err.Error())
		}
		total = total.Add(second)
	}

	if err := e.touchSync(ctx, member.ID); err != nil {
		glg.Warnf("touch sync for member %d: %s", member.ID, err.Error())
	}

	if e.Metrics != nil {
		e.Metrics.SyncPassesTotal.Inc()
	}

	return total, nil
}

// SyncAll walks every subscribed member. A failure on one member is logged
// and does not abort the pass (§4.4.1).
func (e *Engine) SyncAll(ctx context.Context) (bungie.SyncResult, error) {
	members, err := e.subscribedMembers(ctx)
	if err != nil {
		return bungie.SyncResult{}, err
	}

	total := bungie.SyncResult{}
	for _, m := range members {
		if ctx.Err() != nil {
			return total, ctx.Err()
		}

		result, err := e.SyncMember(ctx, m)
		if err != nil {
			glg.Errorf("sync member %d: %s", m.ID, err.Error())
			continue
		}
		total = total.Add(result)
	}

	return total, nil
}

func (e *Engine) subscribedMembers(ctx context.Context) ([]bungie.Member, error) {
	rows, err := e.Store.DB.QueryContext(ctx, `
		SELECT member.member_id, member.platform_id, member.display_name, member.bungie_display_name, member.code
		FROM sync JOIN member ON member.member_id = sync.member_id
	`)
	if err != nil {
		return nil, newError(KindStorage, "failed listing subscribed members", err)
	}
	defer rows.Close()

	var members []bungie.Member
	for rows.Next() {
		var id int64
		var platformID int
		var displayName, bungieDisplayName, code sql.NullString
		if err := rows.Scan(&id, &platformID, &displayName, &bungieDisplayName, &code); err != nil {
			return nil, newError(KindStorage, "failed scanning subscribed member row", err)
		}
		members = append(members, bungie.Member{
			ID:       id,
			Platform: bungie.PlatformFromID(platformID),
			Name: bungie.PlayerName{
				DisplayName:           nullableString(displayName),
				BungieDisplayName:     nullableString(bungieDisplayName),
				BungieDisplayNameCode: nullableString(code),
			},
		})
	}

	return members, rows.Err()
}

func nullableString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}

func (e *Engine) touchSync(ctx context.Context, memberID int64) error {
	_, err := e.Store.DB.ExecContext(ctx, `
		INSERT INTO sync (member_id, last_sync_timestamp) VALUES (?, ?)
		ON CONFLICT(member_id) DO UPDATE SET last_sync_timestamp = excluded.last_sync_timestamp
	`, memberID, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return newError(KindStorage, "failed touching sync row", err)
	}
	return nil
}

// updateActivityQueue runs discovery across all three mode families and
// sums their sub-results (§4.4.2).
func (e *Engine) updateActivityQueue(ctx context.Context, platform bungie.Platform, character bungie.Character) (bungie.SyncResult, error) {
	total := bungie.SyncResult{}
	for _, mode := range discoveryModeFamilies {
		result, err := e.discoverFamily(ctx, platform, character, mode)
		if err != nil {
			glg.Warnf("discovery aborted for character %d mode %s: %s", character.ID, mode, err.Error())
			continue
		}
		total = total.Add(result)
	}
	return total, nil
}

func (e *Engine) discoverFamily(ctx context.Context, platform bungie.Platform, character bungie.Character, mode bungie.Mode) (bungie.SyncResult, error) {
	sentinel, err := e.maxSyncedActivityID(ctx, character.ID, mode)
	if err != nil {
		return bungie.SyncResult{}, err
	}

	activities, err := e.API.ListActivitiesSinceID(ctx, platform, character.MemberID, character.ID, mode, sentinel)
	if err != nil {
		return bungie.SyncResult{}, err
	}
	if len(activities) == 0 {
		return bungie.SyncResult{}, nil
	}

	tx, err := e.Store.BeginTx(ctx)
	if err != nil {
		return bungie.SyncResult{}, err
	}
	defer Rollback(tx)

	inserted := 0
	for _, a := range activities {
		if bungie.GambitPrivateMatchHashes[a.DirectorActivityHash] {
			continue
		}

		res, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO activity_queue (activity_id, character_id, synced) VALUES (?, ?, 0)`,
			a.ActivityID, character.ID)
		if err != nil {
			return bungie.SyncResult{}, newError(KindStorage, "failed inserting activity_queue row", err)
		}
		n, _ := res.RowsAffected()
		inserted += int(n)
	}

	if err := Commit(tx); err != nil {
		return bungie.SyncResult{}, err
	}

	return bungie.SyncResult{TotalAvailable: inserted}, nil
}

func (e *Engine) maxSyncedActivityID(ctx context.Context, characterID int64, mode bungie.Mode) (int64, error) {
	query := `
		SELECT COALESCE(MAX(aq.activity_id), 0)
		FROM activity_queue aq
		JOIN modes m ON m.activity_id = aq.activity_id
		WHERE aq.character_id = ? AND m.mode_id = ? AND aq.synced = 1`
	args := []any{characterID, mode.ID()}

	if mode == bungie.ModeAllPvP {
		query += `
			AND NOT EXISTS (
				SELECT 1 FROM modes m2
				WHERE m2.activity_id = aq.activity_id AND m2.mode_id = ?
			)`
		args = append(args, bungie.ModeIronBannerZoneControl.ID())
	}

	var sentinel int64
	if err := e.Store.DB.QueryRowContext(ctx, query, args...).Scan(&sentinel); err != nil {
		return 0, newError(KindStorage, "failed querying discovery sentinel", err)
	}
	return sentinel, nil
}

// syncActivities is the fetch phase: it drains queued-but-unsynced
// activities in bounded-concurrency chunks (§4.4.3).
func (e *Engine) syncActivities(ctx context.Context, platform bungie.Platform, character bungie.Character) (bungie.SyncResult, error) {
	ids, err := e.unsyncedQueueIDs(ctx, character.ID)
	if err != nil {
		return bungie.SyncResult{}, err
	}

	remaining := make([]int64, 0, len(ids))
	for _, id := range ids {
		exists, err := e.activityExists(ctx, id)
		if err != nil {
			glg.Warnf("activity existence check for %d: %s", id, err.Error())
			continue
		}
		if exists {
			if err := e.markQueueSynced(ctx, character.ID, id); err != nil {
				glg.Warnf("mark queue synced for %d: %s", id, err.Error())
			}
			continue
		}
		remaining = append(remaining, id)
	}

	if len(remaining) == 0 {
		return bungie.SyncResult{}, nil
	}

	totalSynced := 0
	for start := 0; start < len(remaining); start += bungie.PGCRRequestChunkAmount {
		if ctx.Err() != nil {
			break
		}

		end := start + bungie.PGCRRequestChunkAmount
		if end > len(remaining) {
			end = len(remaining)
		}

		for _, result := range e.fetchChunk(ctx, remaining[start:end]) {
			switch {
			case result.err != nil:
				glg.Warnf("pgcr fetch for %d: %s", result.id, result.err.Error())
				e.countFailure()
			case result.pgcr == nil:
				glg.Infof("empty pgcr response for %d, ignoring", result.id)
			default:
				if err := e.insertActivity(ctx, result.pgcr, character.ID); err != nil {
					glg.Errorf("insert activity %d: %s", result.id, err.Error())
					e.countFailure()
					continue
				}
				totalSynced++
				if e.Metrics != nil {
					e.Metrics.ActivitiesFetched.Inc()
				}
			}
		}
	}

	if err := e.Store.Optimize(); err != nil {
		glg.Warnf("pragma optimize: %s", err.Error())
	}

	if e.Metrics != nil {
		e.Metrics.QueueDepth.Set(float64(len(remaining) - totalSynced))
	}

	return bungie.SyncResult{TotalAvailable: len(remaining), TotalSynced: totalSynced}, nil
}

func (e *Engine) countFailure() {
	if e.Metrics != nil {
		e.Metrics.ActivitiesFailed.Inc()
	}
}

type pgcrFetchResult struct {
	id   int64
	pgcr *bungie.PGCR
	err  error
}

// fetchChunk fans out up to PGCRRequestChunkAmount concurrent GetPGCR calls
// and joins before returning, the way the module's bounded-concurrency idiom
// elsewhere launches and waits on goroutines (§4.4.3, §5).
func (e *Engine) fetchChunk(ctx context.Context, ids []int64) []pgcrFetchResult {
	results := make([]pgcrFetchResult, len(ids))

	var wg sync.WaitGroup
	for i, id := range ids {
		wg.Add(1)
		go func(i int, id int64) {
			defer wg.Done()
			start := time.Now()
			pgcr, err := e.API.GetPGCR(ctx, id)
			if e.Metrics != nil {
				e.Metrics.FetchLatencySeconds.Observe(time.Since(start).Seconds())
			}
			results[i] = pgcrFetchResult{id: id, pgcr: pgcr, err: err}
		}(i, id)
	}
	wg.Wait()

	return results
}

func (e *Engine) unsyncedQueueIDs(ctx context.Context, characterID int64) ([]int64, error) {
	rows, err := e.Store.DB.QueryContext(ctx,
		`SELECT activity_id FROM activity_queue WHERE character_id = ? AND synced = 0`, characterID)
	if err != nil {
		return nil, newError(KindStorage, "failed listing unsynced queue rows", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, newError(KindStorage, "failed scanning queue row", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (e *Engine) activityExists(ctx context.Context, activityID int64) (bool, error) {
	var found int
	err := e.Store.DB.QueryRowContext(ctx, `SELECT 1 FROM activity WHERE activity_id = ?`, activityID).Scan(&found)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, newError(KindStorage, "failed checking activity existence", err)
	}
	return true, nil
}

func (e *Engine) markQueueSynced(ctx context.Context, characterID, activityID int64) error {
	_, err := e.Store.DB.ExecContext(ctx,
		`UPDATE activity_queue SET synced = 1 WHERE character_id = ? AND activity_id = ?`, characterID, activityID)
	if err != nil {
		return newError(KindStorage, "failed marking queue row synced", err)
	}
	return nil
}

// insertActivity applies data repair then persists one PGCR within a single
// transaction (§4.4.5, §4.4.6). Any failure rolls back the whole activity;
// the caller logs and continues. The transaction is detached from ctx's
// cancellation, so a report that has already arrived is written in full.
func (e *Engine) insertActivity(ctx context.Context, pgcr *bungie.PGCR, queueCharacterID int64) error {
	ctx = context.WithoutCancel(ctx)
	FixPGCRData(&pgcr.Detail, pgcr.Detail.DirectorActivityHash, pgcr.Detail.Period)

	tx, err := e.Store.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer Rollback(tx)

	if _, err := tx.ExecContext(ctx, `
		INSERT OR IGNORE INTO activity (activity_id, period, mode, platform_id, director_activity_hash, reference_id)
		VALUES (?, ?, ?, ?, ?, ?)
	`, pgcr.Detail.ID, pgcr.Detail.Period.UTC().Format(time.RFC3339), pgcr.Detail.Mode.ID(),
		pgcr.Detail.Platform.ID(), pgcr.Detail.DirectorActivityHash, pgcr.Detail.ReferenceID); err != nil {
		return newError(KindStorage, "failed inserting activity", err)
	}

	for _, t := range pgcr.Teams {
		if _, err := tx.ExecContext(ctx, `
			INSERT OR IGNORE INTO team_result (activity_id, team_id, name, score, standing)
			VALUES (?, ?, ?, ?, ?)
		`, pgcr.Detail.ID, t.ID, t.Name, t.Score, int(t.Standing)); err != nil {
			return newError(KindStorage, "failed inserting team_result", err)
		}
	}

	for _, m := range pgcr.Detail.Modes {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO modes (activity_id, mode_id) VALUES (?, ?)`, pgcr.Detail.ID, m.ID()); err != nil {
			return newError(KindStorage, "failed inserting modes row", err)
		}
	}

	for _, entry := range pgcr.Entries {
		if err := e.upsertMemberWithRepair(ctx, tx, entry.Member); err != nil {
			return err
		}
		if err := upsertCharacterTx(ctx, tx, bungie.Character{ID: entry.CharacterID, MemberID: entry.Member.ID, Class: entry.Class}); err != nil {
			return err
		}
		if err := insertPerformanceTx(ctx, tx, pgcr.Detail.ID, entry); err != nil {
			return err
		}
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE activity_queue SET synced = 1 WHERE activity_id = ? AND character_id = ?`,
		pgcr.Detail.ID, queueCharacterID); err != nil {
		return newError(KindStorage, "failed marking queue row synced", err)
	}

	return Commit(tx)
}

func insertPerformanceTx(ctx context.Context, tx *sql.Tx, activityID int64, entry *bungie.PGCREntry) error {
	var precisionKills, abilityKills, grenadeKills, meleeKills, superKills, medalsEarned uint32
	if entry.Extended != nil {
		precisionKills = entry.Extended.PrecisionKills
		abilityKills = entry.Extended.WeaponKillsAbility
		grenadeKills = entry.Extended.WeaponKillsGrenade
		meleeKills = entry.Extended.WeaponKillsMelee
		superKills = entry.Extended.WeaponKillsSuper
		medalsEarned = entry.Extended.AllMedalsEarned
	}

	_, err := tx.ExecContext(ctx, `
		INSERT INTO character_activity_stats (
			character_id, activity_id, member_id, standing, completion_reason, team,
			assists, score, kills, deaths, opponents_defeated, completed,
			start_seconds, duration_seconds, time_played_seconds, player_count, team_score,
			light_level, emblem_hash, fireteam_id,
			precision_kills, weapon_kills_ability, weapon_kills_grenade, weapon_kills_melee,
			weapon_kills_super, all_medals_earned
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(character_id, activity_id) DO UPDATE SET
			standing=excluded.standing, completion_reason=excluded.completion_reason, team=excluded.team,
			assists=excluded.assists, score=excluded.score, kills=excluded.kills, deaths=excluded.deaths,
			opponents_defeated=excluded.opponents_defeated, completed=excluded.completed,
			start_seconds=excluded.start_seconds, duration_seconds=excluded.duration_seconds,
			time_played_seconds=excluded.time_played_seconds, player_count=excluded.player_count,
			team_score=excluded.team_score, light_level=excluded.light_level, emblem_hash=excluded.emblem_hash,
			fireteam_id=excluded.fireteam_id, precision_kills=excluded.precision_kills,
			weapon_kills_ability=excluded.weapon_kills_ability, weapon_kills_grenade=excluded.weapon_kills_grenade,
			weapon_kills_melee=excluded.weapon_kills_melee, weapon_kills_super=excluded.weapon_kills_super,
			all_medals_earned=excluded.all_medals_earned
	`,
		entry.CharacterID, activityID, entry.Member.ID, int(entry.Standing), entry.CompletionReason.ID(), entry.Team,
		entry.Assists, entry.Score, entry.Kills, entry.Deaths, entry.OpponentsDefeated, entry.Completed,
		entry.StartSeconds, entry.DurationSeconds, entry.TimePlayedSeconds, entry.PlayerCount, entry.TeamScore,
		entry.LightLevel, entry.EmblemHash, entry.FireteamID,
		precisionKills, abilityKills, grenadeKills, meleeKills, superKills, medalsEarned,
	)
	if err != nil {
		return newError(KindStorage, "failed inserting character_activity_stats", err)
	}

	var statsID int64
	if err := tx.QueryRowContext(ctx,
		`SELECT id FROM character_activity_stats WHERE character_id = ? AND activity_id = ?`,
		entry.CharacterID, activityID).Scan(&statsID); err != nil {
		return newError(KindStorage, "failed resolving character_activity_stats id", err)
	}

	// Re-running an activity insert (idempotent re-ingestion) must not
	// duplicate child rows: clear and rewrite rather than append.
	if _, err := tx.ExecContext(ctx, `DELETE FROM medal_result WHERE character_activity_stats_id = ?`, statsID); err != nil {
		return newError(KindStorage, "failed clearing medal_result", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM weapon_result WHERE character_activity_stats_id = ?`, statsID); err != nil {
		return newError(KindStorage, "failed clearing weapon_result", err)
	}

	if entry.Extended == nil {
		return nil
	}

	for hash, count := range entry.Extended.RawMedalCounts {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO medal_result (character_activity_stats_id, medal_reference_id, count) VALUES (?, ?, ?)`,
			statsID, hash, count); err != nil {
			return newError(KindStorage, "failed inserting medal_result", err)
		}
	}

	for _, w := range entry.Extended.Weapons {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO weapon_result (character_activity_stats_id, weapon_reference_id, kills, precision_kills, precision_ratio)
			VALUES (?, ?, ?, ?, ?)
		`, statsID, w.ReferenceID, w.Kills, w.PrecisionKills, float64(w.PrecisionKillsPercent)); err != nil {
			return newError(KindStorage, "failed inserting weapon_result", err)
		}
	}

	return nil
}

// upsertMember applies the outside-a-PGCR member upsert (profile refresh).
func (e *Engine) upsertMember(ctx context.Context, member bungie.Member) error {
	tx, err := e.Store.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer Rollback(tx)

	if err := e.upsertMemberWithRepair(ctx, tx, member); err != nil {
		return err
	}

	return Commit(tx)
}

// upsertMemberWithRepair implements §4.4.7 in full, including the
// FIX_CORRUPT_DATA remote-repair path, which needs the API Interface and so
// is an Engine method rather than part of the plain upsertMemberTx. Both the
// profile refresh and PGCR inserts go through it.
func (e *Engine) upsertMemberWithRepair(ctx context.Context, tx *sql.Tx, member bungie.Member) error {
	if isIncompleteMember(member) {
		exists, err := memberExistsTx(ctx, tx, member.ID)
		if err != nil {
			return err
		}
		if exists {
			return nil
		}

		if e.FixCorruptData {
			if resolved, err := e.resolveCorruptMember(ctx, member); err != nil {
				glg.Warnf("resolve corrupt member %d: %s", member.ID, err.Error())
			} else if resolved != nil {
				member = *resolved
			}
		}
	}

	return upsertMemberTx(ctx, tx, member)
}

func isIncompleteMember(member bungie.Member) bool {
	return member.Name.BungieDisplayName == nil ||
		member.Name.BungieDisplayNameCode == nil ||
		member.Platform == bungie.PlatformUnknown
}

func (e *Engine) resolveCorruptMember(ctx context.Context, member bungie.Member) (*bungie.Member, error) {
	profiles, err := e.API.ResolveLinkedProfiles(ctx, member.ID, member.Platform)
	if err != nil {
		return nil, err
	}
	for _, p := range profiles {
		if p.Member.ID == member.ID {
			return &p.Member, nil
		}
	}
	return nil, nil
}

func memberExistsTx(ctx context.Context, tx *sql.Tx, memberID int64) (bool, error) {
	var found int
	err := tx.QueryRowContext(ctx, `SELECT 1 FROM member WHERE member_id = ?`, memberID).Scan(&found)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, newError(KindStorage, "failed checking member existence", err)
	}
	return true, nil
}

// upsertMemberTx writes an unconditional member upsert once the caller has
// decided the observation is acceptable to persist (§4.4.7 final step).
func upsertMemberTx(ctx context.Context, tx *sql.Tx, member bungie.Member) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO member (member_id, display_name, bungie_display_name, code, platform_id)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(member_id) DO UPDATE SET
			display_name=excluded.display_name,
			bungie_display_name=excluded.bungie_display_name,
			code=excluded.code,
			platform_id=excluded.platform_id
	`, member.ID, member.Name.DisplayName, member.Name.BungieDisplayName, member.Name.BungieDisplayNameCode, member.Platform.ID())
	if err != nil {
		return newError(KindStorage, "failed upserting member", err)
	}
	return nil
}

// upsertCharacter upserts outside a PGCR insert (profile refresh path).
func (e *Engine) upsertCharacter(ctx context.Context, character bungie.Character) error {
	tx, err := e.Store.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer Rollback(tx)

	if err := upsertCharacterTx(ctx, tx, character); err != nil {
		return err
	}

	return Commit(tx)
}

// upsertCharacterTx never downgrades a known class to Unknown (§4.4.8).
func upsertCharacterTx(ctx context.Context, tx *sql.Tx, character bungie.Character) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO character (character_id, member_id, class) VALUES (?, ?, ?)
		ON CONFLICT(character_id) DO UPDATE SET class = excluded.class WHERE class = -1
	`, character.ID, character.MemberID, sqlClassID(character.Class))
	if err != nil {
		return newError(KindStorage, "failed upserting character", err)
	}
	return nil
}

func sqlClassID(class bungie.CharacterClass) int {
	if class == bungie.ClassUnknown {
		return -1
	}
	return class.SQLID()
}
