package store

import (
	"context"
	"testing"
	"time"

	"github.com/mikechambers/dcli-sub000/bungie"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("failed opening store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func samplePGCR() *bungie.PGCR {
	name := "Guardian"
	code := "1234"
	return &bungie.PGCR{
		Detail: bungie.ActivityDetail{
			ID:                   1001,
			Period:               time.Date(2023, 5, 1, 12, 0, 0, 0, time.UTC),
			Mode:                 bungie.ModeAllPvP,
			Modes:                []bungie.Mode{bungie.ModeAllPvP, bungie.ModeClash},
			Platform:             bungie.PlatformSteam,
			DirectorActivityHash: 555,
			ReferenceID:          777,
		},
		Teams: []*bungie.PGCRTeam{
			{ID: 0, Name: "Alpha", Score: 50, Standing: bungie.StandingVictory},
			{ID: 1, Name: "Bravo", Score: 30, Standing: bungie.StandingDefeat},
		},
		Entries: []*bungie.PGCREntry{
			{
				CharacterID: 2001,
				Member: bungie.Member{
					ID:       3001,
					Platform: bungie.PlatformSteam,
					Name:     bungie.PlayerName{DisplayName: &name, BungieDisplayName: &name, BungieDisplayNameCode: &code},
				},
				Class:             bungie.ClassTitan,
				Team:              0,
				Standing:          bungie.StandingVictory,
				CompletionReason:  bungie.CompletionObjectiveComplete,
				Assists:           3,
				Score:             100,
				Kills:             20,
				Deaths:            5,
				OpponentsDefeated: 18,
				Completed:         1,
				Extended: &bungie.ExtendedPerformance{
					PrecisionKills:     8,
					WeaponKillsAbility: 2,
					AllMedalsEarned:    2,
					RawMedalCounts: map[uint32]uint32{
						802673300: 1,
						802673301: 3,
					},
					Weapons: []*bungie.WeaponStat{
						{ReferenceID: 9001, Kills: 10, PrecisionKills: 4},
					},
				},
			},
		},
	}
}

// TestInsertActivityIsIdempotent verifies re-ingesting the same PGCR leaves
// exactly one character_activity_stats row and does not duplicate its medal
// or weapon child rows.
func TestInsertActivityIsIdempotent(t *testing.T) {
	s := openTestStore(t)
	engine := NewEngine(s, nil, false, nil)
	ctx := context.Background()

	pgcr := samplePGCR()
	if err := engine.insertActivity(ctx, pgcr, pgcr.Entries[0].CharacterID); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	if err := engine.insertActivity(ctx, samplePGCR(), pgcr.Entries[0].CharacterID); err != nil {
		t.Fatalf("second insert: %v", err)
	}

	var activityCount int
	if err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM activity`).Scan(&activityCount); err != nil {
		t.Fatalf("counting activity rows: %v", err)
	}
	if activityCount != 1 {
		t.Errorf("activity rows = %d, want 1", activityCount)
	}

	var statsCount int
	if err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM character_activity_stats`).Scan(&statsCount); err != nil {
		t.Fatalf("counting stats rows: %v", err)
	}
	if statsCount != 1 {
		t.Errorf("character_activity_stats rows = %d, want 1", statsCount)
	}

	var medalCount int
	if err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM medal_result`).Scan(&medalCount); err != nil {
		t.Fatalf("counting medal_result rows: %v", err)
	}
	if medalCount != 2 {
		t.Errorf("medal_result rows = %d, want 2 (no duplication across re-ingest)", medalCount)
	}

	var weaponCount int
	if err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM weapon_result`).Scan(&weaponCount); err != nil {
		t.Fatalf("counting weapon_result rows: %v", err)
	}
	if weaponCount != 1 {
		t.Errorf("weapon_result rows = %d, want 1 (no duplication across re-ingest)", weaponCount)
	}
}

// TestMaxSyncedActivityIDExcludesIronBannerZoneControl verifies
// the AllPvP discovery sentinel query ignores activities additionally tagged
// IronBannerZoneControl.
func TestMaxSyncedActivityIDExcludesIronBannerZoneControl(t *testing.T) {
	s := openTestStore(t)
	engine := NewEngine(s, nil, false, nil)
	ctx := context.Background()

	pgcr := samplePGCR()
	pgcr.Detail.ID = 5000
	pgcr.Detail.Modes = []bungie.Mode{bungie.ModeAllPvP, bungie.ModeIronBannerZoneControl}
	characterID := pgcr.Entries[0].CharacterID

	if _, err := s.DB.ExecContext(ctx,
		`INSERT INTO activity_queue (activity_id, character_id, synced) VALUES (?, ?, 1)`,
		pgcr.Detail.ID, characterID); err != nil {
		t.Fatalf("seeding activity_queue: %v", err)
	}
	if err := engine.insertActivity(ctx, pgcr, characterID); err != nil {
		t.Fatalf("insert activity: %v", err)
	}

	sentinel, err := engine.maxSyncedActivityID(ctx, characterID, bungie.ModeAllPvP)
	if err != nil {
		t.Fatalf("maxSyncedActivityID: %v", err)
	}
	if sentinel != 0 {
		t.Errorf("sentinel = %d, want 0 (IronBannerZoneControl activity must not count as an AllPvP sentinel)", sentinel)
	}

	ironBannerSentinel, err := engine.maxSyncedActivityID(ctx, characterID, bungie.ModeIronBannerZoneControl)
	if err != nil {
		t.Fatalf("maxSyncedActivityID (iron banner): %v", err)
	}
	if ironBannerSentinel != pgcr.Detail.ID {
		t.Errorf("iron banner sentinel = %d, want %d", ironBannerSentinel, pgcr.Detail.ID)
	}
}

// TestUpsertCharacterNeverDowngradesKnownClass verifies a later observation
// carrying ClassUnknown does not overwrite an already-known class.
func TestUpsertCharacterNeverDowngradesKnownClass(t *testing.T) {
	s := openTestStore(t)
	engine := NewEngine(s, nil, false, nil)
	ctx := context.Background()

	character := bungie.Character{ID: 42, MemberID: 1, Class: bungie.ClassHunter}
	if err := engine.upsertCharacter(ctx, character); err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	unknown := bungie.Character{ID: 42, MemberID: 1, Class: bungie.ClassUnknown}
	if err := engine.upsertCharacter(ctx, unknown); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	var class int
	if err := s.DB.QueryRowContext(ctx, `SELECT class FROM character WHERE character_id = ?`, 42).Scan(&class); err != nil {
		t.Fatalf("querying class: %v", err)
	}
	if class != bungie.ClassHunter.SQLID() {
		t.Errorf("class = %d, want %d (Hunter must not be downgraded to Unknown)", class, bungie.ClassHunter.SQLID())
	}
}

// TestSubscribeIsIdempotent verifies re-subscribing an already-subscribed
// member does not error or duplicate the sync row.
func TestSubscribeIsIdempotent(t *testing.T) {
	s := openTestStore(t)
	engine := NewEngine(s, nil, false, nil)
	ctx := context.Background()

	if err := engine.Subscribe(ctx, 99); err != nil {
		t.Fatalf("first subscribe: %v", err)
	}
	if err := engine.Subscribe(ctx, 99); err != nil {
		t.Fatalf("second subscribe: %v", err)
	}

	var count int
	if err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM sync WHERE member_id = ?`, 99).Scan(&count); err != nil {
		t.Fatalf("counting sync rows: %v", err)
	}
	if count != 1 {
		t.Errorf("sync rows for member = %d, want 1", count)
	}
}
