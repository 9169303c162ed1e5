package store

import (
	"context"
	"testing"
	"time"

	"github.com/mikechambers/dcli-sub000/bungie"
)

type fakeManifest struct{}

func (fakeManifest) GetActivityDefinition(hash uint32) (ActivityDefinition, bool) {
	return ActivityDefinition{Name: "Fragment"}, true
}

func (fakeManifest) GetInventoryItemDefinition(hash uint32) (ItemDefinition, bool) {
	return ItemDefinition{Name: "Fatebringer", Type: bungie.ItemTypeWeapon, SubType: bungie.ItemSubTypeHandCannon}, true
}

func (fakeManifest) GetHistoricalStatsDefinition(id string) (HistoricalStatsDefinition, bool) {
	return HistoricalStatsDefinition{ID: id, Name: "Ace of Spades"}, true
}

func seedActivity(t *testing.T, engine *Engine, id int64, period time.Time, mode bungie.Mode, modes []bungie.Mode, memberID, characterID int64) {
	t.Helper()
	pgcr := samplePGCR()
	pgcr.Detail.ID = id
	pgcr.Detail.Period = period
	pgcr.Detail.Mode = mode
	pgcr.Detail.Modes = modes
	pgcr.Entries[0].Member.ID = memberID
	pgcr.Entries[0].CharacterID = characterID

	if err := engine.upsertCharacter(context.Background(), bungie.Character{ID: characterID, MemberID: memberID, Class: bungie.ClassHunter}); err != nil {
		t.Fatalf("seeding character: %v", err)
	}
	if err := engine.insertActivity(context.Background(), pgcr, characterID); err != nil {
		t.Fatalf("seeding activity %d: %v", id, err)
	}
}

func TestRetrieveLastActivityAndSummary(t *testing.T) {
	s := openTestStore(t)
	engine := NewEngine(s, nil, false, nil)
	query := NewQuery(s, fakeManifest{})
	ctx := context.Background()

	const memberID, characterID = int64(500), int64(600)

	seedActivity(t, engine, 1, time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), bungie.ModeAllPvP,
		[]bungie.Mode{bungie.ModeAllPvP, bungie.ModeClash}, memberID, characterID)
	seedActivity(t, engine, 2, time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC), bungie.ModeAllPvP,
		[]bungie.Mode{bungie.ModeAllPvP, bungie.ModeControl}, memberID, characterID)

	last, err := query.RetrieveLastActivity(ctx, memberID, bungie.SelectionAll, bungie.ModeAllPvP)
	if err != nil {
		t.Fatalf("RetrieveLastActivity: %v", err)
	}
	if last.Detail.ID != 2 {
		t.Errorf("last activity id = %d, want 2 (most recent period)", last.Detail.ID)
	}
	if last.Detail.MapName != "Fragment" {
		t.Errorf("MapName = %q, want %q", last.Detail.MapName, "Fragment")
	}

	since, err := query.RetrieveActivitiesSince(ctx, memberID, bungie.SelectionAll, bungie.ModeAllPvP,
		time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("RetrieveActivitiesSince: %v", err)
	}
	if len(since) != 2 {
		t.Fatalf("RetrieveActivitiesSince returned %d activities, want 2", len(since))
	}
	if since[0].Detail.ID != 2 || since[1].Detail.ID != 1 {
		t.Errorf("expected descending period order [2,1], got [%d,%d]", since[0].Detail.ID, since[1].Detail.ID)
	}

	summary, err := query.RetrieveActivitiesSummary(ctx, memberID, bungie.SelectionAll, bungie.ModeAllPvP,
		time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("RetrieveActivitiesSummary: %v", err)
	}
	if summary.TotalActivities != 2 {
		t.Errorf("TotalActivities = %d, want 2", summary.TotalActivities)
	}
	if summary.Wins != 2 {
		t.Errorf("Wins = %d, want 2 (both performances recorded a Victory standing)", summary.Wins)
	}
	if summary.HighestCompleted != 1 {
		t.Errorf("HighestCompleted = %d, want 1", summary.HighestCompleted)
	}
	if summary.HighestOpponentsDefeated != 18 {
		t.Errorf("HighestOpponentsDefeated = %d, want 18", summary.HighestOpponentsDefeated)
	}
	if summary.HighestPrecisionKills != 8 {
		t.Errorf("HighestPrecisionKills = %d, want 8", summary.HighestPrecisionKills)
	}
	if summary.HighestAbilityKills != 2 {
		t.Errorf("HighestAbilityKills = %d, want 2", summary.HighestAbilityKills)
	}
}

// TestRetrieveActivitiesSinceExcludesPrivateMatchesFromPublicModeQuery
// verifies the non-mixing predicate (§4.6.4): a public-mode query must not
// return an activity additionally tagged PrivateMatchesAll.
func TestRetrieveActivitiesSinceExcludesPrivateMatchesFromPublicModeQuery(t *testing.T) {
	s := openTestStore(t)
	engine := NewEngine(s, nil, false, nil)
	query := NewQuery(s, fakeManifest{})
	ctx := context.Background()

	const memberID, characterID = int64(700), int64(800)

	seedActivity(t, engine, 10, time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), bungie.ModePrivateMatchesClash,
		[]bungie.Mode{bungie.ModePrivateMatchesAll, bungie.ModePrivateMatchesClash, bungie.ModeClash}, memberID, characterID)

	got, err := query.RetrieveActivitiesSince(ctx, memberID, bungie.SelectionAll, bungie.ModeClash,
		time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("RetrieveActivitiesSince: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("public Clash query returned %d activities, want 0 (private match must be excluded)", len(got))
	}

	gotPrivate, err := query.RetrieveActivitiesSince(ctx, memberID, bungie.SelectionAll, bungie.ModePrivateMatchesClash,
		time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("RetrieveActivitiesSince (private): %v", err)
	}
	if len(gotPrivate) != 1 {
		t.Errorf("private Clash query returned %d activities, want 1", len(gotPrivate))
	}
}

func TestRetrieveActivitiesSinceRejectsInvertedWindow(t *testing.T) {
	s := openTestStore(t)
	query := NewQuery(s, fakeManifest{})

	_, err := query.RetrieveActivitiesSince(context.Background(), 1, bungie.SelectionAll, bungie.ModeAllPvP,
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC))
	if err == nil {
		t.Fatal("expected an error for start after end")
	}
	storeErr, ok := err.(*Error)
	if !ok || storeErr.Kind != KindDateTimePeriodOrder {
		t.Errorf("err = %v, want a *Error with Kind KindDateTimePeriodOrder", err)
	}
}

func TestRetrieveLastActivityNotFound(t *testing.T) {
	s := openTestStore(t)
	query := NewQuery(s, fakeManifest{})

	_, err := query.RetrieveLastActivity(context.Background(), 999, bungie.SelectionAll, bungie.ModeAllPvP)
	storeErr, ok := err.(*Error)
	if !ok || storeErr.Kind != KindActivityNotFound {
		t.Errorf("err = %v, want a *Error with Kind KindActivityNotFound", err)
	}
}
