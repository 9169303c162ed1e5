package store

import (
	"testing"
	"time"

	"github.com/mikechambers/dcli-sub000/bungie"
)

func TestFixPGCRDataIronBannerZoneControl(t *testing.T) {
	detail := &bungie.ActivityDetail{Mode: bungie.ModeIronBannerZoneControl}
	changed := FixPGCRData(detail, 0, time.Unix(0, 0))
	if !changed {
		t.Fatal("expected a change")
	}
	if !containsMode(detail.Modes, bungie.ModeAllPvP) || !containsMode(detail.Modes, bungie.ModeIronBanner) {
		t.Errorf("expected AllPvP and IronBanner tags, got %v", detail.Modes)
	}
}

func TestFixPGCRDataNoneModeRepair(t *testing.T) {
	for hash, want := range noneModeRepairs {
		detail := &bungie.ActivityDetail{Mode: bungie.ModeNone}
		FixPGCRData(detail, hash, time.Unix(0, 0))
		if detail.Mode != want {
			t.Errorf("hash %d: Mode = %s, want %s", hash, detail.Mode, want)
		}
	}
}

func TestFixPGCRDataPrivateMatchHashRepair(t *testing.T) {
	for hash, repair := range privateMatchHashRepairs {
		detail := &bungie.ActivityDetail{Mode: bungie.ModePrivateMatchesAll}
		FixPGCRData(detail, hash, time.Unix(0, 0))
		if detail.Mode != repair.privateMode {
			t.Errorf("hash %d: Mode = %s, want %s", hash, detail.Mode, repair.privateMode)
		}
		if !containsMode(detail.Modes, repair.publicMode) {
			t.Errorf("hash %d: expected public mode tag %s in %v", hash, repair.publicMode, detail.Modes)
		}
	}
}

func TestFixPGCRDataUnaffectedReportsNoChange(t *testing.T) {
	detail := &bungie.ActivityDetail{Mode: bungie.ModeClash, Modes: []bungie.Mode{bungie.ModeClash, bungie.ModeAllPvP}}
	if FixPGCRData(detail, 999999, time.Unix(0, 0)) {
		t.Error("expected no change for an already-correct report")
	}
}

func TestFixPGCRDataCompetitiveAfterSeraphCutover(t *testing.T) {
	after := seasonOfTheSeraphStart.Add(time.Hour)
	detail := &bungie.ActivityDetail{Mode: bungie.ModeNone}
	FixPGCRData(detail, bungie.CompetitivePvPActivityHash, after)
	if detail.Mode != bungie.ModeRift {
		t.Errorf("Mode = %s, want Rift", detail.Mode)
	}
	if !containsMode(detail.Modes, bungie.ModePvPCompetitive) {
		t.Errorf("expected PvPCompetitive tag, got %v", detail.Modes)
	}
}

func TestFixPGCRDataCompetitiveBeforeSeraphCutoverUnaffected(t *testing.T) {
	before := seasonOfTheSeraphStart.Add(-time.Hour)
	detail := &bungie.ActivityDetail{Mode: bungie.ModeNone}
	FixPGCRData(detail, bungie.CompetitivePvPActivityHash, before)
	if detail.Mode != bungie.ModeNone {
		t.Errorf("Mode = %s, want None (cutover not yet reached)", detail.Mode)
	}
}

func containsMode(modes []bungie.Mode, want bungie.Mode) bool {
	for _, m := range modes {
		if m == want {
			return true
		}
	}
	return false
}
