package bungie

import "testing"

func TestModeIDRoundTrip(t *testing.T) {
	for mode, id := range modeID {
		if got := mode.ID(); got != id {
			t.Errorf("%s.ID() = %d, want %d", mode, got, id)
		}
		if got := ModeFromID(id); got != mode {
			t.Errorf("ModeFromID(%d) = %s, want %s", id, got, mode)
		}
	}
}

func TestModeFromIDUnknown(t *testing.T) {
	if got := ModeFromID(-999); got != ModeUnknown {
		t.Errorf("ModeFromID(-999) = %s, want Unknown", got)
	}
}

func TestModeIsPrivate(t *testing.T) {
	privateModes := []Mode{
		ModePrivateMatchesAll, ModePrivateMatchesClash, ModePrivateMatchesControl,
		ModePrivateMatchesSupremacy, ModePrivateMatchesSurvival, ModePrivateMatchesCountdown,
		ModePrivateMatchesLockdown, ModePrivateMatchesMomentum, ModePrivateMatchesBreakthrough,
		ModePrivateMatchesScorched, ModePrivateMatchesScorchedTeam, ModePrivateMatchesAllDoubles,
	}
	for _, m := range privateModes {
		if !m.IsPrivate() {
			t.Errorf("%s.IsPrivate() = false, want true", m)
		}
	}

	publicModes := []Mode{ModeAllPvP, ModeIronBanner, ModeIronBannerZoneControl, ModeRumble, ModeClash, ModeControl}
	for _, m := range publicModes {
		if m.IsPrivate() {
			t.Errorf("%s.IsPrivate() = true, want false", m)
		}
	}
}
