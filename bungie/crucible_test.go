package bungie

import "testing"

func TestEfficiency(t *testing.T) {
	cases := []struct {
		name               string
		kills, deaths      uint32
		assists            uint32
		want               float64
	}{
		{"normal", 10, 5, 3, 2.6},
		{"zero deaths floors to one", 4, 0, 0, 4},
		{"all zero", 0, 0, 0, 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Efficiency(c.kills, c.deaths, c.assists)
			if got != c.want {
				t.Errorf("Efficiency(%d,%d,%d) = %v, want %v", c.kills, c.deaths, c.assists, got, c.want)
			}
		})
	}
}

func TestKillsDeathsRatio(t *testing.T) {
	if got := KillsDeathsRatio(10, 5); got != 2 {
		t.Errorf("KillsDeathsRatio(10,5) = %v, want 2", got)
	}
	if got := KillsDeathsRatio(7, 0); got != 7 {
		t.Errorf("KillsDeathsRatio(7,0) = %v, want 7 (deaths floored to 1)", got)
	}
}

func TestKillsDeathsAssists(t *testing.T) {
	got := KillsDeathsAssists(10, 5, 4)
	want := (10.0 + 0.5*4.0) / 5.0
	if got != want {
		t.Errorf("KillsDeathsAssists(10,5,4) = %v, want %v", got, want)
	}
}

func TestPlayerNameString(t *testing.T) {
	display := "Guardian"
	bungieName := "Guardian"
	code := "1234"

	cases := []struct {
		name string
		n    PlayerName
		want string
	}{
		{"full bungie name", PlayerName{BungieDisplayName: &bungieName, BungieDisplayNameCode: &code}, "Guardian#1234"},
		{"legacy display name only", PlayerName{DisplayName: &display}, "Guardian"},
		{"nothing observed", PlayerName{}, "Unknown"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.n.String(); got != c.want {
				t.Errorf("String() = %q, want %q", got, c.want)
			}
		})
	}
}

func TestPlayerNameIsValid(t *testing.T) {
	display := "Guardian"
	bungieName := "Guardian"
	code := "1234"

	full := PlayerName{DisplayName: &display, BungieDisplayName: &bungieName, BungieDisplayNameCode: &code}
	if !full.IsValid() {
		t.Error("expected fully populated name to be valid")
	}

	partial := PlayerName{DisplayName: &display}
	if partial.IsValid() {
		t.Error("expected partially populated name to be invalid")
	}
}

func TestFormatBungieDisplayNameCode(t *testing.T) {
	if got := FormatBungieDisplayNameCode(7); got != "0007" {
		t.Errorf("FormatBungieDisplayNameCode(7) = %q, want %q", got, "0007")
	}
	if got := FormatBungieDisplayNameCode(1234); got != "1234" {
		t.Errorf("FormatBungieDisplayNameCode(1234) = %q, want %q", got, "1234")
	}
}

func TestSyncResultAdd(t *testing.T) {
	a := SyncResult{TotalAvailable: 10, TotalSynced: 4}
	b := SyncResult{TotalAvailable: 5, TotalSynced: 5}
	got := a.Add(b)
	want := SyncResult{TotalAvailable: 15, TotalSynced: 9}
	if got != want {
		t.Errorf("Add() = %+v, want %+v", got, want)
	}
}
