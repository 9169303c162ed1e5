package store

import (
	"sort"
	"time"

	"github.com/mikechambers/dcli-sub000/bungie"
)

// seasonOfTheSeraphStart is the cutover instant after which the competitive
// PvP mode-repair heuristic applies (§4.4.5 rule 4).
var seasonOfTheSeraphStart = func() time.Time {
	t, err := time.Parse(time.RFC3339, bungie.SeasonOfTheSeraphStart)
	if err != nil {
		panic("invalid SeasonOfTheSeraphStart constant: " + err.Error())
	}
	return t
}()

// privateMatchRepair names the private sub-mode and its public analogue a
// PrivateMatchesAll-tagged director_activity_hash really belongs to.
type privateMatchRepair struct {
	privateMode bungie.Mode
	publicMode  bungie.Mode
}

// privateMatchHashRepairs maps director_activity_hash values Bungie tags
// with the generic PrivateMatchesAll mode to their actual private sub-mode
// plus the public mode-family analogue that must also be recorded. The
// activity keeps its PrivateMatchesAll tag, so the private/public non-mixing
// rule (§4.6.4) still keeps it out of every public-mode query, public Clash
// and AllPvP included.
var privateMatchHashRepairs = map[uint32]privateMatchRepair{
	4242525388: {privateMode: bungie.ModePrivateMatchesClash, publicMode: bungie.ModeClash},
	559852413:  {privateMode: bungie.ModePrivateMatchesClash, publicMode: bungie.ModeClash},
	1434117329: {privateMode: bungie.ModePrivateMatchesControl, publicMode: bungie.ModeControl},
	1476497474: {privateMode: bungie.ModePrivateMatchesControl, publicMode: bungie.ModeControl},
	1845543826: {privateMode: bungie.ModePrivateMatchesSupremacy, publicMode: bungie.ModeSupremacy},
	3632202512: {privateMode: bungie.ModePrivateMatchesSupremacy, publicMode: bungie.ModeSupremacy},
	4148187374: {privateMode: bungie.ModePrivateMatchesSurvival, publicMode: bungie.ModeSurvival},
	3669169254: {privateMode: bungie.ModePrivateMatchesSurvival, publicMode: bungie.ModeSurvival},
	1258100538: {privateMode: bungie.ModePrivateMatchesCountdown, publicMode: bungie.ModeCountdown},
	3699645824: {privateMode: bungie.ModePrivateMatchesCountdown, publicMode: bungie.ModeCountdown},
	2932856054: {privateMode: bungie.ModePrivateMatchesLockdown, publicMode: bungie.ModeLockdown},
	2452390524: {privateMode: bungie.ModePrivateMatchesMomentum, publicMode: bungie.ModeMomentum},
	3724304686: {privateMode: bungie.ModePrivateMatchesBreakthrough, publicMode: bungie.ModeBreakthrough},
	2171286528: {privateMode: bungie.ModePrivateMatchesScorched, publicMode: bungie.ModeScorched},
}

// noneModeRepairs maps a director_activity_hash observed with mode == None
// to the mode it should actually carry.
var noneModeRepairs = map[uint32]bungie.Mode{
	2259621230: bungie.ModeRumble,
	903584917:  bungie.ModeAllMayhem,
	3847433434: bungie.ModeAllMayhem,
	1113451448: bungie.ModeRift,
}

// pgcrModes is the minimal shape FixPGCRData operates on: the primary mode
// plus the additive mode-family tag set, addressed by mutable reference so
// repair can be applied in place before persistence.
type pgcrModes struct {
	Mode  bungie.Mode
	Modes map[bungie.Mode]bool
}

func newPGCRModes(mode bungie.Mode, modes []bungie.Mode) *pgcrModes {
	set := make(map[bungie.Mode]bool, len(modes)+2)
	for _, m := range modes {
		set[m] = true
	}
	return &pgcrModes{Mode: mode, Modes: set}
}

func (p *pgcrModes) add(modes ...bungie.Mode) {
	for _, m := range modes {
		p.Modes[m] = true
	}
}

func (p *pgcrModes) sortedModes() []bungie.Mode {
	out := make([]bungie.Mode, 0, len(p.Modes))
	for m := range p.Modes {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// FixPGCRData applies the known upstream misclassification repairs to one
// PGCR's mode and mode-set, in the order documented in §4.4.5. Returns
// whether anything changed, purely as a diagnostic signal.
func FixPGCRData(detail *bungie.ActivityDetail, directorActivityHash uint32, period time.Time) bool {
	before := detail.Mode
	beforeModes := make(map[bungie.Mode]bool, len(detail.Modes))
	for _, m := range detail.Modes {
		beforeModes[m] = true
	}

	p := newPGCRModes(detail.Mode, detail.Modes)

	if p.Mode == bungie.ModeIronBannerZoneControl {
		p.add(bungie.ModeAllPvP, bungie.ModeIronBanner)
	}

	if p.Mode == bungie.ModeNone {
		if repaired, ok := noneModeRepairs[directorActivityHash]; ok {
			p.Mode = repaired
			p.add(repaired)
		}
	}

	if p.Mode == bungie.ModePrivateMatchesAll {
		if repair, ok := privateMatchHashRepairs[directorActivityHash]; ok {
			p.Mode = repair.privateMode
			p.add(repair.privateMode, repair.publicMode)
		}
	}

	if !period.Before(seasonOfTheSeraphStart) {
		isCompetitiveHash := directorActivityHash == bungie.CompetitivePvPActivityHash ||
			directorActivityHash == bungie.FreelanceCompetitivePvPActivityHash
		if isCompetitiveHash && p.Mode == bungie.ModeNone {
			p.Mode = bungie.ModeRift
			p.add(bungie.ModeRift, bungie.ModePvPCompetitive)
		}
		if p.Mode == bungie.ModeShowdown {
			p.add(bungie.ModePvPCompetitive)
		}
	}

	detail.Mode = p.Mode
	detail.Modes = p.sortedModes()

	if before != detail.Mode {
		return true
	}
	if len(beforeModes) != len(p.Modes) {
		return true
	}
	for m := range p.Modes {
		if !beforeModes[m] {
			return true
		}
	}
	return false
}
