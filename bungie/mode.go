package bungie

// Mode is Destiny's DestinyActivityModeType enum, restricted to the values
// this module reasons about. Unknown upstream values map to ModeUnknown
// rather than failing, except where a caller explicitly validates membership.
type Mode int

const (
	ModeNone Mode = iota
	ModeAllPvP
	ModePrivateMatchesAll
	ModeIronBanner
	ModeIronBannerZoneControl
	ModeRumble
	ModeAllMayhem
	ModeRift
	ModeShowdown
	ModePvPCompetitive
	ModeClash
	ModePrivateMatchesClash
	ModeControl
	ModePrivateMatchesControl
	ModeSupremacy
	ModePrivateMatchesSupremacy
	ModeSurvival
	ModePrivateMatchesSurvival
	ModeCountdown
	ModePrivateMatchesCountdown
	ModeLockdown
	ModePrivateMatchesLockdown
	ModeMomentum
	ModePrivateMatchesMomentum
	ModeBreakthrough
	ModePrivateMatchesBreakthrough
	ModeScorched
	ModePrivateMatchesScorched
	ModeScorchedTeam
	ModePrivateMatchesScorchedTeam
	ModeAllDoubles
	ModePrivateMatchesAllDoubles
	ModeUnknown
)

// modeID maps each Mode to the wire-stable integer id that the upstream API
// and the local store both use. These are part of the wire contract and must
// be preserved bit-exact.
var modeID = map[Mode]int{
	ModeNone:                       ModeIDNone,
	ModeAllPvP:                     ModeIDAllPvP,
	ModePrivateMatchesAll:          ModeIDPrivateMatchesAll,
	ModeIronBanner:                 ModeIDIronBanner,
	ModeIronBannerZoneControl:      ModeIDIronBannerZoneControl,
	ModeRumble:                     ModeIDRumble,
	ModeAllMayhem:                  ModeIDAllMayhem,
	ModeRift:                       ModeIDRift,
	ModeShowdown:                   ModeIDShowdown,
	ModePvPCompetitive:             ModeIDPvPCompetitive,
	ModeClash:                      ModeIDClash,
	ModePrivateMatchesClash:        ModeIDPrivateMatchesClash,
	ModeControl:                    ModeIDControl,
	ModePrivateMatchesControl:      ModeIDPrivateMatchesControl,
	ModeSupremacy:                  ModeIDSupremacy,
	ModePrivateMatchesSupremacy:    ModeIDPrivateMatchesSupremacy,
	ModeSurvival:                   ModeIDSurvival,
	ModePrivateMatchesSurvival:     ModeIDPrivateMatchesSurvival,
	ModeCountdown:                  ModeIDCountdown,
	ModePrivateMatchesCountdown:    ModeIDPrivateMatchesCountdown,
	ModeLockdown:                   ModeIDLockdown,
	ModePrivateMatchesLockdown:     ModeIDPrivateMatchesLockdown,
	ModeMomentum:                   ModeIDMomentum,
	ModePrivateMatchesMomentum:     ModeIDPrivateMatchesMomentum,
	ModeBreakthrough:               ModeIDBreakthrough,
	ModePrivateMatchesBreakthrough: ModeIDPrivateMatchesBreakthrough,
	ModeScorched:                   ModeIDScorched,
	ModePrivateMatchesScorched:     ModeIDPrivateMatchesScorched,
	ModeScorchedTeam:               ModeIDScorchedTeam,
	ModePrivateMatchesScorchedTeam: ModeIDPrivateMatchesScorchedTeam,
	ModeAllDoubles:                 ModeIDAllDoubles,
	ModePrivateMatchesAllDoubles:   ModeIDPrivateMatchesAllDoubles,
}

var idToMode = func() map[int]Mode {
	m := make(map[int]Mode, len(modeID))
	for mode, id := range modeID {
		m[id] = mode
	}
	return m
}()

// ID returns the wire-stable integer id for m, or -1 for a Mode with no
// mapped id (ModeUnknown). ModeFromID is the reverse mapping.
func (m Mode) ID() int {
	if id, ok := modeID[m]; ok {
		return id
	}
	return -1
}

// ModeFromID resolves a wire integer id to a Mode, returning ModeUnknown for
// anything not in the mapped set.
func ModeFromID(id int) Mode {
	if mode, ok := idToMode[id]; ok {
		return mode
	}
	return ModeUnknown
}

func (m Mode) String() string {
	switch m {
	case ModeNone:
		return "None"
	case ModeAllPvP:
		return "AllPvP"
	case ModePrivateMatchesAll:
		return "PrivateMatchesAll"
	case ModeIronBanner:
		return "IronBanner"
	case ModeIronBannerZoneControl:
		return "IronBannerZoneControl"
	case ModeRumble:
		return "Rumble"
	case ModeAllMayhem:
		return "AllMayhem"
	case ModeRift:
		return "Rift"
	case ModeShowdown:
		return "Showdown"
	case ModePvPCompetitive:
		return "PvPCompetitive"
	case ModeClash:
		return "Clash"
	case ModePrivateMatchesClash:
		return "PrivateMatchesClash"
	case ModeControl:
		return "Control"
	case ModePrivateMatchesControl:
		return "PrivateMatchesControl"
	case ModeSupremacy:
		return "Supremacy"
	case ModePrivateMatchesSupremacy:
		return "PrivateMatchesSupremacy"
	case ModeSurvival:
		return "Survival"
	case ModePrivateMatchesSurvival:
		return "PrivateMatchesSurvival"
	case ModeCountdown:
		return "Countdown"
	case ModePrivateMatchesCountdown:
		return "PrivateMatchesCountdown"
	case ModeLockdown:
		return "Lockdown"
	case ModePrivateMatchesLockdown:
		return "PrivateMatchesLockdown"
	case ModeMomentum:
		return "Momentum"
	case ModePrivateMatchesMomentum:
		return "PrivateMatchesMomentum"
	case ModeBreakthrough:
		return "Breakthrough"
	case ModePrivateMatchesBreakthrough:
		return "PrivateMatchesBreakthrough"
	case ModeScorched:
		return "Scorched"
	case ModePrivateMatchesScorched:
		return "PrivateMatchesScorched"
	case ModeScorchedTeam:
		return "ScorchedTeam"
	case ModePrivateMatchesScorchedTeam:
		return "PrivateMatchesScorchedTeam"
	case ModeAllDoubles:
		return "AllDoubles"
	case ModePrivateMatchesAllDoubles:
		return "PrivateMatchesAllDoubles"
	default:
		return "Unknown"
	}
}

// IsPrivate reports whether m belongs to the private-match family. Used by
// the Query Engine to pick the non-mixing restrict id in §4.6.4.
func (m Mode) IsPrivate() bool {
	switch m {
	case ModePrivateMatchesAll,
		ModePrivateMatchesClash,
		ModePrivateMatchesControl,
		ModePrivateMatchesSupremacy,
		ModePrivateMatchesSurvival,
		ModePrivateMatchesCountdown,
		ModePrivateMatchesLockdown,
		ModePrivateMatchesMomentum,
		ModePrivateMatchesBreakthrough,
		ModePrivateMatchesScorched,
		ModePrivateMatchesScorchedTeam,
		ModePrivateMatchesAllDoubles:
		return true
	default:
		return false
	}
}
