package bungie

// Constant API endpoints. The platform and stats bases are kept separate the
// way the upstream API splits them for historical rate-limiting reasons.
const (
	PlatformBaseURL = "https://www.bungie.net/Platform"
	StatsBaseURL    = "https://stats.bungie.net/Platform"

	SearchDestinyPlayerEndpointFormat  = PlatformBaseURL + "/Destiny2/SearchDestinyPlayerByBungieName/%d/"
	LinkedProfilesEndpointFormat       = PlatformBaseURL + "/Destiny2/%d/Profile/%d/LinkedProfiles/"
	GroupMembersEndpointFormat         = PlatformBaseURL + "/GroupV2/%s/Members/"
	ProfileEndpointFormat              = PlatformBaseURL + "/Destiny2/%d/Profile/%d/"
	ActivityHistoryEndpointFormat      = PlatformBaseURL + "/Destiny2/%d/Account/%d/Character/%d/Stats/Activities/"
	PostGameCarnageReportEndpointFormat = StatsBaseURL + "/Destiny2/Stats/PostGameCarnageReport/%d/"
	AggregateStatsEndpointFormat       = PlatformBaseURL + "/Destiny2/%d/Account/%d/Character/%d/Stats/AggregateActivityStats/"
)

// Component constant values that tell the Profile endpoint which collections
// of data to include in its response.
const (
	ProfilesComponent   = "100"
	CharactersComponent = "200"
)

// Hash values for the three playable class types, as they arrive in the
// 'classHash' JSON key of a character or PGCR player block.
const (
	TitanClassHash   = 3655393761
	HunterClassHash  = 671679327
	WarlockClassHash = 2271682572
)

// BungieMembershipType constant values, shared by the Platform enum.
const (
	MembershipTypeNone     = 0
	MembershipTypeXbox     = 1
	MembershipTypePSN      = 2
	MembershipTypeSteam    = 3
	MembershipTypeBlizzard = 4
	MembershipTypeStadia   = 5
	MembershipTypeEpic     = 6
	MembershipTypeDemon    = 10
	MembershipTypeBungieNext = 254
	MembershipTypeAll      = -1
)

// Mode id constants. Only the ids the engine needs to reason about directly
// are named; the full Mode enum lives in mode.go.
const (
	ModeIDNone                 = 0
	ModeIDPrivateMatchesAll    = 32
	ModeIDAllPvP               = 5
	ModeIDIronBannerZoneControl = 91
	ModeIDRumble               = 48
	ModeIDAllMayhem            = 63
	ModeIDRift                 = 76
	ModeIDShowdown             = 65
	ModeIDPvPCompetitive       = 69
	ModeIDIronBanner           = 19
	ModeIDPrivateMatchesClash  = 25
	ModeIDClash                = 10

	ModeIDControl                     = 37
	ModeIDPrivateMatchesControl       = 38
	ModeIDSupremacy                   = 31
	ModeIDPrivateMatchesSupremacy     = 39
	ModeIDSurvival                    = 60
	ModeIDPrivateMatchesSurvival      = 61
	ModeIDCountdown                   = 62
	ModeIDPrivateMatchesCountdown     = 64
	ModeIDLockdown                    = 92
	ModeIDPrivateMatchesLockdown      = 93
	ModeIDMomentum                    = 94
	ModeIDPrivateMatchesMomentum      = 95
	ModeIDBreakthrough                = 96
	ModeIDPrivateMatchesBreakthrough  = 97
	ModeIDScorched                    = 98
	ModeIDPrivateMatchesScorched      = 99
	ModeIDScorchedTeam                = 100
	ModeIDPrivateMatchesScorchedTeam  = 101
	ModeIDAllDoubles                  = 102
	ModeIDPrivateMatchesAllDoubles    = 103
)

// PGCRRequestChunkAmount is the number of PGCRs fetched concurrently per
// fetch-phase chunk.
const PGCRRequestChunkAmount = 50

// MaxActivitiesRequestCount is the page size used when paging activity
// history from the upstream API.
const MaxActivitiesRequestCount = 250

// Known director_activity_hash values for Gambit private matches that
// otherwise contaminate PvP discovery if left un-filtered.
var GambitPrivateMatchHashes = map[uint32]bool{
	2526740498: true,
	248695599:  true,
}

// Director activity hashes observed with mode == None that map to a known
// public mode.
var NoneModeHashToMode = map[uint32]int{
	2259621230: ModeIDRumble,
	903584917:  ModeIDAllMayhem,
	3847433434: ModeIDAllMayhem,
	1113451448: ModeIDRift,
}

// CompetitivePvPActivityHash and FreelanceCompetitivePvPActivityHash identify
// the two Rift-based competitive playlists that stopped reporting a mode
// after the Season of the Seraph encode change. The upstream source this
// module was grounded on never defines the literal values in the portion of
// the codebase retained for this project; these are placeholders pending a
// manifest-backed lookup and are called out again in DESIGN.md.
const (
	CompetitivePvPActivityHash         uint32 = 1332528711
	FreelanceCompetitivePvPActivityHash uint32 = 1034451967
)

// SeasonOfTheSeraphStart is the cutover instant after which the competitive
// PvP mode-repair heuristic (§4.4.5 rule 4) applies.
const SeasonOfTheSeraphStart = "2022-12-06T17:00:00Z"
