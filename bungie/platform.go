package bungie

// Platform is Destiny's BungieMembershipType enum.
type Platform int

const (
	PlatformUnknown Platform = iota
	PlatformXbox
	PlatformPSN
	PlatformSteam
	PlatformBlizzard
	PlatformStadia
	PlatformEpic
	PlatformDemon
	PlatformBungieNext
	PlatformAll
)

var platformID = map[Platform]int{
	PlatformUnknown:    MembershipTypeNone,
	PlatformXbox:       MembershipTypeXbox,
	PlatformPSN:        MembershipTypePSN,
	PlatformSteam:      MembershipTypeSteam,
	PlatformBlizzard:   MembershipTypeBlizzard,
	PlatformStadia:     MembershipTypeStadia,
	PlatformEpic:       MembershipTypeEpic,
	PlatformDemon:      MembershipTypeDemon,
	PlatformBungieNext: MembershipTypeBungieNext,
	PlatformAll:        MembershipTypeAll,
}

var idToPlatform = func() map[int]Platform {
	m := make(map[int]Platform, len(platformID))
	for p, id := range platformID {
		m[id] = p
	}
	return m
}()

// ID returns the wire-stable BungieMembershipType integer for p.
func (p Platform) ID() int { return platformID[p] }

// PlatformFromID resolves a wire integer to a Platform, defaulting to
// PlatformUnknown for anything unmapped.
func PlatformFromID(id int) Platform {
	if p, ok := idToPlatform[id]; ok {
		return p
	}
	return PlatformUnknown
}

func (p Platform) String() string {
	switch p {
	case PlatformXbox:
		return "Xbox"
	case PlatformPSN:
		return "PSN"
	case PlatformSteam:
		return "Steam"
	case PlatformBlizzard:
		return "Blizzard"
	case PlatformStadia:
		return "Stadia"
	case PlatformEpic:
		return "Epic"
	case PlatformDemon:
		return "Demon"
	case PlatformBungieNext:
		return "BungieNext"
	case PlatformAll:
		return "All"
	default:
		return "Unknown"
	}
}
