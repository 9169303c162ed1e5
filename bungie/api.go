package bungie

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/kpango/glg"
)

// APIInterface exposes the typed operations the Ingestion Engine and Query
// Engine need, layered over a ClientPool (§4.2).
type APIInterface struct {
	Clients *ClientPool
}

// NewAPIInterface builds an APIInterface over a freshly created ClientPool.
func NewAPIInterface(apiKey string) (*APIInterface, error) {
	pool, err := NewClientPool(apiKey)
	if err != nil {
		return nil, err
	}
	return &APIInterface{Clients: pool}, nil
}

// ResolvePlayer resolves a Bungie name to a single Member, applying the
// cross-save tiebreak rule (§4.2).
func (a *APIInterface) ResolvePlayer(ctx context.Context, displayName, code string) (Member, error) {
	body, _ := json.Marshal(map[string]string{"displayName": displayName, "displayNameCode": code})
	url := fmt.Sprintf(SearchDestinyPlayerEndpointFormat, MembershipTypeAll)

	raw, err := a.Clients.Get().Post(ctx, url, body)
	if err != nil {
		return Member{}, err
	}

	var resp searchPlayerResponse
	if err := decodeEnvelope(raw, &resp.envelope); err != nil {
		return Member{}, err
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return Member{}, newError(KindParse, "failed decoding search player response", err)
	}

	if len(resp.Response) == 0 {
		return Member{}, newError(KindBungieNameNotFound, fmt.Sprintf("%s#%s", displayName, code), nil)
	}

	return a.pickCandidate(ctx, resp.Response)
}

// pickCandidate implements the name-resolution tiebreak: prefer the card
// whose membership type matches its own cross-save override when every
// candidate has a resolved override; otherwise resolve linked profiles for
// the first candidate and take the most-recently-played one.
func (a *APIInterface) pickCandidate(ctx context.Context, candidates []*userInfoCard) (Member, error) {
	anyUnknown := false
	for _, c := range candidates {
		if PlatformFromID(c.CrossSaveOverride) == PlatformUnknown {
			anyUnknown = true
			break
		}
	}

	if !anyUnknown {
		for _, c := range candidates {
			if c.MembershipType == c.CrossSaveOverride {
				return c.toMember()
			}
		}
		return candidates[0].toMember()
	}

	first := candidates[0]
	id, err := parseInt64(first.MembershipID)
	if err != nil {
		return Member{}, newError(KindParse, "invalid membership id", err)
	}

	profiles, err := a.ResolveLinkedProfiles(ctx, id, PlatformFromID(first.MembershipType))
	if err != nil {
		return Member{}, err
	}
	if len(profiles) == 0 {
		return first.toMember()
	}

	sort.Slice(profiles, func(i, j int) bool {
		return profiles[i].DateLastPlayed.After(profiles[j].DateLastPlayed)
	})
	return profiles[0].Member, nil
}

// LinkedProfile is a cross-save-linked account card, carrying the
// last-played instant used to break cross-save ambiguity (§4.2).
type LinkedProfile struct {
	Member         Member
	DateLastPlayed time.Time
}

// ResolveLinkedProfiles fetches the linked-profile cards for a member,
// used when cross-save status is ambiguous.
func (a *APIInterface) ResolveLinkedProfiles(ctx context.Context, id int64, platform Platform) ([]*LinkedProfile, error) {
	url := fmt.Sprintf(LinkedProfilesEndpointFormat, platform.ID(), id)

	raw, err := a.Clients.Get().Get(ctx, url)
	if err != nil {
		return nil, err
	}

	var resp linkedProfilesResponse
	if err := decodeEnvelope(raw, &resp.envelope); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, newError(KindParse, "failed decoding linked profiles response", err)
	}
	if resp.Response == nil {
		return nil, nil
	}

	profiles := make([]*LinkedProfile, 0, len(resp.Response.Profiles))
	for _, p := range resp.Response.Profiles {
		member, err := p.userInfoCard.toMember()
		if err != nil {
			glg.Warnf("skipping linked profile with invalid membership id: %s", err.Error())
			continue
		}
		profiles = append(profiles, &LinkedProfile{Member: member, DateLastPlayed: p.parsedDateLastPlayed()})
	}

	return profiles, nil
}

// ListGroupMembers returns every member of a clan/group.
func (a *APIInterface) ListGroupMembers(ctx context.Context, groupID string) ([]Member, error) {
	url := fmt.Sprintf(GroupMembersEndpointFormat, groupID)

	raw, err := a.Clients.Get().Get(ctx, url)
	if err != nil {
		return nil, err
	}

	var resp groupMembersResponse
	if err := decodeEnvelope(raw, &resp.envelope); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, newError(KindParse, "failed decoding group members response", err)
	}
	if resp.Response == nil {
		return nil, nil
	}

	members := make([]Member, 0, len(resp.Response.Results))
	for _, r := range resp.Response.Results {
		if r.DestinyUserInfo == nil {
			continue
		}
		m, err := r.DestinyUserInfo.toMember()
		if err != nil {
			glg.Warnf("skipping group member with invalid membership id: %s", err.Error())
			continue
		}
		members = append(members, m)
	}

	return members, nil
}

// PlayerInfo is the response shape of GetPlayerInfo: the member's user info
// plus every character currently on the account.
type PlayerInfo struct {
	Member     Member
	Characters []Character
}

// GetPlayerInfo loads the profile and character list for a member.
func (a *APIInterface) GetPlayerInfo(ctx context.Context, id int64, platform Platform) (*PlayerInfo, error) {
	url := fmt.Sprintf(ProfileEndpointFormat, platform.ID(), id) + "?components=" + ProfilesComponent + "," + CharactersComponent

	raw, err := a.Clients.Get().Get(ctx, url)
	if err != nil {
		return nil, err
	}

	var resp profileResponse
	if err := decodeEnvelope(raw, &resp.envelope); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, newError(KindParse, "failed decoding profile response", err)
	}
	if resp.Response == nil {
		return nil, newError(KindResponseMissing, "GetPlayerInfo returned no Response", nil)
	}

	member := Member{ID: id, Platform: platform}
	if resp.Response.Profile != nil && resp.Response.Profile.Data != nil && resp.Response.Profile.Data.UserInfo != nil {
		if m, err := resp.Response.Profile.Data.UserInfo.toMember(); err == nil {
			member = m
		}
	}

	characters := make([]Character, 0, 3)
	if resp.Response.Characters != nil {
		for charID, data := range resp.Response.Characters.Data {
			cid, err := parseInt64(charID)
			if err != nil {
				continue
			}
			characters = append(characters, Character{
				ID:       cid,
				MemberID: member.ID,
				Class:    ClassFromHash(data.ClassHash),
			})
		}
	}

	return &PlayerInfo{Member: member, Characters: characters}, nil
}

// ActivitySummary is one row of an activity-history page.
type ActivitySummary struct {
	ActivityID           int64
	Period               time.Time
	Mode                 Mode
	Modes                []Mode
	DirectorActivityHash uint32
	ReferenceID          uint32
}

// ListActivitiesPage fetches one page of a character's activity history, or
// nil if the page is past the end of available history.
func (a *APIInterface) ListActivitiesPage(ctx context.Context, platform Platform, memberID, characterID int64, mode Mode, count, page int) ([]*ActivitySummary, error) {
	base := fmt.Sprintf(ActivityHistoryEndpointFormat, platform.ID(), memberID, characterID)
	url := fmt.Sprintf("%s?mode=%d&count=%d&page=%d", base, mode.ID(), count, page)

	raw, err := a.Clients.Get().Get(ctx, url)
	if err != nil {
		return nil, err
	}

	var resp activitiesResponse
	if err := decodeEnvelope(raw, &resp.envelope); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, newError(KindParse, "failed decoding activities response", err)
	}
	if resp.Response == nil || len(resp.Response.Activities) == 0 {
		return nil, nil
	}

	out := make([]*ActivitySummary, 0, len(resp.Response.Activities))
	for _, entry := range resp.Response.Activities {
		summary, err := toActivitySummary(entry)
		if err != nil {
			glg.Warnf("skipping activity history entry: %s", err.Error())
			continue
		}
		out = append(out, summary)
	}

	return out, nil
}

func toActivitySummary(entry *activitySummary) (*ActivitySummary, error) {
	id, err := parseInt64(entry.ActivityDetails.InstanceID)
	if err != nil {
		return nil, newError(KindParse, "invalid instance id", err)
	}

	period, err := parseUpstreamTime(entry.Period)
	if err != nil {
		return nil, newError(KindParse, "invalid period", err)
	}

	modes := make([]Mode, 0, len(entry.ActivityDetails.Modes))
	for _, m := range entry.ActivityDetails.Modes {
		modes = append(modes, ModeFromID(m))
	}

	return &ActivitySummary{
		ActivityID:           id,
		Period:               period,
		Mode:                 ModeFromID(entry.ActivityDetails.Mode),
		Modes:                modes,
		DirectorActivityHash: entry.ActivityDetails.DirectorActivityHash,
		ReferenceID:          entry.ActivityDetails.ReferenceID,
	}, nil
}

// ListActivitiesSinceID walks pages of size MaxActivitiesRequestCount,
// newest first as the upstream returns them, stopping per the rule in §4.2,
// and returns the collected activities oldest-first.
func (a *APIInterface) ListActivitiesSinceID(ctx context.Context, platform Platform, memberID, characterID int64, mode Mode, sentinel int64) ([]*ActivitySummary, error) {
	var collected []*ActivitySummary

	for page := 0; ; page++ {
		activities, err := a.ListActivitiesPage(ctx, platform, memberID, characterID, mode, MaxActivitiesRequestCount, page)
		if err != nil {
			return nil, err
		}
		if activities == nil {
			break
		}

		sawSentinel := false
		for _, act := range activities {
			if act.ActivityID == sentinel {
				sawSentinel = true
				break
			}
			collected = append(collected, act)
		}

		if sawSentinel || len(activities) < MaxActivitiesRequestCount {
			break
		}
	}

	for i, j := 0, len(collected)-1; i < j; i, j = i+1, j-1 {
		collected[i], collected[j] = collected[j], collected[i]
	}

	return collected, nil
}

// GetPGCR fetches the full post-game carnage report for one activity
// instance. Returns (nil, nil) for a legitimate "no data" envelope.
func (a *APIInterface) GetPGCR(ctx context.Context, instanceID int64) (*PGCR, error) {
	url := fmt.Sprintf(PostGameCarnageReportEndpointFormat, instanceID)

	raw, err := a.Clients.Get().Get(ctx, url)
	if err != nil {
		return nil, err
	}

	var resp pgcrResponse
	if err := decodeEnvelope(raw, &resp.envelope); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, newError(KindParse, "failed decoding pgcr response", err)
	}
	if resp.Response == nil {
		return nil, nil
	}

	return toPGCR(resp.Response)
}

// AggregateStats is the parsed all-time PvP stat block.
type AggregateStats struct {
	ActivitiesEntered float64
	ActivitiesWon     float64
	Kills             float64
	Deaths            float64
	Assists           float64
	Efficiency        float64
	KillsDeathsRatio  float64
}

// GetAggregateStats fetches the all-time PvP aggregate stats for a character.
func (a *APIInterface) GetAggregateStats(ctx context.Context, platform Platform, memberID, characterID int64) (*AggregateStats, error) {
	url := fmt.Sprintf(AggregateStatsEndpointFormat, platform.ID(), memberID, characterID)

	raw, err := a.Clients.Get().Get(ctx, url)
	if err != nil {
		return nil, err
	}

	var resp aggregateStatsResponse
	if err := decodeEnvelope(raw, &resp.envelope); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, newError(KindParse, "failed decoding aggregate stats response", err)
	}
	if resp.Response == nil || resp.Response.AllPvP == nil || resp.Response.AllPvP.AllTime == nil {
		return nil, nil
	}

	block := resp.Response.AllPvP.AllTime
	return &AggregateStats{
		ActivitiesEntered: block.ActivitiesEntered.Basic.Value,
		ActivitiesWon:      block.ActivitiesWon.Basic.Value,
		Kills:              block.Kills.Basic.Value,
		Deaths:             block.Deaths.Basic.Value,
		Assists:            block.Assists.Basic.Value,
		Efficiency:         block.Efficiency.Basic.Value,
		KillsDeathsRatio:   block.KillsDeathsRatio.Basic.Value,
	}, nil
}
