package bungie

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"
)

// redirectTransport rewrites every outbound request's scheme/host to target,
// so production endpoint-format constants (full bungie.net URLs) can be
// driven against an httptest.Server without changing the constants.
type redirectTransport struct {
	target *url.URL
}

func (t *redirectTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.URL.Scheme = t.target.Scheme
	req.URL.Host = t.target.Host
	req.Host = t.target.Host
	return http.DefaultTransport.RoundTrip(req)
}

func testAPI(t *testing.T, handler http.HandlerFunc) *APIInterface {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	target, err := url.Parse(srv.URL)
	if err != nil {
		t.Fatalf("failed parsing test server url: %v", err)
	}

	client := &Client{
		HTTPClient: &http.Client{Transport: &redirectTransport{target: target}},
		APIKey:     "test-key",
	}
	return &APIInterface{Clients: &ClientPool{Clients: []*Client{client}}}
}

func activityPage(instanceIDs ...int64) []byte {
	activities := make([]map[string]interface{}, 0, len(instanceIDs))
	for _, id := range instanceIDs {
		activities = append(activities, map[string]interface{}{
			"period": "2023-01-01T00:00:00Z",
			"activityDetails": map[string]interface{}{
				"referenceId":          1,
				"directorActivityHash": 1,
				"instanceId":           strconv.FormatInt(id, 10),
				"mode":                 ModeIDAllPvP,
				"modes":                []int{ModeIDAllPvP},
			},
			"values": map[string]interface{}{},
		})
	}
	body, _ := json.Marshal(map[string]interface{}{
		"ErrorCode": 1,
		"Response":  map[string]interface{}{"activities": activities},
	})
	return body
}

func emptyPage() []byte {
	body, _ := json.Marshal(map[string]interface{}{
		"ErrorCode": 1,
		"Response":  map[string]interface{}{"activities": []interface{}{}},
	})
	return body
}

// TestListActivitiesSinceIDStopsAtSentinel verifies the walk collects only
// activities newer than the sentinel and returns them oldest-first.
func TestListActivitiesSinceIDStopsAtSentinel(t *testing.T) {
	api := testAPI(t, func(w http.ResponseWriter, r *http.Request) {
		page := r.URL.Query().Get("page")
		if page == "0" {
			// Newest-first as the upstream API returns them: 103, 102 are new,
			// 101 is the sentinel, 100 is older still and must not appear.
			w.Write(activityPage(103, 102, 101, 100))
			return
		}
		w.Write(emptyPage())
	})

	got, err := api.ListActivitiesSinceID(context.Background(), PlatformSteam, 1, 1, ModeAllPvP, 101)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []int64{102, 103}
	if len(got) != len(want) {
		t.Fatalf("got %d activities, want %d: %+v", len(got), len(want), got)
	}
	for i, id := range want {
		if got[i].ActivityID != id {
			t.Errorf("position %d: ActivityID = %d, want %d", i, got[i].ActivityID, id)
		}
	}
}

// TestListActivitiesSinceIDStopsOnEmptyPage verifies a page with zero
// activities halts the walk without requesting further pages.
func TestListActivitiesSinceIDStopsOnEmptyPage(t *testing.T) {
	requests := 0
	api := testAPI(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
		page := r.URL.Query().Get("page")
		if page == "0" {
			ids := make([]int64, 0, MaxActivitiesRequestCount)
			for id := int64(MaxActivitiesRequestCount); id > 0; id-- {
				ids = append(ids, id+200)
			}
			w.Write(activityPage(ids...))
			return
		}
		w.Write(emptyPage())
	})

	got, err := api.ListActivitiesSinceID(context.Background(), PlatformSteam, 1, 1, ModeAllPvP, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != MaxActivitiesRequestCount {
		t.Fatalf("got %d activities, want %d", len(got), MaxActivitiesRequestCount)
	}
	if requests != 2 {
		t.Errorf("made %d requests, want 2 (one full page, one empty stop page)", requests)
	}
}

// TestListActivitiesSinceIDStopsOnShortPage verifies a page shorter than
// MaxActivitiesRequestCount is treated as the last page of history.
func TestListActivitiesSinceIDStopsOnShortPage(t *testing.T) {
	requests := 0
	api := testAPI(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Write(activityPage(301, 300))
	})

	got, err := api.ListActivitiesSinceID(context.Background(), PlatformSteam, 1, 1, ModeAllPvP, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d activities, want 2", len(got))
	}
	if requests != 1 {
		t.Errorf("made %d requests, want 1 (short page signals end of history)", requests)
	}
}

// TestResolvePlayerTiebreakPrefersMatchingCrossSave verifies pickCandidate
// selects the card whose membership type matches its own cross-save override
// when every candidate has a resolved override.
func TestResolvePlayerTiebreakPrefersMatchingCrossSave(t *testing.T) {
	display := "Guardian"
	globalName := "Guardian"
	code := uint32(1234)

	api := testAPI(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := json.Marshal(map[string]interface{}{
			"ErrorCode": 1,
			"Response": []map[string]interface{}{
				{
					"membershipId":                "111",
					"membershipType":              MembershipTypeSteam,
					"crossSaveOverride":            MembershipTypeXbox,
					"displayName":                 display,
					"bungieGlobalDisplayName":     globalName,
					"bungieGlobalDisplayNameCode": code,
				},
				{
					"membershipId":                "222",
					"membershipType":              MembershipTypeXbox,
					"crossSaveOverride":            MembershipTypeXbox,
					"displayName":                 display,
					"bungieGlobalDisplayName":     globalName,
					"bungieGlobalDisplayNameCode": code,
				},
			},
		})
		w.Write(body)
	})

	member, err := api.ResolvePlayer(context.Background(), display, fmt.Sprintf("%04d", code))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if member.ID != 222 {
		t.Errorf("ResolvePlayer() selected member %d, want 222 (matching cross-save override)", member.ID)
	}
}
