package main

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mikechambers/dcli-sub000/bungie"
	"github.com/mikechambers/dcli-sub000/store"
)

type server struct {
	api     *bungie.APIInterface
	engine  *store.Engine
	query   *store.Query
}

// healthHandler reports process liveness for the ops surface (§2.1 item 10).
func (s *server) healthHandler(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// syncNowHandler triggers a single SyncAll pass on demand, outside the
// daemon's 15-second loop.
func (s *server) syncNowHandler(ctx *gin.Context) {
	result, err := s.engine.SyncAll(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"total_synced":    result.TotalSynced,
		"total_available": result.TotalAvailable,
	})
}

func resolveMemberID(ctx *gin.Context) (int64, bool) {
	raw := ctx.Query("member_id")
	if raw == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "member_id is required"})
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "member_id must be a 64-bit integer"})
		return 0, false
	}
	return id, true
}

func selectionFromQuery(ctx *gin.Context) bungie.CharacterSelection {
	switch ctx.DefaultQuery("class", "all") {
	case "titan":
		return bungie.SelectionTitan
	case "hunter":
		return bungie.SelectionHunter
	case "warlock":
		return bungie.SelectionWarlock
	case "last_active":
		return bungie.SelectionLastActive
	default:
		return bungie.SelectionAll
	}
}

func modeFromQuery(ctx *gin.Context) bungie.Mode {
	id, err := strconv.Atoi(ctx.DefaultQuery("mode", strconv.Itoa(bungie.ModeIDAllPvP)))
	if err != nil {
		return bungie.ModeAllPvP
	}
	return bungie.ModeFromID(id)
}

// lastActivityHandler serves RetrieveLastActivity as JSON.
func (s *server) lastActivityHandler(ctx *gin.Context) {
	memberID, ok := resolveMemberID(ctx)
	if !ok {
		return
	}

	result, err := s.query.RetrieveLastActivity(ctx.Request.Context(), memberID, selectionFromQuery(ctx), modeFromQuery(ctx))
	if err != nil {
		writeQueryError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// activitiesSinceHandler serves RetrieveActivitiesSince over a [start,end]
// window supplied as RFC3339 query parameters.
func (s *server) activitiesSinceHandler(ctx *gin.Context) {
	memberID, ok := resolveMemberID(ctx)
	if !ok {
		return
	}

	start, end, ok := windowFromQuery(ctx)
	if !ok {
		return
	}

	results, err := s.query.RetrieveActivitiesSince(ctx.Request.Context(), memberID, selectionFromQuery(ctx), modeFromQuery(ctx), start, end)
	if err != nil {
		writeQueryError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, results)
}

// summaryHandler serves RetrieveActivitiesSummary over a [start,end] window.
func (s *server) summaryHandler(ctx *gin.Context) {
	memberID, ok := resolveMemberID(ctx)
	if !ok {
		return
	}

	start, end, ok := windowFromQuery(ctx)
	if !ok {
		return
	}

	summary, err := s.query.RetrieveActivitiesSummary(ctx.Request.Context(), memberID, selectionFromQuery(ctx), modeFromQuery(ctx), start, end)
	if err != nil {
		writeQueryError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, summary)
}

func windowFromQuery(ctx *gin.Context) (time.Time, time.Time, bool) {
	startRaw := ctx.Query("start")
	endRaw := ctx.Query("end")
	if startRaw == "" || endRaw == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "start and end are required RFC3339 instants"})
		return time.Time{}, time.Time{}, false
	}

	start, err := time.Parse(time.RFC3339, startRaw)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "start is not a valid RFC3339 instant"})
		return time.Time{}, time.Time{}, false
	}
	end, err := time.Parse(time.RFC3339, endRaw)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "end is not a valid RFC3339 instant"})
		return time.Time{}, time.Time{}, false
	}

	return start, end, true
}

func writeQueryError(ctx *gin.Context, err error) {
	if storeErr, ok := err.(*store.Error); ok && storeErr.Kind == store.KindActivityNotFound {
		ctx.JSON(http.StatusNotFound, gin.H{"error": storeErr.Error()})
		return
	}
	ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

// subscribeHandler resolves a Bungie name and registers it for daemon-mode
// SyncAll passes.
func (s *server) subscribeHandler(ctx *gin.Context) {
	name := ctx.Query("name")
	code := ctx.Query("code")
	if name == "" || code == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "name and code are required"})
		return
	}

	member, err := s.api.ResolvePlayer(ctx.Request.Context(), name, code)
	if err != nil {
		ctx.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	if err := s.engine.Subscribe(ctx.Request.Context(), member.ID); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"member_id": member.ID, "name": member.Name.String()})
}
