package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/albapepper/austats/internal/api/respond"
	"github.com/albapepper/austats/internal/cache"
	"github.com/albapepper/austats/internal/stat"
)

type leagueInfo struct {
	Key       string   `json:"key"`
	Name      string   `json:"name"`
	Sport     string   `json:"sport"`
	Seasons   []int    `json:"seasons"`
	StatTypes []string `json:"stat_types"`
}

// GetLeagues lists the supported leagues.
// @Summary List leagues
// @Description Returns every supported league with its season years and vendor stat types.
// @Tags leagues
// @Produce json
// @Success 200 {array} leagueInfo
// @Router /api/v1/leagues [get]
func (h *Handler) GetLeagues(w http.ResponseWriter, r *http.Request) {
	const cacheKey = "leagues"
	ttl := cache.TTLLeagues
	if h.serveCached(w, r, cacheKey, ttl) {
		return
	}

	keys := h.registry.Keys()
	out := make([]leagueInfo, 0, len(keys))
	for _, k := range keys {
		l, _ := h.registry.Get(k)
		out = append(out, leagueInfo{
			Key:       l.Key,
			Name:      l.Name,
			Sport:     l.Stats.Sport,
			Seasons:   l.Seasons.Years(),
			StatTypes: l.Stats.StatTypes,
		})
	}
	data, err := json.Marshal(out)
	if err != nil {
		respond.Fail(w, http.StatusInternalServerError, "ENCODE_FAILED", "Could not encode leagues", h.detail(err))
		return
	}
	etag := h.cache.Set(cacheKey, data, ttl)
	respond.Stored(w, r, data, respond.Freshness{ETag: etag, TTL: ttl})
}

// GetSeasons returns the supported and stored seasons of a league.
// @Summary League seasons
// @Description Returns the season years the league supports and, when a database is configured, the years with stored season rows.
// @Tags leagues
// @Produce json
// @Param league path string true "League key"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} respond.Problem
// @Router /api/v1/leagues/{league}/seasons [get]
func (h *Handler) GetSeasons(w http.ResponseWriter, r *http.Request) {
	l, err := h.registry.Get(chi.URLParam(r, "league"))
	if err != nil {
		respond.Fail(w, http.StatusNotFound, "UNKNOWN_LEAGUE", err.Error(), "")
		return
	}
	resp := map[string]interface{}{
		"league":    l.Key,
		"supported": l.Seasons.Years(),
	}
	if h.store != nil {
		stored, err := h.store.Seasons(r.Context(), l.Key)
		if err != nil {
			respond.Fail(w, http.StatusServiceUnavailable, "DB_ERROR", "Could not read stored seasons", h.detail(err))
			return
		}
		resp["stored"] = json.RawMessage(stored)
	}
	respond.Object(w, http.StatusOK, resp)
}

// GetSeasonStats returns stored season aggregates.
// @Summary Season stats
// @Description Returns one row per player or team for a league season, as stored by the ingest CLI.
// @Tags stats
// @Produce json
// @Param league path string true "League key"
// @Param season path int true "Season year"
// @Param level path string true "Aggregation level" Enums(player, team)
// @Success 200 {array} stat.SeasonAggregate
// @Failure 400 {object} respond.Problem
// @Failure 404 {object} respond.Problem
// @Failure 503 {object} respond.Problem
// @Router /api/v1/stats/{league}/{season}/{level} [get]
func (h *Handler) GetSeasonStats(w http.ResponseWriter, r *http.Request) {
	l, err := h.registry.Get(chi.URLParam(r, "league"))
	if err != nil {
		respond.Fail(w, http.StatusNotFound, "UNKNOWN_LEAGUE", err.Error(), "")
		return
	}
	year, err := strconv.Atoi(chi.URLParam(r, "season"))
	if err != nil {
		respond.Fail(w, http.StatusBadRequest, "INVALID_SEASON", "season must be a year", "")
		return
	}
	if _, ok := l.Seasons.ByYear[year]; !ok {
		respond.Fail(w, http.StatusNotFound, "UNSUPPORTED_SEASON",
			fmt.Sprintf("%s has no %d season (supported: %v)", l.Key, year, l.Seasons.Years()), "")
		return
	}
	level, err := stat.ParseLevel(chi.URLParam(r, "level"))
	if err != nil {
		respond.Fail(w, http.StatusBadRequest, "INVALID_LEVEL", err.Error(), "")
		return
	}
	if h.store == nil {
		respond.Fail(w, http.StatusServiceUnavailable, "NO_DATABASE", "No database configured", "")
		return
	}

	cacheKey := fmt.Sprintf("stats:%s:%d:%s", l.Key, year, level)
	ttl := cache.TTLSeasonStats
	if h.serveCached(w, r, cacheKey, ttl) {
		return
	}

	raw, err := h.store.SeasonAggregates(r.Context(), l.Key, year, level)
	if err != nil {
		respond.Fail(w, http.StatusServiceUnavailable, "DB_ERROR", "Could not read season stats", h.detail(err))
		return
	}
	etag := h.cache.Set(cacheKey, raw, ttl)
	respond.Stored(w, r, raw, respond.Freshness{ETag: etag, TTL: ttl})
}

// serveCached writes a cached response or a 304 and reports whether it did.
func (h *Handler) serveCached(w http.ResponseWriter, r *http.Request, key string, ttl time.Duration) bool {
	data, etag, ok := h.cache.Get(key)
	if !ok {
		return false
	}
	respond.Stored(w, r, data, respond.Freshness{ETag: etag, TTL: ttl, Hit: true})
	return true
}

// detail exposes an internal error message outside production only.
func (h *Handler) detail(err error) string {
	if err == nil || h.cfg.IsProduction() {
		return ""
	}
	return err.Error()
}
