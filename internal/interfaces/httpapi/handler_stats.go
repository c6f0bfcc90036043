package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/morbidleague/deadpool/internal/usecase"
)

type monthCountDTO struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

type ageBucketDTO struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

type seasonStatsDTO struct {
	Season        string          `json:"season"`
	Players       int             `json:"players"`
	ApprovedPicks int             `json:"approvedPicks"`
	UniquePersons int             `json:"uniquePersons"`
	SharedPersons int             `json:"sharedPersons"`
	Hits          int             `json:"hits"`
	HitRate       float64         `json:"hitRate"`
	TopScore      int             `json:"topScore"`
	AverageScore  float64         `json:"averageScore"`
	DeathsByMonth []monthCountDTO `json:"deathsByMonth"`
	AgesAtDeath   []ageBucketDTO  `json:"agesAtDeath"`
}

func (h *Handler) GetSeasonStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSeasonStats")
	defer span.End()

	season := strings.TrimSpace(r.PathValue("season"))
	stats, err := h.statsService.SeasonStats(ctx, season)
	if err != nil {
		h.logger.WarnContext(ctx, "get season stats failed", "season", season, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, seasonStatsToDTO(ctx, stats))
}

func seasonStatsToDTO(ctx context.Context, stats usecase.SeasonStats) seasonStatsDTO {
	ctx, span := startSpan(ctx, "httpapi.seasonStatsToDTO")
	defer span.End()

	months := make([]monthCountDTO, 0, len(stats.DeathsByMonth))
	for _, m := range stats.DeathsByMonth {
		months = append(months, monthCountDTO{Month: m.Month, Count: m.Count})
	}

	buckets := make([]ageBucketDTO, 0, len(stats.AgesAtDeath))
	for _, b := range stats.AgesAtDeath {
		buckets = append(buckets, ageBucketDTO{Label: b.Label, Count: b.Count})
	}

	return seasonStatsDTO{
		Season:        stats.Season,
		Players:       stats.Players,
		ApprovedPicks: stats.ApprovedPicks,
		UniquePersons: stats.UniquePersons,
		SharedPersons: stats.SharedPersons,
		Hits:          stats.Hits,
		HitRate:       stats.HitRate,
		TopScore:      stats.TopScore,
		AverageScore:  stats.AverageScore,
		DeathsByMonth: months,
		AgesAtDeath:   buckets,
	}
}
