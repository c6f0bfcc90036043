package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/morbidleague/deadpool/internal/domain/scoring"
)

type leaderboardRowDTO struct {
	Rank          int    `json:"rank"`
	PlayerID      string `json:"playerId"`
	Name          string `json:"name"`
	Total         int    `json:"total"`
	HitPoints     int    `json:"hitPoints"`
	Hits          int    `json:"hits"`
	Penalty       int    `json:"penalty"`
	ApprovedCount int    `json:"approvedCount"`
}

func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeaderboard")
	defer span.End()

	season := strings.TrimSpace(r.PathValue("season"))
	sortBy := strings.TrimSpace(r.URL.Query().Get("sort"))
	direction := strings.TrimSpace(r.URL.Query().Get("dir"))

	rows, err := h.leaderboardService.Leaderboard(ctx, season, sortBy, direction)
	if err != nil {
		h.logger.WarnContext(ctx, "get leaderboard failed", "season", season, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]leaderboardRowDTO, 0, len(rows))
	for idx, row := range rows {
		items = append(items, leaderboardRowToDTO(ctx, row, idx+1))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func leaderboardRowToDTO(ctx context.Context, row scoring.Row, rank int) leaderboardRowDTO {
	ctx, span := startSpan(ctx, "httpapi.leaderboardRowToDTO")
	defer span.End()

	return leaderboardRowDTO{
		Rank:          rank,
		PlayerID:      row.ID,
		Name:          row.Name,
		Total:         row.Total,
		HitPoints:     row.Total - row.Penalty,
		Hits:          row.Hits,
		Penalty:       row.Penalty,
		ApprovedCount: row.ApprovedCount,
	}
}
