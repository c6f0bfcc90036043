package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/morbidleague/deadpool/internal/domain/player"
	"github.com/morbidleague/deadpool/internal/usecase"
)

type playerSummaryDTO struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Active        bool   `json:"active"`
	Entered       bool   `json:"entered"`
	ApprovedCount int    `json:"approvedCount"`
	Hits          int    `json:"hits"`
	TotalScore    int    `json:"totalScore"`
}

type pickDTO struct {
	ID             string  `json:"id"`
	Raw            string  `json:"raw"`
	NormalizedName string  `json:"normalizedName,omitempty"`
	PersonID       string  `json:"personId,omitempty"`
	Status         string  `json:"status"`
	BirthDate      *string `json:"birthDate"`
	DeathDate      *string `json:"deathDate"`
}

type scoreHistoryEntryDTO struct {
	Delta  int    `json:"delta"`
	At     string `json:"at"`
	Reason string `json:"reason"`
}

type playerDetailDTO struct {
	ID            string                 `json:"id"`
	Name          string                 `json:"name"`
	Active        bool                   `json:"active"`
	TotalScore    int                    `json:"totalScore"`
	HitPoints     int                    `json:"hitPoints"`
	Hits          int                    `json:"hits"`
	Penalty       int                    `json:"penalty"`
	ApprovedCount int                    `json:"approvedCount"`
	Picks         []pickDTO              `json:"picks"`
	ScoreHistory  []scoreHistoryEntryDTO `json:"scoreHistory"`
}

func (h *Handler) ListSeasonPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSeasonPlayers")
	defer span.End()

	season := strings.TrimSpace(r.PathValue("season"))
	players, err := h.playerService.ListPlayers(ctx, season)
	if err != nil {
		h.logger.WarnContext(ctx, "list season players failed", "season", season, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]playerSummaryDTO, 0, len(players))
	for _, p := range players {
		items = append(items, playerSummaryDTO{
			ID:            p.ID,
			Name:          p.Name,
			Active:        p.Active,
			Entered:       p.Entered,
			ApprovedCount: p.ApprovedCount,
			Hits:          p.Hits,
			TotalScore:    p.TotalScore,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetSeasonPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSeasonPlayer")
	defer span.End()

	season := strings.TrimSpace(r.PathValue("season"))
	playerID := strings.TrimSpace(r.PathValue("playerID"))

	detail, err := h.playerService.GetPlayer(ctx, playerID, season)
	if err != nil {
		h.logger.WarnContext(ctx, "get season player failed", "season", season, "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerDetailToDTO(ctx, detail))
}

func playerDetailToDTO(ctx context.Context, detail usecase.PlayerDetail) playerDetailDTO {
	ctx, span := startSpan(ctx, "httpapi.playerDetailToDTO")
	defer span.End()

	picks := make([]pickDTO, 0, len(detail.Picks))
	for _, pick := range detail.Picks {
		picks = append(picks, pickToDTO(pick))
	}

	history := make([]scoreHistoryEntryDTO, 0, len(detail.ScoreHistory))
	for _, entry := range detail.ScoreHistory {
		history = append(history, scoreHistoryEntryDTO{
			Delta:  entry.Delta,
			At:     formatDate(entry.At),
			Reason: entry.Reason,
		})
	}

	return playerDetailDTO{
		ID:            detail.ID,
		Name:          detail.Name,
		Active:        detail.Active,
		TotalScore:    detail.Totals.TotalScore,
		HitPoints:     detail.Totals.HitPoints,
		Hits:          detail.Totals.Hits,
		Penalty:       detail.Totals.Penalty,
		ApprovedCount: detail.Totals.ApprovedCount,
		Picks:         picks,
		ScoreHistory:  history,
	}
}

func pickToDTO(pick player.Pick) pickDTO {
	return pickDTO{
		ID:             pick.ID,
		Raw:            pick.Raw,
		NormalizedName: pick.NormalizedName,
		PersonID:       pick.PersonID,
		Status:         string(pick.Status),
		BirthDate:      formatDatePtr(pick.BirthDate),
		DeathDate:      formatDatePtr(pick.DeathDate),
	}
}
