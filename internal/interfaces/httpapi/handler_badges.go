package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/morbidleague/deadpool/internal/domain/badge"
)

type badgeInfoDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Kind        string `json:"kind"`
}

type badgeWinnerDTO struct {
	PlayerID         string  `json:"playerId"`
	Name             string  `json:"name"`
	Value            float64 `json:"value"`
	AchievedAt       *string `json:"achievedAt"`
	LeaderboardScore int     `json:"leaderboardScore"`
}

type badgeTierDTO struct {
	Unlocked bool             `json:"unlocked"`
	Players  []badgeWinnerDTO `json:"players"`
}

type badgeResultDTO struct {
	ID             string                  `json:"id"`
	Name           string                  `json:"name"`
	Description    string                  `json:"description"`
	Kind           string                  `json:"kind"`
	Unlocked       bool                    `json:"unlocked,omitempty"`
	Players        []badgeWinnerDTO        `json:"players,omitempty"`
	GlobalUnlocked bool                    `json:"globalUnlocked,omitempty"`
	Tiers          map[string]badgeTierDTO `json:"tiers,omitempty"`
}

func (h *Handler) ListBadgeCatalog(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListBadgeCatalog")
	defer span.End()

	infos, err := h.badgeService.Catalog(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list badge catalog failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]badgeInfoDTO, 0, len(infos))
	for _, info := range infos {
		items = append(items, badgeInfoDTO{
			ID:          info.ID,
			Name:        info.Name,
			Description: info.Description,
			Kind:        string(info.Kind),
		})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetSeasonBadges(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSeasonBadges")
	defer span.End()

	season := strings.TrimSpace(r.PathValue("season"))
	results, err := h.badgeService.EvaluateSeason(ctx, season)
	if err != nil {
		h.logger.WarnContext(ctx, "evaluate season badges failed", "season", season, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]badgeResultDTO, 0, len(results))
	for _, result := range results {
		items = append(items, badgeResultToDTO(ctx, result))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func badgeResultToDTO(ctx context.Context, result badge.Result) badgeResultDTO {
	ctx, span := startSpan(ctx, "httpapi.badgeResultToDTO")
	defer span.End()

	dto := badgeResultDTO{
		ID:          result.ID,
		Name:        result.Name,
		Description: result.Description,
		Kind:        string(result.Kind),
	}

	switch result.Kind {
	case badge.KindSingle:
		dto.Unlocked = result.Unlocked
		dto.Players = badgeWinnersToDTO(result.Players)
	case badge.KindTiered:
		dto.GlobalUnlocked = result.GlobalUnlocked
		dto.Tiers = make(map[string]badgeTierDTO, len(result.Tiers))
		for tier, tierResult := range result.Tiers {
			dto.Tiers[string(tier)] = badgeTierDTO{
				Unlocked: tierResult.Unlocked,
				Players:  badgeWinnersToDTO(tierResult.Players),
			}
		}
	}

	return dto
}

func badgeWinnersToDTO(winners []badge.Winner) []badgeWinnerDTO {
	out := make([]badgeWinnerDTO, 0, len(winners))
	for _, winner := range winners {
		out = append(out, badgeWinnerDTO{
			PlayerID:         winner.ID,
			Name:             winner.Name,
			Value:            winner.Value,
			AchievedAt:       formatOptionalDate(winner.AchievedAt),
			LeaderboardScore: winner.LeaderboardScore,
		})
	}
	return out
}
