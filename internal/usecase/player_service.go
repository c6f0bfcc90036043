package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/morbidleague/deadpool/internal/domain/player"
	"github.com/morbidleague/deadpool/internal/domain/scoring"
)

type PlayerService struct {
	playerRepo player.Repository
	now        func() time.Time
}

// PlayerSummary is the roster listing row.
type PlayerSummary struct {
	ID            string
	Name          string
	Active        bool
	Entered       bool
	ApprovedCount int
	Hits          int
	TotalScore    int
}

// PlayerDetail is the full per-player view for one season.
type PlayerDetail struct {
	ID           string
	Name         string
	Active       bool
	Totals       scoring.Totals
	Picks        []player.Pick
	ScoreHistory []player.ScoreHistoryEntry
}

func NewPlayerService(playerRepo player.Repository) *PlayerService {
	return &PlayerService{
		playerRepo: playerRepo,
		now:        time.Now,
	}
}

func (s *PlayerService) ListPlayers(ctx context.Context, season string) ([]PlayerSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.ListPlayers")
	defer span.End()

	if strings.TrimSpace(season) == "" {
		return nil, fmt.Errorf("%w: season is required", ErrInvalidInput)
	}

	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}

	now := s.now().UTC()
	out := make([]PlayerSummary, 0, len(players))
	for _, p := range players {
		summary := PlayerSummary{
			ID:      p.ID,
			Name:    p.Name,
			Active:  p.Active,
			Entered: p.EnteredSeason(season),
		}
		if p.Active && summary.Entered {
			totals := scoring.PlayerTotals(p, season, now)
			summary.ApprovedCount = totals.ApprovedCount
			summary.Hits = totals.Hits
			summary.TotalScore = totals.TotalScore
		}
		out = append(out, summary)
	}
	return out, nil
}

func (s *PlayerService) GetPlayer(ctx context.Context, playerID, season string) (PlayerDetail, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.GetPlayer")
	defer span.End()

	if strings.TrimSpace(playerID) == "" {
		return PlayerDetail{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}
	if strings.TrimSpace(season) == "" {
		return PlayerDetail{}, fmt.Errorf("%w: season is required", ErrInvalidInput)
	}

	p, exists, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return PlayerDetail{}, fmt.Errorf("get player %s: %w", playerID, err)
	}
	if !exists {
		return PlayerDetail{}, fmt.Errorf("%w: player %s", ErrNotFound, playerID)
	}

	return PlayerDetail{
		ID:           p.ID,
		Name:         p.Name,
		Active:       p.Active,
		Totals:       scoring.PlayerTotals(p, season, s.now().UTC()),
		Picks:        append([]player.Pick(nil), p.SeasonPicks(season)...),
		ScoreHistory: append([]player.ScoreHistoryEntry(nil), p.ScoreHistory...),
	}, nil
}
