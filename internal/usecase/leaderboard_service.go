package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/morbidleague/deadpool/internal/domain/player"
	"github.com/morbidleague/deadpool/internal/domain/scoring"
	"github.com/morbidleague/deadpool/internal/platform/cache"
)

// Leaderboard sort keys. The engine emits rows in roster order; ordering is a
// presentation concern and lives here.
const (
	SortByTotal   = "total"
	SortByName    = "name"
	SortByHits    = "hits"
	SortByPenalty = "penalty"

	SortAsc  = "asc"
	SortDesc = "desc"
)

type LeaderboardService struct {
	playerRepo player.Repository
	store      *cache.Store
	now        func() time.Time
}

func NewLeaderboardService(playerRepo player.Repository, store *cache.Store) *LeaderboardService {
	return &LeaderboardService{
		playerRepo: playerRepo,
		store:      store,
		now:        time.Now,
	}
}

// Snapshot returns the season score table in roster order, loading through the
// cache so concurrent requests share one computation.
func (s *LeaderboardService) Snapshot(ctx context.Context, season string) ([]scoring.Row, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.Snapshot")
	defer span.End()

	if strings.TrimSpace(season) == "" {
		return nil, fmt.Errorf("%w: season is required", ErrInvalidInput)
	}

	loader := func(ctx context.Context) (any, error) {
		players, err := s.playerRepo.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("list players for leaderboard: %w", err)
		}
		return scoring.BuildScoreTable(players, season, s.now().UTC()), nil
	}

	if s.store == nil {
		value, err := loader(ctx)
		if err != nil {
			return nil, err
		}
		return value.([]scoring.Row), nil
	}

	value, err := s.store.GetOrLoad(ctx, leaderboardCacheKey(season), loader)
	if err != nil {
		return nil, err
	}
	return value.([]scoring.Row), nil
}

// Leaderboard returns the score table ordered by the requested key. An empty
// sortBy defaults to total score descending with name as the tie-break.
func (s *LeaderboardService) Leaderboard(ctx context.Context, season, sortBy, direction string) ([]scoring.Row, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.Leaderboard")
	defer span.End()

	if sortBy == "" {
		sortBy = SortByTotal
	}
	if direction == "" {
		direction = defaultDirection(sortBy)
	}

	less, err := rowComparator(sortBy)
	if err != nil {
		return nil, err
	}
	if direction != SortAsc && direction != SortDesc {
		return nil, fmt.Errorf("%w: unknown sort direction %q", ErrInvalidInput, direction)
	}

	snapshot, err := s.Snapshot(ctx, season)
	if err != nil {
		return nil, err
	}

	rows := append([]scoring.Row(nil), snapshot...)
	sort.SliceStable(rows, func(i, j int) bool {
		if direction == SortDesc {
			i, j = j, i
		}
		return less(rows[i], rows[j])
	})
	return rows, nil
}

func defaultDirection(sortBy string) string {
	if sortBy == SortByName {
		return SortAsc
	}
	return SortDesc
}

func rowComparator(sortBy string) (func(a, b scoring.Row) bool, error) {
	switch sortBy {
	case SortByTotal:
		return func(a, b scoring.Row) bool {
			if a.Total != b.Total {
				return a.Total < b.Total
			}
			return a.Name > b.Name
		}, nil
	case SortByName:
		return func(a, b scoring.Row) bool { return a.Name < b.Name }, nil
	case SortByHits:
		return func(a, b scoring.Row) bool {
			if a.Hits != b.Hits {
				return a.Hits < b.Hits
			}
			return a.Name > b.Name
		}, nil
	case SortByPenalty:
		return func(a, b scoring.Row) bool {
			if a.Penalty != b.Penalty {
				return a.Penalty < b.Penalty
			}
			return a.Name > b.Name
		}, nil
	default:
		return nil, fmt.Errorf("%w: unknown sort key %q", ErrInvalidInput, sortBy)
	}
}

func leaderboardCacheKey(season string) string {
	return "leaderboard:" + season
}
