package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/morbidleague/deadpool/internal/domain/badge"
	"github.com/morbidleague/deadpool/internal/domain/player"
	"github.com/morbidleague/deadpool/internal/platform/cache"
	"github.com/morbidleague/deadpool/internal/platform/logging"
)

type BadgeService struct {
	playerRepo player.Repository
	store      *cache.Store
	logger     *logging.Logger
	now        func() time.Time
}

// BadgeInfo is the catalog metadata exposed without evaluating anything.
type BadgeInfo struct {
	ID          string
	Name        string
	Description string
	Kind        badge.Kind
}

func NewBadgeService(playerRepo player.Repository, store *cache.Store, logger *logging.Logger) *BadgeService {
	if logger == nil {
		logger = logging.Default()
	}
	return &BadgeService{
		playerRepo: playerRepo,
		store:      store,
		logger:     logger,
		now:        time.Now,
	}
}

// Catalog lists every registered badge in display order.
func (s *BadgeService) Catalog(ctx context.Context) ([]BadgeInfo, error) {
	_, span := startUsecaseSpan(ctx, "usecase.BadgeService.Catalog")
	defer span.End()

	defs, err := badge.Catalog()
	if err != nil {
		return nil, fmt.Errorf("load badge catalog: %w", err)
	}

	out := make([]BadgeInfo, 0, len(defs))
	for _, def := range defs {
		out = append(out, BadgeInfo{
			ID:          def.ID,
			Name:        def.Name,
			Description: def.Description,
			Kind:        def.Kind,
		})
	}
	return out, nil
}

// EvaluateSeason runs the badge catalog against the current roster snapshot.
// A failing evaluator is logged and skipped rather than failing the whole
// evaluation; callers still get every healthy badge.
func (s *BadgeService) EvaluateSeason(ctx context.Context, season string) ([]badge.Result, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BadgeService.EvaluateSeason")
	defer span.End()

	if strings.TrimSpace(season) == "" {
		return nil, fmt.Errorf("%w: season is required", ErrInvalidInput)
	}

	loader := func(ctx context.Context) (any, error) {
		players, err := s.playerRepo.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("list players for badge evaluation: %w", err)
		}

		evalCtx := badge.BuildContext(players, season, s.now().UTC(), nil)
		results, evalErr := badge.Evaluate(evalCtx)
		if evalErr != nil {
			if len(results) == 0 {
				return nil, fmt.Errorf("evaluate badges: %w", evalErr)
			}
			s.logger.WarnContext(ctx, "badge evaluation completed with failures",
				"season", season,
				"evaluated", len(results),
				"error", evalErr,
			)
		}
		return results, nil
	}

	if s.store == nil {
		value, err := loader(ctx)
		if err != nil {
			return nil, err
		}
		return value.([]badge.Result), nil
	}

	value, err := s.store.GetOrLoad(ctx, badgeCacheKey(season), loader)
	if err != nil {
		return nil, err
	}
	return value.([]badge.Result), nil
}

func badgeCacheKey(season string) string {
	return "badges:" + season
}
