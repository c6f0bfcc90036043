package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/morbidleague/deadpool/internal/domain/badge"
	"github.com/morbidleague/deadpool/internal/domain/player"
	"github.com/morbidleague/deadpool/internal/domain/scoring"
	"github.com/morbidleague/deadpool/internal/platform/cache"
)

const defaultStatsWorkers = 4

type StatsService struct {
	playerRepo player.Repository
	store      *cache.Store
	workers    int
	now        func() time.Time
}

// MonthCount is one month's confirmed death tally, keyed as "2026-01".
type MonthCount struct {
	Month string
	Count int
}

// AgeBucket counts deaths whose age at death fell inside one decade band.
type AgeBucket struct {
	Label string
	Count int
}

// SeasonStats is the aggregate season dashboard.
type SeasonStats struct {
	Season        string
	Players       int
	ApprovedPicks int
	UniquePersons int
	SharedPersons int
	Hits          int
	HitRate       float64
	TopScore      int
	AverageScore  float64
	DeathsByMonth []MonthCount
	AgesAtDeath   []AgeBucket
}

func NewStatsService(playerRepo player.Repository, store *cache.Store, workers int) *StatsService {
	if workers <= 0 {
		workers = defaultStatsWorkers
	}
	return &StatsService{
		playerRepo: playerRepo,
		store:      store,
		workers:    workers,
		now:        time.Now,
	}
}

// SeasonStats computes the season dashboard. The independent sections fan out
// over a bounded worker pool and write disjoint fields under one mutex.
func (s *StatsService) SeasonStats(ctx context.Context, season string) (SeasonStats, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.SeasonStats")
	defer span.End()

	if strings.TrimSpace(season) == "" {
		return SeasonStats{}, fmt.Errorf("%w: season is required", ErrInvalidInput)
	}

	loader := func(ctx context.Context) (any, error) {
		players, err := s.playerRepo.List(ctx)
		if err != nil {
			return SeasonStats{}, fmt.Errorf("list players for stats: %w", err)
		}
		return s.computeSeasonStats(players, season)
	}

	if s.store == nil {
		value, err := loader(ctx)
		if err != nil {
			return SeasonStats{}, err
		}
		return value.(SeasonStats), nil
	}

	value, err := s.store.GetOrLoad(ctx, statsCacheKey(season), loader)
	if err != nil {
		return SeasonStats{}, err
	}
	return value.(SeasonStats), nil
}

func (s *StatsService) computeSeasonStats(players []player.Player, season string) (SeasonStats, error) {
	snapshot := badge.BuildContext(players, season, s.now().UTC(), nil)

	stats := SeasonStats{Season: season, Players: len(snapshot.Players)}
	var mu sync.Mutex

	pool, err := ants.NewPool(s.workers)
	if err != nil {
		return SeasonStats{}, fmt.Errorf("create stats worker pool: %w", err)
	}
	defer pool.Release()

	sections := []func(badge.Context) func(*SeasonStats){
		collectPickTotals,
		collectScoreTotals,
		collectDeathsByMonth,
		collectAgesAtDeath,
	}

	var workers sync.WaitGroup
	for _, section := range sections {
		section := section
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			// The aggregation runs outside the lock; the mutex only covers
			// the disjoint field assignments.
			apply := section(snapshot)
			mu.Lock()
			apply(&stats)
			mu.Unlock()
		}); err != nil {
			workers.Done()
			return SeasonStats{}, fmt.Errorf("submit stats section: %w", err)
		}
	}
	workers.Wait()

	return stats, nil
}

func collectPickTotals(snapshot badge.Context) func(*SeasonStats) {
	holders := make(map[string]int)
	hits := 0
	approved := 0
	for _, cp := range snapshot.Players {
		approved += len(cp.Approved)
		hits += cp.Totals.Hits
		for key := range cp.PersonKeys {
			holders[key]++
		}
	}

	shared := 0
	for _, count := range holders {
		if count > 1 {
			shared++
		}
	}

	hitRate := 0.0
	if approved > 0 {
		hitRate = float64(hits) / float64(approved)
	}

	return func(out *SeasonStats) {
		out.ApprovedPicks = approved
		out.Hits = hits
		out.UniquePersons = len(holders)
		out.SharedPersons = shared
		out.HitRate = hitRate
	}
}

func collectScoreTotals(snapshot badge.Context) func(*SeasonStats) {
	if len(snapshot.Players) == 0 {
		return func(*SeasonStats) {}
	}

	sum := 0
	top := snapshot.Players[0].Totals.TotalScore
	for _, cp := range snapshot.Players {
		sum += cp.Totals.TotalScore
		if cp.Totals.TotalScore > top {
			top = cp.Totals.TotalScore
		}
	}
	average := float64(sum) / float64(len(snapshot.Players))

	return func(out *SeasonStats) {
		out.TopScore = top
		out.AverageScore = average
	}
}

func collectDeathsByMonth(snapshot badge.Context) func(*SeasonStats) {
	counts := make(map[string]int)
	for _, cp := range snapshot.Players {
		for _, d := range cp.DeathDates {
			counts[d.Format("2006-01")]++
		}
	}

	months := make([]MonthCount, 0, len(counts))
	for month, count := range counts {
		months = append(months, MonthCount{Month: month, Count: count})
	}
	sort.Slice(months, func(i, j int) bool {
		return months[i].Month < months[j].Month
	})

	return func(out *SeasonStats) {
		out.DeathsByMonth = months
	}
}

func collectAgesAtDeath(snapshot badge.Context) func(*SeasonStats) {
	counts := make(map[string]int)
	labels := make([]string, 0)
	for _, cp := range snapshot.Players {
		for _, pick := range cp.Approved {
			if pick.BirthDate == nil || pick.DeathDate == nil {
				continue
			}
			decade := (scoring.AgeAt(*pick.BirthDate, *pick.DeathDate) / 10) * 10
			label := fmt.Sprintf("%d-%d", decade, decade+9)
			if _, seen := counts[label]; !seen {
				labels = append(labels, label)
			}
			counts[label]++
		}
	}

	sortAgeLabels(labels)
	buckets := make([]AgeBucket, 0, len(labels))
	for _, label := range labels {
		buckets = append(buckets, AgeBucket{Label: label, Count: counts[label]})
	}

	return func(out *SeasonStats) {
		out.AgesAtDeath = buckets
	}
}

// sortAgeLabels sorts decade labels numerically; plain string sort misorders
// "100-109" before "20-29".
func sortAgeLabels(labels []string) {
	sort.Slice(labels, func(i, j int) bool {
		var a, b int
		fmt.Sscanf(labels[i], "%d", &a)
		fmt.Sscanf(labels[j], "%d", &b)
		return a < b
	})
}

func statsCacheKey(season string) string {
	return "stats:" + season
}
