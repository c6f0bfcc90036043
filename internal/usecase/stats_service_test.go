package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/morbidleague/deadpool/internal/domain/badge"
	"github.com/morbidleague/deadpool/internal/domain/player"
)

func TestStatsService_SeasonStats(t *testing.T) {
	t.Parallel()

	repo := &stubPlayerRepository{
		players: []player.Player{
			rosterPlayer("alice",
				player.Pick{ID: "a1", Raw: "C1", PersonID: "c1", Status: player.PickStatusApproved, BirthDate: testDatePtr(1950, time.January, 1), DeathDate: testDatePtr(2026, time.January, 15)},
				player.Pick{ID: "a2", Raw: "C2", PersonID: "c2", Status: player.PickStatusApproved, BirthDate: testDatePtr(1940, time.June, 1), DeathDate: testDatePtr(2026, time.January, 20)},
				player.Pick{ID: "a3", Raw: "C3", PersonID: "c3", Status: player.PickStatusApproved, BirthDate: testDatePtr(1960, time.June, 1)},
			),
			rosterPlayer("bob",
				player.Pick{ID: "b1", Raw: "C3", PersonID: "c3", Status: player.PickStatusApproved, BirthDate: testDatePtr(1960, time.June, 1)},
				player.Pick{ID: "b2", Raw: "C4", PersonID: "c4", Status: player.PickStatusPending},
			),
		},
	}

	service := NewStatsService(repo, nil, 2)
	service.now = func() time.Time { return testDate(2026, time.August, 1) }

	stats, err := service.SeasonStats(context.Background(), "2026")
	if err != nil {
		t.Fatalf("SeasonStats error: %v", err)
	}

	if stats.Players != 2 {
		t.Fatalf("players = %d want 2", stats.Players)
	}
	if stats.ApprovedPicks != 4 {
		t.Fatalf("approved picks = %d want 4 (pending excluded)", stats.ApprovedPicks)
	}
	if stats.Hits != 2 {
		t.Fatalf("hits = %d want 2", stats.Hits)
	}
	if stats.HitRate != 0.5 {
		t.Fatalf("hit rate = %f want 0.5", stats.HitRate)
	}
	if stats.UniquePersons != 3 {
		t.Fatalf("unique persons = %d want 3", stats.UniquePersons)
	}
	if stats.SharedPersons != 1 {
		t.Fatalf("shared persons = %d want 1 (only C3 is held twice)", stats.SharedPersons)
	}

	// 76 at death (24 pts) + 85 at death (15 pts) for alice, nothing for bob.
	if stats.TopScore != 39 {
		t.Fatalf("top score = %d want 39", stats.TopScore)
	}
	if stats.AverageScore != 19.5 {
		t.Fatalf("average score = %f want 19.5", stats.AverageScore)
	}

	if len(stats.DeathsByMonth) != 1 || stats.DeathsByMonth[0].Month != "2026-01" || stats.DeathsByMonth[0].Count != 2 {
		t.Fatalf("deaths by month = %+v", stats.DeathsByMonth)
	}

	if len(stats.AgesAtDeath) != 2 {
		t.Fatalf("age buckets = %+v, want 70s and 80s", stats.AgesAtDeath)
	}
	if stats.AgesAtDeath[0].Label != "70-79" || stats.AgesAtDeath[1].Label != "80-89" {
		t.Fatalf("bucket order = %+v", stats.AgesAtDeath)
	}
}

func TestStatsService_EmptyRoster(t *testing.T) {
	t.Parallel()

	service := NewStatsService(&stubPlayerRepository{}, nil, 2)

	stats, err := service.SeasonStats(context.Background(), "2026")
	if err != nil {
		t.Fatalf("SeasonStats error: %v", err)
	}
	if stats.Players != 0 || stats.HitRate != 0 || stats.AverageScore != 0 {
		t.Fatalf("empty roster stats = %+v", stats)
	}
}

func TestStatsService_RequiresSeason(t *testing.T) {
	t.Parallel()

	service := NewStatsService(&stubPlayerRepository{}, nil, 0)
	if _, err := service.SeasonStats(context.Background(), ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestStatsSections_ComputeBeforeApply(t *testing.T) {
	t.Parallel()

	players := []player.Player{
		rosterPlayer("alice",
			player.Pick{ID: "a1", Raw: "C1", PersonID: "c1", Status: player.PickStatusApproved, BirthDate: testDatePtr(1950, time.January, 1), DeathDate: testDatePtr(2026, time.January, 15)},
		),
	}
	snapshot := badge.BuildContext(players, "2026", testDate(2026, time.August, 1), nil)

	// Each section does all aggregation up front and hands back a pure
	// assignment, so the shared struct is untouched until apply runs.
	var stats SeasonStats
	apply := collectPickTotals(snapshot)
	if stats.ApprovedPicks != 0 || stats.Hits != 0 {
		t.Fatalf("stats mutated before apply: %+v", stats)
	}
	apply(&stats)
	if stats.ApprovedPicks != 1 || stats.Hits != 1 || stats.HitRate != 1 {
		t.Fatalf("pick totals = %+v", stats)
	}

	applyScores := collectScoreTotals(snapshot)
	if stats.TopScore != 0 {
		t.Fatalf("score fields mutated before apply: %+v", stats)
	}
	applyScores(&stats)
	if stats.TopScore != 24 || stats.AverageScore != 24 {
		t.Fatalf("score totals = %+v", stats)
	}
}

func TestSortAgeLabels(t *testing.T) {
	t.Parallel()

	labels := []string{"100-109", "20-29", "90-99"}
	sortAgeLabels(labels)
	if labels[0] != "20-29" || labels[1] != "90-99" || labels[2] != "100-109" {
		t.Fatalf("label order = %v", labels)
	}
}
