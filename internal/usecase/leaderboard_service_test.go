package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/morbidleague/deadpool/internal/domain/player"
	"github.com/morbidleague/deadpool/internal/platform/cache"
)

func leaderboardFixture() *stubPlayerRepository {
	return &stubPlayerRepository{
		players: []player.Player{
			rosterPlayer("bob", player.Pick{
				ID:        "b1",
				Raw:       "Celeb One",
				Status:    player.PickStatusApproved,
				BirthDate: testDatePtr(1950, time.January, 1),
				DeathDate: testDatePtr(2026, time.January, 1),
			}),
			rosterPlayer("alice", player.Pick{
				ID:        "a1",
				Raw:       "Celeb Two",
				Status:    player.PickStatusApproved,
				BirthDate: testDatePtr(1930, time.January, 1),
				DeathDate: testDatePtr(2026, time.February, 1),
			}),
		},
	}
}

func TestLeaderboardService_DefaultSort(t *testing.T) {
	t.Parallel()

	service := NewLeaderboardService(leaderboardFixture(), nil)
	service.now = func() time.Time { return testDate(2026, time.August, 1) }

	rows, err := service.Leaderboard(context.Background(), "2026", "", "")
	if err != nil {
		t.Fatalf("Leaderboard error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d want 2", len(rows))
	}

	// bob's pick died at 76 (24 points), alice's at 96 (4 points).
	if rows[0].ID != "bob" || rows[0].Total != 24 {
		t.Fatalf("rank 1 = %+v, want bob at 24", rows[0])
	}
	if rows[1].ID != "alice" || rows[1].Total != 4 {
		t.Fatalf("rank 2 = %+v, want alice at 4", rows[1])
	}
}

func TestLeaderboardService_SortByName(t *testing.T) {
	t.Parallel()

	service := NewLeaderboardService(leaderboardFixture(), nil)
	service.now = func() time.Time { return testDate(2026, time.August, 1) }

	rows, err := service.Leaderboard(context.Background(), "2026", SortByName, SortAsc)
	if err != nil {
		t.Fatalf("Leaderboard error: %v", err)
	}
	if rows[0].ID != "alice" || rows[1].ID != "bob" {
		t.Fatalf("unexpected name order: %s, %s", rows[0].ID, rows[1].ID)
	}
}

func TestLeaderboardService_RejectsUnknownSortKey(t *testing.T) {
	t.Parallel()

	service := NewLeaderboardService(leaderboardFixture(), nil)

	if _, err := service.Leaderboard(context.Background(), "2026", "charm", ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := service.Leaderboard(context.Background(), "2026", SortByTotal, "sideways"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestLeaderboardService_SnapshotUsesCache(t *testing.T) {
	t.Parallel()

	repo := leaderboardFixture()
	service := NewLeaderboardService(repo, cache.NewStore(time.Minute))
	service.now = func() time.Time { return testDate(2026, time.August, 1) }

	if _, err := service.Snapshot(context.Background(), "2026"); err != nil {
		t.Fatalf("first Snapshot error: %v", err)
	}
	if _, err := service.Snapshot(context.Background(), "2026"); err != nil {
		t.Fatalf("second Snapshot error: %v", err)
	}
	if repo.listCalls != 1 {
		t.Fatalf("repo hit %d times, want 1 (second read served from cache)", repo.listCalls)
	}
}

func TestLeaderboardService_RequiresSeason(t *testing.T) {
	t.Parallel()

	service := NewLeaderboardService(leaderboardFixture(), nil)
	if _, err := service.Snapshot(context.Background(), "  "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
