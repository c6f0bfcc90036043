package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/morbidleague/deadpool/internal/domain/player"
)

func playerFixture() *stubPlayerRepository {
	retired := rosterPlayer("carol", player.Pick{
		ID:        "c1",
		Raw:       "Celeb Three",
		Status:    player.PickStatusApproved,
		BirthDate: testDatePtr(1940, time.January, 1),
		DeathDate: testDatePtr(2026, time.March, 1),
	})
	retired.Active = false

	return &stubPlayerRepository{
		players: []player.Player{
			rosterPlayer("bob",
				player.Pick{
					ID:        "b1",
					Raw:       "Celeb One",
					Status:    player.PickStatusApproved,
					BirthDate: testDatePtr(1950, time.January, 1),
					DeathDate: testDatePtr(2026, time.January, 1),
				},
				player.Pick{
					ID:     "b2",
					Raw:    "Celeb Pending",
					Status: player.PickStatusPending,
				},
			),
			retired,
			{ID: "dana", Name: "dana", Active: true},
		},
	}
}

func TestPlayerService_ListPlayers(t *testing.T) {
	t.Parallel()

	service := NewPlayerService(playerFixture())
	service.now = func() time.Time { return testDate(2026, time.August, 1) }

	summaries, err := service.ListPlayers(context.Background(), "2026")
	if err != nil {
		t.Fatalf("ListPlayers error: %v", err)
	}
	if len(summaries) != 3 {
		t.Fatalf("summaries = %d want 3", len(summaries))
	}

	byID := make(map[string]PlayerSummary, len(summaries))
	for _, s := range summaries {
		byID[s.ID] = s
	}

	// bob's pick died at 76, worth 24 points. The pending pick does not count.
	bob := byID["bob"]
	if !bob.Entered || bob.ApprovedCount != 1 || bob.Hits != 1 || bob.TotalScore != 24 {
		t.Fatalf("bob summary = %+v", bob)
	}

	// carol entered but is inactive, so totals stay zeroed.
	carol := byID["carol"]
	if carol.Active || !carol.Entered || carol.TotalScore != 0 || carol.Hits != 0 {
		t.Fatalf("carol summary = %+v", carol)
	}

	// dana never entered the season.
	dana := byID["dana"]
	if dana.Entered || dana.ApprovedCount != 0 {
		t.Fatalf("dana summary = %+v", dana)
	}
}

func TestPlayerService_ListPlayersRequiresSeason(t *testing.T) {
	t.Parallel()

	service := NewPlayerService(playerFixture())

	if _, err := service.ListPlayers(context.Background(), "  "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestPlayerService_GetPlayer(t *testing.T) {
	t.Parallel()

	service := NewPlayerService(playerFixture())
	service.now = func() time.Time { return testDate(2026, time.August, 1) }

	detail, err := service.GetPlayer(context.Background(), "bob", "2026")
	if err != nil {
		t.Fatalf("GetPlayer error: %v", err)
	}

	if detail.ID != "bob" || !detail.Active {
		t.Fatalf("detail = %+v", detail)
	}
	if detail.Totals.TotalScore != 24 || detail.Totals.Hits != 1 {
		t.Fatalf("totals = %+v", detail.Totals)
	}
	if len(detail.Picks) != 2 {
		t.Fatalf("picks = %d want 2", len(detail.Picks))
	}
}

func TestPlayerService_GetPlayerNotFound(t *testing.T) {
	t.Parallel()

	service := NewPlayerService(playerFixture())

	if _, err := service.GetPlayer(context.Background(), "nobody", "2026"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPlayerService_GetPlayerValidatesInput(t *testing.T) {
	t.Parallel()

	service := NewPlayerService(playerFixture())

	if _, err := service.GetPlayer(context.Background(), "", "2026"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty id, got %v", err)
	}
	if _, err := service.GetPlayer(context.Background(), "bob", ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty season, got %v", err)
	}
}
