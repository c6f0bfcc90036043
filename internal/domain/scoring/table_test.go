package scoring

import (
	"testing"
	"time"

	"github.com/morbidleague/deadpool/internal/domain/player"
)

func TestBuildScoreTable(t *testing.T) {
	now := date(2026, time.August, 1)

	players := []player.Player{
		{
			ID:     "charlie",
			Name:   "Charlie",
			Active: true,
			Entries: map[string]player.SeasonEntry{
				"2026": {
					Active: true,
					Picks: []player.Pick{
						{ID: "p1", Raw: "C1", Status: player.PickStatusApproved, BirthDate: datePtr(1950, time.January, 1), DeathDate: datePtr(2026, time.January, 1)},
						{ID: "p2", Raw: "C2", Status: player.PickStatusApproved, BirthDate: datePtr(1970, time.January, 1)},
					},
				},
			},
		},
		{
			ID:      "dormant",
			Name:    "Dormant",
			Active:  false,
			Entries: map[string]player.SeasonEntry{"2026": {Active: true}},
		},
		{
			ID:      "lapsed",
			Name:    "Lapsed",
			Active:  true,
			Entries: map[string]player.SeasonEntry{"2026": {Active: false}},
		},
		{
			ID:     "alice",
			Name:   "Alice",
			Active: true,
			Entries: map[string]player.SeasonEntry{
				"2026": {Active: true},
			},
			ScoreHistory: []player.ScoreHistoryEntry{{Delta: -1, At: now}},
		},
	}

	rows := BuildScoreTable(players, "2026", now)
	if len(rows) != 2 {
		t.Fatalf("rows = %d want 2 (inactive and lapsed players excluded)", len(rows))
	}

	// Input order preserved: sorting belongs to the presentation layer.
	if rows[0].ID != "charlie" || rows[1].ID != "alice" {
		t.Fatalf("unexpected row order: %s, %s", rows[0].ID, rows[1].ID)
	}

	if rows[0].Total != 24 || rows[0].Hits != 1 || rows[0].ApprovedCount != 2 {
		t.Fatalf("charlie row = %+v", rows[0])
	}
	if rows[1].Total != -1 || rows[1].Penalty != -1 {
		t.Fatalf("alice row = %+v", rows[1])
	}
}

func TestBuildScoreTable_DoesNotAliasPicks(t *testing.T) {
	now := date(2026, time.August, 1)
	source := []player.Player{
		{
			ID:     "a",
			Name:   "A",
			Active: true,
			Entries: map[string]player.SeasonEntry{
				"2026": {
					Active: true,
					Picks:  []player.Pick{{ID: "p1", Raw: "C1", Status: player.PickStatusApproved}},
				},
			},
		},
	}

	rows := BuildScoreTable(source, "2026", now)
	rows[0].Picks[0].Raw = "mutated"

	if source[0].Entries["2026"].Picks[0].Raw != "C1" {
		t.Fatal("score table row aliases the input snapshot")
	}
}
