package memory

import (
	"context"
	"testing"
	"time"

	"github.com/morbidleague/deadpool/internal/domain/player"
)

func TestPlayerRepository_ListReturnsCopies(t *testing.T) {
	repo := NewPlayerRepository(SeedPlayers())

	first, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	entry := first[0].Entries[SeasonCurrent]
	entry.Picks[0].Raw = "tampered"
	first[0].Name = "tampered"

	second, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if second[0].Name == "tampered" {
		t.Fatalf("player name mutation leaked into the store")
	}
	if second[0].Entries[SeasonCurrent].Picks[0].Raw == "tampered" {
		t.Fatalf("pick mutation leaked into the store")
	}
}

func TestPlayerRepository_UpdatePick(t *testing.T) {
	repo := NewPlayerRepository(SeedPlayers())

	updated := player.Pick{
		ID:             "pick-mort-3",
		Raw:            "Sibyl Grange",
		NormalizedName: "sibyl grange",
		Status:         player.PickStatusApproved,
		PersonID:       PersonIDSibylGrange,
	}
	if err := repo.UpdatePick(context.Background(), "ply-reaper", SeasonCurrent, updated); err != nil {
		t.Fatalf("update pick: %v", err)
	}

	stored, found, err := repo.GetByID(context.Background(), "ply-reaper")
	if err != nil || !found {
		t.Fatalf("get player: found=%v err=%v", found, err)
	}
	var got player.Pick
	for _, pick := range stored.SeasonPicks(SeasonCurrent) {
		if pick.ID == "pick-mort-3" {
			got = pick
		}
	}
	if !got.IsApproved() || got.PersonID != PersonIDSibylGrange {
		t.Fatalf("unexpected stored pick: %+v", got)
	}
}

func TestPlayerRepository_UpdatePickUnknownTargets(t *testing.T) {
	repo := NewPlayerRepository(SeedPlayers())

	pick := player.Pick{ID: "pick-gwen-1", Raw: "Vernon Tate", Status: player.PickStatusApproved}
	if err := repo.UpdatePick(context.Background(), "ply-nobody", SeasonCurrent, pick); err == nil {
		t.Fatalf("expected error for unknown player")
	}
	if err := repo.UpdatePick(context.Background(), "ply-ghoul", "1999", pick); err == nil {
		t.Fatalf("expected error for unknown season")
	}
	pick.ID = "pick-missing"
	if err := repo.UpdatePick(context.Background(), "ply-ghoul", SeasonCurrent, pick); err == nil {
		t.Fatalf("expected error for unknown pick")
	}
}

func TestPlayerRepository_SetPickDeathDates(t *testing.T) {
	repo := NewPlayerRepository(SeedPlayers())

	deathDate := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	if err := repo.SetPickDeathDates(context.Background(), PersonIDMarlaQuist, deathDate); err != nil {
		t.Fatalf("set pick death dates: %v", err)
	}

	stored, found, err := repo.GetByID(context.Background(), "ply-ghoul")
	if err != nil || !found {
		t.Fatalf("get player: found=%v err=%v", found, err)
	}
	for _, pick := range stored.SeasonPicks(SeasonCurrent) {
		if pick.PersonID != PersonIDMarlaQuist {
			continue
		}
		if pick.DeathDate == nil || !pick.DeathDate.Equal(deathDate) {
			t.Fatalf("expected death date %v, got %v", deathDate, pick.DeathDate)
		}
		return
	}
	t.Fatalf("no pick linked to %s", PersonIDMarlaQuist)
}

func TestPersonRepository_SetDeathDate(t *testing.T) {
	repo := NewPersonRepository(SeedPersons())

	deathDate := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	if err := repo.SetDeathDate(context.Background(), PersonIDMarlaQuist, deathDate); err != nil {
		t.Fatalf("set death date: %v", err)
	}

	stored, found, err := repo.GetByID(context.Background(), PersonIDMarlaQuist)
	if err != nil || !found {
		t.Fatalf("get person: found=%v err=%v", found, err)
	}
	if stored.DeathDate == nil || !stored.DeathDate.Equal(deathDate) {
		t.Fatalf("expected death date %v, got %v", deathDate, stored.DeathDate)
	}

	if err := repo.SetDeathDate(context.Background(), "per-nobody", deathDate); err == nil {
		t.Fatalf("expected error for unknown person")
	}
}
