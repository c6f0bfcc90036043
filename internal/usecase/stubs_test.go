package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/morbidleague/deadpool/internal/domain/person"
	"github.com/morbidleague/deadpool/internal/domain/player"
)

type stubPlayerRepository struct {
	players   []player.Player
	listCalls int
	listErr   error
}

func (r *stubPlayerRepository) List(context.Context) ([]player.Player, error) {
	r.listCalls++
	if r.listErr != nil {
		return nil, r.listErr
	}
	return append([]player.Player(nil), r.players...), nil
}

func (r *stubPlayerRepository) GetByID(_ context.Context, playerID string) (player.Player, bool, error) {
	for _, p := range r.players {
		if p.ID == playerID {
			return p, true, nil
		}
	}
	return player.Player{}, false, nil
}

func (r *stubPlayerRepository) UpdatePick(_ context.Context, playerID, season string, pick player.Pick) error {
	for i, p := range r.players {
		if p.ID != playerID {
			continue
		}
		entry, ok := p.Entries[season]
		if !ok {
			return fmt.Errorf("player %s has no entry for season %s", playerID, season)
		}
		for j, existing := range entry.Picks {
			if existing.ID == pick.ID {
				r.players[i].Entries[season].Picks[j] = pick
				return nil
			}
		}
		return fmt.Errorf("pick %s not found", pick.ID)
	}
	return fmt.Errorf("player %s not found", playerID)
}

func (r *stubPlayerRepository) AppendScoreHistory(_ context.Context, playerID string, entry player.ScoreHistoryEntry) error {
	for i, p := range r.players {
		if p.ID == playerID {
			r.players[i].ScoreHistory = append(r.players[i].ScoreHistory, entry)
			return nil
		}
	}
	return fmt.Errorf("player %s not found", playerID)
}

func (r *stubPlayerRepository) SetPickDeathDates(_ context.Context, personID string, deathDate time.Time) error {
	for i := range r.players {
		for season, entry := range r.players[i].Entries {
			for j, pick := range entry.Picks {
				if pick.PersonID == personID {
					d := deathDate
					r.players[i].Entries[season].Picks[j].DeathDate = &d
				}
			}
		}
	}
	return nil
}

type stubPersonRepository struct {
	persons map[string]person.Person
}

func (r *stubPersonRepository) List(context.Context) ([]person.Person, error) {
	out := make([]person.Person, 0, len(r.persons))
	for _, p := range r.persons {
		out = append(out, p)
	}
	return out, nil
}

func (r *stubPersonRepository) GetByID(_ context.Context, personID string) (person.Person, bool, error) {
	p, ok := r.persons[personID]
	return p, ok, nil
}

func (r *stubPersonRepository) Upsert(_ context.Context, p person.Person) error {
	if r.persons == nil {
		r.persons = make(map[string]person.Person)
	}
	r.persons[p.ID] = p
	return nil
}

func (r *stubPersonRepository) SetDeathDate(_ context.Context, personID string, deathDate time.Time) error {
	p, ok := r.persons[personID]
	if !ok {
		return fmt.Errorf("person %s not found", personID)
	}
	d := deathDate
	p.DeathDate = &d
	r.persons[personID] = p
	return nil
}

func testDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func testDatePtr(year int, month time.Month, day int) *time.Time {
	d := testDate(year, month, day)
	return &d
}

func rosterPlayer(id string, picks ...player.Pick) player.Player {
	return player.Player{
		ID:     id,
		Name:   id,
		Active: true,
		Entries: map[string]player.SeasonEntry{
			"2026": {Active: true, Picks: picks},
		},
	}
}
