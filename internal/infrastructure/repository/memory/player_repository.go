package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/morbidleague/deadpool/internal/domain/player"
)

// PlayerRepository is the in-memory roster store used for local development
// and tests. All reads return deep copies so callers can never mutate the
// stored state through a returned value.
type PlayerRepository struct {
	mu      sync.RWMutex
	players []player.Player
	index   map[string]int
}

func NewPlayerRepository(players []player.Player) *PlayerRepository {
	stored := make([]player.Player, 0, len(players))
	index := make(map[string]int, len(players))
	for _, p := range players {
		index[p.ID] = len(stored)
		stored = append(stored, clonePlayer(p))
	}

	return &PlayerRepository{
		players: stored,
		index:   index,
	}
}

func (r *PlayerRepository) List(_ context.Context) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(r.players))
	for _, p := range r.players {
		out = append(out, clonePlayer(p))
	}
	return out, nil
}

func (r *PlayerRepository) GetByID(_ context.Context, playerID string) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx, ok := r.index[playerID]
	if !ok {
		return player.Player{}, false, nil
	}
	return clonePlayer(r.players[idx]), true, nil
}

func (r *PlayerRepository) UpdatePick(_ context.Context, playerID, season string, pick player.Pick) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx, ok := r.index[playerID]
	if !ok {
		return fmt.Errorf("player %s not found", playerID)
	}
	entry, ok := r.players[idx].Entries[season]
	if !ok {
		return fmt.Errorf("player %s has no entry for season %s", playerID, season)
	}
	for i, existing := range entry.Picks {
		if existing.ID == pick.ID {
			entry.Picks[i] = clonePick(pick)
			r.players[idx].Entries[season] = entry
			return nil
		}
	}
	return fmt.Errorf("pick %s not found for player %s in season %s", pick.ID, playerID, season)
}

func (r *PlayerRepository) AppendScoreHistory(_ context.Context, playerID string, entry player.ScoreHistoryEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx, ok := r.index[playerID]
	if !ok {
		return fmt.Errorf("player %s not found", playerID)
	}
	r.players[idx].ScoreHistory = append(r.players[idx].ScoreHistory, entry)
	return nil
}

func (r *PlayerRepository) SetPickDeathDates(_ context.Context, personID string, deathDate time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for idx := range r.players {
		for season, entry := range r.players[idx].Entries {
			changed := false
			for i, pick := range entry.Picks {
				if pick.PersonID == personID {
					d := deathDate
					entry.Picks[i].DeathDate = &d
					changed = true
				}
			}
			if changed {
				r.players[idx].Entries[season] = entry
			}
		}
	}
	return nil
}

func clonePlayer(p player.Player) player.Player {
	out := p
	out.Entries = make(map[string]player.SeasonEntry, len(p.Entries))
	for season, entry := range p.Entries {
		picks := make([]player.Pick, 0, len(entry.Picks))
		for _, pick := range entry.Picks {
			picks = append(picks, clonePick(pick))
		}
		out.Entries[season] = player.SeasonEntry{Active: entry.Active, Picks: picks}
	}
	out.ScoreHistory = append([]player.ScoreHistoryEntry(nil), p.ScoreHistory...)
	return out
}

func clonePick(p player.Pick) player.Pick {
	out := p
	out.BirthDate = cloneDate(p.BirthDate)
	out.DeathDate = cloneDate(p.DeathDate)
	return out
}

func cloneDate(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	out := *t
	return &out
}
