package player

import (
	"fmt"
	"time"
)

// PickStatus tracks the admin review state of a submitted pick.
type PickStatus string

const (
	PickStatusPending  PickStatus = "pending"
	PickStatusApproved PickStatus = "approved"
)

var AllPickStatuses = map[PickStatus]struct{}{
	PickStatusPending:  {},
	PickStatusApproved: {},
}

// Pick is one celebrity nominated inside a player's season list.
// BirthDate/DeathDate are canonical copies from the linked person record;
// nil means unknown (or, for DeathDate, still alive).
type Pick struct {
	ID             string
	Raw            string
	NormalizedName string
	Status         PickStatus
	BirthDate      *time.Time
	DeathDate      *time.Time
	PersonID       string
}

func (p Pick) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("pick id is required")
	}
	if p.Raw == "" {
		return fmt.Errorf("pick raw name is required")
	}
	if _, ok := AllPickStatuses[p.Status]; !ok {
		return fmt.Errorf("invalid pick status: %s", p.Status)
	}
	if p.BirthDate != nil && p.DeathDate != nil && p.DeathDate.Before(*p.BirthDate) {
		return fmt.Errorf("pick death date precedes birth date")
	}

	return nil
}

// IsApproved reports whether the pick counts toward scoring at all.
func (p Pick) IsApproved() bool {
	return p.Status == PickStatusApproved
}

// SeasonEntry holds one season's pick list for a player. Entries can be
// deactivated per season without deactivating the player.
type SeasonEntry struct {
	Picks  []Pick
	Active bool
}

// ScoreHistoryEntry records a manual score adjustment, conventionally a
// negative delta (penalty). Insertion order is chronological.
type ScoreHistoryEntry struct {
	Delta  int
	At     time.Time
	Reason string
}

// Player is a pool participant. Entries are keyed by season label ("2026").
type Player struct {
	ID           string
	Name         string
	Active       bool
	Entries      map[string]SeasonEntry
	ScoreHistory []ScoreHistoryEntry
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}
	for season, entry := range p.Entries {
		if season == "" {
			return fmt.Errorf("player season label cannot be empty")
		}
		for _, pick := range entry.Picks {
			if err := pick.Validate(); err != nil {
				return fmt.Errorf("season %s: %w", season, err)
			}
		}
	}

	return nil
}

// SeasonPicks returns the player's pick list for a season, or nil when the
// player never entered that season.
func (p Player) SeasonPicks(season string) []Pick {
	entry, ok := p.Entries[season]
	if !ok {
		return nil
	}
	return entry.Picks
}

// EnteredSeason reports whether the player holds an active entry for the season.
func (p Player) EnteredSeason(season string) bool {
	entry, ok := p.Entries[season]
	return ok && entry.Active
}
