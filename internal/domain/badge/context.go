package badge

import (
	"sort"
	"strconv"
	"time"

	"github.com/morbidleague/deadpool/internal/domain/player"
	"github.com/morbidleague/deadpool/internal/domain/scoring"
)

// ContextPlayer is one active, season-enrolled player annotated with the
// derived fields the evaluators consume. All slices are copies of the input
// snapshot: evaluators may sort and filter them freely.
type ContextPlayer struct {
	ID         string
	Name       string
	Totals     scoring.Totals
	Picks      []player.Pick
	Approved   []player.Pick
	DeathDates []time.Time
	PersonKeys map[string]struct{}
	AvgPickAge float64
	History    []player.ScoreHistoryEntry
}

// Context is the shared snapshot every badge evaluator runs against.
type Context struct {
	Season      string
	Now         time.Time
	SeasonStart time.Time
	Players     []ContextPlayer
	Deaths      map[string][]time.Time
}

// BuildContext derives the evaluation context from a player snapshot.
// deaths may carry a precomputed player-id → confirmed-death-dates mapping;
// when nil it is derived from the picks. The input snapshot is never mutated.
func BuildContext(players []player.Player, season string, now time.Time, deaths map[string][]time.Time) Context {
	ctx := Context{
		Season:      season,
		Now:         now,
		SeasonStart: seasonStart(season, now),
		Deaths:      make(map[string][]time.Time),
	}

	for _, p := range players {
		if !p.Active || !p.EnteredSeason(season) {
			continue
		}

		cp := ContextPlayer{
			ID:         p.ID,
			Name:       p.Name,
			Totals:     scoring.PlayerTotals(p, season, now),
			Picks:      append([]player.Pick(nil), p.SeasonPicks(season)...),
			PersonKeys: make(map[string]struct{}),
			History:    append([]player.ScoreHistoryEntry(nil), p.ScoreHistory...),
		}

		ageSum := 0.0
		ageCount := 0
		for _, pick := range cp.Picks {
			if !pick.IsApproved() {
				continue
			}
			cp.Approved = append(cp.Approved, pick)
			cp.PersonKeys[personKey(pick)] = struct{}{}
			if pick.BirthDate != nil {
				ageSum += scoring.Years(*pick.BirthDate, ctx.SeasonStart)
				ageCount++
			}
		}
		if ageCount > 0 {
			cp.AvgPickAge = ageSum / float64(ageCount)
		}

		if provided, ok := deaths[p.ID]; ok {
			cp.DeathDates = append([]time.Time(nil), provided...)
		} else {
			for _, pick := range cp.Approved {
				if pick.DeathDate != nil {
					cp.DeathDates = append(cp.DeathDates, *pick.DeathDate)
				}
			}
		}
		sort.Slice(cp.DeathDates, func(i, j int) bool {
			return cp.DeathDates[i].Before(cp.DeathDates[j])
		})

		ctx.Deaths[cp.ID] = cp.DeathDates
		ctx.Players = append(ctx.Players, cp)
	}

	return ctx
}

// seasonStart is the fixed reference date for age thresholds that must not
// drift with the evaluation instant (e.g. living-pick age checks).
func seasonStart(season string, now time.Time) time.Time {
	if year, err := strconv.Atoi(season); err == nil && year > 0 {
		return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	}
	return time.Date(now.UTC().Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
}

// personKey resolves the identity of a pick's subject, preferring the linked
// person record over the normalized or raw name.
func personKey(p player.Pick) string {
	if p.PersonID != "" {
		return p.PersonID
	}
	if p.NormalizedName != "" {
		return p.NormalizedName
	}
	return p.Raw
}

// personDeath aggregates one confirmed death across the whole pool: which
// players had the person picked and when they died.
type personDeath struct {
	Key     string
	Date    time.Time
	Holders []ContextPlayer
}

// poolDeaths collects confirmed deaths grouped by person across all players.
func poolDeaths(ctx Context) []personDeath {
	byKey := make(map[string]*personDeath)
	order := make([]string, 0)
	for _, cp := range ctx.Players {
		seen := make(map[string]struct{})
		for _, pick := range cp.Approved {
			if pick.DeathDate == nil {
				continue
			}
			key := personKey(pick)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}

			entry, ok := byKey[key]
			if !ok {
				entry = &personDeath{Key: key, Date: *pick.DeathDate}
				byKey[key] = entry
				order = append(order, key)
			}
			if pick.DeathDate.Before(entry.Date) {
				entry.Date = *pick.DeathDate
			}
			entry.Holders = append(entry.Holders, cp)
		}
	}

	out := make([]personDeath, 0, len(order))
	for _, key := range order {
		out = append(out, *byKey[key])
	}
	return out
}

// pickOverlap counts distinct person identifiers shared by two players.
func pickOverlap(a, b ContextPlayer) int {
	count := 0
	for key := range a.PersonKeys {
		if _, ok := b.PersonKeys[key]; ok {
			count++
		}
	}
	return count
}

func (cp ContextPlayer) ref() PlayerRef {
	return PlayerRef{ID: cp.ID, Name: cp.Name}
}
