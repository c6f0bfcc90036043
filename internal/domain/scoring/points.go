package scoring

import (
	"time"

	"github.com/morbidleague/deadpool/internal/domain/player"
)

// Totals is the derived score sheet for one player. It is recomputed from the
// snapshot on every read and never persisted.
type Totals struct {
	HitPoints     int
	Hits          int
	Penalty       int
	TotalScore    int
	ApprovedCount int
}

// HitPoints converts a calendar age at death into points. Younger deaths are
// worth more; every confirmed death is worth at least 1 point.
func HitPoints(age int) int {
	if age >= 99 {
		return 1
	}
	points := 100 - age
	if points < 1 {
		return 1
	}
	return points
}

// PickPoints returns the scoring contribution of a single pick. Picks that
// are unapproved, or missing a birth or death date, contribute zero.
func PickPoints(p player.Pick, now time.Time) int {
	if !p.IsApproved() || p.BirthDate == nil || p.DeathDate == nil {
		return 0
	}
	age, ok := AgeAtDeath(p.BirthDate, p.DeathDate, now)
	if !ok {
		return 0
	}
	return HitPoints(age)
}

// PlayerTotals is the single sanctioned way to compute a player's score.
// Every view (leaderboard, player detail, badges, stats) must go through it
// so no two surfaces can disagree on a total.
func PlayerTotals(p player.Player, season string, now time.Time) Totals {
	var out Totals
	for _, pick := range p.SeasonPicks(season) {
		if !pick.IsApproved() {
			continue
		}
		out.ApprovedCount++

		points := PickPoints(pick, now)
		if points > 0 {
			out.HitPoints += points
			out.Hits++
		}
	}

	for _, entry := range p.ScoreHistory {
		out.Penalty += entry.Delta
	}
	out.TotalScore = out.HitPoints + out.Penalty

	return out
}
