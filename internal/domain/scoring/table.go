package scoring

import (
	"time"

	"github.com/morbidleague/deadpool/internal/domain/player"
)

// Row is one leaderboard-shaped projection of a player.
type Row struct {
	ID            string
	Name          string
	Total         int
	Hits          int
	Penalty       int
	ApprovedCount int
	Picks         []player.Pick
}

// BuildScoreTable projects players into leaderboard rows for one season.
// Inactive players and players without an active season entry are skipped.
// Output preserves input order: sorting is a presentation concern and is
// applied by callers with an explicit sort key.
func BuildScoreTable(players []player.Player, season string, now time.Time) []Row {
	out := make([]Row, 0, len(players))
	for _, p := range players {
		if !p.Active || !p.EnteredSeason(season) {
			continue
		}

		totals := PlayerTotals(p, season, now)
		out = append(out, Row{
			ID:            p.ID,
			Name:          p.Name,
			Total:         totals.TotalScore,
			Hits:          totals.Hits,
			Penalty:       totals.Penalty,
			ApprovedCount: totals.ApprovedCount,
			Picks:         append([]player.Pick(nil), p.SeasonPicks(season)...),
		})
	}

	return out
}
