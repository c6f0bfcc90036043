package badge

import (
	"sort"
	"time"
)

// farFuture is the sentinel achievement date for badges with no natural
// "achieved at" instant. Date-less winners compare equal on the first sort
// key and fall through to score, then name.
var farFuture = time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC)

func achievedOrSentinel(w Winner) time.Time {
	if w.AchievedAt.IsZero() {
		return farFuture
	}
	return w.AchievedAt
}

// sortWinners orders a badge or tier player list: earliest achievement
// first, then leaderboard score descending, then name ascending. Player id
// is the last key so full ties still order the same way on every run, even
// when the winners were gathered from map iteration.
func sortWinners(winners []Winner) {
	sort.SliceStable(winners, func(i, j int) bool {
		ai, aj := achievedOrSentinel(winners[i]), achievedOrSentinel(winners[j])
		if !ai.Equal(aj) {
			return ai.Before(aj)
		}
		if winners[i].LeaderboardScore != winners[j].LeaderboardScore {
			return winners[i].LeaderboardScore > winners[j].LeaderboardScore
		}
		if winners[i].Name != winners[j].Name {
			return winners[i].Name < winners[j].Name
		}
		return winners[i].ID < winners[j].ID
	})
}
