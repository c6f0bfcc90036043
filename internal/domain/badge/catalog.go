package badge

import (
	"fmt"
	"time"

	"github.com/morbidleague/deadpool/internal/domain/scoring"
)

// Catalog returns the ordered badge registry. Ids are required to be unique:
// a duplicate id would let one definition silently shadow the other in any
// id-keyed view, so duplicates fail construction instead.
func Catalog() ([]Definition, error) {
	defs := catalogDefinitions()
	if err := validateDefinitions(defs); err != nil {
		return nil, err
	}
	return defs, nil
}

func validateDefinitions(defs []Definition) error {
	seen := make(map[string]struct{}, len(defs))
	for _, def := range defs {
		if def.ID == "" {
			return fmt.Errorf("badge definition without id")
		}
		if _, dup := seen[def.ID]; dup {
			return fmt.Errorf("duplicate badge id %q", def.ID)
		}
		seen[def.ID] = struct{}{}
	}
	return nil
}

func catalogDefinitions() []Definition {
	return []Definition{
		single("first_blood", "First Blood", "First confirmed death of the season.", 10, firstBlood),
		single("last_laugh", "Last Laugh", "Latest confirmed death of the season.", 20, lastLaugh),
		single("early_bird", "Early Bird", "A hit within 30 days of season start.", 30, earlyBird),
		single("too_soon", "Too Soon", "A pick gone before reaching 60.", 40, tooSoon),
		single("century_club", "Century Club", "A pick that made it to 100 before dying.", 50, centuryClub),
		single("zombie_alert", "Zombie Alert", "A living pick aged 90 or older.", 60, zombieAlert),
		single("optimist", "Optimist", "A full list of 20 approved picks, all still breathing.", 70, optimist),
		single("dead_weight", "Dead Weight", "Ten or more approved picks without a single hit.", 80, deadWeight),
		single("clean_kill", "Clean Kill", "A confirmed death nobody else had picked.", 90, cleanKill),
		single("mass_casualty", "Mass Casualty Event", "One death shared by at least half the pool.", 100, massCasualty),
		single("vigilante_work", "Vigilante Work", "Two confirmed deaths within seven days.", 110, vigilanteWork),
		single("hat_trick", "Hat Trick", "Three hits inside a single calendar month.", 120, hatTrick),
		single("grim_reaper", "Grim Reaper", "Top total score on the leaderboard.", 130, grimReaper),
		single("bullseye", "Bullseye", "A single hit worth 40 points or more.", 140, bullseye),

		tiered("undertaker", "Undertaker", "Body count across the season.", 200,
			[4]float64{1, 3, 5, 8}, undertakerMetrics),
		tiered("glass_cannon", "Glass Cannon", "Accumulated penalty magnitude.", 210,
			[4]float64{3, 6, 9, 12}, glassCannonMetrics),
		tiered("copycat", "Copycat", "Most picks shared with a single other player.", 220,
			[4]float64{5, 10, 15, 25}, copycatMetrics),
		tiered("lone_wolf", "Lone Wolf", "Share of picks nobody else holds.", 230,
			[4]float64{0.60, 0.75, 0.90, 1.00}, loneWolfMetrics),
		tiered("high_risk_picker", "High Risk Picker", "Average age of the approved list.", 240,
			[4]float64{80, 85, 90, 95}, highRiskPickerMetrics),
		tiered("sharpshooter", "Sharpshooter", "Best points from a single hit.", 250,
			[4]float64{20, 30, 40, 50}, sharpshooterMetrics),
		tiered("overachiever", "Overachiever", "Total score milestones.", 260,
			[4]float64{25, 50, 75, 100}, overachieverMetrics),
		tiered("psychic", "Psychic", "Hit rate across the approved list.", 270,
			[4]float64{0.10, 0.20, 0.35, 0.50}, psychicMetrics),
		tieredAtMost("cradle_robber", "Cradle Robber", "Age of the youngest living pick.", 280,
			[4]float64{70, 60, 50, 40}, cradleRobberMetrics),
		tiered("collector", "Collector", "Approved pick count milestones.", 290,
			[4]float64{5, 10, 15, 20}, collectorMetrics),
		tiered("hot_streak", "Hot Streak", "Consecutive months with at least one hit.", 300,
			[4]float64{2, 3, 4, 6}, hotStreakMetrics),
	}
}

func single(id, name, description string, order int, eval func(Context) []Winner) Definition {
	def := Definition{
		ID:          id,
		Name:        name,
		Description: description,
		Kind:        KindSingle,
		Order:       order,
	}
	def.Evaluate = func(ctx Context) (Result, error) {
		return def.singleResult(eval(ctx)), nil
	}
	return def
}

// metric is one player's measurement for a tiered badge. achievedAt, when
// set, resolves the instant the given threshold was crossed; badges without
// a natural date leave it nil and sort by score/name via the sentinel.
type metric struct {
	player     ContextPlayer
	value      float64
	achievedAt func(threshold float64) time.Time
}

func tiered(id, name, description string, order int, thresholds [4]float64, eval func(Context) []metric) Definition {
	atLeast := func(value, threshold float64) bool { return value >= threshold }
	return tieredCompare(id, name, description, order, thresholds, eval, atLeast)
}

// tieredAtMost is the descending-threshold variant: a tier unlocks when the
// metric is at or below its threshold (lower is better).
func tieredAtMost(id, name, description string, order int, thresholds [4]float64, eval func(Context) []metric) Definition {
	atMost := func(value, threshold float64) bool { return value <= threshold }
	return tieredCompare(id, name, description, order, thresholds, eval, atMost)
}

func tieredCompare(id, name, description string, order int, thresholds [4]float64, eval func(Context) []metric, qualifies func(value, threshold float64) bool) Definition {
	def := Definition{
		ID:          id,
		Name:        name,
		Description: description,
		Kind:        KindTiered,
		Order:       order,
	}
	def.Evaluate = func(ctx Context) (Result, error) {
		metrics := eval(ctx)
		tiers := make(map[Tier]TierResult, len(Tiers))
		for idx, tier := range Tiers {
			threshold := thresholds[idx]
			winners := make([]Winner, 0)
			for _, m := range metrics {
				if !qualifies(m.value, threshold) {
					continue
				}
				achieved := time.Time{}
				if m.achievedAt != nil {
					achieved = m.achievedAt(threshold)
				}
				winners = append(winners, Winner{
					PlayerRef:        m.player.ref(),
					Value:            m.value,
					AchievedAt:       achieved,
					LeaderboardScore: m.player.Totals.TotalScore,
				})
			}
			sortWinners(winners)
			tiers[tier] = TierResult{Unlocked: len(winners) > 0, Players: winners}
		}
		return def.tieredResult(tiers), nil
	}
	return def
}

func winnerOf(cp ContextPlayer, value float64, achievedAt time.Time) Winner {
	return Winner{
		PlayerRef:        cp.ref(),
		Value:            value,
		AchievedAt:       achievedAt,
		LeaderboardScore: cp.Totals.TotalScore,
	}
}

func firstBlood(ctx Context) []Winner {
	extreme := time.Time{}
	for _, cp := range ctx.Players {
		if len(cp.DeathDates) == 0 {
			continue
		}
		if extreme.IsZero() || cp.DeathDates[0].Before(extreme) {
			extreme = cp.DeathDates[0]
		}
	}
	if extreme.IsZero() {
		return nil
	}

	// Ties are not broken: every player with a death on the extreme date wins.
	winners := make([]Winner, 0, 1)
	for _, cp := range ctx.Players {
		for _, d := range cp.DeathDates {
			if d.Equal(extreme) {
				winners = append(winners, winnerOf(cp, 0, extreme))
				break
			}
		}
	}
	return winners
}

func lastLaugh(ctx Context) []Winner {
	extreme := time.Time{}
	for _, cp := range ctx.Players {
		if len(cp.DeathDates) == 0 {
			continue
		}
		last := cp.DeathDates[len(cp.DeathDates)-1]
		if extreme.IsZero() || last.After(extreme) {
			extreme = last
		}
	}
	if extreme.IsZero() {
		return nil
	}

	winners := make([]Winner, 0, 1)
	for _, cp := range ctx.Players {
		for _, d := range cp.DeathDates {
			if d.Equal(extreme) {
				winners = append(winners, winnerOf(cp, 0, extreme))
				break
			}
		}
	}
	return winners
}

func earlyBird(ctx Context) []Winner {
	deadline := ctx.SeasonStart.AddDate(0, 0, 30)
	var winners []Winner
	for _, cp := range ctx.Players {
		for _, d := range cp.DeathDates {
			if d.After(deadline) {
				break
			}
			winners = append(winners, winnerOf(cp, d.Sub(ctx.SeasonStart).Hours()/24, d))
			break
		}
	}
	return winners
}

func tooSoon(ctx Context) []Winner {
	var winners []Winner
	for _, cp := range ctx.Players {
		youngest := 0.0
		achieved := time.Time{}
		for _, pick := range cp.Approved {
			if pick.BirthDate == nil || pick.DeathDate == nil {
				continue
			}
			age := scoring.Years(*pick.BirthDate, *pick.DeathDate)
			if age >= 60 {
				continue
			}
			if achieved.IsZero() || pick.DeathDate.Before(achieved) {
				achieved = *pick.DeathDate
			}
			if youngest == 0 || age < youngest {
				youngest = age
			}
		}
		if !achieved.IsZero() {
			winners = append(winners, winnerOf(cp, youngest, achieved))
		}
	}
	return winners
}

func centuryClub(ctx Context) []Winner {
	var winners []Winner
	for _, cp := range ctx.Players {
		best := 0
		achieved := time.Time{}
		for _, pick := range cp.Approved {
			if pick.BirthDate == nil || pick.DeathDate == nil {
				continue
			}
			age := scoring.AgeAt(*pick.BirthDate, *pick.DeathDate)
			if age < 100 {
				continue
			}
			if achieved.IsZero() || pick.DeathDate.Before(achieved) {
				achieved = *pick.DeathDate
			}
			if age > best {
				best = age
			}
		}
		if !achieved.IsZero() {
			winners = append(winners, winnerOf(cp, float64(best), achieved))
		}
	}
	return winners
}

func zombieAlert(ctx Context) []Winner {
	var winners []Winner
	for _, cp := range ctx.Players {
		oldest := 0.0
		for _, pick := range cp.Approved {
			if pick.BirthDate == nil || pick.DeathDate != nil {
				continue
			}
			age := scoring.Years(*pick.BirthDate, ctx.SeasonStart)
			if age >= 90 && age > oldest {
				oldest = age
			}
		}
		if oldest > 0 {
			winners = append(winners, winnerOf(cp, oldest, time.Time{}))
		}
	}
	return winners
}

func optimist(ctx Context) []Winner {
	var winners []Winner
	for _, cp := range ctx.Players {
		if len(cp.Approved) == 20 && len(cp.DeathDates) == 0 {
			winners = append(winners, winnerOf(cp, 0, time.Time{}))
		}
	}
	return winners
}

func deadWeight(ctx Context) []Winner {
	var winners []Winner
	for _, cp := range ctx.Players {
		if len(cp.Approved) >= 10 && cp.Totals.Hits == 0 {
			winners = append(winners, winnerOf(cp, float64(len(cp.Approved)), time.Time{}))
		}
	}
	return winners
}

func cleanKill(ctx Context) []Winner {
	solo := make(map[string]*Winner)
	for _, entry := range poolDeaths(ctx) {
		if len(entry.Holders) != 1 {
			continue
		}
		cp := entry.Holders[0]
		if existing, ok := solo[cp.ID]; ok {
			existing.Value++
			if entry.Date.Before(existing.AchievedAt) {
				existing.AchievedAt = entry.Date
			}
			continue
		}
		w := winnerOf(cp, 1, entry.Date)
		solo[cp.ID] = &w
	}

	winners := make([]Winner, 0, len(solo))
	for _, w := range solo {
		winners = append(winners, *w)
	}
	return winners
}

func massCasualty(ctx Context) []Winner {
	total := len(ctx.Players)
	if total == 0 {
		return nil
	}

	byPlayer := make(map[string]*Winner)
	for _, entry := range poolDeaths(ctx) {
		share := float64(len(entry.Holders)) / float64(total)
		if share < 0.5 {
			continue
		}
		for _, cp := range entry.Holders {
			if existing, ok := byPlayer[cp.ID]; ok {
				if entry.Date.Before(existing.AchievedAt) {
					existing.AchievedAt = entry.Date
				}
				if share > existing.Value {
					existing.Value = share
				}
				continue
			}
			w := winnerOf(cp, share, entry.Date)
			byPlayer[cp.ID] = &w
		}
	}

	winners := make([]Winner, 0, len(byPlayer))
	for _, w := range byPlayer {
		winners = append(winners, *w)
	}
	return winners
}

func vigilanteWork(ctx Context) []Winner {
	const window = 7 * 24 * time.Hour
	var winners []Winner
	for _, cp := range ctx.Players {
		for i := 1; i < len(cp.DeathDates); i++ {
			gap := cp.DeathDates[i].Sub(cp.DeathDates[i-1])
			if gap <= window {
				winners = append(winners, winnerOf(cp, gap.Hours()/24, cp.DeathDates[i]))
				break
			}
		}
	}
	return winners
}

func hatTrick(ctx Context) []Winner {
	var winners []Winner
	for _, cp := range ctx.Players {
		counts := make(map[int]int)
		achieved := time.Time{}
		best := 0
		for _, d := range cp.DeathDates {
			key := d.Year()*12 + int(d.Month())
			counts[key]++
			if counts[key] == 3 && achieved.IsZero() {
				achieved = d
			}
			if counts[key] > best {
				best = counts[key]
			}
		}
		if !achieved.IsZero() {
			winners = append(winners, winnerOf(cp, float64(best), achieved))
		}
	}
	return winners
}

func grimReaper(ctx Context) []Winner {
	best := 0
	for _, cp := range ctx.Players {
		if cp.Totals.TotalScore > best {
			best = cp.Totals.TotalScore
		}
	}
	if best <= 0 {
		return nil
	}

	var winners []Winner
	for _, cp := range ctx.Players {
		if cp.Totals.TotalScore == best {
			winners = append(winners, winnerOf(cp, float64(best), time.Time{}))
		}
	}
	return winners
}

func bullseye(ctx Context) []Winner {
	var winners []Winner
	for _, cp := range ctx.Players {
		best := 0
		achieved := time.Time{}
		for _, pick := range cp.Approved {
			if pick.BirthDate == nil || pick.DeathDate == nil {
				continue
			}
			points := scoring.HitPoints(scoring.AgeAt(*pick.BirthDate, *pick.DeathDate))
			if points < 40 {
				continue
			}
			if achieved.IsZero() || pick.DeathDate.Before(achieved) {
				achieved = *pick.DeathDate
			}
			if points > best {
				best = points
			}
		}
		if best > 0 {
			winners = append(winners, winnerOf(cp, float64(best), achieved))
		}
	}
	return winners
}

func undertakerMetrics(ctx Context) []metric {
	var out []metric
	for _, cp := range ctx.Players {
		if len(cp.DeathDates) == 0 {
			continue
		}
		dates := cp.DeathDates
		out = append(out, metric{
			player: cp,
			value:  float64(len(dates)),
			achievedAt: func(threshold float64) time.Time {
				return dates[int(threshold)-1]
			},
		})
	}
	return out
}

func glassCannonMetrics(ctx Context) []metric {
	var out []metric
	for _, cp := range ctx.Players {
		if cp.Totals.Penalty >= 0 {
			continue
		}
		history := cp.History
		out = append(out, metric{
			player: cp,
			value:  float64(-cp.Totals.Penalty),
			achievedAt: func(threshold float64) time.Time {
				sum := 0
				for _, entry := range history {
					sum += entry.Delta
					if float64(-sum) >= threshold {
						return entry.At
					}
				}
				return time.Time{}
			},
		})
	}
	return out
}

func copycatMetrics(ctx Context) []metric {
	var out []metric
	for i, cp := range ctx.Players {
		best := 0
		for j, other := range ctx.Players {
			if i == j {
				continue
			}
			if overlap := pickOverlap(cp, other); overlap > best {
				best = overlap
			}
		}
		if best > 0 {
			out = append(out, metric{player: cp, value: float64(best)})
		}
	}
	return out
}

func loneWolfMetrics(ctx Context) []metric {
	holders := make(map[string]int)
	for _, cp := range ctx.Players {
		for key := range cp.PersonKeys {
			holders[key]++
		}
	}

	var out []metric
	for _, cp := range ctx.Players {
		if len(cp.PersonKeys) == 0 {
			continue
		}
		unique := 0
		for key := range cp.PersonKeys {
			if holders[key] == 1 {
				unique++
			}
		}
		out = append(out, metric{player: cp, value: float64(unique) / float64(len(cp.PersonKeys))})
	}
	return out
}

func highRiskPickerMetrics(ctx Context) []metric {
	var out []metric
	for _, cp := range ctx.Players {
		if cp.AvgPickAge > 0 {
			out = append(out, metric{player: cp, value: cp.AvgPickAge})
		}
	}
	return out
}

func sharpshooterMetrics(ctx Context) []metric {
	var out []metric
	for _, cp := range ctx.Players {
		type hit struct {
			points int
			date   time.Time
		}
		var hits []hit
		best := 0
		for _, pick := range cp.Approved {
			if pick.BirthDate == nil || pick.DeathDate == nil {
				continue
			}
			points := scoring.HitPoints(scoring.AgeAt(*pick.BirthDate, *pick.DeathDate))
			hits = append(hits, hit{points: points, date: *pick.DeathDate})
			if points > best {
				best = points
			}
		}
		if best == 0 {
			continue
		}
		out = append(out, metric{
			player: cp,
			value:  float64(best),
			achievedAt: func(threshold float64) time.Time {
				achieved := time.Time{}
				for _, h := range hits {
					if float64(h.points) < threshold {
						continue
					}
					if achieved.IsZero() || h.date.Before(achieved) {
						achieved = h.date
					}
				}
				return achieved
			},
		})
	}
	return out
}

func overachieverMetrics(ctx Context) []metric {
	var out []metric
	for _, cp := range ctx.Players {
		if cp.Totals.TotalScore > 0 {
			out = append(out, metric{player: cp, value: float64(cp.Totals.TotalScore)})
		}
	}
	return out
}

func psychicMetrics(ctx Context) []metric {
	var out []metric
	for _, cp := range ctx.Players {
		if len(cp.Approved) < 5 {
			continue
		}
		out = append(out, metric{player: cp, value: float64(cp.Totals.Hits) / float64(len(cp.Approved))})
	}
	return out
}

func cradleRobberMetrics(ctx Context) []metric {
	var out []metric
	for _, cp := range ctx.Players {
		youngest := 0.0
		found := false
		for _, pick := range cp.Approved {
			if pick.BirthDate == nil || pick.DeathDate != nil {
				continue
			}
			age := scoring.Years(*pick.BirthDate, ctx.SeasonStart)
			if !found || age < youngest {
				youngest = age
				found = true
			}
		}
		if found {
			out = append(out, metric{player: cp, value: youngest})
		}
	}
	return out
}

func collectorMetrics(ctx Context) []metric {
	var out []metric
	for _, cp := range ctx.Players {
		if len(cp.Approved) > 0 {
			out = append(out, metric{player: cp, value: float64(len(cp.Approved))})
		}
	}
	return out
}

func hotStreakMetrics(ctx Context) []metric {
	var out []metric
	for _, cp := range ctx.Players {
		months := make(map[int]struct{})
		for _, d := range cp.DeathDates {
			months[d.Year()*12+int(d.Month())] = struct{}{}
		}
		if len(months) == 0 {
			continue
		}

		longest := 0
		for month := range months {
			if _, prev := months[month-1]; prev {
				continue
			}
			run := 1
			for {
				if _, next := months[month+run]; !next {
					break
				}
				run++
			}
			if run > longest {
				longest = run
			}
		}
		out = append(out, metric{player: cp, value: float64(longest)})
	}
	return out
}
