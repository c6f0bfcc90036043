package badge

import (
	"reflect"
	"testing"
	"time"

	"github.com/morbidleague/deadpool/internal/domain/player"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func datePtr(year int, month time.Month, day int) *time.Time {
	d := date(year, month, day)
	return &d
}

func approvedPick(id, personID string, birth, death *time.Time) player.Pick {
	return player.Pick{
		ID:             id,
		Raw:            personID,
		NormalizedName: personID,
		PersonID:       personID,
		Status:         player.PickStatusApproved,
		BirthDate:      birth,
		DeathDate:      death,
	}
}

func poolPlayer(id string, picks ...player.Pick) player.Player {
	return player.Player{
		ID:     id,
		Name:   id,
		Active: true,
		Entries: map[string]player.SeasonEntry{
			"2026": {Active: true, Picks: picks},
		},
	}
}

func resultByID(t *testing.T, results []Result, id string) Result {
	t.Helper()
	for _, r := range results {
		if r.ID == id {
			return r
		}
	}
	t.Fatalf("badge %s missing from results", id)
	return Result{}
}

func winnerIDs(winners []Winner) []string {
	out := make([]string, 0, len(winners))
	for _, w := range winners {
		out = append(out, w.ID)
	}
	return out
}

func TestEvaluate_FirstBloodTies(t *testing.T) {
	now := date(2026, time.August, 1)
	players := []player.Player{
		poolPlayer("alice", approvedPick("a1", "celeb-1", datePtr(1950, time.January, 1), datePtr(2026, time.February, 1))),
		poolPlayer("bob", approvedPick("b1", "celeb-2", datePtr(1940, time.January, 1), datePtr(2026, time.February, 1))),
		poolPlayer("carol", approvedPick("c1", "celeb-3", datePtr(1940, time.January, 1), datePtr(2026, time.March, 1))),
	}

	results, err := Evaluate(BuildContext(players, "2026", now, nil))
	if err != nil {
		t.Fatalf("Evaluate error: %v", err)
	}

	firstBlood := resultByID(t, results, "first_blood")
	if !firstBlood.Unlocked {
		t.Fatal("first_blood should be unlocked")
	}
	got := winnerIDs(firstBlood.Players)
	if len(got) != 2 {
		t.Fatalf("first_blood winners = %v, want both tied players", got)
	}
	for _, id := range got {
		if id == "carol" {
			t.Fatal("carol has a strictly later death and must not win first_blood")
		}
	}
}

func TestEvaluate_FirstBloodSingleWinner(t *testing.T) {
	now := date(2026, time.August, 1)
	players := []player.Player{
		poolPlayer("alice", approvedPick("a1", "celeb-1", datePtr(1950, time.January, 1), datePtr(2026, time.January, 10))),
		poolPlayer("bob", approvedPick("b1", "celeb-2", datePtr(1940, time.January, 1), datePtr(2026, time.February, 1))),
	}

	results, err := Evaluate(BuildContext(players, "2026", now, nil))
	if err != nil {
		t.Fatalf("Evaluate error: %v", err)
	}

	firstBlood := resultByID(t, results, "first_blood")
	if ids := winnerIDs(firstBlood.Players); len(ids) != 1 || ids[0] != "alice" {
		t.Fatalf("first_blood winners = %v, want [alice]", ids)
	}
}

func TestEvaluate_UndertakerTierCumulativity(t *testing.T) {
	now := date(2026, time.August, 1)

	picks := make([]player.Pick, 0, 5)
	for i := 0; i < 5; i++ {
		picks = append(picks, approvedPick(
			"p"+string(rune('a'+i)),
			"celeb-"+string(rune('a'+i)),
			datePtr(1940, time.January, 1),
			datePtr(2026, time.Month(i+1), 10),
		))
	}
	players := []player.Player{poolPlayer("alice", picks...)}

	results, err := Evaluate(BuildContext(players, "2026", now, nil))
	if err != nil {
		t.Fatalf("Evaluate error: %v", err)
	}

	undertaker := resultByID(t, results, "undertaker")
	if !undertaker.GlobalUnlocked {
		t.Fatal("undertaker should be globally unlocked")
	}

	for _, tier := range []Tier{TierBronze, TierSilver, TierGold} {
		tierResult := undertaker.Tiers[tier]
		if !tierResult.Unlocked || len(tierResult.Players) != 1 {
			t.Fatalf("tier %s should hold the 5-kill player, got %+v", tier, tierResult)
		}
		if tierResult.Players[0].Value != 5 {
			t.Fatalf("tier %s value = %v want 5", tier, tierResult.Players[0].Value)
		}
	}
	if prestige := undertaker.Tiers[TierPrestige]; prestige.Unlocked || len(prestige.Players) != 0 {
		t.Fatalf("prestige should be locked at 5 kills, got %+v", prestige)
	}

	// Count-threshold badges date each tier at the crossing kill.
	bronze := undertaker.Tiers[TierBronze].Players[0]
	gold := undertaker.Tiers[TierGold].Players[0]
	if !bronze.AchievedAt.Equal(date(2026, time.January, 10)) {
		t.Fatalf("bronze achieved at %v, want first kill date", bronze.AchievedAt)
	}
	if !gold.AchievedAt.Equal(date(2026, time.May, 10)) {
		t.Fatalf("gold achieved at %v, want fifth kill date", gold.AchievedAt)
	}
}

func TestEvaluate_MassCasualtyThreshold(t *testing.T) {
	now := date(2026, time.August, 1)

	build := func(holders int) Context {
		players := make([]player.Player, 0, 10)
		for i := 0; i < 10; i++ {
			id := "player-" + string(rune('a'+i))
			if i < holders {
				players = append(players, poolPlayer(id,
					approvedPick(id+"-shared", "shared-celeb", datePtr(1950, time.January, 1), datePtr(2026, time.April, 1))))
				continue
			}
			players = append(players, poolPlayer(id,
				approvedPick(id+"-own", "celeb-"+id, datePtr(1950, time.January, 1), nil)))
		}
		return BuildContext(players, "2026", now, nil)
	}

	results, err := Evaluate(build(5))
	if err != nil {
		t.Fatalf("Evaluate error: %v", err)
	}
	if massCasualty := resultByID(t, results, "mass_casualty"); !massCasualty.Unlocked || len(massCasualty.Players) != 5 {
		t.Fatalf("5/10 holders must trigger mass_casualty, got %+v", massCasualty)
	}

	results, err = Evaluate(build(4))
	if err != nil {
		t.Fatalf("Evaluate error: %v", err)
	}
	if massCasualty := resultByID(t, results, "mass_casualty"); massCasualty.Unlocked {
		t.Fatal("4/10 holders must not trigger mass_casualty")
	}
}

func TestEvaluate_Idempotence(t *testing.T) {
	now := date(2026, time.August, 1)
	players := []player.Player{
		poolPlayer("alice",
			approvedPick("a1", "celeb-1", datePtr(1950, time.January, 1), datePtr(2026, time.January, 3)),
			approvedPick("a2", "celeb-2", datePtr(1930, time.June, 1), datePtr(2026, time.January, 8)),
			approvedPick("a3", "celeb-3", datePtr(1936, time.January, 1), nil),
		),
		poolPlayer("bob",
			approvedPick("b1", "celeb-2", datePtr(1930, time.June, 1), datePtr(2026, time.January, 8)),
			approvedPick("b2", "celeb-4", datePtr(1970, time.January, 1), nil),
		),
	}
	players[0].ScoreHistory = []player.ScoreHistoryEntry{
		{Delta: -2, At: date(2026, time.February, 1), Reason: "rule violation"},
		{Delta: -1, At: date(2026, time.March, 1), Reason: "late swap"},
	}

	snapshot := BuildContext(players, "2026", now, nil)

	first, err := Evaluate(snapshot)
	if err != nil {
		t.Fatalf("first Evaluate error: %v", err)
	}
	second, err := Evaluate(snapshot)
	if err != nil {
		t.Fatalf("second Evaluate error: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Fatal("evaluating the same snapshot twice produced different results")
	}
}

func TestEvaluateCatalog_IsolatesFailingBadge(t *testing.T) {
	defs := []Definition{
		single("steady", "Steady", "always evaluates", 10, func(Context) []Winner { return nil }),
		{
			ID:          "broken",
			Name:        "Broken",
			Description: "panics on purpose",
			Kind:        KindSingle,
			Order:       20,
			Evaluate: func(Context) (Result, error) {
				panic("boom")
			},
		},
		single("trailing", "Trailing", "still evaluates after a failure", 30, func(Context) []Winner { return nil }),
	}

	results, err := EvaluateCatalog(Context{}, defs)
	if err == nil {
		t.Fatal("expected an error reporting the failing badge")
	}
	if len(results) != 2 {
		t.Fatalf("results = %d, want the two healthy badges", len(results))
	}
	if results[0].ID != "steady" || results[1].ID != "trailing" {
		t.Fatalf("unexpected surviving badges: %s, %s", results[0].ID, results[1].ID)
	}
}

func TestEvaluateCatalog_OrdersByOrderKey(t *testing.T) {
	defs := []Definition{
		single("second", "Second", "", 20, func(Context) []Winner { return nil }),
		single("first", "First", "", 10, func(Context) []Winner { return nil }),
	}

	results, err := EvaluateCatalog(Context{}, defs)
	if err != nil {
		t.Fatalf("EvaluateCatalog error: %v", err)
	}
	if results[0].ID != "first" || results[1].ID != "second" {
		t.Fatalf("unexpected order: %s, %s", results[0].ID, results[1].ID)
	}
}

func TestSortWinners(t *testing.T) {
	winners := []Winner{
		{PlayerRef: PlayerRef{ID: "undated-low", Name: "Zoe"}, LeaderboardScore: 10},
		{PlayerRef: PlayerRef{ID: "dated", Name: "Ann"}, AchievedAt: date(2026, time.March, 1), LeaderboardScore: 1},
		{PlayerRef: PlayerRef{ID: "undated-high", Name: "Amy"}, LeaderboardScore: 50},
		{PlayerRef: PlayerRef{ID: "undated-tie", Name: "Ben"}, LeaderboardScore: 10},
	}

	sortWinners(winners)

	got := winnerIDs(winners)
	want := []string{"dated", "undated-high", "undated-tie", "undated-low"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("sort order = %v want %v", got, want)
	}
}

func TestSortWinners_FullTieFallsBackToID(t *testing.T) {
	// Same achievement date, score, and display name. The winner slice is
	// often gathered from map iteration, so the id key must pin the order
	// regardless of input order.
	at := date(2026, time.April, 1)
	mk := func(id string) Winner {
		return Winner{PlayerRef: PlayerRef{ID: id, Name: "Sam"}, AchievedAt: at, LeaderboardScore: 12}
	}

	forward := []Winner{mk("player-a"), mk("player-b")}
	reversed := []Winner{mk("player-b"), mk("player-a")}
	sortWinners(forward)
	sortWinners(reversed)

	want := []string{"player-a", "player-b"}
	if got := winnerIDs(forward); !reflect.DeepEqual(got, want) {
		t.Fatalf("forward order = %v want %v", got, want)
	}
	if got := winnerIDs(reversed); !reflect.DeepEqual(got, want) {
		t.Fatalf("reversed order = %v want %v", got, want)
	}
}
