package badge

import "time"

// Kind discriminates the two badge result shapes.
type Kind string

const (
	KindSingle Kind = "single"
	KindTiered Kind = "tiered"
)

// Tier is one of the four increasing achievement levels of a tiered badge.
type Tier string

const (
	TierBronze   Tier = "bronze"
	TierSilver   Tier = "silver"
	TierGold     Tier = "gold"
	TierPrestige Tier = "prestige"
)

// Tiers lists all tiers in ascending threshold order.
var Tiers = []Tier{TierBronze, TierSilver, TierGold, TierPrestige}

// PlayerRef identifies a winning player in a badge result.
type PlayerRef struct {
	ID   string
	Name string
}

// Winner is one qualifying player inside a badge or tier player list.
// AchievedAt is zero for badges without a natural achievement date; such
// entries sort after dated ones via the far-future sentinel.
type Winner struct {
	PlayerRef
	Value            float64
	AchievedAt       time.Time
	LeaderboardScore int
}

// TierResult holds the outcome of a single tier of a tiered badge.
type TierResult struct {
	Unlocked bool
	Players  []Winner
}

// Result is the uniform evaluation output for one badge. Single badges fill
// Unlocked/Players; tiered badges fill GlobalUnlocked/Tiers. Tier membership
// is cumulative: a player clearing the gold threshold also appears in the
// bronze and silver lists.
type Result struct {
	ID             string
	Name           string
	Description    string
	Kind           Kind
	Unlocked       bool
	Players        []Winner
	GlobalUnlocked bool
	Tiers          map[Tier]TierResult
}

// Definition is one catalog entry: a self-describing badge carrying its own
// pure evaluator over the shared context.
type Definition struct {
	ID          string
	Name        string
	Description string
	Kind        Kind
	Order       int
	Evaluate    func(Context) (Result, error)
}

func (d Definition) singleResult(winners []Winner) Result {
	sortWinners(winners)
	return Result{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Kind:        KindSingle,
		Unlocked:    len(winners) > 0,
		Players:     winners,
	}
}

func (d Definition) tieredResult(tiers map[Tier]TierResult) Result {
	global := false
	for _, tier := range tiers {
		if tier.Unlocked {
			global = true
			break
		}
	}
	return Result{
		ID:             d.ID,
		Name:           d.Name,
		Description:    d.Description,
		Kind:           KindTiered,
		GlobalUnlocked: global,
		Tiers:          tiers,
	}
}
