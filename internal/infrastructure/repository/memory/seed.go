package memory

import (
	"time"

	"github.com/morbidleague/deadpool/internal/domain/person"
	"github.com/morbidleague/deadpool/internal/domain/player"
)

const (
	SeasonCurrent = "2026"

	PersonIDVernonTate     = "per-vernon-tate"
	PersonIDMarlaQuist     = "per-marla-quist"
	PersonIDDukeHollander  = "per-duke-hollander"
	PersonIDIvyCastellanos = "per-ivy-castellanos"
	PersonIDRexMontague    = "per-rex-montague"
	PersonIDSibylGrange    = "per-sibyl-grange"
)

// SeedPersons returns the demo celebrity roster. Vernon Tate and Duke
// Hollander are seeded as already deceased so a fresh instance has hits
// on the leaderboard.
func SeedPersons() []person.Person {
	return []person.Person{
		{ID: PersonIDVernonTate, Name: "Vernon Tate", BirthDate: seedDate(1938, 4, 12), DeathDate: seedDate(2026, 1, 19)},
		{ID: PersonIDMarlaQuist, Name: "Marla Quist", BirthDate: seedDate(1947, 9, 3)},
		{ID: PersonIDDukeHollander, Name: "Duke Hollander", BirthDate: seedDate(1941, 11, 30), DeathDate: seedDate(2026, 3, 7)},
		{ID: PersonIDIvyCastellanos, Name: "Ivy Castellanos", BirthDate: seedDate(1959, 6, 21)},
		{ID: PersonIDRexMontague, Name: "Rex Montague", BirthDate: seedDate(1933, 2, 14)},
		{ID: PersonIDSibylGrange, Name: "Sibyl Grange", BirthDate: seedDate(1971, 12, 5)},
	}
}

func SeedPlayers() []player.Player {
	return []player.Player{
		{
			ID:     "ply-ghoul",
			Name:   "Gallows Gwen",
			Active: true,
			Entries: map[string]player.SeasonEntry{
				SeasonCurrent: {
					Active: true,
					Picks: []player.Pick{
						seedApprovedPick("pick-gwen-1", "Vernon Tate", PersonIDVernonTate, seedDate(1938, 4, 12), seedDate(2026, 1, 19)),
						seedApprovedPick("pick-gwen-2", "Marla Quist", PersonIDMarlaQuist, seedDate(1947, 9, 3), nil),
						seedApprovedPick("pick-gwen-3", "Rex Montague", PersonIDRexMontague, seedDate(1933, 2, 14), nil),
					},
				},
			},
		},
		{
			ID:     "ply-reaper",
			Name:   "Morbid Mort",
			Active: true,
			Entries: map[string]player.SeasonEntry{
				SeasonCurrent: {
					Active: true,
					Picks: []player.Pick{
						seedApprovedPick("pick-mort-1", "Duke Hollander", PersonIDDukeHollander, seedDate(1941, 11, 30), seedDate(2026, 3, 7)),
						seedApprovedPick("pick-mort-2", "Vernon Tate", PersonIDVernonTate, seedDate(1938, 4, 12), seedDate(2026, 1, 19)),
						{
							ID:     "pick-mort-3",
							Raw:    "Sibyl Grange",
							Status: player.PickStatusPending,
						},
					},
				},
			},
			ScoreHistory: []player.ScoreHistoryEntry{
				{Delta: -10, At: time.Date(2026, 2, 2, 9, 0, 0, 0, time.UTC), Reason: "late roster submission"},
			},
		},
		{
			ID:     "ply-casket",
			Name:   "Casket Case",
			Active: true,
			Entries: map[string]player.SeasonEntry{
				SeasonCurrent: {
					Active: true,
					Picks: []player.Pick{
						seedApprovedPick("pick-casket-1", "Ivy Castellanos", PersonIDIvyCastellanos, seedDate(1959, 6, 21), nil),
					},
				},
			},
		},
	}
}

func seedApprovedPick(id, name, personID string, birth, death *time.Time) player.Pick {
	return player.Pick{
		ID:             id,
		Raw:            name,
		NormalizedName: normalizeSeedName(name),
		Status:         player.PickStatusApproved,
		BirthDate:      birth,
		DeathDate:      death,
		PersonID:       personID,
	}
}

func normalizeSeedName(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		if r >= 'A' && r <= 'Z' {
			r += 'a' - 'A'
		}
		out = append(out, r)
	}
	return string(out)
}

func seedDate(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}
