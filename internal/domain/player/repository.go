package player

import (
	"context"
	"time"
)

type Repository interface {
	List(ctx context.Context) ([]Player, error)
	GetByID(ctx context.Context, playerID string) (Player, bool, error)
	UpdatePick(ctx context.Context, playerID, season string, pick Pick) error
	AppendScoreHistory(ctx context.Context, playerID string, entry ScoreHistoryEntry) error

	// SetPickDeathDates stamps the confirmed death date onto every pick
	// linked to the person, across all players and seasons.
	SetPickDeathDates(ctx context.Context, personID string, deathDate time.Time) error
}
