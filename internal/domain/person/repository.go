package person

import (
	"context"
	"time"
)

type Repository interface {
	List(ctx context.Context) ([]Person, error)
	GetByID(ctx context.Context, personID string) (Person, bool, error)
	Upsert(ctx context.Context, p Person) error
	SetDeathDate(ctx context.Context, personID string, deathDate time.Time) error
}
