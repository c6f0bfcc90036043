package cache

import (
	"context"
	"time"

	"github.com/morbidleague/deadpool/internal/domain/person"
	"github.com/morbidleague/deadpool/internal/domain/player"
	basecache "github.com/morbidleague/deadpool/internal/platform/cache"
)

// PlayerRepository is a read-through cache in front of the persistent player
// store. Writes go straight through and drop every cached player entry, the
// roster is small enough that fine-grained invalidation is not worth it.
type PlayerRepository struct {
	next  player.Repository
	cache *basecache.Store
}

func NewPlayerRepository(next player.Repository, cache *basecache.Store) *PlayerRepository {
	return &PlayerRepository{next: next, cache: cache}
}

func (r *PlayerRepository) List(ctx context.Context) ([]player.Player, error) {
	v, err := r.cache.GetOrLoad(ctx, "repo:player:list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return items, nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]player.Player)
	return items, nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID string) (player.Player, bool, error) {
	key := "repo:player:id:" + playerID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, playerID)
		if err != nil {
			return nil, err
		}
		return cachedPlayerByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return player.Player{}, false, err
	}

	cached, _ := v.(cachedPlayerByID)
	return cached.value, cached.exists, nil
}

func (r *PlayerRepository) UpdatePick(ctx context.Context, playerID, season string, pick player.Pick) error {
	if err := r.next.UpdatePick(ctx, playerID, season, pick); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, "repo:player:")
	return nil
}

func (r *PlayerRepository) AppendScoreHistory(ctx context.Context, playerID string, entry player.ScoreHistoryEntry) error {
	if err := r.next.AppendScoreHistory(ctx, playerID, entry); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, "repo:player:")
	return nil
}

func (r *PlayerRepository) SetPickDeathDates(ctx context.Context, personID string, deathDate time.Time) error {
	if err := r.next.SetPickDeathDates(ctx, personID, deathDate); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, "repo:player:")
	return nil
}

type cachedPlayerByID struct {
	value  player.Player
	exists bool
}

type PersonRepository struct {
	next  person.Repository
	cache *basecache.Store
}

func NewPersonRepository(next person.Repository, cache *basecache.Store) *PersonRepository {
	return &PersonRepository{next: next, cache: cache}
}

func (r *PersonRepository) List(ctx context.Context) ([]person.Person, error) {
	v, err := r.cache.GetOrLoad(ctx, "repo:person:list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return items, nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]person.Person)
	return items, nil
}

func (r *PersonRepository) GetByID(ctx context.Context, personID string) (person.Person, bool, error) {
	key := "repo:person:id:" + personID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, personID)
		if err != nil {
			return nil, err
		}
		return cachedPersonByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return person.Person{}, false, err
	}

	cached, _ := v.(cachedPersonByID)
	return cached.value, cached.exists, nil
}

func (r *PersonRepository) Upsert(ctx context.Context, p person.Person) error {
	if err := r.next.Upsert(ctx, p); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, "repo:person:")
	return nil
}

func (r *PersonRepository) SetDeathDate(ctx context.Context, personID string, deathDate time.Time) error {
	if err := r.next.SetDeathDate(ctx, personID, deathDate); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, "repo:person:")
	return nil
}

type cachedPersonByID struct {
	value  person.Person
	exists bool
}
