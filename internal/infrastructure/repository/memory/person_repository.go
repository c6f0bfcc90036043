package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/morbidleague/deadpool/internal/domain/person"
)

type PersonRepository struct {
	mu      sync.RWMutex
	persons map[string]person.Person
	order   []string
}

func NewPersonRepository(persons []person.Person) *PersonRepository {
	stored := make(map[string]person.Person, len(persons))
	order := make([]string, 0, len(persons))
	for _, p := range persons {
		if _, exists := stored[p.ID]; !exists {
			order = append(order, p.ID)
		}
		stored[p.ID] = clonePerson(p)
	}

	return &PersonRepository{
		persons: stored,
		order:   order,
	}
}

func (r *PersonRepository) List(_ context.Context) ([]person.Person, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]person.Person, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, clonePerson(r.persons[id]))
	}
	return out, nil
}

func (r *PersonRepository) GetByID(_ context.Context, personID string) (person.Person, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.persons[personID]
	if !ok {
		return person.Person{}, false, nil
	}
	return clonePerson(p), true, nil
}

func (r *PersonRepository) Upsert(_ context.Context, p person.Person) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.persons[p.ID]; !exists {
		r.order = append(r.order, p.ID)
	}
	r.persons[p.ID] = clonePerson(p)
	return nil
}

func (r *PersonRepository) SetDeathDate(_ context.Context, personID string, deathDate time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.persons[personID]
	if !ok {
		return fmt.Errorf("person %s not found", personID)
	}
	d := deathDate
	p.DeathDate = &d
	r.persons[personID] = p
	return nil
}

func clonePerson(p person.Person) person.Person {
	out := p
	out.BirthDate = cloneDate(p.BirthDate)
	out.DeathDate = cloneDate(p.DeathDate)
	return out
}
