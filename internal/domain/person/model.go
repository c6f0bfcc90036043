package person

import (
	"fmt"
	"time"
)

// Person is a canonical celebrity record shared across all player picks.
// A nil DeathDate means the person is presumed alive.
type Person struct {
	ID        string
	Name      string
	BirthDate *time.Time
	DeathDate *time.Time
}

func (p Person) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("person id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("person name is required")
	}
	if p.BirthDate != nil && p.DeathDate != nil && p.DeathDate.Before(*p.BirthDate) {
		return fmt.Errorf("person death date precedes birth date")
	}

	return nil
}
