package postgres

import (
	"time"

	"github.com/morbidleague/deadpool/internal/domain/person"
)

type personTableModel struct {
	ID        int64      `db:"id"`
	PublicID  string     `db:"public_id"`
	Name      string     `db:"name"`
	BirthDate *time.Time `db:"birth_date"`
	DeathDate *time.Time `db:"death_date"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

type personInsertModel struct {
	PublicID  string     `db:"public_id"`
	Name      string     `db:"name"`
	BirthDate *time.Time `db:"birth_date"`
	DeathDate *time.Time `db:"death_date"`
}

func personFromRow(row personTableModel) person.Person {
	return person.Person{
		ID:        row.PublicID,
		Name:      row.Name,
		BirthDate: copyDatePtr(row.BirthDate),
		DeathDate: copyDatePtr(row.DeathDate),
	}
}
