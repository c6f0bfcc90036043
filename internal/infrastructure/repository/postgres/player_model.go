package postgres

import (
	"database/sql"
	"time"

	"github.com/morbidleague/deadpool/internal/domain/player"
)

type playerTableModel struct {
	ID        int64      `db:"id"`
	PublicID  string     `db:"public_id"`
	Name      string     `db:"name"`
	IsActive  bool       `db:"is_active"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

type seasonEntryTableModel struct {
	ID             int64      `db:"id"`
	PlayerPublicID string     `db:"player_public_id"`
	Season         string     `db:"season"`
	IsActive       bool       `db:"is_active"`
	DeletedAt      *time.Time `db:"deleted_at"`
}

type pickTableModel struct {
	ID             int64          `db:"id"`
	PublicID       string         `db:"public_id"`
	PlayerPublicID string         `db:"player_public_id"`
	Season         string         `db:"season"`
	RawName        string         `db:"raw_name"`
	NormalizedName sql.NullString `db:"normalized_name"`
	Status         string         `db:"status"`
	PersonPublicID sql.NullString `db:"person_public_id"`
	BirthDate      *time.Time     `db:"birth_date"`
	DeathDate      *time.Time     `db:"death_date"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
	DeletedAt      *time.Time     `db:"deleted_at"`
}

type scoreHistoryTableModel struct {
	ID             int64     `db:"id"`
	PlayerPublicID string    `db:"player_public_id"`
	Delta          int       `db:"delta"`
	Reason         string    `db:"reason"`
	RecordedAt     time.Time `db:"recorded_at"`
}

type pickUpdateModel struct {
	RawName        string         `db:"raw_name"`
	NormalizedName sql.NullString `db:"normalized_name"`
	Status         string         `db:"status"`
	PersonPublicID sql.NullString `db:"person_public_id"`
	BirthDate      *time.Time     `db:"birth_date"`
	DeathDate      *time.Time     `db:"death_date"`
}

type scoreHistoryInsertModel struct {
	PlayerPublicID string    `db:"player_public_id"`
	Delta          int       `db:"delta"`
	Reason         string    `db:"reason"`
	RecordedAt     time.Time `db:"recorded_at"`
}

func pickFromRow(row pickTableModel) player.Pick {
	return player.Pick{
		ID:             row.PublicID,
		Raw:            row.RawName,
		NormalizedName: row.NormalizedName.String,
		Status:         player.PickStatus(row.Status),
		BirthDate:      copyDatePtr(row.BirthDate),
		DeathDate:      copyDatePtr(row.DeathDate),
		PersonID:       row.PersonPublicID.String,
	}
}

func scoreHistoryFromRow(row scoreHistoryTableModel) player.ScoreHistoryEntry {
	return player.ScoreHistoryEntry{
		Delta:  row.Delta,
		At:     row.RecordedAt,
		Reason: row.Reason,
	}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func copyDatePtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	out := *t
	return &out
}
