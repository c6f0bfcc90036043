package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/morbidleague/deadpool/internal/infrastructure/repository/memory"
)

// BootstrapSeed loads the demo roster into an empty database. It is a no-op
// once any player row exists, so it is safe to run on every startup.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM players WHERE deleted_at IS NULL`); err != nil {
		return fmt.Errorf("count players for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, p := range memory.SeedPersons() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO persons (public_id, name, birth_date, death_date)
VALUES (:public_id, :name, :birth_date, :death_date)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id":  p.ID,
			"name":       p.Name,
			"birth_date": p.BirthDate,
			"death_date": p.DeathDate,
		})
		if err != nil {
			return fmt.Errorf("bind seed person %s query: %w", p.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed person %s: %w", p.ID, err)
		}
	}

	for _, p := range memory.SeedPlayers() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO players (public_id, name, is_active)
VALUES (:public_id, :name, :is_active)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id": p.ID,
			"name":      p.Name,
			"is_active": p.Active,
		})
		if err != nil {
			return fmt.Errorf("bind seed player %s query: %w", p.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed player %s: %w", p.ID, err)
		}

		for season, entry := range p.Entries {
			sqlQuery, args, err := sqlx.Named(`
INSERT INTO season_entries (player_public_id, season, is_active)
VALUES (:player_public_id, :season, :is_active)
ON CONFLICT (player_public_id, season) DO NOTHING`, map[string]any{
				"player_public_id": p.ID,
				"season":           season,
				"is_active":        entry.Active,
			})
			if err != nil {
				return fmt.Errorf("bind seed season entry %s/%s query: %w", p.ID, season, err)
			}
			sqlQuery = tx.Rebind(sqlQuery)
			if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
				return fmt.Errorf("seed season entry %s/%s: %w", p.ID, season, err)
			}

			for _, pick := range entry.Picks {
				sqlQuery, args, err := sqlx.Named(`
INSERT INTO picks (public_id, player_public_id, season, raw_name, normalized_name, status, person_public_id, birth_date, death_date)
VALUES (:public_id, :player_public_id, :season, :raw_name, :normalized_name, :status, :person_public_id, :birth_date, :death_date)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
					"public_id":        pick.ID,
					"player_public_id": p.ID,
					"season":           season,
					"raw_name":         pick.Raw,
					"normalized_name":  nullString(pick.NormalizedName),
					"status":           string(pick.Status),
					"person_public_id": nullString(pick.PersonID),
					"birth_date":       pick.BirthDate,
					"death_date":       pick.DeathDate,
				})
				if err != nil {
					return fmt.Errorf("bind seed pick %s query: %w", pick.ID, err)
				}
				sqlQuery = tx.Rebind(sqlQuery)
				if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
					return fmt.Errorf("seed pick %s: %w", pick.ID, err)
				}
			}
		}

		for _, entry := range p.ScoreHistory {
			sqlQuery, args, err := sqlx.Named(`
INSERT INTO score_history (player_public_id, delta, reason, recorded_at)
VALUES (:player_public_id, :delta, :reason, :recorded_at)`, map[string]any{
				"player_public_id": p.ID,
				"delta":            entry.Delta,
				"reason":           entry.Reason,
				"recorded_at":      entry.At.UTC(),
			})
			if err != nil {
				return fmt.Errorf("bind seed score history %s query: %w", p.ID, err)
			}
			sqlQuery = tx.Rebind(sqlQuery)
			if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
				return fmt.Errorf("seed score history %s: %w", p.ID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}

	return nil
}
