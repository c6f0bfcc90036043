package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/morbidleague/deadpool/internal/domain/player"
	qb "github.com/morbidleague/deadpool/internal/platform/querybuilder"
)

// PlayerRepository loads the player aggregate from four tables: players,
// season_entries, picks, and score_history. List and GetByID assemble the
// full aggregate because scoring and badge evaluation always need the whole
// pick list anyway.
type PlayerRepository struct {
	db *sqlx.DB
}

var playerSelectColumns = []string{
	"id",
	"public_id",
	"name",
	"is_active",
	"created_at",
	"updated_at",
	"deleted_at",
}

var pickSelectColumns = []string{
	"id",
	"public_id",
	"player_public_id",
	"season",
	"raw_name",
	"normalized_name",
	"status",
	"person_public_id",
	"birth_date",
	"death_date",
	"created_at",
	"updated_at",
	"deleted_at",
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) List(ctx context.Context) ([]player.Player, error) {
	query, args, err := qb.Select(playerSelectColumns...).From("players").
		Where(qb.IsNull("deleted_at")).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players: %w", err)
	}
	if len(rows) == 0 {
		return []player.Player{}, nil
	}

	ids := make([]any, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.PublicID)
	}

	entries, err := r.selectSeasonEntries(ctx, ids)
	if err != nil {
		return nil, err
	}
	picks, err := r.selectPicks(ctx, ids)
	if err != nil {
		return nil, err
	}
	history, err := r.selectScoreHistory(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, assemblePlayer(row, entries[row.PublicID], picks[row.PublicID], history[row.PublicID]))
	}
	return out, nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID string) (player.Player, bool, error) {
	query, args, err := qb.Select(playerSelectColumns...).From("players").
		Where(
			qb.Eq("public_id", playerID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build get player query: %w", err)
	}

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("get player: %w", err)
	}

	ids := []any{row.PublicID}
	entries, err := r.selectSeasonEntries(ctx, ids)
	if err != nil {
		return player.Player{}, false, err
	}
	picks, err := r.selectPicks(ctx, ids)
	if err != nil {
		return player.Player{}, false, err
	}
	history, err := r.selectScoreHistory(ctx, ids)
	if err != nil {
		return player.Player{}, false, err
	}

	return assemblePlayer(row, entries[row.PublicID], picks[row.PublicID], history[row.PublicID]), true, nil
}

func (r *PlayerRepository) UpdatePick(ctx context.Context, playerID, season string, pick player.Pick) error {
	query, args, err := qb.Update("picks").
		Set("raw_name", pick.Raw).
		Set("normalized_name", nullString(pick.NormalizedName)).
		Set("status", string(pick.Status)).
		Set("person_public_id", nullString(pick.PersonID)).
		Set("birth_date", pick.BirthDate).
		Set("death_date", pick.DeathDate).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("public_id", pick.ID),
			qb.Eq("player_public_id", playerID),
			qb.Eq("season", season),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update pick query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update pick: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected update pick: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update pick %s: not found", pick.ID)
	}

	return nil
}

func (r *PlayerRepository) AppendScoreHistory(ctx context.Context, playerID string, entry player.ScoreHistoryEntry) error {
	insertModel := scoreHistoryInsertModel{
		PlayerPublicID: playerID,
		Delta:          entry.Delta,
		Reason:         entry.Reason,
		RecordedAt:     entry.At.UTC(),
	}
	query, args, err := qb.InsertModel("score_history", insertModel, "")
	if err != nil {
		return fmt.Errorf("build append score history query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("append score history: %w", err)
	}

	return nil
}

func (r *PlayerRepository) SetPickDeathDates(ctx context.Context, personID string, deathDate time.Time) error {
	query, args, err := qb.Update("picks").
		Set("death_date", deathDate.UTC()).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("person_public_id", personID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build set pick death dates query: %w", err)
	}

	// Zero affected rows is fine, nobody may have picked the person.
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("set pick death dates: %w", err)
	}

	return nil
}

func (r *PlayerRepository) selectSeasonEntries(ctx context.Context, playerIDs []any) (map[string][]seasonEntryTableModel, error) {
	query, args, err := qb.Select("id", "player_public_id", "season", "is_active", "deleted_at").
		From("season_entries").
		Where(
			qb.In("player_public_id", playerIDs),
			qb.IsNull("deleted_at"),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select season entries query: %w", err)
	}

	var rows []seasonEntryTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select season entries: %w", err)
	}

	out := make(map[string][]seasonEntryTableModel, len(playerIDs))
	for _, row := range rows {
		out[row.PlayerPublicID] = append(out[row.PlayerPublicID], row)
	}
	return out, nil
}

func (r *PlayerRepository) selectPicks(ctx context.Context, playerIDs []any) (map[string][]pickTableModel, error) {
	query, args, err := qb.Select(pickSelectColumns...).From("picks").
		Where(
			qb.In("player_public_id", playerIDs),
			qb.IsNull("deleted_at"),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select picks query: %w", err)
	}

	var rows []pickTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select picks: %w", err)
	}

	out := make(map[string][]pickTableModel, len(playerIDs))
	for _, row := range rows {
		out[row.PlayerPublicID] = append(out[row.PlayerPublicID], row)
	}
	return out, nil
}

func (r *PlayerRepository) selectScoreHistory(ctx context.Context, playerIDs []any) (map[string][]scoreHistoryTableModel, error) {
	query, args, err := qb.Select("id", "player_public_id", "delta", "reason", "recorded_at").
		From("score_history").
		Where(qb.In("player_public_id", playerIDs)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select score history query: %w", err)
	}

	var rows []scoreHistoryTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select score history: %w", err)
	}

	out := make(map[string][]scoreHistoryTableModel, len(playerIDs))
	for _, row := range rows {
		out[row.PlayerPublicID] = append(out[row.PlayerPublicID], row)
	}
	return out, nil
}

func assemblePlayer(row playerTableModel, entryRows []seasonEntryTableModel, pickRows []pickTableModel, historyRows []scoreHistoryTableModel) player.Player {
	entries := make(map[string]player.SeasonEntry, len(entryRows))
	for _, entryRow := range entryRows {
		entries[entryRow.Season] = player.SeasonEntry{Active: entryRow.IsActive}
	}
	for _, pickRow := range pickRows {
		entry, ok := entries[pickRow.Season]
		if !ok {
			// Picks without a season entry row belong to an abandoned
			// season, treat the entry as inactive.
			entry = player.SeasonEntry{}
		}
		entry.Picks = append(entry.Picks, pickFromRow(pickRow))
		entries[pickRow.Season] = entry
	}

	history := make([]player.ScoreHistoryEntry, 0, len(historyRows))
	for _, historyRow := range historyRows {
		history = append(history, scoreHistoryFromRow(historyRow))
	}

	return player.Player{
		ID:           row.PublicID,
		Name:         row.Name,
		Active:       row.IsActive,
		Entries:      entries,
		ScoreHistory: history,
	}
}
