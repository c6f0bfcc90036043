package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/morbidleague/deadpool/internal/domain/person"
	qb "github.com/morbidleague/deadpool/internal/platform/querybuilder"
)

type PersonRepository struct {
	db *sqlx.DB
}

var personSelectColumns = []string{
	"id",
	"public_id",
	"name",
	"birth_date",
	"death_date",
	"created_at",
	"updated_at",
	"deleted_at",
}

func NewPersonRepository(db *sqlx.DB) *PersonRepository {
	return &PersonRepository{db: db}
}

func (r *PersonRepository) List(ctx context.Context) ([]person.Person, error) {
	query, args, err := qb.Select(personSelectColumns...).From("persons").
		Where(qb.IsNull("deleted_at")).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select persons query: %w", err)
	}

	var rows []personTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select persons: %w", err)
	}

	out := make([]person.Person, 0, len(rows))
	for _, row := range rows {
		out = append(out, personFromRow(row))
	}
	return out, nil
}

func (r *PersonRepository) GetByID(ctx context.Context, personID string) (person.Person, bool, error) {
	query, args, err := personBaseSelectBuilder().
		Where(
			qb.Eq("public_id", personID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return person.Person{}, false, fmt.Errorf("build get person query: %w", err)
	}

	var row personTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isBindParameterMismatch(err) || isUnnamedPreparedStatementMissing(err) {
			return r.getByIDSingleParam(ctx, personID)
		}
		if isNotFound(err) {
			return person.Person{}, false, nil
		}
		return person.Person{}, false, fmt.Errorf("get person: %w", err)
	}

	return personFromRow(row), true, nil
}

// getByIDSingleParam retries the lookup with the id packed into a single
// array parameter, for transaction pooling proxies that mangle multi-bind
// prepared statements.
func (r *PersonRepository) getByIDSingleParam(ctx context.Context, personID string) (person.Person, bool, error) {
	query, _, err := personBaseSelectBuilder().
		Where(
			qb.Expr("public_id = ($1::text[])[1]"),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return person.Person{}, false, fmt.Errorf("build get person single param fallback query: %w", err)
	}

	var row personTableModel
	if err := r.db.GetContext(ctx, &row, query, pq.Array([]string{personID})); err != nil {
		if isBindParameterMismatch(err) || isUnnamedPreparedStatementMissing(err) {
			return r.getByIDLiteral(ctx, personID)
		}
		if isNotFound(err) {
			return person.Person{}, false, nil
		}
		return person.Person{}, false, fmt.Errorf("get person fallback: %w", err)
	}

	return personFromRow(row), true, nil
}

// getByIDLiteral is the last-resort lookup with the id inlined as a quoted
// literal, so the statement carries no bind parameters at all.
func (r *PersonRepository) getByIDLiteral(ctx context.Context, personID string) (person.Person, bool, error) {
	query, _, err := personBaseSelectBuilder().
		Where(
			qb.EqLiteral("public_id", personID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return person.Person{}, false, fmt.Errorf("build get person literal fallback query: %w", err)
	}

	var row personTableModel
	if err := r.db.GetContext(ctx, &row, query); err != nil {
		if isNotFound(err) {
			return person.Person{}, false, nil
		}
		return person.Person{}, false, fmt.Errorf("get person literal fallback: %w", err)
	}

	return personFromRow(row), true, nil
}

func (r *PersonRepository) Upsert(ctx context.Context, p person.Person) error {
	insertModel := personInsertModel{
		PublicID:  p.ID,
		Name:      p.Name,
		BirthDate: p.BirthDate,
		DeathDate: p.DeathDate,
	}
	query, args, err := qb.InsertModel("persons", insertModel, `ON CONFLICT (public_id)
DO UPDATE SET
    name = EXCLUDED.name,
    birth_date = EXCLUDED.birth_date,
    death_date = EXCLUDED.death_date,
    updated_at = NOW(),
    deleted_at = NULL`)
	if err != nil {
		return fmt.Errorf("build upsert person query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert person: %w", err)
	}

	return nil
}

func (r *PersonRepository) SetDeathDate(ctx context.Context, personID string, deathDate time.Time) error {
	query, args, err := qb.Update("persons").
		Set("death_date", deathDate.UTC()).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("public_id", personID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build set death date query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("set death date: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected set death date: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("set death date for %s: not found", personID)
	}

	return nil
}

func personBaseSelectBuilder() *qb.SelectBuilder {
	return qb.Select(personSelectColumns...).From("persons")
}
