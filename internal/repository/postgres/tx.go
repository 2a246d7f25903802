package postgres

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go-staffing-backend/internal/domain"
	"go-staffing-backend/pkg/apperror"

	"github.com/jackc/pgx/v5/pgxpool"
)

// changeSetCommitter applies a declared change set in one transaction.
// Guarded updates carry their expected state into the WHERE clause, so a row
// that moved between the workflow's snapshot read and the write affects zero
// rows and aborts the whole set with a conflict.
type changeSetCommitter struct {
	db *pgxpool.Pool
}

func NewCommitter(db *pgxpool.Pool) domain.Committer {
	return &changeSetCommitter{db: db}
}

func (c *changeSetCommitter) Commit(ctx context.Context, cs domain.ChangeSet) error {
	if cs.Empty() {
		return nil
	}

	tx, err := c.db.Begin(ctx)
	if err != nil {
		return apperror.Internal(fmt.Errorf("failed to begin transaction: %w", err))
	}
	defer tx.Rollback(ctx)

	for _, ins := range cs.Inserts {
		query, args := buildInsert(ins)
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return apperror.Internal(fmt.Errorf("insert into %s: %w", ins.Table, err))
		}
	}

	for _, upd := range cs.Updates {
		query, args := buildUpdate(upd)
		tag, err := tx.Exec(ctx, query, args...)
		if err != nil {
			return apperror.Internal(fmt.Errorf("update %s %s: %w", upd.Table, upd.ID, err))
		}
		if tag.RowsAffected() == 0 {
			if upd.ExpectedStatus != "" {
				return apperror.Conflict(fmt.Sprintf(
					"%s %s is no longer in state %s; re-fetch and retry", upd.Table, upd.ID, upd.ExpectedStatus))
			}
			return apperror.NotFound(fmt.Sprintf("%s %s not found", upd.Table, upd.ID))
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return apperror.Internal(fmt.Errorf("failed to commit change set: %w", err))
	}
	return nil
}

// buildInsert renders one declared row creation. Columns are sorted so the
// generated SQL is stable.
func buildInsert(ins domain.Insert) (string, []any) {
	columns := make([]string, 0, len(ins.Columns))
	for col := range ins.Columns {
		columns = append(columns, col)
	}
	sort.Strings(columns)

	placeholders := make([]string, len(columns))
	args := make([]any, len(columns))
	for i, col := range columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = ins.Columns[col]
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		ins.Table, strings.Join(columns, ", "), strings.Join(placeholders, ", "))
	return query, args
}

// buildUpdate renders one guarded update. The guard column defaults to
// "status"; an empty expected value means an unconditional update by id.
func buildUpdate(upd domain.GuardedUpdate) (string, []any) {
	columns := make([]string, 0, len(upd.Set))
	for col := range upd.Set {
		columns = append(columns, col)
	}
	sort.Strings(columns)

	assignments := make([]string, len(columns))
	args := make([]any, 0, len(columns)+2)
	for i, col := range columns {
		assignments[i] = fmt.Sprintf("%s = $%d", col, i+1)
		args = append(args, upd.Set[col])
	}

	args = append(args, upd.ID)
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d",
		upd.Table, strings.Join(assignments, ", "), len(args))

	if upd.ExpectedStatus != "" {
		guard := upd.GuardColumn
		if guard == "" {
			guard = "status"
		}
		args = append(args, upd.ExpectedStatus)
		query += fmt.Sprintf(" AND %s = $%d", guard, len(args))
	}
	return query, args
}
