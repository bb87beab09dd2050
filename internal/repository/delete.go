package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

type onDelete int

const (
	cascade onDelete = iota
	setNull
)

type dependent struct {
	table  string
	column string
	policy onDelete
}

// dependents lists, per table, the relations that reference it and what
// happens to the referencing rows when a referenced row is deleted.
var dependents = map[string][]dependent{
	"docking_points": {
		{table: "users", column: "docking_point_id", policy: setNull},
	},
	"users": {
		{table: "shipments", column: "driver_id", policy: setNull},
		{table: "notifications", column: "user_id", policy: cascade},
	},
	"items": {
		{table: "shipments", column: "item_id", policy: cascade},
	},
}

// deleteRow removes one row and applies the dependents policies in a single transaction.
func deleteRow(ctx context.Context, db DB, table string, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: ID cannot be empty", ErrInvalidInput)
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := deleteWithDependents(ctx, tx, table, id); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit delete of %s %d: %w", table, id, err)
	}

	return nil
}

func deleteWithDependents(ctx context.Context, tx pgx.Tx, table string, id int64) error {
	for _, dep := range dependents[table] {
		if err := releaseDependents(ctx, tx, dep, id); err != nil {
			return err
		}
	}

	result, err := tx.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = $1", table), id)
	if err != nil {
		return fmt.Errorf("failed to delete %s %d: %w", table, id, err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func releaseDependents(ctx context.Context, tx pgx.Tx, dep dependent, parentID int64) error {
	switch dep.policy {
	case setNull:
		sql := fmt.Sprintf("UPDATE %s SET %s = NULL WHERE %s = $1", dep.table, dep.column, dep.column)
		if _, err := tx.Exec(ctx, sql, parentID); err != nil {
			return fmt.Errorf("failed to clear %s.%s: %w", dep.table, dep.column, err)
		}
		return nil

	case cascade:
		if len(dependents[dep.table]) == 0 {
			sql := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", dep.table, dep.column)
			if _, err := tx.Exec(ctx, sql, parentID); err != nil {
				return fmt.Errorf("failed to delete dependent %s: %w", dep.table, err)
			}
			return nil
		}

		// dependents of their own: walk them row by row
		rows, err := tx.Query(ctx, fmt.Sprintf("SELECT id FROM %s WHERE %s = $1 ORDER BY id", dep.table, dep.column), parentID)
		if err != nil {
			return fmt.Errorf("failed to list dependent %s: %w", dep.table, err)
		}
		ids, err := pgx.CollectRows(rows, pgx.RowTo[int64])
		if err != nil {
			return fmt.Errorf("failed to scan dependent %s: %w", dep.table, err)
		}

		for _, childID := range ids {
			if err := deleteWithDependents(ctx, tx, dep.table, childID); err != nil {
				return err
			}
		}
		return nil
	}

	return fmt.Errorf("unknown delete policy %d for %s", dep.policy, dep.table)
}

// DependentTables returns every table whose rows may change when a row of
// table is deleted, in walk order.
func DependentTables(table string) []string {
	var tables []string
	seen := make(map[string]bool)

	var walk func(string)
	walk = func(t string) {
		for _, dep := range dependents[t] {
			if !seen[dep.table] {
				seen[dep.table] = true
				tables = append(tables, dep.table)
			}
			if dep.policy == cascade {
				walk(dep.table)
			}
		}
	}
	walk(table)

	return tables
}
