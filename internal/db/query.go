package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Queries exposes the generic data-access operations over a pool. Every
// entry point validates caller-supplied identifiers before touching the
// store; values are always passed as statement parameters.
type Queries struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Queries {
	return &Queries{pool: pool}
}

// GetByID fetches a single row by primary key. A nil row means not found.
func (q *Queries) GetByID(ctx context.Context, table string, id any) (*Row, error) {
	query, err := buildSelectByColumn(table, "id")
	if err != nil {
		return nil, err
	}
	rows, err := q.query(ctx, "select", table, query, []any{id})
	if err != nil {
		return nil, err
	}
	return first(rows), nil
}

// GetByColumn fetches a single row matching column = value.
func (q *Queries) GetByColumn(ctx context.Context, table, column string, value any) (*Row, error) {
	query, err := buildSelectByColumn(table, column)
	if err != nil {
		return nil, err
	}
	rows, err := q.query(ctx, "select", table, query, []any{value})
	if err != nil {
		return nil, err
	}
	return first(rows), nil
}

// GetAll lists rows with optional equality filters, ascending ordering and
// pagination. Offset only applies when a positive limit is present.
func (q *Queries) GetAll(ctx context.Context, table string, filters Filters, orderBy string, limit, offset int) ([]*Row, error) {
	query, args, err := buildSelectAll(table, filters, orderBy, limit, offset)
	if err != nil {
		return nil, err
	}
	return q.query(ctx, "select", table, query, args)
}

// Insert adds a row. When returning names columns (or "*"), the created
// row's requested columns come back; otherwise the result is nil.
func (q *Queries) Insert(ctx context.Context, table string, data Data, returning string) (*Row, error) {
	query, args, err := buildInsert(table, data, returning)
	if err != nil {
		return nil, err
	}
	if returning == "" {
		_, err := q.exec(ctx, "insert", table, query, args)
		return nil, err
	}
	rows, err := q.execReturning(ctx, "insert", table, query, args)
	if err != nil {
		return nil, err
	}
	return first(rows), nil
}

// Upsert inserts, or on a unique conflict on conflictColumn overwrites
// exactly updateColumns with the incoming values.
func (q *Queries) Upsert(ctx context.Context, table string, data Data, conflictColumn string, updateColumns []string, returning string) (*Row, error) {
	query, args, err := buildUpsert(table, data, conflictColumn, updateColumns, returning)
	if err != nil {
		return nil, err
	}
	if returning == "" {
		_, err := q.exec(ctx, "upsert", table, query, args)
		return nil, err
	}
	rows, err := q.execReturning(ctx, "upsert", table, query, args)
	if err != nil {
		return nil, err
	}
	return first(rows), nil
}

// UpdateByID updates a row by primary key. With returning, the updated row
// comes back; without, the affected-row count does.
func (q *Queries) UpdateByID(ctx context.Context, table string, id any, data Data, returning string) (*Row, int64, error) {
	query, args, err := buildUpdateByID(table, data, returning)
	if err != nil {
		return nil, 0, err
	}
	args = append(args, id)
	if returning == "" {
		n, err := q.exec(ctx, "update", table, query, args)
		return nil, n, err
	}
	rows, err := q.execReturning(ctx, "update", table, query, args)
	if err != nil {
		return nil, 0, err
	}
	row := first(rows)
	return row, int64(len(rows)), nil
}

// DeleteByID removes a row by primary key. Deleting a nonexistent id is not
// an error: the count is zero, or the returned row is nil.
func (q *Queries) DeleteByID(ctx context.Context, table string, id any, returning string) (*Row, int64, error) {
	query, err := buildDeleteByID(table, returning)
	if err != nil {
		return nil, 0, err
	}
	args := []any{id}
	if returning == "" {
		n, err := q.exec(ctx, "delete", table, query, args)
		return nil, n, err
	}
	rows, err := q.execReturning(ctx, "delete", table, query, args)
	if err != nil {
		return nil, 0, err
	}
	row := first(rows)
	return row, int64(len(rows)), nil
}

// query runs a read-only statement on a scoped connection.
func (q *Queries) query(ctx context.Context, op, table, sql string, args []any) ([]*Row, error) {
	conn, err := q.pool.Acquire(ctx)
	if err != nil {
		return nil, queryError(op, table, err)
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, queryError(op, table, err)
	}
	collected, err := collectRows(rows)
	if err != nil {
		return nil, queryError(op, table, err)
	}
	return collected, nil
}

// exec runs a mutating statement without a result set inside a transaction
// committed immediately after execution. The connection is released on
// every path.
func (q *Queries) exec(ctx context.Context, op, table, sql string, args []any) (int64, error) {
	conn, err := q.pool.Acquire(ctx)
	if err != nil {
		return 0, queryError(op, table, err)
	}
	defer conn.Release()

	tx, err := conn.Begin(ctx)
	if err != nil {
		return 0, queryError(op, table, err)
	}

	tag, err := tx.Exec(ctx, sql, args...)
	if err != nil {
		_ = tx.Rollback(ctx)
		return 0, queryError(op, table, err)
	}
	if err := tx.Commit(ctx); err != nil {
		_ = tx.Rollback(ctx)
		return 0, queryError(op, table, err)
	}
	return tag.RowsAffected(), nil
}

// execReturning runs a mutating statement with a RETURNING clause.
func (q *Queries) execReturning(ctx context.Context, op, table, sql string, args []any) ([]*Row, error) {
	conn, err := q.pool.Acquire(ctx)
	if err != nil {
		return nil, queryError(op, table, err)
	}
	defer conn.Release()

	tx, err := conn.Begin(ctx)
	if err != nil {
		return nil, queryError(op, table, err)
	}

	rows, err := tx.Query(ctx, sql, args...)
	if err != nil {
		_ = tx.Rollback(ctx)
		return nil, queryError(op, table, err)
	}
	collected, err := collectRows(rows)
	if err != nil {
		_ = tx.Rollback(ctx)
		return nil, queryError(op, table, err)
	}
	if err := tx.Commit(ctx); err != nil {
		_ = tx.Rollback(ctx)
		return nil, queryError(op, table, err)
	}
	return collected, nil
}

// collectRows drains a result set into Rows, preserving column order.
func collectRows(rows pgx.Rows) ([]*Row, error) {
	defer rows.Close()

	fields := rows.FieldDescriptions()
	columns := make([]string, len(fields))
	for i, fd := range fields {
		columns[i] = string(fd.Name)
	}

	var out []*Row
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, err
		}
		out = append(out, newRow(columns, values))
	}
	return out, rows.Err()
}

func first(rows []*Row) *Row {
	if len(rows) == 0 {
		return nil
	}
	return rows[0]
}
