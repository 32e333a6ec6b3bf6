package db

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Data holds column-value pairs for insert/update operations.
type Data map[string]any

// Filters holds equality conditions combined with AND.
type Filters map[string]any

// Identifier rules: must start with a letter or underscore, then letters,
// digits and underscores only. Anything else never reaches the SQL text.
var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Delete returning clauses accept a looser list form including "*".
var returningListPattern = regexp.MustCompile(`^[\w,\s*]+$`)

func validateIdentifier(kind, name string) error {
	if !identifierPattern.MatchString(name) {
		return validationErrorf(
			"invalid %s: %q. Must start with a letter or underscore, "+
				"and contain only letters, numbers, and underscores", kind, name)
	}
	return nil
}

// validateReturning checks a comma-separated column list; "*" is allowed as
// a single element. An empty string means no RETURNING clause and is valid.
func validateReturning(returning string) error {
	if returning == "" {
		return nil
	}
	if strings.TrimSpace(returning) == "*" {
		return nil
	}
	for _, col := range strings.Split(returning, ",") {
		if err := validateIdentifier("returning column", strings.TrimSpace(col)); err != nil {
			return validationErrorf("invalid returning column specification: %q", returning)
		}
	}
	return nil
}

// sortedKeys fixes the clause order so the emitted SQL is deterministic.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func buildSelectByColumn(table, column string) (string, error) {
	if err := validateIdentifier("table name", table); err != nil {
		return "", err
	}
	if err := validateIdentifier("column name", column); err != nil {
		return "", err
	}
	return fmt.Sprintf("SELECT * FROM %s WHERE %s = $1", table, column), nil
}

func buildSelectAll(table string, filters Filters, orderBy string, limit, offset int) (string, []any, error) {
	if err := validateIdentifier("table name", table); err != nil {
		return "", nil, err
	}

	var sb strings.Builder
	var args []any
	sb.WriteString("SELECT * FROM ")
	sb.WriteString(table)

	if len(filters) > 0 {
		conditions := make([]string, 0, len(filters))
		for _, col := range sortedKeys(filters) {
			if err := validateIdentifier("filter column", col); err != nil {
				return "", nil, err
			}
			args = append(args, filters[col])
			conditions = append(conditions, fmt.Sprintf("%s = $%d", col, len(args)))
		}
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(conditions, " AND "))
	}

	if orderBy != "" {
		if err := validateIdentifier("order_by column", orderBy); err != nil {
			return "", nil, err
		}
		sb.WriteString(" ORDER BY ")
		sb.WriteString(orderBy)
	}

	if limit > 0 {
		args = append(args, limit)
		fmt.Fprintf(&sb, " LIMIT $%d", len(args))
		if offset > 0 {
			args = append(args, offset)
			fmt.Fprintf(&sb, " OFFSET $%d", len(args))
		}
	}

	return sb.String(), args, nil
}

func buildInsert(table string, data Data, returning string) (string, []any, error) {
	if err := validateIdentifier("table name", table); err != nil {
		return "", nil, err
	}
	if len(data) == 0 {
		return "", nil, validationErrorf("insert data cannot be empty")
	}
	if err := validateReturning(returning); err != nil {
		return "", nil, err
	}

	cols := make([]string, 0, len(data))
	placeholders := make([]string, 0, len(data))
	args := make([]any, 0, len(data))
	for _, col := range sortedKeys(data) {
		if err := validateIdentifier("column name", col); err != nil {
			return "", nil, err
		}
		args = append(args, data[col])
		cols = append(cols, col)
		placeholders = append(placeholders, fmt.Sprintf("$%d", len(args)))
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(cols, ", "), strings.Join(placeholders, ", "))
	if returning != "" {
		query += " RETURNING " + returning
	}
	return query, args, nil
}

func buildUpsert(table string, data Data, conflictColumn string, updateColumns []string, returning string) (string, []any, error) {
	if err := validateIdentifier("table name", table); err != nil {
		return "", nil, err
	}
	if len(data) == 0 {
		return "", nil, validationErrorf("upsert data cannot be empty")
	}
	if err := validateIdentifier("conflict column", conflictColumn); err != nil {
		return "", nil, err
	}
	if len(updateColumns) == 0 {
		return "", nil, validationErrorf("upsert update columns cannot be empty")
	}
	if err := validateReturning(returning); err != nil {
		return "", nil, err
	}

	cols := make([]string, 0, len(data))
	placeholders := make([]string, 0, len(data))
	args := make([]any, 0, len(data))
	for _, col := range sortedKeys(data) {
		if err := validateIdentifier("column name", col); err != nil {
			return "", nil, err
		}
		args = append(args, data[col])
		cols = append(cols, col)
		placeholders = append(placeholders, fmt.Sprintf("$%d", len(args)))
	}

	updates := make([]string, 0, len(updateColumns))
	for _, col := range updateColumns {
		if err := validateIdentifier("update column", col); err != nil {
			return "", nil, err
		}
		updates = append(updates, fmt.Sprintf("%s = EXCLUDED.%s", col, col))
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (%s) DO UPDATE SET %s",
		table, strings.Join(cols, ", "), strings.Join(placeholders, ", "),
		conflictColumn, strings.Join(updates, ", "))
	if returning != "" {
		query += " RETURNING " + returning
	}
	return query, args, nil
}

func buildUpdateByID(table string, data Data, returning string) (string, []any, error) {
	if err := validateIdentifier("table name", table); err != nil {
		return "", nil, err
	}
	if len(data) == 0 {
		return "", nil, validationErrorf("update data cannot be empty")
	}
	if err := validateReturning(returning); err != nil {
		return "", nil, err
	}

	assignments := make([]string, 0, len(data))
	args := make([]any, 0, len(data)+1)
	for _, col := range sortedKeys(data) {
		if err := validateIdentifier("column name", col); err != nil {
			return "", nil, err
		}
		args = append(args, data[col])
		assignments = append(assignments, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d",
		table, strings.Join(assignments, ", "), len(args)+1)
	if returning != "" {
		query += " RETURNING " + returning
	}
	return query, args, nil
}

func buildDeleteByID(table, returning string) (string, error) {
	if err := validateIdentifier("table name", table); err != nil {
		return "", err
	}
	if returning != "" && !returningListPattern.MatchString(returning) {
		return "", validationErrorf("invalid returning column specification: %q", returning)
	}

	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1", table)
	if returning != "" {
		query += " RETURNING " + returning
	}
	return query, nil
}
