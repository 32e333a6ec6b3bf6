package db

import "time"

// Row is an ordered column-to-value mapping returned by store operations.
// Column order follows the result set, values are normalized to a small set
// of kinds: string, int64, float64, bool, time.Time, []byte, nil, plus
// decoded JSON values for json/jsonb columns.
type Row struct {
	columns []string
	values  []any
}

func newRow(columns []string, values []any) *Row {
	r := &Row{
		columns: make([]string, len(columns)),
		values:  make([]any, len(values)),
	}
	copy(r.columns, columns)
	for i, v := range values {
		r.values[i] = normalizeValue(v)
	}
	return r
}

func normalizeValue(v any) any {
	switch val := v.(type) {
	case int:
		return int64(val)
	case int16:
		return int64(val)
	case int32:
		return int64(val)
	case uint32:
		return int64(val)
	case float32:
		return float64(val)
	default:
		return v
	}
}

// Columns returns the column names in result order.
func (r *Row) Columns() []string {
	out := make([]string, len(r.columns))
	copy(out, r.columns)
	return out
}

// Value returns the raw value for a column and whether the column exists.
func (r *Row) Value(column string) (any, bool) {
	for i, c := range r.columns {
		if c == column {
			return r.values[i], true
		}
	}
	return nil, false
}

// String returns the column as a string, or "" when absent or not text.
func (r *Row) String(column string) string {
	if v, ok := r.Value(column); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// Int64 returns the column as an int64, or 0 when absent or not numeric.
func (r *Row) Int64(column string) int64 {
	v, ok := r.Value(column)
	if !ok {
		return 0
	}
	switch n := v.(type) {
	case int64:
		return n
	case float64:
		return int64(n)
	}
	return 0
}

// Bool returns the column as a bool, or false when absent or not boolean.
func (r *Row) Bool(column string) bool {
	if v, ok := r.Value(column); ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return false
}

// Time returns the column as a time.Time, or the zero time when absent.
func (r *Row) Time(column string) time.Time {
	if v, ok := r.Value(column); ok {
		if t, ok := v.(time.Time); ok {
			return t
		}
	}
	return time.Time{}
}

// Map returns the row as a plain map. Column order is lost; use Columns
// alongside when order matters.
func (r *Row) Map() map[string]any {
	out := make(map[string]any, len(r.columns))
	for i, c := range r.columns {
		out[c] = r.values[i]
	}
	return out
}
