package db

import "fmt"

// ValidationError reports a caller mistake (bad identifier, empty data).
// No SQL is issued when one is returned.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func validationErrorf(format string, args ...any) *ValidationError {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// QueryError wraps a store execution failure (constraint violation,
// connectivity loss, timeout). "Not found" is never a QueryError.
type QueryError struct {
	Op    string
	Table string
	Err   error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Table, e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }

func queryError(op, table string, err error) *QueryError {
	return &QueryError{Op: op, Table: table, Err: err}
}
