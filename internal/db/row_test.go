package db

import (
	"reflect"
	"testing"
	"time"
)

func TestRow_PreservesColumnOrder(t *testing.T) {
	row := newRow(
		[]string{"id", "username", "email"},
		[]any{int64(1), "alice", "a@x.com"},
	)
	if !reflect.DeepEqual(row.Columns(), []string{"id", "username", "email"}) {
		t.Fatalf("column order lost: %v", row.Columns())
	}
}

func TestRow_TypedGetters(t *testing.T) {
	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	row := newRow(
		[]string{"id", "username", "profile_completed", "created_at", "note"},
		[]any{int64(42), "alice", true, created, nil},
	)

	if got := row.Int64("id"); got != 42 {
		t.Fatalf("Int64(id) = %d", got)
	}
	if got := row.String("username"); got != "alice" {
		t.Fatalf("String(username) = %q", got)
	}
	if !row.Bool("profile_completed") {
		t.Fatal("Bool(profile_completed) = false")
	}
	if got := row.Time("created_at"); !got.Equal(created) {
		t.Fatalf("Time(created_at) = %v", got)
	}
	if v, ok := row.Value("note"); !ok || v != nil {
		t.Fatalf("Value(note) = %v, %v", v, ok)
	}
	if _, ok := row.Value("missing"); ok {
		t.Fatal("Value(missing) should report absence")
	}
}

func TestRow_NormalizesNumericKinds(t *testing.T) {
	row := newRow(
		[]string{"a", "b", "c"},
		[]any{int32(5), int(6), float32(1.5)},
	)
	if v, _ := row.Value("a"); v != int64(5) {
		t.Fatalf("int32 not widened: %v (%T)", v, v)
	}
	if v, _ := row.Value("b"); v != int64(6) {
		t.Fatalf("int not widened: %v (%T)", v, v)
	}
	if v, _ := row.Value("c"); v != float64(1.5) {
		t.Fatalf("float32 not widened: %v (%T)", v, v)
	}
}

func TestRow_Map(t *testing.T) {
	row := newRow([]string{"id", "email"}, []any{int64(1), "a@x.com"})
	want := map[string]any{"id": int64(1), "email": "a@x.com"}
	if !reflect.DeepEqual(row.Map(), want) {
		t.Fatalf("Map() = %v", row.Map())
	}
}
