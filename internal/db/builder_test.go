package db

import (
	"errors"
	"reflect"
	"testing"
)

func TestValidateIdentifier_Rejects(t *testing.T) {
	cases := []string{
		"",
		"user name",
		"user-name",
		"1users",
		"users;",
		"users; DROP TABLE users",
		`users"`,
		"users'",
		"users*",
		"users.email",
		"users()",
	}
	for _, name := range cases {
		if err := validateIdentifier("table name", name); err == nil {
			t.Errorf("expected rejection for %q", name)
		} else {
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Errorf("expected ValidationError for %q, got %T", name, err)
			}
		}
	}
}

func TestValidateIdentifier_Accepts(t *testing.T) {
	for _, name := range []string{"users", "_users", "guest_profiles", "col2", "A"} {
		if err := validateIdentifier("table name", name); err != nil {
			t.Errorf("unexpected rejection for %q: %v", name, err)
		}
	}
}

func TestValidateReturning(t *testing.T) {
	valid := []string{"", "*", "id", "id, username, email", "id,email"}
	for _, r := range valid {
		if err := validateReturning(r); err != nil {
			t.Errorf("unexpected rejection for %q: %v", r, err)
		}
	}
	invalid := []string{"id; DROP", "id, email;", "id,*", "id--", "count(*)"}
	for _, r := range invalid {
		if err := validateReturning(r); err == nil {
			t.Errorf("expected rejection for %q", r)
		}
	}
}

func TestBuildSelectByColumn(t *testing.T) {
	query, err := buildSelectByColumn("users", "email")
	if err != nil {
		t.Fatalf("buildSelectByColumn: %v", err)
	}
	want := "SELECT * FROM users WHERE email = $1"
	if query != want {
		t.Fatalf("got %q, want %q", query, want)
	}

	if _, err := buildSelectByColumn("users", "email; --"); err == nil {
		t.Fatal("expected rejection of bad column")
	}
	if _, err := buildSelectByColumn("us ers", "email"); err == nil {
		t.Fatal("expected rejection of bad table")
	}
}

func TestBuildSelectAll(t *testing.T) {
	query, args, err := buildSelectAll("positions", nil, "", 0, 0)
	if err != nil {
		t.Fatalf("buildSelectAll: %v", err)
	}
	if query != "SELECT * FROM positions" || len(args) != 0 {
		t.Fatalf("got %q args %v", query, args)
	}

	query, args, err = buildSelectAll("users", Filters{"user_role": "guest", "profile_completed": true}, "username", 10, 20)
	if err != nil {
		t.Fatalf("buildSelectAll: %v", err)
	}
	want := "SELECT * FROM users WHERE profile_completed = $1 AND user_role = $2 ORDER BY username LIMIT $3 OFFSET $4"
	if query != want {
		t.Fatalf("got %q, want %q", query, want)
	}
	if !reflect.DeepEqual(args, []any{true, "guest", 10, 20}) {
		t.Fatalf("args mismatch: %v", args)
	}
}

func TestBuildSelectAll_OffsetRequiresLimit(t *testing.T) {
	query, args, err := buildSelectAll("users", nil, "", 0, 20)
	if err != nil {
		t.Fatalf("buildSelectAll: %v", err)
	}
	if query != "SELECT * FROM users" || len(args) != 0 {
		t.Fatalf("offset without limit should be ignored, got %q args %v", query, args)
	}
}

func TestBuildSelectAll_Rejects(t *testing.T) {
	if _, _, err := buildSelectAll("users", Filters{"bad col": 1}, "", 0, 0); err == nil {
		t.Fatal("expected rejection of bad filter column")
	}
	if _, _, err := buildSelectAll("users", nil, "name; --", 0, 0); err == nil {
		t.Fatal("expected rejection of bad order_by")
	}
}

func TestBuildInsert(t *testing.T) {
	query, args, err := buildInsert("users", Data{"username": "alice", "email": "a@x.com"}, "id, username")
	if err != nil {
		t.Fatalf("buildInsert: %v", err)
	}
	want := "INSERT INTO users (email, username) VALUES ($1, $2) RETURNING id, username"
	if query != want {
		t.Fatalf("got %q, want %q", query, want)
	}
	if !reflect.DeepEqual(args, []any{"a@x.com", "alice"}) {
		t.Fatalf("args mismatch: %v", args)
	}

	query, _, err = buildInsert("users", Data{"username": "alice"}, "")
	if err != nil {
		t.Fatalf("buildInsert: %v", err)
	}
	if query != "INSERT INTO users (username) VALUES ($1)" {
		t.Fatalf("unexpected query without returning: %q", query)
	}
}

func TestBuildInsert_Rejects(t *testing.T) {
	if _, _, err := buildInsert("users", Data{}, "id"); err == nil {
		t.Fatal("expected rejection of empty data")
	}
	if _, _, err := buildInsert("users", Data{"bad col": 1}, "id"); err == nil {
		t.Fatal("expected rejection of bad data column")
	}
	if _, _, err := buildInsert("users", Data{"username": "a"}, "id; DROP TABLE users"); err == nil {
		t.Fatal("expected rejection of bad returning list")
	}
}

func TestBuildUpsert(t *testing.T) {
	query, args, err := buildUpsert(
		"guest_profiles",
		Data{"user_id": int64(7), "address": "12 Shore Rd"},
		"user_id",
		[]string{"address"},
		"user_id",
	)
	if err != nil {
		t.Fatalf("buildUpsert: %v", err)
	}
	want := "INSERT INTO guest_profiles (address, user_id) VALUES ($1, $2) " +
		"ON CONFLICT (user_id) DO UPDATE SET address = EXCLUDED.address RETURNING user_id"
	if query != want {
		t.Fatalf("got %q, want %q", query, want)
	}
	if !reflect.DeepEqual(args, []any{"12 Shore Rd", int64(7)}) {
		t.Fatalf("args mismatch: %v", args)
	}
}

func TestBuildUpsert_Rejects(t *testing.T) {
	data := Data{"user_id": int64(1)}
	if _, _, err := buildUpsert("t", data, "user id", []string{"a"}, ""); err == nil {
		t.Fatal("expected rejection of bad conflict column")
	}
	if _, _, err := buildUpsert("t", data, "user_id", []string{"a; --"}, ""); err == nil {
		t.Fatal("expected rejection of bad update column")
	}
	if _, _, err := buildUpsert("t", data, "user_id", nil, ""); err == nil {
		t.Fatal("expected rejection of empty update columns")
	}
	if _, _, err := buildUpsert("t", Data{}, "user_id", []string{"a"}, ""); err == nil {
		t.Fatal("expected rejection of empty data")
	}
}

func TestBuildUpdateByID(t *testing.T) {
	query, args, err := buildUpdateByID("users", Data{"profile_completed": true}, "")
	if err != nil {
		t.Fatalf("buildUpdateByID: %v", err)
	}
	want := "UPDATE users SET profile_completed = $1 WHERE id = $2"
	if query != want {
		t.Fatalf("got %q, want %q", query, want)
	}
	if !reflect.DeepEqual(args, []any{true}) {
		t.Fatalf("args mismatch: %v", args)
	}

	query, _, err = buildUpdateByID("users", Data{"email": "b@x.com", "username": "bob"}, "*")
	if err != nil {
		t.Fatalf("buildUpdateByID: %v", err)
	}
	want = "UPDATE users SET email = $1, username = $2 WHERE id = $3 RETURNING *"
	if query != want {
		t.Fatalf("got %q, want %q", query, want)
	}
}

func TestBuildDeleteByID(t *testing.T) {
	query, err := buildDeleteByID("users", "")
	if err != nil {
		t.Fatalf("buildDeleteByID: %v", err)
	}
	if query != "DELETE FROM users WHERE id = $1" {
		t.Fatalf("unexpected query: %q", query)
	}

	query, err = buildDeleteByID("users", "id, username")
	if err != nil {
		t.Fatalf("buildDeleteByID: %v", err)
	}
	if query != "DELETE FROM users WHERE id = $1 RETURNING id, username" {
		t.Fatalf("unexpected query: %q", query)
	}

	// delete accepts the looser list pattern, including "*"
	if _, err := buildDeleteByID("users", "*"); err != nil {
		t.Fatalf("star returning should be accepted: %v", err)
	}
	if _, err := buildDeleteByID("users", "id; DROP TABLE users"); err == nil {
		t.Fatal("expected rejection of bad returning")
	}
	if _, err := buildDeleteByID("users", "id)"); err == nil {
		t.Fatal("expected rejection of parenthesis in returning")
	}
}
