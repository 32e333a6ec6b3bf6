package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"hotel-management/internal/db"
	"hotel-management/internal/domain"
	"hotel-management/internal/repository"
)

const createGuestProfilesTable = `
CREATE TABLE IF NOT EXISTS guest_profiles (
	user_id BIGINT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
	first_name TEXT NOT NULL,
	last_name TEXT NOT NULL,
	date_of_birth DATE NOT NULL,
	address TEXT NOT NULL,
	preferences JSONB NOT NULL DEFAULT '{}'::jsonb
);
`

const createStaffProfilesTable = `
CREATE TABLE IF NOT EXISTS staff_profiles (
	user_id BIGINT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
	first_name TEXT NOT NULL,
	last_name TEXT NOT NULL,
	date_of_birth DATE NOT NULL,
	address TEXT NOT NULL,
	position_id BIGINT NOT NULL REFERENCES positions(id),
	hire_date DATE NOT NULL
);
`

type ProfileRepository struct {
	pool *pgxpool.Pool
	q    *db.Queries
}

func NewProfileRepository(pool *pgxpool.Pool) repository.ProfileRepository {
	return &ProfileRepository{pool: pool, q: db.New(pool)}
}

// Init creates both profile tables. The positions table must exist first.
func (r *ProfileRepository) Init(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, createGuestProfilesTable); err != nil {
		return fmt.Errorf("create guest_profiles table: %w", err)
	}
	if _, err := r.pool.Exec(ctx, createStaffProfilesTable); err != nil {
		return fmt.Errorf("create staff_profiles table: %w", err)
	}
	return nil
}

func (r *ProfileRepository) UpsertGuest(ctx context.Context, profile *domain.GuestProfile) error {
	preferences := profile.Preferences
	if preferences == nil {
		preferences = map[string]any{}
	}
	_, err := r.q.Upsert(ctx, "guest_profiles", db.Data{
		"user_id":       profile.UserID,
		"first_name":    profile.FirstName,
		"last_name":     profile.LastName,
		"date_of_birth": profile.DateOfBirth,
		"address":       profile.Address,
		"preferences":   preferences,
	}, "user_id",
		[]string{"first_name", "last_name", "date_of_birth", "address", "preferences"},
		"user_id")
	return err
}

func (r *ProfileRepository) UpsertStaff(ctx context.Context, profile *domain.StaffProfile) error {
	_, err := r.q.Upsert(ctx, "staff_profiles", db.Data{
		"user_id":       profile.UserID,
		"first_name":    profile.FirstName,
		"last_name":     profile.LastName,
		"date_of_birth": profile.DateOfBirth,
		"address":       profile.Address,
		"position_id":   profile.PositionID,
		"hire_date":     profile.HireDate,
	}, "user_id",
		[]string{"first_name", "last_name", "date_of_birth", "address", "position_id", "hire_date"},
		"user_id")
	return err
}

func (r *ProfileRepository) GetGuest(ctx context.Context, userID int64) (*domain.GuestProfile, error) {
	row, err := r.q.GetByColumn(ctx, "guest_profiles", "user_id", userID)
	if err != nil || row == nil {
		return nil, err
	}
	profile := &domain.GuestProfile{
		UserID:      row.Int64("user_id"),
		FirstName:   row.String("first_name"),
		LastName:    row.String("last_name"),
		DateOfBirth: dateString(row, "date_of_birth"),
		Address:     row.String("address"),
	}
	if v, ok := row.Value("preferences"); ok {
		if prefs, ok := v.(map[string]any); ok {
			profile.Preferences = prefs
		}
	}
	return profile, nil
}

func (r *ProfileRepository) GetStaff(ctx context.Context, userID int64) (*domain.StaffProfile, error) {
	row, err := r.q.GetByColumn(ctx, "staff_profiles", "user_id", userID)
	if err != nil || row == nil {
		return nil, err
	}
	return &domain.StaffProfile{
		UserID:      row.Int64("user_id"),
		FirstName:   row.String("first_name"),
		LastName:    row.String("last_name"),
		DateOfBirth: dateString(row, "date_of_birth"),
		Address:     row.String("address"),
		PositionID:  row.Int64("position_id"),
		HireDate:    dateString(row, "hire_date"),
	}, nil
}

// dateString renders a DATE column as YYYY-MM-DD regardless of whether the
// driver decoded it as time.Time or text.
func dateString(row *db.Row, column string) string {
	v, ok := row.Value(column)
	if !ok {
		return ""
	}
	switch d := v.(type) {
	case time.Time:
		return d.Format("2006-01-02")
	case string:
		return d
	}
	return ""
}
