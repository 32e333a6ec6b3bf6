package repository

import (
	"context"
	"errors"

	"hotel-management/internal/domain"
)

// ErrDuplicate is returned when a unique constraint rejects a write.
var ErrDuplicate = errors.New("record already exists")

// UserRepository defines persistence operations for User entities.
// Lookups return (nil, nil) when no row matches; absence is not an error.
type UserRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	SetProfileCompleted(ctx context.Context, id int64) error
}

// ProfileRepository persists role-specific profile rows keyed by user id.
// Upserts overwrite the profile fields when a row already exists.
type ProfileRepository interface {
	Init(ctx context.Context) error
	UpsertGuest(ctx context.Context, profile *domain.GuestProfile) error
	UpsertStaff(ctx context.Context, profile *domain.StaffProfile) error
	GetGuest(ctx context.Context, userID int64) (*domain.GuestProfile, error)
	GetStaff(ctx context.Context, userID int64) (*domain.StaffProfile, error)
}

// PositionRepository lists the staff position catalogue.
type PositionRepository interface {
	Init(ctx context.Context) error
	List(ctx context.Context, limit, offset int) ([]domain.Position, error)
}
