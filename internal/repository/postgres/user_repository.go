package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"hotel-management/internal/db"
	"hotel-management/internal/domain"
	"hotel-management/internal/repository"
)

const createUsersTable = `
CREATE TABLE IF NOT EXISTS users (
	id BIGSERIAL PRIMARY KEY,
	username TEXT NOT NULL UNIQUE,
	email TEXT NOT NULL UNIQUE,
	password TEXT NOT NULL,
	user_role TEXT NOT NULL DEFAULT 'guest',
	profile_completed BOOLEAN NOT NULL DEFAULT FALSE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

const uniqueViolationCode = "23505"

type UserRepository struct {
	pool *pgxpool.Pool
	q    *db.Queries
}

func NewUserRepository(pool *pgxpool.Pool) repository.UserRepository {
	return &UserRepository{pool: pool, q: db.New(pool)}
}

func (r *UserRepository) Init(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, createUsersTable); err != nil {
		return fmt.Errorf("create users table: %w", err)
	}
	return nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	row, err := r.q.Insert(ctx, "users", db.Data{
		"username":  user.Username,
		"email":     user.Email,
		"password":  user.PasswordHash,
		"user_role": string(user.Role),
	}, "id, username, email, user_role, profile_completed, created_at")
	if err != nil {
		if isUniqueViolation(err) {
			return nil, repository.ErrDuplicate
		}
		return nil, err
	}
	if row == nil {
		return nil, fmt.Errorf("insert user: no row returned")
	}
	created := userFromRow(row)
	return created, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	row, err := r.q.GetByID(ctx, "users", id)
	if err != nil || row == nil {
		return nil, err
	}
	return userFromRow(row), nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row, err := r.q.GetByColumn(ctx, "users", "email", email)
	if err != nil || row == nil {
		return nil, err
	}
	return userFromRow(row), nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	row, err := r.q.GetByColumn(ctx, "users", "username", username)
	if err != nil || row == nil {
		return nil, err
	}
	return userFromRow(row), nil
}

func (r *UserRepository) SetProfileCompleted(ctx context.Context, id int64) error {
	_, _, err := r.q.UpdateByID(ctx, "users", id, db.Data{"profile_completed": true}, "")
	return err
}

func userFromRow(row *db.Row) *domain.User {
	return &domain.User{
		ID:               row.Int64("id"),
		Username:         row.String("username"),
		Email:            row.String("email"),
		PasswordHash:     row.String("password"),
		Role:             domain.Role(row.String("user_role")),
		ProfileCompleted: row.Bool("profile_completed"),
		CreatedAt:        row.Time("created_at"),
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
