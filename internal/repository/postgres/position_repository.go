package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"hotel-management/internal/db"
	"hotel-management/internal/domain"
	"hotel-management/internal/repository"
)

const createPositionsTable = `
CREATE TABLE IF NOT EXISTS positions (
	id BIGSERIAL PRIMARY KEY,
	name TEXT NOT NULL UNIQUE,
	description TEXT NOT NULL DEFAULT ''
);
`

type PositionRepository struct {
	pool *pgxpool.Pool
	q    *db.Queries
}

func NewPositionRepository(pool *pgxpool.Pool) repository.PositionRepository {
	return &PositionRepository{pool: pool, q: db.New(pool)}
}

func (r *PositionRepository) Init(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, createPositionsTable); err != nil {
		return fmt.Errorf("create positions table: %w", err)
	}
	return nil
}

func (r *PositionRepository) List(ctx context.Context, limit, offset int) ([]domain.Position, error) {
	rows, err := r.q.GetAll(ctx, "positions", nil, "name", limit, offset)
	if err != nil {
		return nil, err
	}
	positions := make([]domain.Position, 0, len(rows))
	for _, row := range rows {
		positions = append(positions, domain.Position{
			ID:          row.Int64("id"),
			Name:        row.String("name"),
			Description: row.String("description"),
		})
	}
	return positions, nil
}
