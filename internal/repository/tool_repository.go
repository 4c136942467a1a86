package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ferramentas/toolhub/internal/domain"
)

// ToolRepository defines persistence access for the tool catalog.
type ToolRepository interface {
	Create(ctx context.Context, tool *domain.Tool) error
	GetByID(ctx context.Context, id int64) (*domain.Tool, error)
	GetByKey(ctx context.Context, key string) (*domain.Tool, error)
	List(ctx context.Context) ([]*domain.Tool, error)
	ListActive(ctx context.Context) ([]*domain.Tool, error)
	UpdateStatus(ctx context.Context, id int64, active bool) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}

type toolRepository struct {
	pool *pgxpool.Pool
}

// NewToolRepository returns a Postgres-backed implementation.
func NewToolRepository(pool *pgxpool.Pool) ToolRepository {
	return &toolRepository{pool: pool}
}

const toolColumns = `id, unique_key, title, description, icon, href, active, created_at, updated_at`

func (r *toolRepository) Create(ctx context.Context, tool *domain.Tool) error {
	const query = `
        INSERT INTO tools (unique_key, title, description, icon, href, active)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		tool.Key,
		tool.Title,
		tool.Description,
		tool.Icon,
		tool.Href,
		tool.Active,
	).Scan(&tool.ID, &tool.CreatedAt, &tool.UpdatedAt)
}

func (r *toolRepository) GetByID(ctx context.Context, id int64) (*domain.Tool, error) {
	const query = `SELECT ` + toolColumns + ` FROM tools WHERE id=$1`
	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

func (r *toolRepository) GetByKey(ctx context.Context, key string) (*domain.Tool, error) {
	const query = `SELECT ` + toolColumns + ` FROM tools WHERE unique_key=$1`
	return r.scanOne(r.pool.QueryRow(ctx, query, key))
}

func (r *toolRepository) List(ctx context.Context) ([]*domain.Tool, error) {
	const query = `SELECT ` + toolColumns + ` FROM tools ORDER BY id`
	return r.scanMany(ctx, query)
}

func (r *toolRepository) ListActive(ctx context.Context) ([]*domain.Tool, error) {
	const query = `SELECT ` + toolColumns + ` FROM tools WHERE active ORDER BY id`
	return r.scanMany(ctx, query)
}

func (r *toolRepository) UpdateStatus(ctx context.Context, id int64, active bool) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE tools SET active=$1, updated_at=NOW() WHERE id=$2`, active, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *toolRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM tools WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *toolRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM tools`).Scan(&total)
	return total, err
}

func (r *toolRepository) scanOne(row pgx.Row) (*domain.Tool, error) {
	var tool domain.Tool
	if err := row.Scan(
		&tool.ID,
		&tool.Key,
		&tool.Title,
		&tool.Description,
		&tool.Icon,
		&tool.Href,
		&tool.Active,
		&tool.CreatedAt,
		&tool.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &tool, nil
}

func (r *toolRepository) scanMany(ctx context.Context, query string) ([]*domain.Tool, error) {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tools := make([]*domain.Tool, 0)
	for rows.Next() {
		var tool domain.Tool
		if err := rows.Scan(
			&tool.ID,
			&tool.Key,
			&tool.Title,
			&tool.Description,
			&tool.Icon,
			&tool.Href,
			&tool.Active,
			&tool.CreatedAt,
			&tool.UpdatedAt,
		); err != nil {
			return nil, err
		}
		tools = append(tools, &tool)
	}
	return tools, rows.Err()
}
