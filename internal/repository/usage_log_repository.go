package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ferramentas/toolhub/internal/domain"
)

// UsageLogRepository manages tool usage log persistence.
type UsageLogRepository interface {
	Create(ctx context.Context, log *domain.ToolUsageLog) error
	CountByUserSince(ctx context.Context, userID string, since time.Time) (int64, error)
}

type usageLogRepository struct {
	pool *pgxpool.Pool
}

// NewUsageLogRepository constructs repository.
func NewUsageLogRepository(pool *pgxpool.Pool) UsageLogRepository {
	return &usageLogRepository{pool: pool}
}

func (r *usageLogRepository) Create(ctx context.Context, log *domain.ToolUsageLog) error {
	const query = `
        INSERT INTO tool_usage_logs (user_id, tool_name, ip_address)
        VALUES ($1, $2, $3)
        RETURNING id, used_at`
	return r.pool.QueryRow(ctx, query,
		log.UserID,
		log.ToolName,
		log.IPAddress,
	).Scan(&log.ID, &log.UsedAt)
}

func (r *usageLogRepository) CountByUserSince(ctx context.Context, userID string, since time.Time) (int64, error) {
	const query = `
        SELECT COUNT(*) FROM tool_usage_logs
        WHERE user_id=$1 AND used_at >= $2`
	var total int64
	err := r.pool.QueryRow(ctx, query, userID, since).Scan(&total)
	return total, err
}
