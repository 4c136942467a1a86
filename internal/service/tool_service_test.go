package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ferramentas/toolhub/internal/domain"
)

type fakeToolRepo struct {
	mu    sync.Mutex
	tools map[int64]*domain.Tool
	seq   int64

	listActiveCalls int
}

func newFakeToolRepo() *fakeToolRepo {
	return &fakeToolRepo{tools: map[int64]*domain.Tool{}}
}

func (r *fakeToolRepo) Create(_ context.Context, tool *domain.Tool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	tool.ID = r.seq
	tool.CreatedAt = time.Now()
	tool.UpdatedAt = tool.CreatedAt
	r.tools[tool.ID] = tool
	return nil
}

func (r *fakeToolRepo) GetByID(_ context.Context, id int64) (*domain.Tool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if tool, ok := r.tools[id]; ok {
		return tool, nil
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeToolRepo) GetByKey(_ context.Context, key string) (*domain.Tool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, tool := range r.tools {
		if tool.Key == key {
			return tool, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeToolRepo) List(_ context.Context) ([]*domain.Tool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Tool, 0, len(r.tools))
	for _, tool := range r.tools {
		out = append(out, tool)
	}
	return out, nil
}

func (r *fakeToolRepo) ListActive(_ context.Context) ([]*domain.Tool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listActiveCalls++
	out := []*domain.Tool{}
	for _, tool := range r.tools {
		if tool.Active {
			out = append(out, tool)
		}
	}
	return out, nil
}

func (r *fakeToolRepo) UpdateStatus(_ context.Context, id int64, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	tool, ok := r.tools[id]
	if !ok {
		return pgx.ErrNoRows
	}
	tool.Active = active
	tool.UpdatedAt = time.Now()
	return nil
}

func (r *fakeToolRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tools[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.tools, id)
	return nil
}

func (r *fakeToolRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.tools)), nil
}

func TestToolServiceListActiveWithoutCache(t *testing.T) {
	repo := newFakeToolRepo()
	svc := NewToolService(repo, nil, zap.NewNop())
	ctx := context.Background()

	require.NoError(t, svc.Create(ctx, &domain.Tool{Key: "uuid-generator", Title: "UUID Generator", Active: true}))
	require.NoError(t, svc.Create(ctx, &domain.Tool{Key: "retired-tool", Title: "Retired", Active: false}))

	active, err := svc.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "uuid-generator", active[0].Key)
	assert.Equal(t, 1, repo.listActiveCalls, "nil cache falls through to the repository")
}

func TestToolServiceUpdateStatus(t *testing.T) {
	repo := newFakeToolRepo()
	svc := NewToolService(repo, nil, zap.NewNop())
	ctx := context.Background()

	tool := &domain.Tool{Key: "hash-generator", Title: "Hash Generator", Active: true}
	require.NoError(t, svc.Create(ctx, tool))

	updated, err := svc.UpdateStatus(ctx, tool.ID, false)
	require.NoError(t, err)
	assert.False(t, updated.Active)

	active, err := svc.ListActive(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestToolServiceUpdateStatusUnknownID(t *testing.T) {
	svc := NewToolService(newFakeToolRepo(), nil, zap.NewNop())

	_, err := svc.UpdateStatus(context.Background(), 404, true)
	assert.ErrorIs(t, err, pgx.ErrNoRows)
}

func TestToolServiceDelete(t *testing.T) {
	repo := newFakeToolRepo()
	svc := NewToolService(repo, nil, zap.NewNop())
	ctx := context.Background()

	tool := &domain.Tool{Key: "regex-tester", Title: "Regex Tester", Active: true}
	require.NoError(t, svc.Create(ctx, tool))
	require.NoError(t, svc.Delete(ctx, tool.ID))

	_, err := svc.GetByID(ctx, tool.ID)
	assert.ErrorIs(t, err, pgx.ErrNoRows)
}
