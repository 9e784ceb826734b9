package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/campuslabs/orgfee-api/internal/models"
	appErrors "github.com/campuslabs/orgfee-api/pkg/errors"
)

type mockDashboardRepo struct {
	summary models.DashboardSummary
	calls   int
}

func (m *mockDashboardRepo) Summary(ctx context.Context) (*models.DashboardSummary, error) {
	m.calls++
	s := m.summary
	return &s, nil
}

type mockSummaryCache struct {
	entries map[string][]byte
	sets    int
}

func (m *mockSummaryCache) Get(ctx context.Context, key string, dest interface{}) error {
	raw, ok := m.entries[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *mockSummaryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if m.entries == nil {
		m.entries = make(map[string][]byte)
	}
	m.entries[key] = raw
	m.sets++
	return nil
}

func TestDashboardServiceSummaryPopulatesCache(t *testing.T) {
	repo := &mockDashboardRepo{summary: models.DashboardSummary{Students: 42, OutstandingFees: 1250.50}}
	cache := &mockSummaryCache{}
	svc := NewDashboardService(repo, cache, time.Minute, nil, zap.NewNop())

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, summary.Students)
	assert.Equal(t, 1250.50, summary.OutstandingFees)
	assert.False(t, summary.GeneratedAt.IsZero())
	assert.Equal(t, 1, cache.sets)

	_, err = svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, repo.calls)
}

func TestDashboardServiceSummaryWithoutCache(t *testing.T) {
	repo := &mockDashboardRepo{summary: models.DashboardSummary{Organizations: 7}}
	svc := NewDashboardService(repo, nil, time.Minute, nil, zap.NewNop())

	first, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, first.Organizations)

	_, err = svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, repo.calls)
}
