package ports

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubChecker implements HealthChecker for testing.
type stubChecker struct {
	name string
	err  error
}

func (s *stubChecker) Name() string {
	return s.name
}

func (s *stubChecker) Check(context.Context) error {
	return s.err
}

// slowChecker waits for ctx or a fixed delay.
type slowChecker struct {
	name string
}

func (s *slowChecker) Name() string {
	return s.name
}

func (s *slowChecker) Check(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(100 * time.Millisecond):
		return nil
	}
}

func TestRegister(t *testing.T) {
	registry := NewHealthRegistry()

	require.NoError(t, registry.Register(&stubChecker{name: "quotes-csv"}))

	err := registry.Register(&stubChecker{name: "quotes-csv"})

	require.ErrorIs(t, err, ErrDuplicateChecker)
	assert.Contains(t, err.Error(), "quotes-csv")
	assert.Len(t, registry.checkers, 1)
}

func TestCheckAll(t *testing.T) {
	tests := []struct {
		name         string
		checkers     []HealthChecker
		wantStatus   HealthStatus
		wantMessages map[string]string
	}{
		{
			name:         "no checkers",
			wantStatus:   HealthStatusHealthy,
			wantMessages: map[string]string{},
		},
		{
			name: "all healthy",
			checkers: []HealthChecker{
				&stubChecker{name: "quotes-csv"},
				&stubChecker{name: "quote-api"},
			},
			wantStatus:   HealthStatusHealthy,
			wantMessages: map[string]string{"quotes-csv": "", "quote-api": ""},
		},
		{
			name: "one unhealthy",
			checkers: []HealthChecker{
				&stubChecker{name: "quotes-csv"},
				&stubChecker{name: "quote-api", err: errors.New("connection refused")},
			},
			wantStatus:   HealthStatusUnhealthy,
			wantMessages: map[string]string{"quotes-csv": "", "quote-api": "connection refused"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry := NewHealthRegistry()
			for _, c := range tt.checkers {
				require.NoError(t, registry.Register(c))
			}

			result := registry.CheckAll(context.Background())

			require.NotNil(t, result)
			assert.Equal(t, tt.wantStatus, result.Status)
			assert.False(t, result.Timestamp.IsZero())
			require.Len(t, result.Checks, len(tt.wantMessages))

			for name, msg := range tt.wantMessages {
				require.Contains(t, result.Checks, name)
				assert.Equal(t, msg, result.Checks[name].Message)

				wantCheck := HealthStatusHealthy
				if msg != "" {
					wantCheck = HealthStatusUnhealthy
				}

				assert.Equal(t, wantCheck, result.Checks[name].Status)
			}
		})
	}
}

func TestCheckAll_ContextCancelled(t *testing.T) {
	registry := NewHealthRegistry()
	require.NoError(t, registry.Register(&slowChecker{name: "quotes-sqlite"}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := registry.CheckAll(ctx)

	assert.Equal(t, HealthStatusUnhealthy, result.Status)
	assert.Contains(t, result.Checks["quotes-sqlite"].Message, "context canceled")
}

func TestCheckAll_RunsConcurrently(t *testing.T) {
	registry := NewHealthRegistry()
	for _, name := range []string{"a", "b", "c", "d"} {
		require.NoError(t, registry.Register(&slowChecker{name: name}))
	}

	start := time.Now()
	result := registry.CheckAll(context.Background())

	assert.Equal(t, HealthStatusHealthy, result.Status)
	assert.Less(t, time.Since(start), 350*time.Millisecond, "four 100ms checks should overlap")
}

func TestCheckAll_PerCheckTimeout(t *testing.T) {
	registry := NewHealthRegistry(WithCheckTimeout(10 * time.Millisecond))
	require.NoError(t, registry.Register(&slowChecker{name: "quote-api"}))
	require.NoError(t, registry.Register(&stubChecker{name: "quotes-csv"}))

	result := registry.CheckAll(context.Background())

	assert.Equal(t, HealthStatusUnhealthy, result.Status)
	assert.Contains(t, result.Checks["quote-api"].Message, "deadline exceeded")
	assert.Equal(t, HealthStatusHealthy, result.Checks["quotes-csv"].Status)
}

func TestCheckAll_TimeoutDisabled(t *testing.T) {
	registry := NewHealthRegistry(WithCheckTimeout(0))
	require.NoError(t, registry.Register(&slowChecker{name: "quote-api"}))

	result := registry.CheckAll(context.Background())

	assert.Equal(t, HealthStatusHealthy, result.Status)
}
