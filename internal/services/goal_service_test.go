package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finanger/internal/core"
	"finanger/internal/store"
)

func newGoalService(t *testing.T) *GoalService {
	t.Helper()
	goals := store.NewGoalStore(t.TempDir())
	svc := NewGoalService(goals, testLogger())
	svc.now = func() time.Time { return time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC) }
	return svc
}

func validGoal() core.Goal {
	return core.Goal{
		Type:         core.Saving,
		Title:        "Vacation",
		TargetAmount: 1000,
		Deadline:     "2025-12-31",
	}
}

func TestGoalService_CreateStampsDefaults(t *testing.T) {
	ctx := context.Background()
	svc := newGoalService(t)

	stored, err := svc.Create(ctx, "u1", validGoal())
	require.NoError(t, err)
	assert.NotEmpty(t, stored.ID)
	assert.Equal(t, "u1", stored.UserID)
	assert.Equal(t, core.DefaultCurrency, stored.Currency)
}

func TestGoalService_CreateRejectsPastDeadline(t *testing.T) {
	ctx := context.Background()
	svc := newGoalService(t)

	g := validGoal()
	g.Deadline = "2025-06-14"
	_, err := svc.Create(ctx, "u1", g)
	assert.ErrorIs(t, err, ErrDeadlinePassed)

	// Today is still acceptable.
	g.Deadline = "2025-06-15"
	_, err = svc.Create(ctx, "u1", g)
	assert.NoError(t, err)
}

func TestGoalService_CreateValidates(t *testing.T) {
	ctx := context.Background()
	svc := newGoalService(t)

	g := validGoal()
	g.Type = "Retirement"
	_, err := svc.Create(ctx, "u1", g)
	assert.ErrorIs(t, err, core.ErrInvalidGoalType)

	g = validGoal()
	g.Title = "  "
	_, err = svc.Create(ctx, "u1", g)
	assert.ErrorIs(t, err, core.ErrEmptyTitle)

	g = validGoal()
	g.Deadline = "soon"
	_, err = svc.Create(ctx, "u1", g)
	assert.ErrorIs(t, err, core.ErrInvalidDeadline)
}

func TestGoalService_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	svc := newGoalService(t)

	stored, err := svc.Create(ctx, "u1", validGoal())
	require.NoError(t, err)

	stored.CurrentAmount = 250
	require.NoError(t, svc.Update(ctx, "u1", stored))

	got, err := svc.Get(ctx, "u1", stored.ID)
	require.NoError(t, err)
	assert.Equal(t, 250.0, got.CurrentAmount)
	assert.Equal(t, 25.0, got.ProgressPercentage())

	require.NoError(t, svc.Delete(ctx, "u1", stored.ID))
	assert.ErrorIs(t, svc.Delete(ctx, "u1", stored.ID), store.ErrNotFound)
}
