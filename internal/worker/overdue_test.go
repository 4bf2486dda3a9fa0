package worker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/saakhtemaan/internal/models"
	"github.com/mmynk/saakhtemaan/internal/storage/sqlite"
)

type fakeMarker struct {
	mu    sync.Mutex
	calls []time.Time
	n     int64
	err   error
}

func (f *fakeMarker) MarkOverdue(_ context.Context, now time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, now)
	return f.n, f.err
}

func (f *fakeMarker) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewSchedulerRejectsBadSpec(t *testing.T) {
	_, err := NewScheduler(&fakeMarker{}, "not a schedule", time.UTC, quietLogger())
	assert.Error(t, err)
}

func TestRunOnce(t *testing.T) {
	fixed := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)

	t.Run("returns marked count", func(t *testing.T) {
		marker := &fakeMarker{n: 3}
		s, err := NewScheduler(marker, "@daily", time.UTC, quietLogger())
		require.NoError(t, err)
		s.now = func() time.Time { return fixed }

		assert.Equal(t, int64(3), s.RunOnce(context.Background()))
		require.Len(t, marker.calls, 1)
		assert.Equal(t, fixed, marker.calls[0])
	})

	t.Run("store error is swallowed", func(t *testing.T) {
		marker := &fakeMarker{n: 5, err: errors.New("database is locked")}
		s, err := NewScheduler(marker, "@daily", time.UTC, quietLogger())
		require.NoError(t, err)

		assert.Equal(t, int64(0), s.RunOnce(context.Background()))
	})
}

func TestRunStopsWithContext(t *testing.T) {
	marker := &fakeMarker{}
	s, err := NewScheduler(marker, "@hourly", time.UTC, quietLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	require.Eventually(t, func() bool { return marker.callCount() == 1 }, time.Second, 10*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRunOnceAgainstSQLite(t *testing.T) {
	store, err := sqlite.New(filepath.Join(t.TempDir(), "worker.db"))
	require.NoError(t, err)
	defer store.Close()
	ctx := context.Background()

	user := models.NewUser("m@example.com", "m", "hash")
	require.NoError(t, store.CreateUser(ctx, user))
	building := &models.Building{ManagerID: user.ID, Name: "b"}
	require.NoError(t, store.CreateBuilding(ctx, building))
	unit := &models.Unit{BuildingID: building.ID, Number: "1", Area: 50, Coefficient: 1}
	require.NoError(t, store.CreateUnit(ctx, unit))

	charge := &models.Charge{BuildingID: building.ID, Title: "c", PeriodYear: 1404, PeriodMonth: 6}
	require.NoError(t, store.CreateCharge(ctx, charge))

	issuedAt := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	due := issuedAt.Add(10 * 24 * time.Hour)
	require.NoError(t, store.IssueCharge(ctx, charge.ID, due.Unix(), issuedAt.Unix(),
		[]*models.UnitCharge{{UnitID: unit.ID, Amount: 100_000}}))

	s, err := NewScheduler(store, "@daily", time.UTC, quietLogger())
	require.NoError(t, err)

	s.now = func() time.Time { return due.Add(-time.Hour) }
	assert.Equal(t, int64(0), s.RunOnce(ctx), "not yet due")

	s.now = func() time.Time { return due.Add(time.Hour) }
	assert.Equal(t, int64(1), s.RunOnce(ctx))
	assert.Equal(t, int64(0), s.RunOnce(ctx), "already overdue")

	ucs, err := store.ListUnitChargesByCharge(ctx, charge.ID)
	require.NoError(t, err)
	require.Len(t, ucs, 1)
	assert.Equal(t, models.UnitChargeOverdue, ucs[0].Status)
}
