package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"material_market_backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type countingExpirer struct {
	calls   atomic.Int32
	lastTTL atomic.Int64
}

func (e *countingExpirer) ExpireIdle(ctx context.Context, olderThan time.Duration) int {
	e.calls.Add(1)
	e.lastTTL.Store(int64(olderThan))
	return 2
}

func TestPurchaseJanitorJob_RunJobUsesTTL(t *testing.T) {
	expirer := &countingExpirer{}
	core, logs := observer.New(zap.InfoLevel)
	job := NewPurchaseJanitorJob(expirer, zap.New(core), &config.Config{PurchaseSessionTTL: 30 * time.Minute})

	job.runJob()

	assert.Equal(t, int32(1), expirer.calls.Load())
	assert.Equal(t, int64(30*time.Minute), expirer.lastTTL.Load())
	require.Equal(t, 1, logs.FilterMessage("Expired idle purchase sessions").Len())
}

func TestPurchaseJanitorJob_DisabledWithoutSchedule(t *testing.T) {
	job := NewPurchaseJanitorJob(&countingExpirer{}, zap.NewNop(), &config.Config{PurchaseSessionTTL: time.Hour})
	require.NoError(t, job.SetupAndStart())
	assert.Empty(t, job.cronScheduler.Entries())
	job.Stop()
}

func TestPurchaseJanitorJob_InvalidSchedule(t *testing.T) {
	job := NewPurchaseJanitorJob(&countingExpirer{}, zap.NewNop(), &config.Config{
		PurchaseSessionTTL:             time.Hour,
		PurchaseSessionJanitorSchedule: "not a schedule",
	})
	assert.Error(t, job.SetupAndStart())
}

func TestPurchaseJanitorJob_SchedulesAndStops(t *testing.T) {
	job := NewPurchaseJanitorJob(&countingExpirer{}, zap.NewNop(), &config.Config{
		PurchaseSessionTTL:             time.Hour,
		PurchaseSessionJanitorSchedule: "@every 1h",
	})
	require.NoError(t, job.SetupAndStart())
	assert.Len(t, job.cronScheduler.Entries(), 1)
	job.Stop()
}

func TestCronLogger_Error(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := NewCronLogger(zap.New(core))

	l.Info("tick", "entry", 1, "dangling")
	l.Error(errors.New("boom"), "job failed", "entry", 1)

	require.Equal(t, 2, logs.Len())
	entries := logs.All()
	assert.Equal(t, "MISSING_VALUE", entries[0].ContextMap()["dangling"])
	assert.Equal(t, "boom", entries[1].ContextMap()["error"])
}
