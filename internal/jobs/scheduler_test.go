package jobs

import (
	"bytes"
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petcare-hub/internal/platform/logger"
	"petcare-hub/internal/platform/metrics"
)

func TestAdd_Validation(t *testing.T) {
	s := New(nil)
	noop := func(context.Context) (int, error) { return 0, nil }

	require.NoError(t, s.Add("sweep", "@every 1m", noop))
	assert.Error(t, s.Add("sweep", "@every 1m", noop))
	assert.Error(t, s.Add("broken", "every minute", noop))
	assert.Error(t, s.Add("", "@every 1m", noop))
	require.NoError(t, s.Add("manual", "", noop))
	assert.Len(t, s.cron.Entries(), 1)
}

func TestRunNow_CountsAndLogs(t *testing.T) {
	var buf bytes.Buffer
	m := metrics.New()
	s := New(logger.New(logger.Options{Level: logger.Debug, Format: logger.FormatJSON, Output: &buf}), WithMetrics(m))

	require.NoError(t, s.Add("invites", "", func(context.Context) (int, error) { return 3, nil }))
	require.NoError(t, s.Add("reminders", "", func(context.Context) (int, error) { return 0, errors.New("db down") }))

	require.NoError(t, s.RunNow("invites"))
	assert.Error(t, s.RunNow("reminders"))
	assert.Error(t, s.RunNow("missing"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.JobRuns.WithLabelValues("invites", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.JobRuns.WithLabelValues("reminders", "error")))
	assert.Contains(t, buf.String(), `"processed":3`)
	assert.Contains(t, buf.String(), `"error":"db down"`)
}

func TestScheduledRun(t *testing.T) {
	s := New(nil)
	var runs atomic.Int32
	require.NoError(t, s.Add("tick", "@every 1s", func(ctx context.Context) (int, error) {
		runs.Add(1)
		return 1, nil
	}))

	s.Start()
	require.Eventually(t, func() bool { return runs.Load() > 0 }, 3*time.Second, 50*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, s.Stop(ctx))
}
