package bench

import (
	"bytes"
	"context"
	"errors"
	"github.com/pgvanniekerk/ezpool/internal/config"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

func TestRun_ExecutesEveryJob(t *testing.T) {
	logger, _ := test.NewNullLogger()

	cfg := config.Default()
	cfg.Workers = 4
	cfg.Jobs = 8
	cfg.Producers = 3
	cfg.JobDuration = 20 * time.Millisecond

	report, err := Run(context.Background(), &cfg, logger)
	require.NoError(t, err)

	require.Equal(t, int64(8), report.Executed)
	require.Equal(t, 160*time.Millisecond, report.Sequential)
	require.GreaterOrEqual(t, report.Elapsed, 40*time.Millisecond)
	require.Less(t, report.Elapsed, report.Sequential)

	require.Equal(t, 8.0, report.Metrics["ezpool_pool_jobs_submitted_total"])
	require.Equal(t, 8.0, report.Metrics["ezpool_pool_jobs_executed_total"])
	require.Equal(t, 0.0, report.Metrics["ezpool_pool_live_workers"])
}

func TestRun_CancelledContext(t *testing.T) {
	logger, _ := test.NewNullLogger()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := config.Default()
	cfg.Jobs = 100

	report, err := Run(ctx, &cfg, logger)
	require.Error(t, err)
	require.True(t, errors.Is(err, context.Canceled))
	require.NotNil(t, report)
	require.Equal(t, int64(0), report.Executed)
}

func TestRun_RejectsInvalidConfig(t *testing.T) {
	logger, hook := test.NewNullLogger()

	cfg := config.Default()
	cfg.Workers = 65536

	report, err := Run(context.Background(), &cfg, logger)
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid workers 65536")
	require.Nil(t, report)
	require.Empty(t, hook.AllEntries())
}

func TestReport_Write(t *testing.T) {
	report := &Report{
		Workers:     2,
		Producers:   1,
		Jobs:        4,
		Executed:    4,
		JobDuration: 10 * time.Millisecond,
		Elapsed:     21 * time.Millisecond,
		Sequential:  40 * time.Millisecond,
		Metrics:     map[string]float64{"b_total": 4, "a_total": 2},
	}

	buf := &bytes.Buffer{}
	require.NoError(t, report.Write(buf, config.OutputText))
	require.Contains(t, buf.String(), "workers=2 producers=1 jobs=4 executed=4")
	require.Contains(t, buf.String(), "a_total 2\nb_total 4\n")

	buf.Reset()
	require.NoError(t, report.Write(buf, config.OutputYAML))
	require.Contains(t, buf.String(), "workers: 2")
	require.Contains(t, buf.String(), "job_duration: 10ms")

	require.Error(t, report.Write(buf, "json"))
}
