package bench

import (
	"context"
	"fmt"
	"github.com/pgvanniekerk/ezpool/internal/config"
	"github.com/pgvanniekerk/ezpool/internal/metrics"
	"github.com/pgvanniekerk/ezpool/pool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
	"io"
	"sort"
	"sync/atomic"
	"time"
)

// Report summarizes a bench run.
type Report struct {
	Workers     int                `yaml:"workers"`
	Producers   int                `yaml:"producers"`
	Jobs        int                `yaml:"jobs"`
	Executed    int64              `yaml:"executed"`
	JobDuration time.Duration      `yaml:"job_duration"`
	Elapsed     time.Duration      `yaml:"elapsed"`
	Sequential  time.Duration      `yaml:"sequential"`
	Metrics     map[string]float64 `yaml:"metrics"`
}

// Run submits cfg.Jobs sleeping jobs to a pool of cfg.Workers workers from cfg.Producers
// goroutines, closes the pool and reports how long the drain took.
// Cancelling ctx stops the producers early; the jobs already submitted still run, and
// the partial report is returned together with the context's error. An invalid cfg is
// rejected before any worker is started.
func Run(ctx context.Context, cfg *config.Config, logger logrus.FieldLogger) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	reg := prometheus.NewRegistry()
	m, err := pool.NewMetrics(reg, "ezpool")
	if err != nil {
		return nil, err
	}

	executed := &atomic.Int64{}
	p := pool.New(uint16(cfg.Workers), pool.WithLogger(logger), pool.WithMetrics(m))

	start := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	for producer := 0; producer < cfg.Producers; producer++ {
		producer := producer
		g.Go(func() error {
			for i := producer; i < cfg.Jobs; i += cfg.Producers {
				if err := gctx.Err(); err != nil {
					return err
				}
				p.Submit(func() {
					time.Sleep(cfg.JobDuration)
					executed.Add(1)
				})
			}
			return nil
		})
	}

	submitErr := g.Wait()
	p.Close()

	report := &Report{
		Workers:     cfg.Workers,
		Producers:   cfg.Producers,
		Jobs:        cfg.Jobs,
		Executed:    executed.Load(),
		JobDuration: cfg.JobDuration,
		Elapsed:     time.Since(start),
		Sequential:  time.Duration(cfg.Jobs) * cfg.JobDuration,
	}

	report.Metrics, err = metrics.Snapshot(reg)
	if err != nil {
		return report, err
	}

	if submitErr != nil {
		return report, fmt.Errorf("submitting jobs: %w", submitErr)
	}

	return report, nil
}

// Write renders r to w in the given output format.
func (r *Report) Write(w io.Writer, format string) error {
	switch format {
	case config.OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
		return enc.Close()

	case config.OutputText:
		_, err := fmt.Fprintf(w,
			"workers=%d producers=%d jobs=%d executed=%d\njob duration: %s\nelapsed:      %s\nsequential:   %s\n",
			r.Workers, r.Producers, r.Jobs, r.Executed, r.JobDuration, r.Elapsed, r.Sequential)
		if err != nil {
			return err
		}

		names := make([]string, 0, len(r.Metrics))
		for name := range r.Metrics {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			if _, err := fmt.Fprintf(w, "%s %g\n", name, r.Metrics[name]); err != nil {
				return err
			}
		}
		return nil

	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}
