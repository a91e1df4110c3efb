package main

import (
	"context"
	"fmt"
	"github.com/pgvanniekerk/ezpool/internal/bench"
	"github.com/pgvanniekerk/ezpool/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		logrus.WithError(err).Error("ezpool-bench failed")
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "ezpool-bench",
		Short: "Drive a fixed-size worker pool with sleeping jobs",
		Long: `ezpool-bench submits a number of sleeping jobs to a fixed-size worker pool from one or
more producer goroutines, closes the pool and reports how long draining it took.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Flags(), configPath)
			if err != nil {
				return err
			}

			logger := logrus.New()
			logger.SetOutput(cmd.ErrOrStderr())
			level, err := logrus.ParseLevel(cfg.LogLevel)
			if err != nil {
				return fmt.Errorf("invalid log-level: %w", err)
			}
			logger.SetLevel(level)

			report, err := bench.Run(cmd.Context(), cfg, logger)
			if report != nil {
				if werr := report.Write(cmd.OutOrStdout(), cfg.Output); werr != nil {
					return werr
				}
			}
			return err
		},
	}

	def := config.Default()
	flags := cmd.Flags()
	flags.StringVar(&configPath, "config", "", "Path to a YAML config file")
	flags.Int("workers", def.Workers, "Number of workers in the pool")
	flags.Int("jobs", def.Jobs, "Number of jobs to submit")
	flags.Duration("job-duration", def.JobDuration, "How long each job sleeps")
	flags.Int("producers", def.Producers, "Number of goroutines submitting jobs")
	flags.String("log-level", def.LogLevel, "Log level (trace, debug, info, warn, error)")
	flags.String("output", def.Output, "Report format (text, yaml)")

	return cmd
}
