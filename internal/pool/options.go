package pool

import (
	"github.com/pgvanniekerk/ezpool/internal/metrics"
	"github.com/sirupsen/logrus"
)

// options represents the configuration of a Pool.
type options struct {
	logger  logrus.FieldLogger
	metrics *metrics.Metrics
}

// Option defines a functional option for customizing a Pool by modifying options.
type Option func(*options)

// WithLogger sets the logger Workers write their trace lines to. A nil logger is ignored.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMetrics sets the collectors updated as Jobs are submitted and executed.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}
