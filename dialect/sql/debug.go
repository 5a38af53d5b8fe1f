package sql

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/rowandb/rowan/dialect"
)

// LogDriver wraps a dialect.Driver with structured query logging and
// basic counters. Queries exceeding the slow threshold are logged at
// warn level.
type LogDriver struct {
	dialect.Driver
	logger        *slog.Logger
	slowThreshold time.Duration

	queries atomic.Int64
	execs   atomic.Int64
	slow    atomic.Int64
	errors  atomic.Int64
}

// LogOption configures a LogDriver.
type LogOption func(*LogDriver)

// WithLogger sets the logger used for query logging. Defaults to
// slog.Default.
func WithLogger(l *slog.Logger) LogOption {
	return func(d *LogDriver) { d.logger = l }
}

// WithSlowThreshold sets the duration above which a query is reported
// as slow. Defaults to 100ms.
func WithSlowThreshold(t time.Duration) LogOption {
	return func(d *LogDriver) { d.slowThreshold = t }
}

// NewLogDriver wraps drv with logging and counters.
//
//	drv, _ := sql.Open(dialect.Postgres, dsn)
//	logged := sql.NewLogDriver(drv, sql.WithSlowThreshold(200*time.Millisecond))
func NewLogDriver(drv dialect.Driver, opts ...LogOption) *LogDriver {
	d := &LogDriver{
		Driver:        drv,
		logger:        slog.Default(),
		slowThreshold: 100 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Stats is a snapshot of the driver counters.
type Stats struct {
	Queries     int64
	Execs       int64
	SlowQueries int64
	Errors      int64
}

// Stats returns a snapshot of the counters.
func (d *LogDriver) Stats() Stats {
	return Stats{
		Queries:     d.queries.Load(),
		Execs:       d.execs.Load(),
		SlowQueries: d.slow.Load(),
		Errors:      d.errors.Load(),
	}
}

// Query executes a query, logs it, and records counters.
func (d *LogDriver) Query(ctx context.Context, query string, args, v any) error {
	d.queries.Add(1)
	start := time.Now()
	err := d.Driver.Query(ctx, query, args, v)
	d.record(ctx, "query", query, start, err)
	return err
}

// Exec executes a statement, logs it, and records counters.
func (d *LogDriver) Exec(ctx context.Context, query string, args, v any) error {
	d.execs.Add(1)
	start := time.Now()
	err := d.Driver.Exec(ctx, query, args, v)
	d.record(ctx, "exec", query, start, err)
	return err
}

func (d *LogDriver) record(ctx context.Context, op, query string, start time.Time, err error) {
	elapsed := time.Since(start)
	if err != nil {
		d.errors.Add(1)
		d.logger.ErrorContext(ctx, "statement failed", "op", op, "query", query, "elapsed", elapsed, "err", err)
		return
	}
	if elapsed > d.slowThreshold {
		d.slow.Add(1)
		d.logger.WarnContext(ctx, "slow statement", "op", op, "query", query, "elapsed", elapsed)
		return
	}
	d.logger.DebugContext(ctx, op, "query", query, "elapsed", elapsed)
}

var _ dialect.Driver = (*LogDriver)(nil)
