package sql

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/quercus-db/quercus/dialect"
)

// Stats is a point-in-time snapshot of the statement counters a
// StatsDriver collects.
type Stats struct {
	Queries  int64
	Execs    int64
	Slow     int64
	Errors   int64
	Duration time.Duration
}

// Avg returns the average statement duration.
func (s Stats) Avg() time.Duration {
	total := s.Queries + s.Execs
	if total == 0 {
		return 0
	}
	return s.Duration / time.Duration(total)
}

// String returns a one-line summary.
func (s Stats) String() string {
	return fmt.Sprintf("queries=%d execs=%d duration=%s avg=%s slow=%d errors=%d",
		s.Queries, s.Execs, s.Duration, s.Avg(), s.Slow, s.Errors)
}

// SlowQueryHook is called for every statement exceeding the slow threshold.
type SlowQueryHook func(ctx context.Context, query string, args []any, d time.Duration)

// StatsDriver wraps a Driver and counts every statement it executes.
// Counters are atomics, so reading a snapshot never blocks execution. The
// slow threshold and hook are fixed at construction.
type StatsDriver struct {
	*Driver
	queries   atomic.Int64
	execs     atomic.Int64
	slow      atomic.Int64
	errs      atomic.Int64
	duration  atomic.Int64 // nanoseconds
	threshold time.Duration
	hook      SlowQueryHook
}

// StatsOption configures a StatsDriver.
type StatsOption func(*StatsDriver)

// WithSlowThreshold sets the duration past which a statement counts as
// slow. The default is 100ms.
func WithSlowThreshold(d time.Duration) StatsOption {
	return func(s *StatsDriver) { s.threshold = d }
}

// WithSlowQueryHook installs a callback for slow statements.
func WithSlowQueryHook(hook SlowQueryHook) StatsOption {
	return func(s *StatsDriver) { s.hook = hook }
}

// WithSlowQueryLog logs slow statements through the default slog logger.
// It is a convenience wrapper around WithSlowQueryHook.
func WithSlowQueryLog() StatsOption {
	return WithSlowQueryHook(func(_ context.Context, query string, args []any, d time.Duration) {
		slog.Warn("slow query detected", "duration", d, "query", query, "args", args)
	})
}

// NewStatsDriver wraps drv with statement counting.
//
//	drv, _ := sql.Open(dialect.Postgres, dsn)
//	stats := sql.NewStatsDriver(drv,
//	    sql.WithSlowThreshold(200*time.Millisecond),
//	    sql.WithSlowQueryLog(),
//	)
//	// later:
//	fmt.Println(stats.Stats())
func NewStatsDriver(drv *Driver, opts ...StatsOption) *StatsDriver {
	s := &StatsDriver{Driver: drv, threshold: 100 * time.Millisecond}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Stats returns a snapshot of the counters.
func (d *StatsDriver) Stats() Stats {
	return Stats{
		Queries:  d.queries.Load(),
		Execs:    d.execs.Load(),
		Slow:     d.slow.Load(),
		Errors:   d.errs.Load(),
		Duration: time.Duration(d.duration.Load()),
	}
}

// Reset zeroes the counters.
func (d *StatsDriver) Reset() {
	d.queries.Store(0)
	d.execs.Store(0)
	d.slow.Store(0)
	d.errs.Store(0)
	d.duration.Store(0)
}

// SlowThreshold returns the slow-statement threshold.
func (d *StatsDriver) SlowThreshold() time.Duration { return d.threshold }

// Query executes a query and records it.
func (d *StatsDriver) Query(ctx context.Context, query string, args, v any) error {
	start := time.Now()
	err := d.Driver.Query(ctx, query, args, v)
	d.record(ctx, query, args, start, err, &d.queries)
	return err
}

// Exec executes a statement and records it.
func (d *StatsDriver) Exec(ctx context.Context, query string, args, v any) error {
	start := time.Now()
	err := d.Driver.Exec(ctx, query, args, v)
	d.record(ctx, query, args, start, err, &d.execs)
	return err
}

func (d *StatsDriver) record(ctx context.Context, query string, args any, start time.Time, err error, counter *atomic.Int64) {
	duration := time.Since(start)
	counter.Add(1)
	d.duration.Add(int64(duration))
	if err != nil {
		d.errs.Add(1)
	}
	if duration > d.threshold {
		d.slow.Add(1)
		if d.hook != nil {
			argv, _ := args.([]any)
			d.hook(ctx, query, argv, duration)
		}
	}
}

// Tx starts a transaction whose statements are recorded as well.
func (d *StatsDriver) Tx(ctx context.Context) (dialect.Tx, error) {
	tx, err := d.Driver.Tx(ctx)
	if err != nil {
		return nil, err
	}
	return &StatsTx{Tx: tx, driver: d}, nil
}

// StatsTx records the statements of one transaction into the parent
// driver's counters.
type StatsTx struct {
	dialect.Tx
	driver *StatsDriver
}

// Query executes a query within the transaction and records it.
func (tx *StatsTx) Query(ctx context.Context, query string, args, v any) error {
	start := time.Now()
	err := tx.Tx.Query(ctx, query, args, v)
	tx.driver.record(ctx, query, args, start, err, &tx.driver.queries)
	return err
}

// Exec executes a statement within the transaction and records it.
func (tx *StatsTx) Exec(ctx context.Context, query string, args, v any) error {
	start := time.Now()
	err := tx.Tx.Exec(ctx, query, args, v)
	tx.driver.record(ctx, query, args, start, err, &tx.driver.execs)
	return err
}

var (
	_ dialect.Driver = (*StatsDriver)(nil)
	_ dialect.Tx     = (*StatsTx)(nil)
)

// OpenWithStats opens a connection with statement counting enabled.
func OpenWithStats(dialectName, source string, opts ...StatsOption) (*StatsDriver, error) {
	drv, err := Open(dialectName, source)
	if err != nil {
		return nil, err
	}
	return NewStatsDriver(drv, opts...), nil
}
