package dbmetrics

import (
	"context"
	"database/sql"
	"strings"
	"time"
)

// DBExecutor is the subset of *sql.DB the repositories use.
type DBExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// Observer receives query timings.
type Observer interface {
	ObserveQuery(operation string, d time.Duration)
	SetConnections(open, inUse, idle int)
}

// DB wraps *sql.DB and reports query latency.
type DB struct {
	db       *sql.DB
	observer Observer
}

// Wrap returns a DB that reports to observer.
func Wrap(db *sql.DB, observer Observer) *DB {
	return &DB{db: db, observer: observer}
}

// WrapWithDefault wraps db and publishes pool stats every 15s until stop is closed.
func WrapWithDefault(db *sql.DB, observer Observer, stop <-chan struct{}) *DB {
	w := Wrap(db, observer)
	go w.collectPoolStats(15*time.Second, stop)
	return w
}

func (d *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	res, err := d.db.ExecContext(ctx, query, args...)
	d.observer.ObserveQuery(operation(query), time.Since(start))
	return res, err
}

func (d *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := d.db.QueryContext(ctx, query, args...)
	d.observer.ObserveQuery(operation(query), time.Since(start))
	return rows, err
}

func (d *DB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := d.db.QueryRowContext(ctx, query, args...)
	d.observer.ObserveQuery(operation(query), time.Since(start))
	return row
}

func (d *DB) collectPoolStats(interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			s := d.db.Stats()
			d.observer.SetConnections(s.OpenConnections, s.InUse, s.Idle)
		}
	}
}

// operation returns the lowercased leading SQL keyword.
func operation(query string) string {
	q := strings.TrimSpace(query)
	if i := strings.IndexAny(q, " \n\t"); i > 0 {
		q = q[:i]
	}
	return strings.ToLower(q)
}
