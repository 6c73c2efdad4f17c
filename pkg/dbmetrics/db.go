package dbmetrics

import (
	"context"
	"database/sql"
	"time"

	"github.com/bontle/BB-BookingService/pkg/metrics"
)

// DB обёртка над *sql.DB, снимающая метрики по каждому запросу
type DB struct {
	db      *sql.DB
	metrics *metrics.Metrics
	name    string
}

// Tx обёртка над *sql.Tx с метриками
type Tx struct {
	tx      *sql.Tx
	metrics *metrics.Metrics
	name    string
}

// Wrap оборачивает *sql.DB сборщиком метрик
func Wrap(db *sql.DB, m *metrics.Metrics, name string) *DB {
	return &DB{db: db, metrics: m, name: name}
}

// WrapWithDefault оборачивает *sql.DB и запускает периодический сбор
// статистики connection pool. Остановка - закрытием stopCh.
func WrapWithDefault(db *sql.DB, m *metrics.Metrics, name string, stopCh <-chan struct{}) *DB {
	wrapped := Wrap(db, m, name)
	go wrapped.collectPoolStats(stopCh)
	return wrapped
}

func (d *DB) collectPoolStats(stopCh <-chan struct{}) {
	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()

	var lastWaits int64
	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			stats := d.db.Stats()
			d.metrics.SetPoolStats(d.name, stats.OpenConnections, stats.Idle, stats.InUse, stats.WaitCount-lastWaits)
			lastWaits = stats.WaitCount
		}
	}
}

func (d *DB) observe(operation string, start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	d.metrics.ObserveDBQuery(operation, status, time.Since(start))
}

// QueryContext выполняет запрос с метриками
func (d *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := d.db.QueryContext(ctx, query, args...)
	d.observe("query", start, err)
	return rows, err
}

// QueryRowContext выполняет запрос одной строки с метриками
func (d *DB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := d.db.QueryRowContext(ctx, query, args...)
	d.observe("query_row", start, nil)
	return row
}

// ExecContext выполняет запрос без результата с метриками
func (d *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	res, err := d.db.ExecContext(ctx, query, args...)
	d.observe("exec", start, err)
	return res, err
}

// BeginTx начинает транзакцию; запросы внутри неё тоже снимают метрики
func (d *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (TxExecutor, error) {
	start := time.Now()
	tx, err := d.db.BeginTx(ctx, opts)
	d.observe("begin_tx", start, err)
	if err != nil {
		return nil, err
	}
	return &Tx{tx: tx, metrics: d.metrics, name: d.name}, nil
}

func (t *Tx) observe(operation string, start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	t.metrics.ObserveDBQuery(operation, status, time.Since(start))
}

// QueryContext выполняет запрос в транзакции с метриками
func (t *Tx) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := t.tx.QueryContext(ctx, query, args...)
	t.observe("tx_query", start, err)
	return rows, err
}

// QueryRowContext выполняет запрос одной строки в транзакции с метриками
func (t *Tx) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := t.tx.QueryRowContext(ctx, query, args...)
	t.observe("tx_query_row", start, nil)
	return row
}

// ExecContext выполняет запрос без результата в транзакции с метриками
func (t *Tx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	res, err := t.tx.ExecContext(ctx, query, args...)
	t.observe("tx_exec", start, err)
	return res, err
}

// Commit фиксирует транзакцию
func (t *Tx) Commit() error {
	start := time.Now()
	err := t.tx.Commit()
	t.observe("tx_commit", start, err)
	return err
}

// Rollback откатывает транзакцию
func (t *Tx) Rollback() error {
	start := time.Now()
	err := t.tx.Rollback()
	t.observe("tx_rollback", start, err)
	return err
}
