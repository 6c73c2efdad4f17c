package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/bontle/BB-BookingService/pkg/dbmetrics"
)

var (
	// ErrTxFailed возвращается при ошибке начала/фиксации транзакции
	ErrTxFailed = errors.New("txmanager: transaction failed")

	// ErrSerializationConflict возвращается, когда SERIALIZABLE транзакция
	// не смогла зафиксироваться из-за конкурентной транзакции (SQLSTATE 40001).
	// Вызывающий может повторить операцию.
	ErrSerializationConflict = errors.New("txmanager: serialization conflict")
)

// TxBeginner то, что умеет начинать транзакции (например *dbmetrics.DB)
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error)
}

// TransactionManager выполняет функции внутри транзакции.
// Транзакция кладётся в контекст, репозитории достают её через dbmetrics.GetExecutor.
type TransactionManager struct {
	db TxBeginner
}

// NewTransactionManager создает новый transaction manager
func NewTransactionManager(db TxBeginner) *TransactionManager {
	return &TransactionManager{db: db}
}

// Do выполняет fn в транзакции с уровнем изоляции по умолчанию
func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{}, fn)
}

// DoSerializable выполняет fn в транзакции SERIALIZABLE.
// Используется для check-and-book сценариев, где нужна защита от гонок.
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable}, fn)
}

// DoReadOnly выполняет fn в read-only транзакции
func (m *TransactionManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{ReadOnly: true}, fn)
}

func (m *TransactionManager) run(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) error {
	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("%w: begin: %v", ErrTxFailed, err)
	}

	txCtx := dbmetrics.WithTransaction(ctx, tx)

	if err := fn(txCtx); err != nil {
		// Ошибка бизнес-логики - откатываем и отдаём её как есть
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			return fmt.Errorf("%w: rollback after %v: %v", ErrTxFailed, err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		if isSerializationFailure(err) {
			return fmt.Errorf("%w: commit: %v", ErrSerializationConflict, err)
		}
		return fmt.Errorf("%w: commit: %v", ErrTxFailed, err)
	}

	return nil
}

func isSerializationFailure(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "40001"
}
