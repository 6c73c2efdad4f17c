package booking

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bontle/BB-BookingService/pkg/dbmetrics"
	"github.com/bontle/BB-BookingService/pkg/psqlbuilder"
)

func selectByID() squirrel.SelectBuilder {
	return psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": "b-1"})
}

func TestLockInTransaction_OutsideTransaction(t *testing.T) {
	query, _, err := lockInTransaction(context.Background(), selectByID()).ToSql()
	require.NoError(t, err)

	assert.NotContains(t, query, "FOR UPDATE")
}

func TestLockInTransaction_InsideTransaction(t *testing.T) {
	// Пустая *sql.Tx достаточна: проверяется только наличие транзакции
	// в контексте, сам запрос не выполняется
	ctx := dbmetrics.WithTransaction(context.Background(), (*sql.Tx)(nil))

	query, _, err := lockInTransaction(ctx, selectByID()).ToSql()
	require.NoError(t, err)

	// Смена статуса читает бронирование в транзакции - без блокировки два
	// параллельных перехода прочитали бы один и тот же исходный статус
	assert.True(t, strings.HasSuffix(query, "FOR UPDATE"), "query = %s", query)
}
