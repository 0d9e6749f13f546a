package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmarkin/TirePoint-SchedulingService/pkg/dbmetrics"
)

type fakeTx struct{}

func (fakeTx) ExecContext(context.Context, string, ...interface{}) (sql.Result, error) {
	return nil, nil
}

func (fakeTx) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (fakeTx) QueryRowContext(context.Context, string, ...interface{}) *sql.Row {
	return nil
}

func (fakeTx) Commit() error   { return nil }
func (fakeTx) Rollback() error { return nil }

type fakeBeginner struct {
	begun int
}

func (b *fakeBeginner) BeginTx(context.Context, *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	b.begun++
	return fakeTx{}, nil
}

// serializationConflict воспроизводит ошибку драйвера, прошедшую через
// обертки репозитория, сервиса доступности и usecase
func serializationConflict() error {
	driverErr := &pq.Error{Code: "40001"}
	repoErr := fmt.Errorf("%w: GetOccupyingForDate - execute query: %w",
		errors.New("booking: failed to execute query"), driverErr)
	svcErr := fmt.Errorf("%w: CheckAt - get occupying bookings: %w",
		errors.New("availability: internal error"), repoErr)
	return fmt.Errorf("%w: availability check failed: %w",
		errors.New("create_booking: internal error"), svcErr)
}

func TestDoSerializable_RetriesOnWrappedConflict(t *testing.T) {
	beginner := &fakeBeginner{}
	m := NewTransactionManager(beginner)

	attempts := 0
	err := m.DoSerializable(context.Background(), func(context.Context) error {
		attempts++
		if attempts < 3 {
			return serializationConflict()
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
	assert.Equal(t, 3, beginner.begun)
}

func TestDoSerializable_RetriesExhausted(t *testing.T) {
	m := NewTransactionManager(&fakeBeginner{})

	attempts := 0
	err := m.DoSerializable(context.Background(), func(context.Context) error {
		attempts++
		return serializationConflict()
	})

	assert.ErrorIs(t, err, ErrRetriesExhausted)
	assert.Equal(t, maxSerializableRetries, attempts)
}

func TestDoSerializable_NonRetryableFailsFast(t *testing.T) {
	m := NewTransactionManager(&fakeBeginner{})

	boom := errors.New("constraint violation")
	attempts := 0
	err := m.DoSerializable(context.Background(), func(context.Context) error {
		attempts++
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, attempts)
}

func TestIsSerializationFailure(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"wrapped through all layers", serializationConflict(), true},
		{"commit wrap", fmt.Errorf("%w: %w", ErrTxCommit, &pq.Error{Code: "40001"}), true},
		{"bare driver error", &pq.Error{Code: "40001"}, true},
		{"other sqlstate", fmt.Errorf("%w: %w", ErrTxCommit, &pq.Error{Code: "23505"}), false},
		{"plain error", errors.New("boom"), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, isSerializationFailure(tc.err))
		})
	}
}
