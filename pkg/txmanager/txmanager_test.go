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

	"github.com/WingorOsnova/BarbershopPP/pkg/dbmetrics"
)

// ---------- Fakes ----------

type fakeTx struct {
	commitErr  error
	committed  bool
	rolledBack bool
}

func (t *fakeTx) ExecContext(context.Context, string, ...interface{}) (sql.Result, error) {
	return nil, nil
}

func (t *fakeTx) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (t *fakeTx) QueryRowContext(context.Context, string, ...interface{}) *sql.Row {
	return nil
}

func (t *fakeTx) Commit() error {
	t.committed = true
	return t.commitErr
}

func (t *fakeTx) Rollback() error {
	t.rolledBack = true
	return nil
}

// fakeTxBeginner выдает на каждую попытку транзакцию с заданной ошибкой коммита
type fakeTxBeginner struct {
	commitErrs []error
	begins     int
	txs        []*fakeTx
}

func (b *fakeTxBeginner) BeginTx(_ context.Context, _ *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	var commitErr error
	if b.begins < len(b.commitErrs) {
		commitErr = b.commitErrs[b.begins]
	}
	b.begins++

	tx := &fakeTx{commitErr: commitErr}
	b.txs = append(b.txs, tx)
	return tx, nil
}

func serializationErr() *pq.Error {
	return &pq.Error{Code: "40001"}
}

// ---------- Tests ----------

func TestDoSerializable_RetriesOnCommitSerializationFailure(t *testing.T) {
	db := &fakeTxBeginner{commitErrs: []error{serializationErr(), nil}}
	m := NewTransactionManager(db)

	calls := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, db.begins, "проигравшая на коммите транзакция должна повториться")
	assert.Equal(t, 2, calls)
}

func TestDoSerializable_RetriesOnDeadlockAtCommit(t *testing.T) {
	db := &fakeTxBeginner{commitErrs: []error{&pq.Error{Code: "40P01"}, nil}}
	m := NewTransactionManager(db)

	err := m.DoSerializable(context.Background(), func(ctx context.Context) error { return nil })

	require.NoError(t, err)
	assert.Equal(t, 2, db.begins)
}

func TestDoSerializable_ExhaustsRetries(t *testing.T) {
	db := &fakeTxBeginner{commitErrs: []error{
		serializationErr(), serializationErr(), serializationErr(),
	}}
	m := NewTransactionManager(db)

	err := m.DoSerializable(context.Background(), func(ctx context.Context) error { return nil })

	require.Error(t, err)
	assert.Equal(t, maxRetries, db.begins)
	assert.ErrorIs(t, err, ErrTxCommit)

	// Причина коммит-ошибки должна оставаться достижимой в цепочке
	var pqErr *pq.Error
	require.ErrorAs(t, err, &pqErr)
	assert.Equal(t, pq.ErrorCode("40001"), pqErr.Code)
}

func TestDoSerializable_RetriesOnStatementSerializationFailure(t *testing.T) {
	// Конфликт, всплывший на statement внутри fn и обернутый по дороге,
	// тоже должен приводить к повтору
	db := &fakeTxBeginner{}
	m := NewTransactionManager(db)

	calls := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		if calls == 1 {
			return fmt.Errorf("repo: execute query: %w", serializationErr())
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	require.Len(t, db.txs, 2)
	assert.True(t, db.txs[0].rolledBack, "неудачная попытка должна откатиться")
	assert.True(t, db.txs[1].committed)
}

func TestDoSerializable_NoRetryOnOrdinaryError(t *testing.T) {
	db := &fakeTxBeginner{}
	m := NewTransactionManager(db)

	boom := errors.New("boom")
	calls := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
}

func TestDoSerializable_NoRetryOnOrdinaryCommitError(t *testing.T) {
	db := &fakeTxBeginner{commitErrs: []error{errors.New("connection reset")}}
	m := NewTransactionManager(db)

	err := m.DoSerializable(context.Background(), func(ctx context.Context) error { return nil })

	assert.ErrorIs(t, err, ErrTxCommit)
	assert.Equal(t, 1, db.begins)
}
