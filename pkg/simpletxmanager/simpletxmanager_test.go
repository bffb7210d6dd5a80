package simpletxmanager

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"sync"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Менеджер работает с конкретным *sql.DB, поэтому ошибки коммита
// подставляются на уровне драйвера database/sql.

type stubDriver struct {
	mu         sync.Mutex
	commitErrs []error
	begins     int
}

func (d *stubDriver) reset(commitErrs ...error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.commitErrs = commitErrs
	d.begins = 0
}

func (d *stubDriver) beginCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.begins
}

func (d *stubDriver) Open(string) (driver.Conn, error) {
	return &stubConn{d: d}, nil
}

type stubConn struct {
	d *stubDriver
}

func (c *stubConn) Prepare(string) (driver.Stmt, error) {
	return nil, errors.New("stub: prepare is not supported")
}

func (c *stubConn) Close() error { return nil }

func (c *stubConn) Begin() (driver.Tx, error) {
	return c.beginTx()
}

// BeginTx нужен, чтобы database/sql пропустил запрос
// несерийного уровня изоляции до драйвера
func (c *stubConn) BeginTx(_ context.Context, _ driver.TxOptions) (driver.Tx, error) {
	return c.beginTx()
}

func (c *stubConn) beginTx() (driver.Tx, error) {
	c.d.mu.Lock()
	defer c.d.mu.Unlock()

	var commitErr error
	if c.d.begins < len(c.d.commitErrs) {
		commitErr = c.d.commitErrs[c.d.begins]
	}
	c.d.begins++
	return &stubTx{commitErr: commitErr}, nil
}

type stubTx struct {
	commitErr error
}

func (t *stubTx) Commit() error   { return t.commitErr }
func (t *stubTx) Rollback() error { return nil }

var testDriver = &stubDriver{}

func init() {
	sql.Register("stubtx", testDriver)
}

func openTestDB(t *testing.T, commitErrs ...error) *sql.DB {
	t.Helper()
	testDriver.reset(commitErrs...)

	db, err := sql.Open("stubtx", "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// ---------- Tests ----------

func TestDoSerializable_RetriesOnCommitSerializationFailure(t *testing.T) {
	db := openTestDB(t, &pq.Error{Code: "40001"}, nil)
	m := NewTransactionManager(db)

	calls := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, testDriver.beginCount(), "проигравшая на коммите транзакция должна повториться")
	assert.Equal(t, 2, calls)
}

func TestDoSerializable_ExhaustsRetries(t *testing.T) {
	db := openTestDB(t,
		&pq.Error{Code: "40001"},
		&pq.Error{Code: "40001"},
		&pq.Error{Code: "40001"},
	)
	m := NewTransactionManager(db)

	err := m.DoSerializable(context.Background(), func(ctx context.Context) error { return nil })

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTxCommit)
	assert.Equal(t, maxRetries, testDriver.beginCount())

	// Причина должна оставаться достижимой через errors.As
	var pqErr *pq.Error
	require.ErrorAs(t, err, &pqErr)
	assert.Equal(t, pq.ErrorCode("40001"), pqErr.Code)
}

func TestDoSerializable_NoRetryOnOrdinaryCommitError(t *testing.T) {
	db := openTestDB(t, errors.New("connection reset"))
	m := NewTransactionManager(db)

	err := m.DoSerializable(context.Background(), func(ctx context.Context) error { return nil })

	assert.ErrorIs(t, err, ErrTxCommit)
	assert.Equal(t, 1, testDriver.beginCount())
}

func TestDoSerializable_NoRetryOnOrdinaryFnError(t *testing.T) {
	db := openTestDB(t)
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
