package booking

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WingorOsnova/BarbershopPP/internal/domain"
	"github.com/WingorOsnova/BarbershopPP/pkg/dbmetrics"
)

// ---------- Fakes ----------

// recordingExecutor запоминает последний запрос и его аргументы.
// Запросы с результатом обрываются ошибкой: здесь проверяется SQL, а не скан.
type recordingExecutor struct {
	query  string
	args   []interface{}
	result sql.Result
}

var errRecorded = errors.New("recorded")

func (e *recordingExecutor) ExecContext(_ context.Context, query string, args ...interface{}) (sql.Result, error) {
	e.query, e.args = query, args
	return e.result, nil
}

func (e *recordingExecutor) QueryContext(_ context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	e.query, e.args = query, args
	return nil, errRecorded
}

func (e *recordingExecutor) QueryRowContext(_ context.Context, query string, args ...interface{}) *sql.Row {
	e.query, e.args = query, args
	return nil
}

type recordingTxExecutor struct {
	recordingExecutor
}

func (e *recordingTxExecutor) Commit() error   { return nil }
func (e *recordingTxExecutor) Rollback() error { return nil }

type stubResult struct {
	rows int64
}

func (r stubResult) LastInsertId() (int64, error) { return 0, nil }
func (r stubResult) RowsAffected() (int64, error) { return r.rows, nil }

// Фейковый executor не возвращает строк, поэтому ветки со сканом обрываются.
// Для проверки сгенерированного SQL этого достаточно.
func captureQuery(fn func()) {
	defer func() { _ = recover() }()
	fn()
}

// ---------- Tests ----------

var testDate = time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)

func TestGetActiveTimes_OnlyActiveStatusesBlockSlot(t *testing.T) {
	exec := &recordingExecutor{}
	repo := NewRepository(exec)

	_, err := repo.GetActiveTimes(context.Background(), 1, testDate)
	require.ErrorIs(t, err, ErrExecQuery)

	// Слот держат только pending и confirmed: отмененная, завершенная или
	// пропущенная запись освобождает время
	assert.Contains(t, exec.query, "status IN (")
	assert.Contains(t, exec.args, "pending")
	assert.Contains(t, exec.args, "confirmed")
	assert.NotContains(t, exec.args, "canceled")
	assert.NotContains(t, exec.args, "completed")
	assert.NotContains(t, exec.args, "no_show")
}

func TestGetActiveTimes_LocksRowsInsideTransaction(t *testing.T) {
	plain := &recordingExecutor{}
	repo := NewRepository(plain)

	_, _ = repo.GetActiveTimes(context.Background(), 1, testDate)
	assert.NotContains(t, plain.query, "FOR UPDATE")

	tx := &recordingTxExecutor{}
	txCtx := dbmetrics.WithExecutor(context.Background(), tx)

	_, _ = repo.GetActiveTimes(txCtx, 1, testDate)
	assert.Contains(t, tx.query, "FOR UPDATE")
}

func TestHasActiveAt_OnlyActiveStatusesCount(t *testing.T) {
	exec := &recordingExecutor{}
	repo := NewRepository(exec)

	captureQuery(func() {
		_, _ = repo.HasActiveAt(context.Background(), 7, testDate, "10:00", nil)
	})

	assert.Contains(t, exec.query, "status IN (")
	assert.Contains(t, exec.args, "pending")
	assert.Contains(t, exec.args, "confirmed")
	assert.NotContains(t, exec.args, "canceled")
}

func TestUpdateStatus_CompareAndSwapPredicate(t *testing.T) {
	exec := &recordingExecutor{}
	repo := NewRepository(exec)

	captureQuery(func() {
		_, _ = repo.UpdateStatus(context.Background(), 10, domain.StatusConfirmed, domain.StatusCanceled)
	})

	// Обновление условно по текущему статусу: конкурентный переход,
	// успевший раньше, не перезаписывается
	assert.Contains(t, exec.query, "AND status = $")
	assert.Contains(t, exec.args, domain.StatusConfirmed)
	assert.Contains(t, exec.args, domain.StatusCanceled)
}

func TestMarkNoShows_StrictlyPastWithSecondsPrecision(t *testing.T) {
	exec := &recordingExecutor{result: stubResult{rows: 2}}
	repo := NewRepository(exec)

	now := time.Date(2026, 3, 15, 12, 30, 45, 0, time.UTC)
	marked, err := repo.MarkNoShows(context.Background(), now)

	require.NoError(t, err)
	assert.Equal(t, int64(2), marked)

	// Строго в прошлом, с точностью до секунды: запись на 12:30
	// пропущена уже в 12:30:45
	assert.Contains(t, exec.query, "booking_time < ")
	assert.NotContains(t, exec.query, "booking_time <= ")
	assert.Contains(t, exec.args, "12:30:45")
	assert.Contains(t, exec.args, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC))

	// Помечаются только активные записи
	assert.Contains(t, exec.args, "pending")
	assert.Contains(t, exec.args, "confirmed")
	assert.NotContains(t, exec.args, "canceled")
}
