package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WingorOsnova/BarbershopPP/internal/domain"
	bookingRepo "github.com/WingorOsnova/BarbershopPP/internal/infra/storage/booking"
	"github.com/WingorOsnova/BarbershopPP/pkg/ptr"
)

// ---------- Mocks ----------

type mockRepo struct {
	booking      *domain.Booking
	getErr       error
	userBookings []domain.Booking
	listErr      error
	updated      *domain.Booking
	updatedFrom  domain.BookingStatus
	updateErr    error
	markedCount  int64
	markErr      error
	markCalls    int
	markNow      time.Time
	markedBefore bool // сброс перед чтением списка
}

func (m *mockRepo) GetByID(_ context.Context, _ int64) (*domain.Booking, error) {
	return m.booking, m.getErr
}

func (m *mockRepo) GetByUserID(_ context.Context, _ int64, _ *domain.BookingStatus) ([]domain.Booking, error) {
	m.markedBefore = m.markCalls > 0
	return m.userBookings, m.listErr
}

func (m *mockRepo) GetByBarberWithFilter(_ context.Context, _ domain.BarberBookingsFilter) ([]domain.Booking, error) {
	m.markedBefore = m.markCalls > 0
	return m.userBookings, m.listErr
}

func (m *mockRepo) UpdateStatus(_ context.Context, id int64, from, to domain.BookingStatus) (*domain.Booking, error) {
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	m.updatedFrom = from
	updated := *m.booking
	updated.ID = id
	updated.Status = to
	m.updated = &updated
	return &updated, nil
}

func (m *mockRepo) MarkNoShows(_ context.Context, now time.Time) (int64, error) {
	m.markCalls++
	m.markNow = now
	return m.markedCount, m.markErr
}

type fakeTimeProvider struct {
	now time.Time
}

func (p *fakeTimeProvider) Now() time.Time {
	return p.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// ---------- Helpers ----------

var testNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func newTestService(repo *mockRepo) *Service {
	svc := NewService(repo, 3, nopLogger{})
	svc.timeProvider = &fakeTimeProvider{now: testNow}
	return svc
}

func ownedBooking() *domain.Booking {
	return &domain.Booking{
		ID:          10,
		UserID:      ptr.Ptr(int64(7)),
		BarberID:    1,
		BookingDate: time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC),
		BookingTime: "10:00",
		Status:      domain.StatusConfirmed,
	}
}

// ---------- Tests ----------

func TestGetByID_Owned(t *testing.T) {
	svc := newTestService(&mockRepo{booking: ownedBooking()})

	booking, err := svc.GetByID(context.Background(), 10, 7)

	require.NoError(t, err)
	assert.Equal(t, int64(10), booking.ID)
}

func TestGetByID_ForeignLooksLikeMissing(t *testing.T) {
	svc := newTestService(&mockRepo{booking: ownedBooking()})

	_, err := svc.GetByID(context.Background(), 10, 99)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetByID_NotFound(t *testing.T) {
	svc := newTestService(&mockRepo{getErr: bookingRepo.ErrBookingNotFound})

	_, err := svc.GetByID(context.Background(), 10, 7)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetUserBookings_SweepsNoShowsFirst(t *testing.T) {
	repo := &mockRepo{userBookings: []domain.Booking{*ownedBooking()}, markedCount: 2}
	svc := newTestService(repo)

	result, err := svc.GetUserBookings(context.Background(), 7, nil)

	require.NoError(t, err)
	assert.Len(t, result, 1)
	assert.Equal(t, 1, repo.markCalls)
	assert.True(t, repo.markedBefore, "sweep must run before the read")
}

func TestGetUserBookings_SweepFailureDoesNotBlockRead(t *testing.T) {
	repo := &mockRepo{
		userBookings: []domain.Booking{*ownedBooking()},
		markErr:      errors.New("deadlock"),
	}
	svc := newTestService(repo)

	result, err := svc.GetUserBookings(context.Background(), 7, nil)

	require.NoError(t, err)
	assert.Len(t, result, 1)
}

func TestGetBarberBookings_SweepsNoShowsFirst(t *testing.T) {
	repo := &mockRepo{userBookings: []domain.Booking{*ownedBooking()}}
	svc := newTestService(repo)

	result, err := svc.GetBarberBookings(context.Background(), domain.BarberBookingsFilter{BarberID: 1})

	require.NoError(t, err)
	assert.Len(t, result, 1)
	assert.Equal(t, 1, repo.markCalls)
}

func TestCancel_Success(t *testing.T) {
	repo := &mockRepo{booking: ownedBooking()}
	svc := newTestService(repo)

	result, err := svc.Cancel(context.Background(), 10, 7)

	require.NoError(t, err)
	assert.Equal(t, domain.StatusCanceled, result.Status)
}

func TestCancel_GuardsCurrentStatus(t *testing.T) {
	repo := &mockRepo{booking: ownedBooking()}
	svc := newTestService(repo)

	_, err := svc.Cancel(context.Background(), 10, 7)

	require.NoError(t, err)
	// Обновление должно быть условным по статусу, прочитанному перед проверками
	assert.Equal(t, domain.StatusConfirmed, repo.updatedFrom)
}

func TestCancel_ConcurrentStatusChange(t *testing.T) {
	repo := &mockRepo{booking: ownedBooking(), updateErr: bookingRepo.ErrStatusConflict}
	svc := newTestService(repo)

	_, err := svc.Cancel(context.Background(), 10, 7)
	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestCancel_TerminalStatus(t *testing.T) {
	booking := ownedBooking()
	booking.Status = domain.StatusCompleted
	svc := newTestService(&mockRepo{booking: booking})

	_, err := svc.Cancel(context.Background(), 10, 7)
	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestCancel_TooCloseToAppointment(t *testing.T) {
	booking := ownedBooking()
	// Визит сегодня в 14:00, сейчас 12:00: осталось меньше 3 часов
	booking.BookingDate = testNow
	booking.BookingTime = "14:00"
	repo := &mockRepo{booking: booking}
	svc := newTestService(repo)

	_, err := svc.Cancel(context.Background(), 10, 7)

	assert.ErrorIs(t, err, ErrCancellationWindow)
	assert.Nil(t, repo.updated)
}

func TestCancel_ExactlyAtLeadTimeBoundary(t *testing.T) {
	booking := ownedBooking()
	// Ровно 3 часа до визита: отмена еще разрешена
	booking.BookingDate = testNow
	booking.BookingTime = "15:00"
	svc := newTestService(&mockRepo{booking: booking})

	result, err := svc.Cancel(context.Background(), 10, 7)

	require.NoError(t, err)
	assert.Equal(t, domain.StatusCanceled, result.Status)
}

func TestUpdateStatus_AllowedTransition(t *testing.T) {
	booking := ownedBooking()
	booking.Status = domain.StatusPending
	svc := newTestService(&mockRepo{booking: booking})

	result, err := svc.UpdateStatus(context.Background(), 10, domain.StatusConfirmed)

	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, result.Status)
}

func TestUpdateStatus_InvalidTransition(t *testing.T) {
	booking := ownedBooking()
	booking.Status = domain.StatusPending
	svc := newTestService(&mockRepo{booking: booking})

	// pending -> completed без подтверждения запрещен
	_, err := svc.UpdateStatus(context.Background(), 10, domain.StatusCompleted)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestUpdateStatus_ConcurrentStatusChange(t *testing.T) {
	booking := ownedBooking()
	booking.Status = domain.StatusPending
	repo := &mockRepo{booking: booking, updateErr: bookingRepo.ErrStatusConflict}
	svc := newTestService(repo)

	_, err := svc.UpdateStatus(context.Background(), 10, domain.StatusConfirmed)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestUpdateStatus_TerminalIsFrozen(t *testing.T) {
	booking := ownedBooking()
	booking.Status = domain.StatusCanceled
	svc := newTestService(&mockRepo{booking: booking})

	_, err := svc.UpdateStatus(context.Background(), 10, domain.StatusConfirmed)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestExpireMissed(t *testing.T) {
	repo := &mockRepo{markedCount: 3}
	svc := newTestService(repo)

	marked, err := svc.ExpireMissed(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(3), marked)
	assert.Equal(t, 1, repo.markCalls)
}

func TestExpireMissed_PassesFullPrecisionTime(t *testing.T) {
	repo := &mockRepo{}
	svc := newTestService(repo)
	// Секунды не должны обрезаться: запись на 10:00 уже пропущена в 10:00:30
	preciseNow := testNow.Add(30 * time.Second)
	svc.timeProvider = &fakeTimeProvider{now: preciseNow}

	_, err := svc.ExpireMissed(context.Background())

	require.NoError(t, err)
	assert.Equal(t, preciseNow, repo.markNow)
}
