package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WingorOsnova/BarbershopPP/pkg/types"
)

func TestSlotGrid_Slots_Default(t *testing.T) {
	slots := DefaultSlotGrid().Slots()

	require.Len(t, slots, 18)
	assert.Equal(t, types.TimeString("09:00"), slots[0])
	assert.Equal(t, types.TimeString("17:30"), slots[len(slots)-1])

	for i := 1; i < len(slots); i++ {
		assert.True(t, slots[i-1].IsBefore(slots[i]),
			"slots must be strictly increasing: %s before %s", slots[i-1], slots[i])
	}
}

func TestSlotGrid_Slots_CustomStep(t *testing.T) {
	grid := SlotGrid{DayStart: "10:00", DayEnd: "12:00", StepMinutes: 60}
	slots := grid.Slots()

	require.Len(t, slots, 2)
	assert.Equal(t, types.TimeString("10:00"), slots[0])
	assert.Equal(t, types.TimeString("11:00"), slots[1])
}

func TestSlotGrid_Slots_EndExclusive(t *testing.T) {
	slots := DefaultSlotGrid().Slots()
	assert.NotContains(t, slots, types.TimeString("18:00"))
}

func TestSlotGrid_Slots_PanicsOnInvalidGrid(t *testing.T) {
	assert.Panics(t, func() {
		SlotGrid{DayStart: "09:00", DayEnd: "18:00", StepMinutes: 0}.Slots()
	})
	assert.Panics(t, func() {
		SlotGrid{DayStart: "garbage", DayEnd: "18:00", StepMinutes: 30}.Slots()
	})
	assert.Panics(t, func() {
		SlotGrid{DayStart: "18:00", DayEnd: "09:00", StepMinutes: 30}.Slots()
	})
}

func TestFilterPast_PastDate(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	yesterday := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	filtered := FilterPast(DefaultSlotGrid().Slots(), yesterday, now)
	assert.Empty(t, filtered)
}

func TestFilterPast_FutureDate(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	tomorrow := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)

	slots := DefaultSlotGrid().Slots()
	filtered := FilterPast(slots, tomorrow, now)
	assert.Equal(t, slots, filtered)
}

func TestFilterPast_Today(t *testing.T) {
	// 14:00 сегодня: слот 14:00 уже недоступен, 14:30 — первый свободный
	now := time.Date(2026, 3, 15, 14, 0, 0, 0, time.UTC)
	today := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	filtered := FilterPast(DefaultSlotGrid().Slots(), today, now)

	require.NotEmpty(t, filtered)
	assert.Equal(t, types.TimeString("14:30"), filtered[0])
	assert.NotContains(t, filtered, types.TimeString("14:00"))
	assert.NotContains(t, filtered, types.TimeString("09:00"))
}

func TestFilterPast_TodayEvening(t *testing.T) {
	now := time.Date(2026, 3, 15, 17, 45, 0, 0, time.UTC)
	today := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	filtered := FilterPast(DefaultSlotGrid().Slots(), today, now)
	assert.Empty(t, filtered)
}

func TestSubtractBooked(t *testing.T) {
	slots := []types.TimeString{"09:00", "09:30", "10:00"}

	free := SubtractBooked(slots, []types.TimeString{"09:30"})
	assert.Equal(t, []types.TimeString{"09:00", "10:00"}, free)

	free = SubtractBooked(slots, nil)
	assert.Equal(t, slots, free)

	free = SubtractBooked(slots, []types.TimeString{"09:00", "09:30", "10:00"})
	assert.Empty(t, free)
}

func TestIsDateInPast(t *testing.T) {
	now := time.Date(2026, 3, 15, 23, 59, 0, 0, time.UTC)

	assert.True(t, IsDateInPast(time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), now))
	assert.False(t, IsDateInPast(time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), now))
	assert.False(t, IsDateInPast(time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC), now))
}

func TestCombineDateTime(t *testing.T) {
	date := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	combined := CombineDateTime(date, "14:30", time.UTC)

	assert.Equal(t, time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC), combined)
}

func TestBooking_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from    BookingStatus
		to      BookingStatus
		allowed bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCanceled, true},
		{StatusPending, StatusNoShow, true},
		{StatusPending, StatusCompleted, false},
		{StatusConfirmed, StatusCompleted, true},
		{StatusConfirmed, StatusCanceled, true},
		{StatusConfirmed, StatusNoShow, true},
		{StatusConfirmed, StatusConfirmed, false},
		{StatusCanceled, StatusPending, false},
		{StatusCompleted, StatusNoShow, false},
		{StatusNoShow, StatusConfirmed, false},
	}

	for _, tt := range tests {
		b := &Booking{Status: tt.from}
		assert.Equal(t, tt.allowed, b.CanTransitionTo(tt.to), "%s -> %s", tt.from, tt.to)
	}
}
