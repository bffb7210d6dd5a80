package domain

import (
	"fmt"
	"time"

	"github.com/WingorOsnova/BarbershopPP/pkg/types"
)

// SlotGrid сетка слотов рабочего дня: фиксированный шаг от начала до конца дня.
// Идентичность слота — (барбер, дата, время начала); длительность услуги на
// ширину слота не влияет.
type SlotGrid struct {
	DayStart    types.TimeString
	DayEnd      types.TimeString
	StepMinutes int
}

// DefaultSlotGrid сетка по умолчанию: 09:00–18:00 с шагом 30 минут (18 слотов)
func DefaultSlotGrid() SlotGrid {
	return SlotGrid{
		DayStart:    DefaultWorkDayStart,
		DayEnd:      DefaultWorkDayEnd,
		StepMinutes: DefaultSlotStepMinutes,
	}
}

// Slots генерирует упорядоченную последовательность слотов полуинтервала
// [DayStart, DayEnd) с шагом StepMinutes.
//
// Некорректная сетка (неположительный шаг, начало не раньше конца) — ошибка
// программирования вызывающей стороны, а не пользовательский ввод: паникуем.
func (g SlotGrid) Slots() []types.TimeString {
	if g.StepMinutes <= 0 {
		panic(fmt.Sprintf("domain: slot grid step must be positive, got %d", g.StepMinutes))
	}
	if err := g.DayStart.Validate(); err != nil {
		panic(fmt.Sprintf("domain: invalid slot grid start: %v", err))
	}
	if err := g.DayEnd.Validate(); err != nil {
		panic(fmt.Sprintf("domain: invalid slot grid end: %v", err))
	}
	if !g.DayStart.IsBefore(g.DayEnd) {
		panic(fmt.Sprintf("domain: slot grid start %s must be before end %s", g.DayStart, g.DayEnd))
	}

	slots := make([]types.TimeString, 0)
	current := g.DayStart

	for current.IsBefore(g.DayEnd) {
		slots = append(slots, current)
		next, err := current.AddMinutes(g.StepMinutes)
		if err != nil {
			panic(fmt.Sprintf("domain: failed to advance slot %s: %v", current, err))
		}
		// Переход через полночь — сетка исчерпана
		if !next.IsAfter(current) {
			break
		}
		current = next
	}

	return slots
}

// FilterPast убирает прошедшие слоты, если date — сегодняшний день:
// остаются только слоты строго позже текущего времени.
// Для будущих дат возвращает слоты без изменений, для прошедших — пустой список.
func FilterPast(slots []types.TimeString, date time.Time, now time.Time) []types.TimeString {
	if IsDateInPast(date, now) {
		return []types.TimeString{}
	}
	if !IsSameDay(date, now) {
		return slots
	}

	nowTime := types.NewTimeString(now)
	filtered := make([]types.TimeString, 0, len(slots))
	for _, slot := range slots {
		if slot.IsAfter(nowTime) {
			filtered = append(filtered, slot)
		}
	}
	return filtered
}

// SubtractBooked убирает из списка слоты, занятые активными бронированиями
func SubtractBooked(slots []types.TimeString, booked []types.TimeString) []types.TimeString {
	if len(booked) == 0 {
		return slots
	}

	bookedSet := make(map[types.TimeString]struct{}, len(booked))
	for _, t := range booked {
		bookedSet[t] = struct{}{}
	}

	free := make([]types.TimeString, 0, len(slots))
	for _, slot := range slots {
		if _, taken := bookedSet[slot]; !taken {
			free = append(free, slot)
		}
	}
	return free
}

// IsSameDay проверяет, что две даты относятся к одному и тому же дню
func IsSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// IsDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func IsDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, now.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}

// CombineDateTime собирает полный момент времени из даты и времени суток
func CombineDateTime(date time.Time, t types.TimeString, loc *time.Location) time.Time {
	minutes, err := t.Minutes()
	if err != nil {
		// Невалидное время в записи — нарушение инварианта хранилища
		panic(fmt.Sprintf("domain: invalid booking time %q: %v", t, err))
	}
	return time.Date(date.Year(), date.Month(), date.Day(), minutes/60, minutes%60, 0, 0, loc)
}
