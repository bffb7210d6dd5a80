package domain

import "github.com/WingorOsnova/BarbershopPP/pkg/types"

// Default working day grid
const (
	DefaultWorkDayStart    = types.TimeString("09:00")
	DefaultWorkDayEnd      = types.TimeString("18:00")
	DefaultSlotStepMinutes = 30
)

// Business rules
const (
	DefaultCancelLeadTimeHours = 3
	DefaultPhoneCountryCode    = "380"

	MinPhoneDigits = 10
	MaxPhoneDigits = 15

	MaxClientNameLength = 100
	MaxMessageLength    = 1000
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses статусы, при которых бронирование удерживает слот
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}

// TerminalStatuses конечные статусы, из которых нет переходов
var TerminalStatuses = []BookingStatus{
	StatusCanceled,
	StatusCompleted,
	StatusNoShow,
}
