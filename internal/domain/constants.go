package domain

// Default configuration values
const (
	DefaultSlotGridMinutes      = 30
	DefaultHoldWindowMinutes    = 20
	DefaultSweepIntervalSeconds = 60
)

// Business validation constants
const (
	MinSlotGridMinutes      = 5
	MaxSlotGridMinutes      = 120
	MaxWeeklyShiftsPerDay   = 2 // shifts T1/T2
	MaxClientNameLength     = 120
	MaxExtraServicesLength  = 500
	MaxSessionsPerService   = 12
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// OccupyingStatuses список статусов, удерживающих слот.
// Используется при подсчете доступных слотов и в частичном уникальном
// индексе, защищающем слот от двойного бронирования.
var OccupyingStatuses = []BookingStatus{
	StatusPendingPayment,
	StatusConfirmed,
	StatusBlocked,
}

// TerminalStatuses список финальных статусов, освобождающих слот
var TerminalStatuses = []BookingStatus{
	StatusCancelled,
	StatusExpired,
}
