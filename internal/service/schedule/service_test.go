package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turnosapp/booking-service/internal/domain"
	scheduleRepo "github.com/turnosapp/booking-service/internal/infra/storage/schedule"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type mockRepo struct {
	barbers     map[int64]*domain.Barber
	weekly      []*domain.WeeklyScheduleEntry
	exceptional []*domain.ExceptionalDay
}

func (m *mockRepo) GetBarberByID(ctx context.Context, id int64) (*domain.Barber, error) {
	if b, ok := m.barbers[id]; ok {
		return b, nil
	}
	return nil, scheduleRepo.ErrBarberNotFound
}

func (m *mockRepo) GetWeeklyEntries(ctx context.Context, barberID int64, weekday int) ([]*domain.WeeklyScheduleEntry, error) {
	var entries []*domain.WeeklyScheduleEntry
	for _, e := range m.weekly {
		if e.BarberID == barberID && e.Weekday == weekday {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

func (m *mockRepo) GetExceptionalDays(ctx context.Context, barberID int64, date time.Time) ([]*domain.ExceptionalDay, error) {
	var days []*domain.ExceptionalDay
	for _, d := range m.exceptional {
		if d.BarberID == barberID && d.Date.Equal(date) {
			days = append(days, d)
		}
	}
	return days, nil
}

func (m *mockRepo) CreateExceptionalDay(ctx context.Context, day *domain.ExceptionalDay) (*domain.ExceptionalDay, error) {
	created := *day
	created.ID = int64(len(m.exceptional) + 1)
	m.exceptional = append(m.exceptional, &created)
	return &created, nil
}

func (m *mockRepo) DeleteExceptionalDay(ctx context.Context, id int64) error {
	for i, d := range m.exceptional {
		if d.ID == id {
			m.exceptional = append(m.exceptional[:i], m.exceptional[i+1:]...)
			return nil
		}
	}
	return scheduleRepo.ErrExceptionalDayNotFound
}

// monday is a fixed Monday used across resolver tests
var monday = time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

func newTestService(repo *mockRepo) *Service {
	return NewService(repo, nopLogger{})
}

func TestOpenIntervals_WeeklyTemplate(t *testing.T) {
	repo := &mockRepo{
		barbers: map[int64]*domain.Barber{1: {ID: 1}},
		weekly: []*domain.WeeklyScheduleEntry{
			{BarberID: 1, Weekday: 1, StartTime: "09:00", EndTime: "13:00"},
			{BarberID: 1, Weekday: 1, StartTime: "15:00", EndTime: "19:00"},
		},
	}

	intervals, err := newTestService(repo).OpenIntervals(context.Background(), 1, monday)
	require.NoError(t, err)

	require.Len(t, intervals, 2)
	assert.Equal(t, domain.Interval{Start: "09:00", End: "13:00"}, intervals[0])
	assert.Equal(t, domain.Interval{Start: "15:00", End: "19:00"}, intervals[1])
}

func TestOpenIntervals_ExceptionalDayOverridesTemplate(t *testing.T) {
	repo := &mockRepo{
		barbers: map[int64]*domain.Barber{1: {ID: 1}},
		weekly: []*domain.WeeklyScheduleEntry{
			{BarberID: 1, Weekday: 1, StartTime: "09:00", EndTime: "19:00"},
		},
		exceptional: []*domain.ExceptionalDay{
			{BarberID: 1, Date: monday, StartTime: "14:00", EndTime: "15:00"},
		},
	}

	intervals, err := newTestService(repo).OpenIntervals(context.Background(), 1, monday)
	require.NoError(t, err)

	// The weekly template is ignored entirely, not merged
	require.Len(t, intervals, 1)
	assert.Equal(t, domain.Interval{Start: "14:00", End: "15:00"}, intervals[0])
}

func TestOpenIntervals_MergesOverlappingShifts(t *testing.T) {
	repo := &mockRepo{
		barbers: map[int64]*domain.Barber{1: {ID: 1}},
		weekly: []*domain.WeeklyScheduleEntry{
			{BarberID: 1, Weekday: 1, StartTime: "10:00", EndTime: "14:00"},
			{BarberID: 1, Weekday: 1, StartTime: "12:00", EndTime: "16:00"},
		},
	}

	intervals, err := newTestService(repo).OpenIntervals(context.Background(), 1, monday)
	require.NoError(t, err)

	require.Len(t, intervals, 1)
	assert.Equal(t, domain.Interval{Start: "10:00", End: "16:00"}, intervals[0])
}

func TestOpenIntervals_TouchingShiftsStaySeparate(t *testing.T) {
	repo := &mockRepo{
		barbers: map[int64]*domain.Barber{1: {ID: 1}},
		weekly: []*domain.WeeklyScheduleEntry{
			{BarberID: 1, Weekday: 1, StartTime: "09:00", EndTime: "12:00"},
			{BarberID: 1, Weekday: 1, StartTime: "12:00", EndTime: "15:00"},
		},
	}

	intervals, err := newTestService(repo).OpenIntervals(context.Background(), 1, monday)
	require.NoError(t, err)

	require.Len(t, intervals, 2)
}

func TestOpenIntervals_DropsInvalidIntervals(t *testing.T) {
	repo := &mockRepo{
		barbers: map[int64]*domain.Barber{1: {ID: 1}},
		weekly: []*domain.WeeklyScheduleEntry{
			{BarberID: 1, Weekday: 1, StartTime: "15:00", EndTime: "15:00"},
			{BarberID: 1, Weekday: 1, StartTime: "18:00", EndTime: "09:00"},
		},
	}

	intervals, err := newTestService(repo).OpenIntervals(context.Background(), 1, monday)
	require.NoError(t, err)
	assert.Empty(t, intervals)
}

func TestOpenIntervals_BarberNotFound(t *testing.T) {
	repo := &mockRepo{barbers: map[int64]*domain.Barber{}}

	_, err := newTestService(repo).OpenIntervals(context.Background(), 99, monday)
	assert.ErrorIs(t, err, ErrBarberNotFound)
}

func TestCreateExceptionalDay_InvalidInterval(t *testing.T) {
	repo := &mockRepo{barbers: map[int64]*domain.Barber{1: {ID: 1}}}

	_, err := newTestService(repo).CreateExceptionalDay(context.Background(), &domain.ExceptionalDay{
		BarberID:  1,
		Date:      monday,
		StartTime: "15:00",
		EndTime:   "12:00",
	})
	assert.ErrorIs(t, err, ErrInvalidInterval)
}

func TestDeleteExceptionalDay_NotFound(t *testing.T) {
	repo := &mockRepo{barbers: map[int64]*domain.Barber{1: {ID: 1}}}

	err := newTestService(repo).DeleteExceptionalDay(context.Background(), 42)
	assert.ErrorIs(t, err, ErrExceptionalDayNotFound)
}
