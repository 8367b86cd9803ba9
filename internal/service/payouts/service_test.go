package payouts

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

type mockEarningsRepo struct {
	result *domain.BarberEarnings
}

func (m *mockEarningsRepo) EarningsByBarber(ctx context.Context, barberID int64, from, to time.Time) (*domain.BarberEarnings, error) {
	return m.result, nil
}

type mockScheduleRepo struct {
	barbers map[int64]*domain.Barber
}

func (m *mockScheduleRepo) GetBarberByID(ctx context.Context, id int64) (*domain.Barber, error) {
	if b, ok := m.barbers[id]; ok {
		return b, nil
	}
	return nil, scheduleRepo.ErrBarberNotFound
}

func TestEarnings(t *testing.T) {
	earnings := &mockEarningsRepo{result: &domain.BarberEarnings{
		BarberID:        1,
		ConfirmedCount:  12,
		TotalPrice:      60000,
		TotalPaidOnline: 18000,
		TotalCash:       42000,
	}}
	schedule := &mockScheduleRepo{barbers: map[int64]*domain.Barber{1: {ID: 1}}}
	svc := NewService(earnings, schedule, nopLogger{})

	from := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)

	result, err := svc.Earnings(context.Background(), 1, from, to)
	require.NoError(t, err)

	assert.Equal(t, int64(12), result.ConfirmedCount)
	assert.Equal(t, 60000.0, result.TotalPrice)
	assert.Equal(t, 18000.0, result.TotalPaidOnline)
	assert.Equal(t, 42000.0, result.TotalCash)
}

func TestEarnings_InvalidPeriod(t *testing.T) {
	svc := NewService(&mockEarningsRepo{}, &mockScheduleRepo{}, nopLogger{})

	from := time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	_, err := svc.Earnings(context.Background(), 1, from, to)
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}

func TestEarnings_BarberNotFound(t *testing.T) {
	svc := NewService(&mockEarningsRepo{}, &mockScheduleRepo{barbers: map[int64]*domain.Barber{}}, nopLogger{})

	from := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)

	_, err := svc.Earnings(context.Background(), 99, from, to)
	assert.ErrorIs(t, err, ErrBarberNotFound)
}
