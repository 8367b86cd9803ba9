package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turnosapp/booking-service/internal/domain"
	scheduleRepo "github.com/turnosapp/booking-service/internal/infra/storage/schedule"
	"github.com/turnosapp/booking-service/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type stubTimeProvider struct {
	now time.Time
}

func (p *stubTimeProvider) Now() time.Time { return p.now }

type fakeResolver struct {
	intervals []domain.Interval
	err       error
}

func (f *fakeResolver) OpenIntervals(ctx context.Context, barberID int64, date time.Time) ([]domain.Interval, error) {
	return f.intervals, f.err
}

type fakeScheduleRepo struct {
	services map[int64]*domain.Service
	blocks   []*domain.Block
}

func (f *fakeScheduleRepo) GetServiceByID(ctx context.Context, id int64) (*domain.Service, error) {
	if svc, ok := f.services[id]; ok {
		return svc, nil
	}
	return nil, scheduleRepo.ErrServiceNotFound
}

func (f *fakeScheduleRepo) GetBlocks(ctx context.Context, barberID int64, date time.Time) ([]*domain.Block, error) {
	return f.blocks, nil
}

type fakeBookingRepo struct {
	bookings []*domain.Booking
}

func (f *fakeBookingRepo) GetByBarberWithFilter(ctx context.Context, filter domain.BarberBookingsFilter) ([]*domain.Booking, error) {
	return f.bookings, nil
}

var (
	tomorrow = time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	today    = time.Date(2026, 9, 6, 11, 15, 0, 0, time.UTC)
)

func newTestUseCase(resolver *fakeResolver, schedule *fakeScheduleRepo, bookings *fakeBookingRepo) *UseCase {
	uc := NewUseCase(resolver, schedule, bookings, 30, nopLogger{})
	uc.timeProvider = &stubTimeProvider{now: today}
	return uc
}

func defaultScheduleRepo() *fakeScheduleRepo {
	return &fakeScheduleRepo{
		services: map[int64]*domain.Service{
			1: {ID: 1, DurationMinutes: 30, Price: 5000},
		},
	}
}

func slotStarts(resp *Response) []types.TimeString {
	starts := make([]types.TimeString, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		starts = append(starts, s.StartTime)
	}
	return starts
}

func TestExecute_FullMorningGrid(t *testing.T) {
	resolver := &fakeResolver{intervals: []domain.Interval{{Start: "09:00", End: "13:00"}}}
	uc := newTestUseCase(resolver, defaultScheduleRepo(), &fakeBookingRepo{})

	resp, err := uc.Execute(context.Background(), &Request{BarberID: 1, ServiceID: 1, Date: tomorrow})
	require.NoError(t, err)

	assert.Equal(t, []types.TimeString{
		"09:00", "09:30", "10:00", "10:30", "11:00", "11:30", "12:00", "12:30",
	}, slotStarts(resp))
	assert.Equal(t, 30, resp.Slots[0].DurationMinutes)
}

func TestExecute_BookedSlotRemoved(t *testing.T) {
	resolver := &fakeResolver{intervals: []domain.Interval{{Start: "09:00", End: "12:00"}}}
	bookings := &fakeBookingRepo{bookings: []*domain.Booking{
		{StartTime: "10:00", DurationMinutes: 30, Status: domain.StatusConfirmed},
	}}
	uc := newTestUseCase(resolver, defaultScheduleRepo(), bookings)

	resp, err := uc.Execute(context.Background(), &Request{BarberID: 1, ServiceID: 1, Date: tomorrow})
	require.NoError(t, err)

	assert.Equal(t, []types.TimeString{"09:00", "09:30", "10:30", "11:00", "11:30"}, slotStarts(resp))
}

func TestExecute_CancelledBookingDoesNotOccupy(t *testing.T) {
	resolver := &fakeResolver{intervals: []domain.Interval{{Start: "09:00", End: "10:00"}}}
	bookings := &fakeBookingRepo{bookings: []*domain.Booking{
		{StartTime: "09:00", DurationMinutes: 30, Status: domain.StatusCancelled},
	}}
	uc := newTestUseCase(resolver, defaultScheduleRepo(), bookings)

	resp, err := uc.Execute(context.Background(), &Request{BarberID: 1, ServiceID: 1, Date: tomorrow})
	require.NoError(t, err)

	assert.Equal(t, []types.TimeString{"09:00", "09:30"}, slotStarts(resp))
}

func TestExecute_LongerServiceOverlapsTwoCells(t *testing.T) {
	resolver := &fakeResolver{intervals: []domain.Interval{{Start: "09:00", End: "12:00"}}}
	schedule := &fakeScheduleRepo{
		services: map[int64]*domain.Service{
			2: {ID: 2, DurationMinutes: 60, Price: 8000},
		},
	}
	bookings := &fakeBookingRepo{bookings: []*domain.Booking{
		{StartTime: "10:00", DurationMinutes: 30, Status: domain.StatusPendingPayment},
	}}
	uc := newTestUseCase(resolver, schedule, bookings)

	resp, err := uc.Execute(context.Background(), &Request{BarberID: 1, ServiceID: 2, Date: tomorrow})
	require.NoError(t, err)

	// Часовая услуга не влезает ни в 09:30 (конец 10:30), ни в 10:00;
	// бронь 10:00-10:30 освобождает сетку с 10:30
	assert.Equal(t, []types.TimeString{"09:00", "10:30", "11:00"}, slotStarts(resp))
}

func TestExecute_BlockedCellRemoved(t *testing.T) {
	resolver := &fakeResolver{intervals: []domain.Interval{{Start: "09:00", End: "11:00"}}}
	schedule := defaultScheduleRepo()
	schedule.blocks = []*domain.Block{{BarberID: 1, Time: "09:30"}}
	uc := newTestUseCase(resolver, schedule, &fakeBookingRepo{})

	resp, err := uc.Execute(context.Background(), &Request{BarberID: 1, ServiceID: 1, Date: tomorrow})
	require.NoError(t, err)

	assert.Equal(t, []types.TimeString{"09:00", "10:00", "10:30"}, slotStarts(resp))
}

func TestExecute_ExceptionalShortDay(t *testing.T) {
	resolver := &fakeResolver{intervals: []domain.Interval{{Start: "14:00", End: "15:00"}}}
	uc := newTestUseCase(resolver, defaultScheduleRepo(), &fakeBookingRepo{})

	resp, err := uc.Execute(context.Background(), &Request{BarberID: 1, ServiceID: 1, Date: tomorrow})
	require.NoError(t, err)

	assert.Equal(t, []types.TimeString{"14:00", "14:30"}, slotStarts(resp))
}

func TestExecute_TodayFiltersPastTimes(t *testing.T) {
	resolver := &fakeResolver{intervals: []domain.Interval{{Start: "09:00", End: "13:00"}}}
	uc := newTestUseCase(resolver, defaultScheduleRepo(), &fakeBookingRepo{})

	// Сейчас 11:15 - слоты 09:00..11:00 уже в прошлом
	resp, err := uc.Execute(context.Background(), &Request{BarberID: 1, ServiceID: 1, Date: today})
	require.NoError(t, err)

	assert.Equal(t, []types.TimeString{"11:30", "12:00", "12:30"}, slotStarts(resp))
}

func TestExecute_PastDateReturnsEmpty(t *testing.T) {
	resolver := &fakeResolver{intervals: []domain.Interval{{Start: "09:00", End: "13:00"}}}
	uc := newTestUseCase(resolver, defaultScheduleRepo(), &fakeBookingRepo{})

	yesterday := today.AddDate(0, 0, -1)
	resp, err := uc.Execute(context.Background(), &Request{BarberID: 1, ServiceID: 1, Date: yesterday})
	require.NoError(t, err)

	assert.Empty(t, resp.Slots)
}

func TestExecute_ServiceLongerThanInterval(t *testing.T) {
	resolver := &fakeResolver{intervals: []domain.Interval{{Start: "09:00", End: "09:45"}}}
	schedule := &fakeScheduleRepo{
		services: map[int64]*domain.Service{
			2: {ID: 2, DurationMinutes: 60, Price: 8000},
		},
	}
	uc := newTestUseCase(resolver, schedule, &fakeBookingRepo{})

	resp, err := uc.Execute(context.Background(), &Request{BarberID: 1, ServiceID: 2, Date: tomorrow})
	require.NoError(t, err)

	assert.Empty(t, resp.Slots)
}

func TestExecute_NoIntervalsReturnsEmpty(t *testing.T) {
	uc := newTestUseCase(&fakeResolver{}, defaultScheduleRepo(), &fakeBookingRepo{})

	resp, err := uc.Execute(context.Background(), &Request{BarberID: 1, ServiceID: 1, Date: tomorrow})
	require.NoError(t, err)

	assert.Empty(t, resp.Slots)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	uc := newTestUseCase(&fakeResolver{}, &fakeScheduleRepo{services: map[int64]*domain.Service{}}, &fakeBookingRepo{})

	_, err := uc.Execute(context.Background(), &Request{BarberID: 1, ServiceID: 9, Date: tomorrow})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(&fakeResolver{}, defaultScheduleRepo(), &fakeBookingRepo{})

	_, err := uc.Execute(context.Background(), &Request{BarberID: 0, ServiceID: 1, Date: tomorrow})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
