package create_booking

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turnosapp/booking-service/internal/domain"
	bookingRepo "github.com/turnosapp/booking-service/internal/infra/storage/booking"
	"github.com/turnosapp/booking-service/internal/integrations/mercadopago"
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
}

func (f *fakeResolver) OpenIntervals(ctx context.Context, barberID int64, date time.Time) ([]domain.Interval, error) {
	return f.intervals, nil
}

type fakeScheduleRepo struct {
	barber  *domain.Barber
	service *domain.Service
	blocks  []*domain.Block
}

func (f *fakeScheduleRepo) GetBarberByID(ctx context.Context, id int64) (*domain.Barber, error) {
	return f.barber, nil
}

func (f *fakeScheduleRepo) GetServiceByID(ctx context.Context, id int64) (*domain.Service, error) {
	return f.service, nil
}

func (f *fakeScheduleRepo) GetBlocks(ctx context.Context, barberID int64, date time.Time) ([]*domain.Block, error) {
	return f.blocks, nil
}

type fakeBookingRepo struct {
	existing  []*domain.Booking
	createErr error
	nextID    int64
	created   []*domain.Booking
	cancelled []int64
}

func (f *fakeBookingRepo) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	stored := *booking
	stored.ID = f.nextID
	f.created = append(f.created, &stored)
	return &stored, nil
}

func (f *fakeBookingRepo) GetByBarberWithFilter(ctx context.Context, filter domain.BarberBookingsFilter) ([]*domain.Booking, error) {
	return f.existing, nil
}

func (f *fakeBookingRepo) Cancel(ctx context.Context, id int64) error {
	f.cancelled = append(f.cancelled, id)
	return nil
}

type fakeGateway struct {
	err          error
	calls        int
	externalRefs []string
	amounts      []float64
}

func (f *fakeGateway) CreatePreference(ctx context.Context, externalRef, title string, amount float64) (*mercadopago.Preference, error) {
	f.calls++
	f.externalRefs = append(f.externalRefs, externalRef)
	f.amounts = append(f.amounts, amount)
	if f.err != nil {
		return nil, f.err
	}
	return &mercadopago.Preference{ID: "pref-1", InitPoint: "https://mp.example/checkout/pref-1"}, nil
}

type fakeNotifier struct {
	messages []string
}

func (f *fakeNotifier) SendAsync(phone, text string) {
	f.messages = append(f.messages, text)
}

type inlineTxManager struct{}

func (inlineTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

var bookingDay = time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

type testEnv struct {
	uc       *UseCase
	bookings *fakeBookingRepo
	gateway  *fakeGateway
	notifier *fakeNotifier
}

func newTestEnv(schedule *fakeScheduleRepo, resolver *fakeResolver, bookings *fakeBookingRepo) *testEnv {
	gateway := &fakeGateway{}
	notifier := &fakeNotifier{}
	uc := NewUseCase(resolver, schedule, bookings, gateway, notifier, inlineTxManager{}, 30, 20*time.Minute, nopLogger{})
	uc.timeProvider = &stubTimeProvider{now: time.Date(2026, 9, 6, 10, 0, 0, 0, time.UTC)}
	return &testEnv{uc: uc, bookings: bookings, gateway: gateway, notifier: notifier}
}

func defaultSchedule() *fakeScheduleRepo {
	return &fakeScheduleRepo{
		barber:  &domain.Barber{ID: 1, BranchID: 7},
		service: &domain.Service{ID: 1, Name: "Corte", DurationMinutes: 30, Price: 5000, Sessions: 1},
	}
}

func validRequest() *Request {
	return &Request{
		BarberID:    1,
		ServiceID:   1,
		ClientName:  "Juan Pérez",
		ClientPhone: "+5491155550000",
		Date:        bookingDay,
		StartTime:   "10:00",
	}
}

func TestExecute_CreatesPendingBookingWithPaymentLink(t *testing.T) {
	resolver := &fakeResolver{intervals: []domain.Interval{{Start: "09:00", End: "18:00"}}}
	env := newTestEnv(defaultSchedule(), resolver, &fakeBookingRepo{})

	resp, err := env.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, string(domain.StatusPendingPayment), resp.Bookings[0].Status)
	assert.Nil(t, resp.GroupID)

	require.NotNil(t, resp.PaymentLink)
	assert.Equal(t, "https://mp.example/checkout/pref-1", *resp.PaymentLink)
	assert.Equal(t, 5000.0, resp.PaymentAmount)
	assert.False(t, resp.IsDeposit)
	require.NotNil(t, resp.HoldExpiresAt)
	assert.Equal(t, time.Date(2026, 9, 6, 10, 20, 0, 0, time.UTC), *resp.HoldExpiresAt)

	// external_reference одиночной брони - ее числовой ID
	require.Len(t, env.gateway.externalRefs, 1)
	assert.Equal(t, strconv.FormatInt(resp.Bookings[0].ID, 10), env.gateway.externalRefs[0])

	// Денормализация: филиал барбера и цена услуги попадают в бронь
	created := env.bookings.created[0]
	assert.Equal(t, int64(7), created.BranchID)
	assert.Equal(t, 5000.0, created.ServicePrice)
	assert.Equal(t, 0.0, created.CashAmount)

	assert.Len(t, env.notifier.messages, 1)
}

func TestExecute_DepositService(t *testing.T) {
	resolver := &fakeResolver{intervals: []domain.Interval{{Start: "09:00", End: "18:00"}}}
	schedule := defaultSchedule()
	schedule.service = &domain.Service{ID: 1, Name: "Corte", DurationMinutes: 30, Price: 5000, DepositAmount: 1500, Sessions: 1}
	env := newTestEnv(schedule, resolver, &fakeBookingRepo{})

	resp, err := env.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, 1500.0, resp.PaymentAmount)
	assert.True(t, resp.IsDeposit)
	// Остаток платится наличными в салоне
	assert.Equal(t, 3500.0, env.bookings.created[0].CashAmount)
}

func TestExecute_SlotOutsideSchedule(t *testing.T) {
	resolver := &fakeResolver{intervals: []domain.Interval{{Start: "09:00", End: "12:00"}}}
	env := newTestEnv(defaultSchedule(), resolver, &fakeBookingRepo{})

	req := validRequest()
	req.StartTime = "14:00"

	_, err := env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrOutsideSchedule)
	assert.Zero(t, env.gateway.calls)
}

func TestExecute_OffGridSlot(t *testing.T) {
	resolver := &fakeResolver{intervals: []domain.Interval{{Start: "09:00", End: "18:00"}}}
	env := newTestEnv(defaultSchedule(), resolver, &fakeBookingRepo{})

	req := validRequest()
	req.StartTime = "10:15"

	_, err := env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrOutsideSchedule)
}

func TestExecute_SlotOverlapsExistingBooking(t *testing.T) {
	resolver := &fakeResolver{intervals: []domain.Interval{{Start: "09:00", End: "18:00"}}}
	bookings := &fakeBookingRepo{existing: []*domain.Booking{
		{ID: 5, StartTime: "10:00", DurationMinutes: 30, Status: domain.StatusConfirmed},
	}}
	env := newTestEnv(defaultSchedule(), resolver, bookings)

	_, err := env.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_SlotLostToConcurrentInsert(t *testing.T) {
	resolver := &fakeResolver{intervals: []domain.Interval{{Start: "09:00", End: "18:00"}}}
	bookings := &fakeBookingRepo{createErr: bookingRepo.ErrSlotTaken}
	env := newTestEnv(defaultSchedule(), resolver, bookings)

	_, err := env.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_BlockedSlot(t *testing.T) {
	resolver := &fakeResolver{intervals: []domain.Interval{{Start: "09:00", End: "18:00"}}}
	schedule := defaultSchedule()
	schedule.blocks = []*domain.Block{{BarberID: 1, Date: bookingDay, Time: "10:00"}}
	env := newTestEnv(schedule, resolver, &fakeBookingRepo{})

	_, err := env.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_PastDate(t *testing.T) {
	env := newTestEnv(defaultSchedule(), &fakeResolver{}, &fakeBookingRepo{})

	req := validRequest()
	req.Date = time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC)

	_, err := env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_WalkInHoldsSlotWithoutPayment(t *testing.T) {
	resolver := &fakeResolver{intervals: []domain.Interval{{Start: "09:00", End: "18:00"}}}
	env := newTestEnv(defaultSchedule(), resolver, &fakeBookingRepo{})

	req := validRequest()
	req.WalkIn = true

	resp, err := env.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, string(domain.StatusBlocked), resp.Bookings[0].Status)
	assert.Nil(t, resp.PaymentLink)
	assert.Nil(t, resp.HoldExpiresAt)
	assert.Zero(t, env.gateway.calls)
	assert.Empty(t, env.notifier.messages)

	// Вся сумма наличными
	assert.Equal(t, 5000.0, env.bookings.created[0].CashAmount)
	assert.False(t, env.bookings.created[0].IsDeposit)
}

func TestExecute_MultiSessionSeries(t *testing.T) {
	resolver := &fakeResolver{intervals: []domain.Interval{{Start: "09:00", End: "18:00"}}}
	schedule := defaultSchedule()
	schedule.service = &domain.Service{ID: 3, Name: "Alisado x4", DurationMinutes: 60, Price: 20000, Sessions: 4}
	env := newTestEnv(schedule, resolver, &fakeBookingRepo{})

	resp, err := env.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	require.Len(t, resp.Bookings, 4)
	require.NotNil(t, resp.GroupID)
	_, parseErr := uuid.Parse(*resp.GroupID)
	assert.NoError(t, parseErr)

	// Сеансы еженедельно в одно и то же время
	for i, b := range resp.Bookings {
		assert.Equal(t, bookingDay.AddDate(0, 0, 7*i), b.BookingDate)
		assert.Equal(t, "10:00", string(b.StartTime))
	}

	for _, created := range env.bookings.created {
		require.NotNil(t, created.GroupID)
		assert.Equal(t, *resp.GroupID, *created.GroupID)
	}

	// external_reference серии - ID группы
	require.Len(t, env.gateway.externalRefs, 1)
	assert.Equal(t, *resp.GroupID, env.gateway.externalRefs[0])
}

func TestExecute_GatewayFailureRollsBackCreated(t *testing.T) {
	resolver := &fakeResolver{intervals: []domain.Interval{{Start: "09:00", End: "18:00"}}}
	bookings := &fakeBookingRepo{}
	env := newTestEnv(defaultSchedule(), resolver, bookings)
	env.gateway.err = errors.New("gateway timeout")

	_, err := env.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrPaymentGateway)

	require.Len(t, bookings.created, 1)
	assert.Equal(t, []int64{bookings.created[0].ID}, bookings.cancelled)
}

func TestExecute_ValidationFailures(t *testing.T) {
	env := newTestEnv(defaultSchedule(), &fakeResolver{}, &fakeBookingRepo{})

	tests := []struct {
		name   string
		mutate func(r *Request)
	}{
		{name: "zero barber", mutate: func(r *Request) { r.BarberID = 0 }},
		{name: "empty client name", mutate: func(r *Request) { r.ClientName = "" }},
		{name: "empty phone", mutate: func(r *Request) { r.ClientPhone = "" }},
		{name: "empty start time", mutate: func(r *Request) { r.StartTime = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)
			_, err := env.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
