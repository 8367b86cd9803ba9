package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turnosapp/booking-service/internal/domain"
	bookingRepo "github.com/turnosapp/booking-service/internal/infra/storage/booking"
	scheduleRepo "github.com/turnosapp/booking-service/internal/infra/storage/schedule"
	"github.com/turnosapp/booking-service/internal/service/bookings/models"
	"github.com/turnosapp/booking-service/pkg/ptr"
	"github.com/turnosapp/booking-service/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type stubTimeProvider struct {
	now time.Time
}

func (p stubTimeProvider) Now() time.Time { return p.now }

type inlineTxManager struct{}

func (inlineTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type mockBookingRepo struct {
	bookings map[int64]*domain.Booking

	confirmErr error
	cancelErr  error

	expireCutoff time.Time
	expiredCount int64

	confirmed []confirmCall
	cancelled []int64
	deleted   []int64
}

type confirmCall struct {
	id         int64
	paymentRef string
	amount     float64
}

func (m *mockBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	if b, ok := m.bookings[id]; ok {
		return b, nil
	}
	return nil, bookingRepo.ErrBookingNotFound
}

func (m *mockBookingRepo) GetByBarberWithFilter(ctx context.Context, filter domain.BarberBookingsFilter) ([]*domain.Booking, error) {
	var result []*domain.Booking
	for _, b := range m.bookings {
		if b.BarberID == filter.BarberID {
			result = append(result, b)
		}
	}
	return result, nil
}

func (m *mockBookingRepo) GetByGroupID(ctx context.Context, groupID string) ([]*domain.Booking, error) {
	var result []*domain.Booking
	// Стабильный порядок обхода по ID
	for id := int64(1); id <= int64(len(m.bookings))+10; id++ {
		b, ok := m.bookings[id]
		if !ok {
			continue
		}
		if b.GroupID != nil && *b.GroupID == groupID {
			result = append(result, b)
		}
	}
	return result, nil
}

func (m *mockBookingRepo) ConfirmPending(ctx context.Context, id int64, paymentRef string, amountPaid float64, isDeposit bool, cashAmount float64) error {
	if m.confirmErr != nil {
		return m.confirmErr
	}
	m.confirmed = append(m.confirmed, confirmCall{id: id, paymentRef: paymentRef, amount: amountPaid})
	return nil
}

func (m *mockBookingRepo) Cancel(ctx context.Context, id int64) error {
	if m.cancelErr != nil {
		return m.cancelErr
	}
	m.cancelled = append(m.cancelled, id)
	return nil
}

func (m *mockBookingRepo) ExpireStale(ctx context.Context, cutoff time.Time) (int64, error) {
	m.expireCutoff = cutoff
	return m.expiredCount, nil
}

func (m *mockBookingRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := m.bookings[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	delete(m.bookings, id)
	m.deleted = append(m.deleted, id)
	return nil
}

type mockScheduleRepo struct {
	barbers map[int64]*domain.Barber
	blocks  []*domain.Block

	createBlockErr error
	deleteBlockErr error
}

func (m *mockScheduleRepo) GetBarberByID(ctx context.Context, id int64) (*domain.Barber, error) {
	if b, ok := m.barbers[id]; ok {
		return b, nil
	}
	return nil, scheduleRepo.ErrBarberNotFound
}

func (m *mockScheduleRepo) GetBlocks(ctx context.Context, barberID int64, date time.Time) ([]*domain.Block, error) {
	return m.blocks, nil
}

func (m *mockScheduleRepo) CreateBlock(ctx context.Context, block *domain.Block) (*domain.Block, error) {
	if m.createBlockErr != nil {
		return nil, m.createBlockErr
	}
	created := *block
	created.ID = int64(len(m.blocks) + 1)
	m.blocks = append(m.blocks, &created)
	return &created, nil
}

func (m *mockScheduleRepo) DeleteBlock(ctx context.Context, barberID int64, date time.Time, slotTime types.TimeString) error {
	return m.deleteBlockErr
}

var testNow = time.Date(2026, 9, 6, 12, 0, 0, 0, time.UTC)

func newTestService(bookings *mockBookingRepo, schedule *mockScheduleRepo) *Service {
	return NewService(bookings, schedule, inlineTxManager{}, stubTimeProvider{now: testNow}, 20*time.Minute, nopLogger{})
}

func pendingBooking(id int64) *domain.Booking {
	return &domain.Booking{
		ID:              id,
		BarberID:        1,
		ServiceID:       1,
		BookingDate:     time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC),
		StartTime:       "10:00",
		DurationMinutes: 30,
		Status:          domain.StatusPendingPayment,
		IsDeposit:       false,
		CashAmount:      0,
	}
}

func TestConfirm_PendingBooking(t *testing.T) {
	repo := &mockBookingRepo{bookings: map[int64]*domain.Booking{1: pendingBooking(1)}}
	svc := newTestService(repo, &mockScheduleRepo{})

	err := svc.Confirm(context.Background(), 1, "pay-100", 5000)
	require.NoError(t, err)

	require.Len(t, repo.confirmed, 1)
	assert.Equal(t, confirmCall{id: 1, paymentRef: "pay-100", amount: 5000}, repo.confirmed[0])
}

func TestConfirm_ReplaySamePaymentRefIsNoop(t *testing.T) {
	b := pendingBooking(1)
	b.Status = domain.StatusConfirmed
	b.PaymentRef = ptr.Ptr("pay-100")
	repo := &mockBookingRepo{bookings: map[int64]*domain.Booking{1: b}}
	svc := newTestService(repo, &mockScheduleRepo{})

	err := svc.Confirm(context.Background(), 1, "pay-100", 5000)
	require.NoError(t, err)
	assert.Empty(t, repo.confirmed)
}

func TestConfirm_DifferentPaymentRefIsMismatch(t *testing.T) {
	b := pendingBooking(1)
	b.Status = domain.StatusConfirmed
	b.PaymentRef = ptr.Ptr("pay-100")
	repo := &mockBookingRepo{bookings: map[int64]*domain.Booking{1: b}}
	svc := newTestService(repo, &mockScheduleRepo{})

	err := svc.Confirm(context.Background(), 1, "pay-200", 5000)
	assert.ErrorIs(t, err, ErrPaymentRefMismatch)
}

func TestConfirm_ExpiredBookingIsNotPending(t *testing.T) {
	b := pendingBooking(1)
	b.Status = domain.StatusExpired
	repo := &mockBookingRepo{bookings: map[int64]*domain.Booking{1: b}}
	svc := newTestService(repo, &mockScheduleRepo{})

	err := svc.Confirm(context.Background(), 1, "pay-100", 5000)
	assert.ErrorIs(t, err, ErrNotPending)
}

func TestConfirm_RaceLostToExpirer(t *testing.T) {
	// Между чтением и условным UPDATE бронь истекла
	repo := &mockBookingRepo{
		bookings:   map[int64]*domain.Booking{1: pendingBooking(1)},
		confirmErr: bookingRepo.ErrNoPendingBooking,
	}
	svc := newTestService(repo, &mockScheduleRepo{})

	err := svc.Confirm(context.Background(), 1, "pay-100", 5000)
	assert.ErrorIs(t, err, ErrNotPending)
}

func TestConfirm_BookingNotFound(t *testing.T) {
	repo := &mockBookingRepo{bookings: map[int64]*domain.Booking{}}
	svc := newTestService(repo, &mockScheduleRepo{})

	err := svc.Confirm(context.Background(), 99, "pay-100", 5000)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestConfirmGroup_AmountOnFirstSessionOnly(t *testing.T) {
	groupID := "7b0c1f34-9c34-4c8e-9f2a-111111111111"
	b1, b2, b3 := pendingBooking(1), pendingBooking(2), pendingBooking(3)
	b1.GroupID, b2.GroupID, b3.GroupID = &groupID, &groupID, &groupID
	repo := &mockBookingRepo{bookings: map[int64]*domain.Booking{1: b1, 2: b2, 3: b3}}
	svc := newTestService(repo, &mockScheduleRepo{})

	err := svc.ConfirmGroup(context.Background(), groupID, "pay-100", 20000)
	require.NoError(t, err)

	require.Len(t, repo.confirmed, 3)
	assert.Equal(t, 20000.0, repo.confirmed[0].amount)
	assert.Equal(t, 0.0, repo.confirmed[1].amount)
	assert.Equal(t, 0.0, repo.confirmed[2].amount)
}

func TestConfirmGroup_EmptyGroup(t *testing.T) {
	repo := &mockBookingRepo{bookings: map[int64]*domain.Booking{}}
	svc := newTestService(repo, &mockScheduleRepo{})

	err := svc.ConfirmGroup(context.Background(), "7b0c1f34-9c34-4c8e-9f2a-111111111111", "pay-100", 20000)
	assert.ErrorIs(t, err, ErrGroupNotFound)
}

func TestCancel_ConfirmedBooking(t *testing.T) {
	b := pendingBooking(1)
	b.Status = domain.StatusConfirmed
	repo := &mockBookingRepo{bookings: map[int64]*domain.Booking{1: b}}
	svc := newTestService(repo, &mockScheduleRepo{})

	err := svc.Cancel(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, repo.cancelled)
}

func TestCancel_ExpiredBooking(t *testing.T) {
	b := pendingBooking(1)
	b.Status = domain.StatusExpired
	repo := &mockBookingRepo{bookings: map[int64]*domain.Booking{1: b}}
	svc := newTestService(repo, &mockScheduleRepo{})

	err := svc.Cancel(context.Background(), 1)
	assert.ErrorIs(t, err, ErrCannotCancel)
	assert.Empty(t, repo.cancelled)
}

func TestCancel_WalkInBookingIsDeleted(t *testing.T) {
	b := pendingBooking(1)
	b.Status = domain.StatusBlocked
	repo := &mockBookingRepo{bookings: map[int64]*domain.Booking{1: b}}
	svc := newTestService(repo, &mockScheduleRepo{})

	err := svc.Cancel(context.Background(), 1)
	require.NoError(t, err)

	// Walk-in бронь удаляется, а не переводится в CANCELLED
	assert.Equal(t, []int64{1}, repo.deleted)
	assert.Empty(t, repo.cancelled)
	assert.NotContains(t, repo.bookings, int64(1))
}

func TestCancelGroup_WalkInSeriesIsDeleted(t *testing.T) {
	groupID := "7b0c1f34-9c34-4c8e-9f2a-111111111111"
	b1, b2 := pendingBooking(1), pendingBooking(2)
	b1.Status, b2.Status = domain.StatusBlocked, domain.StatusBlocked
	b1.GroupID, b2.GroupID = &groupID, &groupID
	repo := &mockBookingRepo{bookings: map[int64]*domain.Booking{1: b1, 2: b2}}
	svc := newTestService(repo, &mockScheduleRepo{})

	err := svc.CancelGroup(context.Background(), groupID)
	require.NoError(t, err)

	assert.Equal(t, []int64{1, 2}, repo.deleted)
	assert.Empty(t, repo.cancelled)
}

func TestCancelGroup_MixedWalkInAndPending(t *testing.T) {
	groupID := "7b0c1f34-9c34-4c8e-9f2a-111111111111"
	b1, b2 := pendingBooking(1), pendingBooking(2)
	b1.Status = domain.StatusBlocked
	b1.GroupID, b2.GroupID = &groupID, &groupID
	repo := &mockBookingRepo{bookings: map[int64]*domain.Booking{1: b1, 2: b2}}
	svc := newTestService(repo, &mockScheduleRepo{})

	err := svc.CancelGroup(context.Background(), groupID)
	require.NoError(t, err)

	assert.Equal(t, []int64{1}, repo.deleted)
	assert.Equal(t, []int64{2}, repo.cancelled)
}

func TestCancel_RaceLostToStatusChange(t *testing.T) {
	repo := &mockBookingRepo{
		bookings:  map[int64]*domain.Booking{1: pendingBooking(1)},
		cancelErr: bookingRepo.ErrNotCancellable,
	}
	svc := newTestService(repo, &mockScheduleRepo{})

	err := svc.Cancel(context.Background(), 1)
	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestCancelGroup_AllOrNothing(t *testing.T) {
	groupID := "7b0c1f34-9c34-4c8e-9f2a-111111111111"
	b1, b2 := pendingBooking(1), pendingBooking(2)
	b2.Status = domain.StatusExpired
	b1.GroupID, b2.GroupID = &groupID, &groupID
	repo := &mockBookingRepo{bookings: map[int64]*domain.Booking{1: b1, 2: b2}}
	svc := newTestService(repo, &mockScheduleRepo{})

	err := svc.CancelGroup(context.Background(), groupID)
	assert.ErrorIs(t, err, ErrCannotCancel)
	// Валидация до первой отмены: ничего не отменено
	assert.Empty(t, repo.cancelled)
}

func TestCancelGroup_SkipsAlreadyCancelled(t *testing.T) {
	groupID := "7b0c1f34-9c34-4c8e-9f2a-111111111111"
	b1, b2 := pendingBooking(1), pendingBooking(2)
	b1.Status = domain.StatusCancelled
	b1.GroupID, b2.GroupID = &groupID, &groupID
	repo := &mockBookingRepo{bookings: map[int64]*domain.Booking{1: b1, 2: b2}}
	svc := newTestService(repo, &mockScheduleRepo{})

	err := svc.CancelGroup(context.Background(), groupID)
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, repo.cancelled)
}

func TestBlockSlot_FreeSlot(t *testing.T) {
	schedule := &mockScheduleRepo{barbers: map[int64]*domain.Barber{1: {ID: 1}}}
	repo := &mockBookingRepo{bookings: map[int64]*domain.Booking{}}
	svc := newTestService(repo, schedule)

	date := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	block, err := svc.BlockSlot(context.Background(), 1, date, "10:00")
	require.NoError(t, err)

	assert.Equal(t, int64(1), block.BarberID)
	assert.Equal(t, types.TimeString("10:00"), block.Time)
}

func TestBlockSlot_OccupiedByBooking(t *testing.T) {
	schedule := &mockScheduleRepo{barbers: map[int64]*domain.Barber{1: {ID: 1}}}
	b := pendingBooking(1)
	b.Status = domain.StatusConfirmed
	b.StartTime = "10:00"
	b.DurationMinutes = 60
	repo := &mockBookingRepo{bookings: map[int64]*domain.Booking{1: b}}
	svc := newTestService(repo, schedule)

	date := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

	// Бронь 10:00-11:00 накрывает обе ячейки
	_, err := svc.BlockSlot(context.Background(), 1, date, "10:30")
	assert.ErrorIs(t, err, ErrSlotOccupied)

	// 11:00 уже свободно: конец брони не включается
	_, err = svc.BlockSlot(context.Background(), 1, date, "11:00")
	assert.NoError(t, err)
}

func TestBlockSlot_AlreadyBlocked(t *testing.T) {
	schedule := &mockScheduleRepo{
		barbers:        map[int64]*domain.Barber{1: {ID: 1}},
		createBlockErr: scheduleRepo.ErrBlockExists,
	}
	repo := &mockBookingRepo{bookings: map[int64]*domain.Booking{}}
	svc := newTestService(repo, schedule)

	_, err := svc.BlockSlot(context.Background(), 1, time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC), "10:00")
	assert.ErrorIs(t, err, ErrBlockExists)
}

func TestBlockSlot_InvalidTime(t *testing.T) {
	svc := newTestService(&mockBookingRepo{}, &mockScheduleRepo{})

	_, err := svc.BlockSlot(context.Background(), 1, time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC), "25:00")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUnblockSlot_NotFound(t *testing.T) {
	schedule := &mockScheduleRepo{deleteBlockErr: scheduleRepo.ErrBlockNotFound}
	svc := newTestService(&mockBookingRepo{}, schedule)

	err := svc.UnblockSlot(context.Background(), 1, time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC), "10:00")
	assert.ErrorIs(t, err, ErrBlockNotFound)
}

func TestExpireStale_CutoffMath(t *testing.T) {
	repo := &mockBookingRepo{expiredCount: 3}
	svc := newTestService(repo, &mockScheduleRepo{})

	expired, err := svc.ExpireStale(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(3), expired)
	assert.Equal(t, testNow.Add(-20*time.Minute), repo.expireCutoff)
}

func TestGetBarberBookings_UnknownStatus(t *testing.T) {
	schedule := &mockScheduleRepo{barbers: map[int64]*domain.Barber{1: {ID: 1}}}
	svc := newTestService(&mockBookingRepo{}, schedule)

	_, err := svc.GetBarberBookings(context.Background(), &models.GetBarberBookingsRequest{
		BarberID: 1,
		Status:   ptr.Ptr("paid"),
	})
	assert.ErrorIs(t, err, ErrValidation)
}
