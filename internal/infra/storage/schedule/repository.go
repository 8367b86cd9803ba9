package schedule

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/turnosapp/booking-service/internal/domain"
	"github.com/turnosapp/booking-service/pkg/dbmetrics"
	"github.com/turnosapp/booking-service/pkg/psqlbuilder"
	"github.com/turnosapp/booking-service/pkg/types"
)

const pgUniqueViolation = "23505"

// Repository репозиторий для работы с барберами, услугами и источниками расписания
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetBarberByID получает барбера по ID
func (r *Repository) GetBarberByID(ctx context.Context, id int64) (*domain.Barber, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"branch_id",
		"phone",
		"photo_url",
		"created_at",
		"updated_at",
	).
		From("barbers").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetBarberByID - build select query: %v", ErrBuildQuery, err)
	}

	var barber domain.Barber
	var phone, photoURL sql.NullString
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&barber.ID,
		&barber.Name,
		&barber.BranchID,
		&phone,
		&photoURL,
		&createdAt,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBarberNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetBarberByID - scan barber: %v", ErrScanRow, err)
	}

	if phone.Valid {
		barber.Phone = &phone.String
	}
	if photoURL.Valid {
		barber.PhotoURL = &photoURL.String
	}
	barber.CreatedAt = createdAt.Time
	barber.UpdatedAt = updatedAt.Time

	return &barber, nil
}

// GetServiceByID получает услугу по ID
func (r *Repository) GetServiceByID(ctx context.Context, id int64) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"duration_minutes",
		"price",
		"deposit_amount",
		"sessions",
		"created_at",
		"updated_at",
	).
		From("services").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetServiceByID - build select query: %v", ErrBuildQuery, err)
	}

	var service domain.Service
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&service.ID,
		&service.Name,
		&service.DurationMinutes,
		&service.Price,
		&service.DepositAmount,
		&service.Sessions,
		&createdAt,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetServiceByID - scan service: %v", ErrScanRow, err)
	}

	service.CreatedAt = createdAt.Time
	service.UpdatedAt = updatedAt.Time

	return &service, nil
}

// GetWeeklyEntries получает смены недельного шаблона барбера на день недели,
// отсортированные по времени начала
func (r *Repository) GetWeeklyEntries(ctx context.Context, barberID int64, weekday int) ([]*domain.WeeklyScheduleEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"barber_id",
		"weekday",
		"start_time",
		"end_time",
	).
		From("weekly_schedule").
		Where(squirrel.Eq{"barber_id": barberID, "weekday": weekday}).
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetWeeklyEntries - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWeeklyEntries - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	entries := make([]*domain.WeeklyScheduleEntry, 0)
	for rows.Next() {
		var entry domain.WeeklyScheduleEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.BarberID,
			&entry.Weekday,
			&entry.StartTime,
			&entry.EndTime,
		); err != nil {
			return nil, fmt.Errorf("%w: GetWeeklyEntries - scan row: %v", ErrScanRow, err)
		}
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetWeeklyEntries - rows error: %v", ErrScanRow, err)
	}

	return entries, nil
}

// GetExceptionalDays получает исключительные смены барбера на конкретную дату,
// отсортированные по времени начала
func (r *Repository) GetExceptionalDays(ctx context.Context, barberID int64, date time.Time) ([]*domain.ExceptionalDay, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"barber_id",
		"day",
		"start_time",
		"end_time",
	).
		From("exceptional_days").
		Where(squirrel.Eq{"barber_id": barberID, "day": date}).
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetExceptionalDays - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetExceptionalDays - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	days := make([]*domain.ExceptionalDay, 0)
	for rows.Next() {
		var day domain.ExceptionalDay
		if err := rows.Scan(
			&day.ID,
			&day.BarberID,
			&day.Date,
			&day.StartTime,
			&day.EndTime,
		); err != nil {
			return nil, fmt.Errorf("%w: GetExceptionalDays - scan row: %v", ErrScanRow, err)
		}
		days = append(days, &day)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetExceptionalDays - rows error: %v", ErrScanRow, err)
	}

	return days, nil
}

// CreateExceptionalDay создает исключительную смену на дату
func (r *Repository) CreateExceptionalDay(ctx context.Context, day *domain.ExceptionalDay) (*domain.ExceptionalDay, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("exceptional_days").
		Columns("barber_id", "day", "start_time", "end_time").
		Values(day.BarberID, day.Date, day.StartTime, day.EndTime).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateExceptionalDay - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&day.ID); err != nil {
		return nil, fmt.Errorf("%w: CreateExceptionalDay - execute insert: %v", ErrExecQuery, err)
	}

	return day, nil
}

// DeleteExceptionalDay удаляет исключительную смену по ID
func (r *Repository) DeleteExceptionalDay(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("exceptional_days").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteExceptionalDay - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteExceptionalDay - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteExceptionalDay - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrExceptionalDayNotFound
	}

	return nil
}

// GetBlocks получает блокировки слотов барбера на дату
func (r *Repository) GetBlocks(ctx context.Context, barberID int64, date time.Time) ([]*domain.Block, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"barber_id",
		"day",
		"slot_time",
	).
		From("blocks").
		Where(squirrel.Eq{"barber_id": barberID, "day": date}).
		OrderBy("slot_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetBlocks - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBlocks - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	blocks := make([]*domain.Block, 0)
	for rows.Next() {
		var block domain.Block
		if err := rows.Scan(
			&block.ID,
			&block.BarberID,
			&block.Date,
			&block.Time,
		); err != nil {
			return nil, fmt.Errorf("%w: GetBlocks - scan row: %v", ErrScanRow, err)
		}
		blocks = append(blocks, &block)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetBlocks - rows error: %v", ErrScanRow, err)
	}

	return blocks, nil
}

// CreateBlock блокирует один слот сетки. Повторная блокировка того же
// слота отклоняется уникальным ограничением.
func (r *Repository) CreateBlock(ctx context.Context, block *domain.Block) (*domain.Block, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("blocks").
		Columns("barber_id", "day", "slot_time").
		Values(block.BarberID, block.Date, block.Time).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateBlock - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&block.ID); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
			return nil, ErrBlockExists
		}
		return nil, fmt.Errorf("%w: CreateBlock - execute insert: %v", ErrExecQuery, err)
	}

	return block, nil
}

// DeleteBlock снимает блокировку слота
func (r *Repository) DeleteBlock(ctx context.Context, barberID int64, date time.Time, slotTime types.TimeString) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("blocks").
		Where(squirrel.Eq{
			"barber_id": barberID,
			"day":       date,
			"slot_time": slotTime,
		}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteBlock - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteBlock - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteBlock - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBlockNotFound
	}

	return nil
}
