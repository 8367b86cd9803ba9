package schedule

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/turnosapp/booking-service/internal/domain"
	scheduleRepo "github.com/turnosapp/booking-service/internal/infra/storage/schedule"
)

// Service резолвер расписания: сводит недельный шаблон, исключительные дни
// и возвращает открытые интервалы доступности барбера на дату
type Service struct {
	repo   ScheduleRepository
	logger Logger
}

// NewService создает новый экземпляр резолвера расписания
func NewService(repo ScheduleRepository, logger Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// OpenIntervals возвращает отсортированные непересекающиеся интервалы
// доступности барбера на дату.
//
// Источник выбирается целиком: если на дату есть хотя бы одна
// исключительная смена, недельный шаблон игнорируется полностью.
// Пересекающиеся смены не считаются ошибкой и сливаются в один интервал.
// Чтение чистое, без побочных эффектов.
func (s *Service) OpenIntervals(ctx context.Context, barberID int64, date time.Time) ([]domain.Interval, error) {
	if _, err := s.repo.GetBarberByID(ctx, barberID); err != nil {
		if errors.Is(err, scheduleRepo.ErrBarberNotFound) {
			s.logger.Warn("OpenIntervals: barber id=%d not found", barberID)
			return nil, ErrBarberNotFound
		}
		s.logger.Error("OpenIntervals: failed to get barber id=%d: %v", barberID, err)
		return nil, fmt.Errorf("%w: OpenIntervals - get barber: %v", ErrInternal, err)
	}

	exceptional, err := s.repo.GetExceptionalDays(ctx, barberID, date)
	if err != nil {
		s.logger.Error("OpenIntervals: failed to get exceptional days for barber=%d: %v", barberID, err)
		return nil, fmt.Errorf("%w: OpenIntervals - get exceptional days: %v", ErrInternal, err)
	}

	if len(exceptional) > 0 {
		intervals := make([]domain.Interval, 0, len(exceptional))
		for _, day := range exceptional {
			intervals = append(intervals, domain.Interval{Start: day.StartTime, End: day.EndTime})
		}
		return sortAndMerge(intervals), nil
	}

	entries, err := s.repo.GetWeeklyEntries(ctx, barberID, int(date.Weekday()))
	if err != nil {
		s.logger.Error("OpenIntervals: failed to get weekly entries for barber=%d: %v", barberID, err)
		return nil, fmt.Errorf("%w: OpenIntervals - get weekly entries: %v", ErrInternal, err)
	}

	intervals := make([]domain.Interval, 0, len(entries))
	for _, entry := range entries {
		intervals = append(intervals, domain.Interval{Start: entry.StartTime, End: entry.EndTime})
	}

	return sortAndMerge(intervals), nil
}

// CreateExceptionalDay создает исключительную смену на дату
func (s *Service) CreateExceptionalDay(ctx context.Context, day *domain.ExceptionalDay) (*domain.ExceptionalDay, error) {
	s.logger.Info("CreateExceptionalDay: barber=%d date=%s %s-%s",
		day.BarberID, day.Date.Format(domain.DateFormat), day.StartTime, day.EndTime)

	if !day.StartTime.IsBefore(day.EndTime) {
		return nil, ErrInvalidInterval
	}

	if _, err := s.repo.GetBarberByID(ctx, day.BarberID); err != nil {
		if errors.Is(err, scheduleRepo.ErrBarberNotFound) {
			return nil, ErrBarberNotFound
		}
		return nil, fmt.Errorf("%w: CreateExceptionalDay - get barber: %v", ErrInternal, err)
	}

	created, err := s.repo.CreateExceptionalDay(ctx, day)
	if err != nil {
		s.logger.Error("CreateExceptionalDay: repository error for barber=%d: %v", day.BarberID, err)
		return nil, fmt.Errorf("%w: CreateExceptionalDay - repository error: %v", ErrInternal, err)
	}

	return created, nil
}

// DeleteExceptionalDay удаляет исключительную смену по ID
func (s *Service) DeleteExceptionalDay(ctx context.Context, id int64) error {
	s.logger.Info("DeleteExceptionalDay: id=%d", id)

	if err := s.repo.DeleteExceptionalDay(ctx, id); err != nil {
		if errors.Is(err, scheduleRepo.ErrExceptionalDayNotFound) {
			return ErrExceptionalDayNotFound
		}
		s.logger.Error("DeleteExceptionalDay: repository error for id=%d: %v", id, err)
		return fmt.Errorf("%w: DeleteExceptionalDay - repository error: %v", ErrInternal, err)
	}

	return nil
}

// sortAndMerge сортирует интервалы по началу и сливает пересекающиеся.
// Невалидные интервалы (конец не позже начала) отбрасываются.
func sortAndMerge(intervals []domain.Interval) []domain.Interval {
	valid := make([]domain.Interval, 0, len(intervals))
	for _, iv := range intervals {
		if iv.IsValid() {
			valid = append(valid, iv)
		}
	}

	if len(valid) <= 1 {
		return valid
	}

	sort.Slice(valid, func(i, j int) bool {
		return valid[i].Start.IsBefore(valid[j].Start)
	})

	merged := []domain.Interval{valid[0]}
	for _, iv := range valid[1:] {
		last := &merged[len(merged)-1]
		// Стык (конец одной смены равен началу следующей) пересечением
		// не считается: смены остаются отдельными интервалами
		if !iv.Start.IsBefore(last.End) {
			merged = append(merged, iv)
			continue
		}
		if iv.End.IsAfter(last.End) {
			last.End = iv.End
		}
	}

	return merged
}
