package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/Freeeeeet/vmk_schedule_bot/internal/formatting"
	"github.com/Freeeeeet/vmk_schedule_bot/internal/model"
	"github.com/Freeeeeet/vmk_schedule_bot/internal/repository"
	"go.uber.org/zap"
)

// ErrNoSchedule - для группы нет сохранённого расписания
var ErrNoSchedule = errors.New("no schedule for group")

type ScheduleService struct {
	store    ScheduleStore
	calendar Calendar
	logger   *zap.Logger
}

func NewScheduleService(store ScheduleStore, calendar Calendar, logger *zap.Logger) *ScheduleService {
	return &ScheduleService{
		store:    store,
		calendar: calendar,
		logger:   logger,
	}
}

// Calendar возвращает календарь сервиса
func (s *ScheduleService) Calendar() Calendar {
	return s.calendar
}

func (s *ScheduleService) readDay(ctx context.Context, group string, odd bool, weekday model.Weekday) ([]model.Lesson, error) {
	encoded, err := s.store.ReadDay(ctx, group, odd, weekday)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNoSchedule, group)
		}
		return nil, fmt.Errorf("read %s %s: %w", group, weekday, err)
	}

	lessons, err := model.DecodeLessons(encoded)
	if err != nil {
		s.logger.Error("Stored schedule is malformed",
			zap.String("group", group),
			zap.Bool("odd", odd),
			zap.Stringer("weekday", weekday),
			zap.Error(err),
		)
		return nil, fmt.Errorf("decode %s %s: %w", group, weekday, err)
	}
	return lessons, nil
}

// GetDay возвращает текст расписания дня.
// Для воскресенья хранилище не читается.
func (s *ScheduleService) GetDay(ctx context.Context, group string, odd bool, weekday model.Weekday, annotate bool, now time.Time) (string, error) {
	if weekday == model.Sunday {
		return formatting.SundayMessage, nil
	}

	lessons, err := s.readDay(ctx, group, odd, weekday)
	if err != nil {
		return "", err
	}

	return formatting.FormatDayMessage(weekday, formatting.FormatDay(lessons, annotate, now)), nil
}

// WeekLessons читает все учебные дни группы для одной чётности
func (s *ScheduleService) WeekLessons(ctx context.Context, group string, odd bool) (model.Week, error) {
	var week model.Week
	for _, d := range model.StudyDays {
		lessons, err := s.readDay(ctx, group, odd, d)
		if err != nil {
			return model.Week{}, err
		}
		week[d] = lessons
	}
	week[model.Sunday] = []model.Lesson{}
	return week, nil
}

// GetWeek возвращает текст расписания недели без отметок статуса
func (s *ScheduleService) GetWeek(ctx context.Context, group string, odd bool) (string, error) {
	week, err := s.WeekLessons(ctx, group, odd)
	if err != nil {
		return "", err
	}
	return formatting.FormatWeek(week), nil
}

// Today - расписание на сегодня с отметками статуса
func (s *ScheduleService) Today(ctx context.Context, group string, now time.Time) (string, error) {
	t := s.calendar.In(now)
	return s.GetDay(ctx, group, s.calendar.IsOdd(t), model.WeekdayOf(t), true, t)
}

// Tomorrow - расписание на завтра, чётность и день берутся от завтрашней даты
func (s *ScheduleService) Tomorrow(ctx context.Context, group string, now time.Time) (string, error) {
	t := s.calendar.In(now).AddDate(0, 0, 1)
	return s.GetDay(ctx, group, s.calendar.IsOdd(t), model.WeekdayOf(t), false, t)
}

// Week - расписание текущей недели
func (s *ScheduleService) Week(ctx context.Context, group string, now time.Time) (string, error) {
	return s.GetWeek(ctx, group, s.calendar.IsOdd(now))
}

// ListGroups возвращает группы с сохранённым расписанием
func (s *ScheduleService) ListGroups(ctx context.Context) ([]string, error) {
	groups, err := s.store.Groups(ctx)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	return groups, nil
}

// IsKnownGroup проверяет, есть ли расписание у группы
func (s *ScheduleService) IsKnownGroup(ctx context.Context, group string) (bool, error) {
	groups, err := s.ListGroups(ctx)
	if err != nil {
		return false, err
	}
	return slices.Contains(groups, group), nil
}
