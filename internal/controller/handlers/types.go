package handlers

import (
	"context"
	"time"

	"github.com/Freeeeeet/vmk_schedule_bot/internal/controller/state"
	"github.com/Freeeeeet/vmk_schedule_bot/internal/model"
	"github.com/Freeeeeet/vmk_schedule_bot/internal/service"
	"go.uber.org/zap"
)

// ScheduleQueries - запросы расписания, нужные диалогу
type ScheduleQueries interface {
	Today(ctx context.Context, group string, now time.Time) (string, error)
	Tomorrow(ctx context.Context, group string, now time.Time) (string, error)
	Week(ctx context.Context, group string, now time.Time) (string, error)
	WeekLessons(ctx context.Context, group string, odd bool) (model.Week, error)
	Calendar() service.Calendar
}

// Students - хранение студентов и их шагов диалога
type Students interface {
	Register(ctx context.Context, telegramID int64, username, languageCode string) (*model.Student, error)
	Get(ctx context.Context, telegramID int64) (*model.Student, error)
	SetGroup(ctx context.Context, telegramID int64, group string) error
	SetState(ctx context.Context, telegramID int64, state model.StudentState) error
}

// Handlers содержит все зависимости для обработки сообщений
type Handlers struct {
	schedule     ScheduleQueries
	students     Students
	stateManager *state.Manager
	icsWeeks     int
	now          func() time.Time
	logger       *zap.Logger
}

func NewHandlers(
	schedule ScheduleQueries,
	students Students,
	icsWeeks int,
	logger *zap.Logger,
) *Handlers {
	if icsWeeks <= 0 {
		icsWeeks = 4
	}
	return &Handlers{
		schedule:     schedule,
		students:     students,
		stateManager: state.NewManager(students.Get),
		icsWeeks:     icsWeeks,
		now:          time.Now,
		logger:       logger,
	}
}
