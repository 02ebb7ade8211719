package service

import (
	"context"

	"github.com/Freeeeeet/vmk_schedule_bot/internal/model"
	"github.com/Freeeeeet/vmk_schedule_bot/internal/timetable"
)

// ScheduleStore - хранилище закодированных недель (репозиторий или кэш над ним)
type ScheduleStore interface {
	WriteWeek(ctx context.Context, group string, odd bool, days [7][]string) error
	ReadDay(ctx context.Context, group string, odd bool, weekday model.Weekday) ([]string, error)
	Groups(ctx context.Context) ([]string, error)
}

// DocumentStore - множество хешей импортированных файлов
type DocumentStore interface {
	Exists(ctx context.Context, hash string) (bool, error)
	Add(ctx context.Context, doc *model.Document) (bool, error)
}

// StudentStore - студенты и их шаг диалога
type StudentStore interface {
	Upsert(ctx context.Context, student *model.Student) error
	GetByTelegramID(ctx context.Context, telegramID int64) (*model.Student, error)
	UpdateGroup(ctx context.Context, telegramID int64, group string) error
	UpdateState(ctx context.Context, telegramID int64, state model.StudentState) error
}

// GridReader превращает содержимое файла в таблицы страниц
type GridReader func(data []byte) ([]timetable.Grid, error)
