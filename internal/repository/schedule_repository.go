package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Freeeeeet/vmk_schedule_bot/internal/model"
	"github.com/Freeeeeet/vmk_schedule_bot/internal/repository/base"
	"github.com/jackc/pgx/v5"
)

// ErrNotFound - для запрошенной группы и чётности нет расписания
var ErrNotFound = errors.New("schedule not found")

// ScheduleRepository хранит закодированные пары: группа × чётность × день недели
type ScheduleRepository struct {
	*base.Repository
}

func NewScheduleRepository(pool base.DB) *ScheduleRepository {
	return &ScheduleRepository{Repository: base.NewRepository(pool)}
}

// WriteWeek целиком заменяет неделю группы одной транзакции.
// Читатели видят либо старую неделю, либо новую.
func (r *ScheduleRepository) WriteWeek(ctx context.Context, group string, odd bool, days [7][]string) error {
	return r.WithTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			DELETE FROM schedule_days
			WHERE group_number = $1 AND odd_week = $2
		`, group, odd)
		if err != nil {
			return fmt.Errorf("delete week %s: %w", group, err)
		}

		batch := &pgx.Batch{}
		for day, lessons := range days {
			if lessons == nil {
				lessons = []string{}
			}
			batch.Queue(`
				INSERT INTO schedule_days (group_number, odd_week, weekday, lessons, updated_at)
				VALUES ($1, $2, $3, $4, NOW())
			`, group, odd, int16(day), lessons)
		}

		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("insert week %s: %w", group, err)
		}
		return nil
	})
}

// ReadDay возвращает закодированные пары дня или ErrNotFound
func (r *ScheduleRepository) ReadDay(ctx context.Context, group string, odd bool, weekday model.Weekday) ([]string, error) {
	query := `
		SELECT lessons
		FROM schedule_days
		WHERE group_number = $1 AND odd_week = $2 AND weekday = $3
	`

	var lessons []string
	err := r.Pool().QueryRow(ctx, query, group, odd, int16(weekday)).Scan(&lessons)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read day %s/%s: %w", group, weekday, err)
	}

	return lessons, nil
}

// Groups возвращает все группы, для которых есть расписание
func (r *ScheduleRepository) Groups(ctx context.Context) ([]string, error) {
	rows, err := r.Pool().Query(ctx, `
		SELECT DISTINCT group_number
		FROM schedule_days
		ORDER BY group_number
	`)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}

	groups, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scan groups: %w", err)
	}
	return groups, nil
}

// DeleteGroup удаляет расписание группы для обеих чётностей
func (r *ScheduleRepository) DeleteGroup(ctx context.Context, group string) (int64, error) {
	affected, err := r.ExecAffected(ctx, `DELETE FROM schedule_days WHERE group_number = $1`, group)
	if err != nil {
		return 0, fmt.Errorf("delete group %s: %w", group, err)
	}
	return affected, nil
}
