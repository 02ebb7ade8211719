package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/vmk_schedule_bot/internal/model"
	"github.com/Freeeeeet/vmk_schedule_bot/internal/repository/base"
)

type StudentRepository struct {
	pool base.DB
}

func NewStudentRepository(pool base.DB) *StudentRepository {
	return &StudentRepository{pool: pool}
}

// Upsert создаёт студента или обновляет его имя и язык.
// Группа и состояние существующей записи не трогаются.
func (r *StudentRepository) Upsert(ctx context.Context, student *model.Student) error {
	query := `
		INSERT INTO students (telegram_id, username, language_code, group_number, state)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (telegram_id) DO UPDATE
		SET username = EXCLUDED.username,
		    language_code = EXCLUDED.language_code,
		    updated_at = NOW()
		RETURNING group_number, state, created_at, updated_at
	`

	err := r.pool.QueryRow(
		ctx, query,
		student.TelegramID,
		student.Username,
		student.LanguageCode,
		student.GroupNumber,
		string(student.State),
	).Scan(&student.GroupNumber, &student.State, &student.CreatedAt, &student.UpdatedAt)

	if err != nil {
		return fmt.Errorf("upsert student: %w", err)
	}

	return nil
}

// GetByTelegramID получает студента по Telegram ID
func (r *StudentRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*model.Student, error) {
	query := `
		SELECT telegram_id, username, language_code, group_number, state, created_at, updated_at
		FROM students
		WHERE telegram_id = $1
	`

	var s model.Student
	err := r.pool.QueryRow(ctx, query, telegramID).Scan(
		&s.TelegramID,
		&s.Username,
		&s.LanguageCode,
		&s.GroupNumber,
		&s.State,
		&s.CreatedAt,
		&s.UpdatedAt,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil // Студент не найден
		}
		return nil, fmt.Errorf("get student by telegram id: %w", err)
	}

	return &s, nil
}

// UpdateGroup сохраняет выбранную группу.
// Пользователь мог написать номер группы без /start, поэтому строка создаётся при отсутствии.
func (r *StudentRepository) UpdateGroup(ctx context.Context, telegramID int64, group string) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO students (telegram_id, group_number)
		VALUES ($1, $2)
		ON CONFLICT (telegram_id) DO UPDATE
		SET group_number = EXCLUDED.group_number, updated_at = NOW()
	`, telegramID, group)
	if err != nil {
		return fmt.Errorf("update student group: %w", err)
	}
	return nil
}

// UpdateState сохраняет шаг диалога
func (r *StudentRepository) UpdateState(ctx context.Context, telegramID int64, state model.StudentState) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO students (telegram_id, state)
		VALUES ($1, $2)
		ON CONFLICT (telegram_id) DO UPDATE
		SET state = EXCLUDED.state, updated_at = NOW()
	`, telegramID, string(state))
	if err != nil {
		return fmt.Errorf("update student state: %w", err)
	}
	return nil
}
