package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Freeeeeet/vmk_schedule_bot/internal/model"
	"go.uber.org/zap"
)

// ErrUnknownGroup - для введённой группы нет расписания
var ErrUnknownGroup = errors.New("unknown group")

// GroupChecker проверяет, есть ли расписание у группы
type GroupChecker interface {
	IsKnownGroup(ctx context.Context, group string) (bool, error)
}

type StudentService struct {
	students StudentStore
	groups   GroupChecker
	logger   *zap.Logger
}

func NewStudentService(students StudentStore, groups GroupChecker, logger *zap.Logger) *StudentService {
	return &StudentService{
		students: students,
		groups:   groups,
		logger:   logger,
	}
}

// Register регистрирует студента или обновляет его данные и начинает диалог заново
func (s *StudentService) Register(ctx context.Context, telegramID int64, username, languageCode string) (*model.Student, error) {
	student := &model.Student{
		TelegramID:   telegramID,
		Username:     username,
		LanguageCode: languageCode,
		State:        model.StudentStateProcessing,
	}

	if err := s.students.Upsert(ctx, student); err != nil {
		return nil, fmt.Errorf("register student: %w", err)
	}

	if student.State != model.StudentStateProcessing {
		if err := s.students.UpdateState(ctx, telegramID, model.StudentStateProcessing); err != nil {
			return nil, fmt.Errorf("reset student state: %w", err)
		}
		student.State = model.StudentStateProcessing
	}

	s.logger.Info("Student registered",
		zap.Int64("telegram_id", telegramID),
		zap.String("username", username),
	)
	return student, nil
}

// Get возвращает студента или nil, если он ещё не писал боту
func (s *StudentService) Get(ctx context.Context, telegramID int64) (*model.Student, error) {
	return s.students.GetByTelegramID(ctx, telegramID)
}

// State возвращает шаг диалога; для незнакомого пользователя - processing
func (s *StudentService) State(ctx context.Context, telegramID int64) (model.StudentState, error) {
	student, err := s.students.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return "", err
	}
	if student == nil || student.State == "" {
		return model.StudentStateProcessing, nil
	}
	return student.State, nil
}

// SetGroup сохраняет группу, если для неё есть расписание, и переводит диалог в final
func (s *StudentService) SetGroup(ctx context.Context, telegramID int64, group string) error {
	if !model.IsValidGroupNumber(group) {
		return fmt.Errorf("%w: %q", ErrUnknownGroup, group)
	}

	known, err := s.groups.IsKnownGroup(ctx, group)
	if err != nil {
		return fmt.Errorf("check group: %w", err)
	}
	if !known {
		return fmt.Errorf("%w: %q", ErrUnknownGroup, group)
	}

	if err := s.students.UpdateGroup(ctx, telegramID, group); err != nil {
		return err
	}
	return s.students.UpdateState(ctx, telegramID, model.StudentStateFinal)
}

// SetState сохраняет шаг диалога
func (s *StudentService) SetState(ctx context.Context, telegramID int64, state model.StudentState) error {
	return s.students.UpdateState(ctx, telegramID, state)
}
