package service

import (
	"context"
	"errors"
	"sort"

	"github.com/Freeeeeet/vmk_schedule_bot/internal/model"
	"github.com/Freeeeeet/vmk_schedule_bot/internal/repository"
)

var errStoreDown = errors.New("store down")

type weekKey struct {
	group string
	odd   bool
}

type memorySchedules struct {
	weeks      map[weekKey][7][]string
	writes     int
	failWrites int // сколько следующих записей завершить ошибкой
}

func newMemorySchedules() *memorySchedules {
	return &memorySchedules{weeks: make(map[weekKey][7][]string)}
}

func (m *memorySchedules) WriteWeek(_ context.Context, group string, odd bool, days [7][]string) error {
	if m.failWrites > 0 {
		m.failWrites--
		return errStoreDown
	}
	m.writes++
	m.weeks[weekKey{group, odd}] = days
	return nil
}

func (m *memorySchedules) ReadDay(_ context.Context, group string, odd bool, weekday model.Weekday) ([]string, error) {
	days, ok := m.weeks[weekKey{group, odd}]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return days[weekday], nil
}

func (m *memorySchedules) Groups(context.Context) ([]string, error) {
	seen := map[string]bool{}
	var groups []string
	for k := range m.weeks {
		if !seen[k.group] {
			seen[k.group] = true
			groups = append(groups, k.group)
		}
	}
	sort.Strings(groups)
	return groups, nil
}

type memoryDocuments struct {
	docs map[string]model.Document
}

func newMemoryDocuments() *memoryDocuments {
	return &memoryDocuments{docs: make(map[string]model.Document)}
}

func (m *memoryDocuments) Exists(_ context.Context, hash string) (bool, error) {
	_, ok := m.docs[hash]
	return ok, nil
}

func (m *memoryDocuments) Add(_ context.Context, doc *model.Document) (bool, error) {
	if _, ok := m.docs[doc.Hash]; ok {
		return false, nil
	}
	m.docs[doc.Hash] = *doc
	return true, nil
}

type memoryStudents struct {
	students map[int64]*model.Student
}

func newMemoryStudents() *memoryStudents {
	return &memoryStudents{students: make(map[int64]*model.Student)}
}

func (m *memoryStudents) Upsert(_ context.Context, student *model.Student) error {
	if existing, ok := m.students[student.TelegramID]; ok {
		existing.Username = student.Username
		existing.LanguageCode = student.LanguageCode
		student.GroupNumber = existing.GroupNumber
		student.State = existing.State
		return nil
	}
	copied := *student
	m.students[student.TelegramID] = &copied
	return nil
}

func (m *memoryStudents) GetByTelegramID(_ context.Context, telegramID int64) (*model.Student, error) {
	s, ok := m.students[telegramID]
	if !ok {
		return nil, nil
	}
	copied := *s
	return &copied, nil
}

func (m *memoryStudents) row(telegramID int64) *model.Student {
	s, ok := m.students[telegramID]
	if !ok {
		s = &model.Student{TelegramID: telegramID, State: model.StudentStateProcessing}
		m.students[telegramID] = s
	}
	return s
}

func (m *memoryStudents) UpdateGroup(_ context.Context, telegramID int64, group string) error {
	m.row(telegramID).GroupNumber = group
	return nil
}

func (m *memoryStudents) UpdateState(_ context.Context, telegramID int64, state model.StudentState) error {
	m.row(telegramID).State = state
	return nil
}
