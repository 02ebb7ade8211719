package state

import (
	"context"
	"sync"

	"github.com/Freeeeeet/vmk_schedule_bot/internal/model"
)

// Loader достаёт сохранённого студента; nil - пользователь ещё не писал боту
type Loader func(ctx context.Context, telegramID int64) (*model.Student, error)

// Manager хранит шаги диалога в памяти, подгружая их из базы при первом обращении
type Manager struct {
	mu     sync.RWMutex
	states map[int64]UserData // telegramID -> UserData
	load   Loader
}

func NewManager(load Loader) *Manager {
	return &Manager{
		states: make(map[int64]UserData),
		load:   load,
	}
}

// Get возвращает данные пользователя, при промахе читает их через Loader
func (sm *Manager) Get(ctx context.Context, telegramID int64) (UserData, error) {
	sm.mu.RLock()
	data, exists := sm.states[telegramID]
	sm.mu.RUnlock()
	if exists {
		return data, nil
	}

	data = UserData{State: model.StudentStateProcessing}
	if sm.load != nil {
		student, err := sm.load(ctx, telegramID)
		if err != nil {
			return UserData{}, err
		}
		if student != nil {
			data.Group = student.GroupNumber
			if student.State != "" {
				data.State = student.State
			}
		}
	}

	sm.mu.Lock()
	defer sm.mu.Unlock()
	// Пока читали из базы, состояние могли выставить
	if current, ok := sm.states[telegramID]; ok {
		return current, nil
	}
	sm.states[telegramID] = data
	return data, nil
}

// SetState устанавливает шаг диалога
func (sm *Manager) SetState(telegramID int64, state model.StudentState) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	data := sm.states[telegramID]
	data.State = state
	sm.states[telegramID] = data
}

// SetGroup запоминает группу и переводит диалог в final
func (sm *Manager) SetGroup(telegramID int64, group string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.states[telegramID] = UserData{State: model.StudentStateFinal, Group: group}
}

// ClearState забывает пользователя; следующий Get снова прочитает базу
func (sm *Manager) ClearState(telegramID int64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	delete(sm.states, telegramID)
}

func (sm *Manager) Len() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.states)
}
