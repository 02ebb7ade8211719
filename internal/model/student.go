package model

import (
	"time"

	"github.com/google/uuid"
)

// StudentState - шаг диалога со студентом
type StudentState string

const (
	// StudentStateProcessing - ждём номер группы
	StudentStateProcessing StudentState = "processing"
	// StudentStateFinal - группа выбрана, показываем меню расписания
	StudentStateFinal StudentState = "final"
)

type Student struct {
	TelegramID   int64        `json:"telegram_id"`
	Username     string       `json:"username"`
	LanguageCode string       `json:"language_code"`
	GroupNumber  string       `json:"group_number"`
	State        StudentState `json:"state"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// Document - запись об уже импортированном файле расписания
type Document struct {
	Hash       string    `json:"hash"`
	Filename   string    `json:"filename"`
	RunID      uuid.UUID `json:"run_id"`
	Groups     int       `json:"groups"`
	IngestedAt time.Time `json:"ingested_at"`
}
