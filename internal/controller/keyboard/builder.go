package keyboard

import "github.com/go-telegram/bot/models"

// Builder упрощает создание reply клавиатур
type Builder struct {
	rows [][]models.KeyboardButton
}

func NewBuilder() *Builder {
	return &Builder{
		rows: make([][]models.KeyboardButton, 0),
	}
}

// Row добавляет ряд кнопок, пустые подписи пропускаются
func (b *Builder) Row(texts ...string) *Builder {
	row := make([]models.KeyboardButton, 0, len(texts))
	for _, t := range texts {
		if t != "" {
			row = append(row, models.KeyboardButton{Text: t})
		}
	}
	if len(row) > 0 {
		b.rows = append(b.rows, row)
	}
	return b
}

// Column добавляет каждую кнопку отдельным рядом
func (b *Builder) Column(texts ...string) *Builder {
	for _, t := range texts {
		b.Row(t)
	}
	return b
}

// Build создаёт финальную клавиатуру
func (b *Builder) Build() *models.ReplyKeyboardMarkup {
	return &models.ReplyKeyboardMarkup{
		Keyboard:       b.rows,
		ResizeKeyboard: true,
	}
}
