package formatting

// LessonStatus - положение пары относительно текущего времени
type LessonStatus int

const (
	LessonStatusUnknown LessonStatus = iota
	LessonStatusUpcoming
	LessonStatusInProgress
	LessonStatusCompleted
)

// LessonStatusDisplay представляет отображение статуса пары
type LessonStatusDisplay struct {
	Emoji string
	Text  string
}

// GetLessonStatusDisplay возвращает emoji и текст для статуса пары
func GetLessonStatusDisplay(status LessonStatus) LessonStatusDisplay {
	displays := map[LessonStatus]LessonStatusDisplay{
		LessonStatusUpcoming:   {"🟢", "Впереди"},
		LessonStatusInProgress: {"🟡", "Идёт"},
		LessonStatusCompleted:  {"🔴", "Закончилась"},
	}

	if display, ok := displays[status]; ok {
		return display
	}

	return LessonStatusDisplay{"", "Неизвестно"}
}
