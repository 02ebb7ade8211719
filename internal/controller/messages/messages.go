// Package messages хранит тексты бота на поддерживаемых языках
package messages

import (
	"golang.org/x/text/language"
)

// Action - кнопка меню расписания
type Action int

const (
	ActionNone Action = iota
	ActionToday
	ActionTomorrow
	ActionWeek
	ActionWeekImage
	ActionCalendar
	ActionBack
)

// MenuOrder - порядок кнопок в меню
var MenuOrder = []Action{ActionToday, ActionTomorrow, ActionWeek, ActionWeekImage, ActionCalendar, ActionBack}

type Messages struct {
	Tag language.Tag

	Welcome      string
	AskGroup     string
	Help         string
	WrongGroup   string
	ChooseOption string
	GroupSaved   string
	BackToMenu   string
	SlowDown     string
	Failure      string
	// NoSchedule форматируется номером группы
	NoSchedule string

	TodayHeader    string
	TomorrowHeader string
	WeekHeader     string
	// Подписи к файлам форматируются номером группы
	WeekImageCaption string
	CalendarCaption  string

	StartCommand string
	HelpCommand  string

	Buttons map[Action]string
}

var russian = &Messages{
	Tag: language.Russian,

	Welcome:      "Добро пожаловать!\nЯ бот, отправляющий расписание ВМК",
	AskGroup:     "Для получения расписания введите номер вашей учебной группы",
	Help:         "/start - начать работу с ботом\n/help - получить подсказки по командам",
	WrongGroup:   "Неверный номер группы!\nПовторите попытку",
	ChooseOption: "Выберите опцию!",
	GroupSaved:   "Выберите опцию",
	BackToMenu:   "Вы вернулись в главное меню",
	SlowDown:     "Вы превысили лимит сообщений. Подождите",
	Failure:      "❌ Произошла ошибка. Попробуйте позже.",
	NoSchedule:   "Расписание группы %s пока не загружено",

	TodayHeader:      "Держите ваше расписание на сегодня\n",
	TomorrowHeader:   "Держите ваше расписание на завтра\n",
	WeekHeader:       "Держите ваше расписание на неделю\n",
	WeekImageCaption: "Расписание группы %s на неделю",
	CalendarCaption:  "Календарь группы %s: импортируйте файл в свой календарь",

	StartCommand: "🚀 Начать работу с ботом",
	HelpCommand:  "❓ Справка по командам",

	Buttons: map[Action]string{
		ActionToday:     "Расписание на сегодня  ▶️",
		ActionTomorrow:  "Расписание на завтра  ⏩",
		ActionWeek:      "Расписание на неделю  ⏭",
		ActionWeekImage: "Неделя картинкой  🖼",
		ActionCalendar:  "Календарь (.ics)  📅",
		ActionBack:      "Вернуться назад  ↩️",
	},
}

var english = &Messages{
	Tag: language.English,

	Welcome:      "Welcome!\nI am a bot that sends the VMK class schedule",
	AskGroup:     "Enter your study group number to get the schedule",
	Help:         "/start - start working with the bot\n/help - show command hints",
	WrongGroup:   "Wrong group number!\nPlease try again",
	ChooseOption: "Choose an option!",
	GroupSaved:   "Choose an option",
	BackToMenu:   "You are back in the main menu",
	SlowDown:     "You have exceeded the message limit. Please wait",
	Failure:      "❌ Something went wrong. Please try again later.",
	NoSchedule:   "The schedule for group %s has not been loaded yet",

	TodayHeader:      "Here is your schedule for today\n",
	TomorrowHeader:   "Here is your schedule for tomorrow\n",
	WeekHeader:       "Here is your schedule for the week\n",
	WeekImageCaption: "Group %s weekly schedule",
	CalendarCaption:  "Group %s calendar: import the file into your calendar app",

	StartCommand: "🚀 Start the bot",
	HelpCommand:  "❓ Command help",

	Buttons: map[Action]string{
		ActionToday:     "Today  ▶️",
		ActionTomorrow:  "Tomorrow  ⏩",
		ActionWeek:      "This week  ⏭",
		ActionWeekImage: "Week as image  🖼",
		ActionCalendar:  "Calendar (.ics)  📅",
		ActionBack:      "Go back  ↩️",
	},
}

// Первый язык используется по умолчанию
var catalogs = []*Messages{russian, english}

var matcher = language.NewMatcher([]language.Tag{language.Russian, language.English})

// For подбирает тексты по языковому коду Telegram (например "en", "ru-RU")
func For(languageCode string) *Messages {
	if languageCode == "" {
		return catalogs[0]
	}
	tag, err := language.Parse(languageCode)
	if err != nil {
		return catalogs[0]
	}
	_, index, confidence := matcher.Match(tag)
	if confidence == language.No || index < 0 || index >= len(catalogs) {
		return catalogs[0]
	}
	return catalogs[index]
}

// Default - тексты на языке по умолчанию
func Default() *Messages {
	return catalogs[0]
}

// All возвращает все каталоги, по умолчанию первым
func All() []*Messages {
	return append([]*Messages(nil), catalogs...)
}

// ActionOf распознаёт кнопку меню на любом из языков
func ActionOf(text string) Action {
	for _, m := range catalogs {
		for action, label := range m.Buttons {
			if label == text {
				return action
			}
		}
	}
	return ActionNone
}

// Menu - подписи кнопок меню в порядке MenuOrder
func (m *Messages) Menu() []string {
	labels := make([]string, 0, len(MenuOrder))
	for _, a := range MenuOrder {
		labels = append(labels, m.Buttons[a])
	}
	return labels
}
