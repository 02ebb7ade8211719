package handlers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Freeeeeet/vmk_schedule_bot/internal/controller/keyboard"
	"github.com/Freeeeeet/vmk_schedule_bot/internal/controller/messages"
	"github.com/Freeeeeet/vmk_schedule_bot/internal/exporter"
	"github.com/Freeeeeet/vmk_schedule_bot/internal/model"
	"github.com/Freeeeeet/vmk_schedule_bot/internal/service"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Incoming - текстовое сообщение пользователя
type Incoming struct {
	UserID       int64
	Username     string
	LanguageCode string
	Text         string
}

type AttachmentKind int

const (
	AttachmentPhoto AttachmentKind = iota
	AttachmentDocument
)

type Attachment struct {
	Kind     AttachmentKind
	Filename string
	Data     []byte
	Caption  string
}

// Reply - одно исходящее сообщение
type Reply struct {
	Text     string
	HTML     bool
	Quote    bool // ответить на сообщение пользователя
	Keyboard *models.ReplyKeyboardMarkup
	File     *Attachment
}

func startKeyboard() *models.ReplyKeyboardMarkup {
	return keyboard.NewBuilder().Row("/help").Build()
}

func menuKeyboard(msgs *messages.Messages) *models.ReplyKeyboardMarkup {
	return keyboard.NewBuilder().Column(msgs.Menu()...).Build()
}

// Respond проводит сообщение через диалог и возвращает ответы
func (h *Handlers) Respond(ctx context.Context, in Incoming) ([]Reply, error) {
	msgs := messages.For(in.LanguageCode)
	text := strings.TrimSpace(in.Text)

	switch text {
	case "/start":
		return h.start(ctx, in, msgs)
	case "/help":
		return []Reply{{Text: msgs.Help}}, nil
	}

	data, err := h.stateManager.Get(ctx, in.UserID)
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}

	if data.State == model.StudentStateFinal && data.Group != "" {
		return h.option(ctx, msgs, in.UserID, data.Group, text)
	}
	return h.group(ctx, in, msgs, text)
}

func (h *Handlers) start(ctx context.Context, in Incoming, msgs *messages.Messages) ([]Reply, error) {
	if _, err := h.students.Register(ctx, in.UserID, in.Username, in.LanguageCode); err != nil {
		return nil, err
	}
	// Группа сохраняется, но диалог начинается заново
	h.stateManager.SetState(in.UserID, model.StudentStateProcessing)

	return []Reply{
		{Text: msgs.Welcome, Keyboard: startKeyboard()},
		{Text: msgs.AskGroup, Keyboard: startKeyboard()},
	}, nil
}

// group обрабатывает ввод номера группы
func (h *Handlers) group(ctx context.Context, in Incoming, msgs *messages.Messages, text string) ([]Reply, error) {
	err := h.students.SetGroup(ctx, in.UserID, text)
	if errors.Is(err, service.ErrUnknownGroup) {
		return []Reply{{Text: msgs.WrongGroup, Quote: true, Keyboard: startKeyboard()}}, nil
	}
	if err != nil {
		return nil, err
	}

	h.stateManager.SetGroup(in.UserID, text)
	h.logger.Info("Student chose group", zap.Int64("telegram_id", in.UserID), zap.String("group", text))

	return []Reply{{Text: msgs.GroupSaved, Keyboard: menuKeyboard(msgs)}}, nil
}

// option обрабатывает кнопки меню расписания
func (h *Handlers) option(ctx context.Context, msgs *messages.Messages, userID int64, group, text string) ([]Reply, error) {
	now := h.now()

	switch messages.ActionOf(text) {
	case messages.ActionToday:
		return h.scheduleText(msgs, group, msgs.TodayHeader)(h.schedule.Today(ctx, group, now))
	case messages.ActionTomorrow:
		return h.scheduleText(msgs, group, msgs.TomorrowHeader)(h.schedule.Tomorrow(ctx, group, now))
	case messages.ActionWeek:
		return h.scheduleText(msgs, group, msgs.WeekHeader)(h.schedule.Week(ctx, group, now))
	case messages.ActionWeekImage:
		return h.weekImage(ctx, msgs, group, now)
	case messages.ActionCalendar:
		return h.calendar(ctx, msgs, group, now)
	case messages.ActionBack:
		if err := h.students.SetState(ctx, userID, model.StudentStateProcessing); err != nil {
			return nil, err
		}
		h.stateManager.SetState(userID, model.StudentStateProcessing)
		return []Reply{
			{Text: msgs.BackToMenu, Keyboard: startKeyboard()},
			{Text: msgs.AskGroup, Keyboard: startKeyboard()},
		}, nil
	default:
		return []Reply{{Text: msgs.ChooseOption, Keyboard: menuKeyboard(msgs)}}, nil
	}
}

// scheduleText оборачивает результат запроса расписания в ответ
func (h *Handlers) scheduleText(msgs *messages.Messages, group, header string) func(string, error) ([]Reply, error) {
	return func(text string, err error) ([]Reply, error) {
		if errors.Is(err, service.ErrNoSchedule) {
			return h.noSchedule(msgs, group), nil
		}
		if err != nil {
			return nil, err
		}
		return []Reply{{Text: header + text, HTML: true, Keyboard: menuKeyboard(msgs)}}, nil
	}
}

func (h *Handlers) noSchedule(msgs *messages.Messages, group string) []Reply {
	return []Reply{{Text: fmt.Sprintf(msgs.NoSchedule, group), Keyboard: menuKeyboard(msgs)}}
}

func (h *Handlers) weekImage(ctx context.Context, msgs *messages.Messages, group string, now time.Time) ([]Reply, error) {
	cal := h.schedule.Calendar()
	odd := cal.IsOdd(now)

	week, err := h.schedule.WeekLessons(ctx, group, odd)
	if errors.Is(err, service.ErrNoSchedule) {
		return h.noSchedule(msgs, group), nil
	}
	if err != nil {
		return nil, err
	}

	data, err := exporter.RenderWeekImage(exporter.WeekImage{
		Group:     group,
		Odd:       odd,
		WeekStart: cal.WeekStart(now),
		Week:      week,
		Now:       cal.In(now),
	})
	if err != nil {
		return nil, err
	}

	return []Reply{{
		Keyboard: menuKeyboard(msgs),
		File: &Attachment{
			Kind:     AttachmentPhoto,
			Filename: fileName(group, "png"),
			Data:     data,
			Caption:  fmt.Sprintf(msgs.WeekImageCaption, group),
		},
	}}, nil
}

func (h *Handlers) calendar(ctx context.Context, msgs *messages.Messages, group string, now time.Time) ([]Reply, error) {
	odd, err := h.schedule.WeekLessons(ctx, group, true)
	if errors.Is(err, service.ErrNoSchedule) {
		return h.noSchedule(msgs, group), nil
	}
	if err != nil {
		return nil, err
	}
	even, err := h.schedule.WeekLessons(ctx, group, false)
	if err != nil {
		return nil, err
	}

	cal := h.schedule.Calendar()
	var buf bytes.Buffer
	err = exporter.GenerateICS(&buf, exporter.CalendarRequest{
		Group: group,
		From:  cal.In(now),
		Weeks: h.icsWeeks,
		Odd:   odd,
		Even:  even,
		IsOdd: cal.IsOdd,
	})
	if err != nil {
		return nil, err
	}

	return []Reply{{
		Keyboard: menuKeyboard(msgs),
		File: &Attachment{
			Kind:     AttachmentDocument,
			Filename: fileName(group, "ics"),
			Data:     buf.Bytes(),
			Caption:  fmt.Sprintf(msgs.CalendarCaption, group),
		},
	}}, nil
}

func fileName(group, ext string) string {
	return "schedule_" + strings.ReplaceAll(group, "/", "-") + "." + ext
}
