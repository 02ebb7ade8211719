package handlers

import (
	"context"
	"strings"

	"github.com/Freeeeeet/vmk_schedule_bot/internal/controller/messages"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleStart обрабатывает команду /start
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.handle(ctx, b, update)
}

// HandleHelp обрабатывает команду /help
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.handle(ctx, b, update)
}

// HandleTextMessage обрабатывает текстовые сообщения в зависимости от шага диалога
func (h *Handlers) HandleTextMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Text == "" {
		return
	}
	// Команды обрабатываются своими handlers
	if text := update.Message.Text; strings.HasPrefix(text, "/") && text != "/start" && text != "/help" {
		h.sendReply(ctx, b, update.Message, Reply{Text: messages.For(languageOf(update.Message)).Help})
		return
	}
	h.handle(ctx, b, update)
}

func (h *Handlers) handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	msg := update.Message
	if msg == nil || msg.From == nil {
		return
	}

	in := Incoming{
		UserID:       msg.From.ID,
		Username:     msg.From.Username,
		LanguageCode: msg.From.LanguageCode,
		Text:         msg.Text,
	}

	h.logger.Debug("Incoming message",
		zap.Int64("telegram_id", in.UserID),
		zap.String("text", in.Text))

	replies, err := h.Respond(ctx, in)
	if err != nil {
		h.logger.Error("Failed to handle message",
			zap.Int64("telegram_id", in.UserID),
			zap.String("text", in.Text),
			zap.Error(err))
		h.sendError(ctx, b, msg.Chat.ID, messages.For(in.LanguageCode).Failure)
		return
	}

	for _, r := range replies {
		h.sendReply(ctx, b, msg, r)
	}
}

func languageOf(msg *models.Message) string {
	if msg.From == nil {
		return ""
	}
	return msg.From.LanguageCode
}
