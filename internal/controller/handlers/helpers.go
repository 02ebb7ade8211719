package handlers

import (
	"bytes"
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// sendReply отправляет ответ и логирует если не удалось
func (h *Handlers) sendReply(ctx context.Context, b *bot.Bot, to *models.Message, r Reply) {
	chatID := to.Chat.ID

	var replyMarkup models.ReplyMarkup
	if r.Keyboard != nil {
		replyMarkup = r.Keyboard
	}
	var replyParams *models.ReplyParameters
	if r.Quote {
		replyParams = &models.ReplyParameters{MessageID: to.ID}
	}

	var err error
	switch {
	case r.File != nil && r.File.Kind == AttachmentPhoto:
		_, err = b.SendPhoto(ctx, &bot.SendPhotoParams{
			ChatID:      chatID,
			Photo:       &models.InputFileUpload{Filename: r.File.Filename, Data: bytes.NewReader(r.File.Data)},
			Caption:     r.File.Caption,
			ReplyMarkup: replyMarkup,
		})
	case r.File != nil:
		_, err = b.SendDocument(ctx, &bot.SendDocumentParams{
			ChatID:      chatID,
			Document:    &models.InputFileUpload{Filename: r.File.Filename, Data: bytes.NewReader(r.File.Data)},
			Caption:     r.File.Caption,
			ReplyMarkup: replyMarkup,
		})
	default:
		params := &bot.SendMessageParams{
			ChatID:          chatID,
			Text:            r.Text,
			ReplyMarkup:     replyMarkup,
			ReplyParameters: replyParams,
		}
		if r.HTML {
			params.ParseMode = models.ParseModeHTML
		}
		_, err = b.SendMessage(ctx, params)
	}

	if err != nil {
		h.logger.Error("Failed to send reply",
			zap.Int64("chat_id", chatID),
			zap.Bool("file", r.File != nil),
			zap.Error(err),
		)
	}
}

// sendError отправляет сообщение об ошибке и логирует если не удалось
func (h *Handlers) sendError(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		h.logger.Error("Failed to send error message",
			zap.Int64("chat_id", chatID),
			zap.String("text", text),
			zap.Error(err),
		)
	}
}
