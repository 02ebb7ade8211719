package controller

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/vmk_schedule_bot/internal/controller/handlers"
	"github.com/Freeeeeet/vmk_schedule_bot/internal/controller/messages"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

type Options struct {
	Token     string
	RateLimit time.Duration
	ICSWeeks  int
}

type BotController struct {
	bot      *bot.Bot
	handlers *handlers.Handlers
	logger   *zap.Logger
}

func NewBotController(
	opts Options,
	schedule handlers.ScheduleQueries,
	students handlers.Students,
	logger *zap.Logger,
) (*BotController, error) {
	cmdHandlers := handlers.NewHandlers(schedule, students, opts.ICSWeeks, logger)
	limiter := handlers.NewLimiter(opts.RateLimit)

	botInstance, err := bot.New(opts.Token,
		bot.WithMiddlewares(cmdHandlers.Recover, cmdHandlers.RateLimit(limiter)),
		bot.WithDefaultHandler(cmdHandlers.HandleTextMessage),
	)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}

	return &BotController{
		bot:      botInstance,
		handlers: cmdHandlers,
		logger:   logger,
	}, nil
}

// RegisterHandlers регистрирует обработчики команд и меню команд
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, c.handlers.HandleStart)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypeExact, c.handlers.HandleHelp)

	// Всё остальное (номер группы, кнопки меню) попадает в default handler
	return c.setCommands(ctx)
}

// setCommands устанавливает меню команд на каждом поддерживаемом языке
func (c *BotController) setCommands(ctx context.Context) error {
	for i, msgs := range messages.All() {
		params := &bot.SetMyCommandsParams{
			Commands: []models.BotCommand{
				{Command: "start", Description: msgs.StartCommand},
				{Command: "help", Description: msgs.HelpCommand},
			},
		}
		// Каталог по умолчанию ставится без языка
		if i > 0 {
			params.LanguageCode = msgs.Tag.String()
		}

		if _, err := c.bot.SetMyCommands(ctx, params); err != nil {
			c.logger.Error("Failed to set bot commands", zap.String("lang", msgs.Tag.String()), zap.Error(err))
			return err
		}
	}

	c.logger.Info("✅ Bot commands menu set")
	return nil
}

// Start запускает long polling и блокируется до отмены ctx
func (c *BotController) Start(ctx context.Context) error {
	c.logger.Info("Starting bot...")
	c.bot.Start(ctx)
	return nil
}
