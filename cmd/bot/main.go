package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Freeeeeet/vmk_schedule_bot/internal/app"
	"github.com/Freeeeeet/vmk_schedule_bot/internal/cache"
	"github.com/Freeeeeet/vmk_schedule_bot/internal/config"
	"github.com/Freeeeeet/vmk_schedule_bot/internal/controller"
	"github.com/Freeeeeet/vmk_schedule_bot/internal/pdfgrid"
	"github.com/Freeeeeet/vmk_schedule_bot/internal/repository"
	"github.com/Freeeeeet/vmk_schedule_bot/internal/service"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.MustLogger(cfg.Environment, "vmk-schedule-bot")
	defer logger.Sync()

	logger.Sugar().Infow("Starting schedule bot",
		"environment", cfg.Environment,
		"tables_dir", cfg.TablesDir,
		"timezone", cfg.Timezone,
		"redis", cfg.RedisEnabled())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("Bot stopped with error", zap.Error(err))
	}
	logger.Info("Bot stopped")
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return err
	}

	migrator, err := app.NewMigrator(pool, logger)
	if err != nil {
		return err
	}
	err = migrator.Run(ctx)
	migrator.Close()
	if err != nil {
		return err
	}

	// Репозитории
	scheduleRepo := repository.NewScheduleRepository(pool)
	var schedules service.ScheduleStore = scheduleRepo
	documents := repository.NewDocumentRepository(pool)
	students := repository.NewStudentRepository(pool)

	if cfg.RedisEnabled() {
		client, err := cache.NewClient(ctx, cache.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			// Бот работает и без кэша
			logger.Warn("Redis unavailable, schedule cache disabled", zap.Error(err))
		} else {
			defer client.Close()
			schedules = cache.NewScheduleCache(scheduleRepo, client, cfg.RedisTTL, logger)
			logger.Info("✅ Schedule cache enabled", zap.String("addr", cfg.RedisAddr))
		}
	}

	// Сервисы
	calendar, err := service.NewCalendar(cfg.Timezone, cfg.ParityInverted)
	if err != nil {
		return err
	}
	scheduleService := service.NewScheduleService(schedules, calendar, logger)
	studentService := service.NewStudentService(students, scheduleService, logger)
	ingestService := service.NewIngestService(schedules, documents, pdfgrid.ReadBytes, logger)

	// Первый импорт синхронно, чтобы бот сразу знал группы
	scheduler := app.NewScheduler(ingestService, cfg.TablesDir, cfg.IngestInterval, logger)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	botController, err := controller.NewBotController(controller.Options{
		Token:     cfg.TelegramToken,
		RateLimit: cfg.RateLimit,
		ICSWeeks:  cfg.ICSWeeks,
	}, scheduleService, studentService, logger)
	if err != nil {
		return err
	}

	if err := botController.RegisterHandlers(ctx); err != nil {
		// Меню команд не критично
		logger.Warn("Bot commands menu not set", zap.Error(err))
	}

	return botController.Start(ctx)
}
