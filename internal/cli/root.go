package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/Freeeeeet/vmk_schedule_bot/internal/app"
	"github.com/Freeeeeet/vmk_schedule_bot/internal/cache"
	"github.com/Freeeeeet/vmk_schedule_bot/internal/config"
	"github.com/Freeeeeet/vmk_schedule_bot/internal/repository"
	"github.com/Freeeeeet/vmk_schedule_bot/internal/service"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:   "schedulectl",
	Short: "Maintenance tool for the VMK schedule bot",
	Long: `schedulectl imports schedule PDFs into the bot database, inspects
stored groups and renders schedules straight from a PDF without a database.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(errorStyle.Render(err.Error()))
		os.Exit(1)
	}
}

// scheduleStore - репозиторий расписания или кэш бота поверх него
type scheduleStore interface {
	service.ScheduleStore
	DeleteGroup(ctx context.Context, group string) (int64, error)
}

var (
	_ scheduleStore = (*repository.ScheduleRepository)(nil)
	_ scheduleStore = (*cache.ScheduleCache)(nil)
)

// stores - открытое подключение к базе с репозиториями
type stores struct {
	pool      *pgxpool.Pool
	redis     *redis.Client
	schedules scheduleStore
	documents *repository.DocumentRepository
	logger    *zap.Logger
}

func (s *stores) Close() {
	if s.redis != nil {
		_ = s.redis.Close()
	}
	s.pool.Close()
	_ = s.logger.Sync()
}

// openStores подключается к базе из DB_DSN и применяет миграции
func openStores(ctx context.Context) (*stores, *config.ToolConfig, error) {
	cfg, err := config.LoadTool()
	if err != nil {
		return nil, nil, err
	}
	if cfg.DBDSN == "" {
		return nil, nil, errors.New("DB_DSN is not set")
	}

	logger, err := app.NewLogger(cfg.Environment, "schedulectl")
	if err != nil {
		return nil, nil, err
	}

	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to database: %w", err)
	}

	migrator, err := app.NewMigrator(pool, logger)
	if err != nil {
		pool.Close()
		return nil, nil, err
	}
	defer migrator.Close()
	if err := migrator.Run(ctx); err != nil {
		pool.Close()
		return nil, nil, err
	}

	s := &stores{
		pool:      pool,
		schedules: repository.NewScheduleRepository(pool),
		documents: repository.NewDocumentRepository(pool),
		logger:    logger,
	}

	// Изменения идут через кэш бота, иначе он сбросится только по TTL
	if cfg.RedisEnabled() {
		client, err := cache.NewClient(ctx, cache.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			pool.Close()
			return nil, nil, err
		}
		s.redis = client
		s.schedules = cache.NewScheduleCache(repository.NewScheduleRepository(pool), client, cfg.RedisTTL, logger)
	}

	return s, cfg, nil
}
