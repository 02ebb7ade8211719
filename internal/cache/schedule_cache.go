// Package cache - кэш прочитанных дней расписания в Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/Freeeeeet/vmk_schedule_bot/internal/model"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ErrCacheMiss - ключа нет в кэше
var ErrCacheMiss = errors.New("cache: key not found")

const (
	prefixSchedule = "schedule:"
	keyGroups      = prefixSchedule + "groups"
	// Счётчик записей. Значение в кэше верно, только пока счётчик не изменился.
	keyGeneration = prefixSchedule + "generation"
)

// Store - хранилище, которое кэшируется
type Store interface {
	WriteWeek(ctx context.Context, group string, odd bool, days [7][]string) error
	ReadDay(ctx context.Context, group string, odd bool, weekday model.Weekday) ([]string, error)
	Groups(ctx context.Context) ([]string, error)
	DeleteGroup(ctx context.Context, group string) (int64, error)
}

// Options - параметры подключения к Redis
type Options struct {
	Addr     string
	Password string
	DB       int
}

// NewClient подключается к Redis и проверяет соединение
func NewClient(ctx context.Context, opts Options) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// ScheduleCache - read-through кэш поверх Store.
// Каждая запись увеличивает поколение, и все сохранённые значения старого поколения
// перестают читаться. Заполнение, опоздавшее после записи, поэтому не вернёт старые пары.
type ScheduleCache struct {
	store  Store
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewScheduleCache(store Store, client *redis.Client, ttl time.Duration, logger *zap.Logger) *ScheduleCache {
	return &ScheduleCache{
		store:  store,
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// entry - значение в Redis вместе с поколением, при котором его прочитали из хранилища
type entry struct {
	Generation int64           `json:"generation"`
	Value      json.RawMessage `json:"value"`
}

func parityKey(odd bool) string {
	if odd {
		return "odd"
	}
	return "even"
}

// DayKey - ключ списка пар: schedule:{group}:{odd|even}:{weekday}
func DayKey(group string, odd bool, weekday model.Weekday) string {
	return fmt.Sprintf("%s%s:%s:%d", prefixSchedule, group, parityKey(odd), int(weekday))
}

// WriteWeek пишет в хранилище и инвалидирует кэш.
// Ошибка инвалидации возвращается вызывающему.
func (c *ScheduleCache) WriteWeek(ctx context.Context, group string, odd bool, days [7][]string) error {
	if err := c.store.WriteWeek(ctx, group, odd, days); err != nil {
		return err
	}
	return c.invalidate(ctx)
}

// DeleteGroup удаляет группу из хранилища и инвалидирует кэш
func (c *ScheduleCache) DeleteGroup(ctx context.Context, group string) (int64, error) {
	n, err := c.store.DeleteGroup(ctx, group)
	if err != nil {
		return 0, err
	}
	if err := c.invalidate(ctx); err != nil {
		return n, err
	}
	return n, nil
}

// ReadDay читает день из кэша, при промахе - из хранилища
func (c *ScheduleCache) ReadDay(ctx context.Context, group string, odd bool, weekday model.Weekday) ([]string, error) {
	key := DayKey(group, odd, weekday)

	var lessons []string
	generation, err := c.lookup(ctx, key, &lessons)
	if err == nil {
		return lessons, nil
	}
	fill := errors.Is(err, ErrCacheMiss)
	if !fill {
		c.logger.Warn("Schedule cache read failed", zap.String("key", key), zap.Error(err))
	}

	lessons, err = c.store.ReadDay(ctx, group, odd, weekday)
	if err != nil {
		return nil, err
	}

	if fill {
		c.fill(ctx, key, generation, lessons)
	}
	return lessons, nil
}

// Groups кэширует список групп
func (c *ScheduleCache) Groups(ctx context.Context) ([]string, error) {
	var groups []string
	generation, err := c.lookup(ctx, keyGroups, &groups)
	if err == nil {
		return groups, nil
	}
	fill := errors.Is(err, ErrCacheMiss)
	if !fill {
		c.logger.Warn("Schedule cache read failed", zap.String("key", keyGroups), zap.Error(err))
	}

	groups, err = c.store.Groups(ctx)
	if err != nil {
		return nil, err
	}

	if fill {
		c.fill(ctx, keyGroups, generation, groups)
	}
	return groups, nil
}

func (c *ScheduleCache) invalidate(ctx context.Context) error {
	if err := c.client.Incr(ctx, keyGeneration).Err(); err != nil {
		return fmt.Errorf("invalidate schedule cache: %w", err)
	}
	return nil
}

// lookup одной командой читает текущее поколение и значение ключа.
// При ErrCacheMiss возвращённое поколение можно использовать для заполнения.
func (c *ScheduleCache) lookup(ctx context.Context, key string, dest any) (int64, error) {
	values, err := c.client.MGet(ctx, keyGeneration, key).Result()
	if err != nil {
		return 0, fmt.Errorf("mget %s: %w", key, err)
	}

	var generation int64
	if raw, ok := values[0].(string); ok {
		generation, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("parse generation %q: %w", raw, err)
		}
	}

	raw, ok := values[1].(string)
	if !ok {
		return generation, ErrCacheMiss
	}

	var e entry
	if err := json.Unmarshal([]byte(raw), &e); err != nil {
		// битое значение перезапишется при заполнении
		return generation, fmt.Errorf("%w: unmarshal %s: %v", ErrCacheMiss, key, err)
	}
	if e.Generation != generation {
		return generation, ErrCacheMiss
	}
	if err := json.Unmarshal(e.Value, dest); err != nil {
		return generation, fmt.Errorf("%w: unmarshal %s: %v", ErrCacheMiss, key, err)
	}
	return generation, nil
}

func (c *ScheduleCache) fill(ctx context.Context, key string, generation int64, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("Failed to marshal cache value", zap.String("key", key), zap.Error(err))
		return
	}
	data, err := json.Marshal(entry{Generation: generation, Value: raw})
	if err != nil {
		c.logger.Warn("Failed to marshal cache value", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("Failed to write schedule cache", zap.String("key", key), zap.Error(err))
	}
}
