package handlers

import (
	"context"
	"sync"
	"time"

	"github.com/Freeeeeet/vmk_schedule_bot/internal/controller/messages"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// maxLimitedReplies - сколько раз подряд предупреждаем о превышении лимита
const maxLimitedReplies = 2

type visit struct {
	last       time.Time
	violations int
}

// Limiter ограничивает частоту сообщений одного пользователя
type Limiter struct {
	interval time.Duration
	mu       sync.Mutex
	visits   map[int64]*visit
}

func NewLimiter(interval time.Duration) *Limiter {
	return &Limiter{
		interval: interval,
		visits:   make(map[int64]*visit),
	}
}

// Allow решает, пропускать ли сообщение, и нужно ли предупредить пользователя
func (l *Limiter) Allow(userID int64, now time.Time) (allowed, warn bool) {
	if l.interval <= 0 {
		return true, false
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	v, ok := l.visits[userID]
	if !ok {
		l.visits[userID] = &visit{last: now}
		return true, false
	}

	if now.Sub(v.last) < l.interval {
		v.violations++
		return false, v.violations <= maxLimitedReplies
	}

	v.last = now
	v.violations = 0
	return true, false
}

// RateLimit - middleware для go-telegram/bot поверх Limiter
func (h *Handlers) RateLimit(limiter *Limiter) bot.Middleware {
	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			msg := update.Message
			if msg == nil || msg.From == nil {
				next(ctx, b, update)
				return
			}

			allowed, warn := limiter.Allow(msg.From.ID, h.now())
			if allowed {
				next(ctx, b, update)
				return
			}

			h.logger.Warn("rate limit",
				zap.Int64("chat_id", msg.Chat.ID),
				zap.Int64("user_id", msg.From.ID),
			)
			if warn {
				h.sendReply(ctx, b, msg, Reply{Text: messages.For(msg.From.LanguageCode).SlowDown, Quote: true})
			}
		}
	}
}

// Recover не даёт панике в handler уронить обработку обновлений
func (h *Handlers) Recover(next bot.HandlerFunc) bot.HandlerFunc {
	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		defer func() {
			if r := recover(); r != nil {
				h.logger.Error("panic in handler", zap.Any("panic", r), zap.Int64("update_id", update.ID))
			}
		}()
		next(ctx, b, update)
	}
}
