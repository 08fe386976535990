package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/roadassist/backend/internal/config"
	"github.com/roadassist/backend/internal/domain"
)

// Limiter bounds sends per (channel, recipient) within a fixed window.
type Limiter interface {
	// Allow atomically checks the window and records a send. A false return
	// means the ceiling is reached and nothing was recorded.
	Allow(ctx context.Context, channel domain.Channel, recipient string) (bool, error)
	// IsLimited reports the window state without recording anything.
	IsLimited(ctx context.Context, channel domain.Channel, recipient string) (bool, error)
}

// Ceilings maps each channel to its per-window send ceiling.
type Ceilings map[domain.Channel]int

func CeilingsFromConfig(cfg config.RateLimitConfig) Ceilings {
	return Ceilings{
		domain.ChannelEmail: cfg.EmailPerWindow,
		domain.ChannelSMS:   cfg.SMSPerWindow,
		domain.ChannelPush:  cfg.PushPerWindow,
	}
}

type window struct {
	count   int
	resetAt time.Time
}

type memoryLimiter struct {
	mu       sync.Mutex
	windows  map[string]*window
	ceilings Ceilings
	period   time.Duration
	now      func() time.Time
}

// NewMemoryLimiter returns an in-process Limiter. Windows are keyed strictly
// per (channel, recipient); there is no cross-channel or global ceiling.
func NewMemoryLimiter(ceilings Ceilings, period time.Duration) *memoryLimiter {
	return &memoryLimiter{
		windows:  make(map[string]*window),
		ceilings: ceilings,
		period:   period,
		now:      time.Now,
	}
}

func (l *memoryLimiter) Allow(_ context.Context, channel domain.Channel, recipient string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	key := windowKey(channel, recipient)

	w, ok := l.windows[key]
	if !ok || !now.Before(w.resetAt) {
		l.windows[key] = &window{count: 1, resetAt: now.Add(l.period)}
		return true, nil
	}

	if w.count >= l.ceiling(channel) {
		return false, nil
	}

	w.count++

	return true, nil
}

func (l *memoryLimiter) IsLimited(_ context.Context, channel domain.Channel, recipient string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.windows[windowKey(channel, recipient)]
	if !ok || !l.now().Before(w.resetAt) {
		return false, nil
	}

	return w.count >= l.ceiling(channel), nil
}

func (l *memoryLimiter) ceiling(channel domain.Channel) int {
	if c, ok := l.ceilings[channel]; ok && c > 0 {
		return c
	}
	return 1
}

func windowKey(channel domain.Channel, recipient string) string {
	return string(channel) + ":" + recipient
}
