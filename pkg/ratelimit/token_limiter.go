package ratelimit

import (
	"context"
	"sync"
	"time"
)

// TokenLimiter enforces a tokens-per-minute budget over a sliding window.
// It is used to stay under LLM provider token quotas; callers report the
// token cost of a request before sending it.
type TokenLimiter struct {
	mu     sync.Mutex
	limit  int
	window time.Duration
	spent  []tokenSpend
}

type tokenSpend struct {
	at     time.Time
	tokens int
}

// NewTokenLimiter creates a limiter allowing maxPerMinute tokens per minute.
func NewTokenLimiter(maxPerMinute int) *TokenLimiter {
	return &TokenLimiter{
		limit:  maxPerMinute,
		window: time.Minute,
	}
}

// Wait blocks until tokens can be spent without exceeding the per-minute
// budget, or until the context is done. A request larger than the whole
// budget is admitted on an empty window rather than blocking forever.
func (l *TokenLimiter) Wait(ctx context.Context, tokens int) error {
	for {
		l.mu.Lock()
		l.prune(time.Now())
		used := l.used()
		if used == 0 || used+tokens <= l.limit {
			l.spent = append(l.spent, tokenSpend{at: time.Now(), tokens: tokens})
			l.mu.Unlock()
			return nil
		}
		wait := l.window - time.Since(l.spent[0].at)
		l.mu.Unlock()

		if wait <= 0 {
			wait = 10 * time.Millisecond
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}

// GetRemaining returns the number of tokens still available in the
// current window.
func (l *TokenLimiter) GetRemaining() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.prune(time.Now())
	remaining := l.limit - l.used()
	if remaining < 0 {
		return 0
	}
	return remaining
}

func (l *TokenLimiter) used() int {
	total := 0
	for _, s := range l.spent {
		total += s.tokens
	}
	return total
}

func (l *TokenLimiter) prune(now time.Time) {
	cutoff := now.Add(-l.window)
	i := 0
	for i < len(l.spent) && l.spent[i].at.Before(cutoff) {
		i++
	}
	l.spent = l.spent[i:]
}
