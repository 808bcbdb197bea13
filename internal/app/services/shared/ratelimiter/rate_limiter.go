package ratelimiter

import (
	"clinic-admin-service/internal/app/contracts"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

const defaultWindowDurationSec = 60

// FixedWindowLimiter counts hits per key in Redis. Each window is its own key
// with a TTL slightly longer than the window, so stale windows expire on their own.
type FixedWindowLimiter struct {
	redis contracts.RedisRepository
	log   *zap.Logger
	now   func() time.Time
}

func NewFixedWindowLimiter(redis contracts.RedisRepository, log *zap.Logger) *FixedWindowLimiter {
	return &FixedWindowLimiter{
		redis: redis,
		log:   log,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

type HitInput struct {
	// Group namespaces the counter, e.g. LOGIN-FAILURE.
	Group string
	// Subject is the thing being limited, e.g. an email address.
	Subject           string
	WindowDurationSec int
	MaxQuota          int
}

type HitOutput struct {
	Allowed        bool
	Count          int64
	RetryAfterSecs int
}

func (l *FixedWindowLimiter) windowKey(group, subject string, windowSec int, now time.Time) (string, int64) {
	windowID := now.Unix() / int64(windowSec)
	return fmt.Sprintf("ratelimit:%s:%s:%d", group, subject, windowID), windowID
}

func normalize(in *HitInput) (group, subject string, windowSec int) {
	group = strings.ToUpper(strings.TrimSpace(in.Group))
	subject = strings.ToLower(strings.TrimSpace(in.Subject))
	windowSec = in.WindowDurationSec
	if windowSec <= 0 {
		windowSec = defaultWindowDurationSec
	}
	return group, subject, windowSec
}

// Hit records one event and reports whether the subject is still within quota.
func (l *FixedWindowLimiter) Hit(ctx context.Context, in *HitInput) (*HitOutput, error) {
	if in == nil {
		return nil, errors.New("nil limiter input")
	}
	if in.MaxQuota <= 0 {
		return &HitOutput{Allowed: true}, nil
	}

	group, subject, windowSec := normalize(in)
	if group == "" || subject == "" {
		return &HitOutput{Allowed: false, RetryAfterSecs: windowSec}, nil
	}

	now := l.now()
	key, windowID := l.windowKey(group, subject, windowSec, now)
	count, err := l.redis.IncrementWithTTL(ctx, key, time.Duration(windowSec)*time.Second+time.Second)
	if err != nil {
		l.log.Error("FixedWindowLimiter.Hit increment failed",
			zap.String("key", key),
			zap.Error(err),
		)
		return nil, err
	}

	output := &HitOutput{Allowed: count <= int64(in.MaxQuota), Count: count}
	if !output.Allowed {
		output.RetryAfterSecs = int((windowID+1)*int64(windowSec)-now.Unix()) + 1
	}
	return output, nil
}

// Exceeded reports whether the subject has used up its quota without recording a hit.
func (l *FixedWindowLimiter) Exceeded(ctx context.Context, in *HitInput) (bool, int, error) {
	if in == nil || in.MaxQuota <= 0 {
		return false, 0, nil
	}

	group, subject, windowSec := normalize(in)
	now := l.now()
	key, windowID := l.windowKey(group, subject, windowSec, now)
	raw, err := l.redis.Get(ctx, key)
	if err != nil {
		return false, 0, err
	}
	if raw == "" {
		return false, 0, nil
	}

	var count int64
	if _, err := fmt.Sscan(raw, &count); err != nil {
		return false, 0, err
	}
	if count < int64(in.MaxQuota) {
		return false, 0, nil
	}
	return true, int((windowID+1)*int64(windowSec)-now.Unix()) + 1, nil
}

// Reset clears the current window for the subject.
func (l *FixedWindowLimiter) Reset(ctx context.Context, in *HitInput) error {
	if in == nil {
		return nil
	}
	group, subject, windowSec := normalize(in)
	key, _ := l.windowKey(group, subject, windowSec, l.now())
	return l.redis.Delete(ctx, key)
}
