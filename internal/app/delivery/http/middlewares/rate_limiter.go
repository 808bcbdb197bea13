package middlewares

import (
	"clinic-admin-service/internal/pkg/constvars"
	"clinic-admin-service/internal/pkg/exceptions"
	"clinic-admin-service/internal/pkg/utils"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// RateLimiter is a per-IP token bucket that blocks an address for blockTime
// once its bucket runs dry.
type RateLimiter struct {
	Log       *zap.Logger
	limiters  map[string]*visitor
	blocked   map[string]time.Time
	mu        sync.Mutex
	requests  int
	per       time.Duration
	blockTime time.Duration
	now       func() time.Time
	lastSweep time.Time
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewRateLimiter(logger *zap.Logger, requests int, per, blockTime time.Duration) *RateLimiter {
	return &RateLimiter{
		Log:       logger,
		limiters:  make(map[string]*visitor),
		blocked:   make(map[string]time.Time),
		requests:  requests,
		per:       per,
		blockTime: blockTime,
		now:       time.Now,
	}
}

// NewLoginRateLimiter allows LoginRateLimitPerMinute attempts per minute.
func (m *Middlewares) NewLoginRateLimiter() *RateLimiter {
	perMinute := m.InternalConfig.App.LoginRateLimitPerMinute
	if perMinute <= 0 {
		perMinute = 1
	}
	return NewRateLimiter(m.Log, perMinute, time.Minute/time.Duration(perMinute), m.InternalConfig.App.LoginRateLimitBlockTime)
}

func (rl *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		ip, _, err := net.SplitHostPort(req.RemoteAddr)
		if err != nil {
			ip = req.RemoteAddr
		}

		if retryAfter, allowed := rl.allow(ip); !allowed {
			rl.Log.Info("RateLimiter.Limit blocked request",
				zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(req.Context())),
				zap.String(constvars.LoggingRemoteAddrKey, ip),
			)
			w.Header().Set(constvars.HeaderRetryAfter, strconv.Itoa(int(retryAfter.Seconds())+1))
			utils.BuildErrorResponse(rl.Log, w, exceptions.ErrTooManyRequests(nil))
			return
		}

		next.ServeHTTP(w, req)
	})
}

func (rl *RateLimiter) allow(ip string) (time.Duration, bool) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	rl.sweep(now)

	if blockedUntil, found := rl.blocked[ip]; found {
		if now.Before(blockedUntil) {
			return blockedUntil.Sub(now), false
		}
		delete(rl.blocked, ip)
	}

	v, exists := rl.limiters[ip]
	if !exists {
		v = &visitor{limiter: rate.NewLimiter(rate.Every(rl.per), rl.requests)}
		rl.limiters[ip] = v
	}
	v.lastSeen = now

	if !v.limiter.AllowN(now, 1) {
		rl.blocked[ip] = now.Add(rl.blockTime)
		return rl.blockTime, false
	}
	return 0, true
}

// idleAfter is how long a bucket takes to refill completely. A limiter idle
// for that long is indistinguishable from a new one.
func (rl *RateLimiter) idleAfter() time.Duration {
	return rl.per * time.Duration(rl.requests)
}

// sweep drops idle limiters and expired blocks at most once per idle period.
// Callers hold rl.mu.
func (rl *RateLimiter) sweep(now time.Time) {
	idle := rl.idleAfter()
	if rl.lastSweep.IsZero() {
		rl.lastSweep = now
		return
	}
	if now.Sub(rl.lastSweep) < idle {
		return
	}
	rl.lastSweep = now

	for ip, v := range rl.limiters {
		if now.Sub(v.lastSeen) >= idle {
			delete(rl.limiters, ip)
		}
	}
	for ip, until := range rl.blocked {
		if !now.Before(until) {
			delete(rl.blocked, ip)
		}
	}
}
