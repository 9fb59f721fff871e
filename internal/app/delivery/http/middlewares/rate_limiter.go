package middlewares

import (
	"emr-service/internal/pkg/constvars"
	"emr-service/internal/pkg/exceptions"
	"emr-service/internal/pkg/utils"
	"fmt"
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// RateLimiter is a per client IP token bucket. A client that exhausts its
// bucket is blocked for blockTime.
type RateLimiter struct {
	limiters  map[string]*rate.Limiter
	blocked   map[string]time.Time
	mu        sync.Mutex
	requests  int
	per       time.Duration
	blockTime time.Duration
	now       func() time.Time
	Log       *zap.Logger
}

func NewRateLimiter(requests int, per, blockTime time.Duration, logger *zap.Logger) *RateLimiter {
	return &RateLimiter{
		limiters:  make(map[string]*rate.Limiter),
		blocked:   make(map[string]time.Time),
		requests:  requests,
		per:       per,
		blockTime: blockTime,
		now:       time.Now,
		Log:       logger,
	}
}

func (r *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		ip, _, err := net.SplitHostPort(req.RemoteAddr)
		if err != nil {
			ip = req.RemoteAddr
		}

		r.mu.Lock()
		now := r.now()
		if blockedUntil, found := r.blocked[ip]; found {
			if now.Before(blockedUntil) {
				r.mu.Unlock()
				r.reject(w, ip, blockedUntil.Sub(now))
				return
			}
			delete(r.blocked, ip)
		}

		limiter, exists := r.limiters[ip]
		if !exists {
			limiter = rate.NewLimiter(rate.Every(r.per), r.requests)
			r.limiters[ip] = limiter
		}

		if !limiter.AllowN(now, 1) {
			r.blocked[ip] = now.Add(r.blockTime)
			r.mu.Unlock()
			r.reject(w, ip, r.blockTime)
			return
		}
		r.mu.Unlock()

		next.ServeHTTP(w, req)
	})
}

func (r *RateLimiter) reject(w http.ResponseWriter, ip string, retryAfter time.Duration) {
	seconds := int(math.Ceil(retryAfter.Seconds()))
	w.Header().Set(constvars.HeaderRetryAfter, strconv.Itoa(seconds))
	utils.BuildErrorResponse(r.Log, w, exceptions.ErrTooManyRequests(fmt.Errorf("blocked for %ds", seconds), ip))
}
