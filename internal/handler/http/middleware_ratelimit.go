// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/pentagon14032008-ux/Life-OS/internal/app"
	"github.com/pentagon14032008-ux/Life-OS/internal/logger"
	"github.com/pentagon14032008-ux/Life-OS/internal/utils"
)

const (
	// limiterIdleTTL is how long an account's bucket lives without requests.
	limiterIdleTTL = 10 * time.Minute
	// limiterSweepEvery bounds how often idle buckets are collected.
	limiterSweepEvery = time.Minute
)

type accountLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// userRateLimiter keeps one token bucket per account. Idle buckets are
// swept on access, so no background goroutine is needed.
type userRateLimiter struct {
	mu        sync.Mutex
	accounts  map[int64]*accountLimiter
	limit     rate.Limit
	burst     int
	lastSweep time.Time
	now       func() time.Time
}

// newUserRateLimiter returns nil when rps is not positive; a nil limiter
// lets every request through.
func newUserRateLimiter(rps float64, burst int) *userRateLimiter {
	if rps <= 0 {
		return nil
	}
	if burst <= 0 {
		burst = int(rps) + 1
	}
	return &userRateLimiter{
		accounts: make(map[int64]*accountLimiter),
		limit:    rate.Limit(rps),
		burst:    burst,
		now:      time.Now,
	}
}

func (l *userRateLimiter) allow(userID int64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) >= limiterSweepEvery {
		for id, a := range l.accounts {
			if now.Sub(a.lastSeen) > limiterIdleTTL {
				delete(l.accounts, id)
			}
		}
		l.lastSweep = now
	}

	a, ok := l.accounts[userID]
	if !ok {
		a = &accountLimiter{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.accounts[userID] = a
	}
	a.lastSeen = now

	return a.limiter.AllowN(now, 1)
}

func (l *userRateLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.accounts)
}

// rateLimit answers 429 once an account exceeds its bucket. It runs after
// auth, so the key is the account and not the remote address.
func (h *Handler) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.limiter == nil {
			next.ServeHTTP(w, r)
			return
		}

		userID, ok := utils.GetUserIDFromContext(r.Context())
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		if !h.limiter.allow(userID) {
			retry := time.Duration(float64(time.Second) / float64(h.limiter.limit))
			if retry < time.Second {
				retry = time.Second
			}
			logger.FromRequest(r).Warn().Int64("user_id", userID).Msg("rate limit exceeded")
			w.Header().Set("Retry-After", strconv.Itoa(int(retry/time.Second)))
			http.Error(w, app.MsgTooManyRequests, http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}
