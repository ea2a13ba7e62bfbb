package inkpost

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
)

// RequestLimiter caps requests per client IP over a sliding window. The
// background endpoints use it because every request decodes an image.
type RequestLimiter struct {
	mu     sync.Mutex
	hits   map[string][]time.Time
	max    int
	window time.Duration
	now    func() time.Time

	stop chan struct{}
	once sync.Once
}

// NewRequestLimiter allows max requests per window for each IP. Call Stop to
// end its cleanup goroutine.
func NewRequestLimiter(max int, window time.Duration) *RequestLimiter {
	l := &RequestLimiter{
		hits:   make(map[string][]time.Time),
		max:    max,
		window: window,
		now:    time.Now,
		stop:   make(chan struct{}),
	}
	go l.cleanup()
	return l
}

func (l *RequestLimiter) cleanup() {
	ticker := time.NewTicker(l.window)
	defer ticker.Stop()
	for {
		select {
		case <-l.stop:
			return
		case <-ticker.C:
		}
		cutoff := l.now().Add(-l.window)
		l.mu.Lock()
		for ip, hits := range l.hits {
			if kept := prune(hits, cutoff); len(kept) == 0 {
				delete(l.hits, ip)
			} else {
				l.hits[ip] = kept
			}
		}
		l.mu.Unlock()
	}
}

func prune(hits []time.Time, cutoff time.Time) []time.Time {
	kept := hits[:0]
	for _, t := range hits {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	return kept
}

// Allow records a request from ip and reports whether it is within the limit.
// Rejected requests are not recorded.
func (l *RequestLimiter) Allow(ip string) bool {
	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()

	kept := prune(l.hits[ip], now.Add(-l.window))
	if len(kept) >= l.max {
		l.hits[ip] = kept
		return false
	}
	l.hits[ip] = append(kept, now)
	return true
}

// Stop ends the cleanup goroutine. It is safe to call more than once.
func (l *RequestLimiter) Stop() {
	l.once.Do(func() { close(l.stop) })
}

// Middleware answers 429 once the client's IP is over the limit.
func (l *RequestLimiter) Middleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !l.Allow(c.RealIP()) {
			c.Response().Header().Set("Retry-After", strconv.Itoa(int(l.window.Seconds())))
			return c.JSON(http.StatusTooManyRequests, errorResponse{Error: "too many requests"})
		}
		return next(c)
	}
}
