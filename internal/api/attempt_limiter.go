package api

import (
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/patrickmn/go-cache"
)

// loginThrottle counts failed logins per key inside a sliding window. Keys
// that stop failing expire from the cache one window after their last
// failure.
type loginThrottle struct {
	mu       sync.Mutex
	limit    int
	window   time.Duration
	failures *cache.Cache
}

func newLoginThrottle(limit int, window time.Duration) *loginThrottle {
	return &loginThrottle{
		limit:    limit,
		window:   window,
		failures: cache.New(window, 2*window),
	}
}

// blocked reports whether key has reached the limit at now, and how long
// until its oldest counted failure leaves the window.
func (throttle *loginThrottle) blocked(key string, now time.Time) (time.Duration, bool) {
	throttle.mu.Lock()
	defer throttle.mu.Unlock()

	recent := throttle.recentLocked(key, now)
	if len(recent) < throttle.limit {
		return 0, false
	}
	return recent[0].Add(throttle.window).Sub(now), true
}

func (throttle *loginThrottle) recordFailure(key string, now time.Time) {
	throttle.mu.Lock()
	defer throttle.mu.Unlock()

	recent := throttle.recentLocked(key, now)
	throttle.failures.Set(key, append(recent, now), throttle.window)
}

func (throttle *loginThrottle) clear(key string) {
	throttle.failures.Delete(key)
}

func (throttle *loginThrottle) recentLocked(key string, now time.Time) []time.Time {
	value, ok := throttle.failures.Get(key)
	if !ok {
		return nil
	}

	threshold := now.Add(-throttle.window)
	stored := value.([]time.Time)
	recent := make([]time.Time, 0, len(stored))
	for _, at := range stored {
		if at.After(threshold) {
			recent = append(recent, at)
		}
	}
	if len(recent) == 0 {
		throttle.failures.Delete(key)
	}
	return recent
}

// retryAfterSeconds rounds up so clients never retry early.
func retryAfterSeconds(wait time.Duration) int {
	seconds := int((wait + time.Second - 1) / time.Second)
	if seconds < 1 {
		return 1
	}
	return seconds
}

// loginLimiterKey scopes failures to the client address and the identity it
// tried, so one caller cannot lock out every account.
func loginLimiterKey(c *fiber.Ctx, identityNumber string) string {
	address := strings.TrimSpace(c.IP())
	if address == "" {
		address = "unknown"
	}
	return address + "|" + identityNumber
}
