package ratelimit

import (
	"net/http"
	"strconv"
	"time"
)

// Handler enforces a sliding window limit before delegating to the wrapped
// handler. KeyFunc derives the limit key from the request; a nil KeyFunc or
// an empty key skips enforcement. Limiter failures fail open.
type Handler struct {
	Limiter SlidingWindow
	KeyFunc func(*http.Request) string
	OnError func(error)
}

// Middleware wraps next with rate limiting.
func (h Handler) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.KeyFunc == nil {
			next.ServeHTTP(w, r)
			return
		}
		key := h.KeyFunc(r)
		if key == "" {
			next.ServeHTTP(w, r)
			return
		}

		decision, err := h.Limiter.Allow(r.Context(), key)
		if err != nil {
			if h.OnError != nil {
				h.OnError(err)
			}
			next.ServeHTTP(w, r)
			return
		}

		headers := w.Header()
		headers.Set("X-RateLimit-Limit", strconv.Itoa(decision.Limit))
		headers.Set("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
		headers.Set("X-RateLimit-Reset", strconv.FormatInt(decision.ResetAt.Unix(), 10))

		if !decision.Allowed {
			retryAfter := int(time.Until(decision.ResetAt).Seconds())
			if retryAfter < 0 {
				retryAfter = 0
			}
			headers.Set("Retry-After", strconv.Itoa(retryAfter))
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}
