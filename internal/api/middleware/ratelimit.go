package middleware

import (
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/WingorOsnova/BarbershopPP/internal/api/handlers"
	"github.com/WingorOsnova/BarbershopPP/internal/ratelimit"
	"github.com/WingorOsnova/BarbershopPP/pkg/metrics"
)

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// RateLimit middleware ограничивает частоту запросов с одного IP.
// Метрики опциональны: при nil счетчик отказов не ведется.
func RateLimit(limiter *ratelimit.Limiter, m *metrics.Metrics, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)
			if !limiter.Allow(ip, time.Now()) {
				logger.Warn("RateLimit: too many requests from %s (%s %s)", ip, r.Method, r.URL.Path)
				if m != nil {
					m.RateLimitedTotal.Inc()
				}
				handlers.RespondTooManyRequests(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP определяет IP клиента с учетом reverse proxy.
// X-Forwarded-For может содержать цепочку, клиентский адрес идет первым.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		if ip := strings.TrimSpace(parts[0]); ip != "" {
			return ip
		}
	}
	if xrip := r.Header.Get("X-Real-IP"); xrip != "" {
		return xrip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
