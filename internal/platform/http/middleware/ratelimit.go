// Package middleware provides the gin middleware shared by every route.
package middleware

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"uventory_backend/internal/platform/http/response"
)

// Limiter decides whether a request for key may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// ClientKey identifies the caller for rate limiting: the first X-Forwarded-For
// entry if it is non-empty, then the peer host, then "". All callers without an
// address share the "" bucket.
func ClientKey(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if r.RemoteAddr == "" {
		return ""
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// RateLimit rejects requests over budget with 429 before any later handler runs.
// A failing limiter store lets the request through and logs the error.
// Requests whose path is in skipPaths are not counted.
func RateLimit(limiter Limiter, skipPaths ...string) gin.HandlerFunc {
	skip := make(map[string]struct{}, len(skipPaths))
	for _, p := range skipPaths {
		skip[p] = struct{}{}
	}

	return func(c *gin.Context) {
		if _, ok := skip[c.Request.URL.Path]; ok {
			c.Next()
			return
		}

		key := ClientKey(c.Request)
		ok, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			slog.Error("rate limiter unavailable", "error", err, "client", key)
			c.Next()
			return
		}
		if !ok {
			slog.Warn("rate limit exceeded", "client", key, "path", c.Request.URL.Path)
			response.Abort(c, http.StatusTooManyRequests, response.MsgTooManyRequests)
			return
		}
		c.Next()
	}
}
