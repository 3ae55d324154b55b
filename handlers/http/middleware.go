package httpHandler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"habit-tracker/metrics"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const userIDKey = "user_id"

// TokenAuthenticator resolves a bearer token to a user id.
type TokenAuthenticator interface {
	Authenticate(token string) (string, error)
}

// RequireAuth rejects requests without a valid bearer token before any handler runs.
func RequireAuth(authenticator TokenAuthenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}
		userID, err := authenticator.Authenticate(token)
		if err != nil {
			respondError(c, err)
			return
		}
		c.Set(userIDKey, userID)
		c.Next()
	}
}

func extractBearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// currentUser returns the id set by RequireAuth.
func currentUser(c *gin.Context) string {
	return c.GetString(userIDKey)
}

// RequestLogger logs one line per request and records request metrics.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		elapsed := time.Since(start)

		metrics.HTTPRequestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(status)).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(c.Request.Method, route).Observe(elapsed.Seconds())

		evt := log.Info()
		if status >= http.StatusInternalServerError {
			evt = log.Error()
		}
		evt.Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", elapsed).
			Str("user_id", c.GetString(userIDKey)).
			Msg("request")
	}
}
