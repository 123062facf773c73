package http

import (
	"net/http"
	"strings"
	"time"

	"comanda-service/internal/domain"
	"comanda-service/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	identityKey  = "identity"
	requestIDKey = "request_id"
)

// RequestLogger logs one line per request with a request id.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		rid := c.GetHeader("X-Request-ID")
		if rid == "" {
			rid = uuid.New().String()
		}
		c.Set(requestIDKey, rid)
		c.Header("X-Request-ID", rid)

		c.Next()

		zap.L().Info("http request",
			zap.String("request_id", rid),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

func bearer(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
}

// Auth resolves the bearer token to a live session.
func Auth(sessions *services.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearer(c)
		if token == "" {
			failWith(c, http.StatusUnauthorized, "missing bearer token", nil)
			return
		}
		ident, err := sessions.Authenticate(c.Request.Context(), token)
		if err != nil {
			fail(c, err)
			return
		}
		c.Set(identityKey, *ident)
		c.Next()
	}
}

func RequireRoles(roles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident := identity(c)
		for _, r := range roles {
			if ident.Role == r {
				c.Next()
				return
			}
		}
		failWith(c, http.StatusForbidden, "role "+string(ident.Role)+" cannot access this resource", nil)
	}
}

func identity(c *gin.Context) domain.Identity {
	v, _ := c.Get(identityKey)
	ident, _ := v.(domain.Identity)
	return ident
}
