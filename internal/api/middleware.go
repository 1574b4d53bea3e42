package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"marketplace-service/internal/auth"
	"marketplace-service/internal/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const identityKey = "identity"

// identityFrom returns the caller's identity resolved by IdentityMiddleware,
// or nil for anonymous requests.
func identityFrom(c *gin.Context) *auth.Identity {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	id, _ := v.(*auth.Identity)
	return id
}

// IdentityMiddleware resolves the session token once per request and stashes
// the resulting identity in the request context. Resolution failures degrade
// to anonymous rather than failing the request.
func IdentityMiddleware(resolver *auth.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			if cookie, err := c.Cookie("session_token"); err == nil {
				token = cookie
			}
		}

		id, err := resolver.Resolve(c.Request.Context(), token)
		if err != nil {
			util.GetLogger().Warn("Session resolution failed", zap.Error(err))
		}
		if id != nil {
			c.Set(identityKey, id)
		}

		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

// RouteGuard applies the role-based routing policy to every request
func RouteGuard() gin.HandlerFunc {
	return func(c *gin.Context) {
		decision := auth.Evaluate(c.Request.URL.Path, identityFrom(c))
		if decision.Allow {
			c.Next()
			return
		}

		util.GuardRedirectsTotal.WithLabelValues(decision.RedirectTo).Inc()
		c.Redirect(http.StatusFound, decision.RedirectTo)
		c.Abort()
	}
}

// prometheusMiddleware collects HTTP metrics
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		util.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Observe(duration)

		util.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Inc()
	}
}
