package admin

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"quotewizard/internal/pkg/response"
)

const sessionContextKey = "admin_session"

// AdminJWTAuth requires a valid admin token backed by a live session. The
// token may come from the Authorization header or, for websocket upgrades,
// the token query parameter.
func AdminJWTAuth(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if authHeader := c.GetHeader("Authorization"); authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				response.Error(c, http.StatusUnauthorized, "INVALID_AUTH_FORMAT", "Authorization header must be 'Bearer <token>'")
				c.Abort()
				return
			}
			token = parts[1]
		}
		if token == "" {
			response.Error(c, http.StatusUnauthorized, "AUTH_HEADER_MISSING", "Authorization header is required")
			c.Abort()
			return
		}

		session, err := svc.Authenticate(c.Request.Context(), token)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(sessionContextKey, session)
		c.Set("admin_id", session.AdminID.String())
		c.Request = c.Request.WithContext(WithSession(c.Request.Context(), session))
		c.Next()
	}
}

// CurrentSession returns the session set by AdminJWTAuth
func CurrentSession(c *gin.Context) (*Session, bool) {
	v, ok := c.Get(sessionContextKey)
	if !ok {
		return nil, false
	}
	s, ok := v.(*Session)
	return s, ok
}
