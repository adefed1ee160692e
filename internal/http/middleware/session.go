package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	sessionKey = "session_id"
	// SessionHeader names the client's history session.
	SessionHeader = "X-Along-Session"
)

// Session picks up the client's history session. Requests without one share
// the default session.
func Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		sid := strings.TrimSpace(c.GetHeader(SessionHeader))
		if sid == "" {
			sid = strings.TrimSpace(c.Query("session"))
		}
		c.Set(sessionKey, sid)
		c.Next()
	}
}

// GetSession returns the session id set by Session, or "".
func GetSession(c *gin.Context) string {
	if c == nil {
		return ""
	}
	return c.GetString(sessionKey)
}
