package httpserver

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	sessionHeader = "X-Session-ID"
	sessionCookie = "session_id"
	sessionCtxKey = "sessionID"
)

// accessLog writes one structured line per request.
func accessLog(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		}
		if id := c.GetString(sessionCtxKey); id != "" {
			fields = append(fields, zap.String("session_id", id))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}
		logger.Info("http request", fields...)
	}
}

// sessionMiddleware resolves the caller's session from the X-Session-ID
// header or the session_id cookie, issuing a fresh one when neither names a
// live session. The id is echoed back in both places.
func sessionMiddleware(sessions SessionService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		id := c.GetHeader(sessionHeader)
		if id == "" {
			id, _ = c.Cookie(sessionCookie)
		}

		if err := sessions.Touch(ctx, id); err != nil {
			newID, issueErr := sessions.Issue(ctx)
			if issueErr != nil {
				logger.Error("issue session", zap.Error(errors.Join(err, issueErr)))
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
				return
			}
			id = newID
		}

		c.Set(sessionCtxKey, id)
		c.Header(sessionHeader, id)
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(sessionCookie, id, sessions.TTLSeconds(), "/", "", false, true)
		c.Next()
	}
}

func sessionID(c *gin.Context) string {
	return c.GetString(sessionCtxKey)
}
