package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/parkd-dev/parkd/internal/roles"
	"github.com/parkd-dev/parkd/internal/session"
)

const sessionKey = "session"

func setSession(c *gin.Context, s session.Session) {
	c.Set(sessionKey, s)
	c.Request = c.Request.WithContext(session.WithSession(c.Request.Context(), s))
}

// GetSession returns the session attached by SessionMiddleware
func GetSession(c *gin.Context) session.Session {
	value, exists := c.Get(sessionKey)
	if !exists {
		return session.Anonymous
	}
	s, ok := value.(session.Session)
	if !ok {
		return session.Anonymous
	}
	return s
}

func respondWithError(c *gin.Context, log zerolog.Logger, statusCode int, err error, message string) {
	log.Warn().Err(err).Msg(message)
	c.JSON(statusCode, gin.H{"error": message})
	c.Abort()
}

// SessionMiddleware reads the session from the request and attaches it to the
// request context. Unreadable credentials fall back to the anonymous session
// so that the guard decides what happens next.
func SessionMiddleware(codec *session.TokenCodec, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, err := session.FromRequest(c.Request, codec)
		if err != nil {
			log.Debug().Err(err).Str("path", c.Request.URL.Path).Msg("Ignoring unreadable session credentials")
			s = session.Anonymous
		}
		setSession(c, s)
		c.Next()
	}
}

// RequireAdmin guards API endpoints that only admins may call
func RequireAdmin(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := GetSession(c)
		if !s.Authenticated() {
			respondWithError(c, log, http.StatusUnauthorized, errors.New("no session"), "Unauthorized")
			return
		}
		if s.Role != roles.Admin {
			respondWithError(c, log, http.StatusForbidden, errors.New("not admin"), "Admin access required")
			return
		}
		c.Next()
	}
}
