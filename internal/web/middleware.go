package web

import (
	"github.com/gin-gonic/gin"
	"github.com/maxaizer/namaste-jobs/internal/logger"
	"github.com/maxaizer/namaste-jobs/internal/metrics"
	"github.com/maxaizer/namaste-jobs/internal/session"
	log "github.com/sirupsen/logrus"
	"net/http"
	"strconv"
	"time"
)

const sessionIDKey = "session_id"

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		metrics.HTTPRequestsCounter.WithLabelValues(route, strconv.Itoa(status)).Inc()

		for _, err := range c.Errors {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeRender).
				Errorf("failed to render %s: %v", c.Request.URL.Path, err.Err)
		}

		log.WithFields(log.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   status,
			"duration": time.Since(start),
		}).Debug("request handled")
	}
}

func recoverPanic(c *gin.Context, recovered any) {
	log.WithField(logger.ErrorTypeField, logger.ErrorTypeRender).
		Errorf("panic while handling %s: %v", c.Request.URL.Path, recovered)
	c.AbortWithStatus(http.StatusInternalServerError)
}

// sessionMiddleware resolves the browser session from the signed cookie.
// Requests without a live session stay stateless until a handler needs to
// store something, see ensureSession. A known session's cookie is
// re-issued on every request so idle expiry slides.
func (s *Server) sessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if current, found := s.restoreSession(c); found {
			if err := s.issueCookie(c, current.ID); err != nil {
				log.Errorf("failed to sign session cookie: %v", err)
				c.AbortWithStatus(http.StatusInternalServerError)
				return
			}
		}
		c.Next()
	}
}

// ensureSession returns the request's session id, starting a stored
// session when the request has none.
func (s *Server) ensureSession(c *gin.Context) string {
	if id := c.GetString(sessionIDKey); id != "" {
		return id
	}

	created := s.sessions.Create()
	if err := s.issueCookie(c, created.ID); err != nil {
		log.Errorf("failed to sign session cookie: %v", err)
	}
	return created.ID
}

func (s *Server) issueCookie(c *gin.Context, id string) error {
	token, err := s.signer.Sign(id, s.now())
	if err != nil {
		return err
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(session.CookieName, token, s.signer.MaxAge(), "/", "", s.secureCookies, true)
	c.Set(sessionIDKey, id)
	return nil
}

func (s *Server) restoreSession(c *gin.Context) (session.Session, bool) {
	value, err := c.Cookie(session.CookieName)
	if err != nil {
		return session.Session{}, false
	}

	id, err := s.signer.Parse(value)
	if err != nil {
		log.Debugf("dropping session cookie: %v", err)
		return session.Session{}, false
	}

	current, err := s.sessions.Get(id)
	if err != nil {
		return session.Session{}, false
	}
	return current, true
}

// session returns the latest state of the request's session, an empty
// anonymous one when there is none.
func (s *Server) session(c *gin.Context) session.Session {
	id := c.GetString(sessionIDKey)
	if id == "" {
		return session.Session{}
	}
	current, err := s.sessions.Get(id)
	if err != nil {
		return session.Session{ID: id}
	}
	return current
}

func (s *Server) setFlash(c *gin.Context, message string) {
	_, err := s.sessions.Update(s.ensureSession(c), func(current *session.Session) {
		current.Flash = message
	})
	if err != nil {
		log.Warnf("failed to store flash message: %v", err)
	}
}

func (s *Server) takeFlash(c *gin.Context) string {
	id := c.GetString(sessionIDKey)
	if id == "" {
		return ""
	}

	var flash string
	_, _ = s.sessions.Update(id, func(current *session.Session) {
		flash = current.Flash
		current.Flash = ""
	})
	return flash
}
