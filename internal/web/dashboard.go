package web

import (
	"errors"
	"github.com/gin-gonic/gin"
	"github.com/maxaizer/namaste-jobs/internal/clients/backend"
	"github.com/maxaizer/namaste-jobs/internal/dashboard"
	"github.com/maxaizer/namaste-jobs/internal/services"
	"github.com/maxaizer/namaste-jobs/internal/session"
	log "github.com/sirupsen/logrus"
	"net/http"
)

// statusClientClosedRequest is written when the browser went away before
// the board was loaded. Nobody reads it, it only shows up in metrics.
const statusClientClosedRequest = 499

func (s *Server) dashboard(c *gin.Context) {
	board, err := s.services.Dashboard.Open(c.Request.Context(), c.GetString(sessionIDKey), c.Query("edit"))
	if s.handleDashboardError(c, err) {
		return
	}
	s.renderBoard(c, http.StatusOK, board, nil)
}

func (s *Server) saveJob(c *gin.Context) {
	var draft dashboard.JobDraft
	if err := c.ShouldBind(&draft); err != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	board, err := s.services.Dashboard.Submit(c.Request.Context(), c.GetString(sessionIDKey), c.PostForm("id"), draft)

	var formErrors services.FormErrors
	if errors.As(err, &formErrors) {
		s.renderBoard(c, http.StatusUnprocessableEntity, board, formErrors)
		return
	}
	if s.handleDashboardError(c, err) {
		return
	}
	s.renderBoard(c, http.StatusOK, board, nil)
}

func (s *Server) deleteJob(c *gin.Context) {
	board, err := s.services.Dashboard.Delete(c.Request.Context(), c.GetString(sessionIDKey), c.Param("id"))
	if s.handleDashboardError(c, err) {
		return
	}
	s.renderBoard(c, http.StatusOK, board, nil)
}

func (s *Server) cancelEdit(c *gin.Context) {
	board, err := s.services.Dashboard.Cancel(c.GetString(sessionIDKey))
	if s.handleDashboardError(c, err) {
		return
	}
	s.renderBoard(c, http.StatusOK, board, nil)
}

// handleDashboardError writes the response for err and reports whether it
// did. Rejected mutations are not handled here: the board carries their alert.
func (s *Server) handleDashboardError(c *gin.Context, err error) bool {

	var userErr *services.UserError

	switch {
	case err == nil:
		return false
	case errors.As(err, &userErr):
		return false
	case errors.Is(err, services.ErrLoginRequired):
		c.Redirect(http.StatusSeeOther, "/login")
	case errors.Is(err, services.ErrAdminRequired):
		c.Redirect(http.StatusSeeOther, "/profile")
	case backend.IsCanceled(err):
		c.Status(statusClientClosedRequest)
	default:
		log.Errorf("dashboard request %s failed: %v", c.Request.URL.Path, err)
		c.Status(http.StatusInternalServerError)
	}
	return true
}

// renderBoard shows the board and clears its alert, so an alert is
// displayed exactly once.
func (s *Server) renderBoard(c *gin.Context, status int, board dashboard.Board, formErrors services.FormErrors) {
	if board.Alert != "" {
		_, _ = s.sessions.Update(c.GetString(sessionIDKey), func(current *session.Session) {
			current.Dashboard.TakeAlert()
		})
	}

	s.render(c, status, "dashboard.html", gin.H{
		"Title":  "Admin dashboard",
		"Board":  board,
		"Errors": formErrors,
	})
}
