package web

import (
	"errors"
	"github.com/gin-gonic/gin"
	"github.com/maxaizer/namaste-jobs/internal/services"
	log "github.com/sirupsen/logrus"
	"net/http"
)

const profileUpdatedMessage = "Profile updated successfully"

func (s *Server) registerPage(c *gin.Context) {
	s.renderForm(c, http.StatusOK, "register.html", "Create an account", services.RegistrationForm{}, nil, "")
}

func (s *Server) register(c *gin.Context) {
	var form services.RegistrationForm
	if err := c.ShouldBind(&form); err != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	_, err := s.services.Accounts.Register(c.Request.Context(), s.ensureSession(c), form)
	if err != nil {
		form.Password = ""
		s.renderFormError(c, "register.html", "Create an account", form, err, services.MessageRegistrationFailed)
		return
	}
	c.Redirect(http.StatusSeeOther, "/profile")
}

func (s *Server) loginPage(c *gin.Context) {
	s.renderForm(c, http.StatusOK, "login.html", "Log in", services.LoginForm{}, nil, "")
}

func (s *Server) login(c *gin.Context) {
	var form services.LoginForm
	if err := c.ShouldBind(&form); err != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	current, err := s.services.Accounts.Login(c.Request.Context(), s.ensureSession(c), form)
	if err != nil {
		form.Password = ""
		s.renderFormError(c, "login.html", "Log in", form, err, "Login failed. Please try again.")
		return
	}

	if current.IsAdmin() {
		c.Redirect(http.StatusSeeOther, "/dashboard")
		return
	}
	c.Redirect(http.StatusSeeOther, "/profile")
}

func (s *Server) logout(c *gin.Context) {
	err := s.services.Accounts.Logout(c.Request.Context(), c.GetString(sessionIDKey))
	if err != nil {
		s.setFlash(c, services.UserMessage(err, services.MessageLogoutFailed))
		c.Redirect(http.StatusSeeOther, "/profile")
		return
	}
	c.Redirect(http.StatusSeeOther, "/login")
}

func (s *Server) profile(c *gin.Context) {
	current := s.session(c)
	if !current.IsAuthenticated() {
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}
	s.render(c, http.StatusOK, "profile.html", gin.H{"Title": "My profile", "Profile": current.User})
}

func (s *Server) profileEditPage(c *gin.Context) {
	current := s.session(c)
	if !current.IsAuthenticated() {
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}
	s.renderForm(c, http.StatusOK, "profile_edit.html", "Edit profile", services.ProfileFormFrom(current.User), nil, "")
}

func (s *Server) updateProfile(c *gin.Context) {
	var form services.ProfileForm
	if err := c.ShouldBind(&form); err != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	_, err := s.services.Accounts.UpdateProfile(c.Request.Context(), c.GetString(sessionIDKey), form)
	if errors.Is(err, services.ErrLoginRequired) {
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}
	if err != nil {
		s.renderFormError(c, "profile_edit.html", "Edit profile", form, err, services.MessageProfileUpdateFail)
		return
	}

	s.setFlash(c, profileUpdatedMessage)
	c.Redirect(http.StatusSeeOther, "/profile")
}

func (s *Server) renderForm(c *gin.Context, status int, page, title string, form any, formErrors services.FormErrors, message string) {
	s.render(c, status, page, gin.H{
		"Title":  title,
		"Form":   form,
		"Errors": formErrors,
		"Error":  message,
	})
}

// renderFormError re-renders a form page after a failed submission. Field
// errors are shown next to their inputs, everything else as one message.
func (s *Server) renderFormError(c *gin.Context, page, title string, form any, err error, fallback string) {
	var formErrors services.FormErrors
	if errors.As(err, &formErrors) {
		s.renderForm(c, http.StatusUnprocessableEntity, page, title, form, formErrors, "")
		return
	}

	var userErr *services.UserError
	if !errors.As(err, &userErr) {
		log.Errorf("%s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	s.renderForm(c, http.StatusOK, page, title, form, nil, services.UserMessage(err, fallback))
}
