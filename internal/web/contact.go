package web

import (
	"github.com/gin-gonic/gin"
	"github.com/maxaizer/namaste-jobs/internal/services"
	"net/http"
)

func (s *Server) contactPage(c *gin.Context) {
	s.renderContact(c, http.StatusOK, services.ContactForm{}, nil, "", "")
}

// submitContact sends the form once. Success clears the form.
func (s *Server) submitContact(c *gin.Context) {
	var form services.ContactForm
	if err := c.ShouldBind(&form); err != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	current := s.session(c)
	message, err := s.services.Contact.Submit(c.Request.Context(), current.Credentials(), form)
	if err != nil {
		s.renderFormError(c, "contact.html", "Contact us", form, err, services.MessageContactNetwork)
		return
	}
	s.renderContact(c, http.StatusOK, services.ContactForm{}, nil, "", message)
}

func (s *Server) renderContact(c *gin.Context, status int, form services.ContactForm, formErrors services.FormErrors, message, success string) {
	s.render(c, status, "contact.html", gin.H{
		"Title":   "Contact us",
		"Form":    form,
		"Errors":  formErrors,
		"Error":   message,
		"Success": success,
	})
}
