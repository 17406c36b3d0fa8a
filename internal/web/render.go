package web

import (
	"embed"
	"github.com/gin-gonic/gin"
	"github.com/maxaizer/namaste-jobs/internal/domain/models"
	"github.com/maxaizer/namaste-jobs/internal/services"
	"html/template"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"
)

//go:embed templates/*.html
var templatesFS embed.FS

var templateFuncs = template.FuncMap{
	"truncate": truncate,
	"date": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("02 Jan 2006")
	},
	"card": func(job models.Job, now time.Time) map[string]any {
		return map[string]any{"Job": job, "Now": now}
	},
	"section": func(section services.HomeSection, now time.Time, anchor string) map[string]any {
		return map[string]any{"Section": section, "Now": now, "Anchor": anchor}
	},
	"fieldError": func(errors map[string]string, field string) string {
		return errors[field]
	},
}

func loadTemplates() (*template.Template, error) {
	return template.New("").Funcs(templateFuncs).ParseFS(templatesFS, "templates/*.html")
}

func truncate(text string, limit int) string {
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) <= limit {
		return text
	}
	runes := []rune(text)
	return strings.TrimSpace(string(runes[:limit])) + "…"
}

// render adds the navbar state to data and writes the named page.
func (s *Server) render(c *gin.Context, status int, page string, data gin.H) {
	current := s.session(c)

	data["User"] = current.User
	data["Flash"] = s.takeFlash(c)
	data["Locations"] = models.Locations
	data["Categories"] = models.Categories
	data["Search"] = c.Query("search")
	data["Now"] = s.now()
	data["Year"] = s.now().Year()

	c.HTML(status, page, data)
}

func (s *Server) notFound(c *gin.Context) {
	s.render(c, http.StatusNotFound, "not_found.html", gin.H{"Title": "Page not found"})
}
