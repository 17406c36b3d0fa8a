package web

import (
	"github.com/gin-gonic/gin"
	"github.com/maxaizer/namaste-jobs/internal/services"
	"net/http"
)

func (s *Server) home(c *gin.Context) {
	current := s.session(c)
	pages := services.ParseHomePages(c.Request.URL.Query())

	result := s.services.Home.Load(c.Request.Context(), current.Credentials(), pages)
	s.render(c, http.StatusOK, "home.html", gin.H{
		"Title":    "Find your next job",
		"Result":   result,
		"Featured": services.FeaturedCategories,
	})
}

func (s *Server) jobs(c *gin.Context) {
	current := s.session(c)
	query := services.ParseListingQuery(c.Request.URL.Query())

	result := s.services.Listing.Load(c.Request.Context(), current.Credentials(), query)
	s.render(c, http.StatusOK, "jobs.html", gin.H{
		"Title":  query.Heading(),
		"Result": result,
	})
}

func (s *Server) jobDetail(c *gin.Context) {
	current := s.session(c)

	result := s.services.Detail.Load(c.Request.Context(), current.Credentials(), c.Param("id"))
	if result.State == services.StateNotFound {
		s.render(c, http.StatusNotFound, "job.html", gin.H{"Title": "Job not found", "Result": result})
		return
	}
	s.render(c, http.StatusOK, "job.html", gin.H{"Title": result.Job.Title, "Result": result})
}

func (s *Server) about(c *gin.Context) {
	s.render(c, http.StatusOK, "about.html", gin.H{"Title": "About us"})
}

func (s *Server) me(c *gin.Context) {
	current := s.session(c)
	if !current.IsAuthenticated() {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": current.User})
}
