package web

import (
	"context"
	"errors"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/maxaizer/namaste-jobs/internal/clients/backend"
	"github.com/maxaizer/namaste-jobs/internal/config"
	"github.com/maxaizer/namaste-jobs/internal/dashboard"
	"github.com/maxaizer/namaste-jobs/internal/metrics"
	"github.com/maxaizer/namaste-jobs/internal/services"
	"github.com/maxaizer/namaste-jobs/internal/session"
	log "github.com/sirupsen/logrus"
	"net/http"
	"time"
)

type homeService interface {
	Load(ctx context.Context, creds backend.Credentials, pages services.HomePages) services.HomeResult
}

type listingService interface {
	Load(ctx context.Context, creds backend.Credentials, query services.ListingQuery) services.ListingResult
}

type detailService interface {
	Load(ctx context.Context, creds backend.Credentials, id string) services.DetailResult
}

type dashboardService interface {
	Open(ctx context.Context, sessionID string, editID string) (dashboard.Board, error)
	Submit(ctx context.Context, sessionID string, editingID string, draft dashboard.JobDraft) (dashboard.Board, error)
	Delete(ctx context.Context, sessionID string, jobID string) (dashboard.Board, error)
	Cancel(sessionID string) (dashboard.Board, error)
}

type accountsService interface {
	Register(ctx context.Context, sessionID string, form services.RegistrationForm) (session.Session, error)
	Login(ctx context.Context, sessionID string, form services.LoginForm) (session.Session, error)
	Logout(ctx context.Context, sessionID string) error
	UpdateProfile(ctx context.Context, sessionID string, form services.ProfileForm) (session.Session, error)
}

type contactService interface {
	Submit(ctx context.Context, creds backend.Credentials, form services.ContactForm) (string, error)
}

type sessionStore interface {
	Create() session.Session
	Get(id string) (session.Session, error)
	Update(id string, fn func(*session.Session)) (session.Session, error)
}

type Services struct {
	Home      homeService
	Listing   listingService
	Detail    detailService
	Dashboard dashboardService
	Accounts  accountsService
	Contact   contactService
}

type Server struct {
	engine        *gin.Engine
	httpServer    *http.Server
	services      Services
	sessions      sessionStore
	signer        *session.Signer
	secureCookies bool
	now           func() time.Time
}

func NewServer(cfg config.ServerConfig, sessions sessionStore, signer *session.Signer, svc Services) (*Server, error) {

	if sessions == nil {
		return nil, errors.New("session store is nil")
	}

	if signer == nil {
		return nil, errors.New("session signer is nil")
	}

	if svc.Home == nil || svc.Listing == nil || svc.Detail == nil {
		return nil, errors.New("job page services are not set")
	}

	if svc.Dashboard == nil || svc.Accounts == nil || svc.Contact == nil {
		return nil, errors.New("account services are not set")
	}

	templates, err := loadTemplates()
	if err != nil {
		return nil, err
	}

	engine := gin.New()
	engine.SetHTMLTemplate(templates)
	engine.Use(requestLogger(), gin.CustomRecovery(recoverPanic))

	s := &Server{
		engine:        engine,
		services:      svc,
		sessions:      sessions,
		signer:        signer,
		secureCookies: cfg.SecureCookies,
		now:           time.Now,
	}
	s.httpServer = &http.Server{
		Addr:              cfg.Address,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.registerRoutes(cfg)
	return s, nil
}

func (s *Server) registerRoutes(cfg config.ServerConfig) {

	s.engine.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := s.engine.Group("/api", apiCors(cfg.AllowedOrigins), s.sessionMiddleware())
	api.GET("/auth/me", s.me)
	api.OPTIONS("/auth/me", func(c *gin.Context) {})

	pages := s.engine.Group("/", s.sessionMiddleware())
	pages.GET("/", s.home)
	pages.GET("/jobs", s.jobs)
	pages.GET("/jobs/:id", s.jobDetail)
	pages.GET("/about", s.about)
	pages.GET("/contact", s.contactPage)
	pages.POST("/contact", s.submitContact)

	pages.GET("/register", s.registerPage)
	pages.POST("/register", s.register)
	pages.GET("/login", s.loginPage)
	pages.POST("/login", s.login)
	pages.POST("/logout", s.logout)
	pages.GET("/profile", s.profile)
	pages.GET("/profile/edit", s.profileEditPage)
	pages.POST("/profile/edit", s.updateProfile)

	pages.GET("/dashboard", s.dashboard)
	pages.POST("/dashboard/jobs", s.saveJob)
	pages.POST("/dashboard/jobs/:id/delete", s.deleteJob)
	pages.POST("/dashboard/cancel", s.cancelEdit)

	s.engine.NoRoute(s.sessionMiddleware(), s.notFound)
}

func apiCors(origins []string) gin.HandlerFunc {
	corsConfig := cors.DefaultConfig()
	if len(origins) == 0 {
		corsConfig.AllowOrigins = []string{"http://localhost:3000"}
	} else {
		corsConfig.AllowOrigins = origins
	}
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type"}
	return cors.New(corsConfig)
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start blocks until the server is shut down.
func (s *Server) Start() error {
	log.Infof("Listening on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
