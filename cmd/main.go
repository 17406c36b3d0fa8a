package main

import (
	"context"
	"github.com/asaskevich/EventBus"
	"github.com/gin-gonic/gin"
	"github.com/maxaizer/namaste-jobs/internal/clients/backend"
	"github.com/maxaizer/namaste-jobs/internal/config"
	"github.com/maxaizer/namaste-jobs/internal/logger"
	"github.com/maxaizer/namaste-jobs/internal/metrics"
	"github.com/maxaizer/namaste-jobs/internal/notifier"
	"github.com/maxaizer/namaste-jobs/internal/repositories"
	"github.com/maxaizer/namaste-jobs/internal/services"
	"github.com/maxaizer/namaste-jobs/internal/session"
	"github.com/maxaizer/namaste-jobs/internal/web"
	log "github.com/sirupsen/logrus"
	"os/signal"
	"syscall"
	"time"
)

const shutdownTimeout = 15 * time.Second

func runNotifier(ctx context.Context, cfg *config.Config, jobs *repositories.CachedJobs, bus EventBus.Bus) {

	if !cfg.Telegram.Enabled() {
		log.Info("Telegram notifications are disabled")
		return
	}

	telegram, err := notifier.NewTelegram(cfg.Telegram.Token, cfg.Telegram.ChatID, jobs, cfg.Server.PublicURL)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeTgApi).
			Errorf("can't create telegram notifier, continuing without it: %v", err)
		return
	}

	if err = telegram.Subscribe(bus); err != nil {
		log.Fatalf("can't subscribe telegram notifier: %v", err)
	}
	go telegram.Run(ctx)
}

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Get()

	metrics.Register()

	logger.Setup(ctx, cfg.Logger)
	defer logger.Cleanup()

	if cfg.Logger.LogLevel != config.LevelDebug {
		gin.SetMode(gin.ReleaseMode)
	}

	dbContext, err := repositories.NewDbContext(cfg.DB.ConnectionString)
	if err != nil {
		log.Fatalf("can't create db context: %v", err)
	}
	defer dbContext.Close()

	err = dbContext.Migrate()
	if err != nil {
		log.Fatalf("can't migrate db context: %v", err)
	}

	sessionsRepository := repositories.NewSessionsRepository(dbContext.DB)
	store := session.NewStore(cfg.Server.SessionTTL)

	client := backend.NewClient(cfg.Backend.BaseURL)
	client.SetRateLimit(cfg.Backend.MaxRequestsPerSecond)

	bus := EventBus.New()
	jobs := repositories.NewCachedJobs(client, cfg.Backend.CacheTTL)
	if err = jobs.SubscribeInvalidation(bus); err != nil {
		log.Fatalf("can't subscribe job cache: %v", err)
	}

	if err = store.Load(ctx, sessionsRepository, client); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("can't restore sessions, starting empty: %v", err)
	}

	cleaner, err := services.NewSessionsCleaner(sessionsRepository, store, cfg.DB.SessionsCleanupSchedule)
	if err != nil {
		log.Fatalf("can't create sessions cleaner: %v", err)
	}
	defer cleaner.Stop()

	runNotifier(ctx, cfg, jobs, bus)

	server, err := web.NewServer(cfg.Server, store, session.NewSigner(cfg.Server.SessionSecret, cfg.Server.SessionTTL), web.Services{
		Home:      services.NewHome(jobs),
		Listing:   services.NewListing(jobs),
		Detail:    services.NewDetail(jobs),
		Dashboard: services.NewDashboard(jobs, client, store, bus),
		Accounts:  services.NewAccounts(client, store),
		Contact:   services.NewContact(client, bus),
	})
	if err != nil {
		log.Fatalf("can't create web server: %v", err)
	}

	go func() {
		if err := server.Start(); err != nil {
			log.Errorf("web server stopped: %v", err)
			stop()
		}
	}()

	<-ctx.Done()

	log.Info("Shutting down services...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err = server.Shutdown(shutdownCtx); err != nil {
		log.Errorf("can't shut down web server gracefully: %v", err)
	}
	bus.WaitAsync()

	if err = store.Save(shutdownCtx, sessionsRepository); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("can't save sessions: %v", err)
	}

	log.Info("Services stopped.")
}
