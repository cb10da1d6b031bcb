package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"suivi-chargements/internal/config"
	apphttp "suivi-chargements/internal/http"
	"suivi-chargements/internal/repository"
	"suivi-chargements/internal/repository/memory"
	"suivi-chargements/internal/repository/sqlite"
	"suivi-chargements/internal/service"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var db *sql.DB
	if cfg.Database.Driver == "sqlite" || cfg.Session.Store == "sqlite" {
		db, err = sqlite.Open(cfg.Database.Path)
		if err != nil {
			logger.Fatalf("open database: %v", err)
		}
		defer db.Close()
	}

	userRepo, commandeRepo, err := buildRepositories(cfg, db)
	if err != nil {
		logger.Fatalf("setup repositories: %v", err)
	}
	sessionRepo, err := buildSessionStore(cfg, db)
	if err != nil {
		logger.Fatalf("setup session store: %v", err)
	}

	if err := userRepo.Init(ctx); err != nil {
		logger.Fatalf("init user repository: %v", err)
	}
	if err := commandeRepo.Init(ctx); err != nil {
		logger.Fatalf("init commande repository: %v", err)
	}
	if err := sessionRepo.Init(ctx); err != nil {
		logger.Fatalf("init session store: %v", err)
	}

	authService := service.NewAuthService(userRepo, sessionRepo, cfg.Session.TTL)
	commandeService := service.NewCommandeService(commandeRepo)
	statsService := service.NewStatsService(commandeRepo)

	// seed failure must not prevent startup (datastore may come up later)
	if err := authService.SeedSuperadmin(ctx); err != nil {
		logger.Warnf("superadmin seed skipped: %v", err)
	}

	if err := sessionRepo.DeleteExpired(ctx, time.Now()); err != nil {
		logger.Warnf("prune expired sessions: %v", err)
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(apphttp.CORSMiddleware(cfg.CORSOrigins()))
	router.Use(apphttp.RequestLogger(logger))

	cookie := apphttp.CookieOptions{
		MaxAge:   int(cfg.Session.TTL / time.Second),
		Secure:   cfg.Production(),
		SameSite: http.SameSiteLaxMode,
	}
	if cfg.Production() {
		cookie.SameSite = http.SameSiteNoneMode
	}

	handler := apphttp.NewHandler(authService, commandeService, statsService, cookie, logger)
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
	}

	go func() {
		logger.Infof("listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("http shutdown: %v", err)
	}

	logger.Info("bye")
}

func buildRepositories(cfg config.Config, db *sql.DB) (repository.UserRepository, repository.CommandeRepository, error) {
	switch cfg.Database.Driver {
	case "sqlite":
		return sqlite.NewUserRepository(db), sqlite.NewCommandeRepository(db), nil
	case "memory":
		return memory.NewUserRepository(), memory.NewCommandeRepository(), nil
	default:
		return nil, nil, fmt.Errorf("unknown database driver %q", cfg.Database.Driver)
	}
}

func buildSessionStore(cfg config.Config, db *sql.DB) (repository.SessionRepository, error) {
	switch cfg.Session.Store {
	case "sqlite":
		return sqlite.NewSessionRepository(db), nil
	case "memory":
		return memory.NewSessionRepository(), nil
	default:
		return nil, fmt.Errorf("unknown session store %q", cfg.Session.Store)
	}
}
