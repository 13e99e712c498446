package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/jwalitptl/patient-portal/internal/config"
	"github.com/jwalitptl/patient-portal/internal/handler"
	adminHandler "github.com/jwalitptl/patient-portal/internal/handler/admin"
	authHandler "github.com/jwalitptl/patient-portal/internal/handler/auth"
	doctorHandler "github.com/jwalitptl/patient-portal/internal/handler/doctor"
	patientHandler "github.com/jwalitptl/patient-portal/internal/handler/patient"
	"github.com/jwalitptl/patient-portal/internal/middleware"
	"github.com/jwalitptl/patient-portal/internal/repository/postgres"
	"github.com/jwalitptl/patient-portal/internal/router"
	"github.com/jwalitptl/patient-portal/internal/session"
	authService "github.com/jwalitptl/patient-portal/internal/service/auth"
	"github.com/jwalitptl/patient-portal/internal/service/authz"
	patientService "github.com/jwalitptl/patient-portal/internal/service/patient"
	userService "github.com/jwalitptl/patient-portal/internal/service/user"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	sessions, err := session.NewStore(cfg.Redis, cfg.Session)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to session store")
	}

	// Repositories
	base := postgres.NewBaseRepository(db)
	userRepo := postgres.NewUserRepository(base)
	roleRepo := postgres.NewRoleRepository(base)
	detailsRepo := postgres.NewPatientDetailsRepository(base)
	assignmentRepo := postgres.NewAssignmentRepository(base)

	// Services
	policy := authz.NewService(assignmentRepo)
	authSvc := authService.NewService(userRepo, sessions)
	patientSvc := patientService.NewService(userRepo, detailsRepo, assignmentRepo, policy)
	userSvc := userService.NewService(userRepo, roleRepo, assignmentRepo)

	// Middleware and handlers
	sessionMW := middleware.NewSessionMiddleware(authSvc, cfg.Session.CookieName)
	authH := authHandler.NewHandler(authSvc, cfg.Session)
	adminH := adminHandler.NewHandler(userSvc, patientSvc)
	doctorH := doctorHandler.NewHandler(patientSvc)
	patientH := patientHandler.NewHandler(patientSvc)
	healthH := handler.NewHealthHandler(db, sessions)

	r := router.NewRouter(
		sessionMW,
		authH,
		adminH,
		doctorH,
		patientH,
		healthH,
		router.Config{
			RateLimit: rate.Limit(cfg.RateLimit.RequestsPerSecond),
			RateBurst: cfg.RateLimit.Burst,
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
