// Entry point for the parlour admin API.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"parlour.service/internal/api"
	"parlour.service/internal/api/middleware"
	"parlour.service/internal/auth"
	"parlour.service/internal/config"
	"parlour.service/internal/core"
	"parlour.service/internal/ports/repository"
	"parlour.service/internal/realtime"
	"parlour.service/pkg/database"
	"parlour.service/pkg/logger"
	"parlour.service/pkg/telemetry"
)

func main() {
	// Load config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Could not load configuration")
	}

	// Configure structured logging
	logger.Setup(cfg.IsLocalDev)

	// Configure OpenTelemetry Tracing
	shutdownTracer, err := telemetry.InitTracer("parlour-api", cfg.OTLPEndpoint)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to init tracer")
	}
	defer func() {
		_ = shutdownTracer(context.Background())
	}()

	// DB connection
	db, err := database.NewInstrumentedConnection(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Error opening database")
	}
	defer db.Close()
	log.Info().Msg("Successfully connected to the database.")

	if err := database.RunMigrations(cfg.MigrationsPath, cfg.DatabaseURL()); err != nil {
		log.Fatal().Err(err).Msg("Could not run database migrations")
	}

	// Initialize dependencies
	eventRepo := repository.NewAttendanceEventRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	userRepo := repository.NewUserRepository(db)

	hub := realtime.NewHub()
	tokens := auth.NewTokenManager(cfg.JWTSecret)

	router := api.NewRouter(api.Services{
		Attendance:    core.NewAttendanceService(eventRepo, employeeRepo, hub),
		Employees:     core.NewEmployeeService(employeeRepo),
		Tasks:         core.NewTaskService(taskRepo),
		Auth:          core.NewAuthService(userRepo, tokens),
		Hub:           hub,
		AuthMW:        middleware.NewAuthMiddleware(tokens),
		SecureCookies: !cfg.IsLocalDev,
	})

	// Middleware to inject logger with trace ID
	loggerMiddleware := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := logger.EnrichContextWithLogger(r.Context())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}

	// Wrap the router with OpenTelemetry middleware to create spans for each request
	handler := otelhttp.NewHandler(api.CORS(cfg.ClientOrigin)(loggerMiddleware(router)), "api")

	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: handler,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("port", cfg.ServerPort).Msg("Parlour API starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("listen")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	// The context is used to inform the server it has 5 seconds to finish
	// the requests it is currently handling
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
