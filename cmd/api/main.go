package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/escueladigital/escuela-api/internal/config"
	"github.com/escueladigital/escuela-api/internal/handler"
	authHandler "github.com/escueladigital/escuela-api/internal/handler/auth"
	avisoHandler "github.com/escueladigital/escuela-api/internal/handler/aviso"
	notificacionHandler "github.com/escueladigital/escuela-api/internal/handler/notificacion"
	"github.com/escueladigital/escuela-api/internal/middleware"
	"github.com/escueladigital/escuela-api/internal/repository/postgres"
	"github.com/escueladigital/escuela-api/internal/router"
	authService "github.com/escueladigital/escuela-api/internal/service/auth"
	avisoService "github.com/escueladigital/escuela-api/internal/service/aviso"
	notificacionService "github.com/escueladigital/escuela-api/internal/service/notificacion"
	pkgauth "github.com/escueladigital/escuela-api/pkg/auth"
	"github.com/escueladigital/escuela-api/pkg/logger"
)

func main() {
	log := logger.NewLogger(nil)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err, "failed to load configuration")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal(err, "failed to connect to database")
	}
	defer db.Close()

	// Repositories
	base := postgres.NewBaseRepository(db)
	avisoRepo := postgres.NewAvisoRepository(base)
	notificacionRepo := postgres.NewNotificacionRepository(base)
	usuarioRepo := postgres.NewUsuarioRepository(base)

	// Services
	jwtSvc := pkgauth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpiryHours)
	authSvc := authService.NewService(usuarioRepo, jwtSvc)
	resolver := avisoService.NewUserResolver(usuarioRepo)
	avisoSvc := avisoService.NewService(avisoRepo, notificacionRepo, resolver)
	notificacionSvc := notificacionService.NewService(notificacionRepo)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(authSvc)

	// Handlers
	h := handler.NewHandler(db)
	authH := authHandler.NewHandler(authSvc)
	avisoH := avisoHandler.NewHandler(avisoSvc)
	notificacionH := notificacionHandler.NewHandler(notificacionSvc)

	r := router.NewRouter(authMiddleware, authH, avisoH, notificacionH, h, router.Config{
		RateLimitRPS:   float64(cfg.Server.RateLimitRPS),
		RateLimitBurst: cfg.Server.RateLimitBurst,
		Timeout:        time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
		CORSConfig:     middleware.DefaultCORSConfig(),
		MetricsPrefix:  "escuela_api",
	})
	r.Setup()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err, "failed to start server")
		}
	}()
	log.Info("server started", "port", cfg.Server.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal(err, "server forced to shutdown")
	}

	log.Info("server exited properly")
}
