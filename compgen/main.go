package main

import (
	"compgen/compgen/config"
	"compgen/compgen/controllers"
	"compgen/compgen/routes"
	"compgen/compgen/services/llm"
	"compgen/compgen/sources/psql"
	"compgen/compgen/sources/psql/dao"
	"compgen/compgen/sources/storage"
	"compgen/compgen/utils/logging"
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

func main() {
	logging.InitLogger()
	cfg := config.LoadConfig()
	if cfg.JWTSecret == "" {
		logging.ErrorLogger.Error("JWT_SECRET is required")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	db, err := psql.NewDatabase(ctx, cfg)
	if err != nil {
		logging.ErrorLogger.Error("database connection error", zap.Error(err))
		os.Exit(1)
	}
	defer db.Close()

	userDAO := dao.NewUserDAO(db.DB)
	sessionDAO := dao.NewSessionDAO(db.DB)
	llmClient := llm.NewOpenRouterClient(cfg.OpenRouterBaseURL, cfg.OpenRouterAPIKey)

	// Object storage is optional; without it exports are download-only.
	var exportStore controllers.ExportStore
	if cfg.MinIOEndpoint != "" {
		minioClient, err := storage.NewMinIOClient(cfg)
		if err != nil {
			logging.ErrorLogger.Error("minio connection error", zap.Error(err))
			os.Exit(1)
		}
		exportStore = minioClient
	}

	authCtrl := controllers.NewAuthController(userDAO, cfg)
	sessionCtrl := controllers.NewSessionController(sessionDAO)
	aiCtrl := controllers.NewAIController(sessionDAO, llmClient, cfg)
	exportCtrl := controllers.NewExportController(sessionDAO, exportStore)
	healthCtrl := controllers.NewHealthController()

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Route("/api", func(api chi.Router) {
		api.Mount("/auth", routes.AuthRoutes(authCtrl))
		api.Mount("/sessions", routes.SessionRoutes(sessionCtrl, exportCtrl, cfg))
		api.Mount("/ai", routes.AIRoutes(aiCtrl, cfg))
		api.Mount("/health", routes.HealthRoutes(healthCtrl))
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}
	go func() {
		logging.AppLogger.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.ErrorLogger.Error("server listen error", zap.Error(err))
		}
	}()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.ErrorLogger.Error("server shutdown error", zap.Error(err))
	}
	logging.AppLogger.Info("server shutdown complete")
}
