package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	intconfig "along/internal/config"
	"along/internal/domain"
	router "along/internal/http"
	"along/internal/http/handlers"
	"along/internal/provider"
	"along/internal/repositories"
	"along/internal/services"
	"along/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	env, err := intconfig.LoadEnv()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	logger, err := utils.InitLogger(env.LogMode)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	region, err := domain.ParseRegion(env.DefaultRegion, domain.DefaultRegion)
	if err != nil {
		logger.Fatal("invalid DEFAULT_REGION", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	kv, err := historyBackend(ctx, env)
	if err != nil {
		cancel()
		logger.Fatal("failed to open history storage", zap.String("backend", env.HistoryBackend), zap.Error(err))
	}
	textProvider := routeProvider(ctx, env)
	cancel()
	defer intconfig.CloseDB()

	hs := &handlers.Handlers{
		Routes: services.RouteService{
			Provider:      textProvider,
			History:       services.NewHistoryBook(kv, env.SessionCacheSize),
			DefaultRegion: region,
		},
		DefaultRegion: region,
	}
	r := router.NewRouter(env, hs)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		// provider calls may retry, leave room for all attempts
		WriteTimeout: env.ProviderTimeout*time.Duration(env.ProviderAttempts) + 20*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("addr", env.AppAddr), zap.String("region", string(region)))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", zap.Error(err))
		return
	}

	logger.Info("server stopped")
}

func historyBackend(ctx context.Context, env intconfig.Env) (repositories.KeyValueStore, error) {
	switch env.HistoryBackend {
	case "mysql":
		db, err := intconfig.ConnectDB(env.MySQLDSN)
		if err != nil {
			return nil, err
		}
		kv := &repositories.MySQLKV{DB: db}
		if err := kv.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		return kv, nil
	case "memory":
		return repositories.NewMemoryKV(), nil
	default:
		return repositories.NewFileKV(env.HistoryDir), nil
	}
}

func routeProvider(ctx context.Context, env intconfig.Env) provider.RouteTextProvider {
	if env.GeminiAPIKey == "" {
		utils.Log.Warn("no API key configured, route searches will fail until API_KEY is set")
		return provider.Unconfigured{}
	}
	g, err := provider.NewGemini(ctx, env.GeminiAPIKey, env.GeminiModel, env.ProviderTimeout, env.ProviderAttempts)
	if err != nil {
		utils.Log.Error("failed to create Gemini client", zap.Error(err))
		return provider.Unconfigured{}
	}
	if env.RouteCacheSize <= 0 {
		return g
	}
	return provider.NewCached(g, env.RouteCacheSize, env.RouteCacheTTL)
}
