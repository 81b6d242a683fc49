package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/chalitbbph/TNCC-H/internal/config"
	"github.com/chalitbbph/TNCC-H/internal/database"
	"github.com/chalitbbph/TNCC-H/internal/httpapi"
	"github.com/chalitbbph/TNCC-H/internal/loader"
	"github.com/chalitbbph/TNCC-H/internal/logger"
	"github.com/chalitbbph/TNCC-H/internal/repository"
	"github.com/chalitbbph/TNCC-H/internal/schema"
	"github.com/chalitbbph/TNCC-H/internal/service"
)

func main() {
	cfg := config.Load()

	log, err := logger.NewLogger(cfg.Log.Level, cfg.Log.Format, "healthdash")
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	// Dataset store: direct Postgres by default, PostgREST for the hosted
	// reference deployment.
	var repo repository.DatasetsRepo
	switch cfg.RepoBackend {
	case "supabase":
		if cfg.Supabase.URL == "" {
			log.Fatal("REPO_BACKEND=supabase requires SUPABASE_URL")
		}
		repo = service.NewSupabaseClient(cfg.Supabase.URL, cfg.Supabase.APIKey, log)
		log.Info("using supabase dataset store", zap.String("url", cfg.Supabase.URL))
	default:
		db, err := database.NewPostgresDB(&cfg.Database)
		if err != nil {
			log.Fatal("postgres connection failed", zap.Error(err))
		}
		defer db.Close()
		repo = repository.NewPostgresDatasetsRepo(db, log)
		log.Info("using postgres dataset store",
			zap.String("host", cfg.Database.Host),
			zap.String("database", cfg.Database.Database),
		)
	}

	// Year-dataset cache; the loader works without it if Redis is off.
	var kv loader.KVStore
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Warn("redis unavailable, dataset cache disabled", zap.Error(err))
		} else {
			kv = loader.NewRedisKVStore(redisClient)
			defer redisClient.Close()
		}
	}

	normalizer := schema.NewNormalizer(schema.DefaultMapping, log)
	datasets := loader.NewLoader(repo, normalizer, kv, log)

	auth := httpapi.NewAuthHandler(cfg.Dashboard.User, cfg.Dashboard.Password, log)
	router := httpapi.NewRouter(log)
	router.RegisterRoutes(auth,
		httpapi.NewAnalyticsHandler(datasets, log),
		httpapi.NewImportHandler(repo, datasets, log),
	)

	srv := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	go func() {
		log.Info("healthdash listening", zap.String("addr", cfg.HTTP.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("http server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("shutdown failed", zap.Error(err))
	}
}
