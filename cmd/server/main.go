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

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	_ "resume-tailor-service/docs"
	"resume-tailor-service/internal/config"
	"resume-tailor-service/internal/llm"
	"resume-tailor-service/internal/logger"
	"resume-tailor-service/internal/repository/postgresql"
	"resume-tailor-service/internal/scheduler"
	"resume-tailor-service/internal/service"
	httptransport "resume-tailor-service/internal/transport/http"
	"resume-tailor-service/internal/worker"
)

// @title Resume Tailor Service API
// @version 1.0
// @description Asynchronous resume suggestion and tailoring jobs.
// @BasePath /
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zl, err := logger.New(cfg.LogJSON, cfg.Debug)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	// Postgres
	pool, err := postgresql.NewPool(ctx, cfg.PostgresDSN)
	if err != nil {
		zl.Fatal("pg", zap.Error(err))
	}
	defer pool.Close()
	repo := postgresql.NewJobRepository(pool)

	// Redis-backed cycle lock, no-op when Redis is not configured
	var lock service.CycleLock = service.NopCycleLock{}
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			zl.Fatal("redis", zap.Error(err))
		}
		defer rdb.Close()
		lock = service.NewRedisCycleLock(rdb, cfg.CycleLockKey, cfg.CycleLockTTL)
	}

	invoker, err := newInvoker(ctx, cfg)
	if err != nil {
		zl.Fatal("llm backend", zap.Error(err))
	}

	// DI
	jobSvc := service.NewJobService(repo)
	w := worker.New(repo, invoker, lock, cfg.WorkerConcurrency, zl)

	if cfg.ProcessInterval > 0 {
		sched := scheduler.New(w, cfg.ProcessInterval, zl)
		if err := sched.Start(ctx); err != nil {
			zl.Fatal("scheduler", zap.Error(err))
		}
		defer sched.Stop()
	}

	handler := httptransport.NewHandler(jobSvc, w)
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httptransport.Routes(handler, zl),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		zl.Info("server started",
			zap.String("addr", cfg.HTTPAddr),
			zap.String("llm_backend", cfg.LLMBackend),
			zap.Int("worker_concurrency", cfg.WorkerConcurrency),
			zap.Duration("process_interval", cfg.ProcessInterval),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("http server", zap.Error(err))
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zl.Error("shutdown", zap.Error(err))
	}
	zl.Info("server stopped")
}

func newInvoker(ctx context.Context, cfg *config.Config) (llm.Invoker, error) {
	switch cfg.LLMBackend {
	case config.BackendGemini:
		return llm.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	default:
		return llm.NewHuggingFace(cfg.HFEndpoint, cfg.HFAPIKey), nil
	}
}
