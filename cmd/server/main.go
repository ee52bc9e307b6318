package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tazhibayda/community-service/docs"
	"github.com/tazhibayda/community-service/internal/config"
	httpapi "github.com/tazhibayda/community-service/internal/http"
	applog "github.com/tazhibayda/community-service/internal/log"
	"github.com/tazhibayda/community-service/internal/metrics"
	"github.com/tazhibayda/community-service/internal/queue"
	"github.com/tazhibayda/community-service/internal/repo"
	"github.com/tazhibayda/community-service/internal/service"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace/tracer"
)

const serviceName = "community-service"

// @title Community API
// @version 1.0.0
// @description Users, communities, membership and posts.
// @schemes http https
// @BasePath /
func main() {
	cfg := config.Load()

	logger, err := applog.Init(cfg.LogDev)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg config.Config, logger *zap.Logger) error {
	if cfg.DDEnabled {
		tracer.Start(tracer.WithService(serviceName), tracer.WithEnv(cfg.Env))
		defer tracer.Stop()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	store, err := repo.NewStore(connectCtx, cfg.MongoURI, cfg.MongoDB, logger)
	if err != nil {
		return err
	}
	defer store.Close(context.Background())

	if err := store.EnsureIndexes(connectCtx); err != nil {
		return err
	}

	var limiter httpapi.Limiter
	if cfg.RateLimitPerMin > 0 {
		limiter = httpapi.NewMemoryLimiter(cfg.RateLimitPerMin, time.Minute)
		if cfg.RedisAddr != "" {
			counters := repo.NewWindowCounters(cfg.RedisAddr)
			defer counters.Close()
			if err := counters.Ping(connectCtx); err != nil {
				logger.Warn("redis unavailable, using in-process rate limiter", zap.Error(err))
			} else {
				limiter = httpapi.NewSharedLimiter(counters, cfg.RateLimitPerMin, time.Minute)
			}
		}
	}

	pub := queue.NewNoop()
	if cfg.RabbitURL != "" {
		pub, err = queue.NewRabbit(cfg.RabbitURL, cfg.Exchange)
		if err != nil {
			return err
		}
	}
	defer pub.Close()

	metrics.MustRegister()
	docs.SwaggerInfo.BasePath = "/"

	svc := service.New(store, logger)
	h := httpapi.NewHandler(svc, store, pub, logger)

	traceService := ""
	if cfg.DDEnabled {
		traceService = serviceName
	}
	r := httpapi.NewRouter(h, httpapi.RouterOptions{
		Limiter:      limiter,
		CORSOrigins:  cfg.CORSOrigins,
		TraceService: traceService,
		AccessLog:    cfg.Env != "test",
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("community-service listening", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
