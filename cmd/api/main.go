package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/homestylefoods/storefront-backend/api/controllers"
	"github.com/homestylefoods/storefront-backend/api/routes"
	"github.com/homestylefoods/storefront-backend/api/views"
	"github.com/homestylefoods/storefront-backend/internal/admin"
	"github.com/homestylefoods/storefront-backend/internal/auth"
	"github.com/homestylefoods/storefront-backend/internal/cart"
	"github.com/homestylefoods/storefront-backend/internal/catalog"
	"github.com/homestylefoods/storefront-backend/internal/checkout"
	"github.com/homestylefoods/storefront-backend/internal/session"
	"github.com/homestylefoods/storefront-backend/pkg/config"
	"github.com/homestylefoods/storefront-backend/pkg/logger"
	"github.com/homestylefoods/storefront-backend/pkg/metrics"
	"github.com/homestylefoods/storefront-backend/pkg/notify"
	"github.com/homestylefoods/storefront-backend/pkg/redis"
	"github.com/homestylefoods/storefront-backend/pkg/storage"
)

const shutdownTimeout = 15 * time.Second

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	logg := logger.New(logger.Options{
		ServiceName: "storefront-api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logg); err != nil {
		logg.Error(ctx, "server exited", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logg *logger.Logger) (err error) {
	var cleanup []func() error
	defer func() {
		for i := len(cleanup) - 1; i >= 0; i-- {
			err = multierr.Append(err, cleanup[i]())
		}
	}()

	// Session store: Redis when configured, memory otherwise. The memory
	// fallback keeps a single dev instance working without infrastructure.
	var sessionStore session.Store
	var pinger controllers.SessionPinger
	if cfg.Redis.Configured() {
		redisClient, redisErr := redis.New(ctx, cfg.Redis)
		if redisErr != nil {
			return redisErr
		}
		cleanup = append(cleanup, redisClient.Close)
		pinger = redisClient

		sessionStore, err = session.NewRedisStore(redisClient, cfg.Session.TTL)
		if err != nil {
			return err
		}
		logg.Info(ctx, "sessions backed by redis")
	} else {
		sessionStore = session.NewMemoryStore()
		logg.Warn(ctx, "redis not configured, sessions are in-memory")
	}

	manager, err := session.NewManager(cfg.Session, sessionStore, logg)
	if err != nil {
		return err
	}

	// Order and contact events degrade to no-ops when Pub/Sub is down or
	// not configured; the storefront must keep selling either way.
	var notifier *notify.Notifier
	if cfg.PubSub.Configured() {
		notifier, err = notify.New(ctx, cfg.PubSub, logg)
		if err != nil {
			logg.Warn(ctx, "pubsub unavailable, order events disabled")
			notifier = nil
			err = nil
		} else {
			cleanup = append(cleanup, notifier.Close)
		}
	}

	var files storage.Store
	if cfg.GCS.Configured() {
		gcsStore, gcsErr := storage.NewGCS(ctx, cfg.GCS)
		if gcsErr != nil {
			return gcsErr
		}
		cleanup = append(cleanup, gcsStore.Close)
		files = gcsStore
		logg.Info(ctx, "uploads backed by gcs")
	} else {
		diskStore, diskErr := storage.NewDisk(cfg.Uploads.Dir)
		if diskErr != nil {
			return diskErr
		}
		files = diskStore
	}

	store := catalog.NewSeededStore()

	engine, err := cart.NewEngine(store)
	if err != nil {
		return err
	}

	authSvc, err := auth.NewService(auth.NewStore(), cfg.Password, cfg.Admin, logg)
	if err != nil {
		return err
	}
	if err := authSvc.SeedAdmin(ctx); err != nil {
		return err
	}

	checkoutSvc, err := checkout.NewService(notifier, logg)
	if err != nil {
		return err
	}

	adminSvc, err := admin.NewService(authSvc, store, files, cfg.Uploads, logg)
	if err != nil {
		return err
	}

	renderer, err := views.NewRenderer()
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	router := routes.New(routes.Deps{
		View: &controllers.View{
			Renderer: renderer,
			Manager:  manager,
			Admins:   authSvc,
			Logg:     logg,
		},
		Catalog:     store,
		CartEngine:  engine,
		Auth:        authSvc,
		Checkout:    checkoutSvc,
		Admin:       adminSvc,
		Contact:     notifier,
		SessionMgr:  manager,
		Pinger:      pinger,
		Metrics:     metrics.NewHTTPMetrics(registry),
		Registry:    registry,
		Logg:        logg,
		UploadsDir:  cfg.Uploads.Dir,
		MaxUploadMB: cfg.Uploads.MaxUploadMB,
	})

	server := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logg.Info(logg.WithField(ctx, "port", cfg.App.Port), "storefront listening")
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logg.Info(ctx, "shutdown signal received")
	case serveErr := <-errCh:
		if serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			return serveErr
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
