package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	progin "github.com/scopedlabs/prokit/adapters/gin"
	"github.com/scopedlabs/prokit/adapters/ginutil"
	"github.com/scopedlabs/prokit/config"
	"github.com/scopedlabs/prokit/core"
	"github.com/scopedlabs/prokit/entitlements"
	memorylimiter "github.com/scopedlabs/prokit/ratelimit/memory"
	redislimiter "github.com/scopedlabs/prokit/ratelimit/redis"
	pgstore "github.com/scopedlabs/prokit/storage/postgres"
	redisstore "github.com/scopedlabs/prokit/storage/redis"
	"github.com/scopedlabs/prokit/storage/supabase"
)

var configPath = flag.String("config", "", "path to configuration file (optional)")

func main() {
	flag.Parse()

	log := logrus.New()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.WithError(err).Fatal("load configuration")
	}
	if err := cfg.Validate(); err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}
	setupLogging(log, cfg.Logging)

	ctx := context.Background()

	var store entitlements.Store
	switch {
	case cfg.Supabase.URL != "" && cfg.Supabase.ServiceKey != "":
		if !supabase.IsServiceKey(cfg.Supabase.ServiceKey) {
			log.Warn("supabase key does not carry the service_role claim; entitlement writes will likely be rejected")
		}
		store = supabase.NewEntitlementStore(cfg.Supabase.URL, cfg.Supabase.ServiceKey)
	default:
		pool, err := pgxpool.New(ctx, cfg.Postgres.DSN)
		if err != nil {
			log.WithError(err).Fatal("connect postgres")
		}
		defer pool.Close()
		store = pgstore.NewEntitlementStore(pool)
	}

	var (
		limiter ginutil.RateLimiter
		events  core.EventCache
	)
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		limits := map[string]redislimiter.Limit{}
		for k, v := range memorylimiter.DefaultLimits() {
			limits[k] = redislimiter.Limit{Limit: v.Limit, Window: v.Window}
		}
		limiter = redislimiter.New(rdb, limits)
		events = redisstore.NewEventCache(rdb, "", 0)
	} else {
		limiter = memorylimiter.New(memorylimiter.DefaultLimits())
	}

	svc := core.NewService(core.Config{
		SiteOrigin:    cfg.Site.Origin,
		WebhookSecret: cfg.Stripe.WebhookSecret,
		Checkout:      core.NewStripeCheckout(cfg.Stripe.SecretKey),
		Store:         store,
		Events:        events,
		Log:           log,
	})

	if cfg.Logging.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := progin.New(svc, limiter, log)

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.WithField("addr", cfg.Server.Addr).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("shutdown")
	}
}

func setupLogging(log *logrus.Logger, cfg config.LoggingConfig) {
	if lvl, err := logrus.ParseLevel(cfg.Level); err == nil {
		log.SetLevel(lvl)
	}
	if cfg.Format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	}
}
