package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"troywings/internal/db"
	dbmigrate "troywings/internal/db/migrate"
	"troywings/internal/platform/config"
	"troywings/internal/platform/httpserver"
	"troywings/internal/platform/logger"
	"troywings/internal/platform/metrics"
	platformredis "troywings/internal/platform/redis"
	"troywings/internal/registration/handler"
	"troywings/internal/registration/service"
	"troywings/internal/registration/store"
	"troywings/web"
)

// main wires high-level dependencies and keeps the server lifecycle small.
// Business logic lives in the internal/registration packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	if err := dbmigrate.Up(cfg.DatabaseURL); err != nil {
		log.Error("migrations failed", "error", err)
		os.Exit(1)
	}

	pool, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := platformredis.New(cfg.RedisURL)
	if err != nil {
		log.Error("redis connection failed", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	m := metrics.New()

	var users store.UserStore = store.NewPostgres(pool)
	if redisClient != nil {
		users = store.NewCached(users, redisClient.Client, cfg.ListCacheTTL, log, m)
	}

	svc := service.New(users, log,
		service.WithMetrics(m),
		service.WithDOBUpdates(cfg.AllowDOBUpdate),
	)

	templates, err := web.Templates()
	if err != nil {
		log.Error("template parsing failed", "error", err)
		os.Exit(1)
	}
	staticFS, err := web.Static()
	if err != nil {
		log.Error("static assets unavailable", "error", err)
		os.Exit(1)
	}

	router := chi.NewRouter()
	router.Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(staticFS)))
	router.Handle("/metrics", promhttp.Handler())
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := pool.PingContext(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	h := handler.New(svc, log, m, templates)
	h.Register(router)

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting registration service", "addr", cfg.Addr, "dob_updates", cfg.AllowDOBUpdate)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}
