package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"flightdeck.io/console/internal/audit"
	"flightdeck.io/console/internal/config"
	"flightdeck.io/console/internal/guard"
	"flightdeck.io/console/internal/httpapi"
	"flightdeck.io/console/internal/obs"
	"flightdeck.io/console/internal/screens"
	"flightdeck.io/console/internal/session"
	"flightdeck.io/console/internal/travel/remote"
)

var (
	version = "0.3.1"
	commit  = "dev"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	obs.Init()
	obs.InitBuildInfo(version, commit)

	client := remote.NewClient(cfg.APIBaseURL,
		remote.WithHTTPClient(&http.Client{Timeout: cfg.APITimeout}),
		remote.WithRateLimit(cfg.APIRateLimit, cfg.APIRateLimit),
	)

	var ring session.Keyring = session.NewMemoryKeyring()
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer rdb.Close()
		ring = session.NewRedisKeyring(rdb, "console", cfg.SessionTTL)
	}
	sessions := session.NewStore(ring, client)

	var recorder audit.Recorder = audit.Nop{}
	var probe httpapi.ReadyProbe
	if cfg.AuditDSN != "" {
		store, err := audit.Open(cfg.AuditDSN)
		if err != nil {
			log.Fatalf("open audit db: %v", err)
		}
		defer store.Close()
		recorder = store
		probe = httpapi.ReadyProbe{DB: store.DB()}
	}

	api := httpapi.New(httpapi.Deps{
		Sessions:          sessions,
		Guard:             guard.New(sessions),
		Registry:          screens.NewRegistry(client),
		Recorder:          recorder,
		Probe:             probe,
		Version:           version,
		RateLimitRequests: cfg.RateLimitRequests,
		RateLimitWindow:   cfg.RateLimitWindow,
	})

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           api.Handler(),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Printf("Starting flightdeck-console %s on %s", version, srv.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop
	log.Println("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	_ = srv.Shutdown(ctx)
	log.Println("Stopped")
}
