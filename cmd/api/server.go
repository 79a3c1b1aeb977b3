package main

import (
	"context"
	"crypto/tls"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/5w1tchy/catalog-api/internal/api/handlers/books"
	"github.com/5w1tchy/catalog-api/internal/api/httpx"
	mw "github.com/5w1tchy/catalog-api/internal/api/middlewares"
	"github.com/5w1tchy/catalog-api/internal/api/router"
	"github.com/5w1tchy/catalog-api/internal/cache/statscache"
	"github.com/5w1tchy/catalog-api/internal/config"
	"github.com/5w1tchy/catalog-api/internal/repository/sqlconnect"
	jwtutil "github.com/5w1tchy/catalog-api/internal/security/jwt"
	"github.com/5w1tchy/catalog-api/internal/storage/s3"
)

func main() {
	config.LoadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}
	for _, w := range cfg.Warnings() {
		log.Printf("[config] WARNING: %s", w)
	}
	httpx.ExposeDetails(cfg.IsDevelopment())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sqlconnect.ConnectDB(ctx, cfg.DatabaseURL, sqlconnect.DefaultPool)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()
	log.Println("[db] connected")

	deps := router.Deps{DB: db}
	global := []mw.Middleware{
		mw.RequestID,
		mw.AccessLog,
		mw.Recovery,
		mw.CORS(cfg.CORSOrigins),
		mw.ResponseTime,
		mw.HPP(mw.DefaultHPPOptions()),
	}

	if rdb := connectRedis(ctx, cfg); rdb != nil {
		defer rdb.Close()
		deps.Cache = statscache.New(rdb, cfg.StatsCacheTTL)
		deps.WriteLimit = mw.NewRedisSlidingWindow(rdb, cfg.RateLimitHourly, time.Hour, mw.PerIPKey("sw")).Middleware
		global = append(global, mw.NewRedisTokenBucket(rdb, cfg.RateLimitRPS, cfg.RateLimitBurst, mw.PerIPKey("tb")).Middleware)
	}

	if cfg.S3.Configured() {
		covers, err := s3.NewClient(ctx, cfg.S3)
		if err != nil {
			log.Fatalf("cover storage: %v", err)
		}
		deps.Covers = books.CoverStorage(covers)
	}

	if cfg.JWTSecret != "" {
		deps.Tokens = jwtutil.NewSigner(jwtutil.Config{Secret: []byte(cfg.JWTSecret), ClockSkew: cfg.ClockSkew})
	}

	global = append(global,
		mw.BodySizeLimit(cfg.MaxBodySize),
		mw.Compression,
		mw.SecurityHeaders(cfg.IsProduction()),
	)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mw.Chain(router.Router(deps), global...),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
		TLSConfig:         &tls.Config{MinVersion: tls.VersionTLS12},
	}

	errc := make(chan error, 1)
	go func() {
		log.Printf("[server] listening on %s (env=%s)", cfg.Addr, cfg.Env)
		if cfg.TLSCert != "" {
			errc <- srv.ListenAndServeTLS(cfg.TLSCert, cfg.TLSKey)
			return
		}
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("[server] %v", err)
		}
	case <-ctx.Done():
		log.Println("[server] shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(sctx); err != nil {
			log.Printf("[server] shutdown: %v", err)
		}
	}
}

// connectRedis returns nil when Redis is not configured or unreachable; the
// API then runs without stats caching and rate limiting.
func connectRedis(ctx context.Context, cfg config.Config) *redis.Client {
	if !cfg.RedisEnabled() {
		return nil
	}
	opt, err := cfg.RedisOptions()
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	rdb := redis.NewClient(opt)

	pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pctx).Err(); err != nil {
		log.Printf("[redis] ping failed, continuing without cache and rate limits: %v", err)
		_ = rdb.Close()
		return nil
	}
	log.Println("[redis] connected")
	return rdb
}
