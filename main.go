package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cryptomaster/analysis"
	"cryptomaster/cache"
	"cryptomaster/config"
	"cryptomaster/database"
	"cryptomaster/handlers"
	"cryptomaster/httpclient"
	"cryptomaster/locale"
	"cryptomaster/settings"
	"cryptomaster/update"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Load()
	setupLogger(cfg.LogLevel)

	db, err := database.Open(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}

	localeStore, err := locale.NewStore(database.NewPreferenceStore(db))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load language preference")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := httpclient.New(httpclient.Options{
		Timeout:        cfg.HTTPTimeout,
		RequestsPerSec: cfg.RequestsPerSec,
	})

	var source analysis.Source = analysis.NewMockSource(time.Now().UnixNano())
	if cfg.PriceSource == "coingecko" {
		source = analysis.NewCoinGeckoSource(source, client, cfg.CoinGeckoURL)
	}
	aggregator := analysis.NewAggregator(source)

	analysisCache, closeCache := newCache(ctx, cfg)
	defer closeCache()

	checker := update.NewChecker()
	if cfg.UpdateManifestURL != "" {
		checker.ManifestURL = cfg.UpdateManifestURL
		checker.Client = client
	}
	poller := update.NewPoller(checker, cfg.UpdateInterval)
	go poller.Start(ctx)

	h := handlers.New(handlers.Deps{
		Query:      cache.NewQuery(analysisCache, aggregator),
		Aggregator: aggregator,
		Locale:     localeStore,
		Settings:   settings.NewService(db),
		Updates:    poller,
	})

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	r.Use(gin.Recovery(), handlers.RequestLogger())
	h.Register(r)

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("Starting CryptoMaster server")
		log.Info().Msgf("Dashboard: http://localhost:%s/dashboard", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server shutdown error")
	}
}

func setupLogger(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).Level(lvl)
}

// newCache falls back to the in-memory cache when redis is unreachable.
func newCache(ctx context.Context, cfg *config.Config) (cache.Cache, func()) {
	if cfg.CacheBackend == "redis" {
		rc, err := cache.NewRedis(ctx, cache.RedisOptions{
			Addr:      cfg.RedisAddr,
			DB:        cfg.RedisDB,
			StaleTime: cfg.StaleTime,
			TTL:       cfg.CacheTTL,
		})
		if err == nil {
			log.Info().Str("addr", cfg.RedisAddr).Msg("Using redis analysis cache")
			return rc, func() { rc.Close() }
		}
		log.Warn().Err(err).Msg("redis unavailable, using in-memory analysis cache")
	}
	return cache.NewMemory(cfg.StaleTime), func() {}
}
