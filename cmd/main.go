package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"bazaar/internal/config"
	httpapi "bazaar/internal/http"
	"bazaar/internal/repository"
	"bazaar/internal/service"
	"bazaar/pkg/cache"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	if cfg.IsProduction() {
		log.Logger = log.Logger.Level(zerolog.InfoLevel)
	} else {
		log.Logger = zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger()
	}

	var (
		store repository.Store
		tx    repository.TxManager
	)
	if cfg.DatabaseURL != "" {
		pg, err := repository.OpenPostgres(cfg.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("connect postgres")
		}
		defer pg.Close()
		store = pg
		tx = repository.NewPostgresTx(pg)
		log.Info().Msg("using postgres storage")
	} else {
		mem := repository.NewMemoryStore()
		store = mem
		tx = repository.NewMemoryTx(mem)
		log.Warn().Msg("DATABASE_URL not set, using in-memory storage")
	}

	var lists *cache.ProductCache
	if cfg.RedisAddr != "" {
		rdb, err := cache.Dial(cfg.RedisAddr)
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, product list cache disabled")
		} else {
			defer rdb.Close()
			lists = cache.New(rdb, cfg.CacheTTL)
			log.Info().Str("addr", cfg.RedisAddr).Msg("product list cache enabled")
		}
	}

	usersSvc := service.NewUserService(store)
	catalogSvc := service.NewCatalogService(store)
	ordersSvc := service.NewOrderService(store, tx)
	ledgerSvc := service.NewLedgerService(store, tx)

	srv := httpapi.NewServer(usersSvc, catalogSvc, ordersSvc, ledgerSvc, lists, log.Logger)

	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: srv.Engine(),
	}

	go func() {
		log.Info().Str("addr", httpServer.Addr).Msg("HTTP server listening")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}
}
