package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"musiclib/internal/app/favorites"
	"musiclib/internal/app/history"
	"musiclib/internal/app/likes"
	"musiclib/internal/app/playlists"
	"musiclib/internal/app/ratings"
	"musiclib/internal/config"
	"musiclib/internal/http/middleware"
	"musiclib/internal/httpapi"
	"musiclib/internal/store"
)

const shutdownTimeout = 5 * time.Second

func newHTTPHandler(cfg *config.Config, st store.Store) http.Handler {
	routes := httpapi.New(
		playlists.New(st),
		favorites.New(st),
		history.New(st),
		ratings.New(st),
		likes.New(st),
		httpapi.Options{
			Host:      cfg.Server.Host,
			Port:      cfg.Server.Port,
			StaticDir: cfg.StaticDir,
			Metrics:   cfg.Metrics,
		},
	).Routes()

	handler := middleware.CORS(cfg.CORS.AllowedOrigins)(routes)
	handler = middleware.RequestLogging()(handler)
	return middleware.Recovery()(handler)
}

// run serves HTTP while storage initializes behind the gate. A failed
// initialization or a termination signal shuts the server down.
func run(parent context.Context, cfg *config.Config) error {
	sigCtx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()
	eg, ctx := errgroup.WithContext(sigCtx)

	gate := store.NewGate()
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           newHTTPHandler(cfg, gate),
		ReadHeaderTimeout: 10 * time.Second,
	}

	var db *store.DB
	eg.Go(func() error {
		var err error
		db, err = openStore(ctx, cfg.StoreOptions(), gate)
		if err != nil {
			return fmt.Errorf("initialize storage: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		log.Info().Str("addr", srv.Addr).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	eg.Go(func() error {
		<-ctx.Done()
		log.Info().Msg("server stopping")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	err := eg.Wait()
	if db != nil {
		if cerr := db.Close(); cerr != nil {
			log.Warn().Err(cerr).Msg("close storage")
		}
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	log.Info().Msg("server stopped")
	return nil
}
