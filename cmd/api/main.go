package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"marianails/internal/config"
	httpx "marianails/internal/http"
	"marianails/internal/services/gallery"
	"marianails/internal/store/fsdir"
	"marianails/internal/store/rediscache"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Load()
	config.SetupLogger(cfg.App)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	opts := gallery.Options{
		DefaultPerPage: cfg.Gallery.PerPage,
		MaxPerPage:     cfg.Gallery.MaxPerPage,
	}

	// Optional listing cache
	if cfg.CacheEnabled() {
		rdb, err := rediscache.Connect(ctx, cfg.Cache.RedisAddr, cfg.Cache.ConnectTimeout)
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, serving listings uncached")
		} else {
			defer rdb.Close()
			opts.Cache = rediscache.New(rdb, "", cfg.Cache.TTL)
		}
	}

	svc := gallery.NewService(cfg.GalleryDir(), fsdir.New(), opts)

	if opts.Cache != nil && cfg.Cache.Watch {
		w, err := gallery.NewWatcher(svc)
		if err != nil {
			log.Warn().Err(err).Msg("gallery watcher disabled; cache relies on TTL only")
		} else {
			go w.Run(ctx)
		}
	}

	r := httpx.NewRouter(httpx.RouterDependencies{
		Config:         cfg,
		GalleryService: svc,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		imagesPath, _ := filepath.Abs(cfg.ImagesDir())
		log.Info().
			Str("images_path", imagesPath).
			Bool("cache", opts.Cache != nil).
			Msgf("gallery server listening on http://localhost:%s", cfg.App.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	cancel()
	ctx2, cancel2 := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	log.Info().Msg("server stopped")
}
