package gallery

import (
	"context"
	"fmt"

	"marianails/internal/metrics"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

// Watcher invalidates the service's cached listing whenever the gallery
// directory changes.
type Watcher struct {
	svc *Service
	fsw *fsnotify.Watcher
}

// NewWatcher starts watching the service directory. Run must be called to
// process events.
func NewWatcher(svc *Service) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(svc.Dir()); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", svc.Dir(), err)
	}
	return &Watcher{svc: svc, fsw: fsw}, nil
}

// Run processes events until ctx is cancelled, then closes the watcher.
func (w *Watcher) Run(ctx context.Context) {
	log.Info().Str("dir", w.svc.Dir()).Msg("gallery watcher started")
	defer w.fsw.Close()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("gallery watcher stopping")
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if ev.Op == fsnotify.Chmod {
				continue
			}
			if err := w.svc.Invalidate(ctx); err != nil {
				log.Error().Err(err).Str("event", ev.String()).Msg("failed to invalidate gallery listing")
				continue
			}
			metrics.CacheInvalidationsTotal.Inc()
			log.Debug().Str("event", ev.String()).Msg("gallery listing invalidated")
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.Error().Err(err).Msg("gallery watcher error")
		}
	}
}
