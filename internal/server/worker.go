package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/tartampluch/go-age/internal/config"
	"github.com/tartampluch/go-age/internal/engine"
)

// syncLoop refreshes the feed immediately, then on every interval tick.
// A failed sync keeps the previous feed and is retried on the next tick.
func (s *Server) syncLoop(ctx context.Context) error {
	log := slog.With(config.LogKeyComponent, config.CompWorker)

	_ = s.Sync(ctx)

	interval := s.settings.Interval
	if interval <= config.DisabledSyncInterval {
		interval = config.DefaultSyncInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Info(config.MsgWorkerStart, config.LogKeyInterval, interval)

	for {
		select {
		case <-ctx.Done():
			log.Info(config.MsgWorkerStop)
			return nil
		case <-ticker.C:
			_ = s.Sync(ctx)
		}
	}
}

// Sync loads the configured contacts, rebuilds the feed and swaps it into the cache.
func (s *Server) Sync(ctx context.Context) error {
	data, err := s.buildFeed(ctx)
	if err != nil {
		s.metrics.IncrementSyncs(false)
		slog.Error(config.ErrSyncFailed,
			config.LogKeyComponent, config.CompWorker,
			config.LogKeyError, err,
		)
		return fmt.Errorf("%s: %w", config.ErrSyncFailed, err)
	}
	s.Update(data)
	s.metrics.IncrementSyncs(true)
	return nil
}

func (s *Server) buildFeed(ctx context.Context) ([]byte, error) {
	contacts, err := s.loader.Load(ctx, sourceOf(s.settings.Sync))
	if err != nil {
		return nil, err
	}
	data, _, err := engine.BuildCalendar(contacts, s.clock.Now(), engine.CalendarOptions{
		Reminder: s.settings.Sync.Reminder,
		Summary:  s.catalog.Summary,
	})
	return data, err
}

func sourceOf(s config.SyncSettings) engine.Source {
	return engine.Source{
		Mode:      s.Mode,
		LocalPath: s.File,
		WebURL:    s.URL,
		WebUser:   s.User,
		WebPass:   s.Password,
	}
}
