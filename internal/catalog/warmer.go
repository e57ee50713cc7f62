package catalog

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Warmer keeps the trending lists warm in the cache so their TTL expiry
// never lands on a user request.
type Warmer struct {
	client *Client
	cron   *cron.Cron
	logger *slog.Logger
}

func NewWarmer(client *Client, logger *slog.Logger) *Warmer {
	return &Warmer{
		client: client,
		cron:   cron.New(),
		logger: logger.With("component", "catalog_warmer"),
	}
}

// Start refreshes trending movie/tv immediately and then on a fixed cadence.
// Stop the warmer via the returned cron's context on shutdown.
func (w *Warmer) Start(every time.Duration) error {
	w.refresh()

	_, err := w.cron.AddFunc("@every "+every.String(), w.refresh)
	if err != nil {
		return err
	}
	w.cron.Start()
	w.logger.Info("catalog warmer started", "interval", every)
	return nil
}

func (w *Warmer) Stop() {
	<-w.cron.Stop().Done()
	w.logger.Info("catalog warmer stopped")
}

func (w *Warmer) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, media := range []string{"movie", "tv"} {
		if err := w.client.WarmTrending(ctx, media, "week"); err != nil {
			w.logger.Warn("warm trending", "media", media, "error", err)
		}
	}
}
