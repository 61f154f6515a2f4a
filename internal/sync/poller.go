package sync

import (
	"context"
	"log/slog"
	"time"

	"trak/internal/api"
)

const healthProbeTimeout = 3 * time.Second

// Poller refreshes a Store from the API on a fixed interval.
type Poller struct {
	client   *api.Client
	store    *Store
	interval time.Duration
	logger   *slog.Logger
}

func NewPoller(client *api.Client, store *Store, interval time.Duration, logger *slog.Logger) *Poller {
	if logger == nil {
		logger = slog.Default()
	}
	if interval <= 0 {
		interval = 10 * time.Second
	}
	return &Poller{client: client, store: store, interval: interval, logger: logger}
}

// Run polls until ctx is cancelled. It polls once immediately, then on
// every tick. Failed polls are logged and skipped; the snapshot keeps
// its previous contents.
func (p *Poller) Run(ctx context.Context) {
	p.logger.Info("poller starting", "interval", p.interval)

	if err := p.Poll(ctx); err != nil {
		p.logger.Warn("initial poll failed", "error", err)
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("poller stopping")
			return
		case <-ticker.C:
			if err := p.Poll(ctx); err != nil {
				p.logger.Warn("poll failed", "error", err)
			}
		}
	}
}

// Poll probes health, fetches the project list, and replaces the
// snapshot. A fetch that lands after a newer local write still wins;
// there is no cancellation of in-flight reads.
func (p *Poller) Poll(ctx context.Context) error {
	probeCtx, cancel := context.WithTimeout(ctx, healthProbeTimeout)
	defer cancel()
	if err := p.client.Ping(probeCtx); err != nil {
		return err
	}

	projects, err := p.client.ListProjects(ctx)
	if err != nil {
		return err
	}

	p.store.Replace(projects)
	p.logger.Debug("snapshot replaced", "projects", len(projects))
	return nil
}
