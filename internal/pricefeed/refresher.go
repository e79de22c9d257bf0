// internal/pricefeed/refresher.go
package pricefeed

import (
	"context"
	"log/slog"
	"time"

	"chainpilot-wallet/internal/domain"
)

// Refresher drives the periodic price refresh: a one-second ticker counts
// down from the configured interval, and at zero the countdown resets and
// a fetch is kicked off. Fetch failures are logged and swallowed; the
// cached snapshot stays as it was and the next cycle proceeds normally.
type Refresher struct {
	client     *Client
	vsCurrency string
	interval   int // seconds between fetches
	logger     *slog.Logger

	onTick     func(remaining int)
	onSnapshot func(*domain.PriceSnapshot)

	tick   time.Duration // wall-clock length of one countdown tick
	cancel context.CancelFunc
	done   chan struct{}
}

// NewRefresher creates a stopped refresher. intervalSeconds must be > 0.
func NewRefresher(client *Client, vsCurrency string, intervalSeconds int, logger *slog.Logger) *Refresher {
	return &Refresher{
		client:     client,
		vsCurrency: vsCurrency,
		interval:   intervalSeconds,
		logger:     logger,
		tick:       time.Second,
	}
}

// OnTick registers a countdown callback invoked once per second with the
// seconds remaining until the next fetch. Set before Start.
func (r *Refresher) OnTick(fn func(remaining int)) {
	r.onTick = fn
}

// OnSnapshot registers a callback invoked with every successfully fetched
// snapshot. Set before Start.
func (r *Refresher) OnSnapshot(fn func(*domain.PriceSnapshot)) {
	r.onSnapshot = fn
}

// Start launches the refresh loop: an immediate initial fetch, then the
// countdown cycle. Calling Start on a running refresher is a no-op.
func (r *Refresher) Start(ctx context.Context) {
	if r.cancel != nil {
		return
	}
	ctx, r.cancel = context.WithCancel(ctx)
	r.done = make(chan struct{})

	go r.fetch(ctx)
	go r.run(ctx)
}

// Stop cancels the loop and waits for it to wind down. In-flight fetches
// are abandoned with the context.
func (r *Refresher) Stop() {
	if r.cancel == nil {
		return
	}
	r.cancel()
	<-r.done
	r.cancel = nil
}

func (r *Refresher) run(ctx context.Context) {
	defer close(r.done)

	ticker := time.NewTicker(r.tick)
	defer ticker.Stop()

	remaining := r.interval
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			remaining--
			if remaining <= 0 {
				remaining = r.interval
				// Fetch in its own goroutine so a slow feed never stalls
				// the countdown.
				go r.fetch(ctx)
			}
			if r.onTick != nil {
				r.onTick(remaining)
			}
		}
	}
}

func (r *Refresher) fetch(ctx context.Context) {
	snapshot, err := r.client.FetchPrices(ctx, r.vsCurrency)
	if err != nil {
		r.logger.Warn("price refresh failed", "error", err)
		return
	}
	if r.onSnapshot != nil {
		r.onSnapshot(snapshot)
	}
}
