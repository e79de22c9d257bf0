// internal/pricefeed/refresher_test.go
package pricefeed

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chainpilot-wallet/internal/domain"
	"chainpilot-wallet/internal/util"
)

func TestRefresherCountdownAndFetch(t *testing.T) {
	var fetches atomic.Int32
	client, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fetches.Add(1)
		_, _ = w.Write([]byte(feedBody))
	})

	refresher := NewRefresher(client, "usd", 3, util.GetLogger())
	refresher.tick = 10 * time.Millisecond // speed the countdown up for the test

	var mu sync.Mutex
	var ticks []int
	refresher.OnTick(func(remaining int) {
		mu.Lock()
		ticks = append(ticks, remaining)
		mu.Unlock()
	})

	var snapshots atomic.Int32
	refresher.OnSnapshot(func(s *domain.PriceSnapshot) {
		require.NotNil(t, s)
		snapshots.Add(1)
	})

	refresher.Start(context.Background())
	time.Sleep(100 * time.Millisecond)
	refresher.Stop()

	// Initial fetch plus at least one countdown-driven refetch.
	assert.GreaterOrEqual(t, fetches.Load(), int32(2))
	assert.GreaterOrEqual(t, snapshots.Load(), int32(2))

	mu.Lock()
	defer mu.Unlock()
	require.NotEmpty(t, ticks)
	// The countdown decrements each tick and jumps back to the full
	// interval when it would hit zero: 2, 1, 3, 2, 1, 3, ...
	assert.Equal(t, 2, ticks[0])
	for i, remaining := range ticks {
		assert.GreaterOrEqual(t, remaining, 1)
		assert.LessOrEqual(t, remaining, 3)
		if i == 0 {
			continue
		}
		if ticks[i-1] > 1 {
			assert.Equal(t, ticks[i-1]-1, remaining)
		} else {
			assert.Equal(t, 3, remaining)
		}
	}
}

func TestRefresherSwallowsFetchFailures(t *testing.T) {
	var fail atomic.Bool
	client, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(feedBody))
	})

	// Seed the cache with one good fetch, then fail everything.
	initial, err := client.FetchPrices(context.Background(), "usd")
	require.NoError(t, err)
	fail.Store(true)

	refresher := NewRefresher(client, "usd", 1, util.GetLogger())
	refresher.tick = 10 * time.Millisecond

	refresher.Start(context.Background())
	time.Sleep(60 * time.Millisecond)
	refresher.Stop()

	// Failed refreshes left the last good snapshot alone.
	assert.Equal(t, initial, client.LastKnownSnapshot())
}

func TestRefresherStopIsIdempotent(t *testing.T) {
	client, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(feedBody))
	})

	refresher := NewRefresher(client, "usd", 60, util.GetLogger())
	refresher.tick = 10 * time.Millisecond

	refresher.Start(context.Background())
	refresher.Stop()
	refresher.Stop() // second stop must not panic or block
}
