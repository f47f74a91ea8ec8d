package local

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/tidwall/gjson"

	"github.com/driftlock/syncenv/pkg/httpclient"
	"github.com/driftlock/syncenv/pkg/platform"
)

// HTTPAccountQuerier implements platform.AccountQuerier against a status
// endpoint returning {"state": "<accountState>"}. Change notifications are
// synthesized by polling: a notification is delivered whenever two
// consecutive probes disagree.
type HTTPAccountQuerier struct {
	endpoint string
	interval time.Duration
	client   httpclient.Client
	logger   *slog.Logger

	mu   sync.Mutex
	last platform.AccountState
}

// NewHTTPAccountQuerier creates a querier probing the given endpoint
func NewHTTPAccountQuerier(endpoint string, interval time.Duration, logger *slog.Logger) *HTTPAccountQuerier {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &HTTPAccountQuerier{
		endpoint: endpoint,
		interval: interval,
		client:   httpclient.NewDefaultClient(0),
		logger:   logger,
	}
}

// Query probes the endpoint once and returns the reported account state
func (q *HTTPAccountQuerier) Query(ctx context.Context) (platform.AccountState, error) {
	body, err := q.client.Get(ctx, q.endpoint)
	if err != nil {
		return "", fmt.Errorf("account probe failed: %w", err)
	}

	state := gjson.GetBytes(body, "state").String()
	if state == "" {
		return "", fmt.Errorf("account probe returned no state: %q", string(body))
	}
	return platform.AccountState(state), nil
}

// Changes starts the poll loop and returns its notification channel. Probe
// failures are logged and skipped; they never synthesize a change. The
// channel closes when ctx is cancelled.
func (q *HTTPAccountQuerier) Changes(ctx context.Context) (<-chan struct{}, error) {
	ch := make(chan struct{}, 1)

	go func() {
		defer close(ch)
		ticker := time.NewTicker(q.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				state, err := q.Query(ctx)
				if err != nil {
					q.logger.Debug("account change probe failed", "error", err)
					continue
				}

				q.mu.Lock()
				changed := q.last != "" && q.last != state
				q.last = state
				q.mu.Unlock()

				if !changed {
					continue
				}

				select {
				case ch <- struct{}{}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return ch, nil
}
