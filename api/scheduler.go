/*
scheduler.go - Periodic rule book reload

PURPOSE:
  Several server instances can share one rule-set store. A document
  published through one instance becomes visible to the others when their
  scheduler reloads the store.

DESIGN:
  - Runs a background goroutine with configurable check interval
  - Reloads every stored document into the registry
  - A year removed from the store is dropped, or falls back to its
    embedded or directory table
  - A failed reload keeps the books already loaded

CONFIGURATION:
  - CheckInterval: How often to reload (default: 5 minutes)
  - Enabled: Whether scheduler is active (default: true)

USAGE:
  scheduler := NewReloadScheduler(handler)
  scheduler.Start()
  // ... later
  scheduler.Stop()

SEE ALSO:
  - factory/registry.go: LoadStore
  - handlers.go: PutRuleBook (publication on one instance)
*/
package api

import (
	"context"
	"sync"
	"time"
)

// ReloadScheduler reloads the registry from its store on a ticker.
type ReloadScheduler struct {
	Handler       *Handler
	CheckInterval time.Duration
	Enabled       bool

	ticker *time.Ticker
	stop   chan struct{}
	wg     sync.WaitGroup
	mu     sync.Mutex
}

// NewReloadScheduler creates a new scheduler.
func NewReloadScheduler(handler *Handler) *ReloadScheduler {
	return &ReloadScheduler{
		Handler:       handler,
		CheckInterval: 5 * time.Minute,
		Enabled:       true,
	}
}

// Start begins the scheduler.
func (rs *ReloadScheduler) Start() {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	if !rs.Enabled || rs.ticker != nil {
		return
	}

	rs.ticker = time.NewTicker(rs.CheckInterval)
	rs.stop = make(chan struct{})
	rs.wg.Add(1)
	go rs.run(rs.ticker.C, rs.stop)

	rs.Handler.Logger.Info("reload scheduler started", "interval", rs.CheckInterval)
}

// Stop stops the scheduler and waits for a reload in progress.
func (rs *ReloadScheduler) Stop() {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	if rs.ticker != nil {
		rs.ticker.Stop()
		close(rs.stop)
		rs.wg.Wait()
		rs.ticker = nil
		rs.Handler.Logger.Info("reload scheduler stopped")
	}
}

func (rs *ReloadScheduler) run(tick <-chan time.Time, stop <-chan struct{}) {
	defer rs.wg.Done()

	for {
		select {
		case <-tick:
			rs.Reload(context.Background())
		case <-stop:
			return
		}
	}
}

// Reload loads the store once and refreshes the rule book gauge.
func (rs *ReloadScheduler) Reload(ctx context.Context) error {
	h := rs.Handler
	if err := h.Registry.LoadStore(ctx); err != nil {
		h.Logger.Warn("rule book reload failed", "error", err)
		return err
	}
	h.Metrics.setRuleBooks(len(h.Registry.Years()))
	h.Logger.Debug("rule books reloaded", "years", h.Registry.Years())
	return nil
}
