package worker

import (
	"time"

	"github.com/trade-journal/internal/middleware"
	"github.com/trade-journal/internal/service"
)

// OpenTradesWorker periodically rederives the metrics of open trades so
// their days_held keeps tracking the wall clock. It never touches the
// equity ledger: open trades carry no profit_loss.
type OpenTradesWorker struct {
	journalService *service.JournalService
	interval       time.Duration
	stopChan       chan struct{}
}

// NewOpenTradesWorker creates a new open-trade refresh worker
func NewOpenTradesWorker(journalService *service.JournalService, interval time.Duration) *OpenTradesWorker {
	if interval <= 0 {
		interval = time.Hour
	}
	return &OpenTradesWorker{
		journalService: journalService,
		interval:       interval,
		stopChan:       make(chan struct{}),
	}
}

// Start begins the refresh loop
func (w *OpenTradesWorker) Start() {
	middleware.LogInfo("Open-trades worker started with interval: %v", w.interval)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.refresh()
		case <-w.stopChan:
			middleware.LogInfo("Open-trades worker stopped")
			return
		}
	}
}

// Stop stops the refresh loop
func (w *OpenTradesWorker) Stop() {
	close(w.stopChan)
}

func (w *OpenTradesWorker) refresh() {
	count, err := w.journalService.RefreshOpenTrades()
	if err != nil {
		middleware.LogError("Open-trades refresh failed: %v", err)
		return
	}
	if count > 0 {
		middleware.LogInfo("Refreshed metrics for %d open trades", count)
	}
}
