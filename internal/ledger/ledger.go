// Package ledger maintains the running-equity column of the journal: for
// every trade, cumulative equity is the sum of profit_loss (null counted as
// zero) over all trades up to and including it, ordered by identity.
//
// The functions here are pure passes over an ordered snapshot. The service
// layer decides which slice of the journal to replay and persists the result
// inside a single transaction, so a partially recomputed ledger is never
// observable.
package ledger

import (
	"errors"

	"github.com/trade-journal/internal/models"
)

// ErrInconsistent signals that the snapshot handed to the ledger is not in
// strictly ascending identity order. The caller must abort the operation
// without persisting anything.
var ErrInconsistent = errors.New("ledger: trades out of identity order")

// NextEquity returns the cumulative equity of a trade that follows prev in
// identity order. prev is nil for the first trade in the journal.
func NextEquity(prev *models.Trade, t *models.Trade) float64 {
	var base float64
	if prev != nil {
		base = prev.CumulativeEquity
	}
	return base + profitLoss(t)
}

// Recompute replays the running sum over trades in slice order, starting
// from base, and writes CumulativeEquity on every element. Replaying the
// same snapshot twice produces the same column, so a failed attempt can be
// retried from scratch.
func Recompute(base float64, trades []*models.Trade) error {
	var lastID uint
	equity := base
	for _, t := range trades {
		if t.ID <= lastID {
			return ErrInconsistent
		}
		lastID = t.ID
		equity += profitLoss(t)
		t.CumulativeEquity = equity
	}
	return nil
}

func profitLoss(t *models.Trade) float64 {
	if t.ProfitLoss == nil {
		return 0
	}
	return *t.ProfitLoss
}
