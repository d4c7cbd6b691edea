// Package metrics derives the per-trade financial fields of a journal entry.
// It is a leaf package: no I/O, no store access, no clock reads.
package metrics

import (
	"math"
	"time"

	"github.com/trade-journal/internal/models"
)

const secondsPerDay = 24 * 3600

// Compute overwrites every derived field on t except CumulativeEquity, which
// is owned by the ledger. now supplies the valuation time for trades that
// are still open; callers pass time.Now(). Calling Compute twice with the
// same inputs yields identical results.
func Compute(t *models.Trade, now time.Time) {
	// Closed/open is decided once up front; every branch below dispatches on
	// this flag plus the presence of the stop and target prices.
	closed := t.IsClosed()

	entry := Naive(t.EntryDate)
	exit := Naive(now)
	if closed {
		exit = Naive(*t.ExitDate)
	}

	// Fractional days, negative when the exit predates the entry. That is
	// accepted data, not an error.
	t.DaysHeld = exit.Sub(entry).Seconds() / secondsPerDay
	t.CapitalInvested = float64(t.Volume) * t.EntryPrice

	t.RiskPerShare = nil
	t.RiskDollars = nil
	if t.StopLoss != nil {
		var rps float64
		if t.Direction == models.DirectionBuy {
			rps = t.EntryPrice - *t.StopLoss
		} else {
			rps = *t.StopLoss - t.EntryPrice
		}
		rd := math.Abs(rps * float64(t.Volume))
		t.RiskPerShare = &rps
		t.RiskDollars = &rd
	}

	t.ProfitPerShare = nil
	t.ProfitLoss = nil
	t.ProfitDollars = nil
	if closed {
		var pps float64
		if t.Direction == models.DirectionBuy {
			pps = *t.ExitPrice - t.EntryPrice
		} else {
			pps = t.EntryPrice - *t.ExitPrice
		}
		pl := pps * float64(t.Volume)
		pd := pl
		t.ProfitPerShare = &pps
		t.ProfitLoss = &pl
		t.ProfitDollars = &pd
	}

	// Reward-to-risk ratio needs both a stop and a target. A zero-distance
	// stop is reported as 0, never as infinity.
	t.RiskReward = nil
	t.ProfitFactor = nil
	if t.StopLoss != nil && t.TargetPrice != nil {
		reward := math.Abs(*t.TargetPrice - t.EntryPrice)
		risk := math.Abs(*t.StopLoss - t.EntryPrice)
		rr := 0.0
		if risk != 0 {
			rr = reward / risk
		}
		pf := rr
		t.RiskReward = &rr
		t.ProfitFactor = &pf
	}
}

// Naive discards the offset of ts and keeps its wall-clock reading, so
// duration arithmetic is well-defined regardless of how the timestamp was
// submitted. The value is not converted between zones.
func Naive(ts time.Time) time.Time {
	return time.Date(ts.Year(), ts.Month(), ts.Day(),
		ts.Hour(), ts.Minute(), ts.Second(), ts.Nanosecond(), time.UTC)
}
