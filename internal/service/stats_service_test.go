package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trade-journal/internal/models"
	"github.com/trade-journal/internal/service"
)

func fptr(v float64) *float64 { return &v }

func closedAt(id uint, profitLoss float64, exit time.Time) models.Trade {
	return models.Trade{
		ID:         id,
		ProfitLoss: fptr(profitLoss),
		ExitDate:   &exit,
		ExitPrice:  fptr(1),
		DaysHeld:   2,
	}
}

var exitJan = time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
var exitFeb = time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)

func TestComputeStatsEmptyJournal(t *testing.T) {
	stats := service.ComputeStats(nil)

	assert.Equal(t, 0, stats.TotalTrades)
	assert.Equal(t, 0.0, stats.WinRate)
	assert.Equal(t, 0.0, stats.AvgProfitLoss)
	assert.Equal(t, 0.0, stats.AvgRiskReward)
	assert.Equal(t, 0.0, stats.MaxDrawdown)
	assert.Equal(t, 0.0, stats.TotalProfitLoss)
	assert.Equal(t, 0.0, stats.AvgHoldingPeriod)
	assert.NotNil(t, stats.MonthlyPerformance)
	assert.Empty(t, stats.MonthlyPerformance)
	assert.Nil(t, stats.BestTrade)
	assert.Nil(t, stats.WorstTrade)
}

func TestComputeStatsIgnoresOpenTrades(t *testing.T) {
	trades := []models.Trade{
		{ID: 1}, // open
		closedAt(2, 100, exitJan),
		{ID: 3}, // open
	}

	stats := service.ComputeStats(trades)

	assert.Equal(t, 1, stats.TotalTrades)
	assert.Equal(t, 100.0, stats.TotalProfitLoss)
}

func TestComputeStatsFigures(t *testing.T) {
	a := closedAt(1, 200, exitJan)
	a.RiskReward = fptr(3)
	a.DaysHeld = 2
	b := closedAt(2, -50, exitJan)
	b.DaysHeld = 1
	c := closedAt(3, 100, exitFeb)
	c.RiskReward = fptr(2)
	c.DaysHeld = 3

	stats := service.ComputeStats([]models.Trade{a, b, c})

	assert.Equal(t, 3, stats.TotalTrades)
	assert.InDelta(t, 2.0/3.0, stats.WinRate, 1e-9)
	assert.InDelta(t, 250.0/3.0, stats.AvgProfitLoss, 1e-9)
	// b has no defined ratio yet still counts in the denominator.
	assert.InDelta(t, 5.0/3.0, stats.AvgRiskReward, 1e-9)
	assert.Equal(t, 250.0, stats.TotalProfitLoss)
	assert.InDelta(t, 2.0, stats.AvgHoldingPeriod, 1e-9)

	// Equity curve 200 → 150 → 250; worst decline from the 200 peak is 50.
	assert.Equal(t, 50.0, stats.MaxDrawdown)

	require.NotNil(t, stats.BestTrade)
	assert.Equal(t, uint(1), stats.BestTrade.ID)
	require.NotNil(t, stats.WorstTrade)
	assert.Equal(t, uint(2), stats.WorstTrade.ID)
}

func TestComputeStatsDrawdownFromNegativeStart(t *testing.T) {
	trades := []models.Trade{
		closedAt(1, -80, exitJan),
		closedAt(2, 30, exitJan),
	}

	stats := service.ComputeStats(trades)

	// Peak starts at zero, so an opening loss is already a drawdown.
	assert.Equal(t, 80.0, stats.MaxDrawdown)
}

func TestComputeStatsMonthlyPerformance(t *testing.T) {
	trades := []models.Trade{
		closedAt(1, 100, exitFeb),
		closedAt(2, 50, exitJan),
		closedAt(3, -20, exitFeb),
	}

	stats := service.ComputeStats(trades)

	require.Len(t, stats.MonthlyPerformance, 2)
	assert.Equal(t, "2026-01", stats.MonthlyPerformance[0].Month)
	assert.Equal(t, 50.0, stats.MonthlyPerformance[0].ProfitLoss)
	assert.Equal(t, "2026-02", stats.MonthlyPerformance[1].Month)
	assert.Equal(t, 80.0, stats.MonthlyPerformance[1].ProfitLoss)
}

func TestComputeStatsBestWorstTieBreak(t *testing.T) {
	trades := []models.Trade{
		closedAt(1, 100, exitJan),
		closedAt(2, 100, exitJan),
		closedAt(3, -40, exitJan),
		closedAt(4, -40, exitFeb),
	}

	stats := service.ComputeStats(trades)

	// Ties go to the first trade encountered in identity order.
	assert.Equal(t, uint(1), stats.BestTrade.ID)
	assert.Equal(t, uint(3), stats.WorstTrade.ID)
}

func TestComputeStatsAllLosses(t *testing.T) {
	trades := []models.Trade{
		closedAt(1, -10, exitJan),
		closedAt(2, -20, exitJan),
	}

	stats := service.ComputeStats(trades)

	assert.Equal(t, 0.0, stats.WinRate)
	assert.Equal(t, -30.0, stats.TotalProfitLoss)
	assert.Equal(t, 30.0, stats.MaxDrawdown)
}
