package service

import (
	"sort"

	"github.com/trade-journal/internal/models"
	"github.com/trade-journal/internal/repository"
)

// Stats summarizes the closed trades of the journal.
type Stats struct {
	TotalTrades        int                  `json:"total_trades"`
	WinRate            float64              `json:"win_rate"`
	AvgProfitLoss      float64              `json:"avg_profit_loss"`
	AvgRiskReward      float64              `json:"avg_risk_reward"`
	MaxDrawdown        float64              `json:"max_drawdown"`
	TotalProfitLoss    float64              `json:"total_profit_loss"`
	AvgHoldingPeriod   float64              `json:"avg_holding_period"`
	MonthlyPerformance []MonthlyPerformance `json:"monthly_performance"`
	BestTrade          *models.Trade        `json:"best_trade"`
	WorstTrade         *models.Trade        `json:"worst_trade"`
}

// MonthlyPerformance is the profit_loss summed over one exit-date month.
type MonthlyPerformance struct {
	Month      string  `json:"month"`
	ProfitLoss float64 `json:"profit_loss"`
}

// StatsService computes portfolio statistics on demand. It holds no state;
// every call recomputes from the stored journal.
type StatsService struct {
	repo *repository.TradeRepository
}

// NewStatsService creates a new StatsService
func NewStatsService(repo *repository.TradeRepository) *StatsService {
	return &StatsService{repo: repo}
}

// Get computes statistics over the full journal.
func (s *StatsService) Get() (*Stats, error) {
	trades, err := s.repo.GetAllByIdentity()
	if err != nil {
		return nil, err
	}
	return ComputeStats(trades), nil
}

// ComputeStats derives portfolio statistics from a snapshot of the journal.
// trades must be in ascending identity order: that order fixes the equity
// sequence behind the drawdown figure and the first-encountered tie-break
// for best and worst trade. Only closed trades (non-null profit_loss) count.
func ComputeStats(trades []models.Trade) *Stats {
	stats := &Stats{MonthlyPerformance: []MonthlyPerformance{}}

	var closed []*models.Trade
	for i := range trades {
		if trades[i].ProfitLoss != nil {
			closed = append(closed, &trades[i])
		}
	}
	if len(closed) == 0 {
		return stats
	}

	total := len(closed)
	stats.TotalTrades = total

	var wins int
	var sumPL, sumRR, sumDays float64
	for _, t := range closed {
		pl := *t.ProfitLoss
		if pl > 0 {
			wins++
		}
		sumPL += pl
		if t.RiskReward != nil {
			sumRR += *t.RiskReward
		}
		sumDays += t.DaysHeld
		if stats.BestTrade == nil || pl > *stats.BestTrade.ProfitLoss {
			stats.BestTrade = t
		}
		if stats.WorstTrade == nil || pl < *stats.WorstTrade.ProfitLoss {
			stats.WorstTrade = t
		}
	}
	stats.WinRate = float64(wins) / float64(total)
	stats.AvgProfitLoss = sumPL / float64(total)
	// Trades without a defined ratio still count in the denominator.
	stats.AvgRiskReward = sumRR / float64(total)
	stats.TotalProfitLoss = sumPL
	stats.AvgHoldingPeriod = sumDays / float64(total)

	// Max drawdown over the equity curve rebuilt from closed trades alone,
	// tracking the running peak from zero.
	var equity, peak float64
	for _, t := range closed {
		equity += *t.ProfitLoss
		if equity > peak {
			peak = equity
		}
		if dd := peak - equity; dd > stats.MaxDrawdown {
			stats.MaxDrawdown = dd
		}
	}

	// Monthly buckets keyed by exit year-month, reported in ascending month
	// order so the output is stable for a given journal.
	buckets := make(map[string]float64)
	for _, t := range closed {
		key := t.ExitDate.Format("2006-01")
		buckets[key] += *t.ProfitLoss
	}
	months := make([]string, 0, len(buckets))
	for month := range buckets {
		months = append(months, month)
	}
	sort.Strings(months)
	for _, month := range months {
		stats.MonthlyPerformance = append(stats.MonthlyPerformance, MonthlyPerformance{
			Month:      month,
			ProfitLoss: buckets[month],
		})
	}

	return stats
}
