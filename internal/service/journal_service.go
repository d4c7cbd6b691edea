package service

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/trade-journal/internal/ledger"
	"github.com/trade-journal/internal/metrics"
	"github.com/trade-journal/internal/models"
	"github.com/trade-journal/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTradeNotFound     = errors.New("trade not found")
	ErrInvalidTradeInput = errors.New("invalid trade input")
)

// Timestamp layouts accepted from clients, tried in order.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// TradeRequest carries the raw, caller-settable fields of a trade. Derived
// fields are never accepted from the outside.
type TradeRequest struct {
	Ticker      string   `json:"ticker" binding:"required"`
	Direction   string   `json:"direction" binding:"required,oneof=Buy Short"`
	Volume      int      `json:"volume" binding:"required,gt=0"`
	EntryPrice  float64  `json:"entry_price" binding:"required"`
	StopLoss    *float64 `json:"stop_loss"`
	TargetPrice *float64 `json:"target_price"`
	EntryDate   string   `json:"entry_date" binding:"required"`
	ExitDate    *string  `json:"exit_date"`
	ExitPrice   *float64 `json:"exit_price"`
}

// JournalService owns all trade mutations. Each mutation runs to completion
// under one mutex and one transaction, so the equity ledger is never
// observable in a half-recomputed state.
type JournalService struct {
	repo *repository.TradeRepository
	now  func() time.Time

	mu sync.Mutex
}

// NewJournalService creates a new JournalService
func NewJournalService(repo *repository.TradeRepository) *JournalService {
	return &JournalService{
		repo: repo,
		now:  time.Now,
	}
}

// CreateTrade validates and stores a new trade at the end of the journal.
func (s *JournalService) CreateTrade(req *TradeRequest) (*models.Trade, error) {
	trade := &models.Trade{}
	if err := applyRequest(trade, req); err != nil {
		return nil, err
	}
	metrics.Compute(trade, s.now())

	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.repo.Transaction(func(tx *repository.TradeRepository) error {
		last, err := tx.GetLast()
		if err != nil {
			return err
		}
		trade.CumulativeEquity = ledger.NextEquity(last, trade)
		return tx.Create(trade)
	})
	if err != nil {
		return nil, err
	}
	return trade, nil
}

// UpdateTrade replaces every raw field of an existing trade, rederives its
// metrics and replays the equity ledger over all later trades.
func (s *JournalService) UpdateTrade(id uint, req *TradeRequest) (*models.Trade, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var updated *models.Trade
	err := s.repo.Transaction(func(tx *repository.TradeRepository) error {
		trade, err := tx.GetByID(id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTradeNotFound
		}
		if err != nil {
			return err
		}

		if err := applyRequest(trade, req); err != nil {
			return err
		}
		metrics.Compute(trade, s.now())

		prev, err := tx.GetPredecessor(trade.ID)
		if err != nil {
			return err
		}
		trade.CumulativeEquity = ledger.NextEquity(prev, trade)
		if err := tx.Update(trade); err != nil {
			return err
		}

		successors, err := tx.GetSuccessors(trade.ID)
		if err != nil {
			return err
		}
		if err := ledger.Recompute(trade.CumulativeEquity, successors); err != nil {
			return err
		}
		if err := tx.SaveEquities(successors); err != nil {
			return err
		}

		updated = trade
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteTrade removes a trade and replays the equity ledger for the trades
// that followed it. The predecessor's equity is unchanged by a deletion, so
// the replay starts from there.
func (s *JournalService) DeleteTrade(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.repo.Transaction(func(tx *repository.TradeRepository) error {
		trade, err := tx.GetByID(id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTradeNotFound
		}
		if err != nil {
			return err
		}

		if err := tx.Delete(trade); err != nil {
			return err
		}

		prev, err := tx.GetPredecessor(trade.ID)
		if err != nil {
			return err
		}
		var base float64
		if prev != nil {
			base = prev.CumulativeEquity
		}

		successors, err := tx.GetSuccessors(trade.ID)
		if err != nil {
			return err
		}
		if err := ledger.Recompute(base, successors); err != nil {
			return err
		}
		return tx.SaveEquities(successors)
	})
}

// GetTrade retrieves a single trade by identity.
func (s *JournalService) GetTrade(id uint) (*models.Trade, error) {
	trade, err := s.repo.GetByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTradeNotFound
	}
	if err != nil {
		return nil, err
	}
	return trade, nil
}

// ListTrades returns the full journal ordered by entry date.
func (s *JournalService) ListTrades() ([]models.Trade, error) {
	return s.repo.GetAllByEntryDate()
}

// RefreshOpenTrades rederives the metrics of every open trade so days_held
// keeps tracking the wall clock. Open trades carry no profit_loss, so the
// equity ledger is unaffected.
func (s *JournalService) RefreshOpenTrades() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	open, err := s.repo.GetOpen()
	if err != nil {
		return 0, err
	}

	now := s.now()
	for _, trade := range open {
		metrics.Compute(trade, now)
		if err := s.repo.Update(trade); err != nil {
			return 0, err
		}
	}
	return len(open), nil
}

// applyRequest copies the raw fields of req onto trade, parsing timestamps.
// Derived fields are untouched; the caller recomputes them.
func applyRequest(trade *models.Trade, req *TradeRequest) error {
	entryDate, err := parseTimestamp(req.EntryDate)
	if err != nil {
		return fmt.Errorf("%w: entry_date: %v", ErrInvalidTradeInput, err)
	}

	var exitDate *time.Time
	if req.ExitDate != nil && *req.ExitDate != "" {
		parsed, err := parseTimestamp(*req.ExitDate)
		if err != nil {
			return fmt.Errorf("%w: exit_date: %v", ErrInvalidTradeInput, err)
		}
		exitDate = &parsed
	}

	trade.Ticker = req.Ticker
	trade.Direction = models.Direction(req.Direction)
	trade.Volume = req.Volume
	trade.EntryPrice = req.EntryPrice
	trade.StopLoss = req.StopLoss
	trade.TargetPrice = req.TargetPrice
	trade.EntryDate = entryDate
	trade.ExitDate = exitDate
	trade.ExitPrice = req.ExitPrice
	return nil
}

// parseTimestamp accepts RFC3339 or naive layouts and stores the wall-clock
// reading with any offset discarded.
func parseTimestamp(value string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return metrics.Naive(ts), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable timestamp %q", value)
}
