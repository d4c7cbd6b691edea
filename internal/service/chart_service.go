package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/trade-journal/internal/marketdata/yahoo"
)

// ChartService serves daily price history for a ticker. Results are cached
// in redis so repeated chart views don't hammer the upstream provider.
// Failures on this path never touch trade or ledger state.
type ChartService struct {
	client *yahoo.Client
	redis  *redis.Client
	ttl    time.Duration
}

// NewChartService creates a new ChartService
func NewChartService(client *yahoo.Client, rdb *redis.Client, ttl time.Duration) *ChartService {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &ChartService{
		client: client,
		redis:  rdb,
		ttl:    ttl,
	}
}

// GetHistory returns one candle per trading day for ticker in [start, end].
func (s *ChartService) GetHistory(ctx context.Context, ticker string, start, end time.Time) ([]yahoo.Candle, error) {
	key := fmt.Sprintf("chart:%s:%s:%s",
		strings.ToUpper(ticker), start.Format("2006-01-02"), end.Format("2006-01-02"))

	if cached, err := s.redis.Get(ctx, key).Bytes(); err == nil {
		var candles []yahoo.Candle
		if err := json.Unmarshal(cached, &candles); err == nil {
			return candles, nil
		}
	}

	candles, err := s.client.DailyHistory(ctx, ticker, start, end)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(candles); err == nil {
		s.redis.Set(ctx, key, data, s.ttl)
	}
	return candles, nil
}
