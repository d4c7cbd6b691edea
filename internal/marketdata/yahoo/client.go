// Package yahoo fetches daily price history from the Yahoo Finance chart
// API. It is an external collaborator of the journal: failures here surface
// as a distinct outcome and never propagate into trade or ledger state.
package yahoo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultBaseURL = "https://query1.finance.yahoo.com"

// ErrNoData means the upstream answered but carried no candles for the
// ticker and range.
var ErrNoData = errors.New("yahoo: no data available for ticker")

// Candle is one daily bar.
type Candle struct {
	Date   string  `json:"date"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume int64   `json:"volume"`
}

// Client is a Yahoo Finance chart API client
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a new Client. baseURL and timeout fall back to the
// public endpoint and 10s when zero.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// chartResponse mirrors the v8 chart endpoint payload.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []float64 `json:"open"`
					High   []float64 `json:"high"`
					Low    []float64 `json:"low"`
					Close  []float64 `json:"close"`
					Volume []int64   `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// DailyHistory returns one candle per trading day for ticker in [start, end].
func (c *Client) DailyHistory(ctx context.Context, ticker string, start, end time.Time) ([]Candle, error) {
	endpoint := fmt.Sprintf("%s/v8/finance/chart/%s?period1=%d&period2=%d&interval=1d",
		c.baseURL, url.PathEscape(strings.ToUpper(ticker)), start.Unix(), end.Unix())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "trade-journal/1.0")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNoData
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo: unexpected status %d", resp.StatusCode)
	}

	var payload chartResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("yahoo: decode response: %w", err)
	}

	if payload.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo: %s: %s", payload.Chart.Error.Code, payload.Chart.Error.Description)
	}
	if len(payload.Chart.Result) == 0 {
		return nil, ErrNoData
	}

	result := payload.Chart.Result[0]
	if len(result.Timestamp) == 0 || len(result.Indicators.Quote) == 0 {
		return nil, ErrNoData
	}

	quote := result.Indicators.Quote[0]
	candles := make([]Candle, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		candles = append(candles, Candle{
			Date:   time.Unix(ts, 0).UTC().Format("2006-01-02"),
			Open:   floatAt(quote.Open, i),
			High:   floatAt(quote.High, i),
			Low:    floatAt(quote.Low, i),
			Close:  floatAt(quote.Close, i),
			Volume: intAt(quote.Volume, i),
		})
	}
	return candles, nil
}

func floatAt(values []float64, i int) float64 {
	if i < len(values) {
		return values[i]
	}
	return 0
}

func intAt(values []int64, i int) int64 {
	if i < len(values) {
		return values[i]
	}
	return 0
}
