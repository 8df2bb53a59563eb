// Package yahoo provides a client for the Yahoo Finance chart API
package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/naganikhilbijjala/finpilot/internal/common"
	"github.com/naganikhilbijjala/finpilot/internal/interfaces"
	"github.com/naganikhilbijjala/finpilot/internal/models"
)

const (
	DefaultBaseURL   = "https://query1.finance.yahoo.com/v8/finance/chart"
	DefaultTimeout   = 10 * time.Second
	DefaultRateLimit = 5 // requests per second
)

// Client implements the QuoteClient interface against the Yahoo Finance
// v8 chart endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *common.Logger
	limiter    *rate.Limiter
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets the rate limit
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new Yahoo Finance client
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:  common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// APIError represents an API error
type APIError struct {
	StatusCode int
	Message    string
	Ticker     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("Yahoo Finance API error: %s (status: %d, ticker: %s)", e.Message, e.StatusCode, e.Ticker)
}

// chartResponse mirrors the v8 chart payload shape.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol             string  `json:"symbol"`
				Currency           string  `json:"currency"`
				RegularMarketPrice float64 `json:"regularMarketPrice"`
				RegularMarketTime  int64   `json:"regularMarketTime"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// GetQuote retrieves the current market price for a ticker.
func (c *Client) GetQuote(ctx context.Context, ticker string) (*models.StockPrice, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return nil, fmt.Errorf("ticker is required")
	}

	// Wait for rate limiter
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	reqURL := fmt.Sprintf("%s/%s?interval=1m&range=1d", c.baseURL, ticker)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "finpilot/"+common.GetVersion())

	c.logger.Debug().Str("ticker", ticker).Msg("Yahoo Finance quote request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
			Ticker:     ticker,
		}
	}

	var data chartResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if data.Chart.Error != nil {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    data.Chart.Error.Description,
			Ticker:     ticker,
		}
	}
	if len(data.Chart.Result) == 0 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    "no data found for ticker",
			Ticker:     ticker,
		}
	}

	result := data.Chart.Result[0]
	price := result.Meta.RegularMarketPrice
	marketTime := result.Meta.RegularMarketTime

	// Fall back to the last non-zero close when the meta price is missing.
	if price <= 0 && len(result.Timestamp) > 0 && len(result.Indicators.Quote) > 0 &&
		len(result.Indicators.Quote[0].Close) == len(result.Timestamp) {
		closes := result.Indicators.Quote[0].Close
		for i := len(closes) - 1; i >= 0; i-- {
			if closes[i] > 0 {
				price = closes[i]
				marketTime = result.Timestamp[i]
				break
			}
		}
	}

	if price <= 0 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    "no usable price in response",
			Ticker:     ticker,
		}
	}

	symbol := result.Meta.Symbol
	if symbol == "" {
		symbol = ticker
	}

	return &models.StockPrice{
		Ticker:            symbol,
		CurrentPrice:      price,
		Currency:          result.Meta.Currency,
		Timestamp:         time.Now().UTC(),
		RegularMarketTime: marketTime,
	}, nil
}

// Ensure Client implements QuoteClient
var _ interfaces.QuoteClient = (*Client)(nil)
