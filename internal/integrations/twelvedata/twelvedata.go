package twelvedata

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/nartaaboe/Solva/internal/models"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Client fetches currency-pair quotes from the Twelve Data REST API.
type Client struct {
	url    string
	apikey string
	client *http.Client
	log    *logrus.Logger
}

// NewClient initializes a new Twelve Data client
func NewClient(apiURL, apikey string, log *logrus.Logger) *Client {
	return &Client{
		url:    apiURL,
		apikey: apikey,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log,
	}
}

type rateResponse struct {
	Symbol    string          `json:"symbol"`
	Rate      decimal.Decimal `json:"rate"`
	Timestamp int64           `json:"timestamp"`
}

// FetchLatestRates requests the daily quote for each pair in one batch call.
// Pairs missing from the response are skipped, not failed; the caller gets
// whatever arrived.
func (c *Client) FetchLatestRates(symbols []string) (map[string]models.ExchangeRate, error) {
	req, err := http.NewRequest("GET", c.url+"/exchange_rate", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	q := url.Values{}
	q.Set("symbol", strings.Join(symbols, ","))
	q.Set("interval", "1day")
	q.Set("apikey", c.apikey)
	req.URL.RawQuery = q.Encode()

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	c.log.Debugf("Twelve Data response: %s", string(body))

	return c.parseResponse(body, symbols)
}

// parseResponse handles both response shapes: a map keyed by symbol for
// batch requests and a single object when only one pair was asked for.
func (c *Client) parseResponse(body []byte, symbols []string) (map[string]models.ExchangeRate, error) {
	if len(symbols) == 1 {
		var single rateResponse
		if err := json.Unmarshal(body, &single); err == nil && single.Symbol != "" {
			return c.toRates(map[string]rateResponse{single.Symbol: single}), nil
		}
	}

	var batch map[string]rateResponse
	if err := json.Unmarshal(body, &batch); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return c.toRates(batch), nil
}

func (c *Client) toRates(batch map[string]rateResponse) map[string]models.ExchangeRate {
	rates := make(map[string]models.ExchangeRate, len(batch))
	for symbol, r := range batch {
		if r.Symbol == "" || r.Rate.IsZero() {
			c.log.Warnf("Skipping incomplete quote for %s", symbol)
			continue
		}
		rates[symbol] = models.ExchangeRate{
			Symbol:    r.Symbol,
			Rate:      r.Rate,
			Timestamp: r.Timestamp,
			DateTime:  time.Unix(r.Timestamp, 0).UTC(),
		}
	}
	return rates
}
