package cbr

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/nartaaboe/Solva/internal/models"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// ratePrecision matches the storage precision for rates.
const ratePrecision = 6

// Client fetches daily currency quotes from the Central Bank of Russia.
// The feed publishes every rate against RUB, so arbitrary pairs are derived
// as cross rates through RUB.
type Client struct {
	url    string
	client *http.Client
	log    *logrus.Logger
}

// NewClient initializes a new CBR client
func NewClient(url string, log *logrus.Logger) *Client {
	return &Client{
		url: url,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log,
	}
}

// FetchLatestRates downloads today's quote table and derives the requested
// pairs from it. Pairs involving a currency the feed does not list are
// skipped with a warning rather than failing the whole batch.
func (c *Client) FetchLatestRates(symbols []string) (map[string]models.ExchangeRate, error) {
	body, err := c.fetchDaily()
	if err != nil {
		return nil, err
	}

	perRub, err := c.parseDaily(body)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	rates := make(map[string]models.ExchangeRate, len(symbols))
	for _, symbol := range symbols {
		rate, err := crossRate(perRub, symbol)
		if err != nil {
			c.log.Warnf("Skipping %s: %v", symbol, err)
			continue
		}
		rates[symbol] = models.ExchangeRate{
			Symbol:    symbol,
			Rate:      rate,
			Timestamp: now.Unix(),
			DateTime:  now,
		}
	}
	return rates, nil
}

func (c *Client) fetchDaily() ([]byte, error) {
	req, err := http.NewRequest("GET", c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

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
	c.log.Debugf("CBR XML response: %s", string(body))
	return body, nil
}

// parseDaily extracts how many rubles one unit of each listed currency is
// worth. Values in the feed use a comma decimal separator and a per-nominal
// quotation (e.g. 100 KZT = 19,55 RUB).
func (c *Client) parseDaily(rawBody []byte) (map[string]decimal.Decimal, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(rawBody); err != nil {
		return nil, fmt.Errorf("failed to parse XML: %w", err)
	}

	valutes := doc.FindElements("//Valute")
	if len(valutes) == 0 {
		return nil, fmt.Errorf("no quotes found in XML")
	}

	perRub := map[string]decimal.Decimal{
		"RUB": decimal.NewFromInt(1),
	}
	for _, v := range valutes {
		code := v.SelectElement("CharCode")
		nominal := v.SelectElement("Nominal")
		value := v.SelectElement("Value")
		if code == nil || nominal == nil || value == nil {
			continue
		}

		nom, err := decimal.NewFromString(strings.TrimSpace(nominal.Text()))
		if err != nil || nom.IsZero() {
			c.log.Warnf("Skipping quote for %s: bad nominal %q", code.Text(), nominal.Text())
			continue
		}
		val, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(value.Text()), ",", "."))
		if err != nil {
			c.log.Warnf("Skipping quote for %s: bad value %q", code.Text(), value.Text())
			continue
		}

		perRub[code.Text()] = val.DivRound(nom, ratePrecision)
	}
	return perRub, nil
}

// crossRate derives base/quote from the per-RUB table.
func crossRate(perRub map[string]decimal.Decimal, symbol string) (decimal.Decimal, error) {
	parts := strings.Split(symbol, "/")
	if len(parts) != 2 {
		return decimal.Decimal{}, fmt.Errorf("malformed pair symbol %q", symbol)
	}

	base, ok := perRub[parts[0]]
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("currency %s not quoted", parts[0])
	}
	quote, ok := perRub[parts[1]]
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("currency %s not quoted", parts[1])
	}
	if quote.IsZero() {
		return decimal.Decimal{}, fmt.Errorf("zero quote for %s", parts[1])
	}

	return base.DivRound(quote, ratePrecision), nil
}
