package market

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const (
	defaultChartBase  = "https://query2.finance.yahoo.com/v8/finance/chart"
	defaultSearchBase = "https://query1.finance.yahoo.com/v1/finance/search"

	// Upstream calls are bounded; past this the degrade policy applies.
	upstreamTimeout = 6 * time.Second
)

// Client talks to the Yahoo Finance chart and search endpoints.
type Client struct {
	httpClient *http.Client
	chartBase  string
	searchBase string
}

// NewClient returns a client against the public Yahoo endpoints.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: upstreamTimeout},
		chartBase:  defaultChartBase,
		searchBase: defaultSearchBase,
	}
}

// NewClientWithBase returns a client against custom endpoints. Used by
// tests to point at a fake upstream.
func NewClientWithBase(chartBase, searchBase string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: upstreamTimeout},
		chartBase:  chartBase,
		searchBase: searchBase,
	}
}

// chartResponse mirrors the subset of the chart payload we consume.
// Price arrays use pointers because Yahoo interleaves nulls for minutes
// with no trades.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open  []*float64 `json:"open"`
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
	} `json:"chart"`
}

type chartSeries struct {
	Timestamps []int64
	Opens      []*float64
	Closes     []*float64
}

type searchResponse struct {
	Quotes []struct {
		Symbol    string `json:"symbol"`
		ShortName string `json:"shortname"`
		LongName  string `json:"longname"`
	} `json:"quotes"`
}

func (c *Client) get(rawURL string, dest any) error {
	req, err := http.NewRequest(http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("upstream status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(dest)
}

// chart fetches the price series for a symbol over the given range and
// interval ("1d"/"1m" for live, "1mo"/"1d" for historical).
func (c *Client) chart(symbol, rng, interval string) (*chartSeries, error) {
	u := fmt.Sprintf("%s/%s?range=%s&interval=%s",
		c.chartBase, url.PathEscape(symbol), rng, interval)

	var body chartResponse
	if err := c.get(u, &body); err != nil {
		return nil, err
	}
	if len(body.Chart.Result) == 0 {
		return nil, fmt.Errorf("no chart data for %s", symbol)
	}

	result := body.Chart.Result[0]
	series := &chartSeries{Timestamps: result.Timestamp}
	if len(result.Indicators.Quote) > 0 {
		series.Opens = result.Indicators.Quote[0].Open
		series.Closes = result.Indicators.Quote[0].Close
	}
	return series, nil
}

// search queries the symbol search endpoint.
func (c *Client) search(query string) (*searchResponse, error) {
	u := c.searchBase + "?q=" + url.QueryEscape(query)

	var body searchResponse
	if err := c.get(u, &body); err != nil {
		return nil, err
	}
	return &body, nil
}
