// Package market normalizes Yahoo Finance responses into the app's
// quote shapes, caching every lookup so dashboard polling never hammers
// the upstream. Upstream unavailability is expected here: every
// operation degrades (empty results, stale or zeroed quote) instead of
// surfacing an error.
package market

import (
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Darekar-Ishita/Trading-website/internal/cache"
	"github.com/Darekar-Ishita/Trading-website/internal/domain"
)

// Namespace TTLs, matching how volatile each payload is.
const (
	searchTTL     = 5 * time.Minute
	liveTTL       = 30 * time.Second
	historicalTTL = 5 * time.Minute
)

var errNoPrices = errors.New("price unavailable")

// indexAliases maps friendly index names onto Yahoo's internal symbols.
var indexAliases = map[string]string{
	"NIFTY":  "^NSEI",
	"SENSEX": "^BSESN",
}

// Gateway is the market data gateway: cache-then-fetch-then-populate
// for search, live quotes, and historical series.
type Gateway struct {
	client     *Client
	search     *cache.Cache
	live       *cache.Cache
	historical *cache.Cache
	lastGood   *cache.Cache // last successful live quote per symbol, no TTL
}

// NewGateway wires a gateway with its own cache namespaces.
func NewGateway(client *Client) *Gateway {
	return &Gateway{
		client:     client,
		search:     cache.New(searchTTL),
		live:       cache.New(liveTTL),
		historical: cache.New(historicalTTL),
		lastGood:   cache.NewStale(),
	}
}

// Search returns symbol matches for a query. Upstream failure yields an
// empty list, never an error.
func (g *Gateway) Search(query string) []domain.SearchResult {
	if query == "" {
		return []domain.SearchResult{}
	}
	if v, ok := g.search.Get(query); ok {
		return v.([]domain.SearchResult)
	}

	resp, err := g.client.search(query)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"query": query,
			"error": err.Error(),
		}).Warn("Stock search upstream failed")
		return []domain.SearchResult{}
	}

	results := make([]domain.SearchResult, 0, len(resp.Quotes))
	for _, q := range resp.Quotes {
		name := q.ShortName
		if name == "" {
			name = q.LongName
		}
		results = append(results, domain.SearchResult{Symbol: q.Symbol, Name: name})
	}

	g.search.Set(query, results)
	return results
}

// Live returns the current quote for a symbol or index alias. Change is
// measured against the first non-null open of the day. This operation
// never fails outward: on upstream failure it serves the last good
// quote for the symbol, or a zeroed one.
func (g *Gateway) Live(symbol string) domain.Quote {
	if symbol == "" {
		return domain.Quote{Symbol: symbol}
	}
	if v, ok := g.live.Get(symbol); ok {
		return v.(domain.Quote)
	}

	yahooSymbol := symbol
	if alias, ok := indexAliases[symbol]; ok {
		yahooSymbol = alias
	}

	series, err := g.client.chart(yahooSymbol, "1d", "1m")
	if err == nil {
		if quote, ok := quoteFromSeries(symbol, series); ok {
			g.live.Set(symbol, quote)
			g.lastGood.Set(symbol, quote)
			return quote
		}
		err = errNoPrices
	}

	logrus.WithFields(logrus.Fields{
		"symbol": symbol,
		"error":  err.Error(),
	}).Warn("Live quote upstream failed")

	if v, ok := g.lastGood.Get(symbol); ok {
		return v.(domain.Quote)
	}
	return domain.Quote{Symbol: symbol}
}

// Historical returns the one-month daily closing series for a symbol.
// Upstream failure or no data yields an empty series.
func (g *Gateway) Historical(symbol string) []domain.HistoricalPoint {
	if symbol == "" {
		return []domain.HistoricalPoint{}
	}
	if v, ok := g.historical.Get(symbol); ok {
		return v.([]domain.HistoricalPoint)
	}

	series, err := g.client.chart(symbol, "1mo", "1d")
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"symbol": symbol,
			"error":  err.Error(),
		}).Warn("Historical data upstream failed")
		return []domain.HistoricalPoint{}
	}

	points := make([]domain.HistoricalPoint, 0, len(series.Timestamps))
	for i, ts := range series.Timestamps {
		if i >= len(series.Closes) || series.Closes[i] == nil {
			continue
		}
		points = append(points, domain.HistoricalPoint{
			Date:  time.Unix(ts, 0).UTC(),
			Close: *series.Closes[i],
		})
	}

	g.historical.Set(symbol, points)
	return points
}

// quoteFromSeries derives a quote from an intraday series. The last
// non-null close is the price; the first non-null open anchors the
// day's change.
func quoteFromSeries(symbol string, series *chartSeries) (domain.Quote, bool) {
	lastPrice, ok := lastValue(series.Closes)
	if !ok {
		return domain.Quote{}, false
	}

	todayOpen, ok := firstValue(series.Opens)
	if !ok {
		todayOpen, _ = firstValue(series.Closes)
	}

	change := lastPrice - todayOpen
	changePercent := 0.0
	if todayOpen != 0 {
		changePercent = change / todayOpen * 100
	}

	return domain.Quote{
		Symbol:        symbol,
		Price:         lastPrice,
		Change:        change,
		ChangePercent: changePercent,
	}, true
}

func firstValue(values []*float64) (float64, bool) {
	for _, v := range values {
		if v != nil {
			return *v, true
		}
	}
	return 0, false
}

func lastValue(values []*float64) (float64, bool) {
	for i := len(values) - 1; i >= 0; i-- {
		if values[i] != nil {
			return *values[i], true
		}
	}
	return 0, false
}
