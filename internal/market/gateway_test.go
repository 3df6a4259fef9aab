package market

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Darekar-Ishita/Trading-website/internal/cache"
)

// fakeUpstream serves canned Yahoo-shaped payloads and records which
// symbols were requested.
type fakeUpstream struct {
	chartBody  string
	chartCode  int
	searchBody string
	searchCode int
	requested  []string
}

func (f *fakeUpstream) server() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/search") {
			w.WriteHeader(f.searchCode)
			fmt.Fprint(w, f.searchBody)
			return
		}
		// chart path: /chart/{symbol}
		parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
		f.requested = append(f.requested, parts[len(parts)-1])
		w.WriteHeader(f.chartCode)
		fmt.Fprint(w, f.chartBody)
	}))
}

func newTestGateway(f *fakeUpstream) (*Gateway, *httptest.Server) {
	srv := f.server()
	client := NewClientWithBase(srv.URL+"/chart", srv.URL+"/search")
	return NewGateway(client), srv
}

const intradayChart = `{"chart":{"result":[{"timestamp":[1700000000,1700000060,1700000120],
  "indicators":{"quote":[{"open":[null,100.0,101.0],"close":[100.5,null,110.0]}]}}]}}`

func TestLiveQuoteMath(t *testing.T) {
	f := &fakeUpstream{chartBody: intradayChart, chartCode: 200}
	g, srv := newTestGateway(f)
	defer srv.Close()

	q := g.Live("ABC")

	// last non-null close 110, first non-null open 100
	if q.Price != 110.0 {
		t.Errorf("expected price 110, got %v", q.Price)
	}
	if q.Change != 10.0 {
		t.Errorf("expected change 10, got %v", q.Change)
	}
	if q.ChangePercent != 10.0 {
		t.Errorf("expected changePercent 10, got %v", q.ChangePercent)
	}
	if q.Symbol != "ABC" {
		t.Errorf("expected symbol ABC, got %q", q.Symbol)
	}
}

func TestLiveQuoteCached(t *testing.T) {
	f := &fakeUpstream{chartBody: intradayChart, chartCode: 200}
	g, srv := newTestGateway(f)
	defer srv.Close()

	g.Live("ABC")
	g.Live("ABC")

	if len(f.requested) != 1 {
		t.Errorf("expected one upstream call, got %d", len(f.requested))
	}
}

func TestLiveIndexAliasResolution(t *testing.T) {
	f := &fakeUpstream{chartBody: intradayChart, chartCode: 200}
	g, srv := newTestGateway(f)
	defer srv.Close()

	q := g.Live("NIFTY")

	if len(f.requested) != 1 || f.requested[0] != "^NSEI" {
		t.Errorf("expected upstream request for ^NSEI, got %v", f.requested)
	}
	// caller-facing symbol stays the alias
	if q.Symbol != "NIFTY" {
		t.Errorf("expected symbol NIFTY, got %q", q.Symbol)
	}
}

func TestLiveDegradesToZeroQuote(t *testing.T) {
	f := &fakeUpstream{chartBody: `oops`, chartCode: 500}
	g, srv := newTestGateway(f)
	defer srv.Close()

	q := g.Live("DOWN")

	if q.Price != 0 || q.Change != 0 || q.ChangePercent != 0 {
		t.Errorf("expected zeroed quote on upstream failure, got %+v", q)
	}
}

func TestLiveFallsBackToLastGoodQuote(t *testing.T) {
	f := &fakeUpstream{chartBody: intradayChart, chartCode: 200}
	g, srv := newTestGateway(f)
	defer srv.Close()

	first := g.Live("ABC")

	// Upstream goes down and the live entry ages out.
	f.chartCode = 500
	g.live = cache.New(liveTTL)

	second := g.Live("ABC")
	if second.Price != first.Price {
		t.Errorf("expected stale fallback price %v, got %v", first.Price, second.Price)
	}
}

func TestSearchMapsNames(t *testing.T) {
	f := &fakeUpstream{
		searchBody: `{"quotes":[{"symbol":"TCS.NS","shortname":"Tata Consultancy"},
			{"symbol":"TCSLTD","longname":"TCS Limited"}]}`,
		searchCode: 200,
	}
	g, srv := newTestGateway(f)
	defer srv.Close()

	results := g.Search("tcs")

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Name != "Tata Consultancy" {
		t.Errorf("expected shortname preferred, got %q", results[0].Name)
	}
	if results[1].Name != "TCS Limited" {
		t.Errorf("expected longname fallback, got %q", results[1].Name)
	}
}

func TestSearchUpstreamFailureYieldsEmpty(t *testing.T) {
	f := &fakeUpstream{searchBody: `nope`, searchCode: 503}
	g, srv := newTestGateway(f)
	defer srv.Close()

	results := g.Search("NIFTY")
	if results == nil || len(results) != 0 {
		t.Errorf("expected empty (non-nil) results on failure, got %v", results)
	}
}

func TestSearchNoMatchesYieldsEmpty(t *testing.T) {
	f := &fakeUpstream{searchBody: `{"quotes":[]}`, searchCode: 200}
	g, srv := newTestGateway(f)
	defer srv.Close()

	results := g.Search("zzzz")
	if len(results) != 0 {
		t.Errorf("expected no results, got %v", results)
	}
}

func TestHistoricalSeries(t *testing.T) {
	f := &fakeUpstream{
		chartBody: `{"chart":{"result":[{"timestamp":[1700000000,1700086400,1700172800],
			"indicators":{"quote":[{"open":[1.0,2.0,3.0],"close":[10.0,null,12.0]}]}}]}}`,
		chartCode: 200,
	}
	g, srv := newTestGateway(f)
	defer srv.Close()

	points := g.Historical("ABC")

	// the null close is skipped
	if len(points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(points))
	}
	if points[0].Close != 10.0 || points[1].Close != 12.0 {
		t.Errorf("unexpected closes: %+v", points)
	}
	if !points[0].Date.Before(points[1].Date) {
		t.Error("expected points ordered by date")
	}
}

func TestHistoricalUpstreamFailureYieldsEmpty(t *testing.T) {
	f := &fakeUpstream{chartBody: `bad`, chartCode: 500}
	g, srv := newTestGateway(f)
	defer srv.Close()

	points := g.Historical("DOWN")
	if len(points) != 0 {
		t.Errorf("expected empty series on failure, got %v", points)
	}
}
