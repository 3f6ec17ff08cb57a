package service

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"stocksearch/validation"
)

// YahooProvider fetches daily bars from the Yahoo Finance chart API.
// Taiwan tickers are already in Yahoo format (.TW listed, .TWO OTC).
type YahooProvider struct {
	client *resty.Client
}

func NewYahooProvider() *YahooProvider {
	return &YahooProvider{
		client: resty.New().
			SetBaseURL("https://query1.finance.yahoo.com").
			SetTimeout(30 * time.Second).
			SetHeader("User-Agent", "Mozilla/5.0"),
	}
}

// yahooChart is the response structure of the Yahoo chart API. Quote arrays
// contain nulls on non-trading rows, hence the pointer elements.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func (p *YahooProvider) FetchDailyBars(ctx context.Context, ticker, beginDate, endDate string) ([]Bar, error) {
	from, err := time.Parse(validation.DateLayout, beginDate)
	if err != nil {
		return nil, fmt.Errorf("yahoo: bad begin date: %w", err)
	}
	to, err := time.Parse(validation.DateLayout, endDate)
	if err != nil {
		return nil, fmt.Errorf("yahoo: bad end date: %w", err)
	}

	var out yahooChart
	resp, err := p.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"interval": "1d",
			"period1":  strconv.FormatInt(from.Unix(), 10),
			"period2":  strconv.FormatInt(to.Unix(), 10),
		}).
		SetResult(&out).
		Get("/v8/finance/chart/" + url.PathEscape(ticker))
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch: %w", err)
	}
	// Yahoo answers 404 for unknown symbols
	if resp.StatusCode() == http.StatusNotFound {
		return nil, ErrNoPriceData
	}
	if resp.IsError() {
		return nil, fmt.Errorf("yahoo: status %d", resp.StatusCode())
	}
	if out.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", out.Chart.Error.Description)
	}
	if len(out.Chart.Result) == 0 || len(out.Chart.Result[0].Timestamp) == 0 {
		return nil, ErrNoPriceData
	}

	result := out.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, ErrNoPriceData
	}
	quote := result.Indicators.Quote[0]

	bars := make([]Bar, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(quote.Open) || i >= len(quote.High) || i >= len(quote.Low) || i >= len(quote.Close) {
			break
		}
		// skip null bars (holidays etc.)
		if quote.Open[i] == nil || quote.High[i] == nil || quote.Low[i] == nil || quote.Close[i] == nil {
			continue
		}
		bar := Bar{
			Date:  time.Unix(ts, 0),
			Open:  *quote.Open[i],
			High:  *quote.High[i],
			Low:   *quote.Low[i],
			Close: *quote.Close[i],
		}
		if i < len(quote.Volume) && quote.Volume[i] != nil {
			bar.Volume = *quote.Volume[i]
		}
		bars = append(bars, bar)
	}

	if len(bars) == 0 {
		return nil, ErrNoPriceData
	}
	sort.Slice(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })
	return bars, nil
}
