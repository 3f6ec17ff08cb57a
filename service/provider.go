package service

import (
	"context"
	"errors"
	"time"
)

// ErrNoPriceData is returned when the provider has no bars for the requested
// ticker and range: unknown ticker, no trading days, or a provider-side error
// surfaced as an empty result. Callers treat it as "not found", never as a
// server failure.
var ErrNoPriceData = errors.New("no price data for ticker")

// Bar is one trading day of OHLCV data.
type Bar struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// PriceProvider fetches a daily price series for a ticker over a date range.
// Dates are YYYY-MM-DD strings already validated by the caller.
type PriceProvider interface {
	FetchDailyBars(ctx context.Context, ticker, beginDate, endDate string) ([]Bar, error)
}
