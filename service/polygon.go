package service

import (
	"context"
	"fmt"
	"time"

	polygon "github.com/polygon-io/client-go/rest"
	"github.com/polygon-io/client-go/rest/models"

	"stocksearch/validation"
)

// PolygonProvider fetches daily aggregates from Polygon.io.
type PolygonProvider struct {
	client *polygon.Client
}

func NewPolygonProvider(apiKey string) *PolygonProvider {
	return &PolygonProvider{client: polygon.New(apiKey)}
}

func (p *PolygonProvider) FetchDailyBars(ctx context.Context, ticker, beginDate, endDate string) ([]Bar, error) {
	from, err := time.Parse(validation.DateLayout, beginDate)
	if err != nil {
		return nil, fmt.Errorf("polygon: bad begin date: %w", err)
	}
	to, err := time.Parse(validation.DateLayout, endDate)
	if err != nil {
		return nil, fmt.Errorf("polygon: bad end date: %w", err)
	}

	params := models.ListAggsParams{
		Ticker:     ticker,
		Multiplier: 1,
		Timespan:   models.Timespan("day"),
		From:       models.Millis(from),
		To:         models.Millis(to),
	}.
		WithAdjusted(true).
		WithOrder(models.Order("asc")).
		WithLimit(5000)

	it := p.client.ListAggs(ctx, params)

	var bars []Bar
	for it.Next() {
		agg := it.Item()
		bars = append(bars, Bar{
			Date:   time.Time(agg.Timestamp),
			Open:   agg.Open,
			High:   agg.High,
			Low:    agg.Low,
			Close:  agg.Close,
			Volume: agg.Volume,
		})
	}
	if err := it.Err(); err != nil {
		return nil, fmt.Errorf("polygon aggregates: %w", err)
	}
	if len(bars) == 0 {
		return nil, ErrNoPriceData
	}
	return bars, nil
}
