package service

import (
	"context"
	"fmt"
	"math"

	"stocksearch/validation"
)

// Moving average windows drawn on the price chart.
const (
	MAShortWindow = 5
	MALongWindow  = 20
)

// Taiwan market convention: red for up days, green for down days.
const (
	colorUp      = "red"
	colorDown    = "green"
	colorMAShort = "blue"
	colorMALong  = "orange"
)

// PriceSeries is a date-indexed OHLC table with the two derived moving
// average columns. It lives for one request and is never cached.
type PriceSeries struct {
	Ticker string
	Bars   []Bar
	MA5    []float64 // NaN for the first MAShortWindow-1 rows
	MA20   []float64 // NaN for the first MALongWindow-1 rows
}

// ChartBuilder fetches a price series and derives its chart inputs.
type ChartBuilder struct {
	provider PriceProvider
}

func NewChartBuilder(provider PriceProvider) *ChartBuilder {
	return &ChartBuilder{provider: provider}
}

// Series fetches the daily bars for ticker over [beginDate, endDate) and
// computes the moving average columns. An empty provider result is
// ErrNoPriceData; the caller must not persist the ticker in that case.
func (b *ChartBuilder) Series(ctx context.Context, ticker, beginDate, endDate string) (*PriceSeries, error) {
	bars, err := b.provider.FetchDailyBars(ctx, ticker, beginDate, endDate)
	if err != nil {
		return nil, err
	}
	if len(bars) == 0 {
		return nil, ErrNoPriceData
	}

	closes := make([]float64, len(bars))
	for i, bar := range bars {
		closes[i] = bar.Close
	}

	return &PriceSeries{
		Ticker: ticker,
		Bars:   bars,
		MA5:    RollingSMA(closes, MAShortWindow),
		MA20:   RollingSMA(closes, MALongWindow),
	}, nil
}

// Labels returns the per-row date strings. Rendering categorical labels
// instead of a time axis skips the gaps of non-trading days.
func (s *PriceSeries) Labels() []string {
	labels := make([]string, len(s.Bars))
	for i, bar := range s.Bars {
		labels[i] = bar.Date.Format(validation.DateLayout)
	}
	return labels
}

// Plotly-compatible figure description, rendered client-side by the price
// page. Only the fields this application sets are modelled.

type Figure struct {
	Data   []any  `json:"data"`
	Layout Layout `json:"layout"`
}

type Layout struct {
	Title Title `json:"title"`
	XAxis XAxis `json:"xaxis"`
}

type Title struct {
	Text string `json:"text"`
}

type XAxis struct {
	Type        string      `json:"type"`
	RangeSlider RangeSlider `json:"rangeslider"`
}

type RangeSlider struct {
	Visible bool `json:"visible"`
}

type LineStyle struct {
	Color string `json:"color"`
}

type CandleBound struct {
	Line LineStyle `json:"line"`
}

type CandlestickTrace struct {
	Type       string      `json:"type"`
	X          []string    `json:"x"`
	Open       []float64   `json:"open"`
	High       []float64   `json:"high"`
	Low        []float64   `json:"low"`
	Close      []float64   `json:"close"`
	ShowLegend bool        `json:"showlegend"`
	Increasing CandleBound `json:"increasing"`
	Decreasing CandleBound `json:"decreasing"`
}

type ScatterTrace struct {
	Type string     `json:"type"`
	Mode string     `json:"mode"`
	Name string     `json:"name"`
	X    []string   `json:"x"`
	Y    []*float64 `json:"y"` // null on rows where the value is undefined
	Line LineStyle  `json:"line"`
}

// BuildFigure assembles the candlestick trace and the two moving average
// overlays. The candlestick carries no legend entry; the overlays do. The
// x-axis is categorical with the range slider hidden, and the chart title is
// the ticker symbol.
func BuildFigure(s *PriceSeries) *Figure {
	labels := s.Labels()

	open := make([]float64, len(s.Bars))
	high := make([]float64, len(s.Bars))
	low := make([]float64, len(s.Bars))
	closes := make([]float64, len(s.Bars))
	for i, bar := range s.Bars {
		open[i] = bar.Open
		high[i] = bar.High
		low[i] = bar.Low
		closes[i] = bar.Close
	}

	candles := CandlestickTrace{
		Type:       "candlestick",
		X:          labels,
		Open:       open,
		High:       high,
		Low:        low,
		Close:      closes,
		ShowLegend: false,
		Increasing: CandleBound{Line: LineStyle{Color: colorUp}},
		Decreasing: CandleBound{Line: LineStyle{Color: colorDown}},
	}

	maShort := ScatterTrace{
		Type: "scatter",
		Mode: "lines",
		Name: fmt.Sprintf("%d-day MA", MAShortWindow),
		X:    labels,
		Y:    nullableColumn(s.MA5),
		Line: LineStyle{Color: colorMAShort},
	}
	maLong := ScatterTrace{
		Type: "scatter",
		Mode: "lines",
		Name: fmt.Sprintf("%d-day MA", MALongWindow),
		X:    labels,
		Y:    nullableColumn(s.MA20),
		Line: LineStyle{Color: colorMALong},
	}

	return &Figure{
		Data: []any{candles, maShort, maLong},
		Layout: Layout{
			Title: Title{Text: s.Ticker},
			XAxis: XAxis{
				Type:        "category",
				RangeSlider: RangeSlider{Visible: false},
			},
		},
	}
}

// nullableColumn maps NaN entries to JSON null so undefined leading rows
// render as gaps rather than breaking serialization.
func nullableColumn(values []float64) []*float64 {
	out := make([]*float64, len(values))
	for i := range values {
		if math.IsNaN(values[i]) {
			continue
		}
		v := values[i]
		out[i] = &v
	}
	return out
}
