package service

import (
	"fmt"
	"io"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// RenderPNG draws the closing price with both moving average overlays as a
// server-rendered PNG for download. The browser chart stays client-side;
// this is the printable fallback.
func RenderPNG(s *PriceSeries, w io.Writer) error {
	if len(s.Bars) < 2 {
		return fmt.Errorf("not enough data points to render chart")
	}

	dates := make([]time.Time, len(s.Bars))
	closes := make([]float64, len(s.Bars))
	for i, bar := range s.Bars {
		dates[i] = bar.Date
		closes[i] = bar.Close
	}

	series := []chart.Series{
		chart.TimeSeries{
			Name:    "Close",
			XValues: dates,
			YValues: closes,
		},
	}
	if overlay, ok := maOverlay(fmt.Sprintf("%d-day MA", MAShortWindow), dates, s.MA5, MAShortWindow, chart.ColorBlue); ok {
		series = append(series, overlay)
	}
	if overlay, ok := maOverlay(fmt.Sprintf("%d-day MA", MALongWindow), dates, s.MA20, MALongWindow, chart.ColorOrange); ok {
		series = append(series, overlay)
	}

	graph := chart.Chart{
		Title: s.Ticker,
		XAxis: chart.XAxis{
			Name:           "Date",
			ValueFormatter: chart.TimeDateValueFormatter,
		},
		YAxis: chart.YAxis{
			Name: "Price",
		},
		Series: series,
	}

	return graph.Render(chart.PNG, w)
}

// maOverlay builds a line series from the defined tail of a moving average
// column. Undefined leading rows are dropped, not plotted as zero.
func maOverlay(name string, dates []time.Time, values []float64, window int, color drawing.Color) (chart.TimeSeries, bool) {
	if len(values) < window+1 {
		return chart.TimeSeries{}, false
	}
	start := window - 1
	return chart.TimeSeries{
		Name:    name,
		XValues: dates[start:],
		YValues: values[start:],
		Style: chart.Style{
			StrokeColor: color,
		},
	}, true
}
