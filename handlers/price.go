package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"stocksearch/models"
	"stocksearch/service"
	"stocksearch/validation"
)

// defaultLookbackDays is the window used when a saved-record link supplies
// no explicit date range.
const defaultLookbackDays = 90

// PriceHandler serves the candlestick chart page and its PNG export.
type PriceHandler struct {
	store  *models.RecordStore
	charts *service.ChartBuilder
	log    *slog.Logger
}

func NewPriceHandler(store *models.RecordStore, charts *service.ChartBuilder, log *slog.Logger) *PriceHandler {
	return &PriceHandler{store: store, charts: charts, log: log}
}

func requestedRange(c *gin.Context) (string, string) {
	beginDate := c.Query("begin_date")
	endDate := c.Query("end_date")
	if beginDate == "" || endDate == "" {
		now := time.Now()
		beginDate = now.AddDate(0, 0, -defaultLookbackDays).Format(validation.DateLayout)
		endDate = now.Format(validation.DateLayout)
	}
	return beginDate, endDate
}

// ShowPrice fetches the price series, persists the ticker on the first
// successful search, and renders the chart page. An unknown ticker flashes
// and goes back home without persisting anything.
func (h *PriceHandler) ShowPrice(c *gin.Context) {
	ticker := c.Param("ticker")
	beginDate, endDate := requestedRange(c)

	series, err := h.charts.Series(c.Request.Context(), ticker, beginDate, endDate)
	if errors.Is(err, service.ErrNoPriceData) {
		flash(c, msgTickerNotFound)
		c.Redirect(http.StatusFound, "/")
		return
	}
	if err != nil {
		h.log.Error("price fetch failed", "ticker", ticker, "error", err)
		c.String(http.StatusInternalServerError, "internal server error")
		return
	}

	if err := h.store.InsertIfAbsent(ticker); err != nil {
		h.log.Error("failed to persist searched ticker", "ticker", ticker, "error", err)
		c.String(http.StatusInternalServerError, "internal server error")
		return
	}

	chartJSON, err := json.Marshal(service.BuildFigure(series))
	if err != nil {
		h.log.Error("failed to serialize chart", "ticker", ticker, "error", err)
		c.String(http.StatusInternalServerError, "internal server error")
		return
	}

	c.HTML(http.StatusOK, "price.html", gin.H{
		"Ticker":    ticker,
		"ChartJSON": template.JS(chartJSON),
	})
}

// ChartPNG renders the close/MA series as a downloadable PNG. It is
// view-only and never persists the ticker.
func (h *PriceHandler) ChartPNG(c *gin.Context) {
	ticker := c.Param("ticker")
	beginDate, endDate := requestedRange(c)

	series, err := h.charts.Series(c.Request.Context(), ticker, beginDate, endDate)
	if errors.Is(err, service.ErrNoPriceData) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no price data for ticker"})
		return
	}
	if err != nil {
		h.log.Error("price fetch failed", "ticker", ticker, "error", err)
		c.String(http.StatusInternalServerError, "internal server error")
		return
	}

	var buf bytes.Buffer
	if err := service.RenderPNG(series, &buf); err != nil {
		h.log.Error("failed to render chart png", "ticker", ticker, "error", err)
		c.String(http.StatusInternalServerError, "internal server error")
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}
