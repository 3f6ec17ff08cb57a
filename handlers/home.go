package handlers

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"stocksearch/models"
	"stocksearch/validation"
)

// HomeHandler serves the search form, the saved-ticker list and deletion.
type HomeHandler struct {
	store *models.RecordStore
	log   *slog.Logger
}

func NewHomeHandler(store *models.RecordStore, log *slog.Logger) *HomeHandler {
	return &HomeHandler{store: store, log: log}
}

// ShowHome renders the search form together with every saved ticker.
func (h *HomeHandler) ShowHome(c *gin.Context) {
	records, err := h.store.ListAll()
	if err != nil {
		h.log.Error("failed to list search records", "error", err)
		c.String(http.StatusInternalServerError, "internal server error")
		return
	}
	c.HTML(http.StatusOK, "index.html", gin.H{
		"Records": records,
		"Flashes": takeFlashes(c),
	})
}

// SubmitSearch validates the form and redirects: to the price page on
// success, back to the form with a flash on any input error. The redirect
// deliberately clears the submitted inputs.
func (h *HomeHandler) SubmitSearch(c *gin.Context) {
	ticker := strings.TrimSpace(c.PostForm("ticker"))
	beginDate := strings.TrimSpace(c.PostForm("begin_date"))
	endDate := strings.TrimSpace(c.PostForm("end_date"))

	if !validation.IsValidTickerSuffix(ticker) {
		flash(c, msgBadTickerFormat)
		c.Redirect(http.StatusFound, "/")
		return
	}
	if !validation.IsValidDateFormat(beginDate) || !validation.IsValidDateFormat(endDate) {
		flash(c, msgBadDateFormat)
		c.Redirect(http.StatusFound, "/")
		return
	}
	if !validation.IsChronological(beginDate, endDate) {
		flash(c, msgBadDateRange)
		c.Redirect(http.StatusFound, "/")
		return
	}

	query := url.Values{}
	query.Set("begin_date", beginDate)
	query.Set("end_date", endDate)
	c.Redirect(http.StatusFound, "/price/"+url.PathEscape(ticker)+"?"+query.Encode())
}

// DeleteRecord removes a saved ticker and redirects home unconditionally,
// whether or not a record existed.
func (h *HomeHandler) DeleteRecord(c *gin.Context) {
	if ticker := c.Query("ticker"); ticker != "" {
		if err := h.store.DeleteByTicker(ticker); err != nil {
			h.log.Error("failed to delete search record", "ticker", ticker, "error", err)
			c.String(http.StatusInternalServerError, "internal server error")
			return
		}
	}
	c.Redirect(http.StatusFound, "/")
}
