package handlers_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"stocksearch/config"
	"stocksearch/models"
	"stocksearch/routes"
	"stocksearch/service"
)

const testChannelSecret = "test-channel-secret"

type fakeProvider struct {
	bars map[string][]service.Bar
}

func (f *fakeProvider) FetchDailyBars(ctx context.Context, ticker, beginDate, endDate string) ([]service.Bar, error) {
	bars, ok := f.bars[ticker]
	if !ok || len(bars) == 0 {
		return nil, service.ErrNoPriceData
	}
	return bars, nil
}

type fakeReplier struct {
	tokens []string
	texts  []string
}

func (f *fakeReplier) ReplyText(replyToken, text string) error {
	f.tokens = append(f.tokens, replyToken)
	f.texts = append(f.texts, text)
	return nil
}

func testBars(n int) []service.Bar {
	start := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)
	bars := make([]service.Bar, n)
	for i := range bars {
		price := 500 + float64(i)
		bars[i] = service.Bar{
			Date:   start.AddDate(0, 0, i),
			Open:   price - 1,
			High:   price + 3,
			Low:    price - 3,
			Close:  price,
			Volume: 20000,
		}
	}
	return bars
}

type testApp struct {
	router   *gin.Engine
	store    *models.RecordStore
	provider *fakeProvider
	replier  *fakeReplier
}

func setupApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := db.AutoMigrate(&models.SearchRecord{}); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}

	store := models.NewRecordStore(db)
	provider := &fakeProvider{bars: map[string][]service.Bar{}}
	replier := &fakeReplier{}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	cfg := &config.Config{
		SecretKey:         "test-secret",
		LineChannelSecret: testChannelSecret,
	}

	router := gin.New()
	router.LoadHTMLGlob("../templates/*.html")
	routes.SetupRoutes(router, cfg, store, service.NewChartBuilder(provider), replier, log)

	return &testApp{router: router, store: store, provider: provider, replier: replier}
}

func postForm(app *testApp, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	app.router.ServeHTTP(w, req)
	return w
}

func get(app *testApp, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	app.router.ServeHTTP(w, req)
	return w
}

func TestSubmitSearch_ValidRedirectsToPrice(t *testing.T) {
	app := setupApp(t)

	w := postForm(app, "/", url.Values{
		"ticker":     {"2330.TW"},
		"begin_date": {"2023-01-01"},
		"end_date":   {"2023-03-01"},
	})

	if w.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", w.Code)
	}
	want := "/price/2330.TW?begin_date=2023-01-01&end_date=2023-03-01"
	if loc := w.Header().Get("Location"); loc != want {
		t.Errorf("expected redirect to %q, got %q", want, loc)
	}
}

func TestSubmitSearch_BadTickerSuffix(t *testing.T) {
	app := setupApp(t)

	w := postForm(app, "/", url.Values{
		"ticker":     {"2330"},
		"begin_date": {"2023-01-01"},
		"end_date":   {"2023-03-01"},
	})

	if w.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/" {
		t.Errorf("expected redirect home, got %q", loc)
	}

	records, err := app.store.ListAll()
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("no record should be created on validation failure, got %d", len(records))
	}
}

func TestSubmitSearch_BadDateFormat(t *testing.T) {
	app := setupApp(t)

	w := postForm(app, "/", url.Values{
		"ticker":     {"2330.TW"},
		"begin_date": {"2023-1-1"},
		"end_date":   {"2023-03-01"},
	})

	if w.Code != http.StatusFound || w.Header().Get("Location") != "/" {
		t.Errorf("expected redirect home, got %d -> %q", w.Code, w.Header().Get("Location"))
	}
}

func TestSubmitSearch_BeginNotBeforeEnd(t *testing.T) {
	app := setupApp(t)

	w := postForm(app, "/", url.Values{
		"ticker":     {"2330.TW"},
		"begin_date": {"2023-03-01"},
		"end_date":   {"2023-03-01"},
	})

	if w.Code != http.StatusFound || w.Header().Get("Location") != "/" {
		t.Errorf("expected redirect home, got %d -> %q", w.Code, w.Header().Get("Location"))
	}
}

func TestShowPrice_RendersChartAndPersists(t *testing.T) {
	app := setupApp(t)
	app.provider.bars["2330.TW"] = testBars(25)

	w := get(app, "/price/2330.TW?begin_date=2023-01-01&end_date=2023-03-01")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "2330.TW") {
		t.Error("page should contain the ticker")
	}
	if !strings.Contains(body, "candlestick") {
		t.Error("page should embed the candlestick trace")
	}

	records, err := app.store.ListAll()
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if len(records) != 1 || records[0].Ticker != "2330.TW" {
		t.Errorf("expected the searched ticker to be persisted, got %+v", records)
	}
}

func TestShowPrice_SecondSearchDoesNotDuplicate(t *testing.T) {
	app := setupApp(t)
	app.provider.bars["2330.TW"] = testBars(25)

	get(app, "/price/2330.TW")
	get(app, "/price/2330.TW")

	records, err := app.store.ListAll()
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("expected 1 record after two searches, got %d", len(records))
	}
}

func TestShowPrice_UnknownTickerRedirectsHome(t *testing.T) {
	app := setupApp(t)

	w := get(app, "/price/9999.TW")

	if w.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/" {
		t.Errorf("expected redirect home, got %q", loc)
	}

	records, err := app.store.ListAll()
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("unknown ticker must not be persisted, got %d records", len(records))
	}
}

func TestChartPNG(t *testing.T) {
	app := setupApp(t)
	app.provider.bars["2330.TW"] = testBars(25)

	w := get(app, "/price/2330.TW/chart.png?begin_date=2023-01-01&end_date=2023-03-01")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("expected image/png, got %q", ct)
	}
}

func TestChartPNG_UnknownTicker(t *testing.T) {
	app := setupApp(t)

	w := get(app, "/price/9999.TW/chart.png")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestDeleteRecord(t *testing.T) {
	app := setupApp(t)
	if err := app.store.InsertIfAbsent("2330.TW"); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	w := get(app, "/delete?ticker=2330.TW")

	if w.Code != http.StatusFound || w.Header().Get("Location") != "/" {
		t.Fatalf("expected redirect home, got %d -> %q", w.Code, w.Header().Get("Location"))
	}

	records, err := app.store.ListAll()
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	for _, r := range records {
		if r.Ticker == "2330.TW" {
			t.Error("record should have been deleted")
		}
	}
}

func TestDeleteRecord_AbsentTicker(t *testing.T) {
	app := setupApp(t)

	w := get(app, "/delete?ticker=9999.TW")
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/" {
		t.Fatalf("expected redirect home even when nothing was deleted, got %d", w.Code)
	}
}

func TestShowHome_ListsSavedTickers(t *testing.T) {
	app := setupApp(t)
	if err := app.store.InsertIfAbsent("2330.TW"); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	w := get(app, "/")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "2330.TW") {
		t.Error("home page should list the saved ticker")
	}
}
