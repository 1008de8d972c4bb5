package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"cryptomaster/analysis"
	"cryptomaster/cache"
	"cryptomaster/database"
	"cryptomaster/locale"
	"cryptomaster/models"
	"cryptomaster/settings"

	"github.com/gin-gonic/gin"
)

type staticUpdates struct {
	info *models.UpdateInfo
}

func (s staticUpdates) Latest() *models.UpdateInfo { return s.info }

type testServer struct {
	router *gin.Engine
	locale *locale.Store
}

func newTestServer(t *testing.T, updates UpdateSource) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	store, err := locale.NewStore(database.NewPreferenceStore(db))
	if err != nil {
		t.Fatal(err)
	}

	agg := analysis.NewAggregator(analysis.NewMockSource(1))
	h := New(Deps{
		Query:      cache.NewQuery(cache.NewMemory(0), agg),
		Aggregator: agg,
		Locale:     store,
		Settings:   settings.NewService(db),
		Updates:    updates,
	})

	r := gin.New()
	h.Register(r)
	return &testServer{router: r, locale: store}
}

func (s *testServer) do(method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func TestRoutes(t *testing.T) {
	s := newTestServer(t, nil)

	tests := []struct {
		name   string
		path   string
		status int
	}{
		{"welcome", "/welcome", http.StatusOK},
		{"dashboard", "/dashboard", http.StatusOK},
		{"markets", "/markets?q=bit", http.StatusOK},
		{"analysis", "/analysis", http.StatusOK},
		{"settings", "/settings", http.StatusOK},
		{"not found", "/does-not-exist", http.StatusNotFound},
		{"health", "/healthz", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(http.MethodGet, tt.path, "")
			if w.Code != tt.status {
				t.Errorf("GET %s = %d, want %d: %s", tt.path, w.Code, tt.status, w.Body.String())
			}
		})
	}
}

func TestRootRedirectsToDashboard(t *testing.T) {
	s := newTestServer(t, nil)

	w := s.do(http.MethodGet, "/", "")
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/dashboard" {
		t.Errorf("GET / = %d -> %q", w.Code, w.Header().Get("Location"))
	}
}

func TestPageDirectionFollowsLanguage(t *testing.T) {
	s := newTestServer(t, nil)

	w := s.do(http.MethodGet, "/dashboard", "")
	if !strings.Contains(w.Body.String(), `dir="rtl"`) || !strings.Contains(w.Body.String(), "לוח בקרה") {
		t.Error("default page should render in Hebrew, right to left")
	}

	w = s.do(http.MethodGet, "/dashboard?lang=en", "")
	if !strings.Contains(w.Body.String(), `dir="ltr"`) || !strings.Contains(w.Body.String(), "Recent Transactions") {
		t.Error("?lang=en should render in English, left to right")
	}
}

func TestAnalysisAPI(t *testing.T) {
	s := newTestServer(t, nil)

	w := s.do(http.MethodGet, "/api/analysis?coins=BTC,ETH", "")
	var before cache.State
	if err := json.Unmarshal(w.Body.Bytes(), &before); err != nil {
		t.Fatal(err)
	}
	if before.Result != nil || !before.Stale || before.LastUpdated != "Never" {
		t.Errorf("GET /api/analysis before run = %+v", before)
	}

	w = s.do(http.MethodPost, "/api/analysis/run", `{"coins":["BTC","ETH"]}`)
	if w.Code != http.StatusOK {
		t.Fatalf("run = %d: %s", w.Code, w.Body.String())
	}

	w = s.do(http.MethodGet, "/api/analysis?coins=BTC,ETH", "")
	var after cache.State
	if err := json.Unmarshal(w.Body.Bytes(), &after); err != nil {
		t.Fatal(err)
	}
	if after.Result == nil {
		t.Fatal("no cached result after run")
	}
	if len(after.Result.Predictions) != 2 || len(after.Result.NewsImpact) != 3 {
		t.Errorf("got %d predictions, %d news", len(after.Result.Predictions), len(after.Result.NewsImpact))
	}
	if after.Stale {
		t.Error("fresh result reported stale")
	}
}

func TestPredictValidatesTimeframe(t *testing.T) {
	s := newTestServer(t, nil)

	if w := s.do(http.MethodGet, "/api/predict/BTC?timeframe=1y", ""); w.Code != http.StatusBadRequest {
		t.Errorf("invalid timeframe = %d, want 400", w.Code)
	}

	w := s.do(http.MethodGet, "/api/predict/btc?timeframe=24h", "")
	if w.Code != http.StatusOK {
		t.Fatalf("predict = %d", w.Code)
	}
	var p models.AIPrediction
	if err := json.Unmarshal(w.Body.Bytes(), &p); err != nil {
		t.Fatal(err)
	}
	if p.Coin != "BTC" || p.Timeframe != models.Timeframe24h {
		t.Errorf("prediction = %+v", p)
	}
}

func TestLocaleAPI(t *testing.T) {
	s := newTestServer(t, nil)

	w := s.do(http.MethodPut, "/api/locale", `{"language":"en"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("PUT /api/locale = %d", w.Code)
	}
	if s.locale.Language() != locale.English {
		t.Errorf("language = %s, want en", s.locale.Language())
	}

	if w := s.do(http.MethodPut, "/api/locale", `{"language":"de"}`); w.Code != http.StatusBadRequest {
		t.Errorf("unsupported language = %d, want 400", w.Code)
	}

	w = s.do(http.MethodPost, "/api/locale/toggle", "")
	if !strings.Contains(w.Body.String(), `"dir":"rtl"`) {
		t.Errorf("toggle body = %s", w.Body.String())
	}

	w = s.do(http.MethodGet, "/api/locale/t/missingKey", "")
	if !strings.Contains(w.Body.String(), `"text":"missingKey"`) {
		t.Errorf("missing key body = %s", w.Body.String())
	}
}

func TestToggleLanguageRedirect(t *testing.T) {
	s := newTestServer(t, nil)

	tests := []struct {
		next, want string
	}{
		{"/markets", "/markets"},
		{"//evil.example.com", "/dashboard"},
		{"https://evil.example.com/x", "/dashboard"},
		{"", "/dashboard"},
	}

	for _, tt := range tests {
		form := url.Values{"next": {tt.next}}
		req := httptest.NewRequest(http.MethodPost, "/language/toggle", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := httptest.NewRecorder()
		s.router.ServeHTTP(w, req)

		if w.Code != http.StatusSeeOther || w.Header().Get("Location") != tt.want {
			t.Errorf("next=%q redirected %d to %q, want %q", tt.next, w.Code, w.Header().Get("Location"), tt.want)
		}
	}
}

func TestConnectPageRejectsUnreadableForm(t *testing.T) {
	s := newTestServer(t, nil)

	w := s.do(http.MethodPost, "/settings/connect", `{"api_key":`)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("connect = %d, want 303", w.Code)
	}
	if loc := w.Header().Get("Location"); !strings.Contains(loc, "toast=invalidRequest") {
		t.Errorf("Location = %q, want invalidRequest toast", loc)
	}

	w = s.do(http.MethodPost, "/settings/connect", `{"api_key":"abc"}`)
	if loc := w.Header().Get("Location"); !strings.Contains(loc, "toast=missingInfo") {
		t.Errorf("Location = %q, want missingInfo toast", loc)
	}
}

func TestConnectAPIRequiresCredentials(t *testing.T) {
	s := newTestServer(t, nil)

	w := s.do(http.MethodPost, "/api/settings/connect?lang=en", `{"api_key":"abc"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("connect = %d, want 400", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Missing Information") {
		t.Errorf("body = %s", w.Body.String())
	}

	w = s.do(http.MethodPost, "/api/settings/connect", `{"api_key":"abcdef","api_secret":"s3cret"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("connect = %d: %s", w.Code, w.Body.String())
	}

	w = s.do(http.MethodGet, "/api/settings", "")
	if strings.Contains(w.Body.String(), "s3cret") || !strings.Contains(w.Body.String(), "**cdef") {
		t.Errorf("settings leaked or unmasked: %s", w.Body.String())
	}
}

func TestUpdateNotice(t *testing.T) {
	s := newTestServer(t, nil)
	if w := s.do(http.MethodGet, "/api/update", ""); strings.TrimSpace(w.Body.String()) != "null" {
		t.Errorf("GET /api/update = %s, want null", w.Body.String())
	}

	s = newTestServer(t, staticUpdates{&models.UpdateInfo{Version: "2.0.0", Required: true, URL: "https://example.com/dl"}})
	w := s.do(http.MethodGet, "/dashboard?lang=en", "")
	if !strings.Contains(w.Body.String(), "A new version 2.0.0 is required to continue") {
		t.Error("required update overlay not rendered")
	}
}
