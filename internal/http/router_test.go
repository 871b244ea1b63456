package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hkhalifa/deen-companion/internal/auth"
	"github.com/hkhalifa/deen-companion/internal/cache"
	"github.com/hkhalifa/deen-companion/internal/config"
	"github.com/hkhalifa/deen-companion/internal/content/hadith"
	"github.com/hkhalifa/deen-companion/internal/database"
	"github.com/hkhalifa/deen-companion/internal/database/bookmarks"
	"github.com/hkhalifa/deen-companion/internal/database/crm"
	"github.com/hkhalifa/deen-companion/internal/database/prayersettings"
	"github.com/hkhalifa/deen-companion/internal/database/progress"
	"github.com/hkhalifa/deen-companion/internal/database/questions"
	"github.com/hkhalifa/deen-companion/internal/database/searchhistory"
	"github.com/hkhalifa/deen-companion/internal/database/users"
)

// stubAssistant records calls and returns a canned answer or error.
type stubAssistant struct {
	answer string
	err    error
	calls  int
}

func (s *stubAssistant) Generate(_ context.Context, _, _ string) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.answer, nil
}

type testEnv struct {
	router    *gin.Engine
	db        *database.Database
	assistant *stubAssistant
	questions *questions.Repository
	bookmarks *bookmarks.Repository
	crm       *crm.Repository
}

// setupTestRouter builds the full route tree over a file-backed SQLite
// database so the session store and GORM share a connection.
func setupTestRouter(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := database.NewDatabase(config.Database{Driver: config.DriverSQLite, Path: dbPath})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	sqlDB, err := db.SQLDB()
	if err != nil {
		t.Fatalf("failed to get sql handle: %v", err)
	}

	authCfg := config.Auth{
		SessionLifetime:  time.Hour,
		BcryptCost:       10,
		MaxLoginAttempts: 5,
	}
	sessionManager, err := auth.NewSessionManager(sqlDB, config.DriverSQLite, authCfg)
	if err != nil {
		t.Fatalf("failed to create session manager: %v", err)
	}

	userRepo := users.NewRepository(db.DB)
	authService := auth.NewService(userRepo, authCfg)
	disabledCache, err := cache.New("")
	if err != nil {
		t.Fatalf("failed to create cache: %v", err)
	}

	ai := &stubAssistant{answer: "stub answer"}
	questionRepo := questions.NewRepository(db.DB)
	bookmarkRepo := bookmarks.NewRepository(db.DB)
	crmRepo := crm.NewRepository(db.DB)

	router := NewRouter(RouterConfig{
		Database: db,
		Cache:    disabledCache,

		Users:          userRepo,
		Bookmarks:      bookmarkRepo,
		Progress:       progress.NewRepository(db.DB),
		PrayerSettings: prayersettings.NewRepository(db.DB),
		Questions:      questionRepo,
		SearchHistory:  searchhistory.NewRepository(db.DB),
		CRM:            crmRepo,

		AuthService:    authService,
		SessionManager: sessionManager,
		AuthMiddleware: auth.NewMiddleware(authService, sessionManager),
		RateLimiter:    auth.NewRateLimiter(auth.RateLimitConfig{}),

		Assistant: ai,
		Hadith:    hadith.NewClient("", ""),

		Version: "test",
	})

	return &testEnv{
		router:    router,
		db:        db,
		assistant: ai,
		questions: questionRepo,
		bookmarks: bookmarkRepo,
		crm:       crmRepo,
	}
}

// request performs one request against the test router, attaching the
// session cookies when given.
func (e *testEnv) request(t *testing.T, method, path string, body any, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// signup registers a user and returns the session cookies.
func (e *testEnv) signup(t *testing.T, username string) []*http.Cookie {
	t.Helper()
	w := e.request(t, http.MethodPost, "/api/register", gin.H{
		"username": username,
		"email":    username + "@example.com",
		"password": "password12345",
	}, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("register returned %d: %s", w.Code, w.Body.String())
	}
	cookies := w.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("register did not set a session cookie")
	}
	return cookies
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, dest any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), dest); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
}

func TestHealthEndpoint(t *testing.T) {
	env := setupTestRouter(t)

	w := env.request(t, http.MethodGet, "/api/health", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body struct {
		Status  string            `json:"status"`
		Version string            `json:"version"`
		Checks  map[string]string `json:"checks"`
	}
	decodeBody(t, w, &body)
	if body.Status != "healthy" {
		t.Errorf("expected healthy, got %q", body.Status)
	}
	if body.Version != "test" {
		t.Errorf("expected version test, got %q", body.Version)
	}
	if body.Checks["database"] != "ok" {
		t.Errorf("database check = %q", body.Checks["database"])
	}
	if body.Checks["cache"] != "disabled" {
		t.Errorf("cache check = %q, expected disabled without redis", body.Checks["cache"])
	}
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	env := setupTestRouter(t)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/user"},
		{http.MethodGet, "/api/bookmarks"},
		{http.MethodGet, "/api/questions"},
		{http.MethodPost, "/api/ask"},
		{http.MethodGet, "/api/clients"},
		{http.MethodGet, "/api/reports/summary"},
	}
	for _, p := range paths {
		w := env.request(t, p.method, p.path, nil, nil)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: expected 401, got %d", p.method, p.path, w.Code)
		}
	}
	if env.assistant.calls != 0 {
		t.Errorf("assistant must not be invoked without a session, got %d calls", env.assistant.calls)
	}
}

func TestLoginLogoutCycle(t *testing.T) {
	env := setupTestRouter(t)
	env.signup(t, "khadija")

	w := env.request(t, http.MethodPost, "/api/login", gin.H{
		"username": "khadija",
		"password": "password12345",
	}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("login returned %d: %s", w.Code, w.Body.String())
	}
	cookies := w.Result().Cookies()

	if w := env.request(t, http.MethodGet, "/api/user", nil, cookies); w.Code != http.StatusOK {
		t.Fatalf("expected 200 with session, got %d", w.Code)
	}

	if w := env.request(t, http.MethodPost, "/api/logout", nil, cookies); w.Code != http.StatusOK {
		t.Fatalf("logout returned %d", w.Code)
	}
}

func TestWrongPasswordRejected(t *testing.T) {
	env := setupTestRouter(t)
	env.signup(t, "bilal")

	w := env.request(t, http.MethodPost, "/api/login", gin.H{
		"username": "bilal",
		"password": "not-the-password",
	}, nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}
