package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"html"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Markdcoder/mobile-fintech-dashboard/internal/auth"
	"github.com/Markdcoder/mobile-fintech-dashboard/internal/cache"
	"github.com/Markdcoder/mobile-fintech-dashboard/internal/core"
	"github.com/Markdcoder/mobile-fintech-dashboard/internal/ledger/memory"
	applog "github.com/Markdcoder/mobile-fintech-dashboard/internal/log"
	"github.com/Markdcoder/mobile-fintech-dashboard/internal/services"
	"github.com/Markdcoder/mobile-fintech-dashboard/internal/theme"
)

const (
	testEmail    = "demo@example.com"
	testPassword = "correct horse battery"
)

func newTestServer(t *testing.T, ready func(context.Context) error) *Server {
	t.Helper()
	return newTestServerWithLogger(t, ready, nil)
}

func newTestServerWithLogger(t *testing.T, ready func(context.Context) error, logger *applog.Logger) *Server {
	t.Helper()

	hash, err := auth.HashPassword(testPassword)
	require.NoError(t, err)

	store := memory.New(memory.DefaultDataset())
	filterCache := cache.NewLRUCache[[]core.Transaction](16, time.Minute)

	srv := NewServer(":0", Deps{
		Dashboard:     services.NewDashboardService(store, store, store, filterCache),
		Actions:       services.NewActionService(store, nil),
		Authenticator: auth.NewBcryptAuthenticator(testEmail, hash),
		Sessions:      auth.NewSessionManager(strings.Repeat("k", 32), time.Hour),
		Logger:        logger,
		Ready:         ready,
		CacheStats:    filterCache.Stats,
	})
	t.Cleanup(func() { _ = srv.Shutdown(context.Background()) })
	return srv
}

func do(srv *Server, req *http.Request, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, req)
	return rr
}

func postForm(target string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func signIn(t *testing.T, srv *Server) *http.Cookie {
	t.Helper()
	rr := do(srv, postForm("/login", url.Values{"email": {testEmail}, "password": {testPassword}}))
	require.Equal(t, http.StatusSeeOther, rr.Code)
	for _, c := range rr.Result().Cookies() {
		if c.Name == auth.SessionCookieName {
			return c
		}
	}
	t.Fatal("session cookie not set")
	return nil
}

func TestHealthAndReady(t *testing.T) {
	srv := newTestServer(t, nil)

	for _, path := range []string{"/healthz", "/readyz"} {
		rr := do(srv, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rr.Code, path)
		assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	}

	failing := newTestServer(t, func(context.Context) error { return errors.New("db locked") })
	rr := do(failing, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Contains(t, rr.Body.String(), "db locked")
}

func TestSecurityHeadersAndRequestID(t *testing.T) {
	srv := newTestServer(t, nil)
	rr := do(srv, httptest.NewRequest(http.MethodGet, "/login", nil))

	assert.Equal(t, "DENY", rr.Header().Get("X-Frame-Options"))
	assert.NotEmpty(t, rr.Header().Get("Content-Security-Policy"))
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
}

func TestIndexRedirects(t *testing.T) {
	srv := newTestServer(t, nil)

	rr := do(srv, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/login", rr.Header().Get("Location"))

	cookie := signIn(t, srv)
	rr = do(srv, httptest.NewRequest(http.MethodGet, "/", nil), cookie)
	assert.Equal(t, "/dashboard", rr.Header().Get("Location"))
}

func TestLogin(t *testing.T) {
	srv := newTestServer(t, nil)

	t.Run("form renders", func(t *testing.T) {
		rr := do(srv, httptest.NewRequest(http.MethodGet, "/login", nil))
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "Welcome back")

		rr = do(srv, httptest.NewRequest(http.MethodGet, "/login?mode=signup", nil))
		assert.Contains(t, rr.Body.String(), "Create your account")
	})

	tests := []struct {
		name     string
		email    string
		password string
		wantMsg  string
	}{
		{"missing email", "", testPassword, msgMissingCredentials},
		{"missing password", testEmail, "", msgMissingCredentials},
		{"blank email", "   ", testPassword, msgInvalidCredentials},
		{"wrong password", testEmail, "nope", "Invalid email or password."},
		{"unknown user", "other@example.com", testPassword, "Invalid email or password."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(srv, postForm("/login", url.Values{"email": {tt.email}, "password": {tt.password}}))
			assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
			assert.Contains(t, rr.Body.String(), tt.wantMsg)
			assert.Empty(t, rr.Result().Cookies())
		})
	}

	t.Run("json body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"email":"demo@example.com","password":"bad"}`))
		req.Header.Set("Content-Type", "application/json")
		rr := do(srv, req)
		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
		assert.JSONEq(t, `{"error":"Invalid email or password."}`, rr.Body.String())
	})

	t.Run("success", func(t *testing.T) {
		cookie := signIn(t, srv)
		assert.True(t, cookie.HttpOnly)
	})

	t.Run("method not allowed", func(t *testing.T) {
		rr := do(srv, httptest.NewRequest(http.MethodPut, "/login", nil))
		assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	})
}

func TestLogout(t *testing.T) {
	srv := newTestServer(t, nil)
	cookie := signIn(t, srv)

	rr := do(srv, httptest.NewRequest(http.MethodPost, "/logout", nil), cookie)
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/login", rr.Header().Get("Location"))
	cleared := rr.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Less(t, cleared[0].MaxAge, 0)
}

func TestDashboardRequiresSession(t *testing.T) {
	srv := newTestServer(t, nil)

	rr := do(srv, httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/login", rr.Header().Get("Location"))

	for _, path := range []string{"/ui/transactions", "/api/transactions"} {
		rr := do(srv, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusUnauthorized, rr.Code, path)
	}

	rr = do(srv, httptest.NewRequest(http.MethodGet, "/dashboard", nil),
		&http.Cookie{Name: auth.SessionCookieName, Value: "forged"})
	assert.Equal(t, http.StatusSeeOther, rr.Code)
}

func TestDashboardRenders(t *testing.T) {
	srv := newTestServer(t, nil)
	cookie := signIn(t, srv)

	rr := do(srv, httptest.NewRequest(http.MethodGet, "/dashboard", nil), cookie)
	require.Equal(t, http.StatusOK, rr.Code)
	body := html.UnescapeString(rr.Body.String())

	assert.Contains(t, body, "Everyday Checking")
	assert.Contains(t, body, "$18,425.67")
	assert.Contains(t, body, "Blue Bottle Coffee")
	assert.Contains(t, body, "Payroll Deposit ACME Corp")
	assert.Contains(t, body, "+$4,250.00")
	assert.Contains(t, body, "Transfer")
	assert.Contains(t, body, testEmail)
	assert.Equal(t, "no-store", rr.Header().Get("Cache-Control"))
}

func TestDashboardFilter(t *testing.T) {
	srv := newTestServer(t, nil)
	cookie := signIn(t, srv)

	rr := do(srv, httptest.NewRequest(http.MethodGet, "/dashboard?q=coffee", nil), cookie)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Blue Bottle Coffee")
	assert.NotContains(t, rr.Body.String(), "Whole Foods Market")

	rr = do(srv, httptest.NewRequest(http.MethodGet, "/dashboard?q=zzzz", nil), cookie)
	assert.Contains(t, rr.Body.String(), emptyResultMessage)
}

func TestTransactionsPartial(t *testing.T) {
	srv := newTestServer(t, nil)
	cookie := signIn(t, srv)

	rr := do(srv, httptest.NewRequest(http.MethodGet, "/ui/transactions?category=bill", nil), cookie)
	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()

	assert.Contains(t, body, "Electric Company")
	assert.Contains(t, body, "Mobile Phone Plan")
	assert.NotContains(t, body, "Blue Bottle Coffee")
	assert.NotContains(t, body, "<html")
	assert.Contains(t, rr.Header().Get("HX-Trigger"), `"count":2`)
}

func TestTransactionsAPI(t *testing.T) {
	srv := newTestServer(t, nil)
	cookie := signIn(t, srv)

	rr := do(srv, httptest.NewRequest(http.MethodGet, "/api/transactions?q=UTL&category=all", nil), cookie)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Query        string `json:"query"`
		Category     string `json:"category"`
		Count        int    `json:"count"`
		Transactions []struct {
			ID       string `json:"id"`
			Category string `json:"category"`
		} `json:"transactions"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "UTL", resp.Query)
	assert.Equal(t, "all", resp.Category)
	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, "tx-1002", resp.Transactions[0].ID)
	assert.Equal(t, "tx-1007", resp.Transactions[1].ID)

	rr = do(srv, httptest.NewRequest(http.MethodGet, "/api/transactions?q=nothing-matches", nil), cookie)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.Count)
	assert.NotNil(t, resp.Transactions)
}

func TestQuickAction(t *testing.T) {
	srv := newTestServer(t, nil)
	cookie := signIn(t, srv)

	req := httptest.NewRequest(http.MethodPost, "/actions/transfer", nil)
	req.Header.Set("HX-Request", "true")
	rr := do(srv, req, cookie)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Transfer flow - demo")
	assert.Contains(t, rr.Body.String(), "Quick Action")
	assert.Contains(t, rr.Header().Get("HX-Trigger"), "action:acknowledged")

	rr = do(srv, httptest.NewRequest(http.MethodPost, "/actions/transfer", nil), cookie)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "<html")
	assert.Contains(t, rr.Body.String(), "Transfer flow - demo")

	rr = do(srv, httptest.NewRequest(http.MethodPost, "/actions/launch-rocket", nil), cookie)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = do(srv, httptest.NewRequest(http.MethodGet, "/actions/transfer", nil), cookie)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestThemeToggle(t *testing.T) {
	srv := newTestServer(t, nil)

	rr := do(srv, postForm("/theme", url.Values{"return": {"/login"}}))
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/login", rr.Header().Get("Location"))

	var themeCookie *http.Cookie
	for _, c := range rr.Result().Cookies() {
		if c.Name == theme.CookieName {
			themeCookie = c
		}
	}
	require.NotNil(t, themeCookie)
	assert.Equal(t, "dark", themeCookie.Value)

	rr = do(srv, httptest.NewRequest(http.MethodGet, "/login", nil), themeCookie)
	assert.Contains(t, rr.Body.String(), `data-theme="dark"`)
	assert.Contains(t, rr.Body.String(), "#1e293b")

	rr = do(srv, postForm("/theme", url.Values{"return": {"//evil.example"}}))
	assert.Equal(t, "/", rr.Header().Get("Location"))
}

func TestMetrics(t *testing.T) {
	srv := newTestServer(t, nil)
	cookie := signIn(t, srv)
	do(srv, httptest.NewRequest(http.MethodGet, "/ui/transactions", nil), cookie)
	do(srv, httptest.NewRequest(http.MethodGet, "/ui/transactions", nil), cookie)

	rr := do(srv, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var out map[string]map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	assert.EqualValues(t, 1, out["filter_cache"]["hits"])
	assert.EqualValues(t, 1, out["filter_cache"]["misses"])
	assert.Greater(t, out["requests"]["total"].(float64), float64(0))
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func logLines(out, msg string) []string {
	var lines []string
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, msg) {
			lines = append(lines, line)
		}
	}
	return lines
}

func TestHandlerLogs(t *testing.T) {
	var buf syncBuffer
	logger := applog.New(applog.Config{
		Component: applog.ComponentApp,
		Handler:   slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}),
	})
	srv := newTestServerWithLogger(t, func(context.Context) error { return errors.New("db down") }, logger)

	t.Run("request id on handler logs", func(t *testing.T) {
		rr := do(srv, httptest.NewRequest(http.MethodGet, "/readyz", nil))
		require.Equal(t, http.StatusServiceUnavailable, rr.Code)
		requestID := rr.Header().Get("X-Request-ID")
		require.NotEmpty(t, requestID)

		lines := logLines(buf.String(), "Readiness check failed")
		require.Len(t, lines, 1)
		assert.Contains(t, lines[0], "request_id="+requestID)
		assert.Contains(t, lines[0], "component=http")
	})

	t.Run("rejected sign-in is masked", func(t *testing.T) {
		rr := do(srv, postForm("/login", url.Values{"email": {"mallory@evil.example"}, "password": {"nope"}}))
		require.Equal(t, http.StatusUnprocessableEntity, rr.Code)

		lines := logLines(buf.String(), "Sign-in rejected")
		require.Len(t, lines, 1)
		assert.Contains(t, lines[0], "user=***@evil.example")
		assert.NotContains(t, lines[0], "mallory")
		assert.Equal(t, 1, strings.Count(lines[0], "component="))
		assert.Contains(t, lines[0], "component=auth")
		assert.Contains(t, lines[0], "request_id=")
	})
}
