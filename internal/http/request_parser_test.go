package http

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func TestParseFilterParams(t *testing.T) {
	tests := []struct {
		name         string
		query        url.Values
		wantQuery    string
		wantCategory string
	}{
		{"empty uses all", url.Values{}, "", "all"},
		{"empty category uses all", url.Values{"category": {""}}, "", "all"},
		{"query kept verbatim", url.Values{"q": {"  Coffee "}}, "  Coffee ", "all"},
		{"category passed through", url.Values{"category": {"Bill"}}, "", "Bill"},
		{"sentinel is case sensitive", url.Values{"category": {"ALL"}}, "", "ALL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseFilterParams(tt.query)
			if got.Query != tt.wantQuery || got.Category != tt.wantCategory {
				t.Errorf("ParseFilterParams() = %+v, want {%q %q}", got, tt.wantQuery, tt.wantCategory)
			}
		})
	}
}

func TestFilterParamsEncode(t *testing.T) {
	if got := (FilterParams{Category: "all"}).Encode(); got != "" {
		t.Errorf("Encode() = %q, want empty", got)
	}
	if got := (FilterParams{Query: "a b", Category: "Bill"}).Encode(); got != "category=Bill&q=a+b" {
		t.Errorf("Encode() = %q", got)
	}
}

func TestRequestBodyParser(t *testing.T) {
	t.Run("form", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader("email=+a%40b.c+&password=+p+"))
		p := NewRequestBodyParser(req)
		if err := p.Parse(); err != nil {
			t.Fatalf("Parse() error = %v", err)
		}
		if p.IsJSON() {
			t.Error("IsJSON() = true for form body")
		}
		if got := p.Get("email"); got != "a@b.c" {
			t.Errorf("Get(email) = %q", got)
		}
		if got := p.GetRaw("password"); got != " p " {
			t.Errorf("GetRaw(password) = %q, want untouched value", got)
		}
	})

	t.Run("json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"email":"a@b.c","remember":true,"n":2}`))
		p := NewRequestBodyParser(req)
		if err := p.Parse(); err != nil {
			t.Fatalf("Parse() error = %v", err)
		}
		if !p.IsJSON() {
			t.Error("IsJSON() = false for JSON body")
		}
		if p.Get("email") != "a@b.c" || p.Get("remember") != "true" || p.Get("n") != "2" || p.Get("missing") != "" {
			t.Errorf("unexpected values: %q %q %q", p.Get("email"), p.Get("remember"), p.Get("n"))
		}
	})

	t.Run("malformed json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"email":`))
		p := NewRequestBodyParser(req)
		if err := p.Parse(); err == nil {
			t.Error("Parse() expected error")
		}
		if err := p.Parse(); err == nil {
			t.Error("second Parse() should return the cached error")
		}
	})

	t.Run("empty", func(t *testing.T) {
		p := NewRequestBodyParser(httptest.NewRequest(http.MethodPost, "/login", nil))
		if err := p.Parse(); err != nil {
			t.Fatalf("Parse() error = %v", err)
		}
		if p.Get("email") != "" {
			t.Error("expected empty value")
		}
	})
}

func TestRequireMethod(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	if RequirePOST(req) != nil {
		t.Error("RequirePOST rejected POST")
	}

	resp := RequireGET(req)
	if resp == nil {
		t.Fatal("RequireGET accepted POST")
	}
	w := httptest.NewRecorder()
	resp.Write(w)
	if w.Code != http.StatusMethodNotAllowed || w.Header().Get("Allow") != "GET, HEAD" {
		t.Errorf("got %d Allow=%q", w.Code, w.Header().Get("Allow"))
	}
}

func TestSafeReturnPath(t *testing.T) {
	cases := map[string]string{
		"/dashboard":          "/dashboard",
		"/dashboard?q=coffee": "/dashboard?q=coffee",
		"":                    "/",
		"https://evil.test":   "/",
		"//evil.test":         "/",
		"/\\evil.test":        "/",
	}
	for in, want := range cases {
		if got := safeReturnPath(in, "/"); got != want {
			t.Errorf("safeReturnPath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSanitizeInput(t *testing.T) {
	if got := sanitizeInput("  a\x00b\tc  "); got != "ab\tc" {
		t.Errorf("sanitizeInput() = %q", got)
	}
}
