package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Markdcoder/mobile-fintech-dashboard/internal/core"
)

var templateFuncs = template.FuncMap{
	"currency":       core.FormatCurrency,
	"signedCurrency": signedCurrency,
	"shortDate":      core.FormatShortDate,
	"initials":       core.Initials,
	"dict":           dict,
}

// dict builds a map from alternating keys and values for sub-templates.
func dict(pairs ...any) (map[string]any, error) {
	if len(pairs)%2 != 0 {
		return nil, errors.New("dict: odd number of arguments")
	}
	m := make(map[string]any, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict: key %v is not a string", pairs[i])
		}
		m[key] = pairs[i+1]
	}
	return m, nil
}

// signedCurrency prefixes credits with "+"; debits already carry "-".
func signedCurrency(d decimal.Decimal) string {
	if d.IsNegative() {
		return core.FormatCurrency(d)
	}
	return "+" + core.FormatCurrency(d)
}

func (s *Server) renderString(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.ErrorContext(r.Context(), "Failed to encode JSON response", "error", err, "url", r.URL.Path)
	}
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != '\t' && r != '\n' && r != '\r' {
			return -1
		}
		return r
	}, s)
}

// safeReturnPath accepts only same-site absolute paths.
func safeReturnPath(p, fallback string) string {
	if !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") || strings.HasPrefix(p, "/\\") {
		return fallback
	}
	return p
}

func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}
