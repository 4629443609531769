package http

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/Markdcoder/mobile-fintech-dashboard/internal/core"
)

const maxBodyBytes = 1 << 16

// FilterParams are the transaction filter inputs of a request.
type FilterParams struct {
	Query    string
	Category string
}

// ParseFilterParams reads q and category. The query is kept verbatim; a
// missing or empty category selects every category.
func ParseFilterParams(query url.Values) FilterParams {
	params := FilterParams{
		Query:    query.Get("q"),
		Category: query.Get("category"),
	}
	if params.Category == "" {
		params.Category = core.CategoryAll
	}
	return params
}

// Encode renders the params back into a query string.
func (p FilterParams) Encode() string {
	v := url.Values{}
	if p.Query != "" {
		v.Set("q", p.Query)
	}
	if p.Category != core.CategoryAll {
		v.Set("category", p.Category)
	}
	return v.Encode()
}

// RequestBodyParser handles JSON and form-encoded bodies with the same API.
type RequestBodyParser struct {
	body        []byte
	contentType string
	jsonData    map[string]any
	formData    url.Values
	parsed      bool
	err         error
}

// NewRequestBodyParser reads the body once, capped at maxBodyBytes.
func NewRequestBodyParser(r *http.Request) *RequestBodyParser {
	p := &RequestBodyParser{
		contentType: r.Header.Get("Content-Type"),
	}
	p.body, p.err = io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	return p
}

func (p *RequestBodyParser) Parse() error {
	if p.parsed {
		return p.err
	}
	p.parsed = true

	if p.err != nil {
		return p.err
	}

	if len(p.body) == 0 {
		p.formData = url.Values{}
		return nil
	}

	if p.body[0] == '{' {
		p.jsonData = make(map[string]any)
		if err := json.Unmarshal(p.body, &p.jsonData); err != nil {
			p.err = err
			return err
		}
		return nil
	}

	p.formData, p.err = url.ParseQuery(string(p.body))
	return p.err
}

// Get returns a sanitized value from the parsed data.
func (p *RequestBodyParser) Get(key string) string {
	return sanitizeInput(p.GetRaw(key))
}

// GetRaw returns the value untouched. Passwords are read this way.
func (p *RequestBodyParser) GetRaw(key string) string {
	if p.jsonData != nil {
		if val, ok := p.jsonData[key]; ok {
			return stringValue(val)
		}
		return ""
	}
	if p.formData != nil {
		return p.formData.Get(key)
	}
	return ""
}

func (p *RequestBodyParser) IsJSON() bool {
	return p.jsonData != nil
}

func stringValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return ""
	}
}

// RequireMethod returns an error response when the method is not allowed.
func RequireMethod(r *http.Request, methods ...string) *HTMXResponseBuilder {
	for _, m := range methods {
		if r.Method == m {
			return nil
		}
	}
	return MethodNotAllowedError(strings.Join(methods, ", "))
}

func RequirePOST(r *http.Request) *HTMXResponseBuilder {
	return RequireMethod(r, http.MethodPost)
}

func RequireGET(r *http.Request) *HTMXResponseBuilder {
	return RequireMethod(r, http.MethodGet, http.MethodHead)
}
