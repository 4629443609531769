package log

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newBufferLogger(buf *bytes.Buffer, level slog.Level) *Logger {
	return New(Config{
		Component: ComponentApp,
		Handler:   slog.NewTextHandler(buf, &slog.HandlerOptions{Level: level}),
	})
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"":        slog.LevelInfo,
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		" error ": slog.LevelError,
		"verbose": slog.LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestLoggerAddsComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := newBufferLogger(&buf, slog.LevelInfo).WithComponent(ComponentDashboard)
	logger.Info("loaded", "count", 3)

	out := buf.String()
	if !strings.Contains(out, "component=dashboard") || !strings.Contains(out, "count=3") {
		t.Fatalf("unexpected log output: %s", out)
	}
}

func TestMiddlewareAndFromContext(t *testing.T) {
	var buf bytes.Buffer
	logger := newBufferLogger(&buf, slog.LevelInfo)

	var got *Logger
	h := Middleware(logger)(RequestIDMiddleware(func(*http.Request) string { return "req-1" })(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = FromContext(r.Context())
			got.InfoContext(r.Context(), "inside")
		})))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if got == nil {
		t.Fatal("logger not found in context")
	}
	if !strings.Contains(buf.String(), "request_id=req-1") {
		t.Fatalf("request id missing: %s", buf.String())
	}

	if FromContext(context.Background()).Component() != "unknown" {
		t.Fatalf("expected fallback logger")
	}
}

func TestStructuredLoggerEvents(t *testing.T) {
	var buf bytes.Buffer
	sl := NewStructuredLogger(newBufferLogger(&buf, slog.LevelDebug))
	ctx := context.Background()

	sl.LogLogin(ctx, "demo@example.com", errors.New("invalid email or password"))
	sl.LogFilter(ctx, "coffee", "all", 2)
	sl.LogQuickAction(ctx, "transfer", "evt-1", "demo@example.com")
	sl.LogError(ctx, "boom", errors.New("db down"), ComponentStorage, OpRead, nil)

	out := buf.String()
	for _, want := range []string{
		"Sign-in rejected", "success=false",
		"Transactions filtered", "result_count=2",
		"Quick action acknowledged", "action_id=transfer",
		"error=\"db down\"",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestStructuredLoggerSingleComponent(t *testing.T) {
	var buf bytes.Buffer
	sl := NewStructuredLogger(newBufferLogger(&buf, slog.LevelDebug))
	ctx := context.Background()

	sl.LogQuickAction(ctx, "transfer", "evt-1", "demo@example.com")
	sl.LogError(ctx, "boom", errors.New("db down"), ComponentStorage, OpRead, NewFields().WithComponent(ComponentApp))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d:\n%s", len(lines), buf.String())
	}
	for i, want := range []string{"component=action", "component=storage"} {
		if n := strings.Count(lines[i], "component="); n != 1 {
			t.Errorf("line %d has %d component keys: %s", i, n, lines[i])
		}
		if !strings.Contains(lines[i], want) {
			t.Errorf("line %d missing %q: %s", i, want, lines[i])
		}
	}
}

func TestLoggerKeepsExplicitComponent(t *testing.T) {
	var buf bytes.Buffer
	newBufferLogger(&buf, slog.LevelInfo).Info("explicit", FieldComponent, ComponentCache)

	out := buf.String()
	if strings.Count(out, "component=") != 1 || !strings.Contains(out, "component=cache") {
		t.Fatalf("unexpected log output: %s", out)
	}
}

func TestStructuredLoggerUsesRequestLogger(t *testing.T) {
	var base, scoped bytes.Buffer
	sl := NewStructuredLogger(newBufferLogger(&base, slog.LevelInfo))
	reqLogger := newBufferLogger(&scoped, slog.LevelInfo).With(FieldRequestID, "req-9")
	ctx := context.WithValue(context.Background(), LoggerContextKey, reqLogger)

	sl.LogLogin(ctx, "demo@example.com", nil)

	if base.Len() != 0 {
		t.Fatalf("event went to the base logger: %s", base.String())
	}
	out := scoped.String()
	if !strings.Contains(out, "request_id=req-9") || !strings.Contains(out, "user=demo@example.com") {
		t.Fatalf("unexpected log output: %s", out)
	}
}

func TestLogLoginMasksRejectedEmail(t *testing.T) {
	var buf bytes.Buffer
	sl := NewStructuredLogger(newBufferLogger(&buf, slog.LevelInfo))

	sl.LogLogin(context.Background(), "mallory@evil.example", errors.New("invalid email or password"))

	out := buf.String()
	if strings.Contains(out, "mallory") || !strings.Contains(out, "user=***@evil.example") {
		t.Fatalf("email not masked: %s", out)
	}
}

func TestMaskEmail(t *testing.T) {
	cases := map[string]string{
		"":                 "",
		"   ":              "",
		"demo@example.com": "***@example.com",
		"not-an-email":     "***",
		"trailing@":        "***",
		"a@b@corp.example": "***@corp.example",
	}
	for in, want := range cases {
		if got := MaskEmail(in); got != want {
			t.Errorf("MaskEmail(%q) = %q, want %q", in, got, want)
		}
	}
}
