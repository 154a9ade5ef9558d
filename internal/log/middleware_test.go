package log

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestMiddlewareInjectsLogger(t *testing.T) {
	logger := New(Config{Level: slog.LevelInfo, Component: ComponentHTTP})

	var got *Logger
	handler := Middleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = FromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/summary", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if got == nil {
		t.Fatal("handler did not run")
	}
	if got != logger {
		t.Error("FromContext returned a different logger than the one injected")
	}
	if got.Component() != ComponentHTTP {
		t.Errorf("component = %q, want %q", got.Component(), ComponentHTTP)
	}
}

func TestFromContextWithoutLogger(t *testing.T) {
	logger := FromContext(context.Background())
	if logger == nil {
		t.Fatal("expected fallback logger, got nil")
	}
	// Must be safe to use without panicking.
	logger.Info("fallback logger works")
}

func TestLogFieldsToSlice(t *testing.T) {
	fields := NewFields().
		WithComponent(ComponentLedger).
		WithOperation(OpCreate).
		WithTransaction("t1", "food", "Lunch", "12.50")

	slice := fields.ToSlice()
	if len(slice) != len(fields)*2 {
		t.Fatalf("slice length = %d, want %d", len(slice), len(fields)*2)
	}
	if fields[FieldTransactionID] != "t1" || fields[FieldCategory] != "food" {
		t.Errorf("transaction fields not set: %v", fields)
	}
}
