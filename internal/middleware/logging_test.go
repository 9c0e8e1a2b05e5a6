package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

func captureLog(t *testing.T, status int) map[string]any {
	t.Helper()

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	handler := Logger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	}))

	req := httptest.NewRequest(http.MethodGet, "/shanghai/api/v1/summary", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v (%s)", err, buf.String())
	}
	return entry
}

func TestLogger_RecordsRequestFields(t *testing.T) {
	entry := captureLog(t, http.StatusOK)

	if entry["method"] != "GET" {
		t.Errorf("expected method GET, got %v", entry["method"])
	}
	if entry["path"] != "/shanghai/api/v1/summary" {
		t.Errorf("unexpected path: %v", entry["path"])
	}
	if entry["status_code"] != float64(http.StatusOK) {
		t.Errorf("unexpected status: %v", entry["status_code"])
	}
	if entry["level"] != "INFO" {
		t.Errorf("2xx must log at INFO, got %v", entry["level"])
	}
	if _, ok := entry["duration_ms"]; !ok {
		t.Error("expected duration_ms field")
	}
}

func TestLogger_LevelByStatus(t *testing.T) {
	tests := []struct {
		status int
		level  string
	}{
		{http.StatusBadRequest, "WARN"},
		{http.StatusBadGateway, "ERROR"},
	}

	for _, tt := range tests {
		entry := captureLog(t, tt.status)
		if entry["level"] != tt.level {
			t.Errorf("status %d: expected level %s, got %v", tt.status, tt.level, entry["level"])
		}
	}
}

func TestResponseWriter_DefaultsTo200(t *testing.T) {
	rec := httptest.NewRecorder()
	wrapped := wrapResponseWriter(rec)

	if _, err := wrapped.Write([]byte("ok")); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	if wrapped.status != http.StatusOK {
		t.Errorf("expected implicit 200, got %d", wrapped.status)
	}
}

func TestResponseWriter_FirstStatusWins(t *testing.T) {
	rec := httptest.NewRecorder()
	wrapped := wrapResponseWriter(rec)

	wrapped.WriteHeader(http.StatusSeeOther)
	wrapped.WriteHeader(http.StatusInternalServerError)

	if wrapped.status != http.StatusSeeOther {
		t.Errorf("expected first status to stick, got %d", wrapped.status)
	}
}
