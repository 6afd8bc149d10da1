package api

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/nerrad567/gray-logic-hub/internal/audit"
	"github.com/nerrad567/gray-logic-hub/internal/command"
	"github.com/nerrad567/gray-logic-hub/internal/hub"
	"github.com/nerrad567/gray-logic-hub/internal/infrastructure/config"
	"github.com/nerrad567/gray-logic-hub/internal/infrastructure/logging"
	"github.com/nerrad567/gray-logic-hub/internal/strategy"
)

type fixture struct {
	srv  *Server
	hub  *hub.Hub
	user *strategy.User
}

// setupTestDB creates an in-memory SQLite database with the history schema.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	schema := `
		CREATE TABLE strategy_executions (
			id TEXT PRIMARY KEY,
			observer_id TEXT NOT NULL,
			mode TEXT NOT NULL,
			status TEXT NOT NULL,
			steps TEXT NOT NULL DEFAULT '[]',
			rejected TEXT,
			skipped TEXT,
			started_at TEXT NOT NULL,
			completed_at TEXT NOT NULL,
			duration_ms INTEGER NOT NULL DEFAULT 0
		) STRICT;
		CREATE TABLE audit_logs (
			id TEXT PRIMARY KEY,
			action TEXT NOT NULL,
			entity_type TEXT NOT NULL,
			entity_id TEXT,
			user_id TEXT,
			source TEXT NOT NULL,
			details TEXT,
			created_at TEXT NOT NULL
		) STRICT;
	`
	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("failed to create test schema: %v", err)
	}
	return db
}

// testServer wires a hub with socket and light commands, one attached
// strategy user, and SQLite-backed history and audit stores.
func testServer(t *testing.T) *fixture {
	t.Helper()

	db := setupTestDB(t)
	executions := strategy.NewSQLiteRepository(db)
	auditRepo := audit.NewSQLiteRepository(db)

	h := hub.New("2.1")
	h.SetEventSink(audit.NewRecorder(auditRepo))
	for _, cmd := range []command.Command{command.SocketOn(), command.SocketOff(), command.LightOn(30)} {
		if err := h.Register(cmd); err != nil {
			t.Fatalf("Register(%s): %v", cmd.Name(), err)
		}
	}

	user := strategy.NewUser(strategy.NewSequenceGenerator("u"),
		strategy.WithExecutor(h),
		strategy.WithRecorder(executions),
	)
	h.Attach(user)
	h.Notify()

	log := logging.New(config.LoggingConfig{Level: "error", Format: "text", Output: "discard"}, "test")
	srv, err := New(Deps{
		Config:     config.APIConfig{Host: "127.0.0.1", Port: 0},
		Logger:     log,
		Hub:        h,
		Executions: executions,
		Audit:      auditRepo,
		Version:    "test",
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return &fixture{srv: srv, hub: h, user: user}
}

func doGet(t *testing.T, srv *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("decoding response %q: %v", rec.Body.String(), err)
	}
}

func TestNew_RequiresDeps(t *testing.T) {
	log := logging.Default()
	if _, err := New(Deps{Hub: hub.New("1")}); err == nil {
		t.Error("New() without logger should fail")
	}
	if _, err := New(Deps{Logger: log}); err == nil {
		t.Error("New() without hub should fail")
	}
}

func TestHealth(t *testing.T) {
	f := testServer(t)

	rec := doGet(t, f.srv, "/api/v1/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body struct {
		Status    string `json:"status"`
		Version   string `json:"version"`
		Commands  int    `json:"commands"`
		Observers int    `json:"observers"`
	}
	decode(t, rec, &body)
	if body.Status != "ok" || body.Version != "test" || body.Commands != 3 || body.Observers != 1 {
		t.Errorf("health = %+v", body)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("missing X-Request-ID header")
	}
}

type stubCheck struct{ err error }

func (c stubCheck) HealthCheck(context.Context) error { return c.err }

func TestHealth_DegradedComponent(t *testing.T) {
	f := testServer(t)
	f.srv.checks = map[string]HealthChecker{
		"database": stubCheck{},
		"mqtt":     stubCheck{err: errors.New("not connected")},
	}

	rec := doGet(t, f.srv, "/api/v1/health")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
	var body struct {
		Status     string            `json:"status"`
		Components map[string]string `json:"components"`
	}
	decode(t, rec, &body)
	if body.Status != "degraded" {
		t.Errorf("status = %q", body.Status)
	}
	if body.Components["database"] != "ok" || body.Components["mqtt"] != "not connected" {
		t.Errorf("components = %v", body.Components)
	}
}

func TestListDevices(t *testing.T) {
	f := testServer(t)

	rec := doGet(t, f.srv, "/api/v1/devices")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body struct {
		Devices []hub.DeviceInfo `json:"devices"`
		Count   int              `json:"count"`
	}
	decode(t, rec, &body)
	if body.Count != 7 || len(body.Devices) != 7 {
		t.Fatalf("count = %d, devices = %d", body.Count, len(body.Devices))
	}
	if got := body.Devices[hub.SlotControl].Version.Tag; got != "2.1" {
		t.Errorf("control version tag = %q, want hub version", got)
	}
	if got := body.Devices[hub.SlotSocket].Version.Device; got != "Smart socket" {
		t.Errorf("socket device = %q", got)
	}
}

func TestGetDevice_ReflectsExecution(t *testing.T) {
	f := testServer(t)

	// Catalog index 2 is "Turn Smart Light on at 30".
	if err := f.user.Select(2); err != nil {
		t.Fatalf("Select: %v", err)
	}
	if _, err := f.user.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}

	rec := doGet(t, f.srv, "/api/v1/devices/2")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var info struct {
		Kind  string         `json:"kind"`
		State map[string]any `json:"state"`
	}
	decode(t, rec, &info)
	if info.Kind != "light" {
		t.Errorf("kind = %q", info.Kind)
	}
	if info.State["level"] != float64(30) {
		t.Errorf("state = %v, want level 30", info.State)
	}
}

func TestDeviceErrors(t *testing.T) {
	f := testServer(t)

	tests := []struct {
		path string
		code int
	}{
		{"/api/v1/devices/7", http.StatusNotFound},
		{"/api/v1/devices/-1", http.StatusNotFound},
		{"/api/v1/devices/abc", http.StatusBadRequest},
		{"/api/v1/devices/99/operations", http.StatusNotFound},
		{"/api/v1/devices/x/operations", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := doGet(t, f.srv, tt.path)
			if rec.Code != tt.code {
				t.Fatalf("status = %d, want %d", rec.Code, tt.code)
			}
			var e Error
			decode(t, rec, &e)
			if e.Status != tt.code || e.Code == "" {
				t.Errorf("error body = %+v", e)
			}
		})
	}
}

func TestListOperations(t *testing.T) {
	f := testServer(t)

	rec := doGet(t, f.srv, "/api/v1/devices/1/operations")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body struct {
		Index      int      `json:"index"`
		Operations []string `json:"operations"`
	}
	decode(t, rec, &body)
	want := []string{"turnOn()", "turnOff()", "toggle()"}
	if body.Index != 1 || strings.Join(body.Operations, ",") != strings.Join(want, ",") {
		t.Errorf("operations = %+v", body)
	}
}

func TestGetCatalog(t *testing.T) {
	f := testServer(t)

	rec := doGet(t, f.srv, "/api/v1/catalog")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body struct {
		Commands  []command.Entry `json:"commands"`
		Count     int             `json:"count"`
		Observers int             `json:"observers"`
	}
	decode(t, rec, &body)
	if body.Count != 3 || body.Observers != 1 {
		t.Fatalf("catalog = %+v", body)
	}
	if body.Commands[2].Name != "Turn Smart Light on at 30" || body.Commands[2].Category != command.CategoryLight {
		t.Errorf("Commands[2] = %+v", body.Commands[2])
	}
}

func TestExecutions(t *testing.T) {
	f := testServer(t)

	if err := f.user.Select(0); err != nil {
		t.Fatalf("Select: %v", err)
	}
	if _, err := f.user.Finish(); err != nil {
		t.Fatalf("Finish: %v", err)
	}

	t.Run("list", func(t *testing.T) {
		rec := doGet(t, f.srv, "/api/v1/executions?observer=u-1&limit=5")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		var body struct {
			Executions []strategy.Execution `json:"executions"`
			Count      int                  `json:"count"`
		}
		decode(t, rec, &body)
		if body.Count != 1 || body.Executions[0].ID != "u-2" || body.Executions[0].Mode != strategy.ModeFinish {
			t.Errorf("executions = %+v", body)
		}
	})

	t.Run("unknown observer is empty array", func(t *testing.T) {
		rec := doGet(t, f.srv, "/api/v1/executions?observer=nobody")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), `"executions":[]`) {
			t.Errorf("body = %s", rec.Body.String())
		}
	})

	t.Run("get", func(t *testing.T) {
		rec := doGet(t, f.srv, "/api/v1/executions/u-2")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		var exec strategy.Execution
		decode(t, rec, &exec)
		if len(exec.Steps) != 1 || exec.Steps[0].Result.Command != "Turn Smart Socket on" {
			t.Errorf("execution = %+v", exec)
		}
	})

	t.Run("get missing", func(t *testing.T) {
		if rec := doGet(t, f.srv, "/api/v1/executions/nope"); rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})

	t.Run("bad limit", func(t *testing.T) {
		if rec := doGet(t, f.srv, "/api/v1/executions?limit=-2"); rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})
}

func TestAuditLogs(t *testing.T) {
	f := testServer(t)

	rec := doGet(t, f.srv, "/api/v1/audit?action=register")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var result audit.ListResult
	decode(t, rec, &result)
	if result.Total != 3 || len(result.Logs) != 3 || result.Limit != 50 {
		t.Errorf("result total=%d logs=%d limit=%d", result.Total, len(result.Logs), result.Limit)
	}
	for _, l := range result.Logs {
		if l.Action != audit.ActionRegister || l.EntityType != audit.EntityCommand {
			t.Errorf("log = %+v", l)
		}
	}

	rec = doGet(t, f.srv, "/api/v1/audit?observer=u-1")
	decode(t, rec, &result)
	if result.Total != 1 || result.Logs[0].Action != audit.ActionAttach {
		t.Errorf("observer filter = %+v", result)
	}

	if rec := doGet(t, f.srv, "/api/v1/audit?offset=x"); rec.Code != http.StatusBadRequest {
		t.Errorf("bad offset status = %d", rec.Code)
	}
}

func TestUnconfiguredStores(t *testing.T) {
	srv, err := New(Deps{Logger: logging.Default(), Hub: hub.New("1")})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for _, path := range []string{"/api/v1/executions", "/api/v1/executions/x", "/api/v1/audit"} {
		if rec := doGet(t, srv, path); rec.Code != http.StatusServiceUnavailable {
			t.Errorf("%s status = %d, want 503", path, rec.Code)
		}
	}
}

func TestReadOnly(t *testing.T) {
	f := testServer(t)

	for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodDelete} {
		t.Run(method, func(t *testing.T) {
			req := httptest.NewRequest(method, "/api/v1/catalog", nil)
			rec := httptest.NewRecorder()
			f.srv.Handler().ServeHTTP(rec, req)
			if rec.Code != http.StatusMethodNotAllowed {
				t.Errorf("status = %d, want 405", rec.Code)
			}
		})
	}
	if f.hub.Catalog().Len() != 3 {
		t.Error("catalog changed")
	}
}

func TestRequestIDPassthrough(t *testing.T) {
	f := testServer(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	req.Header.Set("X-Request-ID", "abc123")
	rec := httptest.NewRecorder()
	f.srv.Handler().ServeHTTP(rec, req)
	if got := rec.Header().Get("X-Request-ID"); got != "abc123" {
		t.Errorf("X-Request-ID = %q", got)
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	f := testServer(t)
	h := f.srv.recoveryMiddleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}

func TestLifecycle(t *testing.T) {
	f := testServer(t)

	if err := f.srv.HealthCheck(context.Background()); err == nil {
		t.Error("HealthCheck before Start should fail")
	}
	if err := f.srv.Close(); err != nil {
		t.Errorf("Close before Start: %v", err)
	}
	if err := f.srv.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := f.srv.HealthCheck(context.Background()); err != nil {
		t.Errorf("HealthCheck after Start: %v", err)
	}
	if err := f.srv.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}
