package api

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/openlaptop/msiec-core/internal/attr"
	"github.com/openlaptop/msiec-core/internal/audit"
	"github.com/openlaptop/msiec-core/internal/ec"
	"github.com/openlaptop/msiec-core/internal/infrastructure/config"
	"github.com/openlaptop/msiec-core/internal/infrastructure/logging"
	"github.com/openlaptop/msiec-core/internal/profile"
)

// fakeTransport is an in-memory register file.
type fakeTransport struct {
	mu   sync.Mutex
	regs [256]byte
}

func (f *fakeTransport) ReadByte(addr uint8) (byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.regs[addr], nil
}

func (f *fakeTransport) WriteByte(addr uint8, value byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.regs[addr] = value
	return nil
}

func (f *fakeTransport) set(addr uint8, value byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.regs[addr] = value
}

func (f *fakeTransport) get(addr uint8) byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.regs[addr]
}

func testProfile() *profile.Profile {
	return &profile.Profile{
		Name:     "test",
		Firmware: []string{"TEST1EMS1.101"},
		Webcam: profile.Webcam{
			Address:      profile.Addr(0x2e),
			BlockAddress: profile.Unsupported,
			Bit:          1,
		},
		ChargeControl: profile.ChargeControl{
			Address:     profile.Addr(0xd7),
			OffsetStart: 0x8a,
			OffsetEnd:   0x80,
			RangeMin:    0x8a,
			RangeMax:    0xe4,
		},
		ShiftMode: profile.ModeTable{
			Address: profile.Addr(0xd2),
			Modes: []profile.Mode{
				{Name: profile.ShiftEco, Value: 0xc2},
				{Name: profile.ShiftComfort, Value: 0xc1},
				{Name: profile.ShiftSport, Value: 0xc0},
			},
		},
		CPU: profile.CPU{
			RealtimeTempAddress: profile.Addr(0x68),
		},
	}
}

// setupAuditDB creates an in-memory SQLite database with the audit schema.
func setupAuditDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	schema := `
		CREATE TABLE attribute_writes (
			id TEXT PRIMARY KEY,
			attribute TEXT NOT NULL,
			value TEXT NOT NULL,
			outcome TEXT NOT NULL,
			detail TEXT NOT NULL DEFAULT '',
			source TEXT NOT NULL DEFAULT 'api',
			created_at TEXT NOT NULL
		);`
	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
	return db
}

// testServer creates a Server over an in-memory EC and audit store.
func testServer(t *testing.T, opts ...func(*Deps)) (*Server, *fakeTransport) {
	t.Helper()

	tr := &fakeTransport{}
	registry := attr.NewRegistry(ec.New(tr), testProfile())
	log := logging.New(config.LoggingConfig{Level: "error", Format: "text", Output: "stdout"}, "test")

	deps := Deps{
		Config: config.APIConfig{
			Host: "127.0.0.1",
			Port: 0,
			Timeouts: config.APITimeoutConfig{
				Read:  5,
				Write: 5,
				Idle:  5,
			},
		},
		WS: config.WebSocketConfig{
			Path:         "/ws",
			PingInterval: 30,
			PongTimeout:  10,
		},
		Logger:   log,
		Registry: registry,
		Profile:  testProfile(),
		Audit:    audit.NewSQLiteRepository(setupAuditDB(t)),
		Version:  "test",
	}
	for _, opt := range opts {
		opt(&deps)
	}

	srv, err := New(deps)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return srv, tr
}

func doRequest(t *testing.T, srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	srv.buildRouter().ServeHTTP(rec, req)
	return rec
}

func TestHandleHealth(t *testing.T) {
	srv, _ := testServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/api/v1/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp["status"] != "ok" {
		t.Errorf("status field = %v, want ok", resp["status"])
	}
	if resp["profile"] != "test" {
		t.Errorf("profile field = %v, want test", resp["profile"])
	}
}

func TestListAttributes(t *testing.T) {
	srv, tr := testServer(t)
	tr.set(0xd2, 0xc1)

	rec := doRequest(t, srv, http.MethodGet, "/api/v1/attributes", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp struct {
		Attributes []AttributeInfo `json:"attributes"`
		Count      int             `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Count != len(resp.Attributes) {
		t.Errorf("count = %d, attributes = %d", resp.Count, len(resp.Attributes))
	}

	byName := make(map[string]AttributeInfo)
	for _, a := range resp.Attributes {
		byName[a.Name] = a
	}

	shift, ok := byName["shift_mode"]
	if !ok {
		t.Fatal("shift_mode missing from listing")
	}
	if !shift.Writable {
		t.Error("shift_mode should be writable")
	}
	if shift.Value == nil || *shift.Value != "comfort" {
		t.Errorf("shift_mode value = %v, want comfort", shift.Value)
	}

	if _, ok := byName["fan_mode"]; ok {
		t.Error("fan_mode listed but the model does not support it")
	}
}

func TestGetAttribute(t *testing.T) {
	srv, tr := testServer(t)
	tr.set(0x68, 42)

	rec := doRequest(t, srv, http.MethodGet, "/api/v1/attributes/cpu/realtime_temperature", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var resp AttributeValue
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Value != "42" {
		t.Errorf("value = %q, want 42", resp.Value)
	}
}

func TestGetAttributeNotFound(t *testing.T) {
	srv, _ := testServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/api/v1/attributes/fan_mode", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestSetAttribute(t *testing.T) {
	srv, tr := testServer(t)
	tr.set(0xd2, 0xc1)

	rec := doRequest(t, srv, http.MethodPut, "/api/v1/attributes/shift_mode",
		setAttributeRequest{Value: "sport"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	if got := tr.get(0xd2); got != 0xc0 {
		t.Errorf("register 0xd2 = %#02x, want 0xc0", got)
	}

	var resp AttributeValue
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Value != "sport" {
		t.Errorf("confirmed value = %q, want sport", resp.Value)
	}

	// The write lands in the audit trail.
	history := doRequest(t, srv, http.MethodGet, "/api/v1/history", nil)
	var list audit.ListResult
	if err := json.Unmarshal(history.Body.Bytes(), &list); err != nil {
		t.Fatalf("unmarshal history: %v", err)
	}
	if list.Total != 1 {
		t.Fatalf("history total = %d, want 1", list.Total)
	}
	entry := list.Entries[0]
	if entry.Attribute != "shift_mode" || entry.Outcome != audit.OutcomeApplied {
		t.Errorf("audit entry = %+v, want applied shift_mode write", entry)
	}
}

func TestSetAttributeInvalidValue(t *testing.T) {
	srv, tr := testServer(t)
	tr.set(0xd7, 0x94)

	rec := doRequest(t, srv, http.MethodPut, "/api/v1/attributes/charge_control_start_threshold",
		setAttributeRequest{Value: "200"})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422: %s", rec.Code, rec.Body.String())
	}

	if got := tr.get(0xd7); got != 0x94 {
		t.Errorf("register written on rejected value: %#02x", got)
	}

	history := doRequest(t, srv, http.MethodGet, "/api/v1/history?outcome=rejected", nil)
	var list audit.ListResult
	if err := json.Unmarshal(history.Body.Bytes(), &list); err != nil {
		t.Fatalf("unmarshal history: %v", err)
	}
	if list.Total != 1 {
		t.Errorf("rejected history total = %d, want 1", list.Total)
	}
}

func TestSetAttributeReadOnly(t *testing.T) {
	srv, _ := testServer(t)

	rec := doRequest(t, srv, http.MethodPut, "/api/v1/attributes/cpu/realtime_temperature",
		setAttributeRequest{Value: "50"})
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
}

func TestTelemetryEndpoint(t *testing.T) {
	srv, tr := testServer(t)
	tr.set(0x68, 55)

	rec := doRequest(t, srv, http.MethodGet, "/api/v1/telemetry", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if temp, ok := resp["cpu_temperature"].(float64); !ok || temp != 55 {
		t.Errorf("cpu_temperature = %v, want 55", resp["cpu_temperature"])
	}
	// The test profile has no fan addresses; those fields are omitted.
	if _, ok := resp["cpu_fan_speed"]; ok {
		t.Error("cpu_fan_speed present despite unsupported feature")
	}
}

func TestFirmwareEndpoint(t *testing.T) {
	srv, tr := testServer(t)
	version := "TEST1EMS1.10" // 12 bytes, the full reserved range
	for i, ch := range []byte(version) {
		tr.set(uint8(0xa0+i), ch)
	}

	rec := doRequest(t, srv, http.MethodGet, "/api/v1/firmware", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp["version"] != version {
		t.Errorf("version = %v, want %s", resp["version"], version)
	}
	if resp["profile"] != "test" {
		t.Errorf("profile = %v, want test", resp["profile"])
	}
}

func TestDebugRoutesHiddenWithoutDebugMode(t *testing.T) {
	srv, _ := testServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/api/v1/debug/dump", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404 when debug mode is off", rec.Code)
	}
}

func TestDebugRoutes(t *testing.T) {
	tr := &fakeTransport{}
	srv, _ := testServer(t, func(d *Deps) {
		d.Debug = attr.NewDebug(ec.New(tr))
	})
	tr.set(0x2f, 0xab)

	rec := doRequest(t, srv, http.MethodGet, "/api/v1/debug/dump", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("dump status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "_0 _1") {
		t.Error("dump missing column header")
	}

	rec = doRequest(t, srv, http.MethodPost, "/api/v1/debug/register",
		debugRegisterRequest{Select: "2f"})
	if rec.Code != http.StatusOK {
		t.Fatalf("select status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(t, srv, http.MethodGet, "/api/v1/debug/register", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d, want 200", rec.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp["value"] != "ab" {
		t.Errorf("register value = %q, want ab", resp["value"])
	}

	rec = doRequest(t, srv, http.MethodPost, "/api/v1/debug/register",
		debugRegisterRequest{Set: "30=7f"})
	if rec.Code != http.StatusOK {
		t.Fatalf("set status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if got := tr.get(0x30); got != 0x7f {
		t.Errorf("register 0x30 = %#02x, want 0x7f", got)
	}
}

func TestAuthMiddleware(t *testing.T) {
	secret := "test-secret-key-at-least-32-characters-long"
	srv, _ := testServer(t, func(d *Deps) {
		d.Security = config.SecurityConfig{
			AuthEnabled: true,
			JWT:         config.JWTConfig{Secret: secret},
		}
	})

	// No token is rejected.
	rec := doRequest(t, srv, http.MethodGet, "/api/v1/attributes", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status without token = %d, want 401", rec.Code)
	}

	// Health stays open for monitoring.
	rec = doRequest(t, srv, http.MethodGet, "/api/v1/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("health status = %d, want 200", rec.Code)
	}

	token, err := GenerateToken("admin", secret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/attributes", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	recorder := httptest.NewRecorder()
	srv.buildRouter().ServeHTTP(recorder, req)
	if recorder.Code != http.StatusOK {
		t.Fatalf("status with token = %d, want 200: %s", recorder.Code, recorder.Body.String())
	}

	// Wrong secret is rejected.
	bad, err := GenerateToken("admin", "some-other-secret-value-padded-to-length", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	req = httptest.NewRequest(http.MethodGet, "/api/v1/attributes", nil)
	req.Header.Set("Authorization", "Bearer "+bad)
	recorder = httptest.NewRecorder()
	srv.buildRouter().ServeHTTP(recorder, req)
	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("status with bad token = %d, want 401", recorder.Code)
	}
}
