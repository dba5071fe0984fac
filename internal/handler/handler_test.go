package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/Shivanand-hulikatti/cosmo-events/internal/catalog"
	"github.com/Shivanand-hulikatti/cosmo-events/internal/model"
	"github.com/Shivanand-hulikatti/cosmo-events/internal/repository"
	"github.com/Shivanand-hulikatti/cosmo-events/internal/service"
	"github.com/Shivanand-hulikatti/cosmo-events/internal/store"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	p, err := service.NewPlatform(
		context.Background(),
		repository.NewUserRepository(store.NewMemory()),
		catalog.Default(),
		service.WithLogger(nil),
	)
	if err != nil {
		t.Fatalf("new platform: %v", err)
	}
	return NewRouter(NewEventHandler(p), "")
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return v
}

func TestHealthCheck(t *testing.T) {
	t.Parallel()

	rec := do(t, newTestServer(t), http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Fatalf("unexpected body %q", rec.Body.String())
	}
}

func TestListAndGetEvents(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	rec := do(t, srv, http.MethodGet, "/events", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	events := decode[[]model.EventView](t, rec)
	if len(events) != 4 {
		t.Fatalf("expected 4 events, got %d", len(events))
	}
	if events[1].DisplayCost != "Free" {
		t.Fatalf("event 2 display cost = %q", events[1].DisplayCost)
	}

	tests := []struct {
		name           string
		path           string
		expectedStatus int
	}{
		{name: "found", path: "/events/1", expectedStatus: http.StatusOK},
		{name: "unknown", path: "/events/77", expectedStatus: http.StatusNotFound},
		{name: "not a number", path: "/events/abc", expectedStatus: http.StatusBadRequest},
	}
	for _, tt := range tests {
		rec := do(t, srv, http.MethodGet, tt.path, "")
		if rec.Code != tt.expectedStatus {
			t.Fatalf("%s: expected status %d, got %d", tt.name, tt.expectedStatus, rec.Code)
		}
	}
}

func TestRegisterValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		body           string
		expectedStatus int
		expectedSubstr string
	}{
		{
			name:           "success",
			body:           `{"name":"Ana","email":"ana@example.com","password":"secret1"}`,
			expectedStatus: http.StatusCreated,
			expectedSubstr: `"id":103`,
		},
		{
			name:           "short name",
			body:           `{"name":" A ","email":"ana@example.com","password":"secret1"}`,
			expectedStatus: http.StatusBadRequest,
			expectedSubstr: "name must be at least 2 characters",
		},
		{
			name:           "bad email",
			body:           `{"name":"Ana","email":"ana@example","password":"secret1"}`,
			expectedStatus: http.StatusBadRequest,
			expectedSubstr: "email is not a valid email address",
		},
		{
			name:           "short password",
			body:           `{"name":"Ana","email":"ana@example.com","password":"12345"}`,
			expectedStatus: http.StatusBadRequest,
			expectedSubstr: "password must be at least 6 characters",
		},
		{
			name:           "unknown field",
			body:           `{"name":"Ana","email":"ana@example.com","password":"secret1","admin":true}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid json",
			body:           `{"name":`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := do(t, newTestServer(t), http.MethodPost, "/users", tt.body)
			if rec.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d (%s)", tt.expectedStatus, rec.Code, rec.Body.String())
			}
			if tt.expectedSubstr != "" && !strings.Contains(rec.Body.String(), tt.expectedSubstr) {
				t.Fatalf("expected response to contain %q, got %q", tt.expectedSubstr, rec.Body.String())
			}
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	body := `{"name":"Ana","email":"ana@example.com","password":"secret1"}`
	if rec := do(t, srv, http.MethodPost, "/users", body); rec.Code != http.StatusCreated {
		t.Fatalf("first register status = %d", rec.Code)
	}
	if rec := do(t, srv, http.MethodPost, "/users", body); rec.Code != http.StatusConflict {
		t.Fatalf("duplicate register status = %d, want %d", rec.Code, http.StatusConflict)
	}
}

func TestSessionRequired(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	tests := []struct {
		method string
		path   string
		body   string
	}{
		{method: http.MethodGet, path: "/session"},
		{method: http.MethodPatch, path: "/me", body: `{"name":"Ana"}`},
		{method: http.MethodPost, path: "/events/1/enrollment"},
		{method: http.MethodDelete, path: "/events/1/enrollment"},
		{method: http.MethodPost, path: "/events/1/payment", body: `{"code":"GRACIAS"}`},
	}
	for _, tt := range tests {
		rec := do(t, srv, tt.method, tt.path, tt.body)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected status %d, got %d", tt.method, tt.path, http.StatusUnauthorized, rec.Code)
		}
	}

	rec := do(t, srv, http.MethodGet, "/me/events", "")
	if rec.Code != http.StatusOK || strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Fatalf("expected empty list when logged out, got %d %q", rec.Code, rec.Body.String())
	}
}

func TestLogin(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	do(t, srv, http.MethodPost, "/users", `{"name":"Ana","email":"ana@example.com","password":"secret1"}`)

	tests := []struct {
		name           string
		body           string
		expectedStatus int
	}{
		{name: "malformed email", body: `{"email":"ana","password":"secret1"}`, expectedStatus: http.StatusBadRequest},
		{name: "wrong password", body: `{"email":"ana@example.com","password":"nope"}`, expectedStatus: http.StatusUnauthorized},
		{name: "success", body: `{"email":"ana@example.com","password":"secret1"}`, expectedStatus: http.StatusOK},
	}
	for _, tt := range tests {
		rec := do(t, srv, http.MethodPost, "/session", tt.body)
		if rec.Code != tt.expectedStatus {
			t.Fatalf("%s: expected status %d, got %d", tt.name, tt.expectedStatus, rec.Code)
		}
	}

	rec := do(t, srv, http.MethodGet, "/session", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("session status = %d", rec.Code)
	}
	if u := decode[model.UserView](t, rec); u.Email != "ana@example.com" {
		t.Fatalf("session user = %+v", u)
	}
	if strings.Contains(rec.Body.String(), "secret1") {
		t.Fatal("password leaked in session response")
	}

	if rec := do(t, srv, http.MethodDelete, "/session", ""); rec.Code != http.StatusNoContent {
		t.Fatalf("logout status = %d", rec.Code)
	}
	if rec := do(t, srv, http.MethodGet, "/session", ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("session after logout status = %d", rec.Code)
	}
}

func TestLoginRacingLogout(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	do(t, srv, http.MethodPost, "/users", `{"name":"Ana","email":"ana@example.com","password":"secret1"}`)

	const rounds = 50
	codes := make(chan int, rounds)
	var wg sync.WaitGroup
	for i := 0; i < rounds; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			rec := do(t, srv, http.MethodPost, "/session", `{"email":"ana@example.com","password":"secret1"}`)
			codes <- rec.Code
		}()
		go func() {
			defer wg.Done()
			do(t, srv, http.MethodDelete, "/session", "")
		}()
	}
	wg.Wait()
	close(codes)

	for code := range codes {
		if code != http.StatusOK {
			t.Fatalf("login while logging out returned %d", code)
		}
	}
}

func TestEnrollPayCancelFlow(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	do(t, srv, http.MethodPost, "/users", `{"name":"Ana","email":"ana@example.com","password":"secret1"}`)
	do(t, srv, http.MethodPost, "/session", `{"email":"ana@example.com","password":"secret1"}`)

	rec := do(t, srv, http.MethodPost, "/events/1/enrollment", "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("enroll status = %d (%s)", rec.Code, rec.Body.String())
	}
	detail := decode[model.EventDetail](t, rec)
	if detail.EnrolledCount != 1 || detail.Enrollment == nil || detail.Enrollment.Paid {
		t.Fatalf("unexpected detail after enroll: %+v", detail)
	}

	if rec := do(t, srv, http.MethodPost, "/events/1/enrollment", ""); rec.Code != http.StatusConflict {
		t.Fatalf("duplicate enroll status = %d", rec.Code)
	}

	if rec := do(t, srv, http.MethodPost, "/events/1/payment", `{"code":"WRONG"}`); rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("wrong voucher status = %d", rec.Code)
	}

	rec = do(t, srv, http.MethodPost, "/events/1/payment", `{"code":"gracias"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("payment status = %d (%s)", rec.Code, rec.Body.String())
	}
	receipt := decode[model.PaymentReceipt](t, rec)
	if receipt.ID == "" || receipt.EventID != 1 || receipt.UserID != 103 {
		t.Fatalf("unexpected receipt: %+v", receipt)
	}

	rec = do(t, srv, http.MethodGet, "/events/1", "")
	if detail := decode[model.EventDetail](t, rec); detail.Enrollment == nil || !detail.Enrollment.Paid {
		t.Fatalf("expected paid enrollment, got %+v", detail.Enrollment)
	}

	rec = do(t, srv, http.MethodGet, "/me/events", "")
	if got := decode[[]model.EventView](t, rec); len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("unexpected enrolled events: %+v", got)
	}

	if rec := do(t, srv, http.MethodDelete, "/events/1/enrollment", ""); rec.Code != http.StatusNoContent {
		t.Fatalf("cancel status = %d", rec.Code)
	}
	rec = do(t, srv, http.MethodGet, "/events/1", "")
	if detail := decode[model.EventDetail](t, rec); detail.EnrolledCount != 0 || detail.Enrollment != nil {
		t.Fatalf("unexpected detail after cancel: %+v", detail)
	}

	if rec := do(t, srv, http.MethodPost, "/events/2/enrollment", ""); rec.Code != http.StatusCreated {
		t.Fatalf("enroll free status = %d", rec.Code)
	}
	if rec := do(t, srv, http.MethodPost, "/events/2/payment", `{"code":"GRACIAS"}`); rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("paying free event status = %d", rec.Code)
	}
}

func TestRename(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	do(t, srv, http.MethodPost, "/users", `{"name":"Ana","email":"ana@example.com","password":"secret1"}`)
	do(t, srv, http.MethodPost, "/session", `{"email":"ana@example.com","password":"secret1"}`)

	if rec := do(t, srv, http.MethodPatch, "/me", `{"name":"x"}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("short name status = %d", rec.Code)
	}
	rec := do(t, srv, http.MethodPatch, "/me", `{"name":" Ana Maria "}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("rename status = %d", rec.Code)
	}
	if u := decode[model.UserView](t, rec); u.Name != "Ana Maria" {
		t.Fatalf("renamed user = %+v", u)
	}
}

func TestCORSPreflight(t *testing.T) {
	t.Parallel()

	rec := do(t, newTestServer(t), http.MethodOptions, "/events", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("preflight status = %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("allow origin = %q", got)
	}
}
