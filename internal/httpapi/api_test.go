package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"flightdeck.io/console/internal/audit"
	"flightdeck.io/console/internal/guard"
	"flightdeck.io/console/internal/screens"
	"flightdeck.io/console/internal/session"
	"flightdeck.io/console/internal/travel/remote"
)

// platformStub emulates the booking platform API. Accounts are keyed by
// email; the role decides what the console lets them do.
type platformStub struct {
	mu      sync.Mutex
	deleted []string
	calls   []string
	tickets []map[string]any
}

func newPlatformStub() *platformStub {
	return &platformStub{
		tickets: []map[string]any{
			{"id": 1, "flightId": 10, "passengerId": 20, "bookingId": 30, "seatNumber": "12A", "price": 99.0},
			{"id": 2, "flightId": 10, "passengerId": 21, "bookingId": 30, "seatNumber": "12B", "price": 99.0},
		},
	}
}

var stubRoles = map[string]string{
	"admin@console.test": "ADMIN",
	"mod@console.test":   "MODERATOR",
	"user@console.test":  "USER",
}

func (p *platformStub) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req struct{ Email, Password string }
		_ = json.NewDecoder(r.Body).Decode(&req)
		role, ok := stubRoles[req.Email]
		if !ok || req.Password != "hunter2" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"invalid credentials"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"accessToken":  "token-" + role,
			"refreshToken": "refresh-" + role,
			"user": map[string]any{
				"id": 7, "email": req.Email, "username": strings.Split(req.Email, "@")[0], "role": role,
			},
		})
	})
	mux.HandleFunc("GET /tickets", func(w http.ResponseWriter, r *http.Request) {
		p.mu.Lock()
		defer p.mu.Unlock()
		_ = json.NewEncoder(w).Encode(p.tickets)
	})
	mux.HandleFunc("PUT /tickets/{id}", func(w http.ResponseWriter, r *http.Request) {
		var fields map[string]any
		_ = json.NewDecoder(r.Body).Decode(&fields)
		fields["id"] = 1
		_ = json.NewEncoder(w).Encode(fields)
	})
	mux.HandleFunc("DELETE /tickets/{id}", func(w http.ResponseWriter, r *http.Request) {
		p.mu.Lock()
		defer p.mu.Unlock()
		p.deleted = append(p.deleted, r.PathValue("id"))
		kept := p.tickets[:0]
		for _, t := range p.tickets {
			if fmt.Sprint(t["id"]) != r.PathValue("id") {
				kept = append(kept, t)
			}
		}
		p.tickets = kept
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("GET /airports", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]map[string]any{
			{"id": 1, "code": "ALA", "name": "Almaty", "city": "Almaty", "country": "KZ"},
		})
	})
	mux.HandleFunc("POST /airports", func(w http.ResponseWriter, r *http.Request) {
		var fields map[string]any
		_ = json.NewDecoder(r.Body).Decode(&fields)
		fields["id"] = 9
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(fields)
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]any{})
	})
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p.mu.Lock()
		p.calls = append(p.calls, r.Method+" "+r.URL.Path)
		p.mu.Unlock()
		mux.ServeHTTP(w, r)
	})
}

// callsTo reports the upstream requests whose path starts with prefix.
func (p *platformStub) callsTo(prefix string) []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []string
	for _, c := range p.calls {
		_, path, _ := strings.Cut(c, " ")
		if strings.HasPrefix(path, prefix) {
			out = append(out, c)
		}
	}
	return out
}

type harness struct {
	api      *httptest.Server
	platform *platformStub
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	stub := newPlatformStub()
	upstream := httptest.NewServer(stub.handler())
	t.Cleanup(upstream.Close)

	client := remote.NewClient(upstream.URL)
	sessions := session.NewStore(session.NewMemoryKeyring(), client)

	api := New(Deps{
		Sessions: sessions,
		Guard:    guard.New(sessions),
		Registry: screens.NewRegistry(client),
		Recorder: audit.Nop{},
		Version:  "test",
	})
	srv := httptest.NewServer(api.Handler())
	t.Cleanup(srv.Close)
	return &harness{api: srv, platform: stub}
}

func (h *harness) do(t *testing.T, method, path string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequestWithContext(context.Background(), method, h.api.URL+path, &buf)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	client := &http.Client{CheckRedirect: func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}}
	resp, err := client.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func (h *harness) login(t *testing.T, email string) {
	t.Helper()
	resp := h.do(t, http.MethodPost, "/login", map[string]string{
		"email": email, "password": "hunter2",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestLoginReturnsDerivedPermissions(t *testing.T) {
	h := newHarness(t)

	resp := h.do(t, http.MethodPost, "/login", map[string]string{
		"email": "user@console.test", "password": "hunter2",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	require.Equal(t, "USER", body["role"])

	perms, ok := body["permissions"].([]any)
	require.True(t, ok)
	require.Contains(t, perms, "tickets.edit")
	require.Contains(t, perms, "tickets.delete")
	require.NotContains(t, perms, "tickets.view")
	require.Contains(t, perms, "flights.view")
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	h := newHarness(t)

	resp := h.do(t, http.MethodPost, "/login", map[string]string{
		"email": "admin@console.test", "password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Equal(t, "invalid credentials", decodeBody(t, resp)["error"])
}

func TestGuardRedirectsAnonymousToLogin(t *testing.T) {
	h := newHarness(t)

	resp := h.do(t, http.MethodGet, "/screens/tickets", nil)
	require.Equal(t, http.StatusFound, resp.StatusCode)
	require.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestScreenListChecksViewCapability(t *testing.T) {
	h := newHarness(t)
	h.login(t, "user@console.test")

	// USER may not list tickets even though it may edit them.
	resp := h.do(t, http.MethodGet, "/screens/tickets", nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Flights viewing is open.
	resp = h.do(t, http.MethodGet, "/screens/flights", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestScreenListForModerator(t *testing.T) {
	h := newHarness(t)
	h.login(t, "mod@console.test")

	resp := h.do(t, http.MethodGet, "/screens/tickets", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	require.Equal(t, "Tickets", body["title"])
	rows := body["rows"].([]any)
	require.Len(t, rows, 2)

	can := body["can"].(map[string]any)
	require.Equal(t, true, can["create"])
	require.Equal(t, true, can["edit"])
	require.Equal(t, true, can["delete"])
}

func TestCreateDeniedBeforeNetwork(t *testing.T) {
	h := newHarness(t)
	h.login(t, "mod@console.test")

	// Airport creation is admin only; the stub would accept it, so a 403
	// proves the policy gate fired first.
	resp := h.do(t, http.MethodPost, "/screens/airports", map[string]any{
		"code": "NQZ", "name": "Astana", "city": "Astana", "country": "KZ",
	})
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestCreateValidatesBeforeNetwork(t *testing.T) {
	h := newHarness(t)
	h.login(t, "admin@console.test")

	resp := h.do(t, http.MethodPost, "/screens/airports", map[string]any{
		"code": "X", "name": "Nameless",
	})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	errs := decodeBody(t, resp)["errors"].(map[string]any)
	require.Equal(t, "must be exactly 3 characters", errs["code"])
	require.Equal(t, "City is required", errs["city"])
	require.Equal(t, "Country is required", errs["country"])
}

func TestCreateSucceeds(t *testing.T) {
	h := newHarness(t)
	h.login(t, "admin@console.test")

	resp := h.do(t, http.MethodPost, "/screens/airports", map[string]any{
		"code": "NQZ", "name": "Astana", "city": "Astana", "country": "KZ",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	body := decodeBody(t, resp)
	require.Equal(t, float64(9), body["id"])
}

func TestUpdateTicketAsUser(t *testing.T) {
	h := newHarness(t)
	h.login(t, "user@console.test")

	// The edit capability on tickets is open to every authenticated role.
	resp := h.do(t, http.MethodPut, "/screens/tickets/1", map[string]any{
		"seatNumber": "14C",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestUpdateDeniedBeforeNetwork(t *testing.T) {
	h := newHarness(t)
	h.login(t, "mod@console.test")

	// Aircraft edits are admin only; the denial must land before the
	// console asks the platform for anything.
	resp := h.do(t, http.MethodPut, "/screens/aircraft/1", map[string]any{
		"model": "A321",
	})
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	require.Empty(t, h.platform.callsTo("/aircraft"))
}

func TestUpdateUnknownRecord(t *testing.T) {
	h := newHarness(t)
	h.login(t, "admin@console.test")

	resp := h.do(t, http.MethodPut, "/screens/tickets/999", map[string]any{
		"seatNumber": "14C",
	})
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	h := newHarness(t)
	h.login(t, "admin@console.test")

	resp := h.do(t, http.MethodDelete, "/screens/tickets/1", nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Empty(t, h.platform.deleted)
	require.Empty(t, h.platform.callsTo("/tickets"))

	resp = h.do(t, http.MethodDelete, "/screens/tickets/1?confirm=true", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, []string{"1"}, h.platform.deleted)
}

func TestDeleteDeniedForModeratorOnAircraft(t *testing.T) {
	h := newHarness(t)
	h.login(t, "mod@console.test")

	resp := h.do(t, http.MethodDelete, "/screens/aircraft/1?confirm=true", nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	require.Empty(t, h.platform.deleted)
	require.Empty(t, h.platform.callsTo("/aircraft"))
}

func TestDashboardListsScreensWithCapabilities(t *testing.T) {
	h := newHarness(t)
	h.login(t, "mod@console.test")

	resp := h.do(t, http.MethodGet, "/dashboard?notice=access+denied", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	require.Equal(t, "access denied", body["notice"])
	nav := body["screens"].([]any)
	require.Len(t, nav, 11)
}

func TestAuditEndpointIsAdminOnly(t *testing.T) {
	h := newHarness(t)
	h.login(t, "mod@console.test")

	resp := h.do(t, http.MethodGet, "/audit", nil)
	require.Equal(t, http.StatusFound, resp.StatusCode)
	require.Equal(t, "/dashboard?notice=access+denied", resp.Header.Get("Location"))
}

func TestLogoutEndsTheSession(t *testing.T) {
	h := newHarness(t)
	h.login(t, "admin@console.test")

	resp := h.do(t, http.MethodPost, "/logout", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = h.do(t, http.MethodGet, "/screens/tickets", nil)
	require.Equal(t, http.StatusFound, resp.StatusCode)
	require.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestHealthz(t *testing.T) {
	h := newHarness(t)

	resp := h.do(t, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "test", decodeBody(t, resp)["version"])
}
