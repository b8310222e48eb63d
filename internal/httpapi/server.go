// Package httpapi is the console's HTTP surface: authentication endpoints,
// the dashboard, and one uniform CRUD surface per resource screen.
package httpapi

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"

	"flightdeck.io/console/internal/audit"
	"flightdeck.io/console/internal/authz"
	"flightdeck.io/console/internal/guard"
	"flightdeck.io/console/internal/obs"
	"flightdeck.io/console/internal/screens"
	"flightdeck.io/console/internal/session"
)

// ReadyProbe checks backing dependencies for /readyz.
type ReadyProbe struct {
	DB *sql.DB
}

func (rp ReadyProbe) Check(ctx context.Context) error {
	if rp.DB == nil {
		return nil
	}
	return rp.DB.PingContext(ctx)
}

// Deps carries everything the HTTP surface is built from.
type Deps struct {
	Sessions *session.Store
	Guard    *guard.Guard
	Registry *screens.Registry
	Recorder audit.Recorder
	Probe    ReadyProbe
	Version  string

	// Requests allowed per client IP per Window. Zero disables throttling.
	RateLimitRequests int
	RateLimitWindow   time.Duration
}

// API is the HTTP layer.
type API struct {
	router   chi.Router
	sessions *session.Store
	guard    *guard.Guard
	registry *screens.Registry
	recorder audit.Recorder
	probe    ReadyProbe
	version  string
}

// New wires the router.
func New(d Deps) *API {
	a := &API{
		sessions: d.Sessions,
		guard:    d.Guard,
		registry: d.Registry,
		recorder: d.Recorder,
		probe:    d.Probe,
		version:  d.Version,
	}
	if a.recorder == nil {
		a.recorder = audit.Nop{}
	}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(LoggingJSON)
	r.Use(SecurityHeaders)
	if d.RateLimitRequests > 0 {
		window := d.RateLimitWindow
		if window <= 0 {
			window = time.Minute
		}
		r.Use(httprate.LimitByIP(d.RateLimitRequests, window))
	}
	r.Use(MaxBodyBytes(1 << 20))

	r.Get("/healthz", a.healthz)
	r.Get("/readyz", a.ready)
	r.Handle("/metrics", obs.Handler())

	r.Post("/login", a.login)
	r.Post("/register", a.register)

	r.Group(func(pr chi.Router) {
		pr.Use(a.guard.Middleware())
		pr.Post("/logout", a.logout)
		pr.Get("/dashboard", a.dashboard)
		pr.Route("/screens/{resource}", func(sr chi.Router) {
			sr.Get("/", a.listScreen)
			sr.Post("/", a.createRecord)
			sr.Put("/{id}", a.updateRecord)
			sr.Delete("/{id}", a.deleteRecord)
		})
	})

	r.Group(func(ar chi.Router) {
		ar.Use(a.guard.Middleware(authz.RoleAdmin))
		ar.Get("/audit", a.recentAudit)
	})

	a.router = r
	return a
}

// Handler returns the instrumented root handler.
func (a *API) Handler() http.Handler {
	return obs.Instrument(a.router)
}

func (a *API) healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"service": "flightdeck-console",
		"version": a.version,
	})
}

func (a *API) ready(w http.ResponseWriter, r *http.Request) {
	if err := a.probe.Check(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status": "not_ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ready"})
}

// audit records one console action; failures are logged, never surfaced.
func (a *API) audit(ctx context.Context, event, resource string, recordID int64, detail map[string]any) {
	entry := audit.Entry{
		Event:    event,
		Resource: resource,
		RecordID: recordID,
		Detail:   detail,
	}
	if sess, ok := session.FromContext(ctx); ok {
		entry.ActorID = sess.UserID
		entry.ActorRole = sess.Role
	}
	if err := a.recorder.Record(ctx, entry); err != nil {
		obs.LogRequest(map[string]any{
			"level": "error",
			"msg":   "audit record failed",
			"event": event,
			"error": err.Error(),
		})
	}
}
