// Package guard gates protected console screens. Every request runs the
// same short state machine: restore the session, check the required roles,
// end in exactly one terminal state.
package guard

import (
	"context"

	"flightdeck.io/console/internal/authz"
	"flightdeck.io/console/internal/session"
)

// State is a phase of the route guard state machine.
type State int

const (
	// StateInitializing: waiting for the session store; nothing renders.
	StateInitializing State = iota
	// StateChecking: restoration done, role requirement being evaluated.
	StateChecking
	// StateAuthorized: the only state in which protected content is served.
	StateAuthorized
	// StateRedirectLogin: no session; navigate to the login screen.
	StateRedirectLogin
	// StateRedirectDashboard: authenticated but lacking a required role;
	// navigate to the dashboard with an access-denied notice.
	StateRedirectDashboard
)

func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateChecking:
		return "checking"
	case StateAuthorized:
		return "authorized"
	case StateRedirectLogin:
		return "redirect_login"
	case StateRedirectDashboard:
		return "redirect_dashboard"
	default:
		return "unknown"
	}
}

// Terminal reports whether s ends an evaluation.
func (s State) Terminal() bool {
	return s == StateAuthorized || s == StateRedirectLogin || s == StateRedirectDashboard
}

// Decision is the outcome of one evaluation. Path records the states passed
// through, always starting at StateInitializing.
type Decision struct {
	State   State
	Session *session.Session
	Notice  string
	Path    []State
}

// Restorer is the slice of the session store the guard depends on.
type Restorer interface {
	Restore(ctx context.Context) (*session.Session, error)
}

// Guard evaluates access to protected screens.
type Guard struct {
	sessions      Restorer
	loginPath     string
	dashboardPath string
}

// Option configures a Guard.
type Option func(*Guard)

// WithPaths overrides the login and dashboard navigation targets.
func WithPaths(login, dashboard string) Option {
	return func(g *Guard) {
		if login != "" {
			g.loginPath = login
		}
		if dashboard != "" {
			g.dashboardPath = dashboard
		}
	}
}

// New constructs a Guard over the given session restorer.
func New(sessions Restorer, opts ...Option) *Guard {
	g := &Guard{
		sessions:      sessions,
		loginPath:     "/login",
		dashboardPath: "/dashboard",
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Evaluate runs the state machine once. With an empty required set any
// authenticated session passes. Exactly one redirect (or none) is issued
// per evaluation; re-entering a protected route starts over from
// StateInitializing.
func (g *Guard) Evaluate(ctx context.Context, required ...authz.Role) Decision {
	d := Decision{State: StateInitializing, Path: []State{StateInitializing}}

	sess, err := g.sessions.Restore(ctx)
	d.advance(StateChecking)
	if err != nil || sess == nil || !sess.Authenticated() {
		// Restoration failures look exactly like an absent session; the
		// operator signs in again rather than seeing an error screen.
		d.advance(StateRedirectLogin)
		return d
	}
	if len(required) > 0 && !authz.HasRole(sess.Role, required...) {
		d.Notice = "access denied"
		d.advance(StateRedirectDashboard)
		return d
	}
	d.Session = sess
	d.advance(StateAuthorized)
	return d
}

func (d *Decision) advance(s State) {
	d.State = s
	d.Path = append(d.Path, s)
}

// LoginPath is the navigation target for StateRedirectLogin.
func (g *Guard) LoginPath() string { return g.loginPath }

// DashboardPath is the navigation target for StateRedirectDashboard.
func (g *Guard) DashboardPath() string { return g.dashboardPath }
