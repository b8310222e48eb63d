package guard

import (
	"net/http"
	"net/url"

	"flightdeck.io/console/internal/authz"
	"flightdeck.io/console/internal/session"
)

// Middleware wraps protected routes. Unauthenticated requests are sent to
// the login screen; authenticated requests missing a required role are sent
// to the dashboard carrying the access-denied notice. Authorized requests
// proceed with the session attached to the context.
func (g *Guard) Middleware(required ...authz.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			d := g.Evaluate(r.Context(), required...)
			switch d.State {
			case StateAuthorized:
				ctx := session.ContextWithSession(r.Context(), d.Session)
				next.ServeHTTP(w, r.WithContext(ctx))
			case StateRedirectDashboard:
				target := g.dashboardPath + "?notice=" + url.QueryEscape(d.Notice)
				http.Redirect(w, r, target, http.StatusFound)
			default:
				http.Redirect(w, r, g.loginPath, http.StatusFound)
			}
		})
	}
}
