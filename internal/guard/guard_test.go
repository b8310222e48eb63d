package guard

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flightdeck.io/console/internal/authz"
	"flightdeck.io/console/internal/session"
)

type staticRestorer struct {
	sess *session.Session
	err  error
}

func (s staticRestorer) Restore(context.Context) (*session.Session, error) {
	return s.sess, s.err
}

func moderator() *session.Session {
	return &session.Session{
		UserID:      7,
		Email:       "mod@example.com",
		Username:    "mod",
		Role:        authz.RoleModerator,
		AccessToken: "tok",
	}
}

func TestEvaluate(t *testing.T) {
	cases := []struct {
		name      string
		restorer  Restorer
		required  []authz.Role
		wantState State
	}{
		{
			name:      "no session redirects to login",
			restorer:  staticRestorer{},
			wantState: StateRedirectLogin,
		},
		{
			name:      "restore failure behaves like no session",
			restorer:  staticRestorer{err: errors.New("keyring down")},
			wantState: StateRedirectLogin,
		},
		{
			name:      "unauthenticated session redirects to login",
			restorer:  staticRestorer{sess: &session.Session{Role: authz.RoleAdmin}},
			wantState: StateRedirectLogin,
		},
		{
			name:      "authenticated with no role requirement",
			restorer:  staticRestorer{sess: moderator()},
			wantState: StateAuthorized,
		},
		{
			name:      "role requirement met",
			restorer:  staticRestorer{sess: moderator()},
			required:  []authz.Role{authz.RoleAdmin, authz.RoleModerator},
			wantState: StateAuthorized,
		},
		{
			name:      "role requirement missed redirects to dashboard",
			restorer:  staticRestorer{sess: moderator()},
			required:  []authz.Role{authz.RoleAdmin},
			wantState: StateRedirectDashboard,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := New(tc.restorer)
			d := g.Evaluate(context.Background(), tc.required...)

			assert.Equal(t, tc.wantState, d.State)
			require.NotEmpty(t, d.Path)
			assert.Equal(t, StateInitializing, d.Path[0], "every evaluation starts from initializing")
			assert.True(t, d.State.Terminal(), "evaluation must end terminal")

			// Exactly one terminal state per evaluation: never both redirects.
			terminals := 0
			for _, s := range d.Path {
				if s.Terminal() {
					terminals++
				}
			}
			assert.Equal(t, 1, terminals)

			if tc.wantState == StateAuthorized {
				assert.NotNil(t, d.Session)
			} else {
				assert.Nil(t, d.Session)
			}
			if tc.wantState == StateRedirectDashboard {
				assert.Equal(t, "access denied", d.Notice)
			}
		})
	}
}

func TestMiddlewareAuthorizedInjectsSession(t *testing.T) {
	g := New(staticRestorer{sess: moderator()})

	var seen *session.Session
	h := g.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = session.FromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/screens/aircraft", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	require.NotNil(t, seen)
	assert.Equal(t, authz.RoleModerator, seen.Role)
}

func TestMiddlewareRedirects(t *testing.T) {
	t.Run("login", func(t *testing.T) {
		g := New(staticRestorer{})
		h := g.Middleware()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			t.Fatal("protected handler must not run")
		}))
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/screens/flights", nil))
		require.Equal(t, http.StatusFound, rr.Code)
		assert.Equal(t, "/login", rr.Header().Get("Location"))
	})

	t.Run("dashboard with notice", func(t *testing.T) {
		g := New(staticRestorer{sess: moderator()}, WithPaths("/signin", "/home"))
		h := g.Middleware(authz.RoleAdmin)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			t.Fatal("protected handler must not run")
		}))
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/screens/aircraft", nil))
		require.Equal(t, http.StatusFound, rr.Code)
		assert.Equal(t, "/home?notice=access+denied", rr.Header().Get("Location"))
	})
}
