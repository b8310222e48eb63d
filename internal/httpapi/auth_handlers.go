package httpapi

import (
	"errors"
	"net/http"

	"flightdeck.io/console/internal/authz"
	"flightdeck.io/console/internal/session"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	Username   string `json:"username"`
	NationalID string `json:"nationalId"`
}

type sessionResponse struct {
	User        sessionUser `json:"user"`
	Role        string      `json:"role"`
	Permissions []string    `json:"permissions"`
}

type sessionUser struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

func sessionPayload(sess *session.Session) sessionResponse {
	return sessionResponse{
		User: sessionUser{
			ID:       sess.UserID,
			Email:    sess.Email,
			Username: sess.Username,
		},
		Role:        string(sess.Role),
		Permissions: authz.Permissions(sess.Role),
	}
}

func (a *API) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	sess, err := a.sessions.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		a.authError(w, r, err)
		return
	}

	a.audit(session.ContextWithSession(r.Context(), sess), "auth.login", "", 0, map[string]any{
		"email": sess.Email,
	})
	writeJSON(w, http.StatusOK, sessionPayload(sess))
}

func (a *API) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	sess, err := a.sessions.Register(r.Context(), req.Email, req.Password, req.Username, req.NationalID)
	if err != nil {
		a.authError(w, r, err)
		return
	}

	a.audit(session.ContextWithSession(r.Context(), sess), "auth.register", "", 0, map[string]any{
		"email": sess.Email,
	})
	writeJSON(w, http.StatusCreated, sessionPayload(sess))
}

func (a *API) logout(w http.ResponseWriter, r *http.Request) {
	if err := a.sessions.Logout(r.Context()); err != nil {
		writeError(w, r, http.StatusInternalServerError, "logout failed")
		return
	}
	a.audit(r.Context(), "auth.logout", "", 0, nil)
	writeJSON(w, http.StatusOK, map[string]any{"status": "logged_out"})
}

func (a *API) authError(w http.ResponseWriter, r *http.Request, err error) {
	var ae *session.AuthError
	if errors.As(err, &ae) {
		writeError(w, r, http.StatusUnauthorized, ae.Reason)
		return
	}
	writeError(w, r, http.StatusBadGateway, "booking platform unavailable")
}
