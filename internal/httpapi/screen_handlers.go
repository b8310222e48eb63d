package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"flightdeck.io/console/internal/authz"
	"flightdeck.io/console/internal/forms"
	"flightdeck.io/console/internal/listview"
	"flightdeck.io/console/internal/screens"
	"flightdeck.io/console/internal/session"
	"flightdeck.io/console/internal/travel"
)

type fieldDescriptor struct {
	Name     string `json:"name"`
	Label    string `json:"label"`
	Kind     string `json:"kind"`
	Required bool   `json:"required"`
	Section  string `json:"section,omitempty"`
}

type capabilities struct {
	Create bool `json:"create"`
	Edit   bool `json:"edit"`
	Delete bool `json:"delete"`
}

type screenResponse struct {
	Resource string            `json:"resource"`
	Title    string            `json:"title"`
	Columns  []string          `json:"columns"`
	Fields   []fieldDescriptor `json:"fields"`
	Rows     []screens.Row     `json:"rows"`
	Can      capabilities      `json:"can"`
}

func describeFields(fields []forms.Field) []fieldDescriptor {
	out := make([]fieldDescriptor, len(fields))
	for i, f := range fields {
		out[i] = fieldDescriptor{
			Name:     f.Name,
			Label:    f.Label,
			Kind:     string(f.Kind),
			Required: f.Required,
			Section:  f.Section,
		}
	}
	return out
}

func (a *API) binding(w http.ResponseWriter, r *http.Request) (screens.Binding, bool) {
	b, ok := a.registry.Lookup(chi.URLParam(r, "resource"))
	if !ok {
		writeError(w, r, http.StatusNotFound, "unknown screen")
	}
	return b, ok
}

func recordID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, r, http.StatusBadRequest, "id must be a positive integer")
		return 0, false
	}
	return id, true
}

// mountList fetches the screen's collection and mounts the list engine over
// it. The engine's own gates decide edit and delete.
func (a *API) mountList(ctx context.Context, b screens.Binding) (*listview.List[screens.Row], error) {
	rows, err := b.List(ctx)
	if err != nil {
		return nil, err
	}
	return listview.New(listview.Config[screens.Row]{
		Resource: b.Resource,
		Role:     session.RoleFromContext(ctx),
		Columns:  b.Columns,
		Schema:   b.Fields,
		Records:  rows,
		Prefill:  b.Prefill,
		Remove:   b.Delete,
		Reload:   b.List,
	}), nil
}

func (a *API) listScreen(w http.ResponseWriter, r *http.Request) {
	b, ok := a.binding(w, r)
	if !ok {
		return
	}
	role := session.RoleFromContext(r.Context())
	if err := authz.Require(role, b.Resource, authz.ActionView); err != nil {
		a.platformError(w, r, err)
		return
	}

	lv, err := a.mountList(r.Context(), b)
	if err != nil {
		a.platformError(w, r, err)
		return
	}
	defer lv.Close()

	writeJSON(w, http.StatusOK, screenResponse{
		Resource: string(b.Resource),
		Title:    b.Title,
		Columns:  lv.Columns(),
		Fields:   describeFields(b.Fields),
		Rows:     lv.Records(),
		Can: capabilities{
			Create: authz.Can(role, b.Resource, authz.ActionCreate),
			Edit:   authz.Can(role, b.Resource, authz.ActionEdit),
			Delete: authz.Can(role, b.Resource, authz.ActionDelete),
		},
	})
}

func (a *API) createRecord(w http.ResponseWriter, r *http.Request) {
	b, ok := a.binding(w, r)
	if !ok {
		return
	}
	role := session.RoleFromContext(r.Context())
	if err := authz.Require(role, b.Resource, authz.ActionCreate); err != nil {
		a.platformError(w, r, err)
		return
	}

	var body map[string]any
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	var saved screens.Row
	var opErr error
	form := forms.New(b.Fields, forms.Submitter{
		Create: func(ctx context.Context, fields travel.Fields) error {
			row, err := b.Create(ctx, fields)
			if err != nil {
				opErr = err
				return err
			}
			saved = row
			return nil
		},
	}, forms.WithScheduler(func(time.Duration, func()) {}))

	if !a.submitForm(w, r, form, b.Fields, body, &opErr) {
		return
	}

	a.audit(r.Context(), string(b.Resource)+".create", string(b.Resource), saved.ID, nil)
	writeJSON(w, http.StatusCreated, saved)
}

func (a *API) updateRecord(w http.ResponseWriter, r *http.Request) {
	b, ok := a.binding(w, r)
	if !ok {
		return
	}
	id, ok := recordID(w, r)
	if !ok {
		return
	}
	role := session.RoleFromContext(r.Context())
	if err := authz.Require(role, b.Resource, authz.ActionEdit); err != nil {
		a.platformError(w, r, err)
		return
	}

	var body map[string]any
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	var saved screens.Row
	var opErr error
	submit := forms.Submitter{
		Update: func(ctx context.Context, recID int64, fields travel.Fields) error {
			row, err := b.Update(ctx, recID, fields)
			if err != nil {
				opErr = err
				return err
			}
			saved = row
			return nil
		},
	}

	lv, err := a.mountList(r.Context(), b)
	if err != nil {
		a.platformError(w, r, err)
		return
	}
	defer lv.Close()

	// Swap the list's submitter in before opening the edit form so the
	// save lands on this request's capture.
	form, err := lv.EditWith(id, submit)
	if err != nil {
		a.platformError(w, r, err)
		return
	}
	defer form.Close()

	if !a.submitForm(w, r, form, b.Fields, body, &opErr) {
		return
	}

	a.audit(r.Context(), string(b.Resource)+".update", string(b.Resource), id, nil)
	writeJSON(w, http.StatusOK, saved)
}

func (a *API) deleteRecord(w http.ResponseWriter, r *http.Request) {
	b, ok := a.binding(w, r)
	if !ok {
		return
	}
	id, ok := recordID(w, r)
	if !ok {
		return
	}
	if r.URL.Query().Get("confirm") != "true" {
		a.platformError(w, r, listview.ErrConfirmationRequired)
		return
	}
	role := session.RoleFromContext(r.Context())
	if err := authz.Require(role, b.Resource, authz.ActionDelete); err != nil {
		a.platformError(w, r, err)
		return
	}

	lv, err := a.mountList(r.Context(), b)
	if err != nil {
		a.platformError(w, r, err)
		return
	}
	defer lv.Close()

	if err := lv.Delete(r.Context(), id, true); err != nil {
		a.platformError(w, r, err)
		return
	}

	a.audit(r.Context(), string(b.Resource)+".delete", string(b.Resource), id, map[string]any{
		"confirmed": true,
	})
	writeJSON(w, http.StatusOK, map[string]any{"status": "deleted"})
}

// submitForm applies the request body to the form and submits it, writing
// the failure response when the save did not go through. It reports whether
// the caller should continue with its success path.
func (a *API) submitForm(w http.ResponseWriter, r *http.Request, form *forms.Form, fields []forms.Field, body map[string]any, opErr *error) bool {
	if err := applyValues(form, fields, body); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return false
	}
	if form.Submit(r.Context()) {
		return true
	}
	if errs := form.Errors(); len(errs) > 0 {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"errors": errs})
		return false
	}
	if *opErr != nil {
		a.platformError(w, r, *opErr)
		return false
	}
	writeError(w, r, http.StatusInternalServerError, "save failed")
	return false
}

// applyValues copies the request body into the form, interpreting raw
// strings according to each field's declared kind.
func applyValues(form *forms.Form, fields []forms.Field, body map[string]any) error {
	known := make(map[string]forms.Field, len(fields))
	for _, f := range fields {
		known[f.Name] = f
	}
	for name, raw := range body {
		f, ok := known[name]
		if !ok {
			return fmt.Errorf("unknown field %q", name)
		}
		switch v := raw.(type) {
		case string:
			val, err := forms.ParseValue(f.Kind, v)
			if err != nil {
				return fmt.Errorf("invalid value for %q", name)
			}
			form.SetValue(name, val)
		case float64:
			form.SetValue(name, forms.Number(v))
		case bool:
			form.SetValue(name, forms.Bool(v))
		case nil:
			// absent
		default:
			return fmt.Errorf("invalid value for %q", name)
		}
	}
	return nil
}

func (a *API) dashboard(w http.ResponseWriter, r *http.Request) {
	sess, _ := session.FromContext(r.Context())

	nav := make([]map[string]any, 0, len(a.registry.All()))
	for _, b := range a.registry.All() {
		nav = append(nav, map[string]any{
			"resource": string(b.Resource),
			"title":    b.Title,
			"can": capabilities{
				Create: authz.Can(sess.Role, b.Resource, authz.ActionCreate),
				Edit:   authz.Can(sess.Role, b.Resource, authz.ActionEdit),
				Delete: authz.Can(sess.Role, b.Resource, authz.ActionDelete),
			},
			"viewable": authz.Can(sess.Role, b.Resource, authz.ActionView),
		})
	}

	resp := map[string]any{
		"session": sessionPayload(sess),
		"screens": nav,
	}
	if notice := r.URL.Query().Get("notice"); notice != "" {
		resp["notice"] = notice
	}
	writeJSON(w, http.StatusOK, resp)
}

func (a *API) recentAudit(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 || v > 500 {
			writeError(w, r, http.StatusBadRequest, "limit must be between 1 and 500")
			return
		}
		limit = v
	}
	entries, err := a.recorder.Recent(r.Context(), limit)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "audit trail unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": entries})
}

// platformError maps engine and platform failures onto HTTP statuses.
func (a *API) platformError(w http.ResponseWriter, r *http.Request, err error) {
	var pe *authz.PermissionError
	if errors.As(err, &pe) {
		writeError(w, r, http.StatusForbidden, pe.Error())
		return
	}
	if errors.Is(err, listview.ErrConfirmationRequired) {
		writeError(w, r, http.StatusBadRequest, "delete requires confirm=true")
		return
	}
	if errors.Is(err, listview.ErrRecordNotFound) {
		writeError(w, r, http.StatusNotFound, "record not found")
		return
	}
	if errors.Is(err, travel.ErrUnauthorized) {
		writeError(w, r, http.StatusUnauthorized, "platform session expired")
		return
	}
	if errors.Is(err, travel.ErrNotFound) {
		writeError(w, r, http.StatusNotFound, "record not found")
		return
	}
	var oe *travel.OperationError
	if errors.As(err, &oe) && oe.Status >= 400 && oe.Status < 600 {
		writeError(w, r, oe.Status, oe.Message)
		return
	}
	writeError(w, r, http.StatusBadGateway, "booking platform unavailable")
}
