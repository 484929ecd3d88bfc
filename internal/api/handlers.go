// Package api exposes HTTP handlers for the activities service.
package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"example.com/activities/internal/domain"
	"example.com/activities/internal/observability"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Handler coordinates HTTP requests with the activity registry.
type Handler struct {
	registry *domain.Registry
}

// NewHandler builds a Handler.
func NewHandler(registry *domain.Registry) *Handler {
	return &Handler{registry: registry}
}

// RegisterRoutes wires endpoints to the mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/", index)
	mux.HandleFunc("/activities", h.activities)
	mux.HandleFunc("/activities/", h.activityAction)
	mux.HandleFunc("/healthz", healthz)
}

// index redirects the site root to the static frontend.
func index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeError(w, http.StatusNotFound, "not_found", "resource not found")
		return
	}
	http.Redirect(w, r, "/static/index.html", http.StatusTemporaryRedirect)
}

// healthz reports a simple OK status for container health checks.
func healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) activities(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}

	listed := h.registry.List()
	out := make(map[string]ActivityView, len(listed))
	for name, activity := range listed {
		out[name] = toActivityView(activity)
	}
	writeJSON(w, http.StatusOK, out)
}

// activityAction dispatches /activities/{name}/signup and
// /activities/{name}/participants. Names never contain a slash, so the first
// separator after the prefix splits name from action.
func (h *Handler) activityAction(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/activities/")
	name, action, ok := strings.Cut(rest, "/")
	if !ok || name == "" {
		writeError(w, http.StatusNotFound, "not_found", "resource not found")
		return
	}

	switch action {
	case "signup":
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
			return
		}
		h.signUp(w, r, name)
	case "participants":
		if r.Method != http.MethodDelete {
			writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
			return
		}
		h.removeParticipant(w, r, name)
	default:
		writeError(w, http.StatusNotFound, "not_found", "resource not found")
	}
}

func (h *Handler) signUp(w http.ResponseWriter, r *http.Request, name string) {
	email := r.URL.Query().Get("email")

	if err := h.registry.SignUp(name, email); err != nil {
		writeRegistryError(w, err)
		return
	}

	observability.RecordSignup(name)
	writeJSON(w, http.StatusOK, MessageResponse{
		Message: fmt.Sprintf("Signed up %s for %s", email, name),
	})
}

func (h *Handler) removeParticipant(w http.ResponseWriter, r *http.Request, name string) {
	email := r.URL.Query().Get("email")

	if err := h.registry.RemoveParticipant(name, email); err != nil {
		writeRegistryError(w, err)
		return
	}

	observability.RecordRemoval(name)
	writeJSON(w, http.StatusOK, MessageResponse{
		Message: fmt.Sprintf("Removed %s from %s", email, name),
	})
}

// MessageResponse is the success payload for roster mutations.
type MessageResponse struct {
	Message string `json:"message"`
}

// ActivityView exposes one activity in the listing.
type ActivityView struct {
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

func toActivityView(activity domain.Activity) ActivityView {
	participants := activity.Participants
	if participants == nil {
		participants = []string{}
	}
	return ActivityView{
		Description:     activity.Description,
		Schedule:        activity.Schedule,
		MaxParticipants: activity.MaxParticipants,
		Participants:    participants,
	}
}

func writeRegistryError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrActivityNotFound):
		observability.RecordRejection("activity_not_found")
		writeError(w, http.StatusNotFound, "not_found", "Activity not found")
	case errors.Is(err, domain.ErrAlreadySignedUp):
		observability.RecordRejection("already_signed_up")
		writeError(w, http.StatusBadRequest, "invalid_request", "Student is already signed up")
	case errors.Is(err, domain.ErrNotSignedUp):
		observability.RecordRejection("not_signed_up")
		writeError(w, http.StatusBadRequest, "invalid_request", "Student is not signed up for this activity")
	case errors.Is(err, domain.ErrEmailRequired):
		observability.RecordRejection("email_required")
		writeError(w, http.StatusBadRequest, "validation_failed", "email is required")
	default:
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
	}
}

func writeError(w http.ResponseWriter, status int, code, detail string) {
	payload := map[string]string{
		"type":   code,
		"detail": detail,
	}
	writeJSON(w, status, payload)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
