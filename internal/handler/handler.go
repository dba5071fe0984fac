// Package handler contains chi HTTP handlers that translate HTTP
// requests/responses to and from the platform.
package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/Shivanand-hulikatti/cosmo-events/internal/model"
	"github.com/Shivanand-hulikatti/cosmo-events/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// EventHandler holds all HTTP handlers for the event platform API.
type EventHandler struct {
	platform  *service.Platform
	validator *validator.Validate
}

// NewEventHandler constructs an EventHandler.
func NewEventHandler(platform *service.Platform) *EventHandler {
	return &EventHandler{platform: platform, validator: newValidator()}
}

// ─── Helper utilities ─────────────────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, model.ErrorResponse{Error: msg})
}

func decodeJSON(r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, 1<<20) // 1 MB limit
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func eventID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	return id, err == nil
}

// writeServiceError maps platform errors to HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid email or password")
	case errors.Is(err, service.ErrNotLoggedIn):
		writeError(w, http.StatusUnauthorized, "you must log in first")
	case errors.Is(err, service.ErrEventNotFound):
		writeError(w, http.StatusNotFound, "event not found")
	case errors.Is(err, service.ErrDuplicateEmail):
		writeError(w, http.StatusConflict, "email is already registered")
	case errors.Is(err, service.ErrAlreadyEnrolled):
		writeError(w, http.StatusConflict, "you are already enrolled in this event")
	case errors.Is(err, service.ErrNotEnrolled),
		errors.Is(err, service.ErrPaymentNotRequired),
		errors.Is(err, service.ErrInvalidVoucher):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		log.Printf("internal error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func (h *EventHandler) eventDetail(id int) (model.EventDetail, error) {
	ev, err := h.platform.Event(id)
	if err != nil {
		return model.EventDetail{}, err
	}
	detail := model.EventDetail{EventView: ev}
	if e, ok := h.platform.EnrollmentFor(id); ok {
		detail.Enrollment = &model.EnrollmentView{EventID: e.EventID(), Paid: e.Paid()}
	}
	return detail, nil
}

// ─── Events ───────────────────────────────────────────────────────────────────

// ListEvents handles GET /events
func (h *EventHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.platform.Events())
}

// GetEvent handles GET /events/{id}
// The session user's enrollment is included when present.
func (h *EventHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := eventID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid event id")
		return
	}
	detail, err := h.eventDetail(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// Enroll handles POST /events/{id}/enrollment
func (h *EventHandler) Enroll(w http.ResponseWriter, r *http.Request) {
	id, ok := eventID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid event id")
		return
	}
	if err := h.platform.EnrollInEvent(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	detail, err := h.eventDetail(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, detail)
}

// CancelEnrollment handles DELETE /events/{id}/enrollment
func (h *EventHandler) CancelEnrollment(w http.ResponseWriter, r *http.Request) {
	id, ok := eventID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid event id")
		return
	}
	if err := h.platform.CancelEnrollment(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Pay handles POST /events/{id}/payment
// Confirms a pending payment with a voucher code.
func (h *EventHandler) Pay(w http.ResponseWriter, r *http.Request) {
	id, ok := eventID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid event id")
		return
	}
	var req model.PaymentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	receipt, err := h.platform.ConfirmPayment(r.Context(), id, req.Code)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, receipt)
}

// ─── Accounts and session ─────────────────────────────────────────────────────

// Register handles POST /users
func (h *EventHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if err := h.validate(req); err != nil {
		writeServiceError(w, err)
		return
	}

	u, err := h.platform.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, u.View())
}

// Login handles POST /session
func (h *EventHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := h.validate(req); err != nil {
		writeServiceError(w, err)
		return
	}
	u, err := h.platform.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u.View())
}

// Session handles GET /session
func (h *EventHandler) Session(w http.ResponseWriter, r *http.Request) {
	u := h.platform.LoggedInUser()
	if u == nil {
		writeServiceError(w, service.ErrNotLoggedIn)
		return
	}
	writeJSON(w, http.StatusOK, u.View())
}

// Logout handles DELETE /session
func (h *EventHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.platform.Logout(r.Context()); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Rename handles PATCH /me
func (h *EventHandler) Rename(w http.ResponseWriter, r *http.Request) {
	var req model.RenameRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if err := h.validate(req); err != nil {
		writeServiceError(w, err)
		return
	}
	u, err := h.platform.EditLoggedInUserName(r.Context(), req.Name)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u.View())
}

// MyEvents handles GET /me/events
// Logged-out callers get an empty list.
func (h *EventHandler) MyEvents(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.platform.EnrolledEvents())
}

// ─── Health check ─────────────────────────────────────────────────────────────

// HealthCheck handles GET /health
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
