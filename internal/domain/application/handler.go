package application

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/PramodChhetri/Yeti-Kawasoti-sub000/internal/domain/billing"
	"github.com/PramodChhetri/Yeti-Kawasoti-sub000/internal/domain/member"
	"github.com/PramodChhetri/Yeti-Kawasoti-sub000/internal/domain/membership"
	"github.com/PramodChhetri/Yeti-Kawasoti-sub000/internal/pkg/response"
	"github.com/PramodChhetri/Yeti-Kawasoti-sub000/internal/pkg/validator"
)

type Handler struct {
	workflow *Workflow
}

func NewHandler(workflow *Workflow) *Handler {
	return &Handler{workflow: workflow}
}

// Routes returns the applications router. Submissions are public; review
// requires staff auth.
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/registrations", h.SubmitRegistration)
	r.Post("/renewals", h.SubmitRenewal)

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/registrations", h.ListRegistrations)
		r.Get("/renewals", h.ListRenewals)
		r.Post("/registrations/{applicationID}/approve", h.ApproveRegistration)
		r.Post("/renewals/{applicationID}/approve", h.ApproveRenewal)
		r.Delete("/registrations/{applicationID}", h.RejectRegistration)
		r.Delete("/renewals/{applicationID}", h.RejectRenewal)
	})

	return r
}

func (h *Handler) SubmitRegistration(w http.ResponseWriter, r *http.Request) {
	var req SubmitRegistrationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	app, err := h.workflow.SubmitRegistration(r.Context(), &req)
	if err != nil {
		h.handleError(w, err)
		return
	}
	response.Created(w, app)
}

func (h *Handler) SubmitRenewal(w http.ResponseWriter, r *http.Request) {
	var req SubmitRenewalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	app, err := h.workflow.SubmitRenewal(r.Context(), &req)
	if err != nil {
		h.handleError(w, err)
		return
	}
	response.Created(w, app)
}

func (h *Handler) ListRegistrations(w http.ResponseWriter, r *http.Request) {
	apps, err := h.workflow.ListRegistrations(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list registration applications")
		response.InternalError(w)
		return
	}
	response.OK(w, apps)
}

func (h *Handler) ListRenewals(w http.ResponseWriter, r *http.Request) {
	apps, err := h.workflow.ListRenewals(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list renewal applications")
		response.InternalError(w)
		return
	}
	response.OK(w, apps)
}

func (h *Handler) ApproveRegistration(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "applicationID"))
	if err != nil {
		response.BadRequest(w, "Invalid application ID")
		return
	}

	var req ApproveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	result, err := h.workflow.ApproveRegistration(r.Context(), id, &req)
	if err != nil {
		h.handleError(w, err)
		return
	}
	response.OK(w, result)
}

func (h *Handler) ApproveRenewal(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "applicationID"))
	if err != nil {
		response.BadRequest(w, "Invalid application ID")
		return
	}

	var req ApproveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	result, err := h.workflow.ApproveRenewal(r.Context(), id, &req)
	if err != nil {
		h.handleError(w, err)
		return
	}
	response.OK(w, result)
}

func (h *Handler) RejectRegistration(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "applicationID"))
	if err != nil {
		response.BadRequest(w, "Invalid application ID")
		return
	}
	if err := h.workflow.RejectRegistration(r.Context(), id); err != nil {
		h.handleError(w, err)
		return
	}
	response.NoContent(w)
}

func (h *Handler) RejectRenewal(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "applicationID"))
	if err != nil {
		response.BadRequest(w, "Invalid application ID")
		return
	}
	if err := h.workflow.RejectRenewal(r.Context(), id); err != nil {
		h.handleError(w, err)
		return
	}
	response.NoContent(w)
}

func (h *Handler) handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrApplicationNotFound):
		response.NotFound(w, "Application not found")
	case errors.Is(err, ErrPhonePending):
		response.Conflict(w, "An application for this phone is already pending")
	case errors.Is(err, member.ErrMemberNotFound):
		response.NotFound(w, "Member not found")
	case errors.Is(err, membership.ErrPackageNotFound):
		response.NotFound(w, "Package not found")
	case errors.Is(err, membership.ErrInvalidDuration):
		response.BadRequest(w, "Unsupported membership duration")
	case errors.Is(err, billing.ErrInvalidAmount):
		response.BadRequest(w, "Amounts must not be negative")
	default:
		log.Error().Err(err).Msg("Application operation failed")
		response.InternalError(w)
	}
}
