package billing

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/PramodChhetri/Yeti-Kawasoti-sub000/internal/domain/locker"
	"github.com/PramodChhetri/Yeti-Kawasoti-sub000/internal/domain/member"
	"github.com/PramodChhetri/Yeti-Kawasoti-sub000/internal/domain/membership"
	"github.com/PramodChhetri/Yeti-Kawasoti-sub000/internal/pkg/response"
	"github.com/PramodChhetri/Yeti-Kawasoti-sub000/internal/pkg/validator"
)

type Handler struct {
	coordinator *Coordinator
}

func NewHandler(coordinator *Coordinator) *Handler {
	return &Handler{coordinator: coordinator}
}

// Routes returns the billing router. Every route mutates money, so the
// whole subtree sits behind staff auth.
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)

	r.Post("/registrations", h.Register)
	r.Post("/members/{memberID}/renewals", h.Renew)
	r.Post("/members/{memberID}/lockers", h.AssignLocker)
	r.Post("/locker-assignments/{assignmentID}/extend", h.ExtendLocker)
	r.Post("/members/{memberID}/transactions", h.RecordTransaction)
	r.Post("/members/{memberID}/refunds", h.Refund)
	r.Post("/members/{memberID}/extra-credits", h.GrantExtraCredit)
	r.Delete("/extra-credits/{entryID}", h.RevokeExtraCredit)
	r.Put("/members/{memberID}/package", h.ChangePackage)
	r.Get("/members/{memberID}/statement", h.Statement)

	return r
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegistrationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	result, err := h.coordinator.Register(r.Context(), &req)
	if err != nil {
		h.handleError(w, err)
		return
	}
	response.Created(w, result)
}

func (h *Handler) Renew(w http.ResponseWriter, r *http.Request) {
	memberID, err := uuid.Parse(chi.URLParam(r, "memberID"))
	if err != nil {
		response.BadRequest(w, "Invalid member ID")
		return
	}

	var req RenewalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	result, err := h.coordinator.Renew(r.Context(), memberID, &req)
	if err != nil {
		h.handleError(w, err)
		return
	}
	response.Created(w, result)
}

func (h *Handler) AssignLocker(w http.ResponseWriter, r *http.Request) {
	memberID, err := uuid.Parse(chi.URLParam(r, "memberID"))
	if err != nil {
		response.BadRequest(w, "Invalid member ID")
		return
	}

	var req LockerAssignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	result, err := h.coordinator.AssignLocker(r.Context(), memberID, &req)
	if err != nil {
		h.handleError(w, err)
		return
	}
	response.Created(w, result)
}

func (h *Handler) ExtendLocker(w http.ResponseWriter, r *http.Request) {
	assignmentID, err := uuid.Parse(chi.URLParam(r, "assignmentID"))
	if err != nil {
		response.BadRequest(w, "Invalid assignment ID")
		return
	}

	var req LockerExtendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	result, err := h.coordinator.ExtendLocker(r.Context(), assignmentID, &req)
	if err != nil {
		h.handleError(w, err)
		return
	}
	response.Created(w, result)
}

func (h *Handler) RecordTransaction(w http.ResponseWriter, r *http.Request) {
	memberID, err := uuid.Parse(chi.URLParam(r, "memberID"))
	if err != nil {
		response.BadRequest(w, "Invalid member ID")
		return
	}

	var req MiscTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	result, err := h.coordinator.RecordTransaction(r.Context(), memberID, &req)
	if err != nil {
		h.handleError(w, err)
		return
	}
	response.Created(w, result)
}

func (h *Handler) Refund(w http.ResponseWriter, r *http.Request) {
	memberID, err := uuid.Parse(chi.URLParam(r, "memberID"))
	if err != nil {
		response.BadRequest(w, "Invalid member ID")
		return
	}

	var req RefundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	result, err := h.coordinator.RefundMember(r.Context(), memberID, &req)
	if err != nil {
		h.handleError(w, err)
		return
	}
	response.Created(w, result)
}

func (h *Handler) GrantExtraCredit(w http.ResponseWriter, r *http.Request) {
	memberID, err := uuid.Parse(chi.URLParam(r, "memberID"))
	if err != nil {
		response.BadRequest(w, "Invalid member ID")
		return
	}

	var req ExtraCreditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	result, err := h.coordinator.GrantExtraCredit(r.Context(), memberID, &req)
	if err != nil {
		h.handleError(w, err)
		return
	}
	response.Created(w, result)
}

func (h *Handler) RevokeExtraCredit(w http.ResponseWriter, r *http.Request) {
	entryID, err := uuid.Parse(chi.URLParam(r, "entryID"))
	if err != nil {
		response.BadRequest(w, "Invalid entry ID")
		return
	}

	result, err := h.coordinator.RevokeExtraCredit(r.Context(), entryID)
	if err != nil {
		h.handleError(w, err)
		return
	}
	response.OK(w, result)
}

func (h *Handler) ChangePackage(w http.ResponseWriter, r *http.Request) {
	memberID, err := uuid.Parse(chi.URLParam(r, "memberID"))
	if err != nil {
		response.BadRequest(w, "Invalid member ID")
		return
	}

	var req PackageChangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	if err := h.coordinator.ChangePackage(r.Context(), memberID, &req); err != nil {
		h.handleError(w, err)
		return
	}
	response.OK(w, map[string]string{"message": "Package changed successfully"})
}

func (h *Handler) Statement(w http.ResponseWriter, r *http.Request) {
	memberID, err := uuid.Parse(chi.URLParam(r, "memberID"))
	if err != nil {
		response.BadRequest(w, "Invalid member ID")
		return
	}

	entries, err := h.coordinator.Statement(r.Context(), memberID)
	if err != nil {
		h.handleError(w, err)
		return
	}
	response.OK(w, entries)
}

func (h *Handler) handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidAmount):
		response.BadRequest(w, "Amounts must not be negative")
	case errors.Is(err, ErrInsufficientCredit):
		response.Conflict(w, "Member balance does not cover this entry")
	case errors.Is(err, ErrEntryNotFound):
		response.NotFound(w, "Ledger entry not found")
	case errors.Is(err, ErrDeviceSyncFailed):
		response.Error(w, http.StatusBadGateway, "DEVICE_SYNC_FAILED", "Access device rejected the change; nothing was applied")
	case errors.Is(err, member.ErrMemberNotFound):
		response.NotFound(w, "Member not found")
	case errors.Is(err, membership.ErrPackageNotFound):
		response.NotFound(w, "Package not found")
	case errors.Is(err, membership.ErrInvalidDuration):
		response.BadRequest(w, "Unsupported membership duration")
	case errors.Is(err, locker.ErrLockerNotFound):
		response.NotFound(w, "Locker not found")
	case errors.Is(err, locker.ErrAssignmentNotFound):
		response.NotFound(w, "Locker assignment not found")
	case errors.Is(err, locker.ErrLockerNumberTaken):
		response.Conflict(w, "Locker number already in use")
	default:
		log.Error().Err(err).Msg("Billing operation failed")
		response.InternalError(w)
	}
}
