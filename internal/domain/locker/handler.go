package locker

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/PramodChhetri/Yeti-Kawasoti-sub000/internal/pkg/response"
	"github.com/PramodChhetri/Yeti-Kawasoti-sub000/internal/pkg/validator"
)

// SaveLockerRequest creates or updates a locker catalog entry
type SaveLockerRequest struct {
	Name   string          `json:"name" validate:"required,min=1,max=50"`
	Months int             `json:"months" validate:"required,gte=1,lte=12"`
	Price  decimal.Decimal `json:"price" validate:"required"`
}

// Handler exposes the locker catalog and assignment listings. Assigning and
// extending lockers are financial operations and live under billing.
type Handler struct {
	repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	lockers, err := h.repo.List(r.Context())
	if err != nil {
		response.InternalError(w)
		return
	}
	response.OK(w, lockers)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req SaveLockerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	l := &Locker{
		ID:     uuid.New(),
		Name:   req.Name,
		Months: req.Months,
		Price:  req.Price,
	}
	if err := h.repo.Create(r.Context(), l); err != nil {
		response.InternalError(w)
		return
	}
	response.Created(w, l)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid locker ID")
		return
	}

	var req SaveLockerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	l := &Locker{ID: id, Name: req.Name, Months: req.Months, Price: req.Price}
	if err := h.repo.Update(r.Context(), l); err != nil {
		if errors.Is(err, ErrLockerNotFound) {
			response.NotFound(w, "Locker not found")
			return
		}
		response.InternalError(w)
		return
	}
	response.OK(w, l)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid locker ID")
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrLockerNotFound) {
			response.NotFound(w, "Locker not found")
			return
		}
		response.InternalError(w)
		return
	}
	response.NoContent(w)
}

func (h *Handler) ListActiveAssignments(w http.ResponseWriter, r *http.Request) {
	assignments, err := h.repo.ListActive(r.Context())
	if err != nil {
		response.InternalError(w)
		return
	}
	response.OK(w, assignments)
}

func (h *Handler) ListByMember(w http.ResponseWriter, r *http.Request) {
	memberID, err := uuid.Parse(chi.URLParam(r, "memberID"))
	if err != nil {
		response.BadRequest(w, "Invalid member ID")
		return
	}

	assignments, err := h.repo.ListByMember(r.Context(), memberID)
	if err != nil {
		response.InternalError(w)
		return
	}
	response.OK(w, assignments)
}

func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
	r.Get("/assignments", h.ListActiveAssignments)
	r.Get("/members/{memberID}", h.ListByMember)
	return r
}
