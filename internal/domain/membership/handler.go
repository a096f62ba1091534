package membership

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/PramodChhetri/Yeti-Kawasoti-sub000/internal/pkg/response"
	"github.com/PramodChhetri/Yeti-Kawasoti-sub000/internal/pkg/validator"
)

// Handler exposes the package catalog
type Handler struct {
	repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	packages, err := h.repo.List(r.Context())
	if err != nil {
		response.InternalError(w)
		return
	}
	response.OK(w, packages)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid package ID")
		return
	}

	pkg, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		response.InternalError(w)
		return
	}
	if pkg == nil {
		response.NotFound(w, "Membership package not found")
		return
	}
	response.OK(w, pkg)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req SavePackageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	pkg := &Package{
		ID:                 uuid.New(),
		Name:               req.Name,
		AdmissionAmount:    req.AdmissionAmount,
		MonthlyAmount:      req.MonthlyAmount,
		Months:             req.Months,
		DiscountQuarterly:  req.DiscountQuarterly,
		DiscountHalfYearly: req.DiscountHalfYearly,
		DiscountYearly:     req.DiscountYearly,
	}
	if err := h.repo.Create(r.Context(), pkg); err != nil {
		response.InternalError(w)
		return
	}
	response.Created(w, pkg)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid package ID")
		return
	}

	var req SavePackageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	pkg := &Package{
		ID:                 id,
		Name:               req.Name,
		AdmissionAmount:    req.AdmissionAmount,
		MonthlyAmount:      req.MonthlyAmount,
		Months:             req.Months,
		DiscountQuarterly:  req.DiscountQuarterly,
		DiscountHalfYearly: req.DiscountHalfYearly,
		DiscountYearly:     req.DiscountYearly,
	}
	if err := h.repo.Update(r.Context(), pkg); err != nil {
		if errors.Is(err, ErrPackageNotFound) {
			response.NotFound(w, "Membership package not found")
			return
		}
		response.InternalError(w)
		return
	}
	response.OK(w, pkg)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid package ID")
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrPackageNotFound) {
			response.NotFound(w, "Membership package not found")
			return
		}
		response.InternalError(w)
		return
	}
	response.NoContent(w)
}

// Quote prices a registration or renewal without persisting anything.
// Staff UIs use this to show the derived amount before submitting.
func (h *Handler) Quote(w http.ResponseWriter, r *http.Request) {
	var req QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	pkgID, _ := uuid.Parse(req.PackageID)
	pkg, err := h.repo.GetByID(r.Context(), pkgID)
	if err != nil {
		response.InternalError(w)
		return
	}
	if pkg == nil {
		response.NotFound(w, "Membership package not found")
		return
	}

	if req.Renewal {
		quote, err := ComputeRenewal(pkg, req.Months, req.ExtraDiscount)
		if err != nil {
			response.BadRequest(w, err.Error())
			return
		}
		response.OK(w, quote)
		return
	}

	quote, err := ComputeRegistration(pkg, req.Months, req.ExtraDiscount)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}
	response.OK(w, quote)
}

func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/", h.Create)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
		r.Post("/quote", h.Quote)
	})
	return r
}
