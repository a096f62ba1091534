package message

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/PramodChhetri/Yeti-Kawasoti-sub000/internal/pkg/response"
	"github.com/PramodChhetri/Yeti-Kawasoti-sub000/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)

	r.Post("/send", h.Send)
	r.Post("/reminders", h.SendReminders)
	r.Get("/logs", h.ListLogs)

	return r
}

func (h *Handler) Send(w http.ResponseWriter, r *http.Request) {
	var req SendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	l, err := h.service.Send(r.Context(), req.Recipient, req.Body)
	if err != nil {
		log.Error().Err(err).Str("recipient", req.Recipient).Msg("SMS send failed")
		response.Error(w, http.StatusBadGateway, "SMS_FAILED", "Message could not be delivered")
		return
	}
	response.Created(w, l)
}

func (h *Handler) SendReminders(w http.ResponseWriter, r *http.Request) {
	var req ReminderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	sent, failed, err := h.service.SendExpiryReminders(r.Context(), req.Days, req.Body)
	if err != nil {
		log.Error().Err(err).Msg("Reminder batch failed")
		response.InternalError(w)
		return
	}
	response.OK(w, map[string]int{"sent": sent, "failed": failed})
}

func (h *Handler) ListLogs(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	if offset < 0 {
		offset = 0
	}

	logs, err := h.service.ListLogs(r.Context(), limit, offset)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list message logs")
		response.InternalError(w)
		return
	}
	response.OK(w, logs)
}
