package access

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/PramodChhetri/Yeti-Kawasoti-sub000/internal/pkg/response"
	"github.com/PramodChhetri/Yeti-Kawasoti-sub000/internal/pkg/validator"
)

// CheckInRequest is the webhook payload posted by the access controller.
type CheckInRequest struct {
	BadgeID    string `json:"badge_id" validate:"required,max=50"`
	OccurredAt string `json:"occurred_at,omitempty"` // RFC 3339
}

type Handler struct {
	service       *Service
	hub           *Hub
	webhookSecret string
	upgrader      websocket.Upgrader
}

func NewHandler(service *Service, hub *Hub, webhookSecret string) *Handler {
	return &Handler{
		service:       service,
		hub:           hub,
		webhookSecret: webhookSecret,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// Routes returns the access router. The webhook authenticates with the
// controller's shared secret, not staff JWT.
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/checkins", h.CheckIn)

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/entries", h.ListEntries)
		r.Get("/feed", h.Feed)
	})

	return r
}

func (h *Handler) CheckIn(w http.ResponseWriter, r *http.Request) {
	secret := r.Header.Get("X-Device-Secret")
	if subtle.ConstantTimeCompare([]byte(secret), []byte(h.webhookSecret)) != 1 {
		response.Unauthorized(w, "Invalid device secret")
		return
	}

	var req CheckInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	var occurredAt time.Time
	if req.OccurredAt != "" {
		t, err := time.Parse(time.RFC3339, req.OccurredAt)
		if err != nil {
			response.BadRequest(w, "occurred_at must be RFC 3339")
			return
		}
		occurredAt = t
	}

	entry, err := h.service.RecordCheckIn(r.Context(), req.BadgeID, occurredAt)
	if err != nil {
		log.Error().Err(err).Str("badge_id", req.BadgeID).Msg("Failed to record check-in")
		response.InternalError(w)
		return
	}
	response.Created(w, entry)
}

func (h *Handler) ListEntries(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	if offset < 0 {
		offset = 0
	}

	entries, err := h.service.ListEntries(r.Context(), limit, offset)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list entry logs")
		response.InternalError(w)
		return
	}
	response.OK(w, entries)
}

// Feed upgrades to a WebSocket streaming live check-ins.
func (h *Handler) Feed(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}

	c := &Connection{Conn: conn, Send: make(chan []byte, 64)}
	h.hub.Register(c)
	go c.WritePump()

	// Drain reads to observe close frames.
	go func() {
		defer h.hub.Unregister(c)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
