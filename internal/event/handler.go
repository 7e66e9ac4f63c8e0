package event

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/workforce-management/internal/auth"
	"github.com/frahmantamala/workforce-management/internal/transport"
	"github.com/frahmantamala/workforce-management/pkg/logger"
)

type ServiceAPI interface {
	CreateEvent(dto CreateEventDTO, requester *auth.User) (*Event, error)
	Validate(id string, requester *auth.User) (*Event, error)
	Decline(id string, requester *auth.User) (*Event, error)
	List(requester *auth.User) ([]*Event, error)
	Get(id string, requester *auth.User) (*Event, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.UserFromContext(r.Context())
	if !ok || caller == nil {
		h.Logger.Error("CreateEvent: user not found in context")
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateEventDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateEvent: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ev, err := h.Service.CreateEvent(dto, caller)
	if err != nil {
		h.Logger.Error("CreateEvent: service error", "error", err, "user_id", caller.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, ev)
}

func (h *Handler) ValidateEvent(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.Service.Validate)
}

func (h *Handler) DeclineEvent(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.Service.Decline)
}

func (h *Handler) transition(w http.ResponseWriter, r *http.Request, apply func(string, *auth.User) (*Event, error)) {
	caller, ok := auth.UserFromContext(r.Context())
	if !ok || caller == nil {
		h.Logger.Error("transition: user not found in context")
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id := chi.URLParam(r, "id")

	ev, err := apply(id, caller)
	if err != nil {
		h.Logger.Error("transition: service error", "error", err, "event_id", id, "user_id", caller.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, ev)
}

func (h *Handler) GetEvents(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.UserFromContext(r.Context())
	if !ok || caller == nil {
		h.Logger.Error("GetEvents: user not found in context")
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	events, err := h.Service.List(caller)
	if err != nil {
		h.Logger.Error("GetEvents: service error", "error", err, "user_id", caller.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, events)
}

func (h *Handler) GetEvent(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.UserFromContext(r.Context())
	if !ok || caller == nil {
		h.Logger.Error("GetEvent: user not found in context")
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id := chi.URLParam(r, "id")

	ev, err := h.Service.Get(id, caller)
	if err != nil {
		h.Logger.Error("GetEvent: service error", "error", err, "event_id", id, "user_id", caller.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, ev)
}
