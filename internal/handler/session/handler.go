package session

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/keanlouis30/NaoMedicalChatbot/internal/model/chat"
	"github.com/keanlouis30/NaoMedicalChatbot/internal/store"
	"github.com/keanlouis30/NaoMedicalChatbot/pkg/utils"
)

// Handler exposes the setup profile over HTTP.
type Handler struct {
	sessions *store.SessionStore
}

// New creates the session handler.
func New(sessions *store.SessionStore) *Handler {
	return &Handler{sessions: sessions}
}

// RegisterRoutes mounts the session endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Put("/session", h.handleSet)
	r.Get("/session", h.handleGet)
}

func (h *Handler) handleSet(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Role     chat.Role `json:"role"`
		Language string    `json:"language"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	profile := chat.Profile{Role: payload.Role, Language: payload.Language}
	if err := h.sessions.Set(profile); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusOK, profile)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	profile, ok := h.sessions.Get()
	if !ok {
		utils.RespondError(w, http.StatusNotFound, "session not configured")
		return
	}
	utils.RespondJSON(w, http.StatusOK, profile)
}
