package conversation

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/keanlouis30/NaoMedicalChatbot/internal/model/chat"
	conversationService "github.com/keanlouis30/NaoMedicalChatbot/internal/service/conversation"
	"github.com/keanlouis30/NaoMedicalChatbot/internal/store"
	"github.com/keanlouis30/NaoMedicalChatbot/pkg/utils"
)

// Handler exposes the conversation log and the turn workflow over HTTP.
type Handler struct {
	svc           *conversationService.Service
	conversations *store.ConversationStore
}

// New creates the conversation handler.
func New(svc *conversationService.Service, conversations *store.ConversationStore) *Handler {
	return &Handler{svc: svc, conversations: conversations}
}

// RegisterRoutes mounts the conversation endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/messages", h.handleLoad)
	r.Post("/messages", h.handleSend)
	r.Delete("/messages", h.handleClear)
	r.Get("/messages/search", h.handleSearch)
	r.Get("/media", h.handleMedia)
	r.Post("/summary", h.handleSummary)
}

// handleLoad returns the full log, bootstrapping the bot's opener for an
// empty doctor-side conversation first.
func (h *Handler) handleLoad(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.EnsureOpening(r.Context()); err != nil && !errors.Is(err, conversationService.ErrProfileNotSet) {
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.RespondJSON(w, http.StatusOK, nonNil(h.conversations.Load()))
}

func (h *Handler) handleSend(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Text      string         `json:"text"`
		MediaURL  string         `json:"media_url"`
		MediaType chat.MediaType `json:"media_type"`
	}

	r.Body = http.MaxBytesReader(w, r.Body, utils.MaxUploadBytes)
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			utils.RespondError(w, http.StatusRequestEntityTooLarge, "message too large")
			return
		}
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	messages, err := h.svc.SendMessage(r.Context(), conversationService.TurnInput{
		Text:      payload.Text,
		MediaURL:  payload.MediaURL,
		MediaType: payload.MediaType,
	})
	if err != nil {
		respondTurnError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusCreated, messages)
}

func (h *Handler) handleClear(w http.ResponseWriter, r *http.Request) {
	h.conversations.Clear()
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	utils.RespondJSON(w, http.StatusOK, nonNil(h.conversations.Search(query)))
}

func (h *Handler) handleMedia(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, nonNil(h.conversations.MediaOnly()))
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.svc.Summary(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, conversationService.ErrEmptyConversation):
			utils.RespondError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, conversationService.ErrUnavailable):
			utils.RespondError(w, http.StatusServiceUnavailable, err.Error())
		default:
			utils.RespondError(w, http.StatusBadGateway, err.Error())
		}
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]string{"summary": summary})
}

func respondTurnError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, conversationService.ErrNothingToSend),
		errors.Is(err, conversationService.ErrInvalidInput),
		errors.Is(err, conversationService.ErrProfileNotSet):
		utils.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, conversationService.ErrTurnInProgress):
		utils.RespondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, conversationService.ErrUnavailable):
		utils.RespondError(w, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, conversationService.ErrTranslationFailed),
		errors.Is(err, conversationService.ErrReplyGenerationFailed):
		utils.RespondError(w, http.StatusBadGateway, err.Error())
	default:
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
	}
}

// nonNil keeps empty results encoding as [] instead of null.
func nonNil(messages []chat.Message) []chat.Message {
	if messages == nil {
		return []chat.Message{}
	}
	return messages
}
