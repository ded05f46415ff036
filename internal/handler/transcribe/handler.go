package transcribe

import (
	"context"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/keanlouis30/NaoMedicalChatbot/internal/service/ai"
	"github.com/keanlouis30/NaoMedicalChatbot/pkg/utils"
)

// Transcriber converts raw audio into a transcript plus translation.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, mimeType, targetLanguage string) (ai.Transcription, error)
}

// Handler exposes one-shot audio transcription.
type Handler struct {
	transcriber Transcriber
}

// New creates the transcribe handler. A nil transcriber serves 503s.
func New(transcriber Transcriber) *Handler {
	return &Handler{transcriber: transcriber}
}

// RegisterRoutes mounts the transcription endpoint.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/transcribe", h.handleTranscribe)
}

func (h *Handler) handleTranscribe(w http.ResponseWriter, r *http.Request) {
	if h.transcriber == nil {
		utils.RespondError(w, http.StatusServiceUnavailable, "transcription unavailable")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, utils.MaxUploadBytes)
	if err := r.ParseMultipartForm(utils.MaxUploadBytes); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("audio")
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "missing required fields: audio, targetLanguage")
		return
	}
	defer file.Close()

	targetLanguage := r.FormValue("targetLanguage")
	if targetLanguage == "" {
		utils.RespondError(w, http.StatusBadRequest, "missing required fields: audio, targetLanguage")
		return
	}

	audio, err := io.ReadAll(file)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "failed to read audio")
		return
	}

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "audio/webm"
	}

	result, err := h.transcriber.Transcribe(r.Context(), audio, mimeType, targetLanguage)
	if err != nil {
		logrus.WithError(err).Warn("transcription request failed")
		utils.RespondError(w, http.StatusBadGateway, "failed to transcribe audio")
		return
	}

	utils.RespondJSON(w, http.StatusOK, result)
}
