package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	conversationHandler "github.com/keanlouis30/NaoMedicalChatbot/internal/handler/conversation"
	sessionHandler "github.com/keanlouis30/NaoMedicalChatbot/internal/handler/session"
	transcribeHandler "github.com/keanlouis30/NaoMedicalChatbot/internal/handler/transcribe"
	middlewarePkg "github.com/keanlouis30/NaoMedicalChatbot/internal/middleware"
	conversationService "github.com/keanlouis30/NaoMedicalChatbot/internal/service/conversation"
	"github.com/keanlouis30/NaoMedicalChatbot/internal/store"
)

// NewRouter wires HTTP routes to core services. The transcriber may be nil
// when the Gemini key is absent; its endpoint then answers 503 while the
// local log endpoints keep working.
func NewRouter(sessions *store.SessionStore, conversations *store.ConversationStore, convSvc *conversationService.Service, transcriber transcribeHandler.Transcriber) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	r.Route("/api", func(api chi.Router) {
		sessionHandler.New(sessions).RegisterRoutes(api)
		conversationHandler.New(convSvc, conversations).RegisterRoutes(api)
		transcribeHandler.New(transcriber).RegisterRoutes(api)
	})

	return r
}
