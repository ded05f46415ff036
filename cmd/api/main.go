package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/keanlouis30/NaoMedicalChatbot/internal/config"
	"github.com/keanlouis30/NaoMedicalChatbot/internal/handler"
	transcribeHandler "github.com/keanlouis30/NaoMedicalChatbot/internal/handler/transcribe"
	"github.com/keanlouis30/NaoMedicalChatbot/internal/service/ai"
	"github.com/keanlouis30/NaoMedicalChatbot/internal/service/conversation"
	"github.com/keanlouis30/NaoMedicalChatbot/internal/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		logrus.WithError(err).Warn("no .env file loaded, continuing with system environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load configuration")
	}

	if level, err := logrus.ParseLevel(cfg.Log.Level); err != nil {
		logrus.WithField("level", cfg.Log.Level).Warn("unknown log level, using info")
	} else {
		logrus.SetLevel(level)
	}

	backend, err := store.NewFileBackend(cfg.Storage.Dir)
	if err != nil {
		logrus.WithError(err).Fatal("failed to open storage directory")
	}

	conversations := store.NewConversationStore(backend)
	sessions := store.NewSessionStore(backend, conversations)

	var (
		translator  conversation.Translator
		replies     conversation.ReplyGenerator
		summarizer  conversation.Summarizer
		transcriber transcribeHandler.Transcriber
	)
	if cfg.AI.Enabled() {
		aiSvc, err := ai.NewService(ctx, cfg.AI)
		if err != nil {
			logrus.WithError(err).Warn("failed to initialize Gemini client, continuing without AI")
		} else {
			defer aiSvc.Close()
			translator, replies, summarizer, transcriber = aiSvc, aiSvc, aiSvc, aiSvc
			logrus.Info("Gemini client initialized")
		}
	} else {
		logrus.Warn("GEMINI_API_KEY not set, turn and summary endpoints will be unavailable")
	}

	convSvc := conversation.NewService(conversations, sessions, translator, replies, summarizer)
	router := handler.NewRouter(sessions, conversations, convSvc, transcriber)

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	logrus.WithField("addr", serverCfg.Addr).Info("chat backend listening")
	if err := runServer(ctx, srv); err != nil {
		logrus.WithError(err).Fatal("server error")
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
