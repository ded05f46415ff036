package conversation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/keanlouis30/NaoMedicalChatbot/internal/model/chat"
	"github.com/keanlouis30/NaoMedicalChatbot/internal/store"
)

var (
	ErrTranslationFailed     = errors.New("translation failed")
	ErrReplyGenerationFailed = errors.New("reply generation failed")
	ErrSummaryFailed         = errors.New("summary generation failed")
	ErrTurnInProgress        = errors.New("a turn is already in progress")
	ErrNothingToSend         = errors.New("message has neither text nor media")
	ErrInvalidInput          = errors.New("invalid message input")
	ErrProfileNotSet         = errors.New("session profile not set")
	ErrUnavailable           = errors.New("ai collaborators unavailable")
	ErrEmptyConversation     = errors.New("conversation is empty")
)

// The bot patient's scripted opener, with the translation used when the
// Translator is unavailable during bootstrap.
const (
	openingText     = "Hola doctor, no me siento bien. Tengo dolor de cabeza, fiebre y me siento muy cansado desde hace dos días."
	openingFallback = "Hello doctor, I don't feel well. I have a headache, fever, and have been feeling very tired for two days."
)

// Translator converts text into a target language.
type Translator interface {
	Translate(ctx context.Context, text, targetLanguage string) (string, error)
}

// ReplyGenerator produces the counterpart's next utterance.
type ReplyGenerator interface {
	GenerateReply(ctx context.Context, translatedText string, humanRole chat.Role, replyLanguage string) (string, error)
}

// Summarizer digests a formatted transcript.
type Summarizer interface {
	Summarize(ctx context.Context, transcript string) (string, error)
}

// TurnInput is one human action: text plus an optional attachment.
type TurnInput struct {
	Text      string
	MediaURL  string
	MediaType chat.MediaType
}

// Service drives one full conversational exchange at a time: translate the
// human's message, synthesize the counterpart's reply, translate it back,
// then append both messages in a single store call. A single-slot guard
// rejects overlapping turns so appends never interleave.
type Service struct {
	store      *store.ConversationStore
	session    *store.SessionStore
	translator Translator
	replies    ReplyGenerator
	summarizer Summarizer
	inFlight   atomic.Bool
}

// NewService wires the coordinator to its store and collaborators.
func NewService(conversations *store.ConversationStore, sessions *store.SessionStore, translator Translator, replies ReplyGenerator, summarizer Summarizer) *Service {
	return &Service{
		store:      conversations,
		session:    sessions,
		translator: translator,
		replies:    replies,
		summarizer: summarizer,
	}
}

// SendMessage runs one exchange and returns the two appended messages,
// human's first. Any collaborator failure aborts the whole turn with the
// store untouched; an input with neither text nor media is a no-op error.
func (s *Service) SendMessage(ctx context.Context, input TurnInput) ([]chat.Message, error) {
	profile, ok := s.session.Get()
	if !ok {
		return nil, ErrProfileNotSet
	}

	text := strings.TrimSpace(input.Text)
	if text == "" && input.MediaURL == "" {
		return nil, ErrNothingToSend
	}
	if s.translator == nil || s.replies == nil {
		return nil, ErrUnavailable
	}

	if !s.inFlight.CompareAndSwap(false, true) {
		return nil, ErrTurnInProgress
	}
	defer s.inFlight.Store(false)

	translation, err := s.translator.Translate(ctx, text, profile.BotLanguage())
	if err != nil {
		logrus.WithError(err).Warn("outgoing translation failed, aborting turn")
		return nil, fmt.Errorf("%w: %v", ErrTranslationFailed, err)
	}

	userMessage := chat.Message{
		ID:             uuid.NewString(),
		CreatedAt:      time.Now().UTC(),
		Role:           profile.Role,
		Sender:         chat.SenderUser,
		OriginalText:   text,
		TranslatedText: &translation,
	}
	if input.MediaURL != "" {
		mediaType := input.MediaType
		userMessage.MediaURL = &input.MediaURL
		userMessage.MediaType = &mediaType
	}
	if err := userMessage.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	reply, err := s.replies.GenerateReply(ctx, translation, profile.Role, profile.BotLanguage())
	if err != nil {
		logrus.WithError(err).Warn("counterpart reply failed, aborting turn")
		return nil, fmt.Errorf("%w: %v", ErrReplyGenerationFailed, err)
	}

	replyTranslation, err := s.translator.Translate(ctx, reply, profile.TargetLanguage())
	if err != nil {
		logrus.WithError(err).Warn("reply translation failed, aborting turn")
		return nil, fmt.Errorf("%w: %v", ErrTranslationFailed, err)
	}

	botMessage := chat.Message{
		ID:             uuid.NewString(),
		CreatedAt:      time.Now().UTC(),
		Role:           profile.Role.Opposite(),
		Sender:         chat.SenderBot,
		OriginalText:   reply,
		TranslatedText: &replyTranslation,
	}

	if err := s.store.Append(userMessage, botMessage); err != nil {
		return nil, err
	}
	return []chat.Message{userMessage, botMessage}, nil
}

// EnsureOpening bootstraps an empty conversation when the human plays the
// doctor: the bot patient speaks first. A failed bootstrap translation
// substitutes the known fallback instead of aborting; this is the only
// place a translation failure does not abort.
func (s *Service) EnsureOpening(ctx context.Context) error {
	profile, ok := s.session.Get()
	if !ok {
		return ErrProfileNotSet
	}
	if profile.Role != chat.RoleDoctor || s.store.Len() > 0 {
		return nil
	}

	// Skip rather than queue behind an in-flight turn: once that turn
	// lands the conversation is no longer empty.
	if !s.inFlight.CompareAndSwap(false, true) {
		return nil
	}
	defer s.inFlight.Store(false)

	if s.store.Len() > 0 {
		return nil
	}

	translation := openingFallback
	if s.translator != nil {
		translated, err := s.translator.Translate(ctx, openingText, profile.TargetLanguage())
		if err != nil {
			logrus.WithError(err).Warn("opening translation failed, using fallback text")
		} else {
			translation = translated
		}
	}

	opening := chat.Message{
		ID:             uuid.NewString(),
		CreatedAt:      time.Now().UTC(),
		Role:           chat.RolePatient,
		Sender:         chat.SenderBot,
		OriginalText:   openingText,
		TranslatedText: &translation,
	}
	return s.store.Append(opening)
}

// Summary formats the full log into a linear transcript and requests the
// structured digest.
func (s *Service) Summary(ctx context.Context) (string, error) {
	messages := s.store.Load()
	if len(messages) == 0 {
		return "", ErrEmptyConversation
	}
	if s.summarizer == nil {
		return "", ErrUnavailable
	}

	summary, err := s.summarizer.Summarize(ctx, Transcript(messages))
	if err != nil {
		logrus.WithError(err).Warn("summary generation failed")
		return "", fmt.Errorf("%w: %v", ErrSummaryFailed, err)
	}
	return summary, nil
}

// Transcript renders one line per message: speaker label, original text
// and translation. Bot lines are labeled with the persona the bot played.
func Transcript(messages []chat.Message) string {
	var sb strings.Builder
	for i, m := range messages {
		if i > 0 {
			sb.WriteByte('\n')
		}
		label := string(m.Role)
		if m.Sender == chat.SenderBot {
			label = fmt.Sprintf("bot (%s)", m.Role)
		}
		translated := ""
		if m.TranslatedText != nil {
			translated = *m.TranslatedText
		}
		fmt.Fprintf(&sb, "%s: %s (%s)", label, m.OriginalText, translated)
	}
	return sb.String()
}
