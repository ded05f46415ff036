package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"

	"github.com/keanlouis30/NaoMedicalChatbot/internal/config"
	"github.com/keanlouis30/NaoMedicalChatbot/internal/model/chat"
)

// ErrTranscriptionFailed reports that the audio could not be transcribed.
var ErrTranscriptionFailed = errors.New("transcription failed")

// Service wraps the Gemini client behind the four capabilities the
// conversation needs: translation, counterpart replies, summaries and
// audio transcription. All calls are stateless request/response; no
// retries are performed.
type Service struct {
	client *genai.Client
	cfg    config.AIConfig
}

// NewService creates the Gemini-backed service.
func NewService(ctx context.Context, cfg config.AIConfig) (*Service, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Service{client: client, cfg: cfg}, nil
}

// Close releases the underlying client.
func (s *Service) Close() error {
	return s.client.Close()
}

// Translate renders text into the target language, returning only the
// translation.
func (s *Service) Translate(ctx context.Context, text, targetLanguage string) (string, error) {
	out, err := s.generate(ctx, s.cfg.TextModel, genai.Text(translatePrompt(text, targetLanguage)))
	if err != nil {
		return "", fmt.Errorf("translate to %s: %w", targetLanguage, err)
	}
	return out, nil
}

// GenerateReply produces the scripted counterpart's next utterance in
// replyLanguage. The prompt is conditioned on which persona the human
// plays: a patient talks to a bot doctor and vice versa.
func (s *Service) GenerateReply(ctx context.Context, translatedText string, humanRole chat.Role, replyLanguage string) (string, error) {
	out, err := s.generate(ctx, s.cfg.TextModel, genai.Text(replyPrompt(translatedText, humanRole, replyLanguage)))
	if err != nil {
		return "", fmt.Errorf("generate %s reply: %w", humanRole.Opposite(), err)
	}
	return out, nil
}

// Summarize turns a formatted transcript into a structured medical summary.
func (s *Service) Summarize(ctx context.Context, transcript string) (string, error) {
	out, err := s.generate(ctx, s.cfg.TextModel, genai.Text(summaryPrompt(transcript)))
	if err != nil {
		return "", fmt.Errorf("summarize conversation: %w", err)
	}
	return out, nil
}

// Transcribe sends raw audio inline and parses the labeled two-field
// response. A response missing its labels is degraded, not fatal.
func (s *Service) Transcribe(ctx context.Context, audio []byte, mimeType, targetLanguage string) (Transcription, error) {
	out, err := s.generate(ctx, s.cfg.MediaModel,
		genai.Text(transcribePrompt(targetLanguage)),
		genai.Blob{MIMEType: mimeType, Data: audio},
	)
	if err != nil {
		return Transcription{}, fmt.Errorf("%w: %v", ErrTranscriptionFailed, err)
	}

	result := parseTranscription(out)
	if result.Degraded {
		logrus.Warn("transcription response missing Original/Translation labels")
	}
	return result, nil
}

// generate runs one model call under the configured timeout and collapses
// the candidate parts into a trimmed string.
func (s *Service) generate(ctx context.Context, modelName string, parts ...genai.Part) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	model := s.client.GenerativeModel(modelName)
	resp, err := model.GenerateContent(ctx, parts...)
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}

	text := responseText(resp)
	if text == "" {
		return "", fmt.Errorf("gemini returned an empty response")
	}
	return text, nil
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return strings.TrimSpace(sb.String())
}
