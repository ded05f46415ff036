package store

import (
	"encoding/json"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/keanlouis30/NaoMedicalChatbot/internal/model/chat"
)

const messagesKey = "chat_messages"

// ConversationStore owns the ordered log of messages for one session. It
// keeps an in-memory cache over the backend; every mutation rewrites the
// persisted log wholesale. Persistence failures degrade rather than fail:
// unreadable data loads as an empty log and write errors keep the
// in-memory view so the session can continue best-effort.
type ConversationStore struct {
	mu       sync.RWMutex
	backend  Backend
	messages []chat.Message
	loaded   bool
}

// NewConversationStore wraps the backend. The log is read lazily on first use.
func NewConversationStore(backend Backend) *ConversationStore {
	return &ConversationStore{backend: backend}
}

// Load returns the full log in insertion order.
func (s *ConversationStore) Load() []chat.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded()
	return copyMessages(s.messages)
}

// Append adds one or more messages preserving argument order and persists
// the resulting log in a single write. The batch is all-or-nothing: if any
// message fails validation, none are appended.
func (s *ConversationStore) Append(messages ...chat.Message) error {
	if len(messages) == 0 {
		return nil
	}
	for _, m := range messages {
		if err := m.Validate(); err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded()
	s.messages = append(s.messages, messages...)
	s.persist()
	return nil
}

// Clear empties the log and persists the empty state. Irreversible.
func (s *ConversationStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = nil
	s.loaded = true
	s.persist()
}

// Len reports the current number of stored messages.
func (s *ConversationStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded()
	return len(s.messages)
}

// MediaOnly returns messages carrying an attachment, most recent first.
func (s *ConversationStore) MediaOnly() []chat.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded()

	var media []chat.Message
	for i := len(s.messages) - 1; i >= 0; i-- {
		if s.messages[i].HasMedia() {
			media = append(media, s.messages[i])
		}
	}
	return media
}

// Search returns messages whose original or translated text contains the
// query, case-insensitively, in store order. A blank query matches nothing.
func (s *ConversationStore) Search(query string) []chat.Message {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded()

	var matches []chat.Message
	for _, m := range s.messages {
		if m.OriginalText == "" {
			continue
		}
		if strings.Contains(strings.ToLower(m.OriginalText), query) {
			matches = append(matches, m)
			continue
		}
		if m.TranslatedText != nil && strings.Contains(strings.ToLower(*m.TranslatedText), query) {
			matches = append(matches, m)
		}
	}
	return matches
}

// ensureLoaded reads the persisted log once. Missing or malformed data is
// treated as an empty log, never as a fatal error. Callers hold s.mu.
func (s *ConversationStore) ensureLoaded() {
	if s.loaded {
		return
	}
	s.loaded = true

	data, err := s.backend.Read(messagesKey)
	if err != nil {
		if err != ErrNotFound {
			logrus.WithError(err).Warn("conversation log unreadable, starting empty")
		}
		return
	}

	var messages []chat.Message
	if err := json.Unmarshal(data, &messages); err != nil {
		logrus.WithError(err).Warn("conversation log malformed, starting empty")
		return
	}
	s.messages = messages
}

// persist rewrites the whole log. Callers hold s.mu.
func (s *ConversationStore) persist() {
	data, err := json.Marshal(ensureSlice(s.messages))
	if err != nil {
		logrus.WithError(err).Warn("failed to encode conversation log")
		return
	}
	if err := s.backend.Write(messagesKey, data); err != nil {
		logrus.WithError(err).Warn("failed to persist conversation log")
	}
}

func copyMessages(messages []chat.Message) []chat.Message {
	copied := make([]chat.Message, len(messages))
	copy(copied, messages)
	return copied
}

func ensureSlice(messages []chat.Message) []chat.Message {
	if messages == nil {
		return []chat.Message{}
	}
	return messages
}
