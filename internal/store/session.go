package store

import (
	"encoding/json"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/keanlouis30/NaoMedicalChatbot/internal/model/chat"
)

const profileKey = "chat_profile"

// SessionStore persists the user's setup profile alongside the conversation
// log. Switching personas invalidates the prior log rather than mixing two
// conversations, so Set clears the conversation when the role changes.
type SessionStore struct {
	mu           sync.Mutex
	backend      Backend
	conversation *ConversationStore
	profile      *chat.Profile
	loaded       bool
}

// NewSessionStore wires the profile store to the conversation it guards.
func NewSessionStore(backend Backend, conversation *ConversationStore) *SessionStore {
	return &SessionStore{backend: backend, conversation: conversation}
}

// Get returns the stored profile, or false when setup has not run yet.
func (s *SessionStore) Get() (chat.Profile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded()
	if s.profile == nil {
		return chat.Profile{}, false
	}
	return *s.profile, true
}

// Set validates and persists the profile. A role change clears the
// conversation log; changing only the language keeps it.
func (s *SessionStore) Set(profile chat.Profile) error {
	if err := profile.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded()

	if s.profile != nil && s.profile.Role != profile.Role {
		logrus.WithFields(logrus.Fields{
			"from": s.profile.Role,
			"to":   profile.Role,
		}).Info("role changed, clearing conversation")
		s.conversation.Clear()
	}

	s.profile = &profile
	data, err := json.Marshal(profile)
	if err != nil {
		logrus.WithError(err).Warn("failed to encode profile")
		return nil
	}
	if err := s.backend.Write(profileKey, data); err != nil {
		logrus.WithError(err).Warn("failed to persist profile")
	}
	return nil
}

// ensureLoaded reads the persisted profile once; malformed data is treated
// as absent. Callers hold s.mu.
func (s *SessionStore) ensureLoaded() {
	if s.loaded {
		return
	}
	s.loaded = true

	data, err := s.backend.Read(profileKey)
	if err != nil {
		if err != ErrNotFound {
			logrus.WithError(err).Warn("profile unreadable, treating as unset")
		}
		return
	}

	var profile chat.Profile
	if err := json.Unmarshal(data, &profile); err != nil || profile.Validate() != nil {
		logrus.Warn("stored profile malformed, treating as unset")
		return
	}
	s.profile = &profile
}
