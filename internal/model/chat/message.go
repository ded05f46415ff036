package chat

import (
	"fmt"
	"time"
)

// Role identifies which persona an utterance belongs to, regardless of
// whether a human or the scripted counterpart produced it.
type Role string

const (
	RoleDoctor  Role = "doctor"
	RolePatient Role = "patient"
)

// Valid reports whether the role is one of the two known personas.
func (r Role) Valid() bool {
	return r == RoleDoctor || r == RolePatient
}

// Opposite returns the counterpart persona. The bot always plays the
// logical complement of the human's selected role.
func (r Role) Opposite() Role {
	if r == RoleDoctor {
		return RolePatient
	}
	return RoleDoctor
}

// Sender distinguishes human-authored messages from bot replies.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Valid reports whether the sender is a known origin.
func (s Sender) Valid() bool {
	return s == SenderUser || s == SenderBot
}

// MediaType classifies an attached media payload.
type MediaType string

const (
	MediaAudio MediaType = "audio"
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
)

// Valid reports whether the media type is a known kind.
func (m MediaType) Valid() bool {
	return m == MediaAudio || m == MediaImage || m == MediaVideo
}

// Message is a single utterance in the conversation log. Fields persist in
// snake_case to stay compatible with logs written by earlier versions of
// the client.
type Message struct {
	ID             string     `json:"id"`
	CreatedAt      time.Time  `json:"created_at"`
	Role           Role       `json:"role"`
	Sender         Sender     `json:"sender"`
	OriginalText   string     `json:"original_text"`
	TranslatedText *string    `json:"translated_text"`
	MediaURL       *string    `json:"media_url"`
	MediaType      *MediaType `json:"media_type"`
}

// Validate checks the role/sender domains and the media invariant:
// media_type must be set exactly when media_url is.
func (m Message) Validate() error {
	if !m.Role.Valid() {
		return fmt.Errorf("invalid role %q", m.Role)
	}
	if !m.Sender.Valid() {
		return fmt.Errorf("invalid sender %q", m.Sender)
	}
	if (m.MediaURL == nil) != (m.MediaType == nil) {
		return fmt.Errorf("media_url and media_type must be set together")
	}
	if m.MediaType != nil && !m.MediaType.Valid() {
		return fmt.Errorf("invalid media type %q", *m.MediaType)
	}
	return nil
}

// HasMedia reports whether the message carries an attachment.
func (m Message) HasMedia() bool {
	return m.MediaURL != nil
}
