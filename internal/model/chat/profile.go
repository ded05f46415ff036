package chat

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Profile captures the human user's setup choices. Both fields are decided
// once during setup and stay fixed for the lifetime of a conversation;
// changing the role invalidates the stored log.
type Profile struct {
	Role     Role   `json:"role"`
	Language string `json:"language"`
}

// Validate checks the persona and that a language was chosen.
func (p Profile) Validate() error {
	if !p.Role.Valid() {
		return fmt.Errorf("invalid role %q", p.Role)
	}
	if strings.TrimSpace(p.Language) == "" {
		return fmt.Errorf("language is required")
	}
	return nil
}

// BotLanguage returns the counterpart's scripted language: the bot doctor
// speaks English, the bot patient speaks Spanish.
func (p Profile) BotLanguage() string {
	if p.Role == RolePatient {
		return "English"
	}
	return "Spanish"
}

// TargetLanguage returns the human's preferred language capitalized the
// way the translation prompts expect it.
func (p Profile) TargetLanguage() string {
	lang := strings.TrimSpace(p.Language)
	if lang == "" {
		return ""
	}
	first, size := utf8.DecodeRuneInString(lang)
	return string(unicode.ToUpper(first)) + lang[size:]
}
