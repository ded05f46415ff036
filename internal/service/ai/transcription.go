package ai

import "strings"

// Transcription is the parsed result of a transcribe call. Degraded marks
// responses where the expected labels were absent and the raw text was
// used for both fields.
type Transcription struct {
	Original    string `json:"original"`
	Translation string `json:"translation"`
	Degraded    bool   `json:"degraded,omitempty"`
}

// parseTranscription extracts the "Original:" and "Translation:" fields
// from a labeled model response. Either label may be missing; the parser
// then falls back to the whole text and flags the result as degraded.
func parseTranscription(text string) Transcription {
	text = strings.TrimSpace(text)

	origIdx := strings.Index(text, "Original:")
	transIdx := strings.Index(text, "Translation:")

	if origIdx < 0 || transIdx < 0 || transIdx < origIdx {
		return Transcription{Original: text, Translation: text, Degraded: true}
	}

	original := strings.TrimSpace(text[origIdx+len("Original:") : transIdx])
	translation := strings.TrimSpace(text[transIdx+len("Translation:"):])

	if original == "" || translation == "" {
		return Transcription{Original: text, Translation: text, Degraded: true}
	}

	return Transcription{Original: original, Translation: translation}
}
