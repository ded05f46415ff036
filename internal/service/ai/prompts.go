package ai

import (
	"fmt"

	"github.com/keanlouis30/NaoMedicalChatbot/internal/model/chat"
)

func translatePrompt(text, targetLanguage string) string {
	return fmt.Sprintf("Translate the following text to %s. Provide ONLY the translation, nothing else:\n\n%s", targetLanguage, text)
}

func replyPrompt(translatedText string, humanRole chat.Role, replyLanguage string) string {
	if humanRole == chat.RolePatient {
		// The counterpart is a doctor.
		return fmt.Sprintf(`You are a professional, empathetic doctor. The patient just said: %q.
Reply in %s with a medical follow-up question or advice. Be concise (2-3 sentences max).
Provide ONLY your response, nothing else.`, translatedText, replyLanguage)
	}

	// The counterpart is a patient with scripted symptoms.
	return fmt.Sprintf(`You are a patient feeling unwell with symptoms like headache, fever, and fatigue. The doctor said: %q.
Reply in %s as the patient would, describing symptoms or asking questions. Be concise (2-3 sentences max).
Provide ONLY your response, nothing else.`, translatedText, replyLanguage)
}

func summaryPrompt(transcript string) string {
	return fmt.Sprintf(`You are a medical professional. Analyze this doctor-patient conversation and provide a concise medical summary.

Conversation:
%s

Provide a structured summary with these sections:
1. **Chief Complaint**: Main reason for consultation
2. **Symptoms**: Key symptoms mentioned
3. **Diagnosis/Assessment**: Medical insights or provisional diagnosis
4. **Medications**: Any medications discussed
5. **Follow-up Actions**: Recommended next steps

Keep it concise and medically accurate.`, transcript)
}

func transcribePrompt(targetLanguage string) string {
	return fmt.Sprintf(`Transcribe this audio and then translate it to %s.
Provide the response in this exact format:
Original: [transcribed text]
Translation: [translated text]`, targetLanguage)
}
