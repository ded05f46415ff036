package chat

import "testing"

func TestRoleOpposite(t *testing.T) {
	if RoleDoctor.Opposite() != RolePatient {
		t.Fatal("doctor's counterpart must be the patient")
	}
	if RolePatient.Opposite() != RoleDoctor {
		t.Fatal("patient's counterpart must be the doctor")
	}
}

func TestMessageValidateMediaInvariant(t *testing.T) {
	url := "data:image/png;base64,abc"
	kind := MediaImage

	base := Message{Role: RolePatient, Sender: SenderUser, OriginalText: "hi"}
	if err := base.Validate(); err != nil {
		t.Fatalf("text-only message must validate: %v", err)
	}

	withMedia := base
	withMedia.MediaURL = &url
	withMedia.MediaType = &kind
	if err := withMedia.Validate(); err != nil {
		t.Fatalf("complete media message must validate: %v", err)
	}

	urlOnly := base
	urlOnly.MediaURL = &url
	if err := urlOnly.Validate(); err == nil {
		t.Fatal("media_url without media_type must be rejected")
	}

	typeOnly := base
	typeOnly.MediaType = &kind
	if err := typeOnly.Validate(); err == nil {
		t.Fatal("media_type without media_url must be rejected")
	}

	badKind := withMedia
	unknown := MediaType("document")
	badKind.MediaType = &unknown
	if err := badKind.Validate(); err == nil {
		t.Fatal("unknown media type must be rejected")
	}
}

func TestProfileLanguages(t *testing.T) {
	patient := Profile{Role: RolePatient, Language: "spanish"}
	if patient.BotLanguage() != "English" {
		t.Fatalf("bot doctor speaks English, got %s", patient.BotLanguage())
	}
	if patient.TargetLanguage() != "Spanish" {
		t.Fatalf("unexpected target language: %s", patient.TargetLanguage())
	}

	doctor := Profile{Role: RoleDoctor, Language: "english"}
	if doctor.BotLanguage() != "Spanish" {
		t.Fatalf("bot patient speaks Spanish, got %s", doctor.BotLanguage())
	}
	if doctor.TargetLanguage() != "English" {
		t.Fatalf("unexpected target language: %s", doctor.TargetLanguage())
	}
}

func TestTargetLanguageMultiByte(t *testing.T) {
	chinese := Profile{Role: RolePatient, Language: "中文"}
	if got := chinese.TargetLanguage(); got != "中文" {
		t.Fatalf("multi-byte language corrupted: %q", got)
	}

	accented := Profile{Role: RolePatient, Language: "español"}
	if got := accented.TargetLanguage(); got != "Español" {
		t.Fatalf("unexpected target language: %q", got)
	}
}
