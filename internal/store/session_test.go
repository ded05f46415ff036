package store_test

import (
	"testing"

	"github.com/keanlouis30/NaoMedicalChatbot/internal/model/chat"
	"github.com/keanlouis30/NaoMedicalChatbot/internal/store"
)

func TestSessionSetAndGet(t *testing.T) {
	backend := store.NewMemoryBackend()
	conversations := store.NewConversationStore(backend)
	sessions := store.NewSessionStore(backend, conversations)

	if _, ok := sessions.Get(); ok {
		t.Fatal("expected no profile before setup")
	}

	profile := chat.Profile{Role: chat.RoleDoctor, Language: "english"}
	if err := sessions.Set(profile); err != nil {
		t.Fatalf("Set err: %v", err)
	}

	got, ok := sessions.Get()
	if !ok || got != profile {
		t.Fatalf("unexpected profile: %+v ok=%v", got, ok)
	}

	// Profile survives a restart.
	reopened := store.NewSessionStore(backend, store.NewConversationStore(backend))
	if got, ok := reopened.Get(); !ok || got != profile {
		t.Fatalf("unexpected reloaded profile: %+v ok=%v", got, ok)
	}
}

func TestSessionSetInvalidProfile(t *testing.T) {
	backend := store.NewMemoryBackend()
	sessions := store.NewSessionStore(backend, store.NewConversationStore(backend))

	if err := sessions.Set(chat.Profile{Role: "nurse", Language: "english"}); err == nil {
		t.Fatal("expected error for invalid role")
	}
	if err := sessions.Set(chat.Profile{Role: chat.RoleDoctor}); err == nil {
		t.Fatal("expected error for missing language")
	}
}

func TestRoleChangeClearsConversation(t *testing.T) {
	backend := store.NewMemoryBackend()
	conversations := store.NewConversationStore(backend)
	sessions := store.NewSessionStore(backend, conversations)

	if err := sessions.Set(chat.Profile{Role: chat.RolePatient, Language: "spanish"}); err != nil {
		t.Fatalf("Set err: %v", err)
	}
	if err := conversations.Append(textMessage("1", "hola", chat.RolePatient, chat.SenderUser)); err != nil {
		t.Fatalf("Append err: %v", err)
	}

	// Language-only change keeps the log.
	if err := sessions.Set(chat.Profile{Role: chat.RolePatient, Language: "english"}); err != nil {
		t.Fatalf("Set err: %v", err)
	}
	if got := conversations.Load(); len(got) != 1 {
		t.Fatalf("language change should keep the log, got %d messages", len(got))
	}

	// Role change clears it.
	if err := sessions.Set(chat.Profile{Role: chat.RoleDoctor, Language: "english"}); err != nil {
		t.Fatalf("Set err: %v", err)
	}
	if got := conversations.Load(); len(got) != 0 {
		t.Fatalf("role change should clear the log, got %d messages", len(got))
	}
}

func TestMalformedProfileTreatedAsUnset(t *testing.T) {
	backend := store.NewMemoryBackend()
	if err := backend.Write("chat_profile", []byte(`{"role":"nurse"}`)); err != nil {
		t.Fatalf("Write err: %v", err)
	}

	sessions := store.NewSessionStore(backend, store.NewConversationStore(backend))
	if _, ok := sessions.Get(); ok {
		t.Fatal("expected malformed profile to read as unset")
	}
}
