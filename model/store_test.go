package model

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"supportchat/platform"
)

func newTestStore(t *testing.T) (*Store, func(msg *Message)) {
	t.Helper()
	db, err := platform.OpenDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := InstallDB(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	seed := func(msg *Message) {
		if err := db.Create(msg).Error; err != nil {
			t.Fatalf("failed to seed message: %v", err)
		}
	}
	return NewStore(db), seed
}

func TestCreateConversation(t *testing.T) {
	store, _ := newTestStore(t)

	id := uuid.NewString()
	conv, err := store.CreateConversation(id)
	if err != nil {
		t.Fatalf("CreateConversation failed: %v", err)
	}
	if conv.ID != id {
		t.Errorf("conversation id = %q, want %q", conv.ID, id)
	}
	if conv.CreatedAt == 0 {
		t.Error("conversation CreatedAt not set")
	}
	if !store.ConversationExists(id) {
		t.Error("ConversationExists = false after create")
	}

	if _, err := store.CreateConversation(id); !errors.Is(err, ErrDuplicateKey) {
		t.Errorf("second create error = %v, want ErrDuplicateKey", err)
	}
}

func TestConversationExistsUnknown(t *testing.T) {
	store, _ := newTestStore(t)
	if store.ConversationExists(uuid.NewString()) {
		t.Error("ConversationExists = true for an id never created")
	}
}

func TestCreateMessage(t *testing.T) {
	store, _ := newTestStore(t)

	convID := uuid.NewString()
	if _, err := store.CreateConversation(convID); err != nil {
		t.Fatalf("CreateConversation failed: %v", err)
	}

	msg, err := store.CreateMessage(uuid.NewString(), convID, SenderUser, "hello")
	if err != nil {
		t.Fatalf("CreateMessage failed: %v", err)
	}
	if msg.Timestamp == 0 {
		t.Error("message Timestamp not set")
	}
	if msg.Sender != SenderUser {
		t.Errorf("message Sender = %q, want %q", msg.Sender, SenderUser)
	}
}

func TestCreateMessageUnknownConversation(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.CreateMessage(uuid.NewString(), uuid.NewString(), SenderUser, "orphan")
	if !errors.Is(err, ErrForeignKeyViolation) {
		t.Errorf("CreateMessage error = %v, want ErrForeignKeyViolation", err)
	}
}

func TestGetMessagesOrdering(t *testing.T) {
	store, seed := newTestStore(t)

	convID := uuid.NewString()
	if _, err := store.CreateConversation(convID); err != nil {
		t.Fatalf("CreateConversation failed: %v", err)
	}

	// Seed out of insertion order to prove the timestamp sort, plus two
	// rows sharing a timestamp to prove the insertion-order tiebreak.
	seed(&Message{ID: uuid.NewString(), ConversationID: convID, Sender: SenderUser, Text: "third", Timestamp: 300})
	seed(&Message{ID: uuid.NewString(), ConversationID: convID, Sender: SenderUser, Text: "first", Timestamp: 100})
	seed(&Message{ID: uuid.NewString(), ConversationID: convID, Sender: SenderAI, Text: "second", Timestamp: 200})
	seed(&Message{ID: uuid.NewString(), ConversationID: convID, Sender: SenderAI, Text: "fourth", Timestamp: 300})

	messages, err := store.GetMessages(convID)
	if err != nil {
		t.Fatalf("GetMessages failed: %v", err)
	}
	got := make([]string, 0, len(messages))
	for _, m := range messages {
		got = append(got, m.Text)
	}
	want := []string{"first", "second", "third", "fourth"}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("GetMessages order = %v, want %v", got, want)
	}
}

func TestGetMessagesUnknownConversation(t *testing.T) {
	store, _ := newTestStore(t)

	messages, err := store.GetMessages(uuid.NewString())
	if err != nil {
		t.Fatalf("GetMessages failed: %v", err)
	}
	if len(messages) != 0 {
		t.Errorf("GetMessages returned %d messages for unknown conversation, want 0", len(messages))
	}
	if messages == nil {
		t.Error("GetMessages returned nil, want empty slice")
	}
}

func TestGetConversationHistoryWindow(t *testing.T) {
	store, seed := newTestStore(t)

	convID := uuid.NewString()
	if _, err := store.CreateConversation(convID); err != nil {
		t.Fatalf("CreateConversation failed: %v", err)
	}

	for i := 1; i <= 15; i++ {
		seed(&Message{
			ID:             uuid.NewString(),
			ConversationID: convID,
			Sender:         SenderUser,
			Text:           fmt.Sprintf("message %d", i),
			Timestamp:      int64(i * 100),
		})
	}

	history, err := store.GetConversationHistory(convID, 10)
	if err != nil {
		t.Fatalf("GetConversationHistory failed: %v", err)
	}
	if len(history) != 10 {
		t.Fatalf("history length = %d, want 10", len(history))
	}
	// Must equal the chronological tail: messages 6..15 in ascending order.
	for i, msg := range history {
		want := fmt.Sprintf("message %d", i+6)
		if msg.Text != want {
			t.Errorf("history[%d] = %q, want %q", i, msg.Text, want)
		}
	}
}

func TestGetConversationHistoryFewerThanLimit(t *testing.T) {
	store, _ := newTestStore(t)

	convID := uuid.NewString()
	if _, err := store.CreateConversation(convID); err != nil {
		t.Fatalf("CreateConversation failed: %v", err)
	}
	if _, err := store.CreateMessage(uuid.NewString(), convID, SenderUser, "only one"); err != nil {
		t.Fatalf("CreateMessage failed: %v", err)
	}

	history, err := store.GetConversationHistory(convID, 10)
	if err != nil {
		t.Fatalf("GetConversationHistory failed: %v", err)
	}
	if len(history) != 1 || history[0].Text != "only one" {
		t.Errorf("history = %+v, want the single seeded message", history)
	}
}

func TestCounts(t *testing.T) {
	store, _ := newTestStore(t)

	convID := uuid.NewString()
	if _, err := store.CreateConversation(convID); err != nil {
		t.Fatalf("CreateConversation failed: %v", err)
	}
	for i := 0; i < 3; i++ {
		if _, err := store.CreateMessage(uuid.NewString(), convID, SenderUser, "x"); err != nil {
			t.Fatalf("CreateMessage failed: %v", err)
		}
	}

	conversations, messages, err := store.Counts()
	if err != nil {
		t.Fatalf("Counts failed: %v", err)
	}
	if conversations != 1 || messages != 3 {
		t.Errorf("Counts = (%d, %d), want (1, 3)", conversations, messages)
	}
}
