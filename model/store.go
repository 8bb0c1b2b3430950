package model

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

var (
	// ErrDuplicateKey is returned when a conversation id already exists.
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrForeignKeyViolation is returned when a message references a
	// conversation that was never created.
	ErrForeignKeyViolation = errors.New("foreign key violation")
)

// Store owns all reads and writes against the two tables. It is built
// once at startup around the shared *gorm.DB handle and injected into the
// controllers, so tests can point it at a throwaway database.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateConversation(id string) (*Conversation, error) {
	conv := &Conversation{
		ID:        id,
		CreatedAt: time.Now().UnixMilli(),
	}
	if err := s.db.Create(conv).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("conversation %s: %w", id, ErrDuplicateKey)
		}
		return nil, fmt.Errorf("failed to create conversation: %w", err)
	}
	return conv, nil
}

func (s *Store) ConversationExists(id string) bool {
	var count int64
	s.db.Model(&Conversation{}).Where("id = ?", id).Count(&count)
	return count > 0
}

func (s *Store) CreateMessage(id, conversationID string, sender Sender, text string) (*Message, error) {
	msg := &Message{
		ID:             id,
		ConversationID: conversationID,
		Sender:         sender,
		Text:           text,
		Timestamp:      time.Now().UnixMilli(),
	}
	if err := s.db.Create(msg).Error; err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, fmt.Errorf("conversation %s: %w", conversationID, ErrForeignKeyViolation)
		}
		return nil, fmt.Errorf("failed to create message: %w", err)
	}
	return msg, nil
}

// GetMessages returns every message of a conversation in chronological
// order. An unknown conversation yields an empty slice, not an error.
func (s *Store) GetMessages(conversationID string) ([]Message, error) {
	messages := make([]Message, 0)
	err := s.db.
		Where("conversation_id = ?", conversationID).
		Order("timestamp ASC, rowid ASC").
		Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch messages: %w", err)
	}
	return messages, nil
}

// GetConversationHistory returns the newest limit messages in
// chronological order: fetch descending, then reverse. When the
// conversation holds fewer than limit messages this equals GetMessages.
func (s *Store) GetConversationHistory(conversationID string, limit int) ([]Message, error) {
	messages := make([]Message, 0)
	err := s.db.
		Where("conversation_id = ?", conversationID).
		Order("timestamp DESC, rowid DESC").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch history: %w", err)
	}
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

// Counts reports the table sizes, used by the daily stats job.
func (s *Store) Counts() (conversations, messages int64, err error) {
	if err = s.db.Model(&Conversation{}).Count(&conversations).Error; err != nil {
		return 0, 0, fmt.Errorf("failed to count conversations: %w", err)
	}
	if err = s.db.Model(&Message{}).Count(&messages).Error; err != nil {
		return 0, 0, fmt.Errorf("failed to count messages: %w", err)
	}
	return conversations, messages, nil
}
