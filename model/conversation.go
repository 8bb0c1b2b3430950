package model

// Sender identifies which side of the conversation produced a message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderAI   Sender = "ai"
)

// Valid reports whether s is one of the two permitted sender tags.
func (s Sender) Valid() bool {
	return s == SenderUser || s == SenderAI
}

// Conversation is one chat thread. The id doubles as the client-side
// session handle, so it is a UUID string rather than an autoincrement key.
type Conversation struct {
	ID        string `gorm:"type:varchar(36);primaryKey" json:"id"`
	CreatedAt int64  `gorm:"not null" json:"createdAt"`
}

// Message is a single utterance in a conversation. Rows are append-only:
// nothing in the system updates or deletes them.
type Message struct {
	ID             string       `gorm:"type:varchar(36);primaryKey" json:"id"`
	ConversationID string       `gorm:"type:varchar(36);index;not null" json:"conversationId"`
	Conversation   Conversation `gorm:"foreignKey:ConversationID" json:"-"`
	Sender         Sender       `gorm:"type:varchar(8);not null" json:"sender"`
	Text           string       `gorm:"type:text;not null" json:"text"`
	Timestamp      int64        `gorm:"index;not null" json:"timestamp"`
}
