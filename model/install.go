package model

import "gorm.io/gorm"

// InstallDB creates or updates the two tables backing the store. There is
// no separate migration mechanism; the schema is small enough that
// AutoMigrate on startup is the whole story.
func InstallDB(db *gorm.DB) error {
	return db.AutoMigrate(
		&Conversation{},
		&Message{},
	)
}
