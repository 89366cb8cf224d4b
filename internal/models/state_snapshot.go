package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StateSnapshot is the persisted local session state: the full
// project/milestone collections for one user, serialized as JSON.
// SchemaVersion lets on-load migrations reshape previously persisted
// payloads without data loss.
type StateSnapshot struct {
	ID            string    `gorm:"primaryKey" json:"id"`
	UserID        string    `gorm:"uniqueIndex;not null;column:user_id" json:"user_id"`
	SchemaVersion int       `gorm:"not null;column:schema_version" json:"schema_version"`
	Payload       string    `gorm:"type:text;not null" json:"-"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// BeforeCreate hook to generate UUID before creating record
func (s *StateSnapshot) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for GORM
func (StateSnapshot) TableName() string {
	return "state_snapshots"
}
