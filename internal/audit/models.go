package audit

import (
	"time"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

// Entry is one persisted guard decision
type Entry struct {
	ID         string    `json:"id" gorm:"primaryKey;type:varchar(26)"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime;index"`
	Target     string    `json:"target" gorm:"not null"`
	From       string    `json:"from"`
	Username   string    `json:"username"`
	Role       string    `json:"role"`
	Decision   string    `json:"decision" gorm:"not null"` // continue, redirect
	RedirectTo string    `json:"redirect_to"`
}

// TableName pins the table name
func (Entry) TableName() string {
	return "navigation_audit"
}

// BeforeCreate generates a ULID for the ID field if it's empty
func (e *Entry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = ulid.Make().String()
	}
	return nil
}

// AutoMigrate creates or updates the audit schema
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&Entry{})
}
