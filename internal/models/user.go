package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Username string `gorm:"size:20;index;not null" json:"username"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `gorm:"not null" json:"-"` // Hash
	// Verification code sent at sign-up. Cleared once the account is verified.
	VerifyCode       string    `gorm:"size:6" json:"-"`
	VerifyCodeExpiry time.Time `json:"-"`
	IsVerified       bool      `gorm:"default:false" json:"is_verified"`
	// Gates whether anonymous senders may deliver new messages.
	IsAcceptingMessages bool      `gorm:"default:true" json:"is_accepting_messages"`
	Messages            []Message `gorm:"constraint:OnDelete:CASCADE" json:"messages,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// Public returns the fields safe to hand back to clients.
func (u *User) Public() map[string]interface{} {
	return map[string]interface{}{
		"id":                  u.ID,
		"username":            u.Username,
		"email":               u.Email,
		"is_verified":         u.IsVerified,
		"isAcceptingMessages": u.IsAcceptingMessages,
	}
}

type Message struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"-"`
	Content   string    `gorm:"size:300;not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
