// Package store is the data access layer. Handlers depend on the UserStore
// interface; production wires the GORM implementation, tests the in-memory one.
package store

import (
	"errors"

	"truefeedback/internal/models"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrMessageNotFound = errors.New("message not found")
)

type UserStore interface {
	Create(user *models.User) error
	Save(user *models.User) error

	ByID(id uint) (*models.User, error)
	ByUsername(username string) (*models.User, error)
	// VerifiedByUsername only matches verified accounts; unverified duplicates
	// may exist transiently during the verification window.
	VerifiedByUsername(username string) (*models.User, error)
	ByEmail(email string) (*models.User, error)
	// ByIdentifier looks a user up by username or email.
	ByIdentifier(identifier string) (*models.User, error)

	// SetAcceptingMessages flips the toggle in a single update and returns the
	// updated user.
	SetAcceptingMessages(userID uint, accepting bool) (*models.User, error)

	AppendMessage(userID uint, msg *models.Message) error
	// MessagesByUser returns the user's messages newest first.
	MessagesByUser(userID uint) ([]models.Message, error)
	// DeleteMessage removes exactly the message with the given id owned by
	// userID. ErrMessageNotFound when nothing matches.
	DeleteMessage(userID uint, messageID string) error
}
