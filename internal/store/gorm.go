package store

import (
	"errors"

	"truefeedback/internal/models"

	"gorm.io/gorm"
)

// GormStore is the Postgres-backed UserStore.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Create(user *models.User) error {
	return s.db.Create(user).Error
}

func (s *GormStore) Save(user *models.User) error {
	return s.db.Save(user).Error
}

func (s *GormStore) ByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *GormStore) ByUsername(username string) (*models.User, error) {
	return s.first("username = ?", username)
}

func (s *GormStore) VerifiedByUsername(username string) (*models.User, error) {
	return s.first("username = ? AND is_verified = ?", username, true)
}

func (s *GormStore) ByEmail(email string) (*models.User, error) {
	return s.first("email = ?", email)
}

func (s *GormStore) ByIdentifier(identifier string) (*models.User, error) {
	return s.first("username = ? OR email = ?", identifier, identifier)
}

func (s *GormStore) first(query string, args ...interface{}) (*models.User, error) {
	var user models.User
	if err := s.db.Where(query, args...).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *GormStore) SetAcceptingMessages(userID uint, accepting bool) (*models.User, error) {
	res := s.db.Model(&models.User{}).Where("id = ?", userID).
		Update("is_accepting_messages", accepting)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrUserNotFound
	}
	return s.ByID(userID)
}

func (s *GormStore) AppendMessage(userID uint, msg *models.Message) error {
	msg.UserID = userID
	return s.db.Create(msg).Error
}

func (s *GormStore) MessagesByUser(userID uint) ([]models.Message, error) {
	var messages []models.Message
	err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

func (s *GormStore) DeleteMessage(userID uint, messageID string) error {
	res := s.db.Where("user_id = ? AND id = ?", userID, messageID).
		Delete(&models.Message{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrMessageNotFound
	}
	return nil
}
