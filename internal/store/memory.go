package store

import (
	"sort"
	"sync"

	"truefeedback/internal/models"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory UserStore used by tests.
type MemoryStore struct {
	mu     sync.RWMutex
	nextID uint
	users  map[uint]*models.User
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{users: make(map[uint]*models.User)}
}

func (s *MemoryStore) Create(user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	user.ID = s.nextID
	cp := *user
	s.users[user.ID] = &cp
	return nil
}

// Remove drops a user entirely. Test helper; not part of UserStore (users are
// never hard-deleted by the application).
func (s *MemoryStore) Remove(id uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, id)
}

func (s *MemoryStore) Save(user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.users[user.ID]
	if !ok {
		return ErrUserNotFound
	}
	cp := *user
	cp.Messages = existing.Messages
	s.users[user.ID] = &cp
	return nil
}

func (s *MemoryStore) ByID(id uint) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	cp := *user
	return &cp, nil
}

func (s *MemoryStore) ByUsername(username string) (*models.User, error) {
	return s.find(func(u *models.User) bool { return u.Username == username })
}

func (s *MemoryStore) VerifiedByUsername(username string) (*models.User, error) {
	return s.find(func(u *models.User) bool { return u.Username == username && u.IsVerified })
}

func (s *MemoryStore) ByEmail(email string) (*models.User, error) {
	return s.find(func(u *models.User) bool { return u.Email == email })
}

func (s *MemoryStore) ByIdentifier(identifier string) (*models.User, error) {
	return s.find(func(u *models.User) bool {
		return u.Username == identifier || u.Email == identifier
	})
}

func (s *MemoryStore) find(match func(*models.User) bool) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	// Iterate in id order so ties resolve deterministically.
	ids := make([]uint, 0, len(s.users))
	for id := range s.users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		if match(s.users[id]) {
			cp := *s.users[id]
			return &cp, nil
		}
	}
	return nil, ErrUserNotFound
}

func (s *MemoryStore) SetAcceptingMessages(userID uint, accepting bool) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[userID]
	if !ok {
		return nil, ErrUserNotFound
	}
	user.IsAcceptingMessages = accepting
	cp := *user
	return &cp, nil
}

func (s *MemoryStore) AppendMessage(userID uint, msg *models.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[userID]
	if !ok {
		return ErrUserNotFound
	}
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	msg.UserID = userID
	user.Messages = append(user.Messages, *msg)
	return nil
}

func (s *MemoryStore) MessagesByUser(userID uint) ([]models.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[userID]
	if !ok {
		return nil, ErrUserNotFound
	}
	messages := make([]models.Message, len(user.Messages))
	copy(messages, user.Messages)
	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].CreatedAt.After(messages[j].CreatedAt)
	})
	return messages, nil
}

func (s *MemoryStore) DeleteMessage(userID uint, messageID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[userID]
	if !ok {
		return ErrMessageNotFound
	}
	for i, m := range user.Messages {
		if m.ID == messageID {
			user.Messages = append(user.Messages[:i], user.Messages[i+1:]...)
			return nil
		}
	}
	return ErrMessageNotFound
}
