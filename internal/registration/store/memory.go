package store

import (
	"context"
	"sync"

	"troywings/internal/registration/models"
	"troywings/pkg/platform/sentinel"
)

// InMemory keeps records in a map guarded by a mutex. It backs unit tests
// and database-less development, and intentionally favors clarity over
// performance.
type InMemory struct {
	mu     sync.RWMutex
	users  map[int64]models.User
	order  []int64
	nextID int64
}

func NewInMemory() *InMemory {
	return &InMemory{users: make(map[int64]models.User)}
}

func (s *InMemory) Create(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	user.ID = s.nextID
	s.users[user.ID] = *user
	s.order = append(s.order, user.ID)
	return nil
}

// List returns records in insertion order, mirroring the natural read order
// of the SQL store.
func (s *InMemory) List(_ context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := make([]models.User, 0, len(s.order))
	for _, id := range s.order {
		users = append(users, s.users[id])
	}
	return users, nil
}

func (s *InMemory) Update(_ context.Context, user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.users[user.ID]
	if !ok {
		return sentinel.ErrNotFound
	}
	if user.DateOfBirth.IsZero() {
		user.DateOfBirth = existing.DateOfBirth
	}
	s.users[user.ID] = user
	return nil
}

func (s *InMemory) FindByID(_ context.Context, id int64) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if user, ok := s.users[id]; ok {
		return user, nil
	}
	return models.User{}, sentinel.ErrNotFound
}
