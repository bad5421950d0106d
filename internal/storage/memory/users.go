package memory

import (
	"sync"
	"time"

	"github.com/mnmarketlink/platform/internal/domain/users"
)

// UserRepository is an in-memory implementation of users.Repository.
type UserRepository struct {
	mu    sync.RWMutex
	users map[int64]users.User
}

// NewUserRepository returns an initialized in-memory repository.
func NewUserRepository() *UserRepository {
	return &UserRepository{
		users: make(map[int64]users.User),
	}
}

// FindByID returns a user by identifier.
func (r *UserRepository) FindByID(id int64) (users.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return users.User{}, users.ErrNotFound
	}
	return u, nil
}

// FindByEmail returns a user by email address.
func (r *UserRepository) FindByEmail(email string) (users.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return users.User{}, users.ErrNotFound
}

// Save inserts or updates a user record.
func (r *UserRepository) Save(user users.User) (users.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	if user.ID == 0 {
		user.ID = newID()
		user.CreatedAt = now
	} else if existing, ok := r.users[user.ID]; ok && user.CreatedAt.IsZero() {
		user.CreatedAt = existing.CreatedAt
	}
	user.UpdatedAt = now
	r.users[user.ID] = user
	return user, nil
}
