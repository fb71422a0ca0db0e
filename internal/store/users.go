package store

import (
	"errors"

	"finanger/internal/core"
)

// ErrUsernameTaken rejects a registration whose username collides with an
// existing record under case-insensitive comparison.
var ErrUsernameTaken = errors.New("username already taken")

// UserStore keeps all credential records in one JSON array file.
type UserStore struct {
	path string
}

// NewUserStore returns a store backed by the given file path.
func NewUserStore(path string) *UserStore {
	return &UserStore{path: path}
}

// All loads every user record.
func (s *UserStore) All() ([]core.User, error) {
	return readArray[core.User](s.path)
}

// Append adds a record after scanning for a case-insensitive username
// collision. On collision nothing is written.
func (s *UserStore) Append(u core.User) error {
	users, err := s.All()
	if err != nil {
		return err
	}
	for _, existing := range users {
		if core.UsernameEqualFold(existing.Username, u.Username) {
			return ErrUsernameTaken
		}
	}
	return writeArray(s.path, append(users, u))
}

// FindByUsername returns the first record matching name case-insensitively.
func (s *UserStore) FindByUsername(name string) (core.User, error) {
	users, err := s.All()
	if err != nil {
		return core.User{}, err
	}
	for _, u := range users {
		if core.UsernameEqualFold(u.Username, name) {
			return u, nil
		}
	}
	return core.User{}, ErrNotFound
}

// FindByID returns the record with the given id.
func (s *UserStore) FindByID(id string) (core.User, error) {
	users, err := s.All()
	if err != nil {
		return core.User{}, err
	}
	for _, u := range users {
		if u.ID == id {
			return u, nil
		}
	}
	return core.User{}, ErrNotFound
}

// Update replaces the record whose username matches oldName
// case-insensitively, then rewrites the whole store.
func (s *UserStore) Update(oldName string, updated core.User) error {
	users, err := s.All()
	if err != nil {
		return err
	}
	for i, u := range users {
		if core.UsernameEqualFold(u.Username, oldName) {
			users[i] = updated
			return writeArray(s.path, users)
		}
	}
	return ErrNotFound
}
