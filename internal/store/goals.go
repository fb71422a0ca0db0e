package store

import (
	"path/filepath"

	"github.com/google/uuid"

	"finanger/internal/core"
)

// GoalStore keeps one JSON array file per user id. Goals are matched by
// their generated id, never by field contents.
type GoalStore struct {
	dir string
}

// NewGoalStore returns a store rooted at dir.
func NewGoalStore(dir string) *GoalStore {
	return &GoalStore{dir: dir}
}

func (s *GoalStore) path(userID string) string {
	return filepath.Join(s.dir, userID+".json")
}

// Load returns the user's goals. Missing file means no goals yet.
func (s *GoalStore) Load(userID string) ([]core.Goal, error) {
	return readArray[core.Goal](s.path(userID))
}

// Add appends the goal, generating an id and stamping the owning user and
// default currency when absent. Returns the stored goal.
func (s *GoalStore) Add(userID string, g core.Goal) (core.Goal, error) {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	if g.UserID == "" {
		g.UserID = userID
	}
	if g.Currency == "" {
		g.Currency = core.DefaultCurrency
	}
	goals, err := s.Load(userID)
	if err != nil {
		return core.Goal{}, err
	}
	if err := writeArray(s.path(userID), append(goals, g)); err != nil {
		return core.Goal{}, err
	}
	return g, nil
}

// Get returns the goal with the given id.
func (s *GoalStore) Get(userID, goalID string) (core.Goal, error) {
	goals, err := s.Load(userID)
	if err != nil {
		return core.Goal{}, err
	}
	for _, g := range goals {
		if g.ID == goalID {
			return g, nil
		}
	}
	return core.Goal{}, ErrNotFound
}

// Update replaces the goal matching updated.ID.
func (s *GoalStore) Update(userID string, updated core.Goal) error {
	goals, err := s.Load(userID)
	if err != nil {
		return err
	}
	for i, g := range goals {
		if g.ID == updated.ID {
			goals[i] = updated
			return writeArray(s.path(userID), goals)
		}
	}
	return ErrNotFound
}

// Delete removes exactly the goal with the given id, leaving the rest
// untouched regardless of field contents.
func (s *GoalStore) Delete(userID, goalID string) error {
	goals, err := s.Load(userID)
	if err != nil {
		return err
	}
	for i, g := range goals {
		if g.ID == goalID {
			goals = append(goals[:i], goals[i+1:]...)
			return writeArray(s.path(userID), goals)
		}
	}
	return ErrNotFound
}
