package services

import (
	"context"
	"errors"
	"time"

	"finanger/internal/backend"
	"finanger/internal/core"
	"finanger/internal/log"
)

// ErrDeadlinePassed rejects creating a goal whose deadline is already behind
// today's date. Existing goals may keep a past deadline, the check applies to
// creation only.
var ErrDeadlinePassed = errors.New("goal deadline already passed")

// GoalService orchestrates goal CRUD on top of the goal repository.
type GoalService struct {
	goals  backend.GoalRepository
	logger *log.Logger
	now    func() time.Time
}

func NewGoalService(goals backend.GoalRepository, logger *log.Logger) *GoalService {
	return &GoalService{
		goals:  goals,
		logger: logger.WithComponent(log.ComponentGoals),
		now:    time.Now,
	}
}

// Create validates the goal and stores it with a generated id. Today counts
// as a valid deadline, only strictly earlier dates are rejected.
func (s *GoalService) Create(ctx context.Context, userID string, g core.Goal) (core.Goal, error) {
	if err := g.Validate(); err != nil {
		return core.Goal{}, err
	}

	deadline, err := g.ParsedDeadline()
	if err != nil {
		return core.Goal{}, err
	}
	today := s.now().Truncate(24 * time.Hour)
	if deadline.Before(today) {
		return core.Goal{}, ErrDeadlinePassed
	}

	stored, err := s.goals.Add(userID, g)
	if err != nil {
		return core.Goal{}, err
	}

	s.logger.InfoContext(ctx, "Goal created",
		log.FieldOperation, log.OpCreate,
		log.FieldUserID, userID,
		log.FieldGoalID, stored.ID)

	return stored, nil
}

// List returns the user's goals.
func (s *GoalService) List(ctx context.Context, userID string) ([]core.Goal, error) {
	return s.goals.Load(userID)
}

// Get returns one goal by id.
func (s *GoalService) Get(ctx context.Context, userID, goalID string) (core.Goal, error) {
	return s.goals.Get(userID, goalID)
}

// Update validates and replaces the goal matching updated.ID.
func (s *GoalService) Update(ctx context.Context, userID string, updated core.Goal) error {
	if err := updated.Validate(); err != nil {
		return err
	}
	if err := s.goals.Update(userID, updated); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "Goal updated",
		log.FieldOperation, log.OpUpdate,
		log.FieldUserID, userID,
		log.FieldGoalID, updated.ID)

	return nil
}

// Delete removes the goal with the given id.
func (s *GoalService) Delete(ctx context.Context, userID, goalID string) error {
	if err := s.goals.Delete(userID, goalID); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "Goal deleted",
		log.FieldOperation, log.OpDelete,
		log.FieldUserID, userID,
		log.FieldGoalID, goalID)

	return nil
}
