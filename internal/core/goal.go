package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Saving        GoalType = "Saving"
	DebtRepayment GoalType = "DebtRepayment"
	BudgetControl GoalType = "BudgetControl"
)

// DefaultCurrency is stamped onto goals created without an explicit currency.
const DefaultCurrency = "CNY"

type GoalType string

func (g GoalType) IsValid() bool {
	switch g {
	case Saving, DebtRepayment, BudgetControl:
		return true
	}
	return false
}

var (
	ErrInvalidGoalType = errors.New("invalid goal type")
	ErrEmptyTitle      = errors.New("empty goal title")
	ErrInvalidDeadline = errors.New("invalid goal deadline")
)

// Goal is identified by its generated id, unlike Transaction: update and
// delete match by id, never by field contents.
type Goal struct {
	ID            string   `json:"id"`
	UserID        string   `json:"userId"`
	Type          GoalType `json:"type"`
	Title         string   `json:"title"`
	TargetAmount  float64  `json:"targetAmount"`
	CurrentAmount float64  `json:"currentAmount"`
	Deadline      string   `json:"deadline"`
	Category      string   `json:"category,omitempty"`
	Currency      string   `json:"currency"`
}

// ProgressPercentage derives completion progress clamped to [0, 100].
// A zero target always reads as 0 percent.
func (g Goal) ProgressPercentage() float64 {
	if g.TargetAmount == 0 {
		return 0
	}
	p := g.CurrentAmount / g.TargetAmount * 100
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// IsCompleted reports goal completion. Budget-control goals invert the
// comparison: staying at or under the target is the completed state.
func (g Goal) IsCompleted() bool {
	if g.Type == BudgetControl {
		return g.CurrentAmount <= g.TargetAmount
	}
	return g.CurrentAmount >= g.TargetAmount
}

// ParsedDeadline parses the stored deadline text.
func (g Goal) ParsedDeadline() (time.Time, error) {
	d, err := time.Parse(DateLayout, g.Deadline)
	if err != nil {
		return time.Time{}, ErrInvalidDeadline
	}
	return d, nil
}

// Validate checks static validity. Time-dependent rules (deadline already in
// the past) are the creation-time concern of the goal service.
func (g Goal) Validate() error {
	if !g.Type.IsValid() {
		return ErrInvalidGoalType
	}
	if strings.TrimSpace(g.Title) == "" {
		return ErrEmptyTitle
	}
	if g.TargetAmount < 0 || g.CurrentAmount < 0 {
		return ErrInvalidAmount
	}
	if _, err := g.ParsedDeadline(); err != nil {
		return err
	}
	return nil
}
