package services

import (
	"fmt"
	"slices"
	"strings"

	"github.com/SscSPs/smart_wallet/internal/apperrors"
	"github.com/SscSPs/smart_wallet/internal/core/domain"
	portssvc "github.com/SscSPs/smart_wallet/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

type goalService struct {
	BaseService
}

// NewGoalService creates the goal tracker.
func NewGoalService(opts ...BaseOption) portssvc.GoalSvc {
	return &goalService{BaseService: newBaseService(opts...)}
}

var _ portssvc.GoalSvc = (*goalService)(nil)

func (s *goalService) validate(in domain.GoalInput) error {
	if strings.TrimSpace(in.Description) == "" {
		return fmt.Errorf("%w: goal description is required", apperrors.ErrValidation)
	}
	if !in.TargetAmount.IsPositive() {
		return fmt.Errorf("%w: goal target amount must be positive", apperrors.ErrValidation)
	}
	if !in.TargetDate.After(s.now()) {
		return fmt.Errorf("%w: goal target date must be in the future", apperrors.ErrValidation)
	}
	return nil
}

// CreateGoal appends a new goal and returns the new list.
func (s *goalService) CreateGoal(goals []domain.Goal, in domain.GoalInput) ([]domain.Goal, domain.Goal, error) {
	if err := s.validate(in); err != nil {
		return nil, domain.Goal{}, err
	}
	goal := domain.Goal{
		ID:           s.newID("goal-"),
		Description:  strings.TrimSpace(in.Description),
		TargetAmount: in.TargetAmount,
		TargetDate:   in.TargetDate,
		CreatedAt:    s.now(),
	}
	out := append(domain.CloneGoals(goals), goal)
	return out, goal, nil
}

// UpdateGoal replaces the goal with in.ID, keeping its creation time.
func (s *goalService) UpdateGoal(goals []domain.Goal, in domain.GoalInput) ([]domain.Goal, domain.Goal, error) {
	i := slices.IndexFunc(goals, func(g domain.Goal) bool { return g.ID == in.ID })
	if i < 0 {
		return nil, domain.Goal{}, fmt.Errorf("%w: goal %s", apperrors.ErrNotFound, in.ID)
	}
	if err := s.validate(in); err != nil {
		return nil, domain.Goal{}, err
	}
	if !in.TargetDate.After(goals[i].CreatedAt) {
		return nil, domain.Goal{}, fmt.Errorf("%w: goal target date must be after its creation", apperrors.ErrValidation)
	}
	out := domain.CloneGoals(goals)
	out[i].Description = strings.TrimSpace(in.Description)
	out[i].TargetAmount = in.TargetAmount
	out[i].TargetDate = in.TargetDate
	return out, out[i], nil
}

// DeleteGoal removes the goal with the given id.
func (s *goalService) DeleteGoal(goals []domain.Goal, id string) ([]domain.Goal, error) {
	i := slices.IndexFunc(goals, func(g domain.Goal) bool { return g.ID == id })
	if i < 0 {
		return nil, fmt.Errorf("%w: goal %s", apperrors.ErrNotFound, id)
	}
	return slices.Delete(domain.CloneGoals(goals), i, i+1), nil
}

// MonthlyContribution spreads the target over the calendar months between creation and target
// date, rounding up. The whole target is due when that span is not at least a month.
func (s *goalService) MonthlyContribution(goal domain.Goal) decimal.Decimal {
	if !goal.TargetDate.After(goal.CreatedAt) {
		return goal.TargetAmount
	}
	months := (goal.TargetDate.Year()-goal.CreatedAt.Year())*12 + int(goal.TargetDate.Month()) - int(goal.CreatedAt.Month())
	if months <= 0 {
		return goal.TargetAmount
	}
	return goal.TargetAmount.Div(decimal.NewFromInt(int64(months))).Ceil()
}
