package dto

import (
	"fmt"

	"github.com/SscSPs/smart_wallet/internal/apperrors"
	"github.com/SscSPs/smart_wallet/internal/core/domain"
	"github.com/shopspring/decimal"
)

// GoalRequest creates or edits a savings goal.
type GoalRequest struct {
	Description  string          `json:"description" binding:"required"`
	TargetAmount decimal.Decimal `json:"targetAmount"`
	TargetDate   string          `json:"targetDate" binding:"required"`
}

// ToInput converts the request into a goal input. id is empty on create.
func (r GoalRequest) ToInput(id string) (domain.GoalInput, error) {
	date, err := domain.ParseTime(r.TargetDate)
	if err != nil {
		return domain.GoalInput{}, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	return domain.GoalInput{ID: id, Description: r.Description, TargetAmount: r.TargetAmount, TargetDate: date}, nil
}
