package domain

import (
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// Goal is a savings target expressed in the base currency.
type Goal struct {
	ID           string          `json:"id"`
	Description  string          `json:"description"`
	TargetAmount decimal.Decimal `json:"targetAmount"`
	TargetDate   time.Time       `json:"targetDate"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// UnmarshalJSON accepts plain calendar days as well as full timestamps.
func (g *Goal) UnmarshalJSON(data []byte) error {
	type alias Goal
	aux := struct {
		*alias
		TargetDate string `json:"targetDate"`
		CreatedAt  string `json:"createdAt"`
	}{alias: (*alias)(g)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	var err error
	if g.TargetDate, err = ParseTime(aux.TargetDate); err != nil {
		return fmt.Errorf("goal %s: %w", g.ID, err)
	}
	if g.CreatedAt, err = ParseTime(aux.CreatedAt); err != nil {
		return fmt.Errorf("goal %s: %w", g.ID, err)
	}
	return nil
}

// GoalInput carries a goal create or edit request.
type GoalInput struct {
	ID           string // empty on create
	Description  string
	TargetAmount decimal.Decimal
	TargetDate   time.Time
}

// CloneGoals copies a goal slice.
func CloneGoals(goals []Goal) []Goal {
	return slices.Clone(goals)
}
