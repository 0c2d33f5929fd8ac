package services

import (
	"github.com/SscSPs/smart_wallet/internal/core/domain"
	portssvc "github.com/SscSPs/smart_wallet/internal/core/ports/services"
	"github.com/SscSPs/smart_wallet/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

type alertService struct {
	BaseService
	goals portssvc.GoalSvc
}

// NewAlertService creates the alert evaluator. Goal reminders use goals for the monthly figure.
func NewAlertService(goals portssvc.GoalSvc, opts ...BaseOption) portssvc.AlertSvc {
	return &alertService{BaseService: newBaseService(opts...), goals: goals}
}

var _ portssvc.AlertSvc = (*alertService)(nil)

// Evaluate must be given the real accounts and goals, never a decoy projection.
func (s *alertService) Evaluate(accounts []domain.Account, goals []domain.Goal, rates domain.ExchangeRates, settings domain.Settings, dismissed domain.Dismissals) domain.Alerts {
	cash := accounting.CashBalance(accounts, rates)
	var alerts domain.Alerts

	if cash.GreaterThan(decimal.NewFromInt(settings.SavingsThreshold)) && !dismissed.Savings {
		alerts.Savings = domain.SavingsAlert{
			Active:          true,
			SuggestedAmount: cash.Mul(decimal.NewFromInt(settings.SavingsPercentage)).Div(decimal.NewFromInt(100)).Floor(),
		}
	}

	if cash.IsPositive() && !dismissed.Debt && accounting.OutstandingLiabilities(accounts, rates).IsPositive() {
		alerts.Debt = domain.DebtAlert{Active: true}
	}

	now := s.now()
	alerts.Goals = []domain.GoalAlert{}
	for _, g := range goals {
		key := domain.GoalDismissalKey(g.ID, now)
		if dismissed.Goals[key] {
			continue
		}
		alerts.Goals = append(alerts.Goals, domain.GoalAlert{
			Goal:                g,
			MonthlyContribution: s.goals.MonthlyContribution(g),
			DismissalKey:        key,
		})
	}
	return alerts
}
