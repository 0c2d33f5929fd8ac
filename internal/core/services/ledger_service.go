package services

import (
	"fmt"
	"strings"

	"github.com/SscSPs/smart_wallet/internal/apperrors"
	"github.com/SscSPs/smart_wallet/internal/core/domain"
	portssvc "github.com/SscSPs/smart_wallet/internal/core/ports/services"
	"github.com/SscSPs/smart_wallet/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// ledgerService is the state-transition engine over account snapshots.
// It holds no state of its own.
type ledgerService struct {
	BaseService
}

// NewLedgerService creates the ledger engine.
func NewLedgerService(opts ...BaseOption) portssvc.LedgerSvc {
	return &ledgerService{BaseService: newBaseService(opts...)}
}

var _ portssvc.LedgerSvc = (*ledgerService)(nil)

func validateTransactionInput(in domain.TransactionInput) error {
	if !in.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	if !in.Currency.Valid() {
		return fmt.Errorf("%w: unsupported currency %q", apperrors.ErrValidation, in.Currency)
	}
	if !in.Type.Valid() {
		return fmt.Errorf("%w: unsupported transaction type %q", apperrors.ErrValidation, in.Type)
	}
	if strings.TrimSpace(in.Description) == "" {
		return fmt.Errorf("%w: description is required", apperrors.ErrValidation)
	}
	if in.Date.IsZero() {
		return fmt.Errorf("%w: date is required", apperrors.ErrValidation)
	}
	return nil
}

// UpsertTransaction implements portssvc.LedgerSvc.
func (l *ledgerService) UpsertTransaction(store *domain.Store, in domain.TransactionInput) (*domain.Store, error) {
	if err := validateTransactionInput(in); err != nil {
		return nil, err
	}
	in.Description = strings.TrimSpace(in.Description)
	draft := store.Draft()

	if in.ID == "" {
		base := l.newRecord(l.newID("trans-"), in)
		if err := l.place(draft, in, base, true); err != nil {
			return nil, err
		}
		return draft.Commit(), nil
	}

	orig, _, ok := store.FindTransaction(in.ID)
	if !ok {
		return nil, fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, in.ID)
	}
	var err error
	if orig.IsSettlement() {
		err = l.editSettlement(draft, orig, in)
	} else {
		err = l.edit(draft, orig, in)
	}
	if err != nil {
		return nil, err
	}
	return draft.Commit(), nil
}

func (l *ledgerService) newRecord(id string, in domain.TransactionInput) domain.Transaction {
	return domain.Transaction{
		ID:          id,
		Amount:      in.Amount,
		Currency:    in.Currency,
		Type:        in.Type,
		Description: in.Description,
		Date:        in.Date,
	}
}

// carryHistory keeps orig's history and appends an entry when the amount changes.
func (l *ledgerService) carryHistory(orig domain.Transaction, amount decimal.Decimal) []domain.HistoryEntry {
	history := append([]domain.HistoryEntry(nil), orig.History...)
	if !orig.Amount.Equal(amount) {
		history = append(history, domain.HistoryEntry{PreviousAmount: orig.Amount, ModifiedAt: l.now()})
	}
	if len(history) == 0 {
		return nil
	}
	return history
}

// edit replaces a regular record (and the other leg of its transfer) with a rebuilt one.
// The original is removed first, so balance checks see its amount credited back.
func (l *ledgerService) edit(draft *domain.Draft, orig domain.Transaction, in domain.TransactionInput) error {
	if orig.IsPrimaryDebt() {
		idx := accounting.BuildSettlementIndex(draft.Accounts())
		if len(idx.SettlementIDs(orig.ID)) > 0 {
			if in.Type != orig.Type || in.Currency != orig.Currency {
				return fmt.Errorf("%w: a debt with settlements must keep its type and currency", apperrors.ErrValidation)
			}
			if settled := idx.Settled(orig.ID); in.Amount.LessThan(settled) {
				return fmt.Errorf("%w: amount cannot drop below the %s already settled", apperrors.ErrValidation, settled)
			}
		}
	}

	draft.RemoveWhere(func(t domain.Transaction) bool {
		return t.ID == orig.ID || (orig.GroupID != "" && t.GroupID == orig.GroupID)
	})

	base := l.newRecord(orig.ID, in)
	base.History = l.carryHistory(orig, in.Amount)
	return l.place(draft, in, base, false)
}

// place routes a new or rebuilt record to the account(s) its type calls for.
func (l *ledgerService) place(draft *domain.Draft, in domain.TransactionInput, base domain.Transaction, creating bool) error {
	switch in.Type {
	case domain.Transfer:
		return l.placeTransfer(draft, in, base)

	case domain.Expense:
		if in.SourceAccountID == "" {
			return fmt.Errorf("%w: an expense needs a source account", apperrors.ErrValidation)
		}
		acc, err := cashAccount(draft, in.SourceAccountID, in.Currency)
		if err != nil {
			return err
		}
		if err := ensureFunds(acc, in.Amount); err != nil {
			return err
		}
		draft.Append(acc.ID, base)
		return nil

	case domain.Income:
		safe := draft.AccountByRole(domain.RoleSafe, in.Currency)
		if safe == nil {
			return fmt.Errorf("%w: %s", apperrors.ErrAccountNotFound, domain.AccountID(domain.RoleSafe, in.Currency))
		}
		if creating && in.IncomeSource == domain.IncomeSourceDebt {
			deferred := draft.AccountByRole(domain.RoleDeferred, in.Currency)
			if deferred == nil {
				return fmt.Errorf("%w: %s", apperrors.ErrAccountNotFound, domain.AccountID(domain.RoleDeferred, in.Currency))
			}
			liability := base.Clone()
			liability.ID = l.newID("trans-")
			liability.Type = domain.Liability
			liability.Description = domain.DebtIncomePrefix + " " + in.Description
			liability.History = nil
			draft.Append(deferred.ID, liability)
		}
		draft.Append(safe.ID, base)
		return nil

	case domain.Liability, domain.Receivable:
		deferred := draft.AccountByRole(domain.RoleDeferred, in.Currency)
		if deferred == nil {
			return fmt.Errorf("%w: %s", apperrors.ErrAccountNotFound, domain.AccountID(domain.RoleDeferred, in.Currency))
		}
		draft.Append(deferred.ID, base)
		return nil
	}
	return fmt.Errorf("%w: unsupported transaction type %q", apperrors.ErrValidation, in.Type)
}

// placeTransfer writes the EXPENSE leg into the source and the INCOME leg into the destination.
// The source leg keeps base's id; both legs share a fresh group id.
func (l *ledgerService) placeTransfer(draft *domain.Draft, in domain.TransactionInput, base domain.Transaction) error {
	if in.FromAccountID == "" || in.ToAccountID == "" {
		return fmt.Errorf("%w: a transfer needs a source and a destination account", apperrors.ErrValidation)
	}
	if in.FromAccountID == in.ToAccountID {
		return fmt.Errorf("%w: source and destination accounts must differ", apperrors.ErrValidation)
	}
	from, err := cashAccount(draft, in.FromAccountID, in.Currency)
	if err != nil {
		return err
	}
	to, err := cashAccount(draft, in.ToAccountID, in.Currency)
	if err != nil {
		return err
	}
	if err := ensureFunds(from, in.Amount); err != nil {
		return err
	}

	groupID := l.newID("grp-")

	out := base.Clone()
	out.Type = domain.Expense
	out.Description = fmt.Sprintf("%s %s: %s", domain.TransferToPrefix, to.Name, in.Description)
	out.GroupID = groupID

	inbound := base.Clone()
	inbound.ID = l.newID("trans-")
	inbound.Type = domain.Income
	inbound.Description = fmt.Sprintf("%s %s: %s", domain.TransferFromPrefix, from.Name, in.Description)
	inbound.GroupID = groupID

	draft.Append(from.ID, out)
	draft.Append(to.ID, inbound)
	return nil
}

// cashAccount returns the safe or bank account with the given id, checking its currency.
func cashAccount(draft *domain.Draft, id string, c domain.Currency) (*domain.Account, error) {
	acc := draft.Account(id)
	if acc == nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrAccountNotFound, id)
	}
	if !acc.Role().HoldsCash() {
		return nil, fmt.Errorf("%w: account %s does not hold cash", apperrors.ErrValidation, id)
	}
	if acc.Currency != c {
		return nil, fmt.Errorf("%w: account %s holds %s, not %s", apperrors.ErrValidation, id, acc.Currency, c)
	}
	return acc, nil
}

func ensureFunds(acc *domain.Account, amount decimal.Decimal) error {
	if balance := accounting.Balance(acc.Transactions); amount.GreaterThan(balance) {
		return fmt.Errorf("%w: %s has %s available, %s requested", apperrors.ErrInsufficientBalance, acc.ID, balance, amount)
	}
	return nil
}

type locatedRecord struct {
	accountID string
	txn       domain.Transaction
}

func locate(draft *domain.Draft, pred func(domain.Transaction) bool) []locatedRecord {
	var out []locatedRecord
	for _, acc := range draft.Accounts() {
		for _, t := range acc.Transactions {
			if pred(t) {
				out = append(out, locatedRecord{accountID: acc.ID, txn: t.Clone()})
			}
		}
	}
	return out
}

// editSettlement changes the amount, date or description of a settlement. Both legs follow;
// the link to the debt, the type and the currency stay as they were.
func (l *ledgerService) editSettlement(draft *domain.Draft, orig domain.Transaction, in domain.TransactionInput) error {
	if in.Type != orig.Type || in.Currency != orig.Currency {
		return fmt.Errorf("%w: a settlement keeps its type and currency", apperrors.ErrValidation)
	}

	legs := locate(draft, func(t domain.Transaction) bool {
		return t.ID == orig.ID || (orig.GroupID != "" && t.GroupID == orig.GroupID)
	})

	idx := accounting.BuildSettlementIndex(draft.Accounts())
	if debt, _, ok := findIn(draft, orig.SettlesTransactionID); ok {
		others := idx.Settled(debt.ID)
		for _, leg := range legs {
			if leg.txn.Type == domain.Income || leg.txn.Type == domain.Expense {
				others = others.Sub(leg.txn.Amount)
			}
		}
		if others.Add(in.Amount).GreaterThan(debt.Amount) {
			return fmt.Errorf("%w: settlement exceeds the %s remaining on the debt", apperrors.ErrValidation, debt.Amount.Sub(others))
		}
	}

	draft.RemoveWhere(func(t domain.Transaction) bool {
		return t.ID == orig.ID || (orig.GroupID != "" && t.GroupID == orig.GroupID)
	})

	for _, leg := range legs {
		updated := leg.txn.Clone()
		updated.Amount = in.Amount
		updated.Date = in.Date
		updated.History = l.carryHistory(leg.txn, in.Amount)
		if leg.txn.ID == orig.ID {
			updated.Description = in.Description
		}
		if updated.Type == domain.Expense {
			if err := ensureFunds(draft.Account(leg.accountID), in.Amount); err != nil {
				return err
			}
		}
		draft.Append(leg.accountID, updated)
	}
	return nil
}

func findIn(draft *domain.Draft, id string) (domain.Transaction, string, bool) {
	if id == "" {
		return domain.Transaction{}, "", false
	}
	found := locate(draft, func(t domain.Transaction) bool { return t.ID == id })
	if len(found) == 0 {
		return domain.Transaction{}, "", false
	}
	return found[0].txn, found[0].accountID, true
}

// DeleteTransaction implements portssvc.LedgerSvc.
func (l *ledgerService) DeleteTransaction(store *domain.Store, id string) (*domain.Store, error) {
	orig, _, ok := store.FindTransaction(id)
	if !ok {
		return nil, fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, id)
	}
	draft := store.Draft()
	draft.RemoveWhere(func(t domain.Transaction) bool {
		return t.ID == id ||
			t.SettlesTransactionID == id ||
			(orig.GroupID != "" && t.GroupID == orig.GroupID)
	})
	return draft.Commit(), nil
}

// SettleDebt implements portssvc.LedgerSvc.
func (l *ledgerService) SettleDebt(store *domain.Store, debtID string, amountPaid decimal.Decimal, targetAccountID string) (*domain.Store, error) {
	debt, _, ok := store.FindTransaction(debtID)
	if !ok {
		return nil, fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, debtID)
	}
	if !debt.IsPrimaryDebt() {
		return nil, fmt.Errorf("%w: %s is not a debt", apperrors.ErrValidation, debtID)
	}
	if !amountPaid.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}

	draft := store.Draft()
	target := draft.Account(targetAccountID)
	if target == nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrAccountNotFound, targetAccountID)
	}
	if target.Currency != debt.Currency {
		return nil, fmt.Errorf("%w: a %s debt can only be settled from a %s account", apperrors.ErrValidation, debt.Currency, debt.Currency)
	}
	if !target.Role().HoldsCash() {
		return nil, fmt.Errorf("%w: account %s does not hold cash", apperrors.ErrValidation, targetAccountID)
	}

	remaining := accounting.BuildSettlementIndex(draft.Accounts()).Remaining(debt)
	if amountPaid.GreaterThan(remaining) {
		return nil, fmt.Errorf("%w: only %s remains on the debt", apperrors.ErrValidation, remaining)
	}

	deferred := draft.AccountByRole(domain.RoleDeferred, debt.Currency)
	if deferred == nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrAccountNotFound, domain.AccountID(domain.RoleDeferred, debt.Currency))
	}

	receivable := debt.Type == domain.Receivable
	cashType, mirrorType, prefix := domain.Expense, domain.Receivable, domain.PayDebtPrefix
	if receivable {
		cashType, mirrorType, prefix = domain.Income, domain.Liability, domain.CollectDebtPrefix
	}
	if cashType == domain.Expense {
		if err := ensureFunds(target, amountPaid); err != nil {
			return nil, err
		}
	}

	now := l.now()
	groupID := l.newID("grp-")
	draft.Append(target.ID, domain.Transaction{
		ID:                   l.newID("trans-"),
		Amount:               amountPaid,
		Currency:             debt.Currency,
		Type:                 cashType,
		Description:          prefix + " " + debt.Description,
		Date:                 now,
		SettlesTransactionID: debt.ID,
		GroupID:              groupID,
	})
	draft.Append(deferred.ID, domain.Transaction{
		ID:                   l.newID("trans-"),
		Amount:               amountPaid,
		Currency:             debt.Currency,
		Type:                 mirrorType,
		Description:          domain.SettleDebtPrefix + " " + debt.Description,
		Date:                 now,
		SettlesTransactionID: debt.ID,
		GroupID:              groupID,
	})
	return draft.Commit(), nil
}

// ExchangeCurrencies implements portssvc.LedgerSvc. AmountToReceive is recorded as given.
func (l *ledgerService) ExchangeCurrencies(store *domain.Store, in domain.ExchangeInput) (*domain.Store, error) {
	switch {
	case !in.AmountToSell.IsPositive(), !in.AmountToReceive.IsPositive():
		return nil, fmt.Errorf("%w: exchanged amounts must be positive", apperrors.ErrValidation)
	case !in.Rate.IsPositive():
		return nil, fmt.Errorf("%w: exchange rate must be positive", apperrors.ErrValidation)
	case !in.FromCurrency.Valid(), !in.ToCurrency.Valid():
		return nil, fmt.Errorf("%w: unsupported currency", apperrors.ErrValidation)
	case in.FromCurrency == in.ToCurrency:
		return nil, fmt.Errorf("%w: cannot exchange a currency for itself", apperrors.ErrValidation)
	}

	draft := store.Draft()
	from := draft.AccountByRole(domain.RoleSafe, in.FromCurrency)
	if from == nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrAccountNotFound, domain.AccountID(domain.RoleSafe, in.FromCurrency))
	}
	to := draft.AccountByRole(domain.RoleSafe, in.ToCurrency)
	if to == nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrAccountNotFound, domain.AccountID(domain.RoleSafe, in.ToCurrency))
	}
	if err := ensureFunds(from, in.AmountToSell); err != nil {
		return nil, err
	}

	now := l.now()
	draft.Append(from.ID, domain.Transaction{
		ID:       l.newID("trans-"),
		Amount:   in.AmountToSell,
		Currency: in.FromCurrency,
		Type:     domain.Expense,
		Description: fmt.Sprintf("%s %s %s بسعر %s", domain.ExchangeToPrefix,
			accounting.FormatAmount(in.AmountToReceive, in.ToCurrency), in.ToCurrency.Details().Symbol, in.Rate),
		Date: now,
	})
	draft.Append(to.ID, domain.Transaction{
		ID:       l.newID("trans-"),
		Amount:   in.AmountToReceive,
		Currency: in.ToCurrency,
		Type:     domain.Income,
		Description: fmt.Sprintf("%s %s %s بسعر %s", domain.ExchangeFromPrefix,
			accounting.FormatAmount(in.AmountToSell, in.FromCurrency), in.FromCurrency.Details().Symbol, in.Rate),
		Date: now,
	})
	return draft.Commit(), nil
}
