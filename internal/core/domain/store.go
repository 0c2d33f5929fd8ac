package domain

import (
	"fmt"
	"slices"
	"strings"
)

// Store is an immutable snapshot of every account and its transactions.
// Mutations go through a Draft and produce a new Store.
type Store struct {
	accounts []Account
	index    map[string]int
}

// NewStore validates the account set and returns a snapshot holding a private copy of it.
// Every id must encode a known role and the account's own currency, and ids must be unique.
// Every transaction must have a known type and currency and a positive amount.
func NewStore(accounts []Account) (*Store, error) {
	s := &Store{accounts: CloneAccounts(accounts), index: make(map[string]int, len(accounts))}
	for i, a := range s.accounts {
		_, c, err := ParseAccountID(a.ID)
		if err != nil {
			return nil, err
		}
		if c != a.Currency {
			return nil, fmt.Errorf("account %s: id encodes %s but currency is %s", a.ID, c, a.Currency)
		}
		if _, dup := s.index[a.ID]; dup {
			return nil, fmt.Errorf("duplicate account id %s", a.ID)
		}
		for _, t := range a.Transactions {
			if err := checkTransaction(a, t); err != nil {
				return nil, err
			}
		}
		s.index[a.ID] = i
	}
	return s, nil
}

func checkTransaction(a Account, t Transaction) error {
	switch {
	case t.ID == "":
		return fmt.Errorf("account %s: transaction without id", a.ID)
	case !t.Type.Valid() || t.Type == Transfer:
		return fmt.Errorf("transaction %s: unknown type %q", t.ID, t.Type)
	case !t.Currency.Valid():
		return fmt.Errorf("transaction %s: unsupported currency %q", t.ID, t.Currency)
	case !t.Amount.IsPositive():
		return fmt.Errorf("transaction %s: amount must be positive", t.ID)
	case (t.Type == Income || t.Type == Expense) && t.Currency != a.Currency:
		return fmt.Errorf("transaction %s: currency %s does not match account %s", t.ID, t.Currency, a.ID)
	}
	return nil
}

// Accounts returns a deep copy of all accounts in store order.
func (s *Store) Accounts() []Account {
	return CloneAccounts(s.accounts)
}

// FindByID returns a copy of the account with the given id.
func (s *Store) FindByID(id string) (Account, bool) {
	i, ok := s.index[id]
	if !ok {
		return Account{}, false
	}
	return s.accounts[i].Clone(), true
}

// FindByRole returns the account with the given role and currency.
func (s *Store) FindByRole(role AccountRole, c Currency) (Account, bool) {
	return s.FindByID(AccountID(role, c))
}

// FilterByRolePrefix returns copies of the accounts whose id starts with prefix.
func (s *Store) FilterByRolePrefix(prefix string) []Account {
	var out []Account
	for _, a := range s.accounts {
		if strings.HasPrefix(a.ID, prefix) {
			out = append(out, a.Clone())
		}
	}
	return out
}

// FilterByRole returns copies of the accounts with the given role.
func (s *Store) FilterByRole(role AccountRole) []Account {
	return s.FilterByRolePrefix(role.Prefix())
}

// FindTransaction locates a transaction by id across all accounts.
func (s *Store) FindTransaction(id string) (Transaction, string, bool) {
	for _, a := range s.accounts {
		for _, t := range a.Transactions {
			if t.ID == id {
				return t.Clone(), a.ID, true
			}
		}
	}
	return Transaction{}, "", false
}

// Draft starts a mutable working copy of the snapshot.
func (s *Store) Draft() *Draft {
	return &Draft{
		accounts: CloneAccounts(s.accounts),
		index:    s.index,
		touched:  map[string]bool{},
	}
}

// Draft is a private working copy of a Store. Nothing done to it is visible
// until Commit returns the new snapshot.
type Draft struct {
	accounts []Account
	index    map[string]int
	touched  map[string]bool
}

// Account returns the working account with the given id, or nil.
func (d *Draft) Account(id string) *Account {
	i, ok := d.index[id]
	if !ok {
		return nil
	}
	return &d.accounts[i]
}

// AccountByRole returns the working account with the given role and currency, or nil.
func (d *Draft) AccountByRole(role AccountRole, c Currency) *Account {
	return d.Account(AccountID(role, c))
}

// Transactions returns every transaction in the draft. The result must not be modified.
func (d *Draft) Transactions() []Transaction {
	var out []Transaction
	for _, a := range d.accounts {
		out = append(out, a.Transactions...)
	}
	return out
}

// Accounts exposes the working accounts for read-only calculations.
func (d *Draft) Accounts() []Account {
	return d.accounts
}

// Append adds t to the end of the account and reports whether the account exists.
func (d *Draft) Append(accountID string, t Transaction) bool {
	acc := d.Account(accountID)
	if acc == nil {
		return false
	}
	acc.Transactions = append(acc.Transactions, t)
	d.touched[accountID] = true
	return true
}

// RemoveWhere deletes every transaction matching pred and returns them.
func (d *Draft) RemoveWhere(pred func(Transaction) bool) []Transaction {
	var removed []Transaction
	for i := range d.accounts {
		acc := &d.accounts[i]
		kept := acc.Transactions[:0]
		for _, t := range acc.Transactions {
			if pred(t) {
				removed = append(removed, t)
				d.touched[acc.ID] = true
				continue
			}
			kept = append(kept, t)
		}
		acc.Transactions = kept
	}
	return removed
}

// Commit re-sorts every touched account newest first and returns the new snapshot.
// Records with equal dates keep their relative order. The draft is unusable afterwards.
func (d *Draft) Commit() *Store {
	for id := range d.touched {
		acc := d.Account(id)
		slices.SortStableFunc(acc.Transactions, func(a, b Transaction) int {
			return b.Date.Compare(a.Date)
		})
	}
	s := &Store{accounts: d.accounts, index: d.index}
	d.accounts = nil
	return s
}
