package domain

import (
	"fmt"
	"strings"
)

// AccountRole is the purpose of an account, encoded as the prefix of its id.
type AccountRole string

const (
	RoleSafe     AccountRole = "safe"         // cash on hand
	RoleBank     AccountRole = "acc-bank"     // savings
	RoleDeferred AccountRole = "acc-deferred" // debt ledger
)

var accountRoles = []AccountRole{RoleSafe, RoleBank, RoleDeferred}

// Prefix is the id prefix shared by all accounts of the role.
func (r AccountRole) Prefix() string {
	return string(r) + "-"
}

// HoldsCash reports whether balances of the role count as money the user has.
func (r AccountRole) HoldsCash() bool {
	return r == RoleSafe || r == RoleBank
}

// AccountID builds the stable id of the account with the given role and currency.
func AccountID(role AccountRole, c Currency) string {
	return role.Prefix() + c.Slug()
}

// ParseAccountID splits an account id into its role and currency.
func ParseAccountID(id string) (AccountRole, Currency, error) {
	for _, role := range accountRoles {
		rest, ok := strings.CutPrefix(id, role.Prefix())
		if !ok {
			continue
		}
		c, err := ParseCurrency(rest)
		if err != nil {
			return "", "", fmt.Errorf("account id %q: %w", id, err)
		}
		return role, c, nil
	}
	return "", "", fmt.Errorf("account id %q has no known role prefix", id)
}

// Account is a named container of transactions in a single currency.
type Account struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Currency     Currency      `json:"currency"`
	Transactions []Transaction `json:"transactions"` // newest first
}

// Role returns the role encoded in the account id. It is empty for ids without a known prefix.
func (a Account) Role() AccountRole {
	role, _, err := ParseAccountID(a.ID)
	if err != nil {
		return ""
	}
	return role
}

// Clone returns a deep copy of a.
func (a Account) Clone() Account {
	txns := make([]Transaction, len(a.Transactions))
	for i, t := range a.Transactions {
		txns[i] = t.Clone()
	}
	a.Transactions = txns
	return a
}

// CloneAccounts deep-copies a slice of accounts.
func CloneAccounts(accounts []Account) []Account {
	out := make([]Account, len(accounts))
	for i, a := range accounts {
		out[i] = a.Clone()
	}
	return out
}
