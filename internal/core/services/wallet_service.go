package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/SscSPs/smart_wallet/internal/apperrors"
	"github.com/SscSPs/smart_wallet/internal/core/domain"
	portsrepo "github.com/SscSPs/smart_wallet/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/smart_wallet/internal/core/ports/services"
	"github.com/SscSPs/smart_wallet/internal/utils/accounting"
	"github.com/SscSPs/smart_wallet/internal/utils/pagination"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// walletState is one consistent version of everything the wallet persists.
// It is never modified after it has been published.
type walletState struct {
	store    *domain.Store
	goals    []domain.Goal
	rates    domain.ExchangeRates
	settings domain.Settings
}

// walletService owns the wallet state. Writers are serialized and publish a new
// state only after it has been persisted; readers never block.
type walletService struct {
	BaseService
	kv       portsrepo.KeyValueStore
	ledger   portssvc.LedgerSvc
	goalSvc  portssvc.GoalSvc
	alerts   portssvc.AlertSvc
	sessions portssvc.SessionSvc
	validate *validator.Validate

	mu    sync.Mutex
	state atomic.Pointer[walletState]
}

// WalletDeps are the collaborators of the wallet service.
type WalletDeps struct {
	KeyValue portsrepo.KeyValueStore
	Ledger   portssvc.LedgerSvc
	Goals    portssvc.GoalSvc
	Alerts   portssvc.AlertSvc
	Sessions portssvc.SessionSvc
}

// NewWalletService creates the wallet service holding the default data.
// Call Load to replace it with the persisted state.
func NewWalletService(deps WalletDeps, opts ...BaseOption) portssvc.WalletSvcFacade {
	s := &walletService{
		BaseService: newBaseService(opts...),
		kv:          deps.KeyValue,
		ledger:      deps.Ledger,
		goalSvc:     deps.Goals,
		alerts:      deps.Alerts,
		sessions:    deps.Sessions,
		validate:    validator.New(),
	}
	store, _ := domain.NewStore(domain.DefaultAccounts())
	s.state.Store(&walletState{
		store:    store,
		goals:    []domain.Goal{},
		rates:    domain.DefaultExchangeRates(),
		settings: domain.DefaultSettings(),
	})
	return s
}

var _ portssvc.WalletSvcFacade = (*walletService)(nil)

var allStateKeys = []string{
	portsrepo.KeyAccounts,
	portsrepo.KeyExchangeRates,
	portsrepo.KeyGoals,
	portsrepo.KeySavingsThreshold,
	portsrepo.KeySavingsPercentage,
}

// Load implements portssvc.WalletSvcFacade. Keys that were never written get
// their default value, and the defaults are persisted so the next load sees them.
func (s *walletService) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := *s.state.Load()
	var missing []string
	for _, key := range allStateKeys {
		raw, err := s.kv.Load(ctx, key)
		if errors.Is(err, apperrors.ErrNotFound) {
			missing = append(missing, key)
			continue
		}
		if err != nil {
			s.LogError(ctx, err, "Failed to load wallet state", slog.String("key", key))
			return fmt.Errorf("failed to load %s: %w", key, err)
		}
		if err := decodeStateKey(&next, key, raw); err != nil {
			s.LogError(ctx, err, "Persisted wallet state is corrupt", slog.String("key", key))
			return err
		}
	}
	if err := next.settings.Validate(); err != nil {
		s.LogError(ctx, err, "Persisted wallet settings are out of range")
		return fmt.Errorf("invalid persisted settings: %w", err)
	}

	if len(missing) > 0 {
		entries, err := encodeState(next, missing...)
		if err != nil {
			return err
		}
		if err := s.kv.StoreBatch(ctx, entries); err != nil {
			s.LogError(ctx, err, "Failed to persist default wallet state")
			return fmt.Errorf("failed to persist defaults: %w", err)
		}
		s.LogInfo(ctx, "Initialized missing wallet keys with defaults", slog.Any("keys", missing))
	}
	s.state.Store(&next)
	return nil
}

func decodeStateKey(st *walletState, key string, raw []byte) error {
	switch key {
	case portsrepo.KeyAccounts:
		var accounts []domain.Account
		if err := json.Unmarshal(raw, &accounts); err != nil {
			return fmt.Errorf("failed to decode %s: %w", key, err)
		}
		store, err := domain.NewStore(accounts)
		if err != nil {
			return fmt.Errorf("invalid persisted accounts: %w", err)
		}
		st.store = store
	case portsrepo.KeyExchangeRates:
		var rates domain.ExchangeRates
		if err := json.Unmarshal(raw, &rates); err != nil {
			return fmt.Errorf("failed to decode %s: %w", key, err)
		}
		st.rates = mergeRates(domain.DefaultExchangeRates(), rates)
	case portsrepo.KeyGoals:
		var goals []domain.Goal
		if err := json.Unmarshal(raw, &goals); err != nil {
			return fmt.Errorf("failed to decode %s: %w", key, err)
		}
		if goals == nil {
			goals = []domain.Goal{}
		}
		st.goals = goals
	case portsrepo.KeySavingsThreshold:
		if err := json.Unmarshal(raw, &st.settings.SavingsThreshold); err != nil {
			return fmt.Errorf("failed to decode %s: %w", key, err)
		}
	case portsrepo.KeySavingsPercentage:
		if err := json.Unmarshal(raw, &st.settings.SavingsPercentage); err != nil {
			return fmt.Errorf("failed to decode %s: %w", key, err)
		}
	}
	return nil
}

func encodeState(st walletState, keys ...string) (map[string][]byte, error) {
	entries := make(map[string][]byte, len(keys))
	for _, key := range keys {
		var v any
		switch key {
		case portsrepo.KeyAccounts:
			v = st.store.Accounts()
		case portsrepo.KeyExchangeRates:
			v = st.rates
		case portsrepo.KeyGoals:
			v = st.goals
		case portsrepo.KeySavingsThreshold:
			v = st.settings.SavingsThreshold
		case portsrepo.KeySavingsPercentage:
			v = st.settings.SavingsPercentage
		default:
			return nil, fmt.Errorf("unknown wallet key %q", key)
		}
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s: %w", key, err)
		}
		entries[key] = raw
	}
	return entries, nil
}

// mergeRates overlays the valid positive entries of update onto base. The base currency always stays at 1.
func mergeRates(base, update domain.ExchangeRates) domain.ExchangeRates {
	out := base.Clone()
	for c, r := range update {
		if c.Valid() && r.IsPositive() {
			out[c] = r
		}
	}
	out[domain.BaseCurrency] = decimal.NewFromInt(1)
	return out
}

// mutate runs fn against the current state and, when it succeeds, persists the
// returned keys and publishes the new state. A failed write publishes nothing.
func (s *walletService) mutate(ctx context.Context, op string, fn func(walletState) (walletState, []string, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, keys, err := fn(*s.state.Load())
	if err != nil {
		s.LogWarn(ctx, err, "Wallet operation rejected", slog.String("operation", op))
		return err
	}
	entries, err := encodeState(next, keys...)
	if err != nil {
		return err
	}
	if err := s.kv.StoreBatch(ctx, entries); err != nil {
		s.LogError(ctx, err, "Failed to persist wallet state", slog.String("operation", op))
		return fmt.Errorf("failed to persist %s: %w", op, err)
	}
	s.state.Store(&next)
	s.LogInfo(ctx, "Wallet operation applied", slog.String("operation", op))
	return nil
}

func (s *walletService) mutateStore(ctx context.Context, op string, fn func(*domain.Store) (*domain.Store, error)) error {
	return s.mutate(ctx, op, func(st walletState) (walletState, []string, error) {
		store, err := fn(st.store)
		if err != nil {
			return st, nil, err
		}
		st.store = store
		return st, []string{portsrepo.KeyAccounts}, nil
	})
}

func (s *walletService) UpsertTransaction(ctx context.Context, in domain.TransactionInput) error {
	op := "create_transaction"
	if in.ID != "" {
		op = "update_transaction"
	}
	return s.mutateStore(ctx, op, func(store *domain.Store) (*domain.Store, error) {
		return s.ledger.UpsertTransaction(store, in)
	})
}

func (s *walletService) DeleteTransaction(ctx context.Context, id string) error {
	return s.mutateStore(ctx, "delete_transaction", func(store *domain.Store) (*domain.Store, error) {
		return s.ledger.DeleteTransaction(store, id)
	})
}

func (s *walletService) SettleDebt(ctx context.Context, debtID string, amountPaid decimal.Decimal, targetAccountID string) error {
	return s.mutateStore(ctx, "settle_debt", func(store *domain.Store) (*domain.Store, error) {
		return s.ledger.SettleDebt(store, debtID, amountPaid, targetAccountID)
	})
}

func (s *walletService) ExchangeCurrencies(ctx context.Context, in domain.ExchangeInput) error {
	return s.mutateStore(ctx, "exchange_currencies", func(store *domain.Store) (*domain.Store, error) {
		return s.ledger.ExchangeCurrencies(store, in)
	})
}

// TransferToSavings implements portssvc.WalletWriterSvc.
func (s *walletService) TransferToSavings(ctx context.Context, sessionID string, amount decimal.Decimal, c domain.Currency) error {
	if _, err := s.sessions.Get(sessionID); err != nil {
		return err
	}
	now := s.now()
	in := domain.TransactionInput{
		Amount:        amount,
		Currency:      c,
		Type:          domain.Transfer,
		Description:   domain.SavingsTransferDescription,
		Date:          time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
		FromAccountID: domain.AccountID(domain.RoleSafe, c),
		ToAccountID:   domain.AccountID(domain.RoleBank, c),
	}
	if err := s.mutateStore(ctx, "transfer_to_savings", func(store *domain.Store) (*domain.Store, error) {
		return s.ledger.UpsertTransaction(store, in)
	}); err != nil {
		return err
	}
	return s.sessions.DismissSavings(sessionID)
}

func (s *walletService) CreateGoal(ctx context.Context, in domain.GoalInput) (domain.Goal, error) {
	var created domain.Goal
	err := s.mutate(ctx, "create_goal", func(st walletState) (walletState, []string, error) {
		goals, g, err := s.goalSvc.CreateGoal(st.goals, in)
		if err != nil {
			return st, nil, err
		}
		st.goals, created = goals, g
		return st, []string{portsrepo.KeyGoals}, nil
	})
	return created, err
}

func (s *walletService) UpdateGoal(ctx context.Context, in domain.GoalInput) (domain.Goal, error) {
	var updated domain.Goal
	err := s.mutate(ctx, "update_goal", func(st walletState) (walletState, []string, error) {
		goals, g, err := s.goalSvc.UpdateGoal(st.goals, in)
		if err != nil {
			return st, nil, err
		}
		st.goals, updated = goals, g
		return st, []string{portsrepo.KeyGoals}, nil
	})
	return updated, err
}

func (s *walletService) DeleteGoal(ctx context.Context, id string) error {
	return s.mutate(ctx, "delete_goal", func(st walletState) (walletState, []string, error) {
		goals, err := s.goalSvc.DeleteGoal(st.goals, id)
		if err != nil {
			return st, nil, err
		}
		st.goals = goals
		return st, []string{portsrepo.KeyGoals}, nil
	})
}

// UpdateSettings implements portssvc.WalletWriterSvc. Rates of currencies left
// out of rates keep their current value.
func (s *walletService) UpdateSettings(ctx context.Context, settings domain.Settings, rates domain.ExchangeRates) error {
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	for c, r := range rates {
		if !c.Valid() {
			return fmt.Errorf("%w: unsupported currency %q", apperrors.ErrValidation, c)
		}
		if c != domain.BaseCurrency && !r.IsPositive() {
			return fmt.Errorf("%w: exchange rate of %s must be positive", apperrors.ErrValidation, c)
		}
	}
	return s.mutate(ctx, "update_settings", func(st walletState) (walletState, []string, error) {
		st.settings = settings
		st.rates = mergeRates(st.rates, rates)
		return st, []string{portsrepo.KeySavingsThreshold, portsrepo.KeySavingsPercentage, portsrepo.KeyExchangeRates}, nil
	})
}

// Backup implements portssvc.BackupSvc.
func (s *walletService) Backup(_ context.Context) (domain.Backup, error) {
	st := s.state.Load()
	return domain.Backup{
		Accounts:          st.store.Accounts(),
		Goals:             domain.CloneGoals(st.goals),
		SavingsThreshold:  st.settings.SavingsThreshold,
		SavingsPercentage: st.settings.SavingsPercentage,
		ExchangeRates:     st.rates.Clone(),
	}, nil
}

// Restore implements portssvc.BackupSvc. All five keys are replaced in one write.
func (s *walletService) Restore(ctx context.Context, doc domain.Backup) error {
	if err := s.validate.Struct(doc); err != nil {
		s.LogWarn(ctx, err, "Rejected backup document")
		return fmt.Errorf("%w: %v", apperrors.ErrMalformedBackup, err)
	}
	store, err := domain.NewStore(doc.Accounts)
	if err != nil {
		s.LogWarn(ctx, err, "Rejected backup document")
		return fmt.Errorf("%w: %v", apperrors.ErrMalformedBackup, err)
	}
	return s.mutate(ctx, "restore_backup", func(walletState) (walletState, []string, error) {
		next := walletState{
			store: store,
			goals: domain.CloneGoals(doc.Goals),
			rates: mergeRates(domain.DefaultExchangeRates(), doc.ExchangeRates),
			settings: domain.Settings{
				SavingsThreshold:  doc.SavingsThreshold,
				SavingsPercentage: doc.SavingsPercentage,
			},
		}
		return next, allStateKeys, nil
	})
}

// view returns the current state with the session's projection of it.
type view struct {
	state    *walletState
	session  portssvc.Session
	accounts []domain.Account
	goals    []domain.Goal
}

func (s *walletService) view(sessionID string) (view, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return view{}, err
	}
	st := s.state.Load()
	accounts, goals := ProjectDecoy(st.store.Accounts(), st.goals, sess.Decoy)
	return view{state: st, session: sess, accounts: accounts, goals: goals}, nil
}

func (v view) account(id string) (domain.Account, error) {
	for _, a := range v.accounts {
		if a.ID == id {
			return a, nil
		}
	}
	return domain.Account{}, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, id)
}

func (s *walletService) ListAccounts(_ context.Context, sessionID string) ([]domain.Account, error) {
	v, err := s.view(sessionID)
	if err != nil {
		return nil, err
	}
	return v.accounts, nil
}

func (s *walletService) GetAccount(_ context.Context, sessionID, accountID string) (domain.Account, error) {
	v, err := s.view(sessionID)
	if err != nil {
		return domain.Account{}, err
	}
	return v.account(accountID)
}

func (s *walletService) ListTransactions(_ context.Context, sessionID, accountID string, filter domain.TransactionFilter, limit int, pageToken string) ([]domain.Transaction, string, error) {
	v, err := s.view(sessionID)
	if err != nil {
		return nil, "", err
	}
	acc, err := v.account(accountID)
	if err != nil {
		return nil, "", err
	}
	txns, next, err := pagination.Page(accounting.FilterTransactions(acc.Transactions, filter), limit, pageToken)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	return txns, next, nil
}

func (s *walletService) GetSummary(_ context.Context, sessionID string) (domain.Summary, error) {
	v, err := s.view(sessionID)
	if err != nil {
		return domain.Summary{}, err
	}
	return accounting.ComputeSummary(v.accounts, v.state.rates), nil
}

func (s *walletService) ListByType(_ context.Context, sessionID string, typ domain.TransactionType) ([]domain.LocatedTransaction, error) {
	// transfers are stored as expense/income legs
	if !typ.Valid() || typ == domain.Transfer {
		return nil, fmt.Errorf("%w: unsupported transaction type %q", apperrors.ErrValidation, typ)
	}
	v, err := s.view(sessionID)
	if err != nil {
		return nil, err
	}
	return accounting.TransactionsByType(v.accounts, typ), nil
}

func (s *walletService) ListDebts(_ context.Context, sessionID string) ([]domain.DebtStatus, error) {
	v, err := s.view(sessionID)
	if err != nil {
		return nil, err
	}
	return accounting.DebtStatuses(v.accounts), nil
}

// GetAlerts implements portssvc.WalletReaderSvc. Alerts are evaluated on real
// figures; only the amounts they show are projected.
func (s *walletService) GetAlerts(_ context.Context, sessionID string) (domain.Alerts, error) {
	v, err := s.view(sessionID)
	if err != nil {
		return domain.Alerts{}, err
	}
	st := v.state
	alerts := s.alerts.Evaluate(st.store.Accounts(), st.goals, st.rates, st.settings, v.session.Dismissals)

	decoy := v.session.Decoy
	alerts.Savings.SuggestedAmount = projectAmount(alerts.Savings.SuggestedAmount, decoy)
	for i := range alerts.Goals {
		alerts.Goals[i].MonthlyContribution = projectAmount(alerts.Goals[i].MonthlyContribution, decoy)
		alerts.Goals[i].Goal.TargetAmount = projectAmount(alerts.Goals[i].Goal.TargetAmount, decoy)
	}
	return alerts, nil
}

func (s *walletService) ListGoals(_ context.Context, sessionID string) ([]domain.Goal, error) {
	v, err := s.view(sessionID)
	if err != nil {
		return nil, err
	}
	if v.goals == nil {
		return []domain.Goal{}, nil
	}
	return v.goals, nil
}

func (s *walletService) GetSettings(_ context.Context) (domain.Settings, domain.ExchangeRates) {
	st := s.state.Load()
	return st.settings, st.rates.Clone()
}

// QuoteExchange implements portssvc.WalletReaderSvc. A zero rate is replaced by the suggested one.
func (s *walletService) QuoteExchange(_ context.Context, amount decimal.Decimal, from, to domain.Currency, rate decimal.Decimal) (decimal.Decimal, decimal.Decimal) {
	suggested := accounting.SuggestedRate(from, to, s.state.Load().rates)
	if !rate.IsPositive() {
		rate = suggested
	}
	if !amount.IsPositive() || !rate.IsPositive() {
		return suggested, decimal.Zero
	}
	return suggested, accounting.QuoteAmount(amount, from, rate)
}

// BuildStatement implements portssvc.WalletReaderSvc. The rows are what the session currently sees.
func (s *walletService) BuildStatement(_ context.Context, sessionID, accountID string, filter domain.TransactionFilter) (domain.Statement, error) {
	v, err := s.view(sessionID)
	if err != nil {
		return domain.Statement{}, err
	}
	acc, err := v.account(accountID)
	if err != nil {
		return domain.Statement{}, err
	}
	txns := accounting.FilterTransactions(acc.Transactions, filter)
	stmt := domain.Statement{AccountName: acc.Name, Rows: make([]domain.StatementRow, 0, len(txns))}
	for _, t := range txns {
		stmt.Rows = append(stmt.Rows, domain.StatementRow{
			Date:           t.Date,
			Description:    t.Description,
			TypeLabel:      t.Type.Label(),
			Amount:         t.Amount,
			Currency:       t.Currency,
			CurrencySymbol: t.Currency.Details().Symbol,
		})
	}
	return stmt, nil
}
