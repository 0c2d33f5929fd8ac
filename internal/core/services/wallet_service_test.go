package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/SscSPs/smart_wallet/internal/apperrors"
	"github.com/SscSPs/smart_wallet/internal/core/domain"
	portsrepo "github.com/SscSPs/smart_wallet/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/smart_wallet/internal/core/ports/services"
	"github.com/SscSPs/smart_wallet/internal/core/services"
	"github.com/SscSPs/smart_wallet/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type WalletServiceTestSuite struct {
	suite.Suite
	ctx      context.Context
	kv       *MockKeyValueStore
	sessions portssvc.SessionSvc
	wallet   portssvc.WalletSvcFacade
	session  portssvc.Session
}

func (suite *WalletServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.kv = new(MockKeyValueStore)
	opts := testOptions()
	suite.sessions = services.NewSessionService(0, opts...)
	goals := services.NewGoalService(opts...)
	suite.wallet = services.NewWalletService(services.WalletDeps{
		KeyValue: suite.kv,
		Ledger:   services.NewLedgerService(opts...),
		Goals:    goals,
		Alerts:   services.NewAlertService(goals, opts...),
		Sessions: suite.sessions,
	}, opts...)
	suite.session = suite.sessions.Start()
}

func (suite *WalletServiceTestSuite) TearDownTest() {
	suite.kv.AssertExpectations(suite.T())
}

func (suite *WalletServiceTestSuite) reveal() {
	_, err := suite.sessions.SetDecoy(suite.session.ID, false)
	suite.Require().NoError(err)
}

func (suite *WalletServiceTestSuite) balance(accountID string) decimal.Decimal {
	acc, err := suite.wallet.GetAccount(suite.ctx, suite.session.ID, accountID)
	suite.Require().NoError(err)
	return accounting.Balance(acc.Transactions)
}

func mustJSON(v any) []byte {
	raw, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return raw
}

// --- Load ---

func (suite *WalletServiceTestSuite) TestLoad_EmptyStorePersistsDefaults() {
	suite.kv.On("Load", suite.ctx, mock.AnythingOfType("string")).Return(nil, apperrors.ErrNotFound).Times(5)
	suite.kv.On("StoreBatch", suite.ctx, hasKeys(
		portsrepo.KeyAccounts, portsrepo.KeyExchangeRates, portsrepo.KeyGoals,
		portsrepo.KeySavingsThreshold, portsrepo.KeySavingsPercentage,
	)).Return(nil).Once()

	suite.Require().NoError(suite.wallet.Load(suite.ctx))

	settings, rates := suite.wallet.GetSettings(suite.ctx)
	suite.Equal(domain.DefaultSettings(), settings)
	suite.True(rates.Rate(domain.USD).Equal(dec(550)))
}

func (suite *WalletServiceTestSuite) TestLoad_ReadsPersistedState() {
	accounts := []domain.Account{
		{ID: "safe-yer", Name: "صندوق", Currency: domain.YER, Transactions: []domain.Transaction{
			{ID: "t1", Amount: dec(900), Currency: domain.YER, Type: domain.Income, Description: "x", Date: day("2024-05-01")},
		}},
	}
	suite.kv.On("Load", suite.ctx, portsrepo.KeyAccounts).Return(mustJSON(accounts), nil).Once()
	suite.kv.On("Load", suite.ctx, portsrepo.KeyExchangeRates).Return([]byte(`{"YER":3,"USD":600}`), nil).Once()
	suite.kv.On("Load", suite.ctx, portsrepo.KeyGoals).Return([]byte(`[]`), nil).Once()
	suite.kv.On("Load", suite.ctx, portsrepo.KeySavingsThreshold).Return([]byte(`5000`), nil).Once()
	suite.kv.On("Load", suite.ctx, portsrepo.KeySavingsPercentage).Return([]byte(`20`), nil).Once()

	suite.Require().NoError(suite.wallet.Load(suite.ctx))

	settings, rates := suite.wallet.GetSettings(suite.ctx)
	suite.Equal(domain.Settings{SavingsThreshold: 5000, SavingsPercentage: 20}, settings)
	suite.True(rates.Rate(domain.USD).Equal(dec(600)))
	suite.True(rates.Rate(domain.SAR).Equal(dec(140)), "missing rates fall back to defaults")
	suite.True(rates.Rate(domain.YER).Equal(dec(1)), "base currency is pinned")

	listed, err := suite.wallet.ListAccounts(suite.ctx, suite.session.ID)
	suite.Require().NoError(err)
	suite.Len(listed, 1)
}

func (suite *WalletServiceTestSuite) TestLoad_CorruptAccounts() {
	suite.kv.On("Load", suite.ctx, portsrepo.KeyAccounts).Return([]byte(`[{"id":"wallet-yer","currency":"YER"}]`), nil).Once()

	suite.Error(suite.wallet.Load(suite.ctx))
}

func (suite *WalletServiceTestSuite) TestLoad_SettingsOutOfRange() {
	suite.kv.On("Load", suite.ctx, portsrepo.KeySavingsPercentage).Return([]byte(`500`), nil).Once()
	suite.kv.On("Load", suite.ctx, mock.AnythingOfType("string")).Return(nil, apperrors.ErrNotFound).Times(4)

	suite.Error(suite.wallet.Load(suite.ctx))
	settings, _ := suite.wallet.GetSettings(suite.ctx)
	suite.Equal(domain.DefaultSettings(), settings)
}

func (suite *WalletServiceTestSuite) TestLoad_StorageFailure() {
	boom := errors.New("disk on fire")
	suite.kv.On("Load", suite.ctx, portsrepo.KeyAccounts).Return(nil, boom).Once()

	suite.ErrorIs(suite.wallet.Load(suite.ctx), boom)
}

// --- Mutations ---

func (suite *WalletServiceTestSuite) TestSettleDebt_PersistsAccounts() {
	suite.kv.On("StoreBatch", suite.ctx, hasKeys(portsrepo.KeyAccounts)).Return(nil).Once()
	suite.reveal()

	suite.Require().NoError(suite.wallet.SettleDebt(suite.ctx, "trans-2", dec(20000), "safe-yer"))

	suite.True(suite.balance("safe-yer").Equal(dec(263000)))
	debts, err := suite.wallet.ListDebts(suite.ctx, suite.session.ID)
	suite.Require().NoError(err)
	for _, d := range debts {
		if d.Debt.ID == "trans-2" {
			suite.True(d.Remaining.Equal(dec(5000)))
			suite.Len(d.SettlementIDs, 2)
		}
	}
}

func (suite *WalletServiceTestSuite) TestPersistFailure_LeavesStateUntouched() {
	suite.kv.On("StoreBatch", suite.ctx, mock.Anything).Return(errors.New("write failed")).Once()
	suite.reveal()

	err := suite.wallet.DeleteTransaction(suite.ctx, "trans-4")
	suite.Error(err)

	suite.True(suite.balance("safe-yer").Equal(dec(283000)))
}

func (suite *WalletServiceTestSuite) TestRejectedOperation_DoesNotPersist() {
	err := suite.wallet.UpsertTransaction(suite.ctx, domain.TransactionInput{
		Amount: dec(1), Currency: domain.YER, Type: domain.Expense, Description: "x", Date: day("2024-05-31"),
	})
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.kv.AssertNotCalled(suite.T(), "StoreBatch", mock.Anything, mock.Anything)
}

func (suite *WalletServiceTestSuite) TestTransferToSavings_DismissesAlert() {
	suite.kv.On("StoreBatch", suite.ctx, hasKeys(portsrepo.KeyAccounts)).Return(nil).Once()
	suite.reveal()

	suite.Require().NoError(suite.wallet.TransferToSavings(suite.ctx, suite.session.ID, dec(3000), domain.YER))

	suite.True(suite.balance("safe-yer").Equal(dec(280000)))
	suite.True(suite.balance("acc-bank-yer").Equal(dec(503000)))
	alerts, err := suite.wallet.GetAlerts(suite.ctx, suite.session.ID)
	suite.Require().NoError(err)
	suite.False(alerts.Savings.Active)

	bank, _ := suite.wallet.GetAccount(suite.ctx, suite.session.ID, "acc-bank-yer")
	suite.Contains(bank.Transactions[0].Description, domain.SavingsTransferDescription)
}

func (suite *WalletServiceTestSuite) TestGoals_PersistGoalsKey() {
	suite.kv.On("StoreBatch", suite.ctx, hasKeys(portsrepo.KeyGoals)).Return(nil).Times(3)

	goal, err := suite.wallet.CreateGoal(suite.ctx, domain.GoalInput{Description: "حج", TargetAmount: dec(1200), TargetDate: day("2025-06-01")})
	suite.Require().NoError(err)
	_, err = suite.wallet.UpdateGoal(suite.ctx, domain.GoalInput{ID: goal.ID, Description: "حج", TargetAmount: dec(2400), TargetDate: day("2025-06-01")})
	suite.Require().NoError(err)

	goals, err := suite.wallet.ListGoals(suite.ctx, suite.session.ID)
	suite.Require().NoError(err)
	suite.Require().Len(goals, 1)
	suite.True(goals[0].TargetAmount.Equal(dec(480)), "decoy shows a fifth")

	suite.Require().NoError(suite.wallet.DeleteGoal(suite.ctx, goal.ID))
	goals, _ = suite.wallet.ListGoals(suite.ctx, suite.session.ID)
	suite.NotNil(goals)
	suite.Empty(goals)
}

func (suite *WalletServiceTestSuite) TestUpdateSettings() {
	suite.ErrorIs(suite.wallet.UpdateSettings(suite.ctx, domain.Settings{SavingsThreshold: -1, SavingsPercentage: 10}, nil), apperrors.ErrValidation)
	suite.ErrorIs(suite.wallet.UpdateSettings(suite.ctx, domain.Settings{SavingsPercentage: 101}, nil), apperrors.ErrValidation)
	suite.ErrorIs(suite.wallet.UpdateSettings(suite.ctx, domain.Settings{SavingsPercentage: 10},
		domain.ExchangeRates{domain.USD: decimal.Zero}), apperrors.ErrValidation)

	suite.kv.On("StoreBatch", suite.ctx, hasKeys(
		portsrepo.KeySavingsThreshold, portsrepo.KeySavingsPercentage, portsrepo.KeyExchangeRates,
	)).Return(nil).Once()

	err := suite.wallet.UpdateSettings(suite.ctx, domain.Settings{SavingsThreshold: 0, SavingsPercentage: 100},
		domain.ExchangeRates{domain.USD: dec(530), domain.YER: dec(7)})
	suite.Require().NoError(err)

	settings, rates := suite.wallet.GetSettings(suite.ctx)
	suite.Equal(int64(100), settings.SavingsPercentage)
	suite.True(rates.Rate(domain.USD).Equal(dec(530)))
	suite.True(rates.Rate(domain.SAR).Equal(dec(140)))
	suite.True(rates.Rate(domain.YER).Equal(dec(1)))
}

// --- Reads ---

func (suite *WalletServiceTestSuite) TestReads_RequireOpenSession() {
	_, err := suite.wallet.GetSummary(suite.ctx, "sess-unknown")
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	_, err = suite.wallet.GetAccount(suite.ctx, suite.session.ID, "safe-eur")
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *WalletServiceTestSuite) TestSummary_FollowsDecoyMode() {
	decoyed, err := suite.wallet.GetSummary(suite.ctx, suite.session.ID)
	suite.Require().NoError(err)
	suite.True(decoyed.TotalIncome.Equal(dec(188000)), "got %s", decoyed.TotalIncome)

	suite.reveal()
	real, err := suite.wallet.GetSummary(suite.ctx, suite.session.ID)
	suite.Require().NoError(err)
	suite.True(real.TotalIncome.Equal(dec(940000)))
	suite.True(real.NetBalance.Equal(dec(1170500)))
	suite.True(decoyed.NetBalance.Equal(real.NetBalance.Mul(services.DecoyFactor)))
}

func (suite *WalletServiceTestSuite) TestAlerts_RealEvaluationDisplayedProjected() {
	alerts, err := suite.wallet.GetAlerts(suite.ctx, suite.session.ID)
	suite.Require().NoError(err)
	suite.True(alerts.Savings.Active)
	suite.True(alerts.Savings.SuggestedAmount.Equal(dec(35115)), "got %s", alerts.Savings.SuggestedAmount)
	suite.True(alerts.Debt.Active)

	suite.reveal()
	alerts, err = suite.wallet.GetAlerts(suite.ctx, suite.session.ID)
	suite.Require().NoError(err)
	suite.True(alerts.Savings.SuggestedAmount.Equal(dec(175575)))
}

func (suite *WalletServiceTestSuite) TestListTransactions_FiltersAndPages() {
	suite.reveal()

	page, next, err := suite.wallet.ListTransactions(suite.ctx, suite.session.ID, "safe-yer", domain.TransactionFilter{}, 2, "")
	suite.Require().NoError(err)
	suite.Len(page, 2)
	suite.Require().NotEmpty(next)

	page, next, err = suite.wallet.ListTransactions(suite.ctx, suite.session.ID, "safe-yer", domain.TransactionFilter{}, 2, next)
	suite.Require().NoError(err)
	suite.Require().Len(page, 1)
	suite.Equal("trans-4", page[0].ID)
	suite.Empty(next)

	page, _, err = suite.wallet.ListTransactions(suite.ctx, suite.session.ID, "safe-yer",
		domain.TransactionFilter{Type: domain.Expense, Text: "قهوة"}, 0, "")
	suite.Require().NoError(err)
	suite.Require().Len(page, 1)
	suite.Equal("trans-6", page[0].ID)

	_, _, err = suite.wallet.ListTransactions(suite.ctx, suite.session.ID, "safe-yer", domain.TransactionFilter{}, 2, "%%%")
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *WalletServiceTestSuite) TestListByType_SkipsTransferLegs() {
	suite.kv.On("StoreBatch", suite.ctx, mock.Anything).Return(nil).Once()
	suite.reveal()
	suite.Require().NoError(suite.wallet.TransferToSavings(suite.ctx, suite.session.ID, dec(1000), domain.YER))

	incomes, err := suite.wallet.ListByType(suite.ctx, suite.session.ID, domain.Income)
	suite.Require().NoError(err)
	suite.Len(incomes, 3)
	for _, lt := range incomes {
		suite.NotEmpty(lt.AccountName)
	}

	_, err = suite.wallet.ListByType(suite.ctx, suite.session.ID, "BOGUS")
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *WalletServiceTestSuite) TestQuoteExchange() {
	rate, amount := suite.wallet.QuoteExchange(suite.ctx, dec(10000), domain.YER, domain.USD, decimal.Zero)
	suite.True(rate.Equal(dec(550)))
	suite.True(amount.Equal(decimal.RequireFromString("18.18")), "got %s", amount)

	rate, amount = suite.wallet.QuoteExchange(suite.ctx, dec(100), domain.USD, domain.SAR, dec(4))
	suite.True(rate.Equal(decimal.RequireFromString("3.9286")))
	suite.True(amount.Equal(dec(400)), "the entered rate wins")
}

func (suite *WalletServiceTestSuite) TestBuildStatement() {
	suite.reveal()
	stmt, err := suite.wallet.BuildStatement(suite.ctx, suite.session.ID, "safe-usd", domain.TransactionFilter{})
	suite.Require().NoError(err)

	suite.Equal("الصندوق المنزلي ($)", stmt.AccountName)
	suite.Require().Len(stmt.Rows, 2)
	suite.Equal("$", stmt.Rows[0].CurrencySymbol)
	suite.Equal(domain.Expense.Label(), stmt.Rows[0].TypeLabel)
	suite.True(stmt.Rows[0].Amount.Equal(dec(50)))
}

// --- Backup ---

func (suite *WalletServiceTestSuite) TestBackupRestore() {
	doc, err := suite.wallet.Backup(suite.ctx)
	suite.Require().NoError(err)
	suite.Len(doc.Accounts, 9)
	suite.NotNil(doc.Goals)
	suite.Equal(int64(15), doc.SavingsPercentage)

	broken := doc
	broken.Goals = nil
	suite.ErrorIs(suite.wallet.Restore(suite.ctx, broken), apperrors.ErrMalformedBackup)
	broken = doc
	broken.SavingsThreshold = 0
	suite.ErrorIs(suite.wallet.Restore(suite.ctx, broken), apperrors.ErrMalformedBackup)
	broken = doc
	broken.Accounts = []domain.Account{{ID: "wallet-yer", Currency: domain.YER}}
	suite.ErrorIs(suite.wallet.Restore(suite.ctx, broken), apperrors.ErrMalformedBackup)

	suite.kv.On("StoreBatch", suite.ctx, hasKeys(
		portsrepo.KeyAccounts, portsrepo.KeyExchangeRates, portsrepo.KeyGoals,
		portsrepo.KeySavingsThreshold, portsrepo.KeySavingsPercentage,
	)).Return(nil).Once()

	restored := doc
	restored.Accounts = doc.Accounts[3:4]
	restored.SavingsThreshold = 42
	suite.Require().NoError(suite.wallet.Restore(suite.ctx, restored))

	settings, _ := suite.wallet.GetSettings(suite.ctx)
	suite.Equal(int64(42), settings.SavingsThreshold)
	accounts, err := suite.wallet.ListAccounts(suite.ctx, suite.session.ID)
	suite.Require().NoError(err)
	suite.Len(accounts, 1)
}

func (suite *WalletServiceTestSuite) TestRestore_RejectsInvalidRecords() {
	suite.reveal()
	doc, err := suite.wallet.Backup(suite.ctx)
	suite.Require().NoError(err)

	withRecord := func(t domain.Transaction) domain.Backup {
		broken := doc
		broken.Accounts = domain.CloneAccounts(doc.Accounts)
		for i := range broken.Accounts {
			if broken.Accounts[i].ID == "safe-yer" {
				broken.Accounts[i].Transactions = append(broken.Accounts[i].Transactions, t)
			}
		}
		return broken
	}
	record := func(amount int64, c domain.Currency, typ domain.TransactionType) domain.Transaction {
		return domain.Transaction{ID: "t-new", Amount: dec(amount), Currency: c, Type: typ, Description: "x", Date: day("2024-06-01")}
	}

	cases := map[string]domain.Backup{
		"negative amount":      withRecord(record(-5000, domain.YER, domain.Expense)),
		"unknown type":         withRecord(record(100, domain.YER, "BOGUS")),
		"foreign income":       withRecord(record(100, domain.SAR, domain.Income)),
		"percentage above 100": func() domain.Backup { b := doc; b.SavingsPercentage = 500; return b }(),
		"negative threshold":   func() domain.Backup { b := doc; b.SavingsThreshold = -1; return b }(),
	}
	for name, broken := range cases {
		suite.Run(name, func() {
			suite.ErrorIs(suite.wallet.Restore(suite.ctx, broken), apperrors.ErrMalformedBackup)
		})
	}

	settings, _ := suite.wallet.GetSettings(suite.ctx)
	suite.Equal(domain.DefaultSettings(), settings)
	suite.True(suite.balance("safe-yer").Equal(dec(283000)))
}

func TestWalletServiceTestSuite(t *testing.T) {
	suite.Run(t, new(WalletServiceTestSuite))
}
