package services_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"testing"
	"time"

	"github.com/SscSPs/smart_wallet/internal/apperrors"
	"github.com/SscSPs/smart_wallet/internal/core/domain"
	portsrepo "github.com/SscSPs/smart_wallet/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/smart_wallet/internal/core/ports/services"
	"github.com/SscSPs/smart_wallet/internal/core/services"
	"github.com/SscSPs/smart_wallet/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type AuthServiceTestSuite struct {
	suite.Suite
	ctx      context.Context
	kv       *MockKeyValueStore
	sessions portssvc.SessionSvc
	auth     portssvc.AuthSvc
}

func (suite *AuthServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.kv = new(MockKeyValueStore)
	suite.sessions = services.NewSessionService(time.Hour)
	suite.auth = services.NewAuthService(suite.kv, suite.sessions, services.TokenConfig{
		Secret: "test-secret",
		Expiry: time.Hour,
		Issuer: "smart-wallet-test",
	})
}

func (suite *AuthServiceTestSuite) TearDownTest() {
	suite.kv.AssertExpectations(suite.T())
}

func (suite *AuthServiceTestSuite) storedHash(password string) []byte {
	hash, err := utils.HashPassword(password)
	suite.Require().NoError(err)
	return []byte(hash)
}

func (suite *AuthServiceTestSuite) TestSetup_FirstPassword() {
	suite.kv.On("Load", suite.ctx, portsrepo.KeyPasswordHash).Return(nil, apperrors.ErrNotFound).Twice()
	suite.kv.On("Store", suite.ctx, portsrepo.KeyPasswordHash, mock.MatchedBy(func(v []byte) bool {
		match, legacy := utils.CheckPasswordHash("1234", string(v))
		return match && !legacy
	})).Return(nil).Once()

	configured, err := suite.auth.IsConfigured(suite.ctx)
	suite.Require().NoError(err)
	suite.False(configured)

	token, err := suite.auth.Setup(suite.ctx, "1234")
	suite.Require().NoError(err)

	sessionID, err := suite.auth.ValidateToken(token)
	suite.Require().NoError(err)
	sess, err := suite.sessions.Get(sessionID)
	suite.Require().NoError(err)
	suite.True(sess.Decoy)
}

func (suite *AuthServiceTestSuite) TestSetup_Rejections() {
	_, err := suite.auth.Setup(suite.ctx, "123")
	suite.ErrorIs(err, apperrors.ErrValidation)

	suite.kv.On("Load", suite.ctx, portsrepo.KeyPasswordHash).Return(suite.storedHash("1234"), nil).Once()
	_, err = suite.auth.Setup(suite.ctx, "5678")
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *AuthServiceTestSuite) TestUnlock() {
	suite.kv.On("Load", suite.ctx, portsrepo.KeyPasswordHash).Return(suite.storedHash("secret"), nil).Times(3)

	_, err := suite.auth.Unlock(suite.ctx, "wrong")
	suite.ErrorIs(err, apperrors.ErrUnauthorized)

	first, err := suite.auth.Unlock(suite.ctx, "secret")
	suite.Require().NoError(err)
	second, err := suite.auth.Unlock(suite.ctx, "secret")
	suite.Require().NoError(err)

	firstID, err := suite.auth.ValidateToken(first)
	suite.Require().NoError(err)
	secondID, err := suite.auth.ValidateToken(second)
	suite.Require().NoError(err)
	suite.NotEqual(firstID, secondID, "every unlock starts a fresh session")
}

func (suite *AuthServiceTestSuite) TestUnlock_NotConfigured() {
	suite.kv.On("Load", suite.ctx, portsrepo.KeyPasswordHash).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.auth.Unlock(suite.ctx, "secret")
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *AuthServiceTestSuite) TestUnlock_UpgradesLegacyDigest() {
	sum := sha256.Sum256([]byte("secret"))
	suite.kv.On("Load", suite.ctx, portsrepo.KeyPasswordHash).Return([]byte(hex.EncodeToString(sum[:])), nil).Once()
	suite.kv.On("Store", suite.ctx, portsrepo.KeyPasswordHash, mock.MatchedBy(func(v []byte) bool {
		match, legacy := utils.CheckPasswordHash("secret", string(v))
		return match && !legacy
	})).Return(nil).Once()

	_, err := suite.auth.Unlock(suite.ctx, "secret")
	suite.NoError(err)
}

func (suite *AuthServiceTestSuite) TestLock_InvalidatesToken() {
	suite.kv.On("Load", suite.ctx, portsrepo.KeyPasswordHash).Return(suite.storedHash("secret"), nil).Once()
	token, err := suite.auth.Unlock(suite.ctx, "secret")
	suite.Require().NoError(err)
	sessionID, err := suite.auth.ValidateToken(token)
	suite.Require().NoError(err)

	suite.auth.Lock(suite.ctx, sessionID)

	_, err = suite.auth.ValidateToken(token)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	_, err = suite.auth.ValidateToken("not-a-token")
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}

func TestExportService(t *testing.T) {
	ctx := context.Background()
	sessions := services.NewSessionService(0)
	sess := sessions.Start()
	_, err := sessions.SetDecoy(sess.ID, false)
	require.NoError(t, err)
	wallet := services.NewWalletService(services.WalletDeps{
		KeyValue: new(MockKeyValueStore),
		Ledger:   services.NewLedgerService(),
		Goals:    services.NewGoalService(),
		Alerts:   services.NewAlertService(services.NewGoalService()),
		Sessions: sessions,
	})

	disabled := services.NewExportService(wallet, nil)
	assert.False(t, disabled.Enabled())
	_, err = disabled.ExportStatement(ctx, sess.ID, "safe-yer", domain.TransactionFilter{})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	exporter := new(MockStatementExporter)
	exporter.On("Export", ctx, mock.MatchedBy(func(stmt domain.Statement) bool {
		return stmt.AccountName == "الصندوق المنزلي (ر.ي)" && len(stmt.Rows) == 1
	})).Return("Sheet1!A1:E2", nil).Once()

	svc := services.NewExportService(wallet, exporter)
	assert.True(t, svc.Enabled())
	ref, err := svc.ExportStatement(ctx, sess.ID, "safe-yer", domain.TransactionFilter{Type: domain.Income})
	require.NoError(t, err)
	assert.Equal(t, "Sheet1!A1:E2", ref)
	exporter.AssertExpectations(t)
}
