// internal/service/referral_service_test.go
package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"investrack/internal/domain"
	"investrack/internal/util"
	"investrack/pkg/db"
)

type referralServiceFixture struct {
	svc          ReferralService
	tx           *MockTxController
	executor     *MockDBExecutor
	referralRepo *MockReferralRepository
	investorRepo *MockInvestorRepository
}

func newReferralServiceFixture(t *testing.T) *referralServiceFixture {
	t.Helper()

	f := &referralServiceFixture{
		tx:           new(MockTxController),
		executor:     new(MockDBExecutor),
		referralRepo: new(MockReferralRepository),
		investorRepo: new(MockInvestorRepository),
	}

	beginTx := func(ctx context.Context, conn db.DBTxBeginner) (db.TxController, error) {
		return f.tx, nil
	}

	f.svc = NewReferralService(
		nil,
		f.executor,
		f.referralRepo,
		f.investorRepo,
		beginTx,
		db.CommitTx,
		db.RollbackTx,
	)
	return f
}

func TestCreateReferral_Succeeds(t *testing.T) {
	f := newReferralServiceFixture(t)

	f.investorRepo.On("GetInvestorByID", mock.Anything, mock.Anything, int64(4)).Return(&domain.Investor{ID: 4}, nil)
	f.investorRepo.On("GetInvestorByID", mock.Anything, mock.Anything, int64(11)).Return(&domain.Investor{ID: 11}, nil)
	f.referralRepo.On("CreateReferral", mock.Anything, mock.Anything, mock.AnythingOfType("*domain.Referral")).Return(nil)
	f.tx.On("Commit").Return(nil)
	f.tx.On("Rollback").Return(nil)

	referral, err := f.svc.CreateReferral(context.Background(), 4, 11)

	require.NoError(t, err)
	assert.True(t, referral.Amount.IsZero())
	assert.False(t, referral.Settled)
}

func TestCreateReferral_SelfReferralFails(t *testing.T) {
	f := newReferralServiceFixture(t)

	_, err := f.svc.CreateReferral(context.Background(), 4, 4)

	assert.ErrorIs(t, err, util.ErrInvalidInput)
	f.referralRepo.AssertNotCalled(t, "CreateReferral", mock.Anything, mock.Anything, mock.Anything)
}

func TestSettle_Idempotent(t *testing.T) {
	f := newReferralServiceFixture(t)

	settled := domain.NewReferral(4, 11)
	settled.ID = 15
	settled.Settled = true

	f.referralRepo.On("Settle", mock.Anything, mock.Anything, int64(15)).Return(nil)
	f.referralRepo.On("GetReferralByID", mock.Anything, mock.Anything, int64(15)).Return(settled, nil)

	first, err := f.svc.Settle(context.Background(), 15)
	require.NoError(t, err)
	assert.True(t, first.Settled)

	// Settling twice leaves settled=true with no error.
	second, err := f.svc.Settle(context.Background(), 15)
	require.NoError(t, err)
	assert.True(t, second.Settled)
}

func TestSettle_UnknownReferralFails(t *testing.T) {
	f := newReferralServiceFixture(t)

	f.referralRepo.On("Settle", mock.Anything, mock.Anything, int64(99)).Return(util.ErrReferralNotFound)

	_, err := f.svc.Settle(context.Background(), 99)

	assert.ErrorIs(t, err, util.ErrReferralNotFound)
}

func TestListUnsettled(t *testing.T) {
	f := newReferralServiceFixture(t)

	owed := []domain.Referral{*domain.NewReferral(4, 11)}
	f.referralRepo.On("GetUnsettledReferrals", mock.Anything, mock.Anything).Return(owed, nil)

	referrals, err := f.svc.ListUnsettled(context.Background())

	require.NoError(t, err)
	assert.Len(t, referrals, 1)
}
