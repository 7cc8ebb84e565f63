package service

import (
	"context"
	"testing"
	"time"

	"custodial-vault-platform/internal/core/domain"
	"custodial-vault-platform/internal/core/ports/mocks"
	"custodial-vault-platform/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type ledgerTestDeps struct {
	svc        *LedgerServiceImpl
	walletRepo *mocks.MockWalletRepository
	transactor *mocks.MockDBTransactor
	ctrl       *gomock.Controller
}

func setupLedgerService(t *testing.T) *ledgerTestDeps {
	ctrl := gomock.NewController(t)
	d := &ledgerTestDeps{
		walletRepo: mocks.NewMockWalletRepository(ctrl),
		transactor: mocks.NewMockDBTransactor(ctrl),
		ctrl:       ctrl,
	}
	d.svc = NewLedgerService(d.walletRepo, d.transactor, zerolog.Nop())
	return d
}

func newBTCWallet(balance string) *domain.Wallet {
	now := time.Now().UTC()
	return &domain.Wallet{
		ID:             uuid.New(),
		VaultAccountID: uuid.New(),
		AssetID:        "BTC",
		Type:           domain.WalletTypePermanent,
		Balance:        decimal.RequireFromString(balance),
		Pending:        decimal.Zero,
		Frozen:         decimal.Zero,
		LockedAmount:   decimal.Zero,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func newOutgoingTx(wsID uuid.UUID, amount, fee, feeCurrency string) *domain.Transaction {
	now := time.Now().UTC()
	return &domain.Transaction{
		ID:                 uuid.New(),
		WorkspaceID:        wsID,
		VaultAccountID:     uuid.New(),
		AssetID:            "BTC",
		SourceAddress:      "bc1qsource",
		DestinationAddress: "bc1qelsewhere",
		Amount:             decimal.RequireFromString(amount),
		NetworkFee:         decimal.RequireFromString(fee),
		FeeCurrency:        feeCurrency,
		State:              domain.StateSubmitted,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

func TestReserveFunds_ReservesAmountPlusSameCurrencyFee(t *testing.T) {
	d := setupLedgerService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	wsID := uuid.New()
	wallet := newBTCWallet("1.0")
	txn := newOutgoingTx(wsID, "0.5998", "0.0002", "BTC")
	dbTx := &mockTx{}

	var gotBalance, gotPending decimal.Decimal
	d.transactor.EXPECT().Begin(ctx).Return(dbTx, nil)
	d.walletRepo.EXPECT().GetByAddressForUpdate(ctx, dbTx, wsID, "bc1qsource").Return(wallet, nil)
	d.walletRepo.EXPECT().UpdateBalances(ctx, dbTx, wallet.ID, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ pgx.Tx, _ uuid.UUID, balance, pending decimal.Decimal) error {
			gotBalance, gotPending = balance, pending
			return nil
		})

	require.NoError(t, d.svc.ReserveFunds(ctx, txn))
	assert.True(t, gotBalance.Equal(decimal.RequireFromString("1.0")), "balance untouched during reservation, got %s", gotBalance)
	assert.True(t, gotPending.Equal(decimal.RequireFromString("0.6")), "pending holds amount+fee, got %s", gotPending)
}

func TestReserveFunds_InsufficientBalanceReportsAvailable(t *testing.T) {
	d := setupLedgerService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	wsID := uuid.New()
	wallet := newBTCWallet("1.0")
	wallet.Pending = decimal.RequireFromString("0.6")
	txn := newOutgoingTx(wsID, "0.5998", "0.0002", "BTC")
	dbTx := &mockTx{}

	d.transactor.EXPECT().Begin(ctx).Return(dbTx, nil)
	d.walletRepo.EXPECT().GetByAddressForUpdate(ctx, dbTx, wsID, "bc1qsource").Return(wallet, nil)

	err := d.svc.ReserveFunds(ctx, txn)
	require.Error(t, err)
	appErr, ok := err.(*apperror.AppError)
	require.True(t, ok)
	assert.Equal(t, "LED_001", appErr.Code)
	assert.Contains(t, appErr.Message, "0.4")
	assert.Contains(t, appErr.Message, "0.6")
}

func TestReserveFunds_FrozenFundsReduceAvailable(t *testing.T) {
	d := setupLedgerService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	wsID := uuid.New()
	wallet := newBTCWallet("1.0")
	wallet.Frozen = decimal.RequireFromString("0.5")
	txn := newOutgoingTx(wsID, "0.5998", "0.0002", "BTC")
	dbTx := &mockTx{}

	d.transactor.EXPECT().Begin(ctx).Return(dbTx, nil)
	d.walletRepo.EXPECT().GetByAddressForUpdate(ctx, dbTx, wsID, "bc1qsource").Return(wallet, nil)

	err := d.svc.ReserveFunds(ctx, txn)
	require.Error(t, err)
	appErr, ok := err.(*apperror.AppError)
	require.True(t, ok)
	assert.Equal(t, "LED_001", appErr.Code)
}

func TestReserveFunds_ExternalSourceIsNoOp(t *testing.T) {
	d := setupLedgerService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	wsID := uuid.New()
	txn := newOutgoingTx(wsID, "0.5", "0.0002", "BTC")
	dbTx := &mockTx{}

	d.transactor.EXPECT().Begin(ctx).Return(dbTx, nil)
	d.walletRepo.EXPECT().GetByAddressForUpdate(ctx, dbTx, wsID, "bc1qsource").Return(nil, nil)

	assert.NoError(t, d.svc.ReserveFunds(ctx, txn))
}

func TestReserveFunds_SeparateFeeCurrencyLeg(t *testing.T) {
	d := setupLedgerService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	wsID := uuid.New()
	wallet := newBTCWallet("100")
	wallet.AssetID = "USDC"
	feeWallet := newBTCWallet("0.01")
	feeWallet.AssetID = "ETH"
	feeWallet.VaultAccountID = wallet.VaultAccountID
	txn := newOutgoingTx(wsID, "50", "0.0005", "ETH")
	txn.AssetID = "USDC"
	dbTx := &mockTx{}

	var srcPending, feePending decimal.Decimal
	d.transactor.EXPECT().Begin(ctx).Return(dbTx, nil)
	d.walletRepo.EXPECT().GetByAddressForUpdate(ctx, dbTx, wsID, "bc1qsource").Return(wallet, nil)
	d.walletRepo.EXPECT().UpdateBalances(ctx, dbTx, wallet.ID, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ pgx.Tx, _ uuid.UUID, _, pending decimal.Decimal) error {
			srcPending = pending
			return nil
		})
	d.walletRepo.EXPECT().GetByVaultAndAssetForUpdate(ctx, dbTx, wallet.VaultAccountID, "ETH").Return(feeWallet, nil)
	d.walletRepo.EXPECT().UpdateBalances(ctx, dbTx, feeWallet.ID, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ pgx.Tx, _ uuid.UUID, _, pending decimal.Decimal) error {
			feePending = pending
			return nil
		})

	require.NoError(t, d.svc.ReserveFunds(ctx, txn))
	assert.True(t, srcPending.Equal(decimal.RequireFromString("50")), "principal pending excludes the foreign-currency fee")
	assert.True(t, feePending.Equal(decimal.RequireFromString("0.0005")))
}

func TestReserveFunds_InsufficientFeeBalance(t *testing.T) {
	d := setupLedgerService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	wsID := uuid.New()
	wallet := newBTCWallet("100")
	wallet.AssetID = "USDC"
	feeWallet := newBTCWallet("0.0001")
	feeWallet.AssetID = "ETH"
	feeWallet.VaultAccountID = wallet.VaultAccountID
	txn := newOutgoingTx(wsID, "50", "0.0005", "ETH")
	txn.AssetID = "USDC"
	dbTx := &mockTx{}

	d.transactor.EXPECT().Begin(ctx).Return(dbTx, nil)
	d.walletRepo.EXPECT().GetByAddressForUpdate(ctx, dbTx, wsID, "bc1qsource").Return(wallet, nil)
	d.walletRepo.EXPECT().UpdateBalances(ctx, dbTx, wallet.ID, gomock.Any(), gomock.Any()).Return(nil)
	d.walletRepo.EXPECT().GetByVaultAndAssetForUpdate(ctx, dbTx, wallet.VaultAccountID, "ETH").Return(feeWallet, nil)

	err := d.svc.ReserveFunds(ctx, txn)
	require.Error(t, err)
	appErr, ok := err.(*apperror.AppError)
	require.True(t, ok)
	assert.Equal(t, "LED_002", appErr.Code)
}

func TestReserveFunds_NegativeAmountRejected(t *testing.T) {
	d := setupLedgerService(t)
	defer d.ctrl.Finish()

	txn := newOutgoingTx(uuid.New(), "0.5", "0.0002", "BTC")
	txn.Amount = decimal.RequireFromString("-0.5")

	err := d.svc.ReserveFunds(context.Background(), txn)
	require.Error(t, err)
	appErr, ok := err.(*apperror.AppError)
	require.True(t, ok)
	assert.Equal(t, "VAL_001", appErr.Code)
}

func TestCompleteInTx_DebitsSourceCreditsOwnedDestination(t *testing.T) {
	d := setupLedgerService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	wsID := uuid.New()
	src := newBTCWallet("1.0")
	src.Pending = decimal.RequireFromString("0.6")
	dest := newBTCWallet("0.2")
	txn := newOutgoingTx(wsID, "0.5998", "0.0002", "BTC")
	dbTx := &mockTx{}

	var srcBalance, srcPending, destBalance decimal.Decimal
	d.walletRepo.EXPECT().GetByAddressForUpdate(ctx, dbTx, wsID, "bc1qsource").Return(src, nil)
	d.walletRepo.EXPECT().UpdateBalances(ctx, dbTx, src.ID, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ pgx.Tx, _ uuid.UUID, balance, pending decimal.Decimal) error {
			srcBalance, srcPending = balance, pending
			return nil
		})
	d.walletRepo.EXPECT().GetByAddressForUpdate(ctx, dbTx, wsID, "bc1qelsewhere").Return(dest, nil)
	d.walletRepo.EXPECT().UpdateBalances(ctx, dbTx, dest.ID, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ pgx.Tx, _ uuid.UUID, balance, _ decimal.Decimal) error {
			destBalance = balance
			return nil
		})

	require.NoError(t, d.svc.CompleteInTx(ctx, dbTx, txn))
	assert.True(t, srcBalance.Equal(decimal.RequireFromString("0.4")), "got %s", srcBalance)
	assert.True(t, srcPending.Equal(decimal.Zero), "got %s", srcPending)
	assert.True(t, destBalance.Equal(decimal.RequireFromString("0.7998")), "fee never reaches the destination, got %s", destBalance)
}

func TestRollbackInTx_ReleasesReservationOnly(t *testing.T) {
	d := setupLedgerService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	wsID := uuid.New()
	src := newBTCWallet("1.0")
	src.Pending = decimal.RequireFromString("0.6")
	txn := newOutgoingTx(wsID, "0.5998", "0.0002", "BTC")
	dbTx := &mockTx{}

	var gotBalance, gotPending decimal.Decimal
	d.walletRepo.EXPECT().GetByAddressForUpdate(ctx, dbTx, wsID, "bc1qsource").Return(src, nil)
	d.walletRepo.EXPECT().UpdateBalances(ctx, dbTx, src.ID, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ pgx.Tx, _ uuid.UUID, balance, pending decimal.Decimal) error {
			gotBalance, gotPending = balance, pending
			return nil
		})

	require.NoError(t, d.svc.RollbackInTx(ctx, dbTx, txn))
	assert.True(t, gotBalance.Equal(decimal.RequireFromString("1.0")))
	assert.True(t, gotPending.Equal(decimal.Zero))
}

func TestRollbackInTx_PendingFlooredAtZero(t *testing.T) {
	d := setupLedgerService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	wsID := uuid.New()
	src := newBTCWallet("1.0")
	src.Pending = decimal.RequireFromString("0.1")
	txn := newOutgoingTx(wsID, "0.5998", "0.0002", "BTC")
	dbTx := &mockTx{}

	var gotPending decimal.Decimal
	d.walletRepo.EXPECT().GetByAddressForUpdate(ctx, dbTx, wsID, "bc1qsource").Return(src, nil)
	d.walletRepo.EXPECT().UpdateBalances(ctx, dbTx, src.ID, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ pgx.Tx, _ uuid.UUID, _, pending decimal.Decimal) error {
			gotPending = pending
			return nil
		})

	require.NoError(t, d.svc.RollbackInTx(ctx, dbTx, txn))
	assert.True(t, gotPending.Equal(decimal.Zero), "got %s", gotPending)
}

func TestCreditIncomingInTx_AddsStraightToBalance(t *testing.T) {
	d := setupLedgerService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	wsID := uuid.New()
	dest := newBTCWallet("0.5")
	txn := newOutgoingTx(wsID, "1.0", "0", "BTC")
	txn.SourceAddress = "bc1qexternal"
	dbTx := &mockTx{}

	var gotBalance, gotPending decimal.Decimal
	d.walletRepo.EXPECT().GetByAddressForUpdate(ctx, dbTx, wsID, "bc1qelsewhere").Return(dest, nil)
	d.walletRepo.EXPECT().UpdateBalances(ctx, dbTx, dest.ID, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ pgx.Tx, _ uuid.UUID, balance, pending decimal.Decimal) error {
			gotBalance, gotPending = balance, pending
			return nil
		})

	require.NoError(t, d.svc.CreditIncomingInTx(ctx, dbTx, txn))
	assert.True(t, gotBalance.Equal(decimal.RequireFromString("1.5")))
	assert.True(t, gotPending.Equal(decimal.Zero), "no pending phase for incoming deposits")
}

func TestCreditIncomingInTx_UnknownDestination(t *testing.T) {
	d := setupLedgerService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	wsID := uuid.New()
	txn := newOutgoingTx(wsID, "1.0", "0", "BTC")
	dbTx := &mockTx{}

	d.walletRepo.EXPECT().GetByAddressForUpdate(ctx, dbTx, wsID, "bc1qelsewhere").Return(nil, nil)

	err := d.svc.CreditIncomingInTx(ctx, dbTx, txn)
	require.Error(t, err)
	appErr, ok := err.(*apperror.AppError)
	require.True(t, ok)
	assert.Equal(t, "NF_001", appErr.Code)
}
