package service

import (
	"context"
	"fmt"
	"time"

	"custodial-vault-platform/internal/core/domain"
	"custodial-vault-platform/internal/core/ports"
	"custodial-vault-platform/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// LedgerServiceImpl implements ports.LedgerService with pessimistic locking:
// every operation runs in one database transaction and takes FOR UPDATE row
// locks on each wallet leg before reading balances, so concurrent
// reservations against the same wallet serialize at the row lock. Locks are
// always acquired source wallet first, then fee wallet.
type LedgerServiceImpl struct {
	walletRepo ports.WalletRepository
	transactor ports.DBTransactor
	log        zerolog.Logger
}

// NewLedgerService creates a new LedgerServiceImpl.
func NewLedgerService(
	walletRepo ports.WalletRepository,
	transactor ports.DBTransactor,
	log zerolog.Logger,
) *LedgerServiceImpl {
	return &LedgerServiceImpl{
		walletRepo: walletRepo,
		transactor: transactor,
		log:        log,
	}
}

// ReserveFunds implements the reservation leg of the transaction lifecycle.
func (s *LedgerServiceImpl) ReserveFunds(ctx context.Context, t *domain.Transaction) error {
	if err := validateAmounts(t); err != nil {
		return err
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	srcWallet, err := s.walletRepo.GetByAddressForUpdate(ctx, dbTx, t.WorkspaceID, t.SourceAddress)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("lock source wallet: %w", err))
	}
	if srcWallet == nil {
		// Pure external transfer: nothing to reserve.
		return nil
	}

	required := t.Amount
	if t.SameCurrencyFee() {
		required = required.Add(t.NetworkFee)
	}

	if srcWallet.Available().LessThan(required) {
		return apperror.ErrInsufficientBalance(srcWallet.Available(), required)
	}

	newPending := srcWallet.Pending.Add(required)
	if err := s.walletRepo.UpdateBalances(ctx, dbTx, srcWallet.ID, srcWallet.Balance, newPending); err != nil {
		return apperror.InternalError(fmt.Errorf("reserve source: %w", err))
	}

	if !t.SameCurrencyFee() && t.NetworkFee.IsPositive() {
		feeWallet, err := s.lockOrCreateFeeWallet(ctx, dbTx, srcWallet.VaultAccountID, t.FeeCurrency)
		if err != nil {
			return err
		}
		if feeWallet.Available().LessThan(t.NetworkFee) {
			return apperror.ErrInsufficientFeeBalance(feeWallet.Available(), t.NetworkFee)
		}
		feePending := feeWallet.Pending.Add(t.NetworkFee)
		if err := s.walletRepo.UpdateBalances(ctx, dbTx, feeWallet.ID, feeWallet.Balance, feePending); err != nil {
			return apperror.InternalError(fmt.Errorf("reserve fee: %w", err))
		}
	}

	if err := dbTx.Commit(ctx); err != nil {
		return apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.log.Info().
		Str("tx_id", t.ID.String()).
		Str("asset", t.AssetID).
		Str("reserved", required.String()).
		Msg("funds reserved")

	return nil
}

// CompleteTransaction settles a reservation in its own database transaction.
func (s *LedgerServiceImpl) CompleteTransaction(ctx context.Context, t *domain.Transaction) error {
	return s.inTransaction(ctx, func(dbTx pgx.Tx) error {
		return s.CompleteInTx(ctx, dbTx, t)
	})
}

// RollbackTransaction undoes a reservation in its own database transaction.
func (s *LedgerServiceImpl) RollbackTransaction(ctx context.Context, t *domain.Transaction) error {
	return s.inTransaction(ctx, func(dbTx pgx.Tx) error {
		return s.RollbackInTx(ctx, dbTx, t)
	})
}

// CreditIncomingInTx credits an already-settled external deposit inside a
// caller-owned database transaction. The destination lookup is scoped to the
// transaction's workspace, so a foreign address reads as missing.
func (s *LedgerServiceImpl) CreditIncomingInTx(ctx context.Context, dbTx pgx.Tx, t *domain.Transaction) error {
	if err := validateAmounts(t); err != nil {
		return err
	}

	destWallet, err := s.walletRepo.GetByAddressForUpdate(ctx, dbTx, t.WorkspaceID, t.DestinationAddress)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("lock destination wallet: %w", err))
	}
	if destWallet == nil {
		return apperror.ErrNotFound("destination wallet")
	}

	// No pending phase: there is nothing to reserve from an external
	// counterparty.
	newBalance := destWallet.Balance.Add(t.Amount)
	if err := s.walletRepo.UpdateBalances(ctx, dbTx, destWallet.ID, newBalance, destWallet.Pending); err != nil {
		return apperror.InternalError(fmt.Errorf("credit destination: %w", err))
	}

	s.log.Info().
		Str("tx_id", t.ID.String()).
		Str("asset", t.AssetID).
		Str("amount", t.Amount.String()).
		Msg("incoming deposit credited")

	return nil
}

// CompleteInTx settles a transaction inside a caller-owned database
// transaction: source balance and pending drop by the reserved amounts, an
// owned destination gains the transfer amount.
func (s *LedgerServiceImpl) CompleteInTx(ctx context.Context, dbTx pgx.Tx, t *domain.Transaction) error {
	srcWallet, err := s.walletRepo.GetByAddressForUpdate(ctx, dbTx, t.WorkspaceID, t.SourceAddress)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("lock source wallet: %w", err))
	}

	if srcWallet != nil {
		debit := t.Amount
		if t.SameCurrencyFee() {
			debit = debit.Add(t.NetworkFee)
		}
		newBalance := srcWallet.Balance.Sub(debit)
		newPending := srcWallet.Pending.Sub(debit)
		if err := s.walletRepo.UpdateBalances(ctx, dbTx, srcWallet.ID, newBalance, newPending); err != nil {
			return apperror.InternalError(fmt.Errorf("settle source: %w", err))
		}

		if !t.SameCurrencyFee() && t.NetworkFee.IsPositive() {
			feeWallet, err := s.walletRepo.GetByVaultAndAssetForUpdate(ctx, dbTx, srcWallet.VaultAccountID, t.FeeCurrency)
			if err != nil {
				return apperror.InternalError(fmt.Errorf("lock fee wallet: %w", err))
			}
			if feeWallet == nil {
				return apperror.ErrNotFound("fee wallet")
			}
			feeBalance := feeWallet.Balance.Sub(t.NetworkFee)
			feePending := feeWallet.Pending.Sub(t.NetworkFee)
			if err := s.walletRepo.UpdateBalances(ctx, dbTx, feeWallet.ID, feeBalance, feePending); err != nil {
				return apperror.InternalError(fmt.Errorf("settle fee: %w", err))
			}
		}
	}

	destWallet, err := s.walletRepo.GetByAddressForUpdate(ctx, dbTx, t.WorkspaceID, t.DestinationAddress)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("lock destination wallet: %w", err))
	}
	if destWallet != nil {
		newBalance := destWallet.Balance.Add(t.Amount)
		if err := s.walletRepo.UpdateBalances(ctx, dbTx, destWallet.ID, newBalance, destWallet.Pending); err != nil {
			return apperror.InternalError(fmt.Errorf("credit destination: %w", err))
		}
	}

	s.log.Info().
		Str("tx_id", t.ID.String()).
		Str("asset", t.AssetID).
		Str("amount", t.Amount.String()).
		Msg("transaction settled")

	return nil
}

// RollbackInTx undoes a reservation inside a caller-owned database
// transaction. Pending is floored at zero: a double rollback or a rollback
// after settlement must not drive it negative.
func (s *LedgerServiceImpl) RollbackInTx(ctx context.Context, dbTx pgx.Tx, t *domain.Transaction) error {
	srcWallet, err := s.walletRepo.GetByAddressForUpdate(ctx, dbTx, t.WorkspaceID, t.SourceAddress)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("lock source wallet: %w", err))
	}
	if srcWallet == nil {
		return nil
	}

	reserved := t.Amount
	if t.SameCurrencyFee() {
		reserved = reserved.Add(t.NetworkFee)
	}
	newPending := flooredSub(srcWallet.Pending, reserved)
	if err := s.walletRepo.UpdateBalances(ctx, dbTx, srcWallet.ID, srcWallet.Balance, newPending); err != nil {
		return apperror.InternalError(fmt.Errorf("rollback source: %w", err))
	}

	if !t.SameCurrencyFee() && t.NetworkFee.IsPositive() {
		feeWallet, err := s.walletRepo.GetByVaultAndAssetForUpdate(ctx, dbTx, srcWallet.VaultAccountID, t.FeeCurrency)
		if err != nil {
			return apperror.InternalError(fmt.Errorf("lock fee wallet: %w", err))
		}
		if feeWallet != nil {
			feePending := flooredSub(feeWallet.Pending, t.NetworkFee)
			if err := s.walletRepo.UpdateBalances(ctx, dbTx, feeWallet.ID, feeWallet.Balance, feePending); err != nil {
				return apperror.InternalError(fmt.Errorf("rollback fee: %w", err))
			}
		}
	}

	s.log.Info().
		Str("tx_id", t.ID.String()).
		Str("asset", t.AssetID).
		Msg("reservation rolled back")

	return nil
}

// lockOrCreateFeeWallet locks the fee-asset wallet in the same vault,
// creating an empty one when missing.
func (s *LedgerServiceImpl) lockOrCreateFeeWallet(ctx context.Context, dbTx pgx.Tx, vaultAccountID uuid.UUID, feeAssetID string) (*domain.Wallet, error) {
	feeWallet, err := s.walletRepo.GetByVaultAndAssetForUpdate(ctx, dbTx, vaultAccountID, feeAssetID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock fee wallet: %w", err))
	}
	if feeWallet != nil {
		return feeWallet, nil
	}

	now := time.Now().UTC()
	feeWallet = &domain.Wallet{
		ID:             uuid.New(),
		VaultAccountID: vaultAccountID,
		AssetID:        feeAssetID,
		Type:           domain.WalletTypePermanent,
		Balance:        decimal.Zero,
		Pending:        decimal.Zero,
		Frozen:         decimal.Zero,
		LockedAmount:   decimal.Zero,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.walletRepo.CreateInTx(ctx, dbTx, feeWallet); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create fee wallet: %w", err))
	}
	return feeWallet, nil
}

func (s *LedgerServiceImpl) inTransaction(ctx context.Context, fn func(dbTx pgx.Tx) error) error {
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	if err := fn(dbTx); err != nil {
		return err
	}
	if err := dbTx.Commit(ctx); err != nil {
		return apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}
	return nil
}

func validateAmounts(t *domain.Transaction) error {
	if t.Amount.IsNegative() {
		return apperror.Validation("amount must not be negative")
	}
	if t.NetworkFee.IsNegative() {
		return apperror.Validation("network fee must not be negative")
	}
	return nil
}

func flooredSub(a, b decimal.Decimal) decimal.Decimal {
	out := a.Sub(b)
	if out.IsNegative() {
		return decimal.Zero
	}
	return out
}
