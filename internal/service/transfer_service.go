package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"custodial-vault-platform/internal/core/domain"
	"custodial-vault-platform/internal/core/ports"
	"custodial-vault-platform/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// TransferServiceImpl implements ports.TransferService: the intake path that
// turns transfer requests into transactions and hands them to the ledger.
type TransferServiceImpl struct {
	txRepo      ports.TransactionRepository
	walletRepo  ports.WalletRepository
	vaultRepo   ports.VaultAccountRepository
	addressRepo ports.AddressRepository
	ledger      ports.LedgerService
	ownership   ports.OwnershipService
	addressSvc  ports.AddressService
	bus         ports.NotificationBus
	transactor  ports.DBTransactor
	minConfirms int
	log         zerolog.Logger
}

// NewTransferService creates a new TransferServiceImpl.
func NewTransferService(
	txRepo ports.TransactionRepository,
	walletRepo ports.WalletRepository,
	vaultRepo ports.VaultAccountRepository,
	addressRepo ports.AddressRepository,
	ledger ports.LedgerService,
	ownership ports.OwnershipService,
	addressSvc ports.AddressService,
	bus ports.NotificationBus,
	transactor ports.DBTransactor,
	minConfirms int,
	log zerolog.Logger,
) *TransferServiceImpl {
	if minConfirms < 1 {
		minConfirms = 1
	}
	return &TransferServiceImpl{
		txRepo:      txRepo,
		walletRepo:  walletRepo,
		vaultRepo:   vaultRepo,
		addressRepo: addressRepo,
		ledger:      ledger,
		ownership:   ownership,
		addressSvc:  addressSvc,
		bus:         bus,
		transactor:  transactor,
		minConfirms: minConfirms,
		log:         log,
	}
}

// CreateTransfer creates an outgoing transfer: validates the request,
// resolves the fee leg, reserves funds, and persists the transaction in
// SUBMITTED. The requested amount is gross; a same-currency fee is deducted
// from it.
func (s *TransferServiceImpl) CreateTransfer(ctx context.Context, req ports.CreateTransferRequest) (*ports.TransactionView, error) {
	if req.WorkspaceID == uuid.Nil {
		return nil, apperror.ErrWorkspaceRequired()
	}
	if !req.Amount.IsPositive() {
		return nil, apperror.Validation("amount must be positive")
	}

	asset, ok := domain.LookupAsset(req.AssetID)
	if !ok {
		return nil, apperror.ErrNotFound("asset")
	}
	if !s.addressSvc.ValidateAddress(asset.ID, req.DestinationAddress) {
		return nil, apperror.Validation("destination address is malformed")
	}

	vault, err := s.vaultRepo.GetByID(ctx, req.VaultAccountID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("load vault account: %w", err))
	}
	if vault == nil || vault.WorkspaceID != req.WorkspaceID {
		return nil, apperror.ErrNotFound("vault account")
	}

	wallet, err := s.walletRepo.GetByVaultAndAsset(ctx, req.VaultAccountID, asset.ID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("load wallet: %w", err))
	}
	if wallet == nil {
		return nil, apperror.ErrNotFound("wallet")
	}

	addresses, err := s.addressRepo.ListByWallet(ctx, wallet.ID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list wallet addresses: %w", err))
	}
	if len(addresses) == 0 {
		return nil, apperror.Validation("wallet has no deposit address to send from")
	}
	sourceAddress := addresses[0].AddressValue

	fee := asset.BaseFee
	amount := req.Amount
	if asset.FeeAssetID == asset.ID {
		// Same-currency fee comes out of the requested amount.
		amount = req.Amount.Sub(fee)
		if !amount.IsPositive() {
			return nil, apperror.Validation("amount does not cover the network fee")
		}
	}

	now := time.Now().UTC()
	t := &domain.Transaction{
		ID:                 uuid.New(),
		WorkspaceID:        req.WorkspaceID,
		VaultAccountID:     req.VaultAccountID,
		AssetID:            asset.ID,
		SourceAddress:      sourceAddress,
		DestinationAddress: req.DestinationAddress,
		Amount:             amount,
		RequestedAmount:    req.Amount,
		NetworkFee:         fee,
		FeeCurrency:        asset.FeeAssetID,
		State:              domain.StateSubmitted,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := s.ledger.ReserveFunds(ctx, t); err != nil {
		return nil, err
	}

	if err := s.txRepo.Create(ctx, t); err != nil {
		// The reservation committed before the insert failed; release it.
		if rbErr := s.ledger.RollbackTransaction(ctx, t); rbErr != nil {
			s.log.Error().Err(rbErr).Str("tx_id", t.ID.String()).Msg("failed to release reservation after create failure")
		}
		return nil, s.mapCreateError(err)
	}

	s.log.Info().
		Str("tx_id", t.ID.String()).
		Str("asset", asset.ID).
		Str("amount", t.Amount.String()).
		Msg("transfer created")

	s.notify(ctx, t)
	return s.view(ctx, t)
}

// RegisterIncoming records an external deposit that arrives already settled:
// the transaction is created in COMPLETED and the destination wallet is
// credited in the same database transaction. The destination address must
// belong to the calling workspace.
func (s *TransferServiceImpl) RegisterIncoming(ctx context.Context, req ports.RegisterIncomingRequest) (*ports.TransactionView, error) {
	if req.WorkspaceID == uuid.Nil {
		return nil, apperror.ErrWorkspaceRequired()
	}
	if !req.Amount.IsPositive() {
		return nil, apperror.Validation("amount must be positive")
	}
	asset, ok := domain.LookupAsset(req.AssetID)
	if !ok {
		return nil, apperror.ErrNotFound("asset")
	}

	addr, err := s.addressRepo.GetByValue(ctx, req.DestinationAddress)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("resolve destination: %w", err))
	}
	if addr == nil {
		return nil, apperror.ErrNotFound("destination address")
	}

	wallet, err := s.walletRepo.GetByID(ctx, addr.WalletID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("load wallet: %w", err))
	}
	if wallet == nil {
		return nil, apperror.ErrNotFound("wallet")
	}

	vault, err := s.vaultRepo.GetByID(ctx, wallet.VaultAccountID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("load vault account: %w", err))
	}
	// A deposit can only land on an address the caller owns. Foreign
	// addresses read as missing.
	if vault == nil || vault.WorkspaceID != req.WorkspaceID {
		return nil, apperror.ErrNotFound("destination address")
	}

	now := time.Now().UTC()
	t := &domain.Transaction{
		ID:                 uuid.New(),
		WorkspaceID:        req.WorkspaceID,
		VaultAccountID:     wallet.VaultAccountID,
		AssetID:            asset.ID,
		SourceAddress:      req.SourceAddress,
		DestinationAddress: req.DestinationAddress,
		Amount:             req.Amount,
		RequestedAmount:    req.Amount,
		FeeCurrency:        asset.FeeAssetID,
		State:              domain.StateCompleted,
		Confirmations:      s.minConfirms,
		Hash:               req.Hash,
		ExternalTxID:       req.ExternalTxID,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	// Record and credit all-or-nothing: a deposit must never look settled
	// without the balance movement that backs it.
	if err := s.persistIncoming(ctx, t); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("tx_id", t.ID.String()).
		Str("asset", asset.ID).
		Str("amount", t.Amount.String()).
		Msg("incoming deposit registered")

	s.notify(ctx, t)
	return s.view(ctx, t)
}

// persistIncoming creates the COMPLETED transaction and credits the
// destination wallet in one database transaction.
func (s *TransferServiceImpl) persistIncoming(ctx context.Context, t *domain.Transaction) error {
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	if err := s.txRepo.CreateInTx(ctx, dbTx, t); err != nil {
		return s.mapCreateError(err)
	}
	if err := s.ledger.CreditIncomingInTx(ctx, dbTx, t); err != nil {
		return err
	}

	if err := dbTx.Commit(ctx); err != nil {
		return apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}
	return nil
}

// mapCreateError converts storage uniqueness violations into the typed
// duplicate errors.
func (s *TransferServiceImpl) mapCreateError(err error) error {
	switch {
	case errors.Is(err, ports.ErrHashExists):
		return apperror.ErrDuplicateHash()
	case errors.Is(err, ports.ErrExternalTxIDExists):
		return apperror.ErrDuplicateExternalTxID()
	}
	return apperror.InternalError(fmt.Errorf("create transaction: %w", err))
}

func (s *TransferServiceImpl) view(ctx context.Context, t *domain.Transaction) (*ports.TransactionView, error) {
	views, err := s.ownership.BuildPerspectives(ctx, []domain.Transaction{*t}, t.WorkspaceID)
	if err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return nil, apperror.InternalError(fmt.Errorf("transaction %s not visible to its own workspace", t.ID))
	}
	return &views[0], nil
}

func (s *TransferServiceImpl) notify(ctx context.Context, t *domain.Transaction) {
	if err := s.bus.PublishTransactionUpdated(ctx, t.WorkspaceID, t); err != nil {
		s.log.Warn().Err(err).Str("tx_id", t.ID.String()).Msg("transaction notification failed")
	}
	if err := s.bus.PublishListsChanged(ctx, t.WorkspaceID); err != nil {
		s.log.Warn().Err(err).Str("workspace_id", t.WorkspaceID.String()).Msg("lists-changed notification failed")
	}
}
