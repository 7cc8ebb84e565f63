package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"custodial-vault-platform/internal/core/domain"
	"custodial-vault-platform/internal/core/ports"
	"custodial-vault-platform/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// VaultServiceImpl implements ports.VaultService.
type VaultServiceImpl struct {
	vaultRepo   ports.VaultAccountRepository
	walletRepo  ports.WalletRepository
	addressRepo ports.AddressRepository
	addressSvc  ports.AddressService
	bus         ports.NotificationBus
	log         zerolog.Logger
}

// NewVaultService creates a new VaultServiceImpl.
func NewVaultService(
	vaultRepo ports.VaultAccountRepository,
	walletRepo ports.WalletRepository,
	addressRepo ports.AddressRepository,
	addressSvc ports.AddressService,
	bus ports.NotificationBus,
	log zerolog.Logger,
) *VaultServiceImpl {
	return &VaultServiceImpl{
		vaultRepo:   vaultRepo,
		walletRepo:  walletRepo,
		addressRepo: addressRepo,
		addressSvc:  addressSvc,
		bus:         bus,
		log:         log,
	}
}

// CreateVaultAccount creates an empty vault account in the workspace.
func (s *VaultServiceImpl) CreateVaultAccount(ctx context.Context, req ports.CreateVaultAccountRequest) (*domain.VaultAccount, error) {
	if req.WorkspaceID == uuid.Nil {
		return nil, apperror.ErrWorkspaceRequired()
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, apperror.Validation("vault account name is required")
	}

	now := time.Now().UTC()
	v := &domain.VaultAccount{
		ID:          uuid.New(),
		WorkspaceID: req.WorkspaceID,
		Name:        strings.TrimSpace(req.Name),
		HiddenOnUI:  req.HiddenOnUI,
		AutoFuel:    req.AutoFuel,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.vaultRepo.Create(ctx, v); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create vault account: %w", err))
	}

	s.log.Info().
		Str("vault_id", v.ID.String()).
		Str("workspace_id", v.WorkspaceID.String()).
		Msg("vault account created")

	s.notifyLists(ctx, req.WorkspaceID)
	return v, nil
}

// CreateWallet creates a wallet for (vault, asset). Non-UTXO assets permit a
// single wallet per pair; UTXO-capable assets may hold additional wallets of
// type UTXO.
func (s *VaultServiceImpl) CreateWallet(ctx context.Context, req ports.CreateWalletRequest) (*domain.Wallet, error) {
	if req.WorkspaceID == uuid.Nil {
		return nil, apperror.ErrWorkspaceRequired()
	}

	asset, ok := domain.LookupAsset(req.AssetID)
	if !ok {
		return nil, apperror.ErrNotFound("asset")
	}

	vault, err := s.vaultRepo.GetByID(ctx, req.VaultAccountID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("load vault account: %w", err))
	}
	if vault == nil || vault.WorkspaceID != req.WorkspaceID {
		return nil, apperror.ErrNotFound("vault account")
	}

	walletType := req.Type
	if walletType == "" {
		walletType = domain.WalletTypePermanent
	}
	if walletType == domain.WalletTypeUTXO && !asset.SupportsUTXO {
		return nil, apperror.Validation(fmt.Sprintf("asset %s does not support UTXO wallets", asset.ID))
	}

	existing, err := s.walletRepo.GetByVaultAndAsset(ctx, req.VaultAccountID, req.AssetID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("check existing wallet: %w", err))
	}
	if existing != nil && walletType == domain.WalletTypePermanent {
		return nil, apperror.Validation(fmt.Sprintf("vault already holds a %s wallet", asset.ID))
	}

	now := time.Now().UTC()
	w := &domain.Wallet{
		ID:             uuid.New(),
		VaultAccountID: req.VaultAccountID,
		AssetID:        asset.ID,
		Type:           walletType,
		Balance:        decimal.Zero,
		Pending:        decimal.Zero,
		Frozen:         decimal.Zero,
		LockedAmount:   decimal.Zero,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.walletRepo.Create(ctx, w); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create wallet: %w", err))
	}

	s.log.Info().
		Str("wallet_id", w.ID.String()).
		Str("vault_id", req.VaultAccountID.String()).
		Str("asset", asset.ID).
		Msg("wallet created")

	s.notifyLists(ctx, req.WorkspaceID)
	return w, nil
}

// CreateDepositAddress mints a deposit address for the wallet, delegating
// format generation to the chain service.
func (s *VaultServiceImpl) CreateDepositAddress(ctx context.Context, workspaceID, walletID uuid.UUID, description *string) (*domain.Address, error) {
	if workspaceID == uuid.Nil {
		return nil, apperror.ErrWorkspaceRequired()
	}

	w, err := s.walletRepo.GetByID(ctx, walletID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("load wallet: %w", err))
	}
	if w == nil {
		return nil, apperror.ErrNotFound("wallet")
	}
	vault, err := s.vaultRepo.GetByID(ctx, w.VaultAccountID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("load vault account: %w", err))
	}
	if vault == nil || vault.WorkspaceID != workspaceID {
		return nil, apperror.ErrNotFound("wallet")
	}

	value, err := s.addressSvc.GenerateAddress(w.AssetID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("generate address: %w", err))
	}

	a := &domain.Address{
		ID:           uuid.New(),
		WalletID:     walletID,
		AddressValue: value,
		Description:  description,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.addressRepo.Create(ctx, a); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create address: %w", err))
	}

	s.log.Info().
		Str("wallet_id", walletID.String()).
		Str("address", value).
		Msg("deposit address created")

	return a, nil
}

// ListVaultAccounts returns the workspace's vault accounts with wallets.
func (s *VaultServiceImpl) ListVaultAccounts(ctx context.Context, workspaceID uuid.UUID) ([]ports.VaultAccountView, error) {
	if workspaceID == uuid.Nil {
		return nil, apperror.ErrWorkspaceRequired()
	}

	vaults, err := s.vaultRepo.ListByWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list vault accounts: %w", err))
	}

	out := make([]ports.VaultAccountView, 0, len(vaults))
	for i := range vaults {
		wallets, err := s.walletRepo.ListByVault(ctx, vaults[i].ID)
		if err != nil {
			return nil, apperror.InternalError(fmt.Errorf("list wallets: %w", err))
		}
		out = append(out, ports.VaultAccountView{
			VaultAccount: vaults[i],
			Wallets:      wallets,
		})
	}
	return out, nil
}

func (s *VaultServiceImpl) notifyLists(ctx context.Context, workspaceID uuid.UUID) {
	if err := s.bus.PublishListsChanged(ctx, workspaceID); err != nil {
		s.log.Warn().Err(err).Str("workspace_id", workspaceID.String()).Msg("lists-changed notification failed")
	}
}
