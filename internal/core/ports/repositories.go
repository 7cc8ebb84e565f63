package ports

import (
	"context"
	"errors"

	"custodial-vault-platform/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// Sentinel errors for uniqueness violations surfaced by repositories.
var (
	ErrHashExists         = errors.New("transaction hash already exists")
	ErrExternalTxIDExists = errors.New("external transaction id already exists")
	ErrAddressExists      = errors.New("address value already exists")
)

// WorkspaceRepository defines persistence operations for workspaces.
type WorkspaceRepository interface {
	Create(ctx context.Context, ws *domain.Workspace) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Workspace, error)
}

// VaultAccountRepository defines persistence operations for vault accounts.
type VaultAccountRepository interface {
	Create(ctx context.Context, v *domain.VaultAccount) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.VaultAccount, error)
	ListByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]domain.VaultAccount, error)
}

// WalletRepository defines persistence operations for wallets.
// Methods accepting pgx.Tx run inside ledger transactions and take row-level
// locks; every balance mutation goes through them.
type WalletRepository interface {
	Create(ctx context.Context, w *domain.Wallet) error
	CreateInTx(ctx context.Context, tx pgx.Tx, w *domain.Wallet) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Wallet, error)
	GetByVaultAndAsset(ctx context.Context, vaultAccountID uuid.UUID, assetID string) (*domain.Wallet, error)
	ListByVault(ctx context.Context, vaultAccountID uuid.UUID) ([]domain.Wallet, error)
	// GetByAddressForUpdate resolves the wallet owning addressValue inside
	// workspaceID and locks its row. Returns nil for an address not owned by
	// any wallet in that workspace (external counterparty).
	GetByAddressForUpdate(ctx context.Context, tx pgx.Tx, workspaceID uuid.UUID, addressValue string) (*domain.Wallet, error)
	GetByVaultAndAssetForUpdate(ctx context.Context, tx pgx.Tx, vaultAccountID uuid.UUID, assetID string) (*domain.Wallet, error)
	UpdateBalances(ctx context.Context, tx pgx.Tx, walletID uuid.UUID, balance, pending decimal.Decimal) error
}

// AddressRepository defines persistence operations for deposit addresses.
type AddressRepository interface {
	Create(ctx context.Context, a *domain.Address) error
	GetByValue(ctx context.Context, addressValue string) (*domain.Address, error)
	ListByWallet(ctx context.Context, walletID uuid.UUID) ([]domain.Address, error)
	// ListOwned resolves which of the given address values are owned by
	// wallets inside the given workspaces. Lookups are scoped to exactly
	// those workspaces, never global.
	ListOwned(ctx context.Context, workspaceIDs []uuid.UUID, addressValues []string) ([]OwnedAddress, error)
}

// OwnedAddress is one row of an ownership lookup.
type OwnedAddress struct {
	WorkspaceID      uuid.UUID
	VaultAccountID   uuid.UUID
	VaultAccountName string
	WalletID         uuid.UUID
	AssetID          string
	AddressValue     string
}

// TransactionRepository defines persistence operations for transactions.
type TransactionRepository interface {
	Create(ctx context.Context, t *domain.Transaction) error
	CreateInTx(ctx context.Context, tx pgx.Tx, t *domain.Transaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error)
	ListByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]domain.Transaction, error)
	// ListAll returns every transaction, newest first. Visibility filtering
	// happens in the ownership service, never here.
	ListAll(ctx context.Context) ([]domain.Transaction, error)
	// ListNonTerminal returns every transaction outside a terminal state,
	// oldest first. Used by the auto-transition driver.
	ListNonTerminal(ctx context.Context) ([]domain.Transaction, error)
	Update(ctx context.Context, t *domain.Transaction) error
	UpdateInTx(ctx context.Context, tx pgx.Tx, t *domain.Transaction) error
	// UpdateBatch persists a set of mutated transactions in one round trip.
	UpdateBatch(ctx context.Context, txs []domain.Transaction) error
}

// SettingsRepository persists operator-facing flags. The auto-transition flag
// is read fresh on every driver tick, never cached in process.
type SettingsRepository interface {
	GetAutoTransitionEnabled(ctx context.Context) (bool, error)
	SetAutoTransitionEnabled(ctx context.Context, enabled bool) error
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
