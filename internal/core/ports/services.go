package ports

import (
	"context"
	"time"

	"custodial-vault-platform/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// AddressService generates and validates simulated chain artifacts. The
// engine calls it to populate transaction hashes and mint deposit addresses.
type AddressService interface {
	GenerateAddress(assetID string) (string, error)
	ValidateAddress(assetID string, address string) bool
	GenerateTransactionHash(assetID string, blockchain domain.BlockchainType) (string, error)
}

// NotificationBus pushes updates to subscribers, grouped by workspace.
// Delivery is fire-and-forget and at-least-once: callers log failures and
// never let them affect ledger state.
type NotificationBus interface {
	PublishTransactionUpdated(ctx context.Context, workspaceID uuid.UUID, t *domain.Transaction) error
	PublishListsChanged(ctx context.Context, workspaceID uuid.UUID) error
}

// TokenService handles workspace-scoped admin JWT operations.
type TokenService interface {
	Generate(workspaceID uuid.UUID) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed JWT claims.
type TokenClaims struct {
	WorkspaceID uuid.UUID
}

// HashService hashes and verifies API keys.
type HashService interface {
	Hash(apiKey string) (string, error)
	Verify(apiKey string, encodedHash string) (bool, error)
}

// WorkspaceService handles workspace registration and API-key auth.
type WorkspaceService interface {
	// Register creates a workspace and mints its API key. The plaintext key
	// is returned exactly once.
	Register(ctx context.Context, name string) (*WorkspaceCredentials, error)
	// IssueToken exchanges a workspace id and API key for a scoped JWT.
	IssueToken(ctx context.Context, workspaceID uuid.UUID, apiKey string) (string, time.Time, error)
}

// WorkspaceCredentials is the one-time registration result.
type WorkspaceCredentials struct {
	Workspace domain.Workspace
	APIKey    string
	Token     string
	ExpiresAt time.Time
}

// --- Service Ports (Business Logic) ---

// LedgerService is the balance reservation engine. Each operation resolves
// the wallets owning the transaction's endpoints inside its workspace and
// adjusts balances atomically; failures leave no partial mutation.
type LedgerService interface {
	// ReserveFunds places the transfer amount (plus the fee, on its own leg
	// when charged in a different asset) on the source wallet's pending
	// balance. A source address owned by no in-workspace wallet is an
	// external counterparty: no-op success.
	ReserveFunds(ctx context.Context, t *domain.Transaction) error
	// CompleteTransaction settles a reservation: debits source balance and
	// pending, credits an owned destination. Called exactly once per
	// transaction reaching COMPLETED.
	CompleteTransaction(ctx context.Context, t *domain.Transaction) error
	// RollbackTransaction undoes a reservation that will never settle,
	// flooring pending at zero.
	RollbackTransaction(ctx context.Context, t *domain.Transaction) error
	// In-transaction variants let callers combine balance side effects with
	// their own persistence in one database transaction.
	CompleteInTx(ctx context.Context, dbTx pgx.Tx, t *domain.Transaction) error
	RollbackInTx(ctx context.Context, dbTx pgx.Tx, t *domain.Transaction) error
	// CreditIncomingInTx credits an already-settled deposit from an external
	// source directly to the destination wallet's balance. The wallet lookup
	// is scoped to the transaction's workspace.
	CreditIncomingInTx(ctx context.Context, dbTx pgx.Tx, t *domain.Transaction) error
}

// TransitionService orchestrates a single state transition: legality check,
// balance side effects, persistence, and notifications as one atomic
// operation per request.
type TransitionService interface {
	Transition(ctx context.Context, req TransitionRequest) (*TransitionResult, error)
}

// TransitionRequest identifies the transaction by its composite id as seen
// by the viewing workspace.
type TransitionRequest struct {
	TransactionID string
	TargetState   domain.TransactionState
	WorkspaceID   uuid.UUID
	FailureReason *string
}

// TransitionResult reports the post-transition state under the viewer's
// composite id.
type TransitionResult struct {
	ID    string
	State domain.TransactionState
}

// Ownership maps an (asset, address) pair to the vault account owning it.
type Ownership struct {
	WorkspaceID      uuid.UUID
	VaultAccountID   uuid.UUID
	VaultAccountName string
}

// EndpointType classifies a transaction endpoint from a viewer's perspective.
type EndpointType string

const (
	EndpointVaultAccount   EndpointType = "VAULT_ACCOUNT"
	EndpointOneTimeAddress EndpointType = "ONE_TIME_ADDRESS"
)

// EndpointView is one side of a transaction as a workspace sees it.
type EndpointView struct {
	Type             EndpointType `json:"type"`
	Address          string       `json:"address"`
	VaultAccountID   *uuid.UUID   `json:"vault_account_id,omitempty"`
	VaultAccountName string       `json:"vault_account_name,omitempty"`
}

// TransactionView is a transaction rendered for one viewing workspace: the
// id is workspace-scoped and the endpoint classification depends on which
// addresses that workspace owns.
type TransactionView struct {
	ID            string                  `json:"id"`
	AssetID       string                  `json:"asset_id"`
	Amount        decimal.Decimal         `json:"amount"`
	NetworkFee    decimal.Decimal         `json:"network_fee"`
	FeeCurrency   string                  `json:"fee_currency"`
	State         domain.TransactionState `json:"state"`
	Confirmations int                     `json:"confirmations"`
	Hash          *string                 `json:"hash,omitempty"`
	Source        EndpointView            `json:"source"`
	Destination   EndpointView            `json:"destination"`
	CreatedAt     time.Time               `json:"created_at"`
	UpdatedAt     time.Time               `json:"updated_at"`
}

// OwnershipService resolves which transaction endpoints a workspace owns and
// builds viewer-dependent perspectives. Read-only.
type OwnershipService interface {
	// BuildOwnershipView maps (assetId, address) to ownership, restricted to
	// addresses owned by wallets inside the given workspaces.
	BuildOwnershipView(ctx context.Context, txs []domain.Transaction, workspaceIDs []uuid.UUID) (map[domain.AssetAddress]Ownership, error)
	// BuildPerspectives filters txs down to those visible to the viewer and
	// renders each with viewer-scoped ids and endpoint classification.
	BuildPerspectives(ctx context.Context, txs []domain.Transaction, viewerWorkspaceID uuid.UUID) ([]TransactionView, error)
}

// VaultService manages vault accounts, wallets, and deposit addresses.
type VaultService interface {
	CreateVaultAccount(ctx context.Context, req CreateVaultAccountRequest) (*domain.VaultAccount, error)
	CreateWallet(ctx context.Context, req CreateWalletRequest) (*domain.Wallet, error)
	CreateDepositAddress(ctx context.Context, workspaceID, walletID uuid.UUID, description *string) (*domain.Address, error)
	ListVaultAccounts(ctx context.Context, workspaceID uuid.UUID) ([]VaultAccountView, error)
}

// CreateVaultAccountRequest holds validated input for vault creation.
type CreateVaultAccountRequest struct {
	WorkspaceID uuid.UUID
	Name        string
	HiddenOnUI  bool
	AutoFuel    bool
}

// CreateWalletRequest holds validated input for wallet creation.
type CreateWalletRequest struct {
	WorkspaceID    uuid.UUID
	VaultAccountID uuid.UUID
	AssetID        string
	Type           domain.WalletType
}

// VaultAccountView is a vault account with its wallets.
type VaultAccountView struct {
	VaultAccount domain.VaultAccount `json:"vault_account"`
	Wallets      []domain.Wallet     `json:"wallets"`
}

// TransferService creates transactions: outgoing transfers that reserve
// funds, and incoming deposits credited on arrival.
type TransferService interface {
	CreateTransfer(ctx context.Context, req CreateTransferRequest) (*TransactionView, error)
	RegisterIncoming(ctx context.Context, req RegisterIncomingRequest) (*TransactionView, error)
}

// CreateTransferRequest holds validated input for an outgoing transfer.
// Amount is the gross requested amount; the network fee is deducted from it
// when charged in the same asset.
type CreateTransferRequest struct {
	WorkspaceID        uuid.UUID
	VaultAccountID     uuid.UUID
	AssetID            string
	DestinationAddress string
	Amount             decimal.Decimal
}

// RegisterIncomingRequest holds validated input for an external deposit,
// which arrives already settled.
type RegisterIncomingRequest struct {
	WorkspaceID        uuid.UUID
	AssetID            string
	SourceAddress      string
	DestinationAddress string
	Amount             decimal.Decimal
	Hash               *string
	ExternalTxID       *string
}
